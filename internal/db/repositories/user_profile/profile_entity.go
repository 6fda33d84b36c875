package user_profile

import (
	"time"

	"github.com/MyelinBots/connectmap-go/internal/db"
)

const (
	RoleUser      = "user"
	RoleModerator = "moderator"
	RoleAdmin     = "admin"
)

type UserProfile struct {
	ID          string  `gorm:"column:id;primaryKey" json:"uid"`
	Email       string  `gorm:"column:email;not null;default:''" json:"email"`
	Username    *string `gorm:"column:username;uniqueIndex" json:"username,omitempty"`
	DisplayName string  `gorm:"column:display_name;not null;default:'';index" json:"displayName"`
	Bio         string  `gorm:"column:bio;not null;default:''" json:"bio"`
	AvatarEmoji string  `gorm:"column:avatar_emoji;not null;default:''" json:"avatarEmoji"`
	PhotoURL    string  `gorm:"column:photo_url;not null;default:''" json:"photoURL"`

	Role    string `gorm:"column:role;not null;default:'user'" json:"role"`
	IsAdmin bool   `gorm:"column:is_admin;not null;default:false" json:"isAdmin"`

	TasteProfileID         string `gorm:"column:taste_profile_id;not null;default:''" json:"tasteProfileId,omitempty"`
	HasCompletedOnboarding bool   `gorm:"column:has_completed_onboarding;not null;default:false" json:"hasCompletedOnboarding"`

	ShowPlacesToFriends bool `gorm:"column:show_places_to_friends;not null" json:"showPlacesToFriends"`
	PublicProfile       bool `gorm:"column:public_profile;not null;default:false" json:"publicProfile"`
	AnonymousMode       bool `gorm:"column:anonymous_mode;not null;default:false" json:"anonymousMode"`

	XP            int `gorm:"column:xp;not null;default:0" json:"xp"`
	Level         int `gorm:"column:level;not null;default:1" json:"level"`
	FoodieXP      int `gorm:"column:foodie_xp;not null;default:0" json:"foodieXp"`
	FoodieLevel   int `gorm:"column:foodie_level;not null;default:1" json:"foodieLevel"`
	ExplorerXP    int `gorm:"column:explorer_xp;not null;default:0" json:"explorerXp"`
	ExplorerLevel int `gorm:"column:explorer_level;not null;default:1" json:"explorerLevel"`
	CuratorXP     int `gorm:"column:curator_xp;not null;default:0" json:"curatorXp"`
	CuratorLevel  int `gorm:"column:curator_level;not null;default:1" json:"curatorLevel"`
	SocialXP      int `gorm:"column:social_xp;not null;default:0" json:"socialXp"`
	SocialLevel   int `gorm:"column:social_level;not null;default:1" json:"socialLevel"`

	PlacesCount int `gorm:"column:places_count;not null;default:0" json:"placesCount"`
	ReviewCount int `gorm:"column:review_count;not null;default:0" json:"reviewCount"`
	FriendCount int `gorm:"column:friend_count;not null;default:0" json:"friendCount"`

	Achievements         db.StringList `gorm:"column:achievements;type:jsonb" json:"achievements"`
	UnlockedAchievements int           `gorm:"column:unlocked_achievements;not null;default:0" json:"unlockedAchievements"`
	TotalAchievements    int           `gorm:"column:total_achievements;not null;default:0" json:"totalAchievements"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (UserProfile) TableName() string {
	return "user_profiles"
}

// IsAdministrator is true for either admin marker.
func (p *UserProfile) IsAdministrator() bool {
	return p.IsAdmin || p.Role == RoleAdmin
}

// CanModerate is true for moderators and admins.
func (p *UserProfile) CanModerate() bool {
	return p.IsAdministrator() || p.Role == RoleModerator
}

// Handle is the username or "" when none is set.
func (p *UserProfile) Handle() string {
	if p.Username == nil {
		return ""
	}
	return *p.Username
}

// Card is the slice of a profile shown to other users in lists.
type Card struct {
	ID          string `json:"uid"`
	Username    string `json:"username,omitempty"`
	DisplayName string `json:"displayName"`
	AvatarEmoji string `json:"avatarEmoji"`
	PhotoURL    string `json:"photoURL,omitempty"`
	Level       int    `json:"level"`
}

func (p *UserProfile) Card() Card {
	return Card{
		ID:          p.ID,
		Username:    p.Handle(),
		DisplayName: p.DisplayName,
		AvatarEmoji: p.AvatarEmoji,
		PhotoURL:    p.PhotoURL,
		Level:       p.Level,
	}
}

// Cards never returns nil.
func Cards(profiles []*UserProfile) []Card {
	out := make([]Card, 0, len(profiles))
	for _, p := range profiles {
		out = append(out, p.Card())
	}
	return out
}

// PublicView is the profile page as seen by someone other than the owner.
// Contact details, role and privacy settings stay private.
type PublicView struct {
	Card
	Bio                  string        `json:"bio"`
	XP                   int           `json:"xp"`
	FoodieLevel          int           `json:"foodieLevel"`
	ExplorerLevel        int           `json:"explorerLevel"`
	CuratorLevel         int           `json:"curatorLevel"`
	SocialLevel          int           `json:"socialLevel"`
	PlacesCount          int           `json:"placesCount"`
	ReviewCount          int           `json:"reviewCount"`
	FriendCount          int           `json:"friendCount"`
	Achievements         db.StringList `json:"achievements"`
	UnlockedAchievements int           `json:"unlockedAchievements"`
	TotalAchievements    int           `json:"totalAchievements"`
}

func (p *UserProfile) PublicView() PublicView {
	return PublicView{
		Card:                 p.Card(),
		Bio:                  p.Bio,
		XP:                   p.XP,
		FoodieLevel:          p.FoodieLevel,
		ExplorerLevel:        p.ExplorerLevel,
		CuratorLevel:         p.CuratorLevel,
		SocialLevel:          p.SocialLevel,
		PlacesCount:          p.PlacesCount,
		ReviewCount:          p.ReviewCount,
		FriendCount:          p.FriendCount,
		Achievements:         p.Achievements,
		UnlockedAchievements: p.UnlockedAchievements,
		TotalAchievements:    p.TotalAchievements,
	}
}
