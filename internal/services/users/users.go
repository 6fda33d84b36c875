package users

import (
	"context"
	"fmt"
	"strings"

	"github.com/MyelinBots/connectmap-go/internal/db"
	"github.com/MyelinBots/connectmap-go/internal/db/repositories/user_profile"
	"github.com/MyelinBots/connectmap-go/internal/errs"
	"github.com/MyelinBots/connectmap-go/internal/services/xp"
	"go.uber.org/zap"
)

const (
	SearchLimit     = 20
	minSearchLength = 2
	maxBioLength    = 280
)

// Update holds editable fields; nil means unchanged.
type Update struct {
	DisplayName *string `json:"displayName"`
	Bio         *string `json:"bio"`
	AvatarEmoji *string `json:"avatarEmoji"`
	PhotoURL    *string `json:"photoURL"`
}

// Summary is the profile page view.
type Summary struct {
	Profile      *user_profile.UserProfile `json:"profile"`
	Progress     xp.Progress               `json:"progress"`
	ProgressBar  string                    `json:"progressBar"`
	Achievements []xp.Achievement          `json:"achievements"`
}

type Service interface {
	EnsureProfile(ctx context.Context, userID, email string) (*user_profile.UserProfile, error)
	GetProfile(ctx context.Context, userID string) (*user_profile.UserProfile, error)
	GetSummary(ctx context.Context, userID string) (*Summary, error)
	UpdateProfile(ctx context.Context, userID string, u Update) (*user_profile.UserProfile, error)
	Search(ctx context.Context, term string) ([]user_profile.Card, error)

	Leaderboard(ctx context.Context, limit int) ([]Rank, error)
	CircleLeaderboard(ctx context.Context, userID string, friendIDs []string, limit int) ([]Rank, error)
}

type Impl struct {
	repo user_profile.UserProfileRepository
	log  *zap.Logger
}

func New(repo user_profile.UserProfileRepository, log *zap.Logger) Service {
	return &Impl{repo: repo, log: log}
}

// NewProfile is the minimal profile created on first sight of a user.
func NewProfile(userID, email string) *user_profile.UserProfile {
	return &user_profile.UserProfile{
		ID:                  userID,
		Email:               email,
		Role:                user_profile.RoleUser,
		Level:               1,
		FoodieLevel:         1,
		ExplorerLevel:       1,
		CuratorLevel:        1,
		SocialLevel:         1,
		ShowPlacesToFriends: true,
		Achievements:        db.StringList{},
		TotalAchievements:   xp.TotalAchievements(),
	}
}

func (s *Impl) EnsureProfile(ctx context.Context, userID, email string) (*user_profile.UserProfile, error) {
	if userID == "" {
		return nil, errs.ErrUnauthenticated
	}
	p, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if p != nil {
		return p, nil
	}

	if err := s.repo.CreateIfMissing(ctx, NewProfile(userID, email)); err != nil {
		return nil, fmt.Errorf("create profile: %w", err)
	}
	s.log.Info("profile created", zap.String("user", userID))
	return s.repo.GetByID(ctx, userID)
}

func (s *Impl) GetProfile(ctx context.Context, userID string) (*user_profile.UserProfile, error) {
	p, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("%w: user %s", errs.ErrNotFound, userID)
	}
	return p, nil
}

func (s *Impl) GetSummary(ctx context.Context, userID string) (*Summary, error) {
	p, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &Summary{
		Profile:      p,
		Progress:     xp.LevelProgress(p.XP),
		ProgressBar:  xp.RenderProgressBar(p.XP),
		Achievements: xp.UserAchievements(p.Achievements),
	}, nil
}

func (s *Impl) UpdateProfile(ctx context.Context, userID string, u Update) (*user_profile.UserProfile, error) {
	fields := map[string]any{}
	if u.DisplayName != nil {
		name := strings.TrimSpace(*u.DisplayName)
		if name == "" {
			return nil, fmt.Errorf("%w: display name cannot be empty", errs.ErrInvalid)
		}
		fields["display_name"] = name
	}
	if u.Bio != nil {
		if len(*u.Bio) > maxBioLength {
			return nil, fmt.Errorf("%w: bio is longer than %d characters", errs.ErrInvalid, maxBioLength)
		}
		fields["bio"] = strings.TrimSpace(*u.Bio)
	}
	if u.AvatarEmoji != nil {
		fields["avatar_emoji"] = *u.AvatarEmoji
	}
	if u.PhotoURL != nil {
		fields["photo_url"] = strings.TrimSpace(*u.PhotoURL)
	}

	if _, err := s.GetProfile(ctx, userID); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateEditable(ctx, userID, fields); err != nil {
		return nil, err
	}
	return s.GetProfile(ctx, userID)
}

// Search matches username prefixes first and falls back to display names.
// Anonymous profiles never match and results carry only public fields.
func (s *Impl) Search(ctx context.Context, term string) ([]user_profile.Card, error) {
	term = strings.TrimSpace(term)
	if len([]rune(term)) < minSearchLength {
		return []user_profile.Card{}, nil
	}

	found, err := s.repo.SearchByUsernamePrefix(ctx, strings.ToLower(term), SearchLimit)
	if err != nil {
		return nil, err
	}
	if len(found) > 0 {
		return user_profile.Cards(found), nil
	}

	found, err = s.repo.SearchByDisplayNamePrefix(ctx, term, SearchLimit)
	if err != nil {
		return nil, err
	}
	return user_profile.Cards(found), nil
}
