package user_profile

//go:generate mockgen -source=profile_repository.go -destination=mocks/mock_profile_repository.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/MyelinBots/connectmap-go/internal/db"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Counter columns that may be incremented directly.
const (
	CounterPlaces  = "places_count"
	CounterReviews = "review_count"
	CounterFriends = "friend_count"
)

var counters = map[string]bool{
	CounterPlaces:  true,
	CounterReviews: true,
	CounterFriends: true,
}

// XP category columns. Each has a matching <category>_level column.
var xpCategories = map[string]bool{
	"foodie":   true,
	"explorer": true,
	"curator":  true,
	"social":   true,
}

// Fields a user may edit on their own profile.
var editable = map[string]bool{
	"display_name": true,
	"bio":          true,
	"avatar_emoji": true,
	"photo_url":    true,
}

type UserProfileRepository interface {
	GetByID(ctx context.Context, id string) (*UserProfile, error)
	GetByIDs(ctx context.Context, ids []string) ([]*UserProfile, error)
	GetByUsername(ctx context.Context, username string) (*UserProfile, error)

	// CreateIfMissing inserts p unless a profile with its id exists.
	CreateIfMissing(ctx context.Context, p *UserProfile) error
	UpdateEditable(ctx context.Context, id string, fields map[string]any) error
	CompleteOnboarding(ctx context.Context, id string, update OnboardingUpdate) error

	SearchByUsernamePrefix(ctx context.Context, prefix string, limit int) ([]*UserProfile, error)
	SearchByDisplayNamePrefix(ctx context.Context, prefix string, limit int) ([]*UserProfile, error)

	// TopByXP ranks public profiles, or exactly ids when given.
	TopByXP(ctx context.Context, ids []string, limit int) ([]*UserProfile, error)

	ListAdmins(ctx context.Context) ([]*UserProfile, error)
	SetRole(ctx context.Context, id, role string, isAdmin bool) error

	// xp helpers
	AddXP(ctx context.Context, id string, amount int, category string) error
	SetLevels(ctx context.Context, id string, levels map[string]int) error
	UnlockAchievement(ctx context.Context, id string, owned db.StringList, achievement string, reward int) (bool, error)

	IncrementCounter(ctx context.Context, id, counter string, delta int) error
}

// OnboardingUpdate is written to the profile once the survey completes.
type OnboardingUpdate struct {
	DisplayName         string
	Username            string
	AvatarEmoji         string
	TasteProfileID      string
	ShowPlacesToFriends bool
	PublicProfile       bool
	AnonymousMode       bool
}

type UserProfileRepositoryImpl struct {
	db *db.DB
}

func NewUserProfileRepository(database *db.DB) UserProfileRepository {
	return &UserProfileRepositoryImpl{db: database}
}

func norm(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

// likePrefix escapes LIKE wildcards in a user supplied prefix.
func likePrefix(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s) + "%"
}

func (r *UserProfileRepositoryImpl) GetByID(ctx context.Context, id string) (*UserProfile, error) {
	var p UserProfile
	err := r.db.DB.WithContext(ctx).Where("id = ?", id).First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *UserProfileRepositoryImpl) GetByIDs(ctx context.Context, ids []string) ([]*UserProfile, error) {
	if len(ids) == 0 {
		return []*UserProfile{}, nil
	}
	var profiles []*UserProfile
	if err := r.db.DB.WithContext(ctx).
		Where("id IN ?", ids).
		Order("display_name ASC").
		Find(&profiles).Error; err != nil {
		return nil, err
	}
	return profiles, nil
}

func (r *UserProfileRepositoryImpl) GetByUsername(ctx context.Context, username string) (*UserProfile, error) {
	var p UserProfile
	err := r.db.DB.WithContext(ctx).Where("username = ?", norm(username)).First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *UserProfileRepositoryImpl) CreateIfMissing(ctx context.Context, p *UserProfile) error {
	if p.Achievements == nil {
		p.Achievements = db.StringList{}
	}
	return r.db.DB.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "id"}}, DoNothing: true}).
		Create(p).Error
}

func (r *UserProfileRepositoryImpl) UpdateEditable(ctx context.Context, id string, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	for k := range fields {
		if !editable[k] {
			return fmt.Errorf("field %q is not editable", k)
		}
	}
	return r.db.DB.WithContext(ctx).
		Model(&UserProfile{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (r *UserProfileRepositoryImpl) CompleteOnboarding(ctx context.Context, id string, u OnboardingUpdate) error {
	fields := map[string]any{
		"display_name":             u.DisplayName,
		"avatar_emoji":             u.AvatarEmoji,
		"taste_profile_id":         u.TasteProfileID,
		"has_completed_onboarding": true,
		"show_places_to_friends":   u.ShowPlacesToFriends,
		"public_profile":           u.PublicProfile,
		"anonymous_mode":           u.AnonymousMode,
	}
	if username := norm(u.Username); username != "" {
		fields["username"] = username
	}
	err := r.db.DB.WithContext(ctx).
		Model(&UserProfile{}).
		Where("id = ?", id).
		Updates(fields).Error
	return db.Conflict(err, "username already taken")
}

func (r *UserProfileRepositoryImpl) SearchByUsernamePrefix(ctx context.Context, prefix string, limit int) ([]*UserProfile, error) {
	var profiles []*UserProfile
	if err := r.db.DB.WithContext(ctx).
		Where(`username LIKE ? ESCAPE '\' AND anonymous_mode = ?`, likePrefix(norm(prefix)), false).
		Order("username ASC").
		Limit(limit).
		Find(&profiles).Error; err != nil {
		return nil, err
	}
	return profiles, nil
}

func (r *UserProfileRepositoryImpl) SearchByDisplayNamePrefix(ctx context.Context, prefix string, limit int) ([]*UserProfile, error) {
	var profiles []*UserProfile
	if err := r.db.DB.WithContext(ctx).
		Where(`display_name LIKE ? ESCAPE '\' AND anonymous_mode = ?`, likePrefix(prefix), false).
		Order("display_name ASC").
		Limit(limit).
		Find(&profiles).Error; err != nil {
		return nil, err
	}
	return profiles, nil
}

func (r *UserProfileRepositoryImpl) TopByXP(ctx context.Context, ids []string, limit int) ([]*UserProfile, error) {
	if limit <= 0 {
		limit = 10
	}
	q := r.db.DB.WithContext(ctx)
	if ids != nil {
		if len(ids) == 0 {
			return []*UserProfile{}, nil
		}
		q = q.Where("id IN ?", ids)
	} else {
		q = q.Where("public_profile = ? AND anonymous_mode = ?", true, false)
	}

	var profiles []*UserProfile
	if err := q.Order("xp DESC").Order("display_name ASC").Limit(limit).Find(&profiles).Error; err != nil {
		return nil, err
	}
	return profiles, nil
}

func (r *UserProfileRepositoryImpl) ListAdmins(ctx context.Context) ([]*UserProfile, error) {
	var profiles []*UserProfile
	if err := r.db.DB.WithContext(ctx).
		Where("role = ? OR is_admin = ?", RoleAdmin, true).
		Order("display_name ASC").
		Find(&profiles).Error; err != nil {
		return nil, err
	}
	return profiles, nil
}

func (r *UserProfileRepositoryImpl) SetRole(ctx context.Context, id, role string, isAdmin bool) error {
	res := r.db.DB.WithContext(ctx).
		Model(&UserProfile{}).
		Where("id = ?", id).
		Updates(map[string]any{"role": role, "is_admin": isAdmin})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

/*
XP HELPERS
*/

func (r *UserProfileRepositoryImpl) AddXP(ctx context.Context, id string, amount int, category string) error {
	if !xpCategories[category] {
		return fmt.Errorf("unknown xp category %q", category)
	}
	col := category + "_xp"
	return r.db.DB.WithContext(ctx).
		Model(&UserProfile{}).
		Where("id = ?", id).
		UpdateColumns(map[string]any{
			"xp": gorm.Expr("xp + ?", amount),
			col:  gorm.Expr(col+" + ?", amount),
		}).Error
}

// SetLevels writes "level" and any "<category>_level" columns.
func (r *UserProfileRepositoryImpl) SetLevels(ctx context.Context, id string, levels map[string]int) error {
	fields := make(map[string]any, len(levels))
	for k, v := range levels {
		if k != "level" && !xpCategories[strings.TrimSuffix(k, "_level")] {
			return fmt.Errorf("unknown level column %q", k)
		}
		fields[k] = v
	}
	if len(fields) == 0 {
		return nil
	}
	return r.db.DB.WithContext(ctx).
		Model(&UserProfile{}).
		Where("id = ?", id).
		UpdateColumns(fields).Error
}

// UnlockAchievement appends achievement to the list and pays reward, but only
// while the stored list still equals owned. It reports false when another
// writer changed the list first; the caller reloads and decides again.
func (r *UserProfileRepositoryImpl) UnlockAchievement(ctx context.Context, id string, owned db.StringList, achievement string, reward int) (bool, error) {
	if owned == nil {
		owned = db.StringList{}
	}
	if owned.Contains(achievement) {
		return false, nil
	}
	next := append(append(db.StringList{}, owned...), achievement)
	res := r.db.DB.WithContext(ctx).
		Model(&UserProfile{}).
		Where("id = ? AND achievements = ?", id, owned).
		UpdateColumns(map[string]any{
			"achievements":          next,
			"unlocked_achievements": gorm.Expr("unlocked_achievements + 1"),
			"xp":                    gorm.Expr("xp + ?", reward),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

/*
COUNTERS
*/

func (r *UserProfileRepositoryImpl) IncrementCounter(ctx context.Context, id, counter string, delta int) error {
	if !counters[counter] {
		return fmt.Errorf("unknown counter %q", counter)
	}
	// counters never go below zero
	expr := gorm.Expr(fmt.Sprintf("CASE WHEN %[1]s + ? < 0 THEN 0 ELSE %[1]s + ? END", counter), delta, delta)
	return r.db.DB.WithContext(ctx).
		Model(&UserProfile{}).
		Where("id = ?", id).
		UpdateColumn(counter, expr).Error
}
