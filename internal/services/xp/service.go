package xp

import (
	"context"
	"fmt"

	"github.com/MyelinBots/connectmap-go/internal/db"
	"github.com/MyelinBots/connectmap-go/internal/db/repositories/user_profile"
	"github.com/MyelinBots/connectmap-go/internal/errs"
	"go.uber.org/zap"
)

const unlockAttempts = 5

type Result struct {
	LeveledUp            bool          `json:"leveledUp"`
	NewLevel             int           `json:"newLevel"`
	AchievementsUnlocked []Achievement `json:"achievementsUnlocked"`
}

type Service interface {
	Award(ctx context.Context, userID string, amount int, category Category) (Result, error)
	AwardReview(ctx context.Context, userID string) (Result, error)
	AwardNewPlace(ctx context.Context, userID string) (Result, error)
	AwardFriend(ctx context.Context, userID string) (Result, error)
	AwardSavePlace(ctx context.Context, userID string) (Result, error)
}

type Impl struct {
	repo user_profile.UserProfileRepository
	log  *zap.Logger
}

func New(repo user_profile.UserProfileRepository, log *zap.Logger) Service {
	return &Impl{repo: repo, log: log}
}

func (s *Impl) AwardReview(ctx context.Context, userID string) (Result, error) {
	return s.Award(ctx, userID, RewardReview, Curator)
}

func (s *Impl) AwardNewPlace(ctx context.Context, userID string) (Result, error) {
	return s.Award(ctx, userID, RewardNewPlace, Explorer)
}

func (s *Impl) AwardFriend(ctx context.Context, userID string) (Result, error) {
	return s.Award(ctx, userID, RewardFriend, Social)
}

func (s *Impl) AwardSavePlace(ctx context.Context, userID string) (Result, error) {
	return s.Award(ctx, userID, RewardSavePlace, Foodie)
}

func (s *Impl) Award(ctx context.Context, userID string, amount int, category Category) (Result, error) {
	if !category.Valid() {
		return Result{}, fmt.Errorf("%w: unknown xp category %q", errs.ErrInvalid, category)
	}

	// 1) Load profile
	before, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return Result{}, err
	}
	if before == nil {
		return Result{}, fmt.Errorf("%w: user %s", errs.ErrNotFound, userID)
	}

	// 2) Increment total and category XP
	if err := s.repo.AddXP(ctx, userID, amount, string(category)); err != nil {
		return Result{}, fmt.Errorf("add xp: %w", err)
	}

	// 3) Reload so achievement checks see current counters
	p, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return Result{}, err
	}
	if p == nil {
		return Result{}, fmt.Errorf("%w: user %s", errs.ErrNotFound, userID)
	}

	// 4) Achievements; each reward lands on total XP only
	unlocked := []Achievement{}
	for _, a := range achievements {
		if !a.unlocked(p) {
			continue
		}
		var ok bool
		ok, p, err = s.unlock(ctx, p, a)
		if err != nil {
			return Result{}, fmt.Errorf("unlock %s: %w", a.ID, err)
		}
		if !ok {
			continue
		}
		unlocked = append(unlocked, a)
		s.log.Info("achievement unlocked", zap.String("user", userID), zap.String("achievement", a.ID))
	}
	total := p.XP

	// 5) Levels always follow XP
	level := CalculateLevel(total)
	levels := map[string]int{"level": level}
	levels[string(category)+"_level"] = CalculateLevel(categoryXP(p, category))
	if err := s.repo.SetLevels(ctx, userID, levels); err != nil {
		return Result{}, fmt.Errorf("set levels: %w", err)
	}

	res := Result{
		LeveledUp:            level > before.Level,
		NewLevel:             level,
		AchievementsUnlocked: unlocked,
	}
	if res.LeveledUp {
		s.log.Info("level up", zap.String("user", userID), zap.Int("level", level))
	}
	return res, nil
}

// unlock pays a once. A concurrent award that changed the list first makes
// the conditional update miss; the profile is reloaded and checked again.
func (s *Impl) unlock(ctx context.Context, p *user_profile.UserProfile, a Achievement) (bool, *user_profile.UserProfile, error) {
	for attempt := 0; attempt < unlockAttempts; attempt++ {
		if p.Achievements.Contains(a.ID) {
			return false, p, nil
		}
		ok, err := s.repo.UnlockAchievement(ctx, p.ID, p.Achievements, a.ID, a.XPReward)
		if err != nil {
			return false, p, err
		}
		if ok {
			p.Achievements = append(append(db.StringList{}, p.Achievements...), a.ID)
			p.UnlockedAchievements++
			p.XP += a.XPReward
			return true, p, nil
		}
		reloaded, err := s.repo.GetByID(ctx, p.ID)
		if err != nil {
			return false, p, err
		}
		if reloaded == nil {
			return false, p, fmt.Errorf("%w: user %s", errs.ErrNotFound, p.ID)
		}
		p = reloaded
	}
	return false, p, fmt.Errorf("%w: achievements of %s keep changing", errs.ErrConflict, p.ID)
}

func categoryXP(p *user_profile.UserProfile, c Category) int {
	switch c {
	case Foodie:
		return p.FoodieXP
	case Explorer:
		return p.ExplorerXP
	case Curator:
		return p.CuratorXP
	case Social:
		return p.SocialXP
	}
	return 0
}
