package moderation

import (
	"context"
	"fmt"
	"strings"

	"github.com/MyelinBots/connectmap-go/internal/db/repositories/category"
	"github.com/MyelinBots/connectmap-go/internal/db/repositories/user_profile"
	"github.com/MyelinBots/connectmap-go/internal/errs"
	"go.uber.org/zap"
)

func (s *Impl) caller(ctx context.Context, userID string) (*user_profile.UserProfile, error) {
	if userID == "" {
		return nil, errs.ErrUnauthenticated
	}
	p, err := s.profiles.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("%w: no profile", errs.ErrForbidden)
	}
	return p, nil
}

func (s *Impl) requireModerator(ctx context.Context, userID string) (*user_profile.UserProfile, error) {
	p, err := s.caller(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !p.CanModerate() {
		return nil, fmt.Errorf("%w: moderators only", errs.ErrForbidden)
	}
	return p, nil
}

func (s *Impl) requireAdmin(ctx context.Context, userID string) (*user_profile.UserProfile, error) {
	p, err := s.caller(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !p.IsAdministrator() {
		return nil, fmt.Errorf("%w: admins only", errs.ErrForbidden)
	}
	return p, nil
}

func (s *Impl) ListAdmins(ctx context.Context, adminID string) ([]*user_profile.UserProfile, error) {
	if _, err := s.requireAdmin(ctx, adminID); err != nil {
		return nil, err
	}
	list, err := s.profiles.ListAdmins(ctx)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []*user_profile.UserProfile{}
	}
	return list, nil
}

func (s *Impl) GrantAdmin(ctx context.Context, adminID, userID string) error {
	if _, err := s.requireAdmin(ctx, adminID); err != nil {
		return err
	}
	if err := s.setRole(ctx, userID, user_profile.RoleAdmin, true); err != nil {
		return err
	}
	s.log.Info("admin granted", zap.String("user_id", userID), zap.String("by", adminID))
	return nil
}

func (s *Impl) RevokeAdmin(ctx context.Context, adminID, userID string) error {
	if _, err := s.requireAdmin(ctx, adminID); err != nil {
		return err
	}
	if adminID == userID {
		return fmt.Errorf("%w: you can't remove yourself", errs.ErrInvalid)
	}
	if err := s.setRole(ctx, userID, user_profile.RoleUser, false); err != nil {
		return err
	}
	s.log.Info("admin revoked", zap.String("user_id", userID), zap.String("by", adminID))
	return nil
}

func (s *Impl) setRole(ctx context.Context, userID, role string, isAdmin bool) error {
	target, err := s.profiles.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if target == nil {
		return fmt.Errorf("%w: user %s", errs.ErrNotFound, userID)
	}
	return s.profiles.SetRole(ctx, userID, role, isAdmin)
}

func (s *Impl) CreateCategory(ctx context.Context, adminID string, c *category.Category) error {
	if _, err := s.requireAdmin(ctx, adminID); err != nil {
		return err
	}
	c.ID = strings.TrimSpace(c.ID)
	c.Label = strings.TrimSpace(c.Label)
	c.Emoji = strings.TrimSpace(c.Emoji)
	if c.ID == "" || c.Label == "" || c.Emoji == "" {
		return fmt.Errorf("%w: id, label and emoji are required", errs.ErrInvalid)
	}
	return s.categories.Upsert(ctx, c)
}

func (s *Impl) DeleteCategory(ctx context.Context, adminID, categoryID string) error {
	if _, err := s.requireAdmin(ctx, adminID); err != nil {
		return err
	}
	ok, err := s.categories.Delete(ctx, categoryID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: category %s", errs.ErrNotFound, categoryID)
	}
	return nil
}
