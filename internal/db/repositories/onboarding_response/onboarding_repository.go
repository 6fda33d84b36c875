package onboarding_response

import (
	"context"
	"errors"

	"github.com/MyelinBots/connectmap-go/internal/db"
	"gorm.io/gorm"
)

type OnboardingResponseRepository interface {
	Create(ctx context.Context, o *OnboardingResponse) error
	GetByID(ctx context.Context, id string) (*OnboardingResponse, error)
	MarkProcessed(ctx context.Context, id, profileID string) error
	// ListUnprocessed returns submissions whose profile was never written, oldest first.
	ListUnprocessed(ctx context.Context, limit int) ([]*OnboardingResponse, error)
}

type OnboardingResponseRepositoryImpl struct {
	db *db.DB
}

func NewOnboardingResponseRepository(database *db.DB) OnboardingResponseRepository {
	return &OnboardingResponseRepositoryImpl{db: database}
}

func (r *OnboardingResponseRepositoryImpl) Create(ctx context.Context, o *OnboardingResponse) error {
	return r.db.DB.WithContext(ctx).Create(o).Error
}

func (r *OnboardingResponseRepositoryImpl) GetByID(ctx context.Context, id string) (*OnboardingResponse, error) {
	var o OnboardingResponse
	err := r.db.DB.WithContext(ctx).Where("id = ?", id).First(&o).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &o, nil
}

func (r *OnboardingResponseRepositoryImpl) MarkProcessed(ctx context.Context, id, profileID string) error {
	return r.db.DB.WithContext(ctx).
		Model(&OnboardingResponse{}).
		Where("id = ?", id).
		Updates(map[string]any{"processed": true, "profile_id": profileID}).Error
}

func (r *OnboardingResponseRepositoryImpl) ListUnprocessed(ctx context.Context, limit int) ([]*OnboardingResponse, error) {
	if limit <= 0 {
		limit = 50
	}
	var out []*OnboardingResponse
	if err := r.db.DB.WithContext(ctx).
		Where("processed = ?", false).
		Order("created_at ASC").
		Limit(limit).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
