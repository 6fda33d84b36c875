package review

import (
	"context"

	"github.com/MyelinBots/connectmap-go/internal/db"
)

type ReviewRepository interface {
	Create(ctx context.Context, r *Review) error
	ListByPlace(ctx context.Context, placeID string, limit int) ([]*Review, error)
}

type ReviewRepositoryImpl struct {
	db *db.DB
}

func NewReviewRepository(database *db.DB) ReviewRepository {
	return &ReviewRepositoryImpl{db: database}
}

func (r *ReviewRepositoryImpl) Create(ctx context.Context, rv *Review) error {
	return r.db.DB.WithContext(ctx).Create(rv).Error
}

func (r *ReviewRepositoryImpl) ListByPlace(ctx context.Context, placeID string, limit int) ([]*Review, error) {
	if limit <= 0 {
		limit = 50
	}
	var out []*Review
	if err := r.db.DB.WithContext(ctx).
		Where("place_id = ?", placeID).
		Order("created_at DESC").
		Limit(limit).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
