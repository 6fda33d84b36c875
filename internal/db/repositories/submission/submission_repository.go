package submission

import (
	"context"
	"errors"
	"time"

	"github.com/MyelinBots/connectmap-go/internal/db"
	"gorm.io/gorm"
)

type SubmissionRepository interface {
	Create(ctx context.Context, s *PlaceSubmission) error
	GetByID(ctx context.Context, id string) (*PlaceSubmission, error)
	ListByStatus(ctx context.Context, status string, limit int) ([]*PlaceSubmission, error)
	ListBySubmitter(ctx context.Context, userID string) ([]*PlaceSubmission, error)
	// Resolve moves a pending submission to status. It returns false when the
	// submission was no longer pending.
	Resolve(ctx context.Context, id, status, reviewer, notes, placeID string, at time.Time) (bool, error)
}

type SubmissionRepositoryImpl struct {
	db *db.DB
}

func NewSubmissionRepository(database *db.DB) SubmissionRepository {
	return &SubmissionRepositoryImpl{db: database}
}

func (r *SubmissionRepositoryImpl) Create(ctx context.Context, s *PlaceSubmission) error {
	s.Status = StatusPending
	return r.db.DB.WithContext(ctx).Create(s).Error
}

func (r *SubmissionRepositoryImpl) GetByID(ctx context.Context, id string) (*PlaceSubmission, error) {
	var s PlaceSubmission
	err := r.db.DB.WithContext(ctx).Where("id = ?", id).First(&s).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *SubmissionRepositoryImpl) ListByStatus(ctx context.Context, status string, limit int) ([]*PlaceSubmission, error) {
	if limit <= 0 {
		limit = 100
	}
	var out []*PlaceSubmission
	if err := r.db.DB.WithContext(ctx).
		Where("status = ?", status).
		Order("created_at ASC").
		Limit(limit).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *SubmissionRepositoryImpl) ListBySubmitter(ctx context.Context, userID string) ([]*PlaceSubmission, error) {
	var out []*PlaceSubmission
	if err := r.db.DB.WithContext(ctx).
		Where("submitted_by = ?", userID).
		Order("created_at DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *SubmissionRepositoryImpl) Resolve(ctx context.Context, id, status, reviewer, notes, placeID string, at time.Time) (bool, error) {
	res := r.db.DB.WithContext(ctx).
		Model(&PlaceSubmission{}).
		Where("id = ? AND status = ?", id, StatusPending).
		Updates(map[string]any{
			"status":      status,
			"reviewed_by": reviewer,
			"reviewed_at": at,
			"notes":       notes,
			"place_id":    placeID,
		})
	return res.RowsAffected > 0, res.Error
}
