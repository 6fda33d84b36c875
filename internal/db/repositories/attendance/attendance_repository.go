package attendance

import (
	"context"
	"errors"

	"github.com/MyelinBots/connectmap-go/internal/db"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AttendanceRepository interface {
	// Upsert records the attendance, replacing any earlier row for the same place and user.
	Upsert(ctx context.Context, a *Attendance) error
	Get(ctx context.Context, placeID, userID string) (*Attendance, error)
	Cancel(ctx context.Context, placeID, userID string) (bool, error)
	ListGoing(ctx context.Context, placeID string) ([]*Attendance, error)
	CountGoing(ctx context.Context, placeID string) (int64, error)
	ListPlaceIDsWithGoing(ctx context.Context) ([]string, error)
}

type AttendanceRepositoryImpl struct {
	db *db.DB
}

func NewAttendanceRepository(database *db.DB) AttendanceRepository {
	return &AttendanceRepositoryImpl{db: database}
}

func (r *AttendanceRepositoryImpl) Upsert(ctx context.Context, a *Attendance) error {
	if a.Status == "" {
		a.Status = StatusGoing
	}
	if a.Visibility == "" {
		a.Visibility = VisibilityFriends
	}
	return r.db.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "place_id"}, {Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"user_name", "user_avatar", "going_date", "going_time", "visibility", "status", "updated_at",
			}),
		}).
		Create(a).Error
}

func (r *AttendanceRepositoryImpl) Get(ctx context.Context, placeID, userID string) (*Attendance, error) {
	var a Attendance
	err := r.db.DB.WithContext(ctx).
		Where("place_id = ? AND user_id = ?", placeID, userID).
		First(&a).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

func (r *AttendanceRepositoryImpl) Cancel(ctx context.Context, placeID, userID string) (bool, error) {
	res := r.db.DB.WithContext(ctx).
		Model(&Attendance{}).
		Where("place_id = ? AND user_id = ? AND status <> ?", placeID, userID, StatusCancelled).
		Update("status", StatusCancelled)
	return res.RowsAffected > 0, res.Error
}

// ListGoing returns active attendees, most recent first.
func (r *AttendanceRepositoryImpl) ListGoing(ctx context.Context, placeID string) ([]*Attendance, error) {
	var out []*Attendance
	if err := r.db.DB.WithContext(ctx).
		Where("place_id = ? AND status = ?", placeID, StatusGoing).
		Order("updated_at DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *AttendanceRepositoryImpl) CountGoing(ctx context.Context, placeID string) (int64, error) {
	var n int64
	err := r.db.DB.WithContext(ctx).
		Model(&Attendance{}).
		Where("place_id = ? AND status = ?", placeID, StatusGoing).
		Count(&n).Error
	return n, err
}

func (r *AttendanceRepositoryImpl) ListPlaceIDsWithGoing(ctx context.Context) ([]string, error) {
	var ids []string
	if err := r.db.DB.WithContext(ctx).
		Model(&Attendance{}).
		Where("status = ?", StatusGoing).
		Distinct().
		Pluck("place_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}
