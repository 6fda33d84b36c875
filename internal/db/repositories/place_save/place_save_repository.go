package place_save

import (
	"context"

	"github.com/MyelinBots/connectmap-go/internal/db"
	"gorm.io/gorm/clause"
)

type PlaceSaveRepository interface {
	// Save returns false when the user had already saved the place.
	Save(ctx context.Context, userID, placeID string) (bool, error)
	Unsave(ctx context.Context, userID, placeID string) (bool, error)
	IsSaved(ctx context.Context, userID, placeID string) (bool, error)
	CountForPlace(ctx context.Context, placeID string) (int64, error)
	ListPlaceIDsByUser(ctx context.Context, userID string) ([]string, error)
	// ListByUsersForPlaces returns saves made by any of userIDs on any of placeIDs.
	ListByUsersForPlaces(ctx context.Context, userIDs, placeIDs []string) ([]*PlaceSave, error)
}

type PlaceSaveRepositoryImpl struct {
	db *db.DB
}

func NewPlaceSaveRepository(database *db.DB) PlaceSaveRepository {
	return &PlaceSaveRepositoryImpl{db: database}
}

func (r *PlaceSaveRepositoryImpl) Save(ctx context.Context, userID, placeID string) (bool, error) {
	res := r.db.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "place_id"}},
			DoNothing: true,
		}).
		Create(&PlaceSave{UserID: userID, PlaceID: placeID})
	return res.RowsAffected > 0, res.Error
}

func (r *PlaceSaveRepositoryImpl) Unsave(ctx context.Context, userID, placeID string) (bool, error) {
	res := r.db.DB.WithContext(ctx).
		Where("user_id = ? AND place_id = ?", userID, placeID).
		Delete(&PlaceSave{})
	return res.RowsAffected > 0, res.Error
}

func (r *PlaceSaveRepositoryImpl) IsSaved(ctx context.Context, userID, placeID string) (bool, error) {
	var n int64
	err := r.db.DB.WithContext(ctx).
		Model(&PlaceSave{}).
		Where("user_id = ? AND place_id = ?", userID, placeID).
		Count(&n).Error
	return n > 0, err
}

func (r *PlaceSaveRepositoryImpl) CountForPlace(ctx context.Context, placeID string) (int64, error) {
	var n int64
	err := r.db.DB.WithContext(ctx).
		Model(&PlaceSave{}).
		Where("place_id = ?", placeID).
		Count(&n).Error
	return n, err
}

func (r *PlaceSaveRepositoryImpl) ListPlaceIDsByUser(ctx context.Context, userID string) ([]string, error) {
	var ids []string
	if err := r.db.DB.WithContext(ctx).
		Model(&PlaceSave{}).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Pluck("place_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *PlaceSaveRepositoryImpl) ListByUsersForPlaces(ctx context.Context, userIDs, placeIDs []string) ([]*PlaceSave, error) {
	if len(userIDs) == 0 || len(placeIDs) == 0 {
		return []*PlaceSave{}, nil
	}
	var out []*PlaceSave
	if err := r.db.DB.WithContext(ctx).
		Where("user_id IN ? AND place_id IN ?", userIDs, placeIDs).
		Order("created_at ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
