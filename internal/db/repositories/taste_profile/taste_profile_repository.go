package taste_profile

import (
	"context"
	"errors"

	"github.com/MyelinBots/connectmap-go/internal/db"
	"gorm.io/gorm"
)

type TasteProfileRepository interface {
	Create(ctx context.Context, p *TasteProfile) error
	GetByID(ctx context.Context, id string) (*TasteProfile, error)
	// GetLatestByUser returns the most recently created profile for the user.
	GetLatestByUser(ctx context.Context, userID string) (*TasteProfile, error)
}

type TasteProfileRepositoryImpl struct {
	db *db.DB
}

func NewTasteProfileRepository(database *db.DB) TasteProfileRepository {
	return &TasteProfileRepositoryImpl{db: database}
}

func (r *TasteProfileRepositoryImpl) Create(ctx context.Context, p *TasteProfile) error {
	return r.db.DB.WithContext(ctx).Create(p).Error
}

func (r *TasteProfileRepositoryImpl) GetByID(ctx context.Context, id string) (*TasteProfile, error) {
	var p TasteProfile
	err := r.db.DB.WithContext(ctx).Where("id = ?", id).First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *TasteProfileRepositoryImpl) GetLatestByUser(ctx context.Context, userID string) (*TasteProfile, error) {
	var p TasteProfile
	err := r.db.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}
