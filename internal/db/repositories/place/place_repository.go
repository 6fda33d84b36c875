package place

import (
	"context"
	"errors"
	"fmt"

	"github.com/MyelinBots/connectmap-go/internal/db"
	"gorm.io/gorm"
)

// Reaction kinds and their counter columns.
var reactionColumns = map[string]string{
	"like": "like_count",
	"love": "love_count",
	"save": "save_count",
}

// Box is a lat/lng bounding box, inclusive.
type Box struct {
	MinLat, MaxLat float64
	MinLng, MaxLng float64
}

type PlaceRepository interface {
	Create(ctx context.Context, p *Place) error
	GetByID(ctx context.Context, id string) (*Place, error)
	GetByIDs(ctx context.Context, ids []string) ([]*Place, error)
	ListPublished(ctx context.Context, category string, limit int) ([]*Place, error)
	ListPublishedInBox(ctx context.Context, box Box) ([]*Place, error)
	Delete(ctx context.Context, id string) error

	IncrementReaction(ctx context.Context, id, kind string) error
	// AddRating folds one more rating into avg_rating and review_count.
	AddRating(ctx context.Context, id string, rating int) error
	IncrementViews(ctx context.Context, id string) error
}

type PlaceRepositoryImpl struct {
	db *db.DB
}

func NewPlaceRepository(database *db.DB) PlaceRepository {
	return &PlaceRepositoryImpl{db: database}
}

func (r *PlaceRepositoryImpl) Create(ctx context.Context, p *Place) error {
	if p.Status == "" {
		p.Status = StatusPublished
	}
	return r.db.DB.WithContext(ctx).Create(p).Error
}

func (r *PlaceRepositoryImpl) GetByID(ctx context.Context, id string) (*Place, error) {
	var p Place
	err := r.db.DB.WithContext(ctx).Where("id = ?", id).First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *PlaceRepositoryImpl) GetByIDs(ctx context.Context, ids []string) ([]*Place, error) {
	if len(ids) == 0 {
		return []*Place{}, nil
	}
	var places []*Place
	if err := r.db.DB.WithContext(ctx).Where("id IN ?", ids).Find(&places).Error; err != nil {
		return nil, err
	}
	return places, nil
}

func (r *PlaceRepositoryImpl) ListPublished(ctx context.Context, category string, limit int) ([]*Place, error) {
	q := r.db.DB.WithContext(ctx).Where("status = ?", StatusPublished)
	if category != "" {
		q = q.Where("category = ?", category)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}

	var places []*Place
	if err := q.Order("created_at DESC").Find(&places).Error; err != nil {
		return nil, err
	}
	return places, nil
}

func (r *PlaceRepositoryImpl) ListPublishedInBox(ctx context.Context, box Box) ([]*Place, error) {
	var places []*Place
	if err := r.db.DB.WithContext(ctx).
		Where("status = ?", StatusPublished).
		Where("lat BETWEEN ? AND ?", box.MinLat, box.MaxLat).
		Where("lng BETWEEN ? AND ?", box.MinLng, box.MaxLng).
		Find(&places).Error; err != nil {
		return nil, err
	}
	return places, nil
}

func (r *PlaceRepositoryImpl) Delete(ctx context.Context, id string) error {
	return r.db.DB.WithContext(ctx).Where("id = ?", id).Delete(&Place{}).Error
}

func (r *PlaceRepositoryImpl) IncrementReaction(ctx context.Context, id, kind string) error {
	col, ok := reactionColumns[kind]
	if !ok {
		return fmt.Errorf("unknown reaction %q", kind)
	}
	return r.db.DB.WithContext(ctx).
		Model(&Place{}).
		Where("id = ?", id).
		UpdateColumn(col, gorm.Expr(col+" + 1")).Error
}

func (r *PlaceRepositoryImpl) AddRating(ctx context.Context, id string, rating int) error {
	return r.db.DB.WithContext(ctx).
		Model(&Place{}).
		Where("id = ?", id).
		UpdateColumns(map[string]any{
			"avg_rating":   gorm.Expr("(avg_rating * review_count + ?) / (review_count + 1)", float64(rating)),
			"review_count": gorm.Expr("review_count + 1"),
		}).Error
}

func (r *PlaceRepositoryImpl) IncrementViews(ctx context.Context, id string) error {
	return r.db.DB.WithContext(ctx).
		Model(&Place{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + 1")).Error
}

// IsReaction reports whether kind is a known reaction.
func IsReaction(kind string) bool {
	_, ok := reactionColumns[kind]
	return ok
}
