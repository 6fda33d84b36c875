package category

import (
	"context"
	"errors"
	"strings"

	"github.com/MyelinBots/connectmap-go/internal/db"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CategoryRepository interface {
	List(ctx context.Context) ([]*Category, error)
	Get(ctx context.Context, id string) (*Category, error)
	// Upsert inserts the category or replaces its label and emoji.
	Upsert(ctx context.Context, c *Category) error
	Delete(ctx context.Context, id string) (bool, error)
}

type CategoryRepositoryImpl struct {
	db *db.DB
}

func NewCategoryRepository(database *db.DB) CategoryRepository {
	return &CategoryRepositoryImpl{db: database}
}

func norm(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

func (r *CategoryRepositoryImpl) List(ctx context.Context) ([]*Category, error) {
	var out []*Category
	if err := r.db.DB.WithContext(ctx).Order("label ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *CategoryRepositoryImpl) Get(ctx context.Context, id string) (*Category, error) {
	var c Category
	err := r.db.DB.WithContext(ctx).Where("id = ?", norm(id)).First(&c).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *CategoryRepositoryImpl) Upsert(ctx context.Context, c *Category) error {
	c.ID = norm(c.ID)
	return r.db.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"label", "emoji"}),
		}).
		Create(c).Error
}

func (r *CategoryRepositoryImpl) Delete(ctx context.Context, id string) (bool, error) {
	res := r.db.DB.WithContext(ctx).Where("id = ?", norm(id)).Delete(&Category{})
	return res.RowsAffected > 0, res.Error
}
