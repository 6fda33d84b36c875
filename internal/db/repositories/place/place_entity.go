package place

import (
	"time"

	"github.com/MyelinBots/connectmap-go/internal/db"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusPublished = "published"
	StatusPending   = "pending"
	StatusRejected  = "rejected"
)

type Place struct {
	ID            string        `gorm:"column:id;type:uuid;primaryKey" json:"placeId"`
	Title         string        `gorm:"column:title;not null" json:"title"`
	Description   string        `gorm:"column:description;not null;default:''" json:"description"`
	Category      string        `gorm:"column:category;not null;default:'';index:idx_places_status_category,priority:2" json:"category"`
	Subcategory   string        `gorm:"column:subcategory;not null;default:''" json:"subcategory,omitempty"`
	Tags          db.StringList `gorm:"column:tags;type:jsonb" json:"tags"`
	Lat           float64       `gorm:"column:lat;not null" json:"lat"`
	Lng           float64       `gorm:"column:lng;not null" json:"lng"`
	Address       string        `gorm:"column:address;not null;default:''" json:"address"`
	City          string        `gorm:"column:city;not null;default:''" json:"city"`
	Neighbourhood string        `gorm:"column:neighbourhood;not null;default:''" json:"neighbourhood,omitempty"`
	Images        db.StringList `gorm:"column:images;type:jsonb" json:"images"`

	AvgRating   float64 `gorm:"column:avg_rating;not null;default:0" json:"avgRating"`
	ReviewCount int     `gorm:"column:review_count;not null;default:0" json:"reviewCount"`
	LikeCount   int     `gorm:"column:like_count;not null;default:0" json:"likeCount"`
	LoveCount   int     `gorm:"column:love_count;not null;default:0" json:"loveCount"`
	SaveCount   int     `gorm:"column:save_count;not null;default:0" json:"saveCount"`
	Views       int     `gorm:"column:views;not null;default:0" json:"views"`

	CreatedBy string    `gorm:"column:created_by;not null;default:''" json:"createdBy"`
	Status    string    `gorm:"column:status;not null;default:'published';index:idx_places_status_category,priority:1" json:"status"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (Place) TableName() string {
	return "places"
}

func (p *Place) BeforeCreate(*gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Tags == nil {
		p.Tags = db.StringList{}
	}
	if p.Images == nil {
		p.Images = db.StringList{}
	}
	return nil
}
