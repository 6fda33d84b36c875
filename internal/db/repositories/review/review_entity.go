package review

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Review struct {
	ID        string    `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	PlaceID   string    `gorm:"column:place_id;type:uuid;not null;index" json:"placeId"`
	UserID    string    `gorm:"column:user_id;not null" json:"userId"`
	Rating    int       `gorm:"column:rating;not null" json:"rating"`
	Text      string    `gorm:"column:text;not null;default:''" json:"text"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
}

func (Review) TableName() string {
	return "reviews"
}

func (r *Review) BeforeCreate(*gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
