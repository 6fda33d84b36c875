package place_save

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PlaceSave struct {
	ID        string    `gorm:"column:id;type:uuid;primaryKey" json:"saveId"`
	PlaceID   string    `gorm:"column:place_id;type:uuid;not null;uniqueIndex:idx_place_saves_user_place,priority:2;index" json:"placeId"`
	UserID    string    `gorm:"column:user_id;not null;uniqueIndex:idx_place_saves_user_place,priority:1" json:"userId"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
}

func (PlaceSave) TableName() string {
	return "place_saves"
}

func (s *PlaceSave) BeforeCreate(*gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}
