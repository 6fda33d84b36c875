package submission

import (
	"time"

	"github.com/MyelinBots/connectmap-go/internal/db"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// PlaceSubmission is a user proposed place waiting for moderation.
type PlaceSubmission struct {
	ID          string        `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Title       string        `gorm:"column:title;not null" json:"title"`
	Description string        `gorm:"column:description;not null;default:''" json:"description"`
	Category    string        `gorm:"column:category;not null;default:''" json:"category"`
	Subcategory string        `gorm:"column:subcategory;not null;default:''" json:"subcategory,omitempty"`
	Tags        db.StringList `gorm:"column:tags;type:jsonb" json:"tags"`
	Lat         float64       `gorm:"column:lat;not null" json:"lat"`
	Lng         float64       `gorm:"column:lng;not null" json:"lng"`
	Address     string        `gorm:"column:address;not null;default:''" json:"address"`
	City        string        `gorm:"column:city;not null;default:''" json:"city"`
	Images      db.StringList `gorm:"column:images;type:jsonb" json:"images"`

	SubmittedBy string     `gorm:"column:submitted_by;not null" json:"submittedBy"`
	Status      string     `gorm:"column:status;not null;default:'pending';index" json:"status"`
	ReviewedBy  string     `gorm:"column:reviewed_by;not null;default:''" json:"reviewedBy,omitempty"`
	ReviewedAt  *time.Time `gorm:"column:reviewed_at" json:"reviewedAt,omitempty"`
	Notes       string     `gorm:"column:notes;not null;default:''" json:"notes,omitempty"`
	PlaceID     string     `gorm:"column:place_id;not null;default:''" json:"placeId,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (PlaceSubmission) TableName() string {
	return "place_submissions"
}

func (s *PlaceSubmission) BeforeCreate(*gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	if s.Tags == nil {
		s.Tags = db.StringList{}
	}
	if s.Images == nil {
		s.Images = db.StringList{}
	}
	return nil
}
