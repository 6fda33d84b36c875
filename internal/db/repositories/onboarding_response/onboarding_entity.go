package onboarding_response

import (
	"time"

	"github.com/MyelinBots/connectmap-go/internal/services/tasteprofile"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OnboardingResponse is the raw survey as submitted.
type OnboardingResponse struct {
	ID        string                           `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	UserID    string                           `gorm:"column:user_id;not null;index" json:"userId"`
	Responses tasteprofile.OnboardingResponses `gorm:"column:responses;type:jsonb;serializer:json;not null" json:"responses"`
	Processed bool                             `gorm:"column:processed;not null;default:false" json:"processed"`
	ProfileID string                           `gorm:"column:profile_id;not null;default:''" json:"profileId,omitempty"`
	CreatedAt time.Time                        `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time                        `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (OnboardingResponse) TableName() string {
	return "onboarding_responses"
}

func (o *OnboardingResponse) BeforeCreate(*gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}
