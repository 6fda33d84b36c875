package attendance

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusGoing      = "going"
	StatusInterested = "interested"
	StatusCancelled  = "cancelled"

	VisibilityFriends = "friends"
	VisibilityPublic  = "public"
)

type Attendance struct {
	ID         string    `gorm:"column:id;type:uuid;primaryKey" json:"attendanceId"`
	PlaceID    string    `gorm:"column:place_id;type:uuid;not null;uniqueIndex:idx_attendance_place_user,priority:1" json:"placeId"`
	UserID     string    `gorm:"column:user_id;not null;uniqueIndex:idx_attendance_place_user,priority:2" json:"userId"`
	UserName   string    `gorm:"column:user_name;not null;default:''" json:"userName"`
	UserAvatar string    `gorm:"column:user_avatar;not null;default:''" json:"userAvatar"`
	GoingDate  string    `gorm:"column:going_date;not null;default:''" json:"goingDate,omitempty"`
	GoingTime  string    `gorm:"column:going_time;not null;default:''" json:"goingTime,omitempty"`
	Visibility string    `gorm:"column:visibility;not null;default:'friends'" json:"visibility"`
	Status     string    `gorm:"column:status;not null;default:'going'" json:"status"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (Attendance) TableName() string {
	return "place_attendances"
}

func (a *Attendance) BeforeCreate(*gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
