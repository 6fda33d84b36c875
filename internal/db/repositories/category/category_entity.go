package category

import "time"

type Category struct {
	ID        string    `gorm:"column:id;primaryKey" json:"id"`
	Label     string    `gorm:"column:label;not null" json:"label"`
	Emoji     string    `gorm:"column:emoji;not null;default:''" json:"emoji"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
}

func (Category) TableName() string {
	return "categories"
}
