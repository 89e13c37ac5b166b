package models

import (
	"time"

	"gorm.io/gorm"
)

// Activity is one entry in the admin activity feed.
// @Description A recorded admin action
type Activity struct {
	ID        uint           `json:"id" gorm:"primarykey" example:"1"`
	Type      string         `json:"type" gorm:"type:varchar(50);not null" example:"code" description:"activity type (code/email/waitlist/system)"`
	Content   string         `json:"content" gorm:"type:text;not null" example:"Generated 5 invite codes" description:"activity content"`
	CreatedAt time.Time      `json:"created_at" example:"2025-08-20T15:04:05Z" description:"creation time"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (Activity) TableName() string {
	return "activities"
}
