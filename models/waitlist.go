package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// WaitlistEntry is a prospective user's signup record. Rows are created by
// the public signup form outside this service; the dashboard only reads,
// updates and deletes them.
type WaitlistEntry struct {
	ID                  string     `gorm:"type:uuid;primaryKey" json:"id"`
	FullName            string     `gorm:"type:varchar(255);not null" json:"full_name"`
	Email               string     `gorm:"type:varchar(255);not null" json:"email"`
	Company             *string    `gorm:"type:varchar(255)" json:"company"`
	Reference           *string    `gorm:"type:varchar(255)" json:"reference"`
	ReferralSource      *string    `gorm:"type:varchar(255)" json:"referral_source"`
	ReferralSourceOther *string    `gorm:"type:varchar(255)" json:"referral_source_other"`
	UserAgent           *string    `gorm:"type:text" json:"user_agent"`
	IPAddress           *string    `gorm:"type:varchar(64)" json:"ip_address"`
	JoinedAt            time.Time  `gorm:"autoCreateTime" json:"joined_at"`
	NotifiedAt          *time.Time `json:"notified_at"`
	IsNotified          bool       `gorm:"default:false" json:"is_notified"`
	PhoneNumber         string     `gorm:"type:varchar(32)" json:"phone_number"`
	CountryCode         string     `gorm:"type:varchar(8)" json:"country_code"`
}

func (w *WaitlistEntry) BeforeCreate(tx *gorm.DB) error {
	if w.ID == "" {
		w.ID = uuid.NewString()
	}
	return nil
}

// TableName sets the table name.
func (WaitlistEntry) TableName() string {
	return "waitlist"
}

// WaitlistUpdateRequest carries a partial update; only non-nil fields are
// written.
type WaitlistUpdateRequest struct {
	FullName            *string `json:"full_name"`
	Email               *string `json:"email"`
	Company             *string `json:"company"`
	Reference           *string `json:"reference"`
	ReferralSource      *string `json:"referral_source"`
	ReferralSourceOther *string `json:"referral_source_other"`
	IsNotified          *bool   `json:"is_notified"`
	PhoneNumber         *string `json:"phone_number"`
	CountryCode         *string `json:"country_code"`
}
