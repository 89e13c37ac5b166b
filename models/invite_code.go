package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// InviteCode is one beta invitation code. EmailSentTo tracks every address
// the code has been emailed to; it gates reminder eligibility.
type InviteCode struct {
	ID          string         `gorm:"type:uuid;primaryKey" json:"id"`
	Code        string         `gorm:"type:varchar(64);uniqueIndex;not null" json:"code"`
	IsUsed      bool           `gorm:"default:false" json:"is_used"`
	UsedBy      *string        `gorm:"type:uuid" json:"used_by"`
	UsedAt      *time.Time     `json:"used_at"`
	CreatedAt   time.Time      `json:"created_at"`
	ExpiresAt   *time.Time     `json:"expires_at,omitempty"`
	MaxUses     int            `gorm:"default:1" json:"max_uses"`
	CurrentUses int            `gorm:"default:0" json:"current_uses"`
	EmailSentTo pq.StringArray `gorm:"type:text[]" json:"email_sent_to"`

	// RecipientName is resolved from user_profiles for used codes. Display
	// only, never stored.
	RecipientName *string `gorm:"-" json:"recipient_name,omitempty"`
}

func (c *InviteCode) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// IsExpired reports whether the code's expiry timestamp lies before now.
// Codes without an expiry never expire.
func (c *InviteCode) IsExpired(now time.Time) bool {
	return c.ExpiresAt != nil && c.ExpiresAt.Before(now)
}

// WasSentTo reports whether the code has already been emailed to addr.
func (c *InviteCode) WasSentTo(addr string) bool {
	for _, sent := range c.EmailSentTo {
		if sent == addr {
			return true
		}
	}
	return false
}

// TableName sets the table name.
func (InviteCode) TableName() string {
	return "invite_codes"
}
