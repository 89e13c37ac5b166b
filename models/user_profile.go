package models

// UserProfile mirrors the identity service's profile table. It is only read
// to resolve display names for redeemed codes; this service never writes it.
type UserProfile struct {
	UserID        string  `gorm:"type:uuid;primaryKey" json:"user_id"`
	FullName      *string `gorm:"type:varchar(255)" json:"full_name"`
	PreferredName *string `gorm:"type:varchar(255)" json:"preferred_name"`
}

// DisplayName returns the preferred name when set, falling back to the full
// name.
func (p *UserProfile) DisplayName() string {
	if p.PreferredName != nil && *p.PreferredName != "" {
		return *p.PreferredName
	}
	if p.FullName != nil {
		return *p.FullName
	}
	return ""
}

// TableName sets the table name.
func (UserProfile) TableName() string {
	return "user_profiles"
}
