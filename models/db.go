package models

import (
	"gorm.io/gorm"
)

// DB is the global database connection.
var DB *gorm.DB

// SetDB sets the global database connection.
func SetDB(db *gorm.DB) {
	DB = db
}
