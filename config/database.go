package config

import (
	"fmt"
	"os"

	"github.com/neuralarc-ai/helium-inviter/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// InitDB connects to the Postgres datastore and migrates the schema.
// TranslateError is enabled so unique-constraint violations surface as
// gorm.ErrDuplicatedKey and can be told apart from other insert failures.
func InitDB() (*gorm.DB, error) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			os.Getenv("DB_HOST"),
			os.Getenv("DB_USER"),
			os.Getenv("DB_PASSWORD"),
			os.Getenv("DB_NAME"),
			os.Getenv("DB_PORT"),
		)
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %v", err)
	}

	// Schema migration only, existing rows are untouched.
	err = db.AutoMigrate(
		&models.InviteCode{},
		&models.WaitlistEntry{},
		&models.UserProfile{},
		&models.Activity{},
	)
	if err != nil {
		return nil, fmt.Errorf("database migration failed: %v", err)
	}

	return db, nil
}
