package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

// MailConfig holds the SMTP transport settings. They are seeded from the
// environment and can be updated at runtime through the admin API, in which
// case they are persisted to config/config.json.
type MailConfig struct {
	Host        string `json:"host"`
	Port        int    `json:"port"`
	Username    string `json:"username"`
	Password    string `json:"password"`
	FromAddress string `json:"from_address"`
	FromName    string `json:"from_name"`
	UseTLS      bool   `json:"use_tls"`
}

// AdminConfig is the single admin principal allowed to use the dashboard.
// PasswordHash is a bcrypt hash; it is derived from ADMIN_PASSWORD at load
// time when ADMIN_PASSWORD_HASH is not set.
type AdminConfig struct {
	Email        string `json:"-"`
	PasswordHash string `json:"-"`
}

type Config struct {
	Mail MailConfig `json:"mail"`

	// Environment-only settings, never persisted.
	Port        string      `json:"-"`
	FrontendURL string      `json:"-"`
	Environment string      `json:"-"`
	JWTSecret   string      `json:"-"`
	Admin       AdminConfig `json:"-"`
}

var (
	config *Config
	once   sync.Once
)

// GetConfig returns the process-wide configuration, loading it on first use.
// Environment variables provide the defaults; config/config.json, when
// present, overrides the mail section.
func GetConfig() *Config {
	once.Do(func() {
		config = &Config{
			Mail: MailConfig{
				Host:        getEnv("SMTP_HOST", ""),
				Port:        getEnvInt("SMTP_PORT", 587),
				Username:    getEnv("SMTP_USER", ""),
				Password:    getEnv("SMTP_PASS", ""),
				FromAddress: getEnv("SMTP_FROM", getEnv("SMTP_USER", "")),
				FromName:    getEnv("SMTP_FROM_NAME", "Team Helium"),
				UseTLS:      getEnv("SMTP_SECURE", "true") == "true",
			},
			Port:        getEnv("PORT", "3001"),
			FrontendURL: getEnv("FRONTEND_URL", "*"),
			Environment: getEnv("ENVIRONMENT", "development"),
			JWTSecret:   getEnv("JWT_SECRET", ""),
			Admin: AdminConfig{
				Email:        getEnv("ADMIN_EMAIL", ""),
				PasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
			},
		}
		if config.Admin.PasswordHash == "" {
			if plain := os.Getenv("ADMIN_PASSWORD"); plain != "" {
				if hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost); err == nil {
					config.Admin.PasswordHash = string(hash)
				}
			}
		}
		loadConfig()
	})
	return config
}

func loadConfig() {
	if err := os.MkdirAll("config", 0755); err != nil {
		return
	}

	file, err := os.Open("config/config.json")
	if err != nil {
		return
	}
	defer file.Close()

	decoder := json.NewDecoder(file)
	if err := decoder.Decode(config); err != nil {
		return
	}
}

// SaveConfig persists the mail settings atomically via a temp file rename.
func SaveConfig() error {
	if err := os.MkdirAll("config", 0755); err != nil {
		return err
	}

	tmpFile := filepath.Join("config", "config.json.tmp")
	file, err := os.Create(tmpFile)
	if err != nil {
		return err
	}
	defer os.Remove(tmpFile)

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "    ")
	if err := encoder.Encode(config); err != nil {
		file.Close()
		return err
	}
	file.Close()

	return os.Rename(tmpFile, "config/config.json")
}

// IsDevelopment reports whether the process runs in a development context.
// Production responses hide underlying error details.
func (c *Config) IsDevelopment() bool {
	return c.Environment != "production"
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}
