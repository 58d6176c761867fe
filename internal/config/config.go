package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port        string
	DatabaseURL string
	CORSOrigins string

	// Pagination
	ItemsPerPage int

	// OTP / SMS gateway
	OTPExpiry        time.Duration
	TwilioAccountSID string
	TwilioAuthToken  string
	TwilioFromNumber string
	PhoneRegion      string // default region for parsing local numbers

	// Report letterhead
	CompanyName    string
	CompanyAddress string
	CompanyPhone   string

	DefaultCurrency string
}

func Load() *Config {
	cfg := &Config{
		Port:             getEnv("PORT", "3000"),
		DatabaseURL:      getEnv("DATABASE_URL", ""),
		CORSOrigins:      getEnv("CORS_ALLOWED_ORIGINS", "*"),
		ItemsPerPage:     getEnvInt("ITEMS_PER_PAGE", 12),
		OTPExpiry:        time.Duration(getEnvInt("OTP_EXPIRY_MINUTES", 10)) * time.Minute,
		TwilioAccountSID: getEnv("TWILIO_ACCOUNT_SID", ""),
		TwilioAuthToken:  getEnv("TWILIO_AUTH_TOKEN", ""),
		TwilioFromNumber: getEnv("TWILIO_PHONE_NUMBER", ""),
		PhoneRegion:      getEnv("PHONE_REGION", "PH"),
		CompanyName:      getEnv("COMPANY_NAME", "Inventory System"),
		CompanyAddress:   getEnv("COMPANY_ADDRESS", ""),
		CompanyPhone:     getEnv("COMPANY_PHONE", ""),
		DefaultCurrency:  getEnv("DEFAULT_CURRENCY", "PHP"),
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			getEnv("DB_HOST", "localhost"),
			getEnv("DB_USER", "postgres"),
			getEnv("DB_PASSWORD", "postgres"),
			getEnv("DB_NAME", "inventory"),
			getEnv("DB_PORT", "5432"),
		)
	}

	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
