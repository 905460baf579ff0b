package config

import (
	"os"
	"strconv"
	"strings"
)

// Store backends
const (
	StoreGoogle = "google"
	StoreMemory = "memory"
)

type Config struct {
	Port        string
	Environment string
	CORSOrigins string
	// Spreadsheet and drive locations
	SpreadsheetID   string
	CategorySheet   string
	MetadataSheet   string
	RootFolderID    string
	CredentialsFile string
	StoreBackend    string
	// Google API client-side throttle
	GoogleRPS   float64
	GoogleBurst int
	// Access gate
	AdminPassword   string
	VisitorPassword string
	SessionSecret   string
	RedisURL        string // empty = in-memory sessions
	// Logging
	LogDir      string // empty = stdout only
	LogMaxFiles int
}

func Load() *Config {
	env := getEnv("ENVIRONMENT", "dev")

	return &Config{
		Port:            getEnv("PORT", "8080"),
		Environment:     env,
		CORSOrigins:     getEnv("CORS_ORIGINS", "http://localhost:3000"),
		SpreadsheetID:   getEnv("SPREADSHEET_ID", "1Fj2gNDdA65hcfHVj55DKZiLl-BcBKdG_QMWSLA3y9dQ"),
		CategorySheet:   getEnv("SHEET_CATEGORIES", "kategori"),
		MetadataSheet:   getEnv("SHEET_METADATA", "metadata"),
		RootFolderID:    getEnv("ROOT_FOLDER_ID", "1bB3P_f_ZtdO5BA_u9yLfA-Zy2c0kte1c"),
		CredentialsFile: getEnv("GOOGLE_CREDENTIALS_FILE", "credentials.json"),
		StoreBackend:    strings.ToLower(getEnv("STORE_BACKEND", getDefaultStore(env))),
		GoogleRPS:       getEnvFloat("GOOGLE_RPS", 8.0),
		GoogleBurst:     getEnvInt("GOOGLE_BURST", 10),
		AdminPassword:   getEnv("ADMIN_PASSWORD", "sekretaris"),
		VisitorPassword: getEnv("VISITOR_PASSWORD", "regulasirshsl"),
		SessionSecret:   getEnv("SESSION_SECRET", ""),
		RedisURL:        getEnv("REDIS_URL", ""),
		LogDir:          getEnv("LOG_DIR", ""),
		LogMaxFiles:     getEnvInt("LOG_MAX_FILES", 10),
	}
}

// getDefaultStore returns the default store backend based on environment
func getDefaultStore(env string) string {
	if env == "test" {
		return StoreMemory
	}
	return StoreGoogle
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if n, err := strconv.Atoi(os.Getenv(key)); err == nil && n > 0 {
		return n
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if f, err := strconv.ParseFloat(os.Getenv(key), 64); err == nil && f > 0 {
		return f
	}
	return defaultValue
}
