package common

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server ServerConfig
	Store  StoreConfig
	Auth   AuthConfig
	OCR    OCRConfig
	Rates  RatesConfig
}

type ServerConfig struct {
	Addr           string
	MaxUploadBytes int64
}

type StoreConfig struct {
	// Path to the SQLite database file; ":memory:" for ephemeral runs.
	Path string
	// Optional YAML file overriding the default category taxonomy.
	TaxonomyPath string
}

type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
}

type OCRConfig struct {
	Pdftotext     string
	Tesseract     string
	TesseractLang string
}

type RatesConfig struct {
	URL string
	TTL time.Duration
}

// LoadConfig loads configuration from environment variables.
func LoadConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:           getEnv("HTTP_ADDR", ":5000"),
			MaxUploadBytes: getEnvAsInt64("MAX_UPLOAD_BYTES", 20<<20),
		},
		Store: StoreConfig{
			Path:         getEnv("DB_PATH", "profitcalc.db"),
			TaxonomyPath: getEnv("TAXONOMY_PATH", ""),
		},
		Auth: AuthConfig{
			JWTSecret: getEnv("JWT_SECRET", ""),
			TokenTTL:  getEnvAsDuration("TOKEN_TTL", 24*time.Hour),
		},
		OCR: OCRConfig{
			Pdftotext:     getEnv("PDFTOTEXT_BIN", "pdftotext"),
			Tesseract:     getEnv("TESSERACT_BIN", "tesseract"),
			TesseractLang: getEnv("TESSERACT_LANG", "eng"),
		},
		Rates: RatesConfig{
			URL: getEnv("RATES_URL", "https://api.exchangerate-api.com/v4/latest/USD"),
			TTL: getEnvAsDuration("RATES_TTL", 24*time.Hour),
		},
	}
}

// Validate checks the loaded configuration for required values.
func (c *Config) Validate() error {
	if c.Auth.JWTSecret == "" {
		return NewAppError("CONFIG_ERROR", "JWT_SECRET is required", ErrInvalidInput)
	}
	if c.Server.Addr == "" {
		return NewAppError("CONFIG_ERROR", "HTTP_ADDR is required", ErrInvalidInput)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
