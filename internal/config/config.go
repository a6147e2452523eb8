package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	// Server
	Env            string
	Port           string
	MaxUploadBytes int64
	// TrustedProxies lists the proxy addresses/CIDRs whose forwarding
	// headers are believed. Empty means none are.
	TrustedProxies []string

	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Sessions
	JWTSecret           string
	JWTExpirationDur    time.Duration
	SessionCookieSecure bool
	RedisURL            string

	// Document storage
	StorageBackend  string // "local" or "s3"
	StorageLocalDir string
	S3Region        string
	S3Bucket        string
	S3AccessKey     string
	S3SecretKey     string
	S3Endpoint      string

	// Reporting
	SentryDSN       string
	DisplayCurrency string
}

var appConfig *Config

// Load loads configuration from environment variables
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	config := &Config{
		Env:  getEnv("ENV", "development"),
		Port: getEnv("PORT", "8080"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "assetledger"),
		DBPassword: getEnv("DB_PASSWORD", "assetledger"),
		DBName:     getEnv("DB_NAME", "assetledger"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		JWTSecret: getEnv("JWT_SECRET", "fallback-secret-key-for-dev-only"),
		RedisURL:  getEnv("REDIS_URL", ""),

		StorageBackend:  getEnv("STORAGE_BACKEND", "local"),
		StorageLocalDir: getEnv("STORAGE_LOCAL_DIR", "./media"),
		S3Region:        getEnv("S3_REGION", "us-east-1"),
		S3Bucket:        getEnv("S3_BUCKET", "assetledger-documents"),
		S3AccessKey:     getEnv("S3_ACCESS_KEY", ""),
		S3SecretKey:     getEnv("S3_SECRET_KEY", ""),
		S3Endpoint:      getEnv("S3_ENDPOINT", ""),

		SentryDSN:       getEnv("SENTRY_DSN", ""),
		DisplayCurrency: getEnv("DISPLAY_CURRENCY", "INR"),
	}

	// Session lifetime mirrors the JWT expiry; two weeks by default.
	expStr := getEnv("JWT_EXPIRES_IN", "336h")
	expDur, err := time.ParseDuration(expStr)
	if err != nil {
		log.Printf("Warning: invalid JWT_EXPIRES_IN value '%s', falling back to 336h\n", expStr)
		expDur = 336 * time.Hour
	}
	config.JWTExpirationDur = expDur

	config.SessionCookieSecure = getEnvBool("SESSION_COOKIE_SECURE", config.Env == "production")

	// Room for a full 10MB document plus the multipart envelope and form fields.
	config.MaxUploadBytes = getEnvInt64("MAX_UPLOAD_BYTES", 32<<20)

	config.TrustedProxies = getEnvList("TRUSTED_PROXIES")

	appConfig = config
	return config, nil
}

// Get returns the application configuration
func Get() *Config {
	if appConfig == nil {
		var err error
		appConfig, err = Load()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
	}
	return appConfig
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return v
}

func getEnvInt64(key string, defaultValue int64) int64 {
	v, err := strconv.ParseInt(os.Getenv(key), 10, 64)
	if err != nil || v <= 0 {
		return defaultValue
	}
	return v
}

// getEnvList splits a comma separated variable, dropping blank entries.
func getEnvList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
