// Package config provides centralized default values for the hero block service
package config

import (
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
)

var envLoaded sync.Once

func loadEnvFile() {
	envLoaded.Do(func() {
		if _, err := os.Stat(".env"); err != nil {
			return
		}
		// godotenv.Load never overrides variables already set in the environment
		if err := godotenv.Load(); err != nil {
			log.Printf("Failed to load .env file: %v", err)
			return
		}
		log.Println("Loaded configuration overrides from .env file")
	})
}

func getEnvInt(key string, defaultValue int) int {
	if valStr := os.Getenv(key); valStr != "" {
		if val, err := strconv.Atoi(valStr); err == nil {
			if val != defaultValue {
				log.Printf("Config override: %s=%d (default: %d)", key, val, defaultValue)
			}
			return val
		}
	}
	return defaultValue
}

func getEnvString(key string, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		if val != defaultValue {
			log.Printf("Config override: %s=%s (default: %s)", key, val, defaultValue)
		}
		return val
	}
	return defaultValue
}

// getEnvSecret behaves like getEnvString without echoing the value.
func getEnvSecret(key string, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		if val != defaultValue {
			log.Printf("Config override: %s=**** (set)", key)
		}
		return val
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if valStr := os.Getenv(key); valStr != "" {
		if val, err := strconv.ParseBool(valStr); err == nil {
			if val != defaultValue {
				log.Printf("Config override: %s=%t (default: %t)", key, val, defaultValue)
			}
			return val
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if valStr := os.Getenv(key); valStr != "" {
		if val, err := time.ParseDuration(valStr); err == nil {
			if val != defaultValue {
				log.Printf("Config override: %s=%s (default: %s)", key, val, defaultValue)
			}
			return val
		}
	}
	return defaultValue
}

func getEnvList(key string, defaultValue []string) []string {
	valStr := os.Getenv(key)
	if valStr == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(valStr, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	log.Printf("Config override: %s=%v", key, out)
	return out
}

var (
	// Server Configuration
	Port               string
	ServerReadTimeout  time.Duration
	ServerWriteTimeout time.Duration
	ServerIdleTimeout  time.Duration
	AllowedOrigins     []string
	PublicBaseURL      string

	// Storage
	DataDir       string
	SQLitePath    string
	TursoEnabled  bool
	TursoDatabase string
	TursoToken    string

	// Database Pool
	DBMaxOpenConns           int
	DBMaxIdleConns           int
	DBConnMaxLifetimeMinutes int
	DBConnMaxIdleMinutes     int
	SlowQueryThreshold       time.Duration

	// Auth
	JWTSecret          string
	EditorPasswordHash string
	TokenTTL           time.Duration

	// Media
	MediaDir        string
	MediaURLPrefix  string
	MaxUploadMB     int
	RenditionWidths []int
	WebPQuality     int

	// Rendering
	VariantsFile     string
	MinifyPublished  bool
	RenderCacheTTL   time.Duration
	CleanupInterval  time.Duration
	PreviewQueueSize int

	// Notifications
	ResendAPIKey       string
	EmailFrom          string
	EmailFromName      string
	PublishNotifyEmail string

	// Logging
	LogDirectory string
	LogToFile    bool
	LogJSON      bool
	LogLevel     string
)

func init() {
	loadEnvFile()

	// Server Configuration
	Port = getEnvString("PORT", "8080")
	ServerReadTimeout = getEnvDuration("SERVER_READ_TIMEOUT", 15*time.Second)
	ServerWriteTimeout = getEnvDuration("SERVER_WRITE_TIMEOUT", 15*time.Second)
	ServerIdleTimeout = getEnvDuration("SERVER_IDLE_TIMEOUT", 60*time.Second)
	AllowedOrigins = getEnvList("ALLOWED_ORIGINS", []string{
		"http://localhost:3000",
		"http://localhost:4321",
		"http://127.0.0.1:3000",
		"http://127.0.0.1:4321",
		"http://[::1]:3000",
		"http://[::1]:4321",
	})
	PublicBaseURL = getEnvString("PUBLIC_BASE_URL", "http://localhost:8080")

	// Storage
	DataDir = getEnvString("DATA_DIR", "data")
	SQLitePath = getEnvString("SQLITE_PATH", filepath.Join(DataDir, "hero.db"))
	TursoEnabled = getEnvBool("TURSO_ENABLED", false)
	TursoDatabase = getEnvString("TURSO_DATABASE_URL", "")
	TursoToken = getEnvSecret("TURSO_AUTH_TOKEN", "")

	// Database Pool
	DBMaxOpenConns = getEnvInt("DB_MAX_OPEN_CONNS", 10)
	DBMaxIdleConns = getEnvInt("DB_MAX_IDLE_CONNS", 3)
	DBConnMaxLifetimeMinutes = getEnvInt("DB_CONN_MAX_LIFETIME_MINUTES", 30)
	DBConnMaxIdleMinutes = getEnvInt("DB_CONN_MAX_IDLE_MINUTES", 3)
	SlowQueryThreshold = getEnvDuration("SLOW_QUERY_THRESHOLD", 250*time.Millisecond)

	// Auth
	JWTSecret = getEnvSecret("JWT_SECRET", "")
	EditorPasswordHash = getEnvSecret("EDITOR_PASSWORD_HASH", "")
	TokenTTL = time.Duration(getEnvInt("TOKEN_TTL_HOURS", 24)) * time.Hour

	// Media
	MediaDir = getEnvString("MEDIA_DIR", filepath.Join(DataDir, "media"))
	MediaURLPrefix = getEnvString("MEDIA_URL_PREFIX", "/media")
	MaxUploadMB = getEnvInt("MAX_UPLOAD_MB", 10)
	RenditionWidths = []int{1920, 1280, 640}
	WebPQuality = getEnvInt("WEBP_QUALITY", 85)

	// Rendering
	VariantsFile = getEnvString("VARIANTS_FILE", "")
	MinifyPublished = getEnvBool("MINIFY_PUBLISHED", false)
	RenderCacheTTL = time.Duration(getEnvInt("RENDER_CACHE_TTL_MINUTES", 60)) * time.Minute
	CleanupInterval = time.Duration(getEnvInt("CACHE_CLEANUP_INTERVAL_MINUTES", 10)) * time.Minute
	PreviewQueueSize = getEnvInt("PREVIEW_QUEUE_SIZE", 16)

	// Notifications
	ResendAPIKey = getEnvSecret("RESEND_API_KEY", "")
	EmailFrom = getEnvString("EMAIL_FROM", "noreply@tractstack.com")
	EmailFromName = getEnvString("EMAIL_FROM_NAME", "Hero Blocks")
	PublishNotifyEmail = getEnvString("PUBLISH_NOTIFY_EMAIL", "")

	// Logging
	LogDirectory = getEnvString("LOG_DIRECTORY", "logs")
	LogToFile = getEnvBool("LOG_TO_FILE", false)
	LogJSON = getEnvBool("LOG_JSON", true)
	LogLevel = getEnvString("LOG_LEVEL", "INFO")
}
