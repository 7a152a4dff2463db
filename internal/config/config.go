package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config is the reference server configuration.
type Config struct {
	Addr       string
	DBPath     string
	LogLevel   string
	JWTSecret  string
	TokenTTL   time.Duration
	QueueLimit int
}

// ClientConfig drives the study CLI and its remote client.
type ClientConfig struct {
	APIURL          string
	TokenFile       string
	LogLevel        string
	QueueLimit      int
	SyncWorkerCount int
	SyncQueueSize   int
	RequestTimeout  time.Duration
}

// MaxQueueLimit bounds how many cards one review queue may hold.
const MaxQueueLimit = 100

// Load reads server configuration from a .env file (if present) and the
// environment, applying defaults for missing or unparsable values.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		Addr:       envOr("ADDR", ":8000"),
		DBPath:     envOr("DB_PATH", "file:ladderflash.db"),
		LogLevel:   envOr("LOG_LEVEL", "INFO"),
		JWTSecret:  envOr("JWT_SECRET", ""),
		TokenTTL:   envDurationOr("TOKEN_TTL", 30*24*time.Hour),
		QueueLimit: envIntOr("QUEUE_LIMIT", 20),
	}
}

// LoadClient reads the CLI configuration the same way Load does.
func LoadClient() ClientConfig {
	_ = godotenv.Load()

	return ClientConfig{
		APIURL:          envOr("LADDERFLASH_API_URL", "http://localhost:8000"),
		TokenFile:       envOr("LADDERFLASH_TOKEN_FILE", defaultTokenFile()),
		LogLevel:        envOr("LOG_LEVEL", "WARN"),
		QueueLimit:      envIntOr("QUEUE_LIMIT", 10),
		SyncWorkerCount: envIntOr("SYNC_WORKER_COUNT", 2),
		SyncQueueSize:   envIntOr("SYNC_QUEUE_SIZE", 64),
		RequestTimeout:  envDurationOr("REQUEST_TIMEOUT", 15*time.Second),
	}
}

// Validate reports the first invalid server setting.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Addr) == "" {
		return fmt.Errorf("ADDR cannot be empty")
	}
	if strings.TrimSpace(c.DBPath) == "" {
		return fmt.Errorf("DB_PATH cannot be empty")
	}
	if len(c.JWTSecret) < 16 {
		return fmt.Errorf("JWT_SECRET must be at least 16 characters")
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL must be positive, got %s", c.TokenTTL)
	}
	if c.QueueLimit < 1 || c.QueueLimit > MaxQueueLimit {
		return fmt.Errorf("QUEUE_LIMIT must be between 1 and %d, got %d", MaxQueueLimit, c.QueueLimit)
	}
	return validLogLevel(c.LogLevel)
}

// Validate reports the first invalid client setting.
func (c ClientConfig) Validate() error {
	if !strings.HasPrefix(c.APIURL, "http://") && !strings.HasPrefix(c.APIURL, "https://") {
		return fmt.Errorf("LADDERFLASH_API_URL must be an http(s) URL, got %q", c.APIURL)
	}
	if strings.TrimSpace(c.TokenFile) == "" {
		return fmt.Errorf("LADDERFLASH_TOKEN_FILE cannot be empty")
	}
	if c.QueueLimit < 1 || c.QueueLimit > MaxQueueLimit {
		return fmt.Errorf("QUEUE_LIMIT must be between 1 and %d, got %d", MaxQueueLimit, c.QueueLimit)
	}
	if c.SyncWorkerCount < 1 {
		return fmt.Errorf("SYNC_WORKER_COUNT must be at least 1, got %d", c.SyncWorkerCount)
	}
	if c.SyncQueueSize < 1 {
		return fmt.Errorf("SYNC_QUEUE_SIZE must be at least 1, got %d", c.SyncQueueSize)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("REQUEST_TIMEOUT must be positive, got %s", c.RequestTimeout)
	}
	return validLogLevel(c.LogLevel)
}

func validLogLevel(level string) error {
	switch strings.ToUpper(level) {
	case "DEBUG", "INFO", "WARN", "WARNING", "ERROR":
		return nil
	}
	return fmt.Errorf("LOG_LEVEL must be one of DEBUG, INFO, WARN, ERROR, got %q", level)
}

func defaultTokenFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".ladderflash-token"
	}
	return filepath.Join(home, ".ladderflash", "token")
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}

func envDurationOr(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		log.Printf("invalid value for %s=%q, using default %s", key, v, def)
	}
	return def
}
