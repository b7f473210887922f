package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Backend names the storage mechanism in effect for a deployment.
type Backend string

const (
	BackendFile Backend = "file"
	BackendKV   Backend = "kv"
	BackendSQL  Backend = "sql"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Port          string
	LogLevel      string
	ProxyHeader   string
	AdminToken    string
	UploadLimitMB int

	// Storage backend, resolved once at startup
	Backend Backend
	DataDir string

	// Hosted key-value service
	KVURL    string
	KVToken  string
	KVPrefix string

	// SQL database configuration
	DBType            string // mysql, postgres, sqlite, sqlserver
	DBHost            string
	DBPort            string
	DBDatabase        string
	DBUser            string
	DBPassword        string
	DBConnectionLimit int

	// Outbound email for contact submissions
	SMTPHost       string
	SMTPPort       int
	SMTPUsername   string
	SMTPPassword   string
	ContactFrom    string
	ContactTo      string
	ContactPersist bool

	// IP geolocation for user sessions
	GeoAPIURL  string
	GeoTimeout time.Duration

	// Analytics retention, 0 keeps everything
	AnalyticsMaxRecords int
}

// LoadEnvFile loads a .env file into the process environment.
// An empty path loads ./.env only when it exists.
func LoadEnvFile(path string) error {
	if path != "" {
		return godotenv.Load(path)
	}
	if _, err := os.Stat(".env"); err == nil {
		return godotenv.Load()
	}
	return nil
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	return LoadFrom(os.Getenv)
}

// LoadFrom loads configuration through getenv, so tools can read a second environment
func LoadFrom(getenv func(string) string) (*Config, error) {
	e := env(getenv)
	cfg := &Config{
		Port:                e.get("PORT", "3000"),
		LogLevel:            e.get("LOG_LEVEL", "info"),
		ProxyHeader:         e.get("PROXY_HEADER", ""),
		AdminToken:          e.get("ADMIN_TOKEN", ""),
		UploadLimitMB:       e.getInt("UPLOAD_LIMIT_MB", 5),
		DataDir:             e.get("DATA_DIR", "./data/store"),
		KVURL:               e.get("KV_URL", ""),
		KVToken:             e.get("KV_TOKEN", ""),
		KVPrefix:            e.get("KV_PREFIX", "bakery:"),
		DBType:              e.get("DB_TYPE", "sqlite"),
		DBHost:              e.get("DB_HOST", "localhost"),
		DBPort:              e.get("DB_PORT", ""),
		DBDatabase:          e.get("DB_DATABASE", ""),
		DBUser:              e.get("DB_USER", ""),
		DBPassword:          e.get("DB_PASSWORD", ""),
		DBConnectionLimit:   e.getInt("DB_CONNECTION_LIMIT", 5),
		SMTPHost:            e.get("SMTP_HOST", ""),
		SMTPPort:            e.getInt("SMTP_PORT", 587),
		SMTPUsername:        e.get("SMTP_USERNAME", ""),
		SMTPPassword:        e.get("SMTP_PASSWORD", ""),
		ContactFrom:         e.get("CONTACT_FROM", ""),
		ContactTo:           e.get("CONTACT_TO", ""),
		ContactPersist:      e.getBool("CONTACT_PERSIST", true),
		GeoAPIURL:           e.get("GEO_API_URL", "https://ipapi.co/%s/json/"),
		GeoTimeout:          e.getDuration("GEO_TIMEOUT", 3*time.Second),
		AnalyticsMaxRecords: e.getInt("ANALYTICS_MAX_RECORDS", 0),
	}

	backend, err := resolveBackend(e.get("STORAGE_BACKEND", ""), cfg.KVURL, cfg.KVToken)
	if err != nil {
		return nil, err
	}
	cfg.Backend = backend

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the settings the selected backend and features depend on
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendFile:
		if c.DataDir == "" {
			return fmt.Errorf("DATA_DIR is required for the file backend")
		}
	case BackendKV:
		if c.KVURL == "" || c.KVToken == "" {
			return fmt.Errorf("KV_URL and KV_TOKEN are required for the kv backend")
		}
	case BackendSQL:
		if c.DBDatabase == "" {
			return fmt.Errorf("DB_DATABASE is required for the sql backend")
		}
		if c.DBType != "sqlite" && c.DBUser == "" {
			return fmt.Errorf("DB_USER is required for %s", c.DBType)
		}
	default:
		return fmt.Errorf("unsupported storage backend: %s", c.Backend)
	}

	if c.SMTPHost != "" && c.ContactTo == "" {
		return fmt.Errorf("CONTACT_TO is required when SMTP_HOST is set")
	}
	if c.UploadLimitMB <= 0 {
		return fmt.Errorf("UPLOAD_LIMIT_MB must be positive")
	}
	if c.AnalyticsMaxRecords < 0 {
		return fmt.Errorf("ANALYTICS_MAX_RECORDS cannot be negative")
	}

	return nil
}

// MailEnabled reports whether contact submissions are emailed.
func (c *Config) MailEnabled() bool {
	return c.SMTPHost != ""
}

// resolveBackend picks the explicit backend, or kv when both credentials are present, else file.
func resolveBackend(explicit, kvURL, kvToken string) (Backend, error) {
	switch Backend(strings.ToLower(strings.TrimSpace(explicit))) {
	case "":
		if kvURL != "" && kvToken != "" {
			return BackendKV, nil
		}
		return BackendFile, nil
	case BackendFile:
		return BackendFile, nil
	case BackendKV, "redis":
		return BackendKV, nil
	case BackendSQL, "db":
		return BackendSQL, nil
	default:
		return "", fmt.Errorf("unsupported STORAGE_BACKEND: %s", explicit)
	}
}

// env reads settings through a getenv function
type env func(string) string

// get gets an environment variable or returns a default value
func (e env) get(key, defaultValue string) string {
	if value := e(key); value != "" {
		return value
	}
	return defaultValue
}

// getInt gets an environment variable as an integer or returns a default value
func (e env) getInt(key string, defaultValue int) int {
	valueStr := e(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func (e env) getBool(key string, defaultValue bool) bool {
	value, err := strconv.ParseBool(e(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func (e env) getDuration(key string, defaultValue time.Duration) time.Duration {
	value, err := time.ParseDuration(e(key))
	if err != nil || value <= 0 {
		return defaultValue
	}
	return value
}
