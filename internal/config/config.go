// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"entgo.io/ent/dialect"

	"github.com/gurkanbulca/teamflow/internal/database"
	"github.com/gurkanbulca/teamflow/pkg/email"
)

// Storage backends
const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
	BackendRedis    = "redis"
)

const defaultSessionSecret = "dev-session-secret-change-in-production"

type Config struct {
	Server   ServerConfig
	Storage  StorageConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Session  SessionConfig
	Security SecurityConfig
	Email    EmailConfig
}

type ServerConfig struct {
	Environment           string
	DeadlineCheckInterval time.Duration
	DeduplicateAlerts     bool
}

type StorageConfig struct {
	Backend string
}

type DatabaseConfig struct {
	Host       string
	Port       int
	User       string
	Password   string
	DBName     string
	SSLMode    string
	SQLitePath string
}

type RedisConfig struct {
	Addr      string
	Password  string
	DB        int
	KeyPrefix string
}

type SessionConfig struct {
	Backend string
	Secret  string
	TTL     time.Duration
}

type SecurityConfig struct {
	BcryptCost        int
	MinPasswordLength int
	SeedDemoUsers     bool
	EventRetention    int
}

type EmailConfig struct {
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	FromEmail    string
	FromName     string
	AppName      string
	TestingMode  bool
}

func Load() (*Config, error) {
	return &Config{
		Server: ServerConfig{
			Environment:           getEnv("ENVIRONMENT", "development"),
			DeadlineCheckInterval: getEnvAsDuration("DEADLINE_CHECK_INTERVAL", time.Minute),
			DeduplicateAlerts:     getEnvAsBool("DEDUPLICATE_ALERTS", true),
		},
		Storage: StorageConfig{
			Backend: strings.ToLower(getEnv("STORAGE_BACKEND", BackendMemory)),
		},
		Database: DatabaseConfig{
			Host:       getEnv("DB_HOST", "localhost"),
			Port:       getEnvAsInt("DB_PORT", 5432),
			User:       getEnv("DB_USER", "postgres"),
			Password:   getEnv("DB_PASSWORD", "postgres"),
			DBName:     getEnv("DB_NAME", "teamflow"),
			SSLMode:    getEnv("DB_SSL_MODE", "disable"),
			SQLitePath: getEnv("SQLITE_PATH", "teamflow.db"),
		},
		Redis: RedisConfig{
			Addr:      getEnv("REDIS_ADDR", "localhost:6379"),
			Password:  getEnv("REDIS_PASSWORD", ""),
			DB:        getEnvAsInt("REDIS_DB", 0),
			KeyPrefix: getEnv("REDIS_KEY_PREFIX", "teamflow:"),
		},
		Session: SessionConfig{
			Backend: strings.ToLower(getEnv("SESSION_BACKEND", BackendMemory)),
			Secret:  getEnv("SESSION_SECRET", defaultSessionSecret),
			TTL:     getEnvAsDuration("SESSION_TTL", 8*time.Hour),
		},
		Security: SecurityConfig{
			BcryptCost:        getEnvAsInt("BCRYPT_COST", 12),
			MinPasswordLength: getEnvAsInt("MIN_PASSWORD_LENGTH", 6),
			SeedDemoUsers:     getEnvAsBool("SEED_DEMO_USERS", true),
			EventRetention:    getEnvAsInt("SECURITY_EVENT_RETENTION", 500),
		},
		Email: EmailConfig{
			SMTPHost:     getEnv("SMTP_HOST", "localhost"),
			SMTPPort:     getEnvAsInt("SMTP_PORT", 587),
			SMTPUsername: getEnv("SMTP_USERNAME", ""),
			SMTPPassword: getEnv("SMTP_PASSWORD", ""),
			FromEmail:    getEnv("EMAIL_FROM", "noreply@teamflow.local"),
			FromName:     getEnv("EMAIL_FROM_NAME", "TeamFlow"),
			AppName:      getEnv("APP_NAME", "TeamFlow"),
			TestingMode:  getEnvAsBool("EMAIL_TESTING_MODE", false),
		},
	}, nil
}

// IsDevelopment reports whether the environment is development
func (c *Config) IsDevelopment() bool {
	return c.Server.Environment == "development"
}

// ValidateConfig checks the configuration for unusable combinations
func (c *Config) ValidateConfig() error {
	switch c.Storage.Backend {
	case BackendMemory, BackendPostgres, BackendSQLite, BackendRedis:
	default:
		return fmt.Errorf("unknown storage backend %q", c.Storage.Backend)
	}

	switch c.Session.Backend {
	case BackendMemory, BackendRedis:
	default:
		return fmt.Errorf("unknown session backend %q", c.Session.Backend)
	}

	if c.Server.DeadlineCheckInterval <= 0 {
		return fmt.Errorf("deadline check interval must be positive")
	}

	if c.Session.TTL <= 0 {
		return fmt.Errorf("session TTL must be positive")
	}

	if !c.IsDevelopment() && c.Session.Secret == defaultSessionSecret {
		return fmt.Errorf("SESSION_SECRET must be set outside development")
	}

	return nil
}

// UsesRedis reports whether any component needs a Redis connection
func (c *Config) UsesRedis() bool {
	return c.Storage.Backend == BackendRedis || c.Session.Backend == BackendRedis
}

// UsesSQL reports whether storage goes through a SQL database
func (c *Config) UsesSQL() bool {
	return c.Storage.Backend == BackendPostgres || c.Storage.Backend == BackendSQLite
}

// ToDatabaseConfig converts to the database package config
func (c *Config) ToDatabaseConfig() database.Config {
	sqlDialect := dialect.Postgres
	if c.Storage.Backend == BackendSQLite {
		sqlDialect = dialect.SQLite
	}
	return database.Config{
		Dialect:    sqlDialect,
		Host:       c.Database.Host,
		Port:       c.Database.Port,
		User:       c.Database.User,
		Password:   c.Database.Password,
		DBName:     c.Database.DBName,
		SSLMode:    c.Database.SSLMode,
		SQLitePath: c.Database.SQLitePath,
	}
}

// ToRedisConfig converts to the database package Redis config
func (c *Config) ToRedisConfig() database.RedisConfig {
	return database.RedisConfig{
		Addr:     c.Redis.Addr,
		Password: c.Redis.Password,
		DB:       c.Redis.DB,
	}
}

// ToEmailConfig converts to the email package config
func (c *Config) ToEmailConfig() *email.Config {
	return &email.Config{
		SMTPHost:     c.Email.SMTPHost,
		SMTPPort:     c.Email.SMTPPort,
		SMTPUsername: c.Email.SMTPUsername,
		SMTPPassword: c.Email.SMTPPassword,
		FromEmail:    c.Email.FromEmail,
		FromName:     c.Email.FromName,
		AppName:      c.Email.AppName,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	// Try parsing as duration string (e.g., "15m", "24h")
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}

	return defaultValue
}
