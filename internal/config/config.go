package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/gdugdh24/opportunity-matcher/internal/domain"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Logging  LoggingConfig
	Matching MatchingConfig
	AI       AIConfig
}

type ServerConfig struct {
	Host            string
	Port            int
	Env             string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

type DatabaseConfig struct {
	Driver   string
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
	// Path is the SQLite file, or ":memory:"
	Path string
}

type RedisConfig struct {
	Enabled       bool
	Host          string
	Port          int
	Password      string
	DB            int
	CacheTTL      time.Duration
	EventsChannel string
}

// JWTConfig protects /api/v1. An empty secret turns authentication off.
type JWTConfig struct {
	AccessSecret string
}

type LoggingConfig struct {
	Level string
	JSON  bool
}

type MatchingConfig struct {
	Threshold       int
	TopN            int
	Workers         int
	ConcurrentFetch bool
	PersistMode     string
}

type AIConfig struct {
	Enabled      bool
	GeminiAPIKey string
	Model        string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_PORT", 8080)
	v.SetDefault("ENV", "development")
	v.SetDefault("SERVER_READ_TIMEOUT", 15*time.Second)
	v.SetDefault("SERVER_WRITE_TIMEOUT", 15*time.Second)
	v.SetDefault("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second)

	v.SetDefault("DB_DRIVER", DriverPostgres)
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_PATH", "data/matcher.db")

	v.SetDefault("REDIS_ENABLED", false)
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_CACHE_TTL", 60*time.Second)
	v.SetDefault("REDIS_EVENTS_CHANNEL", "matches.computed")

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_JSON", false)

	v.SetDefault("MATCH_THRESHOLD", 40)
	v.SetDefault("MATCH_TOP_N", 10)
	v.SetDefault("MATCH_WORKERS", 8)
	v.SetDefault("MATCH_CONCURRENT_FETCH", false)
	v.SetDefault("MATCH_PERSIST_MODE", domain.PersistAppend)

	v.SetDefault("AI_ENABLED", false)
	v.SetDefault("GEMINI_MODEL", "gemini-1.5-flash")
}

// Load loads configuration from environment variables or .env file
func Load() (*Config, error) {
	return LoadFile(".env")
}

// LoadFile reads path if it exists, then lets the environment override it
func LoadFile(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetConfigFile(path)
	v.SetConfigType("env")
	v.AutomaticEnv()

	// Try to read from .env file, but don't fail if it doesn't exist
	_ = v.ReadInConfig()

	config := fromViper(v)
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func fromViper(v *viper.Viper) *Config {
	return &Config{
		Server: ServerConfig{
			Host:            v.GetString("SERVER_HOST"),
			Port:            v.GetInt("SERVER_PORT"),
			Env:             v.GetString("ENV"),
			ReadTimeout:     v.GetDuration("SERVER_READ_TIMEOUT"),
			WriteTimeout:    v.GetDuration("SERVER_WRITE_TIMEOUT"),
			ShutdownTimeout: v.GetDuration("SERVER_SHUTDOWN_TIMEOUT"),
		},
		Database: DatabaseConfig{
			Driver:   strings.ToLower(v.GetString("DB_DRIVER")),
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetInt("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			DBName:   v.GetString("DB_NAME"),
			SSLMode:  v.GetString("DB_SSL_MODE"),
			Path:     v.GetString("DB_PATH"),
		},
		Redis: RedisConfig{
			Enabled:       v.GetBool("REDIS_ENABLED"),
			Host:          v.GetString("REDIS_HOST"),
			Port:          v.GetInt("REDIS_PORT"),
			Password:      v.GetString("REDIS_PASSWORD"),
			DB:            v.GetInt("REDIS_DB"),
			CacheTTL:      v.GetDuration("REDIS_CACHE_TTL"),
			EventsChannel: v.GetString("REDIS_EVENTS_CHANNEL"),
		},
		JWT: JWTConfig{
			AccessSecret: v.GetString("JWT_ACCESS_SECRET"),
		},
		Logging: LoggingConfig{
			Level: v.GetString("LOG_LEVEL"),
			JSON:  v.GetBool("LOG_JSON"),
		},
		Matching: MatchingConfig{
			Threshold:       v.GetInt("MATCH_THRESHOLD"),
			TopN:            v.GetInt("MATCH_TOP_N"),
			Workers:         v.GetInt("MATCH_WORKERS"),
			ConcurrentFetch: v.GetBool("MATCH_CONCURRENT_FETCH"),
			PersistMode:     strings.ToLower(v.GetString("MATCH_PERSIST_MODE")),
		},
		AI: AIConfig{
			Enabled:      v.GetBool("AI_ENABLED"),
			GeminiAPIKey: v.GetString("GEMINI_API_KEY"),
			Model:        v.GetString("GEMINI_MODEL"),
		},
	}
}

// Validate validates critical configuration values
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverPostgres:
		if c.Database.Host == "" {
			return fmt.Errorf("database host is required")
		}
		if c.Database.User == "" {
			return fmt.Errorf("database user is required")
		}
		if c.Database.DBName == "" {
			return fmt.Errorf("database name is required")
		}
	case DriverSQLite:
		if c.Database.Path == "" {
			return fmt.Errorf("database path is required for sqlite")
		}
	default:
		return fmt.Errorf("unknown database driver %q", c.Database.Driver)
	}

	if c.JWT.AccessSecret != "" && len(c.JWT.AccessSecret) < 32 {
		return fmt.Errorf("JWT access secret must be at least 32 characters")
	}

	if c.Matching.Threshold < 0 || c.Matching.Threshold > 100 {
		return fmt.Errorf("match threshold must be between 0 and 100, got %d", c.Matching.Threshold)
	}
	if c.Matching.TopN < 1 {
		return fmt.Errorf("match top n must be at least 1, got %d", c.Matching.TopN)
	}
	if c.Matching.Workers < 1 {
		return fmt.Errorf("match workers must be at least 1, got %d", c.Matching.Workers)
	}
	switch c.Matching.PersistMode {
	case domain.PersistAppend, domain.PersistUpsert:
	default:
		return fmt.Errorf("unknown match persist mode %q", c.Matching.PersistMode)
	}

	if c.AI.Enabled && c.AI.GeminiAPIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY is required when AI is enabled")
	}
	return nil
}

// GetDSN returns PostgreSQL connection string
func (c *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

// GetAddr returns Redis address
func (c *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
