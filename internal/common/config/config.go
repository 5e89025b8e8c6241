// internal/common/config/config.go
package config

import "fmt"

// Config is the main application configuration struct.
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Server    ServerConfig    `mapstructure:"server"`
	AI        AIConfig        `mapstructure:"ai"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Scoring   ScoringConfig   `mapstructure:"scoring"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

// IsDevelopment reports whether the service runs in development mode.
// Development responses may carry extra error detail; production ones never do.
func (a AppConfig) IsDevelopment() bool {
	return a.Environment != "production"
}

type ServerConfig struct {
	Port         int `mapstructure:"port"`
	ReadTimeout  int `mapstructure:"read_timeout"`  // milliseconds
	WriteTimeout int `mapstructure:"write_timeout"` // milliseconds
}

// AIConfig selects the scoring provider and its credentials.
type AIConfig struct {
	Provider string `mapstructure:"provider"` // "demo", "openai" or "gemini"

	OpenAI struct {
		APIKey    string `mapstructure:"api_key"`
		Model     string `mapstructure:"model"`
		BaseURL   string `mapstructure:"base_url"`
		MaxTokens int    `mapstructure:"max_tokens"`
	} `mapstructure:"openai"`

	Gemini struct {
		APIKey string `mapstructure:"api_key"`
		Model  string `mapstructure:"model"`
	} `mapstructure:"gemini"`

	Timeout int `mapstructure:"timeout"` // milliseconds, bounds external provider calls
}

// RateLimitConfig holds the per-client sliding window settings for the
// AI endpoints.
type RateLimitConfig struct {
	WindowMs    int    `mapstructure:"window_ms"`
	MaxRequests int    `mapstructure:"max_requests"`
	Backend     string `mapstructure:"backend"` // "memory" or "redis"
}

// ScoringConfig tunes the deterministic scoring engine.
type ScoringConfig struct {
	// ReadinessBase is the starting score of the readiness evaluator.
	// The server-authoritative default is 35; 40 reproduces the legacy
	// client-side variant.
	ReadinessBase int `mapstructure:"readiness_base"`
}

type DatabaseConfig struct {
	Postgres PostgresConfig `mapstructure:"postgres"`
	Redis    RedisConfig    `mapstructure:"redis"`
}

type PostgresConfig struct {
	Enabled        bool   `mapstructure:"enabled"`
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Database       string `mapstructure:"database"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	MaxConnections int    `mapstructure:"max_connections"`
	MaxIdle        int    `mapstructure:"max_idle"`
	SSLMode        string `mapstructure:"sslmode"`
}

// GetDSN returns the PostgreSQL connection string.
func (p PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}
