package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all configuration for the application.
type Config struct {
	Server    ServerConfig
	DB        DBConfig
	Log       LogConfig
	Auth      AuthConfig
	Deals     DealsConfig
	Storage   StorageConfig
	RateLimit RateLimitConfig
	Telegram  TelegramConfig
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Port            string `envconfig:"SERVER_PORT" default:"3000"`
	ShutdownTimeout int    `envconfig:"SHUTDOWN_TIMEOUT" default:"30"` // seconds
	SnowflakeNode   int64  `envconfig:"SNOWFLAKE_NODE" default:"1"`
}

// DBConfig holds database-related configuration.
// WARNING: Default password is for local development only.
// In production, always set DB_PASSWORD via environment variable.
// In production, set DB_SSLMODE to "require" or "verify-full".
type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     int    `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" default:"postgres"`
	Password string `envconfig:"DB_PASSWORD" default:"postgres"` // CHANGE IN PRODUCTION
	Name     string `envconfig:"DB_NAME" default:"deals_db"`
	SSLMode  string `envconfig:"DB_SSLMODE" default:"disable"` // Use "require" in production
	MaxConns int    `envconfig:"DB_MAX_CONNS" default:"25"`
	MinConns int    `envconfig:"DB_MIN_CONNS" default:"5"`
}

// DSN returns the PostgreSQL connection string.
func (c DBConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s&pool_max_conns=%d&pool_min_conns=%d",
		c.User, c.Password, c.Host, c.Port, c.Name, c.SSLMode, c.MaxConns, c.MinConns)
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `envconfig:"LOG_LEVEL" default:"info"`
	Pretty bool   `envconfig:"LOG_PRETTY" default:"false"`
}

// AuthConfig holds session and admin credentials.
// An empty ADMIN_PASSWORD_HASH disables admin login.
type AuthConfig struct {
	AdminPasswordHash string        `envconfig:"ADMIN_PASSWORD_HASH"`
	JWTSecret         string        `envconfig:"JWT_SECRET"`
	SessionTTL        time.Duration `envconfig:"SESSION_TTL" default:"12h"`
}

// DealsConfig holds marketplace rules.
type DealsConfig struct {
	PricingRuleset       string   `envconfig:"PRICING_RULESET" default:"four_tier"`
	LeadRevenue          int64    `envconfig:"LEAD_REVENUE" default:"1000"` // paise
	Locations            []string `envconfig:"DEAL_LOCATIONS" default:"Raja Park,Malviya Nagar,C-Scheme,Vaishali Nagar,Mansarovar"`
	DashboardRecentLimit int      `envconfig:"DASHBOARD_RECENT_LIMIT" default:"50"`
}

// StorageConfig holds where uploaded images live and how they are served.
type StorageConfig struct {
	Dir       string `envconfig:"STORAGE_DIR" default:"./uploads"`
	PublicURL string `envconfig:"STORAGE_PUBLIC_URL" default:"http://localhost:3000"`
}

// RateLimitConfig throttles reservations per client IP.
type RateLimitConfig struct {
	ReservePerMinute int `envconfig:"RESERVE_RATE_PER_MINUTE" default:"30"`
	ReserveBurst     int `envconfig:"RESERVE_BURST" default:"5"`
}

// TelegramConfig enables operator lead notifications when both values are set.
type TelegramConfig struct {
	BotToken string `envconfig:"TELEGRAM_BOT_TOKEN"`
	ChatID   int64  `envconfig:"TELEGRAM_CHAT_ID"`
}

// Enabled reports whether notifications are configured.
func (c TelegramConfig) Enabled() bool {
	return c.BotToken != "" && c.ChatID != 0
}

// Load parses environment variables into the Config struct.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
