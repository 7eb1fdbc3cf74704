package config

import (
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds application configuration
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Mail     MailConfig
	Sweeper  SweeperConfig
	Log      LogConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port            string   `envconfig:"PORT" default:"8080"`
	Host            string   `envconfig:"HOST" default:"0.0.0.0"`
	Environment     string   `envconfig:"ENVIRONMENT" default:"development"`
	AllowedOrigins  []string `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:3000"`
	ShutdownTimeout int      `envconfig:"SHUTDOWN_TIMEOUT" default:"10"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host        string `envconfig:"DB_HOST" default:"localhost"`
	Port        string `envconfig:"DB_PORT" default:"5432"`
	User        string `envconfig:"DB_USER" default:"postgres"`
	Password    string `envconfig:"DB_PASSWORD" default:"postgres"`
	Name        string `envconfig:"DB_NAME" default:"crm_backend"`
	SSLMode     string `envconfig:"DB_SSLMODE" default:"disable"`
	MaxConns    int    `envconfig:"DB_MAX_CONNS" default:"25"`
	MinConns    int    `envconfig:"DB_MIN_CONNS" default:"5"`
	AutoMigrate bool   `envconfig:"DB_AUTO_MIGRATE" default:"false"`
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Enabled  bool   `envconfig:"REDIS_ENABLED" default:"true"`
	Host     string `envconfig:"REDIS_HOST" default:"localhost"`
	Port     string `envconfig:"REDIS_PORT" default:"6379"`
	Password string `envconfig:"REDIS_PASSWORD" default:""`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	AccessSecret  string        `envconfig:"JWT_ACCESS_SECRET" default:"your-access-secret-change-in-production"`
	RefreshSecret string        `envconfig:"JWT_REFRESH_SECRET" default:"your-refresh-secret-change-in-production"`
	AccessExpiry  time.Duration `envconfig:"JWT_ACCESS_EXPIRY" default:"15m"`
	RefreshExpiry time.Duration `envconfig:"JWT_REFRESH_EXPIRY" default:"168h"`
}

// MailConfig holds outbound mail configuration
type MailConfig struct {
	Enabled  bool   `envconfig:"MAIL_ENABLED" default:"false"`
	Host     string `envconfig:"MAIL_HOST" default:"localhost"`
	Port     int    `envconfig:"MAIL_PORT" default:"587"`
	Username string `envconfig:"MAIL_USERNAME" default:""`
	Password string `envconfig:"MAIL_PASSWORD" default:""`
	From     string `envconfig:"MAIL_FROM" default:"crm@localhost"`
}

// SweeperConfig holds meeting lifecycle sweeper configuration
type SweeperConfig struct {
	Enabled  bool          `envconfig:"SWEEPER_ENABLED" default:"true"`
	Interval time.Duration `envconfig:"SWEEPER_INTERVAL" default:"60s"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	File       string `envconfig:"LOG_FILE" default:""`
	MaxSizeMB  int    `envconfig:"LOG_MAX_SIZE_MB" default:"100"`
	MaxBackups int    `envconfig:"LOG_MAX_BACKUPS" default:"3"`
	MaxAgeDays int    `envconfig:"LOG_MAX_AGE_DAYS" default:"28"`
}

// Load loads configuration from the environment, reading .env first if present
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables or defaults")
	}

	var config Config
	if err := envconfig.Process("", &config); err != nil {
		return nil, fmt.Errorf("failed to process environment: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Server.Environment == "production" {
		if c.JWT.AccessSecret == "your-access-secret-change-in-production" ||
			c.JWT.RefreshSecret == "your-refresh-secret-change-in-production" {
			return fmt.Errorf("JWT secrets must be set in production")
		}
	}
	if c.Sweeper.Interval <= 0 {
		return fmt.Errorf("SWEEPER_INTERVAL must be positive")
	}
	return nil
}

// GetDatabaseDSN returns the database connection string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// GetRedisAddr returns the Redis address
func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", c.Redis.Host, c.Redis.Port)
}

// GetMailAddr returns the SMTP server address
func (c *Config) GetMailAddr() string {
	return fmt.Sprintf("%s:%d", c.Mail.Host, c.Mail.Port)
}
