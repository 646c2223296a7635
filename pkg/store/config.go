package store

import (
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"
)

// Config holds MySQL/GORM database configuration.
type Config struct {
	// DSN, when set, is used verbatim and overrides the individual
	// connection fields below.
	DSN string `json:"dsn" yaml:"dsn"`

	Host     string `json:"host" yaml:"host"`
	Port     int    `json:"port" yaml:"port"`
	Database string `json:"database" yaml:"database"`
	Username string `json:"username" yaml:"username"`
	Password string `json:"password" yaml:"password"`

	Charset  string `json:"charset" yaml:"charset"`
	TimeZone string `json:"timezone" yaml:"timezone"`

	MaxOpenConns    int           `json:"max_open_conns" yaml:"max_open_conns"`
	MaxIdleConns    int           `json:"max_idle_conns" yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `json:"conn_max_lifetime" yaml:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `json:"conn_max_idle_time" yaml:"conn_max_idle_time"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `json:"log_level" yaml:"log_level"`
}

// DefaultConfig returns a database configuration with local-development
// defaults.
func DefaultConfig() *Config {
	return &Config{
		Host:            "localhost",
		Port:            3306,
		Database:        "storefront",
		Username:        "storefront",
		Password:        "storefront",
		Charset:         "utf8mb4",
		TimeZone:        "UTC",
		MaxOpenConns:    25,
		MaxIdleConns:    5,
		ConnMaxLifetime: time.Hour,
		ConnMaxIdleTime: 30 * time.Minute,
		LogLevel:        "warn",
	}
}

// Validate checks if the database configuration is valid.
func (c *Config) Validate() error {
	if c.DSN != "" {
		return nil
	}
	if c.Host == "" {
		return fmt.Errorf("database host is required")
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("database port must be between 1 and 65535, got %d", c.Port)
	}
	if c.Database == "" {
		return fmt.Errorf("database name is required")
	}
	if c.Username == "" {
		return fmt.Errorf("database username is required")
	}
	if c.MaxOpenConns < 1 {
		return fmt.Errorf("max_open_conns must be at least 1")
	}
	if c.MaxIdleConns > c.MaxOpenConns {
		return fmt.Errorf("max_idle_conns cannot be greater than max_open_conns")
	}
	return nil
}

// GetDSN builds the MySQL connection string.
func (c *Config) GetDSN() string {
	if c.DSN != "" {
		return c.DSN
	}

	cfg := mysql.NewConfig()
	cfg.User = c.Username
	cfg.Passwd = c.Password
	cfg.Net = "tcp"
	cfg.Addr = fmt.Sprintf("%s:%d", c.Host, c.Port)
	cfg.DBName = c.Database
	cfg.ParseTime = true
	cfg.Params = map[string]string{
		"charset": c.Charset,
		"loc":     c.TimeZone,
	}
	return cfg.FormatDSN()
}
