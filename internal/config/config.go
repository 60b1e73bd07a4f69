package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is built once in main and passed by reference. Nothing below the
// config package reads the process environment.
type Config struct {
	Port string `mapstructure:"port"`
	Env  string `mapstructure:"env"`

	DatabaseURL string `mapstructure:"database_url"`

	JWTSecret    string        `mapstructure:"jwt_secret"`
	JWTExpire    time.Duration `mapstructure:"jwt_expire"`
	CookieExpire time.Duration `mapstructure:"cookie_expire"`

	SMTPHost  string `mapstructure:"smtp_host"`
	SMTPPort  int    `mapstructure:"smtp_port"`
	SMTPUser  string `mapstructure:"smtp_user"`
	SMTPPass  string `mapstructure:"smtp_pass"`
	EmailFrom string `mapstructure:"email_from"`

	DBMaxOpen     int           `mapstructure:"db_max_open"`
	DBMaxIdle     int           `mapstructure:"db_max_idle"`
	DBMaxLifetime time.Duration `mapstructure:"db_max_lifetime"`
}

func (c *Config) Production() bool {
	return strings.EqualFold(c.Env, "production")
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("port", "4000")
	v.SetDefault("env", "development")
	v.SetDefault("database_url", "")
	v.SetDefault("jwt_secret", "")
	v.SetDefault("jwt_expire", "24h")
	v.SetDefault("cookie_expire", "24h")
	v.SetDefault("smtp_host", "")
	v.SetDefault("smtp_port", 587)
	v.SetDefault("smtp_user", "")
	v.SetDefault("smtp_pass", "")
	v.SetDefault("email_from", "no-reply@hotel-booking.local")
	v.SetDefault("db_max_open", 25)
	v.SetDefault("db_max_idle", 25)
	v.SetDefault("db_max_lifetime", "5m")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unable to decode environment: %w", err)
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("config: DATABASE_URL is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("config: JWT_SECRET is required")
	}

	return &cfg, nil
}
