package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	ServerPort string `mapstructure:"SERVER_PORT"`
	BaseURL    string `mapstructure:"BASE_URL"`

	MongoURI     string `mapstructure:"MONGODB_URI"`
	MongoDBName  string `mapstructure:"MONGO_DB_NAME"`
	MongoMaxPool uint64 `mapstructure:"MONGO_MAX_POOL"`
	MongoMinPool uint64 `mapstructure:"MONGO_MIN_POOL"`

	RedisAddr     string        `mapstructure:"REDIS_ADDR"`
	RedisPassword string        `mapstructure:"REDIS_PASSWORD"`
	CacheTTL      time.Duration `mapstructure:"CART_CACHE_TTL"`

	JWTSecret string        `mapstructure:"JWT_SECRET"`
	TokenTTL  time.Duration `mapstructure:"TOKEN_TTL"`

	SMTPHost     string `mapstructure:"SMTP_HOST"`
	SMTPPort     int    `mapstructure:"SMTP_PORT"`
	SMTPUser     string `mapstructure:"SMTP_USER"`
	SMTPPassword string `mapstructure:"SMTP_PASSWORD"`
	MailFrom     string `mapstructure:"MAIL_FROM"`

	RequestTimeout time.Duration `mapstructure:"REQUEST_TIMEOUT"`
}

// Load reads configuration from the given .env file (if present) and the
// process environment. The result is an explicit value to be passed around,
// not an ambient singleton.
func Load(path string) (*Config, error) {
	v := viper.New()

	// Defaults also register the keys so values can come from the
	// environment alone.
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("BASE_URL", "http://localhost:3000")
	v.SetDefault("MONGODB_URI", "mongodb://localhost:27017")
	v.SetDefault("MONGO_DB_NAME", "fossnflories")
	v.SetDefault("MONGO_MAX_POOL", 50)
	v.SetDefault("MONGO_MIN_POOL", 5)
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("CART_CACHE_TTL", 15*time.Minute)
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("TOKEN_TTL", 72*time.Hour)
	v.SetDefault("SMTP_HOST", "")
	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("SMTP_USER", "")
	v.SetDefault("SMTP_PASSWORD", "")
	v.SetDefault("MAIL_FROM", "")
	v.SetDefault("REQUEST_TIMEOUT", 5*time.Second)

	v.SetConfigFile(path)
	v.SetConfigType("env")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// A missing .env file is fine; the environment still applies.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	return cfg, nil
}
