package config

import (
	"errors"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Env      string
	LogLevel string
	HTTPAddr string

	// Local cache files (day-keyed check-in records, subscription mirror).
	CheckinsFile      string
	SubscriptionsFile string

	// Remote mirror backend: postgres, redis, or none (local-only mode).
	RemoteBackend string
	PostgresDSN   string
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Identity collaborator.
	JWTSecret      string
	AuthServiceURL string

	// Purchase-management collaborator.
	StripeSecretKey     string
	StripeWebhookSecret string
	StripePriceID       string

	WelcomeWindow   time.Duration
	DefaultTimezone string
}

var (
	cfg  *Config
	once sync.Once
)

func Load() *Config {
	once.Do(func() {
		_ = godotenv.Load()

		v := viper.New()
		v.AutomaticEnv()
		v.SetDefault("APP_ENV", "development")
		v.SetDefault("LOG_LEVEL", "info")
		v.SetDefault("HTTP_ADDR", ":8090")
		v.SetDefault("CHECKINS_FILE", "data/checkins.json")
		v.SetDefault("SUBSCRIPTIONS_FILE", "data/subscriptions.json")
		v.SetDefault("REMOTE_BACKEND", "none")
		v.SetDefault("REDIS_DB", 0)
		v.SetDefault("WELCOME_WINDOW_HOURS", 24)
		v.SetDefault("DEFAULT_TIMEZONE", "UTC")

		cfg = &Config{
			Env:                 v.GetString("APP_ENV"),
			LogLevel:            v.GetString("LOG_LEVEL"),
			HTTPAddr:            v.GetString("HTTP_ADDR"),
			CheckinsFile:        v.GetString("CHECKINS_FILE"),
			SubscriptionsFile:   v.GetString("SUBSCRIPTIONS_FILE"),
			RemoteBackend:       v.GetString("REMOTE_BACKEND"),
			PostgresDSN:         v.GetString("POSTGRES_DSN"),
			RedisAddr:           v.GetString("REDIS_ADDR"),
			RedisPassword:       v.GetString("REDIS_PASSWORD"),
			RedisDB:             v.GetInt("REDIS_DB"),
			JWTSecret:           v.GetString("JWT_SECRET"),
			AuthServiceURL:      v.GetString("AUTH_SERVICE_URL"),
			StripeSecretKey:     v.GetString("STRIPE_SECRET_KEY"),
			StripeWebhookSecret: v.GetString("STRIPE_WEBHOOK_SECRET"),
			StripePriceID:       v.GetString("STRIPE_PRICE_ID"),
			WelcomeWindow:       time.Duration(v.GetInt("WELCOME_WINDOW_HOURS")) * time.Hour,
			DefaultTimezone:     v.GetString("DEFAULT_TIMEZONE"),
		}
		if err := cfg.Validate(); err != nil {
			panic("Invalid config: " + err.Error())
		}
	})
	return cfg
}

func (c *Config) Validate() error {
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return errors.New("APP_ENV must be one of: development, staging, production")
	}
	switch c.RemoteBackend {
	case "postgres":
		if c.PostgresDSN == "" {
			return errors.New("POSTGRES_DSN is required when REMOTE_BACKEND=postgres")
		}
	case "redis":
		if c.RedisAddr == "" {
			return errors.New("REDIS_ADDR is required when REMOTE_BACKEND=redis")
		}
	case "none":
	default:
		return errors.New("REMOTE_BACKEND must be one of: postgres, redis, none")
	}
	if c.CheckinsFile == "" || c.SubscriptionsFile == "" {
		return errors.New("CHECKINS_FILE and SUBSCRIPTIONS_FILE must be set")
	}
	if c.Env != "development" && c.AuthServiceURL == "" {
		return errors.New("AUTH_SERVICE_URL is required outside development")
	}
	if c.WelcomeWindow <= 0 {
		return errors.New("WELCOME_WINDOW_HOURS must be positive")
	}
	return nil
}
