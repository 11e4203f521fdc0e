package config

import (
	"errors"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string
	DBSSLMode  string
	AppPort    string
	AppEnv     string

	JWTSecret            string
	JWTRefreshSecret     string
	JWTExpiresIn         time.Duration
	JWTRefreshExpiresIn  time.Duration
	CORSOrigin           string
	InternalSecretKey    string
	RabbitMQURL          string
	PaymentAPIURL        string
	PaymentClientID      string
	PaymentClientSecret  string
	PaymentCallbackToken string
}

var (
	ErrMissingDBHost    = errors.New("DB_HOST is not set")
	ErrMissingJWTSecret = errors.New("JWT_SECRET is not set")
)

// LoadConfig reads .env (when present) and the process environment.
func LoadConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		DBHost:               os.Getenv("DB_HOST"),
		DBUser:               os.Getenv("DB_USER"),
		DBPassword:           os.Getenv("DB_PASSWORD"),
		DBName:               os.Getenv("DB_NAME"),
		DBPort:               getEnv("DB_PORT", "5432"),
		DBSSLMode:            getEnv("DB_SSLMODE", "disable"),
		AppPort:              getEnv("APP_PORT", "8080"),
		AppEnv:               getEnv("APP_ENV", "development"),
		JWTSecret:            os.Getenv("JWT_SECRET"),
		JWTRefreshSecret:     os.Getenv("JWT_REFRESH_SECRET"),
		JWTExpiresIn:         getDuration("JWT_EXPIRES_IN", 24*time.Hour),
		JWTRefreshExpiresIn:  getDuration("JWT_REFRESH_EXPIRES_IN", 30*24*time.Hour),
		CORSOrigin:           getEnv("CORS_ORIGIN", "http://localhost:3000"),
		InternalSecretKey:    os.Getenv("INTERNAL_SECRET_KEY"),
		RabbitMQURL:          os.Getenv("RABBITMQ_URL"),
		PaymentAPIURL:        getEnv("PAYMENT_API_URL", "https://api-m.sandbox.paypal.com"),
		PaymentClientID:      os.Getenv("PAYMENT_CLIENT_ID"),
		PaymentClientSecret:  os.Getenv("PAYMENT_CLIENT_SECRET"),
		PaymentCallbackToken: os.Getenv("PAYMENT_CALLBACK_TOKEN"),
	}

	if cfg.JWTRefreshSecret == "" {
		cfg.JWTRefreshSecret = cfg.JWTSecret
	}

	return cfg
}

// Validate reports the first setting the server cannot start without.
func (c *Config) Validate() error {
	if c.DBHost == "" {
		return ErrMissingDBHost
	}
	if c.JWTSecret == "" {
		return ErrMissingJWTSecret
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
