package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database  DatabaseConfig
	JWT       JWTConfig
	App       AppConfig
	Storage   StorageConfig
	Geocoder  GeocoderConfig
	Redis     RedisConfig
	SMTP      SMTPConfig
	Bootstrap BootstrapConfig
	Cron      CronConfig
}

type DatabaseConfig struct {
	Host          string
	Port          int
	User          string
	Password      string
	Name          string
	SSLMode       string
	MigrateOnBoot bool
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret            string
	RefreshExpiration string
	AccessExpiration  string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port           int
	Env            string
	LogLevel       string
	Timezone       string
	AllowedOrigins []string
	// ClockRateLimit is the number of clock-in/out requests per minute allowed per user.
	ClockRateLimit int
}

type StorageConfig struct {
	Type     string
	BasePath string
	BaseURL  string
}

type GeocoderConfig struct {
	Enabled       bool
	BaseURL       string
	Language      string
	Timeout       time.Duration
	RatePerSecond float64
	CacheTTL      time.Duration
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// SMTPConfig is optional. An empty Host disables mail.
type SMTPConfig struct {
	Host       string
	Port       int
	Username   string
	Password   string
	From       string
	FromName   string
	Recipients []string
}

// BootstrapConfig seeds the first administrator when none exists.
type BootstrapConfig struct {
	AdminEmail    string
	AdminPassword string
	AdminName     string
}

type CronConfig struct {
	Enabled bool
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Warn("No .env file found, reading configuration from environment")
	}

	config := &Config{}

	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:          getEnv("DB_HOST", "localhost"),
		Port:          dbPort,
		User:          getEnv("DB_USER", "postgres"),
		Password:      getEnv("DB_PASSWORD", ""),
		Name:          getEnv("DB_NAME", "ojt_attendance"),
		SSLMode:       getEnv("DB_SSL_MODE", "disable"),
		MigrateOnBoot: getEnvBool("DB_MIGRATE_ON_BOOT", true),
	}

	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}
	clockRate, err := strconv.Atoi(getEnv("CLOCK_RATE_LIMIT_PER_MINUTE", "6"))
	if err != nil {
		return nil, fmt.Errorf("invalid CLOCK_RATE_LIMIT_PER_MINUTE: %w", err)
	}

	config.App = AppConfig{
		Port:           appPort,
		Env:            getEnv("APP_ENV", "development"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		Timezone:       getEnv("APP_TIMEZONE", "Asia/Manila"),
		AllowedOrigins: getEnvSlice("CORS_ALLOWED_ORIGINS", "http://localhost:3000"),
		ClockRateLimit: clockRate,
	}

	config.JWT = JWTConfig{
		Secret:            getEnv("JWT_SECRET_KEY", ""),
		RefreshExpiration: getEnv("JWT_REFRESH_EXPIRATION_TIME", "168h"),
		AccessExpiration:  getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
	}

	config.Storage = StorageConfig{
		Type:     getEnv("STORAGE_TYPE", "local"),
		BasePath: getEnv("STORAGE_BASE_PATH", "./storage"),
		BaseURL:  getEnv("STORAGE_BASE_URL", "http://localhost:8080/storage"),
	}

	geoTimeout, err := time.ParseDuration(getEnv("GEOCODER_TIMEOUT", "5s"))
	if err != nil {
		return nil, fmt.Errorf("invalid GEOCODER_TIMEOUT: %w", err)
	}
	geoTTL, err := time.ParseDuration(getEnv("GEOCODER_CACHE_TTL", "168h"))
	if err != nil {
		return nil, fmt.Errorf("invalid GEOCODER_CACHE_TTL: %w", err)
	}
	geoRate, err := strconv.ParseFloat(getEnv("GEOCODER_RATE_PER_SECOND", "1"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid GEOCODER_RATE_PER_SECOND: %w", err)
	}

	config.Geocoder = GeocoderConfig{
		Enabled:       getEnvBool("GEOCODER_ENABLED", true),
		BaseURL:       getEnv("GEOCODER_BASE_URL", "https://photon.komoot.io"),
		Language:      getEnv("GEOCODER_LANGUAGE", "en"),
		Timeout:       geoTimeout,
		RatePerSecond: geoRate,
		CacheTTL:      geoTTL,
	}

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	config.Redis = RedisConfig{
		Addr:     getEnv("REDIS_ADDR", ""),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       redisDB,
	}

	smtpPort, err := strconv.Atoi(getEnv("SMTP_PORT", "587"))
	if err != nil {
		return nil, fmt.Errorf("invalid SMTP_PORT: %w", err)
	}

	config.SMTP = SMTPConfig{
		Host:       getEnv("SMTP_HOST", ""),
		Port:       smtpPort,
		Username:   getEnv("SMTP_USERNAME", ""),
		Password:   getEnv("SMTP_PASSWORD", ""),
		From:       getEnv("SMTP_FROM", "no-reply@ojt-track.local"),
		FromName:   getEnv("SMTP_FROM_NAME", "OJT Attendance"),
		Recipients: getEnvSlice("DIGEST_RECIPIENTS", ""),
	}

	config.Bootstrap = BootstrapConfig{
		AdminEmail:    getEnv("BOOTSTRAP_ADMIN_EMAIL", ""),
		AdminPassword: getEnv("BOOTSTRAP_ADMIN_PASSWORD", ""),
		AdminName:     getEnv("BOOTSTRAP_ADMIN_NAME", "Administrator"),
	}

	config.Cron = CronConfig{
		Enabled: getEnvBool("CRON_ENABLED", true),
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if _, err := time.ParseDuration(c.JWT.AccessExpiration); err != nil {
		return fmt.Errorf("invalid JWT_ACCESS_EXPIRATION_TIME: %w", err)
	}
	if _, err := time.ParseDuration(c.JWT.RefreshExpiration); err != nil {
		return fmt.Errorf("invalid JWT_REFRESH_EXPIRATION_TIME: %w", err)
	}
	if _, err := time.LoadLocation(c.App.Timezone); err != nil {
		return fmt.Errorf("invalid APP_TIMEZONE: %w", err)
	}
	if c.App.ClockRateLimit <= 0 {
		return fmt.Errorf("CLOCK_RATE_LIMIT_PER_MINUTE must be positive")
	}
	if c.Geocoder.Enabled && c.Geocoder.RatePerSecond <= 0 {
		return fmt.Errorf("GEOCODER_RATE_PER_SECOND must be positive")
	}
	if (c.Bootstrap.AdminEmail == "") != (c.Bootstrap.AdminPassword == "") {
		return fmt.Errorf("BOOTSTRAP_ADMIN_EMAIL and BOOTSTRAP_ADMIN_PASSWORD must be set together")
	}
	return nil
}

// Location returns the application timezone. Validate guarantees it loads.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.App.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value, err := strconv.ParseBool(getEnv(key, strconv.FormatBool(fallback)))
	if err != nil {
		return fallback
	}
	return value
}

func getEnvSlice(key, fallback string) []string {
	value := getEnv(key, fallback)
	if value == "" {
		return []string{}
	}
	var result []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	return result
}
