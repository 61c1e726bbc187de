package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Provider exposes read access to the application configuration.
// Handlers and services depend on this interface so tests can stub it.
type Provider interface {
	GetServerAddr() string
	GetAPIURL() string
	GetAPITimeout() time.Duration
	GetSessionSecret() string
	GetDevLogin() (user, password string, enabled bool)
	GetAdminCredentials() (user, password string)
	GetCreatedBy() string
	GetLocation() *time.Location
	GetRedisAddr() string
	GetRedisPassword() string
	GetRedisDB() int
	GetMeasureCacheTTL() time.Duration
	GetActivityFeedSize() int
	GetCompanyName() string
	GetContactEmail() string
}

// Config holds all configuration for the application.
type Config struct {
	ServerAddr       string
	APIURL           string
	APITimeout       time.Duration
	SessionSecret    string
	DevLoginEnabled  bool
	DevLoginUser     string
	DevLoginPassword string
	AdminUser        string
	AdminPassword    string
	CreatedBy        string
	Location         *time.Location
	RedisAddr        string
	RedisPassword    string
	RedisDB          int
	MeasureCacheTTL  time.Duration
	ActivityFeedSize int
	CompanyName      string
	ContactEmail     string
}

// New loads configuration from environment variables.
func New() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	cfg, err := Load()
	if err != nil {
		log.Fatal(err)
	}
	return cfg
}

// Load reads the environment without touching .env files and reports
// missing or malformed values as an error.
func Load() (*Config, error) {
	cfg := &Config{
		ServerAddr:       getEnv("SERVER_ADDR", ":8080"),
		APIURL:           strings.TrimRight(os.Getenv("API_URL"), "/"),
		SessionSecret:    os.Getenv("SESSION_SECRET"),
		DevLoginUser:     getEnv("DEV_LOGIN_USER", "test"),
		DevLoginPassword: getEnv("DEV_LOGIN_PASSWORD", "test"),
		AdminUser:        getEnv("ADMIN_USER", "Admin"),
		AdminPassword:    getEnv("ADMIN_PASSWORD", "admin"),
		CreatedBy:        getEnv("PATIENT_CREATED_BY", "RY"),
		RedisAddr:        os.Getenv("REDIS_ADDR"),
		RedisPassword:    os.Getenv("REDIS_PASSWORD"),
		CompanyName:      getEnv("COMPANY_NAME", "Interpersonal Psychiatry"),
		ContactEmail:     getEnv("CONTACT_EMAIL", "info@interpersonal.com"),
	}

	if cfg.APIURL == "" || cfg.SessionSecret == "" {
		return nil, fmt.Errorf("required environment variables API_URL or SESSION_SECRET are not set")
	}

	var err error
	if cfg.APITimeout, err = getDuration("API_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	if cfg.MeasureCacheTTL, err = getDuration("MEASURE_CACHE_TTL", 5*time.Minute); err != nil {
		return nil, err
	}
	if cfg.DevLoginEnabled, err = getBool("DEV_LOGIN_ENABLED", true); err != nil {
		return nil, err
	}
	if cfg.RedisDB, err = getInt("REDIS_DB", 0); err != nil {
		return nil, err
	}
	if cfg.ActivityFeedSize, err = getInt("ACTIVITY_FEED_SIZE", 20); err != nil {
		return nil, err
	}

	tz := getEnv("DISPLAY_TIMEZONE", "Local")
	if cfg.Location, err = time.LoadLocation(tz); err != nil {
		return nil, fmt.Errorf("invalid DISPLAY_TIMEZONE %q: %w", tz, err)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return d, nil
}

func getBool(key string, fallback bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return b, nil
}

func getInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return n, nil
}

func (c *Config) GetServerAddr() string        { return c.ServerAddr }
func (c *Config) GetAPIURL() string            { return c.APIURL }
func (c *Config) GetAPITimeout() time.Duration { return c.APITimeout }
func (c *Config) GetSessionSecret() string     { return c.SessionSecret }
func (c *Config) GetDevLogin() (string, string, bool) {
	return c.DevLoginUser, c.DevLoginPassword, c.DevLoginEnabled
}
func (c *Config) GetAdminCredentials() (string, string) { return c.AdminUser, c.AdminPassword }
func (c *Config) GetCreatedBy() string                  { return c.CreatedBy }
func (c *Config) GetLocation() *time.Location {
	if c.Location == nil {
		return time.Local
	}
	return c.Location
}
func (c *Config) GetRedisAddr() string              { return c.RedisAddr }
func (c *Config) GetRedisPassword() string          { return c.RedisPassword }
func (c *Config) GetRedisDB() int                   { return c.RedisDB }
func (c *Config) GetMeasureCacheTTL() time.Duration { return c.MeasureCacheTTL }
func (c *Config) GetActivityFeedSize() int          { return c.ActivityFeedSize }
func (c *Config) GetCompanyName() string            { return c.CompanyName }
func (c *Config) GetContactEmail() string           { return c.ContactEmail }
