package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"time"

	"sso-server/internal/shared/utils"

	"github.com/joho/godotenv"
)

const (
	StrategyLive = "live"
	StrategyMock = "mock"
)

type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	Auth       AuthConfig
	Provider   ProviderConfig
	Frontend   FrontendConfig
	Logging    LoggingConfig
	RateLimit  RateLimitConfig
	Newsletter NewsletterConfig
}

type ServerConfig struct {
	Port         string
	Environment  string
	TrustProxy   bool
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type DatabaseConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type RedisConfig struct {
	Enabled  bool
	URL      string
	Host     string
	Port     string
	Password string
	DB       int
}

type AuthConfig struct {
	JWTSecret       string
	TokenExpiration time.Duration
}

// ProviderConfig holds the identity provider settings. Required values are
// checked by the provider constructor, not by validate, so a mock strategy
// can run without them.
type ProviderConfig struct {
	Strategy     string
	BaseURL      string
	Realm        string
	ClientID     string
	ClientSecret string
	RedirectURI  string
	HTTPTimeout  time.Duration
}

type FrontendConfig struct {
	URL        string
	NotSecured bool
	CORSDebug  bool
}

type LoggingConfig struct {
	Level      string
	JSONFormat bool
}

type RateLimitConfig struct {
	Enabled           bool
	RequestsPerSecond float64
	BurstSize         int
}

type NewsletterConfig struct {
	QueueKey string
}

// Load reads .env (when present) and the process environment into a
// validated Config.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file found, using system environment variables")
	}

	config := load()
	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

func load() *Config {
	return &Config{
		Server:     loadServerConfig(),
		Database:   loadDatabaseConfig(),
		Redis:      loadRedisConfig(),
		Auth:       loadAuthConfig(),
		Provider:   loadProviderConfig(),
		Frontend:   loadFrontendConfig(),
		Logging:    loadLoggingConfig(),
		RateLimit:  loadRateLimitConfig(),
		Newsletter: loadNewsletterConfig(),
	}
}

func loadServerConfig() ServerConfig {
	return ServerConfig{
		Port:         utils.GetEnv("SERVER_PORT", "3000"),
		Environment:  utils.GetEnv("ENVIRONMENT", "development"),
		TrustProxy:   utils.GetEnvBool("TRUST_PROXY"),
		ReadTimeout:  time.Duration(utils.GetEnvInt("SERVER_READ_TIMEOUT_SECONDS", 15)) * time.Second,
		WriteTimeout: time.Duration(utils.GetEnvInt("SERVER_WRITE_TIMEOUT_SECONDS", 15)) * time.Second,
		IdleTimeout:  time.Duration(utils.GetEnvInt("SERVER_IDLE_TIMEOUT_SECONDS", 60)) * time.Second,
	}
}

func loadDatabaseConfig() DatabaseConfig {
	return DatabaseConfig{
		Host:            utils.GetEnv("DB_HOST", "localhost"),
		Port:            utils.GetEnv("DB_PORT", "5432"),
		User:            utils.GetEnv("DB_USER", "postgres"),
		Password:        utils.GetEnv("DB_PASSWORD", "postgres"),
		Name:            utils.GetEnv("DB_NAME", "sso"),
		SSLMode:         utils.GetEnv("DB_SSLMODE", "disable"),
		MaxOpenConns:    utils.GetEnvInt("DB_MAX_OPEN_CONNS", 25),
		MaxIdleConns:    utils.GetEnvInt("DB_MAX_IDLE_CONNS", 5),
		ConnMaxLifetime: time.Duration(utils.GetEnvInt("DB_CONN_MAX_LIFETIME_MINUTES", 5)) * time.Minute,
	}
}

func loadRedisConfig() RedisConfig {
	return RedisConfig{
		Enabled:  utils.GetEnv("REDIS_ENABLED", "true") == "true",
		URL:      utils.GetEnv("REDIS_URL", ""),
		Host:     utils.GetEnv("REDIS_HOST", "localhost"),
		Port:     utils.GetEnv("REDIS_PORT", "6379"),
		Password: utils.GetEnv("REDIS_PASSWORD", ""),
		DB:       utils.GetEnvInt("REDIS_DB", 0),
	}
}

func loadAuthConfig() AuthConfig {
	// One year, matching the session cookie lifetime.
	tokenExpiration := utils.GetEnvInt("JWT_EXPIRATION_HOURS", 24*365)

	return AuthConfig{
		JWTSecret:       utils.GetEnv("JWT_SECRET", ""),
		TokenExpiration: time.Duration(tokenExpiration) * time.Hour,
	}
}

func loadProviderConfig() ProviderConfig {
	return ProviderConfig{
		Strategy:     utils.GetEnv("AUTH_PROVIDER_STRATEGY", StrategyLive),
		BaseURL:      utils.GetEnv("ONESSO_BASE_URL", ""),
		Realm:        utils.GetEnv("ONESSO_REALM", ""),
		ClientID:     utils.GetEnv("ONESSO_CLIENT_ID", ""),
		ClientSecret: utils.GetEnv("ONESSO_CLIENT_SECRET", ""),
		RedirectURI:  utils.GetEnv("ONESSO_REDIRECT_URI", ""),
		HTTPTimeout:  time.Duration(utils.GetEnvInt("ONESSO_HTTP_TIMEOUT_SECONDS", 10)) * time.Second,
	}
}

func loadFrontendConfig() FrontendConfig {
	return FrontendConfig{
		URL:        utils.GetEnv("FRONTEND_URL", "http://localhost:4200"),
		NotSecured: utils.GetEnvBool("NOT_SECURED"),
		CORSDebug:  utils.GetEnv("CORS_DEBUG", "") == "true",
	}
}

func loadLoggingConfig() LoggingConfig {
	environment := utils.GetEnv("ENVIRONMENT", "development")

	return LoggingConfig{
		Level:      utils.GetEnv("LOG_LEVEL", "debug"),
		JSONFormat: environment == "production",
	}
}

func loadRateLimitConfig() RateLimitConfig {
	requestsPerSecond, err := strconv.ParseFloat(utils.GetEnv("RATE_LIMIT_REQUESTS_PER_SECOND", "10"), 64)
	if err != nil {
		requestsPerSecond = 10
	}

	return RateLimitConfig{
		Enabled:           utils.GetEnv("RATE_LIMIT_ENABLED", "true") == "true",
		RequestsPerSecond: requestsPerSecond,
		BurstSize:         utils.GetEnvInt("RATE_LIMIT_BURST_SIZE", 20),
	}
}

func loadNewsletterConfig() NewsletterConfig {
	return NewsletterConfig{
		QueueKey: utils.GetEnv("NEWSLETTER_QUEUE_KEY", "newsletter:registrations"),
	}
}

func (c *Config) validate() error {
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}

	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("JWT_SECRET must be at least 32 characters long")
	}

	if c.Server.Port == "" {
		return fmt.Errorf("SERVER_PORT is required")
	}

	if c.Database.Host == "" {
		return fmt.Errorf("DB_HOST is required")
	}

	if c.Database.Name == "" {
		return fmt.Errorf("DB_NAME is required")
	}

	frontendURL, err := url.Parse(c.Frontend.URL)
	if err != nil || frontendURL.Scheme == "" || frontendURL.Host == "" {
		return fmt.Errorf("FRONTEND_URL must be an absolute URL, got %q", c.Frontend.URL)
	}

	if c.Provider.Strategy != StrategyLive && c.Provider.Strategy != StrategyMock {
		return fmt.Errorf("AUTH_PROVIDER_STRATEGY must be %q or %q, got %q",
			StrategyLive, StrategyMock, c.Provider.Strategy)
	}

	if c.Provider.HTTPTimeout <= 0 {
		return fmt.Errorf("ONESSO_HTTP_TIMEOUT_SECONDS must be positive")
	}

	return nil
}

func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		c.Database.SSLMode,
	)
}
