package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds the whole application configuration.
// Every field is populated from environment variables.
type Config struct {
	App    AppConfig
	Redis  RedisConfig
	JWT    JWTConfig
	Voting VotingConfig
	Admin  AdminConfig
	SMTP   SMTPConfig
	Queue  QueueConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Port        string
	Version     string
	LogLevel    string
	// CORSAllowedOrigins lists the front-end origins; "*" allows any.
	CORSAllowedOrigins []string
}

type RedisConfig struct {
	Host     string
	Password string
	DB       int
}

// JWTConfig configures admin session tokens.
type JWTConfig struct {
	Secret        string
	SessionExpiry time.Duration
	CookieSecure  bool
}

// VotingConfig controls how ballots are identified and cached.
type VotingConfig struct {
	// IdentityScheme is either "email" (guest voting) or "user"
	// (bearer token issued by the identity provider).
	IdentityScheme string
	// ProviderSecret verifies identity provider tokens when IdentityScheme is "user".
	ProviderSecret string
	// ProviderIssuer, when set, must match the iss claim of provider tokens.
	ProviderIssuer   string
	SnapshotCacheTTL time.Duration
	TallyCacheTTL    time.Duration
	// ReconcileTimeout bounds the follow-up read after an ambiguous write.
	ReconcileTimeout time.Duration
}

type AdminConfig struct {
	// PasswordHash is a bcrypt hash. Password is only used when no hash is set.
	PasswordHash string
	Password     string
}

type SMTPConfig struct {
	Host string
	Port string
	From string
}

type QueueConfig struct {
	Concurrency      int
	TallyRefreshCron string
}

const (
	IdentitySchemeEmail = "email"
	IdentitySchemeUser  = "user"

	defaultJWTSecret = "change-me-in-production"
)

// Load reads config from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:               getEnv("APP_NAME", "Impact Awards API"),
			Environment:        getEnv("APP_ENV", "development"),
			Port:               getEnv("APP_PORT", "8080"),
			Version:            getEnv("APP_VERSION", "1.0.0"),
			LogLevel:           getEnv("LOG_LEVEL", "info"),
			CORSAllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		JWT: JWTConfig{
			Secret:        getEnv("JWT_SECRET", defaultJWTSecret),
			SessionExpiry: getEnvDuration("ADMIN_SESSION_EXPIRY", 24*time.Hour),
			CookieSecure:  getEnvBool("ADMIN_COOKIE_SECURE", false),
		},
		Voting: VotingConfig{
			IdentityScheme:   strings.ToLower(getEnv("VOTER_IDENTITY_SCHEME", IdentitySchemeEmail)),
			ProviderSecret:   getEnv("IDENTITY_PROVIDER_JWT_SECRET", ""),
			ProviderIssuer:   getEnv("IDENTITY_PROVIDER_ISSUER", ""),
			SnapshotCacheTTL: getEnvDuration("BALLOT_CACHE_TTL", 5*time.Minute),
			TallyCacheTTL:    getEnvDuration("TALLY_CACHE_TTL", 2*time.Minute),
			ReconcileTimeout: getEnvDuration("VOTE_RECONCILE_TIMEOUT", 5*time.Second),
		},
		Admin: AdminConfig{
			PasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
			Password:     getEnv("ADMIN_PASSWORD", ""),
		},
		SMTP: SMTPConfig{
			Host: getEnv("SMTP_HOST", "localhost"),
			Port: getEnv("SMTP_PORT", "1025"),
			From: getEnv("SMTP_FROM", "noreply@impactawards.dev"),
		},
		Queue: QueueConfig{
			Concurrency:      getEnvInt("WORKER_CONCURRENCY", 10),
			TallyRefreshCron: getEnv("TALLY_REFRESH_CRON", "*/5 * * * *"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks settings that would otherwise fail at request time
func (c *Config) Validate() error {
	switch c.Voting.IdentityScheme {
	case IdentitySchemeEmail:
	case IdentitySchemeUser:
		if c.Voting.ProviderSecret == "" {
			return fmt.Errorf("IDENTITY_PROVIDER_JWT_SECRET must be set when VOTER_IDENTITY_SCHEME=user")
		}
	default:
		return fmt.Errorf("VOTER_IDENTITY_SCHEME must be %q or %q, got %q",
			IdentitySchemeEmail, IdentitySchemeUser, c.Voting.IdentityScheme)
	}

	if c.App.Environment == "production" {
		if c.JWT.Secret == defaultJWTSecret {
			return fmt.Errorf("JWT_SECRET must be set in production")
		}
		if c.Admin.PasswordHash == "" && c.Admin.Password == "" {
			return fmt.Errorf("ADMIN_PASSWORD_HASH must be set in production")
		}
	}

	return nil
}

// IsProduction reports whether the app runs with production settings
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// Helper functions
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvList(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	var values []string
	for _, v := range strings.Split(valueStr, ",") {
		if v = strings.TrimSpace(v); v != "" {
			values = append(values, v)
		}
	}
	return values
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
