package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database DatabaseConfig
	Server   ServerConfig
	Gate     GateConfig
	Identity IdentityConfig
	Email    EmailConfig
	Media    MediaConfig
}

type DatabaseConfig struct {
	Host              string
	Port              int
	User              string
	Password          string
	Name              string
	SSLMode           string
	MaxConns          int32
	MinConns          int32
	MaxConnLifetime   time.Duration
	MaxConnIdleTime   time.Duration
	HealthCheckPeriod time.Duration
}

type ServerConfig struct {
	Port           string
	Env            string
	LogLevel       string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	AllowedOrigins []string
}

// GateConfig controls the admin session gate and login rate limiting.
type GateConfig struct {
	AdminRoutePrefix string        // secret-like admin path segment
	LoginMaxAttempts int           // block threshold per identity per window
	LoginWindow      time.Duration // rolling attempt window
	SweepInterval    time.Duration // background sweep cadence
	IPAllowlist      string        // comma-separated; empty means allow all
	VerifyTimeout    time.Duration // bound on identity service calls
	CookieDomain     string
	CookieSecure     bool
	CookieSameSite   string
}

// IdentityConfig selects and configures the identity provider. When URL is
// set the hosted provider is used; otherwise AdminEmail/AdminPasswordHash
// select the local single-account provider.
type IdentityConfig struct {
	URL               string
	APIKey            string
	AdminEmail        string
	AdminPasswordHash string
	SessionTTL        time.Duration
	TimingBaseDelayMs int
	TimingJitterMs    int
}

type EmailConfig struct {
	AWSRegion   string
	FromAddress string
	ToAddress   string
}

type MediaConfig struct {
	ImageKitPrivateKey string
	ImageKitPublicKey  string
	URLEndpoint        string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	env := getEnv("ENV", "development")

	cfg := &Config{
		Database: DatabaseConfig{
			Host:              getEnv("DB_HOST", "localhost"),
			Port:              getEnvAsInt("DB_PORT", 5432),
			User:              getEnv("DB_USER", "postgres"),
			Password:          getEnv("DB_PASSWORD", ""),
			Name:              getEnv("DB_NAME", "porto"),
			SSLMode:           getEnv("DB_SSLMODE", "disable"),
			MaxConns:          int32(getEnvAsInt("DB_MAX_CONNS", 25)),
			MinConns:          int32(getEnvAsInt("DB_MIN_CONNS", 5)),
			MaxConnLifetime:   getEnvAsDuration("DB_MAX_CONN_LIFETIME", 5*time.Minute),
			MaxConnIdleTime:   getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", 1*time.Minute),
			HealthCheckPeriod: getEnvAsDuration("DB_HEALTH_CHECK_PERIOD", 1*time.Minute),
		},
		Server: ServerConfig{
			Port:           getEnv("PORT", "8080"),
			Env:            env,
			LogLevel:       getEnv("LOG_LEVEL", "info"),
			ReadTimeout:    getEnvAsDuration("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:   getEnvAsDuration("SERVER_WRITE_TIMEOUT", 15*time.Second),
			IdleTimeout:    getEnvAsDuration("SERVER_IDLE_TIMEOUT", 60*time.Second),
			AllowedOrigins: parseAllowedOrigins(env),
		},
		Gate: GateConfig{
			AdminRoutePrefix: getEnv("ADMIN_ROUTE_PREFIX", "admin"),
			LoginMaxAttempts: getEnvAsInt("LOGIN_MAX_ATTEMPTS", 5),
			LoginWindow:      getEnvAsDuration("LOGIN_WINDOW", 15*time.Minute),
			SweepInterval:    getEnvAsDuration("GATE_SWEEP_INTERVAL", 30*time.Minute),
			IPAllowlist:      getEnv("ADMIN_IP_ALLOWLIST", ""),
			VerifyTimeout:    getEnvAsDuration("IDENTITY_VERIFY_TIMEOUT", 5*time.Second),
			CookieDomain:     getEnv("COOKIE_DOMAIN", ""),
			CookieSecure:     env == "production",
			CookieSameSite:   getEnv("COOKIE_SAMESITE", "lax"),
		},
		Identity: IdentityConfig{
			URL:               getEnv("IDENTITY_URL", ""),
			APIKey:            getEnv("IDENTITY_API_KEY", ""),
			AdminEmail:        getEnv("ADMIN_EMAIL", ""),
			AdminPasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
			SessionTTL:        getEnvAsDuration("SESSION_TTL", 24*time.Hour),
			TimingBaseDelayMs: getEnvAsInt("LOGIN_TIMING_BASE_MS", 100),
			TimingJitterMs:    getEnvAsInt("LOGIN_TIMING_JITTER_MS", 50),
		},
		Email: EmailConfig{
			AWSRegion:   getEnv("AWS_REGION", "us-east-1"),
			FromAddress: getEnv("EMAIL_FROM", ""),
			ToAddress:   getEnv("EMAIL_TO", ""),
		},
		Media: MediaConfig{
			ImageKitPrivateKey: getEnv("IMAGEKIT_PRIVATE_KEY", ""),
			ImageKitPublicKey:  getEnv("IMAGEKIT_PUBLIC_KEY", ""),
			URLEndpoint:        getEnv("IMAGEKIT_URL_ENDPOINT", ""),
		},
	}

	if cfg.Database.Password == "" {
		return nil, fmt.Errorf("DB_PASSWORD is required")
	}

	if err := validateIdentity(&cfg.Identity); err != nil {
		return nil, err
	}

	if err := validateAdminPrefix(cfg.Gate.AdminRoutePrefix, env); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validateIdentity enforces that exactly one identity provider is usable.
// Security-sensitive values are never silently defaulted through.
func validateIdentity(cfg *IdentityConfig) error {
	hosted := cfg.URL != ""
	local := cfg.AdminEmail != "" || cfg.AdminPasswordHash != ""

	if hosted {
		if cfg.APIKey == "" {
			return fmt.Errorf("IDENTITY_API_KEY is required when IDENTITY_URL is set")
		}
		return nil
	}

	if local {
		if cfg.AdminEmail == "" || cfg.AdminPasswordHash == "" {
			return fmt.Errorf("local identity requires both ADMIN_EMAIL and ADMIN_PASSWORD_HASH")
		}
		return nil
	}

	return fmt.Errorf("no identity provider configured: set IDENTITY_URL or ADMIN_EMAIL/ADMIN_PASSWORD_HASH")
}

// validateAdminPrefix rejects prefixes that would collide with public routes
// or make the admin subtree trivially guessable in production.
func validateAdminPrefix(prefix, env string) error {
	if prefix == "" {
		return fmt.Errorf("ADMIN_ROUTE_PREFIX cannot be empty")
	}
	if strings.ContainsAny(prefix, "/ ") {
		return fmt.Errorf("ADMIN_ROUTE_PREFIX must be a single path segment")
	}
	if prefix == "api" {
		return fmt.Errorf("ADMIN_ROUTE_PREFIX cannot shadow the public API")
	}
	if env == "production" && prefix == "admin" {
		return fmt.Errorf("ADMIN_ROUTE_PREFIX must not be the default in production")
	}
	return nil
}

func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode,
	)
}

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvAsDuration(key string, defaultVal time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultVal
}

func parseAllowedOrigins(env string) []string {
	if env == "production" {
		originsStr := getEnv("ALLOWED_ORIGINS", "")
		if originsStr == "" {
			return []string{} // Default to no origins in production
		}
		origins := strings.Split(originsStr, ",")
		for i, origin := range origins {
			origins[i] = strings.TrimSpace(origin)
		}
		return origins
	}

	// Development: allow localhost variants
	return []string{
		"http://localhost:3000",
		"http://localhost:8080",
		"http://localhost:5173", // Vite default
		"http://127.0.0.1:3000",
		"http://127.0.0.1:8080",
		"http://127.0.0.1:5173",
	}
}
