package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"github.com/spf13/viper"
	"github.com/ulule/limiter/v3"
)

const defaultJWTSecret = "a-very-secret-key-should-be-longer-and-random"

// Config holds application configuration.
type Config struct {
	DatabaseURL       string
	Port              string
	IsProduction      bool
	EnableDBCheck     bool
	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string
	GoogleClientID    string

	// Ledger
	EditWindow         time.Duration
	ReconcileCron      string
	ReconcileOnStartup bool
	ReconcileTimeout   time.Duration
	CurrencyLabel      string

	MigrationsPath     string
	UploadDir          string
	MaxUploadSizeMB    int64
	LoginRateLimit     string
	CORSAllowedOrigins []string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("ENABLE_DB_CHECK", false)
	v.SetDefault("JWT_SECRET", defaultJWTSecret)
	v.SetDefault("JWT_EXPIRY_DURATION", "1h")
	v.SetDefault("JWT_ISSUER", "expense-tracker-app")
	v.SetDefault("GOOGLE_CLIENT_ID", "")
	v.SetDefault("EDIT_WINDOW", "48h")
	v.SetDefault("RECONCILE_TIMEOUT", "10m")
	v.SetDefault("RECONCILE_CRON", "@every 6h")
	v.SetDefault("RECONCILE_ON_STARTUP", true)
	v.SetDefault("CURRENCY_LABEL", "FCFA")
	v.SetDefault("MIGRATIONS_PATH", "file://migrations")
	v.SetDefault("UPLOAD_DIR", "uploads")
	v.SetDefault("MAX_UPLOAD_SIZE_MB", 10)
	v.SetDefault("LOGIN_RATE_LIMIT", "5-M")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	v.AutomaticEnv()

	cfg := &Config{
		DatabaseURL:        v.GetString("PGSQL_URL"),
		Port:               v.GetString("PORT"),
		IsProduction:       v.GetBool("IS_PRODUCTION"),
		EnableDBCheck:      v.GetBool("ENABLE_DB_CHECK"),
		JWTSecret:          v.GetString("JWT_SECRET"),
		JWTIssuer:          v.GetString("JWT_ISSUER"),
		GoogleClientID:     v.GetString("GOOGLE_CLIENT_ID"),
		ReconcileCron:      v.GetString("RECONCILE_CRON"),
		ReconcileOnStartup: v.GetBool("RECONCILE_ON_STARTUP"),
		CurrencyLabel:      v.GetString("CURRENCY_LABEL"),
		MigrationsPath:     v.GetString("MIGRATIONS_PATH"),
		UploadDir:          v.GetString("UPLOAD_DIR"),
		MaxUploadSizeMB:    v.GetInt64("MAX_UPLOAD_SIZE_MB"),
		LoginRateLimit:     v.GetString("LOGIN_RATE_LIMIT"),
		CORSAllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
	}

	if cfg.DatabaseURL == "" {
		slog.Warn("PGSQL_URL environment variable not set")
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}

	if cfg.JWTSecret == "" || cfg.JWTSecret == defaultJWTSecret {
		if cfg.IsProduction {
			return nil, fmt.Errorf("JWT_SECRET must be set in production")
		}
		cfg.JWTSecret = defaultJWTSecret
		slog.Warn("JWT_SECRET not set, using default insecure key")
	}

	var err error
	if cfg.JWTExpiryDuration, err = parsePositiveDuration(v, "JWT_EXPIRY_DURATION"); err != nil {
		return nil, err
	}
	if cfg.EditWindow, err = parsePositiveDuration(v, "EDIT_WINDOW"); err != nil {
		return nil, err
	}
	if cfg.ReconcileTimeout, err = parsePositiveDuration(v, "RECONCILE_TIMEOUT"); err != nil {
		return nil, err
	}

	if cfg.ReconcileCron != "" {
		parser := cron.NewParser(cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
		if _, err := parser.Parse(cfg.ReconcileCron); err != nil {
			return nil, fmt.Errorf("invalid RECONCILE_CRON %q: %w", cfg.ReconcileCron, err)
		}
	}

	if _, err := limiter.NewRateFromFormatted(cfg.LoginRateLimit); err != nil {
		return nil, fmt.Errorf("invalid LOGIN_RATE_LIMIT %q: %w", cfg.LoginRateLimit, err)
	}

	if cfg.MaxUploadSizeMB <= 0 {
		return nil, fmt.Errorf("MAX_UPLOAD_SIZE_MB must be positive, got %d", cfg.MaxUploadSizeMB)
	}

	if cfg.GoogleClientID == "" {
		slog.Warn("GOOGLE_CLIENT_ID not set, Google sign-in is disabled")
	}

	return cfg, nil
}

// MaxUploadBytes returns the justification upload limit in bytes.
func (c *Config) MaxUploadBytes() int64 {
	return c.MaxUploadSizeMB << 20
}

func parsePositiveDuration(v *viper.Viper, key string) (time.Duration, error) {
	raw := v.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %s", key, raw)
	}
	return d, nil
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
