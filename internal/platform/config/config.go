package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Storage drivers accepted by STORAGE_DRIVER.
const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

const defaultJWTSecret = "a-very-secret-key-should-be-longer-and-random"

// Config holds application configuration.
type Config struct {
	DatabaseURL      string
	Port             string
	IsProduction     bool
	EnableDBCheck    bool
	DBConnectTimeout time.Duration
	StorageDriver    string
	RunMigrations    bool
	MigrationsPath   string

	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string
	AdminToken        string
	PINRateLimit      string // ulule/limiter format, e.g. "5-M"

	DebtWarningDays   int
	KPITrailingMonths int

	CORSAllowedOrigins []string
	LogLevel           string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()
	return load(viper.New())
}

func load(v *viper.Viper) (*Config, error) {
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("ENABLE_DB_CHECK", false)
	v.SetDefault("DB_CONNECT_TIMEOUT", "30s")
	v.SetDefault("STORAGE_DRIVER", StoragePostgres)
	v.SetDefault("RUN_MIGRATIONS", true)
	v.SetDefault("MIGRATIONS_PATH", "file://migrations")
	v.SetDefault("JWT_SECRET", defaultJWTSecret)
	v.SetDefault("JWT_EXPIRY_DURATION", "12h")
	v.SetDefault("JWT_ISSUER", "project-books")
	v.SetDefault("ADMIN_TOKEN", "")
	v.SetDefault("PIN_RATE_LIMIT", "5-M")
	v.SetDefault("DEBT_WARNING_DAYS", 7)
	v.SetDefault("KPI_TRAILING_MONTHS", 6)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("LOG_LEVEL", "info")
	v.AutomaticEnv()

	cfg := &Config{
		DatabaseURL:    v.GetString("PGSQL_URL"),
		Port:           v.GetString("PORT"),
		IsProduction:   v.GetBool("IS_PRODUCTION"),
		EnableDBCheck:  v.GetBool("ENABLE_DB_CHECK"),
		StorageDriver:  strings.ToLower(strings.TrimSpace(v.GetString("STORAGE_DRIVER"))),
		RunMigrations:  v.GetBool("RUN_MIGRATIONS"),
		MigrationsPath: v.GetString("MIGRATIONS_PATH"),
		JWTSecret:      v.GetString("JWT_SECRET"),
		JWTIssuer:      v.GetString("JWT_ISSUER"),
		AdminToken:     v.GetString("ADMIN_TOKEN"),
		PINRateLimit:   v.GetString("PIN_RATE_LIMIT"),
		LogLevel:       strings.ToLower(v.GetString("LOG_LEVEL")),
	}

	if cfg.Port == "" {
		cfg.Port = "8080" // Default port
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	switch cfg.StorageDriver {
	case StoragePostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("PGSQL_URL is required when STORAGE_DRIVER=%s", StoragePostgres)
		}
	case StorageMemory:
	default:
		return nil, fmt.Errorf("invalid STORAGE_DRIVER %q (want %s or %s)", cfg.StorageDriver, StoragePostgres, StorageMemory)
	}

	var err error
	if cfg.JWTExpiryDuration, err = parseDuration(v, "JWT_EXPIRY_DURATION", 12*time.Hour); err != nil {
		return nil, err
	}
	if cfg.DBConnectTimeout, err = parseDuration(v, "DB_CONNECT_TIMEOUT", 30*time.Second); err != nil {
		return nil, err
	}

	if cfg.JWTSecret == defaultJWTSecret {
		if cfg.IsProduction {
			return nil, fmt.Errorf("JWT_SECRET must be set in production")
		}
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}
	if cfg.AdminToken == "" {
		log.Println("Warning: ADMIN_TOKEN not set. Admin routes will reject every request.")
	}

	cfg.DebtWarningDays = v.GetInt("DEBT_WARNING_DAYS")
	if cfg.DebtWarningDays <= 0 {
		return nil, fmt.Errorf("DEBT_WARNING_DAYS must be positive, got %d", cfg.DebtWarningDays)
	}
	cfg.KPITrailingMonths = v.GetInt("KPI_TRAILING_MONTHS")
	if cfg.KPITrailingMonths <= 0 {
		return nil, fmt.Errorf("KPI_TRAILING_MONTHS must be positive, got %d", cfg.KPITrailingMonths)
	}

	for _, origin := range strings.Split(v.GetString("CORS_ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
		}
	}

	return cfg, nil
}

func parseDuration(v *viper.Viper, key string, fallback time.Duration) (time.Duration, error) {
	raw := v.GetString(key)
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid value for %s (%q)", key, raw)
	}
	return d, nil
}
