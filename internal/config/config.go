package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration values
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Auth     AuthConfig
	Supabase SupabaseConfig
	Storage  StorageConfig
	Drafts   DraftConfig
	CORS     CORSConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port            string
	Env             string
	ShutdownTimeout time.Duration
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
	AutoMigrate bool
}

// URL returns the database connection URL used by gorm
func (c DatabaseConfig) URL() string {
	return "postgres://" + c.User + ":" + c.Password + "@" + c.Host + ":" + strconv.Itoa(c.Port) + "/" + c.DBName + "?sslmode=" + c.SSLMode + "&prepare_threshold=0"
}

// DSN returns the key/value connection string understood by lib/pq
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	URL      string
	PASSWORD string
}

// AuthConfig holds session token verification settings
type AuthConfig struct {
	JWTSecret string
	JWKSURL   string
	Issuer    string
}

// SupabaseConfig holds the identity and storage REST endpoint
type SupabaseConfig struct {
	URL        string
	ServiceKey string
	AnonKey    string
}

// StorageConfig holds bucket names and signed URL lifetime
type StorageConfig struct {
	LogoBucket      string
	PitchDeckBucket string
	SignedURLTTL    time.Duration
}

// DraftConfig holds draft autosave settings
type DraftConfig struct {
	Secret   string
	TTL      time.Duration
	Debounce time.Duration
}

// CORSConfig holds allowed browser origins
type CORSConfig struct {
	AllowedOrigins []string
}

// Load loads configuration from environment variables
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            getEnv("SERVER_PORT", "8080"),
			Env:             getEnv("SERVER_ENV", "development"),
			ShutdownTimeout: getEnvAsDuration("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Database: DatabaseConfig{
			Host:        getEnv("DB_HOST", "localhost"),
			Port:        getEnvAsInt("DB_PORT", 5432),
			User:        getEnv("DB_USER", "postgres"),
			Password:    getEnv("DB_PASSWORD", "postgres"),
			DBName:      getEnv("DB_NAME", "startup_directory"),
			SSLMode:     getEnv("DB_SSLMODE", "disable"),
			AutoMigrate: getEnvAsBool("DB_AUTO_MIGRATE", true),
		},
		Redis: RedisConfig{
			URL:      getEnv("REDIS_URL", "redis://localhost:6379"),
			PASSWORD: getEnv("REDIS_PASSWORD", ""),
		},
		Auth: AuthConfig{
			JWTSecret: getEnv("AUTH_JWT_SECRET", ""),
			JWKSURL:   getEnv("AUTH_JWKS_URL", ""),
			Issuer:    getEnv("AUTH_ISSUER", ""),
		},
		Supabase: SupabaseConfig{
			URL:        getEnv("SUPABASE_URL", "http://localhost:54321"),
			ServiceKey: getEnv("SUPABASE_SERVICE_KEY", ""),
			AnonKey:    getEnv("SUPABASE_ANON_KEY", ""),
		},
		Storage: StorageConfig{
			LogoBucket:      getEnv("STORAGE_LOGO_BUCKET", "startup-logos"),
			PitchDeckBucket: getEnv("STORAGE_PITCH_DECK_BUCKET", "pitch-decks"),
			SignedURLTTL:    getEnvAsDuration("STORAGE_SIGNED_URL_TTL", time.Hour),
		},
		Drafts: DraftConfig{
			Secret:   getEnv("DRAFT_SECRET", ""),
			TTL:      getEnvAsDuration("DRAFT_TTL", 7*24*time.Hour),
			Debounce: getEnvAsDuration("DRAFT_DEBOUNCE", 2*time.Second),
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
		},
	}
}

// IsProduction reports whether the server runs with production settings
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

// Validate reports every missing or inconsistent setting at once
func (c *Config) Validate() error {
	var errs []error
	if c.Server.Port == "" {
		errs = append(errs, errors.New("SERVER_PORT is required"))
	}
	if c.Database.Host == "" || c.Database.DBName == "" {
		errs = append(errs, errors.New("DB_HOST and DB_NAME are required"))
	}
	if c.Auth.JWTSecret == "" && c.Auth.JWKSURL == "" {
		errs = append(errs, errors.New("AUTH_JWT_SECRET or AUTH_JWKS_URL is required"))
	}
	if c.Supabase.URL == "" {
		errs = append(errs, errors.New("SUPABASE_URL is required"))
	}
	if c.IsProduction() && c.Supabase.ServiceKey == "" {
		errs = append(errs, errors.New("SUPABASE_SERVICE_KEY is required in production"))
	}
	if c.Drafts.Secret == "" {
		errs = append(errs, errors.New("DRAFT_SECRET is required"))
	}
	if c.Drafts.TTL <= 0 {
		errs = append(errs, errors.New("DRAFT_TTL must be positive"))
	}
	if c.Drafts.Debounce < 0 {
		errs = append(errs, errors.New("DRAFT_DEBOUNCE must not be negative"))
	}
	if c.Storage.SignedURLTTL <= 0 {
		errs = append(errs, errors.New("STORAGE_SIGNED_URL_TTL must be positive"))
	}
	return errors.Join(errs...)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
