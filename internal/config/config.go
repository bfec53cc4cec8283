package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Development fallbacks. Reachable only outside production; Load fails
// loudly if a production process would end up using them.
const (
	fallbackDBUser     = "postgres"
	fallbackDBPassword = "test"
)

type Config struct {
	Port        int    `mapstructure:"port"`
	Environment string `mapstructure:"environment"` // development | production

	DBHost     string `mapstructure:"pghost"`
	DBPort     int    `mapstructure:"pgport"`
	DBName     string `mapstructure:"pgdatabase"`
	DBUser     string `mapstructure:"pguser"`
	DBPassword string `mapstructure:"pgpassword"`

	// CredentialsDir is scanned for mounted username/password files when
	// the PGUSER/PGPASSWORD env overrides are absent.
	CredentialsDir string `mapstructure:"credentials_fs"`

	JWTSecret string `mapstructure:"jwt_secret"`

	// LegacyErrorCompat keeps the historical behaviour of answering 401
	// on datastore failures of data routes. Off by default; new clients
	// get 503 so infrastructure failure is distinguishable.
	LegacyErrorCompat bool `mapstructure:"legacy_error_compat"`

	AllowedOrigins []string `mapstructure:"allowed_origins"`
	StaticDir      string   `mapstructure:"static_dir"` // UI bundle; empty = not served

	// TrustProxyHeaders enables client-IP extraction from
	// X-Forwarded-For/X-Real-IP. Only turn this on behind a proxy that
	// strips inbound copies of those headers; otherwise they are
	// attacker-controlled.
	TrustProxyHeaders bool `mapstructure:"trust_proxy_headers"`

	RequestTimeoutSec  int `mapstructure:"request_timeout_sec"`
	ShutdownTimeoutSec int `mapstructure:"shutdown_timeout_sec"`
}

func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("/etc/clusterdash/")
	viper.AddConfigPath("$HOME/.clusterdash")
	viper.AddConfigPath(".")

	// Defaults
	viper.SetDefault("port", 8080)
	viper.SetDefault("environment", "development")
	viper.SetDefault("pghost", "localhost")
	viper.SetDefault("pgport", 5432)
	viper.SetDefault("pgdatabase", "postgres")
	viper.SetDefault("credentials_fs", "/etc/credentials")
	viper.SetDefault("allowed_origins", []string{"*"})
	viper.SetDefault("request_timeout_sec", 30)
	viper.SetDefault("shutdown_timeout_sec", 15)

	// The store and server knobs are recognized under their conventional
	// names, not a prefixed form.
	for _, env := range []string{
		"PORT", "ENVIRONMENT", "PGHOST", "PGPORT", "PGDATABASE",
		"PGUSER", "PGPASSWORD", "CREDENTIALS_FS", "JWT_SECRET",
		"LEGACY_ERROR_COMPAT", "STATIC_DIR", "TRUST_PROXY_HEADERS",
	} {
		if err := viper.BindEnv(strings.ToLower(env), env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found; using defaults and env vars
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.resolveDBCredentials(); err != nil {
		return nil, err
	}
	if cfg.Environment == "production" && cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required in production")
	}
	return &cfg, nil
}

// resolveDBCredentials fills DBUser/DBPassword in priority order: explicit
// env or file override -> mounted credential file -> development fallback.
// The fallback is refused in production.
func (c *Config) resolveDBCredentials() error {
	if c.DBUser == "" {
		c.DBUser = readCredentialFile(filepath.Join(c.CredentialsDir, "username"))
	}
	if c.DBPassword == "" {
		c.DBPassword = readCredentialFile(filepath.Join(c.CredentialsDir, "password"))
	}
	if c.DBUser == "" || c.DBPassword == "" {
		if c.Environment == "production" {
			return fmt.Errorf("database credentials not configured: set PGUSER/PGPASSWORD or mount %s", c.CredentialsDir)
		}
		if c.DBUser == "" {
			c.DBUser = fallbackDBUser
		}
		if c.DBPassword == "" {
			c.DBPassword = fallbackDBPassword
		}
	}
	return nil
}

func readCredentialFile(path string) string {
	b, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(b))
}

// CORSAllowCredentials reports whether CORS responses may be
// credentialed. A wildcard origin cannot be: browsers reject
// Access-Control-Allow-Origin: * on credentialed responses, so
// credentials require an explicit origin list.
func (c *Config) CORSAllowCredentials() bool {
	if len(c.AllowedOrigins) == 0 {
		return false
	}
	for _, o := range c.AllowedOrigins {
		if o == "*" {
			return false
		}
	}
	return true
}

// DSN returns the lib/pq connection string. Never log its value: it
// carries the resolved password.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%d dbname=%s user=%s password=%s sslmode=disable",
		c.DBHost, c.DBPort, c.DBName, c.DBUser, c.DBPassword)
}
