package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	matchtypes "github.com/courtside-labs/atp-dashboard/app/modules/matches/domain"
	"github.com/courtside-labs/atp-dashboard/app/observability"
)

const (
	DefaultDatasetPath  = "atp_matches_2020.csv"
	DefaultHTTPAddress  = ":8050"
	DefaultLogLevel     = "info"
	DefaultTopCountries = 20
)

// Config struct to hold the configuration settings
type Config struct {
	Dataset       DatasetConfig       `yaml:"dataset"`
	HTTP          HTTPConfig          `yaml:"http"`
	Dashboard     DashboardConfig     `yaml:"dashboard"`
	RateLimit     RateLimitConfig     `yaml:"rate_limit"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// DatasetConfig points at the season table.
type DatasetConfig struct {
	Path string `yaml:"path"`
}

// HTTPConfig holds HTTP server configuration.
type HTTPConfig struct {
	Address        string        `yaml:"address"`
	AllowedOrigins []string      `yaml:"allowed_origins"`
	ReadTimeout    time.Duration `yaml:"read_timeout"`
	WriteTimeout   time.Duration `yaml:"write_timeout"`
	IdleTimeout    time.Duration `yaml:"idle_timeout"`

	// TrustProxy takes the client IP from X-Forwarded-For/X-Real-IP. Only
	// enable it behind a proxy that overwrites those headers.
	TrustProxy bool `yaml:"trust_proxy"`
}

// DashboardConfig tunes the queries behind the dashboard.
type DashboardConfig struct {
	ServeSide     string `yaml:"serve_side"` // winner|player
	TopCountries  int    `yaml:"top_countries"`
	DefaultPlayer string `yaml:"default_player"`
}

// RateLimitConfig configures the per-IP limiter. A zero rate disables it.
type RateLimitConfig struct {
	RPS   float64 `yaml:"rps"`
	Burst int     `yaml:"burst"`
}

// ObservabilityConfig holds configuration for observability components
type ObservabilityConfig struct {
	LogLevel       string `yaml:"log_level"`
	MetricsAddress string `yaml:"metrics_address"`
	Environment    string `yaml:"environment"`
	Version        string `yaml:"version"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Dataset: DatasetConfig{Path: DefaultDatasetPath},
		HTTP: HTTPConfig{
			Address:      DefaultHTTPAddress,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		Dashboard: DashboardConfig{
			ServeSide:    string(matchtypes.ServeSideWinner),
			TopCountries: DefaultTopCountries,
		},
		RateLimit: RateLimitConfig{RPS: 20, Burst: 40},
		Observability: ObservabilityConfig{
			LogLevel:    DefaultLogLevel,
			Environment: "production",
		},
	}
}

// LoadConfig loads the configuration from a YAML file, then applies
// environment overrides. A missing file falls back to defaults plus env.
func LoadConfig(filename string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(filename)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config: %w", err)
		}
	case errors.Is(err, fs.ErrNotExist):
	default:
		return nil, fmt.Errorf("failed to read config %q: %w", filename, err)
	}

	// --- OVERRIDE WITH ENV VARS IF PRESENT ---
	if err := applyEnv(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("ATP_DATASET_PATH"); v != "" {
		cfg.Dataset.Path = v
	}
	if v := os.Getenv("HTTP_ADDRESS"); v != "" {
		cfg.HTTP.Address = v
	}
	if v := os.Getenv("HTTP_ALLOWED_ORIGINS"); v != "" {
		cfg.HTTP.AllowedOrigins = splitList(v)
	}
	if v := os.Getenv("HTTP_TRUST_PROXY"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid HTTP_TRUST_PROXY value: %w", err)
		}
		cfg.HTTP.TrustProxy = b
	}
	if v := os.Getenv("METRICS_ADDRESS"); v != "" {
		cfg.Observability.MetricsAddress = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Observability.LogLevel = v
	}
	if v := os.Getenv("ENV"); v != "" {
		cfg.Observability.Environment = v
	}
	if v := os.Getenv("SERVE_SIDE"); v != "" {
		cfg.Dashboard.ServeSide = v
	}
	if v := os.Getenv("DEFAULT_PLAYER"); v != "" {
		cfg.Dashboard.DefaultPlayer = v
	}
	if v := os.Getenv("TOP_COUNTRIES"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid TOP_COUNTRIES value: %w", err)
		}
		cfg.Dashboard.TopCountries = n
	}
	if v := os.Getenv("RATE_LIMIT_RPS"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid RATE_LIMIT_RPS value: %w", err)
		}
		cfg.RateLimit.RPS = f
	}
	if v := os.Getenv("RATE_LIMIT_BURST"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid RATE_LIMIT_BURST value: %w", err)
		}
		cfg.RateLimit.Burst = n
	}
	return nil
}

// Validate rejects configurations the server cannot start with.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Dataset.Path) == "" {
		return errors.New("dataset path must not be empty")
	}
	if _, err := matchtypes.ParseServeSide(c.Dashboard.ServeSide); err != nil {
		return fmt.Errorf("dashboard.serve_side: %w", err)
	}
	if c.Dashboard.TopCountries < 0 {
		return fmt.Errorf("dashboard.top_countries must not be negative, got %d", c.Dashboard.TopCountries)
	}
	if c.RateLimit.RPS < 0 || c.RateLimit.Burst < 0 {
		return errors.New("rate_limit values must not be negative")
	}
	if c.RateLimit.RPS > 0 && c.RateLimit.Burst == 0 {
		return errors.New("rate_limit.burst must be positive when rps is set")
	}
	return nil
}

// ServeSide returns the parsed serve side. Call after Validate.
func (c *Config) ServeSide() matchtypes.ServeSide {
	side, _ := matchtypes.ParseServeSide(c.Dashboard.ServeSide)
	return side
}

func ToObsConfig(appCfg *Config) observability.Config {
	version := appCfg.Observability.Version
	if version == "" {
		version = "dev"
	}
	return observability.Config{
		ServiceName:    "atpdash",
		Environment:    appCfg.Observability.Environment,
		Version:        version,
		LogLevel:       appCfg.Observability.LogLevel,
		MetricsAddress: appCfg.Observability.MetricsAddress,
	}
}

func splitList(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
