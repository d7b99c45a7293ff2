package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// EnvPrefix is the prefix of every environment variable read by Load.
const EnvPrefix = "AUCCA"

// Config represents the complete application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server" envconfig:"SERVER"`
	Security  SecurityConfig  `yaml:"security" envconfig:"SECURITY"`
	Logging   LoggingConfig   `yaml:"logging" envconfig:"LOGGING"`
	Source    SourceConfig    `yaml:"source" envconfig:"SOURCE"`
	Telemetry TelemetryConfig `yaml:"telemetry" envconfig:"TELEMETRY"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port            int           `yaml:"port" envconfig:"PORT" default:"8080" validate:"min=1,max=65535"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT" default:"90s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT" default:"30s"`
	// RequestTimeout bounds a single dashboard request, including the first
	// (uncached) fetch of the spreadsheet.
	RequestTimeout time.Duration `yaml:"request_timeout" envconfig:"REQUEST_TIMEOUT" default:"60s"`
}

// SecurityConfig contains the access gate and rate limiting configuration
type SecurityConfig struct {
	AccessCode     string          `yaml:"access_code" envconfig:"ACCESS_CODE" default:"compost"`
	AccessCodeHash string          `yaml:"access_code_hash" envconfig:"ACCESS_CODE_HASH"`
	CookieName     string          `yaml:"cookie_name" envconfig:"COOKIE_NAME" default:"aucca_acceso" validate:"required"`
	CookieMaxAge   time.Duration   `yaml:"cookie_max_age" envconfig:"COOKIE_MAX_AGE" default:"12h"`
	RateLimit      RateLimitConfig `yaml:"rate_limit" envconfig:"RATE_LIMIT"`
}

// RateLimitConfig contains rate limiting configuration
type RateLimitConfig struct {
	Enabled bool    `yaml:"enabled" envconfig:"ENABLED" default:"true"`
	RPS     float64 `yaml:"rps" envconfig:"RPS" default:"20" validate:"gte=0"`
	Burst   int     `yaml:"burst" envconfig:"BURST" default:"40" validate:"gte=0"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" default:"info" validate:"oneof=debug info warn warning error"`
	Format   string `yaml:"format" envconfig:"FORMAT" default:"json" validate:"oneof=json text"`
	Output   string `yaml:"output" envconfig:"OUTPUT" default:"console" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/app.log"`
}

// SourceConfig describes where the survey responses are read from
type SourceConfig struct {
	Kind            string        `yaml:"kind" envconfig:"KIND" default:"csv" validate:"oneof=csv sheets file"`
	SheetURL        string        `yaml:"sheet_url" envconfig:"SHEET_URL" default:"https://docs.google.com/spreadsheets/d/1aY3yE7h2Q_PvUVzTG55rWmaiSybk4qKDblvPDp2PWgo/edit?usp=sharing"`
	CredentialsFile string        `yaml:"credentials_file" envconfig:"CREDENTIALS_FILE"`
	SheetRange      string        `yaml:"sheet_range" envconfig:"SHEET_RANGE" default:"A:ZZ"`
	FilePath        string        `yaml:"file_path" envconfig:"FILE_PATH"`
	FetchTimeout    time.Duration `yaml:"fetch_timeout" envconfig:"FETCH_TIMEOUT" default:"30s"`
}

// TelemetryConfig contains metrics and tracing configuration
type TelemetryConfig struct {
	MetricsEnabled bool   `yaml:"metrics_enabled" envconfig:"METRICS_ENABLED" default:"true"`
	TraceExporter  string `yaml:"trace_exporter" envconfig:"TRACE_EXPORTER" default:"none" validate:"oneof=none stdout"`
	Environment    string `yaml:"environment" envconfig:"ENVIRONMENT" default:"development"`
}

// Load loads configuration from environment variables and config file
func Load() (*Config, error) {
	var cfg Config

	// Load from environment variables first
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	// Load from config file if exists
	if configFile := getConfigFilePath(); configFile != "" {
		fileCfg, err := loadFromFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
		cfg = mergeConfigs(*fileCfg, cfg)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// fileConfig is a YAML config file. Booleans default to true, so the file's
// switches are kept as pointers to tell "false" apart from "not set".
type fileConfig struct {
	Config
	RateLimitEnabled *bool
	MetricsEnabled   *bool
}

type fileSwitches struct {
	Security struct {
		RateLimit struct {
			Enabled *bool `yaml:"enabled"`
		} `yaml:"rate_limit"`
	} `yaml:"security"`
	Telemetry struct {
		MetricsEnabled *bool `yaml:"metrics_enabled"`
	} `yaml:"telemetry"`
}

// loadFromFile loads configuration from YAML file
func loadFromFile(filePath string) (*fileConfig, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var cfg fileConfig
	if err := yaml.Unmarshal(data, &cfg.Config); err != nil {
		return nil, err
	}

	var switches fileSwitches
	if err := yaml.Unmarshal(data, &switches); err != nil {
		return nil, err
	}
	cfg.RateLimitEnabled = switches.Security.RateLimit.Enabled
	cfg.MetricsEnabled = switches.Telemetry.MetricsEnabled

	return &cfg, nil
}

// mergeConfigs merges file config with env config. A value from the file wins
// only when the matching environment variable was not set explicitly, so env
// always takes precedence over the file and the file over the defaults.
func mergeConfigs(file fileConfig, envConfig Config) Config {
	merged := envConfig

	str := func(key string, dst *string, v string) {
		if v != "" && !envSet(key) {
			*dst = v
		}
	}
	dur := func(key string, dst *time.Duration, v time.Duration) {
		if v != 0 && !envSet(key) {
			*dst = v
		}
	}
	flag := func(key string, dst *bool, v *bool) {
		if v != nil && !envSet(key) {
			*dst = *v
		}
	}

	if file.Server.Port != 0 && !envSet("SERVER_PORT") {
		merged.Server.Port = file.Server.Port
	}
	dur("SERVER_READ_TIMEOUT", &merged.Server.ReadTimeout, file.Server.ReadTimeout)
	dur("SERVER_WRITE_TIMEOUT", &merged.Server.WriteTimeout, file.Server.WriteTimeout)
	dur("SERVER_IDLE_TIMEOUT", &merged.Server.IdleTimeout, file.Server.IdleTimeout)
	dur("SERVER_SHUTDOWN_TIMEOUT", &merged.Server.ShutdownTimeout, file.Server.ShutdownTimeout)
	dur("SERVER_REQUEST_TIMEOUT", &merged.Server.RequestTimeout, file.Server.RequestTimeout)

	str("SECURITY_ACCESS_CODE", &merged.Security.AccessCode, file.Security.AccessCode)
	str("SECURITY_ACCESS_CODE_HASH", &merged.Security.AccessCodeHash, file.Security.AccessCodeHash)
	str("SECURITY_COOKIE_NAME", &merged.Security.CookieName, file.Security.CookieName)
	dur("SECURITY_COOKIE_MAX_AGE", &merged.Security.CookieMaxAge, file.Security.CookieMaxAge)
	if file.Security.RateLimit.RPS != 0 && !envSet("SECURITY_RATE_LIMIT_RPS") {
		merged.Security.RateLimit.RPS = file.Security.RateLimit.RPS
	}
	if file.Security.RateLimit.Burst != 0 && !envSet("SECURITY_RATE_LIMIT_BURST") {
		merged.Security.RateLimit.Burst = file.Security.RateLimit.Burst
	}
	flag("SECURITY_RATE_LIMIT_ENABLED", &merged.Security.RateLimit.Enabled, file.RateLimitEnabled)

	str("LOGGING_LEVEL", &merged.Logging.Level, file.Logging.Level)
	str("LOGGING_FORMAT", &merged.Logging.Format, file.Logging.Format)
	str("LOGGING_OUTPUT", &merged.Logging.Output, file.Logging.Output)
	str("LOGGING_FILE_PATH", &merged.Logging.FilePath, file.Logging.FilePath)

	str("SOURCE_KIND", &merged.Source.Kind, file.Source.Kind)
	str("SOURCE_SHEET_URL", &merged.Source.SheetURL, file.Source.SheetURL)
	str("SOURCE_CREDENTIALS_FILE", &merged.Source.CredentialsFile, file.Source.CredentialsFile)
	str("SOURCE_SHEET_RANGE", &merged.Source.SheetRange, file.Source.SheetRange)
	str("SOURCE_FILE_PATH", &merged.Source.FilePath, file.Source.FilePath)
	dur("SOURCE_FETCH_TIMEOUT", &merged.Source.FetchTimeout, file.Source.FetchTimeout)

	flag("TELEMETRY_METRICS_ENABLED", &merged.Telemetry.MetricsEnabled, file.MetricsEnabled)
	str("TELEMETRY_TRACE_EXPORTER", &merged.Telemetry.TraceExporter, file.Telemetry.TraceExporter)
	str("TELEMETRY_ENVIRONMENT", &merged.Telemetry.Environment, file.Telemetry.Environment)

	return merged
}

func envSet(key string) bool {
	_, ok := os.LookupEnv(EnvPrefix + "_" + key)
	return ok
}

// validate validates the configuration
func (c *Config) validate() error {
	if err := validator.New().Struct(c); err != nil {
		return err
	}

	if c.Server.ReadTimeout <= 0 {
		return fmt.Errorf("server read timeout must be positive")
	}

	if c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("server write timeout must be positive")
	}

	if c.Server.RequestTimeout <= 0 {
		return fmt.Errorf("server request timeout must be positive")
	}

	if c.Security.AccessCode == "" && c.Security.AccessCodeHash == "" {
		return fmt.Errorf("an access code or access code hash must be configured")
	}

	if c.Security.AccessCodeHash != "" && !strings.HasPrefix(c.Security.AccessCodeHash, "$2") {
		return fmt.Errorf("access code hash must be a bcrypt hash")
	}

	switch c.Source.Kind {
	case "csv":
		if c.Source.SheetURL == "" {
			return fmt.Errorf("source sheet_url is required for kind csv")
		}
	case "sheets":
		if c.Source.SheetURL == "" || c.Source.CredentialsFile == "" {
			return fmt.Errorf("source sheet_url and credentials_file are required for kind sheets")
		}
	case "file":
		if c.Source.FilePath == "" {
			return fmt.Errorf("source file_path is required for kind file")
		}
	}

	if c.Source.FetchTimeout <= 0 {
		return fmt.Errorf("source fetch timeout must be positive")
	}

	if c.Logging.Output != "console" && c.Logging.FilePath == "" {
		c.Logging.FilePath = "logs/app.log"
	}

	return nil
}

// getConfigFilePath returns the path to the config file
func getConfigFilePath() string {
	if explicit := os.Getenv(EnvPrefix + "_CONFIG_FILE"); explicit != "" {
		return explicit
	}

	locations := []string{
		"config.yaml",
		"configs/config.yaml",
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}

	return "" // No config file found, use env vars only
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    90 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 30 * time.Second,
			RequestTimeout:  60 * time.Second,
		},
		Security: SecurityConfig{
			AccessCode:   DefaultAccessCode,
			CookieName:   "aucca_acceso",
			CookieMaxAge: 12 * time.Hour,
			RateLimit: RateLimitConfig{
				Enabled: true,
				RPS:     20,
				Burst:   40,
			},
		},
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "json",
			Output:   "console",
			FilePath: "logs/app.log",
		},
		Source: SourceConfig{
			Kind:         "csv",
			SheetURL:     DefaultSheetURL,
			SheetRange:   "A:ZZ",
			FetchTimeout: 30 * time.Second,
		},
		Telemetry: TelemetryConfig{
			MetricsEnabled: true,
			TraceExporter:  "none",
			Environment:    "development",
		},
	}
}
