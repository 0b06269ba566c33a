package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// Server modes.
const (
	ModeMCP  = "mcp"
	ModeHTTP = "http"
)

// PathEnvVar overrides the config file location.
const PathEnvVar = "DRAWING_MCP_CONFIG"

// LogLevelEnvVar overrides logging.level.
const LogLevelEnvVar = "DRAWING_MCP_LOG_LEVEL"

// Config holds the drawing-mcp configuration.
type Config struct {
	Mode    string        `yaml:"mode"` // mcp (default) or http
	HTTP    HTTPConfig    `yaml:"http"`
	Logging LoggingConfig `yaml:"logging"`
	Render  RenderConfig  `yaml:"render"`
	OCR     OCRConfig     `yaml:"ocr"`
	Cache   CacheConfig   `yaml:"cache"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// RenderConfig holds preview rendering defaults.
type RenderConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	Margin int `yaml:"margin"`
}

// OCRConfig holds OCR settings.
type OCRConfig struct {
	Language string `yaml:"language"` // tesseract language, e.g. eng, kor, eng+kor
}

// CacheConfig holds drawing cache settings.
type CacheConfig struct {
	MaxEntries int `yaml:"max_entries"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	var c Config
	c.ApplyDefaults()
	return c
}

// Load reads configuration for the environment (local, dev, prod). The file
// is config/<env>.yaml unless DRAWING_MCP_CONFIG names another. A missing
// file yields Default() so the MCP binary starts with zero setup.
func Load(env string) (Config, error) {
	path := os.Getenv(PathEnvVar)
	if path == "" {
		path = filepath.Join("config", env+".yaml")
	}

	cfg, err := LoadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		cfg = Default()
		err = nil
	}
	if err != nil {
		return Config{}, err
	}

	if level := os.Getenv(LogLevelEnvVar); level != "" {
		cfg.Logging.Level = level
	}
	return cfg, nil
}

// LoadFile reads, expands, defaults and validates the YAML file at path.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	// Substitute env variables of the form ${VAR}
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.Mode == "" {
		c.Mode = ModeMCP
	}
	if c.HTTP.Port <= 0 {
		c.HTTP.Port = 8080
	}
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 30
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Render.Width <= 0 {
		c.Render.Width = 800
	}
	if c.Render.Height <= 0 {
		c.Render.Height = 600
	}
	if c.Render.Margin <= 0 {
		c.Render.Margin = 20
	}
	if c.OCR.Language == "" {
		c.OCR.Language = "eng"
	}
	if c.Cache.MaxEntries <= 0 {
		c.Cache.MaxEntries = 64
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	switch c.Mode {
	case ModeMCP, ModeHTTP:
	default:
		return fmt.Errorf("mode must be %q or %q, got %q", ModeMCP, ModeHTTP, c.Mode)
	}
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	if 2*c.Render.Margin >= c.Render.Width || 2*c.Render.Margin >= c.Render.Height {
		return fmt.Errorf("render.margin %d leaves no drawing area in %dx%d",
			c.Render.Margin, c.Render.Width, c.Render.Height)
	}
	return nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
