package mdocx

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"sync"

	"gopkg.in/yaml.v3"
)

// MaxListDepth is the deepest renderable list level most word processors
// honor. Structurally deeper nesting is clamped, not rejected.
const MaxListDepth = 9

// Config contains presentation and runtime options for the converter.
// The zero value is not usable; start from DefaultConfig.
type Config struct {
	// LogLevel controls logging verbosity (debug, info, warn, error, off).
	LogLevel string `yaml:"log_level"`
	// BodyFont is the font for normal text.
	BodyFont string `yaml:"body_font"`
	// BodySizePt is the normal text size in points.
	BodySizePt int `yaml:"body_size_pt"`
	// CodeFont is the monospace font for code blocks and inline code.
	CodeFont string `yaml:"code_font"`
	// CodeSizePt is the code block text size in points.
	CodeSizePt int `yaml:"code_size_pt"`
	// MathFont is the font used for math fallback runs.
	MathFont string `yaml:"math_font"`
	// CodeShading is the hex fill color behind code block paragraphs.
	CodeShading string `yaml:"code_shading"`
	// QuoteBorderColor is the hex color of the blockquote left border.
	QuoteBorderColor string `yaml:"quote_border_color"`
}

var (
	globalConfig      *Config
	globalConfigMutex sync.RWMutex
	configOnce        sync.Once
)

func init() {
	configOnce.Do(func() {
		globalConfig = ConfigFromEnvironment()
	})
}

// DefaultConfig returns the default configuration: Calibri 11pt body,
// Consolas 9pt code on a light gray shade, Cambria Math for math
// fallbacks.
func DefaultConfig() *Config {
	return &Config{
		LogLevel:         "info",
		BodyFont:         "Calibri",
		BodySizePt:       11,
		CodeFont:         "Consolas",
		CodeSizePt:       9,
		MathFont:         "Cambria Math",
		CodeShading:      "F6F8FA",
		QuoteBorderColor: "CCCCCC",
	}
}

// ConfigFromEnvironment creates a configuration from environment variables.
func ConfigFromEnvironment() *Config {
	config := DefaultConfig()

	if val := os.Getenv("MDOCX_LOG_LEVEL"); val != "" {
		config.LogLevel = val
	}
	if val := os.Getenv("MDOCX_BODY_FONT"); val != "" {
		config.BodyFont = val
	}
	if val := os.Getenv("MDOCX_BODY_SIZE_PT"); val != "" {
		if size, err := strconv.Atoi(val); err == nil {
			config.BodySizePt = size
		}
	}
	if val := os.Getenv("MDOCX_CODE_FONT"); val != "" {
		config.CodeFont = val
	}
	if val := os.Getenv("MDOCX_CODE_SIZE_PT"); val != "" {
		if size, err := strconv.Atoi(val); err == nil {
			config.CodeSizePt = size
		}
	}

	return config
}

// LoadConfigFile reads a YAML configuration file on top of the defaults.
// Missing keys keep their default values.
func LoadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
		"off":   true,
	}
	if !validLogLevels[c.LogLevel] {
		return errors.New("invalid log level: " + c.LogLevel)
	}

	if c.BodyFont == "" || c.CodeFont == "" {
		return errors.New("fonts must not be empty")
	}
	if c.BodySizePt <= 0 || c.CodeSizePt <= 0 {
		return errors.New("font sizes must be positive")
	}

	return nil
}

// GetGlobalConfig returns a copy of the global configuration.
func GetGlobalConfig() *Config {
	globalConfigMutex.RLock()
	defer globalConfigMutex.RUnlock()

	if globalConfig == nil {
		return DefaultConfig()
	}

	configCopy := *globalConfig
	return &configCopy
}

// SetGlobalConfig sets the global configuration.
func SetGlobalConfig(config *Config) {
	globalConfigMutex.Lock()
	globalConfig = config
	globalConfigMutex.Unlock()

	UpdateLoggerFromConfig()
}
