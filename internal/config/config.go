package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"nltools/internal/logger"
)

// ProviderConfig is one provider entry from the providers file: a name,
// the implementation kind the factory registry resolves, and the
// parameter map handed to the factory.
type ProviderConfig struct {
	Name   string            `yaml:"name"`
	Kind   string            `yaml:"kind"`
	Params map[string]string `yaml:"params"`
}

type providersFile struct {
	Providers []ProviderConfig `yaml:"providers"`
}

type Config struct {
	// Natural language configuration
	DefaultProvider  string
	DefaultChain     string
	ListenerEnabled  bool
	ExcludedFacets   []string
	ExcludedDocTypes []string
	Providers        []ProviderConfig

	// Document store
	StorePath string

	// Logging Configuration
	LogLevel      string
	LogFormat     string
	LogTimeFormat string
	LogOutput     string
}

func Load() (*Config, error) {
	config := &Config{
		DefaultProvider:  getEnv("NL_DEFAULT_PROVIDER", "google"),
		DefaultChain:     getEnv("NL_DEFAULT_CHAIN", "default-document-processing"),
		ListenerEnabled:  getEnv("NL_LISTENER_ENABLED", "false") == "true",
		ExcludedFacets:   splitList(getEnv("NL_EXCLUDED_FACETS", "")),
		ExcludedDocTypes: splitList(getEnv("NL_EXCLUDED_DOCTYPES", "")),
		StorePath:        getEnv("NL_STORE_PATH", "documents.db"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		LogFormat:        getEnv("LOG_FORMAT", "console"),
		LogTimeFormat:    getEnv("LOG_TIME_FORMAT", "2006-01-02T15:04:05Z07:00"),
		LogOutput:        getEnv("LOG_OUTPUT", "stdout"),
	}

	if providersPath := getEnv("NL_PROVIDERS_FILE", ""); providersPath != "" {
		providers, err := loadProviders(providersPath)
		if err != nil {
			return nil, fmt.Errorf("load providers file: %w", err)
		}
		config.Providers = providers
	}
	if len(config.Providers) == 0 {
		// Single Google provider on default credentials
		config.Providers = []ProviderConfig{{Name: "google", Kind: "google"}}
	}

	return config, nil
}

func loadProviders(path string) ([]ProviderConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var file providersFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, err
	}
	for i, p := range file.Providers {
		if p.Name == "" {
			return nil, fmt.Errorf("provider entry %d has no name", i)
		}
		if p.Kind == "" {
			file.Providers[i].Kind = p.Name
		}
	}
	return file.Providers, nil
}

// GetLoggerConfig returns a logger configuration from the main config
func (c *Config) GetLoggerConfig() logger.LogConfig {
	return logger.LogConfig{
		Level:      c.LogLevel,
		Format:     c.LogFormat,
		TimeFormat: c.LogTimeFormat,
		Output:     c.LogOutput,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
