package config

import (
	"errors"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrMissingAPIKey is returned when no Groq credential can be resolved from
// the environment, the runtime override, or the config file.
var ErrMissingAPIKey = errors.New("no Groq API key: set GROQ_API_KEY, pass --api-key, or set groq.api_key in the config file")

type Config struct {
	Env    string `yaml:"env"`
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`
	Groq struct {
		APIKey         string  `yaml:"api_key"`
		BaseURL        string  `yaml:"base_url"`
		Model          string  `yaml:"model"`
		Temperature    float64 `yaml:"temperature"`
		MaxTokens      int     `yaml:"max_tokens"`
		TopP           float64 `yaml:"top_p"`
		ConnectTimeout string  `yaml:"connect_timeout"`
		RequestTimeout string  `yaml:"request_timeout"`
	} `yaml:"groq"`
}

// Load reads YAML config from path. A missing file is not an error: defaults,
// flags, and environment variables still apply.
func Load(path string) (Config, error) {
	cfg := Config{}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// ResolveAPIKey resolves the Groq credential once at startup: environment
// variable first, then the runtime override (flag), then the config file.
func (c Config) ResolveAPIKey(override string) (string, error) {
	if key := strings.TrimSpace(os.Getenv("GROQ_API_KEY")); key != "" {
		return key, nil
	}
	if key := strings.TrimSpace(override); key != "" {
		return key, nil
	}
	if key := strings.TrimSpace(c.Groq.APIKey); key != "" {
		return key, nil
	}
	return "", ErrMissingAPIKey
}

// DurationOr parses a duration string or returns the fallback if empty or
// malformed.
func DurationOr(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}
