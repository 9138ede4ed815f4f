// Package config loads planner settings from defaults, an optional YAML
// file, an optional .env file and the environment, in increasing precedence.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const ConfigPathEnv = "PLANNER_CONFIG"

type Config struct {
	Planner     PlannerConfig `yaml:"planner"`
	LLM         LLMConfig     `yaml:"llm"`
	HTTP        HTTPConfig    `yaml:"http"`
	Log         LogConfig     `yaml:"log"`
	PostgresURL string        `yaml:"postgres_url"`
	JWTSecret   string        `yaml:"jwt_secret"`
	RunCacheTTL string        `yaml:"run_cache_ttl"`

	// Warnings collects values that could not be coerced and were ignored.
	Warnings []string `yaml:"-"`
}

type PlannerConfig struct {
	MaxIterations        int     `yaml:"max_iterations"`
	Temperature          float32 `yaml:"temperature"`
	GeneratorTemperature float32 `yaml:"generator_temperature"`
}

type LLMConfig struct {
	Provider          string `yaml:"provider"` // openai, gemini
	Model             string `yaml:"model"`
	OpenAIAPIKey      string `yaml:"openai_api_key"`
	GeminiAPIKey      string `yaml:"gemini_api_key"`
	BaseURL           string `yaml:"base_url"`
	EmbeddingProvider string `yaml:"embedding_provider"` // hash, openai
}

type HTTPConfig struct {
	Port string `yaml:"port"`
}

type LogConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

func DefaultConfig() *Config {
	return &Config{
		Planner: PlannerConfig{
			MaxIterations:        6,
			Temperature:          0.2,
			GeneratorTemperature: 0.2,
		},
		LLM: LLMConfig{
			Provider:          "openai",
			Model:             "gpt-4o-mini",
			EmbeddingProvider: "hash",
		},
		HTTP: HTTPConfig{
			Port: "8080",
		},
		Log: LogConfig{
			Level: "info",
		},
		RunCacheTTL: "24h",
	}
}

// APIKey returns the key of the selected provider.
func (c *Config) APIKey() string {
	if strings.EqualFold(c.LLM.Provider, "gemini") {
		return c.LLM.GeminiAPIKey
	}
	return c.LLM.OpenAIAPIKey
}

// RunCacheDuration parses RunCacheTTL, falling back to a day.
func (c *Config) RunCacheDuration() time.Duration {
	d, err := time.ParseDuration(c.RunCacheTTL)
	if err != nil || d <= 0 {
		return 24 * time.Hour
	}
	return d
}

// Load reads path (skipped when empty or missing) and envFile (skipped when
// empty or missing) over the defaults, then applies the environment.
func Load(path, envFile string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
		case err != nil:
			return nil, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	dotenv := map[string]string{}
	if envFile != "" {
		values, err := godotenv.Read(envFile)
		switch {
		case os.IsNotExist(err):
		case err != nil:
			return nil, fmt.Errorf("failed to read %s: %w", envFile, err)
		default:
			dotenv = values
		}
	}

	cfg.applyEnvOverrides(func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := dotenv[key]
		return v, ok
	})
	return cfg, nil
}

func (c *Config) applyEnvOverrides(lookup func(string) (string, bool)) {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}

	str("LLM_PROVIDER", &c.LLM.Provider)
	str("PLANNER_MODEL", &c.LLM.Model)
	str("OPENAI_API_KEY", &c.LLM.OpenAIAPIKey)
	str("GEMINI_API_KEY", &c.LLM.GeminiAPIKey)
	str("OPENAI_BASE_URL", &c.LLM.BaseURL)
	str("EMBEDDING_PROVIDER", &c.LLM.EmbeddingProvider)
	str("PORT", &c.HTTP.Port)
	str("POSTGRES_URL", &c.PostgresURL)
	str("JWT_SECRET", &c.JWTSecret)
	str("LOG_LEVEL", &c.Log.Level)
	str("RUN_CACHE_TTL", &c.RunCacheTTL)

	if v, ok := lookup("PLANNER_MAX_ITERATIONS"); ok && v != "" {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			c.Planner.MaxIterations = n
		} else {
			c.warn("PLANNER_MAX_ITERATIONS", v, c.Planner.MaxIterations)
		}
	}
	c.float32Override(lookup, "PLANNER_TEMPERATURE", &c.Planner.Temperature)
	c.float32Override(lookup, "PLANNER_GENERATOR_TEMPERATURE", &c.Planner.GeneratorTemperature)

	if v, ok := lookup("LOG_DEVELOPMENT"); ok && v != "" {
		if b, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
			c.Log.Development = b
		} else {
			c.warn("LOG_DEVELOPMENT", v, c.Log.Development)
		}
	}
}

func (c *Config) float32Override(lookup func(string) (string, bool), key string, dst *float32) {
	v, ok := lookup(key)
	if !ok || v == "" {
		return
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 32)
	if err != nil {
		c.warn(key, v, *dst)
		return
	}
	*dst = float32(f)
}

func (c *Config) warn(key, value string, kept any) {
	c.Warnings = append(c.Warnings, fmt.Sprintf("%s=%q is not valid, keeping %v", key, value, kept))
}
