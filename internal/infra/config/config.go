package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config aggregates runtime configuration used across the service.
type Config struct {
	App       AppConfig       `yaml:"app"`
	HTTP      HTTPConfig      `yaml:"http"`
	PageSpeed PageSpeedConfig `yaml:"pagespeed"`
	LLM       LLMConfig       `yaml:"llm"`
}

// AppConfig controls process level behavior.
type AppConfig struct {
	// Env selects the run mode: "local" enables gin debug mode,
	// anything else runs in release mode.
	Env string `yaml:"env"`
}

// HTTPConfig controls server level behavior.
type HTTPConfig struct {
	Address string `yaml:"address"`
}

// PageSpeedConfig contains PageSpeed Insights API settings.
type PageSpeedConfig struct {
	APIKey          string `yaml:"apiKey"`
	BaseURL         string `yaml:"baseUrl"`
	DefaultStrategy string `yaml:"defaultStrategy"`
}

// LLMConfig contains ChatGPT/OpenAI settings.
type LLMConfig struct {
	APIKey      string  `yaml:"apiKey"`
	BaseURL     string  `yaml:"baseUrl"`
	Model       string  `yaml:"model"`
	Temperature float32 `yaml:"temperature"`
	MaxTokens   int     `yaml:"maxTokens"`
}

// Load reads configuration from a YAML file and environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := defaultConfig()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat("configs/config.yaml"); err == nil {
		if err := hydrateFromFile(cfg, "configs/config.yaml"); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("APP_ENV"); v != "" {
		cfg.App.Env = v
	}
	if v := os.Getenv("HTTP_ADDRESS"); v != "" {
		cfg.HTTP.Address = v
	}
	if v := os.Getenv("PORT"); v != "" {
		cfg.HTTP.Address = ":" + v
	}
	if v := os.Getenv("PAGESPEED_API_KEY"); v != "" {
		cfg.PageSpeed.APIKey = v
	}
	if v := os.Getenv("PAGESPEED_BASE_URL"); v != "" {
		cfg.PageSpeed.BaseURL = v
	}
	if v := os.Getenv("PAGESPEED_STRATEGY"); v != "" {
		cfg.PageSpeed.DefaultStrategy = v
	}
	if v := os.Getenv("LLM_API_KEY"); v != "" {
		cfg.LLM.APIKey = v
	}
	if v := os.Getenv("LLM_BASE_URL"); v != "" {
		cfg.LLM.BaseURL = v
	}
	if v := os.Getenv("LLM_MODEL"); v != "" {
		cfg.LLM.Model = v
	}
	if v := os.Getenv("LLM_TEMPERATURE"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 32); err == nil {
			cfg.LLM.Temperature = float32(parsed)
		}
	}
	if v := os.Getenv("LLM_MAX_TOKENS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.LLM.MaxTokens = parsed
		}
	}
}

func defaultConfig() *Config {
	return &Config{
		App: AppConfig{
			Env: "local",
		},
		HTTP: HTTPConfig{
			Address: ":3001",
		},
		PageSpeed: PageSpeedConfig{
			BaseURL:         "https://www.googleapis.com/pagespeedonline/v5/runPagespeed",
			DefaultStrategy: "desktop",
		},
		LLM: LLMConfig{
			Model:       "gpt-4o-mini",
			Temperature: 0.4,
			MaxTokens:   2048,
		},
	}
}

// Validate ensures the configuration is safe to use.
func (c *Config) Validate() error {
	if c.HTTP.Address == "" {
		return errors.New("http.address cannot be empty")
	}
	if strings.TrimSpace(c.PageSpeed.BaseURL) == "" {
		return errors.New("pagespeed.baseUrl cannot be empty")
	}
	switch c.PageSpeed.DefaultStrategy {
	case "desktop", "mobile":
	default:
		return errors.New("pagespeed.defaultStrategy must be desktop or mobile")
	}
	if strings.TrimSpace(c.LLM.Model) == "" {
		return errors.New("llm.model cannot be empty")
	}
	if c.LLM.Temperature < 0 || c.LLM.Temperature > 2 {
		return errors.New("llm.temperature must be between 0 and 2")
	}
	if c.LLM.MaxTokens <= 0 {
		return errors.New("llm.maxTokens must be positive")
	}
	return nil
}
