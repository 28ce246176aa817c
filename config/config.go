package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	HTTP    HTTPConfig    `yaml:"http"`
	Backend BackendConfig `yaml:"backend"`
	Session SessionConfig `yaml:"session"`
	Payment PaymentConfig `yaml:"payment"`
	Banner  BannerConfig  `yaml:"banner"`
}

type HTTPConfig struct {
	Address string `yaml:"address"`
}

type BackendConfig struct {
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

func (b BackendConfig) Timeout() time.Duration {
	if b.TimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(b.TimeoutSeconds) * time.Second
}

type SessionConfig struct {
	// Storage selects where encrypted session entries live: "file" or "redis".
	Storage    string      `yaml:"storage"`
	FilePath   string      `yaml:"file_path"`
	Redis      RedisConfig `yaml:"redis"`
	Passphrase string      `yaml:"passphrase"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type PaymentConfig struct {
	Currency     string `yaml:"currency"`
	MerchantName string `yaml:"merchant_name"`
	Description  string `yaml:"description"`
	ThemeColor   string `yaml:"theme_color"`
}

type BannerConfig struct {
	DismissSeconds int `yaml:"dismiss_seconds"`
}

func (b BannerConfig) DismissAfter() time.Duration {
	if b.DismissSeconds <= 0 {
		return 5 * time.Second
	}
	return time.Duration(b.DismissSeconds) * time.Second
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	// The session passphrase must never live in the repo as a literal.
	if env := os.Getenv("SESSION_PASSPHRASE"); env != "" {
		cfg.Session.Passphrase = env
	}
	if cfg.Session.Passphrase == "" {
		return nil, fmt.Errorf("session passphrase is not configured")
	}

	return &cfg, nil
}
