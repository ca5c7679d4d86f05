package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Provider ProviderConfig `mapstructure:"provider"`
	Cache    CacheConfig    `mapstructure:"cache"`
	Refresh  RefreshConfig  `mapstructure:"refresh"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

type ProviderConfig struct {
	BaseURL     string        `mapstructure:"base_url"`
	CatalogPath string        `mapstructure:"catalog_path"`
	IntroPath   string        `mapstructure:"intro_path"`
	FAQPath     string        `mapstructure:"faq_path"`
	HTTPTimeout time.Duration `mapstructure:"http_timeout"`
	UserAgent   string        `mapstructure:"user_agent"`
}

type CacheConfig struct {
	Path   string        `mapstructure:"path"`
	Key    string        `mapstructure:"key"`
	MaxAge time.Duration `mapstructure:"max_age"`
	Mode   string        `mapstructure:"mode"`
}

// RefreshConfig describes the provider's publishing schedule. New content
// lands once a day shortly after Hour in the civil timezone at
// UTCOffsetHours; cached data is never trusted inside
// [WindowStart, WindowEnd).
type RefreshConfig struct {
	UTCOffsetHours int `mapstructure:"utc_offset_hours"`
	Hour           int `mapstructure:"hour"`
	WindowStart    int `mapstructure:"window_start"`
	WindowEnd      int `mapstructure:"window_end"`
}

type LoggingConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

func defaultConfig() *Config {
	homeDir, _ := os.UserHomeDir()
	dbPath := filepath.Join(homeDir, ".lessonbox.db")

	return &Config{
		Provider: ProviderConfig{
			BaseURL:     "https://sanya-kvo.up.railway.app",
			CatalogPath: "/webhook/lessons",
			IntroPath:   "/webhook/first-club",
			FAQPath:     "/webhook/faq",
			HTTPTimeout: 30 * time.Second,
			UserAgent:   "lessonbox/1.0",
		},
		Cache: CacheConfig{
			Path:   dbPath,
			Key:    "lessons-cache",
			MaxAge: 24 * time.Hour,
			Mode:   "",
		},
		Refresh: RefreshConfig{
			UTCOffsetHours: 3, // Moscow
			Hour:           10,
			WindowStart:    10,
			WindowEnd:      11,
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  "",
		},
	}
}

func Load(configPath string) (*Config, error) {
	v := viper.New()

	cfg := defaultConfig()
	v.SetDefault("provider", cfg.Provider)
	v.SetDefault("cache", cfg.Cache)
	v.SetDefault("refresh", cfg.Refresh)
	v.SetDefault("logging", cfg.Logging)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		homeDir, _ := os.UserHomeDir()
		configDir := filepath.Join(homeDir, ".config", "lessonbox")

		v.SetConfigName("config")
		v.SetConfigType("toml")
		v.AddConfigPath(configDir)
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("LESSONBOX")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	config.Cache.Path = expandPath(config.Cache.Path)
	config.Logging.File = expandPath(config.Logging.File)

	return &config, nil
}

// expandPath expands a leading ~ to the user's home directory.
func expandPath(path string) string {
	if len(path) >= 2 && path[:2] == "~/" {
		if homeDir, err := os.UserHomeDir(); err == nil {
			return filepath.Join(homeDir, path[2:])
		}
	}
	return path
}
