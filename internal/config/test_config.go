package config

import "time"

// TestConfig returns a config suitable for testing
func TestConfig() *Config {
	return &Config{
		Provider: ProviderConfig{
			BaseURL:     "http://127.0.0.1:0",
			CatalogPath: "/webhook/lessons",
			IntroPath:   "/webhook/first-club",
			FAQPath:     "/webhook/faq",
			HTTPTimeout: 5 * time.Second,
			UserAgent:   "lessonbox-test/1.0",
		},
		Cache: CacheConfig{
			Path:   "", // tests supply a temp path
			Key:    "lessons-cache",
			MaxAge: 24 * time.Hour,
		},
		Refresh: defaultConfig().Refresh,
		Logging: LoggingConfig{Level: "error"},
	}
}
