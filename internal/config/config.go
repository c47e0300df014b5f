package config

import (
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	configPathEnv     = "NEWSPULSE_CONFIG"
	databaseDSNEnv    = "DATABASE_DSN"
	openAIAPIKeyEnv   = "OPENAI_API_KEY"
	sentimentKeyEnv   = "SENTIMENT_API_KEY"
	sentimentModeEnv  = "SENTIMENT_MODE"
	exportOutputEnv   = "NEWSPULSE_EXPORT_DIR"
	defaultBingSearch = "https://www.bing.com/news/search"
	defaultUserAgent  = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
)

// Config holds high-level settings required across the application.
type Config struct {
	Logging   LoggingConfig   `yaml:"logging"`
	Search    SearchConfig    `yaml:"search"`
	Fetch     FetchConfig     `yaml:"fetch"`
	Sentiment SentimentConfig `yaml:"sentiment"`
	Database  DatabaseConfig  `yaml:"database"`
	Export    ExportConfig    `yaml:"export"`
}

// LoggingConfig controls the console log level.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// SearchConfig describes the search provider and its retry policy.
type SearchConfig struct {
	Provider          string `yaml:"provider"`
	BaseURL           string `yaml:"baseUrl"`
	FeedURL           string `yaml:"feedUrl"`
	UserAgent         string `yaml:"userAgent"`
	MaxRetries        int    `yaml:"maxRetries"`
	RetryDelaySeconds int    `yaml:"retryDelaySeconds"`
	OverFetchFactor   int    `yaml:"overFetchFactor"`
	TimeoutSeconds    int    `yaml:"timeoutSeconds"`
}

// RetryDelay resolves the backoff base as a duration.
func (s SearchConfig) RetryDelay() time.Duration {
	return time.Duration(s.RetryDelaySeconds) * time.Second
}

// Timeout resolves the per-request network timeout.
func (s SearchConfig) Timeout() time.Duration {
	return time.Duration(s.TimeoutSeconds) * time.Second
}

// FetchConfig tunes per-article download behaviour, including the randomized
// pacing delay applied before each fetch.
type FetchConfig struct {
	TimeoutSeconds  int   `yaml:"timeoutSeconds"`
	DelayMinSeconds int   `yaml:"delayMinSeconds"`
	DelayMaxSeconds int   `yaml:"delayMaxSeconds"`
	MaxBodyBytes    int64 `yaml:"maxBodyBytes"`
}

// Timeout resolves the per-article network timeout.
func (f FetchConfig) Timeout() time.Duration {
	return time.Duration(f.TimeoutSeconds) * time.Second
}

// DelayMin resolves the lower pacing bound.
func (f FetchConfig) DelayMin() time.Duration {
	return time.Duration(f.DelayMinSeconds) * time.Second
}

// DelayMax resolves the upper pacing bound.
func (f FetchConfig) DelayMax() time.Duration {
	return time.Duration(f.DelayMaxSeconds) * time.Second
}

// SentimentConfig selects and configures the sentiment classifier.
// Mode is one of "lexicon", "remote", "openai".
type SentimentConfig struct {
	Mode     string `yaml:"mode"`
	Endpoint string `yaml:"endpoint"`
	APIKey   string `yaml:"apiKey"`
	Model    string `yaml:"model"`
}

// DatabaseConfig describes the optional harvest-history store.
type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

// ExportConfig controls where report files land.
type ExportConfig struct {
	OutputDir string `yaml:"outputDir"`
}

// Load reads YAML configuration (if present) and applies environment overrides.
func Load() Config {
	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()
	return cfg
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(databaseDSNEnv); v != "" {
		c.Database.DSN = v
	}

	if v := os.Getenv(sentimentModeEnv); v != "" {
		c.Sentiment.Mode = v
	}

	if v := os.Getenv(sentimentKeyEnv); v != "" {
		c.Sentiment.APIKey = v
	}

	// The OpenAI key only applies when the classifier actually runs in
	// openai mode, so a developer shell with the variable set does not
	// silently override a remote-mode key.
	if v := os.Getenv(openAIAPIKeyEnv); v != "" && c.Sentiment.Mode == "openai" {
		c.Sentiment.APIKey = v
	}

	if v := os.Getenv(exportOutputEnv); v != "" {
		c.Export.OutputDir = v
	}
}

func mergeConfig(base, override Config) Config {
	if override.Logging.Level != "" {
		base.Logging.Level = override.Logging.Level
	}

	if override.Search.Provider != "" {
		base.Search.Provider = override.Search.Provider
	}
	if override.Search.BaseURL != "" {
		base.Search.BaseURL = override.Search.BaseURL
	}
	if override.Search.FeedURL != "" {
		base.Search.FeedURL = override.Search.FeedURL
	}
	if override.Search.UserAgent != "" {
		base.Search.UserAgent = override.Search.UserAgent
	}
	if override.Search.MaxRetries > 0 {
		base.Search.MaxRetries = override.Search.MaxRetries
	}
	if override.Search.RetryDelaySeconds > 0 {
		base.Search.RetryDelaySeconds = override.Search.RetryDelaySeconds
	}
	if override.Search.OverFetchFactor > 0 {
		base.Search.OverFetchFactor = override.Search.OverFetchFactor
	}
	if override.Search.TimeoutSeconds > 0 {
		base.Search.TimeoutSeconds = override.Search.TimeoutSeconds
	}

	if override.Fetch.TimeoutSeconds > 0 {
		base.Fetch.TimeoutSeconds = override.Fetch.TimeoutSeconds
	}
	if override.Fetch.DelayMinSeconds > 0 {
		base.Fetch.DelayMinSeconds = override.Fetch.DelayMinSeconds
	}
	if override.Fetch.DelayMaxSeconds > 0 {
		base.Fetch.DelayMaxSeconds = override.Fetch.DelayMaxSeconds
	}
	if override.Fetch.MaxBodyBytes > 0 {
		base.Fetch.MaxBodyBytes = override.Fetch.MaxBodyBytes
	}

	if override.Sentiment.Mode != "" {
		base.Sentiment.Mode = override.Sentiment.Mode
	}
	if override.Sentiment.Endpoint != "" {
		base.Sentiment.Endpoint = override.Sentiment.Endpoint
	}
	if override.Sentiment.APIKey != "" {
		base.Sentiment.APIKey = override.Sentiment.APIKey
	}
	if override.Sentiment.Model != "" {
		base.Sentiment.Model = override.Sentiment.Model
	}

	if override.Database.DSN != "" {
		base.Database.DSN = override.Database.DSN
	}

	if override.Export.OutputDir != "" {
		base.Export.OutputDir = override.Export.OutputDir
	}

	return base
}

func defaultConfig() Config {
	return Config{
		Logging: LoggingConfig{Level: "info"},
		Search: SearchConfig{
			Provider:          "bing",
			BaseURL:           defaultBingSearch,
			FeedURL:           defaultBingSearch,
			UserAgent:         defaultUserAgent,
			MaxRetries:        3,
			RetryDelaySeconds: 2,
			OverFetchFactor:   3,
			TimeoutSeconds:    15,
		},
		Fetch: FetchConfig{
			TimeoutSeconds:  15,
			DelayMinSeconds: 1,
			DelayMaxSeconds: 3,
			MaxBodyBytes:    10 << 20,
		},
		Sentiment: SentimentConfig{
			Mode:  "lexicon",
			Model: "gpt-4o-mini",
		},
		Database: DatabaseConfig{DSN: ""},
		Export:   ExportConfig{OutputDir: "."},
	}
}
