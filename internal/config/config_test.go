package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Search.Provider != "bing" {
		t.Fatalf("unexpected default provider %q", cfg.Search.Provider)
	}
	if cfg.Search.MaxRetries != 3 {
		t.Fatalf("unexpected default max retries %d", cfg.Search.MaxRetries)
	}
	if cfg.Search.RetryDelay() != 2*time.Second {
		t.Fatalf("unexpected default retry delay %v", cfg.Search.RetryDelay())
	}
	if cfg.Search.OverFetchFactor != 3 {
		t.Fatalf("unexpected default over-fetch factor %d", cfg.Search.OverFetchFactor)
	}
	if cfg.Fetch.DelayMin() != time.Second || cfg.Fetch.DelayMax() != 3*time.Second {
		t.Fatalf("unexpected pacing bounds %v..%v", cfg.Fetch.DelayMin(), cfg.Fetch.DelayMax())
	}
	if cfg.Sentiment.Mode != "lexicon" {
		t.Fatalf("unexpected default sentiment mode %q", cfg.Sentiment.Mode)
	}
	if cfg.Export.OutputDir != "." {
		t.Fatalf("unexpected default output dir %q", cfg.Export.OutputDir)
	}
}

func TestLoadMergesYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
search:
  provider: rss
  maxRetries: 5
fetch:
  delayMinSeconds: 2
sentiment:
  mode: remote
  endpoint: http://inference.local:8000
export:
  outputDir: /tmp/reports
`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv(configPathEnv, path)

	cfg := Load()

	if cfg.Search.Provider != "rss" {
		t.Fatalf("provider not merged: %q", cfg.Search.Provider)
	}
	if cfg.Search.MaxRetries != 5 {
		t.Fatalf("maxRetries not merged: %d", cfg.Search.MaxRetries)
	}
	if cfg.Fetch.DelayMinSeconds != 2 {
		t.Fatalf("delayMinSeconds not merged: %d", cfg.Fetch.DelayMinSeconds)
	}
	if cfg.Sentiment.Mode != "remote" || cfg.Sentiment.Endpoint != "http://inference.local:8000" {
		t.Fatalf("sentiment section not merged: %+v", cfg.Sentiment)
	}
	if cfg.Export.OutputDir != "/tmp/reports" {
		t.Fatalf("outputDir not merged: %q", cfg.Export.OutputDir)
	}
	// Untouched values keep their defaults.
	if cfg.Search.RetryDelaySeconds != 2 {
		t.Fatalf("retryDelaySeconds default lost: %d", cfg.Search.RetryDelaySeconds)
	}
}

func TestLoadSurvivesMissingConfigFile(t *testing.T) {
	t.Setenv(configPathEnv, filepath.Join(t.TempDir(), "missing.yaml"))

	cfg := Load()
	if cfg.Search.Provider != "bing" {
		t.Fatalf("expected defaults for missing file, got provider %q", cfg.Search.Provider)
	}
}

func TestLoadAppliesEnvOverrides(t *testing.T) {
	t.Setenv(databaseDSNEnv, "postgres://localhost/newspulse")
	t.Setenv(sentimentModeEnv, "remote")
	t.Setenv(sentimentKeyEnv, "remote-key")
	t.Setenv(exportOutputEnv, "/var/reports")

	cfg := Load()

	if cfg.Database.DSN != "postgres://localhost/newspulse" {
		t.Fatalf("dsn override missing: %q", cfg.Database.DSN)
	}
	if cfg.Sentiment.Mode != "remote" {
		t.Fatalf("mode override missing: %q", cfg.Sentiment.Mode)
	}
	if cfg.Sentiment.APIKey != "remote-key" {
		t.Fatalf("api key override missing: %q", cfg.Sentiment.APIKey)
	}
	if cfg.Export.OutputDir != "/var/reports" {
		t.Fatalf("output dir override missing: %q", cfg.Export.OutputDir)
	}
}

func TestOpenAIKeyOnlyAppliesInOpenAIMode(t *testing.T) {
	t.Setenv(openAIAPIKeyEnv, "sk-test")

	cfg := Load()
	if cfg.Sentiment.APIKey == "sk-test" {
		t.Fatal("OPENAI_API_KEY must not apply in lexicon mode")
	}

	t.Setenv(sentimentModeEnv, "openai")
	cfg = Load()
	if cfg.Sentiment.APIKey != "sk-test" {
		t.Fatalf("OPENAI_API_KEY not applied in openai mode: %q", cfg.Sentiment.APIKey)
	}
}
