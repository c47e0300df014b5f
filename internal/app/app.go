package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"

	"newspulse/internal/aggregate"
	"newspulse/internal/config"
	"newspulse/internal/credibility"
	"newspulse/internal/domain"
	"newspulse/internal/export"
	"newspulse/internal/infrastructure/bing"
	"newspulse/internal/infrastructure/extract"
	"newspulse/internal/infrastructure/rssfeed"
	"newspulse/internal/infrastructure/sentiment"
	"newspulse/internal/infrastructure/storage"
	"newspulse/internal/logging"
	"newspulse/internal/ports"
	"newspulse/internal/search"
	"newspulse/internal/usecase"
)

// Application wires configuration to the harvest pipeline and its sinks.
type Application struct {
	cfg       config.Config
	harvester *usecase.Harvester
	history   *storage.PostgresRepository
	scorer    *credibility.Scorer
	exporter  *export.Writer
	logger    *slog.Logger
}

// Result bundles what one harvest hands to the caller: the bounded article
// list and the statistics derived from it.
type Result struct {
	Articles []domain.Article
	Stats    aggregate.Stats
}

// New builds a runnable application instance from configuration.
func New(cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	registry := search.NewRegistry()
	registry.Register(bing.New(
		&http.Client{Timeout: cfg.Search.Timeout()},
		bing.Config{
			BaseURL:    cfg.Search.BaseURL,
			UserAgent:  cfg.Search.UserAgent,
			MaxRetries: cfg.Search.MaxRetries,
			RetryDelay: cfg.Search.RetryDelay(),
		},
		baseLogger.With("component", "search.bing"),
	))
	registry.Register(rssfeed.New(
		&http.Client{Timeout: cfg.Search.Timeout()},
		rssfeed.Config{
			FeedURL:    cfg.Search.FeedURL,
			MaxRetries: cfg.Search.MaxRetries,
			RetryDelay: cfg.Search.RetryDelay(),
		},
		baseLogger.With("component", "search.rss"),
	))

	provider, err := registry.Resolve(cfg.Search.Provider)
	if err != nil {
		return nil, err
	}

	classifier, err := buildClassifier(cfg.Sentiment)
	if err != nil {
		return nil, err
	}

	extractor := extract.NewReadability(
		&http.Client{Timeout: cfg.Fetch.Timeout()},
		extract.Config{
			UserAgent:    cfg.Search.UserAgent,
			MaxBodyBytes: cfg.Fetch.MaxBodyBytes,
		},
		baseLogger.With("component", "extractor"),
	)

	fetcher := usecase.NewFetcher(usecase.FetcherDeps{
		Extractor:  extractor,
		Classifier: classifier,
		Source:     provider.Label(),
		DelayMin:   cfg.Fetch.DelayMin(),
		DelayMax:   cfg.Fetch.DelayMax(),
		Logger:     baseLogger.With("component", "fetcher"),
	})

	var history *storage.PostgresRepository
	var repository ports.HarvestRepository
	if cfg.Database.DSN != "" {
		db, err := sql.Open("postgres", cfg.Database.DSN)
		if err != nil {
			return nil, fmt.Errorf("open history database: %w", err)
		}
		history = storage.NewPostgresRepository(db)
		repository = history
	}

	harvester := usecase.NewHarvester(usecase.HarvesterDeps{
		Provider:   provider,
		Fetcher:    fetcher,
		Repository: repository,
		OverFetch:  cfg.Search.OverFetchFactor,
		Logger:     baseLogger.With("component", "harvester"),
	})

	return &Application{
		cfg:       cfg,
		harvester: harvester,
		history:   history,
		scorer:    credibility.NewScorer(baseLogger.With("component", "credibility")),
		exporter:  export.NewWriter(cfg.Export.OutputDir),
		logger:    baseLogger,
	}, nil
}

// Run executes a single harvest and derives its aggregate statistics.
func (a *Application) Run(ctx context.Context, req domain.HarvestRequest) (Result, error) {
	articles, err := a.harvester.Harvest(ctx, req)
	if err != nil {
		return Result{}, err
	}
	return Result{Articles: articles, Stats: aggregate.Compute(articles)}, nil
}

// Credibility scores an article URL at render time.
func (a *Application) Credibility(url string) float64 {
	return a.scorer.Score(url)
}

// Export validates the format name at the boundary and writes the report.
func (a *Application) Export(formatName string, res Result) (string, error) {
	format, err := export.ParseFormat(formatName)
	if err != nil {
		return "", err
	}
	return a.exporter.Write(format, res.Articles, res.Stats)
}

// RecentHarvests lists stored harvest IDs for a company, newest first.
// Errors when no history database is configured.
func (a *Application) RecentHarvests(ctx context.Context, company string, limit uint64) ([]string, error) {
	if a.history == nil {
		return nil, fmt.Errorf("harvest history requires a configured database DSN")
	}
	return a.history.RecentHarvests(ctx, company, limit)
}

func buildClassifier(cfg config.SentimentConfig) (ports.SentimentClassifier, error) {
	switch cfg.Mode {
	case "", "lexicon":
		return sentiment.NewLexicon(), nil
	case "remote":
		if cfg.Endpoint == "" {
			return nil, fmt.Errorf("sentiment mode %q requires an endpoint", cfg.Mode)
		}
		return sentiment.NewRemote(cfg.Endpoint, cfg.APIKey), nil
	case "openai":
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("sentiment mode %q requires an API key", cfg.Mode)
		}
		return sentiment.NewOpenAI(cfg.APIKey, cfg.Model), nil
	}
	return nil, fmt.Errorf("unknown sentiment mode %q", cfg.Mode)
}
