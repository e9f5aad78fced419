package main

import (
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"content_auditor/internal/config"
	"content_auditor/internal/heuristic"
	"content_auditor/internal/llm"
	"content_auditor/internal/publisher"
	"content_auditor/internal/qualitative"
	"content_auditor/internal/ratelimit"
	"content_auditor/internal/service"
	"content_auditor/internal/source/wordpress"
	"content_auditor/internal/storage/postgres"
	redisstore "content_auditor/internal/storage/redis"
)

func (a *app) openDB() (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", a.cfg.Database.DSN())
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	a.logger.Info("connected to database")
	return db, nil
}

func (a *app) newSource(site config.SiteConfig) *wordpress.Source {
	api := a.cfg.API
	return wordpress.New(wordpress.Config{
		SiteID:            site.ID,
		BaseURL:           site.BaseURL,
		Username:          site.Username,
		AppPassword:       site.AppPassword,
		PerPage:           api.PerPage,
		Timeout:           api.Timeout,
		MaxAttempts:       api.Retry.MaxAttempts,
		InitialBackoff:    api.Retry.InitialBackoff,
		MaxBackoff:        api.Retry.MaxBackoff,
		RequestsPerSecond: api.RequestsPerSecond,
	}, a.logger)
}

// newPublisher returns nil when publishing is disabled.
func (a *app) newPublisher() (service.Publisher, error) {
	rc := a.cfg.RabbitMQ
	if !rc.Enabled {
		return nil, nil
	}
	pub, err := publisher.NewRabbitMQ(publisher.Config{
		URL:                  rc.URL,
		Exchange:             rc.Exchange,
		SyncRoutingKey:       rc.SyncRoutingKey,
		SyncQueue:            rc.SyncQueue,
		SuggestionRoutingKey: rc.SuggestionRoutingKey,
		SuggestionQueue:      rc.SuggestionQueue,
	}, a.logger)
	if err != nil {
		return nil, err
	}
	return pub, nil
}

// newSnapshotStore opens the configured backend. The returned close func
// releases its connection.
func (a *app) newSnapshotStore() (service.SnapshotStore, func(), error) {
	switch a.cfg.SnapshotStore {
	case config.StoreRedis:
		client, err := redisstore.NewClient(redisstore.Config{
			Address:  a.cfg.Redis.Address,
			Password: a.cfg.Redis.Password,
			DB:       a.cfg.Redis.DB,
		})
		if err != nil {
			return nil, nil, err
		}
		a.logger.Info("connected to redis", "address", a.cfg.Redis.Address)
		return redisstore.NewSnapshotStore(client), func() { client.Close() }, nil
	default:
		db, err := a.openDB()
		if err != nil {
			return nil, nil, err
		}
		store := postgres.NewSnapshotStore(db, postgres.NewTransactionManager(db))
		return store, func() { db.Close() }, nil
	}
}

// newQualitative returns nil when no provider is configured, which makes
// every qualitative section neutral.
func (a *app) newQualitative() (service.QualitativeAnalyzer, error) {
	ac := a.cfg.Analysis

	var client llm.Client
	switch ac.Provider {
	case config.ProviderNone:
		a.logger.Info("qualitative analysis disabled")
		return nil, nil
	case config.ProviderAnthropic:
		client = llm.NewAnthropicClient(llm.AnthropicConfig{
			BaseURL: ac.Endpoint,
			Model:   ac.Model,
			APIKey:  ac.APIKey,
			Timeout: ac.Timeout,
		})
	case config.ProviderOpenAI:
		client = llm.NewOpenAIClient(llm.OpenAIConfig{
			Endpoint: ac.Endpoint,
			Model:    ac.Model,
			APIKey:   ac.APIKey,
			Timeout:  ac.Timeout,
		})
	default:
		return nil, fmt.Errorf("unknown analysis provider %q", ac.Provider)
	}
	if ac.APIKey == "" {
		return nil, errors.New("analysis api_key is required unless provider is none")
	}

	limiter := ratelimit.NewWindow(ratelimit.Quota{
		RequestsPerMinute: ac.RequestsPerMinute,
		TokensPerMinute:   ac.TokensPerMinute,
	}, nil)

	return qualitative.NewAdapter(client, limiter, qualitative.Options{
		MaxBodyChars:    ac.MaxBodyChars,
		MaxOutputTokens: ac.MaxOutputTokens,
	}, a.logger), nil
}

func (a *app) newOrchestrator(site config.SiteConfig) (*service.Orchestrator, error) {
	qual, err := a.newQualitative()
	if err != nil {
		return nil, err
	}
	return service.NewOrchestrator(
		a.newSource(site),
		heuristic.NewAnalyzer(),
		qual,
		a.cfg.API.PerPage,
		a.cfg.Analysis.ItemDelay,
		a.logger,
	), nil
}
