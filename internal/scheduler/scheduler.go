package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"content_auditor/internal/domain"
)

const DefaultRunTimeout = 5 * time.Minute

// Syncer defines the interface for sync operations.
type Syncer interface {
	Sync(ctx context.Context, mode domain.SyncMode) (*domain.SyncStats, error)
}

// Site pairs a site id with the syncer that owns its snapshot.
type Site struct {
	ID     string
	Syncer Syncer
}

type Config struct {
	Schedule   string
	Mode       domain.SyncMode
	RunTimeout time.Duration
	RunOnStart bool
}

// Scheduler runs a sync of every site on a cron schedule. A tick that fires
// while the previous one is still running is skipped.
type Scheduler struct {
	sites  []Site
	cfg    Config
	cron   *cron.Cron
	logger *slog.Logger
}

var parser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

func NewScheduler(sites []Site, cfg Config, logger *slog.Logger) (*Scheduler, error) {
	if cfg.RunTimeout <= 0 {
		cfg.RunTimeout = DefaultRunTimeout
	}
	if cfg.Mode == "" {
		cfg.Mode = domain.SyncIncremental
	}
	if _, err := parser.Parse(cfg.Schedule); err != nil {
		return nil, fmt.Errorf("parse schedule %q: %w", cfg.Schedule, err)
	}

	cl := cronLogger{logger: logger}
	c := cron.New(
		cron.WithParser(parser),
		cron.WithLogger(cl),
		cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
	)

	return &Scheduler{
		sites:  sites,
		cfg:    cfg,
		cron:   c,
		logger: logger,
	}, nil
}

// Start blocks until ctx is done. Runs in flight are cancelled through ctx
// and waited for before returning.
func (s *Scheduler) Start(ctx context.Context) error {
	_, err := s.cron.AddFunc(s.cfg.Schedule, func() { s.runAll(ctx) })
	if err != nil {
		return fmt.Errorf("schedule sync: %w", err)
	}

	s.logger.Info("scheduler started",
		"schedule", s.cfg.Schedule,
		"mode", s.cfg.Mode,
		"sites", len(s.sites),
	)

	if s.cfg.RunOnStart {
		s.runAll(ctx)
	}

	s.cron.Start()
	<-ctx.Done()

	<-s.cron.Stop().Done()
	s.logger.Info("scheduler stopped")
	return ctx.Err()
}

func (s *Scheduler) runAll(ctx context.Context) {
	for _, site := range s.sites {
		if ctx.Err() != nil {
			return
		}
		s.runSync(ctx, site)
	}
}

func (s *Scheduler) runSync(ctx context.Context, site Site) {
	syncCtx, cancel := context.WithTimeout(ctx, s.cfg.RunTimeout)
	defer cancel()

	if _, err := site.Syncer.Sync(syncCtx, s.cfg.Mode); err != nil {
		s.logger.Error("sync failed", "site", site.ID, "error", err)
	}
}

type cronLogger struct {
	logger *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Debug(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Error(msg, append(keysAndValues, "error", err)...)
}
