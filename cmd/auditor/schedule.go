package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"content_auditor/internal/scheduler"
)

func (a *app) scheduleCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "schedule",
		Short: "Sync every configured site on the configured cron schedule",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(a.cfg.Sites) == 0 {
				return errors.New("no sites configured")
			}

			sites, closeFn, err := a.snapshotServices(a.cfg.Sites)
			if err != nil {
				return err
			}
			defer closeFn()

			sched, err := scheduler.NewScheduler(sites, scheduler.Config{
				Schedule:   a.cfg.Sync.Schedule,
				Mode:       a.cfg.Sync.Mode,
				RunTimeout: a.cfg.Sync.RunTimeout,
				RunOnStart: a.cfg.Sync.RunOnStart,
			}, a.logger)
			if err != nil {
				return fmt.Errorf("create scheduler: %w", err)
			}

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()
			notifyShutdown(ctx, a.logger, cancel)

			if err := sched.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return fmt.Errorf("scheduler: %w", err)
			}
			return nil
		},
	}
}
