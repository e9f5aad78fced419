package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"content_auditor/internal/config"
	"content_auditor/internal/domain"
	"content_auditor/internal/scheduler"
	"content_auditor/internal/service"
)

func (a *app) syncCommand() *cobra.Command {
	var (
		siteID string
		mode   string
	)

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Update the local snapshot of one or all sites",
		RunE: func(cmd *cobra.Command, args []string) error {
			sites := a.cfg.Sites
			if siteID != "" {
				site, err := a.cfg.Site(siteID)
				if err != nil {
					return err
				}
				sites = []config.SiteConfig{site}
			}
			if len(sites) == 0 {
				return errors.New("no sites configured")
			}

			syncMode := a.cfg.Sync.Mode
			if mode != "" {
				syncMode = domain.SyncMode(mode)
			}

			services, closeFn, err := a.snapshotServices(sites)
			if err != nil {
				return err
			}
			defer closeFn()

			var errs []error
			for _, s := range services {
				stats, err := s.Syncer.Sync(cmd.Context(), syncMode)
				if err != nil {
					errs = append(errs, fmt.Errorf("sync %s: %w", s.ID, err))
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: fetched=%d new=%d updated=%d deleted=%d total=%d persisted=%t\n",
					s.ID, stats.Fetched, stats.New, stats.Updated, stats.Deleted, stats.Total, stats.Persisted)
			}
			return errors.Join(errs...)
		},
	}
	cmd.Flags().StringVar(&siteID, "site", "", "site id (default: every configured site)")
	cmd.Flags().StringVar(&mode, "mode", "", "full or incremental (default from config)")
	return cmd
}

// snapshotServices builds one snapshot service per site over a shared store
// and publisher.
func (a *app) snapshotServices(sites []config.SiteConfig) ([]scheduler.Site, func(), error) {
	store, closeStore, err := a.newSnapshotStore()
	if err != nil {
		return nil, nil, err
	}

	pub, err := a.newPublisher()
	if err != nil {
		closeStore()
		return nil, nil, err
	}

	out := make([]scheduler.Site, 0, len(sites))
	for _, site := range sites {
		svc := service.NewSnapshotService(
			a.newSource(site),
			store,
			pub,
			site.Criteria(),
			a.cfg.API.PerPage,
			a.logger,
		)
		out = append(out, scheduler.Site{ID: site.ID, Syncer: svc})
	}

	closeFn := func() {
		if pub != nil {
			pub.Close()
		}
		closeStore()
	}
	return out, closeFn, nil
}
