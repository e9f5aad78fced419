package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"content_auditor/internal/domain"
	"content_auditor/internal/report"
)

type assessOptions struct {
	site           string
	assessmentJSON string
	csvPath        string
	xlsxPath       string
	jsonPath       string
	worst          int
}

func (a *app) assessCommand() *cobra.Command {
	var opts assessOptions

	cmd := &cobra.Command{
		Use:   "assess",
		Short: "Score every matching item of a site and write the report",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runAssess(cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.site, "site", "", "site id (optional with a single configured site)")
	cmd.Flags().StringVar(&opts.assessmentJSON, "assessment-json", "", "assessment configuration override as JSON")
	cmd.Flags().StringVar(&opts.csvPath, "csv", "", "write the results as CSV")
	cmd.Flags().StringVar(&opts.xlsxPath, "xlsx", "", "write the results as an XLSX workbook")
	cmd.Flags().StringVar(&opts.jsonPath, "json", "", "write the full report as JSON")
	cmd.Flags().IntVar(&opts.worst, "worst", 10, "number of lowest-scoring items in the summary table")
	return cmd
}

func (a *app) runAssess(cmd *cobra.Command, opts assessOptions) error {
	ctx := cmd.Context()

	site, err := a.cfg.Site(opts.site)
	if err != nil {
		return err
	}

	assessment, err := assessmentOverride(a.cfg.Assessment, opts.assessmentJSON)
	if err != nil {
		return err
	}

	orch, err := a.newOrchestrator(site)
	if err != nil {
		return err
	}

	// First signal asks the run to stop after the current item.
	notifyShutdown(ctx, a.logger, func() { orch.Cancel() })

	logger := a.logger.With("site", site.ID)
	outcome, err := orch.Run(ctx, assessment, func(p domain.Progress) {
		logger.Info("progress",
			"status", p.Status,
			"current", p.Current,
			"total", p.Total,
			"percentage", p.Percentage,
			"title", p.CurrentTitle,
			"errors", len(p.Errors),
		)
	})
	if errors.Is(err, domain.ErrCancelled) {
		logger.Warn("assessment cancelled, no report written", "processed", len(outcome.Results))
		return err
	}
	if err != nil {
		return fmt.Errorf("run assessment: %w", err)
	}

	rep := outcome.Report
	if err := writeFile(opts.csvPath, func(f *os.File) error { return report.WriteCSV(f, rep) }); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	if err := writeFile(opts.xlsxPath, func(f *os.File) error { return report.WriteXLSX(f, rep) }); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	if err := writeFile(opts.jsonPath, func(f *os.File) error {
		enc := json.NewEncoder(f)
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	}); err != nil {
		return fmt.Errorf("write json: %w", err)
	}

	report.RenderSummary(cmd.OutOrStdout(), rep, opts.worst)
	return nil
}

// assessmentOverride decodes raw over base so unset fields keep their
// configured values.
func assessmentOverride(base domain.AssessmentConfig, raw string) (domain.AssessmentConfig, error) {
	if strings.TrimSpace(raw) == "" {
		return base, nil
	}

	cfg := base
	cfg.EnabledChecks = domain.EnabledChecks{}
	for k, v := range base.EnabledChecks {
		cfg.EnabledChecks[k] = v
	}
	if base.ScoreThreshold != nil {
		cfg.ScoreThreshold = domain.ScoreThresholdOf(*base.ScoreThreshold)
	}
	if err := json.Unmarshal([]byte(raw), &cfg); err != nil {
		return base, fmt.Errorf("parse assessment override: %w", err)
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return base, fmt.Errorf("invalid assessment override: %w", err)
	}
	return cfg, nil
}

func writeFile(path string, write func(f *os.File) error) error {
	if path == "" {
		return nil
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

