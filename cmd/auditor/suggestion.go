package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"content_auditor/internal/approval"
	"content_auditor/internal/domain"
	"content_auditor/internal/service"
	"content_auditor/internal/storage/postgres"
)

func (a *app) suggestionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "suggestion",
		Short: "Review rewrite suggestions edit by edit",
	}

	// withService opens the store for one subcommand invocation.
	withService := func(run func(cmd *cobra.Command, svc *service.SuggestionService, args []string) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			db, err := a.openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			pub, err := a.newPublisher()
			if err != nil {
				return err
			}
			if pub != nil {
				defer pub.Close()
			}

			svc := service.NewSuggestionService(
				postgres.NewSuggestionStore(db),
				postgres.NewTransactionManager(db),
				pub,
				a.logger,
			)
			return run(cmd, svc, args)
		}
	}

	importCmd := &cobra.Command{
		Use:   "import <file|->",
		Short: "Import a suggestion document",
		Args:  cobra.ExactArgs(1),
		RunE: withService(func(cmd *cobra.Command, svc *service.SuggestionService, args []string) error {
			data, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}
			sug, err := svc.Import(cmd.Context(), data)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %s (%d edits)\n", sug.ID, len(sug.Edits))
			return nil
		}),
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List suggestions with their approval status",
		Args:  cobra.NoArgs,
		RunE: withService(func(cmd *cobra.Command, svc *service.SuggestionService, args []string) error {
			all, err := svc.List(cmd.Context())
			if err != nil {
				return err
			}
			renderSuggestions(cmd.OutOrStdout(), all)
			return nil
		}),
	}

	showCmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Print one suggestion as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: withService(func(cmd *cobra.Command, svc *service.SuggestionService, args []string) error {
			sug, err := svc.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printSuggestion(cmd.OutOrStdout(), sug)
		}),
	}

	decide := func(use, short string, fn func(svc *service.SuggestionService, cmd *cobra.Command, id, editID string) (*domain.Suggestion, error)) *cobra.Command {
		return &cobra.Command{
			Use:   use + " <id> <edit-id>",
			Short: short,
			Args:  cobra.ExactArgs(2),
			RunE: withService(func(cmd *cobra.Command, svc *service.SuggestionService, args []string) error {
				sug, err := fn(svc, cmd, args[0], args[1])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", sug.ID, approval.Status(sug))
				return nil
			}),
		}
	}

	approveCmd := decide("approve", "Accept an edit as suggested",
		func(svc *service.SuggestionService, cmd *cobra.Command, id, editID string) (*domain.Suggestion, error) {
			return svc.Approve(cmd.Context(), id, editID)
		})
	rejectCmd := decide("reject", "Reject an edit",
		func(svc *service.SuggestionService, cmd *cobra.Command, id, editID string) (*domain.Suggestion, error) {
			return svc.Reject(cmd.Context(), id, editID)
		})
	resetCmd := decide("reset", "Return an edit to pending",
		func(svc *service.SuggestionService, cmd *cobra.Command, id, editID string) (*domain.Suggestion, error) {
			return svc.Reset(cmd.Context(), id, editID)
		})

	var text string
	modifyCmd := decide("modify", "Accept an edit with operator-supplied text",
		func(svc *service.SuggestionService, cmd *cobra.Command, id, editID string) (*domain.Suggestion, error) {
			return svc.Modify(cmd.Context(), id, editID, text)
		})
	modifyCmd.Flags().StringVar(&text, "text", "", "replacement text")
	_ = modifyCmd.MarkFlagRequired("text")

	var filter struct {
		priority string
		kind     string
	}
	batchCmd := &cobra.Command{
		Use:   "batch <id> <approve_all|reject_all>",
		Short: "Decide every matching edit at once",
		Args:  cobra.ExactArgs(2),
		RunE: withService(func(cmd *cobra.Command, svc *service.SuggestionService, args []string) error {
			sug, n, err := svc.Batch(cmd.Context(), args[0], domain.BatchAction(args[1]), domain.EditFilter{
				Priority: domain.Priority(filter.priority),
				Kind:     filter.kind,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d edits updated, %s\n", sug.ID, n, approval.Status(sug))
			return nil
		}),
	}
	batchCmd.Flags().StringVar(&filter.priority, "priority", "", "only edits of this priority")
	batchCmd.Flags().StringVar(&filter.kind, "kind", "", "only edits of this kind")

	cmd.AddCommand(importCmd, listCmd, showCmd, approveCmd, rejectCmd, modifyCmd, resetCmd, batchCmd)
	return cmd
}

func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read suggestion file: %w", err)
	}
	return data, nil
}

func renderSuggestions(w io.Writer, all []domain.Suggestion) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"ID", "Item", "Edits", "Status", "Updated"})
	for i := range all {
		s := &all[i]
		t.AppendRow(table.Row{s.ID, s.TargetItemID, len(s.Edits), approval.Status(s), s.UpdatedAt.Format("2006-01-02 15:04")})
	}
	t.Render()
}

func printSuggestion(w io.Writer, sug *domain.Suggestion) error {
	out := struct {
		*domain.Suggestion
		Status domain.OverallStatus `json:"status"`
	}{sug, approval.Status(sug)}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
