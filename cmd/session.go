package cmd

import (
	"fmt"
	"os"

	"github.com/foodrescue/rescue-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newSessionCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Manage donation sessions",
	}

	cmd.AddCommand(
		newSessionListCmd(app),
		newSessionMergeCmd(app),
		newSessionExportCmd(app),
	)

	return cmd
}

func newSessionListCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored sessions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ids, err := app.service.ListSessions(cmd.Context())
			if err != nil {
				return err
			}

			for _, id := range ids {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), id)
			}

			return nil
		},
	}
}

func newSessionMergeCmd(app *app) *cobra.Command {
	var from string
	var into string

	cmd := &cobra.Command{
		Use:   "merge",
		Short: "Merge one session's records into another",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			merged, err := app.service.MergeSessions(cmd.Context(), domain.SessionID(into), domain.SessionID(from))
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "merged %s into %s (%d records)\n", from, into, len(merged.Records))
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "Source session ID")
	cmd.Flags().StringVar(&into, "into", "", "Destination session ID")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("into")

	return cmd
}

func newSessionExportCmd(app *app) *cobra.Command {
	var sessionID string
	var outPath string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a session's records as CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			id := domain.SessionID(sessionID)
			if sessionID == "" {
				id = defaultSessionID(app.now())
			}

			if outPath == "" {
				return app.service.ExportCSV(cmd.Context(), id, cmd.OutOrStdout())
			}

			file, err := os.Create(outPath)
			if err != nil {
				return fmt.Errorf("create export file: %w", err)
			}
			defer func() { _ = file.Close() }()

			if err := app.service.ExportCSV(cmd.Context(), id, file); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "exported %s to %s\n", id, outPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&sessionID, "session", "", "Session ID (default: today's daily session)")
	cmd.Flags().StringVar(&outPath, "out", "", "Output file (default: stdout)")

	return cmd
}
