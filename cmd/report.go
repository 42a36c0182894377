package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	reportrender "github.com/foodrescue/rescue-cli/internal/adapters/render/report"
	"github.com/foodrescue/rescue-cli/internal/application"
	"github.com/foodrescue/rescue-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newReportCmd(app *app) *cobra.Command {
	var sessionID string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Generate the impact report for a session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runReport(cmd, app, sessionID, asJSON)
		},
	}

	cmd.Flags().StringVar(&sessionID, "session", "", "Session ID (default: today's daily session)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}

func runReport(cmd *cobra.Command, app *app, sessionID string, asJSON bool) error {
	id := domain.SessionID(sessionID)
	if sessionID == "" {
		id = defaultSessionID(app.now())
	}

	var payload application.SessionReport
	run := func(ctx context.Context) error {
		var err error
		payload, err = app.orchestrator.Run(ctx, id)
		return err
	}

	// The spinner is only worth showing when the AI call can make the
	// wait noticeable.
	if !asJSON && app.aiEnabled {
		if err := runReportSpinner(cmd.Context(), cmd.ErrOrStderr(), reportSpinnerLabel(id), run); err != nil {
			return err
		}
	} else {
		if err := run(cmd.Context()); err != nil {
			return err
		}
	}

	if asJSON {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(payload)
	}

	rendered, err := app.renderer(payload, reportrender.RenderOptions{Now: app.now()})
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
	return err
}
