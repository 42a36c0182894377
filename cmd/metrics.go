package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newMetricsCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "metrics",
		Short: "Inspect process metrics",
	}

	cmd.AddCommand(newMetricsFlushCmd(app))

	return cmd
}

func newMetricsFlushCmd(app *app) *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "flush",
		Short: "Write the current metrics snapshot to a JSON file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if dir == "" {
				dir = app.config.GetString("metrics.dir")
			}

			path, err := app.metrics.Flush(dir, app.now())
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "Snapshot directory (default: metrics.dir from config)")

	return cmd
}
