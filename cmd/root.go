package cmd

import "github.com/spf13/cobra"

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "rescue",
		Short:         "Food rescue CLI: log donations and generate impact reports",
		Long:          "rescue logs donation records into per-session JSON documents, computes summary and partner-allocation views, and generates donor-facing impact reports with an optional AI-assisted narrative.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newLogCmd(app),
		newReportCmd(app),
		newSessionCmd(app),
		newPartnersCmd(app),
		newMetricsCmd(app),
	)

	return rootCmd
}
