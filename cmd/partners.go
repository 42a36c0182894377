package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newPartnersCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "partners",
		Short: "Manage the partner roster",
	}

	cmd.AddCommand(newPartnersListCmd(app))

	return cmd
}

func newPartnersListCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List configured partner organizations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			partners, err := app.partners.Partners(cmd.Context())
			if err != nil {
				return err
			}

			if len(partners) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no partners configured")
				return nil
			}

			for _, partner := range partners {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%.1f\n", partner.ID, partner.Name, partner.Weight)
			}

			return nil
		},
	}
}
