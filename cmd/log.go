package cmd

import (
	"fmt"
	"time"

	"github.com/foodrescue/rescue-cli/internal/domain"
	"github.com/spf13/cobra"
)

// mealsPerKg is only a convenience default for the --meals flag; the
// stored estimate is always whatever the record carries.
const mealsPerKg = 1.5

func newLogCmd(app *app) *cobra.Command {
	var (
		sessionID string
		donor     string
		foodType  string
		weightKg  float64
		meals     int
		store     string
		timestamp string
	)

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Log a donation record",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			id := domain.SessionID(sessionID)
			if sessionID == "" {
				id = defaultSessionID(app.now())
			}

			recordedAt := app.now()
			if timestamp != "" {
				parsed, err := time.Parse(time.RFC3339, timestamp)
				if err != nil {
					return fmt.Errorf("parse --timestamp: %w", err)
				}
				recordedAt = parsed
			}

			if meals < 0 {
				meals = int(weightKg*mealsPerKg + 0.5)
			}

			result, err := app.service.LogDonation(cmd.Context(), id, domain.DonationRecord{
				DonorName:     donor,
				FoodType:      foodType,
				WeightKg:      weightKg,
				MealsEstimate: meals,
				Store:         store,
				Timestamp:     recordedAt,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintln(out, result.Message)
			_, _ = fmt.Fprintf(out, "session %s: %.1f kg, %d meals, %d records\n",
				result.SessionID, result.Summary.TotalWeightKg, result.Summary.TotalMeals, result.Summary.RecordCount)
			_, _ = fmt.Fprintln(out, result.Report.Narrative)

			return nil
		},
	}

	cmd.Flags().StringVar(&sessionID, "session", "", "Session ID (default: today's daily session)")
	cmd.Flags().StringVar(&donor, "donor", "", "Donor name")
	cmd.Flags().StringVar(&foodType, "food", "", "Food type")
	cmd.Flags().Float64Var(&weightKg, "weight", 0, "Weight in kilograms")
	cmd.Flags().IntVar(&meals, "meals", -1, "Estimated meals (default: derived from weight)")
	cmd.Flags().StringVar(&store, "store", "", "Originating store")
	cmd.Flags().StringVar(&timestamp, "timestamp", "", "Record timestamp, RFC 3339 (default: now)")

	_ = cmd.MarkFlagRequired("donor")
	_ = cmd.MarkFlagRequired("food")
	_ = cmd.MarkFlagRequired("weight")
	_ = cmd.MarkFlagRequired("store")

	return cmd
}
