package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Dan9191/loan-service/internal/amortization"
)

func newScheduleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Print the first months of the amortization schedule",
		Args:  cobra.NoArgs,
		RunE:  runSchedule,
	}
	addTermsFlags(cmd)
	cmd.Flags().Int("preview", amortization.DefaultPreviewMonths, "Number of months to print")
	return cmd
}

func runSchedule(cmd *cobra.Command, args []string) error {
	amount, apr, term, err := readTerms(cmd)
	if err != nil {
		return err
	}
	preview, _ := cmd.Flags().GetInt("preview")

	entries, err := amortization.SchedulePreview(amount, apr, term, preview)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "MONTH\tINTEREST\tPRINCIPAL\tBALANCE\t")
	for _, e := range entries {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t\n",
			e.Month,
			e.InterestPaid.StringFixed(2),
			e.PrincipalPaid.StringFixed(2),
			e.RemainingBalance.StringFixed(2),
		)
	}
	return w.Flush()
}
