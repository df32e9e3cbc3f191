package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Dan9191/loan-service/internal/amortization"
)

func newPaymentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "payment",
		Short: "Print the monthly payment and whole-term totals",
		Args:  cobra.NoArgs,
		RunE:  runPayment,
	}
	addTermsFlags(cmd)
	return cmd
}

func runPayment(cmd *cobra.Command, args []string) error {
	amount, apr, term, err := readTerms(cmd)
	if err != nil {
		return err
	}
	summary, err := amortization.Totals(amount, apr, term)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Monthly payment: %s\n", summary.MonthlyPayment.StringFixed(2))
	fmt.Fprintf(out, "Total paid:      %s\n", summary.TotalPaid.StringFixed(2))
	fmt.Fprintf(out, "Total interest:  %s\n", summary.TotalInterest.StringFixed(2))
	return nil
}
