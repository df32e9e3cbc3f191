// Package cli implements loanctl, a command line front end for the
// amortization engine.
package cli

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

// NewRootCmd builds the loanctl command tree
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "loanctl",
		Short: "Fixed-rate loan calculator",
		Long: `loanctl computes level monthly payments and amortization schedules for
fixed-rate loans using exact decimal arithmetic, and issues API tokens.`,
		SilenceUsage: true,
	}
	root.AddCommand(newPaymentCmd())
	root.AddCommand(newScheduleCmd())
	root.AddCommand(newTokenCmd())
	return root
}

// Execute runs loanctl with os.Args
func Execute() error {
	return NewRootCmd().Execute()
}

// addTermsFlags registers the loan terms shared by payment and schedule
func addTermsFlags(cmd *cobra.Command) {
	cmd.Flags().String("amount", "", "Principal amount, e.g. 200000 or 1500.50")
	cmd.Flags().String("apr", "", "Annual percentage rate, e.g. 6 or 5.5")
	cmd.Flags().Int("term", 0, "Term in months")
	cmd.MarkFlagRequired("amount")
	cmd.MarkFlagRequired("apr")
	cmd.MarkFlagRequired("term")
}

func readTerms(cmd *cobra.Command) (decimal.Decimal, decimal.Decimal, int, error) {
	amountStr, _ := cmd.Flags().GetString("amount")
	aprStr, _ := cmd.Flags().GetString("apr")
	term, _ := cmd.Flags().GetInt("term")

	amount, err := decimal.NewFromString(amountStr)
	if err != nil {
		return decimal.Zero, decimal.Zero, 0, fmt.Errorf("invalid --amount %q: %w", amountStr, err)
	}
	apr, err := decimal.NewFromString(aprStr)
	if err != nil {
		return decimal.Zero, decimal.Zero, 0, fmt.Errorf("invalid --apr %q: %w", aprStr, err)
	}
	return amount, apr, term, nil
}
