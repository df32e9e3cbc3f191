package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Dan9191/loan-service/internal/middleware"
)

func newTokenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a bearer token for the loans API",
		Long: `Issue an HS256 bearer token accepted by the API when JWT_SECRET is set.
The secret defaults to the JWT_SECRET environment variable.`,
		Args: cobra.NoArgs,
		RunE: runToken,
	}
	cmd.Flags().String("secret", os.Getenv("JWT_SECRET"), "Signing secret")
	cmd.Flags().String("subject", "loanctl", "Token subject")
	cmd.Flags().Duration("ttl", 24*time.Hour, "Token lifetime")
	return cmd
}

func runToken(cmd *cobra.Command, args []string) error {
	secret, _ := cmd.Flags().GetString("secret")
	subject, _ := cmd.Flags().GetString("subject")
	ttl, _ := cmd.Flags().GetDuration("ttl")

	if secret == "" {
		return fmt.Errorf("signing secret required: loanctl token --secret <secret> or set JWT_SECRET")
	}
	if ttl <= 0 {
		return fmt.Errorf("--ttl must be positive, got %s", ttl)
	}

	token, err := middleware.IssueToken(secret, subject, ttl)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}
