package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ppiankov/govgate/internal/gate"
)

var tokenCount int

// tokenCmd groups approval token helpers
var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Generate and check approval tokens",
	Long: `Approval tokens mark high-risk content as reviewed. A reviewer adds the
token to the page's disclaimer; the publish gate accepts it only when it is
on the configured allowlist (governance.approval_tokens or
GOVERNANCE_APPROVAL_TOKENS).`,
}

var tokenGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate random approval tokens",
	Long: `Generate prints new 32-character tokens from a cryptographic random source.
Add them to the allowlist before handing them to reviewers.

Example:
  govgate token generate
  govgate token generate --count 5`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if tokenCount < 1 {
			return fmt.Errorf("--count must be at least 1")
		}
		for i := 0; i < tokenCount; i++ {
			token, err := gate.GenerateApprovalToken()
			if err != nil {
				return fmt.Errorf("generate token: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
		}
		return nil
	},
}

var tokenCheckCmd = &cobra.Command{
	Use:   "check <token>",
	Short: "Check a token against the configured allowlist",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(viper.GetViper())
		if err != nil {
			return err
		}

		check := gate.ValidateApprovalToken(args[0], allowlistFrom(cfg))
		if !check.Valid {
			fmt.Fprintf(cmd.OutOrStdout(), "✗ %s\n", check.Message)
			return fmt.Errorf("%w: invalid approval token", ErrBlocked)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ %s\n", check.Message)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tokenCmd)
	tokenCmd.AddCommand(tokenGenerateCmd)
	tokenCmd.AddCommand(tokenCheckCmd)

	tokenGenerateCmd.Flags().IntVar(&tokenCount, "count", 1, "number of tokens to generate")
}
