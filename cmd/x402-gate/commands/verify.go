// Package commands provides CLI command implementations for the content gate.
package commands

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"

	"x402-gate/domain/interfaces"
	"x402-gate/infrastructure/config"
)

// NewVerifyCommand creates the verify command for one-shot payment checks.
func NewVerifyCommand(container *config.Container) *cobra.Command {
	var (
		outputFormat string
		amount       string
		showBalance  bool
	)

	cmd := &cobra.Command{
		Use:   "verify [tx_hash] [sender]",
		Short: "Verify a payment transaction against the treasury",
		Long: `Checks a transaction on chain the same way the gate does: sender,
recipient, amount, and execution status. Useful for debugging rejected
payments without going through the HTTP flow.`,
		Args: cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			txHash := common.HexToHash(args[0])
			if !common.IsHexAddress(args[1]) {
				return fmt.Errorf("invalid sender address: %s", args[1])
			}
			sender := common.HexToAddress(args[1])

			expected := new(big.Int)
			if amount != "" {
				if _, ok := expected.SetString(amount, 10); !ok {
					return fmt.Errorf("invalid amount: %s", amount)
				}
			}

			if err := ValidateFormat(outputFormat); err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			container.Logger.Info("Verifying payment",
				"tx_hash", txHash.Hex(),
				"sender", sender.Hex(),
				"amount", expected.String())

			verification := container.Verifier.Verify(ctx, interfaces.VerifyRequest{
				TxHash:         txHash,
				ExpectedSender: sender,
				ExpectedAmount: expected,
				MaxAge:         container.Config.Payment.MaxTxAge,
			})

			result := map[string]interface{}{
				"tx_hash":  txHash.Hex(),
				"sender":   sender.Hex(),
				"verified": verification.Verified,
			}
			if verification.Reason != "" {
				result["reason"] = verification.Reason
			}
			if verification.Amount != nil {
				result["amount"] = verification.Amount.String()
			}

			if showBalance {
				balance, err := container.Verifier.Balance(ctx, sender)
				if err != nil {
					container.Logger.Warn("Failed to fetch balance", "error", err)
				} else {
					result["balance"] = balance.String()
				}
			}

			formatter := NewOutputFormatter(outputFormat)
			return formatter.Print(result)
		},
	}

	// Add flags.
	cmd.Flags().StringVarP(&outputFormat, "output", "o", "json", "Output format (json, yaml)")
	cmd.Flags().StringVarP(&amount, "amount", "a", "", "Expected amount in wei (default 0, any amount passes)")
	cmd.Flags().BoolVarP(&showBalance, "balance", "b", false, "Include the sender's current balance")

	return cmd
}
