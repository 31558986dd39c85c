// Package commands provides CLI command implementations for the content gate.
package commands

import (
	"github.com/spf13/cobra"

	"x402-gate/infrastructure/config"
)

// NewPricingCommand creates the pricing command.
func NewPricingCommand(container *config.Container) *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "pricing",
		Short: "Print the configured content price table",
		Long: `Prints each gated content type with its price in wei, as the gate
will quote it in 402 challenges.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := ValidateFormat(outputFormat); err != nil {
				return err
			}

			table, err := container.Config.PriceTable()
			if err != nil {
				return err
			}

			result := map[string]interface{}{
				"network":  container.Config.Chain.Network,
				"chain_id": container.Config.Chain.ChainID,
				"treasury": container.Config.Chain.TreasuryAddress,
			}
			prices := make(map[string]string, len(table))
			for contentType, price := range table {
				prices[string(contentType)] = price.String()
			}
			result["pricing_wei"] = prices

			formatter := NewOutputFormatter(outputFormat)
			return formatter.Print(result)
		},
	}

	// Add flags.
	cmd.Flags().StringVarP(&outputFormat, "output", "o", "yaml", "Output format (json, yaml)")

	return cmd
}
