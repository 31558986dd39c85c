// Package main is the entry point for the x402 content gate CLI application.
// It provides commands for serving the payment gate, verifying transactions,
// and inspecting the content price table.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"x402-gate/cmd/x402-gate/commands"
	"x402-gate/infrastructure/config"
)

func main() {
	exitCode := run()
	os.Exit(exitCode)
}

func run() int {
	// Create root command.
	rootCmd := &cobra.Command{
		Use:   "x402-gate",
		Short: "HTTP 402 micropayment content gate",
		Long: `A payment gate that meters access to content over HTTP using the
x402 flow: unpaid requests receive a 402 challenge with payment terms, and
requests carrying an on-chain payment proof are verified and unlocked.`,
	}

	// Global flags.
	var configPath string
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file path")

	// Load configuration.
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		rootCmd.PrintErrf("Failed to load config: %v\n", err)
		return 1
	}

	// Create dependency container.
	container, err := config.NewContainer(cfg)
	if err != nil {
		rootCmd.PrintErrf("Failed to initialize: %v\n", err)
		return 1
	}
	defer func() {
		if err := container.Close(); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "Failed to close container: %v\n", err)
		}
	}()

	// Add commands.
	rootCmd.AddCommand(
		commands.NewServeCommand(container),
		commands.NewVerifyCommand(container),
		commands.NewPricingCommand(container),
		commands.NewVersionCommand(),
	)

	// Execute.
	if err := rootCmd.Execute(); err != nil {
		return 1
	}

	return 0
}
