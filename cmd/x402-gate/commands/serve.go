// Package commands provides CLI command implementations for the content gate.
package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"x402-gate/infrastructure/config"
	"x402-gate/infrastructure/httpapi"
)

// NewServeCommand creates the serve command.
func NewServeCommand(container *config.Container) *cobra.Command {
	var listenAddr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the payment gate HTTP server",
		Long: `Starts the HTTP server that issues 402 payment challenges, verifies
on-chain payment proofs, and unlocks content. Runs until interrupted.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			if listenAddr == "" {
				listenAddr = container.Config.ListenAddr
			}

			server := httpapi.NewServer(
				container.UnlockContentUseCase,
				container.PaymentStatusUseCase,
				container.Verifier,
				container.Exporter,
				container.RateLimiter,
				container.Logger,
			)

			// Start the expiry sweeper.
			container.Sweeper.Start()

			// Serve in the background so we can watch for signals.
			errCh := make(chan error, 1)
			go func() {
				errCh <- server.Start(listenAddr)
			}()

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

			select {
			case err := <-errCh:
				if err != nil {
					return fmt.Errorf("server failed: %w", err)
				}
				return nil
			case sig := <-sigCh:
				container.Logger.Info("Shutting down", "signal", sig.String())
			}

			ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()

			if err := server.Shutdown(ctx); err != nil {
				return fmt.Errorf("shutdown failed: %w", err)
			}

			container.Logger.Info("Server stopped")
			return nil
		},
	}

	// Add flags.
	cmd.Flags().StringVarP(&listenAddr, "listen", "l", "", "listen address (overrides config)")

	return cmd
}
