// Package blockchain provides chain access for the content gate: the RPC
// client wrapper and the EVM payment verifier.
package blockchain

import (
	"context"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/ethclient"

	"x402-gate/domain/errors"
)

// Dial connects to the RPC endpoint and verifies it serves the expected
// chain before handing the client out.
func Dial(rpcURL string, chainID int64) (*ethclient.Client, error) {
	client, err := ethclient.Dial(rpcURL)
	if err != nil {
		return nil, &errors.ChainError{
			Operation: "Dial",
			ChainID:   chainID,
			Err:       err,
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	networkID, err := client.ChainID(ctx)
	if err != nil {
		client.Close()
		return nil, &errors.ChainError{
			Operation: "ChainID",
			ChainID:   chainID,
			Err:       err,
		}
	}

	if networkID.Int64() != chainID {
		client.Close()
		return nil, &errors.ChainError{
			Operation: "ChainID",
			ChainID:   chainID,
			Err:       fmt.Errorf("chain ID mismatch: expected %d, got %d", chainID, networkID.Int64()),
		}
	}

	return client, nil
}
