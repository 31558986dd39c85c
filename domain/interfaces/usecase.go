package interfaces

import (
	"context"

	"x402-gate/domain/dto"
	"x402-gate/domain/entities"
)

// UnlockRequest carries one inbound content request through the gate.
type UnlockRequest struct {
	ContentType   string
	ContentID     string
	WalletAddress string

	// Proof is nil when the client has not paid yet.
	Proof *entities.PaymentProof
}

// UnlockResult is the outcome of a gate pass. Exactly one field is set:
// Challenge when payment is required, Rejection when a submitted proof
// failed verification, Content when the request is fulfilled.
type UnlockResult struct {
	Challenge *dto.PaymentChallenge
	Rejection *dto.PaymentRejection
	Content   *dto.UnlockedContent
}

// UnlockContentUseCase is the 402 protocol state machine. Client input
// errors (unknown content type, malformed wallet address) are returned as
// errors; every other path resolves to one of the three result states.
type UnlockContentUseCase interface {
	// Execute runs one request through the gate.
	Execute(ctx context.Context, req UnlockRequest) (*UnlockResult, error)
}

// PaymentStatusUseCase reports a transaction's on-chain state for UI polling.
type PaymentStatusUseCase interface {
	// Execute returns the status of the given transaction hash.
	Execute(ctx context.Context, txHash string) (entities.TxStatus, error)
}
