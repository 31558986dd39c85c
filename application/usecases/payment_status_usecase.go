package usecases

import (
	"context"
	"strings"

	"github.com/ethereum/go-ethereum/common"

	"x402-gate/domain/entities"
	"x402-gate/domain/errors"
	"x402-gate/domain/interfaces"
)

// paymentStatusUseCase implements the PaymentStatusUseCase interface.
type paymentStatusUseCase struct {
	verifier interfaces.ChainVerifier
	logger   interfaces.Logger
}

// NewPaymentStatusUseCase creates the status query use case.
func NewPaymentStatusUseCase(
	verifier interfaces.ChainVerifier,
	logger interfaces.Logger,
) interfaces.PaymentStatusUseCase {
	return &paymentStatusUseCase{
		verifier: verifier,
		logger:   logger,
	}
}

// Execute returns the on-chain status of the given transaction hash.
func (uc *paymentStatusUseCase) Execute(ctx context.Context, txHash string) (entities.TxStatus, error) {
	trimmed := strings.TrimSpace(txHash)
	if len(trimmed) != 66 || !strings.HasPrefix(trimmed, "0x") {
		return "", errors.NewDomainError(errors.ErrInvalidInput, "malformed transaction hash")
	}

	status, err := uc.verifier.CheckStatus(ctx, common.HexToHash(trimmed))
	if err != nil {
		uc.logger.Error("transaction status check failed", "tx_hash", trimmed, "error", err)
		return "", err
	}
	return status, nil
}
