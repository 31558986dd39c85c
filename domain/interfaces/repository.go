package interfaces

import (
	"context"

	"x402-gate/domain/entities"
)

// ReceiptRepository archives verified payments for audit. Writes happen
// after markPaid and are best-effort: a failed insert is logged, never
// surfaced to the paying client.
type ReceiptRepository interface {
	// Save persists a payment receipt.
	Save(ctx context.Context, receipt *entities.PaymentReceipt) error

	// FindByTxHash returns the receipt recorded for a transaction hash.
	FindByTxHash(ctx context.Context, txHash string) (*entities.PaymentReceipt, error)

	// ListByWallet returns the most recent receipts for a wallet.
	ListByWallet(ctx context.Context, walletAddress string, limit int) ([]entities.PaymentReceipt, error)
}
