// Package repository provides the gorm-backed payment receipt archive.
package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"x402-gate/domain/entities"
	"x402-gate/domain/errors"
	"x402-gate/domain/interfaces"
)

// receiptRepository implements the ReceiptRepository interface.
type receiptRepository struct {
	db *gorm.DB
}

// NewReceiptRepository creates a new receipt repository.
func NewReceiptRepository(db *gorm.DB) interfaces.ReceiptRepository {
	return &receiptRepository{db: db}
}

// Migrate creates the receipts table if it does not exist.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&entities.PaymentReceipt{}); err != nil {
		return &errors.RepositoryError{
			Operation: "Migrate",
			Entity:    "PaymentReceipt",
			Err:       err,
		}
	}
	return nil
}

// Save persists a payment receipt. Hashes and addresses are stored
// lowercased so lookups stay case-insensitive.
func (r *receiptRepository) Save(ctx context.Context, receipt *entities.PaymentReceipt) error {
	receipt.TxHash = strings.ToLower(receipt.TxHash)
	receipt.WalletAddress = strings.ToLower(receipt.WalletAddress)

	if err := r.db.WithContext(ctx).Create(receipt).Error; err != nil {
		return &errors.RepositoryError{
			Operation: "Save",
			Entity:    "PaymentReceipt",
			Err:       err,
		}
	}
	return nil
}

// FindByTxHash returns the receipt recorded for a transaction hash.
func (r *receiptRepository) FindByTxHash(ctx context.Context, txHash string) (*entities.PaymentReceipt, error) {
	var receipt entities.PaymentReceipt

	err := r.db.WithContext(ctx).
		Where("tx_hash = ?", strings.ToLower(txHash)).
		First(&receipt).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewDomainError(errors.ErrNotFound, "no receipt for tx "+txHash)
		}
		return nil, &errors.RepositoryError{
			Operation: "FindByTxHash",
			Entity:    "PaymentReceipt",
			Err:       err,
		}
	}

	return &receipt, nil
}

// ListByWallet returns the most recent receipts for a wallet.
func (r *receiptRepository) ListByWallet(
	ctx context.Context,
	walletAddress string,
	limit int,
) ([]entities.PaymentReceipt, error) {
	var receipts []entities.PaymentReceipt

	err := r.db.WithContext(ctx).
		Where("wallet_address = ?", strings.ToLower(walletAddress)).
		Order("paid_at DESC").
		Limit(limit).
		Find(&receipts).Error
	if err != nil {
		return nil, &errors.RepositoryError{
			Operation: "ListByWallet",
			Entity:    "PaymentReceipt",
			Err:       err,
		}
	}

	return receipts, nil
}
