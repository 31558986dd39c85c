package entities

import "time"

// PaymentReceipt is the persisted audit record of a verified payment.
// Unlike PaymentJob it survives job expiry; rows are written best-effort
// after markPaid and never consulted on the request path.
type PaymentReceipt struct {
	ID            uint      `gorm:"primaryKey"`
	JobID         string    `gorm:"size:64;not null;index"`
	ContentType   string    `gorm:"size:32;not null"`
	ContentID     string    `gorm:"size:128;not null"`
	WalletAddress string    `gorm:"size:64;not null;index"`
	TxHash        string    `gorm:"size:80;not null;uniqueIndex"`
	Amount        string    `gorm:"size:80;not null"`
	PaidAt        time.Time `gorm:"not null"`
}

// TableName sets the gorm table name.
func (PaymentReceipt) TableName() string {
	return "payment_receipts"
}
