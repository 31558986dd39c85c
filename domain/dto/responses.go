// Package dto contains the wire-level response shapes of the content gate API.
package dto

import "time"

// PaymentTerms describes how to pay for a challenged request.
type PaymentTerms struct {
	Amount    string `json:"amount"`
	Recipient string `json:"recipient"`
	ChainID   int64  `json:"chain_id"`
	Network   string `json:"network"`
}

// PaymentChallenge is the 402 body returned when no valid payment exists for
// a request. The client pays on-chain and retries with a proof referencing
// JobID before ExpiresAt.
type PaymentChallenge struct {
	Status         int          `json:"status"`
	Message        string       `json:"message"`
	Payment        PaymentTerms `json:"payment"`
	JobID          string       `json:"job_id"`
	ExpiresAt      time.Time    `json:"expires_at"`
	TimeoutSeconds int          `json:"timeout_seconds"`
}

// UnlockedContent is the 200 body returned once payment clears. Data carries
// the resolver payload, or a minimal availability note when the downstream
// fetch failed after payment was verified.
type UnlockedContent struct {
	Success     bool        `json:"success"`
	ContentType string      `json:"content_type"`
	ContentID   string      `json:"content_id"`
	Data        interface{} `json:"data"`
	UnlockedAt  time.Time   `json:"unlocked_at"`
}

// PaymentRejection is the 402 body returned for a proof that failed
// verification. Details carries the verifier's reason; TxHash is echoed for
// diagnostics.
type PaymentRejection struct {
	Error   string `json:"error"`
	Details string `json:"details"`
	TxHash  string `json:"tx_hash"`
}

// ErrorResponse is the generic 400/500 body.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// TxStatusResponse is the body of the status polling endpoint.
type TxStatusResponse struct {
	TxHash string `json:"tx_hash"`
	Status string `json:"status"`
}
