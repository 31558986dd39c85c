package entities

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
)

// PaymentProof is the client-supplied evidence submitted to unlock content.
// It arrives as a JSON object in the X-Payment header, either raw or
// base64-encoded (the x402 transport convention).
type PaymentProof struct {
	TxHash    string `json:"tx_hash"`
	Sender    string `json:"sender"`
	Amount    string `json:"amount"`
	ChainID   int64  `json:"chain_id"`
	JobID     string `json:"job_id"`
	Timestamp int64  `json:"timestamp"`
}

// ParsePaymentProof decodes a payment proof header value. Raw JSON is
// detected by the leading brace; anything else is treated as base64-encoded
// JSON. A malformed payload is terminal for the request.
func ParsePaymentProof(headerValue string) (*PaymentProof, error) {
	raw := strings.TrimSpace(headerValue)
	if raw == "" {
		return nil, fmt.Errorf("empty payment proof")
	}

	data := []byte(raw)
	if !strings.HasPrefix(raw, "{") {
		decoded, err := base64.StdEncoding.DecodeString(raw)
		if err != nil {
			return nil, fmt.Errorf("payment proof is neither JSON nor base64: %w", err)
		}
		data = decoded
	}

	var proof PaymentProof
	if err := json.Unmarshal(data, &proof); err != nil {
		return nil, fmt.Errorf("failed to unmarshal payment proof: %w", err)
	}

	if proof.JobID == "" {
		return nil, fmt.Errorf("payment proof is missing job_id")
	}
	if proof.TxHash == "" {
		return nil, fmt.Errorf("payment proof is missing tx_hash")
	}

	return &proof, nil
}

// Encode returns the base64 JSON form of the proof, suitable for the
// X-Payment header.
func (p *PaymentProof) Encode() (string, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("failed to marshal payment proof: %w", err)
	}
	return base64.StdEncoding.EncodeToString(data), nil
}
