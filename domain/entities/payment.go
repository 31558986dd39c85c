// Package entities contains the core domain entities for the x402 content gate.
// It defines payment jobs, proofs, verification results, and the price table.
package entities

import (
	"math/big"
	"strings"
	"time"
)

// ContentType tags a priced resource class. The type selects both the price
// quoted in a challenge and the resolver used to produce the unlocked payload.
type ContentType string

// Known content types.
const (
	ContentMarketData    ContentType = "market_data"
	ContentChart         ContentType = "chart"
	ContentSentiment     ContentType = "sentiment"
	ContentOrderbook     ContentType = "orderbook"
	ContentCalculator    ContentType = "calculator"
	ContentActivity      ContentType = "activity"
	ContentSocialPost    ContentType = "social_post"
	ContentSocialView    ContentType = "social_view"
	ContentSocialComment ContentType = "social_comment"
)

// PriceTable maps content types to their price in the chain's smallest unit (wei).
type PriceTable map[ContentType]*big.Int

// Lookup returns the price for a content type. The second return is false for
// unknown types; there is deliberately no default price.
func (p PriceTable) Lookup(ct ContentType) (*big.Int, bool) {
	price, ok := p[ct]
	if !ok || price == nil {
		return nil, false
	}
	return price, true
}

// PaymentJob binds a price quote to a specific content request and claimed
// payer. Jobs are short-lived: a job expires TTL seconds after creation and
// the paid/tx-hash transition happens at most once.
type PaymentJob struct {
	JobID         string
	ContentType   ContentType
	ContentID     string
	Price         *big.Int
	WalletAddress string
	CreatedAt     time.Time
	ExpiresAt     time.Time
	Paid          bool
	TxHash        string
}

// ExpiredAt reports whether the job is past its deadline at the given instant.
func (j *PaymentJob) ExpiredAt(now time.Time) bool {
	return now.After(j.ExpiresAt)
}

// Matches reports whether the job covers the given content for the given
// wallet. The wallet comparison is case-insensitive since EVM hex addresses
// have no canonical casing on the wire.
func (j *PaymentJob) Matches(ct ContentType, contentID, walletAddress string) bool {
	return j.ContentType == ct &&
		j.ContentID == contentID &&
		strings.EqualFold(j.WalletAddress, walletAddress)
}

// Clone returns a copy of the job. The store hands out clones so callers can
// never mutate stored state directly.
func (j *PaymentJob) Clone() *PaymentJob {
	c := *j
	if j.Price != nil {
		c.Price = new(big.Int).Set(j.Price)
	}
	return &c
}

// PaymentVerification is the chain verifier's output. It is never persisted.
// Reason is set only when Verified is false and carries a human-readable
// description of the rejection.
type PaymentVerification struct {
	Verified bool
	TxHash   string
	Sender   string
	Amount   *big.Int
	Reason   string
}

// TxStatus describes the on-chain state of a transaction outside the verify flow.
type TxStatus string

// Transaction statuses reported by CheckStatus.
const (
	TxStatusPending  TxStatus = "pending"
	TxStatusSuccess  TxStatus = "success"
	TxStatusFailed   TxStatus = "failed"
	TxStatusNotFound TxStatus = "not_found"
)
