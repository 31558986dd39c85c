package blockchain

import (
	"context"
	stderrors "errors"
	"fmt"
	"math/big"
	"time"

	ethereum "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"x402-gate/domain/entities"
	"x402-gate/domain/errors"
	"x402-gate/domain/interfaces"
)

// Polling defaults for the waiting-for-receipt phase.
const (
	defaultPollInterval = 2 * time.Second
	defaultPollBudget   = 15 * time.Second
)

// Verification policies for transactions still pending when the polling
// budget runs out.
const (
	PolicyStrict     = "strict"
	PolicyOptimistic = "optimistic"
)

// VerifierConfig configures the EVM payment verifier.
type VerifierConfig struct {
	ChainID  int64
	Treasury common.Address

	// PollInterval is the delay between receipt lookups while waiting for
	// the transaction to be mined.
	PollInterval time.Duration

	// PollBudget bounds the total wall-clock time spent waiting.
	PollBudget time.Duration

	// Policy selects how a transaction still pending at budget exhaustion is
	// treated: strict rejects it, optimistic accepts it when its
	// sender/recipient/amount already match. Optimistic trades finality for
	// latency and changes the trust model; it is a deliberate choice, not a
	// default.
	Policy string
}

// evmVerifier implements the ChainVerifier interface against an EVM chain.
type evmVerifier struct {
	reader interfaces.ChainReader
	cfg    VerifierConfig
	signer types.Signer
	logger interfaces.Logger
}

// NewEVMVerifier creates a new EVM chain verifier.
func NewEVMVerifier(
	reader interfaces.ChainReader,
	cfg VerifierConfig,
	logger interfaces.Logger,
) interfaces.ChainVerifier {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = defaultPollInterval
	}
	if cfg.PollBudget <= 0 {
		cfg.PollBudget = defaultPollBudget
	}
	if cfg.Policy == "" {
		cfg.Policy = PolicyStrict
	}

	return &evmVerifier{
		reader: reader,
		cfg:    cfg,
		signer: types.LatestSignerForChainID(big.NewInt(cfg.ChainID)),
		logger: logger,
	}
}

// Verify polls for the transaction, then runs the settlement checks.
// Field mismatches and failed executions are terminal and never retried;
// only the waiting-for-receipt phase loops, bounded by the polling budget
// and the request context.
func (v *evmVerifier) Verify(ctx context.Context, req interfaces.VerifyRequest) *entities.PaymentVerification {
	deadline := time.Now().Add(v.cfg.PollBudget)
	var pendingMatch *types.Transaction

	for {
		tx, pending, err := v.reader.TransactionByHash(ctx, req.TxHash)
		switch {
		case stderrors.Is(err, ethereum.NotFound):
			// Not visible yet; keep polling until the budget runs out.
		case err != nil:
			v.logger.Warn("transaction lookup failed",
				"tx_hash", req.TxHash.Hex(), "error", err)
		case pending:
			if _, reason := v.checkTransferFields(tx, req); reason != "" {
				return v.reject(req.TxHash, reason)
			}
			pendingMatch = tx
		default:
			receipt, rerr := v.reader.TransactionReceipt(ctx, req.TxHash)
			if rerr == nil {
				return v.verifyMined(ctx, tx, receipt, req)
			}
			if !stderrors.Is(rerr, ethereum.NotFound) {
				v.logger.Warn("receipt lookup failed",
					"tx_hash", req.TxHash.Hex(), "error", rerr)
			}
		}

		if !time.Now().Before(deadline) {
			if pendingMatch != nil && v.cfg.Policy == PolicyOptimistic {
				return v.acceptPending(pendingMatch, req)
			}
			v.logger.Warn("verification budget exhausted",
				"tx_hash", req.TxHash.Hex(), "budget", v.cfg.PollBudget)
			return v.reject(req.TxHash,
				fmt.Sprintf("transaction not confirmed within %s", v.cfg.PollBudget))
		}

		select {
		case <-ctx.Done():
			return v.reject(req.TxHash, fmt.Sprintf("verification cancelled: %v", ctx.Err()))
		case <-time.After(v.cfg.PollInterval):
		}
	}
}

// verifyMined runs the settlement checks against a mined transaction.
func (v *evmVerifier) verifyMined(
	ctx context.Context,
	tx *types.Transaction,
	receipt *types.Receipt,
	req interfaces.VerifyRequest,
) *entities.PaymentVerification {
	if receipt.Status != types.ReceiptStatusSuccessful {
		return v.reject(req.TxHash,
			fmt.Sprintf("transaction failed on-chain (status %d)", receipt.Status))
	}

	sender, reason := v.checkTransferFields(tx, req)
	if reason != "" {
		return v.reject(req.TxHash, reason)
	}

	if req.MaxAge > 0 && receipt.BlockNumber != nil {
		header, err := v.reader.HeaderByNumber(ctx, receipt.BlockNumber)
		if err != nil {
			// The age check is advisory; a header fetch failure must not
			// invalidate an otherwise settled payment.
			v.logger.Warn("skipping transaction age check, header unavailable",
				"tx_hash", req.TxHash.Hex(), "block", receipt.BlockNumber, "error", err)
		} else {
			minedAt := time.Unix(int64(header.Time), 0) // #nosec G115 -- block timestamp is always valid
			if age := time.Since(minedAt); age > req.MaxAge {
				return v.reject(req.TxHash,
					fmt.Sprintf("transaction too old: mined %s ago, max age %s",
						age.Round(time.Second), req.MaxAge))
			}
		}
	}

	return &entities.PaymentVerification{
		Verified: true,
		TxHash:   tx.Hash().Hex(),
		Sender:   sender.Hex(),
		Amount:   new(big.Int).Set(tx.Value()),
	}
}

// acceptPending accepts a still-pending transaction whose fields already
// match, under the optimistic policy.
func (v *evmVerifier) acceptPending(
	tx *types.Transaction,
	req interfaces.VerifyRequest,
) *entities.PaymentVerification {
	sender, reason := v.checkTransferFields(tx, req)
	if reason != "" {
		return v.reject(req.TxHash, reason)
	}

	v.logger.Warn("accepting pending transaction under optimistic policy",
		"tx_hash", req.TxHash.Hex(), "sender", sender.Hex())

	return &entities.PaymentVerification{
		Verified: true,
		TxHash:   tx.Hash().Hex(),
		Sender:   sender.Hex(),
		Amount:   new(big.Int).Set(tx.Value()),
	}
}

// checkTransferFields validates recipient, sender, amount, and chain id of a
// transfer. It returns the recovered sender and an empty reason on success.
func (v *evmVerifier) checkTransferFields(
	tx *types.Transaction,
	req interfaces.VerifyRequest,
) (common.Address, string) {
	to := tx.To()
	if to == nil {
		return common.Address{}, "transaction has no recipient (contract creation)"
	}
	if *to != v.cfg.Treasury {
		return common.Address{}, fmt.Sprintf("recipient mismatch: expected %s, got %s",
			v.cfg.Treasury.Hex(), to.Hex())
	}

	sender, err := types.Sender(v.signer, tx)
	if err != nil {
		return common.Address{}, fmt.Sprintf("cannot recover transaction sender: %v", err)
	}
	if sender != req.ExpectedSender {
		return common.Address{}, fmt.Sprintf("sender mismatch: expected %s, got %s",
			req.ExpectedSender.Hex(), sender.Hex())
	}

	// Overpayment is accepted, underpayment is not.
	if tx.Value().Cmp(req.ExpectedAmount) < 0 {
		return common.Address{}, fmt.Sprintf("amount too low: expected at least %s, got %s",
			req.ExpectedAmount.String(), tx.Value().String())
	}

	if cid := tx.ChainId(); cid != nil && cid.Sign() != 0 && cid.Int64() != v.cfg.ChainID {
		return common.Address{}, fmt.Sprintf("wrong chain: expected %d, got %d",
			v.cfg.ChainID, cid.Int64())
	}

	return sender, ""
}

// reject builds a failed verification with a descriptive reason.
func (v *evmVerifier) reject(txHash common.Hash, reason string) *entities.PaymentVerification {
	v.logger.Debug("payment verification rejected", "tx_hash", txHash.Hex(), "reason", reason)
	return &entities.PaymentVerification{
		Verified: false,
		TxHash:   txHash.Hex(),
		Reason:   reason,
	}
}

// CheckStatus reports the transaction's state for status polling outside the
// verify flow. It shares the receipt-fetch primitive with Verify.
func (v *evmVerifier) CheckStatus(ctx context.Context, txHash common.Hash) (entities.TxStatus, error) {
	receipt, err := v.reader.TransactionReceipt(ctx, txHash)
	if err == nil {
		if receipt.Status == types.ReceiptStatusSuccessful {
			return entities.TxStatusSuccess, nil
		}
		return entities.TxStatusFailed, nil
	}
	if !stderrors.Is(err, ethereum.NotFound) {
		return "", &errors.ChainError{
			Operation: "TransactionReceipt",
			ChainID:   v.cfg.ChainID,
			TxHash:    txHash.Hex(),
			Err:       err,
		}
	}

	if _, _, err := v.reader.TransactionByHash(ctx, txHash); err != nil {
		if stderrors.Is(err, ethereum.NotFound) {
			return entities.TxStatusNotFound, nil
		}
		return "", &errors.ChainError{
			Operation: "TransactionByHash",
			ChainID:   v.cfg.ChainID,
			TxHash:    txHash.Hex(),
			Err:       err,
		}
	}
	// Known to the node but without a receipt yet.
	return entities.TxStatusPending, nil
}

// Connected reports whether the RPC endpoint is reachable and serves the
// configured chain.
func (v *evmVerifier) Connected(ctx context.Context) bool {
	networkID, err := v.reader.ChainID(ctx)
	if err != nil {
		v.logger.Warn("RPC connectivity check failed", "error", err)
		return false
	}
	return networkID.Int64() == v.cfg.ChainID
}

// Balance returns the native-token balance of an address.
func (v *evmVerifier) Balance(ctx context.Context, address common.Address) (*big.Int, error) {
	balance, err := v.reader.BalanceAt(ctx, address, nil)
	if err != nil {
		return nil, &errors.ChainError{
			Operation: "BalanceAt",
			ChainID:   v.cfg.ChainID,
			Err:       err,
		}
	}
	return balance, nil
}
