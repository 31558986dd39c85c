// Package usecases contains the application use cases of the content gate.
// It implements the 402 protocol state machine and the payment status query.
package usecases

import (
	"context"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"x402-gate/domain/dto"
	"x402-gate/domain/entities"
	"x402-gate/domain/errors"
	"x402-gate/domain/interfaces"
)

// GateConfig carries the payment terms quoted in challenges.
type GateConfig struct {
	Treasury   common.Address
	ChainID    int64
	Network    string
	JobTimeout time.Duration
	MaxTxAge   time.Duration
}

// unlockContentUseCase implements the UnlockContentUseCase interface.
type unlockContentUseCase struct {
	store    interfaces.JobStore
	verifier interfaces.ChainVerifier
	resolver interfaces.ContentResolver
	receipts interfaces.ReceiptRepository
	pricing  entities.PriceTable
	cfg      GateConfig
	clock    interfaces.Clock
	logger   interfaces.Logger
}

// NewUnlockContentUseCase creates the gate. The receipt repository may be
// nil; archival is optional.
func NewUnlockContentUseCase(
	jobStore interfaces.JobStore,
	verifier interfaces.ChainVerifier,
	resolver interfaces.ContentResolver,
	receipts interfaces.ReceiptRepository,
	pricing entities.PriceTable,
	cfg GateConfig,
	clock interfaces.Clock,
	logger interfaces.Logger,
) interfaces.UnlockContentUseCase {
	return &unlockContentUseCase{
		store:    jobStore,
		verifier: verifier,
		resolver: resolver,
		receipts: receipts,
		pricing:  pricing,
		cfg:      cfg,
		clock:    clock,
		logger:   logger,
	}
}

// Execute runs one request through the gate. Absence of a valid path always
// resolves to a challenge, a rejection, or a fulfillment; input errors are
// the only error returns.
func (uc *unlockContentUseCase) Execute(
	ctx context.Context,
	req interfaces.UnlockRequest,
) (*interfaces.UnlockResult, error) {
	if err := uc.validate(req); err != nil {
		return nil, err
	}
	contentType := entities.ContentType(req.ContentType)

	// Already paid for this content by this wallet: serve again without a
	// new challenge or payment, for the remaining lifetime of that job.
	if job, ok := uc.store.FindPaidJob(contentType, req.ContentID, req.WalletAddress); ok {
		return uc.fulfill(ctx, job)
	}

	if req.Proof == nil {
		return uc.challenge(contentType, req)
	}

	job, ok := uc.store.Get(req.Proof.JobID)
	if !ok {
		// Missing or expired job: recoverable, re-challenge with a fresh one.
		uc.logger.Info("proof references missing or expired job, re-challenging",
			"job_id", req.Proof.JobID, "wallet", req.WalletAddress)
		return uc.challenge(contentType, req)
	}

	// A replayed proof on an already-verified job is served again without
	// re-invoking the verifier.
	if job.Paid {
		return uc.fulfill(ctx, job)
	}

	verification := uc.verifier.Verify(ctx, interfaces.VerifyRequest{
		TxHash:         common.HexToHash(req.Proof.TxHash),
		ExpectedSender: common.HexToAddress(req.WalletAddress),
		ExpectedAmount: job.Price,
		MaxAge:         uc.cfg.MaxTxAge,
	})
	if !verification.Verified {
		uc.logger.Warn("payment rejected",
			"job_id", job.JobID,
			"tx_hash", req.Proof.TxHash,
			"reason", verification.Reason)
		return &interfaces.UnlockResult{
			Rejection: &dto.PaymentRejection{
				Error:   "payment verification failed",
				Details: verification.Reason,
				TxHash:  req.Proof.TxHash,
			},
		}, nil
	}

	uc.store.MarkPaid(job.JobID, verification.TxHash)
	job.Paid = true
	job.TxHash = verification.TxHash

	uc.logger.Info("payment verified",
		"job_id", job.JobID,
		"tx_hash", verification.TxHash,
		"sender", verification.Sender,
		"amount", verification.Amount.String())

	uc.archiveReceipt(ctx, job, verification)

	return uc.fulfill(ctx, job)
}

// validate rejects unknown content types and malformed wallet addresses.
func (uc *unlockContentUseCase) validate(req interfaces.UnlockRequest) error {
	if _, ok := uc.pricing.Lookup(entities.ContentType(req.ContentType)); !ok {
		return errors.NewDomainError(errors.ErrUnknownContentType, req.ContentType)
	}
	if !common.IsHexAddress(req.WalletAddress) {
		return errors.NewDomainError(errors.ErrInvalidWalletAddress, req.WalletAddress)
	}
	return nil
}

// challenge creates a job and builds the 402 payment-required body.
func (uc *unlockContentUseCase) challenge(
	contentType entities.ContentType,
	req interfaces.UnlockRequest,
) (*interfaces.UnlockResult, error) {
	job, err := uc.store.Create(contentType, req.ContentID, req.WalletAddress)
	if err != nil {
		return nil, err
	}

	uc.logger.Info("payment challenge issued",
		"job_id", job.JobID,
		"content_type", contentType,
		"content_id", req.ContentID,
		"price", job.Price.String())

	return &interfaces.UnlockResult{
		Challenge: &dto.PaymentChallenge{
			Status:  402,
			Message: "Payment required to access this content",
			Payment: dto.PaymentTerms{
				Amount:    job.Price.String(),
				Recipient: uc.cfg.Treasury.Hex(),
				ChainID:   uc.cfg.ChainID,
				Network:   uc.cfg.Network,
			},
			JobID:          job.JobID,
			ExpiresAt:      job.ExpiresAt,
			TimeoutSeconds: int(uc.cfg.JobTimeout / time.Second),
		},
	}, nil
}

// fulfill resolves the content for a paid job. A resolver failure degrades
// the response; payment, once verified, is never undone by a downstream
// fetch failure.
func (uc *unlockContentUseCase) fulfill(
	ctx context.Context,
	job *entities.PaymentJob,
) (*interfaces.UnlockResult, error) {
	data, err := uc.resolver.Resolve(ctx, job.ContentType, job.ContentID)
	if err != nil {
		uc.logger.Warn("content fetch failed after payment, degrading response",
			"job_id", job.JobID,
			"content_type", job.ContentType,
			"content_id", job.ContentID,
			"error", err)
		data = map[string]interface{}{
			"status": "unlocked",
			"detail": "data temporarily unavailable",
		}
	}

	return &interfaces.UnlockResult{
		Content: &dto.UnlockedContent{
			Success:     true,
			ContentType: string(job.ContentType),
			ContentID:   job.ContentID,
			Data:        data,
			UnlockedAt:  uc.clock.Now(),
		},
	}, nil
}

// archiveReceipt persists the audit record best-effort.
func (uc *unlockContentUseCase) archiveReceipt(
	ctx context.Context,
	job *entities.PaymentJob,
	verification *entities.PaymentVerification,
) {
	if uc.receipts == nil {
		return
	}

	receipt := &entities.PaymentReceipt{
		JobID:         job.JobID,
		ContentType:   string(job.ContentType),
		ContentID:     job.ContentID,
		WalletAddress: job.WalletAddress,
		TxHash:        verification.TxHash,
		Amount:        verification.Amount.String(),
		PaidAt:        uc.clock.Now(),
	}
	if err := uc.receipts.Save(ctx, receipt); err != nil {
		// Log error but don't fail the operation.
		uc.logger.Warn("failed to archive payment receipt", "job_id", job.JobID, "error", err)
	}
}
