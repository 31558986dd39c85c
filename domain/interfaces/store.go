package interfaces

import (
	"x402-gate/domain/entities"
)

// JobStore owns the lifetime of short-lived payment jobs. All operations are
// atomic with respect to concurrent requests for the same job id; no
// cross-job ordering is guaranteed or required. Implementations hand out
// copies, never pointers into their own state.
type JobStore interface {
	// Create quotes a price for the content type, generates a fresh job id,
	// and stores the job. Unknown content types are an error; there is no
	// default price.
	Create(contentType entities.ContentType, contentID, walletAddress string) (*entities.PaymentJob, error)

	// Get returns the job with the given id. Expired entries are evicted as
	// a side effect and reported as absent.
	Get(jobID string) (*entities.PaymentJob, bool)

	// MarkPaid records the payment transaction on a job. It returns false if
	// the job is absent. Marking an already-paid job is a no-op returning
	// true; the paid transition happens at most once.
	MarkPaid(jobID, txHash string) bool

	// FindPaidJob returns an unexpired, already-paid job matching the
	// content and wallet, if one exists. Wallet comparison is
	// case-insensitive.
	FindPaidJob(contentType entities.ContentType, contentID, walletAddress string) (*entities.PaymentJob, bool)

	// Delete removes a job unconditionally.
	Delete(jobID string)

	// SweepExpired evicts every expired job and returns the eviction count.
	SweepExpired() int

	// ActiveJobs returns the number of jobs currently held, expired or not.
	ActiveJobs() int
}
