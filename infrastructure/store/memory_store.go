// Package store provides the in-memory payment job store. Jobs are keyed by
// an opaque id, expire a fixed interval after creation, and are evicted both
// lazily on lookup and by the periodic sweeper.
package store

import (
	"math/big"
	"sync"
	"time"

	"github.com/google/uuid"

	"x402-gate/domain/entities"
	"x402-gate/domain/errors"
	"x402-gate/domain/interfaces"
)

// memoryJobStore implements the JobStore interface on a mutex-guarded map.
type memoryJobStore struct {
	mu      sync.Mutex
	jobs    map[string]*entities.PaymentJob
	pricing entities.PriceTable
	ttl     time.Duration
	clock   interfaces.Clock
	logger  interfaces.Logger
}

// NewMemoryJobStore creates a new in-memory job store. The clock is injected
// so tests can simulate expiry without sleeping.
func NewMemoryJobStore(
	pricing entities.PriceTable,
	ttl time.Duration,
	clock interfaces.Clock,
	logger interfaces.Logger,
) interfaces.JobStore {
	return &memoryJobStore{
		jobs:    make(map[string]*entities.PaymentJob),
		pricing: pricing,
		ttl:     ttl,
		clock:   clock,
		logger:  logger,
	}
}

// Create quotes a price, generates a fresh job id, and stores the job.
func (s *memoryJobStore) Create(
	contentType entities.ContentType,
	contentID, walletAddress string,
) (*entities.PaymentJob, error) {
	price, ok := s.pricing.Lookup(contentType)
	if !ok {
		return nil, errors.NewDomainError(errors.ErrUnknownContentType, string(contentType))
	}

	now := s.clock.Now()
	job := &entities.PaymentJob{
		JobID:         uuid.NewString(),
		ContentType:   contentType,
		ContentID:     contentID,
		Price:         new(big.Int).Set(price),
		WalletAddress: walletAddress,
		CreatedAt:     now,
		ExpiresAt:     now.Add(s.ttl),
	}

	s.mu.Lock()
	s.jobs[job.JobID] = job
	s.mu.Unlock()

	s.logger.Debug("payment job created",
		"job_id", job.JobID,
		"content_type", contentType,
		"content_id", contentID,
		"price", job.Price.String())

	return job.Clone(), nil
}

// Get returns the job with the given id, evicting it first if expired.
func (s *memoryJobStore) Get(jobID string) (*entities.PaymentJob, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	job, ok := s.jobs[jobID]
	if !ok {
		return nil, false
	}
	if job.ExpiredAt(s.clock.Now()) {
		delete(s.jobs, jobID)
		return nil, false
	}
	return job.Clone(), true
}

// MarkPaid sets the paid flag and transaction hash on a job. The transition
// happens at most once: marking an already-paid job leaves its tx hash
// untouched and returns true.
func (s *memoryJobStore) MarkPaid(jobID, txHash string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	job, ok := s.jobs[jobID]
	if !ok {
		return false
	}
	if job.Paid {
		return true
	}
	job.Paid = true
	job.TxHash = txHash
	return true
}

// FindPaidJob scans for an unexpired, already-paid job matching the content
// and wallet. Expired entries encountered during the scan are evicted.
func (s *memoryJobStore) FindPaidJob(
	contentType entities.ContentType,
	contentID, walletAddress string,
) (*entities.PaymentJob, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	for id, job := range s.jobs {
		if job.ExpiredAt(now) {
			delete(s.jobs, id)
			continue
		}
		if job.Paid && job.Matches(contentType, contentID, walletAddress) {
			return job.Clone(), true
		}
	}
	return nil, false
}

// Delete removes a job unconditionally.
func (s *memoryJobStore) Delete(jobID string) {
	s.mu.Lock()
	delete(s.jobs, jobID)
	s.mu.Unlock()
}

// SweepExpired evicts every expired job and returns the eviction count.
func (s *memoryJobStore) SweepExpired() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	evicted := 0
	for id, job := range s.jobs {
		if job.ExpiredAt(now) {
			delete(s.jobs, id)
			evicted++
		}
	}

	if evicted > 0 {
		s.logger.Debug("swept expired payment jobs", "evicted", evicted, "remaining", len(s.jobs))
	}
	return evicted
}

// ActiveJobs returns the number of jobs currently held.
func (s *memoryJobStore) ActiveJobs() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.jobs)
}
