package db

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"
	"gorm.io/gorm"

	"skyward/tower/internal/domain"
)

// DefaultLockWait bounds how long a booking waits for the per-flight
// lock before surfacing a transient failure.
const DefaultLockWait = 5 * time.Second

// FlightLocker serializes the capacity check-then-insert for a single
// flight. Concurrent bookings on the same flight id block each other;
// bookings on different flights never do.
//
// LockFlight must be called inside the booking transaction. The returned
// release function must be called after the transaction finishes; the
// advisory implementation releases with the transaction and returns a
// no-op.
type FlightLocker interface {
	LockFlight(ctx context.Context, tx *gorm.DB, flightID uint) (release func(), err error)
}

// AdvisoryFlightLocker takes a transaction-scoped Postgres advisory lock
// keyed by flight id. The lock is held until the enclosing transaction
// commits or rolls back.
type AdvisoryFlightLocker struct {
	WaitTimeout time.Duration
}

func NewAdvisoryFlightLocker(wait time.Duration) *AdvisoryFlightLocker {
	if wait <= 0 {
		wait = DefaultLockWait
	}
	return &AdvisoryFlightLocker{WaitTimeout: wait}
}

func (l *AdvisoryFlightLocker) LockFlight(ctx context.Context, tx *gorm.DB, flightID uint) (func(), error) {
	if err := tx.WithContext(ctx).
		Exec(fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", l.WaitTimeout.Milliseconds())).Error; err != nil {
		return nil, fmt.Errorf("set lock_timeout: %w", err)
	}

	// The only way this statement fails inside a healthy transaction is
	// the lock_timeout firing while another booking holds the key.
	if err := tx.WithContext(ctx).
		Exec("SELECT pg_advisory_xact_lock(?)", int64(flightID)).Error; err != nil {
		return nil, domain.Transientf("flight %d is locked by another booking, retry", flightID)
	}

	return func() {}, nil
}

// KeyedFlightLocker is an in-process fallback keyed mutex used with
// databases that have no advisory locks (sqlite in tests). Lock scope is
// one process, which matches the single-writer test setups it serves.
type KeyedFlightLocker struct {
	mu          sync.Mutex
	sems        map[uint]*semaphore.Weighted
	WaitTimeout time.Duration
}

func NewKeyedFlightLocker(wait time.Duration) *KeyedFlightLocker {
	if wait <= 0 {
		wait = DefaultLockWait
	}
	return &KeyedFlightLocker{
		sems:        make(map[uint]*semaphore.Weighted),
		WaitTimeout: wait,
	}
}

func (l *KeyedFlightLocker) sem(flightID uint) *semaphore.Weighted {
	l.mu.Lock()
	defer l.mu.Unlock()

	s, ok := l.sems[flightID]
	if !ok {
		s = semaphore.NewWeighted(1)
		l.sems[flightID] = s
	}
	return s
}

func (l *KeyedFlightLocker) LockFlight(ctx context.Context, _ *gorm.DB, flightID uint) (func(), error) {
	s := l.sem(flightID)

	waitCtx, cancel := context.WithTimeout(ctx, l.WaitTimeout)
	defer cancel()

	if err := s.Acquire(waitCtx, 1); err != nil {
		return nil, domain.Transientf("timed out waiting for flight %d lock, retry", flightID)
	}
	return func() { s.Release(1) }, nil
}
