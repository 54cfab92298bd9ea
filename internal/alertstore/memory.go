// Package alertstore records which compliance alerts were already delivered,
// so that repeated sweeps on the same day do not notify a user twice.
package alertstore

import (
	"context"
	"sync"
	"time"
)

// Memory is an in-process ledger. It is suitable for a single alerts process
// and for tests; claims do not survive a restart.
type Memory struct {
	mu     sync.Mutex
	claims map[string]time.Time // key -> expiry
	now    func() time.Time
}

// NewMemory constructs an empty in-memory ledger.
func NewMemory() *Memory {
	return &Memory{claims: make(map[string]time.Time), now: time.Now}
}

// WithClock replaces the clock used to expire claims.
func (m *Memory) WithClock(now func() time.Time) *Memory {
	m.now = now
	return m
}

// Claim records key until ttl elapses. It returns false while an unexpired
// claim for key exists.
func (m *Memory) Claim(_ context.Context, key string, ttl time.Duration) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	if exp, ok := m.claims[key]; ok && now.Before(exp) {
		return false, nil
	}
	m.claims[key] = now.Add(ttl)
	m.sweep(now)
	return true, nil
}

// Release drops the claim for key. Releasing an unknown key is not an error.
func (m *Memory) Release(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.claims, key)
	return nil
}

// Len reports the number of unexpired claims.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sweep(m.now())
	return len(m.claims)
}

// sweep drops expired claims. Callers hold m.mu.
func (m *Memory) sweep(now time.Time) {
	for k, exp := range m.claims {
		if !now.Before(exp) {
			delete(m.claims, k)
		}
	}
}
