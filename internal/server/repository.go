package server

import (
	"context"
	"errors"
	"sync"

	"dailyread/internal/attempt"
)

var (
	ErrMissingField = errors.New("server: missing field")
	ErrNotFound     = errors.New("server: not found")
)

// Repository persists scored attempts. Save is idempotent on client id: a
// second save returns the first receipt with created false.
type Repository interface {
	Save(ctx context.Context, a attempt.Attempt, r attempt.Receipt) (attempt.Receipt, bool, error)
	Get(ctx context.Context, clientID string) (attempt.Receipt, error)
}

type record struct {
	attempt attempt.Attempt
	receipt attempt.Receipt
}

type MemoryRepository struct {
	mu       sync.Mutex
	byClient map[string]record
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{byClient: map[string]record{}}
}

func (m *MemoryRepository) Save(_ context.Context, a attempt.Attempt, r attempt.Receipt) (attempt.Receipt, bool, error) {
	if a.ClientID == "" {
		return attempt.Receipt{}, false, ErrMissingField
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if rec, ok := m.byClient[a.ClientID]; ok {
		return rec.receipt, false, nil
	}
	m.byClient[a.ClientID] = record{attempt: a, receipt: r}
	return r, true, nil
}

func (m *MemoryRepository) Get(_ context.Context, clientID string) (attempt.Receipt, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.byClient[clientID]
	if !ok {
		return attempt.Receipt{}, ErrNotFound
	}
	return rec.receipt, nil
}

func (m *MemoryRepository) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.byClient)
}
