package ledger

import (
	"context"
	"errors"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/shandysiswandi/bazaar/internal/identity/entity"
	"github.com/shandysiswandi/bazaar/internal/pkg/goerror"
)

// memoryStore is a Store whose Atomic serialises callers, standing in for a
// row lock.
type memoryStore struct {
	tx sync.Mutex

	mu      sync.Mutex
	entries map[int64]entity.OTP

	insertErr error
	findErr   error
	deleteErr error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{entries: make(map[int64]entity.OTP)}
}

func (m *memoryStore) InsertOTP(_ context.Context, e entity.OTP) error {
	if m.insertErr != nil {
		return m.insertErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.entries[e.ID]; ok {
		return goerror.ErrConflict
	}
	m.entries[e.ID] = e
	return nil
}

func (m *memoryStore) FindOTP(_ context.Context, q Query) (*entity.OTP, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	var matches []entity.OTP
	for _, e := range m.entries {
		if e.Identifier != q.Identifier || e.Purpose != q.Purpose {
			continue
		}
		if q.CodeHash != "" && e.CodeHash != q.CodeHash {
			continue
		}
		if q.TokenHash != "" && e.ShortTokenHash != q.TokenHash {
			continue
		}
		matches = append(matches, e)
	}
	if len(matches) == 0 {
		return nil, goerror.ErrNotFound
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].CreatedAt.After(matches[j].CreatedAt) })
	return &matches[0], nil
}

func (m *memoryStore) DeleteOTP(_ context.Context, id int64) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.entries[id]; !ok {
		return goerror.ErrNotFound
	}
	delete(m.entries, id)
	return nil
}

func (m *memoryStore) DeleteExpiredOTPs(_ context.Context, before time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for id, e := range m.entries {
		if !before.Before(e.ExpiresAt) {
			delete(m.entries, id)
			n++
		}
	}
	return n, nil
}

func (m *memoryStore) Atomic(ctx context.Context, fn func(ctx context.Context) error) error {
	m.tx.Lock()
	defer m.tx.Unlock()

	m.mu.Lock()
	snapshot := make(map[int64]entity.OTP, len(m.entries))
	for k, v := range m.entries {
		snapshot[k] = v
	}
	m.mu.Unlock()

	if err := fn(ctx); err != nil {
		m.mu.Lock()
		m.entries = snapshot
		m.mu.Unlock()
		return err
	}
	return nil
}

func (m *memoryStore) len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

type sequence struct{ n atomic.Int64 }

func (s *sequence) Generate() int64 { return s.n.Add(1) }

type fixedCode struct {
	codes []string
	i     int
	err   error
}

func (f *fixedCode) Generate() (string, error) {
	if f.err != nil {
		return "", f.err
	}
	c := f.codes[f.i%len(f.codes)]
	f.i++
	return c, nil
}

var errStoreDown = errors.New("store down")
