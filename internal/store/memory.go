package store

import (
	"context"
	"sync"
)

// MemoryTarget is an in-memory Target used in tests and local runs without a
// database. Error fields inject failures.
type MemoryTarget struct {
	mu     sync.Mutex
	exists bool
	rows   [][]string

	ReplaceErr error
	ReadErr    error
}

func NewMemoryTarget() *MemoryTarget {
	return &MemoryTarget{}
}

func (t *MemoryTarget) Replace(_ context.Context, rows [][]string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.ReplaceErr != nil {
		return t.ReplaceErr
	}

	copied := make([][]string, len(rows))
	for i, row := range rows {
		copied[i] = append([]string(nil), row...)
	}
	t.exists = true
	t.rows = copied
	return nil
}

func (t *MemoryTarget) ReadAll(_ context.Context) ([][]string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.ReadErr != nil {
		return nil, t.ReadErr
	}
	if !t.exists {
		return nil, nil
	}

	out := make([][]string, len(t.rows))
	for i, row := range t.rows {
		out[i] = append([]string(nil), row...)
	}
	return out, nil
}
