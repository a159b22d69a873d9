package sheets

import (
	"context"
	"sync"
)

// MemoryStore keeps sheets in process. Used for local development and tests.
type MemoryStore struct {
	mu      sync.RWMutex
	headers map[string][]string
	rows    map[string][][]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		headers: make(map[string][]string),
		rows:    make(map[string][][]string),
	}
}

func (m *MemoryStore) Rows(_ context.Context, t Table) ([][]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	src := m.rows[t.Name]
	out := make([][]string, len(src))
	for i, r := range src {
		out[i] = append([]string(nil), r...)
	}
	return out, nil
}

func (m *MemoryStore) Append(_ context.Context, t Table, row []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.rows[t.Name] = append(m.rows[t.Name], append([]string(nil), row...))
	return nil
}

func (m *MemoryStore) UpdateRow(_ context.Context, t Table, index int, row []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	rows := m.rows[t.Name]
	if index < 0 || index >= len(rows) {
		return ErrRowOutOfRange
	}
	rows[index] = append([]string(nil), row...)
	return nil
}

func (m *MemoryStore) EnsureTable(_ context.Context, t Table) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.headers[t.Name]) < t.Width() {
		m.headers[t.Name] = append([]string(nil), t.Headers...)
	}
	return nil
}

// Headers returns the header row recorded for a sheet.
func (m *MemoryStore) Headers(name string) []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]string(nil), m.headers[name]...)
}

// Seed replaces the rows of a sheet. Test helper.
func (m *MemoryStore) Seed(t Table, rows ...[]string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cp := make([][]string, len(rows))
	for i, r := range rows {
		cp[i] = append([]string(nil), r...)
	}
	m.rows[t.Name] = cp
}
