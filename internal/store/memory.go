package store

import (
	"context"
	"sync"
)

// MemorySheet keeps rows in process. Used in development and tests.
type MemorySheet struct {
	mu   sync.RWMutex
	rows [][]string
}

func NewMemorySheet(rows ...[]string) *MemorySheet {
	s := &MemorySheet{}
	for _, r := range rows {
		s.rows = append(s.rows, cloneRow(r))
	}
	return s
}

func (s *MemorySheet) ReadHeader(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.rows) == 0 {
		return []string{}, nil
	}
	return cloneRow(s.rows[0]), nil
}

func (s *MemorySheet) WriteHeader(ctx context.Context, header []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = append([][]string{cloneRow(header)}, s.rows...)
	return nil
}

func (s *MemorySheet) AppendRow(ctx context.Context, cells []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = append(s.rows, cloneRow(cells))
	return nil
}

func (s *MemorySheet) ReadAllRows(ctx context.Context) ([]map[string]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.rows) == 0 {
		return []map[string]string{}, nil
	}
	return MapRows(s.rows[0], s.rows[1:]), nil
}

// Rows returns a copy of every stored row, header included.
func (s *MemorySheet) Rows() [][]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([][]string, 0, len(s.rows))
	for _, r := range s.rows {
		out = append(out, cloneRow(r))
	}
	return out
}

func (s *MemorySheet) Close() error { return nil }
