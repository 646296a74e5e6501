package memory

import (
	"context"
	"sync"

	"gastos/internal/core"
	ports "gastos/internal/sheets"
)

// Store is an in-memory row-store used as the default backend and as the
// injectable fake in tests. Rows keep append order, like the real sheet.
type Store struct {
	mu   sync.Mutex
	rows []core.Record
}

var _ ports.RowStore = (*Store)(nil)

func New() *Store {
	return &Store{}
}

func (s *Store) AppendRow(_ context.Context, r core.Record) error {
	if err := r.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = append(s.rows, r)
	return nil
}

// ListRows returns the rows in their external string-keyed form, amounts
// rendered the way a spreadsheet cell would hold them.
func (s *Store) ListRows(_ context.Context) ([]core.RawRow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.RawRow, 0, len(s.rows))
	for _, r := range s.rows {
		out = append(out, core.RawRow{
			Date:        r.Date,
			Category:    r.Category,
			Amount:      r.Amount.String(),
			Description: r.Description,
		})
	}
	return out, nil
}

// Len reports the number of stored rows.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.rows)
}
