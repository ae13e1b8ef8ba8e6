package dashboard

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
)

// MemoryStore keeps dashboards in process and reduces them in Go.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]*Record
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]*Record)}
}

func (s *MemoryStore) CreateRecord(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[userID]; !ok {
		s.records[userID] = &Record{
			User:        userID,
			Revenues:    []RevenueEntry{},
			Receivables: []ReceivableEntry{},
			Expenses:    []ExpenseEntry{},
		}
	}
	return nil
}

// Get returns a copy of the user's record.
func (s *MemoryStore) Get(userID string) (*Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[userID]
	if !ok {
		return nil, false
	}
	return rec.clone(), true
}

func (s *MemoryStore) Overview(ctx context.Context, userID string, filter PeriodFilter) ([]OverviewTotals, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, "overview")
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows := make([]OverviewTotals, 0, 1)
	if rec, ok := s.records[userID]; ok {
		rows = append(rows, summarize(rec, filter))
	}
	return rows, nil
}

func (s *MemoryStore) Charts(ctx context.Context, userID string, filter RangeFilter, now time.Time) ([]ChartBundle, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, "charts")
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows := make([]ChartBundle, 0, 1)
	if rec, ok := s.records[userID]; ok {
		rows = append(rows, buildCharts(rec, filter, newChartLayout(now)))
	}
	return rows, nil
}

func (s *MemoryStore) AppendRevenue(ctx context.Context, userID string, entry RevenueEntry) (*Record, error) {
	return s.update(ctx, userID, func(rec *Record) {
		for _, existing := range rec.Revenues {
			if existing.equal(entry) {
				return
			}
		}
		rec.Revenues = append(rec.Revenues, entry)
	})
}

func (s *MemoryStore) AppendReceivable(ctx context.Context, userID string, entry ReceivableEntry) (*Record, error) {
	return s.update(ctx, userID, func(rec *Record) {
		for _, existing := range rec.Receivables {
			if existing.equal(entry) {
				return
			}
		}
		rec.Receivables = append(rec.Receivables, entry)
	})
}

func (s *MemoryStore) AppendExpense(ctx context.Context, userID string, entry ExpenseEntry) (*Record, error) {
	return s.update(ctx, userID, func(rec *Record) {
		for _, existing := range rec.Expenses {
			if existing.equal(entry) {
				return
			}
		}
		rec.Expenses = append(rec.Expenses, entry)
	})
}

func (s *MemoryStore) update(ctx context.Context, userID string, apply func(rec *Record)) (*Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, "append entry")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[userID]
	if !ok {
		return nil, nil
	}
	apply(rec)
	return rec.clone(), nil
}

func (r *Record) clone() *Record {
	out := *r
	out.Revenues = append([]RevenueEntry{}, r.Revenues...)
	out.Receivables = append([]ReceivableEntry{}, r.Receivables...)
	out.Expenses = append([]ExpenseEntry{}, r.Expenses...)
	return &out
}
