package dashboard

import (
	"context"
	"time"
)

// Store runs the dashboard aggregations and appends entries to a user's record.
// Append methods return a nil record, and no error, when the user has no record.
type Store interface {
	Overview(ctx context.Context, userID string, filter PeriodFilter) ([]OverviewTotals, error)
	Charts(ctx context.Context, userID string, filter RangeFilter, now time.Time) ([]ChartBundle, error)
	AppendRevenue(ctx context.Context, userID string, entry RevenueEntry) (*Record, error)
	AppendReceivable(ctx context.Context, userID string, entry ReceivableEntry) (*Record, error)
	AppendExpense(ctx context.Context, userID string, entry ExpenseEntry) (*Record, error)
}
