package dashboard

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"my-finance-dashboard/users"
)

var fixedNow = time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 9, 30, 0, 0, time.UTC)
}

func amt(t *testing.T, s string) Amount {
	t.Helper()
	a, err := AmountFromString(s)
	require.NoError(t, err)
	return a
}

func amountStrings(amounts []Amount) []string {
	out := make([]string, 0, len(amounts))
	for _, a := range amounts {
		out = append(out, a.String())
	}
	return out
}

type fakeDirectory map[string]users.User

func (d fakeDirectory) GetUserByID(_ context.Context, id string) (users.User, error) {
	u, ok := d[id]
	if !ok {
		return users.User{}, users.ErrUserNotFound
	}
	return u, nil
}

func newDirectory() fakeDirectory {
	return fakeDirectory{
		"owner":  {ID: "owner", Name: "Owner"},
		"client": {ID: "client", Name: "Client"},
	}
}

type fakeCache struct {
	mu          sync.Mutex
	generations map[string]uint64
	reports     map[string]string
	invalidated []string
}

func newFakeCache() *fakeCache {
	return &fakeCache{
		generations: make(map[string]uint64),
		reports:     make(map[string]string),
	}
}

func reportKey(userID string, generation uint64, option string) string {
	return fmt.Sprintf("%s:%d:%s", userID, generation, option)
}

func (c *fakeCache) Generation(userID string) (uint64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generations[userID], nil
}

func (c *fakeCache) GetReport(userID string, generation uint64, option string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	r, ok := c.reports[reportKey(userID, generation, option)]
	if !ok {
		return "", errCacheMiss
	}
	return r, nil
}

func (c *fakeCache) CacheReport(userID string, generation uint64, option string, report string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reports[reportKey(userID, generation, option)] = report
	return nil
}

func (c *fakeCache) InvalidateCache(userID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.generations[userID]++
	c.invalidated = append(c.invalidated, userID)
	return nil
}

type cacheMissError struct{}

func (cacheMissError) Error() string { return "cache miss" }

var errCacheMiss error = cacheMissError{}

// countingStore records how often the aggregations reach the underlying store.
type countingStore struct {
	*MemoryStore
	overviewCalls int
	chartsCalls   int
}

func (s *countingStore) Overview(ctx context.Context, userID string, filter PeriodFilter) ([]OverviewTotals, error) {
	s.overviewCalls++
	return s.MemoryStore.Overview(ctx, userID, filter)
}

func (s *countingStore) Charts(ctx context.Context, userID string, filter RangeFilter, now time.Time) ([]ChartBundle, error) {
	s.chartsCalls++
	return s.MemoryStore.Charts(ctx, userID, filter, now)
}

func seededStore(t *testing.T) *MemoryStore {
	t.Helper()
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.CreateRecord(ctx, "u"))

	for _, r := range []RevenueEntry{
		{Amount: amt(t, "100"), Date: day(2024, time.January, 5), Source: "owner"},
		{Amount: amt(t, "200"), Date: day(2024, time.March, 10), Source: "owner"},
		{Amount: amt(t, "50.25"), Date: day(2023, time.March, 10), Source: "owner"},
	} {
		_, err := store.AppendRevenue(ctx, "u", r)
		require.NoError(t, err)
	}
	for _, r := range []ReceivableEntry{
		{Amount: amt(t, "40"), Date: day(2024, time.March, 10), Status: StatusPending, Client: "client"},
		{Amount: amt(t, "60"), Date: day(2024, time.March, 11), Status: StatusPaid, Client: "client"},
		{Amount: amt(t, "5"), Date: day(2024, time.April, 1), Status: StatusPending, Client: "client"},
	} {
		_, err := store.AppendReceivable(ctx, "u", r)
		require.NoError(t, err)
	}
	for _, e := range []ExpenseEntry{
		{Amount: amt(t, "10"), Date: day(2024, time.March, 10), Category: "Food"},
		{Amount: amt(t, "15.5"), Date: day(2024, time.March, 20), Category: "Rent"},
		{Amount: amt(t, "7"), Date: day(2024, time.February, 2), Category: "Food"},
	} {
		_, err := store.AppendExpense(ctx, "u", e)
		require.NoError(t, err)
	}
	return store
}
