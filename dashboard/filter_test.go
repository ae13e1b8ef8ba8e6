package dashboard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestNewPeriodFilter(t *testing.T) {
	date := time.Date(2024, time.March, 10, 15, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		date     *time.Time
		month    *int
		year     *int
		want     PeriodFilter
		wantErr  bool
		wantKind PeriodKind
	}{
		{name: "nothing", wantKind: NoFilter, want: AnyPeriod()},
		{name: "date wins over year", date: &date, month: intPtr(1), year: intPtr(2020), wantKind: ExactDay, want: OnDay(date)},
		{name: "year only", year: intPtr(2024), wantKind: MonthYear, want: InYear(2024)},
		{name: "month and year", month: intPtr(3), year: intPtr(2024), wantKind: MonthYear, want: InMonth(2024, time.March)},
		{name: "month without year is ignored", month: intPtr(3), wantKind: NoFilter, want: AnyPeriod()},
		{name: "month out of range", month: intPtr(13), year: intPtr(2024), wantErr: true},
		{name: "month zero", month: intPtr(0), year: intPtr(2024), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewPeriodFilter(tt.date, tt.month, tt.year)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantKind, got.Kind)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPeriodFilter_Window(t *testing.T) {
	_, _, bounded := AnyPeriod().Window()
	assert.False(t, bounded)

	from, to, bounded := OnDay(time.Date(2024, time.March, 10, 15, 0, 0, 0, time.UTC)).Window()
	assert.True(t, bounded)
	assert.Equal(t, time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2024, time.March, 11, 0, 0, 0, 0, time.UTC), to)

	from, to, _ = InMonth(2024, time.February).Window()
	assert.Equal(t, time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), to)

	from, to, _ = InYear(2024).Window()
	assert.Equal(t, time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC), to)
}

func TestPeriodFilter_Matches(t *testing.T) {
	f := InMonth(2024, time.March)
	assert.True(t, f.matches(time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, f.matches(time.Date(2024, time.March, 31, 23, 59, 59, 0, time.UTC)))
	assert.False(t, f.matches(time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC)))
	assert.False(t, f.matches(time.Date(2024, time.February, 29, 23, 59, 59, 0, time.UTC)))
	assert.True(t, AnyPeriod().matches(time.Time{}))
}

func TestRangeFilter_Matches(t *testing.T) {
	start := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, time.March, 31, 0, 0, 0, 0, time.UTC)

	assert.True(t, RangeFilter{}.IsZero())
	assert.True(t, RangeFilter{}.matches(start))

	both := RangeFilter{Start: &start, End: &end}
	assert.False(t, both.IsZero())
	assert.True(t, both.matches(start))
	assert.True(t, both.matches(end))
	assert.False(t, both.matches(end.Add(time.Millisecond)))
	assert.False(t, both.matches(start.Add(-time.Millisecond)))

	open := RangeFilter{Start: &start}
	assert.True(t, open.matches(end.AddDate(5, 0, 0)))
}
