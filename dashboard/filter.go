package dashboard

import (
	"fmt"
	"time"

	"my-finance-dashboard/utils"
)

type PeriodKind int

const (
	NoFilter PeriodKind = iota
	ExactDay
	MonthYear
)

func (k PeriodKind) String() string {
	switch k {
	case ExactDay:
		return "exact-day"
	case MonthYear:
		return "month-year"
	default:
		return "none"
	}
}

// PeriodFilter narrows overview totals to a day, a month of a year, or a whole year.
// Month is zero when the filter spans a whole year.
type PeriodFilter struct {
	Kind  PeriodKind
	Day   time.Time
	Year  int
	Month time.Month
}

func AnyPeriod() PeriodFilter {
	return PeriodFilter{Kind: NoFilter}
}

func OnDay(day time.Time) PeriodFilter {
	return PeriodFilter{Kind: ExactDay, Day: day.UTC()}
}

func InYear(year int) PeriodFilter {
	return PeriodFilter{Kind: MonthYear, Year: year}
}

func InMonth(year int, month time.Month) PeriodFilter {
	return PeriodFilter{Kind: MonthYear, Year: year, Month: month}
}

// NewPeriodFilter resolves optional query fields: a date wins over year, month only
// counts together with a year, and nothing at all means no restriction.
func NewPeriodFilter(date *time.Time, month, year *int) (PeriodFilter, error) {
	switch {
	case date != nil:
		return OnDay(*date), nil
	case year != nil:
		if month == nil {
			return InYear(*year), nil
		}
		if *month < 1 || *month > 12 {
			return PeriodFilter{}, fmt.Errorf("month must be between 1 and 12, got %d", *month)
		}
		return InMonth(*year, time.Month(*month)), nil
	default:
		return AnyPeriod(), nil
	}
}

// Window returns the half-open span matched by the filter; bounded is false for NoFilter.
func (f PeriodFilter) Window() (from, to time.Time, bounded bool) {
	switch f.Kind {
	case ExactDay:
		from, to = utils.DayWindow(f.Day)
		return from, to, true
	case MonthYear:
		if f.Month == 0 {
			from, to = utils.YearWindow(f.Year)
		} else {
			from, to = utils.MonthWindow(f.Year, f.Month)
		}
		return from, to, true
	default:
		return time.Time{}, time.Time{}, false
	}
}

func (f PeriodFilter) matches(t time.Time) bool {
	from, to, bounded := f.Window()
	if !bounded {
		return true
	}
	return !t.Before(from) && t.Before(to)
}

// RangeFilter restricts chart entries to dates within [Start, End]; nil bounds are open.
type RangeFilter struct {
	Start *time.Time
	End   *time.Time
}

func (r RangeFilter) IsZero() bool {
	return r.Start == nil && r.End == nil
}

func (r RangeFilter) matches(t time.Time) bool {
	if r.Start != nil && t.Before(*r.Start) {
		return false
	}
	if r.End != nil && t.After(*r.End) {
		return false
	}
	return true
}
