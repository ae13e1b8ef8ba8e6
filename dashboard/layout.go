package dashboard

import (
	"time"

	"my-finance-dashboard/category"
	"my-finance-dashboard/utils"
)

// chartLayout is the label set every chart bundle is computed against at a given moment.
type chartLayout struct {
	months       []string
	categories   []string
	colors       []string
	days         []string
	currentMonth int
}

func newChartLayout(now time.Time) chartLayout {
	now = now.UTC()
	return chartLayout{
		months:       utils.MonthsBeforeCurrent(now),
		categories:   category.Names(),
		colors:       category.Colors(),
		days:         append([]string(nil), utils.DayLabels...),
		currentMonth: int(now.Month()) - 1,
	}
}

// monthBucket is the calendar month number (1-12) summed under the month label at
// position idx. It is the label's position itself, not the label's own month, so
// January entries show under "February" and the first label never receives any.
// Product has not confirmed whether this offset is intended.
func monthBucket(idx int) int {
	return idx
}
