package dashboard

import (
	"strconv"
	"time"

	"my-finance-dashboard/category"
)

// summarize computes overview totals in process with the same semantics as overviewPipeline.
func summarize(rec *Record, filter PeriodFilter) OverviewTotals {
	totals := OverviewTotals{
		TotalRevenue:       zeroAmount,
		TotalReceivables:   zeroAmount,
		PendingReceivables: zeroAmount,
		TotalExpenses:      zeroAmount,
	}

	for _, r := range rec.Revenues {
		if filter.matches(r.Date) {
			totals.TotalRevenue = totals.TotalRevenue.Add(r.Amount)
		}
	}
	for _, r := range rec.Receivables {
		if !filter.matches(r.Date) {
			continue
		}
		totals.TotalReceivables = totals.TotalReceivables.Add(r.Amount)
		if r.Status == StatusPending {
			totals.PendingReceivables = totals.PendingReceivables.Add(r.Amount)
		}
	}
	for _, e := range rec.Expenses {
		if filter.matches(e.Date) {
			totals.TotalExpenses = totals.TotalExpenses.Add(e.Amount)
		}
	}
	return totals
}

// buildCharts groups entries by month bucket, category and day-of-month, mirroring chartsPipeline.
func buildCharts(rec *Record, filter RangeFilter, layout chartLayout) ChartBundle {
	bundle := ChartBundle{
		LineChart: LineChart{
			Labels:   layout.months,
			Revenues: zeros(len(layout.months)),
			Expenses: zeros(len(layout.months)),
		},
		DoughnutChart: DoughnutChart{
			Labels: layout.categories,
			Data:   zeros(len(layout.categories)),
			Colors: layout.colors,
		},
		BarChart: BarChart{
			Labels:       layout.days,
			Revenues:     zeros(len(layout.days)),
			Expenses:     zeros(len(layout.days)),
			CurrentMonth: layout.currentMonth,
		},
	}

	monthSlot := make(map[int]int, len(layout.months))
	for i := range layout.months {
		monthSlot[monthBucket(i)] = i
	}
	categorySlot := make(map[category.Name]int, len(layout.categories))
	for i, name := range layout.categories {
		categorySlot[category.Name(name)] = i
	}
	daySlot := make(map[int]int, len(layout.days))
	for i, label := range layout.days {
		day, _ := strconv.Atoi(label)
		daySlot[day] = i
	}

	add := func(series []Amount, slots map[int]int, key int, amount Amount) {
		if i, ok := slots[key]; ok {
			series[i] = series[i].Add(amount)
		}
	}

	for _, r := range rec.Revenues {
		if !filter.matches(r.Date) {
			continue
		}
		month, day := calendarParts(r.Date)
		add(bundle.LineChart.Revenues, monthSlot, month, r.Amount)
		add(bundle.BarChart.Revenues, daySlot, day, r.Amount)
	}
	for _, e := range rec.Expenses {
		if !filter.matches(e.Date) {
			continue
		}
		month, day := calendarParts(e.Date)
		add(bundle.LineChart.Expenses, monthSlot, month, e.Amount)
		add(bundle.BarChart.Expenses, daySlot, day, e.Amount)
		if i, ok := categorySlot[e.Category]; ok {
			bundle.DoughnutChart.Data[i] = bundle.DoughnutChart.Data[i].Add(e.Amount)
		}
	}
	return bundle
}

// calendarParts returns the UTC month number and day of month, as $month and $dayOfMonth do.
func calendarParts(t time.Time) (int, int) {
	t = t.UTC()
	return int(t.Month()), t.Day()
}

func zeros(n int) []Amount {
	out := make([]Amount, n)
	for i := range out {
		out[i] = zeroAmount
	}
	return out
}
