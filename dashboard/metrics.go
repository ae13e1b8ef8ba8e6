package dashboard

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	opOverview         = "overview"
	opCharts           = "charts"
	opCreateRevenue    = "create_revenue"
	opCreateReceivable = "create_receivable"
	opCreateExpense    = "create_expense"
)

var operationDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: "myfinance",
		Subsystem: "dashboard",
		Name:      "operation_duration_seconds",
		Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2, 5},
	},
	[]string{"operation", "status"},
)

func observe(operation string, start time.Time, err *error) {
	status := "ok"
	if *err != nil {
		status = "error"
	}
	operationDuration.
		WithLabelValues(operation, status).
		Observe(time.Since(start).Seconds())
}
