package dashboard

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"my-finance-dashboard/category"
)

type ReceivableStatus string

const (
	StatusPending ReceivableStatus = "Pending"
	StatusPaid    ReceivableStatus = "Paid"
)

// Record is the per-user dashboard document.
type Record struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	User        string             `bson:"user" json:"user"`
	Revenues    []RevenueEntry     `bson:"revenues" json:"revenues"`
	Receivables []ReceivableEntry  `bson:"receivables" json:"receivables"`
	Expenses    []ExpenseEntry     `bson:"expenses" json:"expenses"`
}

type RevenueEntry struct {
	Amount Amount    `bson:"amount" json:"amount"`
	Date   time.Time `bson:"date" json:"date"`
	Source string    `bson:"source" json:"source"`
}

type ReceivableEntry struct {
	Amount Amount           `bson:"amount" json:"amount"`
	Date   time.Time        `bson:"date" json:"date"`
	Status ReceivableStatus `bson:"status" json:"status"`
	Client string           `bson:"client" json:"client"`
}

type ExpenseEntry struct {
	Amount   Amount        `bson:"amount" json:"amount"`
	Date     time.Time     `bson:"date" json:"date"`
	Category category.Name `bson:"category" json:"category"`
}

func (e RevenueEntry) equal(o RevenueEntry) bool {
	return e.Amount.Equal(o.Amount.Decimal) && e.Date.Equal(o.Date) && e.Source == o.Source
}

func (e ReceivableEntry) equal(o ReceivableEntry) bool {
	return e.Amount.Equal(o.Amount.Decimal) && e.Date.Equal(o.Date) && e.Status == o.Status && e.Client == o.Client
}

func (e ExpenseEntry) equal(o ExpenseEntry) bool {
	return e.Amount.Equal(o.Amount.Decimal) && e.Date.Equal(o.Date) && e.Category == o.Category
}

type OverviewTotals struct {
	TotalRevenue       Amount `bson:"totalRevenue" json:"totalRevenue"`
	TotalReceivables   Amount `bson:"totalReceivables" json:"totalReceivables"`
	PendingReceivables Amount `bson:"pendingReceivables" json:"pendingReceivables"`
	TotalExpenses      Amount `bson:"totalExpenses" json:"totalExpenses"`
}

type LineChart struct {
	Labels   []string `bson:"labels" json:"labels"`
	Revenues []Amount `bson:"revenues" json:"revenues"`
	Expenses []Amount `bson:"expenses" json:"expenses"`
}

type DoughnutChart struct {
	Labels []string `bson:"labels" json:"labels"`
	Data   []Amount `bson:"data" json:"data"`
	Colors []string `bson:"colors" json:"colors"`
}

type BarChart struct {
	Labels       []string `bson:"labels" json:"labels"`
	Revenues     []Amount `bson:"revenues" json:"revenues"`
	Expenses     []Amount `bson:"expenses" json:"expenses"`
	CurrentMonth int      `bson:"currentMonth" json:"currentMonth"`
}

type ChartBundle struct {
	LineChart     LineChart     `bson:"lineChart" json:"lineChart"`
	DoughnutChart DoughnutChart `bson:"doughnutChart" json:"doughnutChart"`
	BarChart      BarChart      `bson:"barChart" json:"barChart"`
}

type CreateRevenueRequest struct {
	Amount Amount `json:"amount"`
	Date   string `json:"date"`
	Source string `json:"source" binding:"required"`
}

type CreateReceivableRequest struct {
	Amount Amount           `json:"amount"`
	Date   string           `json:"date"`
	Status ReceivableStatus `json:"status" binding:"required"`
	Client string           `json:"client" binding:"required"`
}

type CreateExpenseRequest struct {
	Amount   Amount        `json:"amount"`
	Date     string        `json:"date"`
	Category category.Name `json:"category" binding:"required"`
}
