package dashboard

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"my-finance-dashboard/logger"
	"my-finance-dashboard/users"
	"my-finance-dashboard/utils"
)

type Handler struct {
	service *Service
	timeout time.Duration
}

func NewHandler(service *Service, timeout time.Duration) *Handler {
	return &Handler{
		service: service,
		timeout: timeout,
	}
}

// Get overview totals, optionally for a day (date) or a month/year
func (h *Handler) HandleGetOverview(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var date *time.Time
	if dateStr := c.Query("date"); dateStr != "" {
		d, err := utils.ParseDate(dateStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date parameter"})
			return
		}
		date = &d
	}

	month, ok := queryInt(c, "month")
	if !ok {
		return
	}
	year, ok := queryInt(c, "year")
	if !ok {
		return
	}

	filter, err := NewPeriodFilter(date, month, year)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	rows, err := h.service.GetOverview(ctx, userID, filter)
	if err != nil {
		respondError(c, err, "Could not compute overview")
		return
	}
	c.JSON(http.StatusOK, rows)
}

// Get chart datasets, optionally restricted to [startDate, endDate]
func (h *Handler) HandleGetCharts(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var filter RangeFilter
	for _, bound := range []struct {
		param string
		dst   **time.Time
	}{
		{"startDate", &filter.Start},
		{"endDate", &filter.End},
	} {
		value := c.Query(bound.param)
		if value == "" {
			continue
		}
		d, err := utils.ParseDate(value)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Invalid %s parameter", bound.param)})
			return
		}
		*bound.dst = &d
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	rows, err := h.service.GetCharts(ctx, userID, filter)
	if err != nil {
		respondError(c, err, "Could not compute charts")
		return
	}
	c.JSON(http.StatusOK, rows)
}

// Create revenue
func (h *Handler) HandleCreateRevenue(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req CreateRevenueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	date, ok := bodyDate(c, req.Date)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	rec, err := h.service.CreateRevenue(ctx, userID, RevenueEntry{
		Amount: req.Amount,
		Date:   date,
		Source: req.Source,
	})
	if err != nil {
		respondError(c, err, "Could not create revenue")
		return
	}
	c.JSON(http.StatusCreated, rec)
}

// Create receivable
func (h *Handler) HandleCreateReceivable(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req CreateReceivableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	date, ok := bodyDate(c, req.Date)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	rec, err := h.service.CreateReceivable(ctx, userID, ReceivableEntry{
		Amount: req.Amount,
		Date:   date,
		Status: req.Status,
		Client: req.Client,
	})
	if err != nil {
		respondError(c, err, "Could not create receivable")
		return
	}
	c.JSON(http.StatusCreated, rec)
}

// Create expense
func (h *Handler) HandleCreateExpense(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	date, ok := bodyDate(c, req.Date)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	rec, err := h.service.CreateExpense(ctx, userID, ExpenseEntry{
		Amount:   req.Amount,
		Date:     date,
		Category: req.Category,
	})
	if err != nil {
		respondError(c, err, "Could not create expense")
		return
	}
	c.JSON(http.StatusCreated, rec)
}

func requireUser(c *gin.Context) (string, bool) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found"})
		return "", false
	}
	return userID, true
}

func queryInt(c *gin.Context, name string) (*int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Invalid %s parameter", name)})
		return nil, false
	}
	return &value, true
}

// bodyDate parses an optional entry date; an empty value is left zero for the service to default.
func bodyDate(c *gin.Context, raw string) (time.Time, bool) {
	if raw == "" {
		return time.Time{}, true
	}
	d, err := utils.ParseDate(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date"})
		return time.Time{}, false
	}
	return d, true
}

func respondError(c *gin.Context, err error, message string) {
	switch {
	case errors.Is(err, users.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Referenced user not found"})
	case errors.Is(err, ErrDashboardDataNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Dashboard data not found"})
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		c.JSON(http.StatusInternalServerError, gin.H{"error": message + ". Too long to respond."})
	default:
		logger.Error(message, zap.String("request_id", logger.RequestID(c)), zap.Error(err))
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": message})
	}
}
