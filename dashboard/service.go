package dashboard

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"my-finance-dashboard/category"
	"my-finance-dashboard/logger"
	"my-finance-dashboard/users"
	"my-finance-dashboard/utils"
)

// ErrDashboardDataNotFound is returned by the create operations when the user has no dashboard.
var ErrDashboardDataNotFound = errors.New("dashboard data not found")

const overviewOption = "overview"

type userDirectory interface {
	GetUserByID(ctx context.Context, id string) (users.User, error)
}

// reportCache stores reports under a per-user generation. InvalidateCache moves the user to a
// new generation, so reports computed before a write can never be read after it.
type reportCache interface {
	Generation(userID string) (uint64, error)
	GetReport(userID string, generation uint64, option string) (string, error)
	CacheReport(userID string, generation uint64, option string, report string) error
	InvalidateCache(userID string) error
}

type Service struct {
	store Store
	users userDirectory
	cache reportCache
	now   func() time.Time
}

type Option func(s *Service)

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// WithReportCache caches unfiltered overview and chart results per user.
func WithReportCache(cache reportCache) Option {
	return func(s *Service) {
		s.cache = cache
	}
}

func NewService(store Store, users userDirectory, opts ...Option) *Service {
	s := &Service{
		store: store,
		users: users,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetOverview returns at most one row of totals; no row when the user has no dashboard.
func (s *Service) GetOverview(ctx context.Context, userID string, filter PeriodFilter) (rows []OverviewTotals, err error) {
	logger.Info("GetOverview - start", zap.String("userID", userID), zap.Stringer("filter", filter.Kind))
	defer logger.Info("GetOverview - end")
	defer observe(opOverview, time.Now(), &err)

	var generation uint64
	cacheable := filter.Kind == NoFilter
	if cacheable {
		generation, cacheable = s.cacheGeneration(userID)
	}
	if cacheable && s.cachedReport(userID, generation, overviewOption, &rows) {
		return rows, nil
	}

	rows, err = s.store.Overview(ctx, userID, filter)
	if err != nil {
		return nil, errors.Wrap(err, "get overview")
	}
	if cacheable && len(rows) > 0 {
		s.cacheReport(userID, generation, overviewOption, rows)
	}
	return rows, nil
}

// GetCharts returns at most one chart bundle; no bundle when the user has no dashboard.
func (s *Service) GetCharts(ctx context.Context, userID string, filter RangeFilter) (rows []ChartBundle, err error) {
	logger.Info("GetCharts - start", zap.String("userID", userID))
	defer logger.Info("GetCharts - end")
	defer observe(opCharts, time.Now(), &err)

	now := s.now()
	option := chartsOption(now)
	var generation uint64
	cacheable := filter.IsZero()
	if cacheable {
		generation, cacheable = s.cacheGeneration(userID)
	}
	if cacheable && s.cachedReport(userID, generation, option, &rows) {
		return rows, nil
	}

	rows, err = s.store.Charts(ctx, userID, filter, now)
	if err != nil {
		return nil, errors.Wrap(err, "get charts")
	}
	if cacheable && len(rows) > 0 {
		s.cacheReport(userID, generation, option, rows)
	}
	return rows, nil
}

// CreateRevenue appends a revenue whose source must be an existing user.
// The user lookup error is returned as is.
func (s *Service) CreateRevenue(ctx context.Context, userID string, entry RevenueEntry) (rec *Record, err error) {
	logger.Info("CreateRevenue - start", zap.String("userID", userID), zap.String("source", entry.Source))
	defer logger.Info("CreateRevenue - end")
	defer observe(opCreateRevenue, time.Now(), &err)

	if _, err = s.users.GetUserByID(ctx, entry.Source); err != nil {
		return nil, err
	}

	entry.Date = s.normalizeDate(entry.Date)
	rec, err = s.store.AppendRevenue(ctx, userID, entry)
	return s.afterAppend(userID, rec, err, "create revenue")
}

// CreateReceivable appends a receivable whose client must be an existing user.
// The user lookup error is returned as is.
func (s *Service) CreateReceivable(ctx context.Context, userID string, entry ReceivableEntry) (rec *Record, err error) {
	logger.Info("CreateReceivable - start", zap.String("userID", userID), zap.String("client", entry.Client))
	defer logger.Info("CreateReceivable - end")
	defer observe(opCreateReceivable, time.Now(), &err)

	if _, err = s.users.GetUserByID(ctx, entry.Client); err != nil {
		return nil, err
	}

	entry.Date = s.normalizeDate(entry.Date)
	rec, err = s.store.AppendReceivable(ctx, userID, entry)
	return s.afterAppend(userID, rec, err, "create receivable")
}

// CreateExpense appends an expense. Categories outside the fixed set are accepted.
func (s *Service) CreateExpense(ctx context.Context, userID string, entry ExpenseEntry) (rec *Record, err error) {
	logger.Info("CreateExpense - start", zap.String("userID", userID), zap.String("category", string(entry.Category)))
	defer logger.Info("CreateExpense - end")
	defer observe(opCreateExpense, time.Now(), &err)

	if !category.IsKnown(entry.Category) {
		logger.Debug("expense outside the fixed categories", zap.String("category", string(entry.Category)))
	}

	entry.Date = s.normalizeDate(entry.Date)
	rec, err = s.store.AppendExpense(ctx, userID, entry)
	return s.afterAppend(userID, rec, err, "create expense")
}

func (s *Service) afterAppend(userID string, rec *Record, err error, op string) (*Record, error) {
	if err != nil {
		return nil, errors.Wrap(err, op)
	}
	if rec == nil {
		return nil, ErrDashboardDataNotFound
	}
	s.invalidate(userID)
	return rec, nil
}

// normalizeDate defaults a missing date to now and keeps the precision the store can hold.
func (s *Service) normalizeDate(t time.Time) time.Time {
	if t.IsZero() {
		t = s.now()
	}
	return t.UTC().Truncate(time.Millisecond)
}

func chartsOption(now time.Time) string {
	return "charts:" + utils.FormatDate(now)
}

// cacheGeneration must be read before the store so a concurrent write always outdates it.
func (s *Service) cacheGeneration(userID string) (uint64, bool) {
	if s.cache == nil {
		return 0, false
	}
	generation, err := s.cache.Generation(userID)
	if err != nil {
		logger.Warn("read report generation", zap.String("userID", userID), zap.Error(err))
		return 0, false
	}
	return generation, true
}

func (s *Service) cachedReport(userID string, generation uint64, option string, out interface{}) bool {
	raw, err := s.cache.GetReport(userID, generation, option)
	if err != nil {
		logger.Debug("report cache miss", zap.String("userID", userID), zap.String("option", option), zap.Error(err))
		return false
	}
	if err = json.Unmarshal([]byte(raw), out); err != nil {
		logger.Warn("drop unreadable cached report", zap.String("userID", userID), zap.String("option", option), zap.Error(err))
		return false
	}
	return true
}

func (s *Service) cacheReport(userID string, generation uint64, option string, report interface{}) {
	raw, err := json.Marshal(report)
	if err != nil {
		logger.Warn("encode report for cache", zap.String("userID", userID), zap.Error(err))
		return
	}
	if err = s.cache.CacheReport(userID, generation, option, string(raw)); err != nil {
		logger.Warn("cache report", zap.String("userID", userID), zap.String("option", option), zap.Error(err))
	}
}

func (s *Service) invalidate(userID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateCache(userID); err != nil {
		logger.Warn("invalidate report cache", zap.String("userID", userID), zap.Error(err))
	}
}
