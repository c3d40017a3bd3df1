package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Sanjeev1695/billing-software/internal/apperr"
	"github.com/Sanjeev1695/billing-software/internal/models"
)

// IAnalyticsService defines the interface for sales/profit reporting.
type IAnalyticsService interface {
	DailyStats(ctx context.Context) (*DailyStats, error)
	StatsForPeriod(ctx context.Context, period string, start, end *time.Time) (*PeriodStats, error)
	TopSellingItems(ctx context.Context, start, end *time.Time, limit int) ([]ItemSales, error)
}

// DailyStats is the dashboard summary. OutstandingAmount is global (all open
// credit regardless of date), embedded in an otherwise daily report.
type DailyStats struct {
	TodaySales        float64 `json:"today_sales"`
	TodayProfit       float64 `json:"today_profit"`
	OutstandingAmount float64 `json:"outstanding_amount"`
	BillsCount        int     `json:"bills_count"`
}

// PeriodStats is the rollup for a resolved time window.
type PeriodStats struct {
	Period            string    `json:"period"`
	StartDate         time.Time `json:"start_date"`
	EndDate           time.Time `json:"end_date"`
	TotalSales        float64   `json:"total_sales"`
	TotalProfit       float64   `json:"total_profit"`
	BillsCount        int       `json:"bills_count"`
	PaidBillsCount    int       `json:"paid_bills_count"`
	CreditBillsCount  int       `json:"credit_bills_count"`
	PaidAmount        float64   `json:"paid_amount"`
	CreditAmount      float64   `json:"credit_amount"`
	AverageBillAmount float64   `json:"average_bill_amount"`
	ProfitMargin      float64   `json:"profit_margin"`
	OutstandingAmount float64   `json:"outstanding_amount"`
}

// ItemSales is one entry of the top-selling-items ranking, keyed by item
// name: distinct item ids sharing a name merge into one entry.
type ItemSales struct {
	Name         string  `json:"name"`
	QuantitySold int     `json:"quantity_sold"`
	TotalRevenue float64 `json:"total_revenue"`
	TotalProfit  float64 `json:"total_profit"`
}

// Recognised period names for StatsForPeriod. Anything else falls back to
// "today".
const (
	PeriodToday  = "today"
	PeriodWeek   = "week"
	PeriodMonth  = "month"
	PeriodYear   = "year"
	PeriodCustom = "custom"
)

// analyticsService implements IAnalyticsService.
type analyticsService struct {
	db *mongo.Database
}

// NewAnalyticsService creates a new AnalyticsService.
func NewAnalyticsService(database *mongo.Database) IAnalyticsService {
	return &analyticsService{db: database}
}

// resolvePeriodWindow maps a period name to a half-open [start, end) UTC
// window relative to now. Weeks start on the most recent Monday 00:00 UTC;
// months and years roll over naturally (December -> January). A custom
// period requires both bounds.
func resolvePeriodWindow(period string, start, end *time.Time, now time.Time) (time.Time, time.Time, error) {
	now = now.UTC()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	switch period {
	case PeriodWeek:
		// ISO weekday numbering with Monday = 0
		offset := (int(now.Weekday()) + 6) % 7
		weekStart := dayStart.AddDate(0, 0, -offset)
		return weekStart, weekStart.AddDate(0, 0, 7), nil
	case PeriodMonth:
		monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
		return monthStart, monthStart.AddDate(0, 1, 0), nil
	case PeriodYear:
		yearStart := time.Date(now.Year(), 1, 1, 0, 0, 0, 0, time.UTC)
		return yearStart, yearStart.AddDate(1, 0, 0), nil
	case PeriodCustom:
		if start == nil || end == nil {
			return time.Time{}, time.Time{}, fmt.Errorf("%w: custom period requires start_date and end_date", apperr.ErrInvalidInput)
		}
		return start.UTC(), end.UTC(), nil
	default:
		// Unrecognised or missing period falls back to today.
		return dayStart, dayStart.AddDate(0, 0, 1), nil
	}
}

// rollupBills computes the window aggregates as a pure function over the
// fetched bills, so the report is trivially consistent with bill state.
func rollupBills(period string, start, end time.Time, bills []models.Bill) *PeriodStats {
	stats := &PeriodStats{
		Period:     period,
		StartDate:  start,
		EndDate:    end,
		BillsCount: len(bills),
	}
	for _, b := range bills {
		stats.TotalSales += b.TotalAmount
		stats.TotalProfit += b.Profit
		switch b.BillType {
		case models.BillTypePaid:
			stats.PaidBillsCount++
			stats.PaidAmount += b.TotalAmount
		case models.BillTypeCredit:
			stats.CreditBillsCount++
			stats.CreditAmount += b.TotalAmount
		}
	}
	if stats.BillsCount > 0 {
		stats.AverageBillAmount = stats.TotalSales / float64(stats.BillsCount)
	}
	if stats.TotalSales > 0 {
		stats.ProfitMargin = stats.TotalProfit / stats.TotalSales * 100
	}
	return stats
}

// rankLineItems flattens bill line items, groups them by item name and ranks
// by revenue, truncated to limit.
func rankLineItems(bills []models.Bill, limit int) []ItemSales {
	byName := make(map[string]*ItemSales)
	for _, b := range bills {
		for _, it := range b.Items {
			entry, ok := byName[it.ItemName]
			if !ok {
				entry = &ItemSales{Name: it.ItemName}
				byName[it.ItemName] = entry
			}
			entry.QuantitySold += it.Quantity
			entry.TotalRevenue += it.Subtotal
			entry.TotalProfit += it.Profit
		}
	}

	ranked := make([]ItemSales, 0, len(byName))
	for _, entry := range byName {
		ranked = append(ranked, *entry)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].TotalRevenue != ranked[j].TotalRevenue {
			return ranked[i].TotalRevenue > ranked[j].TotalRevenue
		}
		return ranked[i].Name < ranked[j].Name
	})
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

func (s *analyticsService) billsInWindow(ctx context.Context, start, end *time.Time) ([]models.Bill, error) {
	query := bson.M{}
	created := bson.M{}
	if start != nil {
		created["$gte"] = start.UTC()
	}
	if end != nil {
		created["$lt"] = end.UTC()
	}
	if len(created) > 0 {
		query["created_at"] = created
	}

	cursor, err := s.db.Collection(billsCollection).Find(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query bills: %w", err)
	}
	defer cursor.Close(ctx)

	var bills []models.Bill
	if err = cursor.All(ctx, &bills); err != nil {
		return nil, fmt.Errorf("failed to decode bills: %w", err)
	}
	return bills, nil
}

// outstandingAmount sums remaining balances over all open credit bills,
// independent of any reporting window.
func (s *analyticsService) outstandingAmount(ctx context.Context) (float64, error) {
	cursor, err := s.db.Collection(billsCollection).Find(ctx, bson.M{
		"bill_type":         models.BillTypeCredit,
		"remaining_balance": bson.M{"$gt": 0},
	})
	if err != nil {
		return 0, fmt.Errorf("failed to query open credit bills: %w", err)
	}
	defer cursor.Close(ctx)

	var bills []models.Bill
	if err = cursor.All(ctx, &bills); err != nil {
		return 0, fmt.Errorf("failed to decode open credit bills: %w", err)
	}
	var total float64
	for _, b := range bills {
		if b.RemainingBalance != nil {
			total += *b.RemainingBalance
		}
	}
	return total, nil
}

// DailyStats reports today's sales and profit plus the global outstanding
// credit amount.
func (s *analyticsService) DailyStats(ctx context.Context) (*DailyStats, error) {
	start, end := utcDayWindow(time.Now())
	bills, err := s.billsInWindow(ctx, &start, &end)
	if err != nil {
		return nil, err
	}
	outstanding, err := s.outstandingAmount(ctx)
	if err != nil {
		return nil, err
	}

	stats := &DailyStats{
		OutstandingAmount: outstanding,
		BillsCount:        len(bills),
	}
	for _, b := range bills {
		stats.TodaySales += b.TotalAmount
		stats.TodayProfit += b.Profit
	}
	return stats, nil
}

// StatsForPeriod resolves the requested window and rolls up the bills inside
// it. The outstanding amount is global, as in DailyStats.
func (s *analyticsService) StatsForPeriod(ctx context.Context, period string, start, end *time.Time) (*PeriodStats, error) {
	switch period {
	case PeriodWeek, PeriodMonth, PeriodYear, PeriodCustom:
	default:
		period = PeriodToday
	}
	windowStart, windowEnd, err := resolvePeriodWindow(period, start, end, time.Now())
	if err != nil {
		return nil, err
	}
	bills, err := s.billsInWindow(ctx, &windowStart, &windowEnd)
	if err != nil {
		return nil, err
	}
	outstanding, err := s.outstandingAmount(ctx)
	if err != nil {
		return nil, err
	}

	stats := rollupBills(period, windowStart, windowEnd, bills)
	stats.OutstandingAmount = outstanding
	return stats, nil
}

// TopSellingItems ranks items by revenue over an optional window. Both
// bounds are optional; omitting them scans all bills.
func (s *analyticsService) TopSellingItems(ctx context.Context, start, end *time.Time, limit int) ([]ItemSales, error) {
	if limit <= 0 {
		limit = 10
	}
	bills, err := s.billsInWindow(ctx, start, end)
	if err != nil {
		return nil, err
	}
	return rankLineItems(bills, limit), nil
}
