package services

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/luxtick-backend/internal/data/repos"
	pkgerrors "github.com/yungbote/luxtick-backend/internal/pkg/errors"
	"github.com/yungbote/luxtick-backend/internal/platform/logger"
)

const groupByProductLimit = 20

// SpendingQuery selects the window for a spending summary. Period names a
// relative range ("today", "this_week", "this_month", "last_month",
// "this_year", "last_3_months", "last_year", "all_time"); explicit
// StartDate/EndDate ("2006-01-02") override it. GroupBy is one of "store",
// "category" or "product".
type SpendingQuery struct {
	Period    string
	GroupBy   string
	Store     string
	Category  string
	StartDate string
	EndDate   string
}

type SpendingBreakdownRow struct {
	Name      string  `json:"name"`
	Total     float64 `json:"total"`
	Visits    int64   `json:"visits,omitempty"`
	Items     int64   `json:"items,omitempty"`
	Quantity  float64 `json:"quantity,omitempty"`
	Purchases int64   `json:"purchases,omitempty"`
}

type SpendingSummary struct {
	Period            string                 `json:"period"`
	TotalSpent        float64                `json:"total_spent"`
	ReceiptCount      int64                  `json:"receipt_count"`
	AveragePerReceipt float64                `json:"average_per_receipt"`
	Breakdown         []SpendingBreakdownRow `json:"breakdown"`
}

type FrequentPurchase struct {
	Product       string  `json:"product"`
	TimesBought   int64   `json:"times_bought"`
	TotalQuantity float64 `json:"total_quantity"`
	TotalSpent    float64 `json:"total_spent"`
	AveragePrice  float64 `json:"average_price"`
}

type StorePriceComparison struct {
	Store         string  `json:"store"`
	AveragePrice  float64 `json:"average_price"`
	MinPrice      float64 `json:"min_price"`
	MaxPrice      float64 `json:"max_price"`
	PurchaseCount int64   `json:"purchase_count"`
}

type PriceComparison struct {
	Product     string                 `json:"product"`
	Period      string                 `json:"period"`
	Comparisons []StorePriceComparison `json:"comparisons"`
}

type AnalyticsService interface {
	GetSpendingSummary(ctx context.Context, userID uuid.UUID, query SpendingQuery) (*SpendingSummary, error)
	GetFrequentPurchases(ctx context.Context, userID uuid.UUID, period string, limit int) ([]FrequentPurchase, error)
	// ComparePrices aggregates unit prices per store for one product term.
	// The term goes through the read-side product lookup first, so
	// "applesauce" also covers purchases recorded under an alias; when
	// nothing resolves, the raw receipt text is searched instead.
	ComparePrices(ctx context.Context, userID uuid.UUID, product string, store string, period string) (*PriceComparison, error)
}

type analyticsService struct {
	db            *gorm.DB
	log           *logger.Logger
	analyticsRepo repos.AnalyticsRepo
	query         ProductQueryService
}

func NewAnalyticsService(
	db *gorm.DB,
	baseLog *logger.Logger,
	analyticsRepo repos.AnalyticsRepo,
	query ProductQueryService,
) AnalyticsService {
	serviceLog := baseLog.With("service", "AnalyticsService")
	return &analyticsService{
		db:            db,
		log:           serviceLog,
		analyticsRepo: analyticsRepo,
		query:         query,
	}
}

func (as *analyticsService) GetSpendingSummary(ctx context.Context, userID uuid.UUID, query SpendingQuery) (*SpendingSummary, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("user id: %w", pkgerrors.ErrInvalidArgument)
	}
	start, end, err := resolveDateRange(query.Period, query.StartDate, query.EndDate)
	if err != nil {
		return nil, err
	}

	filter := repos.SpendingFilter{
		UserID:   userID,
		Start:    rangeStart(start),
		End:      rangeEnd(end),
		Store:    query.Store,
		Category: query.Category,
	}

	total, err := as.analyticsRepo.TotalSpending(ctx, nil, filter)
	if err != nil {
		return nil, fmt.Errorf("total spending: %w", err)
	}

	var breakdown []SpendingBreakdownRow
	switch query.GroupBy {
	case "store":
		rows, err := as.analyticsRepo.GroupByStore(ctx, nil, filter)
		if err != nil {
			return nil, fmt.Errorf("group by store: %w", err)
		}
		for _, row := range rows {
			breakdown = append(breakdown, SpendingBreakdownRow{
				Name:   row.Name,
				Total:  row.Total,
				Visits: row.Visits,
			})
		}
	case "category":
		rows, err := as.analyticsRepo.GroupByCategory(ctx, nil, filter)
		if err != nil {
			return nil, fmt.Errorf("group by category: %w", err)
		}
		for _, row := range rows {
			breakdown = append(breakdown, SpendingBreakdownRow{
				Name:  row.Name,
				Total: row.Total,
				Items: row.ItemCount,
			})
		}
	case "product":
		rows, err := as.analyticsRepo.GroupByProduct(ctx, nil, filter, groupByProductLimit)
		if err != nil {
			return nil, fmt.Errorf("group by product: %w", err)
		}
		for _, row := range rows {
			breakdown = append(breakdown, SpendingBreakdownRow{
				Name:      row.Name,
				Total:     row.Total,
				Quantity:  row.TotalQuantity,
				Purchases: row.PurchaseCount,
			})
		}
	}

	average := 0.0
	if total.ReceiptCount > 0 {
		average = roundCents(total.Total / float64(total.ReceiptCount))
	}
	return &SpendingSummary{
		Period:            describePeriod(query.Period, start, end),
		TotalSpent:        total.Total,
		ReceiptCount:      total.ReceiptCount,
		AveragePerReceipt: average,
		Breakdown:         breakdown,
	}, nil
}

func (as *analyticsService) GetFrequentPurchases(ctx context.Context, userID uuid.UUID, period string, limit int) ([]FrequentPurchase, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("user id: %w", pkgerrors.ErrInvalidArgument)
	}
	if limit <= 0 {
		limit = 10
	}
	start, end, err := resolveDateRange(period, "", "")
	if err != nil {
		return nil, err
	}

	rows, err := as.analyticsRepo.FrequentPurchases(ctx, nil, repos.SpendingFilter{
		UserID: userID,
		Start:  rangeStart(start),
		End:    rangeEnd(end),
	}, limit)
	if err != nil {
		return nil, fmt.Errorf("frequent purchases: %w", err)
	}

	items := make([]FrequentPurchase, 0, len(rows))
	for _, row := range rows {
		items = append(items, FrequentPurchase{
			Product:       row.Product,
			TimesBought:   row.TimesBought,
			TotalQuantity: row.TotalQuantity,
			TotalSpent:    row.TotalSpent,
			AveragePrice:  roundCents(row.AveragePrice),
		})
	}
	return items, nil
}

func (as *analyticsService) ComparePrices(ctx context.Context, userID uuid.UUID, product string, store string, period string) (*PriceComparison, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("user id: %w", pkgerrors.ErrInvalidArgument)
	}
	term := strings.TrimSpace(product)
	if term == "" {
		return nil, fmt.Errorf("product: %w", pkgerrors.ErrInvalidArgument)
	}
	if period == "" {
		period = "last_3_months"
	}
	start, end, err := resolveDateRange(period, "", "")
	if err != nil {
		return nil, err
	}

	matches, err := as.query.FindMatches(ctx, nil, term, defaultMatchLimit)
	if err != nil {
		return nil, fmt.Errorf("resolve product term: %w", err)
	}

	rows, err := as.analyticsRepo.PriceComparison(ctx, nil, repos.SpendingFilter{
		UserID: userID,
		Start:  rangeStart(start),
		End:    rangeEnd(end),
		Store:  store,
	}, matches.ProductIDs, term)
	if err != nil {
		return nil, fmt.Errorf("price comparison: %w", err)
	}

	comparisons := make([]StorePriceComparison, 0, len(rows))
	for _, row := range rows {
		comparisons = append(comparisons, StorePriceComparison{
			Store:         row.Store,
			AveragePrice:  roundCents(row.AveragePrice),
			MinPrice:      row.MinPrice,
			MaxPrice:      row.MaxPrice,
			PurchaseCount: row.PurchaseCount,
		})
	}
	return &PriceComparison{
		Product:     term,
		Period:      period,
		Comparisons: comparisons,
	}, nil
}

// resolveDateRange converts a period name or explicit dates into an
// inclusive day range. Zero times mean unbounded; an unknown or empty
// period defaults to this month.
func resolveDateRange(period, startDate, endDate string) (time.Time, time.Time, error) {
	if startDate != "" || endDate != "" {
		var start, end time.Time
		var err error
		if startDate != "" {
			start, err = time.Parse("2006-01-02", startDate)
			if err != nil {
				return time.Time{}, time.Time{}, fmt.Errorf("start date %q: %w", startDate, pkgerrors.ErrInvalidArgument)
			}
		}
		if endDate != "" {
			end, err = time.Parse("2006-01-02", endDate)
			if err != nil {
				return time.Time{}, time.Time{}, fmt.Errorf("end date %q: %w", endDate, pkgerrors.ErrInvalidArgument)
			}
		}
		return start, end, nil
	}

	today := startOfDay(time.Now())
	switch period {
	case "today":
		return today, today, nil
	case "this_week":
		weekday := int(today.Weekday())
		if weekday == 0 {
			weekday = 7
		}
		return today.AddDate(0, 0, -(weekday - 1)), today, nil
	case "this_month":
		return today.AddDate(0, 0, -(today.Day() - 1)), today, nil
	case "last_month":
		firstOfThisMonth := today.AddDate(0, 0, -(today.Day() - 1))
		lastOfPrev := firstOfThisMonth.AddDate(0, 0, -1)
		return lastOfPrev.AddDate(0, 0, -(lastOfPrev.Day() - 1)), lastOfPrev, nil
	case "this_year":
		return time.Date(today.Year(), 1, 1, 0, 0, 0, 0, today.Location()), today, nil
	case "last_3_months":
		return today.AddDate(0, 0, -90), today, nil
	case "last_year":
		return today.AddDate(0, 0, -365), today, nil
	case "all_time":
		return time.Time{}, time.Time{}, nil
	}
	return today.AddDate(0, 0, -(today.Day() - 1)), today, nil
}

func describePeriod(period string, start, end time.Time) string {
	if !start.IsZero() && !end.IsZero() {
		return fmt.Sprintf("%s to %s", start.Format("2006-01-02"), end.Format("2006-01-02"))
	}
	if period == "" {
		return "custom range"
	}
	return period
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func rangeStart(start time.Time) *time.Time {
	if start.IsZero() {
		return nil
	}
	return &start
}

// rangeEnd turns an inclusive end date into the exclusive bound the repo
// filters with, so purchases recorded later in the day still count.
func rangeEnd(end time.Time) *time.Time {
	if end.IsZero() {
		return nil
	}
	exclusive := startOfDay(end).AddDate(0, 0, 1)
	return &exclusive
}
