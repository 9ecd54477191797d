package repos

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/luxtick-backend/internal/domain"
	"github.com/yungbote/luxtick-backend/internal/platform/logger"
)

// SpendingFilter narrows aggregation queries to one user and optional
// purchase-date, store and category windows. Start is inclusive, End is
// exclusive, nil means unbounded on that side. Store and Category are
// case-insensitive substring filters.
type SpendingFilter struct {
	UserID   uuid.UUID
	Start    *time.Time
	End      *time.Time
	Store    string
	Category string
}

type SpendingTotal struct {
	Total        float64
	ReceiptCount int64
}

type StoreSpendingRow struct {
	Name   string
	Total  float64
	Visits int64
}

type CategorySpendingRow struct {
	Name      string
	Total     float64
	ItemCount int64
}

type ProductSpendingRow struct {
	Name          string
	Total         float64
	TotalQuantity float64
	PurchaseCount int64
}

type FrequentPurchaseRow struct {
	Product       string
	TimesBought   int64
	TotalQuantity float64
	TotalSpent    float64
	AveragePrice  float64
}

type PriceComparisonRow struct {
	Store         string
	AveragePrice  float64
	MinPrice      float64
	MaxPrice      float64
	PurchaseCount int64
}

type AnalyticsRepo interface {
	TotalSpending(ctx context.Context, tx *gorm.DB, filter SpendingFilter) (*SpendingTotal, error)
	GroupByStore(ctx context.Context, tx *gorm.DB, filter SpendingFilter) ([]StoreSpendingRow, error)
	GroupByCategory(ctx context.Context, tx *gorm.DB, filter SpendingFilter) ([]CategorySpendingRow, error)
	GroupByProduct(ctx context.Context, tx *gorm.DB, filter SpendingFilter, limit int) ([]ProductSpendingRow, error)
	FrequentPurchases(ctx context.Context, tx *gorm.DB, filter SpendingFilter, limit int) ([]FrequentPurchaseRow, error)
	// PriceComparison aggregates unit prices per store for one product.
	// When productIDs is non-empty it filters by resolved product ids,
	// otherwise it falls back to a substring match on the raw receipt text.
	PriceComparison(ctx context.Context, tx *gorm.DB, filter SpendingFilter, productIDs []uuid.UUID, nameQuery string) ([]PriceComparisonRow, error)
}

type analyticsRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAnalyticsRepo(db *gorm.DB, baseLog *logger.Logger) AnalyticsRepo {
	repoLog := baseLog.With("repo", "AnalyticsRepo")
	return &analyticsRepo{db: db, log: repoLog}
}

func (ar *analyticsRepo) TotalSpending(ctx context.Context, tx *gorm.DB, filter SpendingFilter) (*SpendingTotal, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}

	var row SpendingTotal
	if strings.TrimSpace(filter.Category) != "" {
		q := transaction.WithContext(ctx).
			Model(&types.ReceiptItem{}).
			Select("COALESCE(SUM(receipt_items.total_price), 0) AS total, COUNT(DISTINCT receipt_items.receipt_id) AS receipt_count").
			Joins("JOIN receipts ON receipts.id = receipt_items.receipt_id").
			Joins("LEFT JOIN products ON products.id = receipt_items.product_id").
			Joins("LEFT JOIN categories ON categories.id = products.category_id").
			Where("LOWER(categories.name) LIKE ?", likePattern(filter.Category))
		q = applyReceiptWindow(q, filter)
		if err := q.Scan(&row).Error; err != nil {
			return nil, err
		}
		return &row, nil
	}

	q := transaction.WithContext(ctx).
		Model(&types.Receipt{}).
		Select("COALESCE(SUM(receipts.total_amount), 0) AS total, COUNT(receipts.id) AS receipt_count")
	q = applyReceiptWindow(q, filter)
	if err := q.Scan(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (ar *analyticsRepo) GroupByStore(ctx context.Context, tx *gorm.DB, filter SpendingFilter) ([]StoreSpendingRow, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}

	var rows []StoreSpendingRow
	q := transaction.WithContext(ctx).
		Model(&types.Receipt{}).
		Select("COALESCE(stores.name, 'Unknown') AS name, SUM(receipts.total_amount) AS total, COUNT(receipts.id) AS visits").
		Joins("LEFT JOIN stores ON stores.id = receipts.store_id").
		Group("stores.name").
		Order("total DESC")
	q = applyReceiptWindow(q, filter)
	if err := q.Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (ar *analyticsRepo) GroupByCategory(ctx context.Context, tx *gorm.DB, filter SpendingFilter) ([]CategorySpendingRow, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}

	var rows []CategorySpendingRow
	q := transaction.WithContext(ctx).
		Model(&types.ReceiptItem{}).
		Select("COALESCE(categories.name, 'Uncategorized') AS name, SUM(receipt_items.total_price) AS total, COUNT(receipt_items.id) AS item_count").
		Joins("JOIN receipts ON receipts.id = receipt_items.receipt_id").
		Joins("LEFT JOIN products ON products.id = receipt_items.product_id").
		Joins("LEFT JOIN categories ON categories.id = products.category_id").
		Where("receipts.user_id = ?", filter.UserID).
		Group("categories.name").
		Order("total DESC")
	q = applyPurchaseDates(q, filter)
	if err := q.Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (ar *analyticsRepo) GroupByProduct(ctx context.Context, tx *gorm.DB, filter SpendingFilter, limit int) ([]ProductSpendingRow, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}

	var rows []ProductSpendingRow
	q := transaction.WithContext(ctx).
		Model(&types.ReceiptItem{}).
		Select("COALESCE(products.canonical_name, receipt_items.name_on_receipt) AS name, " +
			"SUM(receipt_items.total_price) AS total, " +
			"SUM(receipt_items.quantity) AS total_quantity, " +
			"COUNT(receipt_items.id) AS purchase_count").
		Joins("JOIN receipts ON receipts.id = receipt_items.receipt_id").
		Joins("LEFT JOIN stores ON stores.id = receipts.store_id").
		Joins("LEFT JOIN products ON products.id = receipt_items.product_id").
		Joins("LEFT JOIN categories ON categories.id = products.category_id").
		Where("receipts.user_id = ?", filter.UserID).
		Group("products.canonical_name, receipt_items.name_on_receipt").
		Order("total DESC")
	q = applyPurchaseDates(q, filter)
	if store := strings.TrimSpace(filter.Store); store != "" {
		q = q.Where("stores.normalized_name LIKE ?", likePattern(store))
	}
	if category := strings.TrimSpace(filter.Category); category != "" {
		q = q.Where("LOWER(categories.name) LIKE ?", likePattern(category))
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (ar *analyticsRepo) FrequentPurchases(ctx context.Context, tx *gorm.DB, filter SpendingFilter, limit int) ([]FrequentPurchaseRow, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}

	var rows []FrequentPurchaseRow
	q := transaction.WithContext(ctx).
		Model(&types.ReceiptItem{}).
		Select("COALESCE(products.canonical_name, receipt_items.name_on_receipt) AS product, " +
			"COUNT(receipt_items.id) AS times_bought, " +
			"SUM(receipt_items.quantity) AS total_quantity, " +
			"SUM(receipt_items.total_price) AS total_spent, " +
			"AVG(receipt_items.unit_price) AS average_price").
		Joins("JOIN receipts ON receipts.id = receipt_items.receipt_id").
		Joins("LEFT JOIN products ON products.id = receipt_items.product_id").
		Where("receipts.user_id = ?", filter.UserID).
		Group("products.canonical_name, receipt_items.name_on_receipt").
		Order("times_bought DESC")
	q = applyPurchaseDates(q, filter)
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (ar *analyticsRepo) PriceComparison(ctx context.Context, tx *gorm.DB, filter SpendingFilter, productIDs []uuid.UUID, nameQuery string) ([]PriceComparisonRow, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}

	var rows []PriceComparisonRow
	q := transaction.WithContext(ctx).
		Model(&types.ReceiptItem{}).
		Select("COALESCE(stores.name, 'Unknown') AS store, " +
			"AVG(receipt_items.unit_price) AS average_price, " +
			"MIN(receipt_items.unit_price) AS min_price, " +
			"MAX(receipt_items.unit_price) AS max_price, " +
			"COUNT(receipt_items.id) AS purchase_count").
		Joins("JOIN receipts ON receipts.id = receipt_items.receipt_id").
		Joins("LEFT JOIN stores ON stores.id = receipts.store_id").
		Where("receipts.user_id = ?", filter.UserID).
		Group("stores.name").
		Order("average_price")
	if len(productIDs) > 0 {
		q = q.Where("receipt_items.product_id IN ?", productIDs)
	} else {
		q = q.Where("LOWER(receipt_items.name_on_receipt) LIKE ?", likePattern(nameQuery))
	}
	q = applyPurchaseDates(q, filter)
	if store := strings.TrimSpace(filter.Store); store != "" {
		q = q.Where("stores.normalized_name LIKE ?", likePattern(store))
	}
	if err := q.Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// applyReceiptWindow applies the user, date and store filters to a query
// whose FROM clause is the receipts table.
func applyReceiptWindow(q *gorm.DB, filter SpendingFilter) *gorm.DB {
	q = q.Where("receipts.user_id = ?", filter.UserID)
	q = applyPurchaseDates(q, filter)
	if store := strings.TrimSpace(filter.Store); store != "" {
		q = q.Joins("LEFT JOIN stores AS store_filter ON store_filter.id = receipts.store_id").
			Where("store_filter.normalized_name LIKE ?", likePattern(store))
	}
	return q
}

func applyPurchaseDates(q *gorm.DB, filter SpendingFilter) *gorm.DB {
	if filter.Start != nil {
		q = q.Where("receipts.purchase_date >= ?", *filter.Start)
	}
	if filter.End != nil {
		q = q.Where("receipts.purchase_date < ?", *filter.End)
	}
	return q
}

func likePattern(term string) string {
	return "%" + strings.ToLower(strings.TrimSpace(term)) + "%"
}
