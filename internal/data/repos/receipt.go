package repos

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/luxtick-backend/internal/domain"
	"github.com/yungbote/luxtick-backend/internal/platform/logger"
)

type ReceiptRepo interface {
	Create(ctx context.Context, tx *gorm.DB, receipts []*types.Receipt) ([]*types.Receipt, error)
	ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.Receipt, error)
}

type receiptRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewReceiptRepo(db *gorm.DB, baseLog *logger.Logger) ReceiptRepo {
	repoLog := baseLog.With("repo", "ReceiptRepo")
	return &receiptRepo{db: db, log: repoLog}
}

func (rr *receiptRepo) Create(ctx context.Context, tx *gorm.DB, receipts []*types.Receipt) ([]*types.Receipt, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	if len(receipts) == 0 {
		return []*types.Receipt{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&receipts).Error; err != nil {
		return nil, err
	}

	return receipts, nil
}

func (rr *receiptRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.Receipt, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	var results []*types.Receipt
	q := transaction.WithContext(ctx).
		Preload("Items").
		Where("user_id = ?", userID).
		Order("purchase_date DESC, created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

type ReceiptItemRepo interface {
	Create(ctx context.Context, tx *gorm.DB, items []*types.ReceiptItem) ([]*types.ReceiptItem, error)
	SearchByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, query string, limit int) ([]*types.ReceiptItem, error)
}

type receiptItemRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewReceiptItemRepo(db *gorm.DB, baseLog *logger.Logger) ReceiptItemRepo {
	repoLog := baseLog.With("repo", "ReceiptItemRepo")
	return &receiptItemRepo{db: db, log: repoLog}
}

func (rir *receiptItemRepo) Create(ctx context.Context, tx *gorm.DB, items []*types.ReceiptItem) ([]*types.ReceiptItem, error) {
	transaction := tx
	if transaction == nil {
		transaction = rir.db
	}

	if len(items) == 0 {
		return []*types.ReceiptItem{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&items).Error; err != nil {
		return nil, err
	}

	return items, nil
}

// SearchByUser filters a user's purchase lines by a case-insensitive
// substring of the raw receipt text, newest purchases first.
func (rir *receiptItemRepo) SearchByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, query string, limit int) ([]*types.ReceiptItem, error) {
	transaction := tx
	if transaction == nil {
		transaction = rir.db
	}

	var results []*types.ReceiptItem
	q := transaction.WithContext(ctx).
		Model(&types.ReceiptItem{}).
		Joins("JOIN receipts ON receipts.id = receipt_items.receipt_id").
		Where("receipts.user_id = ?", userID).
		Order("receipts.purchase_date DESC")
	if trimmed := strings.TrimSpace(query); trimmed != "" {
		q = q.Where("LOWER(receipt_items.name_on_receipt) LIKE ?", "%"+strings.ToLower(trimmed)+"%")
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
