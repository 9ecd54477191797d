package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/luxtick-backend/internal/data/repos"
	types "github.com/yungbote/luxtick-backend/internal/domain"
	"github.com/yungbote/luxtick-backend/internal/domain/purchases"
	pkgerrors "github.com/yungbote/luxtick-backend/internal/pkg/errors"
	"github.com/yungbote/luxtick-backend/internal/platform/logger"
)

type PurchaseItemInput struct {
	Name       string  `json:"name"`
	Quantity   float64 `json:"quantity"`
	Unit       string  `json:"unit"`
	UnitPrice  float64 `json:"unit_price"`
	TotalPrice float64 `json:"total_price"`
}

type PurchaseSearchRow struct {
	NameOnReceipt string     `json:"name_on_receipt"`
	ProductID     *uuid.UUID `json:"product_id,omitempty"`
	Quantity      float64    `json:"quantity"`
	UnitPrice     float64    `json:"unit_price"`
	TotalPrice    float64    `json:"total_price"`
}

type PurchaseService interface {
	// RecordPurchase writes one receipt with its line items. Every item name
	// is resolved to a canonical product inside the same transaction, so a
	// storage failure rolls back the receipt and any catalog mutations
	// together.
	RecordPurchase(ctx context.Context, userID uuid.UUID, storeName string, purchaseDate time.Time, currency string, items []PurchaseItemInput) (*types.Receipt, error)
	ListPurchases(ctx context.Context, userID uuid.UUID, limit int) ([]*types.Receipt, error)
	SearchPurchases(ctx context.Context, userID uuid.UUID, query string, limit int) ([]PurchaseSearchRow, error)
}

type purchaseService struct {
	db              *gorm.DB
	log             *logger.Logger
	storeRepo       repos.StoreRepo
	receiptRepo     repos.ReceiptRepo
	receiptItemRepo repos.ReceiptItemRepo
	resolver        ProductResolver
	intelligence    ItemIntelligenceService
}

func NewPurchaseService(
	db *gorm.DB,
	baseLog *logger.Logger,
	storeRepo repos.StoreRepo,
	receiptRepo repos.ReceiptRepo,
	receiptItemRepo repos.ReceiptItemRepo,
	resolver ProductResolver,
	intelligence ItemIntelligenceService,
) PurchaseService {
	serviceLog := baseLog.With("service", "PurchaseService")
	return &purchaseService{
		db:              db,
		log:             serviceLog,
		storeRepo:       storeRepo,
		receiptRepo:     receiptRepo,
		receiptItemRepo: receiptItemRepo,
		resolver:        resolver,
		intelligence:    intelligence,
	}
}

func (ps *purchaseService) RecordPurchase(ctx context.Context, userID uuid.UUID, storeName string, purchaseDate time.Time, currency string, items []PurchaseItemInput) (*types.Receipt, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("user id: %w", pkgerrors.ErrInvalidArgument)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("no items: %w", pkgerrors.ErrInvalidArgument)
	}
	if currency == "" {
		currency = "EUR"
	}
	if purchaseDate.IsZero() {
		purchaseDate = time.Now()
	}

	// Enrichment happens before the transaction opens: the intelligence call
	// can be slow and must never hold a database transaction hostage.
	names := make([]string, 0, len(items))
	for _, item := range items {
		names = append(names, item.Name)
	}
	intel := ps.intelligence.EnrichItems(ctx, names)

	var receipt *types.Receipt
	err := ps.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		storeID, err := ps.findOrCreateStore(ctx, tx, storeName)
		if err != nil {
			return err
		}

		receipt = &types.Receipt{
			ID:           uuid.New(),
			UserID:       userID,
			StoreID:      storeID,
			PurchaseDate: purchaseDate,
			Currency:     currency,
		}

		receiptItems := make([]*types.ReceiptItem, 0, len(items))
		total := 0.0
		for _, item := range items {
			name := strings.TrimSpace(item.Name)
			if name == "" {
				return fmt.Errorf("item name is blank: %w", pkgerrors.ErrInvalidArgument)
			}

			var hint *ItemIntelligence
			if h, ok := intel[name]; ok {
				hint = &h
			}
			product, _, err := ps.resolver.Resolve(ctx, tx, name, hint)
			if err != nil {
				return fmt.Errorf("resolve %q: %w", name, err)
			}

			quantity := item.Quantity
			if quantity <= 0 {
				quantity = 1
			}
			productID := product.ID
			receiptItems = append(receiptItems, &types.ReceiptItem{
				ID:            uuid.New(),
				ReceiptID:     receipt.ID,
				ProductID:     &productID,
				NameOnReceipt: name,
				Quantity:      quantity,
				Unit:          item.Unit,
				UnitPrice:     item.UnitPrice,
				TotalPrice:    item.TotalPrice,
			})
			total += item.TotalPrice
		}
		receipt.TotalAmount = total

		if _, err := ps.receiptRepo.Create(ctx, tx, []*types.Receipt{receipt}); err != nil {
			return fmt.Errorf("create receipt: %w", err)
		}
		if _, err := ps.receiptItemRepo.Create(ctx, tx, receiptItems); err != nil {
			return fmt.Errorf("create receipt items: %w", err)
		}
		receipt.Items = make([]types.ReceiptItem, 0, len(receiptItems))
		for _, ri := range receiptItems {
			receipt.Items = append(receipt.Items, *ri)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	ps.log.Info("Recorded purchase",
		"user_id", userID,
		"item_count", len(items),
		"total", receipt.TotalAmount,
	)
	return receipt, nil
}

func (ps *purchaseService) findOrCreateStore(ctx context.Context, tx *gorm.DB, storeName string) (*uuid.UUID, error) {
	trimmed := strings.TrimSpace(storeName)
	if trimmed == "" {
		return nil, nil
	}
	normalized := purchases.NormalizeStoreName(trimmed)

	existing, err := ps.storeRepo.GetByNormalizedName(ctx, tx, normalized)
	if err == nil {
		return &existing.ID, nil
	}
	if !errors.Is(err, pkgerrors.ErrNotFound) {
		return nil, fmt.Errorf("lookup store: %w", err)
	}

	store := &types.Store{
		ID:             uuid.New(),
		Name:           trimmed,
		NormalizedName: normalized,
	}
	if _, err := ps.storeRepo.Create(ctx, tx, []*types.Store{store}); err != nil {
		return nil, fmt.Errorf("create store: %w", err)
	}
	return &store.ID, nil
}

func (ps *purchaseService) ListPurchases(ctx context.Context, userID uuid.UUID, limit int) ([]*types.Receipt, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("user id: %w", pkgerrors.ErrInvalidArgument)
	}
	return ps.receiptRepo.ListByUser(ctx, nil, userID, limit)
}

func (ps *purchaseService) SearchPurchases(ctx context.Context, userID uuid.UUID, query string, limit int) ([]PurchaseSearchRow, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("user id: %w", pkgerrors.ErrInvalidArgument)
	}
	if limit <= 0 {
		limit = 20
	}

	items, err := ps.receiptItemRepo.SearchByUser(ctx, nil, userID, query, limit)
	if err != nil {
		return nil, fmt.Errorf("search purchases: %w", err)
	}

	rows := make([]PurchaseSearchRow, 0, len(items))
	for _, item := range items {
		rows = append(rows, PurchaseSearchRow{
			NameOnReceipt: item.NameOnReceipt,
			ProductID:     item.ProductID,
			Quantity:      item.Quantity,
			UnitPrice:     item.UnitPrice,
			TotalPrice:    item.TotalPrice,
		})
	}
	return rows, nil
}
