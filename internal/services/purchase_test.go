package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/luxtick-backend/internal/data/repos"
	pkgerrors "github.com/yungbote/luxtick-backend/internal/pkg/errors"
)

func newPurchaseStack(t *testing.T) (*gorm.DB, PurchaseService) {
	t.Helper()
	gdb := newTestDB(t)
	log := newTestLogger()
	productRepo := repos.NewProductRepo(gdb, log)
	categoryRepo := repos.NewCategoryRepo(gdb, log)
	storeRepo := repos.NewStoreRepo(gdb, log)
	receiptRepo := repos.NewReceiptRepo(gdb, log)
	receiptItemRepo := repos.NewReceiptItemRepo(gdb, log)
	taxonomy := NewTaxonomyService(gdb, log, categoryRepo, nil)
	resolver := NewProductResolver(gdb, log, productRepo, taxonomy)
	intelligence := NewItemIntelligenceService(log, nil, taxonomy, false)
	return gdb, NewPurchaseService(gdb, log, storeRepo, receiptRepo, receiptItemRepo, resolver, intelligence)
}

func TestRecordPurchaseCreatesReceiptAndProducts(t *testing.T) {
	ctx := context.Background()
	gdb, purchase := newPurchaseStack(t)
	userID := uuid.New()

	receipt, err := purchase.RecordPurchase(ctx, userID, "Mercadona", time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), "EUR", []PurchaseItemInput{
		{Name: "pechuga de pollo", Quantity: 2, Unit: "kg", UnitPrice: 5.5, TotalPrice: 11},
		{Name: "milk", Quantity: 1, UnitPrice: 1.2, TotalPrice: 1.2},
	})
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if len(receipt.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(receipt.Items))
	}
	if receipt.TotalAmount != 12.2 {
		t.Fatalf("total = %v", receipt.TotalAmount)
	}
	if receipt.StoreID == nil {
		t.Fatalf("store was not created")
	}
	for _, item := range receipt.Items {
		if item.ProductID == nil {
			t.Fatalf("item %q not linked to a product", item.NameOnReceipt)
		}
	}

	var productCount int64
	if err := gdb.Table("products").Count(&productCount).Error; err != nil {
		t.Fatalf("count products: %v", err)
	}
	if productCount != 2 {
		t.Fatalf("expected 2 products, got %d", productCount)
	}
}

func TestRecordPurchaseReusesProductsAndStore(t *testing.T) {
	ctx := context.Background()
	gdb, purchase := newPurchaseStack(t)
	userID := uuid.New()

	first, err := purchase.RecordPurchase(ctx, userID, "Mercadona", time.Time{}, "", []PurchaseItemInput{
		{Name: "pechuga de pollo", TotalPrice: 5},
	})
	if err != nil {
		t.Fatalf("first purchase: %v", err)
	}
	second, err := purchase.RecordPurchase(ctx, userID, "MERCADONA", time.Time{}, "", []PurchaseItemInput{
		{Name: "pechuga de pollo", TotalPrice: 6},
	})
	if err != nil {
		t.Fatalf("second purchase: %v", err)
	}

	if *first.Items[0].ProductID != *second.Items[0].ProductID {
		t.Fatalf("same item name resolved to different products")
	}
	if *first.StoreID != *second.StoreID {
		t.Fatalf("store name casing created a duplicate store")
	}

	var storeCount int64
	if err := gdb.Table("stores").Count(&storeCount).Error; err != nil {
		t.Fatalf("count stores: %v", err)
	}
	if storeCount != 1 {
		t.Fatalf("expected 1 store, got %d", storeCount)
	}
}

func TestRecordPurchaseValidation(t *testing.T) {
	ctx := context.Background()
	_, purchase := newPurchaseStack(t)

	if _, err := purchase.RecordPurchase(ctx, uuid.Nil, "", time.Time{}, "", []PurchaseItemInput{{Name: "milk"}}); !errors.Is(err, pkgerrors.ErrInvalidArgument) {
		t.Fatalf("nil user id must be rejected, got %v", err)
	}
	if _, err := purchase.RecordPurchase(ctx, uuid.New(), "", time.Time{}, "", nil); !errors.Is(err, pkgerrors.ErrInvalidArgument) {
		t.Fatalf("empty item list must be rejected, got %v", err)
	}
}

func TestRecordPurchaseBlankItemRollsBack(t *testing.T) {
	ctx := context.Background()
	gdb, purchase := newPurchaseStack(t)

	_, err := purchase.RecordPurchase(ctx, uuid.New(), "Lidl", time.Time{}, "", []PurchaseItemInput{
		{Name: "milk", TotalPrice: 1},
		{Name: "   "},
	})
	if !errors.Is(err, pkgerrors.ErrInvalidArgument) {
		t.Fatalf("blank item name must fail the purchase, got %v", err)
	}

	for _, table := range []string{"receipts", "receipt_items", "products", "stores"} {
		var count int64
		if err := gdb.Table(table).Count(&count).Error; err != nil {
			t.Fatalf("count %s: %v", table, err)
		}
		if count != 0 {
			t.Fatalf("failed purchase must leave no %s rows, got %d", table, count)
		}
	}
}

func TestListPurchases(t *testing.T) {
	ctx := context.Background()
	_, purchase := newPurchaseStack(t)
	userID := uuid.New()

	older := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	newer := time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC)
	if _, err := purchase.RecordPurchase(ctx, userID, "Lidl", older, "", []PurchaseItemInput{{Name: "milk", TotalPrice: 1}}); err != nil {
		t.Fatalf("record older: %v", err)
	}
	if _, err := purchase.RecordPurchase(ctx, userID, "Lidl", newer, "", []PurchaseItemInput{{Name: "bread", TotalPrice: 2}}); err != nil {
		t.Fatalf("record newer: %v", err)
	}

	receipts, err := purchase.ListPurchases(ctx, userID, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(receipts) != 2 {
		t.Fatalf("expected 2 receipts, got %d", len(receipts))
	}
	if !receipts[0].PurchaseDate.After(receipts[1].PurchaseDate) {
		t.Fatalf("receipts not ordered newest first")
	}
	if len(receipts[0].Items) != 1 {
		t.Fatalf("items not preloaded")
	}

	limited, err := purchase.ListPurchases(ctx, userID, 1)
	if err != nil {
		t.Fatalf("list limited: %v", err)
	}
	if len(limited) != 1 {
		t.Fatalf("limit ignored, got %d receipts", len(limited))
	}
}

func TestSearchPurchases(t *testing.T) {
	ctx := context.Background()
	_, purchase := newPurchaseStack(t)
	userID := uuid.New()

	if _, err := purchase.RecordPurchase(ctx, userID, "Lidl", time.Time{}, "", []PurchaseItemInput{
		{Name: "pechuga de pollo", TotalPrice: 5},
		{Name: "milk", TotalPrice: 1},
	}); err != nil {
		t.Fatalf("record: %v", err)
	}

	rows, err := purchase.SearchPurchases(ctx, userID, "pollo", 10)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(rows) != 1 || rows[0].NameOnReceipt != "pechuga de pollo" {
		t.Fatalf("unexpected search result: %+v", rows)
	}

	// Other users never see these purchases.
	rows, err = purchase.SearchPurchases(ctx, uuid.New(), "pollo", 10)
	if err != nil {
		t.Fatalf("search other user: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("purchases leaked across users: %+v", rows)
	}
}
