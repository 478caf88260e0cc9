package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/taller-pos/api/internal/database"
)

// mockSaleStore implements SaleStore with configurable behavior.
type mockSaleStore struct {
	getNextSaleNumberFn func(ctx context.Context, branchID uuid.UUID) (int32, error)
	createSaleFn        func(ctx context.Context, arg database.CreateSaleParams) (database.Sale, error)
	getSaleForUpdateFn  func(ctx context.Context, arg database.GetSaleForUpdateParams) (database.Sale, error)
	getProductForSaleFn func(ctx context.Context, arg database.GetProductForSaleParams) (database.Product, error)
	decrementStockFn    func(ctx context.Context, arg database.DecrementProductStockParams) (int32, error)
	createSaleItemFn    func(ctx context.Context, arg database.CreateSaleItemParams) (database.SaleItem, error)
	completeSaleFn      func(ctx context.Context, arg database.CompleteSaleParams) (database.Sale, error)
}

func (m *mockSaleStore) GetNextSaleNumber(ctx context.Context, branchID uuid.UUID) (int32, error) {
	return m.getNextSaleNumberFn(ctx, branchID)
}
func (m *mockSaleStore) CreateSale(ctx context.Context, arg database.CreateSaleParams) (database.Sale, error) {
	return m.createSaleFn(ctx, arg)
}
func (m *mockSaleStore) GetSaleForUpdate(ctx context.Context, arg database.GetSaleForUpdateParams) (database.Sale, error) {
	return m.getSaleForUpdateFn(ctx, arg)
}
func (m *mockSaleStore) GetProductForSale(ctx context.Context, arg database.GetProductForSaleParams) (database.Product, error) {
	return m.getProductForSaleFn(ctx, arg)
}
func (m *mockSaleStore) DecrementProductStock(ctx context.Context, arg database.DecrementProductStockParams) (int32, error) {
	return m.decrementStockFn(ctx, arg)
}
func (m *mockSaleStore) CreateSaleItem(ctx context.Context, arg database.CreateSaleItemParams) (database.SaleItem, error) {
	return m.createSaleItemFn(ctx, arg)
}
func (m *mockSaleStore) CompleteSale(ctx context.Context, arg database.CompleteSaleParams) (database.Sale, error) {
	return m.completeSaleFn(ctx, arg)
}

// newTestSaleService creates a SaleService with mocked dependencies.
func newTestSaleService(store *mockSaleStore) *SaleService {
	tx := &mockTx{}
	pool := &mockTxBeginner{tx: tx}
	newStore := func(db database.DBTX) SaleStore { return store }
	return NewSaleService(pool, newStore)
}

// defaultSaleStore covers a branch with one pending sale and one product
// with plenty of stock. Individual tests override what they care about.
func defaultSaleStore(branchID, saleID, productID uuid.UUID) *mockSaleStore {
	return &mockSaleStore{
		getNextSaleNumberFn: func(ctx context.Context, bid uuid.UUID) (int32, error) {
			return 1, nil
		},
		createSaleFn: func(ctx context.Context, arg database.CreateSaleParams) (database.Sale, error) {
			return database.Sale{
				ID:         uuid.New(),
				BranchID:   arg.BranchID,
				SaleSeq:    arg.SaleSeq,
				SaleNumber: arg.SaleNumber,
				Status:     database.SaleStatusPENDING,
				CreatedBy:  arg.CreatedBy,
			}, nil
		},
		getSaleForUpdateFn: func(ctx context.Context, arg database.GetSaleForUpdateParams) (database.Sale, error) {
			if arg.ID == saleID && arg.BranchID == branchID {
				return database.Sale{
					ID:         saleID,
					BranchID:   branchID,
					SaleNumber: "POS-00001",
					Status:     database.SaleStatusPENDING,
				}, nil
			}
			return database.Sale{}, pgx.ErrNoRows
		},
		getProductForSaleFn: func(ctx context.Context, arg database.GetProductForSaleParams) (database.Product, error) {
			if arg.ID == productID && arg.BranchID == branchID {
				return database.Product{
					ID:        productID,
					BranchID:  branchID,
					Name:      "USB-C cable",
					SalePrice: makeNumeric("5990.00"),
					Stock:     10,
				}, nil
			}
			return database.Product{}, pgx.ErrNoRows
		},
		decrementStockFn: func(ctx context.Context, arg database.DecrementProductStockParams) (int32, error) {
			return 10 - arg.Quantity, nil
		},
		createSaleItemFn: func(ctx context.Context, arg database.CreateSaleItemParams) (database.SaleItem, error) {
			return database.SaleItem{
				ID:          uuid.New(),
				SaleID:      arg.SaleID,
				ProductID:   arg.ProductID,
				ProductName: arg.ProductName,
				Quantity:    arg.Quantity,
				UnitPrice:   arg.UnitPrice,
				Subtotal:    arg.Subtotal,
			}, nil
		},
		completeSaleFn: func(ctx context.Context, arg database.CompleteSaleParams) (database.Sale, error) {
			return database.Sale{
				ID:             arg.ID,
				BranchID:       branchID,
				SaleNumber:     "POS-00001",
				Status:         database.SaleStatusCOMPLETED,
				PaymentMethod:  arg.PaymentMethod,
				TotalAmount:    arg.TotalAmount,
				AmountReceived: arg.AmountReceived,
				ChangeAmount:   arg.ChangeAmount,
			}, nil
		},
	}
}

func basicSaleReq(branchID, saleID, productID uuid.UUID) CompleteSaleRequest {
	return CompleteSaleRequest{
		BranchID:      branchID,
		SaleID:        saleID,
		PaymentMethod: "CARD",
		Items: []SaleItemRequest{
			{ProductID: productID.String(), Quantity: 2},
		},
	}
}

// =====================
// CreateSale tests
// =====================

func TestCreateSale_NumberFormat(t *testing.T) {
	branchID := uuid.New()
	store := defaultSaleStore(branchID, uuid.New(), uuid.New())
	store.getNextSaleNumberFn = func(ctx context.Context, bid uuid.UUID) (int32, error) {
		return 7, nil
	}

	var captured database.CreateSaleParams
	base := store.createSaleFn
	store.createSaleFn = func(ctx context.Context, arg database.CreateSaleParams) (database.Sale, error) {
		captured = arg
		return base(ctx, arg)
	}

	svc := newTestSaleService(store)
	sale, err := svc.CreateSale(context.Background(), branchID, uuid.New())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if captured.SaleNumber != "POS-00007" {
		t.Errorf("sale number: got %v, want POS-00007", captured.SaleNumber)
	}
	if sale.Status != database.SaleStatusPENDING {
		t.Errorf("status: got %v, want PENDING", sale.Status)
	}
}

func TestCreateSale_RetryOnUniqueViolation(t *testing.T) {
	branchID := uuid.New()
	store := defaultSaleStore(branchID, uuid.New(), uuid.New())

	callCount := 0
	base := store.createSaleFn
	store.createSaleFn = func(ctx context.Context, arg database.CreateSaleParams) (database.Sale, error) {
		callCount++
		if callCount == 1 {
			return database.Sale{}, &pgconn.PgError{
				Code:           "23505",
				ConstraintName: "sales_branch_id_sale_number_key",
			}
		}
		return base(ctx, arg)
	}

	svc := newTestSaleService(store)
	if _, err := svc.CreateSale(context.Background(), branchID, uuid.New()); err != nil {
		t.Fatalf("unexpected error after retry: %v", err)
	}
	if callCount != 2 {
		t.Errorf("expected 2 CreateSale calls, got %d", callCount)
	}
}

// =====================
// CompleteSale validation tests
// =====================

func TestCompleteSale_EmptyItems(t *testing.T) {
	branchID := uuid.New()
	saleID := uuid.New()
	store := defaultSaleStore(branchID, saleID, uuid.New())
	svc := newTestSaleService(store)

	req := basicSaleReq(branchID, saleID, uuid.New())
	req.Items = nil
	_, err := svc.CompleteSale(context.Background(), req)
	if !errors.Is(err, ErrEmptySaleItems) {
		t.Fatalf("expected ErrEmptySaleItems, got: %v", err)
	}
}

func TestCompleteSale_InvalidPaymentMethod(t *testing.T) {
	branchID := uuid.New()
	saleID := uuid.New()
	productID := uuid.New()
	store := defaultSaleStore(branchID, saleID, productID)
	svc := newTestSaleService(store)

	req := basicSaleReq(branchID, saleID, productID)
	req.PaymentMethod = "BARTER"
	_, err := svc.CompleteSale(context.Background(), req)
	if !errors.Is(err, ErrInvalidPaymentMethod) {
		t.Fatalf("expected ErrInvalidPaymentMethod, got: %v", err)
	}
}

func TestCompleteSale_SaleNotFound(t *testing.T) {
	branchID := uuid.New()
	productID := uuid.New()
	store := defaultSaleStore(branchID, uuid.New(), productID)
	svc := newTestSaleService(store)

	_, err := svc.CompleteSale(context.Background(), basicSaleReq(branchID, uuid.New(), productID))
	if !errors.Is(err, ErrSaleNotFound) {
		t.Fatalf("expected ErrSaleNotFound, got: %v", err)
	}
}

func TestCompleteSale_SaleNotPending(t *testing.T) {
	branchID := uuid.New()
	saleID := uuid.New()
	productID := uuid.New()
	store := defaultSaleStore(branchID, saleID, productID)
	store.getSaleForUpdateFn = func(ctx context.Context, arg database.GetSaleForUpdateParams) (database.Sale, error) {
		return database.Sale{ID: saleID, BranchID: branchID, Status: database.SaleStatusCOMPLETED}, nil
	}
	svc := newTestSaleService(store)

	_, err := svc.CompleteSale(context.Background(), basicSaleReq(branchID, saleID, productID))
	if !errors.Is(err, ErrSaleNotPending) {
		t.Fatalf("expected ErrSaleNotPending, got: %v", err)
	}
}

func TestCompleteSale_ZeroQuantity(t *testing.T) {
	branchID := uuid.New()
	saleID := uuid.New()
	productID := uuid.New()
	store := defaultSaleStore(branchID, saleID, productID)
	svc := newTestSaleService(store)

	req := basicSaleReq(branchID, saleID, productID)
	req.Items[0].Quantity = 0
	_, err := svc.CompleteSale(context.Background(), req)
	if !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("expected ErrInvalidQuantity, got: %v", err)
	}
}

func TestCompleteSale_ProductNotFound(t *testing.T) {
	branchID := uuid.New()
	saleID := uuid.New()
	store := defaultSaleStore(branchID, saleID, uuid.New())
	svc := newTestSaleService(store)

	_, err := svc.CompleteSale(context.Background(), basicSaleReq(branchID, saleID, uuid.New()))
	if !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got: %v", err)
	}
}

// =====================
// Stock guard tests
// =====================

func TestCompleteSale_InsufficientStock(t *testing.T) {
	branchID := uuid.New()
	saleID := uuid.New()
	productID := uuid.New()
	store := defaultSaleStore(branchID, saleID, productID)

	itemsWritten := 0
	base := store.createSaleItemFn
	store.createSaleItemFn = func(ctx context.Context, arg database.CreateSaleItemParams) (database.SaleItem, error) {
		itemsWritten++
		return base(ctx, arg)
	}

	svc := newTestSaleService(store)
	req := basicSaleReq(branchID, saleID, productID)
	req.Items[0].Quantity = 11 // stock is 10
	_, err := svc.CompleteSale(context.Background(), req)
	if !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock, got: %v", err)
	}
	if !strings.Contains(err.Error(), "USB-C cable") {
		t.Errorf("expected product name in error, got: %v", err)
	}
	if itemsWritten != 0 {
		t.Errorf("no line items should be written on stock failure, got %d", itemsWritten)
	}
}

func TestCompleteSale_StockRaceDetectedOnDecrement(t *testing.T) {
	branchID := uuid.New()
	saleID := uuid.New()
	productID := uuid.New()
	store := defaultSaleStore(branchID, saleID, productID)
	// Stock check passes, but the conditional UPDATE finds no row: someone
	// else bought the last units between the read and the write.
	store.decrementStockFn = func(ctx context.Context, arg database.DecrementProductStockParams) (int32, error) {
		return 0, pgx.ErrNoRows
	}

	svc := newTestSaleService(store)
	_, err := svc.CompleteSale(context.Background(), basicSaleReq(branchID, saleID, productID))
	if !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock, got: %v", err)
	}
}

// =====================
// Payment tests
// =====================

func TestCompleteSale_CardSettlesExactly(t *testing.T) {
	branchID := uuid.New()
	saleID := uuid.New()
	productID := uuid.New()
	store := defaultSaleStore(branchID, saleID, productID)

	var captured database.CompleteSaleParams
	base := store.completeSaleFn
	store.completeSaleFn = func(ctx context.Context, arg database.CompleteSaleParams) (database.Sale, error) {
		captured = arg
		return base(ctx, arg)
	}

	svc := newTestSaleService(store)
	result, err := svc.CompleteSale(context.Background(), basicSaleReq(branchID, saleID, productID))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// total = 5990 * 2 = 11980, non-cash settles exactly
	if !numericEquals(captured.TotalAmount, "11980.00") {
		t.Errorf("total: got %v, want 11980.00", numericToDecimal(captured.TotalAmount))
	}
	if !numericEquals(captured.AmountReceived, "11980.00") {
		t.Errorf("amount_received: got %v, want 11980.00", numericToDecimal(captured.AmountReceived))
	}
	if !numericEquals(captured.ChangeAmount, "0.00") {
		t.Errorf("change: got %v, want 0.00", numericToDecimal(captured.ChangeAmount))
	}
	if result.Sale.Status != database.SaleStatusCOMPLETED {
		t.Errorf("status: got %v, want COMPLETED", result.Sale.Status)
	}
	if len(result.Items) != 1 {
		t.Errorf("expected 1 line item, got %d", len(result.Items))
	}
}

func TestCompleteSale_CashRequiresAmount(t *testing.T) {
	branchID := uuid.New()
	saleID := uuid.New()
	productID := uuid.New()
	store := defaultSaleStore(branchID, saleID, productID)
	svc := newTestSaleService(store)

	req := basicSaleReq(branchID, saleID, productID)
	req.PaymentMethod = "CASH"
	_, err := svc.CompleteSale(context.Background(), req)
	if !errors.Is(err, ErrCashAmountRequired) {
		t.Fatalf("expected ErrCashAmountRequired, got: %v", err)
	}
}

func TestCompleteSale_CashTooLow(t *testing.T) {
	branchID := uuid.New()
	saleID := uuid.New()
	productID := uuid.New()
	store := defaultSaleStore(branchID, saleID, productID)
	svc := newTestSaleService(store)

	req := basicSaleReq(branchID, saleID, productID)
	req.PaymentMethod = "CASH"
	req.AmountReceived = "10000" // total is 11980
	_, err := svc.CompleteSale(context.Background(), req)
	if !errors.Is(err, ErrAmountReceivedTooLow) {
		t.Fatalf("expected ErrAmountReceivedTooLow, got: %v", err)
	}
}

func TestCompleteSale_CashChange(t *testing.T) {
	branchID := uuid.New()
	saleID := uuid.New()
	productID := uuid.New()
	store := defaultSaleStore(branchID, saleID, productID)

	var captured database.CompleteSaleParams
	base := store.completeSaleFn
	store.completeSaleFn = func(ctx context.Context, arg database.CompleteSaleParams) (database.Sale, error) {
		captured = arg
		return base(ctx, arg)
	}

	svc := newTestSaleService(store)
	req := basicSaleReq(branchID, saleID, productID)
	req.PaymentMethod = "CASH"
	req.AmountReceived = "15000"
	if _, err := svc.CompleteSale(context.Background(), req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// change = 15000 - 11980 = 3020
	if !numericEquals(captured.ChangeAmount, "3020.00") {
		t.Errorf("change: got %v, want 3020.00", numericToDecimal(captured.ChangeAmount))
	}
}

func TestCompleteSale_LineItemSnapshot(t *testing.T) {
	branchID := uuid.New()
	saleID := uuid.New()
	productID := uuid.New()
	store := defaultSaleStore(branchID, saleID, productID)

	var captured database.CreateSaleItemParams
	base := store.createSaleItemFn
	store.createSaleItemFn = func(ctx context.Context, arg database.CreateSaleItemParams) (database.SaleItem, error) {
		captured = arg
		return base(ctx, arg)
	}

	svc := newTestSaleService(store)
	if _, err := svc.CompleteSale(context.Background(), basicSaleReq(branchID, saleID, productID)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if captured.ProductName != "USB-C cable" {
		t.Errorf("product name snapshot: got %v, want USB-C cable", captured.ProductName)
	}
	if !numericEquals(captured.UnitPrice, "5990.00") {
		t.Errorf("unit price: got %v, want 5990.00", numericToDecimal(captured.UnitPrice))
	}
	if !numericEquals(captured.Subtotal, "11980.00") {
		t.Errorf("subtotal: got %v, want 11980.00", numericToDecimal(captured.Subtotal))
	}
}

// =====================
// Tax breakdown tests
// =====================

func TestTaxBreakdown(t *testing.T) {
	tests := []struct {
		gross string
		net   string
		tax   string
	}{
		{"11900.00", "10000.00", "1900.00"},
		{"0.00", "0.00", "0.00"},
		{"11980.00", "10067.23", "1912.77"},
	}
	for _, tc := range tests {
		gross, _ := decimal.NewFromString(tc.gross)
		net, tax := TaxBreakdown(gross)
		if net.StringFixed(2) != tc.net {
			t.Errorf("gross %s: net got %s, want %s", tc.gross, net.StringFixed(2), tc.net)
		}
		if tax.StringFixed(2) != tc.tax {
			t.Errorf("gross %s: tax got %s, want %s", tc.gross, tax.StringFixed(2), tc.tax)
		}
		if !net.Add(tax).Equal(gross) {
			t.Errorf("gross %s: net + tax = %s, want %s", tc.gross, net.Add(tax), gross)
		}
	}
}
