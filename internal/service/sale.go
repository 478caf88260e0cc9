package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/taller-pos/api/internal/database"
	"github.com/taller-pos/api/internal/enum"
)

const maxSaleNumberRetries = 3

// Errors returned by the sale service.
var (
	ErrEmptySaleItems        = errors.New("items are required")
	ErrInvalidProductID      = errors.New("invalid product_id")
	ErrProductNotFound       = errors.New("product not found in branch")
	ErrInvalidQuantity       = errors.New("quantity must be > 0")
	ErrInvalidPaymentMethod  = errors.New("invalid payment_method")
	ErrSaleNotFound          = errors.New("sale not found in branch")
	ErrSaleNotPending        = errors.New("sale is not pending")
	ErrCashAmountRequired    = errors.New("amount_received is required for CASH payments")
	ErrInvalidAmountReceived = errors.New("invalid amount_received")
	ErrAmountReceivedTooLow  = errors.New("amount_received is less than the total")
	ErrInsufficientStock     = errors.New("insufficient stock")
)

// ivaRate is the Chilean IVA factor applied to gross amounts.
var ivaRate = decimal.NewFromFloat(1.19)

// SaleStore defines the DB methods needed for the POS sale flow.
// Satisfied by *database.Queries (and its WithTx variant).
type SaleStore interface {
	GetNextSaleNumber(ctx context.Context, branchID uuid.UUID) (int32, error)
	CreateSale(ctx context.Context, arg database.CreateSaleParams) (database.Sale, error)
	GetSaleForUpdate(ctx context.Context, arg database.GetSaleForUpdateParams) (database.Sale, error)
	GetProductForSale(ctx context.Context, arg database.GetProductForSaleParams) (database.Product, error)
	DecrementProductStock(ctx context.Context, arg database.DecrementProductStockParams) (int32, error)
	CreateSaleItem(ctx context.Context, arg database.CreateSaleItemParams) (database.SaleItem, error)
	CompleteSale(ctx context.Context, arg database.CompleteSaleParams) (database.Sale, error)
}

// NewSaleStore creates a SaleStore from a DBTX (pool or tx).
type NewSaleStore func(db database.DBTX) SaleStore

// SaleItemRequest is one cart line at checkout.
type SaleItemRequest struct {
	ProductID string
	Quantity  int32
}

// CompleteSaleRequest is the validated input for completing a pending sale.
type CompleteSaleRequest struct {
	BranchID       uuid.UUID
	SaleID         uuid.UUID
	PaymentMethod  string
	AmountReceived string
	Items          []SaleItemRequest
}

// CompleteSaleResult is the completed sale with its line items.
type CompleteSaleResult struct {
	Sale  database.Sale
	Items []database.SaleItem
}

// SaleService handles POS sale business logic.
type SaleService struct {
	pool     TxBeginner
	newStore NewSaleStore
}

// NewSaleService creates a new SaleService.
func NewSaleService(pool TxBeginner, newStore NewSaleStore) *SaleService {
	return &SaleService{pool: pool, newStore: newStore}
}

// CreateSale opens a new PENDING sale shell for a branch. Retries on
// sale_number unique constraint violations, same race as order numbers.
func (s *SaleService) CreateSale(ctx context.Context, branchID, createdBy uuid.UUID) (*database.Sale, error) {
	var lastErr error
	for attempt := 0; attempt < maxSaleNumberRetries; attempt++ {
		sale, err := s.createSaleTx(ctx, branchID, createdBy)
		if err == nil {
			return sale, nil
		}
		if isSaleNumberConflict(err) {
			lastErr = err
			continue
		}
		return nil, err
	}
	return nil, lastErr
}

func (s *SaleService) createSaleTx(ctx context.Context, branchID, createdBy uuid.UUID) (*database.Sale, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	store := s.newStore(tx)

	nextNum, err := store.GetNextSaleNumber(ctx, branchID)
	if err != nil {
		return nil, fmt.Errorf("get next sale number: %w", err)
	}

	sale, err := store.CreateSale(ctx, database.CreateSaleParams{
		BranchID:   branchID,
		SaleSeq:    nextNum,
		SaleNumber: fmt.Sprintf("POS-%05d", nextNum),
		CreatedBy:  createdBy,
	})
	if err != nil {
		return nil, fmt.Errorf("create sale: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}
	return &sale, nil
}

func isSaleNumberConflict(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" && pgErr.ConstraintName == "sales_branch_id_sale_number_key"
	}
	return false
}

// preparedSaleItem is a cart line priced and ready to insert.
type preparedSaleItem struct {
	params   database.CreateSaleItemParams
	quantity int32
}

// CompleteSale prices the cart, takes payment, decrements stock, and marks
// the sale COMPLETED, all in one transaction. Every product is locked and its
// stock checked before any line item is written, so a short cart leaves the
// sale PENDING and stock untouched.
func (s *SaleService) CompleteSale(ctx context.Context, req CompleteSaleRequest) (*CompleteSaleResult, error) {
	if len(req.Items) == 0 {
		return nil, ErrEmptySaleItems
	}
	if !isValidPaymentMethod(req.PaymentMethod) {
		return nil, ErrInvalidPaymentMethod
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	store := s.newStore(tx)

	sale, err := store.GetSaleForUpdate(ctx, database.GetSaleForUpdateParams{
		ID:       req.SaleID,
		BranchID: req.BranchID,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSaleNotFound
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	if sale.Status != database.SaleStatusPENDING {
		return nil, ErrSaleNotPending
	}

	// First pass: lock products, verify stock, price the cart.
	total := decimal.Zero
	var prepared []preparedSaleItem
	for i, item := range req.Items {
		if item.Quantity <= 0 {
			return nil, fmt.Errorf("items[%d]: %w", i, ErrInvalidQuantity)
		}
		productID, err := uuid.Parse(item.ProductID)
		if err != nil {
			return nil, fmt.Errorf("items[%d]: %w", i, ErrInvalidProductID)
		}
		product, err := store.GetProductForSale(ctx, database.GetProductForSaleParams{
			ID:       productID,
			BranchID: req.BranchID,
		})
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, fmt.Errorf("items[%d]: %w", i, ErrProductNotFound)
			}
			return nil, fmt.Errorf("items[%d]: get product: %w", i, err)
		}
		if product.Stock < item.Quantity {
			return nil, fmt.Errorf("%w for %s", ErrInsufficientStock, product.Name)
		}

		unitPrice := numericToDecimal(product.SalePrice)
		subtotal := unitPrice.Mul(decimal.NewFromInt32(item.Quantity))
		total = total.Add(subtotal)

		prepared = append(prepared, preparedSaleItem{
			params: database.CreateSaleItemParams{
				SaleID:      sale.ID,
				ProductID:   productID,
				ProductName: product.Name,
				Quantity:    item.Quantity,
				UnitPrice:   decimalToNumeric(unitPrice),
				Subtotal:    decimalToNumeric(subtotal),
			},
			quantity: item.Quantity,
		})
	}

	// Cash needs tendered amount and change, other methods settle exactly.
	amountReceived := total
	change := decimal.Zero
	if req.PaymentMethod == enum.PaymentMethodCash {
		if req.AmountReceived == "" {
			return nil, ErrCashAmountRequired
		}
		amountReceived, err = decimal.NewFromString(req.AmountReceived)
		if err != nil || amountReceived.IsNegative() {
			return nil, ErrInvalidAmountReceived
		}
		if amountReceived.LessThan(total) {
			return nil, ErrAmountReceivedTooLow
		}
		change = amountReceived.Sub(total)
	}

	completed, err := store.CompleteSale(ctx, database.CompleteSaleParams{
		ID:             sale.ID,
		PaymentMethod:  database.NullPaymentMethod{PaymentMethod: database.PaymentMethod(req.PaymentMethod), Valid: true},
		TotalAmount:    decimalToNumeric(total),
		AmountReceived: decimalToNumeric(amountReceived),
		ChangeAmount:   decimalToNumeric(change),
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSaleNotPending
		}
		return nil, fmt.Errorf("complete sale: %w", err)
	}

	// Second pass: decrement stock and write line items. The conditional
	// UPDATE returns no row when stock ran out between the check and here.
	var items []database.SaleItem
	for _, p := range prepared {
		if _, err := store.DecrementProductStock(ctx, database.DecrementProductStockParams{
			Quantity: p.quantity,
			ID:       p.params.ProductID,
		}); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, fmt.Errorf("%w for %s", ErrInsufficientStock, p.params.ProductName)
			}
			return nil, fmt.Errorf("decrement stock: %w", err)
		}
		item, err := store.CreateSaleItem(ctx, p.params)
		if err != nil {
			return nil, fmt.Errorf("create sale item: %w", err)
		}
		items = append(items, item)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}
	return &CompleteSaleResult{Sale: completed, Items: items}, nil
}

// TaxBreakdown splits a gross amount into its net and IVA parts.
// Prices are IVA-inclusive, so net = gross / 1.19.
func TaxBreakdown(gross decimal.Decimal) (net, tax decimal.Decimal) {
	net = gross.Div(ivaRate).Round(2)
	tax = gross.Sub(net)
	return net, tax
}

func isValidPaymentMethod(s string) bool {
	switch s {
	case enum.PaymentMethodCash, enum.PaymentMethodCard, enum.PaymentMethodTransfer:
		return true
	}
	return false
}
