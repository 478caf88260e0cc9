package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
	"github.com/taller-pos/api/internal/database"
	"github.com/taller-pos/api/internal/enum"
)

const (
	maxOrderNumberRetries = 3
	maxServiceNameLength  = 200
)

// Errors returned by the order service.
var (
	ErrInvalidCustomerID     = errors.New("invalid customer_id")
	ErrCustomerNotFound      = errors.New("customer not found in branch")
	ErrEmptyDeviceBrand      = errors.New("device_brand is required")
	ErrEmptyDeviceModel      = errors.New("device_model is required")
	ErrInvalidPriority       = errors.New("invalid priority")
	ErrInvalidCost           = errors.New("cost must be a non-negative number")
	ErrEmptyServiceName      = errors.New("service name is required")
	ErrServiceNameTooLong    = errors.New("service name too long")
	ErrInvalidServicePrice   = errors.New("service price must be > 0")
	ErrInvalidDeviceIndex    = errors.New("device_index out of range")
	ErrChecklistIncomplete   = errors.New("checklist item not answered")
	ErrInvalidCommitmentDate = errors.New("invalid commitment_date")
	ErrInvalidWarrantyDays   = errors.New("warranty_days must be >= 0")
	ErrOrderNotFound         = errors.New("order not found in branch")
)

// TxBeginner starts a new database transaction.
type TxBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// OrderStore defines the DB methods needed to create and edit work orders.
// Satisfied by *database.Queries (and its WithTx variant).
type OrderStore interface {
	GetNextOrderNumber(ctx context.Context, branchID uuid.UUID) (int32, error)
	GetCustomer(ctx context.Context, arg database.GetCustomerParams) (database.Customer, error)
	ListChecklistItemsByBranch(ctx context.Context, branchID uuid.UUID) ([]database.ChecklistItem, error)
	CreateOrder(ctx context.Context, arg database.CreateOrderParams) (database.Order, error)
	CreateOrderService(ctx context.Context, arg database.CreateOrderServiceParams) (database.OrderService, error)
	GetOrder(ctx context.Context, arg database.GetOrderParams) (database.Order, error)
	UpdateOrder(ctx context.Context, arg database.UpdateOrderParams) (database.Order, error)
	DeleteOrderServicesByOrder(ctx context.Context, orderID uuid.UUID) error
}

// NewOrderStore creates an OrderStore from a DBTX (pool or tx).
// This allows the service to create store instances from transactions.
type NewOrderStore func(db database.DBTX) OrderStore

// DeviceRequest describes one additional device on an intake form.
type DeviceRequest struct {
	Brand  string
	Model  string
	Serial string
}

// ServiceLineRequest is a single service line on the order.
// DeviceIndex 0 is the primary device, 1..n the additional ones.
type ServiceLineRequest struct {
	DeviceIndex int32
	Name        string
	Price       string
}

// CreateOrderRequest is the validated input for creating a work order.
type CreateOrderRequest struct {
	BranchID          uuid.UUID
	CreatedBy         uuid.UUID
	CustomerID        string
	DeviceBrand       string
	DeviceModel       string
	DeviceSerial      string
	AdditionalDevices []DeviceRequest
	Checklist         map[string]string
	Priority          string
	ReplacementCost   string
	LaborCost         string
	ReceiptNumber     string
	CommitmentDate    string // RFC3339
	WarrantyDays      int32
	Services          []ServiceLineRequest
}

// UpdateOrderRequest carries the same intake fields for an existing order.
// The order number and status are never touched by an edit.
type UpdateOrderRequest struct {
	ID uuid.UUID
	CreateOrderRequest
}

// OrderResult is the full order with its service lines.
type OrderResult struct {
	Order    database.Order
	Services []database.OrderService
}

// OrderService handles work order business logic.
type OrderService struct {
	pool     TxBeginner
	newStore NewOrderStore
}

// NewOrderService creates a new OrderService.
func NewOrderService(pool TxBeginner, newStore NewOrderStore) *OrderService {
	return &OrderService{pool: pool, newStore: newStore}
}

// deviceJSON is the stored shape of a device inside additional_devices.
type deviceJSON struct {
	Brand  string `json:"brand"`
	Model  string `json:"model"`
	Serial string `json:"serial,omitempty"`
}

// orderInput holds the parsed columns shared by create and update.
type orderInput struct {
	customerID        uuid.UUID
	deviceSerial      pgtype.Text
	additionalDevices []byte
	checklist         []byte
	priority          database.OrderPriority
	replacementCost   pgtype.Numeric
	laborCost         pgtype.Numeric
	totalCost         pgtype.Numeric
	receiptNumber     pgtype.Text
	commitmentDate    pgtype.Timestamptz
	services          []database.CreateOrderServiceParams // OrderID filled later
}

// CreateOrder validates, numbers, and creates a work order atomically.
// Retries up to maxOrderNumberRetries times on order_number unique constraint
// violations (race condition where concurrent transactions get the same MAX).
func (s *OrderService) CreateOrder(ctx context.Context, req CreateOrderRequest) (*OrderResult, error) {
	in, err := parseOrderInput(req)
	if err != nil {
		return nil, err
	}

	var lastErr error
	for attempt := 0; attempt < maxOrderNumberRetries; attempt++ {
		result, err := s.createOrderTx(ctx, req, in)
		if err == nil {
			return result, nil
		}
		if isOrderNumberConflict(err) {
			lastErr = err
			continue
		}
		return nil, err
	}
	return nil, lastErr
}

// UpdateOrder replaces the intake fields and service lines of an existing
// order in a single transaction. Service lines are deleted and re-inserted.
func (s *OrderService) UpdateOrder(ctx context.Context, req UpdateOrderRequest) (*OrderResult, error) {
	in, err := parseOrderInput(req.CreateOrderRequest)
	if err != nil {
		return nil, err
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	store := s.newStore(tx)

	if _, err := store.GetOrder(ctx, database.GetOrderParams{ID: req.ID, BranchID: req.BranchID}); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("get order: %w", err)
	}

	if err := s.checkReferences(ctx, store, req.CreateOrderRequest, in); err != nil {
		return nil, err
	}

	order, err := store.UpdateOrder(ctx, database.UpdateOrderParams{
		CustomerID:        in.customerID,
		DeviceBrand:       req.DeviceBrand,
		DeviceModel:       req.DeviceModel,
		DeviceSerial:      in.deviceSerial,
		AdditionalDevices: in.additionalDevices,
		Checklist:         in.checklist,
		Priority:          in.priority,
		ReplacementCost:   in.replacementCost,
		LaborCost:         in.laborCost,
		TotalCost:         in.totalCost,
		ReceiptNumber:     in.receiptNumber,
		CommitmentDate:    in.commitmentDate,
		WarrantyDays:      req.WarrantyDays,
		ID:                req.ID,
		BranchID:          req.BranchID,
	})
	if err != nil {
		return nil, fmt.Errorf("update order: %w", err)
	}

	if err := store.DeleteOrderServicesByOrder(ctx, order.ID); err != nil {
		return nil, fmt.Errorf("delete order services: %w", err)
	}
	services, err := insertServices(ctx, store, order.ID, in.services)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}
	return &OrderResult{Order: order, Services: services}, nil
}

// isOrderNumberConflict checks if the error is a unique constraint violation
// on the order number (pgconn error code 23505).
func isOrderNumberConflict(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" && pgErr.ConstraintName == "orders_branch_id_order_number_key"
	}
	return false
}

// createOrderTx executes the full order creation in a single transaction.
func (s *OrderService) createOrderTx(ctx context.Context, req CreateOrderRequest, in orderInput) (*OrderResult, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	store := s.newStore(tx)

	if err := s.checkReferences(ctx, store, req, in); err != nil {
		return nil, err
	}

	// Order numbers restart per branch per year.
	nextNum, err := store.GetNextOrderNumber(ctx, req.BranchID)
	if err != nil {
		return nil, fmt.Errorf("get next order number: %w", err)
	}
	orderNumber := fmt.Sprintf("ORD-%d-%04d", time.Now().Year(), nextNum)

	order, err := store.CreateOrder(ctx, database.CreateOrderParams{
		BranchID:          req.BranchID,
		OrderSeq:          nextNum,
		OrderNumber:       orderNumber,
		CustomerID:        in.customerID,
		DeviceBrand:       req.DeviceBrand,
		DeviceModel:       req.DeviceModel,
		DeviceSerial:      in.deviceSerial,
		AdditionalDevices: in.additionalDevices,
		Checklist:         in.checklist,
		Priority:          in.priority,
		Status:            database.OrderStatusINPROGRESS,
		ReplacementCost:   in.replacementCost,
		LaborCost:         in.laborCost,
		TotalCost:         in.totalCost,
		ReceiptNumber:     in.receiptNumber,
		CommitmentDate:    in.commitmentDate,
		WarrantyDays:      req.WarrantyDays,
		CreatedBy:         req.CreatedBy,
	})
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	services, err := insertServices(ctx, store, order.ID, in.services)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}
	return &OrderResult{Order: order, Services: services}, nil
}

// checkReferences validates the parts of the request that need the database:
// the customer must exist in the branch, and every checklist item configured
// for the branch must have an answer.
func (s *OrderService) checkReferences(ctx context.Context, store OrderStore, req CreateOrderRequest, in orderInput) error {
	if _, err := store.GetCustomer(ctx, database.GetCustomerParams{
		ID:       in.customerID,
		BranchID: req.BranchID,
	}); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrCustomerNotFound
		}
		return fmt.Errorf("get customer: %w", err)
	}

	items, err := store.ListChecklistItemsByBranch(ctx, req.BranchID)
	if err != nil {
		return fmt.Errorf("list checklist items: %w", err)
	}
	for _, item := range items {
		if req.Checklist[item.Name] == "" {
			return fmt.Errorf("%w: %s", ErrChecklistIncomplete, item.Name)
		}
	}
	return nil
}

// insertServices inserts the prepared service lines for an order.
func insertServices(ctx context.Context, store OrderStore, orderID uuid.UUID, params []database.CreateOrderServiceParams) ([]database.OrderService, error) {
	var services []database.OrderService
	for _, p := range params {
		p.OrderID = orderID
		svc, err := store.CreateOrderService(ctx, p)
		if err != nil {
			return nil, fmt.Errorf("create order service: %w", err)
		}
		services = append(services, svc)
	}
	return services, nil
}

// parseOrderInput validates the request and converts it to DB column values.
// total_cost = replacement_cost + labor_cost, computed here so the stored
// total can never drift from its parts.
func parseOrderInput(req CreateOrderRequest) (orderInput, error) {
	var in orderInput

	cid, err := uuid.Parse(req.CustomerID)
	if err != nil {
		return in, ErrInvalidCustomerID
	}
	in.customerID = cid

	if req.DeviceBrand == "" {
		return in, ErrEmptyDeviceBrand
	}
	if req.DeviceModel == "" {
		return in, ErrEmptyDeviceModel
	}
	if req.DeviceSerial != "" {
		in.deviceSerial = pgtype.Text{String: req.DeviceSerial, Valid: true}
	}

	priority, err := validatePriority(req.Priority)
	if err != nil {
		return in, err
	}
	in.priority = priority

	devices := make([]deviceJSON, 0, len(req.AdditionalDevices))
	for i, d := range req.AdditionalDevices {
		if d.Brand == "" {
			return in, fmt.Errorf("additional_devices[%d]: %w", i, ErrEmptyDeviceBrand)
		}
		if d.Model == "" {
			return in, fmt.Errorf("additional_devices[%d]: %w", i, ErrEmptyDeviceModel)
		}
		devices = append(devices, deviceJSON{Brand: d.Brand, Model: d.Model, Serial: d.Serial})
	}
	in.additionalDevices, err = json.Marshal(devices)
	if err != nil {
		return in, fmt.Errorf("marshal additional_devices: %w", err)
	}

	checklist := req.Checklist
	if checklist == nil {
		checklist = map[string]string{}
	}
	in.checklist, err = json.Marshal(checklist)
	if err != nil {
		return in, fmt.Errorf("marshal checklist: %w", err)
	}

	replacement, err := parseCost(req.ReplacementCost)
	if err != nil {
		return in, fmt.Errorf("replacement_cost: %w", err)
	}
	labor, err := parseCost(req.LaborCost)
	if err != nil {
		return in, fmt.Errorf("labor_cost: %w", err)
	}
	in.replacementCost = decimalToNumeric(replacement)
	in.laborCost = decimalToNumeric(labor)
	in.totalCost = decimalToNumeric(replacement.Add(labor))

	if req.ReceiptNumber != "" {
		in.receiptNumber = pgtype.Text{String: req.ReceiptNumber, Valid: true}
	}

	if req.CommitmentDate != "" {
		t, err := time.Parse(time.RFC3339, req.CommitmentDate)
		if err != nil {
			return in, fmt.Errorf("%w: %w", ErrInvalidCommitmentDate, err)
		}
		in.commitmentDate = pgtype.Timestamptz{Time: t, Valid: true}
	}

	if req.WarrantyDays < 0 {
		return in, ErrInvalidWarrantyDays
	}

	// DeviceIndex 0 is the primary device, so valid indexes run
	// 0..len(additional_devices) inclusive.
	maxIndex := int32(len(req.AdditionalDevices))
	for i, line := range req.Services {
		if line.Name == "" {
			return in, fmt.Errorf("services[%d]: %w", i, ErrEmptyServiceName)
		}
		if len(line.Name) > maxServiceNameLength {
			return in, fmt.Errorf("services[%d]: %w", i, ErrServiceNameTooLong)
		}
		if line.DeviceIndex < 0 || line.DeviceIndex > maxIndex {
			return in, fmt.Errorf("services[%d]: %w", i, ErrInvalidDeviceIndex)
		}
		price, err := decimal.NewFromString(line.Price)
		if err != nil || !price.IsPositive() {
			return in, fmt.Errorf("services[%d]: %w", i, ErrInvalidServicePrice)
		}
		in.services = append(in.services, database.CreateOrderServiceParams{
			DeviceIndex: line.DeviceIndex,
			Name:        line.Name,
			Price:       decimalToNumeric(price),
		})
	}

	return in, nil
}

// --- Helpers ---

func validatePriority(s string) (database.OrderPriority, error) {
	if s == "" {
		return database.OrderPriorityNORMAL, nil
	}
	switch s {
	case enum.OrderPriorityLow, enum.OrderPriorityNormal,
		enum.OrderPriorityHigh, enum.OrderPriorityUrgent:
		return database.OrderPriority(s), nil
	}
	return "", ErrInvalidPriority
}

// parseCost parses a money field that may be empty (treated as zero).
func parseCost(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil || d.IsNegative() {
		return decimal.Zero, ErrInvalidCost
	}
	return d, nil
}

func numericToDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid {
		return decimal.Zero
	}
	val, err := n.Value()
	if err != nil || val == nil {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(val.(string))
	if err != nil {
		return decimal.Zero
	}
	return d
}

func decimalToNumeric(d decimal.Decimal) pgtype.Numeric {
	var n pgtype.Numeric
	_ = n.Scan(d.StringFixed(2))
	return n
}
