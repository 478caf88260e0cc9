package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
	"github.com/taller-pos/api/internal/database"
	"github.com/taller-pos/api/internal/middleware"
	"github.com/taller-pos/api/internal/service"
	"github.com/taller-pos/api/internal/ws"
)

// OrderServicer handles the transactional intake flow. Satisfied by
// *service.OrderService.
type OrderServicer interface {
	CreateOrder(ctx context.Context, req service.CreateOrderRequest) (*service.OrderResult, error)
	UpdateOrder(ctx context.Context, req service.UpdateOrderRequest) (*service.OrderResult, error)
}

// OrderStore defines the database methods needed by order handlers outside
// the intake transaction. Satisfied by *database.Queries.
type OrderStore interface {
	GetOrder(ctx context.Context, arg database.GetOrderParams) (database.Order, error)
	ListOrders(ctx context.Context, arg database.ListOrdersParams) ([]database.Order, error)
	ListOrderServicesByOrder(ctx context.Context, orderID uuid.UUID) ([]database.OrderService, error)
	UpdateOrderStatus(ctx context.Context, arg database.UpdateOrderStatusParams) (database.Order, error)
	DeleteOrder(ctx context.Context, arg database.DeleteOrderParams) (uuid.UUID, error)
}

// Broadcaster pushes events to websocket clients watching a branch.
// Satisfied by *ws.Hub.
type Broadcaster interface {
	BroadcastToBranch(branchID uuid.UUID, event ws.Event)
}

// OrderHandler handles work order endpoints.
type OrderHandler struct {
	svc   OrderServicer
	store OrderStore
	hub   Broadcaster
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(svc OrderServicer, store OrderStore, hub Broadcaster) *OrderHandler {
	return &OrderHandler{svc: svc, store: store, hub: hub}
}

// RegisterRoutes registers order endpoints on the given Chi router.
// Expected to be mounted inside a branch-scoped subrouter: /branches/{bid}/orders
func (h *OrderHandler) RegisterRoutes(r chi.Router) {
	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Get("/{id}", h.Get)
	r.Put("/{id}", h.Update)
	r.Patch("/{id}/status", h.UpdateStatus)
}

// --- Request / Response types ---

type deviceRequest struct {
	Brand  string `json:"brand"`
	Model  string `json:"model"`
	Serial string `json:"serial"`
}

type serviceLineRequest struct {
	DeviceIndex int32  `json:"device_index"`
	Name        string `json:"name"`
	Price       string `json:"price"`
}

type orderRequest struct {
	CustomerID        string               `json:"customer_id"`
	DeviceBrand       string               `json:"device_brand"`
	DeviceModel       string               `json:"device_model"`
	DeviceSerial      string               `json:"device_serial"`
	AdditionalDevices []deviceRequest      `json:"additional_devices"`
	Checklist         map[string]string    `json:"checklist"`
	Priority          string               `json:"priority"`
	ReplacementCost   string               `json:"replacement_cost"`
	LaborCost         string               `json:"labor_cost"`
	ReceiptNumber     string               `json:"receipt_number"`
	CommitmentDate    string               `json:"commitment_date"`
	WarrantyDays      int32                `json:"warranty_days"`
	Services          []serviceLineRequest `json:"services"`
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

type deviceResponse struct {
	Brand  string `json:"brand"`
	Model  string `json:"model"`
	Serial string `json:"serial,omitempty"`
}

type serviceLineResponse struct {
	ID          uuid.UUID `json:"id"`
	DeviceIndex int32     `json:"device_index"`
	Name        string    `json:"name"`
	Price       string    `json:"price"`
}

type orderResponse struct {
	ID                uuid.UUID             `json:"id"`
	BranchID          uuid.UUID             `json:"branch_id"`
	OrderNumber       string                `json:"order_number"`
	CustomerID        uuid.UUID             `json:"customer_id"`
	DeviceBrand       string                `json:"device_brand"`
	DeviceModel       string                `json:"device_model"`
	DeviceSerial      *string               `json:"device_serial"`
	AdditionalDevices []deviceResponse      `json:"additional_devices"`
	Checklist         map[string]string     `json:"checklist"`
	Priority          string                `json:"priority"`
	Status            string                `json:"status"`
	ReplacementCost   string                `json:"replacement_cost"`
	LaborCost         string                `json:"labor_cost"`
	TotalCost         string                `json:"total_cost"`
	ReceiptNumber     *string               `json:"receipt_number"`
	CommitmentDate    *time.Time            `json:"commitment_date"`
	WarrantyDays      int32                 `json:"warranty_days"`
	CreatedBy         uuid.UUID             `json:"created_by"`
	CreatedAt         time.Time             `json:"created_at"`
	UpdatedAt         time.Time             `json:"updated_at"`
	Services          []serviceLineResponse `json:"services,omitempty"`
}

// dbOrderToResponse converts a database.Order to an orderResponse.
func dbOrderToResponse(o database.Order) orderResponse {
	resp := orderResponse{
		ID:              o.ID,
		BranchID:        o.BranchID,
		OrderNumber:     o.OrderNumber,
		CustomerID:      o.CustomerID,
		DeviceBrand:     o.DeviceBrand,
		DeviceModel:     o.DeviceModel,
		Priority:        string(o.Priority),
		Status:          string(o.Status),
		ReplacementCost: numericToString(o.ReplacementCost),
		LaborCost:       numericToString(o.LaborCost),
		TotalCost:       numericToString(o.TotalCost),
		WarrantyDays:    o.WarrantyDays,
		CreatedBy:       o.CreatedBy,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
	if o.DeviceSerial.Valid {
		resp.DeviceSerial = &o.DeviceSerial.String
	}
	if o.ReceiptNumber.Valid {
		resp.ReceiptNumber = &o.ReceiptNumber.String
	}
	if o.CommitmentDate.Valid {
		t := o.CommitmentDate.Time
		resp.CommitmentDate = &t
	}
	if len(o.AdditionalDevices) > 0 {
		if err := json.Unmarshal(o.AdditionalDevices, &resp.AdditionalDevices); err != nil {
			log.Printf("ERROR: unmarshal additional devices for order %s: %v", o.ID, err)
		}
	}
	if resp.AdditionalDevices == nil {
		resp.AdditionalDevices = []deviceResponse{}
	}
	if len(o.Checklist) > 0 {
		if err := json.Unmarshal(o.Checklist, &resp.Checklist); err != nil {
			log.Printf("ERROR: unmarshal checklist for order %s: %v", o.ID, err)
		}
	}
	if resp.Checklist == nil {
		resp.Checklist = map[string]string{}
	}
	return resp
}

func toServiceLineResponses(services []database.OrderService) []serviceLineResponse {
	resp := make([]serviceLineResponse, len(services))
	for i, s := range services {
		resp[i] = serviceLineResponse{
			ID:          s.ID,
			DeviceIndex: s.DeviceIndex,
			Name:        s.Name,
			Price:       numericToString(s.Price),
		}
	}
	return resp
}

func (req orderRequest) toServiceRequest(branchID, createdBy uuid.UUID) service.CreateOrderRequest {
	devices := make([]service.DeviceRequest, len(req.AdditionalDevices))
	for i, d := range req.AdditionalDevices {
		devices[i] = service.DeviceRequest{Brand: d.Brand, Model: d.Model, Serial: d.Serial}
	}
	lines := make([]service.ServiceLineRequest, len(req.Services))
	for i, s := range req.Services {
		lines[i] = service.ServiceLineRequest{DeviceIndex: s.DeviceIndex, Name: s.Name, Price: s.Price}
	}
	return service.CreateOrderRequest{
		BranchID:          branchID,
		CreatedBy:         createdBy,
		CustomerID:        req.CustomerID,
		DeviceBrand:       req.DeviceBrand,
		DeviceModel:       req.DeviceModel,
		DeviceSerial:      req.DeviceSerial,
		AdditionalDevices: devices,
		Checklist:         req.Checklist,
		Priority:          req.Priority,
		ReplacementCost:   req.ReplacementCost,
		LaborCost:         req.LaborCost,
		ReceiptNumber:     req.ReceiptNumber,
		CommitmentDate:    req.CommitmentDate,
		WarrantyDays:      req.WarrantyDays,
		Services:          lines,
	}
}

// --- Handlers ---

// List returns orders for the given branch with optional filters.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	branchID, err := uuid.Parse(chi.URLParam(r, "bid"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid branch ID"})
		return
	}

	// Parse pagination
	limit := 20
	if s := r.URL.Query().Get("limit"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v > 0 {
			limit = v
		}
	}
	if limit > 100 {
		limit = 100
	}

	offset := 0
	if s := r.URL.Query().Get("offset"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v >= 0 {
			offset = v
		}
	}

	var status database.NullOrderStatus
	if s := r.URL.Query().Get("status"); s != "" {
		if !isValidOrderStatus(s) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid status filter"})
			return
		}
		status = database.NullOrderStatus{OrderStatus: database.OrderStatus(s), Valid: true}
	}

	var priority database.NullOrderPriority
	if s := r.URL.Query().Get("priority"); s != "" {
		priority = database.NullOrderPriority{OrderPriority: database.OrderPriority(s), Valid: true}
	}

	var search pgtype.Text
	if s := r.URL.Query().Get("search"); s != "" {
		search = pgtype.Text{String: s, Valid: true}
	}

	var startDate, endDate pgtype.Timestamptz
	if s := r.URL.Query().Get("start_date"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid start_date"})
			return
		}
		startDate = pgtype.Timestamptz{Time: t, Valid: true}
	}
	if s := r.URL.Query().Get("end_date"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid end_date"})
			return
		}
		endDate = pgtype.Timestamptz{Time: t, Valid: true}
	}

	orders, err := h.store.ListOrders(r.Context(), database.ListOrdersParams{
		BranchID:  branchID,
		Status:    status,
		Priority:  priority,
		Search:    search,
		StartDate: startDate,
		EndDate:   endDate,
		Limit:     int32(limit),
		Offset:    int32(offset),
	})
	if err != nil {
		log.Printf("ERROR: list orders: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	resp := make([]orderResponse, len(orders))
	for i, o := range orders {
		resp[i] = dbOrderToResponse(o)
	}

	writeJSON(w, http.StatusOK, resp)
}

// Get returns a single order with its service lines.
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	branchID, err := uuid.Parse(chi.URLParam(r, "bid"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid branch ID"})
		return
	}

	orderID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid order ID"})
		return
	}

	order, err := h.store.GetOrder(r.Context(), database.GetOrderParams{
		ID:       orderID,
		BranchID: branchID,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "order not found"})
			return
		}
		log.Printf("ERROR: get order: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	services, err := h.store.ListOrderServicesByOrder(r.Context(), orderID)
	if err != nil {
		log.Printf("ERROR: list order services: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	resp := dbOrderToResponse(order)
	resp.Services = toServiceLineResponses(services)

	writeJSON(w, http.StatusOK, resp)
}

// Create opens a new work order through the intake transaction.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	branchID, err := uuid.Parse(chi.URLParam(r, "bid"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid branch ID"})
		return
	}

	claims := middleware.ClaimsFromContext(r.Context())
	if claims == nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "not authenticated"})
		return
	}

	var req orderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	result, err := h.svc.CreateOrder(r.Context(), req.toServiceRequest(branchID, claims.UserID))
	if err != nil {
		h.writeOrderError(w, err, "create order")
		return
	}

	resp := dbOrderToResponse(result.Order)
	resp.Services = toServiceLineResponses(result.Services)

	h.broadcast(branchID, "order.created", resp)
	writeJSON(w, http.StatusCreated, resp)
}

// Update replaces the intake fields of an existing order.
func (h *OrderHandler) Update(w http.ResponseWriter, r *http.Request) {
	branchID, err := uuid.Parse(chi.URLParam(r, "bid"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid branch ID"})
		return
	}

	orderID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid order ID"})
		return
	}

	claims := middleware.ClaimsFromContext(r.Context())
	if claims == nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "not authenticated"})
		return
	}

	var req orderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	result, err := h.svc.UpdateOrder(r.Context(), service.UpdateOrderRequest{
		ID:                 orderID,
		CreateOrderRequest: req.toServiceRequest(branchID, claims.UserID),
	})
	if err != nil {
		h.writeOrderError(w, err, "update order")
		return
	}

	resp := dbOrderToResponse(result.Order)
	resp.Services = toServiceLineResponses(result.Services)

	writeJSON(w, http.StatusOK, resp)
}

// UpdateStatus moves an order along the repair state machine. The update is
// a compare-and-set on the current status so concurrent transitions fail
// with 409 instead of silently overwriting each other.
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	branchID, err := uuid.Parse(chi.URLParam(r, "bid"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid branch ID"})
		return
	}

	orderID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid order ID"})
		return
	}

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if !isValidOrderStatus(req.Status) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid status"})
		return
	}

	current, err := h.store.GetOrder(r.Context(), database.GetOrderParams{
		ID:       orderID,
		BranchID: branchID,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "order not found"})
			return
		}
		log.Printf("ERROR: get order for status update: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	newStatus := database.OrderStatus(req.Status)
	if err := validateStatusTransition(current.Status, newStatus); err != nil {
		writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
		return
	}

	order, err := h.store.UpdateOrderStatus(r.Context(), database.UpdateOrderStatusParams{
		ID:       orderID,
		BranchID: branchID,
		Status:   newStatus,
		Status_2: current.Status,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusConflict, map[string]string{"error": "order status changed, please retry"})
			return
		}
		log.Printf("ERROR: update order status: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	resp := dbOrderToResponse(order)
	h.broadcast(branchID, "order.status_changed", resp)
	writeJSON(w, http.StatusOK, resp)
}

// Delete removes an order and its service lines. Registered behind an
// ADMIN-only route group.
func (h *OrderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	branchID, err := uuid.Parse(chi.URLParam(r, "bid"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid branch ID"})
		return
	}

	orderID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid order ID"})
		return
	}

	_, err = h.store.DeleteOrder(r.Context(), database.DeleteOrderParams{
		ID:       orderID,
		BranchID: branchID,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "order not found"})
			return
		}
		log.Printf("ERROR: delete order: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// writeOrderError maps intake service errors to HTTP responses.
func (h *OrderHandler) writeOrderError(w http.ResponseWriter, err error, op string) {
	switch {
	case errors.Is(err, service.ErrOrderNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "order not found"})
	case errors.Is(err, service.ErrCustomerNotFound):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "customer not found"})
	case errors.Is(err, service.ErrInvalidCustomerID),
		errors.Is(err, service.ErrEmptyDeviceBrand),
		errors.Is(err, service.ErrEmptyDeviceModel),
		errors.Is(err, service.ErrInvalidPriority),
		errors.Is(err, service.ErrInvalidCost),
		errors.Is(err, service.ErrEmptyServiceName),
		errors.Is(err, service.ErrServiceNameTooLong),
		errors.Is(err, service.ErrInvalidServicePrice),
		errors.Is(err, service.ErrInvalidDeviceIndex),
		errors.Is(err, service.ErrChecklistIncomplete),
		errors.Is(err, service.ErrInvalidCommitmentDate),
		errors.Is(err, service.ErrInvalidWarrantyDays):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	default:
		log.Printf("ERROR: %s: %v", op, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
	}
}

func (h *OrderHandler) broadcast(branchID uuid.UUID, eventType string, payload interface{}) {
	if h.hub == nil {
		return
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		log.Printf("ERROR: marshal %s event: %v", eventType, err)
		return
	}
	h.hub.BroadcastToBranch(branchID, ws.Event{Type: eventType, Payload: raw})
}

// --- Status state machine ---

// allowedTransitions defines the legal moves of the repair state machine.
// REJECTED and UNSOLVED are terminal. DELIVERED can still move to WARRANTY
// when the customer comes back within the warranty window.
var allowedTransitions = map[database.OrderStatus][]database.OrderStatus{
	database.OrderStatusINPROGRESS:     {database.OrderStatusREADYFORPICKUP, database.OrderStatusREJECTED, database.OrderStatusUNSOLVED},
	database.OrderStatusREADYFORPICKUP: {database.OrderStatusDELIVERED, database.OrderStatusINPROGRESS},
	database.OrderStatusDELIVERED:      {database.OrderStatusWARRANTY},
	database.OrderStatusWARRANTY:       {database.OrderStatusINPROGRESS},
	database.OrderStatusREJECTED:       {},
	database.OrderStatusUNSOLVED:       {},
}

func validateStatusTransition(from, to database.OrderStatus) error {
	for _, allowed := range allowedTransitions[from] {
		if allowed == to {
			return nil
		}
	}
	return errors.New("cannot transition from " + string(from) + " to " + string(to))
}

func isValidOrderStatus(s string) bool {
	switch database.OrderStatus(s) {
	case database.OrderStatusINPROGRESS, database.OrderStatusREADYFORPICKUP,
		database.OrderStatusDELIVERED, database.OrderStatusREJECTED,
		database.OrderStatusUNSOLVED, database.OrderStatusWARRANTY:
		return true
	}
	return false
}

// numericToString formats a pgtype.Numeric as a money string with 2 decimal
// places, falling back to "0.00".
func numericToString(n pgtype.Numeric) string {
	if !n.Valid {
		return "0.00"
	}
	val, err := n.Value()
	if err != nil || val == nil {
		return "0.00"
	}
	d, err := decimal.NewFromString(val.(string))
	if err != nil {
		return "0.00"
	}
	return d.StringFixed(2)
}
