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
	"github.com/taller-pos/api/internal/pdf"
	"github.com/taller-pos/api/internal/service"
	"github.com/taller-pos/api/internal/ws"
)

// SaleServicer handles the transactional POS flows. Satisfied by
// *service.SaleService.
type SaleServicer interface {
	CreateSale(ctx context.Context, branchID, createdBy uuid.UUID) (*database.Sale, error)
	CompleteSale(ctx context.Context, req service.CompleteSaleRequest) (*service.CompleteSaleResult, error)
}

// SaleStore defines the database methods needed by sale handlers outside the
// checkout transaction. Satisfied by *database.Queries.
type SaleStore interface {
	GetBranch(ctx context.Context, id uuid.UUID) (database.Branch, error)
	ListSales(ctx context.Context, arg database.ListSalesParams) ([]database.Sale, error)
	GetSale(ctx context.Context, arg database.GetSaleParams) (database.Sale, error)
	ListSaleItemsBySale(ctx context.Context, saleID uuid.UUID) ([]database.SaleItem, error)
	CancelSale(ctx context.Context, arg database.CancelSaleParams) (database.Sale, error)
}

// SaleHandler handles POS sale endpoints.
type SaleHandler struct {
	svc   SaleServicer
	store SaleStore
	hub   Broadcaster
}

// NewSaleHandler creates a new SaleHandler.
func NewSaleHandler(svc SaleServicer, store SaleStore, hub Broadcaster) *SaleHandler {
	return &SaleHandler{svc: svc, store: store, hub: hub}
}

// RegisterRoutes registers sale endpoints on the given Chi router.
// Expected to be mounted inside a branch-scoped subrouter: /branches/{bid}/sales
func (h *SaleHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Route("/{id}", func(r chi.Router) {
		r.Get("/", h.Get)
		r.Post("/complete", h.Complete)
		r.Delete("/", h.Cancel)
		r.Get("/receipt", h.Receipt)
	})
}

// --- Request / Response types ---

type saleItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int32  `json:"quantity"`
}

type completeSaleRequest struct {
	PaymentMethod  string            `json:"payment_method"`
	AmountReceived string            `json:"amount_received"`
	Items          []saleItemRequest `json:"items"`
}

type saleItemResponse struct {
	ID          uuid.UUID `json:"id"`
	ProductID   uuid.UUID `json:"product_id"`
	ProductName string    `json:"product_name"`
	Quantity    int32     `json:"quantity"`
	UnitPrice   string    `json:"unit_price"`
	Subtotal    string    `json:"subtotal"`
}

type saleResponse struct {
	ID             uuid.UUID          `json:"id"`
	BranchID       uuid.UUID          `json:"branch_id"`
	SaleNumber     string             `json:"sale_number"`
	Status         string             `json:"status"`
	PaymentMethod  *string            `json:"payment_method"`
	TotalAmount    string             `json:"total_amount"`
	AmountReceived string             `json:"amount_received"`
	ChangeAmount   string             `json:"change_amount"`
	CreatedBy      uuid.UUID          `json:"created_by"`
	CreatedAt      time.Time          `json:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at"`
	CompletedAt    *time.Time         `json:"completed_at"`
	Items          []saleItemResponse `json:"items,omitempty"`
}

func toSaleResponse(s database.Sale) saleResponse {
	resp := saleResponse{
		ID:             s.ID,
		BranchID:       s.BranchID,
		SaleNumber:     s.SaleNumber,
		Status:         string(s.Status),
		TotalAmount:    numericToString(s.TotalAmount),
		AmountReceived: numericToString(s.AmountReceived),
		ChangeAmount:   numericToString(s.ChangeAmount),
		CreatedBy:      s.CreatedBy,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
	}
	if s.PaymentMethod.Valid {
		method := string(s.PaymentMethod.PaymentMethod)
		resp.PaymentMethod = &method
	}
	if s.CompletedAt.Valid {
		t := s.CompletedAt.Time
		resp.CompletedAt = &t
	}
	return resp
}

func toSaleItemResponses(items []database.SaleItem) []saleItemResponse {
	resp := make([]saleItemResponse, len(items))
	for i, item := range items {
		resp[i] = saleItemResponse{
			ID:          item.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   numericToString(item.UnitPrice),
			Subtotal:    numericToString(item.Subtotal),
		}
	}
	return resp
}

// --- Handlers ---

// List returns sales for the given branch with optional filters.
func (h *SaleHandler) List(w http.ResponseWriter, r *http.Request) {
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

	var status database.NullSaleStatus
	if s := r.URL.Query().Get("status"); s != "" {
		switch database.SaleStatus(s) {
		case database.SaleStatusPENDING, database.SaleStatusCOMPLETED, database.SaleStatusCANCELLED:
			status = database.NullSaleStatus{SaleStatus: database.SaleStatus(s), Valid: true}
		default:
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid status filter"})
			return
		}
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

	sales, err := h.store.ListSales(r.Context(), database.ListSalesParams{
		BranchID:  branchID,
		Status:    status,
		StartDate: startDate,
		EndDate:   endDate,
		Limit:     int32(limit),
		Offset:    int32(offset),
	})
	if err != nil {
		log.Printf("ERROR: list sales: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	resp := make([]saleResponse, len(sales))
	for i, s := range sales {
		resp[i] = toSaleResponse(s)
	}

	writeJSON(w, http.StatusOK, resp)
}

// Get returns a single sale with its line items.
func (h *SaleHandler) Get(w http.ResponseWriter, r *http.Request) {
	branchID, err := uuid.Parse(chi.URLParam(r, "bid"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid branch ID"})
		return
	}

	saleID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid sale ID"})
		return
	}

	sale, err := h.store.GetSale(r.Context(), database.GetSaleParams{
		ID:       saleID,
		BranchID: branchID,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "sale not found"})
			return
		}
		log.Printf("ERROR: get sale: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	items, err := h.store.ListSaleItemsBySale(r.Context(), saleID)
	if err != nil {
		log.Printf("ERROR: list sale items: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	resp := toSaleResponse(sale)
	resp.Items = toSaleItemResponses(items)

	writeJSON(w, http.StatusOK, resp)
}

// Create opens a new PENDING sale for the cashier to build a cart against.
func (h *SaleHandler) Create(w http.ResponseWriter, r *http.Request) {
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

	sale, err := h.svc.CreateSale(r.Context(), branchID, claims.UserID)
	if err != nil {
		log.Printf("ERROR: create sale: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, http.StatusCreated, toSaleResponse(*sale))
}

// Complete settles a pending sale: prices the cart, checks stock, records
// payment and decrements inventory in one transaction.
func (h *SaleHandler) Complete(w http.ResponseWriter, r *http.Request) {
	branchID, err := uuid.Parse(chi.URLParam(r, "bid"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid branch ID"})
		return
	}

	saleID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid sale ID"})
		return
	}

	var req completeSaleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	items := make([]service.SaleItemRequest, len(req.Items))
	for i, item := range req.Items {
		items[i] = service.SaleItemRequest{ProductID: item.ProductID, Quantity: item.Quantity}
	}

	result, err := h.svc.CompleteSale(r.Context(), service.CompleteSaleRequest{
		BranchID:       branchID,
		SaleID:         saleID,
		PaymentMethod:  req.PaymentMethod,
		AmountReceived: req.AmountReceived,
		Items:          items,
	})
	if err != nil {
		h.writeSaleError(w, err)
		return
	}

	resp := toSaleResponse(result.Sale)
	resp.Items = toSaleItemResponses(result.Items)

	h.broadcast(branchID, "sale.completed", resp)
	writeJSON(w, http.StatusOK, resp)
}

// Cancel voids a pending sale. Completed sales cannot be cancelled; stock
// was already decremented and the money drawer reconciled.
func (h *SaleHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	branchID, err := uuid.Parse(chi.URLParam(r, "bid"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid branch ID"})
		return
	}

	saleID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid sale ID"})
		return
	}

	sale, err := h.store.CancelSale(r.Context(), database.CancelSaleParams{
		ID:       saleID,
		BranchID: branchID,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// The conditional update matches PENDING only. Fetch the sale to
			// tell missing from already settled.
			_, getErr := h.store.GetSale(r.Context(), database.GetSaleParams{
				ID:       saleID,
				BranchID: branchID,
			})
			if getErr == nil {
				writeJSON(w, http.StatusConflict, map[string]string{"error": "only pending sales can be cancelled"})
				return
			}
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "sale not found"})
			return
		}
		log.Printf("ERROR: cancel sale: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, toSaleResponse(sale))
}

// Receipt renders the thermal receipt PDF for a completed sale.
func (h *SaleHandler) Receipt(w http.ResponseWriter, r *http.Request) {
	branchID, err := uuid.Parse(chi.URLParam(r, "bid"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid branch ID"})
		return
	}

	saleID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid sale ID"})
		return
	}

	sale, err := h.store.GetSale(r.Context(), database.GetSaleParams{
		ID:       saleID,
		BranchID: branchID,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "sale not found"})
			return
		}
		log.Printf("ERROR: get sale for receipt: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	if sale.Status != database.SaleStatusCOMPLETED {
		writeJSON(w, http.StatusConflict, map[string]string{"error": "sale is not completed"})
		return
	}

	items, err := h.store.ListSaleItemsBySale(r.Context(), saleID)
	if err != nil {
		log.Printf("ERROR: list sale items for receipt: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	branch, err := h.store.GetBranch(r.Context(), branchID)
	if err != nil {
		log.Printf("ERROR: get branch for receipt: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	total, _ := decimal.NewFromString(numericToString(sale.TotalAmount))
	net, tax := service.TaxBreakdown(total)

	lines := make([]pdf.SaleItemLine, len(items))
	for i, item := range items {
		lines[i] = pdf.SaleItemLine{
			Name:      item.ProductName,
			Quantity:  item.Quantity,
			UnitPrice: numericToString(item.UnitPrice),
			Subtotal:  numericToString(item.Subtotal),
		}
	}

	completedAt := sale.CreatedAt
	if sale.CompletedAt.Valid {
		completedAt = sale.CompletedAt.Time
	}

	paymentMethod := ""
	if sale.PaymentMethod.Valid {
		paymentMethod = string(sale.PaymentMethod.PaymentMethod)
	}

	data := pdf.SaleReceiptData{
		Shop:           branchShopInfo(branch),
		SaleNumber:     sale.SaleNumber,
		CompletedAt:    completedAt,
		GeneratedAt:    time.Now(),
		Items:          lines,
		NetAmount:      net.StringFixed(2),
		TaxAmount:      tax.StringFixed(2),
		TotalAmount:    numericToString(sale.TotalAmount),
		PaymentMethod:  paymentMethod,
		AmountReceived: numericToString(sale.AmountReceived),
		ChangeAmount:   numericToString(sale.ChangeAmount),
	}

	buf, err := pdf.BuildSaleReceipt(data)
	if err != nil {
		log.Printf("ERROR: build sale receipt: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writePDF(w, sale.SaleNumber+".pdf", buf)
}

// writeSaleError maps checkout service errors to HTTP responses.
func (h *SaleHandler) writeSaleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrSaleNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "sale not found"})
	case errors.Is(err, service.ErrSaleNotPending):
		writeJSON(w, http.StatusConflict, map[string]string{"error": "sale is not pending"})
	case errors.Is(err, service.ErrInsufficientStock):
		writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
	case errors.Is(err, service.ErrProductNotFound):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.Is(err, service.ErrEmptySaleItems),
		errors.Is(err, service.ErrInvalidProductID),
		errors.Is(err, service.ErrInvalidQuantity),
		errors.Is(err, service.ErrInvalidPaymentMethod),
		errors.Is(err, service.ErrCashAmountRequired),
		errors.Is(err, service.ErrInvalidAmountReceived),
		errors.Is(err, service.ErrAmountReceivedTooLow):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	default:
		log.Printf("ERROR: complete sale: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
	}
}

func (h *SaleHandler) broadcast(branchID uuid.UUID, eventType string, payload interface{}) {
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

func branchShopInfo(b database.Branch) pdf.ShopInfo {
	info := pdf.ShopInfo{Name: b.Name}
	if b.Address.Valid {
		info.Address = b.Address.String
	}
	if b.Phone.Valid {
		info.Phone = b.Phone.String
	}
	return info
}

// writePDF sends raw PDF bytes with an inline content disposition.
func writePDF(w http.ResponseWriter, filename string, data []byte) {
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `inline; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		log.Printf("ERROR: writing pdf response: %v", err)
	}
}
