package handler

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
	"github.com/taller-pos/api/internal/database"
	"github.com/taller-pos/api/internal/service"
)

// ReportStore defines the database methods needed by report handlers.
// Satisfied by *database.Queries; narrow interface for testability.
type ReportStore interface {
	ListLowStockProducts(ctx context.Context, branchID uuid.UUID) ([]database.Product, error)
	GetSalesSummary(ctx context.Context, arg database.GetSalesSummaryParams) (database.GetSalesSummaryRow, error)
	GetPaymentSummary(ctx context.Context, arg database.GetPaymentSummaryParams) ([]database.GetPaymentSummaryRow, error)
	ListOrdersForDuplicateCheck(ctx context.Context, branchID uuid.UUID) ([]database.ListOrdersForDuplicateCheckRow, error)
}

// ReportHandler handles reporting endpoints.
type ReportHandler struct {
	store ReportStore
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(store ReportStore) *ReportHandler {
	return &ReportHandler{store: store}
}

// RegisterRoutes registers report endpoints on the given Chi router.
// Expected to be mounted inside a branch-scoped subrouter: /branches/{bid}/reports
func (h *ReportHandler) RegisterRoutes(r chi.Router) {
	r.Get("/low-stock", h.LowStock)
	r.Get("/sales-summary", h.SalesSummary)
	r.Get("/duplicate-orders", h.DuplicateOrders)
}

// --- Response types ---

type salesSummaryResponse struct {
	SaleCount    int64                    `json:"sale_count"`
	TotalRevenue string                   `json:"total_revenue"`
	NetRevenue   string                   `json:"net_revenue"`
	TaxCollected string                   `json:"tax_collected"`
	ByPayment    []paymentSummaryResponse `json:"by_payment"`
}

type paymentSummaryResponse struct {
	PaymentMethod string `json:"payment_method"`
	SaleCount     int64  `json:"sale_count"`
	TotalAmount   string `json:"total_amount"`
}

type duplicateOrderResponse struct {
	ID                      uuid.UUID `json:"id"`
	OrderNumber             string    `json:"order_number"`
	ReceiptNumber           *string   `json:"receipt_number"`
	HasDuplicateOrderNumber bool      `json:"has_duplicate_order_number"`
	HasDuplicateReceipt     bool      `json:"has_duplicate_receipt"`
}

// --- Handlers ---

// LowStock returns active products at or below their minimum stock level.
func (h *ReportHandler) LowStock(w http.ResponseWriter, r *http.Request) {
	branchID, err := uuid.Parse(chi.URLParam(r, "bid"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid branch ID"})
		return
	}

	products, err := h.store.ListLowStockProducts(r.Context(), branchID)
	if err != nil {
		log.Printf("ERROR: list low stock products: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	resp := make([]productResponse, len(products))
	for i, p := range products {
		resp[i] = toProductResponse(p)
	}

	writeJSON(w, http.StatusOK, resp)
}

// SalesSummary returns completed sale totals for a period with the IVA
// breakdown and a per-payment-method split.
func (h *ReportHandler) SalesSummary(w http.ResponseWriter, r *http.Request) {
	branchID, err := uuid.Parse(chi.URLParam(r, "bid"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid branch ID"})
		return
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

	summary, err := h.store.GetSalesSummary(r.Context(), database.GetSalesSummaryParams{
		BranchID:  branchID,
		StartDate: startDate,
		EndDate:   endDate,
	})
	if err != nil {
		log.Printf("ERROR: get sales summary: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	payments, err := h.store.GetPaymentSummary(r.Context(), database.GetPaymentSummaryParams{
		BranchID:  branchID,
		StartDate: startDate,
		EndDate:   endDate,
	})
	if err != nil {
		log.Printf("ERROR: get payment summary: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	total, _ := decimal.NewFromString(numericToString(summary.TotalRevenue))
	net, tax := service.TaxBreakdown(total)

	byPayment := make([]paymentSummaryResponse, 0, len(payments))
	for _, p := range payments {
		if !p.PaymentMethod.Valid {
			continue
		}
		byPayment = append(byPayment, paymentSummaryResponse{
			PaymentMethod: string(p.PaymentMethod.PaymentMethod),
			SaleCount:     p.SaleCount,
			TotalAmount:   numericToString(p.TotalAmount),
		})
	}

	writeJSON(w, http.StatusOK, salesSummaryResponse{
		SaleCount:    summary.SaleCount,
		TotalRevenue: total.StringFixed(2),
		NetRevenue:   net.StringFixed(2),
		TaxCollected: tax.StringFixed(2),
		ByPayment:    byPayment,
	})
}

// DuplicateOrders flags orders sharing an order number or receipt number
// within the branch, surfacing data-entry mistakes for review.
func (h *ReportHandler) DuplicateOrders(w http.ResponseWriter, r *http.Request) {
	branchID, err := uuid.Parse(chi.URLParam(r, "bid"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid branch ID"})
		return
	}

	rows, err := h.store.ListOrdersForDuplicateCheck(r.Context(), branchID)
	if err != nil {
		log.Printf("ERROR: list orders for duplicate check: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	refs := make([]service.OrderRef, len(rows))
	for i, row := range rows {
		refs[i] = service.OrderRef{
			ID:          row.ID,
			OrderNumber: row.OrderNumber,
		}
		if row.ReceiptNumber.Valid {
			refs[i].ReceiptNumber = row.ReceiptNumber.String
		}
	}

	flags := service.DetectDuplicates(refs)

	resp := make([]duplicateOrderResponse, 0, len(flags))
	for _, row := range rows {
		f, ok := flags[row.ID]
		if !ok {
			continue
		}
		item := duplicateOrderResponse{
			ID:                      row.ID,
			OrderNumber:             row.OrderNumber,
			HasDuplicateOrderNumber: f.HasDuplicateOrderNumber,
			HasDuplicateReceipt:     f.HasDuplicateReceipt,
		}
		if row.ReceiptNumber.Valid {
			item.ReceiptNumber = &row.ReceiptNumber.String
		}
		resp = append(resp, item)
	}

	writeJSON(w, http.StatusOK, resp)
}
