package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"sort"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/taller-pos/api/internal/blob"
	"github.com/taller-pos/api/internal/database"
	"github.com/taller-pos/api/internal/pdf"
)

// DocumentStore defines the database methods needed to assemble printable
// documents for an order. Satisfied by *database.Queries.
type DocumentStore interface {
	GetBranch(ctx context.Context, id uuid.UUID) (database.Branch, error)
	GetOrder(ctx context.Context, arg database.GetOrderParams) (database.Order, error)
	GetCustomer(ctx context.Context, arg database.GetCustomerParams) (database.Customer, error)
	ListOrderServicesByOrder(ctx context.Context, orderID uuid.UUID) ([]database.OrderService, error)
}

// DocumentHandler renders the printable documents of a work order: the full
// A4 work order, the thermal intake stub and the device label. When an S3
// store is configured each generated document is also archived.
type DocumentHandler struct {
	store    DocumentStore
	uploader blob.Uploader
}

// NewDocumentHandler creates a new DocumentHandler. uploader may be nil.
func NewDocumentHandler(store DocumentStore, uploader blob.Uploader) *DocumentHandler {
	return &DocumentHandler{store: store, uploader: uploader}
}

// RegisterRoutes registers document endpoints on the given Chi router.
// Expected to be mounted inside the orders subrouter: /branches/{bid}/orders
func (h *DocumentHandler) RegisterRoutes(r chi.Router) {
	r.Get("/{id}/document", h.WorkOrder)
	r.Get("/{id}/receipt", h.Receipt)
	r.Get("/{id}/label", h.Label)
}

// orderBundle is everything the PDF builders need about one order.
type orderBundle struct {
	branch   database.Branch
	order    database.Order
	customer database.Customer
	services []database.OrderService
}

// WorkOrder renders the full A4 work order document.
func (h *DocumentHandler) WorkOrder(w http.ResponseWriter, r *http.Request) {
	b, ok := h.loadBundle(w, r)
	if !ok {
		return
	}

	var commitment *time.Time
	if b.order.CommitmentDate.Valid {
		t := b.order.CommitmentDate.Time
		commitment = &t
	}

	receiptNumber := ""
	if b.order.ReceiptNumber.Valid {
		receiptNumber = b.order.ReceiptNumber.String
	}

	data := pdf.WorkOrderData{
		Shop:            branchShopInfo(b.branch),
		OrderNumber:     b.order.OrderNumber,
		Status:          string(b.order.Status),
		Priority:        string(b.order.Priority),
		CreatedAt:       b.order.CreatedAt,
		GeneratedAt:     time.Now(),
		CustomerName:    b.customer.Name,
		CustomerPhone:   b.customer.CountryCode + " " + b.customer.Phone,
		CustomerEmail:   b.customer.Email,
		Devices:         orderDevices(b.order),
		Checklist:       orderChecklist(b.order),
		Services:        orderServiceLines(b.services),
		ReplacementCost: numericToString(b.order.ReplacementCost),
		LaborCost:       numericToString(b.order.LaborCost),
		TotalCost:       numericToString(b.order.TotalCost),
		ReceiptNumber:   receiptNumber,
		CommitmentDate:  commitment,
		WarrantyDays:    b.order.WarrantyDays,
	}

	buf, err := pdf.BuildWorkOrder(data)
	if err != nil {
		log.Printf("ERROR: build work order pdf: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	h.archive(r.Context(), b.order.OrderNumber, "workorder", buf)
	writePDF(w, b.order.OrderNumber+".pdf", buf)
}

// Receipt renders the thermal intake stub handed to the customer.
func (h *DocumentHandler) Receipt(w http.ResponseWriter, r *http.Request) {
	b, ok := h.loadBundle(w, r)
	if !ok {
		return
	}

	var commitment *time.Time
	if b.order.CommitmentDate.Valid {
		t := b.order.CommitmentDate.Time
		commitment = &t
	}

	data := pdf.OrderReceiptData{
		Shop:           branchShopInfo(b.branch),
		OrderNumber:    b.order.OrderNumber,
		CreatedAt:      b.order.CreatedAt,
		GeneratedAt:    time.Now(),
		CustomerName:   b.customer.Name,
		Device:         b.order.DeviceBrand + " " + b.order.DeviceModel,
		Services:       orderServiceLines(b.services),
		TotalCost:      numericToString(b.order.TotalCost),
		CommitmentDate: commitment,
		WarrantyDays:   b.order.WarrantyDays,
	}

	buf, err := pdf.BuildOrderReceipt(data)
	if err != nil {
		log.Printf("ERROR: build order receipt pdf: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	h.archive(r.Context(), b.order.OrderNumber, "receipt", buf)
	writePDF(w, b.order.OrderNumber+"-recibo.pdf", buf)
}

// Label renders the small device label for the workshop shelf.
func (h *DocumentHandler) Label(w http.ResponseWriter, r *http.Request) {
	b, ok := h.loadBundle(w, r)
	if !ok {
		return
	}

	var commitment *time.Time
	if b.order.CommitmentDate.Valid {
		t := b.order.CommitmentDate.Time
		commitment = &t
	}

	data := pdf.LabelData{
		OrderNumber:    b.order.OrderNumber,
		CustomerName:   b.customer.Name,
		CustomerPhone:  b.customer.CountryCode + " " + b.customer.Phone,
		Device:         b.order.DeviceBrand + " " + b.order.DeviceModel,
		GeneratedAt:    time.Now(),
		CommitmentDate: commitment,
	}

	buf, err := pdf.BuildLabel(data)
	if err != nil {
		log.Printf("ERROR: build label pdf: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writePDF(w, b.order.OrderNumber+"-etiqueta.pdf", buf)
}

// loadBundle resolves the branch, order, customer and service lines for the
// route params. Writes the error response itself when a lookup fails.
func (h *DocumentHandler) loadBundle(w http.ResponseWriter, r *http.Request) (orderBundle, bool) {
	branchID, err := uuid.Parse(chi.URLParam(r, "bid"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid branch ID"})
		return orderBundle{}, false
	}

	orderID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid order ID"})
		return orderBundle{}, false
	}

	order, err := h.store.GetOrder(r.Context(), database.GetOrderParams{
		ID:       orderID,
		BranchID: branchID,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "order not found"})
			return orderBundle{}, false
		}
		log.Printf("ERROR: get order for document: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return orderBundle{}, false
	}

	customer, err := h.store.GetCustomer(r.Context(), database.GetCustomerParams{
		ID:       order.CustomerID,
		BranchID: branchID,
	})
	if err != nil {
		log.Printf("ERROR: get customer for document: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return orderBundle{}, false
	}

	services, err := h.store.ListOrderServicesByOrder(r.Context(), orderID)
	if err != nil {
		log.Printf("ERROR: list order services for document: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return orderBundle{}, false
	}

	branch, err := h.store.GetBranch(r.Context(), branchID)
	if err != nil {
		log.Printf("ERROR: get branch for document: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return orderBundle{}, false
	}

	return orderBundle{branch: branch, order: order, customer: customer, services: services}, true
}

// archive stores a generated PDF in blob storage. Failures are logged and
// otherwise ignored; the download must not break because archiving did.
func (h *DocumentHandler) archive(ctx context.Context, orderNumber, kind string, data []byte) {
	if h.uploader == nil {
		return
	}
	key := blob.DocumentKey(orderNumber, kind, time.Now())
	if err := h.uploader.Upload(ctx, key, data, "application/pdf"); err != nil {
		log.Printf("ERROR: archive %s document for %s: %v", kind, orderNumber, err)
	}
}

// orderDevices lists the primary device followed by the additional ones.
func orderDevices(o database.Order) []pdf.DeviceInfo {
	serial := ""
	if o.DeviceSerial.Valid {
		serial = o.DeviceSerial.String
	}
	devices := []pdf.DeviceInfo{{Brand: o.DeviceBrand, Model: o.DeviceModel, Serial: serial}}

	if len(o.AdditionalDevices) > 0 {
		var extra []pdf.DeviceInfo
		if err := json.Unmarshal(o.AdditionalDevices, &extra); err != nil {
			log.Printf("ERROR: unmarshal additional devices for order %s: %v", o.ID, err)
		} else {
			devices = append(devices, extra...)
		}
	}
	return devices
}

// orderChecklist flattens the stored checklist answers, sorted by item name
// so documents render the same every time.
func orderChecklist(o database.Order) []pdf.ChecklistAnswer {
	if len(o.Checklist) == 0 {
		return nil
	}
	var m map[string]string
	if err := json.Unmarshal(o.Checklist, &m); err != nil {
		log.Printf("ERROR: unmarshal checklist for order %s: %v", o.ID, err)
		return nil
	}
	items := make([]string, 0, len(m))
	for item := range m {
		items = append(items, item)
	}
	sort.Strings(items)

	answers := make([]pdf.ChecklistAnswer, len(items))
	for i, item := range items {
		answers[i] = pdf.ChecklistAnswer{Item: item, Answer: m[item]}
	}
	return answers
}

func orderServiceLines(services []database.OrderService) []pdf.ServiceLine {
	lines := make([]pdf.ServiceLine, len(services))
	for i, s := range services {
		lines[i] = pdf.ServiceLine{
			DeviceIndex: s.DeviceIndex,
			Name:        s.Name,
			Price:       numericToString(s.Price),
		}
	}
	return lines
}
