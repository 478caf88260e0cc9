package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/taller-pos/api/internal/bsale"
)

// DocumentValidator checks a receipt number against the invoicing backend.
// Satisfied by *bsale.Client.
type DocumentValidator interface {
	ValidateDocument(ctx context.Context, number int64) (*bsale.Result, error)
}

// BsaleHandler validates boleta numbers against the Bsale accounts the shop
// bills from, so intake can confirm a receipt really exists.
type BsaleHandler struct {
	client DocumentValidator
}

// NewBsaleHandler creates a new BsaleHandler.
func NewBsaleHandler(client DocumentValidator) *BsaleHandler {
	return &BsaleHandler{client: client}
}

// RegisterRoutes registers validation endpoints on the given Chi router.
func (h *BsaleHandler) RegisterRoutes(r chi.Router) {
	r.Get("/validate", h.Validate)
}

type bsaleDocumentResponse struct {
	Number        int64   `json:"number"`
	EmissionDate  int64   `json:"emission_date"`
	TotalAmount   float64 `json:"total_amount"`
	NetAmount     float64 `json:"net_amount"`
	TaxAmount     float64 `json:"tax_amount"`
	URLPublicView string  `json:"url_public_view"`
	URLPdf        string  `json:"url_pdf"`
	AccountIndex  int     `json:"account_index"`
}

// Validate looks up a document number across the configured Bsale accounts.
func (h *BsaleHandler) Validate(w http.ResponseWriter, r *http.Request) {
	numberStr := r.URL.Query().Get("number")
	if numberStr == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "number is required"})
		return
	}

	number, err := strconv.ParseInt(numberStr, 10, 64)
	if err != nil || number <= 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid document number"})
		return
	}

	result, err := h.client.ValidateDocument(r.Context(), number)
	if err != nil {
		switch {
		case errors.Is(err, bsale.ErrDocumentNotFound):
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "document not found"})
		case errors.Is(err, bsale.ErrNoTokens):
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "document validation is not configured"})
		default:
			log.Printf("ERROR: validate bsale document: %v", err)
			writeJSON(w, http.StatusBadGateway, map[string]string{"error": "document validation failed"})
		}
		return
	}

	writeJSON(w, http.StatusOK, bsaleDocumentResponse{
		Number:        result.Document.Number,
		EmissionDate:  result.Document.EmissionDate,
		TotalAmount:   result.Document.TotalAmount,
		NetAmount:     result.Document.NetAmount,
		TaxAmount:     result.Document.TaxAmount,
		URLPublicView: result.Document.URLPublicView,
		URLPdf:        result.Document.URLPdf,
		AccountIndex:  result.AccountIndex,
	})
}
