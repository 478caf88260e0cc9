package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/taller-pos/api/internal/database"
	"github.com/taller-pos/api/internal/middleware"
)

const maxNoteLength = 2000

// NoteStore defines the database methods needed by order note handlers.
// Satisfied by *database.Queries; narrow interface for testability.
type NoteStore interface {
	GetOrder(ctx context.Context, arg database.GetOrderParams) (database.Order, error)
	ListOrderNotesByOrder(ctx context.Context, orderID uuid.UUID) ([]database.ListOrderNotesByOrderRow, error)
	CreateOrderNote(ctx context.Context, arg database.CreateOrderNoteParams) (database.OrderNote, error)
}

// NoteHandler handles the technician note thread on a work order. Public
// notes appear on customer-facing documents; internal ones do not.
type NoteHandler struct {
	store NoteStore
}

// NewNoteHandler creates a new NoteHandler.
func NewNoteHandler(store NoteStore) *NoteHandler {
	return &NoteHandler{store: store}
}

// RegisterRoutes registers note endpoints on the given Chi router.
// Expected to be mounted at /branches/{bid}/orders/{id}/notes
func (h *NoteHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
}

type createNoteRequest struct {
	Body     string `json:"body"`
	IsPublic bool   `json:"is_public"`
}

type noteResponse struct {
	ID        uuid.UUID `json:"id"`
	OrderID   uuid.UUID `json:"order_id"`
	UserID    uuid.UUID `json:"user_id"`
	UserName  string    `json:"user_name,omitempty"`
	Body      string    `json:"body"`
	IsPublic  bool      `json:"is_public"`
	CreatedAt time.Time `json:"created_at"`
}

// List returns the note thread of an order, oldest first.
func (h *NoteHandler) List(w http.ResponseWriter, r *http.Request) {
	order, ok := h.resolveOrder(w, r)
	if !ok {
		return
	}

	notes, err := h.store.ListOrderNotesByOrder(r.Context(), order.ID)
	if err != nil {
		log.Printf("ERROR: list order notes: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	resp := make([]noteResponse, len(notes))
	for i, n := range notes {
		resp[i] = noteResponse{
			ID:        n.ID,
			OrderID:   n.OrderID,
			UserID:    n.UserID,
			UserName:  n.UserName,
			Body:      n.Body,
			IsPublic:  n.IsPublic,
			CreatedAt: n.CreatedAt,
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

// Create appends a note to the order thread, attributed to the caller.
func (h *NoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	order, ok := h.resolveOrder(w, r)
	if !ok {
		return
	}

	claims := middleware.ClaimsFromContext(r.Context())
	if claims == nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "not authenticated"})
		return
	}

	var req createNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if req.Body == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "body is required"})
		return
	}
	if len(req.Body) > maxNoteLength {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "note is too long"})
		return
	}

	note, err := h.store.CreateOrderNote(r.Context(), database.CreateOrderNoteParams{
		OrderID:  order.ID,
		UserID:   claims.UserID,
		Body:     req.Body,
		IsPublic: req.IsPublic,
	})
	if err != nil {
		log.Printf("ERROR: create order note: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, http.StatusCreated, noteResponse{
		ID:        note.ID,
		OrderID:   note.OrderID,
		UserID:    note.UserID,
		Body:      note.Body,
		IsPublic:  note.IsPublic,
		CreatedAt: note.CreatedAt,
	})
}

// resolveOrder parses the route params and verifies the order belongs to the
// branch. Writes the error response itself when the lookup fails.
func (h *NoteHandler) resolveOrder(w http.ResponseWriter, r *http.Request) (database.Order, bool) {
	branchID, err := uuid.Parse(chi.URLParam(r, "bid"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid branch ID"})
		return database.Order{}, false
	}

	orderID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid order ID"})
		return database.Order{}, false
	}

	order, err := h.store.GetOrder(r.Context(), database.GetOrderParams{
		ID:       orderID,
		BranchID: branchID,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "order not found"})
			return database.Order{}, false
		}
		log.Printf("ERROR: get order for notes: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return database.Order{}, false
	}

	return order, true
}
