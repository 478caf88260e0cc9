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
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/taller-pos/api/internal/database"
)

// ChecklistStore defines the database methods needed by checklist handlers.
// Satisfied by *database.Queries; narrow interface for testability.
type ChecklistStore interface {
	ListChecklistItemsByBranch(ctx context.Context, branchID uuid.UUID) ([]database.ChecklistItem, error)
	CreateChecklistItem(ctx context.Context, arg database.CreateChecklistItemParams) (database.ChecklistItem, error)
	DeleteChecklistItem(ctx context.Context, arg database.DeleteChecklistItemParams) (uuid.UUID, error)
}

// ChecklistHandler manages the reception checklist template of a branch.
// Answers for a concrete order live on the order itself; this handler only
// maintains the set of questions technicians must fill at intake.
type ChecklistHandler struct {
	store ChecklistStore
}

// NewChecklistHandler creates a new ChecklistHandler.
func NewChecklistHandler(store ChecklistStore) *ChecklistHandler {
	return &ChecklistHandler{store: store}
}

// RegisterRoutes registers checklist endpoints on the given Chi router.
// Expected to be mounted inside a branch-scoped subrouter: /branches/{bid}/checklist
func (h *ChecklistHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Delete("/{id}", h.Delete)
}

type checklistItemRequest struct {
	Name     string `json:"name"`
	Position int32  `json:"position"`
}

type checklistItemResponse struct {
	ID        uuid.UUID `json:"id"`
	BranchID  uuid.UUID `json:"branch_id"`
	Name      string    `json:"name"`
	Position  int32     `json:"position"`
	CreatedAt time.Time `json:"created_at"`
}

func toChecklistItemResponse(item database.ChecklistItem) checklistItemResponse {
	return checklistItemResponse{
		ID:        item.ID,
		BranchID:  item.BranchID,
		Name:      item.Name,
		Position:  item.Position,
		CreatedAt: item.CreatedAt,
	}
}

// List returns the checklist items of a branch ordered by position.
func (h *ChecklistHandler) List(w http.ResponseWriter, r *http.Request) {
	branchID, err := uuid.Parse(chi.URLParam(r, "bid"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid branch ID"})
		return
	}

	items, err := h.store.ListChecklistItemsByBranch(r.Context(), branchID)
	if err != nil {
		log.Printf("ERROR: list checklist items: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	resp := make([]checklistItemResponse, len(items))
	for i, item := range items {
		resp[i] = toChecklistItemResponse(item)
	}

	writeJSON(w, http.StatusOK, resp)
}

// Create adds a checklist item to the branch template.
func (h *ChecklistHandler) Create(w http.ResponseWriter, r *http.Request) {
	branchID, err := uuid.Parse(chi.URLParam(r, "bid"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid branch ID"})
		return
	}

	var req checklistItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if req.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name is required"})
		return
	}

	item, err := h.store.CreateChecklistItem(r.Context(), database.CreateChecklistItemParams{
		BranchID: branchID,
		Name:     req.Name,
		Position: req.Position,
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			writeJSON(w, http.StatusConflict, map[string]string{"error": "checklist item already exists for this branch"})
			return
		}
		log.Printf("ERROR: create checklist item: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, http.StatusCreated, toChecklistItemResponse(item))
}

// Delete removes a checklist item from the branch template. Existing orders
// keep the answers they recorded at intake.
func (h *ChecklistHandler) Delete(w http.ResponseWriter, r *http.Request) {
	branchID, err := uuid.Parse(chi.URLParam(r, "bid"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid branch ID"})
		return
	}

	itemID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid checklist item ID"})
		return
	}

	_, err = h.store.DeleteChecklistItem(r.Context(), database.DeleteChecklistItemParams{
		ID:       itemID,
		BranchID: branchID,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "checklist item not found"})
			return
		}
		log.Printf("ERROR: delete checklist item: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
