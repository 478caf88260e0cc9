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

// CategoryStore defines the database methods needed by category handlers.
// Satisfied by *database.Queries; narrow interface for testability.
type CategoryStore interface {
	ListCategoriesByBranch(ctx context.Context, branchID uuid.UUID) ([]database.Category, error)
	CreateCategory(ctx context.Context, arg database.CreateCategoryParams) (database.Category, error)
	UpdateCategory(ctx context.Context, arg database.UpdateCategoryParams) (database.Category, error)
	DeleteCategory(ctx context.Context, arg database.DeleteCategoryParams) (uuid.UUID, error)
}

// CategoryHandler handles product category endpoints.
type CategoryHandler struct {
	store CategoryStore
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(store CategoryStore) *CategoryHandler {
	return &CategoryHandler{store: store}
}

// RegisterRoutes registers category endpoints on the given Chi router.
// Expected to be mounted inside a branch-scoped subrouter: /branches/{bid}/categories
func (h *CategoryHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
}

type categoryRequest struct {
	Name string `json:"name"`
}

type categoryResponse struct {
	ID        uuid.UUID `json:"id"`
	BranchID  uuid.UUID `json:"branch_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

func toCategoryResponse(c database.Category) categoryResponse {
	return categoryResponse{
		ID:        c.ID,
		BranchID:  c.BranchID,
		Name:      c.Name,
		CreatedAt: c.CreatedAt,
	}
}

// List returns all categories for the given branch.
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	branchID, err := uuid.Parse(chi.URLParam(r, "bid"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid branch ID"})
		return
	}

	categories, err := h.store.ListCategoriesByBranch(r.Context(), branchID)
	if err != nil {
		log.Printf("ERROR: list categories: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	resp := make([]categoryResponse, len(categories))
	for i, c := range categories {
		resp[i] = toCategoryResponse(c)
	}

	writeJSON(w, http.StatusOK, resp)
}

// Create adds a new category to the given branch.
func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	branchID, err := uuid.Parse(chi.URLParam(r, "bid"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid branch ID"})
		return
	}

	var req categoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if req.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name is required"})
		return
	}

	category, err := h.store.CreateCategory(r.Context(), database.CreateCategoryParams{
		BranchID: branchID,
		Name:     req.Name,
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			writeJSON(w, http.StatusConflict, map[string]string{"error": "category name already exists for this branch"})
			return
		}
		log.Printf("ERROR: create category: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, http.StatusCreated, toCategoryResponse(category))
}

// Update renames an existing category.
func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	branchID, err := uuid.Parse(chi.URLParam(r, "bid"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid branch ID"})
		return
	}

	categoryID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid category ID"})
		return
	}

	var req categoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if req.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name is required"})
		return
	}

	category, err := h.store.UpdateCategory(r.Context(), database.UpdateCategoryParams{
		Name:     req.Name,
		ID:       categoryID,
		BranchID: branchID,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "category not found"})
			return
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			writeJSON(w, http.StatusConflict, map[string]string{"error": "category name already exists for this branch"})
			return
		}
		log.Printf("ERROR: update category: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, toCategoryResponse(category))
}

// Delete removes a category. Fails with 409 if products still reference it.
func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	branchID, err := uuid.Parse(chi.URLParam(r, "bid"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid branch ID"})
		return
	}

	categoryID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid category ID"})
		return
	}

	_, err = h.store.DeleteCategory(r.Context(), database.DeleteCategoryParams{
		ID:       categoryID,
		BranchID: branchID,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "category not found"})
			return
		}
		if isForeignKeyViolation(err) {
			writeJSON(w, http.StatusConflict, map[string]string{"error": "category still has products"})
			return
		}
		log.Printf("ERROR: delete category: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
