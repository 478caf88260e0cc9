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
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/taller-pos/api/internal/database"
)

// CatalogStore defines the database methods needed by service catalog handlers.
// Satisfied by *database.Queries; narrow interface for testability.
type CatalogStore interface {
	ListCatalogServicesByBranch(ctx context.Context, branchID uuid.UUID) ([]database.CatalogService, error)
	CreateCatalogService(ctx context.Context, arg database.CreateCatalogServiceParams) (database.CatalogService, error)
	UpdateCatalogService(ctx context.Context, arg database.UpdateCatalogServiceParams) (database.CatalogService, error)
	SoftDeleteCatalogService(ctx context.Context, arg database.SoftDeleteCatalogServiceParams) (uuid.UUID, error)
}

// CatalogHandler manages the reusable repair service catalog of a branch.
// Intake pre-fills service lines from this catalog; the lines themselves are
// snapshots stored on the order, so editing the catalog never touches history.
type CatalogHandler struct {
	store CatalogStore
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(store CatalogStore) *CatalogHandler {
	return &CatalogHandler{store: store}
}

// RegisterRoutes registers catalog endpoints on the given Chi router.
// Expected to be mounted inside a branch-scoped subrouter: /branches/{bid}/catalog
func (h *CatalogHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
}

type catalogServiceRequest struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	DefaultPrice string `json:"default_price"`
}

type catalogServiceResponse struct {
	ID           uuid.UUID `json:"id"`
	BranchID     uuid.UUID `json:"branch_id"`
	Name         string    `json:"name"`
	Description  *string   `json:"description"`
	DefaultPrice string    `json:"default_price"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func toCatalogServiceResponse(s database.CatalogService) catalogServiceResponse {
	resp := catalogServiceResponse{
		ID:           s.ID,
		BranchID:     s.BranchID,
		Name:         s.Name,
		DefaultPrice: numericToString(s.DefaultPrice),
		IsActive:     s.IsActive,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
	if s.Description.Valid {
		resp.Description = &s.Description.String
	}
	return resp
}

func (req catalogServiceRequest) toParams() (string, pgtype.Text, pgtype.Numeric, string) {
	if req.Name == "" {
		return "", pgtype.Text{}, pgtype.Numeric{}, "name is required"
	}
	if req.DefaultPrice == "" {
		return "", pgtype.Text{}, pgtype.Numeric{}, "default_price is required"
	}
	price, err := parsePrice(req.DefaultPrice)
	if err != nil {
		return "", pgtype.Text{}, pgtype.Numeric{}, "invalid default_price"
	}
	return req.Name, optionalText(req.Description), price, ""
}

// List returns all active catalog services for the given branch.
func (h *CatalogHandler) List(w http.ResponseWriter, r *http.Request) {
	branchID, err := uuid.Parse(chi.URLParam(r, "bid"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid branch ID"})
		return
	}

	services, err := h.store.ListCatalogServicesByBranch(r.Context(), branchID)
	if err != nil {
		log.Printf("ERROR: list catalog services: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	resp := make([]catalogServiceResponse, len(services))
	for i, s := range services {
		resp[i] = toCatalogServiceResponse(s)
	}

	writeJSON(w, http.StatusOK, resp)
}

// Create adds a new service to the branch catalog.
func (h *CatalogHandler) Create(w http.ResponseWriter, r *http.Request) {
	branchID, err := uuid.Parse(chi.URLParam(r, "bid"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid branch ID"})
		return
	}

	var req catalogServiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	name, description, price, errMsg := req.toParams()
	if errMsg != "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": errMsg})
		return
	}

	service, err := h.store.CreateCatalogService(r.Context(), database.CreateCatalogServiceParams{
		BranchID:     branchID,
		Name:         name,
		Description:  description,
		DefaultPrice: price,
	})
	if err != nil {
		log.Printf("ERROR: create catalog service: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, http.StatusCreated, toCatalogServiceResponse(service))
}

// Update modifies an existing catalog service.
func (h *CatalogHandler) Update(w http.ResponseWriter, r *http.Request) {
	branchID, err := uuid.Parse(chi.URLParam(r, "bid"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid branch ID"})
		return
	}

	serviceID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid service ID"})
		return
	}

	var req catalogServiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	name, description, price, errMsg := req.toParams()
	if errMsg != "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": errMsg})
		return
	}

	service, err := h.store.UpdateCatalogService(r.Context(), database.UpdateCatalogServiceParams{
		Name:         name,
		Description:  description,
		DefaultPrice: price,
		ID:           serviceID,
		BranchID:     branchID,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "catalog service not found"})
			return
		}
		log.Printf("ERROR: update catalog service: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, toCatalogServiceResponse(service))
}

// Delete soft-deletes a catalog service by setting is_active=false.
func (h *CatalogHandler) Delete(w http.ResponseWriter, r *http.Request) {
	branchID, err := uuid.Parse(chi.URLParam(r, "bid"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid branch ID"})
		return
	}

	serviceID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid service ID"})
		return
	}

	_, err = h.store.SoftDeleteCatalogService(r.Context(), database.SoftDeleteCatalogServiceParams{
		ID:       serviceID,
		BranchID: branchID,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "catalog service not found"})
			return
		}
		log.Printf("ERROR: delete catalog service: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
