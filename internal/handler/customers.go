package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/taller-pos/api/internal/database"
)

// CustomerStore defines the database methods needed by customer handlers.
// Satisfied by *database.Queries; narrow interface for testability.
type CustomerStore interface {
	ListCustomersByBranch(ctx context.Context, branchID uuid.UUID) ([]database.Customer, error)
	GetCustomer(ctx context.Context, arg database.GetCustomerParams) (database.Customer, error)
	GetCustomerByEmailPhone(ctx context.Context, arg database.GetCustomerByEmailPhoneParams) (database.Customer, error)
	CreateCustomer(ctx context.Context, arg database.CreateCustomerParams) (database.Customer, error)
	UpdateCustomer(ctx context.Context, arg database.UpdateCustomerParams) (database.Customer, error)
	DeleteCustomer(ctx context.Context, arg database.DeleteCustomerParams) (uuid.UUID, error)
}

// CustomerHandler handles customer CRUD endpoints.
type CustomerHandler struct {
	store CustomerStore
}

// NewCustomerHandler creates a new CustomerHandler.
func NewCustomerHandler(store CustomerStore) *CustomerHandler {
	return &CustomerHandler{store: store}
}

// RegisterRoutes registers customer CRUD endpoints on the given Chi router.
// Expected to be mounted inside a branch-scoped subrouter: /branches/{bid}/customers
func (h *CustomerHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Route("/{id}", func(r chi.Router) {
		r.Get("/", h.Get)
		r.Put("/", h.Update)
		r.Delete("/", h.Delete)
	})
}

// --- Request / Response types ---

type customerRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	CountryCode string `json:"country_code"`
	DocumentID  string `json:"document_id"`
	Address     string `json:"address"`
}

type customerResponse struct {
	ID          uuid.UUID `json:"id"`
	BranchID    uuid.UUID `json:"branch_id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	CountryCode string    `json:"country_code"`
	DocumentID  *string   `json:"document_id"`
	Address     *string   `json:"address"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toCustomerResponse(c database.Customer) customerResponse {
	resp := customerResponse{
		ID:          c.ID,
		BranchID:    c.BranchID,
		Name:        c.Name,
		Email:       c.Email,
		Phone:       c.Phone,
		CountryCode: c.CountryCode,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
	if c.DocumentID.Valid {
		resp.DocumentID = &c.DocumentID.String
	}
	if c.Address.Valid {
		resp.Address = &c.Address.String
	}
	return resp
}

func (req *customerRequest) normalize() {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Phone = strings.TrimSpace(req.Phone)
	req.CountryCode = strings.TrimSpace(req.CountryCode)
	if req.CountryCode == "" {
		req.CountryCode = "+56"
	}
}

func (req *customerRequest) validate() string {
	if req.Name == "" {
		return "name is required"
	}
	if req.Email == "" {
		return "email is required"
	}
	if !strings.Contains(req.Email, "@") {
		return "invalid email"
	}
	if req.Phone == "" {
		return "phone is required"
	}
	return ""
}

// --- Handlers ---

// List returns all customers for the given branch.
func (h *CustomerHandler) List(w http.ResponseWriter, r *http.Request) {
	branchID, err := uuid.Parse(chi.URLParam(r, "bid"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid branch ID"})
		return
	}

	customers, err := h.store.ListCustomersByBranch(r.Context(), branchID)
	if err != nil {
		log.Printf("ERROR: list customers: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	resp := make([]customerResponse, len(customers))
	for i, c := range customers {
		resp[i] = toCustomerResponse(c)
	}

	writeJSON(w, http.StatusOK, resp)
}

// Get returns a single customer by ID.
func (h *CustomerHandler) Get(w http.ResponseWriter, r *http.Request) {
	branchID, err := uuid.Parse(chi.URLParam(r, "bid"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid branch ID"})
		return
	}

	customerID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid customer ID"})
		return
	}

	customer, err := h.store.GetCustomer(r.Context(), database.GetCustomerParams{
		ID:       customerID,
		BranchID: branchID,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "customer not found"})
			return
		}
		log.Printf("ERROR: get customer: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, toCustomerResponse(customer))
}

// Create registers a customer in the given branch. When a customer with the
// same email and phone already exists the existing record is returned with
// 200 instead of creating a duplicate.
func (h *CustomerHandler) Create(w http.ResponseWriter, r *http.Request) {
	branchID, err := uuid.Parse(chi.URLParam(r, "bid"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid branch ID"})
		return
	}

	var req customerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	req.normalize()
	if msg := req.validate(); msg != "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": msg})
		return
	}

	existing, err := h.store.GetCustomerByEmailPhone(r.Context(), database.GetCustomerByEmailPhoneParams{
		BranchID: branchID,
		Email:    req.Email,
		Phone:    req.Phone,
	})
	if err == nil {
		writeJSON(w, http.StatusOK, toCustomerResponse(existing))
		return
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		log.Printf("ERROR: lookup customer: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	var documentID pgtype.Text
	if req.DocumentID != "" {
		documentID = pgtype.Text{String: req.DocumentID, Valid: true}
	}

	var address pgtype.Text
	if req.Address != "" {
		address = pgtype.Text{String: req.Address, Valid: true}
	}

	customer, err := h.store.CreateCustomer(r.Context(), database.CreateCustomerParams{
		BranchID:    branchID,
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		CountryCode: req.CountryCode,
		DocumentID:  documentID,
		Address:     address,
	})
	if err != nil {
		log.Printf("ERROR: create customer: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, http.StatusCreated, toCustomerResponse(customer))
}

// Update modifies an existing customer in the given branch.
func (h *CustomerHandler) Update(w http.ResponseWriter, r *http.Request) {
	branchID, err := uuid.Parse(chi.URLParam(r, "bid"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid branch ID"})
		return
	}

	customerID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid customer ID"})
		return
	}

	var req customerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	req.normalize()
	if msg := req.validate(); msg != "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": msg})
		return
	}

	var documentID pgtype.Text
	if req.DocumentID != "" {
		documentID = pgtype.Text{String: req.DocumentID, Valid: true}
	}

	var address pgtype.Text
	if req.Address != "" {
		address = pgtype.Text{String: req.Address, Valid: true}
	}

	customer, err := h.store.UpdateCustomer(r.Context(), database.UpdateCustomerParams{
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		CountryCode: req.CountryCode,
		DocumentID:  documentID,
		Address:     address,
		ID:          customerID,
		BranchID:    branchID,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "customer not found"})
			return
		}
		log.Printf("ERROR: update customer: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, toCustomerResponse(customer))
}

// Delete removes a customer that has no orders yet.
func (h *CustomerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	branchID, err := uuid.Parse(chi.URLParam(r, "bid"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid branch ID"})
		return
	}

	customerID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid customer ID"})
		return
	}

	_, err = h.store.DeleteCustomer(r.Context(), database.DeleteCustomerParams{
		ID:       customerID,
		BranchID: branchID,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "customer not found"})
			return
		}
		if isForeignKeyViolation(err) {
			writeJSON(w, http.StatusConflict, map[string]string{"error": "customer has orders and cannot be deleted"})
			return
		}
		log.Printf("ERROR: delete customer: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// writeJSON writes v as a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("ERROR: encoding response: %v", err)
	}
}
