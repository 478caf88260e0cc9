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
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
	"github.com/taller-pos/api/internal/database"
)

// ProductStore defines the database methods needed by product handlers.
// Satisfied by *database.Queries; narrow interface for testability.
type ProductStore interface {
	ListProductsByBranch(ctx context.Context, branchID uuid.UUID) ([]database.Product, error)
	GetProduct(ctx context.Context, arg database.GetProductParams) (database.Product, error)
	GetProductByBarcode(ctx context.Context, arg database.GetProductByBarcodeParams) (database.Product, error)
	CreateProduct(ctx context.Context, arg database.CreateProductParams) (database.Product, error)
	UpdateProduct(ctx context.Context, arg database.UpdateProductParams) (database.Product, error)
	SoftDeleteProduct(ctx context.Context, arg database.SoftDeleteProductParams) (uuid.UUID, error)
}

// ProductHandler handles inventory product endpoints.
type ProductHandler struct {
	store ProductStore
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(store ProductStore) *ProductHandler {
	return &ProductHandler{store: store}
}

// RegisterRoutes registers product endpoints on the given Chi router.
// Expected to be mounted inside a branch-scoped subrouter: /branches/{bid}/products
func (h *ProductHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/barcode/{code}", h.GetByBarcode)
	r.Route("/{id}", func(r chi.Router) {
		r.Get("/", h.Get)
		r.Put("/", h.Update)
		r.Delete("/", h.Delete)
	})
}

// --- Request / Response types ---

type productRequest struct {
	CategoryID string `json:"category_id"`
	Barcode    string `json:"barcode"`
	Name       string `json:"name"`
	Brand      string `json:"brand"`
	Model      string `json:"model"`
	CostPrice  string `json:"cost_price"`
	SalePrice  string `json:"sale_price"`
	Stock      int32  `json:"stock"`
	MinStock   int32  `json:"min_stock"`
}

type productResponse struct {
	ID         uuid.UUID `json:"id"`
	BranchID   uuid.UUID `json:"branch_id"`
	CategoryID uuid.UUID `json:"category_id"`
	Barcode    *string   `json:"barcode"`
	Name       string    `json:"name"`
	Brand      *string   `json:"brand"`
	Model      *string   `json:"model"`
	CostPrice  string    `json:"cost_price"`
	SalePrice  string    `json:"sale_price"`
	Stock      int32     `json:"stock"`
	MinStock   int32     `json:"min_stock"`
	IsActive   bool      `json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func toProductResponse(p database.Product) productResponse {
	resp := productResponse{
		ID:         p.ID,
		BranchID:   p.BranchID,
		CategoryID: p.CategoryID,
		Name:       p.Name,
		CostPrice:  numericToString(p.CostPrice),
		SalePrice:  numericToString(p.SalePrice),
		Stock:      p.Stock,
		MinStock:   p.MinStock,
		IsActive:   p.IsActive,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
	if p.Barcode.Valid {
		resp.Barcode = &p.Barcode.String
	}
	if p.Brand.Valid {
		resp.Brand = &p.Brand.String
	}
	if p.Model.Valid {
		resp.Model = &p.Model.String
	}
	return resp
}

// --- Helpers ---

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}

var errNegativePrice = errors.New("negative price")

func parsePrice(s string) (pgtype.Numeric, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return pgtype.Numeric{}, err
	}
	if d.IsNegative() {
		return pgtype.Numeric{}, errNegativePrice
	}
	var n pgtype.Numeric
	if err := n.Scan(d.String()); err != nil {
		return pgtype.Numeric{}, err
	}
	return n, nil
}

func optionalText(s string) pgtype.Text {
	if s == "" {
		return pgtype.Text{}
	}
	return pgtype.Text{String: s, Valid: true}
}

// --- Handlers ---

// List returns all active products for the given branch.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	branchID, err := uuid.Parse(chi.URLParam(r, "bid"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid branch ID"})
		return
	}

	products, err := h.store.ListProductsByBranch(r.Context(), branchID)
	if err != nil {
		log.Printf("ERROR: list products: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	resp := make([]productResponse, len(products))
	for i, p := range products {
		resp[i] = toProductResponse(p)
	}

	writeJSON(w, http.StatusOK, resp)
}

// Get returns a single product by ID.
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	branchID, err := uuid.Parse(chi.URLParam(r, "bid"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid branch ID"})
		return
	}

	productID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid product ID"})
		return
	}

	product, err := h.store.GetProduct(r.Context(), database.GetProductParams{
		ID:       productID,
		BranchID: branchID,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "product not found"})
			return
		}
		log.Printf("ERROR: get product: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, toProductResponse(product))
}

// GetByBarcode looks up a product by its barcode, used by the POS scanner.
func (h *ProductHandler) GetByBarcode(w http.ResponseWriter, r *http.Request) {
	branchID, err := uuid.Parse(chi.URLParam(r, "bid"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid branch ID"})
		return
	}

	code := chi.URLParam(r, "code")
	if code == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "barcode is required"})
		return
	}

	product, err := h.store.GetProductByBarcode(r.Context(), database.GetProductByBarcodeParams{
		BranchID: branchID,
		Barcode:  pgtype.Text{String: code, Valid: true},
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "product not found"})
			return
		}
		log.Printf("ERROR: get product by barcode: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, toProductResponse(product))
}

// Create adds a new product to the given branch.
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	branchID, err := uuid.Parse(chi.URLParam(r, "bid"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid branch ID"})
		return
	}

	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	params, errMsg := h.buildParams(branchID, req)
	if errMsg != "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": errMsg})
		return
	}

	product, err := h.store.CreateProduct(r.Context(), database.CreateProductParams{
		BranchID:   branchID,
		CategoryID: params.CategoryID,
		Barcode:    params.Barcode,
		Name:       params.Name,
		Brand:      params.Brand,
		Model:      params.Model,
		CostPrice:  params.CostPrice,
		SalePrice:  params.SalePrice,
		Stock:      params.Stock,
		MinStock:   params.MinStock,
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			writeJSON(w, http.StatusConflict, map[string]string{"error": "barcode already exists for this branch"})
			return
		}
		if isForeignKeyViolation(err) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "category not found"})
			return
		}
		log.Printf("ERROR: create product: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, http.StatusCreated, toProductResponse(product))
}

// Update modifies an existing product.
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	branchID, err := uuid.Parse(chi.URLParam(r, "bid"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid branch ID"})
		return
	}

	productID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid product ID"})
		return
	}

	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	params, errMsg := h.buildParams(branchID, req)
	if errMsg != "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": errMsg})
		return
	}

	product, err := h.store.UpdateProduct(r.Context(), database.UpdateProductParams{
		CategoryID: params.CategoryID,
		Barcode:    params.Barcode,
		Name:       params.Name,
		Brand:      params.Brand,
		Model:      params.Model,
		CostPrice:  params.CostPrice,
		SalePrice:  params.SalePrice,
		Stock:      params.Stock,
		MinStock:   params.MinStock,
		ID:         productID,
		BranchID:   branchID,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "product not found"})
			return
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			writeJSON(w, http.StatusConflict, map[string]string{"error": "barcode already exists for this branch"})
			return
		}
		if isForeignKeyViolation(err) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "category not found"})
			return
		}
		log.Printf("ERROR: update product: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, toProductResponse(product))
}

// Delete soft-deletes a product by setting is_active=false. Past sale items
// keep their snapshot of the product name and price.
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	branchID, err := uuid.Parse(chi.URLParam(r, "bid"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid branch ID"})
		return
	}

	productID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid product ID"})
		return
	}

	_, err = h.store.SoftDeleteProduct(r.Context(), database.SoftDeleteProductParams{
		ID:       productID,
		BranchID: branchID,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "product not found"})
			return
		}
		log.Printf("ERROR: delete product: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type productParams struct {
	CategoryID uuid.UUID
	Barcode    pgtype.Text
	Name       string
	Brand      pgtype.Text
	Model      pgtype.Text
	CostPrice  pgtype.Numeric
	SalePrice  pgtype.Numeric
	Stock      int32
	MinStock   int32
}

func (h *ProductHandler) buildParams(branchID uuid.UUID, req productRequest) (productParams, string) {
	if req.Name == "" {
		return productParams{}, "name is required"
	}

	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		return productParams{}, "invalid category ID"
	}

	if req.SalePrice == "" {
		return productParams{}, "sale_price is required"
	}
	salePrice, err := parsePrice(req.SalePrice)
	if err != nil {
		return productParams{}, "invalid sale_price"
	}

	costPrice := pgtype.Numeric{}
	if req.CostPrice != "" {
		costPrice, err = parsePrice(req.CostPrice)
		if err != nil {
			return productParams{}, "invalid cost_price"
		}
	} else {
		// Unset cost defaults to zero rather than NULL.
		costPrice, _ = parsePrice("0")
	}

	if req.Stock < 0 {
		return productParams{}, "stock cannot be negative"
	}
	if req.MinStock < 0 {
		return productParams{}, "min_stock cannot be negative"
	}

	return productParams{
		CategoryID: categoryID,
		Barcode:    optionalText(req.Barcode),
		Name:       req.Name,
		Brand:      optionalText(req.Brand),
		Model:      optionalText(req.Model),
		CostPrice:  costPrice,
		SalePrice:  salePrice,
		Stock:      req.Stock,
		MinStock:   req.MinStock,
	}, ""
}
