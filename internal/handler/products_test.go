package handler_test

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/taller-pos/api/internal/database"
	"github.com/taller-pos/api/internal/handler"
)

// --- Mock store ---

type mockProductStore struct {
	products map[uuid.UUID]database.Product // keyed by product ID
}

func newMockProductStore() *mockProductStore {
	return &mockProductStore{products: make(map[uuid.UUID]database.Product)}
}

func (m *mockProductStore) ListProductsByBranch(_ context.Context, branchID uuid.UUID) ([]database.Product, error) {
	var result []database.Product
	for _, p := range m.products {
		if p.BranchID == branchID && p.IsActive {
			result = append(result, p)
		}
	}
	return result, nil
}

func (m *mockProductStore) GetProduct(_ context.Context, arg database.GetProductParams) (database.Product, error) {
	p, ok := m.products[arg.ID]
	if !ok || p.BranchID != arg.BranchID || !p.IsActive {
		return database.Product{}, pgx.ErrNoRows
	}
	return p, nil
}

func (m *mockProductStore) GetProductByBarcode(_ context.Context, arg database.GetProductByBarcodeParams) (database.Product, error) {
	for _, p := range m.products {
		if p.BranchID == arg.BranchID && p.Barcode.Valid && p.Barcode.String == arg.Barcode.String && p.IsActive {
			return p, nil
		}
	}
	return database.Product{}, pgx.ErrNoRows
}

func (m *mockProductStore) CreateProduct(_ context.Context, arg database.CreateProductParams) (database.Product, error) {
	if arg.Barcode.Valid {
		for _, p := range m.products {
			if p.BranchID == arg.BranchID && p.Barcode.Valid && p.Barcode.String == arg.Barcode.String {
				return database.Product{}, &pgconn.PgError{Code: "23505"}
			}
		}
	}
	p := database.Product{
		ID:         uuid.New(),
		BranchID:   arg.BranchID,
		CategoryID: arg.CategoryID,
		Barcode:    arg.Barcode,
		Name:       arg.Name,
		Brand:      arg.Brand,
		Model:      arg.Model,
		CostPrice:  arg.CostPrice,
		SalePrice:  arg.SalePrice,
		Stock:      arg.Stock,
		MinStock:   arg.MinStock,
		IsActive:   true,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
	m.products[p.ID] = p
	return p, nil
}

func (m *mockProductStore) UpdateProduct(_ context.Context, arg database.UpdateProductParams) (database.Product, error) {
	p, ok := m.products[arg.ID]
	if !ok || p.BranchID != arg.BranchID || !p.IsActive {
		return database.Product{}, pgx.ErrNoRows
	}
	p.CategoryID = arg.CategoryID
	p.Barcode = arg.Barcode
	p.Name = arg.Name
	p.Brand = arg.Brand
	p.Model = arg.Model
	p.CostPrice = arg.CostPrice
	p.SalePrice = arg.SalePrice
	p.Stock = arg.Stock
	p.MinStock = arg.MinStock
	p.UpdatedAt = time.Now()
	m.products[p.ID] = p
	return p, nil
}

func (m *mockProductStore) SoftDeleteProduct(_ context.Context, arg database.SoftDeleteProductParams) (uuid.UUID, error) {
	p, ok := m.products[arg.ID]
	if !ok || p.BranchID != arg.BranchID || !p.IsActive {
		return uuid.Nil, pgx.ErrNoRows
	}
	p.IsActive = false
	m.products[p.ID] = p
	return p.ID, nil
}

// --- Helpers ---

func setupProductRouter(store *mockProductStore) *chi.Mux {
	h := handler.NewProductHandler(store)
	r := chi.NewRouter()
	r.Route("/branches/{bid}/products", h.RegisterRoutes)
	return r
}

func testProduct(t *testing.T, branchID uuid.UUID) database.Product {
	t.Helper()
	return database.Product{
		ID:         uuid.New(),
		BranchID:   branchID,
		CategoryID: uuid.New(),
		Barcode:    pgtype.Text{String: "7801234567890", Valid: true},
		Name:       "Cargador USB-C 20W",
		CostPrice:  testNumeric(t, "3000.00"),
		SalePrice:  testNumeric(t, "5990.00"),
		Stock:      12,
		MinStock:   3,
		IsActive:   true,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
}

// --- Tests ---

func TestProductList(t *testing.T) {
	store := newMockProductStore()
	router := setupProductRouter(store)

	branchID := uuid.New()
	p1 := testProduct(t, branchID)
	inactive := testProduct(t, branchID)
	inactive.IsActive = false
	store.products[p1.ID] = p1
	store.products[inactive.ID] = inactive

	rr := doJSONRequest(t, router, http.MethodGet, "/branches/"+branchID.String()+"/products", nil)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	resp := decodeJSONList(t, rr)
	if len(resp) != 1 {
		t.Errorf("expected 1 active product, got %d", len(resp))
	}
}

func TestProductGetByBarcode(t *testing.T) {
	store := newMockProductStore()
	router := setupProductRouter(store)

	branchID := uuid.New()
	p := testProduct(t, branchID)
	store.products[p.ID] = p

	rr := doJSONRequest(t, router, http.MethodGet, "/branches/"+branchID.String()+"/products/barcode/7801234567890", nil)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d; body: %s", rr.Code, rr.Body.String())
	}
	resp := decodeJSONObject(t, rr)
	if resp["name"] != "Cargador USB-C 20W" {
		t.Errorf("name: got %v", resp["name"])
	}
}

func TestProductGetByBarcodeNotFound(t *testing.T) {
	store := newMockProductStore()
	router := setupProductRouter(store)

	branchID := uuid.New()
	rr := doJSONRequest(t, router, http.MethodGet, "/branches/"+branchID.String()+"/products/barcode/000", nil)

	if rr.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", rr.Code)
	}
}

func TestProductCreate(t *testing.T) {
	store := newMockProductStore()
	router := setupProductRouter(store)

	branchID := uuid.New()
	body := map[string]interface{}{
		"category_id": uuid.New().String(),
		"name":        "Funda silicona",
		"sale_price":  "4990",
		"stock":       5,
	}

	rr := doJSONRequest(t, router, http.MethodPost, "/branches/"+branchID.String()+"/products", body)

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d; body: %s", rr.Code, rr.Body.String())
	}
	resp := decodeJSONObject(t, rr)
	if resp["sale_price"] != "4990.00" {
		t.Errorf("sale_price: got %v, want 4990.00", resp["sale_price"])
	}
	if resp["cost_price"] != "0.00" {
		t.Errorf("cost_price: got %v, want default 0.00", resp["cost_price"])
	}
}

func TestProductCreateMissingName(t *testing.T) {
	store := newMockProductStore()
	router := setupProductRouter(store)

	branchID := uuid.New()
	body := map[string]interface{}{
		"category_id": uuid.New().String(),
		"sale_price":  "4990",
	}

	rr := doJSONRequest(t, router, http.MethodPost, "/branches/"+branchID.String()+"/products", body)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rr.Code)
	}
}

func TestProductCreateMissingSalePrice(t *testing.T) {
	store := newMockProductStore()
	router := setupProductRouter(store)

	branchID := uuid.New()
	body := map[string]interface{}{
		"category_id": uuid.New().String(),
		"name":        "Funda silicona",
	}

	rr := doJSONRequest(t, router, http.MethodPost, "/branches/"+branchID.String()+"/products", body)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rr.Code)
	}
	resp := decodeJSONObject(t, rr)
	if !strings.Contains(resp["error"].(string), "sale_price is required") {
		t.Errorf("expected 'sale_price is required' error, got %v", resp["error"])
	}
}

func TestProductCreateNegativePrice(t *testing.T) {
	store := newMockProductStore()
	router := setupProductRouter(store)

	branchID := uuid.New()
	body := map[string]interface{}{
		"category_id": uuid.New().String(),
		"name":        "Funda silicona",
		"sale_price":  "-100",
	}

	rr := doJSONRequest(t, router, http.MethodPost, "/branches/"+branchID.String()+"/products", body)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rr.Code)
	}
	resp := decodeJSONObject(t, rr)
	if !strings.Contains(resp["error"].(string), "invalid sale_price") {
		t.Errorf("expected 'invalid sale_price' error, got %v", resp["error"])
	}
}

func TestProductCreateNegativeStock(t *testing.T) {
	store := newMockProductStore()
	router := setupProductRouter(store)

	branchID := uuid.New()
	body := map[string]interface{}{
		"category_id": uuid.New().String(),
		"name":        "Funda silicona",
		"sale_price":  "4990",
		"stock":       -1,
	}

	rr := doJSONRequest(t, router, http.MethodPost, "/branches/"+branchID.String()+"/products", body)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rr.Code)
	}
}

func TestProductCreateDuplicateBarcode(t *testing.T) {
	store := newMockProductStore()
	router := setupProductRouter(store)

	branchID := uuid.New()
	existing := testProduct(t, branchID)
	store.products[existing.ID] = existing

	body := map[string]interface{}{
		"category_id": uuid.New().String(),
		"name":        "Otro cargador",
		"sale_price":  "6990",
		"barcode":     "7801234567890",
	}

	rr := doJSONRequest(t, router, http.MethodPost, "/branches/"+branchID.String()+"/products", body)

	if rr.Code != http.StatusConflict {
		t.Errorf("expected status 409, got %d", rr.Code)
	}
	resp := decodeJSONObject(t, rr)
	if !strings.Contains(resp["error"].(string), "barcode already exists") {
		t.Errorf("expected 'barcode already exists' error, got %v", resp["error"])
	}
}

func TestProductUpdateNotFound(t *testing.T) {
	store := newMockProductStore()
	router := setupProductRouter(store)

	branchID := uuid.New()
	body := map[string]interface{}{
		"category_id": uuid.New().String(),
		"name":        "Funda silicona",
		"sale_price":  "4990",
	}

	rr := doJSONRequest(t, router, http.MethodPut, "/branches/"+branchID.String()+"/products/"+uuid.New().String(), body)

	if rr.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", rr.Code)
	}
}

func TestProductDelete(t *testing.T) {
	store := newMockProductStore()
	router := setupProductRouter(store)

	branchID := uuid.New()
	p := testProduct(t, branchID)
	store.products[p.ID] = p

	rr := doJSONRequest(t, router, http.MethodDelete, "/branches/"+branchID.String()+"/products/"+p.ID.String(), nil)

	if rr.Code != http.StatusNoContent {
		t.Errorf("expected status 204, got %d", rr.Code)
	}
	if store.products[p.ID].IsActive {
		t.Error("expected product to be soft deleted")
	}
}
