package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
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

type mockCustomerStore struct {
	customers map[uuid.UUID]database.Customer // keyed by customer ID
	hasOrders map[uuid.UUID]bool              // customers referenced by orders
}

func newMockCustomerStore() *mockCustomerStore {
	return &mockCustomerStore{
		customers: make(map[uuid.UUID]database.Customer),
		hasOrders: make(map[uuid.UUID]bool),
	}
}

func (m *mockCustomerStore) ListCustomersByBranch(_ context.Context, branchID uuid.UUID) ([]database.Customer, error) {
	var result []database.Customer
	for _, c := range m.customers {
		if c.BranchID == branchID {
			result = append(result, c)
		}
	}
	return result, nil
}

func (m *mockCustomerStore) GetCustomer(_ context.Context, arg database.GetCustomerParams) (database.Customer, error) {
	c, ok := m.customers[arg.ID]
	if !ok || c.BranchID != arg.BranchID {
		return database.Customer{}, pgx.ErrNoRows
	}
	return c, nil
}

func (m *mockCustomerStore) GetCustomerByEmailPhone(_ context.Context, arg database.GetCustomerByEmailPhoneParams) (database.Customer, error) {
	for _, c := range m.customers {
		if c.BranchID == arg.BranchID && c.Email == arg.Email && c.Phone == arg.Phone {
			return c, nil
		}
	}
	return database.Customer{}, pgx.ErrNoRows
}

func (m *mockCustomerStore) CreateCustomer(_ context.Context, arg database.CreateCustomerParams) (database.Customer, error) {
	c := database.Customer{
		ID:          uuid.New(),
		BranchID:    arg.BranchID,
		Name:        arg.Name,
		Email:       arg.Email,
		Phone:       arg.Phone,
		CountryCode: arg.CountryCode,
		DocumentID:  arg.DocumentID,
		Address:     arg.Address,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	m.customers[c.ID] = c
	return c, nil
}

func (m *mockCustomerStore) UpdateCustomer(_ context.Context, arg database.UpdateCustomerParams) (database.Customer, error) {
	c, ok := m.customers[arg.ID]
	if !ok || c.BranchID != arg.BranchID {
		return database.Customer{}, pgx.ErrNoRows
	}
	c.Name = arg.Name
	c.Email = arg.Email
	c.Phone = arg.Phone
	c.CountryCode = arg.CountryCode
	c.DocumentID = arg.DocumentID
	c.Address = arg.Address
	c.UpdatedAt = time.Now()
	m.customers[c.ID] = c
	return c, nil
}

func (m *mockCustomerStore) DeleteCustomer(_ context.Context, arg database.DeleteCustomerParams) (uuid.UUID, error) {
	c, ok := m.customers[arg.ID]
	if !ok || c.BranchID != arg.BranchID {
		return uuid.Nil, pgx.ErrNoRows
	}
	if m.hasOrders[arg.ID] {
		return uuid.Nil, &pgconn.PgError{Code: "23503"}
	}
	delete(m.customers, arg.ID)
	return c.ID, nil
}

// --- Helpers ---

func setupCustomerRouter(store *mockCustomerStore) *chi.Mux {
	h := handler.NewCustomerHandler(store)
	r := chi.NewRouter()
	r.Route("/branches/{bid}/customers", h.RegisterRoutes)
	return r
}

func decodeJSONObject(t *testing.T, rr *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp
}

func decodeJSONList(t *testing.T, rr *httptest.ResponseRecorder) []map[string]interface{} {
	t.Helper()
	var resp []map[string]interface{}
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp
}

func doJSONRequest(t *testing.T, router http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request: %v", err)
		}
		req = httptest.NewRequest(method, path, bytes.NewReader(b))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func testCustomer(branchID uuid.UUID) database.Customer {
	return database.Customer{
		ID:          uuid.New(),
		BranchID:    branchID,
		Name:        "María González",
		Email:       "maria@example.com",
		Phone:       "912345678",
		CountryCode: "+56",
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
}

// --- Tests ---

func TestCustomerList(t *testing.T) {
	store := newMockCustomerStore()
	router := setupCustomerRouter(store)

	branchID := uuid.New()
	c1 := testCustomer(branchID)
	c2 := testCustomer(branchID)
	c2.Email = "pedro@example.com"
	other := testCustomer(uuid.New())
	store.customers[c1.ID] = c1
	store.customers[c2.ID] = c2
	store.customers[other.ID] = other

	rr := doJSONRequest(t, router, http.MethodGet, "/branches/"+branchID.String()+"/customers", nil)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	resp := decodeJSONList(t, rr)
	if len(resp) != 2 {
		t.Errorf("expected 2 customers, got %d", len(resp))
	}
}

func TestCustomerListInvalidBranchID(t *testing.T) {
	store := newMockCustomerStore()
	router := setupCustomerRouter(store)

	rr := doJSONRequest(t, router, http.MethodGet, "/branches/invalid/customers", nil)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rr.Code)
	}
}

func TestCustomerGet(t *testing.T) {
	store := newMockCustomerStore()
	router := setupCustomerRouter(store)

	branchID := uuid.New()
	c := testCustomer(branchID)
	c.DocumentID = pgtype.Text{String: "12.345.678-9", Valid: true}
	store.customers[c.ID] = c

	rr := doJSONRequest(t, router, http.MethodGet, "/branches/"+branchID.String()+"/customers/"+c.ID.String(), nil)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d; body: %s", rr.Code, rr.Body.String())
	}
	resp := decodeJSONObject(t, rr)
	if resp["name"] != "María González" {
		t.Errorf("name: got %v, want María González", resp["name"])
	}
	if resp["document_id"] != "12.345.678-9" {
		t.Errorf("document_id: got %v, want 12.345.678-9", resp["document_id"])
	}
}

func TestCustomerGetNotFound(t *testing.T) {
	store := newMockCustomerStore()
	router := setupCustomerRouter(store)

	branchID := uuid.New()
	rr := doJSONRequest(t, router, http.MethodGet, "/branches/"+branchID.String()+"/customers/"+uuid.New().String(), nil)

	if rr.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", rr.Code)
	}
}

func TestCustomerGetWrongBranch(t *testing.T) {
	store := newMockCustomerStore()
	router := setupCustomerRouter(store)

	c := testCustomer(uuid.New())
	store.customers[c.ID] = c

	// Look up through a different branch.
	rr := doJSONRequest(t, router, http.MethodGet, "/branches/"+uuid.New().String()+"/customers/"+c.ID.String(), nil)

	if rr.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", rr.Code)
	}
}

func TestCustomerCreate(t *testing.T) {
	store := newMockCustomerStore()
	router := setupCustomerRouter(store)

	branchID := uuid.New()
	body := map[string]interface{}{
		"name":  "Juan Pérez",
		"email": "juan@example.com",
		"phone": "987654321",
	}

	rr := doJSONRequest(t, router, http.MethodPost, "/branches/"+branchID.String()+"/customers", body)

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d; body: %s", rr.Code, rr.Body.String())
	}
	resp := decodeJSONObject(t, rr)
	if resp["name"] != "Juan Pérez" {
		t.Errorf("name: got %v, want Juan Pérez", resp["name"])
	}
	if resp["country_code"] != "+56" {
		t.Errorf("country_code: got %v, want default +56", resp["country_code"])
	}
}

func TestCustomerCreateNormalizesEmail(t *testing.T) {
	store := newMockCustomerStore()
	router := setupCustomerRouter(store)

	branchID := uuid.New()
	body := map[string]interface{}{
		"name":  "Juan Pérez",
		"email": "  Juan@Example.COM ",
		"phone": "987654321",
	}

	rr := doJSONRequest(t, router, http.MethodPost, "/branches/"+branchID.String()+"/customers", body)

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", rr.Code)
	}
	resp := decodeJSONObject(t, rr)
	if resp["email"] != "juan@example.com" {
		t.Errorf("email: got %v, want juan@example.com", resp["email"])
	}
}

func TestCustomerCreateReturnsExisting(t *testing.T) {
	store := newMockCustomerStore()
	router := setupCustomerRouter(store)

	branchID := uuid.New()
	existing := testCustomer(branchID)
	store.customers[existing.ID] = existing

	// Same email and phone must return the existing record, not create one.
	body := map[string]interface{}{
		"name":  "Maria G.",
		"email": "maria@example.com",
		"phone": "912345678",
	}

	rr := doJSONRequest(t, router, http.MethodPost, "/branches/"+branchID.String()+"/customers", body)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	resp := decodeJSONObject(t, rr)
	if resp["id"] != existing.ID.String() {
		t.Errorf("expected existing customer ID %s, got %v", existing.ID, resp["id"])
	}
	if len(store.customers) != 1 {
		t.Errorf("expected no new customer, store has %d", len(store.customers))
	}
}

func TestCustomerCreateMissingName(t *testing.T) {
	store := newMockCustomerStore()
	router := setupCustomerRouter(store)

	branchID := uuid.New()
	body := map[string]interface{}{
		"email": "juan@example.com",
		"phone": "987654321",
	}

	rr := doJSONRequest(t, router, http.MethodPost, "/branches/"+branchID.String()+"/customers", body)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rr.Code)
	}
	resp := decodeJSONObject(t, rr)
	if !strings.Contains(resp["error"].(string), "name is required") {
		t.Errorf("expected 'name is required' error, got %v", resp["error"])
	}
}

func TestCustomerCreateInvalidEmail(t *testing.T) {
	store := newMockCustomerStore()
	router := setupCustomerRouter(store)

	branchID := uuid.New()
	body := map[string]interface{}{
		"name":  "Juan Pérez",
		"email": "not-an-email",
		"phone": "987654321",
	}

	rr := doJSONRequest(t, router, http.MethodPost, "/branches/"+branchID.String()+"/customers", body)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rr.Code)
	}
	resp := decodeJSONObject(t, rr)
	if !strings.Contains(resp["error"].(string), "invalid email") {
		t.Errorf("expected 'invalid email' error, got %v", resp["error"])
	}
}

func TestCustomerCreateMissingPhone(t *testing.T) {
	store := newMockCustomerStore()
	router := setupCustomerRouter(store)

	branchID := uuid.New()
	body := map[string]interface{}{
		"name":  "Juan Pérez",
		"email": "juan@example.com",
	}

	rr := doJSONRequest(t, router, http.MethodPost, "/branches/"+branchID.String()+"/customers", body)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rr.Code)
	}
	resp := decodeJSONObject(t, rr)
	if !strings.Contains(resp["error"].(string), "phone is required") {
		t.Errorf("expected 'phone is required' error, got %v", resp["error"])
	}
}

func TestCustomerUpdate(t *testing.T) {
	store := newMockCustomerStore()
	router := setupCustomerRouter(store)

	branchID := uuid.New()
	c := testCustomer(branchID)
	store.customers[c.ID] = c

	body := map[string]interface{}{
		"name":    "María González de Pérez",
		"email":   "maria@example.com",
		"phone":   "912345678",
		"address": "Calle Falsa 123",
	}

	rr := doJSONRequest(t, router, http.MethodPut, "/branches/"+branchID.String()+"/customers/"+c.ID.String(), body)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d; body: %s", rr.Code, rr.Body.String())
	}
	resp := decodeJSONObject(t, rr)
	if resp["name"] != "María González de Pérez" {
		t.Errorf("name: got %v", resp["name"])
	}
	if resp["address"] != "Calle Falsa 123" {
		t.Errorf("address: got %v, want Calle Falsa 123", resp["address"])
	}
}

func TestCustomerUpdateNotFound(t *testing.T) {
	store := newMockCustomerStore()
	router := setupCustomerRouter(store)

	branchID := uuid.New()
	body := map[string]interface{}{
		"name":  "Juan Pérez",
		"email": "juan@example.com",
		"phone": "987654321",
	}

	rr := doJSONRequest(t, router, http.MethodPut, "/branches/"+branchID.String()+"/customers/"+uuid.New().String(), body)

	if rr.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", rr.Code)
	}
}

func TestCustomerDelete(t *testing.T) {
	store := newMockCustomerStore()
	router := setupCustomerRouter(store)

	branchID := uuid.New()
	c := testCustomer(branchID)
	store.customers[c.ID] = c

	rr := doJSONRequest(t, router, http.MethodDelete, "/branches/"+branchID.String()+"/customers/"+c.ID.String(), nil)

	if rr.Code != http.StatusNoContent {
		t.Errorf("expected status 204, got %d", rr.Code)
	}
	if _, ok := store.customers[c.ID]; ok {
		t.Error("expected customer to be deleted")
	}
}

func TestCustomerDeleteWithOrders(t *testing.T) {
	store := newMockCustomerStore()
	router := setupCustomerRouter(store)

	branchID := uuid.New()
	c := testCustomer(branchID)
	store.customers[c.ID] = c
	store.hasOrders[c.ID] = true

	rr := doJSONRequest(t, router, http.MethodDelete, "/branches/"+branchID.String()+"/customers/"+c.ID.String(), nil)

	if rr.Code != http.StatusConflict {
		t.Errorf("expected status 409, got %d", rr.Code)
	}
	resp := decodeJSONObject(t, rr)
	if !strings.Contains(resp["error"].(string), "customer has orders") {
		t.Errorf("expected 'customer has orders' error, got %v", resp["error"])
	}
}

func TestCustomerDeleteNotFound(t *testing.T) {
	store := newMockCustomerStore()
	router := setupCustomerRouter(store)

	branchID := uuid.New()
	rr := doJSONRequest(t, router, http.MethodDelete, "/branches/"+branchID.String()+"/customers/"+uuid.New().String(), nil)

	if rr.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", rr.Code)
	}
}
