package handler_test

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/taller-pos/api/internal/database"
	"github.com/taller-pos/api/internal/handler"
	"github.com/taller-pos/api/internal/middleware"
)

type mockDocumentStore struct {
	getBranchFn    func(ctx context.Context, id uuid.UUID) (database.Branch, error)
	getOrderFn     func(ctx context.Context, arg database.GetOrderParams) (database.Order, error)
	getCustomerFn  func(ctx context.Context, arg database.GetCustomerParams) (database.Customer, error)
	listServicesFn func(ctx context.Context, orderID uuid.UUID) ([]database.OrderService, error)
}

func (m *mockDocumentStore) GetBranch(ctx context.Context, id uuid.UUID) (database.Branch, error) {
	if m.getBranchFn != nil {
		return m.getBranchFn(ctx, id)
	}
	return database.Branch{ID: id, Name: "Taller Central"}, nil
}

func (m *mockDocumentStore) GetOrder(ctx context.Context, arg database.GetOrderParams) (database.Order, error) {
	if m.getOrderFn != nil {
		return m.getOrderFn(ctx, arg)
	}
	return database.Order{}, pgx.ErrNoRows
}

func (m *mockDocumentStore) GetCustomer(ctx context.Context, arg database.GetCustomerParams) (database.Customer, error) {
	if m.getCustomerFn != nil {
		return m.getCustomerFn(ctx, arg)
	}
	return database.Customer{}, pgx.ErrNoRows
}

func (m *mockDocumentStore) ListOrderServicesByOrder(ctx context.Context, orderID uuid.UUID) ([]database.OrderService, error) {
	if m.listServicesFn != nil {
		return m.listServicesFn(ctx, orderID)
	}
	return nil, nil
}

// docStoreForOrder wires a store that resolves the given order, its customer
// and service lines the way the real queries would.
func docStoreForOrder(t *testing.T, order database.Order, customer database.Customer, services []database.OrderService) *mockDocumentStore {
	t.Helper()
	return &mockDocumentStore{
		getOrderFn: func(ctx context.Context, arg database.GetOrderParams) (database.Order, error) {
			if arg.ID != order.ID || arg.BranchID != order.BranchID {
				return database.Order{}, pgx.ErrNoRows
			}
			return order, nil
		},
		getCustomerFn: func(ctx context.Context, arg database.GetCustomerParams) (database.Customer, error) {
			if arg.ID != customer.ID {
				return database.Customer{}, pgx.ErrNoRows
			}
			return customer, nil
		},
		listServicesFn: func(ctx context.Context, orderID uuid.UUID) ([]database.OrderService, error) {
			return services, nil
		},
	}
}

func setupDocumentRouter(store handler.DocumentStore) http.Handler {
	h := handler.NewDocumentHandler(store, nil)
	r := chi.NewRouter()
	r.Use(middleware.Authenticate(testJWTSecret))
	r.Route("/branches/{bid}/orders", h.RegisterRoutes)
	return r
}

func checkPDFResponse(t *testing.T, rr *bytes.Buffer, contentType string) {
	t.Helper()
	if contentType != "application/pdf" {
		t.Fatalf("expected content type application/pdf, got %q", contentType)
	}
	if !bytes.HasPrefix(rr.Bytes(), []byte("%PDF")) {
		t.Fatalf("response body is not a PDF")
	}
}

func TestDocumentWorkOrder(t *testing.T) {
	branchID := uuid.New()
	order := testOrder(t, branchID, database.OrderStatusINPROGRESS)
	customer := testCustomer(branchID)
	order.CustomerID = customer.ID
	services := testOrderResult(t, branchID).Services

	router := setupDocumentRouter(docStoreForOrder(t, order, customer, services))

	path := fmt.Sprintf("/branches/%s/orders/%s/document", branchID, order.ID)
	rr := doAuthRequest(t, router, http.MethodGet, path, nil, testClaims(branchID))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}
	checkPDFResponse(t, rr.Body, rr.Header().Get("Content-Type"))
}

func TestDocumentReceipt(t *testing.T) {
	branchID := uuid.New()
	order := testOrder(t, branchID, database.OrderStatusREADYFORPICKUP)
	customer := testCustomer(branchID)
	order.CustomerID = customer.ID

	router := setupDocumentRouter(docStoreForOrder(t, order, customer, nil))

	path := fmt.Sprintf("/branches/%s/orders/%s/receipt", branchID, order.ID)
	rr := doAuthRequest(t, router, http.MethodGet, path, nil, testClaims(branchID))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}
	checkPDFResponse(t, rr.Body, rr.Header().Get("Content-Type"))
}

func TestDocumentLabel(t *testing.T) {
	branchID := uuid.New()
	order := testOrder(t, branchID, database.OrderStatusINPROGRESS)
	customer := testCustomer(branchID)
	order.CustomerID = customer.ID

	router := setupDocumentRouter(docStoreForOrder(t, order, customer, nil))

	path := fmt.Sprintf("/branches/%s/orders/%s/label", branchID, order.ID)
	rr := doAuthRequest(t, router, http.MethodGet, path, nil, testClaims(branchID))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}
	checkPDFResponse(t, rr.Body, rr.Header().Get("Content-Type"))
}

func TestDocumentOrderNotFound(t *testing.T) {
	branchID := uuid.New()
	router := setupDocumentRouter(&mockDocumentStore{})

	path := fmt.Sprintf("/branches/%s/orders/%s/document", branchID, uuid.New())
	rr := doAuthRequest(t, router, http.MethodGet, path, nil, testClaims(branchID))

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rr.Code)
	}
	resp := decodeJSONObject(t, rr)
	if resp["error"] != "order not found" {
		t.Errorf("unexpected error message: %v", resp["error"])
	}
}

func TestDocumentWrongBranch(t *testing.T) {
	branchID := uuid.New()
	order := testOrder(t, branchID, database.OrderStatusINPROGRESS)
	customer := testCustomer(branchID)
	order.CustomerID = customer.ID

	router := setupDocumentRouter(docStoreForOrder(t, order, customer, nil))

	otherBranch := uuid.New()
	path := fmt.Sprintf("/branches/%s/orders/%s/document", otherBranch, order.ID)
	rr := doAuthRequest(t, router, http.MethodGet, path, nil, testClaims(otherBranch))

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rr.Code)
	}
}

func TestDocumentInvalidOrderID(t *testing.T) {
	branchID := uuid.New()
	router := setupDocumentRouter(&mockDocumentStore{})

	path := fmt.Sprintf("/branches/%s/orders/not-a-uuid/label", branchID)
	rr := doAuthRequest(t, router, http.MethodGet, path, nil, testClaims(branchID))

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rr.Code)
	}
}
