package handler_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/taller-pos/api/internal/database"
	"github.com/taller-pos/api/internal/handler"
)

// --- Mock store ---

type mockChecklistStore struct {
	items map[uuid.UUID]database.ChecklistItem // keyed by item ID
}

func newMockChecklistStore() *mockChecklistStore {
	return &mockChecklistStore{items: make(map[uuid.UUID]database.ChecklistItem)}
}

func (m *mockChecklistStore) ListChecklistItemsByBranch(_ context.Context, branchID uuid.UUID) ([]database.ChecklistItem, error) {
	var result []database.ChecklistItem
	for _, item := range m.items {
		if item.BranchID == branchID {
			result = append(result, item)
		}
	}
	return result, nil
}

func (m *mockChecklistStore) CreateChecklistItem(_ context.Context, arg database.CreateChecklistItemParams) (database.ChecklistItem, error) {
	item := database.ChecklistItem{
		ID:        uuid.New(),
		BranchID:  arg.BranchID,
		Name:      arg.Name,
		Position:  arg.Position,
		CreatedAt: time.Now(),
	}
	m.items[item.ID] = item
	return item, nil
}

func (m *mockChecklistStore) DeleteChecklistItem(_ context.Context, arg database.DeleteChecklistItemParams) (uuid.UUID, error) {
	item, ok := m.items[arg.ID]
	if !ok || item.BranchID != arg.BranchID {
		return uuid.Nil, pgx.ErrNoRows
	}
	delete(m.items, arg.ID)
	return item.ID, nil
}

// --- Helpers ---

func setupChecklistRouter(store *mockChecklistStore) *chi.Mux {
	h := handler.NewChecklistHandler(store)
	r := chi.NewRouter()
	r.Route("/branches/{bid}/checklist", h.RegisterRoutes)
	return r
}

// --- Tests ---

func TestChecklistCreate(t *testing.T) {
	store := newMockChecklistStore()
	router := setupChecklistRouter(store)

	branchID := uuid.New()
	body := map[string]interface{}{"name": "Enciende", "position": 0}
	rr := doJSONRequest(t, router, http.MethodPost, "/branches/"+branchID.String()+"/checklist", body)

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d; body: %s", rr.Code, rr.Body.String())
	}
	resp := decodeJSONObject(t, rr)
	if resp["name"] != "Enciende" {
		t.Errorf("name: got %v, want Enciende", resp["name"])
	}
}

func TestChecklistCreateMissingName(t *testing.T) {
	store := newMockChecklistStore()
	router := setupChecklistRouter(store)

	branchID := uuid.New()
	rr := doJSONRequest(t, router, http.MethodPost, "/branches/"+branchID.String()+"/checklist", map[string]interface{}{"position": 1})

	if rr.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rr.Code)
	}
}

func TestChecklistList(t *testing.T) {
	store := newMockChecklistStore()
	router := setupChecklistRouter(store)

	branchID := uuid.New()
	item := database.ChecklistItem{ID: uuid.New(), BranchID: branchID, Name: "Mojado", Position: 3}
	store.items[item.ID] = item

	rr := doJSONRequest(t, router, http.MethodGet, "/branches/"+branchID.String()+"/checklist", nil)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	resp := decodeJSONList(t, rr)
	if len(resp) != 1 {
		t.Errorf("expected 1 item, got %d", len(resp))
	}
}

func TestChecklistDelete(t *testing.T) {
	store := newMockChecklistStore()
	router := setupChecklistRouter(store)

	branchID := uuid.New()
	item := database.ChecklistItem{ID: uuid.New(), BranchID: branchID, Name: "Pantalla rota"}
	store.items[item.ID] = item

	rr := doJSONRequest(t, router, http.MethodDelete, "/branches/"+branchID.String()+"/checklist/"+item.ID.String(), nil)

	if rr.Code != http.StatusNoContent {
		t.Errorf("expected status 204, got %d", rr.Code)
	}
	if _, ok := store.items[item.ID]; ok {
		t.Error("expected item to be deleted")
	}
}

func TestChecklistDeleteNotFound(t *testing.T) {
	store := newMockChecklistStore()
	router := setupChecklistRouter(store)

	branchID := uuid.New()
	rr := doJSONRequest(t, router, http.MethodDelete, "/branches/"+branchID.String()+"/checklist/"+uuid.New().String(), nil)

	if rr.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", rr.Code)
	}
}
