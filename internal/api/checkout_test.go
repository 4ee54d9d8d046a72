package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/tunasmustika/kasir/internal/app/receipt"
	"github.com/tunasmustika/kasir/internal/domain"
	"github.com/tunasmustika/kasir/internal/infra/auth"
	"github.com/tunasmustika/kasir/internal/infra/sqlite"
)

// ─── Test Setup ─────────────────────────────────────────────────────────────

func setupServer(t *testing.T) (*Server, *sqlite.DB) {
	t.Helper()
	db, err := sqlite.Open(t.TempDir())
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	authenticator := auth.NewStatic([]auth.Credential{
		{Username: "admin", Password: "admin123", Role: domain.RoleAdmin},
		{Username: "kasir", Password: "kasir123", Role: domain.RoleKasir},
	})

	s := NewServer(db, authenticator, receipt.ShopInfo{Name: "TUNAS MUSTIKA", Tagline: "Toko Plastik"})

	for _, p := range []domain.Product{
		{ID: "p1", Name: "Kantong Plastik HD 28x37", Price: 25000, Stock: 100, Unit: "pack"},
		{ID: "p2", Name: "Sedotan Plastik", Price: 8000, Stock: 200, Unit: "pack"},
		{ID: "p3", Name: "Tupperware 500ml", Price: 12000, Stock: 3, Unit: "pcs"},
	} {
		prod := p
		if err := db.CreateProduct(&prod); err != nil {
			t.Fatalf("seed product: %v", err)
		}
	}
	return s, db
}

func doJSON(t *testing.T, h http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp
}

// ─── Cart Tests ─────────────────────────────────────────────────────────────

func TestCart_AddAndGet(t *testing.T) {
	s, _ := setupServer(t)
	h := s.Handler()

	w := doJSON(t, h, http.MethodPost, "/api/cart/lines", map[string]interface{}{
		"product_id": "p1", "quantity": 2,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("add line status = %d, body %s", w.Code, w.Body)
	}

	w = doJSON(t, h, http.MethodGet, "/api/cart", nil)
	resp := decode(t, w)
	if resp["total"] != float64(50000) {
		t.Errorf("total = %v, want 50000", resp["total"])
	}
	lines := resp["lines"].([]interface{})
	if len(lines) != 1 {
		t.Fatalf("lines = %d, want 1", len(lines))
	}
}

func TestCart_AddUnknownProduct(t *testing.T) {
	s, _ := setupServer(t)
	h := s.Handler()

	w := doJSON(t, h, http.MethodPost, "/api/cart/lines", map[string]interface{}{
		"product_id": "nope", "quantity": 1,
	})
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestCart_AddBeyondStock(t *testing.T) {
	s, _ := setupServer(t)
	h := s.Handler()

	w := doJSON(t, h, http.MethodPost, "/api/cart/lines", map[string]interface{}{
		"product_id": "p3", "quantity": 4,
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestCart_SetQuantityZeroRemoves(t *testing.T) {
	s, _ := setupServer(t)
	h := s.Handler()

	doJSON(t, h, http.MethodPost, "/api/cart/lines", map[string]interface{}{
		"product_id": "p1", "quantity": 2,
	})
	w := doJSON(t, h, http.MethodPut, "/api/cart/lines/p1", map[string]interface{}{"quantity": 0})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body)
	}
	resp := decode(t, w)
	if resp["total"] != float64(0) {
		t.Errorf("total = %v, want 0 after removal", resp["total"])
	}
}

func TestCart_Abandon(t *testing.T) {
	s, _ := setupServer(t)
	h := s.Handler()

	doJSON(t, h, http.MethodPost, "/api/cart/lines", map[string]interface{}{
		"product_id": "p1", "quantity": 2,
	})
	doJSON(t, h, http.MethodDelete, "/api/cart", nil)

	w := doJSON(t, h, http.MethodGet, "/api/cart", nil)
	if resp := decode(t, w); resp["total"] != float64(0) {
		t.Errorf("total = %v, want 0 after abandon", resp["total"])
	}
}

// ─── Checkout Tests ─────────────────────────────────────────────────────────

func TestCheckout_Cash(t *testing.T) {
	s, db := setupServer(t)
	h := s.Handler()

	doJSON(t, h, http.MethodPost, "/api/cart/lines", map[string]interface{}{
		"product_id": "p1", "quantity": 2,
	})
	doJSON(t, h, http.MethodPost, "/api/cart/lines", map[string]interface{}{
		"product_id": "p2", "quantity": 3,
	})

	w := doJSON(t, h, http.MethodPost, "/api/checkout", map[string]interface{}{
		"type": "cash", "amount_tendered": 100000,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("checkout status = %d, body %s", w.Code, w.Body)
	}
	resp := decode(t, w)

	tx := resp["transaction"].(map[string]interface{})
	if tx["total"] != float64(74000) || tx["change_due"] != float64(26000) {
		t.Errorf("tx total=%v change=%v, want 74000 and 26000", tx["total"], tx["change_due"])
	}
	if _, ok := resp["receipt"].(string); !ok {
		t.Error("response should include receipt text")
	}

	n, _ := db.TransactionCount()
	if n != 1 {
		t.Errorf("history count = %d, want 1", n)
	}

	// Cart resets for the next sale.
	w = doJSON(t, h, http.MethodGet, "/api/cart", nil)
	if r := decode(t, w); r["total"] != float64(0) {
		t.Errorf("cart total after checkout = %v, want 0", r["total"])
	}
}

func TestCheckout_CashInsufficient(t *testing.T) {
	s, db := setupServer(t)
	h := s.Handler()

	doJSON(t, h, http.MethodPost, "/api/cart/lines", map[string]interface{}{
		"product_id": "p1", "quantity": 2,
	})

	w := doJSON(t, h, http.MethodPost, "/api/checkout", map[string]interface{}{
		"type": "cash", "amount_tendered": 10000,
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}

	// Cart survives the rejection.
	w = doJSON(t, h, http.MethodGet, "/api/cart", nil)
	if r := decode(t, w); r["total"] != float64(50000) {
		t.Errorf("cart total = %v, want intact 50000", r["total"])
	}
	if n, _ := db.TransactionCount(); n != 0 {
		t.Errorf("history count = %d, want 0", n)
	}
}

func TestCheckout_CreditRecordsKasbon(t *testing.T) {
	s, db := setupServer(t)
	h := s.Handler()

	doJSON(t, h, http.MethodPost, "/api/cart/lines", map[string]interface{}{
		"product_id": "p1", "quantity": 2,
	})

	w := doJSON(t, h, http.MethodPost, "/api/checkout", map[string]interface{}{
		"type": "credit",
		"customer": map[string]string{
			"name": "Ibu Sari", "phone": "081234567890", "address": "Jl. Merdeka No. 12",
		},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("checkout status = %d, body %s", w.Code, w.Body)
	}

	resp := decode(t, w)
	customer := resp["customer"].(map[string]interface{})
	if customer["total_debt"] != float64(50000) {
		t.Errorf("total_debt = %v, want 50000", customer["total_debt"])
	}

	stored, err := db.FindCustomerByPhone("081234567890")
	if err != nil {
		t.Fatalf("customer not persisted: %v", err)
	}
	if stored.TotalDebt != 50000 || stored.Status != domain.CustomerActive {
		t.Errorf("stored customer = %+v, want 50000 active", stored)
	}
}

func TestCheckout_CreditMissingCustomer(t *testing.T) {
	s, _ := setupServer(t)
	h := s.Handler()

	doJSON(t, h, http.MethodPost, "/api/cart/lines", map[string]interface{}{
		"product_id": "p1", "quantity": 1,
	})
	w := doJSON(t, h, http.MethodPost, "/api/checkout", map[string]interface{}{
		"type": "credit", "customer": map[string]string{"name": "", "phone": "0812"},
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestCheckout_EmptyCart(t *testing.T) {
	s, _ := setupServer(t)
	h := s.Handler()

	w := doJSON(t, h, http.MethodPost, "/api/checkout", map[string]interface{}{
		"type": "cash", "amount_tendered": 10000,
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

// ─── History & Dashboard Tests ──────────────────────────────────────────────

func TestTransactionHistoryAndReceipt(t *testing.T) {
	s, _ := setupServer(t)
	h := s.Handler()

	doJSON(t, h, http.MethodPost, "/api/cart/lines", map[string]interface{}{
		"product_id": "p2", "quantity": 1,
	})
	w := doJSON(t, h, http.MethodPost, "/api/checkout", map[string]interface{}{
		"type": "cash", "amount_tendered": 8000,
	})
	resp := decode(t, w)
	txID := resp["transaction"].(map[string]interface{})["id"].(string)

	w = doJSON(t, h, http.MethodGet, "/api/transactions", nil)
	list := decode(t, w)["transactions"].([]interface{})
	if len(list) != 1 {
		t.Fatalf("transactions = %d, want 1", len(list))
	}

	w = doJSON(t, h, http.MethodGet, "/api/transactions/"+txID+"/receipt", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("receipt status = %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "text/plain; charset=utf-8" {
		t.Errorf("Content-Type = %q, want text/plain", ct)
	}
	if !bytes.Contains(w.Body.Bytes(), []byte("TUNAS MUSTIKA")) {
		t.Error("receipt should carry the shop header")
	}
}

func TestDashboardSummary(t *testing.T) {
	s, _ := setupServer(t)
	h := s.Handler()

	doJSON(t, h, http.MethodPost, "/api/cart/lines", map[string]interface{}{
		"product_id": "p1", "quantity": 1,
	})
	doJSON(t, h, http.MethodPost, "/api/checkout", map[string]interface{}{
		"type": "cash", "amount_tendered": 25000,
	})

	w := doJSON(t, h, http.MethodGet, "/api/dashboard/summary", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("summary status = %d", w.Code)
	}
	resp := decode(t, w)
	if resp["transactions_today"] != float64(1) {
		t.Errorf("transactions_today = %v, want 1", resp["transactions_today"])
	}
	if resp["revenue_today"] != float64(25000) {
		t.Errorf("revenue_today = %v, want 25000", resp["revenue_today"])
	}
	if resp["product_count"] != float64(3) {
		t.Errorf("product_count = %v, want 3", resp["product_count"])
	}
}
