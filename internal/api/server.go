// Package api provides the HTTP server for the kasir POS.
// The desktop UI talks to these endpoints: login, catalog and customer
// management, the active cart, checkout, history, and the dashboard.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tunasmustika/kasir/internal/app/checkout"
	"github.com/tunasmustika/kasir/internal/app/receipt"
	"github.com/tunasmustika/kasir/internal/domain"
	"github.com/tunasmustika/kasir/internal/infra/sqlite"
)

// Server is the kasir HTTP API server. One active checkout session is held
// per server: the single-terminal model. The mutex is the serialization
// point the cart needs when HTTP handlers overlap.
type Server struct {
	db             *sqlite.DB
	auth           domain.Authenticator
	shop           receipt.ShopInfo
	metricsEnabled bool

	mu      sync.Mutex
	session *checkout.Session
}

// NewServer creates a new API server over the shop database.
func NewServer(db *sqlite.DB, auth domain.Authenticator, shop receipt.ShopInfo) *Server {
	return &Server{
		db:      db,
		auth:    auth,
		shop:    shop,
		session: checkout.NewSession(db, db),
	}
}

// EnableMetrics enables the /metrics Prometheus endpoint.
func (s *Server) EnableMetrics() { s.metricsEnabled = true }

// Handler returns the chi router with all routes mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(corsMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/login", s.handleLogin)

		r.Route("/products", func(r chi.Router) {
			r.Get("/", s.handleListProducts)
			r.Post("/", s.handleCreateProduct)
			r.Put("/{id}", s.handleUpdateProduct)
			r.Delete("/{id}", s.handleDeleteProduct)
		})

		r.Route("/customers", func(r chi.Router) {
			r.Get("/", s.handleListCustomers)
			r.Post("/", s.handleCreateCustomer)
			r.Put("/{id}", s.handleUpdateCustomer)
			r.Delete("/{id}", s.handleDeleteCustomer)
			r.Post("/{id}/payments", s.handlePayDebt)
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", s.handleGetCart)
			r.Delete("/", s.handleAbandonCart)
			r.Post("/lines", s.handleAddLine)
			r.Put("/lines/{productID}", s.handleSetLineQuantity)
			r.Delete("/lines/{productID}", s.handleRemoveLine)
		})

		r.Post("/checkout", s.handleCheckout)

		r.Route("/transactions", func(r chi.Router) {
			r.Get("/", s.handleListTransactions)
			r.Get("/{id}", s.handleGetTransaction)
			r.Get("/{id}/receipt", s.handleGetReceipt)
		})

		r.Get("/dashboard/summary", s.handleDashboardSummary)
	})

	if s.metricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	return r
}

// ─── Login ──────────────────────────────────────────────────────────────────

// handleLogin checks operator credentials and returns the resolved role.
// POST /api/login
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	role, err := s.auth.Authenticate(req.Username, req.Password)
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"name": req.Username,
		"role": string(role),
	})
}

// ─── Helpers ────────────────────────────────────────────────────────────────

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]interface{}{
		"error": map[string]interface{}{
			"message": msg,
			"type":    "error",
		},
	})
}

// writeDomainError maps domain sentinel errors to HTTP statuses.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrUnknownProduct),
		errors.Is(err, domain.ErrCustomerNotFound),
		errors.Is(err, domain.ErrTransactionNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrProductExists),
		errors.Is(err, domain.ErrCustomerHasDebt):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrInsufficientStock),
		errors.Is(err, domain.ErrInvalidQuantity),
		errors.Is(err, domain.ErrEmptyCart),
		errors.Is(err, domain.ErrInsufficientPayment),
		errors.Is(err, domain.ErrMissingCustomerInfo),
		errors.Is(err, domain.ErrInvalidPaymentType),
		errors.Is(err, domain.ErrInvalidProduct),
		errors.Is(err, domain.ErrInvalidCustomer):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

// corsMiddleware adds CORS headers for the local desktop UI.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}
