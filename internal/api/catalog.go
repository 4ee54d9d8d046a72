package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tunasmustika/kasir/internal/domain"
)

// ─── Catalog Handlers ───────────────────────────────────────────────────────
// Product management for the admin screen.
//
// GET    /api/products?q=        — list, optional name filter
// POST   /api/products           — create
// PUT    /api/products/{id}      — update
// DELETE /api/products/{id}      — delete

func (s *Server) handleListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := s.db.ListProducts(r.URL.Query().Get("q"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if products == nil {
		products = []domain.Product{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"products": products})
}

func (s *Server) handleCreateProduct(w http.ResponseWriter, r *http.Request) {
	var p domain.Product
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := s.db.CreateProduct(&p); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (s *Server) handleUpdateProduct(w http.ResponseWriter, r *http.Request) {
	var p domain.Product
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	p.ID = chi.URLParam(r, "id")
	if err := s.db.UpdateProduct(&p); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := s.db.DeleteProduct(chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
