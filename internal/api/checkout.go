package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tunasmustika/kasir/internal/app/receipt"
	"github.com/tunasmustika/kasir/internal/domain"
)

// ─── Cart & Checkout Handlers ───────────────────────────────────────────────
// The register screen drives these. One cart per terminal; the server mutex
// serializes access so the session itself stays single-owner.
//
// GET    /api/cart                     — lines + running total
// POST   /api/cart/lines               — add quantity of a product
// PUT    /api/cart/lines/{productID}   — set line quantity (0 removes)
// DELETE /api/cart/lines/{productID}   — remove line
// DELETE /api/cart                     — abandon sale
// POST   /api/checkout                 — commit with payment details

func (s *Server) handleGetCart(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	lines := s.session.Lines()
	total := s.session.Total()
	s.mu.Unlock()

	if lines == nil {
		lines = []domain.CartLine{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"lines": lines,
		"total": total,
	})
}

func (s *Server) handleAddLine(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProductID string `json:"product_id"`
		Quantity  int    `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	s.mu.Lock()
	err := s.session.AddLine(req.ProductID, req.Quantity)
	lines, total := s.session.Lines(), s.session.Total()
	s.mu.Unlock()

	if err != nil {
		countRejection(err)
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"lines": lines, "total": total})
}

func (s *Server) handleSetLineQuantity(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	s.mu.Lock()
	err := s.session.SetLineQuantity(chi.URLParam(r, "productID"), req.Quantity)
	lines, total := s.session.Lines(), s.session.Total()
	s.mu.Unlock()

	if err != nil {
		countRejection(err)
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"lines": lines, "total": total})
}

func (s *Server) handleRemoveLine(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.session.RemoveLine(chi.URLParam(r, "productID"))
	lines, total := s.session.Lines(), s.session.Total()
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]interface{}{"lines": lines, "total": total})
}

func (s *Server) handleAbandonCart(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.session.Clear()
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}

// handleCheckout commits the cart. Credit sales additionally record the
// outstanding balance against the customer's kasbon account.
// POST /api/checkout
func (s *Server) handleCheckout(w http.ResponseWriter, r *http.Request) {
	var payment domain.Payment
	if err := json.NewDecoder(r.Body).Decode(&payment); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	s.mu.Lock()
	tx, err := s.session.Commit(payment)
	s.mu.Unlock()

	if err != nil {
		if tx == nil {
			countRejection(err)
			writeDomainError(w, err)
			return
		}
		// The sale stands; only persistence failed. Surface it loudly.
		log.Printf("[checkout] transaction %s committed but not persisted: %v", tx.ID, err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	TransactionsCommitted.WithLabelValues(string(tx.PaymentType)).Inc()
	RevenueRupiah.Add(float64(tx.Total))

	resp := map[string]interface{}{
		"transaction": tx,
		"receipt":     receipt.Render(tx, s.shop),
	}

	if balance, ok := tx.Outstanding(); ok {
		customer, err := s.db.RecordDebt(balance)
		if err != nil {
			log.Printf("[checkout] transaction %s: kasbon not recorded: %v", tx.ID, err)
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		KasbonRecorded.Add(float64(balance.Amount))
		resp["customer"] = customer
	}

	writeJSON(w, http.StatusOK, resp)
}

// ─── History Handlers ───────────────────────────────────────────────────────

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if q := r.URL.Query().Get("limit"); q != "" {
		limit, _ = strconv.Atoi(q)
	}
	txs, err := s.db.ListTransactions(limit)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if txs == nil {
		txs = []domain.Transaction{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"transactions": txs})
}

func (s *Server) handleGetTransaction(w http.ResponseWriter, r *http.Request) {
	tx, err := s.db.GetTransaction(chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tx)
}

func (s *Server) handleGetReceipt(w http.ResponseWriter, r *http.Request) {
	tx, err := s.db.GetTransaction(chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(receipt.Render(tx, s.shop)))
}

// ─── Dashboard Handler ──────────────────────────────────────────────────────

func (s *Server) handleDashboardSummary(w http.ResponseWriter, r *http.Request) {
	now := time.Now().UTC()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	summary, err := s.db.Summary(dayStart)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func countRejection(err error) {
	reason := "other"
	switch {
	case errors.Is(err, domain.ErrUnknownProduct):
		reason = "unknown_product"
	case errors.Is(err, domain.ErrInsufficientStock):
		reason = "insufficient_stock"
	case errors.Is(err, domain.ErrEmptyCart):
		reason = "empty_cart"
	case errors.Is(err, domain.ErrInsufficientPayment):
		reason = "insufficient_payment"
	case errors.Is(err, domain.ErrMissingCustomerInfo):
		reason = "missing_customer_info"
	case errors.Is(err, domain.ErrInvalidQuantity):
		reason = "invalid_quantity"
	}
	CheckoutRejections.WithLabelValues(reason).Inc()
}
