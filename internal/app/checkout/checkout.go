// Package checkout implements the cart and settlement engine.
//
// A Session owns one in-progress sale for one cashier:
//  1. Lines are added, adjusted and removed against catalog stock ceilings
//  2. Commit validates the payment (cash sufficiency or kasbon customer data)
//  3. A frozen Transaction is produced and handed to the sink
//  4. The cart resets for the next sale
//
// Every rejected call leaves the cart exactly as it was.
package checkout

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tunasmustika/kasir/internal/domain"
)

// Session is one cashier's active cart. It is exclusively owned by a single
// caller; concurrent terminals would each hold their own Session.
type Session struct {
	catalog domain.Catalog
	sink    domain.TransactionSink
	lines   []domain.CartLine // insertion order, one line per product id
}

// NewSession creates a checkout session over the given catalog and
// transaction sink.
func NewSession(catalog domain.Catalog, sink domain.TransactionSink) *Session {
	return &Session{catalog: catalog, sink: sink}
}

// AddLine merges quantity into an existing line for the product, or appends
// a new line snapshotting the product's current name, price and unit.
// The combined quantity may not exceed the product's current stock.
func (s *Session) AddLine(productID string, quantity int) error {
	if quantity < 1 {
		return domain.ErrInvalidQuantity
	}
	product, err := s.catalog.GetProduct(productID)
	if err != nil {
		return err
	}

	if i := s.lineIndex(productID); i >= 0 {
		if s.lines[i].Quantity+quantity > product.Stock {
			return fmt.Errorf("%w: %s has %d %s", domain.ErrInsufficientStock,
				product.Name, product.Stock, product.Unit)
		}
		s.lines[i].Quantity += quantity
		return nil
	}

	if quantity > product.Stock {
		return fmt.Errorf("%w: %s has %d %s", domain.ErrInsufficientStock,
			product.Name, product.Stock, product.Unit)
	}
	s.lines = append(s.lines, domain.CartLine{
		ProductID: product.ID,
		Name:      product.Name,
		Price:     product.Price,
		Unit:      product.Unit,
		Quantity:  quantity,
	})
	return nil
}

// SetLineQuantity replaces a line's quantity. Zero or negative removes the
// line, same as RemoveLine. The new quantity may not exceed current stock.
func (s *Session) SetLineQuantity(productID string, quantity int) error {
	if quantity <= 0 {
		s.RemoveLine(productID)
		return nil
	}
	i := s.lineIndex(productID)
	if i < 0 {
		return domain.ErrUnknownProduct
	}
	product, err := s.catalog.GetProduct(productID)
	if err != nil {
		return err
	}
	if quantity > product.Stock {
		return fmt.Errorf("%w: %s has %d %s", domain.ErrInsufficientStock,
			product.Name, product.Stock, product.Unit)
	}
	s.lines[i].Quantity = quantity
	return nil
}

// RemoveLine drops the line for the product. No-op when absent.
func (s *Session) RemoveLine(productID string) {
	for i, l := range s.lines {
		if l.ProductID == productID {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
			return
		}
	}
}

// Lines returns a copy of the cart in insertion order.
func (s *Session) Lines() []domain.CartLine {
	out := make([]domain.CartLine, len(s.lines))
	copy(out, s.lines)
	return out
}

// Total recomputes the cart total from current lines. Never cached — any
// mutation invalidates a previously read total.
func (s *Session) Total() int64 {
	return domain.CartTotal(s.lines)
}

// Empty reports whether the cart has no lines.
func (s *Session) Empty() bool { return len(s.lines) == 0 }

// Clear abandons the in-progress sale.
func (s *Session) Clear() { s.lines = nil }

// Commit finalizes the cart into an immutable transaction.
//
// Validation failures (empty cart, short cash, missing kasbon customer)
// leave the cart intact so the cashier can fix the payment and retry.
// Once validation passes the cart is cleared unconditionally, then the
// transaction is appended to the sink; a sink failure is returned alongside
// the transaction so the caller can surface it, but the sale itself stands.
func (s *Session) Commit(payment domain.Payment) (*domain.Transaction, error) {
	if len(s.lines) == 0 {
		return nil, domain.ErrEmptyCart
	}
	total := s.Total()

	tx := &domain.Transaction{
		Total:       total,
		PaymentType: payment.Type,
		Timestamp:   time.Now().UTC(),
	}

	switch payment.Type {
	case domain.PaymentCash:
		if payment.AmountTendered < total {
			return nil, fmt.Errorf("%w: total %s, tendered %s",
				domain.ErrInsufficientPayment,
				domain.FormatRupiah(total), domain.FormatRupiah(payment.AmountTendered))
		}
		tx.AmountTendered = payment.AmountTendered
		tx.ChangeDue = payment.AmountTendered - total
	case domain.PaymentCredit:
		if payment.Customer == nil ||
			strings.TrimSpace(payment.Customer.Name) == "" ||
			strings.TrimSpace(payment.Customer.Phone) == "" {
			return nil, domain.ErrMissingCustomerInfo
		}
		c := *payment.Customer
		tx.Customer = &c
	default:
		return nil, domain.ErrInvalidPaymentType
	}

	tx.ID = newTransactionID(tx.Timestamp)
	tx.Lines = make([]domain.CartLine, len(s.lines))
	copy(tx.Lines, s.lines)

	// Cart resets before the sink runs; a persistence failure does not
	// roll the clear back.
	s.lines = nil

	if err := s.sink.Append(tx); err != nil {
		return tx, fmt.Errorf("record transaction %s: %w", tx.ID, err)
	}
	return tx, nil
}

// newTransactionID builds a time-ordered unique id: a sortable timestamp
// prefix plus a short random suffix for commits within the same second.
func newTransactionID(t time.Time) string {
	return t.Format("20060102-150405") + "-" + uuid.NewString()[:8]
}

func (s *Session) lineIndex(productID string) int {
	for i, l := range s.lines {
		if l.ProductID == productID {
			return i
		}
	}
	return -1
}
