// Package domain contains pure business types with ZERO infrastructure imports.
// This is the innermost ring of clean architecture — it depends on nothing.
package domain

import (
	"strconv"
	"time"
)

// ─── Catalog Types ──────────────────────────────────────────────────────────

// Product is one catalog entry. Prices are whole rupiah.
type Product struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Category  string    `json:"category,omitempty"`
	Price     int64     `json:"price"`
	Stock     int       `json:"stock"`
	Unit      string    `json:"unit"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ─── Cart Types ─────────────────────────────────────────────────────────────

// CartLine is one product entry in an in-progress sale.
// Name, Price and Unit are snapshots taken when the line was added —
// later catalog edits never reach a line already in the cart.
type CartLine struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Unit      string `json:"unit"`
	Quantity  int    `json:"quantity"`
}

// Subtotal returns price × quantity for this line.
func (l CartLine) Subtotal() int64 {
	return l.Price * int64(l.Quantity)
}

// CartTotal sums line subtotals.
func CartTotal(lines []CartLine) int64 {
	var total int64
	for _, l := range lines {
		total += l.Subtotal()
	}
	return total
}

// ─── Customer Types ─────────────────────────────────────────────────────────

// CustomerStatus marks whether a customer carries outstanding kasbon.
type CustomerStatus string

const (
	CustomerActive   CustomerStatus = "active"
	CustomerInactive CustomerStatus = "inactive"
)

// Customer is a kasbon account holder. Name and Phone are required when a
// sale is committed on credit.
type Customer struct {
	ID              string         `json:"id,omitempty"`
	Name            string         `json:"name"`
	Phone           string         `json:"phone"`
	Address         string         `json:"address,omitempty"`
	TotalDebt       int64          `json:"total_debt"`
	LastTransaction time.Time      `json:"last_transaction,omitzero"`
	Status          CustomerStatus `json:"status,omitempty"`
}

// ─── Transaction Types ──────────────────────────────────────────────────────

// PaymentType is how a sale is settled.
type PaymentType string

const (
	PaymentCash   PaymentType = "cash"
	PaymentCredit PaymentType = "credit" // kasbon
)

// Payment carries the settlement details handed to Commit.
// AmountTendered applies to cash sales; Customer to credit sales.
type Payment struct {
	Type           PaymentType `json:"type"`
	AmountTendered int64       `json:"amount_tendered,omitempty"`
	Customer       *Customer   `json:"customer,omitempty"`
}

// Transaction is one committed sale. Created exactly once per successful
// checkout and never mutated afterward; history is append-only.
type Transaction struct {
	ID             string      `json:"id"`
	Lines          []CartLine  `json:"lines"`
	Total          int64       `json:"total"`
	PaymentType    PaymentType `json:"payment_type"`
	AmountTendered int64       `json:"amount_tendered,omitempty"`
	ChangeDue      int64       `json:"change_due,omitempty"`
	Customer       *Customer   `json:"customer,omitempty"`
	Timestamp      time.Time   `json:"timestamp"`
}

// OutstandingBalance is the exact input the customer ledger accepts after a
// credit commit: who owes, and how much.
type OutstandingBalance struct {
	Customer Customer `json:"customer"`
	Amount   int64    `json:"amount"`
}

// Outstanding returns the kasbon balance a credit transaction created,
// or false for cash sales.
func (t *Transaction) Outstanding() (OutstandingBalance, bool) {
	if t.PaymentType != PaymentCredit || t.Customer == nil {
		return OutstandingBalance{}, false
	}
	return OutstandingBalance{Customer: *t.Customer, Amount: t.Total}, true
}

// ─── Dashboard Types ────────────────────────────────────────────────────────

// DashboardSummary is the storefront snapshot shown after login.
type DashboardSummary struct {
	TransactionsToday int   `json:"transactions_today"`
	RevenueToday      int64 `json:"revenue_today"`
	ProductCount      int   `json:"product_count"`
	KasbonCustomers   int   `json:"kasbon_customers"`
}

// ─── Auth Types ─────────────────────────────────────────────────────────────

// Role is an operator role. Admin manages the catalog and customers;
// kasir runs the register.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleKasir Role = "kasir"
)

// ─── Utilities ──────────────────────────────────────────────────────────────

// FormatRupiah renders a whole-rupiah amount in id-ID style: Rp25.000.
func FormatRupiah(amount int64) string {
	neg := amount < 0
	if neg {
		amount = -amount
	}
	digits := strconv.FormatInt(amount, 10)
	out := make([]byte, 0, len(digits)+len(digits)/3)
	for i := 0; i < len(digits); i++ {
		if i > 0 && (len(digits)-i)%3 == 0 {
			out = append(out, '.')
		}
		out = append(out, digits[i])
	}
	if neg {
		return "-Rp" + string(out)
	}
	return "Rp" + string(out)
}
