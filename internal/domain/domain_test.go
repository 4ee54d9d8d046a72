package domain

import (
	"testing"
)

// ─── Money Tests ────────────────────────────────────────────────────────────

func TestFormatRupiah(t *testing.T) {
	tests := []struct {
		amount int64
		want   string
	}{
		{0, "Rp0"},
		{500, "Rp500"},
		{8000, "Rp8.000"},
		{25000, "Rp25.000"},
		{74000, "Rp74.000"},
		{150000, "Rp150.000"},
		{2450000, "Rp2.450.000"},
		{1000000000, "Rp1.000.000.000"},
		{-25000, "-Rp25.000"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			got := FormatRupiah(tt.amount)
			if got != tt.want {
				t.Errorf("FormatRupiah(%d) = %q, want %q", tt.amount, got, tt.want)
			}
		})
	}
}

// ─── Cart Tests ─────────────────────────────────────────────────────────────

func TestCartLine_Subtotal(t *testing.T) {
	l := CartLine{Price: 25000, Quantity: 2}
	if got := l.Subtotal(); got != 50000 {
		t.Errorf("Subtotal() = %d, want 50000", got)
	}
}

func TestCartTotal(t *testing.T) {
	lines := []CartLine{
		{Price: 25000, Quantity: 2},
		{Price: 8000, Quantity: 3},
	}
	if got := CartTotal(lines); got != 74000 {
		t.Errorf("CartTotal() = %d, want 74000", got)
	}
}

func TestCartTotal_Empty(t *testing.T) {
	if got := CartTotal(nil); got != 0 {
		t.Errorf("CartTotal(nil) = %d, want 0", got)
	}
}

// ─── Transaction Tests ──────────────────────────────────────────────────────

func TestTransaction_Outstanding_Credit(t *testing.T) {
	tx := &Transaction{
		Total:       74000,
		PaymentType: PaymentCredit,
		Customer:    &Customer{Name: "Ibu Sari", Phone: "081234567890"},
	}
	balance, ok := tx.Outstanding()
	if !ok {
		t.Fatal("Outstanding() ok = false, want true for credit sale")
	}
	if balance.Amount != 74000 {
		t.Errorf("balance.Amount = %d, want 74000", balance.Amount)
	}
	if balance.Customer.Name != "Ibu Sari" {
		t.Errorf("balance.Customer.Name = %q, want %q", balance.Customer.Name, "Ibu Sari")
	}
}

func TestTransaction_Outstanding_Cash(t *testing.T) {
	tx := &Transaction{Total: 74000, PaymentType: PaymentCash}
	if _, ok := tx.Outstanding(); ok {
		t.Error("Outstanding() ok = true, want false for cash sale")
	}
}
