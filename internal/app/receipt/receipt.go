// Package receipt renders a committed transaction as a printable
// plain-text struk for a 32-column thermal printer.
package receipt

import (
	"fmt"
	"strings"

	"github.com/tunasmustika/kasir/internal/domain"
)

const width = 32

// ShopInfo is the receipt header identity, taken from configuration.
type ShopInfo struct {
	Name    string
	Tagline string
	Address string
	Phone   string
}

// Render produces the receipt text for a transaction.
func Render(tx *domain.Transaction, shop ShopInfo) string {
	var b strings.Builder

	center(&b, shop.Name)
	if shop.Tagline != "" {
		center(&b, shop.Tagline)
	}
	if shop.Address != "" {
		center(&b, shop.Address)
	}
	if shop.Phone != "" {
		center(&b, "Telp: "+shop.Phone)
	}
	rule(&b)

	fmt.Fprintf(&b, "No     : %s\n", tx.ID)
	fmt.Fprintf(&b, "Tanggal: %s\n", tx.Timestamp.Format("02-01-2006 15:04"))
	fmt.Fprintf(&b, "Bayar  : %s\n", paymentLabel(tx.PaymentType))
	rule(&b)

	for _, l := range tx.Lines {
		b.WriteString(l.Name + "\n")
		left := fmt.Sprintf("  %d %s x %s", l.Quantity, l.Unit, domain.FormatRupiah(l.Price))
		row(&b, left, domain.FormatRupiah(l.Subtotal()))
	}
	rule(&b)

	row(&b, "TOTAL", domain.FormatRupiah(tx.Total))
	if tx.PaymentType == domain.PaymentCash {
		row(&b, "Bayar", domain.FormatRupiah(tx.AmountTendered))
		row(&b, "Kembalian", domain.FormatRupiah(tx.ChangeDue))
	}
	if tx.Customer != nil {
		rule(&b)
		b.WriteString("Data Kasbon:\n")
		fmt.Fprintf(&b, "Nama : %s\n", tx.Customer.Name)
		fmt.Fprintf(&b, "Telp : %s\n", tx.Customer.Phone)
		if tx.Customer.Address != "" {
			fmt.Fprintf(&b, "Alamat: %s\n", tx.Customer.Address)
		}
	}
	rule(&b)
	center(&b, "Terima kasih atas")
	center(&b, "kunjungan Anda!")

	return b.String()
}

func paymentLabel(t domain.PaymentType) string {
	if t == domain.PaymentCredit {
		return "Kasbon"
	}
	return "Tunai"
}

// row writes a left/right justified pair, overflowing onto one line when
// the two sides do not fit.
func row(b *strings.Builder, left, right string) {
	pad := width - len(left) - len(right)
	if pad < 1 {
		pad = 1
	}
	b.WriteString(left + strings.Repeat(" ", pad) + right + "\n")
}

func center(b *strings.Builder, s string) {
	if pad := (width - len(s)) / 2; pad > 0 {
		b.WriteString(strings.Repeat(" ", pad))
	}
	b.WriteString(s + "\n")
}

func rule(b *strings.Builder) {
	b.WriteString(strings.Repeat("-", width) + "\n")
}
