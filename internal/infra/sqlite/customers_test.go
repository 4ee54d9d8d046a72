package sqlite

import (
	"errors"
	"testing"

	"github.com/tunasmustika/kasir/internal/domain"
)

// ─── Customer Tests ─────────────────────────────────────────────────────────

func TestCreateCustomer(t *testing.T) {
	db := newTestDB(t)

	c := domain.Customer{Name: "Ibu Sari", Phone: "081234567890", Address: "Jl. Merdeka No. 12"}
	if err := db.CreateCustomer(&c); err != nil {
		t.Fatalf("CreateCustomer() error: %v", err)
	}
	if c.ID == "" {
		t.Fatal("CreateCustomer() should assign an id")
	}

	got, err := db.GetCustomer(c.ID)
	if err != nil {
		t.Fatalf("GetCustomer() error: %v", err)
	}
	if got.Name != "Ibu Sari" || got.TotalDebt != 0 || got.Status != domain.CustomerInactive {
		t.Errorf("GetCustomer() = %+v, want zero debt inactive account", got)
	}
}

func TestCreateCustomer_Invalid(t *testing.T) {
	db := newTestDB(t)

	c := domain.Customer{Name: "", Phone: "0812"}
	if err := db.CreateCustomer(&c); !errors.Is(err, domain.ErrInvalidCustomer) {
		t.Errorf("CreateCustomer() error = %v, want ErrInvalidCustomer", err)
	}
}

func TestFindCustomerByPhone(t *testing.T) {
	db := newTestDB(t)

	c := domain.Customer{Name: "Bapak Joko", Phone: "082345678901"}
	db.CreateCustomer(&c)

	got, err := db.FindCustomerByPhone("082345678901")
	if err != nil {
		t.Fatalf("FindCustomerByPhone() error: %v", err)
	}
	if got.ID != c.ID {
		t.Errorf("found id = %s, want %s", got.ID, c.ID)
	}

	if _, err := db.FindCustomerByPhone("000"); !errors.Is(err, domain.ErrCustomerNotFound) {
		t.Errorf("missing phone error = %v, want ErrCustomerNotFound", err)
	}
}

func TestUpdateCustomer(t *testing.T) {
	db := newTestDB(t)

	c := domain.Customer{Name: "Ibu Rina", Phone: "0834"}
	db.CreateCustomer(&c)

	c.Address = "Jl. Ahmad Yani No. 23"
	if err := db.UpdateCustomer(&c); err != nil {
		t.Fatalf("UpdateCustomer() error: %v", err)
	}
	got, _ := db.GetCustomer(c.ID)
	if got.Address != "Jl. Ahmad Yani No. 23" {
		t.Errorf("address = %q, want updated value", got.Address)
	}
}

// ─── Kasbon Ledger Tests ────────────────────────────────────────────────────

func TestRecordDebt_NewCustomer(t *testing.T) {
	db := newTestDB(t)

	got, err := db.RecordDebt(domain.OutstandingBalance{
		Customer: domain.Customer{Name: "Ibu Sari", Phone: "0812", Address: "Jl. Merdeka"},
		Amount:   74000,
	})
	if err != nil {
		t.Fatalf("RecordDebt() error: %v", err)
	}
	if got.TotalDebt != 74000 {
		t.Errorf("TotalDebt = %d, want 74000", got.TotalDebt)
	}
	if got.Status != domain.CustomerActive {
		t.Errorf("Status = %s, want active", got.Status)
	}
	if got.LastTransaction.IsZero() {
		t.Error("LastTransaction should be stamped")
	}
}

func TestRecordDebt_AccumulatesByPhone(t *testing.T) {
	db := newTestDB(t)

	balance := domain.OutstandingBalance{
		Customer: domain.Customer{Name: "Ibu Sari", Phone: "0812"},
		Amount:   50000,
	}
	if _, err := db.RecordDebt(balance); err != nil {
		t.Fatalf("RecordDebt() error: %v", err)
	}
	balance.Amount = 25000
	got, err := db.RecordDebt(balance)
	if err != nil {
		t.Fatalf("RecordDebt() second error: %v", err)
	}
	if got.TotalDebt != 75000 {
		t.Errorf("TotalDebt = %d, want accumulated 75000", got.TotalDebt)
	}

	customers, _ := db.ListCustomers()
	if len(customers) != 1 {
		t.Errorf("customer count = %d, want 1 (resolved by phone)", len(customers))
	}
}

func TestRecordDebt_MissingInfo(t *testing.T) {
	db := newTestDB(t)

	_, err := db.RecordDebt(domain.OutstandingBalance{
		Customer: domain.Customer{Name: "", Phone: "0812"},
		Amount:   1000,
	})
	if !errors.Is(err, domain.ErrMissingCustomerInfo) {
		t.Errorf("RecordDebt() error = %v, want ErrMissingCustomerInfo", err)
	}
}

func TestPayDebt(t *testing.T) {
	db := newTestDB(t)

	c, _ := db.RecordDebt(domain.OutstandingBalance{
		Customer: domain.Customer{Name: "Bapak Joko", Phone: "0823"},
		Amount:   75000,
	})

	got, err := db.PayDebt(c.ID, 25000)
	if err != nil {
		t.Fatalf("PayDebt() error: %v", err)
	}
	if got.TotalDebt != 50000 || got.Status != domain.CustomerActive {
		t.Errorf("after partial payment debt=%d status=%s, want 50000 active", got.TotalDebt, got.Status)
	}

	// Overpayment clamps at zero and deactivates the account.
	got, err = db.PayDebt(c.ID, 60000)
	if err != nil {
		t.Fatalf("PayDebt() error: %v", err)
	}
	if got.TotalDebt != 0 || got.Status != domain.CustomerInactive {
		t.Errorf("after settlement debt=%d status=%s, want 0 inactive", got.TotalDebt, got.Status)
	}
}

func TestPayDebt_NotFound(t *testing.T) {
	db := newTestDB(t)

	if _, err := db.PayDebt("missing", 1000); !errors.Is(err, domain.ErrCustomerNotFound) {
		t.Errorf("PayDebt() error = %v, want ErrCustomerNotFound", err)
	}
}

func TestDeleteCustomer_RefusedWithDebt(t *testing.T) {
	db := newTestDB(t)

	c, _ := db.RecordDebt(domain.OutstandingBalance{
		Customer: domain.Customer{Name: "Ibu Sari", Phone: "0812"},
		Amount:   10000,
	})

	if err := db.DeleteCustomer(c.ID); !errors.Is(err, domain.ErrCustomerHasDebt) {
		t.Fatalf("DeleteCustomer() error = %v, want ErrCustomerHasDebt", err)
	}

	db.PayDebt(c.ID, 10000)
	if err := db.DeleteCustomer(c.ID); err != nil {
		t.Fatalf("DeleteCustomer() after settlement error: %v", err)
	}
}

func TestKasbonCustomerCount(t *testing.T) {
	db := newTestDB(t)

	db.CreateCustomer(&domain.Customer{Name: "Ibu Rina", Phone: "0834"})
	db.RecordDebt(domain.OutstandingBalance{
		Customer: domain.Customer{Name: "Ibu Sari", Phone: "0812"},
		Amount:   5000,
	})

	n, err := db.KasbonCustomerCount()
	if err != nil {
		t.Fatalf("KasbonCustomerCount() error: %v", err)
	}
	if n != 1 {
		t.Errorf("count = %d, want 1", n)
	}
}
