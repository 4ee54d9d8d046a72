// Customer and kasbon ledger schema and operations.
// The DB satisfies domain.CustomerLedger for credit checkouts.
package sqlite

import (
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tunasmustika/kasir/internal/domain"
)

// ─── Customer Schema ────────────────────────────────────────────────────────

func customerMigrations() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS customers (
			id               TEXT PRIMARY KEY,
			name             TEXT NOT NULL,
			phone            TEXT NOT NULL,
			address          TEXT NOT NULL DEFAULT '',
			total_debt       INTEGER NOT NULL DEFAULT 0 CHECK(total_debt >= 0),
			last_transaction TEXT,
			status           TEXT NOT NULL DEFAULT 'inactive',
			created_at       TEXT NOT NULL DEFAULT (datetime('now'))
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_customers_phone ON customers(phone)`,
		`CREATE INDEX IF NOT EXISTS idx_customers_status ON customers(status)`,
	}
}

// ─── Customer Operations ────────────────────────────────────────────────────

// CreateCustomer inserts a new kasbon account. A fresh id is assigned when
// empty; debt starts at zero.
func (db *DB) CreateCustomer(c *domain.Customer) error {
	if err := validateCustomer(c); err != nil {
		return err
	}
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.Status == "" {
		c.Status = domain.CustomerInactive
	}
	_, err := db.db.Exec(`
		INSERT INTO customers (id, name, phone, address, total_debt, status)
		VALUES (?, ?, ?, ?, ?, ?)
	`, c.ID, c.Name, c.Phone, c.Address, c.TotalDebt, string(c.Status))
	return err
}

// UpdateCustomer replaces name, phone, and address. Debt and status are
// owned by the ledger operations below.
func (db *DB) UpdateCustomer(c *domain.Customer) error {
	if err := validateCustomer(c); err != nil {
		return err
	}
	res, err := db.db.Exec(`
		UPDATE customers SET name = ?, phone = ?, address = ? WHERE id = ?
	`, c.Name, c.Phone, c.Address, c.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrCustomerNotFound
	}
	return nil
}

// GetCustomer resolves a customer by id.
func (db *DB) GetCustomer(id string) (*domain.Customer, error) {
	return db.scanCustomer(db.db.QueryRow(customerSelect+` WHERE id = ?`, id))
}

// FindCustomerByPhone resolves a customer by phone number, the natural key
// the cashier has at the register.
func (db *DB) FindCustomerByPhone(phone string) (*domain.Customer, error) {
	return db.scanCustomer(db.db.QueryRow(customerSelect+` WHERE phone = ?`, phone))
}

// ListCustomers returns all customers, highest debt first.
func (db *DB) ListCustomers() ([]domain.Customer, error) {
	rows, err := db.db.Query(customerSelect + ` ORDER BY total_debt DESC, name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Customer
	for rows.Next() {
		c, err := scanCustomerRow(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *c)
	}
	return result, rows.Err()
}

// DeleteCustomer removes a customer. Refused while kasbon is outstanding.
func (db *DB) DeleteCustomer(id string) error {
	c, err := db.GetCustomer(id)
	if err != nil {
		return err
	}
	if c.TotalDebt > 0 {
		return domain.ErrCustomerHasDebt
	}
	_, err = db.db.Exec(`DELETE FROM customers WHERE id = ?`, id)
	return err
}

// ─── Kasbon Ledger Operations ───────────────────────────────────────────────

// RecordDebt applies a credit commit's outstanding balance: the customer is
// resolved by phone (created when new), debt is incremented, and the account
// goes active. Satisfies domain.CustomerLedger.
func (db *DB) RecordDebt(balance domain.OutstandingBalance) (*domain.Customer, error) {
	now := time.Now().UTC().Format(time.RFC3339)
	c := balance.Customer
	if err := validateCustomer(&c); err != nil {
		return nil, domain.ErrMissingCustomerInfo
	}
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	_, err := db.db.Exec(`
		INSERT INTO customers (id, name, phone, address, total_debt, last_transaction, status)
		VALUES (?, ?, ?, ?, ?, ?, 'active')
		ON CONFLICT(phone) DO UPDATE SET
			name             = excluded.name,
			address          = CASE WHEN excluded.address != '' THEN excluded.address ELSE address END,
			total_debt       = total_debt + excluded.total_debt,
			last_transaction = excluded.last_transaction,
			status           = 'active'
	`, c.ID, c.Name, c.Phone, c.Address, balance.Amount, now)
	if err != nil {
		return nil, err
	}
	return db.FindCustomerByPhone(c.Phone)
}

// PayDebt settles part or all of a customer's kasbon. Payments are clamped
// at zero; a fully settled account flips to inactive.
func (db *DB) PayDebt(id string, amount int64) (*domain.Customer, error) {
	if amount <= 0 {
		return nil, domain.ErrInvalidCustomer
	}
	res, err := db.db.Exec(`
		UPDATE customers
		SET total_debt = MAX(0, total_debt - ?),
		    status     = CASE WHEN total_debt - ? <= 0 THEN 'inactive' ELSE 'active' END
		WHERE id = ?
	`, amount, amount, id)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, domain.ErrCustomerNotFound
	}
	return db.GetCustomer(id)
}

// KasbonCustomerCount returns how many customers carry outstanding debt.
func (db *DB) KasbonCustomerCount() (int, error) {
	var n int
	err := db.db.QueryRow(`SELECT COUNT(*) FROM customers WHERE total_debt > 0`).Scan(&n)
	return n, err
}

// ─── Helpers ────────────────────────────────────────────────────────────────

const customerSelect = `SELECT id, name, phone, address, total_debt, last_transaction, status FROM customers`

type rowScanner interface {
	Scan(dest ...any) error
}

func (db *DB) scanCustomer(row *sql.Row) (*domain.Customer, error) {
	c, err := scanCustomerRow(row)
	if err == sql.ErrNoRows {
		return nil, domain.ErrCustomerNotFound
	}
	return c, err
}

func scanCustomerRow(row rowScanner) (*domain.Customer, error) {
	var c domain.Customer
	var last sql.NullString
	var status string
	if err := row.Scan(&c.ID, &c.Name, &c.Phone, &c.Address, &c.TotalDebt, &last, &status); err != nil {
		return nil, err
	}
	c.Status = domain.CustomerStatus(status)
	if last.Valid {
		c.LastTransaction, _ = time.Parse(time.RFC3339, last.String)
	}
	return &c, nil
}

func validateCustomer(c *domain.Customer) error {
	if strings.TrimSpace(c.Name) == "" || strings.TrimSpace(c.Phone) == "" {
		return domain.ErrInvalidCustomer
	}
	return nil
}
