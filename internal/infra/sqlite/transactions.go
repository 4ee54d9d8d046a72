// Transaction history schema and operations.
// The DB satisfies domain.TransactionSink: the history is append-only —
// there are no UPDATE or DELETE paths for these tables.
package sqlite

import (
	"database/sql"
	"time"

	"github.com/tunasmustika/kasir/internal/domain"
)

// ─── Transaction Schema ─────────────────────────────────────────────────────

func transactionMigrations() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS transactions (
			id              TEXT PRIMARY KEY,
			payment_type    TEXT NOT NULL,
			total           INTEGER NOT NULL,
			amount_tendered INTEGER NOT NULL DEFAULT 0,
			change_due      INTEGER NOT NULL DEFAULT 0,
			customer_name   TEXT,
			customer_phone  TEXT,
			customer_addr   TEXT,
			created_at      TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_transactions_created ON transactions(created_at)`,

		// Line snapshots frozen at commit time. Catalog edits after the
		// sale never alter recorded names or prices.
		`CREATE TABLE IF NOT EXISTS transaction_lines (
			transaction_id TEXT NOT NULL REFERENCES transactions(id),
			line_index     INTEGER NOT NULL,
			product_id     TEXT NOT NULL,
			name           TEXT NOT NULL,
			price          INTEGER NOT NULL,
			unit           TEXT NOT NULL,
			quantity       INTEGER NOT NULL CHECK(quantity >= 1),
			PRIMARY KEY (transaction_id, line_index)
		)`,
	}
}

// ─── Sink ───────────────────────────────────────────────────────────────────

// Append persists a committed transaction with its line snapshots in a
// single database transaction. Satisfies domain.TransactionSink.
func (db *DB) Append(tx *domain.Transaction) error {
	dbtx, err := db.db.Begin()
	if err != nil {
		return err
	}
	defer dbtx.Rollback()

	var name, phone, addr sql.NullString
	if tx.Customer != nil {
		name = sql.NullString{String: tx.Customer.Name, Valid: true}
		phone = sql.NullString{String: tx.Customer.Phone, Valid: true}
		addr = sql.NullString{String: tx.Customer.Address, Valid: true}
	}

	_, err = dbtx.Exec(`
		INSERT INTO transactions (id, payment_type, total, amount_tendered, change_due,
		                          customer_name, customer_phone, customer_addr, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, tx.ID, string(tx.PaymentType), tx.Total, tx.AmountTendered, tx.ChangeDue,
		name, phone, addr, tx.Timestamp.UTC().Format(time.RFC3339))
	if err != nil {
		return err
	}

	for i, l := range tx.Lines {
		_, err = dbtx.Exec(`
			INSERT INTO transaction_lines (transaction_id, line_index, product_id, name, price, unit, quantity)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, tx.ID, i, l.ProductID, l.Name, l.Price, l.Unit, l.Quantity)
		if err != nil {
			return err
		}
	}
	return dbtx.Commit()
}

// ─── History Queries ────────────────────────────────────────────────────────

// GetTransaction loads one committed transaction with its lines.
func (db *DB) GetTransaction(id string) (*domain.Transaction, error) {
	var tx domain.Transaction
	var name, phone, addr sql.NullString
	var ptype, created string
	err := db.db.QueryRow(`
		SELECT id, payment_type, total, amount_tendered, change_due,
		       customer_name, customer_phone, customer_addr, created_at
		FROM transactions WHERE id = ?
	`, id).Scan(&tx.ID, &ptype, &tx.Total, &tx.AmountTendered, &tx.ChangeDue,
		&name, &phone, &addr, &created)
	if err == sql.ErrNoRows {
		return nil, domain.ErrTransactionNotFound
	}
	if err != nil {
		return nil, err
	}
	tx.PaymentType = domain.PaymentType(ptype)
	tx.Timestamp, _ = time.Parse(time.RFC3339, created)
	if name.Valid {
		tx.Customer = &domain.Customer{Name: name.String, Phone: phone.String, Address: addr.String}
	}

	rows, err := db.db.Query(`
		SELECT product_id, name, price, unit, quantity
		FROM transaction_lines WHERE transaction_id = ? ORDER BY line_index
	`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var l domain.CartLine
		if err := rows.Scan(&l.ProductID, &l.Name, &l.Price, &l.Unit, &l.Quantity); err != nil {
			return nil, err
		}
		tx.Lines = append(tx.Lines, l)
	}
	return &tx, rows.Err()
}

// ListTransactions returns recent transaction headers, newest first.
// Lines are not loaded; use GetTransaction for the full record.
func (db *DB) ListTransactions(limit int) ([]domain.Transaction, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := db.db.Query(`
		SELECT id, payment_type, total, amount_tendered, change_due,
		       customer_name, customer_phone, created_at
		FROM transactions ORDER BY created_at DESC, id DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Transaction
	for rows.Next() {
		var tx domain.Transaction
		var name, phone sql.NullString
		var ptype, created string
		if err := rows.Scan(&tx.ID, &ptype, &tx.Total, &tx.AmountTendered, &tx.ChangeDue,
			&name, &phone, &created); err != nil {
			return nil, err
		}
		tx.PaymentType = domain.PaymentType(ptype)
		tx.Timestamp, _ = time.Parse(time.RFC3339, created)
		if name.Valid {
			tx.Customer = &domain.Customer{Name: name.String, Phone: phone.String}
		}
		result = append(result, tx)
	}
	return result, rows.Err()
}

// TransactionCount returns the history size.
func (db *DB) TransactionCount() (int, error) {
	var n int
	err := db.db.QueryRow(`SELECT COUNT(*) FROM transactions`).Scan(&n)
	return n, err
}

// ─── Dashboard ──────────────────────────────────────────────────────────────

// Summary builds the storefront dashboard snapshot for the day starting
// at dayStart.
func (db *DB) Summary(dayStart time.Time) (domain.DashboardSummary, error) {
	var s domain.DashboardSummary
	since := dayStart.UTC().Format(time.RFC3339)

	err := db.db.QueryRow(`
		SELECT COUNT(*), COALESCE(SUM(total), 0)
		FROM transactions WHERE created_at >= ?
	`, since).Scan(&s.TransactionsToday, &s.RevenueToday)
	if err != nil {
		return s, err
	}
	if s.ProductCount, err = db.ProductCount(); err != nil {
		return s, err
	}
	s.KasbonCustomers, err = db.KasbonCustomerCount()
	return s, err
}
