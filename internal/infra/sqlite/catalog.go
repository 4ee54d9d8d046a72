// Product catalog schema and operations.
// The DB satisfies domain.Catalog for the checkout engine.
package sqlite

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tunasmustika/kasir/internal/domain"
)

// ─── Catalog Schema ─────────────────────────────────────────────────────────

func catalogMigrations() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS products (
			id         TEXT PRIMARY KEY,
			name       TEXT NOT NULL,
			category   TEXT NOT NULL DEFAULT '',
			price      INTEGER NOT NULL CHECK(price >= 0),
			stock      INTEGER NOT NULL DEFAULT 0 CHECK(stock >= 0),
			unit       TEXT NOT NULL,
			created_at TEXT NOT NULL DEFAULT (datetime('now')),
			updated_at TEXT NOT NULL DEFAULT (datetime('now'))
		)`,
		`CREATE INDEX IF NOT EXISTS idx_products_name ON products(name)`,
		`CREATE INDEX IF NOT EXISTS idx_products_category ON products(category)`,
	}
}

// ─── Catalog Operations ─────────────────────────────────────────────────────

// CreateProduct inserts a new product. A fresh id is assigned when empty.
func (db *DB) CreateProduct(p *domain.Product) error {
	if err := validateProduct(p); err != nil {
		return err
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	_, err := db.db.Exec(`
		INSERT INTO products (id, name, category, price, stock, unit)
		VALUES (?, ?, ?, ?, ?, ?)
	`, p.ID, p.Name, p.Category, p.Price, p.Stock, p.Unit)
	if err != nil && strings.Contains(err.Error(), "UNIQUE") {
		return domain.ErrProductExists
	}
	return err
}

// UpdateProduct replaces a product's editable fields.
func (db *DB) UpdateProduct(p *domain.Product) error {
	if err := validateProduct(p); err != nil {
		return err
	}
	res, err := db.db.Exec(`
		UPDATE products
		SET name = ?, category = ?, price = ?, stock = ?, unit = ?,
		    updated_at = datetime('now')
		WHERE id = ?
	`, p.Name, p.Category, p.Price, p.Stock, p.Unit, p.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrUnknownProduct
	}
	return nil
}

// GetProduct resolves a product by id. Satisfies domain.Catalog.
func (db *DB) GetProduct(id string) (*domain.Product, error) {
	var p domain.Product
	var created, updated string
	err := db.db.QueryRow(`
		SELECT id, name, category, price, stock, unit, created_at, updated_at
		FROM products WHERE id = ?
	`, id).Scan(&p.ID, &p.Name, &p.Category, &p.Price, &p.Stock, &p.Unit, &created, &updated)
	if err == sql.ErrNoRows {
		return nil, domain.ErrUnknownProduct
	}
	if err != nil {
		return nil, err
	}
	p.CreatedAt = parseSQLiteTime(created)
	p.UpdatedAt = parseSQLiteTime(updated)
	return &p, nil
}

// ListProducts returns the catalog, filtered by a case-insensitive name
// query when non-empty, ordered by name.
func (db *DB) ListProducts(query string) ([]domain.Product, error) {
	q := `SELECT id, name, category, price, stock, unit, created_at, updated_at
	      FROM products`
	var args []any
	if query != "" {
		q += ` WHERE name LIKE ? COLLATE NOCASE`
		args = append(args, "%"+query+"%")
	}
	q += ` ORDER BY name`

	rows, err := db.db.Query(q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Product
	for rows.Next() {
		var p domain.Product
		var created, updated string
		if err := rows.Scan(&p.ID, &p.Name, &p.Category, &p.Price, &p.Stock, &p.Unit, &created, &updated); err != nil {
			return nil, err
		}
		p.CreatedAt = parseSQLiteTime(created)
		p.UpdatedAt = parseSQLiteTime(updated)
		result = append(result, p)
	}
	return result, rows.Err()
}

// DeleteProduct removes a product from the catalog.
func (db *DB) DeleteProduct(id string) error {
	res, err := db.db.Exec(`DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrUnknownProduct
	}
	return nil
}

// AdjustStock applies a manual stock correction (delta may be negative).
// The stock >= 0 invariant is enforced by the schema CHECK.
func (db *DB) AdjustStock(id string, delta int) error {
	res, err := db.db.Exec(`
		UPDATE products SET stock = stock + ?, updated_at = datetime('now')
		WHERE id = ?
	`, delta, id)
	if err != nil {
		if strings.Contains(err.Error(), "CHECK") {
			return fmt.Errorf("%w: stock cannot go below zero", domain.ErrInsufficientStock)
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrUnknownProduct
	}
	return nil
}

// ProductCount returns the catalog size.
func (db *DB) ProductCount() (int, error) {
	var n int
	err := db.db.QueryRow(`SELECT COUNT(*) FROM products`).Scan(&n)
	return n, err
}

func validateProduct(p *domain.Product) error {
	if strings.TrimSpace(p.Name) == "" || strings.TrimSpace(p.Unit) == "" ||
		p.Price < 0 || p.Stock < 0 {
		return domain.ErrInvalidProduct
	}
	return nil
}

// parseSQLiteTime accepts both datetime('now') and RFC3339 text.
func parseSQLiteTime(s string) time.Time {
	if t, err := time.Parse("2006-01-02 15:04:05", s); err == nil {
		return t
	}
	t, _ := time.Parse(time.RFC3339, s)
	return t
}
