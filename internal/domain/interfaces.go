package domain

// ─── Service Interfaces ─────────────────────────────────────────────────────
// These interfaces define boundaries between layers.
// Infrastructure implements them; the application layer depends on them.

// Catalog abstracts product lookup for the checkout engine.
// The engine only reads the catalog — stock is a ceiling check, never
// decremented on commit.
type Catalog interface {
	// GetProduct resolves a product by id. Returns ErrUnknownProduct
	// when the id does not resolve.
	GetProduct(id string) (*Product, error)
}

// TransactionSink accepts a committed transaction for persistence and
// receipt display. Append must be atomic and order-preserving relative to
// the calling session.
type TransactionSink interface {
	Append(tx *Transaction) error
}

// CustomerLedger records kasbon created by credit commits. It owns account
// creation and balance increments; the checkout engine never persists
// customer debt itself.
type CustomerLedger interface {
	RecordDebt(balance OutstandingBalance) (*Customer, error)
}

// Authenticator resolves an operator's role from credentials.
// The checkout engine itself is role-agnostic.
type Authenticator interface {
	Authenticate(username, password string) (Role, error)
}
