package domain

import "errors"

// ─── Sentinel Errors ────────────────────────────────────────────────────────
// Domain errors are pure — no infrastructure dependency.
// Checkout errors are user-input failures: recoverable, reported
// synchronously, and never partially applied.

var (
	// Checkout errors
	ErrUnknownProduct      = errors.New("product not found")
	ErrInsufficientStock   = errors.New("quantity exceeds available stock")
	ErrInvalidQuantity     = errors.New("quantity must be a positive integer")
	ErrEmptyCart           = errors.New("cart is empty")
	ErrInsufficientPayment = errors.New("amount tendered is below the total")
	ErrMissingCustomerInfo = errors.New("kasbon requires customer name and phone")
	ErrInvalidPaymentType  = errors.New("payment type must be cash or credit")

	// Catalog errors
	ErrProductExists  = errors.New("product already exists")
	ErrInvalidProduct = errors.New("product requires name, unit, non-negative price and stock")

	// Customer errors
	ErrCustomerNotFound = errors.New("customer not found")
	ErrCustomerHasDebt  = errors.New("customer still has outstanding kasbon")
	ErrInvalidCustomer  = errors.New("customer requires name and phone")

	// Auth errors
	ErrInvalidCredentials = errors.New("invalid username or password")

	// History errors
	ErrTransactionNotFound = errors.New("transaction not found")
)
