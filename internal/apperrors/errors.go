package apperrors

import "errors"

// Market data errors represent failures to obtain a quote from the provider.
var (
	// ErrSymbolNotFound indicates that the provider has no data for the requested ticker.
	ErrSymbolNotFound = errors.New("symbol not found")

	// ErrQuoteUnavailable indicates a transport or API failure while fetching quotes.
	// It is distinct from ErrSymbolNotFound: the symbol may exist, but no price could be obtained.
	ErrQuoteUnavailable = errors.New("quote unavailable")
)

// Business logic errors represent trades rejected by the ledger.
// A rejected trade never changes the balance or the transaction log.
var (
	// ErrInvalidAmount indicates a trade quantity that is zero, negative or not a number.
	ErrInvalidAmount = errors.New("amount must be positive")

	// ErrInvalidPrice indicates a quote price that is zero, negative or not a number.
	ErrInvalidPrice = errors.New("price must be positive")

	// ErrInvalidSymbol indicates that a required ticker symbol is empty.
	ErrInvalidSymbol = errors.New("symbol is required")

	// ErrInsufficientFunds indicates that a purchase costs more than the current balance.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrInsufficientHolding indicates that a sale exceeds the amount currently held.
	ErrInsufficientHolding = errors.New("insufficient holding")
)

// Storage errors represent failures of the persisted store.
var (
	// ErrStorage wraps every failure to read or write the balance and transaction tables.
	ErrStorage = errors.New("storage error")

	// ErrBalanceNotInitialized indicates that the balance row is missing.
	// This only happens when the store was never initialized.
	ErrBalanceNotInitialized = errors.New("balance not initialized")
)
