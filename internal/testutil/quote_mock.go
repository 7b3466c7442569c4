package testutil

import (
	"context"
	"fmt"
	"sync"

	"github.com/ndewijer/crypto-trade-simulator/internal/apperrors"
	"github.com/ndewijer/crypto-trade-simulator/internal/model"
)

// MockQuoteClient is a mock implementation of coinmarketcap.Client for testing.
// It returns predefined quotes instead of making actual API calls and is safe for
// concurrent use.
type MockQuoteClient struct {
	mu sync.Mutex

	// Quotes maps a symbol to the quote returned for it
	Quotes map[string]model.Quote
	// Listing is returned by FetchListing, sliced by start and limit
	Listing []model.Quote
	// MockError is the error to return from every fetch
	MockError error
	// SymbolErrors are errors returned for individual symbols
	SymbolErrors map[string]error
	// QueryCount tracks how many times a fetch method was called
	QueryCount int
}

// NewMockQuoteClient creates a new mock client knowing BTC, ETH and USDT.
func NewMockQuoteClient() *MockQuoteClient {
	listing := []model.Quote{
		NewQuote("BTC", "Bitcoin", 1, 100),
		NewQuote("ETH", "Ethereum", 2, 50),
		NewQuote("USDT", "Tether", 3, 1),
	}
	quotes := make(map[string]model.Quote, len(listing))
	for _, q := range listing {
		quotes[q.Symbol] = q
	}
	return &MockQuoteClient{
		Quotes:       quotes,
		Listing:      listing,
		SymbolErrors: map[string]error{},
	}
}

// FetchListing returns the configured listing starting at rank start.
func (m *MockQuoteClient) FetchListing(_ context.Context, start, limit int, _ string) ([]model.Quote, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.QueryCount++
	if m.MockError != nil {
		return nil, m.MockError
	}
	from := min(start-1, len(m.Listing))
	to := min(from+limit, len(m.Listing))
	return append([]model.Quote{}, m.Listing[from:to]...), nil
}

// FetchQuote returns the configured quote for symbol.
// Unknown symbols return apperrors.ErrSymbolNotFound.
func (m *MockQuoteClient) FetchQuote(_ context.Context, symbol, _ string) (model.Quote, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.QueryCount++
	if m.MockError != nil {
		return model.Quote{}, m.MockError
	}
	if err, ok := m.SymbolErrors[symbol]; ok {
		return model.Quote{}, err
	}
	quote, ok := m.Quotes[symbol]
	if !ok {
		return model.Quote{}, fmt.Errorf("%w: %s", apperrors.ErrSymbolNotFound, symbol)
	}
	return quote, nil
}

// WithError configures the mock to return the specified error.
func (m *MockQuoteClient) WithError(err error) *MockQuoteClient {
	m.MockError = err
	return m
}

// WithQuote adds or replaces the quote returned for its symbol.
func (m *MockQuoteClient) WithQuote(quote model.Quote) *MockQuoteClient {
	m.Quotes[quote.Symbol] = quote
	return m
}

// WithPrice changes the price of a known symbol.
func (m *MockQuoteClient) WithPrice(symbol string, price float64) *MockQuoteClient {
	quote := m.Quotes[symbol]
	quote.Symbol = symbol
	quote.Price = price
	m.Quotes[symbol] = quote
	return m
}

// WithSymbolError makes lookups of symbol fail with err.
func (m *MockQuoteClient) WithSymbolError(symbol string, err error) *MockQuoteClient {
	m.SymbolErrors[symbol] = err
	return m
}

// Count returns QueryCount under the lock.
func (m *MockQuoteClient) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.QueryCount
}
