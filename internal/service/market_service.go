package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/ndewijer/crypto-trade-simulator/internal/apperrors"
	"github.com/ndewijer/crypto-trade-simulator/internal/coinmarketcap"
	"github.com/ndewijer/crypto-trade-simulator/internal/model"
	"github.com/ndewijer/crypto-trade-simulator/internal/validation"
)

const (
	// DefaultListLimit is the number of top-ranked assets shown by TopAssets.
	DefaultListLimit = 10
	// DefaultCurrency is the currency quotes are converted to.
	DefaultCurrency = "USD"

	maxConcurrentQuotes = 4
)

// MarketService handles quote lookups against the market data client.
type MarketService struct {
	client    coinmarketcap.Client
	currency  string
	listLimit int
}

// NewMarketService creates a new MarketService. Empty or non-positive settings fall back to the defaults.
func NewMarketService(client coinmarketcap.Client, currency string, listLimit int) *MarketService {
	if currency == "" {
		currency = DefaultCurrency
	}
	if listLimit <= 0 {
		listLimit = DefaultListLimit
	}
	return &MarketService{
		client:    client,
		currency:  currency,
		listLimit: listLimit,
	}
}

// Currency returns the currency all quotes and balances are expressed in.
func (s *MarketService) Currency() string {
	return s.currency
}

// TopAssets returns the configured number of assets with the best rank.
func (s *MarketService) TopAssets(ctx context.Context) ([]model.Quote, error) {
	return s.Listing(ctx, 1, s.listLimit)
}

// Listing returns limit assets ordered by rank, starting at rank start.
func (s *MarketService) Listing(ctx context.Context, start, limit int) ([]model.Quote, error) {
	if start < 1 {
		start = 1
	}
	if limit < 1 {
		limit = s.listLimit
	}
	return s.client.FetchListing(ctx, start, limit, s.currency)
}

// Quote returns the latest quote for symbol.
// Returns an error wrapping apperrors.ErrSymbolNotFound or apperrors.ErrQuoteUnavailable on failure.
func (s *MarketService) Quote(ctx context.Context, symbol string) (model.Quote, error) {
	symbol, err := validation.NormalizeSymbol(symbol)
	if err != nil {
		return model.Quote{}, err
	}
	return s.client.FetchQuote(ctx, symbol, s.currency)
}

// QuoteResult is the outcome of one lookup in a Quotes batch.
type QuoteResult struct {
	Symbol string
	Quote  model.Quote
	Err    error
}

// Quotes looks up several symbols concurrently and returns one result per symbol, in input order.
//
// Unknown or invalid symbols are reported in their QuoteResult. A provider failure
// (apperrors.ErrQuoteUnavailable) cancels the remaining lookups and is returned as the error.
func (s *MarketService) Quotes(ctx context.Context, symbols []string) ([]QuoteResult, error) {
	results := make([]QuoteResult, len(symbols))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentQuotes)

	for i, symbol := range symbols {
		g.Go(func() error {
			quote, err := s.Quote(ctx, symbol)
			results[i] = QuoteResult{Symbol: symbol, Quote: quote, Err: err}
			if errors.Is(err, apperrors.ErrQuoteUnavailable) {
				return fmt.Errorf("quote %s: %w", symbol, err)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
