package coinmarketcap_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/ndewijer/crypto-trade-simulator/internal/apperrors"
	"github.com/ndewijer/crypto-trade-simulator/internal/coinmarketcap"
	"github.com/ndewijer/crypto-trade-simulator/internal/testutil"
)

const (
	listingPath = "/v1/cryptocurrency/listings/latest"
	quotePath   = "/v1/cryptocurrency/quotes/latest"
)

// TestAPIClient_FetchQuote tests the quotes endpoint.
//
// WHY: Every trade is priced from this call. An unknown ticker must be told apart
// from an API outage so the user gets the right message.
func TestAPIClient_FetchQuote(t *testing.T) {
	ctx := context.Background()

	t.Run("parses quote and sends credentials", func(t *testing.T) {
		srv := testutil.NewCMCServer(t).
			Handle(quotePath, http.StatusOK, testutil.CMCQuoteJSON("BTC", "Bitcoin", 1, 43210.5))
		client := coinmarketcap.NewAPIClient(srv.URL, "test-key", time.Second)

		quote, err := client.FetchQuote(ctx, "BTC", "USD")
		if err != nil {
			t.Fatalf("FetchQuote() returned unexpected error: %v", err)
		}

		if quote.Symbol != "BTC" || quote.Name != "Bitcoin" || quote.Rank != 1 {
			t.Errorf("Unexpected quote %+v", quote)
		}
		if quote.Price != 43210.5 {
			t.Errorf("Expected price 43210.5, got %v", quote.Price)
		}
		if quote.Currency != "USD" {
			t.Errorf("Expected currency USD, got %s", quote.Currency)
		}
		want := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)
		if !quote.LastUpdated.Equal(want) {
			t.Errorf("Expected LastUpdated %v, got %v", want, quote.LastUpdated)
		}

		req := srv.LastRequest()
		if got := req.Header.Get("X-CMC_PRO_API_KEY"); got != "test-key" {
			t.Errorf("Expected API key header, got %q", got)
		}
		if got := req.URL.Query().Get("symbol"); got != "BTC" {
			t.Errorf("Expected symbol=BTC, got %q", got)
		}
		if got := req.URL.Query().Get("convert"); got != "USD" {
			t.Errorf("Expected convert=USD, got %q", got)
		}
	})

	t.Run("invalid symbol error code", func(t *testing.T) {
		srv := testutil.NewCMCServer(t).
			Handle(quotePath, http.StatusBadRequest, testutil.CMCErrorJSON(400, `Invalid value for "symbol": "NOPE"`))
		client := coinmarketcap.NewAPIClient(srv.URL, "test-key", time.Second)

		_, err := client.FetchQuote(ctx, "NOPE", "USD")
		if !errors.Is(err, apperrors.ErrSymbolNotFound) {
			t.Errorf("Expected ErrSymbolNotFound, got %v", err)
		}
	})

	t.Run("symbol missing from data", func(t *testing.T) {
		srv := testutil.NewCMCServer(t).
			Handle(quotePath, http.StatusOK, testutil.CMCQuoteJSON("ETH", "Ethereum", 2, 50))
		client := coinmarketcap.NewAPIClient(srv.URL, "test-key", time.Second)

		_, err := client.FetchQuote(ctx, "BTC", "USD")
		if !errors.Is(err, apperrors.ErrSymbolNotFound) {
			t.Errorf("Expected ErrSymbolNotFound, got %v", err)
		}
	})

	t.Run("missing conversion currency", func(t *testing.T) {
		srv := testutil.NewCMCServer(t).
			Handle(quotePath, http.StatusOK, testutil.CMCQuoteJSON("BTC", "Bitcoin", 1, 100))
		client := coinmarketcap.NewAPIClient(srv.URL, "test-key", time.Second)

		_, err := client.FetchQuote(ctx, "BTC", "EUR")
		if !errors.Is(err, apperrors.ErrQuoteUnavailable) {
			t.Errorf("Expected ErrQuoteUnavailable, got %v", err)
		}
	})

	unavailable := []struct {
		name   string
		status int
		body   string
	}{
		{"invalid api key", http.StatusUnauthorized, testutil.CMCErrorJSON(1001, "This API Key is invalid.")},
		{"rate limited", http.StatusTooManyRequests, testutil.CMCErrorJSON(1008, "You've exceeded your API Key's HTTP request rate limit.")},
		{"server error with html body", http.StatusInternalServerError, "<html>oops</html>"},
		{"malformed json", http.StatusOK, `{"status":`},
		{"other bad request", http.StatusBadRequest, testutil.CMCErrorJSON(400, `Invalid value for "convert"`)},
	}

	for _, tt := range unavailable {
		t.Run(tt.name, func(t *testing.T) {
			srv := testutil.NewCMCServer(t).Handle(quotePath, tt.status, tt.body)
			client := coinmarketcap.NewAPIClient(srv.URL, "test-key", time.Second)

			_, err := client.FetchQuote(ctx, "BTC", "USD")
			if !errors.Is(err, apperrors.ErrQuoteUnavailable) {
				t.Errorf("Expected ErrQuoteUnavailable, got %v", err)
			}
			if errors.Is(err, apperrors.ErrSymbolNotFound) {
				t.Errorf("Did not expect ErrSymbolNotFound, got %v", err)
			}
		})
	}

	t.Run("unreachable server", func(t *testing.T) {
		srv := testutil.NewCMCServer(t)
		url := srv.URL
		srv.Close()
		client := coinmarketcap.NewAPIClient(url, "test-key", time.Second)

		_, err := client.FetchQuote(ctx, "BTC", "USD")
		if !errors.Is(err, apperrors.ErrQuoteUnavailable) {
			t.Errorf("Expected ErrQuoteUnavailable, got %v", err)
		}
	})
}

// TestAPIClient_FetchListing tests the listings endpoint.
func TestAPIClient_FetchListing(t *testing.T) {
	ctx := context.Background()

	t.Run("parses ranked listing", func(t *testing.T) {
		srv := testutil.NewCMCServer(t).Handle(listingPath, http.StatusOK, testutil.CMCListingJSON())
		client := coinmarketcap.NewAPIClient(srv.URL+"/", "test-key", time.Second)

		quotes, err := client.FetchListing(ctx, 1, 2, "USD")
		if err != nil {
			t.Fatalf("FetchListing() returned unexpected error: %v", err)
		}
		if len(quotes) != 2 {
			t.Fatalf("Expected 2 quotes, got %d", len(quotes))
		}
		if quotes[0].Symbol != "BTC" || quotes[1].Symbol != "ETH" || quotes[1].Rank != 2 {
			t.Errorf("Unexpected listing %+v", quotes)
		}

		q := srv.LastRequest().URL.Query()
		if q.Get("start") != "1" || q.Get("limit") != "2" || q.Get("convert") != "USD" {
			t.Errorf("Unexpected query %s", srv.LastRequest().URL.RawQuery)
		}
	})

	t.Run("api error", func(t *testing.T) {
		srv := testutil.NewCMCServer(t).
			Handle(listingPath, http.StatusForbidden, testutil.CMCErrorJSON(1006, "Your API Key subscription plan doesn't support this endpoint."))
		client := coinmarketcap.NewAPIClient(srv.URL, "test-key", time.Second)

		if _, err := client.FetchListing(ctx, 1, 10, "USD"); !errors.Is(err, apperrors.ErrQuoteUnavailable) {
			t.Errorf("Expected ErrQuoteUnavailable, got %v", err)
		}
	})
}

// TestParseQuote tests conversion of a raw entry.
func TestParseQuote(t *testing.T) {
	updated := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

	t.Run("falls back to entry update time", func(t *testing.T) {
		crypto := coinmarketcap.Cryptocurrency{
			Name:        "Bitcoin",
			Symbol:      "BTC",
			CMCRank:     1,
			LastUpdated: updated,
			Quote: map[string]coinmarketcap.QuoteValue{
				"USD": {Price: 100},
			},
		}

		quote, err := coinmarketcap.ParseQuote(crypto, "USD")
		if err != nil {
			t.Fatalf("ParseQuote() returned unexpected error: %v", err)
		}
		if !quote.LastUpdated.Equal(updated) {
			t.Errorf("Expected LastUpdated %v, got %v", updated, quote.LastUpdated)
		}
	})

	t.Run("no quote in currency", func(t *testing.T) {
		crypto := coinmarketcap.Cryptocurrency{Symbol: "BTC"}

		if _, err := coinmarketcap.ParseQuote(crypto, "USD"); !errors.Is(err, apperrors.ErrQuoteUnavailable) {
			t.Errorf("Expected ErrQuoteUnavailable, got %v", err)
		}
	})
}
