package coinmarketcap

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/ndewijer/crypto-trade-simulator/internal/apperrors"
	"github.com/ndewijer/crypto-trade-simulator/internal/model"
)

// DefaultBaseURL is the CoinMarketCap Pro API host.
const DefaultBaseURL = "https://pro-api.coinmarketcap.com"

// Client defines the interface for fetching market data.
// This interface enables dependency injection and testing with mock implementations.
type Client interface {
	FetchListing(ctx context.Context, start, limit int, currency string) ([]model.Quote, error)
	FetchQuote(ctx context.Context, symbol, currency string) (model.Quote, error)
}

// APIClient fetches listings and quotes from the CoinMarketCap Pro API.
type APIClient struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

// NewAPIClient creates a new CoinMarketCap client.
// An empty baseURL selects DefaultBaseURL; a zero timeout disables the request timeout.
func NewAPIClient(baseURL, apiKey string, timeout time.Duration) *APIClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &APIClient{
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: &loggingTransport{next: http.DefaultTransport},
		},
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
	}
}

// FetchListing returns limit assets ordered by rank, starting at rank start (1-based),
// priced in currency.
//
// Errors wrap apperrors.ErrQuoteUnavailable.
func (c *APIClient) FetchListing(ctx context.Context, start, limit int, currency string) ([]model.Quote, error) {
	params := url.Values{}
	params.Set("start", strconv.Itoa(start))
	params.Set("limit", strconv.Itoa(limit))
	params.Set("convert", currency)

	var response ListingResponse
	if err := c.query(ctx, "/v1/cryptocurrency/listings/latest", params, &response); err != nil {
		return nil, err
	}

	quotes := make([]model.Quote, 0, len(response.Data))
	for _, crypto := range response.Data {
		quote, err := ParseQuote(crypto, currency)
		if err != nil {
			return nil, err
		}
		quotes = append(quotes, quote)
	}
	return quotes, nil
}

// FetchQuote returns the latest quote of symbol priced in currency.
//
// Returns an error wrapping apperrors.ErrSymbolNotFound when CoinMarketCap does not
// know the symbol, and apperrors.ErrQuoteUnavailable for any other failure.
func (c *APIClient) FetchQuote(ctx context.Context, symbol, currency string) (model.Quote, error) {
	params := url.Values{}
	params.Set("symbol", symbol)
	params.Set("convert", currency)

	var response QuoteResponse
	if err := c.query(ctx, "/v1/cryptocurrency/quotes/latest", params, &response); err != nil {
		return model.Quote{}, err
	}

	crypto, ok := response.Data[symbol]
	if !ok {
		return model.Quote{}, fmt.Errorf("%w: %s", apperrors.ErrSymbolNotFound, symbol)
	}
	return ParseQuote(crypto, currency)
}

// ParseQuote converts a raw API entry into a model.Quote for the given conversion currency.
// Returns an error wrapping apperrors.ErrQuoteUnavailable if the entry has no quote in that currency.
func ParseQuote(crypto Cryptocurrency, currency string) (model.Quote, error) {
	value, ok := crypto.Quote[currency]
	if !ok {
		return model.Quote{}, fmt.Errorf("%w: no %s quote for %s", apperrors.ErrQuoteUnavailable, currency, crypto.Symbol)
	}

	lastUpdated := value.LastUpdated
	if lastUpdated.IsZero() {
		lastUpdated = crypto.LastUpdated
	}

	return model.Quote{
		Symbol:      crypto.Symbol,
		Name:        crypto.Name,
		Rank:        crypto.CMCRank,
		Price:       value.Price,
		Currency:    currency,
		LastUpdated: lastUpdated,
	}, nil
}

// query executes a GET request against the API and decodes the JSON body into out.
//
// The request carries the API key in the X-CMC_PRO_API_KEY header. A non-200
// response or a non-zero status.error_code is turned into an error: invalid
// symbol errors wrap apperrors.ErrSymbolNotFound, everything else wraps
// apperrors.ErrQuoteUnavailable.
func (c *APIClient) query(ctx context.Context, path string, params url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrQuoteUnavailable, err)
	}

	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-CMC_PRO_API_KEY", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrQuoteUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: failed to read response: %w", apperrors.ErrQuoteUnavailable, err)
	}

	var envelope struct {
		Status Status `json:"status"`
	}
	// Error bodies are not guaranteed to be JSON; the HTTP status decides below.
	_ = json.Unmarshal(data, &envelope)

	if resp.StatusCode != http.StatusOK || envelope.Status.ErrorCode != 0 {
		return statusError(resp.StatusCode, envelope.Status)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %w", apperrors.ErrQuoteUnavailable, err)
	}

	return nil
}

func statusError(httpStatus int, status Status) error {
	msg := status.Message()
	if msg == "" {
		msg = http.StatusText(httpStatus)
	}

	// CoinMarketCap answers unknown tickers with 400 `Invalid value for "symbol"`.
	if status.ErrorCode == http.StatusBadRequest && strings.Contains(msg, `"symbol"`) {
		return fmt.Errorf("%w: %s", apperrors.ErrSymbolNotFound, msg)
	}

	return fmt.Errorf("%w: coinmarketcap error %d (http %d): %s",
		apperrors.ErrQuoteUnavailable, status.ErrorCode, httpStatus, msg)
}
