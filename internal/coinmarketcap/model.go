package coinmarketcap

import "time"

// Status is the status block present on every CoinMarketCap API response.
// A non-zero ErrorCode means the request failed; ErrorMessage then holds the reason.
type Status struct {
	Timestamp    string  `json:"timestamp"`
	ErrorCode    int     `json:"error_code"`
	ErrorMessage *string `json:"error_message"`
	Elapsed      int     `json:"elapsed"`
	CreditCount  int     `json:"credit_count"`
}

// Message returns the status error message, or an empty string when there is none.
func (s Status) Message() string {
	if s.ErrorMessage == nil {
		return ""
	}
	return *s.ErrorMessage
}

// Cryptocurrency is a single asset entry as returned by the listings and quotes endpoints.
//
// The Quote map is keyed by the conversion currency requested with the convert
// parameter (e.g. "USD").
type Cryptocurrency struct {
	ID          int                   `json:"id"`
	Name        string                `json:"name"`
	Symbol      string                `json:"symbol"`
	Slug        string                `json:"slug"`
	CMCRank     int                   `json:"cmc_rank"`
	LastUpdated time.Time             `json:"last_updated"`
	Quote       map[string]QuoteValue `json:"quote"`
}

// QuoteValue holds the market data of an asset in one conversion currency.
type QuoteValue struct {
	Price            float64   `json:"price"`
	Volume24h        float64   `json:"volume_24h"`
	PercentChange24h float64   `json:"percent_change_24h"`
	MarketCap        float64   `json:"market_cap"`
	LastUpdated      time.Time `json:"last_updated"`
}

// ListingResponse is the body of GET /v1/cryptocurrency/listings/latest.
// Data is ordered by CoinMarketCap rank.
type ListingResponse struct {
	Status Status           `json:"status"`
	Data   []Cryptocurrency `json:"data"`
}

// QuoteResponse is the body of GET /v1/cryptocurrency/quotes/latest when queried by symbol.
// Data is keyed by the requested symbol.
type QuoteResponse struct {
	Status Status                    `json:"status"`
	Data   map[string]Cryptocurrency `json:"data"`
}
