package model

import "time"

// Quote is a point-in-time price for a symbol as returned by the market-data provider.
// Quotes are never persisted.
type Quote struct {
	Symbol      string    `json:"symbol"`
	Name        string    `json:"name"`
	Rank        int       `json:"rank"`
	Price       float64   `json:"price"`
	Currency    string    `json:"currency"`
	LastUpdated time.Time `json:"lastUpdated"`
}
