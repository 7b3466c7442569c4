package model

import (
	"strings"
	"time"
)

// TimeLayout is the layout of the transaction time column (YYYY-MM-DD HH:MM:SS).
const TimeLayout = "2006-01-02 15:04:05"

// TransactionType is the kind of trade recorded in the ledger.
// Values are stored lower-case in the transactions table.
type TransactionType string

const (
	TransactionPurchase TransactionType = "purchase"
	TransactionSell     TransactionType = "sell"
)

// Valid reports whether t is one of the known transaction types.
func (t TransactionType) Valid() bool {
	return t == TransactionPurchase || t == TransactionSell
}

// Label returns the type with a capitalised first letter, as shown in the history table.
func (t TransactionType) Label() string {
	s := string(t)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// Transaction represents a single executed trade.
// Transactions are appended once and never updated or deleted.
type Transaction struct {
	ID     int64           `json:"id"`
	Type   TransactionType `json:"type"`
	Symbol string          `json:"symbol"`
	Amount float64         `json:"amount"`
	Price  float64         `json:"price"`
	Value  float64         `json:"value"`
	Time   time.Time       `json:"time"`
}
