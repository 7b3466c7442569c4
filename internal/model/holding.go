package model

// Holding is the net quantity of an asset owned, derived from the transaction log.
// It is never persisted.
type Holding struct {
	Symbol string  `json:"symbol"`
	Amount float64 `json:"amount"`
}
