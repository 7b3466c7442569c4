package validation

import (
	"fmt"
	"math"
	"strings"

	"github.com/ndewijer/crypto-trade-simulator/internal/apperrors"
)

// NormalizeSymbol trims and upper-cases a ticker symbol.
// Returns apperrors.ErrInvalidSymbol if nothing is left.
func NormalizeSymbol(symbol string) (string, error) {
	s := strings.ToUpper(strings.TrimSpace(symbol))
	if s == "" {
		return "", apperrors.ErrInvalidSymbol
	}
	if strings.ContainsAny(s, " ,\t") {
		return "", fmt.Errorf("%w: %q is not a single ticker", apperrors.ErrInvalidSymbol, symbol)
	}
	return s, nil
}

// ValidateAmount checks that a trade quantity is a finite number greater than zero.
func ValidateAmount(amount float64) error {
	if !(amount > 0) || math.IsInf(amount, 1) {
		return fmt.Errorf("%w: got %v", apperrors.ErrInvalidAmount, amount)
	}
	return nil
}

// ValidatePrice checks that a quote price is a finite number greater than zero.
func ValidatePrice(price float64) error {
	if !(price > 0) || math.IsInf(price, 1) {
		return fmt.Errorf("%w: got %v", apperrors.ErrInvalidPrice, price)
	}
	return nil
}

// ValidateTrade validates the inputs of a purchase or sale and returns the normalized symbol.
// The amount is checked first, so a zero quantity is always reported as an invalid amount.
func ValidateTrade(symbol string, amount, price float64) (string, error) {
	if err := ValidateAmount(amount); err != nil {
		return "", err
	}
	if err := ValidatePrice(price); err != nil {
		return "", err
	}
	return NormalizeSymbol(symbol)
}
