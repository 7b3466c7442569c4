package presenter

import (
	"strconv"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"

	"github.com/ndewijer/crypto-trade-simulator/internal/model"
)

// Column headers of the tables shown by the simulator.
var (
	QuoteHeaders       = []string{"Rank", "Name", "Symbol", "Price"}
	HoldingHeaders     = []string{"Symbol", "Amount"}
	TransactionHeaders = []string{"Type", "Symbol", "Amount", "Price", "Value", "Time"}
)

// FormatMoney formats amount in currency with its symbol and minor units, e.g. "$1,000.00".
// Unknown currency codes are printed as "<amount> <code>".
func FormatMoney(amount float64, currency string) string {
	cur := money.GetCurrency(currency)
	if cur == nil {
		return decimal.NewFromFloat(amount).StringFixed(2) + " " + currency
	}
	minor := decimal.NewFromFloat(amount).Shift(int32(cur.Fraction)).Round(0)
	return money.New(minor.IntPart(), currency).Display()
}

// FormatDecimal formats a price or quantity with at most eight decimals and no trailing zeros.
func FormatDecimal(v float64) string {
	return decimal.NewFromFloat(v).Round(8).String()
}

// QuoteRows builds the rows of a quotes table.
func QuoteRows(quotes []model.Quote) [][]string {
	rows := make([][]string, 0, len(quotes))
	for _, q := range quotes {
		rows = append(rows, []string{
			strconv.Itoa(q.Rank),
			q.Name,
			q.Symbol,
			FormatDecimal(q.Price),
		})
	}
	return rows
}

// HoldingRows builds the rows of the wallet table.
func HoldingRows(holdings []model.Holding) [][]string {
	rows := make([][]string, 0, len(holdings))
	for _, h := range holdings {
		rows = append(rows, []string{h.Symbol, FormatDecimal(h.Amount)})
	}
	return rows
}

// TransactionRows builds the rows of the transaction history table.
func TransactionRows(transactions []model.Transaction, currency string) [][]string {
	rows := make([][]string, 0, len(transactions))
	for _, t := range transactions {
		rows = append(rows, []string{
			t.Type.Label(),
			t.Symbol,
			FormatDecimal(t.Amount),
			FormatDecimal(t.Price),
			FormatMoney(t.Value, currency),
			t.Time.Format(model.TimeLayout),
		})
	}
	return rows
}
