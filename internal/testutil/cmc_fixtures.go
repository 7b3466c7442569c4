package testutil

import "fmt"

const cmcStatusOK = `{"timestamp":"2024-01-15T10:30:00.000Z","error_code":0,"error_message":null,"elapsed":10,"credit_count":1}`

func cmcAsset(symbol, name string, rank int, price float64) string {
	return fmt.Sprintf(`{
		"id": %d,
		"name": %q,
		"symbol": %q,
		"slug": %q,
		"cmc_rank": %d,
		"last_updated": "2024-01-15T10:30:00.000Z",
		"quote": {
			"USD": {
				"price": %v,
				"volume_24h": 1000,
				"percent_change_24h": 1.5,
				"market_cap": 100000,
				"last_updated": "2024-01-15T10:30:00.000Z"
			}
		}
	}`, rank, name, symbol, name, rank, price)
}

// CMCQuoteJSON returns a quotes/latest response body holding one asset priced in USD.
func CMCQuoteJSON(symbol, name string, rank int, price float64) string {
	return fmt.Sprintf(`{"status":%s,"data":{%q:%s}}`, cmcStatusOK, symbol, cmcAsset(symbol, name, rank, price))
}

// CMCListingJSON returns a listings/latest response body with BTC and ETH.
func CMCListingJSON() string {
	return fmt.Sprintf(`{"status":%s,"data":[%s,%s]}`,
		cmcStatusOK,
		cmcAsset("BTC", "Bitcoin", 1, 100),
		cmcAsset("ETH", "Ethereum", 2, 50),
	)
}

// CMCErrorJSON returns an error envelope with the given code and message.
func CMCErrorJSON(code int, message string) string {
	return fmt.Sprintf(`{"status":{"timestamp":"2024-01-15T10:30:00.000Z","error_code":%d,"error_message":%q,"elapsed":0,"credit_count":0}}`,
		code, message)
}
