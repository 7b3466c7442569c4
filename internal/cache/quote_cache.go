package cache

import (
	"context"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ndewijer/crypto-trade-simulator/internal/coinmarketcap"
	"github.com/ndewijer/crypto-trade-simulator/internal/model"
)

// DefaultTTL is how long a cached quote is served before it is fetched again.
const DefaultTTL = 60 * time.Second

// QuoteCache wraps a market data client and caches single-symbol quotes in Redis.
// Each quote is stored as a hash at "quote:{currency}:{symbol}" with fields
// name, rank, price and ts (Unix nanoseconds of the quote's last update).
//
// Listings are always fetched from the wrapped client. Failed lookups, including
// unknown symbols, are never cached. Redis failures are logged and the request
// falls through to the wrapped client.
type QuoteCache struct {
	rdb  *redis.Client
	next coinmarketcap.Client
	ttl  time.Duration
}

var _ coinmarketcap.Client = (*QuoteCache)(nil)

// NewQuoteCache creates a QuoteCache in front of next. A non-positive ttl selects DefaultTTL.
func NewQuoteCache(rdb *redis.Client, next coinmarketcap.Client, ttl time.Duration) *QuoteCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &QuoteCache{rdb: rdb, next: next, ttl: ttl}
}

// FetchListing delegates to the wrapped client.
func (c *QuoteCache) FetchListing(ctx context.Context, start, limit int, currency string) ([]model.Quote, error) {
	return c.next.FetchListing(ctx, start, limit, currency)
}

// FetchQuote returns the cached quote for symbol when present, otherwise fetches it
// from the wrapped client and caches the result.
func (c *QuoteCache) FetchQuote(ctx context.Context, symbol, currency string) (model.Quote, error) {
	key := quoteKey(currency, symbol)

	vals, err := c.rdb.HGetAll(ctx, key).Result()
	if err != nil {
		log.Printf("quote cache: get %s: %v", key, err)
	} else if quote, ok := decodeQuote(symbol, currency, vals); ok {
		return quote, nil
	}

	quote, err := c.next.FetchQuote(ctx, symbol, currency)
	if err != nil {
		return model.Quote{}, err
	}

	_, err = c.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, key, encodeQuote(quote))
		pipe.Expire(ctx, key, c.ttl)
		return nil
	})
	if err != nil {
		log.Printf("quote cache: set %s: %v", key, err)
	}

	return quote, nil
}

func quoteKey(currency, symbol string) string {
	return "quote:" + strings.ToUpper(currency) + ":" + strings.ToUpper(symbol)
}

func encodeQuote(q model.Quote) map[string]any {
	var ts int64
	if !q.LastUpdated.IsZero() {
		ts = q.LastUpdated.UnixNano()
	}
	return map[string]any{
		"name":  q.Name,
		"rank":  strconv.Itoa(q.Rank),
		"price": strconv.FormatFloat(q.Price, 'f', -1, 64),
		"ts":    strconv.FormatInt(ts, 10),
	}
}

// decodeQuote rebuilds a quote from its cached hash fields.
// It reports false for a missing or malformed entry.
func decodeQuote(symbol, currency string, vals map[string]string) (model.Quote, bool) {
	if len(vals) == 0 {
		return model.Quote{}, false
	}

	price, err := strconv.ParseFloat(vals["price"], 64)
	if err != nil {
		return model.Quote{}, false
	}
	rank, err := strconv.Atoi(vals["rank"])
	if err != nil {
		return model.Quote{}, false
	}
	ts, err := strconv.ParseInt(vals["ts"], 10, 64)
	if err != nil {
		return model.Quote{}, false
	}

	quote := model.Quote{
		Symbol:   symbol,
		Name:     vals["name"],
		Rank:     rank,
		Price:    price,
		Currency: currency,
	}
	if ts != 0 {
		quote.LastUpdated = time.Unix(0, ts)
	}
	return quote, true
}
