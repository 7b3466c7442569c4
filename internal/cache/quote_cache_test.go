package cache

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ndewijer/crypto-trade-simulator/internal/apperrors"
	"github.com/ndewijer/crypto-trade-simulator/internal/testutil"
)

func TestQuoteKey(t *testing.T) {
	if got := quoteKey("usd", "btc"); got != "quote:USD:BTC" {
		t.Errorf("quoteKey() = %q, want %q", got, "quote:USD:BTC")
	}
}

// TestDecodeQuote tests reading cached hashes back.
//
// WHY: A cache entry written by an older build or truncated by hand must be
// treated as a miss, never as a zero-priced quote.
func TestDecodeQuote(t *testing.T) {
	t.Run("encoded quote decodes to the same quote", func(t *testing.T) {
		want := testutil.NewQuote("BTC", "Bitcoin", 1, 43210.123456789)

		got, ok := decodeQuote("BTC", "USD", stringify(encodeQuote(want)))
		if !ok {
			t.Fatal("decodeQuote() reported a miss")
		}
		if got.Symbol != want.Symbol || got.Name != want.Name || got.Rank != want.Rank ||
			got.Price != want.Price || got.Currency != want.Currency {
			t.Errorf("decodeQuote() = %+v, want %+v", got, want)
		}
		if !got.LastUpdated.Equal(want.LastUpdated) {
			t.Errorf("LastUpdated = %v, want %v", got.LastUpdated, want.LastUpdated)
		}
	})

	t.Run("zero update time", func(t *testing.T) {
		quote := testutil.NewQuote("ETH", "Ethereum", 2, 50)
		quote.LastUpdated = time.Time{}

		got, ok := decodeQuote("ETH", "USD", stringify(encodeQuote(quote)))
		if !ok {
			t.Fatal("decodeQuote() reported a miss")
		}
		if !got.LastUpdated.IsZero() {
			t.Errorf("Expected zero LastUpdated, got %v", got.LastUpdated)
		}
	})

	misses := []struct {
		name string
		vals map[string]string
	}{
		{"empty hash", map[string]string{}},
		{"bad price", map[string]string{"name": "Bitcoin", "rank": "1", "price": "abc", "ts": "0"}},
		{"missing rank", map[string]string{"name": "Bitcoin", "price": "1", "ts": "0"}},
		{"missing ts", map[string]string{"name": "Bitcoin", "rank": "1", "price": "1"}},
	}
	for _, tt := range misses {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := decodeQuote("BTC", "USD", tt.vals); ok {
				t.Error("Expected a miss")
			}
		})
	}
}

// TestQuoteCache_RedisDown tests the fall through when Redis cannot be reached.
//
// WHY: The cache only saves API credits. Losing it must not stop trading.
func TestQuoteCache_RedisDown(t *testing.T) {
	ctx := context.Background()

	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { rdb.Close() })

	next := testutil.NewMockQuoteClient()
	c := NewQuoteCache(rdb, next, time.Minute)

	quote, err := c.FetchQuote(ctx, "BTC", "USD")
	if err != nil {
		t.Fatalf("FetchQuote() returned unexpected error: %v", err)
	}
	if quote.Symbol != "BTC" || quote.Price != 100 {
		t.Errorf("Unexpected quote %+v", quote)
	}

	if _, err := c.FetchQuote(ctx, "NOPE", "USD"); !errors.Is(err, apperrors.ErrSymbolNotFound) {
		t.Errorf("Expected ErrSymbolNotFound, got %v", err)
	}

	quotes, err := c.FetchListing(ctx, 1, 2, "USD")
	if err != nil {
		t.Fatalf("FetchListing() returned unexpected error: %v", err)
	}
	if len(quotes) != 2 {
		t.Errorf("Expected 2 quotes, got %d", len(quotes))
	}
}

// TestQuoteCache_Redis runs against a real server when REDIS_ADDR is set.
func TestQuoteCache_Redis(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}
	ctx := context.Background()

	rdb, err := NewRedisClient(ctx, ClientConfig{Addr: addr})
	if err != nil {
		t.Fatalf("NewRedisClient() returned unexpected error: %v", err)
	}
	t.Cleanup(func() { rdb.Close() })

	key := quoteKey("USD", "BTC")
	rdb.Del(ctx, key)
	t.Cleanup(func() { rdb.Del(context.Background(), key) })

	next := testutil.NewMockQuoteClient()
	c := NewQuoteCache(rdb, next, time.Minute)

	if _, err := c.FetchQuote(ctx, "BTC", "USD"); err != nil {
		t.Fatalf("FetchQuote() returned unexpected error: %v", err)
	}
	next.WithPrice("BTC", 999)

	quote, err := c.FetchQuote(ctx, "BTC", "USD")
	if err != nil {
		t.Fatalf("FetchQuote() returned unexpected error: %v", err)
	}
	if quote.Price != 100 {
		t.Errorf("Expected cached price 100, got %v", quote.Price)
	}
	if next.Count() != 1 {
		t.Errorf("Expected 1 provider call, got %d", next.Count())
	}

	ttl, err := rdb.TTL(ctx, key).Result()
	if err != nil {
		t.Fatalf("TTL() returned unexpected error: %v", err)
	}
	if ttl <= 0 || ttl > time.Minute {
		t.Errorf("Expected TTL within a minute, got %v", ttl)
	}
}

func stringify(fields map[string]any) map[string]string {
	out := make(map[string]string, len(fields))
	for k, v := range fields {
		out[k] = v.(string)
	}
	return out
}
