package coinmarketcap

import (
	"log"
	"net/http"
	"strings"
	"time"
)

// loggingTransport logs API calls that fail or return a non-200 status.
// Query strings are left out of the log line.
type loggingTransport struct {
	next http.RoundTripper
}

func (t *loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()

	resp, err := t.next.RoundTrip(req)

	// Strip CR/LF before logging.
	sanitize := strings.NewReplacer("\n", "", "\r", "").Replace
	switch {
	case err != nil:
		log.Printf("coinmarketcap: %s %s failed after %s: %v",
			sanitize(req.Method), sanitize(req.URL.Path), time.Since(start), err)
	case resp.StatusCode != http.StatusOK:
		log.Printf("coinmarketcap: %s %s %d %s",
			sanitize(req.Method), sanitize(req.URL.Path), resp.StatusCode, time.Since(start))
	}

	return resp, err
}
