package testutil

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

// CMCServer is an httptest server standing in for the CoinMarketCap API.
// Each path answers with a fixed status and body; every request is recorded.
type CMCServer struct {
	*httptest.Server

	Requests []*http.Request
	routes   map[string]cmcRoute
}

type cmcRoute struct {
	status int
	body   string
}

// NewCMCServer starts a server that is closed when the test completes.
//
// Example:
//
//	srv := testutil.NewCMCServer(t).
//	    Handle("/v1/cryptocurrency/quotes/latest", http.StatusOK, testutil.CMCQuoteJSON("BTC", "Bitcoin", 1, 100))
//	client := coinmarketcap.NewAPIClient(srv.URL, "key", time.Second)
func NewCMCServer(t *testing.T) *CMCServer {
	t.Helper()

	s := &CMCServer{routes: map[string]cmcRoute{}}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.Requests = append(s.Requests, r)
		route, ok := s.routes[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(route.status)
		_, _ = w.Write([]byte(route.body))
	}))
	t.Cleanup(s.Close)
	return s
}

// Handle sets the response for path.
func (s *CMCServer) Handle(path string, status int, body string) *CMCServer {
	s.routes[path] = cmcRoute{status: status, body: body}
	return s
}

// LastRequest returns the most recent request, or nil.
func (s *CMCServer) LastRequest() *http.Request {
	if len(s.Requests) == 0 {
		return nil
	}
	return s.Requests[len(s.Requests)-1]
}
