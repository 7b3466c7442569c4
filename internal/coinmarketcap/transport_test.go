package coinmarketcap

import (
	"bytes"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
)

func TestLoggingTransport(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/fail" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := &http.Client{Transport: &loggingTransport{next: http.DefaultTransport}}

	for _, path := range []string{"/ok?symbol=BTC", "/fail?symbol=BTC"} {
		resp, err := client.Get(srv.URL + path)
		if err != nil {
			t.Fatalf("Get(%s) returned unexpected error: %v", path, err)
		}
		resp.Body.Close()
	}

	out := buf.String()
	if strings.Contains(out, "/ok") {
		t.Errorf("Expected successful call not to be logged, got %q", out)
	}
	if !strings.Contains(out, "GET /fail 401") {
		t.Errorf("Expected failed call to be logged, got %q", out)
	}
	if strings.Contains(out, "symbol=BTC") {
		t.Errorf("Expected query string to be left out, got %q", out)
	}
}
