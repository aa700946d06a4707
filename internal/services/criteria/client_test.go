package criteria

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"EconPull/pkg/cache"
)

const goodPhrase = "'Actual' greater than 'Forecast' is good for currency;"

func newDetailServer(t *testing.T, hits *atomic.Int64) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		switch r.URL.Path {
		case "/calendar/details/1-137241":
			fmt.Fprintf(w, `{"data":{"specs":[
				{"title":"Source","html":"Bureau of Labor Statistics"},
				{"title":"Usual Effect","html":%q}
			]}}`, goodPhrase)
		case "/calendar/details/1-9":
			fmt.Fprint(w, `{"data":{"specs":[{"title":"Source","html":"x"}]}}`)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestUsualEffect(t *testing.T) {
	var hits atomic.Int64
	srv := newDetailServer(t, &hits)
	c := NewClient(srv.URL, 5*time.Second, nil, WithRateLimit(1000, 1000))

	if got := c.UsualEffect(context.Background(), "137241"); got != goodPhrase {
		t.Fatalf("got %q, want %q", got, goodPhrase)
	}

	// A document without a "Usual Effect" entry resolves empty, not an error.
	if got := c.UsualEffect(context.Background(), "9"); got != "" {
		t.Fatalf("expected empty phrase, got %q", got)
	}

	// Unknown event ids degrade to empty.
	if got := c.UsualEffect(context.Background(), "404"); got != "" {
		t.Fatalf("expected empty phrase for missing event, got %q", got)
	}

	// Empty id never hits the network.
	before := hits.Load()
	if got := c.UsualEffect(context.Background(), ""); got != "" {
		t.Fatalf("expected empty phrase for empty id, got %q", got)
	}
	if hits.Load() != before {
		t.Fatalf("empty id reached the server")
	}
}

func TestUsualEffectCached(t *testing.T) {
	var hits atomic.Int64
	srv := newDetailServer(t, &hits)
	mem := cache.NewMemoryCache()
	defer mem.Close()

	c := NewClient(srv.URL, 5*time.Second, nil,
		WithRateLimit(1000, 1000),
		WithCache(mem, time.Minute),
	)

	for i := 0; i < 3; i++ {
		if got := c.UsualEffect(context.Background(), "137241"); got != goodPhrase {
			t.Fatalf("call %d: got %q", i, got)
		}
	}
	if hits.Load() != 1 {
		t.Fatalf("expected 1 upstream hit, got %d", hits.Load())
	}
}
