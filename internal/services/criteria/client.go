package criteria

import (
	"context"
	"fmt"
	"strings"
	"time"

	domrepo "EconPull/internal/domain/repository"
	"EconPull/internal/services/ratelimit"
	"EconPull/pkg/cache"
	xhttp "EconPull/pkg/http"
	applogger "EconPull/pkg/logger"
)

// Client fetches the per-event detail document and extracts the "Usual
// Effect" phrase. Lookups are cached by event id and rate limited; every
// failure degrades to an empty phrase so the core never sees lookup errors.
type Client struct {
	http    *xhttp.Client
	cache   cache.Service
	limiter *ratelimit.Limiter
	logger  *applogger.Logger

	baseURL    string
	userAgent  string
	cacheTTL   time.Duration
	maxPerSec  float64
	burstLimit float64
}

type Option func(*Client)

// WithCache enables caching of resolved phrases.
func WithCache(c cache.Service, ttl time.Duration) Option {
	return func(cl *Client) {
		cl.cache = c
		cl.cacheTTL = ttl
	}
}

// WithRateLimit caps detail lookups per second.
func WithRateLimit(perSec, burst float64) Option {
	return func(cl *Client) {
		cl.maxPerSec = perSec
		cl.burstLimit = burst
	}
}

// WithUserAgent overrides the request user agent.
func WithUserAgent(ua string) Option {
	return func(cl *Client) { cl.userAgent = ua }
}

func NewClient(baseURL string, timeout time.Duration, logger *applogger.Logger, opts ...Option) *Client {
	c := &Client{
		http:       xhttp.NewClient(xhttp.WithTimeout(timeout)),
		limiter:    ratelimit.New(),
		logger:     logger,
		baseURL:    strings.TrimRight(baseURL, "/"),
		userAgent:  "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
		cacheTTL:   24 * time.Hour,
		maxPerSec:  2,
		burstLimit: 5,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// detail document shape: {"data": {"specs": [{"title": ..., "html": ...}]}}
type detailResponse struct {
	Data struct {
		Specs []struct {
			Title string `json:"title"`
			HTML  string `json:"html"`
		} `json:"specs"`
	} `json:"data"`
}

// UsualEffect returns the usual-effect phrase for eventID, or "" when the
// lookup fails or the document has no such spec.
func (c *Client) UsualEffect(ctx context.Context, eventID string) string {
	if eventID == "" {
		return ""
	}

	if c.cache != nil {
		var phrase string
		if err := c.cache.Get(ctx, cacheKey(eventID), &phrase); err == nil {
			return phrase
		}
	}

	for !c.limiter.Allow("details", c.burstLimit, c.maxPerSec) {
		select {
		case <-ctx.Done():
			return ""
		case <-time.After(100 * time.Millisecond):
		}
	}

	var doc detailResponse
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    fmt.Sprintf("%s/calendar/details/1-%s", c.baseURL, eventID),
		Headers: map[string]string{
			"User-Agent":      c.userAgent,
			"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
			"Accept-Language": "en-US,en;q=0.9",
		},
	}, &doc)
	if err != nil {
		if c.logger != nil {
			c.logger.Warn("usual effect lookup failed",
				applogger.String("event_id", eventID),
				applogger.Error(err),
			)
		}
		return ""
	}

	phrase := ""
	for _, spec := range doc.Data.Specs {
		if strings.TrimSpace(spec.Title) == "Usual Effect" {
			phrase = spec.HTML
			break
		}
	}

	if c.cache != nil {
		_ = c.cache.Set(ctx, cacheKey(eventID), phrase, c.cacheTTL)
	}
	return phrase
}

func cacheKey(eventID string) string { return "criteria:" + eventID }

var _ domrepo.DetailSource = (*Client)(nil)
