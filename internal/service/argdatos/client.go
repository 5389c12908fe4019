package argdatos

import (
	"context"
	"fmt"
	"time"

	"ArgPulse/internal/domain/models"
	drepo "ArgPulse/internal/domain/repository"
	"ArgPulse/pkg/cache"
	xhttp "ArgPulse/pkg/http"
	"ArgPulse/pkg/logger"
	"ArgPulse/pkg/metrics"

	"golang.org/x/time/rate"
)

const (
	DefaultBaseURL   = "https://api.argentinadatos.com"
	DefaultRateLimit = 5

	keyPrefix = "argdatos"
)

// TTLs are the per-feed revalidate windows.
type TTLs struct {
	Rates     time.Duration
	History   time.Duration
	Risk      time.Duration
	Inflation time.Duration
	Reserves  time.Duration
	Markets   time.Duration
}

// DefaultTTLs mirrors how often each upstream series actually changes.
func DefaultTTLs() TTLs {
	return TTLs{
		Rates:     10 * time.Minute,
		History:   time.Hour,
		Risk:      time.Hour,
		Inflation: 24 * time.Hour,
		Reserves:  24 * time.Hour,
		Markets:   30 * time.Minute,
	}
}

// Client reads the ArgentinaDatos public API. Every feed is cached and every
// failure degrades to an absent value, so callers never see an error.
type Client struct {
	baseURL string
	http    *xhttp.Client
	cache   cache.Service
	limiter *rate.Limiter
	ttl     TTLs
	adrs    []models.ADRQuote
	log     *logger.Logger
	metrics drepo.Metrics
}

var _ drepo.IndicatorSource = (*Client)(nil)

type Option func(*Client)

func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

func WithHTTPClient(hc *xhttp.Client) Option {
	return func(c *Client) { c.http = hc }
}

func WithCache(s cache.Service) Option {
	return func(c *Client) { c.cache = s }
}

// WithRateLimit caps upstream requests per second. Non-positive disables the limit.
func WithRateLimit(perSec int) Option {
	return func(c *Client) {
		if perSec <= 0 {
			c.limiter = rate.NewLimiter(rate.Inf, 0)
			return
		}
		c.limiter = rate.NewLimiter(rate.Limit(perSec), perSec)
	}
}

func WithTTLs(t TTLs) Option {
	return func(c *Client) { c.ttl = t }
}

// WithADRs sets the depositary receipt quotes listed next to the main index.
func WithADRs(adrs []models.ADRQuote) Option {
	return func(c *Client) { c.adrs = adrs }
}

func WithLogger(l *logger.Logger) Option {
	return func(c *Client) { c.log = l }
}

func WithMetrics(m drepo.Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		http:    xhttp.NewClient(xhttp.WithTimeout(8*time.Second), xhttp.WithUserAgent("ArgPulse/1.0")),
		limiter: rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
		ttl:     DefaultTTLs(),
		log:     logger.Nop(),
		metrics: metrics.Nop{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// get fetches path and decodes JSON into dest. Failures are logged and
// counted here so feed methods only decide what absence looks like.
func (c *Client) get(ctx context.Context, feed, path string, dest interface{}) error {
	start := time.Now()
	err := c.fetch(ctx, path, dest)
	c.metrics.RecordUpstream(feed, time.Since(start).Seconds(), err == nil)
	if err != nil {
		c.log.Warn("upstream fetch failed",
			logger.String("feed", feed),
			logger.String("path", path),
			logger.Duration("elapsed_ms", time.Since(start)),
			logger.Error(err))
		return err
	}
	c.log.Debug("upstream fetch",
		logger.String("feed", feed),
		logger.Duration("elapsed_ms", time.Since(start)))
	return nil
}

func (c *Client) fetch(ctx context.Context, path string, dest interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit: %w", err)
	}
	return c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method:  xhttp.MethodGet,
		URL:     c.baseURL + path,
		Headers: map[string]string{"Accept": "application/json"},
	}, dest)
}

func key(parts ...interface{}) string {
	return cache.GenerateKeyWithParams(keyPrefix, parts...)
}
