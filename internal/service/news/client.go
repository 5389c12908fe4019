package news

import (
	"context"
	"net/url"
	"time"

	"ArgPulse/internal/domain/models"
	drepo "ArgPulse/internal/domain/repository"
	"ArgPulse/pkg/cache"
	xhttp "ArgPulse/pkg/http"
	"ArgPulse/pkg/logger"
	"ArgPulse/pkg/metrics"
)

const (
	DefaultGNewsURL   = "https://gnews.io/api/v4/search"
	DefaultNewsAPIURL = "https://newsapi.org/v2/everything"

	apiItems     = 5
	feedItems    = 4
	rssItems     = 6
	defaultTopic = "Economy"
)

// Feed is one RSS source. Filtered feeds only keep economy headlines.
type Feed struct {
	URL      string
	Source   string
	Category string
	Filter   bool
}

// Client resolves headlines through GNews, then NewsAPI, then RSS. When
// every source fails the result is empty.
type Client struct {
	http       *xhttp.Client
	cache      cache.Service
	ttl        time.Duration
	gnewsKey   string
	gnewsURL   string
	newsAPIKey string
	newsAPIURL string
	feeds      []Feed
	now        func() time.Time
	log        *logger.Logger
	metrics    drepo.Metrics
}

var _ drepo.NewsSource = (*Client)(nil)

type Option func(*Client)

func WithGNews(key, endpoint string) Option {
	return func(c *Client) {
		c.gnewsKey = key
		if endpoint != "" {
			c.gnewsURL = endpoint
		}
	}
}

func WithNewsAPI(key, endpoint string) Option {
	return func(c *Client) {
		c.newsAPIKey = key
		if endpoint != "" {
			c.newsAPIURL = endpoint
		}
	}
}

func WithFeeds(feeds []Feed) Option {
	return func(c *Client) { c.feeds = feeds }
}

func WithCache(s cache.Service, ttl time.Duration) Option {
	return func(c *Client) {
		c.cache = s
		c.ttl = ttl
	}
}

func WithHTTPClient(hc *xhttp.Client) Option {
	return func(c *Client) { c.http = hc }
}

func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

func WithLogger(l *logger.Logger) Option {
	return func(c *Client) { c.log = l }
}

func WithMetrics(m drepo.Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

func New(opts ...Option) *Client {
	c := &Client{
		http:       xhttp.NewClient(xhttp.WithTimeout(8*time.Second), xhttp.WithUserAgent("ArgPulse/1.0")),
		ttl:        15 * time.Minute,
		gnewsURL:   DefaultGNewsURL,
		newsAPIURL: DefaultNewsAPIURL,
		now:        time.Now,
		log:        logger.Nop(),
		metrics:    metrics.Nop{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Latest returns the freshest headlines from the first source that has any.
func (c *Client) Latest(ctx context.Context) []models.NewsItem {
	items, _ := cache.Remember(ctx, c.cache, cache.GenerateKey("news", "latest"), c.ttl, func(ctx context.Context) ([]models.NewsItem, bool) {
		items := c.resolve(ctx)
		return items, len(items) > 0
	})
	if items == nil {
		return []models.NewsItem{}
	}
	return items
}

func (c *Client) resolve(ctx context.Context) []models.NewsItem {
	if c.gnewsKey != "" {
		q := url.Values{"q": {"Argentina economia"}, "lang": {"es"}, "country": {"ar"}, "max": {"5"}, "apikey": {c.gnewsKey}}
		if items := c.fromAPI(ctx, "gnews", c.gnewsURL, q); len(items) > 0 {
			return items
		}
	}
	if c.newsAPIKey != "" {
		q := url.Values{"q": {"Argentina economy"}, "sortBy": {"publishedAt"}, "apiKey": {c.newsAPIKey}}
		if items := c.fromAPI(ctx, "newsapi", c.newsAPIURL, q); len(items) > 0 {
			return items
		}
	}
	if items := c.fromFeeds(ctx); len(items) > 0 {
		return items
	}
	c.log.Warn("all news sources failed")
	return nil
}

func (c *Client) record(source string, start time.Time, err error) {
	c.metrics.RecordUpstream(source, time.Since(start).Seconds(), err == nil)
	if err != nil {
		c.log.Warn("news source failed", logger.String("source", source), logger.Error(err))
	}
}
