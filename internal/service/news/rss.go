package news

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"ArgPulse/internal/domain/models"
	xhttp "ArgPulse/pkg/http"
	"ArgPulse/pkg/util"

	"github.com/mmcdole/gofeed"
)

var economicKeywords = []string{
	"dólar", "dolar", "inflación", "inflacion", "bcra", "reservas", "milei",
	"economía", "economia", "mercado", "bonos", "riesgo país", "riesgo pais",
	"cepo", "presupuesto", "fiscal", "merval", "adr", "exportacion",
	"importacion", "deuda", "fmi", "imf",
}

// fromFeeds reads every feed, keeps a few items of each and returns the
// newest overall. A broken feed is skipped.
func (c *Client) fromFeeds(ctx context.Context) []models.NewsItem {
	var all []models.NewsItem
	for _, f := range c.feeds {
		start := time.Now()
		items, err := c.readFeed(ctx, f)
		c.record("rss", start, err)
		all = append(all, items...)
	}
	sort.SliceStable(all, func(i, j int) bool { return all[i].PublishedAt.After(all[j].PublishedAt) })
	if len(all) > rssItems {
		all = all[:rssItems]
	}
	return all
}

func (c *Client) readFeed(ctx context.Context, f Feed) ([]models.NewsItem, error) {
	var body []byte
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method:  xhttp.MethodGet,
		URL:     f.URL,
		Headers: map[string]string{"Accept": "application/rss+xml, application/atom+xml, application/xml"},
	}, &body)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", f.URL, err)
	}
	items, err := parseFeed(body, f, c.now())
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", f.URL, err)
	}
	return items, nil
}

// parseFeed accepts RSS and Atom. Items without a readable date are stamped
// with now.
func parseFeed(body []byte, f Feed, now time.Time) ([]models.NewsItem, error) {
	feed, err := gofeed.NewParser().Parse(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	out := make([]models.NewsItem, 0, feedItems)
	for _, it := range feed.Items {
		if len(out) == feedItems {
			break
		}
		title := strings.TrimSpace(it.Title)
		link := strings.TrimSpace(it.Link)
		if title == "" || link == "" {
			continue
		}
		if f.Filter && !isEconomic(title) {
			continue
		}
		published := publishedAt(it, now)
		category := f.Category
		if len(it.Categories) > 0 && strings.TrimSpace(it.Categories[0]) != "" {
			category = strings.TrimSpace(it.Categories[0])
		}
		out = append(out, models.NewsItem{
			Source:      f.Source,
			Title:       title,
			Time:        relativeTime(published, now),
			Category:    category,
			URL:         link,
			PublishedAt: published,
		})
	}
	return out, nil
}

func publishedAt(it *gofeed.Item, now time.Time) time.Time {
	switch {
	case it.PublishedParsed != nil:
		return *it.PublishedParsed
	case it.UpdatedParsed != nil:
		return *it.UpdatedParsed
	}
	return util.ParseTimeDefault(strings.TrimSpace(it.Published), now)
}

func isEconomic(title string) bool {
	lower := strings.ToLower(title)
	for _, kw := range economicKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// relativeTime renders "Just now", "3 hours ago" or a d/m/yyyy date once a
// day has passed.
func relativeTime(published, now time.Time) string {
	hours := int(now.Sub(published).Round(time.Hour) / time.Hour)
	switch {
	case hours < 1:
		return "Just now"
	case hours == 1:
		return "1 hour ago"
	case hours < 24:
		return fmt.Sprintf("%d hours ago", hours)
	default:
		return fmt.Sprintf("%d/%d/%d", published.Day(), int(published.Month()), published.Year())
	}
}
