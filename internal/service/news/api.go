package news

import (
	"context"
	"net/url"
	"time"

	"ArgPulse/internal/domain/models"
	xhttp "ArgPulse/pkg/http"
	"ArgPulse/pkg/util"
)

// articlesResponse covers both GNews and NewsAPI; they share this shape.
type articlesResponse struct {
	Articles []struct {
		Title       string `json:"title"`
		URL         string `json:"url"`
		PublishedAt string `json:"publishedAt"`
		Source      struct {
			Name string `json:"name"`
		} `json:"source"`
	} `json:"articles"`
}

func (c *Client) fromAPI(ctx context.Context, source, endpoint string, q url.Values) []models.NewsItem {
	start := time.Now()
	var resp articlesResponse
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method:      xhttp.MethodGet,
		URL:         endpoint,
		QueryParams: q,
	}, &resp)
	c.record(source, start, err)
	if err != nil {
		return nil
	}

	now := c.now()
	out := make([]models.NewsItem, 0, apiItems)
	for _, a := range resp.Articles {
		if len(out) == apiItems {
			break
		}
		if a.Title == "" || a.URL == "" {
			continue
		}
		published := util.ParseTimeDefault(a.PublishedAt, now)
		name := a.Source.Name
		if name == "" {
			name = "Unknown"
		}
		out = append(out, models.NewsItem{
			Source:      name,
			Title:       a.Title,
			Time:        relativeTime(published, now),
			Category:    defaultTopic,
			URL:         a.URL,
			PublishedAt: published,
		})
	}
	return out
}
