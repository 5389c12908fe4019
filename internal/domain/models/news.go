package models

import "time"

type NewsItem struct {
	Source      string    `json:"source"`
	Title       string    `json:"title"`
	Time        string    `json:"time"`
	Category    string    `json:"category"`
	URL         string    `json:"url"`
	PublishedAt time.Time `json:"publishedAt"`
}
