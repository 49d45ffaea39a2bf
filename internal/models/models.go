package models

import "time"

const (
	// SourceDirect is recorded when a click carries no referrer.
	SourceDirect = "direct"
	// LocationUnknown is recorded when no locale hint is available.
	LocationUnknown = "unknown"
)

// ClickEvent is one recorded visit to a shortcode's redirect.
type ClickEvent struct {
	Timestamp time.Time `json:"timestamp"`
	Source    string    `json:"source"`
	Location  string    `json:"location"`
}

// ShortenedRecord is the stored association of a shortcode with its
// original URL, timing and click history. Clicks are append-only.
type ShortenedRecord struct {
	ID              string       `json:"id"`
	Shortcode       string       `json:"shortcode"`
	OriginalURL     string       `json:"original_url"`
	CreatedAt       time.Time    `json:"created_at"`
	ExpiresAt       time.Time    `json:"expires_at"`
	ValidityMinutes int          `json:"validity_minutes"`
	Clicks          []ClickEvent `json:"clicks"`
}

type Stats struct {
	TotalURLs   int `json:"total_urls"`
	TotalClicks int `json:"total_clicks"`
	ActiveURLs  int `json:"active_urls"`
}

type ShortenReq struct {
	URL             string `json:"url"`
	CustomShortcode string `json:"custom_shortcode,omitempty"`
	ValidityMinutes int    `json:"validity_minutes,omitempty"`
}

type ShortenRes struct {
	ShortURL        string    `json:"short_url"`
	Shortcode       string    `json:"shortcode"`
	OriginalURL     string    `json:"original_url"`
	CreatedAt       time.Time `json:"created_at"`
	ExpiresAt       time.Time `json:"expires_at"`
	ValidityMinutes int       `json:"validity_minutes"`
}

type CleanupRes struct {
	Removed int `json:"removed"`
}
