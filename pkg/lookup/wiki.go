package lookup

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
)

// DefaultWikiURL is the Wikipedia REST summary endpoint root.
const DefaultWikiURL = "https://en.wikipedia.org/api/rest_v1/page/summary"

// Wiki answers encyclopedia questions via Wikipedia page summaries.
type Wiki struct {
	BaseURL string
	Client  *http.Client
	Logger  *slog.Logger
}

var _ Handler = (*Wiki)(nil)

// NewWiki creates a Wikipedia handler.
func NewWiki() *Wiki {
	return &Wiki{
		BaseURL: DefaultWikiURL,
		Logger:  slog.Default().With("component", "lookup.wiki"),
	}
}

type wikiSummary struct {
	Extract string `json:"extract"`
}

// Lookup reads the summary extract for the topic.
func (w *Wiki) Lookup(ctx context.Context, topic string) string {
	title := strings.ReplaceAll(strings.TrimSpace(topic), " ", "_")
	endpoint := fmt.Sprintf("%s/%s", w.BaseURL, url.PathEscape(title))

	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return "I couldn't reach Wikipedia."
	}

	resp, err := httpClientOr(w.Client).Do(req)
	if err != nil {
		w.Logger.Warn("wikipedia request failed", "topic", topic, "error", err)
		return "I couldn't reach Wikipedia right now."
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Sprintf("Couldn't find Wikipedia information about %s", topic)
	}

	var data wikiSummary
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil || data.Extract == "" {
		return fmt.Sprintf("Couldn't find Wikipedia information about %s", topic)
	}

	return "According to Wikipedia: " + firstSentences(data.Extract, 2)
}

// firstSentences truncates text to at most n sentences.
func firstSentences(text string, n int) string {
	count := 0
	for i, r := range text {
		if r == '.' || r == '!' || r == '?' {
			count++
			if count == n {
				return strings.TrimSpace(text[:i+1])
			}
		}
	}
	return strings.TrimSpace(text)
}
