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

// DefaultNewsURL is the NewsAPI everything endpoint.
const DefaultNewsURL = "https://newsapi.org/v2/everything"

// News answers headline questions via NewsAPI.
type News struct {
	APIKey  string
	BaseURL string
	Client  *http.Client
	Logger  *slog.Logger
}

var _ Handler = (*News)(nil)

// NewNews creates a news handler.
func NewNews(apiKey string) *News {
	return &News{
		APIKey:  apiKey,
		BaseURL: DefaultNewsURL,
		Logger:  slog.Default().With("component", "lookup.news"),
	}
}

type newsResponse struct {
	Articles []struct {
		Title  string `json:"title"`
		Source struct {
			Name string `json:"name"`
		} `json:"source"`
	} `json:"articles"`
}

// Lookup reads up to three recent headlines about the topic.
func (n *News) Lookup(ctx context.Context, topic string) string {
	if n.APIKey == "" {
		return "News service is not configured. Add a NewsAPI key."
	}

	endpoint := fmt.Sprintf("%s?q=%s&sortBy=publishedAt&pageSize=3&apiKey=%s",
		n.BaseURL, url.QueryEscape(topic), url.QueryEscape(n.APIKey))

	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return "I couldn't reach the news service."
	}

	resp, err := httpClientOr(n.Client).Do(req)
	if err != nil {
		n.Logger.Warn("news request failed", "topic", topic, "error", err)
		return "I couldn't reach the news service right now."
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		n.Logger.Warn("news request failed", "topic", topic, "status", resp.StatusCode)
		return "The news service returned an error."
	}

	var data newsResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return "The news service sent a response I couldn't read."
	}
	if len(data.Articles) == 0 {
		return fmt.Sprintf("I couldn't find any recent news about %s.", topic)
	}

	var lines []string
	for i, article := range data.Articles {
		if i >= 3 {
			break
		}
		lines = append(lines, fmt.Sprintf("%s - %s", article.Title, article.Source.Name))
	}
	return fmt.Sprintf("Here are the latest headlines about %s: %s",
		topic, strings.Join(lines, ". "))
}
