package lookup

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/pkg/browser"
)

// DefaultSearchURL is the DuckDuckGo HTML results endpoint, which
// serves plain markup without JavaScript.
const DefaultSearchURL = "https://html.duckduckgo.com/html/"

// Search answers open-ended questions by scraping web search results.
// When extraction fails it opens the query in the system browser so
// the user still gets an answer path.
type Search struct {
	BaseURL string
	Client  *http.Client
	Logger  *slog.Logger

	// OpenURL is replaceable in tests; defaults to the system browser.
	OpenURL func(url string) error
}

var _ Handler = (*Search)(nil)

// NewSearch creates a web search handler.
func NewSearch() *Search {
	return &Search{
		BaseURL: DefaultSearchURL,
		Logger:  slog.Default().With("component", "lookup.search"),
		OpenURL: browser.OpenURL,
	}
}

// Lookup scrapes up to three result snippets for the query.
func (s *Search) Lookup(ctx context.Context, query string) string {
	endpoint := fmt.Sprintf("%s?q=%s", s.BaseURL, url.QueryEscape(query))

	snippets, err := s.scrape(ctx, endpoint)
	if err != nil || len(snippets) == 0 {
		if err != nil {
			s.Logger.Warn("search scrape failed, opening browser", "query", query, "error", err)
		}
		return s.openInBrowser(query)
	}

	return fmt.Sprintf("Here's what I found about %s: %s",
		query, strings.Join(snippets, " "))
}

// scrape fetches the results page and extracts snippet text.
func (s *Search) scrape(ctx context.Context, endpoint string) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := httpClientOr(s.Client).Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, err
	}

	var snippets []string
	doc.Find(".result__snippet").EachWithBreak(func(i int, sel *goquery.Selection) bool {
		text := strings.TrimSpace(sel.Text())
		if text != "" {
			snippets = append(snippets, text)
		}
		return len(snippets) < 3
	})
	return snippets, nil
}

// openInBrowser falls back to the system browser.
func (s *Search) openInBrowser(query string) string {
	searchURL := "https://www.google.com/search?q=" + url.QueryEscape(query)
	if err := s.OpenURL(searchURL); err != nil {
		s.Logger.Warn("could not open browser", "error", err)
		return fmt.Sprintf("I couldn't search the web right now. Try searching for %s yourself.", query)
	}
	return fmt.Sprintf("Opened web search for %s", query)
}
