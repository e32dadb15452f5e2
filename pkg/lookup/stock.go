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

// DefaultQuoteURL is a Yahoo-style quote endpoint.
const DefaultQuoteURL = "https://query1.finance.yahoo.com/v7/finance/quote"

// Stock answers share-price questions via a quote endpoint.
// No API key is needed.
type Stock struct {
	BaseURL string
	Client  *http.Client
	Logger  *slog.Logger
}

var _ Handler = (*Stock)(nil)

// NewStock creates a stock handler.
func NewStock() *Stock {
	return &Stock{
		BaseURL: DefaultQuoteURL,
		Logger:  slog.Default().With("component", "lookup.stock"),
	}
}

type quoteResponse struct {
	QuoteResponse struct {
		Result []struct {
			Symbol             string  `json:"symbol"`
			LongName           string  `json:"longName"`
			RegularMarketPrice float64 `json:"regularMarketPrice"`
		} `json:"result"`
	} `json:"quoteResponse"`
}

// Lookup reads the current price for the ticker symbol.
func (s *Stock) Lookup(ctx context.Context, symbol string) string {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return "Which stock symbol should I look up?"
	}

	endpoint := fmt.Sprintf("%s?symbols=%s", s.BaseURL, url.QueryEscape(symbol))

	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return "I couldn't reach the stock service."
	}
	// Quote endpoints reject requests without a browser-like agent.
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := httpClientOr(s.Client).Do(req)
	if err != nil {
		s.Logger.Warn("quote request failed", "symbol", symbol, "error", err)
		return "I couldn't reach the stock service right now."
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		s.Logger.Warn("quote request failed", "symbol", symbol, "status", resp.StatusCode)
		return fmt.Sprintf("I couldn't get a quote for %s.", symbol)
	}

	var data quoteResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return "The stock service sent a response I couldn't read."
	}
	if len(data.QuoteResponse.Result) == 0 {
		return fmt.Sprintf("I couldn't find a stock called %s.", symbol)
	}

	quote := data.QuoteResponse.Result[0]
	name := quote.LongName
	if name == "" {
		name = quote.Symbol
	}
	return fmt.Sprintf("%s (%s) is currently at $%.2f", name, quote.Symbol, quote.RegularMarketPrice)
}
