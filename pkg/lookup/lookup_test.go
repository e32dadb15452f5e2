package lookup

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestWeatherLookup(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("q"); got != "London" {
			t.Errorf("Unexpected city: %q", got)
		}
		if got := r.URL.Query().Get("units"); got != "metric" {
			t.Errorf("Expected metric units, got %q", got)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"name":    "London",
			"weather": []map[string]string{{"description": "light rain"}},
			"main":    map[string]interface{}{"temp": 14.3, "feels_like": 12.8, "humidity": 82},
		})
	}))
	defer srv.Close()

	w := NewWeather("key")
	w.BaseURL = srv.URL

	got := w.Lookup(context.Background(), "London")
	want := "Weather in London: light rain, 14°C (feels like 13°C), humidity 82%"
	if got != want {
		t.Errorf("Lookup = %q, want %q", got, want)
	}
}

func TestWeatherNoKey(t *testing.T) {
	w := NewWeather("")
	if got := w.Lookup(context.Background(), "London"); got != WeatherNotConfigured {
		t.Errorf("Expected configuration hint, got %q", got)
	}
}

func TestWeatherCityNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	w := NewWeather("key")
	w.BaseURL = srv.URL

	got := w.Lookup(context.Background(), "Atlantis")
	if !strings.Contains(got, "Atlantis") {
		t.Errorf("Miss should name the city, got %q", got)
	}
}

func TestNewsLookup(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("pageSize"); got != "3" {
			t.Errorf("Expected pageSize 3, got %q", got)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"articles": []map[string]interface{}{
				{"title": "First story", "source": map[string]string{"name": "Wire"}},
				{"title": "Second story", "source": map[string]string{"name": "Post"}},
			},
		})
	}))
	defer srv.Close()

	n := NewNews("key")
	n.BaseURL = srv.URL

	got := n.Lookup(context.Background(), "science")
	if !strings.Contains(got, "First story - Wire") || !strings.Contains(got, "Second story - Post") {
		t.Errorf("Headlines missing from %q", got)
	}
}

func TestNewsNoResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"articles": []interface{}{}})
	}))
	defer srv.Close()

	n := NewNews("key")
	n.BaseURL = srv.URL

	if got := n.Lookup(context.Background(), "obscure"); !strings.Contains(got, "couldn't find") {
		t.Errorf("Expected empty-result sentence, got %q", got)
	}
}

func TestStockLookup(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("symbols"); got != "AAPL" {
			t.Errorf("Symbol should be uppercased, got %q", got)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"quoteResponse": map[string]interface{}{
				"result": []map[string]interface{}{
					{"symbol": "AAPL", "longName": "Apple Inc.", "regularMarketPrice": 187.5},
				},
			},
		})
	}))
	defer srv.Close()

	s := NewStock()
	s.BaseURL = srv.URL

	got := s.Lookup(context.Background(), "aapl")
	want := "Apple Inc. (AAPL) is currently at $187.50"
	if got != want {
		t.Errorf("Lookup = %q, want %q", got, want)
	}
}

func TestStockUnknownSymbol(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"quoteResponse": map[string]interface{}{"result": []interface{}{}},
		})
	}))
	defer srv.Close()

	s := NewStock()
	s.BaseURL = srv.URL

	if got := s.Lookup(context.Background(), "ZZZZ"); !strings.Contains(got, "ZZZZ") {
		t.Errorf("Miss should name the symbol, got %q", got)
	}
}

func TestSearchScrapesSnippets(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body>
			<div class="result__snippet">Go is a programming language.</div>
			<div class="result__snippet">It was designed at Google.</div>
		</body></html>`))
	}))
	defer srv.Close()

	s := NewSearch()
	s.BaseURL = srv.URL
	s.OpenURL = func(string) error {
		t.Fatal("Browser must not open when scraping succeeds")
		return nil
	}

	got := s.Lookup(context.Background(), "golang")
	if !strings.Contains(got, "Go is a programming language.") {
		t.Errorf("Snippet missing from %q", got)
	}
}

func TestSearchFallsBackToBrowser(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body><p>no results markup</p></body></html>`))
	}))
	defer srv.Close()

	var opened string
	s := NewSearch()
	s.BaseURL = srv.URL
	s.OpenURL = func(url string) error {
		opened = url
		return nil
	}

	got := s.Lookup(context.Background(), "rare query")
	if got != "Opened web search for rare query" {
		t.Errorf("Unexpected fallback sentence: %q", got)
	}
	if !strings.Contains(opened, "rare+query") {
		t.Errorf("Browser URL missing query: %q", opened)
	}
}

func TestWikiLookup(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/Alan_Turing") {
			t.Errorf("Spaces should become underscores, got %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]string{
			"extract": "Alan Turing was a mathematician. He founded computer science. He also broke codes.",
		})
	}))
	defer srv.Close()

	w := NewWiki()
	w.BaseURL = srv.URL

	got := w.Lookup(context.Background(), "Alan Turing")
	want := "According to Wikipedia: Alan Turing was a mathematician. He founded computer science."
	if got != want {
		t.Errorf("Lookup = %q, want %q", got, want)
	}
}

func TestWikiMiss(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	w := NewWiki()
	w.BaseURL = srv.URL

	got := w.Lookup(context.Background(), "Xyzzyplugh")
	if got != "Couldn't find Wikipedia information about Xyzzyplugh" {
		t.Errorf("Unexpected miss sentence: %q", got)
	}
}

func TestClockLookup(t *testing.T) {
	c := NewClock()
	c.Now = func() time.Time {
		return time.Date(2025, 6, 2, 15, 4, 0, 0, time.UTC)
	}

	got := c.Lookup(context.Background(), "")
	want := "It's 3:04 PM on Monday, June 2, 2025"
	if got != want {
		t.Errorf("Lookup = %q, want %q", got, want)
	}
	if c.TimeOfDay() != "afternoon" {
		t.Errorf("TimeOfDay = %q, want afternoon", c.TimeOfDay())
	}
}
