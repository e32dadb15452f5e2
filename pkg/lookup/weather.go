package lookup

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
)

// DefaultWeatherURL is the OpenWeatherMap current-weather endpoint.
const DefaultWeatherURL = "https://api.openweathermap.org/data/2.5/weather"

// WeatherNotConfigured is spoken when no API key is present.
const WeatherNotConfigured = "Weather service is not configured. Add an OpenWeatherMap API key."

// Weather answers weather questions via OpenWeatherMap.
type Weather struct {
	APIKey  string
	BaseURL string
	Client  *http.Client
	Logger  *slog.Logger
}

var _ Handler = (*Weather)(nil)

// NewWeather creates a weather handler. An empty key is allowed; the
// handler then reports itself unconfigured in its spoken reply.
func NewWeather(apiKey string) *Weather {
	return &Weather{
		APIKey:  apiKey,
		BaseURL: DefaultWeatherURL,
		Logger:  slog.Default().With("component", "lookup.weather"),
	}
}

type weatherResponse struct {
	Name    string `json:"name"`
	Weather []struct {
		Description string `json:"description"`
	} `json:"weather"`
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		Humidity  int     `json:"humidity"`
	} `json:"main"`
}

// Lookup reports current conditions for the city.
func (w *Weather) Lookup(ctx context.Context, city string) string {
	if w.APIKey == "" {
		return WeatherNotConfigured
	}

	endpoint := fmt.Sprintf("%s?q=%s&appid=%s&units=metric",
		w.BaseURL, url.QueryEscape(city), url.QueryEscape(w.APIKey))

	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return "I couldn't reach the weather service."
	}

	resp, err := httpClientOr(w.Client).Do(req)
	if err != nil {
		w.Logger.Warn("weather request failed", "city", city, "error", err)
		return "I couldn't reach the weather service right now."
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Sprintf("I couldn't find weather information for %s.", city)
	}
	if resp.StatusCode != http.StatusOK {
		w.Logger.Warn("weather request failed", "city", city, "status", resp.StatusCode)
		return "The weather service returned an error."
	}

	var data weatherResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return "The weather service sent a response I couldn't read."
	}

	description := "unknown conditions"
	if len(data.Weather) > 0 {
		description = data.Weather[0].Description
	}

	return fmt.Sprintf("Weather in %s: %s, %.0f°C (feels like %.0f°C), humidity %d%%",
		data.Name, description, data.Main.Temp, data.Main.FeelsLike, data.Main.Humidity)
}
