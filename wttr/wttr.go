// Package wttr fetches current weather conditions from the wttr.in JSON API.
// It degrades gracefully: any transport, decoding or data problem yields a
// deterministic placeholder observation instead of an error, so demo programs
// keep working offline.
package wttr

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/hupe1980/agentlab/logging"
)

const defaultBaseURL = "https://wttr.in"

// Conditions is a normalized current-weather observation.
type Conditions struct {
	City        string  `json:"city"`
	TempC       float64 `json:"temp_c"`
	TempF       float64 `json:"temp_f"`
	Description string  `json:"description"`
	HumidityPct int     `json:"humidity_pct"`
	WindKmph    int     `json:"wind_kmph"`
	Placeholder bool    `json:"placeholder"`
}

// Options configures a Client.
type Options struct {
	// BaseURL of the wttr.in compatible endpoint.
	BaseURL string

	// HTTPClient used for requests. Defaults to a client with a 10 second
	// timeout.
	HTTPClient *http.Client

	// Logger receives fallback diagnostics. Defaults to NoOp.
	Logger logging.Logger
}

// Client queries wttr.in for current conditions.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     logging.Logger
}

// NewClient constructs a weather client with a 10 second request timeout.
func NewClient(optFns ...func(o *Options)) *Client {
	opts := Options{
		BaseURL:    defaultBaseURL,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
		Logger:     logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	return &Client{
		baseURL:    opts.BaseURL,
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
	}
}

// wttr.in ?format=j1 payload, reduced to the fields we read.
type apiResponse struct {
	CurrentCondition []struct {
		TempC       string `json:"temp_C"`
		TempF       string `json:"temp_F"`
		Humidity    string `json:"humidity"`
		WindKmph    string `json:"windspeedKmph"`
		WeatherDesc []struct {
			Value string `json:"value"`
		} `json:"weatherDesc"`
	} `json:"current_condition"`
}

// Current returns the current conditions for city. It never returns an
// error; on failure the result is a placeholder observation with
// Placeholder set to true.
func (c *Client) Current(ctx context.Context, city string) Conditions {
	cond, err := c.fetch(ctx, city)
	if err != nil {
		c.logger.Warn("wttr.fallback", "city", city, "error", err.Error())

		return placeholder(city)
	}

	return cond
}

func (c *Client) fetch(ctx context.Context, city string) (Conditions, error) {
	endpoint := fmt.Sprintf("%s/%s?format=j1", c.baseURL, url.PathEscape(city))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Conditions{}, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Conditions{}, fmt.Errorf("fetch weather: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Conditions{}, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var payload apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Conditions{}, fmt.Errorf("decode weather: %w", err)
	}

	if len(payload.CurrentCondition) == 0 {
		return Conditions{}, fmt.Errorf("no current conditions for %q", city)
	}

	cc := payload.CurrentCondition[0]

	tempC, err := strconv.ParseFloat(cc.TempC, 64)
	if err != nil {
		return Conditions{}, fmt.Errorf("parse temperature: %w", err)
	}

	desc := ""
	if len(cc.WeatherDesc) > 0 {
		desc = cc.WeatherDesc[0].Value
	}

	humidity, _ := strconv.Atoi(cc.Humidity)
	wind, _ := strconv.Atoi(cc.WindKmph)

	return Conditions{
		City:        city,
		TempC:       tempC,
		TempF:       CelsiusToFahrenheit(tempC),
		Description: desc,
		HumidityPct: humidity,
		WindKmph:    wind,
	}, nil
}

func placeholder(city string) Conditions {
	return Conditions{
		City:        city,
		TempC:       21,
		TempF:       CelsiusToFahrenheit(21),
		Description: "Partly cloudy (placeholder)",
		HumidityPct: 50,
		WindKmph:    10,
		Placeholder: true,
	}
}
