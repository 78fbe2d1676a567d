// Package weather looks up current conditions from OpenWeatherMap.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"tableflip.dev/habits/pkg/cache"
)

// Report is the current weather for a city.
type Report struct {
	Description        string  `json:"description"`
	TemperatureCelsius float64 `json:"temperature_celsius"`
}

// String is the one-line summary used in reports and prompts.
func (r *Report) String() string {
	if r == nil {
		return ""
	}
	return fmt.Sprintf("%s / %.1f°C", r.Description, r.TemperatureCelsius)
}

// Client queries the current-weather endpoint.
type Client struct {
	URL     string
	Key     string
	Lang    string
	Timeout time.Duration

	HTTP  *http.Client
	Cache cache.Cache
	Log   io.Writer
}

// New returns a Client for the given endpoint and API key.
func New(endpoint, key string, timeout time.Duration) *Client {
	return &Client{
		URL:     endpoint,
		Key:     key,
		Lang:    "en",
		Timeout: timeout,
		HTTP:    http.DefaultClient,
		Cache:   cache.Nop{},
		Log:     os.Stderr,
	}
}

type response struct {
	Weather []struct {
		Description string `json:"description"`
	} `json:"weather"`
	Main struct {
		Temp *float64 `json:"temp"`
	} `json:"main"`
}

// Lookup returns the weather for city, or nil when the city or key is empty
// or the lookup fails for any reason.
func (c *Client) Lookup(ctx context.Context, city string) *Report {
	city = strings.TrimSpace(city)
	if city == "" || c.Key == "" {
		return nil
	}

	key := "weather:" + strings.ToLower(city) + ":" + c.Lang
	if raw, ok := c.Cache.Get(key); ok {
		var r Report
		if err := json.Unmarshal(raw, &r); err == nil {
			return &r
		}
	}

	r, err := c.fetch(ctx, city)
	if err != nil {
		fmt.Fprintf(c.Log, "weather: %s: %v\n", city, err)
		return nil
	}
	if raw, err := json.Marshal(r); err == nil {
		c.Cache.Put(key, raw)
	}
	return r
}

func (c *Client) fetch(ctx context.Context, city string) (*Report, error) {
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	u, err := url.Parse(c.URL)
	if err != nil {
		return nil, err
	}
	q := u.Query()
	q.Set("q", city)
	q.Set("appid", c.Key)
	q.Set("units", "metric")
	if c.Lang != "" {
		q.Set("lang", c.Lang)
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}

	var body response
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if len(body.Weather) == 0 || body.Main.Temp == nil {
		return nil, fmt.Errorf("incomplete response")
	}
	return &Report{
		Description:        body.Weather[0].Description,
		TemperatureCelsius: *body.Main.Temp,
	}, nil
}
