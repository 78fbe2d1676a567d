// Package reward fetches a random dog picture to show after a check-in.
package reward

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

// Client queries a dog.ceo style random-image endpoint. Every call fetches a
// new image; results are never cached.
type Client struct {
	URL     string
	Timeout time.Duration

	HTTP *http.Client
	Log  io.Writer
}

// New returns a Client for endpoint.
func New(endpoint string, timeout time.Duration) *Client {
	return &Client{
		URL:     endpoint,
		Timeout: timeout,
		HTTP:    http.DefaultClient,
		Log:     os.Stderr,
	}
}

// Image returns an image URL, or "" and false on any failure.
func (c *Client) Image(ctx context.Context) (string, bool) {
	if c.URL == "" {
		return "", false
	}
	u, err := c.fetch(ctx)
	if err != nil {
		fmt.Fprintf(c.Log, "reward: %v\n", err)
		return "", false
	}
	return u, true
}

func (c *Client) fetch(ctx context.Context) (string, error) {
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL, nil)
	if err != nil {
		return "", err
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %s", resp.Status)
	}
	var body struct {
		Message string `json:"message"`
		Status  string `json:"status"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("decode: %w", err)
	}
	if body.Message == "" || (body.Status != "" && body.Status != "success") {
		return "", fmt.Errorf("no image in response")
	}
	return body.Message, nil
}
