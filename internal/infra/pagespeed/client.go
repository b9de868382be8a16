package pagespeed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultBaseURL = "https://www.googleapis.com/pagespeedonline/v5/runPagespeed"

// Client fetches audit reports from the PageSpeed Insights API.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewClient builds an API client.
func NewClient(apiKey, baseURL string) *Client {
	base := strings.TrimSpace(baseURL)
	if base == "" {
		base = defaultBaseURL
	}
	return &Client{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(base, "/"),
		httpClient: &http.Client{
			// PSI audits routinely take tens of seconds.
			Timeout: 60 * time.Second,
		},
	}
}

// Fetch runs a PageSpeed audit for the given page URL and returns the raw
// JSON report verbatim. Single attempt, no retries.
func (c *Client) Fetch(ctx context.Context, pageURL, strategy string) (json.RawMessage, error) {
	query := url.Values{}
	query.Set("url", pageURL)
	query.Set("key", c.apiKey)
	query.Set("strategy", strategy)
	endpoint := c.baseURL + "?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build pagespeed request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("pagespeed request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return nil, fmt.Errorf("pagespeed request error: status=%d body=%s", resp.StatusCode, string(detail))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read pagespeed response: %w", err)
	}
	return json.RawMessage(body), nil
}
