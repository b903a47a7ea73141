package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/modwatch/modwatch/internal/models"
)

// DefaultBaseURL is used when no backend URL is configured
const DefaultBaseURL = "http://localhost:8000"

// Client talks to the companion backend's REST surface: health probes and
// token-trend statistics. The monitor stream has its own client; this one
// covers everything the dashboard fetches over plain HTTP.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a REST client for the given base URL
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 5 * time.Second},
	}
}

// Liveness checks the backend's liveness probe
func (c *Client) Liveness(ctx context.Context) error {
	var body struct {
		Status string `json:"status"`
	}
	if err := c.getJSON(ctx, "/health/liveness", &body); err != nil {
		return err
	}
	if body.Status != "ok" {
		return fmt.Errorf("liveness reported %q", body.Status)
	}
	return nil
}

// Readiness fetches the readiness report. The backend answers 503 when a
// dependency is degraded but still includes the per-check body, so a 503
// is decoded rather than treated as a transport failure.
func (c *Client) Readiness(ctx context.Context) (*models.HealthReport, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/health/readiness")
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("readiness request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusServiceUnavailable {
		return nil, fmt.Errorf("readiness: unexpected status %d", resp.StatusCode)
	}

	var report models.HealthReport
	if err := json.NewDecoder(resp.Body).Decode(&report); err != nil {
		return nil, fmt.Errorf("decode readiness report: %w", err)
	}
	return &report, nil
}

// TokenTrend fetches the last 24 hours of token consumption
func (c *Client) TokenTrend(ctx context.Context) (*models.TokenTrendStats, error) {
	var trend models.TokenTrendStats
	if err := c.getJSON(ctx, "/api/stats/token-trend", &trend); err != nil {
		return nil, err
	}
	return &trend, nil
}

// InjectTestTokens adds tokens to the current hour's bucket. Dev helper
// mirroring the backend's test endpoint.
func (c *Client) InjectTestTokens(ctx context.Context, tokens int) error {
	path := "/api/stats/token-trend/test?" + url.Values{"tokens": {strconv.Itoa(tokens)}}.Encode()
	req, err := c.newRequest(ctx, http.MethodPost, path)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("inject tokens: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("inject tokens: unexpected status %d", resp.StatusCode)
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context, method, path string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("build request %s: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")
	return req, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := c.newRequest(ctx, http.MethodGet, path)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET %s: unexpected status %d", path, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}
