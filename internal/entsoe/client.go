package entsoe

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Default configuration values.
const (
	DefaultBaseURL = "https://web-api.tp.entsoe.eu/api"
	DefaultTimeout = 30 * time.Second

	// documentTypeDayAhead is the ENTSO-E document type for day-ahead prices.
	documentTypeDayAhead = "A44"

	// periodFormat is the YYYYMMDDHHMM layout the API expects for
	// periodStart and periodEnd, always in UTC.
	periodFormat = "200601021504"
)

// Config holds the API endpoint and credential. It is always passed
// explicitly into constructors, never read from ambient process state.
type Config struct {
	BaseURL       string
	SecurityToken string
}

// Client fetches publication market documents over HTTP.
type Client struct {
	config Config
	client *http.Client
}

// ClientOption configures Client.
type ClientOption func(*Client)

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.client.Timeout = d
	}
}

// WithHTTPClient sets a custom http.Client.
func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *Client) {
		c.client = client
	}
}

// NewClient creates a new ENTSO-E transparency platform client.
func NewClient(config Config, opts ...ClientOption) *Client {
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}
	c := &Client{
		config: config,
		client: &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch retrieves the day-ahead price document for a bidding-zone domain
// over [periodStart, periodEnd). Single attempt, no retries; a fetch that
// fails is reported to the caller and may be re-run later.
//
// Returns *ConnectionError on transport failure or non-2xx status, and
// ErrEmptyResponse when the body is blank.
func (c *Client) Fetch(ctx context.Context, domainCode string, periodStart, periodEnd time.Time) (string, error) {
	params := url.Values{}
	params.Set("securityToken", c.config.SecurityToken)
	params.Set("documentType", documentTypeDayAhead)
	params.Set("in_Domain", domainCode)
	params.Set("out_Domain", domainCode)
	params.Set("periodStart", periodStart.UTC().Format(periodFormat))
	params.Set("periodEnd", periodEnd.UTC().Format(periodFormat))

	reqURL := c.config.BaseURL + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", &ConnectionError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &ConnectionError{Err: fmt.Errorf("read response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &ConnectionError{Status: resp.StatusCode, Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}

	text := string(body)
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyResponse
	}

	return text, nil
}
