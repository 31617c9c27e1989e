package submission

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/traderbros/booking-platform/pkg/logging"
)

const defaultUserAgent = "traderbros-booking/0.1"

// ErrDelivery wraps every webhook failure. Callers show a generic notice;
// the wrapped detail goes to logs only.
var ErrDelivery = errors.New("submission: webhook delivery failed")

// ClientConfig controls how the webhook client behaves.
type ClientConfig struct {
	URL        string
	Timeout    time.Duration
	HTTPClient *http.Client
	UserAgent  string
	Logger     *logging.Logger
}

// Client delivers booking payloads to the configured webhook endpoint.
type Client struct {
	url        string
	httpClient *http.Client
	userAgent  string
	logger     *logging.Logger
}

// NewClient creates a configured Client with sane defaults.
func NewClient(cfg ClientConfig) (*Client, error) {
	url := strings.TrimSpace(cfg.URL)
	if url == "" {
		return nil, errors.New("submission: webhook URL is required")
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 15 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	userAgent := strings.TrimSpace(cfg.UserAgent)
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	return &Client{
		url:        url,
		httpClient: httpClient,
		userAgent:  userAgent,
		logger:     logger,
	}, nil
}

// Deliver POSTs the payload as JSON. Any 2xx status counts as delivered;
// the response body is never parsed.
func (c *Client) Deliver(ctx context.Context, p Payload) error {
	body, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("%w: encode: %v", ErrDelivery, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: build request: %v", ErrDelivery, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("webhook request failed", "error", err)
		return fmt.Errorf("%w: %v", ErrDelivery, err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Error("webhook returned non-success status", "status", resp.StatusCode)
		return fmt.Errorf("%w: status %d", ErrDelivery, resp.StatusCode)
	}
	return nil
}
