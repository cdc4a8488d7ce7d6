// Package flowhost is the REST client of the canonical flow host, used by
// the gateway to check flow metadata before hosting an embed.
package flowhost

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-retryablehttp"
	"golang.org/x/time/rate"

	"github.com/flowframe/embed/internal/version"
)

// FlowInfo is the flow host's description of a published flow.
type FlowInfo struct {
	Client    string   `json:"client"`
	Flow      string   `json:"flow"`
	Title     string   `json:"title"`
	Published bool     `json:"published"`
	Variants  []string `json:"variants"`
}

// Client wraps resty with a retrying transport and request rate limiting.
type Client struct {
	resty   *resty.Client
	limiter *rate.Limiter
}

// New creates a flow host client for the given base URL.
func New(baseURL string) *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = 3
	retryClient.RetryWaitMin = 500 * time.Millisecond
	retryClient.RetryWaitMax = 10 * time.Second
	retryClient.Logger = nil

	restyClient := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(15*time.Second).
		SetHeader("User-Agent", "FlowFrame-Gateway/"+version.Version)
	restyClient.SetTransport(retryClient.HTTPClient.Transport)

	return &Client{
		resty:   restyClient,
		limiter: rate.NewLimiter(rate.Inf, 0),
	}
}

// SetRateLimit caps outbound requests per second. Zero or negative removes
// the cap.
func (c *Client) SetRateLimit(rps float64) {
	if rps <= 0 {
		c.limiter = rate.NewLimiter(rate.Inf, 0)
		return
	}
	burst := int(rps)
	if burst < 1 {
		burst = 1
	}
	c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
}

// Describe fetches metadata for one flow.
func (c *Client) Describe(ctx context.Context, client, flow string) (*FlowInfo, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	var info FlowInfo
	resp, err := c.resty.R().
		SetContext(ctx).
		SetPathParams(map[string]string{"client": client, "flow": flow}).
		SetResult(&info).
		Get("/api/flows/{client}/{flow}")
	if err != nil {
		return nil, fmt.Errorf("flowhost: describe %s/%s: %w", client, flow, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("flowhost: describe %s/%s: HTTP %d", client, flow, resp.StatusCode())
	}
	return &info, nil
}
