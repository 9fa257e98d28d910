package fetcher

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"watchchart/internal/models"
	"watchchart/internal/timeconv"
)

// DefaultSegmentsPath is where the aggregation service serves watch segments.
const DefaultSegmentsPath = "/api/v1/video/watch-segments"

const maxErrorBody = 64 << 10

// Result carries the segments of a successful fetch.
type Result struct {
	Segments []models.WatchSegment
	// TotalSeconds is set when the service reported a total itself.
	TotalSeconds *float64
	RequestID    string
}

// Client posts resolved requests to the aggregation service. It holds no
// per-request state: every call is an independent fetch with no retry,
// caching or de-duplication.
type Client struct {
	endpoint string
	client   *http.Client
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.client = hc
		}
	}
}

// WithTimeout bounds each request. Zero leaves the network stack in charge.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		hc := *c.client
		hc.Timeout = d
		c.client = &hc
	}
}

// New creates a client for baseURL + path.
func New(baseURL, path string, opts ...Option) *Client {
	if path == "" {
		path = DefaultSegmentsPath
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:          20,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   5 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}

	c := &Client{
		endpoint: strings.TrimSuffix(baseURL, "/") + path,
		client:   &http.Client{Transport: transport},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Endpoint is the full URL requests are posted to.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Fetch posts one request for req and classifies the outcome. req must be
// resolved. Failures are always *FetchError.
func (c *Client) Fetch(ctx context.Context, req models.RequestParameters) (Result, error) {
	if !req.Resolved() {
		return Result{}, ErrUnresolvedWindow
	}

	body := models.SegmentsRequest{
		Identifier: req.Identifier,
		BVID:       req.Identifier,
		StartTime:  timeconv.FormatUTC(req.Window.Start),
		EndTime:    timeconv.FormatUTC(req.Window.End),
		Interval:   string(req.Interval),
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return Result{}, transportError(fmt.Errorf("encode request: %w", err))
	}

	requestID := uuid.NewString()
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return Result{}, transportError(err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("X-Request-ID", requestID)

	log.Printf("[fetcher] %s POST %s identifier=%s interval=%s window=%s..%s",
		requestID, c.endpoint, body.Identifier, body.Interval, body.StartTime, body.EndTime)

	resp, err := c.client.Do(httpReq)
	if err != nil {
		log.Printf("[fetcher] %s transport error: %v", requestID, err)
		return Result{}, transportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		text, readErr := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		if readErr != nil {
			log.Printf("[fetcher] %s http %d, reading body: %v", requestID, resp.StatusCode, readErr)
			text = append(text, fmt.Sprintf(" (body read failed: %v)", readErr)...)
		} else {
			log.Printf("[fetcher] %s http %d", requestID, resp.StatusCode)
		}
		return Result{}, &FetchError{Kind: KindHTTP, Status: resp.StatusCode, Body: string(text)}
	}

	var envelope models.SegmentsEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		log.Printf("[fetcher] %s decode error: %v", requestID, err)
		return Result{}, transportError(fmt.Errorf("decode response: %w", err))
	}
	if envelope.Code != 0 {
		log.Printf("[fetcher] %s business error code=%d msg=%s", requestID, envelope.Code, envelope.Msg)
		return Result{}, &FetchError{Kind: KindBusiness, Status: resp.StatusCode, Message: envelope.Msg}
	}

	result := Result{Segments: []models.WatchSegment{}, RequestID: requestID}
	if envelope.Data != nil {
		if envelope.Data.Segments != nil {
			result.Segments = envelope.Data.Segments
		}
		result.TotalSeconds = envelope.Data.TotalWatchedDurationSec
	}
	log.Printf("[fetcher] %s received %d segment(s)", requestID, len(result.Segments))
	return result, nil
}
