package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nao1215/blogrefresh/internal/model"
)

// Endpoint paths relative to the base URL.
const (
	analyzePath  = "/analyze"
	generatePath = "/generate"
)

// requestIDHeader carries a per-call id that the backend can log.
const requestIDHeader = "X-Request-Id"

// defaultMaxBodySize bounds how much of a response body is read.
const defaultMaxBodySize = 5 * 1024 * 1024

// Client calls the audit/generation service.
type Client struct {
	// baseURL is the API base without trailing slash.
	baseURL string

	httpClient  *http.Client
	headers     map[string]string
	userAgent   string
	maxBodySize int64
	logger      *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithHeaders adds headers to every request, e.g. an API key.
func WithHeaders(headers map[string]string) Option {
	return func(c *Client) {
		for k, v := range headers {
			c.headers[k] = v
		}
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithMaxBodySize limits how many bytes of a response are read.
func WithMaxBodySize(n int64) Option {
	return func(c *Client) {
		if n > 0 {
			c.maxBodySize = n
		}
	}
}

// WithLogger sets the logger for request tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a Client for the API at baseURL.
// The timeout bounds each call, including reading the response.
func NewClient(baseURL string, timeout time.Duration, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, ErrInvalidBaseURL
	}

	c := &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		httpClient:  &http.Client{Timeout: timeout},
		headers:     make(map[string]string),
		maxBodySize: defaultMaxBodySize,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	return c, nil
}

// BaseURL returns the API base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// analyzeResponse is the success body of /analyze.
type analyzeResponse struct {
	Audit *model.AuditResult `json:"audit"`
}

// generateResponse is the success body of /generate.
type generateResponse struct {
	HTML *string `json:"html"`
}

// failureResponse is the error body of both endpoints. FastAPI validation
// failures send a list of objects instead of a string.
type failureResponse struct {
	Detail json.RawMessage `json:"detail"`
}

// Analyze submits pageURL for auditing and returns the validated audit.
func (c *Client) Analyze(ctx context.Context, pageURL string) (*model.AuditResult, error) {
	status, body, err := c.post(ctx, analyzePath, map[string]string{"url": pageURL})
	if err != nil {
		return nil, &AnalysisError{Err: err}
	}
	if !isSuccess(status) {
		detail, ok := parseDetail(body)
		if !ok {
			detail = unknownBackendError
		}
		return nil, &AnalysisError{StatusCode: status, Detail: detail}
	}

	var resp analyzeResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &MalformedResponseError{Endpoint: analyzePath, Err: err}
	}
	if resp.Audit == nil {
		return nil, &MalformedResponseError{Endpoint: analyzePath, Err: errors.New("missing audit")}
	}
	if err := resp.Audit.Validate(); err != nil {
		return nil, &MalformedResponseError{Endpoint: analyzePath, Err: err}
	}
	return resp.Audit, nil
}

// Generate sends the approved selection and returns the generated markup.
func (c *Client) Generate(ctx context.Context, req model.GenerationRequest) (model.GeneratedContent, error) {
	status, body, err := c.post(ctx, generatePath, req)
	if err != nil {
		return model.GeneratedContent{}, &GenerationError{Err: err}
	}
	if !isSuccess(status) {
		detail, _ := parseDetail(body)
		return model.GeneratedContent{}, &GenerationError{StatusCode: status, Detail: detail}
	}

	var resp generateResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return model.GeneratedContent{}, &MalformedResponseError{Endpoint: generatePath, Err: err}
	}
	if resp.HTML == nil {
		return model.GeneratedContent{}, &MalformedResponseError{Endpoint: generatePath, Err: errors.New("missing html")}
	}
	return model.GeneratedContent{HTML: *resp.HTML}, nil
}

// post sends payload as JSON and returns the status and the (bounded) body.
func (c *Client) post(ctx context.Context, path string, payload any) (int, []byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return 0, nil, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return 0, nil, fmt.Errorf("create request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(requestIDHeader, requestID)
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	logger := c.logger.With("endpoint", path, "request_id", requestID)
	logger.Debug("sending backend request", "payload", string(data))

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Warn("backend request failed", "error", err, "latency", time.Since(start))
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBodySize))
	if err != nil {
		logger.Warn("reading backend response failed", "error", err)
		return 0, nil, fmt.Errorf("read response: %w", err)
	}

	if isSuccess(resp.StatusCode) {
		logger.Info("backend response", "status", resp.StatusCode, "latency", time.Since(start))
	} else {
		logger.Warn("backend returned error status", "status", resp.StatusCode, "body", string(body))
	}
	return resp.StatusCode, body, nil
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}

// parseDetail extracts the detail message of a failure body.
// ok is false when the body is not JSON at all.
func parseDetail(body []byte) (detail string, ok bool) {
	var f failureResponse
	if err := json.Unmarshal(body, &f); err != nil {
		return "", false
	}
	if len(f.Detail) == 0 {
		return "", true
	}

	var s string
	if err := json.Unmarshal(f.Detail, &s); err == nil {
		return s, true
	}

	var items []struct {
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(f.Detail, &items); err == nil {
		msgs := make([]string, 0, len(items))
		for _, it := range items {
			if it.Msg != "" {
				msgs = append(msgs, it.Msg)
			}
		}
		if len(msgs) > 0 {
			return strings.Join(msgs, "; "), true
		}
	}

	var compact bytes.Buffer
	if err := json.Compact(&compact, f.Detail); err != nil {
		return string(f.Detail), true
	}
	return compact.String(), true
}
