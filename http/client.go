// Package http implements sentiview.Analyzer against the sentiment service's
// HTTP API.
package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/fwojciec/sentiview"
	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// Compile-time interface verification.
var _ sentiview.Analyzer = (*Client)(nil)

// Endpoint paths relative to the base address.
const (
	PathHealth      = "/"
	PathPredictText = "/predict_text"
	PathPredictFile = "/predict_file"
)

// DefaultTimeout bounds a single round trip.
const DefaultTimeout = 60 * time.Second

// maxErrorBody caps how much of a failure body is read for the message.
const maxErrorBody = 4 << 10

// RequestIDHeader carries a per-submission identifier for server-side logs.
const RequestIDHeader = "X-Request-ID"

// StatusError reports a non-2xx response.
type StatusError struct {
	StatusCode int
	Detail     string // FastAPI "detail" or the raw body, may be empty
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Detail)
}

// ErrMalformedResponse is returned when a 2xx body cannot be interpreted.
var ErrMalformedResponse = errors.New("malformed response")

type textRequest struct {
	Texts []string `json:"texts"`
}

type textResponse struct {
	Results *[]sentiview.PredictionRecord `json:"results"`
}

type fileResponse struct {
	RowCount    *int                          `json:"row_count"`
	Predictions *[]sentiview.PredictionRecord `json:"predictions"`
}

// HealthResponse is the body of the service's root endpoint.
type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Client talks to the two prediction endpoints.
type Client struct {
	baseURL string
	http    *http.Client
	timeout time.Duration
	logger  *zap.Logger
	newID   func() string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client. The client is used as is;
// WithTimeout does not modify it.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithTimeout sets the round-trip timeout of the default HTTP client. It has
// no effect when WithHTTPClient is also given.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

// WithRequestIDFunc overrides request id generation (for testing).
func WithRequestIDFunc(fn func() string) Option {
	return func(c *Client) {
		c.newID = fn
	}
}

// NewClient creates a Client for the service at baseURL. A trailing slash on
// baseURL is tolerated.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: DefaultTimeout,
		logger:  zap.NewNop(),
		newID:   func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.http == nil {
		c.http = &http.Client{Timeout: c.timeout}
	}
	return c
}

// Submit sends req to the endpoint for its mode. Every failure, whether
// transport, status or decoding, is returned as a Failure outcome.
func (c *Client) Submit(ctx context.Context, req sentiview.Request) sentiview.Outcome {
	var (
		out sentiview.Outcome
		err error
	)
	switch r := req.(type) {
	case sentiview.TextRequest:
		out, err = c.predictText(ctx, r)
	case sentiview.FileRequest:
		out, err = c.predictFile(ctx, r)
	default:
		err = eris.Errorf("http: unsupported request type %T", req)
	}
	if err != nil {
		return sentiview.Failure(failureMessage(err))
	}
	return out
}

func (c *Client) predictText(ctx context.Context, r sentiview.TextRequest) (sentiview.Outcome, error) {
	body, err := json.Marshal(textRequest{Texts: r.Texts})
	if err != nil {
		return sentiview.Outcome{}, eris.Wrap(err, "http: marshal request")
	}

	data, err := c.post(ctx, PathPredictText, "application/json", body)
	if err != nil {
		return sentiview.Outcome{}, err
	}

	var resp textResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return sentiview.Outcome{}, fmt.Errorf("%w: decode %s: %v", ErrMalformedResponse, PathPredictText, err)
	}
	if resp.Results == nil {
		return sentiview.Outcome{}, fmt.Errorf("%w: %s: missing %q", ErrMalformedResponse, PathPredictText, "results")
	}
	if err := checkRecords(*resp.Results); err != nil {
		return sentiview.Outcome{}, err
	}
	return sentiview.Success(*resp.Results, nil), nil
}

func (c *Client) predictFile(ctx context.Context, r sentiview.FileRequest) (sentiview.Outcome, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	name := r.File.Name
	if name == "" {
		name = "upload"
	}
	fw, err := mw.CreateFormFile("file", name)
	if err != nil {
		return sentiview.Outcome{}, eris.Wrap(err, "http: create file part")
	}
	if _, err := fw.Write(r.File.Data); err != nil {
		return sentiview.Outcome{}, eris.Wrap(err, "http: write file part")
	}
	if err := mw.WriteField("text_column", r.TextColumn); err != nil {
		return sentiview.Outcome{}, eris.Wrap(err, "http: write text_column")
	}
	if err := mw.Close(); err != nil {
		return sentiview.Outcome{}, eris.Wrap(err, "http: close multipart body")
	}

	data, err := c.post(ctx, PathPredictFile, mw.FormDataContentType(), buf.Bytes())
	if err != nil {
		return sentiview.Outcome{}, err
	}

	var resp fileResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return sentiview.Outcome{}, fmt.Errorf("%w: decode %s: %v", ErrMalformedResponse, PathPredictFile, err)
	}
	if resp.Predictions == nil {
		return sentiview.Outcome{}, fmt.Errorf("%w: %s: missing %q", ErrMalformedResponse, PathPredictFile, "predictions")
	}
	if err := checkRecords(*resp.Predictions); err != nil {
		return sentiview.Outcome{}, err
	}
	return sentiview.Success(*resp.Predictions, resp.RowCount), nil
}

// post sends body to path and returns the response body of a 2xx reply.
func (c *Client) post(ctx context.Context, path, contentType string, body []byte) ([]byte, error) {
	endpoint, err := url.JoinPath(c.baseURL, path)
	if err != nil {
		return nil, eris.Wrap(err, "http: build url")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, eris.Wrap(err, "http: create request")
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")

	id := c.newID()
	req.Header.Set(RequestIDHeader, id)

	log := c.logger.With(zap.String("request_id", id), zap.String("endpoint", path))
	log.Debug("sending request", zap.Int("bytes", len(body)))
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		log.Warn("request failed", zap.Error(err))
		return nil, eris.Wrap(err, "http: send request")
	}
	defer resp.Body.Close()

	log.Info("response received",
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		limited, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &StatusError{StatusCode: resp.StatusCode, Detail: extractDetail(limited)}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "http: read response body")
	}
	return data, nil
}

// Health probes the service root endpoint.
func (c *Client) Health(ctx context.Context) (*HealthResponse, error) {
	endpoint, err := url.JoinPath(c.baseURL, PathHealth)
	if err != nil {
		return nil, eris.Wrap(err, "http: build url")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return nil, eris.Wrap(err, "http: create request")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "http: send request")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{StatusCode: resp.StatusCode}
	}

	var result HealthResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, eris.Wrap(err, "http: decode health response")
	}
	return &result, nil
}

// checkRecords rejects scores outside [0,1].
func checkRecords(records []sentiview.PredictionRecord) error {
	for i, r := range records {
		if math.IsNaN(r.Score) || r.Score < 0 || r.Score > 1 {
			return fmt.Errorf("%w: record %d: score %v out of range", ErrMalformedResponse, i, r.Score)
		}
	}
	return nil
}

// extractDetail pulls a FastAPI-style "detail" string out of an error body,
// falling back to the trimmed body text.
func extractDetail(body []byte) string {
	var fastAPI struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &fastAPI); err == nil && len(fastAPI.Detail) > 0 {
		var s string
		if err := json.Unmarshal(fastAPI.Detail, &s); err == nil {
			return s
		}
		return string(fastAPI.Detail)
	}
	return strings.TrimSpace(string(body))
}

// failureMessage converts an error into the user-facing failure text.
func failureMessage(err error) string {
	var se *StatusError
	switch {
	case errors.As(err, &se):
		return se.Error()
	case errors.Is(err, ErrMalformedResponse):
		return "malformed response from service"
	case errors.Is(err, context.DeadlineExceeded):
		return "request timed out"
	case errors.Is(err, context.Canceled):
		return "request canceled"
	default:
		return "could not reach service: " + rootMessage(err)
	}
}

// rootMessage returns the message of the innermost error in the chain.
func rootMessage(err error) string {
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return err.Error()
		}
		err = next
	}
}
