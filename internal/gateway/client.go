// Package gateway is the HTTP client of the StudyGlobe API.
//
// Every call runs through a circuit breaker and a request timeout. Failures
// surface as one of three kinds: transport errors (including ErrUnavailable
// when the breaker is open), *validation.RequestValidationError for forms
// rejected before sending, and *APIError for non-2xx responses.
package gateway

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"studyglobe/internal/middleware"
	"studyglobe/internal/observability"

	"github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"
)

const (
	DefaultTimeout       = 10 * time.Second
	DefaultMaxImageBytes = 5 << 20
	breakerName          = "studyglobe-api"
	maxErrorBody         = 64 << 10
)

// ErrUnavailable is returned while the circuit breaker rejects calls.
var ErrUnavailable = errors.New("api temporarily unavailable")

// APIError is a non-2xx response from the API.
type APIError struct {
	Status int
	Detail string
	Code   string
}

func (e *APIError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("api error: status %d", e.Status)
	}
	return fmt.Sprintf("api error: status %d: %s", e.Status, e.Detail)
}

// IsNotFound reports whether err is a 404 from the API.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

// Config configures a Client.
type Config struct {
	// BaseURL is the API root every relative path resolves against.
	BaseURL       string
	Timeout       time.Duration
	MaxImageBytes int64
	// HTTPClient overrides the default client; its Timeout is replaced by Timeout.
	HTTPClient *http.Client
}

// Client talks to the API over HTTP.
type Client struct {
	base          *url.URL
	http          *http.Client
	cb            *gobreaker.CircuitBreaker[[]byte]
	maxImageBytes int64
	now           func() time.Time
}

// New returns a client for cfg.BaseURL.
func New(cfg Config) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/") + "/")
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("base url %q must be absolute", cfg.BaseURL)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	httpClient := &http.Client{}
	if cfg.HTTPClient != nil {
		clone := *cfg.HTTPClient
		httpClient = &clone
	}
	httpClient.Timeout = timeout

	maxImage := cfg.MaxImageBytes
	if maxImage <= 0 {
		maxImage = DefaultMaxImageBytes
	}

	return &Client{
		base:          base,
		http:          httpClient,
		cb:            newBreaker(breakerName),
		maxImageBytes: maxImage,
		now:           time.Now,
	}, nil
}

func newBreaker(name string) *gobreaker.CircuitBreaker[[]byte] {
	observability.GatewayBreakerState.WithLabelValues(name).Set(0)

	return gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        name,
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 10 {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= 0.6
		},
		// Client errors mean the API is healthy.
		IsSuccessful: func(err error) bool {
			var apiErr *APIError
			if errors.As(err, &apiErr) {
				return apiErr.Status < http.StatusInternalServerError
			}
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			middleware.Logger.Warn("circuit breaker state change",
				"breaker", name, "from", from.String(), "to", to.String())
			observability.GatewayBreakerState.WithLabelValues(name).Set(float64(to))
		},
	})
}

// BreakerState exposes the circuit breaker state.
func (c *Client) BreakerState() gobreaker.State {
	return c.cb.State()
}

// ResolveURL turns an API-relative path into an absolute URL. Absolute URLs
// and empty strings are returned unchanged.
func (c *Client) ResolveURL(ref string) string {
	if ref == "" {
		return ""
	}
	u, err := url.Parse(ref)
	if err != nil || u.IsAbs() {
		return ref
	}
	return c.base.ResolveReference(u).String()
}

type request struct {
	op          string
	method      string
	path        string
	body        []byte
	contentType string
}

// do sends req through the breaker and decodes a JSON response into out.
func (c *Client) do(ctx context.Context, req request, out any) (err error) {
	ctx, span := observability.StartClientSpan(ctx, "gateway."+req.op,
		attribute.String("http.method", req.method),
		attribute.String("http.path", req.path),
	)
	defer func() {
		outcome := "success"
		var apiErr *APIError
		switch {
		case errors.Is(err, ErrUnavailable):
			outcome = "rejected"
		case errors.As(err, &apiErr):
			outcome = fmt.Sprintf("status_%d", apiErr.Status)
		case err != nil:
			outcome = "transport_error"
		}
		observability.GatewayRequests.WithLabelValues(req.op, outcome).Inc()
		observability.EndSpan(span, err)
	}()

	body, err := c.cb.Execute(func() ([]byte, error) {
		return c.send(ctx, req)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		return err
	}

	if out == nil || len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%s: decode response: %w", req.op, err)
	}
	return nil
}

func (c *Client) send(ctx context.Context, req request) ([]byte, error) {
	ref, err := url.Parse(strings.TrimPrefix(req.path, "/"))
	if err != nil {
		return nil, fmt.Errorf("%s: parse path: %w", req.op, err)
	}
	u := c.base.ResolveReference(ref)

	var body io.Reader
	if req.body != nil {
		body = bytes.NewReader(req.body)
	}
	httpReq, err := http.NewRequestWithContext(ctx, req.method, u.String(), body)
	if err != nil {
		return nil, fmt.Errorf("%s: build request: %w", req.op, err)
	}
	httpReq.Header.Set("Accept", "application/json")
	if req.contentType != "" {
		httpReq.Header.Set("Content-Type", req.contentType)
	}
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(httpReq.Header))

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", req.op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, decodeAPIError(resp)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s: read response: %w", req.op, err)
	}
	return data, nil
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	var payload struct {
		Detail json.RawMessage `json:"detail"`
		Error  string          `json:"error"`
		Code   string          `json:"code"`
	}
	if err := json.Unmarshal(raw, &payload); err == nil {
		apiErr.Code = payload.Code
		var detail string
		if json.Unmarshal(payload.Detail, &detail) == nil {
			apiErr.Detail = detail
		} else if len(payload.Detail) > 0 {
			apiErr.Detail = string(payload.Detail)
		} else {
			apiErr.Detail = payload.Error
		}
	}
	if apiErr.Detail == "" {
		apiErr.Detail = strings.TrimSpace(string(raw))
	}
	if apiErr.Detail == "" {
		apiErr.Detail = http.StatusText(resp.StatusCode)
	}
	return apiErr
}
