// Package roverapi is a client for the rover service's HTTP API.
package roverapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	"github.com/viamrobotics/rovercli/drive"
	"github.com/viamrobotics/rovercli/exercise"
	"github.com/viamrobotics/rovercli/logging"
	"github.com/viamrobotics/rovercli/rover"
)

const (
	healthPath              = "/health"
	roverConfigPath         = "/rover/config"
	exercisesPath           = "/exercises"
	verifyFixedDistancePath = "/verify/fixed_distance"

	// HealthyStatusCode is the status a healthy rover service answers /health with.
	HealthyStatusCode = http.StatusTeapot

	// DefaultBaseURL is where the rover service listens when run locally.
	DefaultBaseURL = "http://localhost:8080"
	// DefaultTimeout bounds every request made by a Client.
	DefaultTimeout = 10 * time.Second

	// longest error body kept on a TransportError
	maxErrorBodyLen = 512
)

// Client talks to a single rover service.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	timeout    *time.Duration
	logger     logging.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient makes the Client send its requests with httpClient. A nil
// httpClient keeps the default.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithTimeout bounds each request to timeout. Zero means no timeout. It applies
// to a copy of the http.Client, whatever the option order.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = &timeout
	}
}

// NewClient returns a Client for the rover service at baseURL.
func NewClient(baseURL string, logger logging.Logger, opts ...Option) (*Client, error) {
	parsed, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logging.NewBlankLogger("roverapi")
	}
	c := &Client{
		baseURL: parsed,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: DefaultTimeout}
	}
	if c.timeout != nil {
		withTimeout := *c.httpClient
		withTimeout.Timeout = *c.timeout
		c.httpClient = &withTimeout
	}
	return c, nil
}

// BaseURL returns the root URL every request path is resolved against.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

func parseBaseURL(baseURL string) (*url.URL, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, errors.New("base URL is empty")
	}
	// assume "http" if no scheme is provided
	if !strings.Contains(baseURL, "://") {
		baseURL = "http://" + baseURL
	}
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid base URL %q", baseURL)
	}
	switch parsed.Scheme {
	case "http", "https":
	default:
		return nil, errors.Errorf("base URL %q must use http or https, not %q", baseURL, parsed.Scheme)
	}
	if parsed.Host == "" {
		return nil, errors.Errorf("base URL %q has no host", baseURL)
	}
	parsed.Path = strings.TrimSuffix(parsed.Path, "/")
	parsed.RawQuery = ""
	parsed.Fragment = ""
	return parsed, nil
}

func (c *Client) endpoint(path string) string {
	return c.baseURL.String() + path
}

// request sends method to path with payload, if any, encoded as JSON.
func (c *Client) request(ctx context.Context, op, method, path string, payload interface{}) (*http.Response, error) {
	fullPath := c.endpoint(path)

	var reqReader io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, errors.Wrapf(err, "error encoding request for %s", op)
		}
		reqReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullPath, reqReader)
	if err != nil {
		return nil, &TransportError{Op: op, URL: fullPath, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.logger.Debugw("sending request", "method", method, "url", fullPath)
	start := time.Now()
	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Op: op, URL: fullPath, Err: err}
	}
	c.logger.Debugw("received response", "url", fullPath, "status", res.StatusCode, "elapsed", time.Since(start))
	return res, nil
}

// getJSON decodes the JSON body of a successful GET of path into out.
func (c *Client) getJSON(ctx context.Context, op, path string, out interface{}) (err error) {
	res, err := c.request(ctx, op, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Combine(err, res.Body.Close())
	}()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		more := ""
		if body, readErr := io.ReadAll(io.LimitReader(res.Body, maxErrorBodyLen)); readErr == nil {
			more = strings.TrimSpace(string(body))
		}
		return &TransportError{
			Op:         op,
			URL:        c.endpoint(path),
			StatusCode: res.StatusCode,
			Status:     statusText(res),
			Body:       more,
		}
	}

	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return errors.Wrapf(err, "error decoding response while %s", op)
	}
	return nil
}

// HealthStatus is the outcome of a health check.
type HealthStatus struct {
	StatusCode int
	// Status is the reason phrase, e.g. "I'm a teapot".
	Status  string
	Healthy bool
}

// Health checks the rover service. The service reports itself healthy by answering
// HealthyStatusCode; anything else, 200 included, is unhealthy and also returns an error
// wrapping ErrUnhealthy.
func (c *Client) Health(ctx context.Context) (_ *HealthStatus, err error) {
	res, err := c.request(ctx, "checking rover api health", http.MethodGet, healthPath, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		err = multierr.Combine(err, res.Body.Close())
	}()

	status := &HealthStatus{
		StatusCode: res.StatusCode,
		Status:     statusText(res),
		Healthy:    res.StatusCode == HealthyStatusCode,
	}
	if !status.Healthy {
		return status, NewUnexpectedStatusError(status.StatusCode, status.Status)
	}
	return status, nil
}

// RoverConfig fetches the rover's hardware configuration. The result is not validated.
func (c *Client) RoverConfig(ctx context.Context) (*rover.Config, error) {
	var cfg rover.Config
	if err := c.getJSON(ctx, "fetching rover config", roverConfigPath, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Exercise fetches the current exercise. The result is not validated.
func (c *Client) Exercise(ctx context.Context) (*exercise.Spec, error) {
	var spec exercise.Spec
	if err := c.getJSON(ctx, "fetching exercise data", exercisesPath, &spec); err != nil {
		return nil, err
	}
	return &spec, nil
}

// FetchInputs fetches the rover config and the exercise concurrently. If either fails the
// other is canceled and the first error is returned.
func (c *Client) FetchInputs(ctx context.Context) (*rover.Config, *exercise.Spec, error) {
	var (
		cfg  *rover.Config
		spec *exercise.Spec
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		spec, err = c.Exercise(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		cfg, err = c.RoverConfig(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return cfg, spec, nil
}

// VerifyResponse is the service's answer to a submitted command, uninterpreted.
type VerifyResponse struct {
	StatusCode int
	Status     string
	Body       string
}

// VerifyFixedDistance submits cmd to the rover service and returns its response verbatim.
// Any status code is returned as-is; only failing to send or read is an error.
func (c *Client) VerifyFixedDistance(ctx context.Context, cmd drive.MotionCommand) (_ *VerifyResponse, err error) {
	const op = "verifying fixed distance"
	res, err := c.request(ctx, op, http.MethodPost, verifyFixedDistancePath, cmd)
	if err != nil {
		return nil, err
	}
	defer func() {
		err = multierr.Combine(err, res.Body.Close())
	}()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, &TransportError{Op: op, URL: c.endpoint(verifyFixedDistancePath), StatusCode: res.StatusCode, Err: err}
	}
	return &VerifyResponse{
		StatusCode: res.StatusCode,
		Status:     statusText(res),
		Body:       string(body),
	}, nil
}
