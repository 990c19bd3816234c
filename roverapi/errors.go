package roverapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// TransportError is returned when a request to the rover service fails or is answered with
// an unexpected status code.
type TransportError struct {
	// Op describes what was being done, e.g. "fetching rover config".
	Op  string
	URL string
	// StatusCode and Status are zero when no response was received.
	StatusCode int
	Status     string
	Body       string
	Err        error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("error %s from %s: %v", e.Op, e.URL, e.Err)
	}
	msg := fmt.Sprintf("error %s: %d %s", e.Op, e.StatusCode, e.Status)
	if e.Body != "" {
		msg += ": " + e.Body
	}
	return msg
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsTransportError reports whether err is, or wraps, a *TransportError.
func IsTransportError(err error) bool {
	var terr *TransportError
	return errors.As(err, &terr)
}

// ErrUnhealthy is wrapped by the error returned from Health when the service does not answer
// with HealthyStatusCode.
var ErrUnhealthy = errors.New("rover api is unhealthy")

// NewUnexpectedStatusError returns an error for a health check answered with the wrong status.
func NewUnexpectedStatusError(statusCode int, status string) error {
	return errors.Wrapf(ErrUnhealthy, "expected status %d but got %d %s", HealthyStatusCode, statusCode, status)
}

// statusText returns the reason phrase of a response, e.g. "I'm a teapot".
func statusText(resp *http.Response) string {
	text := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if text == "" {
		return http.StatusText(resp.StatusCode)
	}
	return text
}
