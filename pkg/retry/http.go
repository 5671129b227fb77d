package retry

import (
	"errors"
	"fmt"
	"net/http"
)

// StatusError is a non-2xx HTTP response surfaced as an error so the policy
// can classify it.
type StatusError struct {
	StatusCode int
	URL        string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d from %s", e.StatusCode, e.URL)
}

// RetryableHTTP retries transport errors unconditionally and HTTP status
// errors only for 429 and 503. Every other status fails immediately.
func RetryableHTTP(err error) bool {
	var se *StatusError
	if errors.As(err, &se) {
		return se.StatusCode == http.StatusTooManyRequests || se.StatusCode == http.StatusServiceUnavailable
	}
	return true
}
