package across

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/tidwall/gjson"
)

// Classification sentinels for errors.Is.
var (
	ErrNotFound    = errors.New("not found")
	ErrUnavailable = errors.New("service unavailable")
	ErrNotCreated  = errors.New("not created")
	ErrUnsupported = errors.New("unsupported")
)

// APIError is a response with an unexpected status code. Soft errors are
// statuses the API uses for expected conditions (no data, service busy, not
// created); they are logged as warnings as well as returned.
type APIError struct {
	Method string
	URL    string
	Status int
	Detail string
	Soft   bool
}

func (e *APIError) Error() string {
	msg := fmt.Sprintf("%s %s: %d %s", e.Method, e.URL, e.Status, http.StatusText(e.Status))
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

// Is matches ErrNotFound for 404, ErrUnavailable for 503 and ErrNotCreated
// for a POST answered with 200.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.Status == http.StatusNotFound
	case ErrUnavailable:
		return e.Status == http.StatusServiceUnavailable
	case ErrNotCreated:
		return e.Method == http.MethodPost && e.Status == http.StatusOK
	}
	return false
}

// TransportError wraps a failure to get any response at all.
type TransportError struct {
	Method string
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// UnsupportedError reports a mission asked for an API it does not offer.
type UnsupportedError struct {
	Mission Mission
	API     API
	Method  string
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("%s not allowed for %s %s", e.Method, e.Mission, e.API)
}

func (e *UnsupportedError) Is(target error) bool {
	return target == ErrUnsupported
}

// errorDetail extracts the FastAPI "detail" field. Validation failures carry
// a list of objects, whose messages are joined.
func errorDetail(body []byte) string {
	detail := gjson.GetBytes(body, "detail")
	if !detail.Exists() {
		return strings.TrimSpace(string(body))
	}
	if detail.IsArray() {
		var msgs []string
		for _, m := range detail.Get("#.msg").Array() {
			msgs = append(msgs, m.String())
		}
		if len(msgs) > 0 {
			return strings.Join(msgs, "; ")
		}
	}
	return detail.String()
}
