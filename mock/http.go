package mock

import (
	"io"
	"net/http"
	"strings"
)

type transport struct {
	f func(*http.Request) (*http.Response, error)
}

func (t *transport) RoundTrip(r *http.Request) (*http.Response, error) {
	return t.f(r)
}

// NewHTTPClient returns a client whose every round trip is answered by f.
func NewHTTPClient(f func(*http.Request) (*http.Response, error)) *http.Client {
	return &http.Client{
		Transport: &transport{f: f},
	}
}

// FailingHTTPClient returns a client whose round trips all fail with err.
func FailingHTTPClient(err error) *http.Client {
	return NewHTTPClient(func(*http.Request) (*http.Response, error) {
		return nil, err
	})
}

// NewHTTPResponse builds a JSON response for r.
func NewHTTPResponse(r *http.Request, code int, body string) *http.Response {
	return &http.Response{
		Status:     http.StatusText(code),
		StatusCode: code,
		Header:     http.Header{"Content-Type": {"application/json"}},
		Body:       io.NopCloser(strings.NewReader(body)),
		Request:    r,
	}
}
