package rest

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"syscall"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/itential/iapctl/api/header"
	"github.com/itential/iapctl/errs"
	"github.com/itential/iapctl/version"
)

// Client issues single-attempt JSON requests to the platform.
type Client struct {
	client     *resty.Client
	httpClient *http.Client
	log        resty.Logger
}

type Option func(*Client)

// WithLogger routes the client's diagnostics through l.
func WithLogger(l resty.Logger) Option {
	return func(c *Client) { c.log = l }
}

// WithHTTPClient sends requests through a copy of hc instead of a fresh client.
// hc itself is left untouched.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		copied := *hc
		c.httpClient = &copied
	}
}

// New returns a Client. A zero timeout means requests never time out on their own;
// the context passed to NewRequest can still cancel them.
func New(timeout time.Duration, opts ...Option) *Client {
	c := &Client{}
	for _, opt := range opts {
		opt(c)
	}

	c.client = resty.New()
	if c.httpClient != nil {
		c.client = resty.NewWithClient(c.httpClient)
	}
	c.client.
		SetTimeout(timeout).
		SetRetryCount(0).
		SetHeader("User-Agent", version.UserAgent())

	if c.log != nil {
		c.client.SetLogger(c.log)
		c.client.OnAfterResponse(func(_ *resty.Client, resp *resty.Response) error {
			c.log.Debugf("%s %s -> %d in %s", resp.Request.Method, Redact(resp.Request.URL), resp.StatusCode(), resp.Time())
			return nil
		})
	}

	return c
}

// Request is a prepared, not yet sent, request.
type Request struct {
	method string
	url    *url.URL
	r      *resty.Request
}

func (c *Client) NewRequest(ctx context.Context, method string, u *url.URL) *Request {
	r := c.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json")

	if commandStr := header.GetCommandStr(); commandStr != "" {
		r.SetHeader(header.CommandHeader, commandStr)
	}

	return &Request{method: method, url: u, r: r}
}

// DoRequest sends req once. Failures come back as *errs.FetchError carrying
// the classified kind; the body is returned only for success statuses.
func (c *Client) DoRequest(req *Request) (statusCode int, body []byte, err error) {
	if c.log != nil {
		c.log.Debugf("%s %s", req.method, Redact(req.url.String()))
	}

	resp, err := req.r.Execute(req.method, req.url.String())
	if err != nil {
		return 0, nil, errs.New(Classify(err), redactError(err))
	}

	if resp.StatusCode() >= 300 {
		httpErr := &HTTPError{
			Code: resp.StatusCode(),
			URL:  Redact(req.url.String()),
		}
		msg := struct {
			Message string `json:"message"`
		}{}
		if json.Unmarshal(resp.Body(), &msg) == nil {
			httpErr.Message = msg.Message
		}
		return resp.StatusCode(), nil, errs.New(errs.KindHTTP, httpErr)
	}

	return resp.StatusCode(), resp.Body(), nil
}

// Classify maps a transport error to its kind.
// Any failure while dialing, a dial timeout included, is a connection error.
func Classify(err error) errs.Kind {
	if err == nil {
		return errs.KindOther
	}

	var dialErr *net.OpError
	if errors.As(err, &dialErr) && dialErr.Op == "dial" {
		return errs.KindConnection
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return errs.KindTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return errs.KindTimeout
	}

	if errors.Is(err, context.Canceled) {
		return errs.KindOther
	}

	var (
		dnsErr      *net.DNSError
		opErr       *net.OpError
		certErr     *tls.CertificateVerificationError
		authorityEr x509.UnknownAuthorityError
		hostnameErr x509.HostnameError
		recordErr   tls.RecordHeaderError
	)
	switch {
	case errors.As(err, &dnsErr),
		errors.As(err, &opErr),
		errors.As(err, &certErr),
		errors.As(err, &authorityEr),
		errors.As(err, &hostnameErr),
		errors.As(err, &recordErr),
		errors.Is(err, syscall.ECONNREFUSED),
		errors.Is(err, syscall.ECONNRESET),
		errors.Is(err, io.EOF),
		errors.Is(err, io.ErrUnexpectedEOF):
		return errs.KindConnection
	}

	return errs.KindOther
}

// HTTPError is a response whose status is outside the success range.
type HTTPError struct {
	Code    int
	Message string
	URL     string
}

func (e *HTTPError) Error() string {
	class := "Unexpected Status"
	switch {
	case e.Code >= 500:
		class = "Server Error"
	case e.Code >= 400:
		class = "Client Error"
	}
	msg := fmt.Sprintf("%d %s: %s for url: %s", e.Code, class, http.StatusText(e.Code), e.URL)
	if e.Message != "" {
		msg += " (" + e.Message + ")"
	}
	return msg
}

// Redact drops the query string, which carries the token, from a URL.
func Redact(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return "<redacted>"
	}
	u.RawQuery = ""
	u.Fragment = ""
	return u.String()
}

func redactError(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return &url.Error{Op: urlErr.Op, URL: Redact(urlErr.URL), Err: urlErr.Err}
	}
	return err
}
