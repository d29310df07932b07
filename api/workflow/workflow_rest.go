package workflow

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/itential/iapctl/api/rest"
	"github.com/itential/iapctl/errs"
	"github.com/itential/iapctl/settings"
)

type workflowRestClient struct {
	client  *rest.Client
	timeout time.Duration
}

var _ WorkflowClient = &workflowRestClient{}

func NewWorkflowRestClient(config settings.Config, opts ...rest.Option) *workflowRestClient {
	return &workflowRestClient{
		client:  rest.New(config.Timeout, opts...),
		timeout: config.Timeout,
	}
}

// FetchJobVariables issues a single GET for the workflow's job variables.
// In ModeCheck nothing is validated and nothing is sent.
func (c *workflowRestClient) FetchJobVariables(ctx context.Context, mode Mode, req FetchRequest) (*Result, error) {
	if mode == ModeCheck {
		return &Result{Skipped: true}, nil
	}

	if c.timeout < 0 {
		return nil, errs.Newf(errs.KindInvalidRequest, "timeout must not be negative, got %s", c.timeout)
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	u := req.URL()
	statusCode, body, err := c.client.DoRequest(c.client.NewRequest(ctx, http.MethodGet, u))
	if err != nil {
		return nil, err
	}

	value, err := decodeJSON(body)
	if err != nil {
		return nil, errs.Newf(errs.KindOther, "invalid JSON from %s: %w", rest.Redact(u.String()), err)
	}

	return &Result{StatusCode: statusCode, Body: value}, nil
}

// decodeJSON decodes exactly one JSON value. An empty body decodes to nil.
func decodeJSON(body []byte) (any, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, nil
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var value any
	if err := dec.Decode(&value); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected data after JSON value")
	}
	return value, nil
}
