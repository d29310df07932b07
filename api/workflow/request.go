package workflow

import (
	"errors"
	"net"
	"net/url"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/itential/iapctl/errs"
	"github.com/itential/iapctl/settings"
)

const variablesPath = "/workflow_engine/workflows/variables/"

// FetchRequest identifies the workflow whose job variables are requested
// and the platform to ask.
type FetchRequest struct {
	Host         string `json:"iap_fqdn" validate:"required,hostname_rfc1123|ip"`
	Port         int    `json:"iap_port" validate:"required,min=1,max=65535"`
	WorkflowName string `json:"workflow_name" validate:"required"`
	Token        string `json:"token_key" validate:"required"`
	UseTLS       bool   `json:"https"`
}

// RequestFromConfig builds a FetchRequest for workflowName from the CLI settings.
func RequestFromConfig(cfg settings.Config, workflowName string) FetchRequest {
	return FetchRequest{
		Host:         cfg.Host,
		Port:         cfg.Port,
		WorkflowName: workflowName,
		Token:        cfg.Token,
		UseTLS:       cfg.HTTPS,
	}
}

// URL returns {scheme}://{host}:{port}/workflow_engine/workflows/variables/{workflowName}?token={token}.
// The workflow name and token are percent-encoded.
func (r FetchRequest) URL() *url.URL {
	scheme := "http"
	if r.UseTLS {
		scheme = "https"
	}

	return &url.URL{
		Scheme:   scheme,
		Host:     net.JoinHostPort(r.Host, strconv.Itoa(r.Port)),
		Path:     variablesPath + r.WorkflowName,
		RawPath:  variablesPath + url.PathEscape(r.WorkflowName),
		RawQuery: url.Values{"token": {r.Token}}.Encode(),
	}
}

// Validate reports every invalid field at once as an InvalidRequest error.
func (r FetchRequest) Validate() error {
	err := validate.Struct(r)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return errs.New(errs.KindInvalidRequest, err)
	}

	problems := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		problems = append(problems, describe(fe))
	}
	return errs.Newf(errs.KindInvalidRequest, "%s", strings.Join(problems, "; "))
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by the names callers pass them in.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "min", "max":
		return fe.Field() + " must be between 1 and 65535"
	case "hostname_rfc1123|ip":
		return fe.Field() + " must be a hostname or IP address"
	default:
		return fe.Field() + " is invalid"
	}
}
