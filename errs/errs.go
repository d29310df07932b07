package errs

import (
	"errors"
	"fmt"
)

// Kind classifies why a request to the platform did not produce a response body.
type Kind int

const (
	KindOther Kind = iota
	KindConnection
	KindTimeout
	KindHTTP
	KindInvalidRequest
)

func (k Kind) String() string {
	switch k {
	case KindConnection:
		return "ConnectionError"
	case KindTimeout:
		return "TimeoutError"
	case KindHTTP:
		return "HttpError"
	case KindInvalidRequest:
		return "InvalidRequest"
	default:
		return "OtherError"
	}
}

var (
	ErrConnection     = errors.New("connection error")
	ErrTimeout        = errors.New("timeout error")
	ErrHTTP           = errors.New("http error")
	ErrOther          = errors.New("other error")
	ErrInvalidRequest = errors.New("invalid request")
)

func (k Kind) sentinel() error {
	switch k {
	case KindConnection:
		return ErrConnection
	case KindTimeout:
		return ErrTimeout
	case KindHTTP:
		return ErrHTTP
	case KindInvalidRequest:
		return ErrInvalidRequest
	default:
		return ErrOther
	}
}

// FetchError is the failure variant of a fetch. It is terminal: nothing retries it.
type FetchError struct {
	Kind Kind
	Err  error
}

func (e *FetchError) Error() string {
	switch e.Kind {
	case KindConnection:
		return fmt.Sprintf("Failed to connect to Itential Automation Platform : %v", e.Err)
	case KindHTTP:
		return fmt.Sprintf("Http Error: %v", e.Err)
	case KindTimeout:
		return fmt.Sprintf("Timeout Error: %v", e.Err)
	case KindInvalidRequest:
		return fmt.Sprintf("Invalid parameters: %v", e.Err)
	default:
		return fmt.Sprintf("Something happened: %v", e.Err)
	}
}

func (e *FetchError) Unwrap() error { return e.Err }

func (e *FetchError) Is(target error) bool { return target == e.Kind.sentinel() }

func New(kind Kind, err error) error {
	if err == nil {
		return nil
	}
	return &FetchError{Kind: kind, Err: err}
}

func Newf(kind Kind, format string, args ...any) error {
	return &FetchError{Kind: kind, Err: fmt.Errorf(format, args...)}
}

// KindOf reports the kind of the first FetchError in err's chain.
// Errors that never went through classification are KindOther.
func KindOf(err error) Kind {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return KindOther
}
