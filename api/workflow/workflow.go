package workflow

import "context"

// Mode selects whether a fetch talks to the platform at all.
type Mode int

const (
	// ModeApply performs the request.
	ModeApply Mode = iota
	// ModeCheck reports what would happen without touching the network.
	ModeCheck
)

// Result is the success variant of a fetch. Failures are returned as *errs.FetchError.
type Result struct {
	// Skipped is set when the fetch ran in ModeCheck.
	Skipped    bool
	StatusCode int
	// Body is the decoded JSON payload. Numbers are kept as json.Number.
	Body any
}

type WorkflowClient interface {
	FetchJobVariables(ctx context.Context, mode Mode, req FetchRequest) (*Result, error)
}
