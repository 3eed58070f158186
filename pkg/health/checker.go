package health

import "context"

// Status of a single dependency.
type Status string

const (
	StatusUp   Status = "up"
	StatusDown Status = "down"
)

// Result is the outcome of one dependency check.
type Result struct {
	Status  Status `json:"status"`
	Message string `json:"message,omitempty"`
}

// Checker probes one dependency the service cannot run without.
type Checker interface {
	// Name identifies the dependency in the readiness response.
	Name() string
	Check(ctx context.Context) Result
}
