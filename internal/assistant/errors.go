package assistant

import "fmt"

// OrchestrationError is the single error type callers of the service
// see. Upstream and composition failures are wrapped into it at the
// service boundary; the original cause stays reachable via Unwrap.
type OrchestrationError struct {
	Op      string
	Message string
	Err     error
}

func (e *OrchestrationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *OrchestrationError) Unwrap() error { return e.Err }

func orchestrationErr(op, message string, err error) *OrchestrationError {
	return &OrchestrationError{Op: op, Message: message, Err: err}
}

// ValidationError reports missing or unusable caller input. It is
// raised before any upstream call is attempted.
type ValidationError string

func (e ValidationError) Error() string { return string(e) }
