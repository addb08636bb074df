package billing

import "fmt"

// IncompatibleRequestError reports an option combination the engine refuses
// to resolve ambiguously. It is raised synchronously, before any row
// processing begins; nothing is partially computed.
type IncompatibleRequestError struct {
	Reason string
}

func (e *IncompatibleRequestError) Error() string {
	return fmt.Sprintf("incompatible request: %s", e.Reason)
}

// UnsupportedResolutionError reports an output resolution the aggregator
// does not implement. This is a configuration error, never retried.
type UnsupportedResolutionError struct {
	Resolution Resolution
}

func (e *UnsupportedResolutionError) Error() string {
	return fmt.Sprintf("unsupported output resolution %q", e.Resolution)
}
