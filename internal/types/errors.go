package types

import (
	"errors"
	"fmt"
)

// Sentinel errors for common failure modes.
var (
	ErrInvalidURL    = errors.New("invalid URL")
	ErrEmptyResponse = errors.New("empty response body")
	ErrNoBrowser     = errors.New("browser automation not available")
)

// FetchError wraps errors that occur while loading a page.
type FetchError struct {
	URL       string
	Err       error
	Retryable bool
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch error for %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

func (e *FetchError) IsRetryable() bool { return e.Retryable }

// EnrichError wraps failures of the enrichment pass. A parse failure on the
// model response terminates the request for that URL; it is never silently
// defaulted.
type EnrichError struct {
	URL   string
	Stage string // "generate" or "parse"
	Err   error
}

func (e *EnrichError) Error() string {
	return fmt.Sprintf("enrich error for %s (stage=%s): %v", e.URL, e.Stage, e.Err)
}

func (e *EnrichError) Unwrap() error { return e.Err }
