package upstream

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/stephanygrace/customer-portal/internal/models"
)

// ErrTooManyPages is returned when a pagination walk exceeds Client.MaxPages.
var ErrTooManyPages = errors.New("pagination exceeded page limit")

// FetchError describes a failed pagination walk. It carries enough state for a
// caller-side retry policy: how many pages were requested, the cursor that
// was being fetched and the records gathered before the failure.
type FetchError struct {
	Endpoint   string
	Method     string
	Pages      int    // pages requested, including the failed one
	Cursor     string // cursor sent with the failed request, empty for the first page
	StatusCode int    // 0 when no response was received
	Partial    []models.RawRecord
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("upstream %s %s failed on page %d: status %d", e.Method, e.Endpoint, e.Pages, e.StatusCode)
	}
	return fmt.Sprintf("upstream %s %s failed on page %d: %v", e.Method, e.Endpoint, e.Pages, e.Err)
}

// Unwrap exposes both the pipeline error kind and the underlying cause, so
// errors.Is works for models.ErrUpstreamUnreachable and context.Canceled alike.
func (e *FetchError) Unwrap() []error {
	return []error{models.ErrUpstreamUnreachable, e.Err}
}

// HasPartial reports whether any records were accumulated before the failure.
func (e *FetchError) HasPartial() bool {
	return len(e.Partial) > 0
}

// Cancelled reports whether the walk stopped because the caller's context ended.
func (e *FetchError) Cancelled() bool {
	return errors.Is(e.Err, context.Canceled) || errors.Is(e.Err, context.DeadlineExceeded)
}

// IsRetryable reports whether err is a FetchError worth repeating: transport
// failures, throttling and server errors. Cancellation is never retryable.
func IsRetryable(err error) bool {
	var fe *FetchError
	if !errors.As(err, &fe) {
		return false
	}
	if fe.Cancelled() || errors.Is(fe.Err, ErrTooManyPages) {
		return false
	}
	switch {
	case fe.StatusCode == 0:
		return true
	case fe.StatusCode == http.StatusTooManyRequests:
		return true
	case fe.StatusCode >= 500:
		return true
	}
	return false
}

// ResolveError is returned by ContactResolver. Err is either a *FetchError
// (upstream unreachable) or models.ErrUpstreamEmpty.
type ResolveError struct {
	Identifier string
	Err        error
}

func (e *ResolveError) Error() string {
	return fmt.Sprintf("resolve jobs for %q: %v", e.Identifier, e.Err)
}

func (e *ResolveError) Unwrap() error {
	return e.Err
}
