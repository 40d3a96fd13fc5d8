package idanalyzer

import (
	"errors"
	"fmt"
)

var (
	ErrAPIKeyRequired = errors.New("API key is required")
	ErrRegionRequired = errors.New("API region is required")

	// ErrPrimaryDocumentRequired is returned by CoreClient.Scan when no
	// primary document image was supplied.
	ErrPrimaryDocumentRequired = errors.New("primary document image is required")
)

// InvalidArgumentError is returned when a locally validated argument is
// malformed or out of range: an out-of-bounds threshold, a bad date format,
// an unknown module name. It is always returned at the call that received
// the argument, never deferred to submission time.
//
// Check for it with errors.As:
//
//	var argErr *idanalyzer.InvalidArgumentError
//	if errors.As(err, &argErr) {
//		log.Printf("bad value for %s: %v", argErr.Field, argErr.Err)
//	}
type InvalidArgumentError struct {
	// Field is the API parameter the argument maps to.
	Field string
	// Err describes why the value was rejected.
	Err error
}

// Error returns a string representation of the error.
func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("invalid argument for %q: %v", e.Field, e.Err)
}

// Unwrap returns the underlying error.
func (e *InvalidArgumentError) Unwrap() error {
	return e.Err
}

func invalidArg(field, reason string) *InvalidArgumentError {
	return &InvalidArgumentError{Field: field, Err: errors.New(reason)}
}

// FileReadError is returned when a file-backed document input cannot be read
// from the local filesystem at submission time.
type FileReadError struct {
	// Path is the file that could not be read.
	Path string
	// Err is the underlying filesystem error.
	Err error
}

// Error returns a string representation of the error.
func (e *FileReadError) Error() string {
	return fmt.Sprintf("unable to read %q: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *FileReadError) Unwrap() error {
	return e.Err
}

// APIError is the platform's logical rejection of a request: the HTTP
// exchange completed and the response body carried an error object. It is
// only returned as an error when the client has opted in via
// ThrowAPIError(true); otherwise the response body is handed back unchanged
// with the error object still inside it.
type APIError struct {
	// Code is the numeric API error code, e.g. 10 for a disallowed issuing
	// country. Codes are listed in the API reference.
	Code int
	// Message is the human readable message returned by the API.
	Message string
}

// Error returns a string representation of the error.
func (e *APIError) Error() string {
	return fmt.Sprintf("API error %d: %s", e.Code, e.Message)
}

// TransportError covers every failure between the SDK and a decoded API
// response: connection and timeout errors, unreadable or non-JSON bodies,
// and unexpected HTTP statuses without an API error object. Unlike APIError
// it is never suppressed.
type TransportError struct {
	// Op names the stage that failed: "send", "read", "decode" or "status".
	Op string
	// StatusCode is the HTTP status, when a response was received.
	StatusCode int
	// Err is the underlying error, when one exists.
	Err error
}

// Error returns a string representation of the error.
func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("transport failure during %s (status %d): %v", e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("transport failure during %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error.
func (e *TransportError) Unwrap() error {
	return e.Err
}
