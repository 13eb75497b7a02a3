package api

import "fmt"

// APIError is the single failure type surfaced by Client. Transport failures,
// decode failures and backend-reported errors all arrive as *APIError.
type APIError struct {
	Endpoint string // e.g. "POST /early-start/signup"
	Status   int    // zero when no response was received
	Message  string // short, user-presentable text
	Err      error  // underlying cause, if any
}

func (e *APIError) Error() string {
	if e == nil {
		return ""
	}
	return e.Message
}

// Unwrap exposes the underlying cause.
func (e *APIError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Detail returns a log-friendly description including endpoint and status.
func (e *APIError) Detail() string {
	if e == nil {
		return ""
	}
	detail := fmt.Sprintf("%s: %s", e.Endpoint, e.Message)
	if e.Status != 0 {
		detail = fmt.Sprintf("%s (status %d)", detail, e.Status)
	}
	if e.Err != nil {
		detail = fmt.Sprintf("%s: %v", detail, e.Err)
	}
	return detail
}
