package databricks

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"
)

// maxErrorBodySnippet caps how much of a raw response body is echoed in errors.
const maxErrorBodySnippet = 200

// ValidationError reports a missing or invalid parameter. It is always
// returned before any request is sent.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Reason == "" {
		return e.Field + " is required"
	}
	return e.Field + " " + e.Reason
}

func required(field string) error {
	return &ValidationError{Field: field}
}

func invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// RemoteAPIError reports a non-2xx response or a transport failure.
// StatusCode is 0 when no response was received.
type RemoteAPIError struct {
	StatusCode int
	ErrorCode  string
	Message    string
	Err        error
}

func (e *RemoteAPIError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("databricks request failed: %s", e.Message)
	}
	if e.ErrorCode != "" {
		return fmt.Sprintf("databricks API error (status %d, %s): %s", e.StatusCode, e.ErrorCode, e.Message)
	}
	return fmt.Sprintf("databricks API error (status %d): %s", e.StatusCode, e.Message)
}

func (e *RemoteAPIError) Unwrap() error {
	return e.Err
}

// DecodeError reports a success response whose body is not valid JSON.
type DecodeError struct {
	Body string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("invalid JSON in databricks response: %v (body: %q)", e.Err, e.Body)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// parseErrorResponse extracts the Databricks error_code/message pair from an
// error body, falling back to the raw body text.
func parseErrorResponse(statusCode int, body []byte) error {
	var errResp struct {
		ErrorCode string `json:"error_code"`
		Message   string `json:"message"`
		Error     string `json:"error"`
	}
	if json.Unmarshal(body, &errResp) == nil {
		msg := errResp.Message
		if msg == "" {
			msg = errResp.Error
		}
		if msg != "" || errResp.ErrorCode != "" {
			return &RemoteAPIError{StatusCode: statusCode, ErrorCode: errResp.ErrorCode, Message: msg}
		}
	}

	msg := snippet(body)
	if msg == "" {
		msg = "empty response body"
	}
	return &RemoteAPIError{StatusCode: statusCode, Message: msg}
}

func snippet(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) <= maxErrorBodySnippet {
		return s
	}
	cut := maxErrorBodySnippet
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
