package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// BackendError is a non-2xx answer. ErrorField and MessageField hold the
// "error" and "message" keys of the body when they are JSON strings.
type BackendError struct {
	StatusCode   int
	ErrorField   string
	MessageField string
	Body         []byte
}

func (e *BackendError) Error() string {
	detail := e.ErrorField
	if detail == "" {
		detail = e.MessageField
	}
	if detail == "" {
		return fmt.Sprintf("backend answered %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("backend answered %d: %s", e.StatusCode, detail)
}

// TransportError is a failure where no answer was received.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	if e.Err == nil {
		return "transport error"
	}
	return e.Err.Error()
}

func (e *TransportError) Unwrap() error { return e.Err }

func newBackendError(status int, body []byte) *BackendError {
	be := &BackendError{StatusCode: status, Body: body}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return be
	}
	be.ErrorField = stringField(fields["error"])
	be.MessageField = stringField(fields["message"])
	return be
}

func stringField(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

// StatusCode extracts the backend status from err, 0 when no answer was received.
func StatusCode(err error) int {
	var be *BackendError
	if errors.As(err, &be) {
		return be.StatusCode
	}
	return 0
}
