package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

var (
	ErrUnauthorized    = errors.New("unauthorized")
	ErrUnavailable     = errors.New("server unavailable")
	ErrNoReachableURL  = errors.New("no reachable server url")
	ErrUnexpectedShape = errors.New("unexpected response shape")
)

// Envelope is the uniform result of every API call.
//
// Success=true carries the decoded response body in Data (nil for an empty
// body). Success=false carries a human-readable Message and, when the server
// reported them, field-level Errors.
type Envelope struct {
	Success bool                `json:"success"`
	Data    json.RawMessage     `json:"data,omitempty"`
	Message string              `json:"message,omitempty"`
	Errors  map[string][]string `json:"errors,omitempty"`

	// Status is the HTTP status code, 0 when no response was received.
	Status int `json:"-"`

	// SessionStarted is set by the authentication calls when the response
	// carried a token pair that was stored.
	SessionStarted bool `json:"-"`
}

// Err converts a failure envelope into an error; nil for success.
func (e Envelope) Err() error {
	if e.Success {
		return nil
	}
	return &EnvelopeError{Status: e.Status, Message: e.Message, Errors: e.Errors}
}

// EnvelopeError is a failure envelope seen as a Go error. It unwraps to
// ErrUnauthorized for 401/403 and to ErrUnavailable when the server could
// not be reached or answered with a gateway error.
type EnvelopeError struct {
	Status  int
	Message string
	Errors  map[string][]string
}

func (e *EnvelopeError) Error() string {
	if len(e.Errors) == 0 {
		return e.Message
	}
	fields := make([]string, 0, len(e.Errors))
	for f := range e.Errors {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	var b strings.Builder
	b.WriteString(e.Message)
	for _, f := range fields {
		fmt.Fprintf(&b, "; %s: %s", f, strings.Join(e.Errors[f], ", "))
	}
	return b.String()
}

func (e *EnvelopeError) Unwrap() error {
	switch e.Status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrUnauthorized
	case 0, http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return ErrUnavailable
	default:
		return nil
	}
}

// Decode normalizes the envelope payload and decodes it into T. A failure
// envelope is returned as its EnvelopeError. A payload wrapped as
// {"success": ..., "data": X} is unwrapped to X first.
func Decode[T any](env Envelope) (T, error) {
	var out T
	if err := env.Err(); err != nil {
		return out, err
	}
	if len(env.Data) == 0 {
		return out, fmt.Errorf("%w: empty payload", ErrUnexpectedShape)
	}

	normalized, err := NormalizeKeys(env.Data)
	if err != nil {
		return out, fmt.Errorf("%w: %v", ErrUnexpectedShape, err)
	}
	if err := json.Unmarshal(unwrapData(normalized), &out); err != nil {
		return out, fmt.Errorf("%w: %v", ErrUnexpectedShape, err)
	}
	return out, nil
}

func unwrapData(raw json.RawMessage) json.RawMessage {
	var wrapper struct {
		Success *bool           `json:"success"`
		Data    json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &wrapper); err != nil {
		return raw
	}
	if wrapper.Success != nil && len(wrapper.Data) > 0 {
		return wrapper.Data
	}
	return raw
}

const genericFailure = "Network error"

func transportFailure(err error) Envelope {
	msg := genericFailure
	if err != nil && err.Error() != "" {
		msg = err.Error()
	}
	return Envelope{Success: false, Message: msg}
}

// fromResponse builds the envelope for a received HTTP response.
func fromResponse(status int, body []byte) Envelope {
	if status >= 200 && status < 300 {
		env := Envelope{Success: true, Status: status}
		if len(strings.TrimSpace(string(body))) > 0 {
			env.Data = json.RawMessage(body)
		}
		return env
	}

	env := Envelope{Success: false, Status: status}
	env.Message, env.Errors = parseServerError(body)
	if env.Message == "" {
		env.Message = http.StatusText(status)
	}
	if env.Message == "" {
		env.Message = genericFailure
	}
	return env
}

// parseServerError extracts the message (message, then detail, then error)
// and the field error map from a JSON error body.
func parseServerError(body []byte) (string, map[string][]string) {
	var payload map[string]json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", nil
	}

	var msg string
	for _, key := range []string{"message", "detail", "error"} {
		var s string
		if raw, ok := payload[key]; ok && json.Unmarshal(raw, &s) == nil && s != "" {
			msg = s
			break
		}
	}

	var fields map[string][]string
	if raw, ok := payload["errors"]; ok {
		fields = parseFieldErrors(raw)
	}
	return msg, fields
}

// parseFieldErrors accepts {"field": ["a", "b"]} as well as {"field": "a"}.
func parseFieldErrors(raw json.RawMessage) map[string][]string {
	var m map[string]json.RawMessage
	if err := json.Unmarshal(raw, &m); err != nil || len(m) == 0 {
		return nil
	}
	out := make(map[string][]string, len(m))
	for field, v := range m {
		var list []string
		if err := json.Unmarshal(v, &list); err == nil {
			out[field] = list
			continue
		}
		var one string
		if err := json.Unmarshal(v, &one); err == nil {
			out[field] = []string{one}
		}
	}
	return out
}
