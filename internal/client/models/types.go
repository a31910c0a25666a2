// Package models defines the canonical client-side shapes of the backend's
// resources. Payloads are normalized to snake_case keys before they are
// decoded into these types, so each field has exactly one JSON name.
package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var null = []byte("null")

// ID is a resource identifier. The backend sends integer primary keys for
// some resources and UUID strings for others; both decode into ID.
type ID string

func (id *ID) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, null) {
		*id = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("id: %w", err)
	}
	*id = ID(n.String())
	return nil
}

func (id ID) String() string { return string(id) }

// Amount is a monetary value. Decimal fields arrive as strings ("1160.00")
// or plain numbers.
type Amount float64

func (a *Amount) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, null) {
		*a = 0
		return nil
	}
	s := strings.Trim(string(b), `"`)
	if s == "" {
		*a = 0
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("amount %q: %w", s, err)
	}
	*a = Amount(f)
	return nil
}

func (a Amount) String() string {
	return strconv.FormatFloat(float64(a), 'f', 2, 64)
}

// Time accepts RFC 3339 timestamps with or without a zone offset and plain
// dates. The zero Time means the field was absent or null.
type Time struct {
	time.Time
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
	time.DateOnly,
}

func (t *Time) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, null) {
		t.Time = time.Time{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("time: %w", err)
	}
	if s == "" {
		t.Time = time.Time{}
		return nil
	}
	for _, layout := range timeLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("time: unsupported format %q", s)
}

func (t Time) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return null, nil
	}
	return json.Marshal(t.Time.Format(time.RFC3339))
}

// Page is the paginated list envelope used by list endpoints.
type Page[T any] struct {
	Count    int     `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}

// HasNext reports whether another page is available.
func (p Page[T]) HasNext() bool {
	return p.Next != nil && *p.Next != ""
}
