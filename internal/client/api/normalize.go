package api

import (
	"bytes"
	"encoding/json"
	"strings"
	"unicode"
)

// NormalizeKeys rewrites every object key of a JSON document to snake_case
// (isStaff -> is_staff, QRCode -> qr_code). When both spellings of a key are
// present the snake_case one is kept. Numbers are preserved verbatim.
func NormalizeKeys(raw json.RawMessage) (json.RawMessage, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return json.Marshal(normalizeValue(v))
}

func normalizeValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			snake := SnakeCase(k)
			if snake != k {
				if _, explicit := t[snake]; explicit {
					continue
				}
			}
			out[snake] = normalizeValue(val)
		}
		return out
	case []any:
		for i := range t {
			t[i] = normalizeValue(t[i])
		}
		return t
	default:
		return v
	}
}

// SnakeCase converts a camelCase or PascalCase identifier to snake_case.
// Runs of capitals are treated as one word: userID -> user_id.
func SnakeCase(s string) string {
	runes := []rune(s)
	var b strings.Builder
	b.Grow(len(s) + 4)

	for i, r := range runes {
		if unicode.IsUpper(r) {
			if i > 0 {
				prev := runes[i-1]
				nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
				if prev != '_' && (unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower)) {
					b.WriteByte('_')
				}
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
