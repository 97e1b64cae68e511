package service

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"
)

// dateLayouts lists the accepted wire formats, most specific first.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

var errBadDate = errors.New("unrecognised date")

// ParseDate reads an ISO-8601 timestamp or calendar date. Values without a zone are UTC.
func ParseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed.UTC(), nil
		}
	}
	return time.Time{}, errBadDate
}

func parseDateField(field, raw string) (time.Time, error) {
	parsed, err := ParseDate(raw)
	if err != nil {
		return time.Time{}, invalidField(field, "must be an ISO-8601 date")
	}
	return parsed, nil
}

// LooseInt accepts a JSON number or a numeric string. Anything else decodes as not Valid.
type LooseInt struct {
	Value int
	Valid bool
}

// UnmarshalJSON never fails so a bad number falls back to the field default.
func (n *LooseInt) UnmarshalJSON(data []byte) error {
	*n = LooseInt{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	raw := string(data)
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil
		}
		raw = s
	}
	if value, ok := leadingInt(raw); ok {
		n.Value, n.Valid = value, true
	}
	return nil
}

// MarshalJSON writes the number or null.
func (n LooseInt) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return []byte(strconv.Itoa(n.Value)), nil
}

// Ptr returns nil when the value is not Valid.
func (n LooseInt) Ptr() *int {
	if !n.Valid {
		return nil
	}
	v := n.Value
	return &v
}

// leadingInt parses an optional sign and the digits that follow it, ignoring any trailing text.
func leadingInt(raw string) (int, bool) {
	raw = strings.TrimSpace(raw)
	end := 0
	if end < len(raw) && (raw[end] == '-' || raw[end] == '+') {
		end++
	}
	digits := end
	for end < len(raw) && raw[end] >= '0' && raw[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}
	value, err := strconv.Atoi(raw[:end])
	if err != nil {
		return 0, false
	}
	return value, true
}

func optionalString(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
