package validate

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Amount reads a money value sent either as a JSON number or as a numeric
// string. A missing, null or empty value reads as zero so that a
// required/gt tag reports it.
func Amount(field string, raw json.RawMessage) (decimal.Decimal, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return decimal.Zero, nil
	}

	s := string(raw)

	if raw[0] == '"' {
		if err := json.Unmarshal(raw, &s); err != nil {
			return decimal.Zero, Errorf(field, "%s must be a number", field)
		}

		s = strings.TrimSpace(s)
		if s == "" {
			return decimal.Zero, nil
		}
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, Errorf(field, "%s must be a number", field)
	}

	return d, nil
}

// Date reads an RFC 3339 timestamp or a plain YYYY-MM-DD day, the latter at
// local midnight. An empty value returns nil.
func Date(field, s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t, nil
	}

	t, err := time.ParseInLocation(time.DateOnly, s, time.Local)
	if err != nil {
		return nil, Errorf(field, "%s must be a date (YYYY-MM-DD)", field)
	}

	return &t, nil
}
