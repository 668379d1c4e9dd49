package schema

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Canonical textual encodings for date and time-of-day columns.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// CoerceValue converts a decoded JSON value into the typed value stored for
// the column. Dates and times are validated against their canonical layout
// and stored in that textual form; numbers are normalized to int64/float64.
func CoerceValue(col Column, v any) (any, error) {
	if v == nil {
		return nil, nil
	}

	switch col.Type {
	case TypeInteger:
		switch n := v.(type) {
		case int:
			return int64(n), nil
		case int64:
			return n, nil
		case float64:
			if n != math.Trunc(n) {
				return nil, fmt.Errorf("column %s: %v is not an integer", col.Name, n)
			}
			return int64(n), nil
		case string:
			i, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64)
			if err != nil {
				return nil, fmt.Errorf("column %s: %q is not an integer", col.Name, n)
			}
			return i, nil
		}
	case TypeDecimal:
		switch n := v.(type) {
		case int:
			return float64(n), nil
		case int64:
			return float64(n), nil
		case float64:
			return n, nil
		case string:
			f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
			if err != nil {
				return nil, fmt.Errorf("column %s: %q is not a number", col.Name, n)
			}
			return f, nil
		}
	case TypeDate:
		if s, ok := v.(string); ok {
			if _, err := time.Parse(DateLayout, s); err != nil {
				return nil, fmt.Errorf("column %s: %q is not a %s date", col.Name, s, DateLayout)
			}
			return s, nil
		}
	case TypeTime:
		if s, ok := v.(string); ok {
			if _, err := time.Parse(TimeLayout, s); err != nil {
				return nil, fmt.Errorf("column %s: %q is not a %s time", col.Name, s, TimeLayout)
			}
			return s, nil
		}
	case TypeText:
		if s, ok := v.(string); ok {
			return s, nil
		}
	}
	return nil, fmt.Errorf("column %s: cannot use %T value as %s", col.Name, v, col.Type)
}

// CoerceID converts a path-supplied identifier into the column's type.
// Text keys pass through unchanged.
func CoerceID(col Column, raw string) (any, error) {
	switch col.Type {
	case TypeInteger:
		i, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid %s value", col.Name)
		}
		return i, nil
	case TypeDecimal:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid %s value", col.Name)
		}
		return f, nil
	default:
		return raw, nil
	}
}
