package utils

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrNotInteger is returned when a value does not hold a whole number.
var ErrNotInteger = errors.New("not an integer")

// ParseInt converts a decoded JSON value to int. Numbers and numeric strings
// are accepted; nil, empty strings, fractions and anything else fail.
func ParseInt(val any) (int, error) {
	switch v := val.(type) {
	case nil:
		return 0, fmt.Errorf("missing value: %w", ErrNotInteger)
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		if v != math.Trunc(v) || math.IsInf(v, 0) {
			return 0, fmt.Errorf("%v: %w", v, ErrNotInteger)
		}
		return int(v), nil
	}

	s := strings.TrimSpace(ToString(val))
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%q: %w", s, ErrNotInteger)
	}
	return i, nil
}

// ToString converts various types to string.
func ToString(val any) string {
	switch v := val.(type) {
	case string:
		return v
	case []byte:
		return string(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}
