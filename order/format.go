package order

import (
	"strconv"
	"strings"
)

// UnsetMarker is how FormatInteger renders the integer sentinel.
const UnsetMarker = "UNSET"

// FormatDouble renders v for humans. The sentinel comes out in scientific
// form, everything else in shortest decimal form with at least one
// fractional digit, so an unset field never reads like 0.0.
func FormatDouble(v float64) string {
	if v == UnsetDouble {
		return strconv.FormatFloat(v, 'E', -1, 64)
	}
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if strings.ContainsAny(s, ".nN") {
		return s
	}
	return s + ".0"
}

// FormatInteger renders v, substituting UnsetMarker for the sentinel.
func FormatInteger(v int32) string {
	if v == UnsetInteger {
		return UnsetMarker
	}
	return strconv.FormatInt(int64(v), 10)
}

// wireDouble is the field-list form of a double: shortest round-trip text.
func wireDouble(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func wireBool(v bool) string {
	if v {
		return "1"
	}
	return "0"
}

func joinStrings[T interface{ String() string }](items []T, sep string) string {
	parts := make([]string, 0, len(items))
	for _, it := range items {
		parts = append(parts, it.String())
	}
	return strings.Join(parts, sep)
}
