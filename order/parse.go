package order

import (
	"strconv"
	"strings"
)

// ParseDouble reads a double field. Empty input means "not set" and yields
// UnsetDouble.
func ParseDouble(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return UnsetDouble, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, &ParseError{Input: s, Kind: "double", Err: unwrapNumError(err)}
	}
	return v, nil
}

// ParseInteger reads a 32-bit integer field. Empty input yields UnsetInteger.
func ParseInteger(s string) (int32, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return UnsetInteger, nil
	}
	v, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return 0, &ParseError{Input: s, Kind: "integer", Err: unwrapNumError(err)}
	}
	return int32(v), nil
}

// ParseBool accepts "1"/"0" as written by MakeFields as well as the usual
// strconv spellings.
func ParseBool(s string) (bool, error) {
	s = strings.TrimSpace(s)
	v, err := strconv.ParseBool(s)
	if err != nil {
		return false, &ParseError{Input: s, Kind: "bool", Err: unwrapNumError(err)}
	}
	return v, nil
}

// strconv errors already quote the input; keep only the reason.
func unwrapNumError(err error) error {
	if ne, ok := err.(*strconv.NumError); ok {
		return ne.Err
	}
	return err
}
