package order

import "math"

// Sentinels mark optional numeric fields the caller never set. Zero is a
// valid price, quantity and offset, so it cannot play that role.
const (
	UnsetDouble  float64 = math.MaxFloat64
	UnsetInteger int32   = math.MaxInt32
)

// IsUnsetDouble reports whether v is the double sentinel.
func IsUnsetDouble(v float64) bool { return v == UnsetDouble }

// IsUnsetInteger reports whether v is the integer sentinel.
func IsUnsetInteger(v int32) bool { return v == UnsetInteger }
