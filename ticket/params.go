package ticket

import (
	"fmt"
	"math"
	"strconv"

	"github.com/shopspring/decimal"
)

// args reads preset arguments from a ticket and remembers the first
// failure, so builders can read everything and check once.
type args struct {
	t   Ticket
	err error
}

func (a *args) fail(err error) {
	if a.err == nil {
		a.err = err
	}
}

func (a *args) float(key string) float64 {
	v, ok := a.t.Params[key]
	if !ok {
		a.fail(fmt.Errorf("%w: %s needs %q", ErrMissingParam, a.t.Preset, key))
		return 0
	}
	return v.InexactFloat64()
}

func (a *args) int32(key string) int32 {
	v, ok := a.t.Params[key]
	if !ok {
		a.fail(fmt.Errorf("%w: %s needs %q", ErrMissingParam, a.t.Preset, key))
		return 0
	}
	if !v.IsInteger() {
		a.fail(fmt.Errorf("%w: %s param %q must be an integer, got %s", ErrInvalidTicket, a.t.Preset, key, v))
		return 0
	}
	if v.LessThan(minInt32) || v.GreaterThan(maxInt32) {
		a.fail(fmt.Errorf("%w: %s param %q out of int32 range, got %s", ErrInvalidTicket, a.t.Preset, key, v))
		return 0
	}
	return int32(v.IntPart())
}

var (
	minInt32 = decimal.NewFromInt(math.MinInt32)
	maxInt32 = decimal.NewFromInt(math.MaxInt32)
)

func (a *args) text(key string) string {
	v, ok := a.t.Options[key]
	if !ok {
		a.fail(fmt.Errorf("%w: %s needs option %q", ErrMissingParam, a.t.Preset, key))
	}
	return v
}

// flag 读取布尔选项，缺省为 false。
func (a *args) flag(key string) bool {
	v, ok := a.t.Options[key]
	if !ok {
		return false
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		a.fail(fmt.Errorf("%w: option %q: %v", ErrInvalidTicket, key, err))
	}
	return b
}

func (a *args) quantity() float64 {
	return a.t.Quantity.InexactFloat64()
}

func (a *args) legs() []float64 {
	if len(a.t.Legs) == 0 {
		a.fail(fmt.Errorf("%w: %s needs legs", ErrMissingParam, a.t.Preset))
		return nil
	}
	out := make([]float64, 0, len(a.t.Legs))
	for _, l := range a.t.Legs {
		out = append(out, l.InexactFloat64())
	}
	return out
}
