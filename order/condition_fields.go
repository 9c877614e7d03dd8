package order

import (
	"fmt"
	"strconv"
)

const (
	fieldAnd = "a"
	fieldOr  = "o"
)

// MakeFields renders the ordered field list consumed by the transport:
// type code, conjunction, then contract scope, operator and payload as the
// variant has them.
func (c Condition) MakeFields() ([]string, error) {
	if err := c.validate(); err != nil {
		return nil, err
	}
	conj := fieldOr
	if c.IsConjunction {
		conj = fieldAnd
	}
	fields := []string{strconv.FormatInt(int64(c.Type), 10), conj}

	if s, ok := c.contractScope(); ok {
		fields = append(fields, strconv.FormatInt(int64(s.ConID), 10), s.Exchange)
	}
	if op, ok := c.operator(); ok {
		fields = append(fields, wireBool(op.IsMore))
	}

	switch c.Type {
	case ConditionPrice:
		fields = append(fields, wireDouble(c.Price.Price), strconv.FormatInt(int64(c.Price.TriggerMethod), 10))
	case ConditionTime:
		fields = append(fields, c.Time.Time)
	case ConditionMargin:
		fields = append(fields, wireDouble(c.Margin.Percent))
	case ConditionExecution:
		fields = append(fields, c.Execution.Symbol, c.Execution.SecType, c.Execution.Exchange)
	case ConditionPercentChange:
		fields = append(fields, wireDouble(c.PercentChange.ChangePercent))
	case ConditionVolume:
		fields = append(fields, strconv.FormatInt(int64(c.Volume.Volume), 10))
	}
	return fields, nil
}

// field arity per type, including the two leading fields
var conditionArity = map[ConditionType]int{
	ConditionPrice:         7,
	ConditionTime:          4,
	ConditionMargin:        4,
	ConditionExecution:     5,
	ConditionPercentChange: 6,
	ConditionVolume:        6,
}

// ParseConditionFields is the inverse of MakeFields.
func ParseConditionFields(fields []string) (Condition, error) {
	if len(fields) < 2 {
		return Condition{}, &DecodeError{Format: "fields", Err: fmt.Errorf("need at least 2 fields, got %d", len(fields))}
	}
	code, err := ParseInteger(fields[0])
	if err != nil {
		return Condition{}, err
	}
	t, err := ParseConditionType(code)
	if err != nil {
		return Condition{}, err
	}
	if want := conditionArity[t]; len(fields) != want {
		return Condition{}, &DecodeError{Format: "fields", Err: fmt.Errorf("%s condition needs %d fields, got %d", t, want, len(fields))}
	}

	c, _ := NewCondition(t)
	switch fields[1] {
	case fieldAnd:
		c.IsConjunction = true
	case fieldOr:
		c.IsConjunction = false
	default:
		return Condition{}, &ParseError{Input: fields[1], Kind: "conjunction"}
	}

	rest := fields[2:]
	var scope ContractScope
	if t == ConditionPrice || t == ConditionPercentChange || t == ConditionVolume {
		if scope.ConID, err = ParseInteger(rest[0]); err != nil {
			return Condition{}, err
		}
		scope.Exchange = rest[1]
		rest = rest[2:]
	}
	var op Operator
	if t != ConditionExecution {
		if op.IsMore, err = ParseBool(rest[0]); err != nil {
			return Condition{}, err
		}
		rest = rest[1:]
	}

	switch t {
	case ConditionPrice:
		price, err := ParseDouble(rest[0])
		if err != nil {
			return Condition{}, err
		}
		code, err := ParseInteger(rest[1])
		if err != nil {
			return Condition{}, err
		}
		method, err := ParseTriggerMethod(code)
		if err != nil {
			return Condition{}, err
		}
		c.Price = &PriceCondition{ContractScope: scope, Operator: op, Price: price, TriggerMethod: method}
	case ConditionTime:
		c.Time = &TimeCondition{Operator: op, Time: rest[0]}
	case ConditionMargin:
		pct, err := ParseDouble(rest[0])
		if err != nil {
			return Condition{}, err
		}
		c.Margin = &MarginCondition{Operator: op, Percent: pct}
	case ConditionExecution:
		c.Execution = &ExecutionCondition{Symbol: rest[0], SecType: rest[1], Exchange: rest[2]}
	case ConditionPercentChange:
		pct, err := ParseDouble(rest[0])
		if err != nil {
			return Condition{}, err
		}
		c.PercentChange = &PercentChangeCondition{ContractScope: scope, Operator: op, ChangePercent: pct}
	case ConditionVolume:
		vol, err := ParseInteger(rest[0])
		if err != nil {
			return Condition{}, err
		}
		c.Volume = &VolumeCondition{ContractScope: scope, Operator: op, Volume: vol}
	}
	return c, nil
}
