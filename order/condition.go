package order

import (
	"fmt"
	"strconv"
)

// ConditionType is the discriminant of a Condition. Codes are fixed by the
// venue.
type ConditionType int32

const (
	ConditionPrice         ConditionType = 1
	ConditionTime          ConditionType = 3
	ConditionMargin        ConditionType = 4
	ConditionExecution     ConditionType = 5
	ConditionVolume        ConditionType = 6
	ConditionPercentChange ConditionType = 7
)

var conditionTypeNames = map[ConditionType]string{
	ConditionPrice:         "price",
	ConditionTime:          "time",
	ConditionMargin:        "margin",
	ConditionExecution:     "execution",
	ConditionVolume:        "volume",
	ConditionPercentChange: "percent_change",
}

// ParseConditionType maps a type code onto the closed set.
func ParseConditionType(code int32) (ConditionType, error) {
	t := ConditionType(code)
	if _, ok := conditionTypeNames[t]; !ok {
		return 0, fmt.Errorf("%w: code %d", ErrUnknownConditionType, code)
	}
	return t, nil
}

func (t ConditionType) String() string {
	if name, ok := conditionTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("ConditionType(%d)", int32(t))
}

func (t ConditionType) MarshalText() ([]byte, error) {
	name, ok := conditionTypeNames[t]
	if !ok {
		return nil, fmt.Errorf("%w: code %d", ErrUnknownConditionType, int32(t))
	}
	return []byte(name), nil
}

func (t *ConditionType) UnmarshalText(text []byte) error {
	for k, name := range conditionTypeNames {
		if name == string(text) {
			*t = k
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrUnknownConditionType, string(text))
}

// TriggerMethod selects which quotes a price condition watches.
type TriggerMethod int32

const (
	TriggerDefault      TriggerMethod = 0
	TriggerDoubleBidAsk TriggerMethod = 1
	TriggerLast         TriggerMethod = 2
	TriggerDoubleLast   TriggerMethod = 3
	TriggerBidAsk       TriggerMethod = 4
	TriggerLastOrBidAsk TriggerMethod = 7
	TriggerMidPoint     TriggerMethod = 8
)

var triggerMethodNames = map[TriggerMethod]string{
	TriggerDefault:      "Default",
	TriggerDoubleBidAsk: "DoubleBidAsk",
	TriggerLast:         "Last",
	TriggerDoubleLast:   "DoubleLast",
	TriggerBidAsk:       "BidAsk",
	TriggerLastOrBidAsk: "LastOrBidAsk",
	TriggerMidPoint:     "MidPoint",
}

// ParseTriggerMethod maps a code onto the closed set. Unknown codes are a
// *ParseError.
func ParseTriggerMethod(code int32) (TriggerMethod, error) {
	m := TriggerMethod(code)
	if _, ok := triggerMethodNames[m]; !ok {
		return 0, &ParseError{Input: strconv.FormatInt(int64(code), 10), Kind: "trigger method"}
	}
	return m, nil
}

func (m TriggerMethod) String() string {
	if name, ok := triggerMethodNames[m]; ok {
		return name
	}
	return fmt.Sprintf("TriggerMethod(%d)", int32(m))
}

// Operator is the comparison direction shared by every variant except
// Execution.
type Operator struct {
	IsMore bool
}

// ContractScope names the instrument a condition watches.
type ContractScope struct {
	ConID    int32
	Exchange string
}

type PriceCondition struct {
	ContractScope
	Operator
	Price         float64
	TriggerMethod TriggerMethod
}

type TimeCondition struct {
	Operator
	Time string // "20060102 15:04:05 {tz}"
}

type MarginCondition struct {
	Operator
	Percent float64
}

type ExecutionCondition struct {
	Symbol   string
	SecType  string
	Exchange string
}

// PercentChangeCondition watches the change against the last close.
type PercentChangeCondition struct {
	ContractScope
	Operator
	ChangePercent float64
}

type VolumeCondition struct {
	ContractScope
	Operator
	Volume int32
}

// Condition is one link of an order's trigger chain. Exactly the variant
// matching Type is non-nil. IsConjunction states how this link combines
// with the next one: AND when true, OR when false.
type Condition struct {
	Type          ConditionType
	IsConjunction bool

	Price         *PriceCondition
	Time          *TimeCondition
	Margin        *MarginCondition
	Execution     *ExecutionCondition
	PercentChange *PercentChangeCondition
	Volume        *VolumeCondition
}

// NewCondition returns a default-valued condition of type t.
func NewCondition(t ConditionType) (Condition, error) {
	c := Condition{Type: t, IsConjunction: true}
	switch t {
	case ConditionPrice:
		c.Price = &PriceCondition{Price: UnsetDouble}
	case ConditionTime:
		c.Time = &TimeCondition{}
	case ConditionMargin:
		c.Margin = &MarginCondition{Percent: UnsetDouble}
	case ConditionExecution:
		c.Execution = &ExecutionCondition{}
	case ConditionPercentChange:
		c.PercentChange = &PercentChangeCondition{ChangePercent: UnsetDouble}
	case ConditionVolume:
		c.Volume = &VolumeCondition{Volume: UnsetInteger}
	default:
		return Condition{}, fmt.Errorf("%w: code %d", ErrUnknownConditionType, int32(t))
	}
	return c, nil
}

func NewPriceCondition(triggerMethod TriggerMethod, conID int32, exchange string, price float64, isMore, isConjunction bool) Condition {
	return Condition{
		Type:          ConditionPrice,
		IsConjunction: isConjunction,
		Price: &PriceCondition{
			ContractScope: ContractScope{ConID: conID, Exchange: exchange},
			Operator:      Operator{IsMore: isMore},
			Price:         price,
			TriggerMethod: triggerMethod,
		},
	}
}

func NewExecutionCondition(symbol, secType, exchange string, isConjunction bool) Condition {
	return Condition{
		Type:          ConditionExecution,
		IsConjunction: isConjunction,
		Execution:     &ExecutionCondition{Symbol: symbol, SecType: secType, Exchange: exchange},
	}
}

func NewMarginCondition(percent float64, isMore, isConjunction bool) Condition {
	return Condition{
		Type:          ConditionMargin,
		IsConjunction: isConjunction,
		Margin:        &MarginCondition{Operator: Operator{IsMore: isMore}, Percent: percent},
	}
}

// NewPercentChangeCondition always tags the result as PercentChange.
func NewPercentChangeCondition(changePercent float64, conID int32, exchange string, isMore, isConjunction bool) Condition {
	return Condition{
		Type:          ConditionPercentChange,
		IsConjunction: isConjunction,
		PercentChange: &PercentChangeCondition{
			ContractScope: ContractScope{ConID: conID, Exchange: exchange},
			Operator:      Operator{IsMore: isMore},
			ChangePercent: changePercent,
		},
	}
}

// NewTimeCondition: isMore=true means "after" time.
func NewTimeCondition(time string, isMore, isConjunction bool) Condition {
	return Condition{
		Type:          ConditionTime,
		IsConjunction: isConjunction,
		Time:          &TimeCondition{Operator: Operator{IsMore: isMore}, Time: time},
	}
}

func NewVolumeCondition(conID int32, exchange string, isMore bool, volume int32, isConjunction bool) Condition {
	return Condition{
		Type:          ConditionVolume,
		IsConjunction: isConjunction,
		Volume: &VolumeCondition{
			ContractScope: ContractScope{ConID: conID, Exchange: exchange},
			Operator:      Operator{IsMore: isMore},
			Volume:        volume,
		},
	}
}

// Clone returns c with its own copy of the variant, so later changes to
// one copy never show through the other.
func (c Condition) Clone() Condition {
	out := Condition{Type: c.Type, IsConjunction: c.IsConjunction}
	if c.Price != nil {
		v := *c.Price
		out.Price = &v
	}
	if c.Time != nil {
		v := *c.Time
		out.Time = &v
	}
	if c.Margin != nil {
		v := *c.Margin
		out.Margin = &v
	}
	if c.Execution != nil {
		v := *c.Execution
		out.Execution = &v
	}
	if c.PercentChange != nil {
		v := *c.PercentChange
		out.PercentChange = &v
	}
	if c.Volume != nil {
		v := *c.Volume
		out.Volume = &v
	}
	return out
}

// CloneConditions deep-copies a chain; nil stays nil.
func CloneConditions(conds []Condition) []Condition {
	if conds == nil {
		return nil
	}
	out := make([]Condition, len(conds))
	for i, c := range conds {
		out[i] = c.Clone()
	}
	return out
}

// validate 检查 Type 与变体指针是否一致
func (c Condition) validate() error {
	set := 0
	for _, p := range []bool{
		c.Price != nil, c.Time != nil, c.Margin != nil,
		c.Execution != nil, c.PercentChange != nil, c.Volume != nil,
	} {
		if p {
			set++
		}
	}
	var ok bool
	switch c.Type {
	case ConditionPrice:
		ok = c.Price != nil
	case ConditionTime:
		ok = c.Time != nil
	case ConditionMargin:
		ok = c.Margin != nil
	case ConditionExecution:
		ok = c.Execution != nil
	case ConditionPercentChange:
		ok = c.PercentChange != nil
	case ConditionVolume:
		ok = c.Volume != nil
	default:
		return fmt.Errorf("%w: code %d", ErrUnknownConditionType, int32(c.Type))
	}
	if !ok || set != 1 {
		return fmt.Errorf("%w: type %s", ErrMalformedCondition, c.Type)
	}
	return nil
}

func (c Condition) contractScope() (ContractScope, bool) {
	switch {
	case c.Price != nil:
		return c.Price.ContractScope, true
	case c.PercentChange != nil:
		return c.PercentChange.ContractScope, true
	case c.Volume != nil:
		return c.Volume.ContractScope, true
	}
	return ContractScope{}, false
}

func (c Condition) operator() (Operator, bool) {
	switch c.Type {
	case ConditionPrice:
		if c.Price != nil {
			return c.Price.Operator, true
		}
	case ConditionTime:
		if c.Time != nil {
			return c.Time.Operator, true
		}
	case ConditionMargin:
		if c.Margin != nil {
			return c.Margin.Operator, true
		}
	case ConditionPercentChange:
		if c.PercentChange != nil {
			return c.PercentChange.Operator, true
		}
	case ConditionVolume:
		if c.Volume != nil {
			return c.Volume.Operator, true
		}
	}
	return Operator{}, false
}

// Direction is "above"/"below" for operator conditions, "after"/"before"
// for Time and "" for Execution.
func (c Condition) Direction() string {
	op, ok := c.operator()
	if !ok {
		return ""
	}
	if c.Type == ConditionTime {
		if op.IsMore {
			return "after"
		}
		return "before"
	}
	if op.IsMore {
		return "above"
	}
	return "below"
}

// Connector is the word joining this condition to the next one.
func (c Condition) Connector() string {
	if c.IsConjunction {
		return "AND"
	}
	return "OR"
}

func (c Condition) String() string {
	if err := c.validate(); err != nil {
		return c.Type.String() + "(<malformed>)"
	}
	scope := func(s ContractScope) string {
		return "con_id=" + strconv.FormatInt(int64(s.ConID), 10) + ", exchange=" + s.Exchange + ", "
	}
	var body string
	switch c.Type {
	case ConditionPrice:
		p := c.Price
		body = scope(p.ContractScope) + c.Direction() + " " + FormatDouble(p.Price) + ", trigger=" + p.TriggerMethod.String()
	case ConditionTime:
		body = c.Direction() + " " + c.Time.Time
	case ConditionMargin:
		body = c.Direction() + " " + FormatDouble(c.Margin.Percent) + "%"
	case ConditionExecution:
		e := c.Execution
		body = "symbol=" + e.Symbol + ", sec_type=" + e.SecType + ", exchange=" + e.Exchange
	case ConditionPercentChange:
		p := c.PercentChange
		body = scope(p.ContractScope) + c.Direction() + " " + FormatDouble(p.ChangePercent) + "%"
	case ConditionVolume:
		v := c.Volume
		body = scope(v.ContractScope) + c.Direction() + " " + FormatInteger(v.Volume)
	}
	return c.Type.String() + "(" + body + ")"
}
