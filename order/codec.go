package order

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Decoding always starts from the in-memory default, so a partial record
// equals fresh construction plus the fields present.

func (o *Order) UnmarshalJSON(data []byte) error {
	type plain Order
	p := plain(Default())
	if err := json.Unmarshal(data, &p); err != nil {
		return newDecodeError("json", err)
	}
	*o = Order(p)
	return nil
}

func (o *Order) UnmarshalYAML(value *yaml.Node) error {
	type plain Order
	p := plain(Default())
	if err := value.Decode(&p); err != nil {
		return newDecodeError("yaml", err)
	}
	*o = Order(p)
	return nil
}

func (s *OrderState) UnmarshalJSON(data []byte) error {
	type plain OrderState
	p := plain(NewOrderState())
	if err := json.Unmarshal(data, &p); err != nil {
		return newDecodeError("json", err)
	}
	*s = OrderState(p)
	return nil
}

func (s *OrderState) UnmarshalYAML(value *yaml.Node) error {
	type plain OrderState
	p := plain(NewOrderState())
	if err := value.Decode(&p); err != nil {
		return newDecodeError("yaml", err)
	}
	*s = OrderState(p)
	return nil
}

func (l *OrderComboLeg) UnmarshalJSON(data []byte) error {
	type plain OrderComboLeg
	p := plain{Price: UnsetDouble}
	if err := json.Unmarshal(data, &p); err != nil {
		return newDecodeError("json", err)
	}
	*l = OrderComboLeg(p)
	return nil
}

func (l *OrderComboLeg) UnmarshalYAML(value *yaml.Node) error {
	type plain OrderComboLeg
	p := plain{Price: UnsetDouble}
	if err := value.Decode(&p); err != nil {
		return newDecodeError("yaml", err)
	}
	*l = OrderComboLeg(p)
	return nil
}

// conditionRecord is the flat persisted form of a Condition. Only the
// fields the variant owns are written.
type conditionRecord struct {
	Type          ConditionType  `json:"type" yaml:"type"`
	IsConjunction bool           `json:"is_conjunction" yaml:"is_conjunction"`
	ConID         *int32         `json:"con_id,omitempty" yaml:"con_id,omitempty"`
	Exchange      *string        `json:"exchange,omitempty" yaml:"exchange,omitempty"`
	IsMore        *bool          `json:"is_more,omitempty" yaml:"is_more,omitempty"`
	Price         *float64       `json:"price,omitempty" yaml:"price,omitempty"`
	TriggerMethod *TriggerMethod `json:"trigger_method,omitempty" yaml:"trigger_method,omitempty"`
	Time          *string        `json:"time,omitempty" yaml:"time,omitempty"`
	Percent       *float64       `json:"percent,omitempty" yaml:"percent,omitempty"`
	Symbol        *string        `json:"symbol,omitempty" yaml:"symbol,omitempty"`
	SecType       *string        `json:"sec_type,omitempty" yaml:"sec_type,omitempty"`
	ChangePercent *float64       `json:"change_percent,omitempty" yaml:"change_percent,omitempty"`
	Volume        *int32         `json:"volume,omitempty" yaml:"volume,omitempty"`
}

func ptr[T any](v T) *T { return &v }

func (c Condition) record() (conditionRecord, error) {
	if err := c.validate(); err != nil {
		return conditionRecord{}, err
	}
	r := conditionRecord{Type: c.Type, IsConjunction: c.IsConjunction}
	if s, ok := c.contractScope(); ok {
		r.ConID = ptr(s.ConID)
		r.Exchange = ptr(s.Exchange)
	}
	if op, ok := c.operator(); ok {
		r.IsMore = ptr(op.IsMore)
	}
	switch c.Type {
	case ConditionPrice:
		r.Price = ptr(c.Price.Price)
		r.TriggerMethod = ptr(c.Price.TriggerMethod)
	case ConditionTime:
		r.Time = ptr(c.Time.Time)
	case ConditionMargin:
		r.Percent = ptr(c.Margin.Percent)
	case ConditionExecution:
		r.Symbol = ptr(c.Execution.Symbol)
		r.SecType = ptr(c.Execution.SecType)
		r.Exchange = ptr(c.Execution.Exchange)
	case ConditionPercentChange:
		r.ChangePercent = ptr(c.PercentChange.ChangePercent)
	case ConditionVolume:
		r.Volume = ptr(c.Volume.Volume)
	}
	return r, nil
}

// condition rebuilds the variant. Absent or null keys keep the variant's
// default; keys the variant does not own are rejected.
func (r conditionRecord) condition() (Condition, error) {
	c, err := NewCondition(r.Type)
	if err != nil {
		return Condition{}, err
	}
	owned, _ := c.record()
	for _, k := range []struct {
		name       string
		has, owned bool
	}{
		{"con_id", r.ConID != nil, owned.ConID != nil},
		{"exchange", r.Exchange != nil, owned.Exchange != nil},
		{"is_more", r.IsMore != nil, owned.IsMore != nil},
		{"price", r.Price != nil, owned.Price != nil},
		{"trigger_method", r.TriggerMethod != nil, owned.TriggerMethod != nil},
		{"time", r.Time != nil, owned.Time != nil},
		{"percent", r.Percent != nil, owned.Percent != nil},
		{"symbol", r.Symbol != nil, owned.Symbol != nil},
		{"sec_type", r.SecType != nil, owned.SecType != nil},
		{"change_percent", r.ChangePercent != nil, owned.ChangePercent != nil},
		{"volume", r.Volume != nil, owned.Volume != nil},
	} {
		if k.has && !k.owned {
			return Condition{}, fmt.Errorf("%w: %s condition has no %q", ErrMalformedCondition, r.Type, k.name)
		}
	}
	if r.TriggerMethod != nil {
		if _, err := ParseTriggerMethod(int32(*r.TriggerMethod)); err != nil {
			return Condition{}, err
		}
	}

	c.IsConjunction = r.IsConjunction
	scope := func(s *ContractScope) {
		overlay(&s.ConID, r.ConID)
		overlay(&s.Exchange, r.Exchange)
	}
	switch r.Type {
	case ConditionPrice:
		scope(&c.Price.ContractScope)
		overlay(&c.Price.IsMore, r.IsMore)
		overlay(&c.Price.Price, r.Price)
		overlay(&c.Price.TriggerMethod, r.TriggerMethod)
	case ConditionTime:
		overlay(&c.Time.IsMore, r.IsMore)
		overlay(&c.Time.Time, r.Time)
	case ConditionMargin:
		overlay(&c.Margin.IsMore, r.IsMore)
		overlay(&c.Margin.Percent, r.Percent)
	case ConditionExecution:
		overlay(&c.Execution.Symbol, r.Symbol)
		overlay(&c.Execution.SecType, r.SecType)
		overlay(&c.Execution.Exchange, r.Exchange)
	case ConditionPercentChange:
		scope(&c.PercentChange.ContractScope)
		overlay(&c.PercentChange.IsMore, r.IsMore)
		overlay(&c.PercentChange.ChangePercent, r.ChangePercent)
	case ConditionVolume:
		scope(&c.Volume.ContractScope)
		overlay(&c.Volume.IsMore, r.IsMore)
		overlay(&c.Volume.Volume, r.Volume)
	}
	return c, nil
}

func overlay[T any](dst *T, p *T) {
	if p != nil {
		*dst = *p
	}
}

func (c Condition) MarshalJSON() ([]byte, error) {
	r, err := c.record()
	if err != nil {
		return nil, err
	}
	return json.Marshal(r)
}

func (c *Condition) UnmarshalJSON(data []byte) error {
	var head struct {
		Type ConditionType `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return newDecodeError("json", err)
	}
	def, err := NewCondition(head.Type)
	if err != nil {
		return newDecodeError("json", err)
	}
	r, _ := def.record()
	if err := json.Unmarshal(data, &r); err != nil {
		return newDecodeError("json", err)
	}
	out, err := r.condition()
	if err != nil {
		return newDecodeError("json", err)
	}
	*c = out
	return nil
}

func (c Condition) MarshalYAML() (interface{}, error) {
	return c.record()
}

func (c *Condition) UnmarshalYAML(value *yaml.Node) error {
	var head struct {
		Type ConditionType `yaml:"type"`
	}
	if err := value.Decode(&head); err != nil {
		return newDecodeError("yaml", err)
	}
	def, err := NewCondition(head.Type)
	if err != nil {
		return newDecodeError("yaml", err)
	}
	r, _ := def.record()
	if err := value.Decode(&r); err != nil {
		return newDecodeError("yaml", err)
	}
	out, err := r.condition()
	if err != nil {
		return newDecodeError("yaml", err)
	}
	*c = out
	return nil
}

// DecodeJSON decodes a single persisted record of type T.
func DecodeJSON[T any](data []byte) (T, error) {
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		var zero T
		return zero, newDecodeError("json", err)
	}
	return v, nil
}

// DecodeYAML decodes a single persisted record of type T. The document
// must not be empty.
func DecodeYAML[T any](data []byte) (T, error) {
	var v T
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return v, newDecodeError("yaml", err)
	}
	if len(doc.Content) == 0 {
		return v, &DecodeError{Format: "yaml", Err: fmt.Errorf("empty document")}
	}
	// null 根节点不会经过 UnmarshalYAML，按空文档处理
	if root := doc.Content[0]; root.Kind == yaml.ScalarNode && root.ShortTag() == "!!null" {
		return v, &DecodeError{Format: "yaml", Err: fmt.Errorf("null document")}
	}
	if err := doc.Content[0].Decode(&v); err != nil {
		var zero T
		return zero, newDecodeError("yaml", err)
	}
	return v, nil
}
