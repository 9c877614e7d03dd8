package order

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleConditions() []Condition {
	return []Condition{
		NewPriceCondition(TriggerDefault, 265598, "SMART", 50, true, false),
		NewTimeCondition("20240101 10:00:00 US/Eastern", true, true),
		NewMarginCondition(30, false, true),
		NewExecutionCondition("AAPL", "STK", "SMART", true),
		NewPercentChangeCondition(2.5, 8314, "SMART", false, true),
		NewVolumeCondition(8314, "SMART", true, 100000, false),
	}
}

func TestMakeFieldsOrdering(t *testing.T) {
	want := [][]string{
		{"1", "o", "265598", "SMART", "1", "50", "0"},
		{"3", "a", "1", "20240101 10:00:00 US/Eastern"},
		{"4", "a", "0", "30"},
		{"5", "a", "AAPL", "STK", "SMART"},
		{"7", "a", "8314", "SMART", "0", "2.5"},
		{"6", "o", "8314", "SMART", "1", "100000"},
	}
	for i, c := range sampleConditions() {
		fields, err := c.MakeFields()
		require.NoError(t, err, c.Type.String())
		assert.Equal(t, want[i], fields, c.Type.String())
	}
}

func TestParseConditionFieldsRoundTrip(t *testing.T) {
	conds := append(sampleConditions(),
		NewPriceCondition(TriggerMidPoint, 1, "NYSE", UnsetDouble, false, true),
		NewVolumeCondition(2, "ARCA", false, UnsetInteger, true),
	)
	for _, c := range conds {
		fields, err := c.MakeFields()
		require.NoError(t, err)
		got, err := ParseConditionFields(fields)
		require.NoError(t, err, fields)
		assert.Equal(t, c, got)
	}
}

func TestBuildersSetMatchingTag(t *testing.T) {
	want := []ConditionType{
		ConditionPrice, ConditionTime, ConditionMargin,
		ConditionExecution, ConditionPercentChange, ConditionVolume,
	}
	for i, c := range sampleConditions() {
		assert.Equal(t, want[i], c.Type)
		assert.NoError(t, c.validate())
	}
}

func TestDirection(t *testing.T) {
	assert.Equal(t, "above", NewPriceCondition(TriggerLast, 1, "SMART", 10, true, true).Direction())
	assert.Equal(t, "below", NewMarginCondition(10, false, true).Direction())
	assert.Equal(t, "after", NewTimeCondition("20240101 10:00:00", true, true).Direction())
	assert.Equal(t, "before", NewTimeCondition("20240101 10:00:00", false, true).Direction())
	assert.Equal(t, "", NewExecutionCondition("AAPL", "STK", "SMART", true).Direction())
}

func TestNewConditionDefaults(t *testing.T) {
	c, err := NewCondition(ConditionPrice)
	require.NoError(t, err)
	assert.True(t, IsUnsetDouble(c.Price.Price))
	assert.True(t, c.IsConjunction)

	c, err = NewCondition(ConditionVolume)
	require.NoError(t, err)
	assert.True(t, IsUnsetInteger(c.Volume.Volume))

	_, err = NewCondition(ConditionType(2))
	assert.ErrorIs(t, err, ErrUnknownConditionType)
}

func TestMalformedCondition(t *testing.T) {
	_, err := Condition{Type: ConditionPrice}.MakeFields()
	assert.True(t, errors.Is(err, ErrMalformedCondition))

	c := NewMarginCondition(10, true, true)
	c.Time = &TimeCondition{}
	_, err = c.MakeFields()
	assert.ErrorIs(t, err, ErrMalformedCondition)

	_, err = Condition{Type: 99}.MakeFields()
	assert.ErrorIs(t, err, ErrUnknownConditionType)
}

func TestParseConditionFieldsErrors(t *testing.T) {
	var de *DecodeError
	_, err := ParseConditionFields([]string{"1"})
	require.ErrorAs(t, err, &de)

	_, err = ParseConditionFields([]string{"4", "a", "1"})
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "fields", de.Format)

	var pe *ParseError
	_, err = ParseConditionFields([]string{"4", "x", "1", "30"})
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "conjunction", pe.Kind)

	_, err = ParseConditionFields([]string{"1", "a", "1", "SMART", "1", "50", "5"})
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "trigger method", pe.Kind)

	_, err = ParseConditionFields([]string{"2", "a"})
	assert.ErrorIs(t, err, ErrUnknownConditionType)
}

func TestTriggerMethod(t *testing.T) {
	for _, code := range []int32{0, 1, 2, 3, 4, 7, 8} {
		m, err := ParseTriggerMethod(code)
		require.NoError(t, err)
		assert.Equal(t, code, int32(m))
	}
	for _, code := range []int32{5, 6, 9, -1} {
		_, err := ParseTriggerMethod(code)
		var pe *ParseError
		assert.ErrorAs(t, err, &pe)
	}
	assert.Equal(t, "MidPoint", TriggerMidPoint.String())
}

func TestConditionTypeText(t *testing.T) {
	text, err := ConditionPercentChange.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "percent_change", string(text))

	var ct ConditionType
	require.NoError(t, ct.UnmarshalText([]byte("volume")))
	assert.Equal(t, ConditionVolume, ct)
	assert.ErrorIs(t, ct.UnmarshalText([]byte("weather")), ErrUnknownConditionType)

	_, err = ConditionType(2).MarshalText()
	assert.ErrorIs(t, err, ErrUnknownConditionType)
}

func TestConditionString(t *testing.T) {
	c := NewPriceCondition(TriggerDoubleBidAsk, 265598, "SMART", 50, true, true)
	assert.Equal(t, "price(con_id=265598, exchange=SMART, above 50.0, trigger=DoubleBidAsk)", c.String())
	assert.Equal(t, "execution(symbol=AAPL, sec_type=STK, exchange=SMART)", NewExecutionCondition("AAPL", "STK", "SMART", true).String())
	assert.Equal(t, "volume(<malformed>)", Condition{Type: ConditionVolume}.String())
}

func TestPriceConditionFieldsDecodeBack(t *testing.T) {
	c := NewPriceCondition(TriggerDefault, 265598, "SMART", 100, true, false)
	fields, err := c.MakeFields()
	require.NoError(t, err)

	got, err := ParseConditionFields(fields)
	require.NoError(t, err)
	assert.False(t, got.IsConjunction)
	assert.Equal(t, "above", got.Direction())
	assert.Equal(t, "OR", got.Connector())
}

func TestCloneIsDeep(t *testing.T) {
	chain := []Condition{
		NewPriceCondition(TriggerLast, 1, "SMART", 10, true, true),
		NewTimeCondition("20240101 10:00:00 UTC", true, false),
		NewVolumeCondition(2, "ISLAND", false, 100, true),
	}
	cp := CloneConditions(chain)
	require.Equal(t, chain, cp)

	cp[0].Price.Price = 11
	cp[1].Time.Time = "later"
	cp[2].Volume.Volume = 5
	assert.Equal(t, 10.0, chain[0].Price.Price)
	assert.Equal(t, "20240101 10:00:00 UTC", chain[1].Time.Time)
	assert.Equal(t, int32(100), chain[2].Volume.Volume)

	assert.Nil(t, CloneConditions(nil))
}
