package ticket

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"venue-orders-go/order"
	"venue-orders-go/preset"
)

const sampleTickets = `
tickets:
  - name: entry
    preset: bracket
    order_id: 100
    account: U123
    action: BUY
    quantity: "100"
    params: {limit: "50.5", take_profit: "55", stop_loss: 48}
  - name: guard
    preset: attach_adjustable_stop
    parent: entry
    params: {stop: 45, trigger: 55, adjusted_stop: 52}
  - name: spread
    preset: combo_leg_prices
    order_id: 200
    action: SELL
    quantity: 2
    legs: [1.5, "-0.25", 3.0]
    non_guaranteed: true
  - name: gated
    preset: stop_limit
    order_id: 300
    action: BUY
    quantity: 10
    params: {limit: 50.5, stop: 50}
    oca: {group: g1, type: 1}
    conditions:
      - {type: price, con_id: 265598, exchange: SMART, price: 50, is_more: true, is_conjunction: false}
      - {type: time, time: "20240101 10:00:00 US/Eastern", is_more: true}
    conditions_cancel_order: true
`

func writeTempTickets(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "tickets.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFileAndBuild(t *testing.T) {
	f, err := LoadFile(writeTempTickets(t, sampleTickets))
	require.NoError(t, err)
	require.Len(t, f.Tickets, 4)
	f.ApplyDefaults("DU999")
	assert.Equal(t, "U123", f.Tickets[0].Account)
	assert.Equal(t, "DU999", f.Tickets[1].Account)
	assert.Equal(t, 48.0, f.Tickets[0].Params["stop_loss"].InexactFloat64())

	results := NewRegistry().Build(f.Tickets)
	require.Len(t, results, 4)
	for _, r := range results {
		require.NoError(t, r.Err, r.Ticket.Name)
	}
	assert.Zero(t, Failed(results))

	parent, tp, sl := preset.BracketOrder(100, "U123", "BUY", 100, 50.5, 55, 48)
	assert.Equal(t, []order.Order{parent, tp, sl}, results[0].Orders)

	guard := results[1].Orders[0]
	assert.Equal(t, preset.AttachAdjustableToStop(parent, 45, 55, 52), guard)
	assert.Equal(t, "U123", guard.Account)

	spread := results[2].Orders[0]
	assert.Equal(t, int32(200), spread.OrderID)
	assert.Equal(t, []order.OrderComboLeg{{Price: 1.5}, {Price: -0.25}, {Price: 3}}, spread.OrderComboLegs)
	assert.Equal(t, []order.TagValue{{Tag: "NonGuaranteed", Value: "1"}}, spread.SmartComboRoutingParams)

	gated := results[3].Orders[0]
	assert.Equal(t, "STP LMT", gated.OrderType)
	assert.Equal(t, int32(300), gated.OrderID)
	assert.Equal(t, "g1", gated.OcaGroup)
	assert.Equal(t, order.OCACancelWithBlock, gated.OcaType)
	assert.True(t, gated.ConditionsCancelOrder)
	require.Len(t, gated.Conditions, 2)
	assert.Equal(t, order.NewPriceCondition(order.TriggerDefault, 265598, "SMART", 50, true, false), gated.Conditions[0])
	assert.Equal(t, "after", gated.Conditions[1].Direction())
	assert.True(t, gated.Conditions[1].IsConjunction)

	assert.Len(t, Orders(results), 6)
}

func TestParseRejectsBadDocuments(t *testing.T) {
	_, err := Parse([]byte("tickets:\n  - preset: market\n"))
	assert.ErrorIs(t, err, ErrInvalidTicket)

	_, err = Parse([]byte("tickets:\n  - name: a\n"))
	assert.ErrorIs(t, err, ErrInvalidTicket)

	_, err = Parse([]byte("tickets:\n  - {name: a, preset: market}\n  - {name: a, preset: limit}\n"))
	assert.ErrorIs(t, err, ErrDuplicateTicket)

	_, err = Parse([]byte("tickets:\n  - {name: a, preset: market, quantity: lots}\n"))
	assert.Error(t, err)

	_, err = Parse([]byte("tickets:\n  - name: a\n    preset: market\n    conditions:\n      - {type: weather}\n"))
	var de *order.DecodeError
	assert.ErrorAs(t, err, &de)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestBuildErrors(t *testing.T) {
	reg := NewRegistry()
	results := reg.Build([]Ticket{
		{Name: "a", Preset: "teleport"},
		{Name: "b", Preset: "limit"},
		{Name: "c", Preset: "attach_adjustable_stop", Parent: "b"},
		{Name: "d", Preset: "market_fhedge"},
		{Name: "e", Preset: "auction_limit", Params: params(t, map[string]string{"price": "1", "strategy": "1.5"})},
	})
	require.Len(t, results, 5)
	assert.ErrorIs(t, results[0].Err, ErrUnknownPreset)
	assert.ErrorIs(t, results[1].Err, ErrMissingParam)
	assert.ErrorIs(t, results[2].Err, ErrUnknownParent)
	assert.ErrorIs(t, results[3].Err, ErrUnknownParent)
	assert.ErrorIs(t, results[4].Err, ErrInvalidTicket)
	assert.Contains(t, results[1].Err.Error(), `"limit"`)
	assert.Equal(t, 5, Failed(results))
	assert.Empty(t, Orders(results))
}

func TestRegistryCoversPresets(t *testing.T) {
	reg := NewRegistry()
	names := reg.Names()
	for _, want := range []string{
		"market", "limit", "stop", "stop_limit", "bracket", "combo_leg_prices",
		"pegged_to_benchmark", "scale", "market_fhedge",
		"attach_adjustable_stop", "attach_adjustable_stop_limit", "attach_adjustable_trail",
	} {
		assert.Contains(t, names, want)
	}
	assert.Len(t, names, 45)

	reg.Register("noop", func(Request) ([]order.Order, error) { return nil, nil })
	assert.Contains(t, reg.Names(), "noop")
}

func TestPresetArguments(t *testing.T) {
	reg := NewRegistry()
	parent := preset.LimitOrder("U1", "SELL", 5, 10)
	parent.OrderID = 9

	tests := []struct {
		ticket Ticket
		parent *order.Order
		want   order.Order
	}{
		{
			Ticket{Preset: "pegged_to_benchmark", Account: "U1", Action: "BUY", Quantity: dec(t, "100"),
				Params: params(t, map[string]string{
					"starting_price": "33", "pegged_change_amount": "0.02", "reference_change_amount": "0.01",
					"reference_con_id": "12345", "stock_ref_price": "40", "lower": "39", "upper": "41",
				}),
				Options: map[string]string{"reference_exchange": "NASDAQ", "decrease": "true"}},
			nil,
			preset.PeggedToBenchmarkOrder("U1", "BUY", 100, 33, true, 0.02, 0.01, 12345, "NASDAQ", 40, 39, 41),
		},
		{
			Ticket{Preset: "scale", Account: "U1", Action: "BUY", Quantity: dec(t, "1000"),
				Params: params(t, map[string]string{"limit": "50", "init_level_size": "100", "subs_level_size": "50", "price_increment": "0.1"})},
			nil,
			preset.ScaleOrder("U1", "BUY", 1000, 50, 100, 50, 0.1),
		},
		{
			Ticket{Preset: "market_fhedge", Account: "U1", Action: "BUY"},
			&parent,
			preset.MarketFHedgeOrder("U1", 9, "BUY"),
		},
		{
			Ticket{Preset: "attach_adjustable_trail", Params: params(t, map[string]string{
				"stop": "11", "trigger": "9", "adjusted_stop": "10.5", "adjusted_trail_amount": "1", "trail_unit": "1",
			})},
			&parent,
			preset.AttachAdjustableToTrail(parent, 11, 9, 10.5, 1, order.TrailingUnitPercent),
		},
		{
			Ticket{Preset: "trailing_stop_limit", Account: "U1", Action: "SELL", Quantity: dec(t, "1"),
				Params: params(t, map[string]string{"lmt_price_offset": "0.1", "trailing_amount": "1.5", "trail_stop_price": "40"})},
			nil,
			preset.TrailingStopLimitOrder("U1", "SELL", 1, 0.1, 1.5, 40),
		},
	}
	for _, tt := range tests {
		t.Run(tt.ticket.Preset, func(t *testing.T) {
			got, err := reg.BuildTicket(Request{Ticket: tt.ticket, Parent: tt.parent})
			require.NoError(t, err)
			require.Len(t, got, 1)
			assert.Equal(t, tt.want, got[0])
		})
	}
}

func TestInt32ParamRange(t *testing.T) {
	reg := NewRegistry()
	for _, v := range []string{"4294967298", "2147483648", "-2147483649"} {
		_, err := reg.BuildTicket(Request{Ticket: Ticket{
			Name: "v", Preset: "volatility", Action: "BUY", Quantity: dec(t, "1"),
			Params: params(t, map[string]string{"volatility": "0.3", "volatility_type": v}),
		}})
		assert.ErrorIs(t, err, ErrInvalidTicket, v)
	}

	got, err := reg.BuildTicket(Request{Ticket: Ticket{
		Name: "v", Preset: "volatility", Action: "BUY", Quantity: dec(t, "1"),
		Params: params(t, map[string]string{"volatility": "0.3", "volatility_type": "2147483647"}),
	}})
	require.NoError(t, err)
	assert.Equal(t, int32(2147483647), got[0].VolatilityType)
}

func TestLinkedOrdersNeedParentID(t *testing.T) {
	results := NewRegistry().Build([]Ticket{
		{Name: "entry", Preset: "bracket", Action: "BUY", Quantity: dec(t, "1"),
			Params: params(t, map[string]string{"limit": "10", "take_profit": "11", "stop_loss": "9"})},
		{Name: "base", Preset: "limit", Action: "BUY", Quantity: dec(t, "1"),
			Params: params(t, map[string]string{"limit": "10"})},
		{Name: "guard", Preset: "attach_adjustable_stop", Parent: "base",
			Params: params(t, map[string]string{"stop": "9", "trigger": "11", "adjusted_stop": "10"})},
		{Name: "hedge", Preset: "market_fhedge", Parent: "base", Action: "SELL"},
	})
	require.Len(t, results, 4)
	assert.ErrorIs(t, results[0].Err, ErrMissingParam)
	assert.Empty(t, results[0].Orders)
	require.NoError(t, results[1].Err)
	assert.ErrorIs(t, results[2].Err, ErrMissingParam)
	assert.ErrorIs(t, results[3].Err, ErrMissingParam)
}

func TestConditionsNotSharedBetweenOrders(t *testing.T) {
	results := NewRegistry().Build([]Ticket{{
		Name: "entry", Preset: "bracket", OrderID: 10, Action: "BUY", Quantity: dec(t, "1"),
		Params:     params(t, map[string]string{"limit": "10", "take_profit": "11", "stop_loss": "9"}),
		Conditions: []order.Condition{order.NewPriceCondition(order.TriggerDefault, 1, "SMART", 50, true, true)},
	}})
	require.NoError(t, results[0].Err)
	orders := results[0].Orders
	require.Len(t, orders, 3)

	orders[0].Conditions[0].Price.Price = 99
	assert.Equal(t, 50.0, orders[1].Conditions[0].Price.Price)
	assert.Equal(t, 50.0, orders[2].Conditions[0].Price.Price)
	assert.Equal(t, 50.0, results[0].Ticket.Conditions[0].Price.Price)
}
