package ticket

import (
	"fmt"
	"sort"

	"venue-orders-go/order"
	"venue-orders-go/preset"
)

// Request is what a preset builder sees: the ticket plus the resolved
// parent order, if the ticket names one.
type Request struct {
	Ticket Ticket
	Parent *order.Order
}

// PresetFunc builds the orders of one ticket.
type PresetFunc func(req Request) ([]order.Order, error)

// Registry maps preset names onto builders.
type Registry struct {
	presets map[string]PresetFunc
}

// NewRegistry returns a registry holding every built-in preset.
func NewRegistry() *Registry {
	r := &Registry{presets: make(map[string]PresetFunc)}
	registerBuiltins(r)
	return r
}

// Register adds or replaces a preset.
func (r *Registry) Register(name string, fn PresetFunc) {
	r.presets[name] = fn
}

// Names 返回已注册的预设名（排序）。
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.presets))
	for n := range r.presets {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// BuildTicket runs the preset named by req.Ticket.
func (r *Registry) BuildTicket(req Request) ([]order.Order, error) {
	fn, ok := r.presets[req.Ticket.Preset]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPreset, req.Ticket.Preset)
	}
	return fn(req)
}

// single adapts a one-order builder that only reads arguments.
func single(build func(a *args) order.Order) PresetFunc {
	return func(req Request) ([]order.Order, error) {
		a := &args{t: req.Ticket}
		o := build(a)
		if a.err != nil {
			return nil, a.err
		}
		return []order.Order{o}, nil
	}
}

// attached adapts a builder that needs the parent order.
func attached(build func(a *args, parent order.Order) order.Order) PresetFunc {
	return func(req Request) ([]order.Order, error) {
		if req.Parent == nil {
			return nil, fmt.Errorf("%w: %s needs a parent ticket", ErrUnknownParent, req.Ticket.Preset)
		}
		// parent_id 0 表示无父单，子单无法挂上
		if req.Parent.OrderID == 0 {
			return nil, fmt.Errorf("%w: %s needs a parent with order_id", ErrMissingParam, req.Ticket.Preset)
		}
		a := &args{t: req.Ticket}
		o := build(a, *req.Parent)
		if a.err != nil {
			return nil, a.err
		}
		return []order.Order{o}, nil
	}
}

func registerBuiltins(r *Registry) {
	noArgs := map[string]func(account, action string, qty float64) order.Order{
		"market":                 preset.MarketOrder,
		"market_on_close":        preset.MarketOnCloseOrder,
		"market_on_open":         preset.MarketOnOpenOrder,
		"midpoint_match":         preset.MidpointMatchOrder,
		"box_top":                preset.BoxTopOrder,
		"market_to_limit":        preset.MarketToLimitOrder,
		"market_with_protection": preset.MarketWithProtectionOrder,
	}
	for name, fn := range noArgs {
		fn := fn
		r.Register(name, single(func(a *args) order.Order {
			return fn(a.t.Account, a.t.Action, a.quantity())
		}))
	}

	// one numeric argument after quantity
	oneArg := map[string]struct {
		key string
		fn  func(account, action string, qty, v float64) order.Order
	}{
		"at_auction":           {"price", preset.AtAuctionOrder},
		"market_if_touched":    {"price", preset.MarketIfTouchedOrder},
		"midprice":             {"price_cap", preset.MidpriceOrder},
		"pegged_to_market":     {"offset", preset.PeggedToMarketOrder},
		"sweep_to_fill":        {"price", preset.SweepToFillOrder},
		"auction_relative":     {"offset", preset.AuctionRelativeOrder},
		"block":                {"price", preset.BlockOrder},
		"limit":                {"limit", preset.LimitOrder},
		"limit_on_close":       {"limit", preset.LimitOnCloseOrder},
		"limit_on_open":        {"limit", preset.LimitOnOpenOrder},
		"passive_relative":     {"offset", preset.PassiveRelativeOrder},
		"stop":                 {"stop", preset.StopOrder},
		"stop_with_protection": {"stop", preset.StopWithProtectionOrder},
		"what_if_limit":        {"limit", preset.WhatIfLimitOrder},
	}
	for name, def := range oneArg {
		def := def
		r.Register(name, single(func(a *args) order.Order {
			return def.fn(a.t.Account, a.t.Action, a.quantity(), a.float(def.key))
		}))
	}

	r.Register("discretionary", single(func(a *args) order.Order {
		return preset.DiscretionaryOrder(a.t.Account, a.t.Action, a.quantity(), a.float("price"), a.float("discretionary_amount"))
	}))
	r.Register("pegged_to_stock", single(func(a *args) order.Order {
		return preset.PeggedToStockOrder(a.t.Account, a.t.Action, a.quantity(), a.float("delta"), a.float("stock_ref_price"), a.float("starting_price"))
	}))
	r.Register("relative_pegged_to_primary", single(func(a *args) order.Order {
		return preset.RelativePeggedToPrimaryOrder(a.t.Account, a.t.Action, a.quantity(), a.float("price_cap"), a.float("offset"))
	}))
	r.Register("auction_limit", single(func(a *args) order.Order {
		return preset.AuctionLimitOrder(a.t.Account, a.t.Action, a.quantity(), a.float("price"), order.AuctionStrategy(a.int32("strategy")))
	}))
	r.Register("auction_pegged_to_stock", single(func(a *args) order.Order {
		return preset.AuctionPeggedToStockOrder(a.t.Account, a.t.Action, a.quantity(), a.float("starting_price"), a.float("delta"))
	}))
	r.Register("limit_with_cash_qty", single(func(a *args) order.Order {
		return preset.LimitOrderWithCashQty(a.t.Account, a.t.Action, a.quantity(), a.float("limit"), a.float("cash_qty"))
	}))
	r.Register("limit_if_touched", single(func(a *args) order.Order {
		return preset.LimitIfTouchedOrder(a.t.Account, a.t.Action, a.quantity(), a.float("limit"), a.float("trigger"))
	}))
	r.Register("pegged_to_midpoint", single(func(a *args) order.Order {
		return preset.PeggedToMidpointOrder(a.t.Account, a.t.Action, a.quantity(), a.float("offset"), a.float("limit"))
	}))
	r.Register("stop_limit", single(func(a *args) order.Order {
		return preset.StopLimitOrder(a.t.Account, a.t.Action, a.quantity(), a.float("limit"), a.float("stop"))
	}))
	r.Register("trailing_stop", single(func(a *args) order.Order {
		return preset.TrailingStopOrder(a.t.Account, a.t.Action, a.quantity(), a.float("trailing_percent"), a.float("trail_stop_price"))
	}))
	r.Register("trailing_stop_limit", single(func(a *args) order.Order {
		return preset.TrailingStopLimitOrder(a.t.Account, a.t.Action, a.quantity(), a.float("lmt_price_offset"), a.float("trailing_amount"), a.float("trail_stop_price"))
	}))

	// combos
	r.Register("combo_limit", single(func(a *args) order.Order {
		return preset.ComboLimitOrder(a.t.Account, a.t.Action, a.quantity(), a.float("limit"), a.t.NonGuaranteed)
	}))
	r.Register("combo_market", single(func(a *args) order.Order {
		return preset.ComboMarketOrder(a.t.Account, a.t.Action, a.quantity(), a.t.NonGuaranteed)
	}))
	r.Register("combo_leg_prices", single(func(a *args) order.Order {
		return preset.LimitForComboWithLegPricesOrder(a.t.Account, a.t.Action, a.quantity(), a.legs(), a.t.NonGuaranteed)
	}))
	r.Register("relative_limit_combo", single(func(a *args) order.Order {
		return preset.RelativeLimitComboOrder(a.t.Account, a.t.Action, a.quantity(), a.float("limit"), a.t.NonGuaranteed)
	}))
	r.Register("relative_market_combo", single(func(a *args) order.Order {
		return preset.RelativeMarketComboOrder(a.t.Account, a.t.Action, a.quantity(), a.t.NonGuaranteed)
	}))

	r.Register("volatility", single(func(a *args) order.Order {
		return preset.VolatilityOrder(a.t.Account, a.t.Action, a.quantity(), a.float("volatility"), a.int32("volatility_type"))
	}))
	r.Register("pegged_to_benchmark", single(func(a *args) order.Order {
		return preset.PeggedToBenchmarkOrder(a.t.Account, a.t.Action, a.quantity(),
			a.float("starting_price"), a.flag("decrease"), a.float("pegged_change_amount"),
			a.float("reference_change_amount"), a.int32("reference_con_id"), a.text("reference_exchange"),
			a.float("stock_ref_price"), a.float("lower"), a.float("upper"))
	}))
	r.Register("scale", single(func(a *args) order.Order {
		return preset.ScaleOrder(a.t.Account, a.t.Action, a.quantity(), a.float("limit"),
			a.int32("init_level_size"), a.int32("subs_level_size"), a.float("price_increment"))
	}))

	// compositions
	r.Register("bracket", func(req Request) ([]order.Order, error) {
		a := &args{t: req.Ticket}
		if a.t.OrderID == 0 {
			return nil, fmt.Errorf("%w: bracket needs order_id", ErrMissingParam)
		}
		parent, tp, sl := preset.BracketOrder(a.t.OrderID, a.t.Account, a.t.Action, a.quantity(),
			a.float("limit"), a.float("take_profit"), a.float("stop_loss"))
		if a.err != nil {
			return nil, a.err
		}
		return []order.Order{parent, tp, sl}, nil
	})
	r.Register("market_fhedge", attached(func(a *args, parent order.Order) order.Order {
		return preset.MarketFHedgeOrder(a.t.Account, parent.OrderID, a.t.Action)
	}))
	r.Register("attach_adjustable_stop", attached(func(a *args, parent order.Order) order.Order {
		return preset.AttachAdjustableToStop(parent, a.float("stop"), a.float("trigger"), a.float("adjusted_stop"))
	}))
	r.Register("attach_adjustable_stop_limit", attached(func(a *args, parent order.Order) order.Order {
		return preset.AttachAdjustableToStopLimit(parent, a.float("stop"), a.float("trigger"), a.float("adjusted_stop"), a.float("adjusted_limit"))
	}))
	r.Register("attach_adjustable_trail", attached(func(a *args, parent order.Order) order.Order {
		return preset.AttachAdjustableToTrail(parent, a.float("stop"), a.float("trigger"), a.float("adjusted_stop"),
			a.float("adjusted_trail_amount"), a.int32("trail_unit"))
	}))
}
