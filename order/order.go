package order

import (
	"strconv"
	"strings"
)

// Order holds every field any order style may need. Each optional field is
// independently "unset" via its type's sentinel or empty value; no field
// combination is rejected here, the venue does that.
type Order struct {
	SoftDollarTier SoftDollarTier `json:"soft_dollar_tier" yaml:"soft_dollar_tier"`

	// identifiers
	OrderID      int32 `json:"order_id" yaml:"order_id"`
	ClientID     int32 `json:"client_id" yaml:"client_id"`
	PermID       int32 `json:"perm_id" yaml:"perm_id"`
	ParentID     int32 `json:"parent_id" yaml:"parent_id"` // 0 = no parent
	ParentPermID int32 `json:"parent_perm_id" yaml:"parent_perm_id"`

	// main order fields
	Action        string  `json:"action" yaml:"action"`
	TotalQuantity float64 `json:"total_quantity" yaml:"total_quantity"`
	OrderType     string  `json:"order_type" yaml:"order_type"`
	LmtPrice      float64 `json:"lmt_price" yaml:"lmt_price"`
	AuxPrice      float64 `json:"aux_price" yaml:"aux_price"`

	// extended order fields
	Tif             string `json:"tif" yaml:"tif"`
	ActiveStartTime string `json:"active_start_time" yaml:"active_start_time"` // GTC
	ActiveStopTime  string `json:"active_stop_time" yaml:"active_stop_time"`   // GTC
	OcaGroup        string `json:"oca_group" yaml:"oca_group"`
	OcaType         int32  `json:"oca_type" yaml:"oca_type"` // see OCACancelWithBlock..
	OrderRef        string `json:"order_ref" yaml:"order_ref"`
	Transmit        bool   `json:"transmit" yaml:"transmit"`
	BlockOrder      bool   `json:"block_order" yaml:"block_order"`
	SweepToFill     bool   `json:"sweep_to_fill" yaml:"sweep_to_fill"`
	DisplaySize     int32  `json:"display_size" yaml:"display_size"`
	// 0=Default, 1=Double_Bid_Ask, 2=Last, 3=Double_Last, 4=Bid_Ask, 7=Last_or_Bid_Ask, 8=Mid-point
	TriggerMethod                 int32   `json:"trigger_method" yaml:"trigger_method"`
	OutsideRth                    bool    `json:"outside_rth" yaml:"outside_rth"`
	Hidden                        bool    `json:"hidden" yaml:"hidden"`
	GoodAfterTime                 string  `json:"good_after_time" yaml:"good_after_time"` // 20060505 08:00:00 {tz}
	GoodTillDate                  string  `json:"good_till_date" yaml:"good_till_date"`   // 20060505 08:00:00 {tz}
	Rule80A                       string  `json:"rule80a" yaml:"rule80a"`
	AllOrNone                     bool    `json:"all_or_none" yaml:"all_or_none"`
	MinQty                        int32   `json:"min_qty" yaml:"min_qty"`
	PercentOffset                 float64 `json:"percent_offset" yaml:"percent_offset"` // REL only
	OverridePercentageConstraints bool    `json:"override_percentage_constraints" yaml:"override_percentage_constraints"`
	TrailStopPrice                float64 `json:"trail_stop_price" yaml:"trail_stop_price"`
	TrailingPercent               float64 `json:"trailing_percent" yaml:"trailing_percent"`

	// financial advisors
	FaGroup      string `json:"fa_group" yaml:"fa_group"`
	FaProfile    string `json:"fa_profile" yaml:"fa_profile"`
	FaMethod     string `json:"fa_method" yaml:"fa_method"`
	FaPercentage string `json:"fa_percentage" yaml:"fa_percentage"`

	// institutional (non-cleared) only
	DesignatedLocation string `json:"designated_location" yaml:"designated_location"` // when ShortSaleSlot=2
	OpenClose          string `json:"open_close" yaml:"open_close"`                   // O=Open, C=Close
	Origin             Origin `json:"origin" yaml:"origin"`
	ShortSaleSlot      int32  `json:"short_sale_slot" yaml:"short_sale_slot"` // 1 held, 2 delivered from elsewhere
	ExemptCode         int32  `json:"exempt_code" yaml:"exempt_code"`

	// SMART routing only
	DiscretionaryAmt   float64 `json:"discretionary_amt" yaml:"discretionary_amt"`
	ETradeOnly         bool    `json:"e_trade_only" yaml:"e_trade_only"`
	FirmQuoteOnly      bool    `json:"firm_quote_only" yaml:"firm_quote_only"`
	NbboPriceCap       float64 `json:"nbbo_price_cap" yaml:"nbbo_price_cap"`
	OptOutSmartRouting bool    `json:"opt_out_smart_routing" yaml:"opt_out_smart_routing"`

	// BOX exchange orders only
	AuctionStrategy AuctionStrategy `json:"auction_strategy" yaml:"auction_strategy"`
	StartingPrice   float64         `json:"starting_price" yaml:"starting_price"`
	StockRefPrice   float64         `json:"stock_ref_price" yaml:"stock_ref_price"`
	Delta           float64         `json:"delta" yaml:"delta"`

	// pegged to stock and VOL orders
	StockRangeLower float64 `json:"stock_range_lower" yaml:"stock_range_lower"`
	StockRangeUpper float64 `json:"stock_range_upper" yaml:"stock_range_upper"`

	RandomizePrice bool `json:"randomize_price" yaml:"randomize_price"`
	RandomizeSize  bool `json:"randomize_size" yaml:"randomize_size"`

	// volatility orders
	Volatility                     float64 `json:"volatility" yaml:"volatility"`
	VolatilityType                 int32   `json:"volatility_type" yaml:"volatility_type"` // 1=daily, 2=annual
	DeltaNeutralOrderType          string  `json:"delta_neutral_order_type" yaml:"delta_neutral_order_type"`
	DeltaNeutralAuxPrice           float64 `json:"delta_neutral_aux_price" yaml:"delta_neutral_aux_price"`
	DeltaNeutralConID              int32   `json:"delta_neutral_con_id" yaml:"delta_neutral_con_id"`
	DeltaNeutralSettlingFirm       string  `json:"delta_neutral_settling_firm" yaml:"delta_neutral_settling_firm"`
	DeltaNeutralClearingAccount    string  `json:"delta_neutral_clearing_account" yaml:"delta_neutral_clearing_account"`
	DeltaNeutralClearingIntent     string  `json:"delta_neutral_clearing_intent" yaml:"delta_neutral_clearing_intent"`
	DeltaNeutralOpenClose          string  `json:"delta_neutral_open_close" yaml:"delta_neutral_open_close"`
	DeltaNeutralShortSale          bool    `json:"delta_neutral_short_sale" yaml:"delta_neutral_short_sale"`
	DeltaNeutralShortSaleSlot      int32   `json:"delta_neutral_short_sale_slot" yaml:"delta_neutral_short_sale_slot"`
	DeltaNeutralDesignatedLocation string  `json:"delta_neutral_designated_location" yaml:"delta_neutral_designated_location"`
	ContinuousUpdate               bool    `json:"continuous_update" yaml:"continuous_update"`
	ReferencePriceType             int32   `json:"reference_price_type" yaml:"reference_price_type"` // 1=Average, 2=BidOrAsk

	// EFP combo orders
	BasisPoints     float64 `json:"basis_points" yaml:"basis_points"`
	BasisPointsType int32   `json:"basis_points_type" yaml:"basis_points_type"`

	// scale orders
	ScaleInitLevelSize       int32   `json:"scale_init_level_size" yaml:"scale_init_level_size"`
	ScaleSubsLevelSize       int32   `json:"scale_subs_level_size" yaml:"scale_subs_level_size"`
	ScalePriceIncrement      float64 `json:"scale_price_increment" yaml:"scale_price_increment"`
	ScalePriceAdjustValue    float64 `json:"scale_price_adjust_value" yaml:"scale_price_adjust_value"`
	ScalePriceAdjustInterval int32   `json:"scale_price_adjust_interval" yaml:"scale_price_adjust_interval"`
	ScaleProfitOffset        float64 `json:"scale_profit_offset" yaml:"scale_profit_offset"`
	ScaleAutoReset           bool    `json:"scale_auto_reset" yaml:"scale_auto_reset"`
	ScaleInitPosition        int32   `json:"scale_init_position" yaml:"scale_init_position"`
	ScaleInitFillQty         int32   `json:"scale_init_fill_qty" yaml:"scale_init_fill_qty"`
	ScaleRandomPercent       bool    `json:"scale_random_percent" yaml:"scale_random_percent"`
	ScaleTable               string  `json:"scale_table" yaml:"scale_table"`

	// hedge orders
	HedgeType  string `json:"hedge_type" yaml:"hedge_type"`   // D delta, B beta, F FX, P pair
	HedgeParam string `json:"hedge_param" yaml:"hedge_param"` // beta=X or ratio=Y

	// clearing info
	Account         string `json:"account" yaml:"account"`
	SettlingFirm    string `json:"settling_firm" yaml:"settling_firm"`
	ClearingAccount string `json:"clearing_account" yaml:"clearing_account"`
	ClearingIntent  string `json:"clearing_intent" yaml:"clearing_intent"` // "", IB, Away, PTA

	// algo orders
	AlgoStrategy            string     `json:"algo_strategy" yaml:"algo_strategy"`
	AlgoParams              []TagValue `json:"algo_params" yaml:"algo_params,omitempty"`
	SmartComboRoutingParams []TagValue `json:"smart_combo_routing_params" yaml:"smart_combo_routing_params,omitempty"`
	AlgoID                  string     `json:"algo_id" yaml:"algo_id"`

	WhatIf    bool   `json:"what_if" yaml:"what_if"`
	NotHeld   bool   `json:"not_held" yaml:"not_held"`
	Solicited bool   `json:"solicited" yaml:"solicited"`
	ModelCode string `json:"model_code" yaml:"model_code"`

	OrderComboLegs   []OrderComboLeg `json:"order_combo_legs" yaml:"order_combo_legs,omitempty"`
	OrderMiscOptions []TagValue      `json:"order_misc_options" yaml:"order_misc_options,omitempty"`

	// PEG BENCH
	ReferenceContractID          int32   `json:"reference_contract_id" yaml:"reference_contract_id"`
	PeggedChangeAmount           float64 `json:"pegged_change_amount" yaml:"pegged_change_amount"`
	IsPeggedChangeAmountDecrease bool    `json:"is_pegged_change_amount_decrease" yaml:"is_pegged_change_amount_decrease"`
	ReferenceChangeAmount        float64 `json:"reference_change_amount" yaml:"reference_change_amount"`
	ReferenceExchangeID          string  `json:"reference_exchange_id" yaml:"reference_exchange_id"`

	// adjustable stops
	AdjustedOrderType      string  `json:"adjusted_order_type" yaml:"adjusted_order_type"`
	TriggerPrice           float64 `json:"trigger_price" yaml:"trigger_price"`
	AdjustedStopPrice      float64 `json:"adjusted_stop_price" yaml:"adjusted_stop_price"`
	AdjustedStopLimitPrice float64 `json:"adjusted_stop_limit_price" yaml:"adjusted_stop_limit_price"`
	AdjustedTrailingAmount float64 `json:"adjusted_trailing_amount" yaml:"adjusted_trailing_amount"`
	AdjustableTrailingUnit int32   `json:"adjustable_trailing_unit" yaml:"adjustable_trailing_unit"`
	LmtPriceOffset         float64 `json:"lmt_price_offset" yaml:"lmt_price_offset"`

	// conditions; element i's IsConjunction links it to element i+1
	Conditions            []Condition `json:"conditions" yaml:"conditions,omitempty"`
	ConditionsCancelOrder bool        `json:"conditions_cancel_order" yaml:"conditions_cancel_order"`
	ConditionsIgnoreRth   bool        `json:"conditions_ignore_rth" yaml:"conditions_ignore_rth"`

	ExtOperator string  `json:"ext_operator" yaml:"ext_operator"`
	CashQty     float64 `json:"cash_qty" yaml:"cash_qty"`

	// MiFID II
	Mifid2DecisionMaker   string `json:"mifid2_decision_maker" yaml:"mifid2_decision_maker"`
	Mifid2DecisionAlgo    string `json:"mifid2_decision_algo" yaml:"mifid2_decision_algo"`
	Mifid2ExecutionTrader string `json:"mifid2_execution_trader" yaml:"mifid2_execution_trader"`
	Mifid2ExecutionAlgo   string `json:"mifid2_execution_algo" yaml:"mifid2_execution_algo"`

	DontUseAutoPriceForHedge    bool `json:"dont_use_auto_price_for_hedge" yaml:"dont_use_auto_price_for_hedge"`
	IsOmsContainer              bool `json:"is_oms_container" yaml:"is_oms_container"`
	DiscretionaryUpToLimitPrice bool `json:"discretionary_up_to_limit_price" yaml:"discretionary_up_to_limit_price"`

	AutoCancelDate       string  `json:"auto_cancel_date" yaml:"auto_cancel_date"`
	FilledQuantity       float64 `json:"filled_quantity" yaml:"filled_quantity"`
	RefFuturesConID      int32   `json:"ref_futures_con_id" yaml:"ref_futures_con_id"`
	AutoCancelParent     bool    `json:"auto_cancel_parent" yaml:"auto_cancel_parent"`
	Shareholder          string  `json:"shareholder" yaml:"shareholder"`
	ImbalanceOnly        bool    `json:"imbalance_only" yaml:"imbalance_only"`
	RouteMarketableToBbo bool    `json:"route_marketable_to_bbo" yaml:"route_marketable_to_bbo"`
	UsePriceMgmtAlgo     bool    `json:"use_price_mgmt_algo" yaml:"use_price_mgmt_algo"`
}

// Default returns an Order with every optional field unset.
func Default() Order {
	return Order{
		LmtPrice: UnsetDouble,
		AuxPrice: UnsetDouble,

		Transmit:        true,
		MinQty:          UnsetInteger,
		PercentOffset:   UnsetDouble,
		TrailStopPrice:  UnsetDouble,
		TrailingPercent: UnsetDouble,

		OpenClose:  "O",
		Origin:     OriginCustomer,
		ExemptCode: -1,

		ETradeOnly:    true,
		FirmQuoteOnly: true,
		NbboPriceCap:  UnsetDouble,

		AuctionStrategy: AuctionUnset,
		StartingPrice:   UnsetDouble,
		StockRefPrice:   UnsetDouble,
		Delta:           UnsetDouble,
		StockRangeLower: UnsetDouble,
		StockRangeUpper: UnsetDouble,

		Volatility:           UnsetDouble,
		VolatilityType:       UnsetInteger,
		DeltaNeutralAuxPrice: UnsetDouble,
		ReferencePriceType:   UnsetInteger,

		BasisPoints:     UnsetDouble,
		BasisPointsType: UnsetInteger,

		ScaleInitLevelSize:       UnsetInteger,
		ScaleSubsLevelSize:       UnsetInteger,
		ScalePriceIncrement:      UnsetDouble,
		ScalePriceAdjustValue:    UnsetDouble,
		ScalePriceAdjustInterval: UnsetInteger,
		ScaleProfitOffset:        UnsetDouble,
		ScaleInitPosition:        UnsetInteger,
		ScaleInitFillQty:         UnsetInteger,

		TriggerPrice:           UnsetDouble,
		AdjustedStopPrice:      UnsetDouble,
		AdjustedStopLimitPrice: UnsetDouble,
		AdjustedTrailingAmount: UnsetDouble,
		LmtPriceOffset:         UnsetDouble,

		CashQty:        UnsetDouble,
		FilledQuantity: UnsetDouble,
	}
}

// HasParent reports whether the order is attached to a parent order.
func (o *Order) HasParent() bool { return o.ParentID != 0 }

// IsCombo reports whether per-leg prices were supplied.
func (o *Order) IsCombo() bool { return len(o.OrderComboLegs) > 0 }

// IsConditional reports whether the order carries a trigger chain.
func (o *Order) IsConditional() bool { return len(o.Conditions) > 0 }

func (o Order) String() string {
	var b strings.Builder
	line := func(k, v string) {
		b.WriteString(k)
		b.WriteString(" = ")
		b.WriteString(v)
		b.WriteByte('\n')
	}
	line("order_id", strconv.FormatInt(int64(o.OrderID), 10))
	line("client_id", strconv.FormatInt(int64(o.ClientID), 10))
	line("perm_id", strconv.FormatInt(int64(o.PermID), 10))
	line("order_type", o.OrderType)
	line("action", o.Action)
	line("total_quantity", FormatDouble(o.TotalQuantity))
	line("lmt_price", FormatDouble(o.LmtPrice))
	line("aux_price", FormatDouble(o.AuxPrice))
	line("tif", o.Tif)
	line("what_if", strconv.FormatBool(o.WhatIf))
	line("algo_strategy", o.AlgoStrategy)
	line("algo_params", "("+joinStrings(o.AlgoParams, ",")+")")
	line("CMB", "("+joinStrings(o.OrderComboLegs, ",")+")")

	var cond strings.Builder
	for _, c := range o.Conditions {
		fields, err := c.MakeFields()
		if err != nil {
			cond.WriteString("<" + err.Error() + ">|")
			continue
		}
		cond.WriteString(strings.Join(fields, ","))
		cond.WriteByte('|')
	}
	b.WriteString("COND = (" + cond.String() + ")")
	return b.String()
}
