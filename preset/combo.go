package preset

import "venue-orders-go/order"

func nonGuaranteed(o *order.Order, on bool) {
	if on {
		o.SmartComboRoutingParams = append(o.SmartComboRoutingParams, order.TagValue{Tag: "NonGuaranteed", Value: "1"})
	}
}

func ComboLimitOrder(account, action string, quantity, limitPrice float64, nonGuaranteedRouting bool) order.Order {
	o := newOrder(account, action, quantity, "LMT")
	o.Tif = "GTC"
	o.LmtPrice = limitPrice
	nonGuaranteed(&o, nonGuaranteedRouting)
	return o
}

func ComboMarketOrder(account, action string, quantity float64, nonGuaranteedRouting bool) order.Order {
	o := newOrder(account, action, quantity, "MKT")
	nonGuaranteed(&o, nonGuaranteedRouting)
	return o
}

// LimitForComboWithLegPricesOrder 为每条腿指定价格，顺序与组合合约的腿一致。
func LimitForComboWithLegPricesOrder(account, action string, quantity float64, legPrices []float64, nonGuaranteedRouting bool) order.Order {
	o := newOrder(account, action, quantity, "LMT")
	o.OrderComboLegs = make([]order.OrderComboLeg, 0, len(legPrices))
	for _, p := range legPrices {
		o.OrderComboLegs = append(o.OrderComboLegs, order.OrderComboLeg{Price: p})
	}
	nonGuaranteed(&o, nonGuaranteedRouting)
	return o
}

func RelativeLimitComboOrder(account, action string, quantity, limitPrice float64, nonGuaranteedRouting bool) order.Order {
	o := newOrder(account, action, quantity, "REL + LMT")
	o.LmtPrice = limitPrice
	nonGuaranteed(&o, nonGuaranteedRouting)
	return o
}

func RelativeMarketComboOrder(account, action string, quantity float64, nonGuaranteedRouting bool) order.Order {
	o := newOrder(account, action, quantity, "REL + MKT")
	nonGuaranteed(&o, nonGuaranteedRouting)
	return o
}
