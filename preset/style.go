package preset

import "venue-orders-go/order"

// VolatilityOrder: volatilityPercent 以百分比表示，volatilityType 1=daily 2=annual。
func VolatilityOrder(account, action string, quantity, volatilityPercent float64, volatilityType int32) order.Order {
	o := newOrder(account, action, quantity, "VOL")
	o.Volatility = volatilityPercent
	o.VolatilityType = volatilityType
	return o
}

// PeggedToBenchmarkOrder moves the price by peggedChangeAmount whenever the
// reference contract moves by referenceChangeAmount, while it trades
// between lowerRange and upperRange.
func PeggedToBenchmarkOrder(account, action string, quantity, startingPrice float64, peggedChangeAmountDecrease bool,
	peggedChangeAmount, referenceChangeAmount float64, referenceConID int32, referenceExchange string,
	stockReferencePrice, lowerRange, upperRange float64) order.Order {
	o := newOrder(account, action, quantity, "PEG BENCH")
	o.StartingPrice = startingPrice
	o.IsPeggedChangeAmountDecrease = peggedChangeAmountDecrease
	o.PeggedChangeAmount = peggedChangeAmount
	o.ReferenceChangeAmount = referenceChangeAmount
	o.ReferenceContractID = referenceConID
	o.ReferenceExchangeID = referenceExchange
	o.StockRefPrice = stockReferencePrice
	o.StockRangeLower = lowerRange
	o.StockRangeUpper = upperRange
	return o
}

// ScaleOrder 分层挂单：首层 initLevelSize，之后每层 subsLevelSize，价格步长 priceIncrement。
func ScaleOrder(account, action string, quantity, limitPrice float64, initLevelSize, subsLevelSize int32, priceIncrement float64) order.Order {
	o := LimitOrder(account, action, quantity, limitPrice)
	o.ScaleInitLevelSize = initLevelSize
	o.ScaleSubsLevelSize = subsLevelSize
	o.ScalePriceIncrement = priceIncrement
	return o
}

// WhatIfLimitOrder asks the venue for margin and commission impact only.
func WhatIfLimitOrder(account, action string, quantity, limitPrice float64) order.Order {
	o := LimitOrder(account, action, quantity, limitPrice)
	o.WhatIf = true
	return o
}

// MarketFHedgeOrder FX 对冲单，数量必须为 0。
func MarketFHedgeOrder(account string, parentOrderID int32, action string) order.Order {
	o := MarketOrder(account, action, 0)
	o.ParentID = parentOrderID
	o.HedgeType = "F"
	return o
}
