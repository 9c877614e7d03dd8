// Package preset builds Orders for each order style the venue supports.
// Every preset starts from order.Default() and sets only the fields its
// style needs.
package preset

import "venue-orders-go/order"

func newOrder(account, action string, quantity float64, orderType string) order.Order {
	o := order.Default()
	o.Account = account
	o.Action = action
	o.TotalQuantity = quantity
	o.OrderType = orderType
	return o
}

// AtAuctionOrder 集合竞价单，以 price 参与开盘竞价。
func AtAuctionOrder(account, action string, quantity, price float64) order.Order {
	o := newOrder(account, action, quantity, "MTL")
	o.Tif = "AUC"
	o.LmtPrice = price
	return o
}

func DiscretionaryOrder(account, action string, quantity, price, discretionaryAmt float64) order.Order {
	o := newOrder(account, action, quantity, "LMT")
	o.LmtPrice = price
	o.DiscretionaryAmt = discretionaryAmt
	return o
}

func MarketOrder(account, action string, quantity float64) order.Order {
	return newOrder(account, action, quantity, "MKT")
}

// MarketIfTouchedOrder 价格触及 price 后转为市价单。
func MarketIfTouchedOrder(account, action string, quantity, price float64) order.Order {
	o := newOrder(account, action, quantity, "MIT")
	o.AuxPrice = price
	return o
}

func MarketOnCloseOrder(account, action string, quantity float64) order.Order {
	return newOrder(account, action, quantity, "MOC")
}

func MarketOnOpenOrder(account, action string, quantity float64) order.Order {
	o := newOrder(account, action, quantity, "MKT")
	o.Tif = "OPG"
	return o
}

func MidpointMatchOrder(account, action string, quantity float64) order.Order {
	return newOrder(account, action, quantity, "MKT")
}

// MidpriceOrder fills at the midpoint or better, never worse than priceCap.
func MidpriceOrder(account, action string, quantity, priceCap float64) order.Order {
	o := newOrder(account, action, quantity, "MIDPRICE")
	o.LmtPrice = priceCap
	return o
}

func PeggedToMarketOrder(account, action string, quantity, marketOffset float64) order.Order {
	o := newOrder(account, action, quantity, "PEG MKT")
	o.AuxPrice = marketOffset
	return o
}

func PeggedToStockOrder(account, action string, quantity, delta, stockReferencePrice, startingPrice float64) order.Order {
	o := newOrder(account, action, quantity, "PEG STK")
	o.Delta = delta
	o.StockRefPrice = stockReferencePrice
	o.StartingPrice = startingPrice
	return o
}

func RelativePeggedToPrimaryOrder(account, action string, quantity, priceCap, offsetAmount float64) order.Order {
	o := newOrder(account, action, quantity, "REL")
	o.LmtPrice = priceCap
	o.AuxPrice = offsetAmount
	return o
}

func SweepToFillOrder(account, action string, quantity, price float64) order.Order {
	o := newOrder(account, action, quantity, "LMT")
	o.LmtPrice = price
	o.SweepToFill = true
	return o
}

// AuctionLimitOrder BOX 价格改善竞价。
func AuctionLimitOrder(account, action string, quantity, price float64, strategy order.AuctionStrategy) order.Order {
	o := newOrder(account, action, quantity, "LMT")
	o.LmtPrice = price
	o.AuctionStrategy = strategy
	return o
}

func AuctionPeggedToStockOrder(account, action string, quantity, startingPrice, delta float64) order.Order {
	o := newOrder(account, action, quantity, "PEG STK")
	o.StartingPrice = startingPrice
	o.Delta = delta
	return o
}

func AuctionRelativeOrder(account, action string, quantity, offset float64) order.Order {
	o := newOrder(account, action, quantity, "REL")
	o.AuxPrice = offset
	return o
}

func BlockOrder(account, action string, quantity, price float64) order.Order {
	o := newOrder(account, action, quantity, "LMT")
	o.LmtPrice = price
	o.BlockOrder = true
	return o
}

func BoxTopOrder(account, action string, quantity float64) order.Order {
	return newOrder(account, action, quantity, "BOX TOP")
}

func LimitOrder(account, action string, quantity, limitPrice float64) order.Order {
	o := newOrder(account, action, quantity, "LMT")
	o.LmtPrice = limitPrice
	return o
}

// LimitOrderWithCashQty 按现金金额下单（仅部分外汇/加密品种支持）。
func LimitOrderWithCashQty(account, action string, quantity, limitPrice, cashQty float64) order.Order {
	o := LimitOrder(account, action, quantity, limitPrice)
	o.CashQty = cashQty
	return o
}

func LimitIfTouchedOrder(account, action string, quantity, limitPrice, triggerPrice float64) order.Order {
	o := newOrder(account, action, quantity, "LIT")
	o.LmtPrice = limitPrice
	o.AuxPrice = triggerPrice
	return o
}

func LimitOnCloseOrder(account, action string, quantity, limitPrice float64) order.Order {
	o := newOrder(account, action, quantity, "LOC")
	o.LmtPrice = limitPrice
	return o
}

func LimitOnOpenOrder(account, action string, quantity, limitPrice float64) order.Order {
	o := LimitOrder(account, action, quantity, limitPrice)
	o.Tif = "OPG"
	return o
}

func PassiveRelativeOrder(account, action string, quantity, offset float64) order.Order {
	o := newOrder(account, action, quantity, "PASSV REL")
	o.AuxPrice = offset
	return o
}

func PeggedToMidpointOrder(account, action string, quantity, offset, limitPrice float64) order.Order {
	o := newOrder(account, action, quantity, "PEG MID")
	o.AuxPrice = offset
	o.LmtPrice = limitPrice
	return o
}

func MarketToLimitOrder(account, action string, quantity float64) order.Order {
	return newOrder(account, action, quantity, "MTL")
}

func MarketWithProtectionOrder(account, action string, quantity float64) order.Order {
	return newOrder(account, action, quantity, "MKT PRT")
}

func StopOrder(account, action string, quantity, stopPrice float64) order.Order {
	o := newOrder(account, action, quantity, "STP")
	o.AuxPrice = stopPrice
	return o
}

// StopLimitOrder: stopPrice 触发后以 limitPrice 挂限价单。
func StopLimitOrder(account, action string, quantity, limitPrice, stopPrice float64) order.Order {
	o := newOrder(account, action, quantity, "STP LMT")
	o.LmtPrice = limitPrice
	o.AuxPrice = stopPrice
	return o
}

func StopWithProtectionOrder(account, action string, quantity, stopPrice float64) order.Order {
	o := newOrder(account, action, quantity, "STP PRT")
	o.AuxPrice = stopPrice
	return o
}

func TrailingStopOrder(account, action string, quantity, trailingPercent, trailStopPrice float64) order.Order {
	o := newOrder(account, action, quantity, "TRAIL")
	o.TrailingPercent = trailingPercent
	o.TrailStopPrice = trailStopPrice
	return o
}

// TrailingStopLimitOrder trails by trailingAmount (aux price) and places a
// limit lmtPriceOffset away once the stop is hit.
func TrailingStopLimitOrder(account, action string, quantity, lmtPriceOffset, trailingAmount, trailStopPrice float64) order.Order {
	o := newOrder(account, action, quantity, "TRAIL LIMIT")
	o.TrailStopPrice = trailStopPrice
	o.LmtPriceOffset = lmtPriceOffset
	o.AuxPrice = trailingAmount
	return o
}
