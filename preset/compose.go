package preset

import "venue-orders-go/order"

// BracketOrder returns an entry order and two opposite-side exits. Only the
// stop-loss transmits; sending it last activates all three at once. Child
// ids follow the parent+1 / parent+2 convention and are not checked
// against any allocator. Both exits carry account rather than leaving it
// empty.
func BracketOrder(parentOrderID int32, account, action string, quantity, limitPrice, takeProfitLimitPrice, stopLossPrice float64) (parent, takeProfit, stopLoss order.Order) {
	exit := order.OppositeAction(action)

	parent = LimitOrder(account, action, quantity, limitPrice)
	parent.OrderID = parentOrderID
	parent.Transmit = false

	takeProfit = LimitOrder(account, exit, quantity, takeProfitLimitPrice)
	takeProfit.OrderID = parentOrderID + 1
	takeProfit.ParentID = parentOrderID
	takeProfit.Transmit = false

	stopLoss = StopOrder(account, exit, quantity, stopLossPrice)
	stopLoss.OrderID = parentOrderID + 2
	stopLoss.ParentID = parentOrderID
	stopLoss.Transmit = true

	return parent, takeProfit, stopLoss
}

// OneCancelsAll puts every order into the same OCA group. Orders are
// updated in place; the caller must hold exclusive access to them.
func OneCancelsAll(group string, orders []*order.Order, ocaType int32) {
	for _, o := range orders {
		if o == nil {
			continue
		}
		o.OcaGroup = group
		o.OcaType = ocaType
	}
}

// attachedStop 附加止损单：与 parent 方向相反、数量相同。
func attachedStop(parent order.Order, stopPrice, triggerPrice float64, adjustedOrderType string) order.Order {
	o := StopOrder(parent.Account, order.OppositeAction(parent.Action), parent.TotalQuantity, stopPrice)
	o.ParentID = parent.OrderID
	o.TriggerPrice = triggerPrice
	o.AdjustedOrderType = adjustedOrderType
	return o
}

// AttachAdjustableToStop: once triggerPrice is penetrated the attached
// stop becomes a STP at adjustedStopPrice.
func AttachAdjustableToStop(parent order.Order, stopPrice, triggerPrice, adjustedStopPrice float64) order.Order {
	o := attachedStop(parent, stopPrice, triggerPrice, "STP")
	o.AdjustedStopPrice = adjustedStopPrice
	return o
}

func AttachAdjustableToStopLimit(parent order.Order, stopPrice, triggerPrice, adjustedStopPrice, adjustedStopLimitPrice float64) order.Order {
	o := attachedStop(parent, stopPrice, triggerPrice, "STP LMT")
	o.AdjustedStopPrice = adjustedStopPrice
	o.AdjustedStopLimitPrice = adjustedStopLimitPrice
	return o
}

// AttachAdjustableToTrail: trailUnit is order.TrailingUnitAmount or
// order.TrailingUnitPercent.
func AttachAdjustableToTrail(parent order.Order, stopPrice, triggerPrice, adjustedStopPrice, adjustedTrailAmount float64, trailUnit int32) order.Order {
	o := attachedStop(parent, stopPrice, triggerPrice, "TRAIL")
	o.AdjustedStopPrice = adjustedStopPrice
	o.AdjustableTrailingUnit = trailUnit
	o.AdjustedTrailingAmount = adjustedTrailAmount
	return o
}
