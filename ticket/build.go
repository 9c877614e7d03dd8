package ticket

import (
	"fmt"

	"venue-orders-go/order"
	"venue-orders-go/preset"
)

// Result is the outcome of one ticket. Err is set when the ticket could not
// be built; Orders is then empty.
type Result struct {
	Ticket Ticket
	Orders []order.Order
	Err    error
}

// Build runs every ticket in order. A failing ticket does not stop the
// others, but tickets naming it as parent fail with ErrUnknownParent.
func (r *Registry) Build(tickets []Ticket) []Result {
	results := make([]Result, 0, len(tickets))
	parents := make(map[string]order.Order, len(tickets))

	for _, t := range tickets {
		res := Result{Ticket: t}
		orders, err := r.buildOne(t, parents)
		if err != nil {
			res.Err = fmt.Errorf("ticket %q: %w", t.Name, err)
		} else {
			res.Orders = orders
			if len(orders) > 0 {
				parents[t.Name] = orders[0]
			}
		}
		results = append(results, res)
	}
	return results
}

func (r *Registry) buildOne(t Ticket, parents map[string]order.Order) ([]order.Order, error) {
	req := Request{Ticket: t}
	if t.Parent != "" {
		p, ok := parents[t.Parent]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownParent, t.Parent)
		}
		req.Parent = &p
	}

	orders, err := r.BuildTicket(req)
	if err != nil {
		return nil, err
	}

	// 未由预设分配的订单号按 order_id, order_id+1, ... 依次分配
	if t.OrderID != 0 {
		for i := range orders {
			if orders[i].OrderID == 0 {
				orders[i].OrderID = t.OrderID + int32(i)
			}
		}
	}

	if len(t.Conditions) > 0 {
		for i := range orders {
			orders[i].Conditions = order.CloneConditions(t.Conditions)
			orders[i].ConditionsCancelOrder = t.ConditionsCancelOrder
			orders[i].ConditionsIgnoreRth = t.ConditionsIgnoreRth
		}
	}

	if t.OCA != nil && t.OCA.Group != "" {
		ptrs := make([]*order.Order, len(orders))
		for i := range orders {
			ptrs[i] = &orders[i]
		}
		preset.OneCancelsAll(t.OCA.Group, ptrs, t.OCA.Type)
	}
	return orders, nil
}

// Orders flattens the successful results.
func Orders(results []Result) []order.Order {
	var out []order.Order
	for _, r := range results {
		out = append(out, r.Orders...)
	}
	return out
}

// Failed counts results carrying an error.
func Failed(results []Result) int {
	n := 0
	for _, r := range results {
		if r.Err != nil {
			n++
		}
	}
	return n
}
