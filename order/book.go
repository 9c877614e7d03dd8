package order

import (
	"sort"
	"sync"
)

// Book 记录已构建的订单，按 OrderID 索引，支持并发查询。
type Book struct {
	mu     sync.RWMutex
	orders map[int32]Order
}

func NewBook() *Book {
	return &Book{orders: make(map[int32]Order)}
}

// Set stores o under its OrderID, replacing any earlier order with that id.
func (b *Book) Set(o Order) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.orders[o.OrderID] = o
}

func (b *Book) Get(id int32) (Order, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	o, ok := b.orders[id]
	return o, ok
}

// Children 返回 parent_id 指向 id 的订单（按 OrderID 排序）。
func (b *Book) Children(id int32) []Order {
	b.mu.RLock()
	defer b.mu.RUnlock()
	var res []Order
	for _, o := range b.orders {
		if o.ParentID == id && o.HasParent() {
			res = append(res, o)
		}
	}
	sort.Slice(res, func(i, j int) bool { return res[i].OrderID < res[j].OrderID })
	return res
}

// OCAGroup 返回同一 OCA 组内的订单（按 OrderID 排序）。
func (b *Book) OCAGroup(group string) []Order {
	b.mu.RLock()
	defer b.mu.RUnlock()
	var res []Order
	for _, o := range b.orders {
		if group != "" && o.OcaGroup == group {
			res = append(res, o)
		}
	}
	sort.Slice(res, func(i, j int) bool { return res[i].OrderID < res[j].OrderID })
	return res
}

// List 返回全部订单（拷贝，按 OrderID 排序）。
func (b *Book) List() []Order {
	b.mu.RLock()
	defer b.mu.RUnlock()
	res := make([]Order, 0, len(b.orders))
	for _, o := range b.orders {
		res = append(res, o)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].OrderID < res[j].OrderID })
	return res
}

func (b *Book) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.orders)
}
