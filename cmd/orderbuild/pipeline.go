package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"venue-orders-go/config"
	"venue-orders-go/infrastructure/alert"
	"venue-orders-go/infrastructure/logger"
	"venue-orders-go/infrastructure/monitor"
	"venue-orders-go/internal/store"
	"venue-orders-go/order"
	"venue-orders-go/ticket"
)

// pipeline 一次构建：读取工单 → 构建订单 → 日志/指标/持久化 → 输出
// run 与 reconfigure 可在不同 goroutine 中调用。
type pipeline struct {
	mu sync.Mutex

	reg     *ticket.Registry
	log     *logger.Logger
	mon     *monitor.Monitor
	alerts  *alert.Manager // nil 时不告警
	store   *store.Storage // nil 时不持久化
	out     io.Writer
	format  string
	account string
}

// rendered 是一张工单的输出形式
type rendered struct {
	Ticket string        `json:"ticket" yaml:"ticket"`
	Preset string        `json:"preset" yaml:"preset"`
	Orders []order.Order `json:"orders,omitempty" yaml:"orders,omitempty"`
	Error  string        `json:"error,omitempty" yaml:"error,omitempty"`
}

// reconfigure 应用重新加载的配置，下一次 run 生效
func (p *pipeline) reconfigure(cfg config.AppConfig) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.account = cfg.Account
	p.format = cfg.Output
}

func (p *pipeline) run(path string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	f, err := ticket.LoadFile(path)
	if err != nil {
		p.log.LogError(err, map[string]interface{}{"path": path})
		if p.alerts != nil {
			_ = p.alerts.LoadFailed(path, err)
		}
		return err
	}
	f.ApplyDefaults(p.account)
	p.log.LogTicket("tickets_loaded", map[string]interface{}{
		"path":  path,
		"count": len(f.Tickets),
	})

	start := time.Now()
	results := p.reg.Build(f.Tickets)
	p.mon.RecordBuild(time.Since(start))

	book := order.NewBook()
	var failed []string
	for _, res := range results {
		p.record(res, book)
		if res.Err != nil {
			failed = append(failed, res.Ticket.Name)
		}
	}
	if len(failed) > 0 && p.alerts != nil {
		if err := p.alerts.TicketsFailed(path, len(failed), len(results), failed); err != nil {
			p.log.LogError(err, map[string]interface{}{"path": path})
		}
	}
	return p.render(results, book)
}

func (p *pipeline) record(res ticket.Result, book *order.Book) {
	t := res.Ticket
	if res.Err != nil {
		p.mon.RecordTicketFailed()
		p.log.LogTicket("ticket_failed", map[string]interface{}{
			"ticket": t.Name,
			"preset": t.Preset,
			"error":  res.Err.Error(),
		})
		return
	}

	for _, o := range res.Orders {
		p.mon.RecordOrderBuilt(t.Preset)
		for _, c := range o.Conditions {
			p.mon.RecordConditionAttached(c.Type.String())
		}
		p.log.LogOrder("order_built", o.OrderID, map[string]interface{}{
			"ticket":     t.Name,
			"order_type": o.OrderType,
			"action":     o.Action,
		})
		if o.OrderID != 0 {
			book.Set(o)
		}
	}
	p.log.LogTicket("ticket_built", map[string]interface{}{
		"ticket": t.Name,
		"preset": t.Preset,
		"orders": len(res.Orders),
	})

	if p.store != nil {
		p.persist(t.Name, res.Orders)
	}
}

// persist 保存后回读一次，确认记录可以解码
func (p *pipeline) persist(name string, orders []order.Order) {
	if err := p.store.SaveOrders(name, orders); err != nil {
		p.log.LogError(err, map[string]interface{}{"ticket": name})
		return
	}
	back, err := p.store.LoadOrders(name)
	if err != nil {
		var de *order.DecodeError
		if errors.As(err, &de) {
			p.mon.RecordDecodeError(de.Format)
		}
		p.log.LogError(err, map[string]interface{}{"ticket": name})
		return
	}
	p.mon.RecordOrdersPersisted(len(back))
	p.log.LogTicket("order_persisted", map[string]interface{}{
		"ticket": name,
		"count":  len(back),
	})
}

func (p *pipeline) render(results []ticket.Result, book *order.Book) error {
	out := make([]rendered, 0, len(results))
	for _, res := range results {
		r := rendered{Ticket: res.Ticket.Name, Preset: res.Ticket.Preset, Orders: res.Orders}
		if res.Err != nil {
			r.Error = res.Err.Error()
		}
		out = append(out, r)
	}

	switch p.format {
	case "json":
		enc := json.NewEncoder(p.out)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	case "yaml":
		enc := yaml.NewEncoder(p.out)
		enc.SetIndent(2)
		if err := enc.Encode(out); err != nil {
			return err
		}
		return enc.Close()
	default:
		return writeText(p.out, out, book)
	}
}

func writeText(w io.Writer, out []rendered, book *order.Book) error {
	var b strings.Builder
	for _, r := range out {
		fmt.Fprintf(&b, "## %s (%s)\n", r.Ticket, r.Preset)
		if r.Error != "" {
			fmt.Fprintf(&b, "error = %s\n\n", r.Error)
			continue
		}
		for _, o := range r.Orders {
			b.WriteString(o.String())
			b.WriteByte('\n')
			if o.OrderID != 0 {
				if kids := book.Children(o.OrderID); len(kids) > 0 {
					ids := make([]string, len(kids))
					for i, k := range kids {
						ids[i] = order.FormatInteger(k.OrderID)
					}
					fmt.Fprintf(&b, "children = %s\n", strings.Join(ids, ","))
				}
			}
			b.WriteString("\n")
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}
