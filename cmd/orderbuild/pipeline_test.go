package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gopkg.in/yaml.v3"

	"venue-orders-go/config"
	"venue-orders-go/infrastructure/alert"
	"venue-orders-go/infrastructure/logger"
	"venue-orders-go/infrastructure/monitor"
	"venue-orders-go/internal/store"
	"venue-orders-go/ticket"
)

const tickets = `
tickets:
  - name: entry
    preset: bracket
    order_id: 100
    action: BUY
    quantity: 100
    params: {limit: 50.5, take_profit: 55, stop_loss: 48}
  - name: gated
    preset: limit
    order_id: 200
    action: SELL
    quantity: 5
    params: {limit: 51}
    conditions:
      - {type: price, con_id: 265598, exchange: SMART, price: 50, is_more: true}
  - name: broken
    preset: no_such_preset
    action: BUY
    quantity: 1
`

type fixture struct {
	p     *pipeline
	out   *bytes.Buffer
	logs  *observer.ObservedLogs
	mon   *monitor.Monitor
	rec   *alert.RecordingChannel
	store *store.Storage
	path  string
}

func newFixture(t *testing.T, format string) *fixture {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "tickets.yaml")
	require.NoError(t, os.WriteFile(path, []byte(tickets), 0o644))

	st, err := store.Open(filepath.Join(dir, "orders.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	core, logs := observer.New(zapcore.DebugLevel)
	mon := monitor.New(monitor.DefaultConfig())
	out := &bytes.Buffer{}
	rec := alert.NewRecordingChannel("rec")
	return &fixture{
		p: &pipeline{
			reg:     ticket.NewRegistry(),
			log:     logger.NewWithCore(core, logger.DefaultConfig()),
			mon:     mon,
			alerts:  alert.NewManager([]alert.Channel{rec}, 0),
			store:   st,
			out:     out,
			format:  format,
			account: "DU1",
		},
		out:   out,
		logs:  logs,
		mon:   mon,
		rec:   rec,
		store: st,
		path:  path,
	}
}

// metricValue 从 registry 中读取单个序列的值
func metricValue(t *testing.T, reg *prometheus.Registry, name string, labels map[string]string) float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
	next:
		for _, m := range mf.GetMetric() {
			for _, lp := range m.GetLabel() {
				if labels[lp.GetName()] != lp.GetValue() {
					continue next
				}
			}
			if c := m.GetCounter(); c != nil {
				return c.GetValue()
			}
		}
	}
	return 0
}

func TestPipelineText(t *testing.T) {
	f := newFixture(t, "text")
	require.NoError(t, f.p.run(f.path))

	text := f.out.String()
	assert.Contains(t, text, "## entry (bracket)\n")
	assert.Contains(t, text, "order_id = 100\n")
	assert.Contains(t, text, "children = 101,102\n")
	assert.Contains(t, text, "## broken (no_such_preset)\nerror = ")
	assert.Contains(t, text, "COND = (1,a,265598,SMART,1,50,0|)")

	reg := f.mon.Registry()
	assert.Equal(t, 3.0, metricValue(t, reg, "orders_build_orders_built_total", map[string]string{"preset": "bracket"}))
	assert.Equal(t, 1.0, metricValue(t, reg, "orders_build_orders_built_total", map[string]string{"preset": "limit"}))
	assert.Equal(t, 1.0, metricValue(t, reg, "orders_build_conditions_attached_total", map[string]string{"type": "price"}))
	assert.Equal(t, 1.0, metricValue(t, reg, "orders_build_tickets_failed_total", nil))
	assert.Equal(t, 4.0, metricValue(t, reg, "orders_build_orders_persisted_total", nil))

	assert.Equal(t, 4, f.logs.FilterField(zap.String("event", "order_built")).Len())
	assert.Equal(t, 1, f.logs.FilterField(zap.String("event", "ticket_failed")).Len())
	assert.Equal(t, 1, f.logs.FilterField(zap.String("event", "tickets_loaded")).Len())
	for _, e := range f.logs.All() {
		_, bad := e.ContextMap()["schema_error"]
		assert.False(t, bad, "event %v missing fields", e.ContextMap()["event"])
	}

	names, err := f.store.Tickets()
	require.NoError(t, err)
	assert.Equal(t, []string{"entry", "gated"}, names)
	saved, err := f.store.LoadOrders("entry")
	require.NoError(t, err)
	require.Len(t, saved, 3)
	assert.Equal(t, "DU1", saved[0].Account)

	alerts := f.rec.Alerts()
	require.Len(t, alerts, 1)
	assert.Equal(t, alert.LevelWarning, alerts[0].Level)
	assert.Equal(t, []string{"broken"}, alerts[0].Fields["tickets"])
	assert.Equal(t, 3, alerts[0].Fields["total"])
}

func TestPipelineJSON(t *testing.T) {
	f := newFixture(t, "json")
	require.NoError(t, f.p.run(f.path))

	var out []rendered
	require.NoError(t, json.Unmarshal(f.out.Bytes(), &out))
	require.Len(t, out, 3)
	assert.Len(t, out[0].Orders, 3)
	assert.Equal(t, int32(101), out[0].Orders[1].OrderID)
	require.Len(t, out[1].Orders[0].Conditions, 1)
	assert.Equal(t, 50.0, out[1].Orders[0].Conditions[0].Price.Price)
	assert.NotEmpty(t, out[2].Error)
	assert.Empty(t, out[2].Orders)
}

func TestPipelineYAML(t *testing.T) {
	f := newFixture(t, "yaml")
	require.NoError(t, f.p.run(f.path))

	var out []rendered
	require.NoError(t, yaml.Unmarshal(f.out.Bytes(), &out))
	require.Len(t, out, 3)
	assert.Equal(t, "gated", out[1].Ticket)
	assert.Equal(t, 51.0, out[1].Orders[0].LmtPrice)
}

func TestPipelineMissingTickets(t *testing.T) {
	f := newFixture(t, "text")
	err := f.p.run(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Equal(t, 1, f.logs.FilterMessage("error_event").Len())
	require.Len(t, f.rec.Alerts(), 1)
	assert.Equal(t, alert.LevelError, f.rec.Alerts()[0].Level)
	assert.Empty(t, f.out.String())
}

func TestPipelineWithoutStore(t *testing.T) {
	f := newFixture(t, "text")
	f.p.store = nil
	require.NoError(t, f.p.run(f.path))
	assert.Equal(t, 0.0, metricValue(t, f.mon.Registry(), "orders_build_orders_persisted_total", nil))
	assert.Zero(t, f.logs.FilterField(zap.String("event", "order_persisted")).Len())
}

func TestPipelineReconfigure(t *testing.T) {
	f := newFixture(t, "text")
	require.NoError(t, f.p.run(f.path))
	assert.Contains(t, f.out.String(), "## entry (bracket)")

	f.out.Reset()
	f.p.reconfigure(config.AppConfig{Account: "DU2", Output: "json"})
	require.NoError(t, f.p.run(f.path))

	var out []rendered
	require.NoError(t, json.Unmarshal(f.out.Bytes(), &out))
	require.Len(t, out, 3)
	assert.Equal(t, "DU2", out[0].Orders[0].Account)
}
