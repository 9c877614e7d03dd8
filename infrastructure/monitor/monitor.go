package monitor

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Monitor Prometheus监控指标收集器，指标注册在独立 registry 上
type Monitor struct {
	registry *prometheus.Registry

	// 订单指标
	ordersBuilt        *prometheus.CounterVec
	conditionsAttached *prometheus.CounterVec
	ordersPersisted    prometheus.Counter

	// 工单指标
	ticketsFailed prometheus.Counter
	buildDuration prometheus.Histogram
	lastBuild     prometheus.Gauge

	// 持久化指标
	decodeErrors *prometheus.CounterVec
}

// Config 监控配置
type Config struct {
	Namespace string
	Subsystem string
}

// DefaultConfig 返回默认配置
func DefaultConfig() Config {
	return Config{
		Namespace: "orders",
		Subsystem: "build",
	}
}

// New 创建新的Monitor实例
func New(cfg Config) *Monitor {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Monitor{
		registry: reg,

		ordersBuilt: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "orders_built_total",
			Help:      "按预设统计的已构建订单数",
		}, []string{"preset"}),
		conditionsAttached: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "conditions_attached_total",
			Help:      "按类型统计的挂载条件数",
		}, []string{"type"}),
		ordersPersisted: factory.NewCounter(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "orders_persisted_total",
			Help:      "写入存储的订单总数",
		}),
		ticketsFailed: factory.NewCounter(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "tickets_failed_total",
			Help:      "构建失败的工单总数",
		}),
		buildDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "build_duration_seconds",
			Help:      "一次工单文件构建耗时（秒）",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0},
		}),
		lastBuild: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "last_build_timestamp_seconds",
			Help:      "最近一次构建完成时间",
		}),
		decodeErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "decode_errors_total",
			Help:      "按格式统计的解码失败数",
		}, []string{"format"}),
	}
}

// RecordOrderBuilt 记录一个由 preset 构建的订单
func (m *Monitor) RecordOrderBuilt(preset string) {
	m.ordersBuilt.WithLabelValues(preset).Inc()
}

// RecordConditionAttached 记录挂载到订单上的条件
func (m *Monitor) RecordConditionAttached(condType string) {
	m.conditionsAttached.WithLabelValues(condType).Inc()
}

func (m *Monitor) RecordOrdersPersisted(n int) {
	m.ordersPersisted.Add(float64(n))
}

func (m *Monitor) RecordTicketFailed() {
	m.ticketsFailed.Inc()
}

// RecordDecodeError format: json, yaml, fields
func (m *Monitor) RecordDecodeError(format string) {
	m.decodeErrors.WithLabelValues(format).Inc()
}

// RecordBuild 记录一次完整构建的耗时与完成时间
func (m *Monitor) RecordBuild(d time.Duration) {
	m.buildDuration.Observe(d.Seconds())
	m.lastBuild.SetToCurrentTime()
}

// Handler 返回HTTP处理器
func (m *Monitor) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry 返回Prometheus注册表
func (m *Monitor) Registry() *prometheus.Registry {
	return m.registry
}
