package alert

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"venue-orders-go/infrastructure/logger"
)

// LoggerChannel 把告警写入结构化日志
type LoggerChannel struct {
	log *logger.Logger
}

func NewLoggerChannel(l *logger.Logger) *LoggerChannel {
	return &LoggerChannel{log: l}
}

func (c *LoggerChannel) Send(a Alert) error {
	lvl := zapcore.InfoLevel
	switch a.Level {
	case LevelWarning:
		lvl = zapcore.WarnLevel
	case LevelError, LevelCritical:
		lvl = zapcore.ErrorLevel
	}
	ce := c.log.Check(lvl, "alert")
	if ce == nil {
		return nil
	}
	fields := []zap.Field{
		zap.String("alert_level", string(a.Level)),
		zap.String("message", a.Message),
		zap.String("source", a.Source),
		zap.Time("alert_ts", a.Timestamp),
	}
	for _, k := range sortedKeys(a.Fields) {
		fields = append(fields, zap.Any(k, a.Fields[k]))
	}
	ce.Write(fields...)
	return nil
}

func (c *LoggerChannel) Name() string { return "log" }

// WriterChannel 输出单行文本，color 为 true 时带 ANSI 颜色
type WriterChannel struct {
	w     io.Writer
	color bool
	mu    sync.Mutex
}

func NewWriterChannel(w io.Writer, color bool) *WriterChannel {
	return &WriterChannel{w: w, color: color}
}

func (c *WriterChannel) Send(a Alert) error {
	level := string(a.Level)
	if c.color {
		level = levelColor(a.Level) + level + "\033[0m"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s %s", level, a.Timestamp.Format("2006-01-02 15:04:05"), a.Message)
	if a.Source != "" {
		fmt.Fprintf(&b, " (%s)", a.Source)
	}
	if len(a.Fields) > 0 {
		b.WriteString(" |")
		for _, k := range sortedKeys(a.Fields) {
			fmt.Fprintf(&b, " %s=%v", k, a.Fields[k])
		}
	}
	b.WriteByte('\n')

	c.mu.Lock()
	defer c.mu.Unlock()
	_, err := io.WriteString(c.w, b.String())
	return err
}

func (c *WriterChannel) Name() string { return "console" }

func levelColor(l Level) string {
	switch l {
	case LevelInfo:
		return "\033[32m" // 绿色
	case LevelWarning:
		return "\033[33m" // 黄色
	case LevelError:
		return "\033[31m" // 红色
	case LevelCritical:
		return "\033[35m" // 紫色
	}
	return ""
}

// RecordingChannel 记录收到的告警，用于测试
type RecordingChannel struct {
	name   string
	err    error
	mu     sync.Mutex
	alerts []Alert
}

func NewRecordingChannel(name string) *RecordingChannel {
	return &RecordingChannel{name: name}
}

// FailWith 让后续 Send 返回 err；nil 恢复正常
func (c *RecordingChannel) FailWith(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.err = err
}

func (c *RecordingChannel) Send(a Alert) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return c.err
	}
	c.alerts = append(c.alerts, a)
	return nil
}

func (c *RecordingChannel) Name() string { return c.name }

func (c *RecordingChannel) Alerts() []Alert {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Alert(nil), c.alerts...)
}

func sortedKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
