// Package alert 在构建失败时通知运维，支持多通道与限流。
package alert

import (
	"fmt"
	"sync"
	"time"
)

// Level 告警级别
type Level string

const (
	LevelInfo     Level = "INFO"
	LevelWarning  Level = "WARNING"
	LevelError    Level = "ERROR"
	LevelCritical Level = "CRITICAL"
)

// Alert 告警信息
type Alert struct {
	Level     Level
	Message   string
	Source    string // 工单文件路径等，参与限流 key
	Timestamp time.Time
	Fields    map[string]interface{}
}

func (a Alert) key() string {
	return fmt.Sprintf("%s:%s:%s", a.Level, a.Message, a.Source)
}

// Channel 告警通道接口
type Channel interface {
	Send(alert Alert) error
	Name() string
}

// Manager 告警管理器
type Manager struct {
	channels []Channel
	throttle *Throttler
	mu       sync.RWMutex
}

// Throttler 同一 key 在 interval 内只放行一次
type Throttler struct {
	lastSent map[string]time.Time
	interval time.Duration
	now      func() time.Time
	mu       sync.Mutex
}

func NewThrottler(interval time.Duration) *Throttler {
	return &Throttler{
		lastSent: make(map[string]time.Time),
		interval: interval,
		now:      time.Now,
	}
}

// Allow 检查是否允许发送
func (t *Throttler) Allow(key string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	last, ok := t.lastSent[key]
	if !ok || now.Sub(last) >= t.interval {
		t.lastSent[key] = now
		return true
	}
	return false
}

// Clear 清空所有限流记录
func (t *Throttler) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.lastSent = make(map[string]time.Time)
}

// NewManager 创建告警管理器；throttleInterval 为 0 时不限流
func NewManager(channels []Channel, throttleInterval time.Duration) *Manager {
	return &Manager{
		channels: channels,
		throttle: NewThrottler(throttleInterval),
	}
}

// Send 发送到所有通道。被限流时静默返回 nil；全部通道失败才返回错误。
func (m *Manager) Send(a Alert) error {
	if a.Timestamp.IsZero() {
		a.Timestamp = time.Now()
	}
	if !m.throttle.Allow(a.key()) {
		return nil
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	var lastErr error
	ok := 0
	for _, ch := range m.channels {
		if err := ch.Send(a); err != nil {
			lastErr = fmt.Errorf("channel %s failed: %w", ch.Name(), err)
			continue
		}
		ok++
	}
	if ok == 0 && lastErr != nil {
		return lastErr
	}
	return nil
}

// TicketsFailed 报告一次构建中失败的工单
func (m *Manager) TicketsFailed(source string, failed, total int, names []string) error {
	return m.Send(Alert{
		Level:   LevelWarning,
		Message: "tickets failed to build",
		Source:  source,
		Fields: map[string]interface{}{
			"failed":  failed,
			"total":   total,
			"tickets": names,
		},
	})
}

// LoadFailed 报告工单文件无法读取或解析
func (m *Manager) LoadFailed(source string, err error) error {
	return m.Send(Alert{
		Level:   LevelError,
		Message: "ticket file unreadable",
		Source:  source,
		Fields:  map[string]interface{}{"error": err.Error()},
	})
}

func (m *Manager) AddChannel(ch Channel) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.channels = append(m.channels, ch)
}

// Channels 返回通道名称
func (m *Manager) Channels() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	names := make([]string, 0, len(m.channels))
	for _, ch := range m.channels {
		names = append(names, ch.Name())
	}
	return names
}

func (m *Manager) ResetThrottle() {
	m.throttle.Clear()
}
