package logger

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"venue-orders-go/monitor/logschema"
)

// Logger 封装zap日志器，提供结构化日志功能
type Logger struct {
	*zap.Logger
	config Config
}

// Config 日志配置
type Config struct {
	Level      string   `yaml:"level"`       // debug, info, warn, error
	Outputs    []string `yaml:"outputs"`     // stdout, file
	OutputFile string   `yaml:"output_file"` // 日志文件路径
	ErrorFile  string   `yaml:"error_file"`  // 错误日志单独文件
	Format     string   `yaml:"format"`      // json 或 console
	MaxSize    int      `yaml:"max_size"`    // 单个日志文件最大MB
	MaxBackups int      `yaml:"max_backups"` // 保留的旧日志文件数
	MaxAge     int      `yaml:"max_age"`     // 保留天数
	Compress   bool     `yaml:"compress"`    // 轮转后压缩
}

// DefaultConfig 返回默认配置
func DefaultConfig() Config {
	return Config{
		Level:      "info",
		Outputs:    []string{"stdout"},
		Format:     "json",
		MaxSize:    100,
		MaxBackups: 3,
		MaxAge:     7,
	}
}

// New 创建新的Logger实例
func New(cfg Config) (*Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %s: %w", cfg.Level, err)
	}

	var encoderConfig zapcore.EncoderConfig
	if cfg.Format == "console" {
		encoderConfig = zap.NewDevelopmentEncoderConfig()
		encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		encoderConfig = zap.NewProductionEncoderConfig()
		encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}

	cores := []zapcore.Core{}

	// 标准输出
	if contains(cfg.Outputs, "stdout") {
		var encoder zapcore.Encoder
		if cfg.Format == "console" {
			encoder = zapcore.NewConsoleEncoder(encoderConfig)
		} else {
			encoder = zapcore.NewJSONEncoder(encoderConfig)
		}
		cores = append(cores, zapcore.NewCore(encoder, zapcore.AddSync(os.Stdout), level))
	}

	// 文件输出（按大小轮转）
	if contains(cfg.Outputs, "file") && cfg.OutputFile != "" {
		cores = append(cores, zapcore.NewCore(
			zapcore.NewJSONEncoder(encoderConfig),
			zapcore.AddSync(cfg.rotating(cfg.OutputFile)),
			level,
		))
	}

	// 错误日志单独文件
	if cfg.ErrorFile != "" {
		cores = append(cores, zapcore.NewCore(
			zapcore.NewJSONEncoder(encoderConfig),
			zapcore.AddSync(cfg.rotating(cfg.ErrorFile)),
			zapcore.ErrorLevel, // 只记录error及以上级别
		))
	}

	return NewWithCore(zapcore.NewTee(cores...), cfg), nil
}

// NewWithCore wraps an existing zap core, e.g. an observer in tests.
func NewWithCore(core zapcore.Core, cfg Config) *Logger {
	return &Logger{
		Logger: zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel)),
		config: cfg,
	}
}

func (c Config) rotating(path string) *lumberjack.Logger {
	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    c.MaxSize,
		MaxBackups: c.MaxBackups,
		MaxAge:     c.MaxAge,
		Compress:   c.Compress,
	}
}

// WithFields 添加字段返回新的logger
func (l *Logger) WithFields(fields map[string]interface{}) *Logger {
	return &Logger{
		Logger: l.Logger.With(toZap(fields)...),
		config: l.config,
	}
}

// LogOrder 记录订单相关事件
func (l *Logger) LogOrder(event string, orderID int32, fields map[string]interface{}) {
	if fields == nil {
		fields = make(map[string]interface{})
	}
	fields["event"] = event
	fields["order_id"] = strconv.FormatInt(int64(orderID), 10)
	l.emit(zapcore.InfoLevel, "order_event", event, fields)
}

// LogTicket 记录工单处理事件
func (l *Logger) LogTicket(event string, fields map[string]interface{}) {
	if fields == nil {
		fields = make(map[string]interface{})
	}
	fields["event"] = event
	l.emit(zapcore.InfoLevel, "ticket_event", event, fields)
}

// LogError 记录错误并附带上下文
func (l *Logger) LogError(err error, context map[string]interface{}) {
	if context == nil {
		context = make(map[string]interface{})
	}
	context["error"] = err.Error()
	l.emit(zapcore.ErrorLevel, "error_event", "", context)
}

// emit 校验事件字段后输出；缺少必需字段时附带 schema_error
func (l *Logger) emit(level zapcore.Level, msg, event string, fields map[string]interface{}) {
	if event != "" {
		if err := logschema.Validate(event, fields); err != nil {
			fields["schema_error"] = err.Error()
		}
	}
	fields["ts"] = time.Now().UTC().Format(time.RFC3339Nano)
	if ce := l.Check(level, msg); ce != nil {
		ce.Write(toZap(fields)...)
	}
}

// Close 关闭日志器
func (l *Logger) Close() error {
	return l.Sync()
}

func toZap(fields map[string]interface{}) []zap.Field {
	zapFields := make([]zap.Field, 0, len(fields))
	for k, v := range fields {
		zapFields = append(zapFields, zap.Any(k, v))
	}
	return zapFields
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
