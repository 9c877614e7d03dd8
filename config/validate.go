package config

import "fmt"

// ErrInvalid 用于参数验证错误。
type ErrInvalid string

func (e ErrInvalid) Error() string { return string(e) }

// Validate ensures required fields are present.
func Validate(cfg AppConfig) error {
	if cfg.Env == "" {
		return ErrInvalid("env is required")
	}
	if cfg.Tickets == "" {
		return ErrInvalid("tickets path is required")
	}
	switch cfg.Output {
	case "text", "json", "yaml":
	default:
		return ErrInvalid(fmt.Sprintf("output must be text, json or yaml, got %q", cfg.Output))
	}
	if cfg.Metrics.Addr != "" && cfg.Metrics.Namespace == "" {
		return ErrInvalid("metrics.namespace is required when metrics.addr is set")
	}
	if cfg.Watch.DebounceMs < 0 {
		return ErrInvalid("watch.debounceMs must be >= 0")
	}
	if cfg.Alert.ThrottleSeconds < 0 {
		return ErrInvalid("alert.throttleSeconds must be >= 0")
	}
	for _, ch := range cfg.Alert.Channels {
		if ch != "log" && ch != "console" {
			return ErrInvalid(fmt.Sprintf("unknown alert channel %q", ch))
		}
	}
	if cfg.Log.MaxSize < 0 || cfg.Log.MaxBackups < 0 || cfg.Log.MaxAge < 0 {
		return ErrInvalid("log rotation limits must be >= 0")
	}
	return nil
}
