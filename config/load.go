package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"venue-orders-go/infrastructure/logger"
)

// AppConfig holds the main runtime configuration.
type AppConfig struct {
	Env     string        `yaml:"env"`
	Account string        `yaml:"account"` // 工单未指定账户时使用
	Tickets string        `yaml:"tickets"` // 工单文件，相对路径以配置文件所在目录为基准
	Output  string        `yaml:"output"`  // text, json, yaml
	Log     logger.Config `yaml:"log"`
	Store   StoreConfig   `yaml:"store"`
	Metrics MetricsConfig `yaml:"metrics"`
	Watch   WatchSettings `yaml:"watch"`
	Alert   AlertConfig   `yaml:"alert"`
}

type StoreConfig struct {
	Path string `yaml:"path"` // 为空则不持久化
}

type MetricsConfig struct {
	Addr      string `yaml:"addr"` // 为空则不启动指标服务
	Namespace string `yaml:"namespace"`
}

type WatchSettings struct {
	DebounceMs int `yaml:"debounceMs"`
}

// AlertConfig 构建失败告警
type AlertConfig struct {
	Channels        []string `yaml:"channels"` // log, console
	ThrottleSeconds int      `yaml:"throttleSeconds"`
}

// Default returns the values used for keys the file leaves out.
func Default() AppConfig {
	return AppConfig{
		Output:  "text",
		Log:     logger.DefaultConfig(),
		Metrics: MetricsConfig{Namespace: "orders"},
		Watch:   WatchSettings{DebounceMs: 200},
		Alert:   AlertConfig{Channels: []string{"log"}, ThrottleSeconds: 300},
	}
}

// Load reads YAML config from path and applies basic validation.
func Load(path string) (AppConfig, error) {
	cfg, err := read(path)
	if err != nil {
		return cfg, err
	}
	return cfg, Validate(cfg)
}

// LoadWithEnvOverrides loads config, overrides deployment-specific fields
// from env vars if present, then applies overrides (e.g. command-line flags)
// before validating.
func LoadWithEnvOverrides(path string, overrides ...func(*AppConfig)) (AppConfig, error) {
	cfg, err := read(path)
	if err != nil {
		return cfg, err
	}
	if v := os.Getenv("ORDERS_ACCOUNT"); v != "" {
		cfg.Account = v
	}
	if v := os.Getenv("ORDERS_STORE_PATH"); v != "" {
		cfg.Store.Path = v
	}
	if v := os.Getenv("ORDERS_METRICS_ADDR"); v != "" {
		cfg.Metrics.Addr = v
	}
	for _, fn := range overrides {
		fn(&cfg)
	}
	return cfg, Validate(cfg)
}

func read(path string) (AppConfig, error) {
	cfg := Default()
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("parse yaml: %w", err)
	}
	if cfg.Tickets != "" && !filepath.IsAbs(cfg.Tickets) {
		cfg.Tickets = filepath.Join(filepath.Dir(path), cfg.Tickets)
	}
	return cfg, nil
}
