// Command orderbuild builds venue orders from a ticket file.
package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"

	"venue-orders-go/config"
	"venue-orders-go/infrastructure/alert"
	"venue-orders-go/infrastructure/logger"
	"venue-orders-go/infrastructure/monitor"
	"venue-orders-go/internal/store"
	"venue-orders-go/metrics"
	"venue-orders-go/ticket"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}

// run 返回退出码，保证 defer 的清理在退出前执行
func run(argv []string, stdout io.Writer) int {
	fs := flag.NewFlagSet("orderbuild", flag.ContinueOnError)
	cfgPath := fs.String("config", "configs/orderbuild.yaml", "配置文件路径")
	ticketsPath := fs.String("tickets", "", "工单文件，覆盖配置中的 tickets")
	output := fs.String("output", "", "输出格式 text|json|yaml，覆盖配置")
	watch := fs.Bool("watch", false, "工单或配置文件变化时重新构建，直到收到 SIGINT/SIGTERM")
	if err := fs.Parse(argv); err != nil {
		return 2
	}

	overrides := func(c *config.AppConfig) {
		if *ticketsPath != "" {
			c.Tickets = *ticketsPath
		}
		if *output != "" {
			c.Output = *output
		}
	}
	cfg, err := config.LoadWithEnvOverrides(*cfgPath, overrides)
	if err != nil {
		log.Printf("加载配置失败: %v", err)
		return 1
	}

	lg, err := logger.New(cfg.Log)
	if err != nil {
		log.Printf("初始化日志失败: %v", err)
		return 1
	}
	defer lg.Close()

	mon := monitor.New(monitor.Config{Namespace: cfg.Metrics.Namespace, Subsystem: "build"})
	if cfg.Metrics.Addr != "" {
		srv, err := metrics.StartServer(cfg.Metrics.Addr, mon.Handler())
		if err != nil {
			lg.LogError(err, map[string]interface{}{"addr": cfg.Metrics.Addr})
			return 1
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(ctx)
		}()
		lg.Info("metrics server started", zap.String("addr", srv.Addr()))
	}

	var st *store.Storage
	if cfg.Store.Path != "" {
		st, err = store.Open(cfg.Store.Path)
		if err != nil {
			lg.LogError(err, map[string]interface{}{"path": cfg.Store.Path})
			return 1
		}
		defer st.Close()
	}

	var channels []alert.Channel
	for _, name := range cfg.Alert.Channels {
		switch name {
		case "log":
			channels = append(channels, alert.NewLoggerChannel(lg))
		case "console":
			channels = append(channels, alert.NewWriterChannel(os.Stderr, true))
		}
	}

	p := &pipeline{
		reg:     ticket.NewRegistry(),
		log:     lg,
		mon:     mon,
		alerts:  alert.NewManager(channels, time.Duration(cfg.Alert.ThrottleSeconds)*time.Second),
		store:   st,
		out:     stdout,
		format:  cfg.Output,
		account: cfg.Account,
	}
	if err := p.run(cfg.Tickets); err != nil && !*watch {
		return 1
	}
	if !*watch {
		return 0
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	w, err := config.NewWatcher(cfg.Tickets, time.Duration(cfg.Watch.DebounceMs)*time.Millisecond)
	if err != nil {
		lg.LogError(err, map[string]interface{}{"path": cfg.Tickets})
		return 1
	}
	defer w.Close()
	w.OnError = func(err error) {
		lg.LogError(err, map[string]interface{}{"path": cfg.Tickets})
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		err := config.WatchConfig(ctx, *cfgPath, func(next config.AppConfig) {
			if next.Tickets != cfg.Tickets {
				lg.Warn("tickets path change needs a restart", zap.String("path", next.Tickets))
			}
			p.reconfigure(next)
			lg.Info("config reloaded", zap.String("path", *cfgPath))
			_ = p.run(cfg.Tickets)
		}, func(err error) {
			lg.LogError(err, map[string]interface{}{"path": *cfgPath})
		}, overrides)
		if err != nil && !errors.Is(err, context.Canceled) {
			lg.LogError(err, map[string]interface{}{"path": *cfgPath})
		}
	}()

	lg.Info("watching tickets", zap.String("path", cfg.Tickets))
	_ = w.Run(ctx, func() {
		// 失败已记录日志，继续监听
		_ = p.run(cfg.Tickets)
	})
	wg.Wait()
	return 0
}
