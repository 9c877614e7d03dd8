// Package metrics exposes a Prometheus handler over HTTP.
package metrics

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"
)

// Server 指标 HTTP 服务
type Server struct {
	srv *http.Server
	ln  net.Listener
}

// StartServer 在 addr 上启动指标服务器，/metrics 路径挂载 handler。
func StartServer(addr string, handler http.Handler) (*Server, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", handler)
	s := &Server{
		srv: &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second},
		ln:  ln,
	}
	go func() {
		_ = s.srv.Serve(ln)
	}()
	return s, nil
}

// Addr 返回实际监听地址（addr 为 :0 时有用）
func (s *Server) Addr() string {
	return s.ln.Addr().String()
}

// Shutdown 优雅关闭
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.srv.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
