package metrics

import (
	"context"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"venue-orders-go/infrastructure/monitor"
)

func TestStartServerServesMonitor(t *testing.T) {
	m := monitor.New(monitor.Config{Namespace: "srv", Subsystem: "orders"})
	m.RecordOrderBuilt("stop_limit")

	s, err := StartServer("127.0.0.1:0", m.Handler())
	require.NoError(t, err)
	defer func() { _ = s.Shutdown(context.Background()) }()

	resp, err := http.Get("http://" + s.Addr() + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `srv_orders_orders_built_total{preset="stop_limit"} 1`)
}

func TestStartServerBadAddr(t *testing.T) {
	_, err := StartServer("256.0.0.1:bad", http.NotFoundHandler())
	assert.Error(t, err)
}
