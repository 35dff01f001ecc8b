package http

import (
	"context"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/DealLens/internal/config"
	"github.com/turtacn/DealLens/internal/infrastructure/monitoring/logging"
)

func TestNewServer_Addr(t *testing.T) {
	s := NewServer(config.ServerConfig{Host: "0.0.0.0", Port: 5000}, http.NewServeMux(), logging.NewNopLogger())
	assert.Equal(t, "0.0.0.0:5000", s.Addr())
	assert.Equal(t, 30*time.Second, s.shutdownTimeout)
}

func TestServer_ServeAndStop(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) { io.WriteString(w, "ok") })

	s := NewServer(config.ServerConfig{ShutdownTimeout: time.Second}, mux, logging.NewNopLogger())
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- s.Serve(l) }()

	resp, err := http.Get("http://" + l.Addr().String() + "/health")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, "ok", string(body))

	require.NoError(t, s.Stop(context.Background()))
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Serve did not return after Stop")
	}
}

//Personal.AI order the ending
