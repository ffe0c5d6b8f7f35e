package metrics

import (
	"context"
	"io"
	"net"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := NewRecorder(reg)

	r.ObserveGenerate(3*time.Millisecond, 15000)
	r.ObserveGenerate(time.Millisecond, 200)
	r.ObserveProject(time.Millisecond)
	r.ObserveFrame(10 * time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.regenerations))
	assert.Equal(t, 200.0, testutil.ToFloat64(r.particles))
	n, err := testutil.GatherAndCount(reg)
	require.NoError(t, err)
	assert.Equal(t, 5, n)
}

func TestNilRecorderIsNoop(t *testing.T) {
	var r *Recorder
	r.ObserveGenerate(time.Second, 1)
	r.ObserveProject(time.Second)
	r.ObserveFrame(time.Second)
}

func TestServe(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewRecorder(reg).ObserveProject(time.Millisecond)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Serve(ctx, addr, reg) }()

	var body string
	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + addr + "/metrics")
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		b, _ := io.ReadAll(resp.Body)
		body = string(b)
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)
	assert.True(t, strings.Contains(body, "clifford4d_project_seconds"))

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}
