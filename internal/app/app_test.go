package app

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/storefront/internal/config"
	"github.com/dmitrijs2005/storefront/internal/idp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		goleak.IgnoreTopFunction("net/http.(*persistConn).readLoop"),
		goleak.IgnoreTopFunction("net/http.(*persistConn).writeLoop"),
	)
}

func memoryConfig() *config.Config {
	c := &config.Config{}
	c.LoadDefaults()
	c.StorageDriver = config.DriverMemory
	return c
}

func TestNewApp_Memory(t *testing.T) {
	var out, logs bytes.Buffer
	a, err := NewApp(context.Background(), memoryConfig(), strings.NewReader("exit\n"), &out, &logs)
	require.NoError(t, err)

	assert.IsType(t, idp.Local{}, a.provider)
	assert.Nil(t, a.registry)
	assert.Contains(t, logs.String(), "storefront ready")
}

func TestNewApp_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *config.Config)
	}{
		{"bad log level", func(c *config.Config) { c.LogLevel = "loud" }},
		{"bad currency", func(c *config.Config) { c.Currency = "dollars" }},
		{"bad driver", func(c *config.Config) { c.StorageDriver = "floppy" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := memoryConfig()
			tt.mutate(c)
			_, err := NewApp(context.Background(), c, strings.NewReader(""), &bytes.Buffer{}, &bytes.Buffer{})
			assert.Error(t, err)
		})
	}
}

func TestApp_Run(t *testing.T) {
	c := memoryConfig()
	c.LogLevel = "warn"
	c.MetricsAddr = "127.0.0.1:0"

	var out bytes.Buffer
	a, err := NewApp(context.Background(), c, strings.NewReader("add p1 2\ncart\nexit\n"), &out, &bytes.Buffer{})
	require.NoError(t, err)
	require.NotNil(t, a.registry)

	done := make(chan struct{})
	go func() {
		defer close(done)
		a.Run(context.Background())
	}()

	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatal("Run did not return after exit")
	}
	assert.Contains(t, out.String(), "Added to cart.")
	assert.Contains(t, out.String(), "Minimalist Wristwatch")
}

func TestApp_RunStopsOnCancel(t *testing.T) {
	c := memoryConfig()
	c.SeedUsers = false

	// A reader that never yields keeps the REPL blocked.
	pr, pw := io.Pipe()
	defer pw.Close()

	orig := shutdownGrace
	shutdownGrace = 50 * time.Millisecond
	t.Cleanup(func() { shutdownGrace = orig })

	var logs bytes.Buffer
	a, err := NewApp(context.Background(), c, pr, &bytes.Buffer{}, &logs)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		a.Run(ctx)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
	assert.Contains(t, logs.String(), "terminal still busy")
	// Unblock the REPL goroutine so nothing outlives the test.
	_ = pw.Close()
}

// gatedReader hands out line once release is closed and reports when the
// first read starts.
type gatedReader struct {
	line    string
	reading chan struct{}
	release chan struct{}
	served  bool
}

func (r *gatedReader) Read(p []byte) (int, error) {
	if r.served {
		return 0, io.EOF
	}
	close(r.reading)
	<-r.release
	r.served = true
	return copy(p, r.line), nil
}

func TestApp_RunLetsRunningCommandFinish(t *testing.T) {
	c := memoryConfig()
	c.StorageDriver = config.DriverSQLite
	c.SQLitePath = filepath.Join(t.TempDir(), "storefront.db")
	c.SeedUsers = false

	in := &gatedReader{line: "add p1\n", reading: make(chan struct{}), release: make(chan struct{})}
	var out bytes.Buffer
	a, err := NewApp(context.Background(), c, in, &out, &bytes.Buffer{})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		a.Run(ctx)
	}()

	<-in.reading
	cancel()
	time.Sleep(20 * time.Millisecond)
	close(in.release)

	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatal("Run did not return")
	}
	assert.Contains(t, out.String(), "Added to cart.")
	assert.NotContains(t, out.String(), "Error:")
}
