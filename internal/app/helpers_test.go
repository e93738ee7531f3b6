package app

import (
	"bytes"
	"context"
	"os"
	"sync"
	"testing"

	"github.com/WilliamC07/graphics-mdl/internal/mdl"
	"github.com/WilliamC07/graphics-mdl/internal/publish"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// stubParser returns a canned result and records what it was asked to parse.
type stubParser struct {
	res   *mdl.Result
	err   error
	calls []string
}

func (p *stubParser) ParseFile(ctx context.Context, filename string) (*mdl.Result, error) {
	p.calls = append(p.calls, filename)
	return p.res, p.err
}

// publishRecorder captures publish calls instead of opening a socket.
type publishRecorder struct {
	err      error
	opts     []publish.Options
	payloads [][]byte
}

func (r *publishRecorder) publish(ctx context.Context, opts publish.Options, payload []byte) error {
	r.opts = append(r.opts, opts)
	r.payloads = append(r.payloads, payload)
	return r.err
}

// setupAppTest creates a new app instance with debug logging captured.
func setupAppTest(t *testing.T, config *Config, parser Parser) (*App, *bytes.Buffer, *SafeBuffer) {
	t.Helper()

	out := &bytes.Buffer{}
	logBuffer := &SafeBuffer{}
	config.LogLevel = "debug"
	testApp := NewApp(out, logBuffer, config, parser)

	t.Cleanup(func() {
		if os.Getenv("MDL_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logBuffer.String())
		}
	})

	return testApp, out, logBuffer
}
