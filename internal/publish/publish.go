// Package publish sends a parse result to a socket.io server so a running
// renderer can pick it up without reading standard output.
package publish

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sync/atomic"
	"time"

	"github.com/WilliamC07/graphics-mdl/internal/ctxlog"
	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"
)

const (
	DefaultNamespace = "/"
	DefaultEvent     = "mdl:parsed"
	DefaultTimeout   = 10 * time.Second
)

// Options configures a publish.
type Options struct {
	URL       string
	Namespace string
	Event     string

	// ReplyEvent, when set, is the event the server sends back once it has
	// received the payload. Emit waits for it before disconnecting. When it
	// is empty the server must acknowledge the emit instead.
	ReplyEvent string

	Timeout            time.Duration
	InsecureSkipVerify bool
}

// WithDefaults returns a copy of o with empty fields filled in.
func (o Options) WithDefaults() Options {
	if o.Namespace == "" {
		o.Namespace = DefaultNamespace
	}
	if o.Event == "" {
		o.Event = DefaultEvent
	}
	if o.Timeout <= 0 {
		o.Timeout = DefaultTimeout
	}
	return o
}

// Validate checks that the options describe a reachable endpoint.
func (o Options) Validate() error {
	if o.URL == "" {
		return errors.New("publish url is required")
	}
	u, err := url.Parse(o.URL)
	if err != nil {
		return fmt.Errorf("failed to parse publish url: %w", err)
	}
	switch u.Scheme {
	case "http", "https", "ws", "wss":
	default:
		return fmt.Errorf("unsupported publish url scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("publish url %q has no host", o.URL)
	}
	return nil
}

// Emit connects to the server described by opts and emits payload, a JSON
// document, under the configured event. With a ReplyEvent it returns once
// the server sends that event; otherwise it returns once the server
// acknowledges the emit.
func Emit(ctx context.Context, opts Options, payload []byte) error {
	opts = opts.WithDefaults()
	if err := opts.Validate(); err != nil {
		return err
	}
	logger := ctxlog.FromContext(ctx).With("url", opts.URL, "namespace", opts.Namespace, "event", opts.Event)
	logger.Debug("Publisher started.")
	defer logger.Debug("Publisher finished.")

	var data any
	if err := json.Unmarshal(payload, &data); err != nil {
		return fmt.Errorf("publish payload is not valid JSON: %w", err)
	}

	var isConnected atomic.Bool
	done := make(chan error, 1)
	finish := func(err error) {
		select {
		case done <- err:
		default:
		}
	}

	opCtx, cancel := context.WithTimeout(ctx, opts.Timeout)
	defer cancel()

	parsedURL, _ := url.Parse(opts.URL)
	baseURL := fmt.Sprintf("%s://%s", parsedURL.Scheme, parsedURL.Host)
	sockOpts := socket.DefaultOptions()
	if parsedURL.Path != "" && parsedURL.Path != "/" {
		sockOpts.SetPath(parsedURL.Path)
	}
	if opts.InsecureSkipVerify {
		logger.Warn("Skipping TLS certificate verification.")
		sockOpts.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}
	sockOpts.SetTransports(types.NewSet(transports.WebSocket))

	manager := socket.NewManager(baseURL, sockOpts)
	io := manager.Socket(opts.Namespace, sockOpts)
	defer func() {
		logger.Debug("Disconnecting socket client.")
		io.Disconnect()
	}()

	io.On(types.EventName("connect"), func(...any) {
		isConnected.Store(true)
		logger.Info("Connected to publish server.", "sid", io.Id())
		if opts.ReplyEvent != "" {
			if err := io.Emit(opts.Event, data); err != nil {
				finish(fmt.Errorf("failed to emit '%s': %w", opts.Event, err))
				return
			}
			logger.Debug("Parse result emitted.", "bytes", len(payload))
			return
		}
		// Disconnect drops packets still queued, so finish only on the ack.
		io.Timeout(opts.Timeout).EmitWithAck(opts.Event, data)(func(_ []any, err error) {
			if err != nil {
				finish(fmt.Errorf("no acknowledgement for '%s': %w", opts.Event, err))
				return
			}
			logger.Debug("Parse result acknowledged.", "bytes", len(payload))
			finish(nil)
		})
	})

	io.On(types.EventName("connect_error"), func(errs ...any) {
		if len(errs) > 0 {
			if err, ok := errs[0].(error); ok {
				finish(fmt.Errorf("failed to connect to %s: %w", opts.URL, err))
				return
			}
		}
		finish(fmt.Errorf("failed to connect to %s", opts.URL))
	})

	if opts.ReplyEvent != "" {
		io.On(types.EventName(opts.ReplyEvent), func(...any) {
			logger.Debug("Publish acknowledged by server.", "reply_event", opts.ReplyEvent)
			finish(nil)
		})
	}

	io.Connect()

	select {
	case <-opCtx.Done():
		if isConnected.Load() {
			if opts.ReplyEvent == "" {
				return fmt.Errorf("timed out after connecting while waiting for acknowledgement of '%s'", opts.Event)
			}
			return fmt.Errorf("timed out after connecting while waiting for event '%s'", opts.ReplyEvent)
		}
		return errors.New("timed out while waiting for initial connection")
	case err := <-done:
		return err
	}
}
