package publish

import (
	"context"
	"encoding/json"
	"net"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sio "github.com/zishang520/socket.io/v2/socket"
)

func TestOptions_WithDefaults(t *testing.T) {
	got := Options{URL: "http://localhost:1"}.WithDefaults()
	assert.Equal(t, DefaultNamespace, got.Namespace)
	assert.Equal(t, DefaultEvent, got.Event)
	assert.Equal(t, DefaultTimeout, got.Timeout)

	kept := Options{Namespace: "/n", Event: "e", Timeout: time.Second}.WithDefaults()
	assert.Equal(t, "/n", kept.Namespace)
	assert.Equal(t, "e", kept.Event)
	assert.Equal(t, time.Second, kept.Timeout)
}

func TestOptions_Validate(t *testing.T) {
	testCases := []struct {
		name      string
		url       string
		expectErr bool
	}{
		{name: "http", url: "http://localhost:3000"},
		{name: "wss with path", url: "wss://example.com/socket.io/"},
		{name: "empty", url: "", expectErr: true},
		{name: "bad scheme", url: "ftp://example.com", expectErr: true},
		{name: "no host", url: "http://", expectErr: true},
		{name: "unparseable", url: "http://[::1", expectErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := Options{URL: tc.url}.Validate()
			if tc.expectErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestEmit_InvalidPayload(t *testing.T) {
	err := Emit(context.Background(), Options{URL: "http://localhost:1"}, []byte("{not json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not valid JSON")
}

func TestEmit_InvalidURL(t *testing.T) {
	err := Emit(context.Background(), Options{URL: "mailto:someone"}, []byte(`{}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported publish url scheme")
}

func TestEmit_UnreachableServer(t *testing.T) {
	// Reserve a port and release it so nothing is listening there.
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	start := time.Now()
	err = Emit(context.Background(), Options{
		URL:     "http://" + addr,
		Timeout: 500 * time.Millisecond,
	}, []byte(`{"symbols":{},"commands":[]}`))
	require.Error(t, err)
	assert.Less(t, time.Since(start), 5*time.Second)
}

// serverMode controls how the test server answers a published result.
type serverMode int

const (
	serverAcks serverMode = iota
	serverReplies
	serverSilent
)

const testReplyEvent = "mdl:ack"

// startServer runs an in-process socket.io server and returns its URL and
// a channel that receives every payload emitted under DefaultEvent.
func startServer(t *testing.T, mode serverMode) (string, <-chan any) {
	t.Helper()
	received := make(chan any, 1)

	server := sio.NewServer(nil, nil)
	server.On("connection", func(clients ...any) {
		client := clients[0].(*sio.Socket)
		client.On(DefaultEvent, func(args ...any) {
			if len(args) == 0 {
				return
			}
			select {
			case received <- args[0]:
			default:
			}
			switch mode {
			case serverAcks:
				if ack, ok := args[len(args)-1].(sio.Ack); ok {
					ack([]any{"ok"}, nil)
				}
			case serverReplies:
				client.Emit(testReplyEvent)
			}
		})
	})

	hs := httptest.NewServer(server.ServeHandler(nil))
	t.Cleanup(hs.Close)
	return hs.URL, received
}

func TestEmit_DeliversPayload(t *testing.T) {
	payload := []byte(`{"symbols":{"k":["knob",2]},"commands":[{"op":"push","args":null},{"op":"sphere","args":[0,0,0,1.5]}]}`)
	var want any
	require.NoError(t, json.Unmarshal(payload, &want))

	testCases := []struct {
		name       string
		mode       serverMode
		replyEvent string
		timeout    time.Duration
		errPart    string
	}{
		{name: "acknowledged emit", mode: serverAcks, timeout: 3 * time.Second},
		{name: "reply event", mode: serverReplies, replyEvent: testReplyEvent, timeout: 3 * time.Second},
		{
			name:       "reply event never sent",
			mode:       serverSilent,
			replyEvent: testReplyEvent,
			timeout:    500 * time.Millisecond,
			errPart:    "timed out after connecting while waiting for event 'mdl:ack'",
		},
		{
			name:    "emit never acknowledged",
			mode:    serverSilent,
			timeout: 500 * time.Millisecond,
			errPart: "acknowledgement",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			url, received := startServer(t, tc.mode)

			err := Emit(context.Background(), Options{
				URL:        url,
				ReplyEvent: tc.replyEvent,
				Timeout:    tc.timeout,
			}, payload)

			if tc.errPart != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.errPart)
			} else {
				require.NoError(t, err)
			}

			select {
			case got := <-received:
				assert.Equal(t, want, got)
			case <-time.After(2 * time.Second):
				t.Fatal("server did not receive the payload")
			}
		})
	}
}
