package endpoint

import (
	"context"
	"io"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/viant/mcp-proxy/internal/diag"
)

func TestProcessEndpoint_RoundTrip(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX cat binary")
	}
	backend, err := New(context.Background(), &Config{Command: "cat"}, diag.New(io.Discard, false))
	if !assert.NoError(t, err) {
		return
	}
	defer backend.Close()

	// cat echoes each request line, so the reply is the envelope itself.
	payload, err := backend.RoundTrip(context.Background(), &Request{Method: "tools/list"})
	if !assert.NoError(t, err) {
		return
	}
	assert.JSONEq(t, `{"jsonrpc":"2.0","id":1,"method":"tools/list","params":{}}`, string(payload))

	payload, err = backend.RoundTrip(context.Background(), &Request{Method: "tools/call", Params: []byte(`{"name":"echo"}`)})
	if !assert.NoError(t, err) {
		return
	}
	assert.JSONEq(t, `{"jsonrpc":"2.0","id":1,"method":"tools/call","params":{"name":"echo"}}`, string(payload))
}

func TestProcessEndpoint_Close(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX cat binary")
	}
	backend, err := New(context.Background(), &Config{Command: "cat"}, diag.New(io.Discard, false))
	if !assert.NoError(t, err) {
		return
	}
	assert.NoError(t, backend.Close())
}

func TestProcessEndpoint_DeadChild(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX true binary")
	}
	backend, err := New(context.Background(), &Config{Command: "true"}, diag.New(io.Discard, false))
	if !assert.NoError(t, err) {
		return
	}
	defer backend.Close()
	// let the child exit before talking to it
	time.Sleep(100 * time.Millisecond)
	_, err = backend.RoundTrip(context.Background(), &Request{Method: "tools/list"})
	assert.Error(t, err)
}

func TestProcessEndpoint_SpawnFailure(t *testing.T) {
	_, err := New(context.Background(), &Config{Command: "/definitely/not/a/binary"}, diag.New(io.Discard, false))
	assert.Error(t, err)
}
