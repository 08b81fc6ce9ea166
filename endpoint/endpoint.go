package endpoint

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/viant/jsonrpc"
	"github.com/viant/mcp-proxy/internal/diag"
)

// envelopeRequestId is the id carried by every outbound backend envelope.
// Each round trip is strictly request/response with no pipelining, so the id
// has no correlation meaning and the caller's original id never leaves the
// proxy.
const envelopeRequestId = 1

// Request is the transport agnostic unit of work: one backend method call.
type Request struct {
	Method string
	Params json.RawMessage
}

// Endpoint sends one JSON-RPC request to the backend and returns the parsed
// JSON payload of its reply.
type Endpoint interface {
	RoundTrip(ctx context.Context, request *Request) (json.RawMessage, error)
	Close() error
}

// Config captures the backend selection; exactly one target (URL, Command or
// Socket) is expected, validated by the caller. The value is treated as
// immutable once handed to New.
type Config struct {
	// URL of a remote HTTP MCP endpoint.
	URL string
	// Timeout bounds HTTP round trips; other variants carry no timeout.
	Timeout time.Duration
	// HTTPClient optionally replaces the default client, e.g. with an
	// authorized one.
	HTTPClient *http.Client

	// Command and Args describe a subprocess backend.
	Command string
	Args    []string
	// Stderr receives the subprocess's own diagnostics.
	Stderr io.Writer

	// Socket is a Unix domain socket or FIFO path.
	Socket string
}

// New constructs the endpoint selected by config.
func New(ctx context.Context, config *Config, logger *diag.Logger) (Endpoint, error) {
	switch {
	case config.URL != "":
		return newHTTPEndpoint(config, logger), nil
	case config.Command != "":
		return newProcessEndpoint(ctx, config, logger)
	case config.Socket != "":
		return newSocketEndpoint(config, logger), nil
	}
	return nil, fmt.Errorf("no backend target specified")
}

// encodeEnvelope wraps request into the JSON-RPC envelope written to the
// backend; absent or null params are sent as an empty object.
func encodeEnvelope(request *Request) ([]byte, error) {
	params := request.Params
	if len(params) == 0 || string(params) == "null" {
		params = json.RawMessage(`{}`)
	}
	envelope, err := jsonrpc.NewRequest(request.Method, params)
	if err != nil {
		return nil, err
	}
	envelope.Jsonrpc = jsonrpc.Version
	envelope.Id = envelopeRequestId
	return json.Marshal(envelope)
}

// decodeLine parses one newline delimited backend reply.
func decodeLine(line string) (json.RawMessage, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil, fmt.Errorf("empty response from backend")
	}
	var payload json.RawMessage
	if err := json.Unmarshal([]byte(line), &payload); err != nil {
		return nil, fmt.Errorf("failed to parse backend response %q: %w", line, err)
	}
	return payload, nil
}
