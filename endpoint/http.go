package endpoint

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/viant/mcp-proxy/internal/diag"
	"github.com/viant/mcp-proxy/normalize"
)

// ErrEmptyBody indicates a backend HTTP reply whose body is blank after
// trimming.
var ErrEmptyBody = errors.New("empty response body from MCP server")

// httpEndpoint posts one envelope per call to a remote MCP server and
// normalizes whatever comes back (plain JSON or an SSE frame). A non-2xx
// status is not fatal: backends may carry a JSON-RPC error object on any
// status, so the body is still parsed and only a diagnostic is emitted.
type httpEndpoint struct {
	url    string
	client *http.Client
	logger *diag.Logger
}

func newHTTPEndpoint(config *Config, logger *diag.Logger) *httpEndpoint {
	client := config.HTTPClient
	if client == nil {
		client = &http.Client{}
	}
	client.Timeout = config.Timeout
	return &httpEndpoint{
		url:    strings.TrimRight(config.URL, "/"),
		client: client,
		logger: logger,
	}
}

func (e *httpEndpoint) RoundTrip(ctx context.Context, request *Request) (json.RawMessage, error) {
	data, err := encodeEnvelope(request)
	if err != nil {
		return nil, err
	}
	httpRequest, err := http.NewRequestWithContext(ctx, http.MethodPost, e.url, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	httpRequest.Header.Set("Content-Type", "application/json")
	httpRequest.Header.Set("Accept", "application/json, text/event-stream")

	httpResponse, err := e.client.Do(httpRequest)
	if err != nil {
		return nil, fmt.Errorf("failed to send request to MCP server: %w", err)
	}
	defer httpResponse.Body.Close()
	body, err := io.ReadAll(httpResponse.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	text := strings.TrimSpace(string(body))
	if httpResponse.StatusCode < 200 || httpResponse.StatusCode >= 300 {
		e.logger.Warnf("MCP server returned error: %v", httpResponse.Status)
		e.logger.Warnf("Response body: %v", text)
	}
	if text == "" {
		return nil, ErrEmptyBody
	}
	payload, err := normalize.Payload(text)
	if err != nil {
		return nil, fmt.Errorf("status: %v, body: %v: %w", httpResponse.Status, text, err)
	}
	return normalize.RepairContent(payload), nil
}

func (e *httpEndpoint) Close() error {
	return nil
}
