package proxy

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/viant/jsonrpc"
	"github.com/viant/jsonrpc/transport"
	"github.com/viant/mcp-protocol/schema"

	"github.com/viant/mcp-proxy/endpoint"
	"github.com/viant/mcp-proxy/internal/diag"
)

// protocolVersion is the MCP revision the proxy itself speaks; initialize
// replies always carry it regardless of the backend.
const protocolVersion = "2024-11-05"

const (
	serverName    = "mcp-proxy"
	serverVersion = "1.0.0"
)

// initializeResult is the fixed capability descriptor returned for every
// initialize request; the backend is never consulted.
type initializeResult struct {
	ProtocolVersion string                `json:"protocolVersion"`
	Capabilities    serverCapabilities    `json:"capabilities"`
	ServerInfo      schema.Implementation `json:"serverInfo"`
}

type serverCapabilities struct {
	Tools   toolsCapability `json:"tools"`
	Logging struct{}        `json:"logging"`
}

type toolsCapability struct {
	ListChanged bool `json:"listChanged"`
}

// Handler routes one decoded request at a time: initialize is answered
// locally, tool methods round-trip through the backend endpoint, anything
// else is rejected with a method-not-found error.
type Handler struct {
	backend endpoint.Endpoint
	logger  *diag.Logger
}

// ensure interface conformance
var _ transport.Handler = (*Handler)(nil)

// NewHandler returns a handler forwarding tool methods to backend.
func NewHandler(backend endpoint.Endpoint, logger *diag.Logger) *Handler {
	return &Handler{backend: backend, logger: logger}
}

// Serve handles a single request, filling exactly one of response.Result or
// response.Error.
func (h *Handler) Serve(ctx context.Context, request *jsonrpc.Request, response *jsonrpc.Response) {
	switch request.Method {
	case schema.MethodInitialize:
		h.initialize(response)
	case schema.MethodToolsList:
		// tool listings always go out with empty params
		h.forward(ctx, request.Method, nil, response)
	case schema.MethodToolsCall:
		h.forward(ctx, request.Method, request.Params, response)
	default:
		h.logger.Warnf("unknown method: %v", request.Method)
		response.Error = jsonrpc.NewMethodNotFound(fmt.Sprintf("method: %v not found", request.Method), request.Params)
	}
}

func (h *Handler) initialize(response *jsonrpc.Response) {
	h.logger.Infof("handling initialize locally")
	result := initializeResult{
		ProtocolVersion: protocolVersion,
		Capabilities:    serverCapabilities{Tools: toolsCapability{ListChanged: true}},
		ServerInfo:      schema.Implementation{Name: serverName, Version: serverVersion},
	}
	data, err := json.Marshal(result)
	if err != nil {
		response.Error = jsonrpc.NewInternalError(err.Error(), nil)
		return
	}
	response.Result = data
}

// forward round-trips one method call through the backend and unwraps the
// reply; every transport or payload failure surfaces as a single internal
// error.
func (h *Handler) forward(ctx context.Context, method string, params json.RawMessage, response *jsonrpc.Response) {
	h.logger.Infof("forwarding %v", method)
	payload, err := h.backend.RoundTrip(ctx, &endpoint.Request{Method: method, Params: params})
	if err != nil {
		h.logger.Errorf("%v failed: %v", method, err)
		response.Error = jsonrpc.NewInternalError(err.Error(), nil)
		return
	}
	response.Result = unwrapResult(payload)
}

// OnNotification consumes notifications; none are forwarded to the backend.
func (h *Handler) OnNotification(_ context.Context, notification *jsonrpc.Notification) {
	switch notification.Method {
	case schema.MethodNotificationInitialized:
		h.logger.Debugf("client initialized")
	default:
		h.logger.Debugf("ignoring notification: %v", notification.Method)
	}
}
