// Package endpoint implements the backend transports a proxied MCP call can
// be routed through: a remote HTTP endpoint, a subprocess exchanging newline
// delimited JSON-RPC on its standard streams, or a Unix domain socket with a
// named pipe (FIFO) fallback.
//
// Exactly one endpoint is constructed per run, selected by Config; all
// variants expose the same synchronous round-trip contract and the caller
// never inspects which variant is active.
//
// Timeout semantics are deliberately asymmetric: only the HTTP endpoint
// enforces a configurable request timeout, while the process and socket
// endpoints have none and block indefinitely on an unresponsive backend.
package endpoint
