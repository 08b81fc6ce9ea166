// Package proxy implements a stdio proxy for the Model Context Protocol (MCP).
//
// The proxy reads JSON-RPC 2.0 requests from standard input one line at a
// time and bridges them to exactly one configured backend: a remote HTTP MCP
// server, a subprocess spawned once and driven over its standard streams, or
// a Unix domain socket / named pipe.  The initialize handshake is answered
// locally with a fixed capability descriptor, notifications/initialized is
// consumed silently, tools/list and tools/call round-trip through the
// backend, and any other method is rejected with a JSON-RPC method-not-found
// error.
//
// Exactly one response line is written per id-carrying request; notifications
// produce none.  Processing is strictly sequential - the next input line is
// not read until the current one has been fully resolved.
//
// The package exposes two primary entry-points:
//  1. Run – parses CLI arguments and drives a stdio session to completion and
//  2. New – returns a configured Service for programmatic embedding.
//
// Example:
//
//	svc, _ := proxy.New(ctx, &proxy.Options{URL: "https://example.com/mcp"})
//	defer svc.Close()
//	_ = svc.Run(ctx)
package proxy
