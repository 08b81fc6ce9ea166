// Package normalize turns raw MCP HTTP response bodies into plain JSON
// payloads. Remote servers answer either with an application/json body or
// with a Server-Sent-Events frame whose first "data: " line carries the
// payload; Payload detects which and extracts the JSON. RepairContent then
// undoes the double escaping some backends apply to tool content text.
//
// Both steps apply to HTTP replies only: subprocess and socket backends
// already speak one JSON value per line.
package normalize
