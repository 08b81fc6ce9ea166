package normalize

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrNoData indicates an SSE framed body without any data line.
var ErrNoData = errors.New("no data found in SSE response")

// Payload extracts the JSON payload from a raw HTTP response body. A body
// that starts with "event:" or contains "data:" is treated as SSE framed;
// anything else is parsed as a single JSON value.
func Payload(body string) (json.RawMessage, error) {
	if strings.HasPrefix(body, "event:") || strings.Contains(body, "data:") {
		return ssePayload(body)
	}
	var payload json.RawMessage
	if err := json.Unmarshal([]byte(body), &payload); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w", err)
	}
	return payload, nil
}

// ssePayload scans the frame for the first "data: " line and parses its
// remainder as JSON.
func ssePayload(body string) (json.RawMessage, error) {
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimRight(line, "\r")
		if !strings.HasPrefix(line, "data: ") {
			continue
		}
		data := strings.TrimPrefix(line, "data: ")
		var payload json.RawMessage
		if err := json.Unmarshal([]byte(data), &payload); err != nil {
			return nil, fmt.Errorf("failed to parse SSE data %q: %w", data, err)
		}
		return payload, nil
	}
	return nil, ErrNoData
}
