package proxy

import "encoding/json"

// unwrapResult extracts the value forwarded to the client from a backend
// reply.  Backends answer the proxy's internal envelope with a full JSON-RPC
// response, so a reply carrying a top-level "result" member is unwrapped to
// that member's value; anything else - including error replies - is forwarded
// whole and surfaces inside the outgoing result.
func unwrapResult(payload json.RawMessage) json.RawMessage {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(payload, &envelope); err != nil {
		return payload
	}
	if result, ok := envelope["result"]; ok {
		return result
	}
	return payload
}
