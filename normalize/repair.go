package normalize

import (
	"encoding/json"
	"strings"
)

// contentRepairer undoes the double escaping some backends apply to tool
// content text. The substitution set is fixed and intentionally not a
// general unescape: only these exact sequences are rewritten.
var contentRepairer = strings.NewReplacer(
	"\\u0027", "'",
	"\\u0060", "`",
	"\\u0022", `"`,
	"\\u003C", "<",
	"\\u003E", ">",
	"\\n", "\n",
)

// RepairContent applies the escape repair to every result.content[*].text
// string of payload. Every other field, including siblings of text, keeps
// its original bytes; a payload without a result.content array is returned
// unchanged.
func RepairContent(payload json.RawMessage) json.RawMessage {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(payload, &envelope); err != nil {
		return payload
	}
	resultRaw, ok := envelope["result"]
	if !ok {
		return payload
	}
	var result map[string]json.RawMessage
	if err := json.Unmarshal(resultRaw, &result); err != nil {
		return payload
	}
	contentRaw, ok := result["content"]
	if !ok {
		return payload
	}
	var content []json.RawMessage
	if err := json.Unmarshal(contentRaw, &content); err != nil {
		return payload
	}
	changed := false
	for i := range content {
		repaired, ok := repairElement(content[i])
		if !ok {
			continue
		}
		content[i] = repaired
		changed = true
	}
	if !changed {
		return payload
	}
	var err error
	if result["content"], err = json.Marshal(content); err != nil {
		return payload
	}
	if envelope["result"], err = json.Marshal(result); err != nil {
		return payload
	}
	updated, err := json.Marshal(envelope)
	if err != nil {
		return payload
	}
	return updated
}

// repairElement rewrites the text field of one content element; ok reports
// whether anything changed.
func repairElement(element json.RawMessage) (json.RawMessage, bool) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(element, &fields); err != nil {
		return nil, false
	}
	textRaw, ok := fields["text"]
	if !ok {
		return nil, false
	}
	var text string
	if err := json.Unmarshal(textRaw, &text); err != nil {
		return nil, false
	}
	repaired := contentRepairer.Replace(text)
	if repaired == text {
		return nil, false
	}
	encoded, err := json.Marshal(repaired)
	if err != nil {
		return nil, false
	}
	fields["text"] = encoded
	updated, err := json.Marshal(fields)
	if err != nil {
		return nil, false
	}
	return updated, true
}
