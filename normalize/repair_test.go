package normalize

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

type repairedPayload struct {
	Result struct {
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
		Meta string `json:"meta"`
	} `json:"result"`
}

func TestRepairContent(t *testing.T) {
	payload := json.RawMessage(`{"result":{"content":[{"type":"text","text":"It\\u0027s \\u0022ok\\u0022"}],"meta":"\\u0027"}}`)
	repaired := RepairContent(payload)

	var decoded repairedPayload
	err := json.Unmarshal(repaired, &decoded)
	if !assert.NoError(t, err) {
		return
	}
	assert.Equal(t, `It's "ok"`, decoded.Result.Content[0].Text)
	// the sibling field keeps its escaped bytes
	assert.Equal(t, `\u0027`, decoded.Result.Meta)
	assert.Contains(t, string(repaired), `"meta":"\\u0027"`)
}

func TestRepairContent_Substitutions(t *testing.T) {
	testCases := []struct {
		description string
		text        string
		expect      string
	}{
		{description: "apostrophe", text: `It\u0027s`, expect: "It's"},
		{description: "backtick", text: `\u0060code\u0060`, expect: "`code`"},
		{description: "quote", text: `\u0022ok\u0022`, expect: `"ok"`},
		{description: "angle brackets", text: `\u003Cb\u003E`, expect: "<b>"},
		{description: "newline escape", text: `line1\nline2`, expect: "line1\nline2"},
		{description: "lowercase hex left alone", text: `a\u003cb`, expect: `a\u003cb`},
		{description: "clean text", text: "nothing to do", expect: "nothing to do"},
	}
	for _, testCase := range testCases {
		element, err := json.Marshal(map[string]string{"type": "text", "text": testCase.text})
		if !assert.NoError(t, err, testCase.description) {
			continue
		}
		payload := json.RawMessage(`{"result":{"content":[` + string(element) + `]}}`)
		var decoded repairedPayload
		err = json.Unmarshal(RepairContent(payload), &decoded)
		if !assert.NoError(t, err, testCase.description) {
			continue
		}
		assert.Equal(t, testCase.expect, decoded.Result.Content[0].Text, testCase.description)
	}
}

func TestRepairContent_Untouched(t *testing.T) {
	testCases := []struct {
		description string
		payload     string
	}{
		{description: "no result", payload: `{"tools":[]}`},
		{description: "result without content", payload: `{"result":{"tools":[]}}`},
		{description: "content not an array", payload: `{"result":{"content":"text"}}`},
		{description: "element without text", payload: `{"result":{"content":[{"type":"image"}]}}`},
		{description: "non string text", payload: `{"result":{"content":[{"text":7}]}}`},
		{description: "non object payload", payload: `[1,2,3]`},
		{description: "scalar payload", payload: `42`},
		{description: "clean content", payload: `{"result":{"content":[{"type":"text","text":"plain"}]}}`},
	}
	for _, testCase := range testCases {
		payload := json.RawMessage(testCase.payload)
		repaired := RepairContent(payload)
		assert.Equal(t, testCase.payload, string(repaired), testCase.description)
	}
}
