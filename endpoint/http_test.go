package endpoint

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/viant/mcp-proxy/internal/diag"
)

func TestHTTPEndpoint_RoundTrip(t *testing.T) {
	testCases := []struct {
		description string
		handler     http.HandlerFunc
		expect      string
		expectErr   bool
		sentinel    error
	}{
		{
			description: "plain JSON reply",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(`{"jsonrpc":"2.0","id":1,"result":{"tools":[]}}`))
			},
			expect: `{"jsonrpc":"2.0","id":1,"result":{"tools":[]}}`,
		},
		{
			description: "SSE reply",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "text/event-stream")
				_, _ = w.Write([]byte("event: message\ndata: {\"jsonrpc\":\"2.0\",\"id\":1,\"result\":{\"tools\":[]}}\n\n"))
			},
			expect: `{"jsonrpc":"2.0","id":1,"result":{"tools":[]}}`,
		},
		{
			description: "non-2xx status still parsed",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
				_, _ = w.Write([]byte(`{"jsonrpc":"2.0","id":1,"error":{"code":-32000,"message":"boom"}}`))
			},
			expect: `{"jsonrpc":"2.0","id":1,"error":{"code":-32000,"message":"boom"}}`,
		},
		{
			description: "double escaped content repaired",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"jsonrpc":"2.0","id":1,"result":{"content":[{"type":"text","text":"It\\u0027s"}]}}`))
			},
			expect: `{"jsonrpc":"2.0","id":1,"result":{"content":[{"type":"text","text":"It's"}]}}`,
		},
		{
			description: "empty body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			},
			expectErr: true,
			sentinel:  ErrEmptyBody,
		},
		{
			description: "unparsable body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte("<html>oops</html>"))
			},
			expectErr: true,
		},
	}

	for _, testCase := range testCases {
		server := httptest.NewServer(testCase.handler)
		backend, err := New(context.Background(), &Config{URL: server.URL, Timeout: time.Second}, diag.New(io.Discard, false))
		if !assert.NoError(t, err, testCase.description) {
			server.Close()
			continue
		}
		payload, err := backend.RoundTrip(context.Background(), &Request{Method: "tools/list"})
		if testCase.expectErr {
			assert.Error(t, err, testCase.description)
			if testCase.sentinel != nil {
				assert.ErrorIs(t, err, testCase.sentinel, testCase.description)
			}
		} else if assert.NoError(t, err, testCase.description) {
			assert.JSONEq(t, testCase.expect, string(payload), testCase.description)
		}
		_ = backend.Close()
		server.Close()
	}
}

func TestHTTPEndpoint_WireContract(t *testing.T) {
	var gotMethod, gotContentType, gotAccept, gotBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		gotMethod = r.Method
		gotContentType = r.Header.Get("Content-Type")
		gotAccept = r.Header.Get("Accept")
		gotBody = string(body)
		_, _ = w.Write([]byte(`{"jsonrpc":"2.0","id":1,"result":{}}`))
	}))
	defer server.Close()

	backend, err := New(context.Background(), &Config{URL: server.URL + "/", Timeout: time.Second}, nil)
	if !assert.NoError(t, err) {
		return
	}
	_, err = backend.RoundTrip(context.Background(), &Request{Method: "tools/call", Params: []byte(`{"name":"search","arguments":{"q":"go"}}`)})
	assert.NoError(t, err)
	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, "application/json, text/event-stream", gotAccept)
	assert.JSONEq(t, `{"jsonrpc":"2.0","id":1,"method":"tools/call","params":{"name":"search","arguments":{"q":"go"}}}`, gotBody)
}

func TestHTTPEndpoint_DefaultParams(t *testing.T) {
	var gotBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		_, _ = w.Write([]byte(`{"jsonrpc":"2.0","id":1,"result":{}}`))
	}))
	defer server.Close()

	backend, err := New(context.Background(), &Config{URL: server.URL, Timeout: time.Second}, nil)
	if !assert.NoError(t, err) {
		return
	}
	testCases := []struct {
		description string
		params      []byte
	}{
		{description: "absent params"},
		{description: "null params", params: []byte("null")},
	}
	for _, testCase := range testCases {
		_, err = backend.RoundTrip(context.Background(), &Request{Method: "tools/list", Params: testCase.params})
		assert.NoError(t, err, testCase.description)
		assert.JSONEq(t, `{"jsonrpc":"2.0","id":1,"method":"tools/list","params":{}}`, gotBody, testCase.description)
	}
}

func TestHTTPEndpoint_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	backend, err := New(context.Background(), &Config{URL: server.URL, Timeout: 50 * time.Millisecond}, nil)
	if !assert.NoError(t, err) {
		return
	}
	_, err = backend.RoundTrip(context.Background(), &Request{Method: "tools/list"})
	assert.Error(t, err)
}

func TestNew_NoTarget(t *testing.T) {
	_, err := New(context.Background(), &Config{}, nil)
	assert.Error(t, err)
}
