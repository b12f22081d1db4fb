package agent

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// wireString wraps payload text the way it travels on the wire: as a JSON
// string token.
func wireString(t *testing.T, payload string) json.RawMessage {
	t.Helper()
	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	return raw
}

func TestParseToolArguments(t *testing.T) {
	tests := []struct {
		name       string
		raw        json.RawMessage
		parameters string
		parseErr   string
	}{
		{
			name:       "absent value",
			raw:        nil,
			parameters: "{}",
		},
		{
			name:       "null value",
			raw:        json.RawMessage(`null`),
			parameters: "{}",
		},
		{
			name:       "bare object passes through",
			raw:        json.RawMessage(`{"a":1}`),
			parameters: `{"a":1}`,
		},
		{
			name:       "object with surrounding whitespace",
			raw:        json.RawMessage("  {\"a\":1}\n"),
			parameters: `{"a":1}`,
		},
		{
			name:       "empty string payload",
			raw:        json.RawMessage(`""`),
			parameters: "{}",
		},
		{
			name:       "whitespace string payload",
			raw:        json.RawMessage(`"  \n  "`),
			parameters: "{}",
		},
		{
			name:     "number value",
			raw:      json.RawMessage(`42`),
			parseErr: "Error: Tool 'read-file' arguments must be a JSON string, got number.",
		},
		{
			name:     "boolean value",
			raw:      json.RawMessage(`true`),
			parseErr: "Error: Tool 'read-file' arguments must be a JSON string, got boolean.",
		},
		{
			name:     "array value",
			raw:      json.RawMessage(`[1,2]`),
			parseErr: "Error: Tool 'read-file' arguments must be a JSON string, got array.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parameters, parseErr := ParseToolArguments("read-file", tt.raw)
			assert.Equal(t, tt.parameters, parameters)
			assert.Equal(t, tt.parseErr, parseErr)
		})
	}
}

func TestParseToolArgumentsStringPayload(t *testing.T) {
	parameters, parseErr := ParseToolArguments("read-file", wireString(t, `{"path":"a.txt"}`))

	assert.Empty(t, parseErr)
	assert.Equal(t, `{"path":"a.txt"}`, parameters)
}

func TestParseToolArgumentsGarbage(t *testing.T) {
	_, parseErr := ParseToolArguments("t", wireString(t, "not json"))

	assert.Contains(t, parseErr, "Error: Invalid JSON arguments for tool 't':")
	assert.Contains(t, parseErr, "Raw: not json")
	assert.NotContains(t, parseErr, "...(truncated)")
}

func TestParseToolArgumentsLongGarbageTruncated(t *testing.T) {
	payload := "{" + strings.Repeat("x", 500)
	_, parseErr := ParseToolArguments("t", wireString(t, payload))

	require.Contains(t, parseErr, "...(truncated)")
	raw := parseErr[strings.Index(parseErr, "Raw: ")+len("Raw: "):]
	assert.Equal(t, payload[:200]+"...(truncated)", raw)
}

func TestParseToolArgumentsControlCharacterRetry(t *testing.T) {
	// A raw newline inside a string value is invalid strict JSON but must
	// still parse on the lenient retry.
	payload := "{\"content\":\"line1\nline2\"}"
	parameters, parseErr := ParseToolArguments("write-file", wireString(t, payload))

	require.Empty(t, parseErr)

	var decoded map[string]string
	require.NoError(t, json.Unmarshal([]byte(parameters), &decoded))
	assert.Equal(t, "line1\nline2", decoded["content"])
}

func TestParseToolArgumentsControlCharacterOutsideString(t *testing.T) {
	// Control characters outside string literals stay untouched; a newline
	// between tokens is legal JSON whitespace.
	payload := "{\n\"a\": 1\n}"
	parameters, parseErr := ParseToolArguments("t", wireString(t, payload))

	assert.Empty(t, parseErr)
	assert.Equal(t, payload, parameters)
}

func TestEscapeControlChars(t *testing.T) {
	assert.Equal(t, `{"a":"x\u0009y"}`, escapeControlChars("{\"a\":\"x\ty\"}"))
	assert.Equal(t, "{\n\"a\":1}", escapeControlChars("{\n\"a\":1}"), "whitespace outside strings is untouched")
	assert.Equal(t, `{"a":"q\\t"}`, escapeControlChars(`{"a":"q\\t"}`), "escape sequences pass through")
}
