package agent

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// ParseToolArguments normalizes a tool call's raw argument value into the
// JSON object text handed to tool execution. The wire value is usually a
// JSON string wrapping the payload, but absent values, bare objects, and
// stray scalars all occur in practice. The second return is a parse-error
// message for the model; it is never both empty and accompanied by empty
// parameters.
func ParseToolArguments(toolName string, raw json.RawMessage) (parameters string, parseErr string) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return "{}", ""
	}

	switch trimmed[0] {
	case '{':
		// Already structured; malformed objects surface from tool input
		// validation instead.
		return string(trimmed), ""
	case '"':
		var text string
		if err := json.Unmarshal(trimmed, &text); err != nil {
			return "", invalidArguments(toolName, err, string(trimmed))
		}
		return parseRawText(toolName, text)
	}

	var value any
	if err := json.Unmarshal(trimmed, &value); err != nil {
		return "", invalidArguments(toolName, err, string(trimmed))
	}
	return "", fmt.Sprintf("Error: Tool '%s' arguments must be a JSON string, got %s.", toolName, jsonTypeName(value))
}

func parseRawText(toolName, text string) (string, string) {
	if strings.TrimSpace(text) == "" {
		return "{}", ""
	}

	var probe any
	if err := json.Unmarshal([]byte(text), &probe); err == nil {
		return text, ""
	}

	// Models sometimes emit raw control characters inside string values,
	// which strict JSON rejects. Escape them and retry once.
	escaped := escapeControlChars(text)
	if err := json.Unmarshal([]byte(escaped), &probe); err != nil {
		return "", invalidArguments(toolName, err, text)
	}
	return escaped, ""
}

// escapeControlChars rewrites raw control characters that appear inside
// string literals as \u escapes. Text outside string literals is left
// untouched so syntax errors still read as the model produced them.
func escapeControlChars(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	inString := false
	escaped := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if escaped {
			b.WriteByte(c)
			escaped = false
			continue
		}
		switch {
		case inString && c == '\\':
			b.WriteByte(c)
			escaped = true
		case c == '"':
			inString = !inString
			b.WriteByte(c)
		case inString && c < 0x20:
			fmt.Fprintf(&b, `\u%04x`, c)
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

func invalidArguments(toolName string, err error, payload string) string {
	snippet := strings.TrimSpace(payload)
	if len(snippet) > 200 {
		snippet = snippet[:200] + "...(truncated)"
	}
	return fmt.Sprintf("Error: Invalid JSON arguments for tool '%s': %v. Raw: %s", toolName, err, snippet)
}

func jsonTypeName(value any) string {
	switch value.(type) {
	case bool:
		return "boolean"
	case float64, json.Number:
		return "number"
	case []any:
		return "array"
	default:
		return fmt.Sprintf("%T", value)
	}
}
