package utils

import (
	"encoding/json"
	"fmt"
)

// FormatJSON formats a value as JSON with indentation
func FormatJSON(data interface{}) (string, error) {
	bytes, err := json.MarshalIndent(data, "", "    ")
	if err != nil {
		return "", fmt.Errorf("error formatting JSON: %w", err)
	}
	return string(bytes), nil
}

// IndentJSON re-indents raw JSON bytes for human-readable output
func IndentJSON(raw []byte) (string, error) {
	var decoded interface{}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return "", fmt.Errorf("error parsing JSON: %w", err)
	}
	return FormatJSON(decoded)
}
