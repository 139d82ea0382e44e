package main

import (
	"encoding/json"
	"fmt"
)

// OutputFormat represents the output format type
type OutputFormat string

const (
	FormatJSON     OutputFormat = "json"
	FormatHuman    OutputFormat = "human"
	FormatMarkdown OutputFormat = "markdown"
)

// formatJSON renders a response as indented JSON.
func formatJSON(resp interface{}) (string, error) {
	data, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return string(data), nil
}
