package vdj

import (
	"encoding/json"
	"fmt"
	"os"
)

// WriteJSON serializes v as indented JSON to filename
func WriteJSON(filename string, v interface{}) error {
	output, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize the output: %w", err)
	}

	if err = os.WriteFile(filename, output, 0644); err != nil {
		return fmt.Errorf("failed to write the output to %s: %w", filename, err)
	}
	return nil
}

// ReadJSON deserializes the JSON file at filename into v
func ReadJSON(filename string, v interface{}) error {
	dat, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", filename, err)
	}

	if err = json.Unmarshal(dat, v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", filename, err)
	}
	return nil
}
