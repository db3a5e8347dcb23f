package history

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
)

// SchemaError means the store file is not a JSON array of game objects.
type SchemaError struct {
	Path   string
	Reason string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s must be a list of game objects: %s", e.Path, e.Reason)
}

// Load reads the whole store file.
func Load(path string) ([]GameRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return Decode(path, data)
}

// Decode parses store contents; path is only used in errors.
func Decode(path string, data []byte) ([]GameRecord, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, &SchemaError{Path: path, Reason: "top-level value is not an array"}
	}

	var records []GameRecord
	if err := json.Unmarshal(trimmed, &records); err != nil {
		return nil, &SchemaError{Path: path, Reason: err.Error()}
	}
	if records == nil {
		records = []GameRecord{}
	}

	return records, nil
}

// Encode renders records as an indented JSON array without HTML escaping.
func Encode(records []GameRecord) ([]byte, error) {
	if records == nil {
		records = []GameRecord{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return nil, fmt.Errorf("encode records: %w", err)
	}
	return buf.Bytes(), nil
}

// Save rewrites path with the full record set.
func Save(path string, records []GameRecord) error {
	data, err := Encode(records)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
