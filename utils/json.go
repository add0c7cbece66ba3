package utils

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Marshal generic struct to JSON
func MarshalToJSON[T any](input T) (string, error) {
	jsonData, err := json.Marshal(input)
	if err != nil {
		return "", err
	}
	return string(jsonData), nil
}

// WriteJSONFile writes v pretty-printed to dir/<prefix>-<timestamp>.json,
// creating dir when needed, and returns the written path. Report and backup
// files share this so every run artifact is named the same way.
func WriteJSONFile(dir string, prefix string, v any) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create %s: %w", dir, err)
	}
	name := fmt.Sprintf("%s-%s.json", prefix, time.Now().UTC().Format("20060102-150405"))
	path := filepath.Join(dir, name)
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

// ReadJSONFile loads a JSON file into output (the cleanup executor reads
// plan files written by an earlier planning run).
func ReadJSONFile[T any](path string, output *T) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, output)
}
