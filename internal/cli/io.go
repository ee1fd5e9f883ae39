package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"wanderplan/internal/models/request_models"
)

func readBrief(path string) (request_models.TripBrief, error) {
	var brief request_models.TripBrief
	if err := readJSONFile(path, &brief); err != nil {
		return brief, fmt.Errorf("failed to read brief %s: %w", path, err)
	}
	return brief, nil
}

func readAnswers(path string) ([]request_models.ClarifyingAnswer, error) {
	var answers []request_models.ClarifyingAnswer
	if err := readJSONFile(path, &answers); err != nil {
		return nil, fmt.Errorf("failed to read answers %s: %w", path, err)
	}
	return answers, nil
}

func readJSONFile(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

// writeJSON writes v indented to path, or to w when path is empty.
func writeJSON(w io.Writer, path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')

	if path == "" {
		_, err = w.Write(data)
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
