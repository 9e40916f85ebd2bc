// Package storage persists run output and the cross-run processed-item
// cache as JSON files.
package storage

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/nandinisonar18/Health-Multi-Agent/internal/news"
)

// SaveBatch writes the run's result batch to path as an indented JSON
// array.
func SaveBatch(path string, batch news.Batch) error {
	data, err := json.MarshalIndent(batch, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write results file: %w", err)
	}
	return nil
}
