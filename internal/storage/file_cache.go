package storage

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"
)

// ProcessedItem records one article that was already enriched in an
// earlier run.
type ProcessedItem struct {
	Hash        string    `json:"hash"`
	Title       string    `json:"title"`
	URL         string    `json:"url"`
	Source      string    `json:"source,omitempty"`
	ProcessedAt time.Time `json:"processed_at"`
}

// FileCache keeps processed-item hashes in a JSON file so repeated runs
// skip articles they already paid enrichment calls for.
type FileCache struct {
	filePath string
	ttlHours int
	items    map[string]ProcessedItem
	mu       sync.RWMutex
}

func NewFileCache(filePath string, ttlHours int) *FileCache {
	return &FileCache{
		filePath: filePath,
		ttlHours: ttlHours,
		items:    make(map[string]ProcessedItem),
	}
}

// ItemHash derives the cache key for an article.
func ItemHash(url, title string) string {
	sum := sha256.Sum256([]byte(url + title))
	return hex.EncodeToString(sum[:])
}

// Load reads the cache file, dropping entries older than the TTL. A
// missing file is an empty cache, not an error.
func (fc *FileCache) Load() error {
	fc.mu.Lock()
	defer fc.mu.Unlock()

	data, err := os.ReadFile(fc.filePath)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read cache file: %w", err)
	}
	if len(data) == 0 {
		return nil
	}

	var items []ProcessedItem
	if err := json.Unmarshal(data, &items); err != nil {
		return fmt.Errorf("failed to unmarshal cache: %w", err)
	}

	cutoff := time.Now().Add(-time.Duration(fc.ttlHours) * time.Hour)
	for _, item := range items {
		if item.ProcessedAt.After(cutoff) {
			fc.items[item.Hash] = item
		}
	}
	return nil
}

// Save writes the current cache back to its file.
func (fc *FileCache) Save() error {
	fc.mu.RLock()
	items := make([]ProcessedItem, 0, len(fc.items))
	for _, item := range fc.items {
		items = append(items, item)
	}
	fc.mu.RUnlock()

	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal cache: %w", err)
	}
	if err := os.WriteFile(fc.filePath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write cache file: %w", err)
	}
	return nil
}

// IsProcessed reports whether the article was enriched within the TTL
// window.
func (fc *FileCache) IsProcessed(url, title string) bool {
	fc.mu.RLock()
	defer fc.mu.RUnlock()
	_, ok := fc.items[ItemHash(url, title)]
	return ok
}

// MarkProcessed records an article as enriched.
func (fc *FileCache) MarkProcessed(url, title, source string) {
	fc.mu.Lock()
	defer fc.mu.Unlock()

	hash := ItemHash(url, title)
	fc.items[hash] = ProcessedItem{
		Hash:        hash,
		Title:       title,
		URL:         url,
		Source:      source,
		ProcessedAt: time.Now(),
	}
}
