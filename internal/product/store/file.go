package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
)

// fileStore implements ProductStore on top of a single JSON file that is
// rewritten as a whole on every save. There is no temp-file-then-rename
// step: the tool has exactly one writer and the file stays human-editable.
type fileStore struct {
	path   string
	logger *slog.Logger
}

// NewFileStore creates a ProductStore backed by the JSON file at path.
func NewFileStore(path string, logger *slog.Logger) ProductStore {
	return &fileStore{
		path:   path,
		logger: logger.With("component", "store"),
	}
}

// Load reads the whole data file and decodes every record it can.
// Corruption, permission problems and malformed records degrade to
// whatever subset could be decoded; only a missing file stays silent.
func (s *fileStore) Load() []Product {
	products := make([]Product, 0)

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return products
		}
		s.logger.Error("Unable to read data file", "path", s.path, "error", err)
		return products
	}

	var records []json.RawMessage
	if err := json.Unmarshal(data, &records); err != nil {
		s.logger.Error("Data file is corrupt or not a JSON array", "path", s.path, "error", err)
		return products
	}

	for i, raw := range records {
		product, err := decodeProduct(raw)
		if err != nil {
			s.logger.Warn("Skipping invalid record", "path", s.path, "index", i, "error", err)
			continue
		}
		products = append(products, product)
	}

	return products
}

// Save overwrites the data file with the full collection, pretty-printed
// with two-space indentation and non-ASCII characters kept literal.
func (s *fileStore) Save(products []Product) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(products); err != nil {
		return fmt.Errorf("failed to encode products: %w", err)
	}

	if err := os.WriteFile(s.path, buf.Bytes(), 0o644); err != nil {
		s.logger.Error("Unable to write data file", "path", s.path, "error", err)
		return fmt.Errorf("failed to write %s: %w", s.path, err)
	}
	return nil
}
