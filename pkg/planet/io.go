package planet

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// SaveCatalog writes a catalog to disk as JSON.
func SaveCatalog(path string, c *Catalog) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating directory for catalog: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling catalog: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing catalog: %w", err)
	}

	return nil
}

// LoadCatalog reads a catalog from disk. A bare JSON array of records is
// accepted too and wrapped in a new catalog named after the file.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}

	c, err := ParseCatalog(data)
	if err != nil {
		return nil, err
	}
	if c.Source == "" {
		c.Source = filepath.Base(path)
	}
	return c, nil
}

// ParseCatalog decodes a catalog object or a bare array of records.
func ParseCatalog(data []byte) (*Catalog, error) {
	var records []Record
	if err := json.Unmarshal(data, &records); err == nil {
		return NewCatalog("", records), nil
	}

	var c Catalog
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("unmarshaling catalog: %w", err)
	}
	if c.ID == "" {
		fresh := NewCatalog(c.Source, c.Records)
		c.ID, c.CreatedAt = fresh.ID, fresh.CreatedAt
	}
	if err := ValidateID(c.ID); err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	return &c, nil
}

// LoadRecord reads a single record from disk.
func LoadRecord(path string) (*Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading record: %w", err)
	}

	var r Record
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("unmarshaling record: %w", err)
	}

	return &r, nil
}
