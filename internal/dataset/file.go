package dataset

import (
	"fmt"
	"os"

	"github.com/hyperjump/fsaptvis/internal/models"
	"gopkg.in/yaml.v3"
)

type fileRecord struct {
	Key                      string `yaml:"key"`
	models.InteractionRecord `yaml:",inline"`
}

type fileFormat struct {
	Records []fileRecord `yaml:"records"`
}

// Load reads a YAML dataset file and builds a Table from it.
func Load(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset: %w", err)
	}
	return Parse(data)
}

// Parse builds a Table from YAML dataset content.
func Parse(data []byte) (*Table, error) {
	var f fileFormat
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse dataset: %w", err)
	}
	entries := make([]Entry, len(f.Records))
	for i, r := range f.Records {
		entries[i] = Entry{Key: r.Key, Record: r.InteractionRecord}
	}
	return NewTable(entries)
}

// Marshal encodes t in the dataset file format.
func Marshal(t *Table) ([]byte, error) {
	f := fileFormat{Records: make([]fileRecord, 0, t.Len())}
	for _, key := range t.keys {
		f.Records = append(f.Records, fileRecord{Key: key, InteractionRecord: *t.records[key]})
	}
	data, err := yaml.Marshal(&f)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal dataset: %w", err)
	}
	return data, nil
}
