package tableql

import (
	"os"
	"path/filepath"
)

// Splitter writes a schema model out as one file per declaration, plus an
// _index file naming everything written and what it references.
type Splitter struct {
	OutDir string
	Format string
}

func NewSplitter(outDir, format string) *Splitter {
	return &Splitter{OutDir: outDir, Format: format}
}

type splitIndex struct {
	Tables       []splitIndexEntry `json:"tables"`
	Enumerations []string          `json:"enumerations"`
}

type splitIndexEntry struct {
	Name       string   `json:"name"`
	References []string `json:"references,omitempty"`
}

func (s *Splitter) Split(schema *SchemaFile) error {
	if err := os.MkdirAll(s.OutDir, 0755); err != nil {
		return err
	}
	index := &splitIndex{
		Tables:       make([]splitIndexEntry, 0, len(schema.Tables)),
		Enumerations: make([]string, 0, len(schema.Enumerations)),
	}
	for _, table := range schema.Tables {
		if err := s.write(table.Name, table); err != nil {
			return err
		}
		index.Tables = append(index.Tables, splitIndexEntry{
			Name:       table.Name,
			References: tableReferences(table),
		})
	}
	for _, enum := range schema.Enumerations {
		if err := s.write(enum.Name, enum); err != nil {
			return err
		}
		index.Enumerations = append(index.Enumerations, enum.Name)
	}
	return s.write("_index", index)
}

func (s *Splitter) write(name string, obj interface{}) error {
	data, err := marshalModel(obj, s.Format)
	if err != nil {
		return err
	}
	path := filepath.Join(s.OutDir, name+s.ext())
	Debug("writing ", path)
	return os.WriteFile(path, data, 0660)
}

func (s *Splitter) ext() string {
	if s.Format == "yaml" {
		return ".yaml"
	}
	return ".json"
}

// tableReferences lists referenced declarations in first-use order; self
// references are not dependencies.
func tableReferences(table *SchemaTable) []string {
	var refs []string
	seen := make(map[string]bool)
	for _, col := range table.Columns {
		if col.References == nil || col.References.Table == table.Name {
			continue
		}
		if seen[col.References.Table] {
			continue
		}
		seen[col.References.Table] = true
		refs = append(refs, col.References.Table)
	}
	return refs
}
