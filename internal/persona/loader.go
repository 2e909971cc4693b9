package persona

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// catalogFile is the YAML shape of an external persona catalog.
type catalogFile struct {
	Languages []Language `yaml:"languages"`
}

// LoadCatalog reads a YAML persona catalog from path and builds a Registry
// from it. Unknown fields are rejected so typos in hand-edited catalogs fail
// loudly instead of silently dropping a persona attribute.
func LoadCatalog(path string) (*Registry, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("persona: read catalog: %w", err)
	}
	var f catalogFile
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("persona: parse catalog %s: %w", path, err)
	}
	return NewRegistry(f.Languages)
}
