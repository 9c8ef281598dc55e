package schema

import (
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// schemaFile is the on-disk YAML shape for a schema override.
type schemaFile struct {
	Categories []Category `yaml:"categories"`
}

// LoadFile reads a schema definition from a YAML file and builds a Registry
// from it, applying the same duplicate-id validation as the built-in schema.
func LoadFile(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "schema: read %s", path)
	}

	var sf schemaFile
	if err := yaml.Unmarshal(data, &sf); err != nil {
		return nil, eris.Wrapf(err, "schema: parse %s", path)
	}
	if len(sf.Categories) == 0 {
		return nil, eris.Errorf("schema: %s declares no categories", path)
	}

	return New(sf.Categories)
}
