package catalog

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/jling-NM/CACTI-sub000/pkg/types"
)

//go:embed default_catalog.yaml
var defaultCatalogYAML []byte

// Set bundles the two catalogs a coding session needs.
type Set struct {
	Codes   *Catalog
	Globals *GlobalCatalog
}

// catalogFile is the on-disk layout of a catalog YAML file.
type catalogFile struct {
	Codes   []codeRecord   `yaml:"codes"`
	Globals []globalRecord `yaml:"globals"`
}

type codeRecord struct {
	Value int    `yaml:"value"`
	Name  string `yaml:"name"`
	Label string `yaml:"label"`
}

type globalRecord struct {
	Value   int    `yaml:"value"`
	Name    string `yaml:"name"`
	Label   string `yaml:"label"`
	Default int    `yaml:"default"`
	Min     int    `yaml:"min"`
	Max     int    `yaml:"max"`
}

// Load reads a catalog YAML file and returns sealed catalogs.
func Load(path string) (*Set, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog %s: %w", path, err)
	}
	defer f.Close()

	set, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("load catalog %s: %w", path, err)
	}
	return set, nil
}

// Default returns sealed catalogs built from the embedded default catalog.
func Default() (*Set, error) {
	return Parse(bytes.NewReader(defaultCatalogYAML))
}

// Parse decodes catalog YAML from r. Any conflicting or invalid entry fails
// the whole load.
func Parse(r io.Reader) (*Set, error) {
	var file catalogFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && err != io.EOF {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	set := &Set{Codes: New(), Globals: NewGlobal()}
	for i, rec := range file.Codes {
		code := types.Code{Value: rec.Value, Name: rec.Name, Label: rec.Label}
		if err := set.Codes.AddCode(code); err != nil {
			return nil, fmt.Errorf("codes[%d]: %w", i, err)
		}
	}
	for i, rec := range file.Globals {
		code := types.GlobalCode{
			Code:          types.Code{Value: rec.Value, Name: rec.Name, Label: rec.Label},
			DefaultRating: rec.Default,
			MinRating:     rec.Min,
			MaxRating:     rec.Max,
		}
		if err := set.Globals.AddCode(code); err != nil {
			return nil, fmt.Errorf("globals[%d]: %w", i, err)
		}
	}

	set.Codes.Seal()
	set.Globals.Seal()
	return set, nil
}
