package categorize

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type taxonomyFile struct {
	Categories []string `yaml:"categories"`
}

// LoadTaxonomy reads a category list override from a YAML file:
//
//	categories:
//	  - Sales
//	  - Rent
func LoadTaxonomy(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read taxonomy: %w", err)
	}
	var tf taxonomyFile
	if err := yaml.Unmarshal(data, &tf); err != nil {
		return nil, fmt.Errorf("parse taxonomy: %w", err)
	}
	if len(tf.Categories) == 0 {
		return nil, fmt.Errorf("taxonomy %s lists no categories", path)
	}
	return tf.Categories, nil
}
