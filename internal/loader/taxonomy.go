package loader

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/lumipallolabs/corpusmap/internal/model"
)

// LoadTaxonomy reads the category taxonomy from a YAML file:
//
//	categories:
//	  - Benin
//	  - Togo
//	mapping:
//	  "news articles": Benin
//
// A missing path is not an error; records then rely on their own category
// field with the "other" fallback.
func LoadTaxonomy(path string) (model.Taxonomy, error) {
	if path == "" {
		return model.Taxonomy{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return model.Taxonomy{}, nil
		}
		return model.Taxonomy{}, fmt.Errorf("read taxonomy %s: %w", path, err)
	}

	var tax model.Taxonomy
	if err := yaml.Unmarshal(data, &tax); err != nil {
		return model.Taxonomy{}, fmt.Errorf("parse taxonomy %s: %w", path, err)
	}
	return tax, nil
}
