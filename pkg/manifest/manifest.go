// Package manifest loads the add-on manifest served at /manifest.json.
package manifest

import (
	_ "embed"
	"errors"
	"fmt"
	"sync"

	"github.com/dtnitsch/family-night/models"
	"gopkg.in/yaml.v3"
)

//go:embed manifest.yaml
var manifestYAML []byte

// Default returns the embedded manifest. It is decoded on first use and the
// same value (or error) is returned for the life of the process.
var Default = sync.OnceValues(func() (models.Manifest, error) {
	return Load(manifestYAML)
})

// Load decodes and validates a manifest document.
func Load(data []byte) (models.Manifest, error) {
	var m models.Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return models.Manifest{}, fmt.Errorf("error decoding manifest: %w", err)
	}
	if err := validate(m); err != nil {
		return models.Manifest{}, err
	}
	return m, nil
}

func validate(m models.Manifest) error {
	var errs []error
	if m.ID == "" {
		errs = append(errs, errors.New("manifest id is required"))
	}
	if m.Version == "" {
		errs = append(errs, errors.New("manifest version is required"))
	}
	if m.Name == "" {
		errs = append(errs, errors.New("manifest name is required"))
	}
	if len(m.Resources) == 0 {
		errs = append(errs, errors.New("manifest must declare at least one resource"))
	}
	return errors.Join(errs...)
}
