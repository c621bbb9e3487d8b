// Package fallback provides the built-in service set served when the
// remote record source is unreachable or returns nothing. The catalog
// must always render something.
package fallback

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/lustraclean/vitrine/pkg/models"
)

//go:embed services.yaml
var servicesRawData []byte

// servicesFile is the top-level structure of the embedded YAML.
type servicesFile struct {
	Services []models.ServiceRecord `yaml:"services"`
}

// Set provides lazy-loaded access to the embedded fallback services.
type Set struct {
	once    sync.Once
	records []models.ServiceRecord
	err     error
}

// NewSet creates a Set that will parse the embedded YAML on first access.
func NewSet() *Set {
	return &Set{}
}

// Records returns a copy of all fallback service records.
func (s *Set) Records() ([]models.ServiceRecord, error) {
	s.once.Do(s.load)
	if s.err != nil {
		return nil, s.err
	}
	cp := make([]models.ServiceRecord, len(s.records))
	copy(cp, s.records)
	return cp, nil
}

// load parses the embedded YAML service data.
func (s *Set) load() {
	var f servicesFile
	if err := yaml.Unmarshal(servicesRawData, &f); err != nil {
		s.err = fmt.Errorf("fallback: parse yaml: %w", err)
		return
	}
	s.records = f.Services
}
