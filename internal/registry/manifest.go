package registry

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Manifest is a YAML snapshot of a live Django app registry, typically
// exported once from the host project so generation can run without a
// Python runtime.
type Manifest struct {
	Apps []App `yaml:"apps"`
}

// ManifestRegistry reads apps from a manifest file. Relative app paths are
// resolved against the manifest's directory.
type ManifestRegistry struct {
	path string
}

func NewManifestRegistry(path string) *ManifestRegistry {
	return &ManifestRegistry{path: path}
}

func (r *ManifestRegistry) Apps() ([]App, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest '%s': %w", r.path, err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest '%s': %w", r.path, err)
	}

	base := filepath.Dir(r.path)
	for i := range m.Apps {
		if m.Apps[i].Label == "" {
			m.Apps[i].Label = m.Apps[i].Name
		}
		if m.Apps[i].Path != "" && !filepath.IsAbs(m.Apps[i].Path) {
			m.Apps[i].Path = filepath.Join(base, m.Apps[i].Path)
		}
	}
	return m.Apps, nil
}
