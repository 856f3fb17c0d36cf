// Where: internal/specs/specs.go
// What: Per-application service spec loading.
// Why: The verify command cross-checks specs against the generated document.
package specs

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"sigs.k8s.io/yaml"
)

// ServiceSpec is one hand-written service definition under
// applications/<app>/services/*.yml.
type ServiceSpec struct {
	Name      string `json:"name"`
	ImageRepo string `json:"image_repo"`

	// Application and File are filled in from the directory layout.
	Application string `json:"-"`
	File        string `json:"-"`
}

// LoadAll walks applications/<app>/services and decodes every YAML spec.
// Applications without a services directory are skipped.
func LoadAll(baseDir string) ([]ServiceSpec, error) {
	applicationsDir := filepath.Join(baseDir, "applications")
	apps, err := os.ReadDir(applicationsDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var out []ServiceSpec
	for _, app := range apps {
		if !app.IsDir() {
			continue
		}
		servicesDir := filepath.Join(applicationsDir, app.Name(), "services")
		entries, err := os.ReadDir(servicesDir)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, err
		}
		names := make([]string, 0, len(entries))
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			ext := filepath.Ext(entry.Name())
			if ext == ".yml" || ext == ".yaml" {
				names = append(names, entry.Name())
			}
		}
		sort.Strings(names)
		for _, name := range names {
			path := filepath.Join(servicesDir, name)
			payload, err := os.ReadFile(path)
			if err != nil {
				return nil, err
			}
			var spec ServiceSpec
			if err := yaml.Unmarshal(payload, &spec); err != nil {
				return nil, fmt.Errorf("decode %s: %w", path, err)
			}
			spec.Application = app.Name()
			spec.File = path
			out = append(out, spec)
		}
	}
	return out, nil
}
