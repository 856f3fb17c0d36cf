// Where: internal/config/repo.go
// What: Optional repo-level config file.
// Why: Keep cluster and naming knobs out of every CI invocation.
package config

import (
	"errors"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultFile is where a repository keeps its svctags settings.
const DefaultFile = ".svctags.yaml"

// Repo holds repository-level defaults. Flags override these; these
// override built-in defaults.
type Repo struct {
	Cluster         string `yaml:"cluster,omitempty"`
	Region          string `yaml:"region,omitempty"`
	ServicePrefix   string `yaml:"service_prefix,omitempty"`
	Workers         int    `yaml:"workers,omitempty"`
	VerifyManifests bool   `yaml:"verify_manifests,omitempty"`
}

// Load reads a repo config file. A missing file yields the zero config;
// any other failure is reported.
func Load(path string) (Repo, error) {
	if path == "" {
		path = DefaultFile
	}
	payload, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Repo{}, nil
		}
		return Repo{}, err
	}
	var cfg Repo
	if err := yaml.Unmarshal(payload, &cfg); err != nil {
		return Repo{}, err
	}
	return cfg, nil
}
