// Where: internal/selector/auto.go
// What: CI-build trigger selection.
// Why: A service is updated iff its image basename was built this run.
package selector

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/corvusops/ecs-service-tags/internal/servicemap"
)

// Auto selects every service whose container image basename is a member
// of the build artifact set.
type Auto struct {
	Artifacts map[string]struct{}
}

// NewAuto builds the automatic strategy from a list of built image
// basenames.
func NewAuto(basenames []string) *Auto {
	artifacts := make(map[string]struct{}, len(basenames))
	for _, name := range basenames {
		name = strings.TrimSpace(name)
		if name != "" {
			artifacts[name] = struct{}{}
		}
	}
	return &Auto{Artifacts: artifacts}
}

// ReadArtifacts parses a newline-delimited list of built image basenames.
func ReadArtifacts(r io.Reader) ([]string, error) {
	var names []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			names = append(names, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read build artifacts: %w", err)
	}
	return names, nil
}

// Select fails the run on an empty artifact set and on a selection that
// matches nothing; both mean the CI build and the services document have
// drifted apart.
func (a *Auto) Select(services servicemap.Map) (Selection, error) {
	if len(a.Artifacts) == 0 {
		return nil, &SelectionError{Reason: "build artifact list is empty"}
	}

	selected := Selection{}
	for key, record := range services {
		if _, built := a.Artifacts[record.ImageBasename()]; built {
			selected[key] = struct{}{}
		}
	}
	if len(selected) == 0 {
		return nil, &SelectionError{Reason: fmt.Sprintf(
			"none of %d services match any of %d built images",
			len(services), len(a.Artifacts),
		)}
	}
	return selected, nil
}
