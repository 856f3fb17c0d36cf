// Where: internal/app/verify_mapping.go
// What: Image mapping verification runner.
// Why: Catch drift between hand-written service specs and the generated
//      document before a deploy trusts it.
package app

import (
	"fmt"
	"io"
	"strings"

	"github.com/corvusops/ecs-service-tags/internal/servicemap"
	"github.com/corvusops/ecs-service-tags/internal/specs"
	"github.com/corvusops/ecs-service-tags/internal/ui"
)

func runVerify(cli CLI, _ Dependencies, out io.Writer) int {
	cmd := cli.Verify
	console := ui.New(out)

	document, err := servicemap.LoadDocument(cmd.ServicesFile)
	if err != nil {
		return exitWithError(out, err)
	}
	serviceSpecs, err := specs.LoadAll(cmd.BaseDir)
	if err != nil {
		return exitWithError(out, err)
	}

	console.Header("🔍", "Verifying image mapping:")
	console.Item("Services", len(document.Services))
	console.Item("Specs", len(serviceSpecs))

	issues := verifyMapping(document.Services, serviceSpecs)
	if len(issues) > 0 {
		for _, issue := range issues {
			console.ItemPlain(issue)
		}
		return exitWithError(out, fmt.Errorf("image mapping verification found %d issues", len(issues)))
	}

	console.Success("All services map to their declared image repositories")
	return 0
}

// verifyMapping cross-checks specs against the generated document:
// every spec needs an image_repo, every spec needs a document entry, and
// the entry's container_image must end in the declared repository.
func verifyMapping(services servicemap.Map, serviceSpecs []specs.ServiceSpec) []string {
	var issues []string

	specKeys := map[string]specs.ServiceSpec{}
	for _, spec := range serviceSpecs {
		key := spec.Application + "::" + spec.Name
		if spec.Name == "" {
			issues = append(issues, fmt.Sprintf("%s: spec has no name", spec.File))
			continue
		}
		if spec.ImageRepo == "" {
			issues = append(issues, fmt.Sprintf("%s: spec %q has no image_repo", spec.File, key))
			continue
		}
		specKeys[key] = spec

		record, ok := services[key]
		if !ok {
			issues = append(issues, fmt.Sprintf("spec %q has no entry in the services document", key))
			continue
		}
		if record.ContainerImage != spec.ImageRepo &&
			!strings.HasSuffix(record.ContainerImage, "/"+spec.ImageRepo) {
			issues = append(issues, fmt.Sprintf(
				"service %q: container_image %q does not match image_repo %q",
				key, record.ContainerImage, spec.ImageRepo))
		}
	}

	// Only meaningful when specs exist at all; a repo without an
	// applications/ tree generates its document some other way.
	if len(serviceSpecs) > 0 {
		for _, key := range services.Keys() {
			if _, ok := specKeys[key]; !ok {
				issues = append(issues, fmt.Sprintf("service %q has no spec under applications/", key))
			}
		}
	}
	return issues
}
