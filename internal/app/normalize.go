// Where: internal/app/normalize.go
// What: Standalone normalization runner.
// Why: Re-shape a services file without touching tags, for pipeline debugging.
package app

import (
	"fmt"
	"io"

	"github.com/corvusops/ecs-service-tags/internal/servicemap"
	"github.com/corvusops/ecs-service-tags/internal/ui"
)

func runNormalize(cli CLI, _ Dependencies, out io.Writer) int {
	cmd := cli.Normal
	console := ui.New(out)

	document, err := servicemap.LoadDocument(cmd.ServicesFile)
	if err != nil {
		return exitWithError(out, err)
	}
	console.Header("🧾", "Normalizing services document:")
	console.Item("Input shape", string(document.Shape))
	console.Item("Services", len(document.Services))

	target := cmd.Output
	if target == "" {
		target = cmd.ServicesFile
	}

	// A bare re-shape tolerates empty tags; the non-empty invariant
	// binds the resolve pipeline, so skip the contract gate and write
	// directly.
	payload, err := document.Marshal()
	if err != nil {
		return exitWithError(out, err)
	}
	if err := writeFile(target, payload); err != nil {
		return exitWithError(out, err)
	}

	console.Success(fmt.Sprintf("Wrote canonical map with %d services to %s",
		len(document.Services), target))
	return 0
}
