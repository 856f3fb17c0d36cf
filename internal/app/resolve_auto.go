// Where: internal/app/resolve_auto.go
// What: CI-build trigger runner.
// Why: Wire the artifact file into the automatic selection strategy.
package app

import (
	"io"
	"os"

	"github.com/corvusops/ecs-service-tags/internal/selector"
)

func runResolveAuto(cli CLI, deps Dependencies, out io.Writer) int {
	cmd := cli.Resolve.Auto

	file, err := os.Open(cmd.BuiltImages)
	if err != nil {
		return exitWithError(out, err)
	}
	defer file.Close()

	basenames, err := selector.ReadArtifacts(file)
	if err != nil {
		return exitWithError(out, err)
	}

	return runResolve(cli, deps, out, resolveRequest{
		servicesFile: cmd.ServicesFile,
		strategy:     "auto",
		selector:     selector.NewAuto(basenames),
		desiredTag:   cmd.Tag,
		flags:        cmd.ResolveFlags,
	})
}
