// Where: internal/app/resolve_manual.go
// What: Operator-dispatch runner.
// Why: Wire dispatch parameters into the manual selection strategy.
package app

import (
	"io"

	"github.com/corvusops/ecs-service-tags/internal/selector"
)

func runResolveManual(cli CLI, deps Dependencies, out io.Writer) int {
	cmd := cli.Resolve.Manual

	return runResolve(cli, deps, out, resolveRequest{
		servicesFile: cmd.ServicesFile,
		strategy:     "manual",
		selector: &selector.Manual{
			UpdateImages: cmd.UpdateImages,
			Application:  cmd.Application,
		},
		desiredTag: cmd.Tag,
		flags:      cmd.ResolveFlags,
	})
}
