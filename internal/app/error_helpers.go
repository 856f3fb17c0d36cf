// Where: internal/app/error_helpers.go
// What: Shared CLI error output.
// Why: Keep failure output consistent across commands.
package app

import (
	"io"

	"github.com/corvusops/ecs-service-tags/internal/ui"
)

// exitWithError prints an error message and returns exit code 1.
func exitWithError(out io.Writer, err error) int {
	ui.New(out).Warn(err.Error())
	return 1
}
