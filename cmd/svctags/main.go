// Where: cmd/svctags/main.go
// What: CLI entrypoint.
// Why: Execute svctags commands with configured dependencies.
package main

import (
	"os"

	"github.com/corvusops/ecs-service-tags/internal/app"
)

func main() {
	os.Exit(app.Run(os.Args[1:], buildDependencies()))
}
