// Where: internal/app/filter.go
// What: Application filter runner.
// Why: CI matrices need the key list for one application.
package app

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/corvusops/ecs-service-tags/internal/selector"
	"github.com/corvusops/ecs-service-tags/internal/servicemap"
)

func runFilter(cli CLI, _ Dependencies, out io.Writer) int {
	cmd := cli.Filter

	document, err := servicemap.LoadDocument(cmd.ServicesFile)
	if err != nil {
		return exitWithError(out, err)
	}

	var keys []string
	for _, key := range document.Services.Keys() {
		record := document.Services[key]
		if cmd.Application == selector.ApplicationAll || record.Application == cmd.Application {
			keys = append(keys, key)
		}
	}

	switch cmd.Format {
	case "list":
		fmt.Fprintln(out, strings.Join(keys, " "))
	default:
		if keys == nil {
			keys = []string{}
		}
		payload, err := json.Marshal(keys)
		if err != nil {
			return exitWithError(out, err)
		}
		fmt.Fprintln(out, string(payload))
	}

	// Matches the historical contract: an empty result signals the
	// caller that the application has nothing to build.
	if len(keys) == 0 {
		return 1
	}
	return 0
}
