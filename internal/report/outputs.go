// Where: internal/report/outputs.go
// What: Machine-readable run outputs.
// Why: Downstream CI steps consume count, keys, and the updated subset.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/corvusops/ecs-service-tags/internal/servicemap"
)

// Result is what a resolve run reports about itself. The fields are
// read-only projections; the canonical map is unaffected.
type Result struct {
	UpdatedKeys []string
	Services    servicemap.Map
}

// Outputs appends key=value pairs to a workflow outputs file, in the
// format GitHub Actions reads from GITHUB_OUTPUT. An empty path disables
// output without error so local runs stay quiet.
type Outputs struct {
	Path string
}

// Write appends updated_count, updated_services, and
// updated_services_map for the run.
func (o Outputs) Write(result Result) error {
	if o.Path == "" {
		return nil
	}

	keys := result.UpdatedKeys
	if keys == nil {
		keys = []string{}
	}
	keysJSON, err := json.Marshal(keys)
	if err != nil {
		return err
	}
	subsetJSON, err := json.Marshal(result.Services.Subset(keys))
	if err != nil {
		return err
	}

	var buf strings.Builder
	writeOutput(&buf, "updated_count", strconv.Itoa(len(keys)))
	writeOutput(&buf, "updated_services", string(keysJSON))
	writeOutput(&buf, "updated_services_map", string(subsetJSON))

	file, err := os.OpenFile(o.Path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open outputs file: %w", err)
	}
	defer file.Close()
	if _, err := file.WriteString(buf.String()); err != nil {
		return fmt.Errorf("write outputs file: %w", err)
	}
	return nil
}

// writeOutput emits key=value, switching to the heredoc form when the
// value contains a newline.
func writeOutput(buf *strings.Builder, key, value string) {
	if strings.Contains(value, "\n") {
		fmt.Fprintf(buf, "%s<<SVCTAGS_EOF\n%s\nSVCTAGS_EOF\n", key, value)
		return
	}
	fmt.Fprintf(buf, "%s=%s\n", key, value)
}
