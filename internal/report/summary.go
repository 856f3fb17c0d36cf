// Where: internal/report/summary.go
// What: Markdown run summary.
// Why: Surface what changed per service in the CI job summary.
package report

import (
	"bytes"
	"embed"
	"fmt"
	"os"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

//go:embed templates/summary.md.tmpl
var summaryFS embed.FS

type summaryRow struct {
	Key     string
	Image   string
	Tag     string
	Updated bool
}

type summaryData struct {
	Strategy     string
	DesiredTag   string
	UpdatedCount int
	Rows         []summaryRow
}

// RenderSummary renders the run summary as Markdown.
func RenderSummary(strategy, desiredTag string, result Result) (string, error) {
	tmpl, err := template.New("summary.md.tmpl").
		Funcs(sprig.FuncMap()).
		ParseFS(summaryFS, "templates/summary.md.tmpl")
	if err != nil {
		return "", fmt.Errorf("parse summary template: %w", err)
	}

	updated := map[string]bool{}
	for _, key := range result.UpdatedKeys {
		updated[key] = true
	}

	data := summaryData{
		Strategy:     strategy,
		DesiredTag:   desiredTag,
		UpdatedCount: len(result.UpdatedKeys),
	}
	for _, key := range result.Services.Keys() {
		record := result.Services[key]
		data.Rows = append(data.Rows, summaryRow{
			Key:     key,
			Image:   record.ContainerImage,
			Tag:     record.ImageTag,
			Updated: updated[key],
		})
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render summary: %w", err)
	}
	return buf.String(), nil
}

// AppendSummary writes the rendered summary to the job summary file when
// one is configured; an empty path is a no-op.
func AppendSummary(path, strategy, desiredTag string, result Result) error {
	if path == "" {
		return nil
	}
	rendered, err := RenderSummary(strategy, desiredTag, result)
	if err != nil {
		return err
	}
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer file.Close()
	_, err = file.WriteString(rendered)
	return err
}
