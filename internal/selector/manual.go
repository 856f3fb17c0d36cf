// Where: internal/selector/manual.go
// What: Operator-dispatch selection.
// Why: Scoped manual updates, including valid infra-only empty runs.
package selector

import "github.com/corvusops/ecs-service-tags/internal/servicemap"

// ApplicationAll selects every service regardless of application.
const ApplicationAll = "all"

// Manual selects services by application filter when UpdateImages is set.
// With UpdateImages false the selection is empty and that is not an
// error: the operator asked for an infra-only run.
type Manual struct {
	UpdateImages bool
	Application  string
}

func (m *Manual) Select(services servicemap.Map) (Selection, error) {
	selected := Selection{}
	if !m.UpdateImages {
		return selected, nil
	}
	for key, record := range services {
		if m.Application == ApplicationAll || record.Application == m.Application {
			selected[key] = struct{}{}
		}
	}
	// A specific application matching zero services is a deliberately
	// scoped run, not a broken mapping; leave it to downstream checks.
	return selected, nil
}
