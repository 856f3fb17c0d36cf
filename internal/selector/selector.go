// Where: internal/selector/selector.go
// What: Selection strategy contract.
// Why: The trigger type decides which of two strategies runs; never both.
package selector

import (
	"fmt"
	"sort"

	"github.com/corvusops/ecs-service-tags/internal/servicemap"
)

// Selection is the set of service keys chosen to receive the new tag.
type Selection map[string]struct{}

// Keys returns the selected keys in sorted order.
func (s Selection) Keys() []string {
	keys := make([]string, 0, len(s))
	for key := range s {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Contains reports whether a key is selected.
func (s Selection) Contains(key string) bool {
	_, ok := s[key]
	return ok
}

// Selector computes the set of services to update this run. The result
// is always a subset of the map's keys.
type Selector interface {
	Select(services servicemap.Map) (Selection, error)
}

// SelectionError reports a broken CI-to-deploy mapping in the automatic
// strategy. Empty selections must never silently proceed as a no-op there.
type SelectionError struct {
	Reason string
}

func (e *SelectionError) Error() string {
	return fmt.Sprintf("service selection failed: %s", e.Reason)
}
