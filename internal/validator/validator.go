// Where: internal/validator/validator.go
// What: Pre-write invariant checks.
// Why: Name every offender in one pass so the operator fixes them once.
package validator

import (
	"fmt"
	"sort"
	"strings"

	"github.com/corvusops/ecs-service-tags/internal/servicemap"
)

// ValidationError reports the services that violate the tag invariant.
type ValidationError struct {
	Keys []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %d services have an empty image_tag: %s",
		len(e.Keys), strings.Join(e.Keys, ", "))
}

// Validate checks the resolved map before it is written. The object-map
// shape is carried by the type system from normalization onward; what can
// still go wrong at runtime is an empty tag slipping through resolution.
func Validate(services servicemap.Map) error {
	var offenders []string
	for key, record := range services {
		if record == nil || record.ImageTag == "" {
			offenders = append(offenders, key)
		}
	}
	if len(offenders) > 0 {
		sort.Strings(offenders)
		return &ValidationError{Keys: offenders}
	}
	return nil
}
