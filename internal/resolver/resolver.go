// Where: internal/resolver/resolver.go
// What: Final tag assignment for every service.
// Why: Selected services get the new tag; everything else is pinned to
//      what is currently deployed.
package resolver

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/corvusops/ecs-service-tags/internal/selector"
	"github.com/corvusops/ecs-service-tags/internal/servicemap"
)

const defaultWorkers = 4

// DeployedTagLookup answers what tag a service is currently running in
// production. Implementations live at the infrastructure boundary so the
// resolver can be tested with a fake.
type DeployedTagLookup interface {
	DeployedTag(ctx context.Context, key, containerImage string) (string, error)
}

// TagResolutionError attributes a resolution failure to one service, or
// to the run's inputs when Key is empty.
type TagResolutionError struct {
	Key string
	Err error
}

func (e *TagResolutionError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("tag resolution failed: %v", e.Err)
	}
	return fmt.Sprintf("tag resolution failed for service %q: %v", e.Key, e.Err)
}

func (e *TagResolutionError) Unwrap() error { return e.Err }

// Resolver mutates image tags in place. Pinned lookups fan out over a
// bounded worker pool; one failure fails the run with its key attached.
type Resolver struct {
	Lookup  DeployedTagLookup
	Workers int
}

// Resolve sets the desired tag on every selected service and pins every
// unselected service to its live tag. On error the map must be treated
// as poisoned; nothing may be persisted.
func (r *Resolver) Resolve(
	ctx context.Context,
	services servicemap.Map,
	selected selector.Selection,
	desiredTag string,
) error {
	if len(selected) > 0 && desiredTag == "" {
		return &TagResolutionError{Err: fmt.Errorf(
			"%d services selected for update but no desired tag given", len(selected),
		)}
	}

	for key := range selected {
		record, ok := services[key]
		if !ok {
			return &TagResolutionError{Key: key, Err: fmt.Errorf("selected key not in services map")}
		}
		record.ImageTag = desiredTag
	}

	workers := r.Workers
	if workers <= 0 {
		workers = defaultWorkers
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(workers)
	for key, record := range services {
		if selected.Contains(key) {
			continue
		}
		group.Go(func() error {
			tag, err := r.Lookup.DeployedTag(groupCtx, key, record.ContainerImage)
			if err != nil {
				return &TagResolutionError{Key: key, Err: err}
			}
			if tag == "" {
				return &TagResolutionError{Key: key, Err: fmt.Errorf("deployed tag is empty")}
			}
			record.ImageTag = tag
			return nil
		})
	}
	return group.Wait()
}
