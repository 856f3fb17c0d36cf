// Where: internal/registry/verifier.go
// What: Optional registry manifest check for selected services.
// Why: Distinguish "tag assigned" from "image actually exists".
package registry

import (
	"context"
	"fmt"
	"sort"

	registrytypes "github.com/docker/docker/api/types/registry"
	"github.com/docker/docker/client"

	"github.com/corvusops/ecs-service-tags/internal/servicemap"
)

// DistributionAPI is the subset of the Docker SDK used for manifest
// inspection. An interface here enables testing without a daemon.
type DistributionAPI interface {
	DistributionInspect(ctx context.Context, image, encodedRegistryAuth string) (registrytypes.DistributionInspect, error)
}

// NewDockerClient builds a Docker client from the environment.
func NewDockerClient() (DistributionAPI, error) {
	return client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
}

// VerificationError reports a selected service whose assigned image:tag
// has no manifest in the registry.
type VerificationError struct {
	Key       string
	Reference string
	Err       error
}

func (e *VerificationError) Error() string {
	return fmt.Sprintf("registry verification failed for service %q: manifest %s: %v",
		e.Key, e.Reference, e.Err)
}

func (e *VerificationError) Unwrap() error { return e.Err }

// Verifier checks that every selected service's final reference resolves
// to a manifest. Auth rides on the ambient Docker credential config.
type Verifier struct {
	Client DistributionAPI
	Auth   string
}

// VerifySelected inspects the manifest of each selected service's
// <container_image>:<image_tag> reference, in key order.
func (v *Verifier) VerifySelected(
	ctx context.Context,
	services servicemap.Map,
	keys []string,
) error {
	sorted := append([]string(nil), keys...)
	sort.Strings(sorted)
	for _, key := range sorted {
		record, ok := services[key]
		if !ok {
			continue
		}
		ref := record.ContainerImage + ":" + record.ImageTag
		if _, err := v.Client.DistributionInspect(ctx, ref, v.Auth); err != nil {
			return &VerificationError{Key: key, Reference: ref, Err: err}
		}
	}
	return nil
}
