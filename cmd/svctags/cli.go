// Where: cmd/svctags/cli.go
// What: CLI dependency wiring helpers.
// Why: Centralize construction for testability.
package main

import (
	"context"
	"os"

	"github.com/corvusops/ecs-service-tags/internal/app"
	"github.com/corvusops/ecs-service-tags/internal/ecs"
	"github.com/corvusops/ecs-service-tags/internal/registry"
	"github.com/corvusops/ecs-service-tags/internal/resolver"
)

// buildDependencies constructs the runtime dependencies for the CLI.
// AWS and Docker clients are created lazily, only when a run actually
// needs to pin a service or verify a manifest.
func buildDependencies() app.Dependencies {
	return app.Dependencies{
		Out:      os.Stdout,
		Lookup:   newDeployedTagLookup,
		Verifier: newManifestVerifier,
	}
}

func newDeployedTagLookup(ctx context.Context, cfg app.LookupConfig) (resolver.DeployedTagLookup, error) {
	client, err := ecs.NewClient(ctx, ecs.ClientOptions{
		Region:    cfg.Region,
		Endpoint:  os.Getenv("SVCTAGS_ECS_ENDPOINT"),
		AccessKey: os.Getenv("SVCTAGS_ACCESS_KEY"),
		SecretKey: os.Getenv("SVCTAGS_SECRET_KEY"),
	})
	if err != nil {
		return nil, err
	}
	return &ecs.Lookup{
		Client:     client,
		Cluster:    cfg.Cluster,
		NamePrefix: cfg.ServicePrefix,
	}, nil
}

func newManifestVerifier() (*registry.Verifier, error) {
	client, err := registry.NewDockerClient()
	if err != nil {
		return nil, err
	}
	return &registry.Verifier{Client: client}, nil
}
