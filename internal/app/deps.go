// Where: internal/app/deps.go
// What: Injected dependencies for command execution.
// Why: Keep AWS and Docker construction out of the core so tests can fake it.
package app

import (
	"context"
	"io"

	"github.com/corvusops/ecs-service-tags/internal/registry"
	"github.com/corvusops/ecs-service-tags/internal/resolver"
)

// LookupConfig carries the settings a deployed-tag lookup needs.
type LookupConfig struct {
	Cluster       string
	Region        string
	ServicePrefix string
}

// LookupFactory builds the infrastructure-state collaborator for a run.
type LookupFactory func(ctx context.Context, cfg LookupConfig) (resolver.DeployedTagLookup, error)

// VerifierFactory builds the registry manifest verifier; only called
// when manifest verification is enabled.
type VerifierFactory func() (*registry.Verifier, error)

// Dependencies holds all injected dependencies required for CLI command
// execution.
type Dependencies struct {
	Out      io.Writer
	Lookup   LookupFactory
	Verifier VerifierFactory
}
