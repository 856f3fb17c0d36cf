// Where: internal/app/resolve.go
// What: Shared resolve pipeline.
// Why: Both strategies run normalize, select, resolve, validate, write.
package app

import (
	"context"
	"fmt"
	"io"

	"github.com/corvusops/ecs-service-tags/internal/config"
	"github.com/corvusops/ecs-service-tags/internal/report"
	"github.com/corvusops/ecs-service-tags/internal/resolver"
	"github.com/corvusops/ecs-service-tags/internal/selector"
	"github.com/corvusops/ecs-service-tags/internal/servicemap"
	"github.com/corvusops/ecs-service-tags/internal/ui"
	"github.com/corvusops/ecs-service-tags/internal/validator"
)

type resolveRequest struct {
	servicesFile string
	strategy     string
	selector     selector.Selector
	desiredTag   string
	flags        ResolveFlags
}

// runResolve executes the pipeline: Normalizer, Selector, TagResolver,
// Validator, Writer. Any violated invariant aborts before the write, so
// a partially resolved document is never persisted.
func runResolve(cli CLI, deps Dependencies, out io.Writer, req resolveRequest) int {
	console := ui.New(out)
	ctx := context.Background()

	cfg, err := config.Load(cli.Config)
	if err != nil {
		return exitWithError(out, err)
	}
	flags := req.flags.withDefaults(cfg)

	console.Header("🔁", "Resolving service image tags:")
	console.Item("Strategy", req.strategy)
	console.Item("Services file", req.servicesFile)

	document, err := servicemap.LoadDocument(req.servicesFile)
	if err != nil {
		return exitWithError(out, err)
	}
	console.Item("Input shape", string(document.Shape))
	console.Item("Services", len(document.Services))

	selected, err := req.selector.Select(document.Services)
	if err != nil {
		return exitWithError(out, err)
	}
	console.Item("Selected", len(selected))

	pinned := len(document.Services) - len(selected)
	tagResolver := &resolver.Resolver{Workers: flags.Workers}
	if pinned > 0 {
		if flags.Cluster == "" {
			return exitWithError(out, fmt.Errorf(
				"%d services need their deployed tag looked up but no cluster is configured", pinned))
		}
		lookup, err := deps.Lookup(ctx, LookupConfig{
			Cluster:       flags.Cluster,
			Region:        flags.Region,
			ServicePrefix: flags.ServicePrefix,
		})
		if err != nil {
			return exitWithError(out, err)
		}
		tagResolver.Lookup = lookup
		console.Item("Pinned", fmt.Sprintf("%d (cluster %s)", pinned, flags.Cluster))
	}

	if err := tagResolver.Resolve(ctx, document.Services, selected, req.desiredTag); err != nil {
		return exitWithError(out, err)
	}

	if err := validator.Validate(document.Services); err != nil {
		return exitWithError(out, err)
	}

	if flags.VerifyManifests && len(selected) > 0 {
		verifier, err := deps.Verifier()
		if err != nil {
			return exitWithError(out, err)
		}
		if err := verifier.VerifySelected(ctx, document.Services, selected.Keys()); err != nil {
			return exitWithError(out, err)
		}
		console.Info("Registry manifests verified")
	}

	target := flags.Output
	if target == "" {
		target = req.servicesFile
	}
	if err := document.Save(target); err != nil {
		return exitWithError(out, err)
	}

	result := report.Result{UpdatedKeys: selected.Keys(), Services: document.Services}
	if err := (report.Outputs{Path: flags.OutputsFile}).Write(result); err != nil {
		return exitWithError(out, err)
	}
	if err := report.AppendSummary(flags.SummaryFile, req.strategy, req.desiredTag, result); err != nil {
		return exitWithError(out, err)
	}

	console.Success(fmt.Sprintf("Resolved tags for %d services (%d updated, %d pinned)",
		len(document.Services), len(selected), pinned))
	return 0
}

// withDefaults overlays repo config under explicit flags.
func (f ResolveFlags) withDefaults(cfg config.Repo) ResolveFlags {
	if f.Cluster == "" {
		f.Cluster = cfg.Cluster
	}
	if f.Region == "" {
		f.Region = cfg.Region
	}
	if f.ServicePrefix == "" {
		f.ServicePrefix = cfg.ServicePrefix
	}
	if f.Workers == 0 {
		f.Workers = cfg.Workers
	}
	if !f.VerifyManifests {
		f.VerifyManifests = cfg.VerifyManifests
	}
	return f
}
