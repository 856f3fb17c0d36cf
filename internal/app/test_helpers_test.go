package app

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/corvusops/ecs-service-tags/internal/registry"
	"github.com/corvusops/ecs-service-tags/internal/resolver"
)

// fakeLookup answers deployed tags from a fixed table.
type fakeLookup struct {
	tags map[string]string
}

func (f *fakeLookup) DeployedTag(_ context.Context, key, _ string) (string, error) {
	tag, ok := f.tags[key]
	if !ok {
		return "", fmt.Errorf("service not found")
	}
	return tag, nil
}

func fakeDeps(lookup *fakeLookup) (Dependencies, *bytes.Buffer) {
	out := &bytes.Buffer{}
	deps := Dependencies{
		Out: out,
		Lookup: func(context.Context, LookupConfig) (resolver.DeployedTagLookup, error) {
			return lookup, nil
		},
		Verifier: func() (*registry.Verifier, error) {
			return nil, fmt.Errorf("no verifier in tests")
		},
	}
	return deps, out
}

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// twoServiceDoc is the shape C document from the resolve scenarios: one
// service whose image gets built, one that must stay pinned.
const twoServiceDoc = `{"services":[` +
	`{"key":"app::api","value":{"container_image":"ghcr.io/org/api","image_tag":"old","application":"app"}},` +
	`{"key":"app2::worker","value":{"container_image":"ghcr.io/org/worker","image_tag":"old","application":"app2"}}` +
	`]}`
