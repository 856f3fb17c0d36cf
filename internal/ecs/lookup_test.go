package ecs

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsecs "github.com/aws/aws-sdk-go-v2/service/ecs"
	"github.com/aws/aws-sdk-go-v2/service/ecs/types"
)

type fakeECS struct {
	services map[string]string   // service name -> task definition arn
	taskDefs map[string][]string // task definition arn -> container images
}

func (f *fakeECS) DescribeServices(
	_ context.Context,
	params *awsecs.DescribeServicesInput,
	_ ...func(*awsecs.Options),
) (*awsecs.DescribeServicesOutput, error) {
	name := params.Services[0]
	taskDef, ok := f.services[name]
	if !ok {
		return &awsecs.DescribeServicesOutput{}, nil
	}
	return &awsecs.DescribeServicesOutput{
		Services: []types.Service{{TaskDefinition: aws.String(taskDef)}},
	}, nil
}

func (f *fakeECS) DescribeTaskDefinition(
	_ context.Context,
	params *awsecs.DescribeTaskDefinitionInput,
	_ ...func(*awsecs.Options),
) (*awsecs.DescribeTaskDefinitionOutput, error) {
	images, ok := f.taskDefs[*params.TaskDefinition]
	if !ok {
		return nil, fmt.Errorf("task definition not found")
	}
	containers := make([]types.ContainerDefinition, 0, len(images))
	for _, image := range images {
		containers = append(containers, types.ContainerDefinition{Image: aws.String(image)})
	}
	return &awsecs.DescribeTaskDefinitionOutput{
		TaskDefinition: &types.TaskDefinition{ContainerDefinitions: containers},
	}, nil
}

func TestLookup_ServiceName(t *testing.T) {
	lookup := &Lookup{NamePrefix: "plat-"}
	tests := []struct {
		key  string
		want string
	}{
		{"app::api", "plat-app-api"},
		{"app2::worker", "plat-app2-worker"},
		{"legacy-api", "plat-legacy-api"},
	}
	for _, tt := range tests {
		if got := lookup.ServiceName(tt.key); got != tt.want {
			t.Errorf("ServiceName(%q) = %q, want %q", tt.key, got, tt.want)
		}
	}
}

func TestLookup_DeployedTag(t *testing.T) {
	client := &fakeECS{
		services: map[string]string{"plat-app-api": "arn:taskdef/api:7"},
		taskDefs: map[string][]string{
			"arn:taskdef/api:7": {"ghcr.io/org/api:prod-v9"},
		},
	}
	lookup := &Lookup{Client: client, Cluster: "prod-apps", NamePrefix: "plat-"}

	tag, err := lookup.DeployedTag(context.Background(), "app::api", "ghcr.io/org/api")
	if err != nil {
		t.Fatalf("DeployedTag() error = %v", err)
	}
	if tag != "prod-v9" {
		t.Errorf("tag = %q, want prod-v9", tag)
	}
}

func TestLookup_MatchesContainerBySidecar(t *testing.T) {
	client := &fakeECS{
		services: map[string]string{"app-api": "arn:taskdef/api:3"},
		taskDefs: map[string][]string{
			"arn:taskdef/api:3": {
				"ghcr.io/org/envoy-sidecar:v2",
				"ghcr.io/org/api:prod-v4",
			},
		},
	}
	lookup := &Lookup{Client: client, Cluster: "prod-apps"}

	tag, err := lookup.DeployedTag(context.Background(), "app::api", "ghcr.io/org/api")
	if err != nil {
		t.Fatalf("DeployedTag() error = %v", err)
	}
	if tag != "prod-v4" {
		t.Errorf("tag = %q, want prod-v4 from the matching container", tag)
	}
}

func TestLookup_ServiceNotFound(t *testing.T) {
	lookup := &Lookup{Client: &fakeECS{}, Cluster: "prod-apps"}
	_, err := lookup.DeployedTag(context.Background(), "app::ghost", "ghcr.io/org/ghost")
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Fatalf("error = %v, want service not found", err)
	}
}

func TestLookup_UntaggedImage(t *testing.T) {
	client := &fakeECS{
		services: map[string]string{"app-api": "arn:taskdef/api:1"},
		taskDefs: map[string][]string{
			"arn:taskdef/api:1": {"ghcr.io/org/api"},
		},
	}
	lookup := &Lookup{Client: client, Cluster: "prod-apps"}

	_, err := lookup.DeployedTag(context.Background(), "app::api", "ghcr.io/org/api")
	if err == nil || !strings.Contains(err.Error(), "no tag") {
		t.Fatalf("error = %v, want untagged image error", err)
	}
}
