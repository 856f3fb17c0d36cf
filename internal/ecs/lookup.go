// Where: internal/ecs/lookup.go
// What: Deployed-tag lookup against a live cluster.
// Why: Pinned services keep whatever tag is running right now.
package ecs

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsecs "github.com/aws/aws-sdk-go-v2/service/ecs"
	"github.com/aws/aws-sdk-go-v2/service/ecs/types"
	"github.com/distribution/reference"
)

// Lookup resolves a service key to its currently deployed image tag:
// derived ECS service name, active task definition, container image
// reference, tag. Failures surface as-is; the resolver attributes them.
type Lookup struct {
	Client     API
	Cluster    string
	NamePrefix string
}

// ServiceName derives the deployed ECS service name from a composite
// key. "app::name" maps to "<prefix>app-name"; a key without the
// separator is used with the prefix alone.
func (l *Lookup) ServiceName(key string) string {
	app, name, found := strings.Cut(key, "::")
	if !found {
		return l.NamePrefix + key
	}
	return l.NamePrefix + app + "-" + name
}

func (l *Lookup) DeployedTag(ctx context.Context, key, containerImage string) (string, error) {
	serviceName := l.ServiceName(key)

	described, err := l.Client.DescribeServices(ctx, &awsecs.DescribeServicesInput{
		Cluster:  aws.String(l.Cluster),
		Services: []string{serviceName},
	})
	if err != nil {
		return "", fmt.Errorf("describe service %s: %w", serviceName, err)
	}
	if len(described.Services) == 0 {
		return "", fmt.Errorf("service %s not found in cluster %s", serviceName, l.Cluster)
	}
	service := described.Services[0]
	if service.TaskDefinition == nil || *service.TaskDefinition == "" {
		return "", fmt.Errorf("service %s has no active task definition", serviceName)
	}

	taskDef, err := l.Client.DescribeTaskDefinition(ctx, &awsecs.DescribeTaskDefinitionInput{
		TaskDefinition: service.TaskDefinition,
	})
	if err != nil {
		return "", fmt.Errorf("describe task definition %s: %w", *service.TaskDefinition, err)
	}
	if taskDef.TaskDefinition == nil || len(taskDef.TaskDefinition.ContainerDefinitions) == 0 {
		return "", fmt.Errorf("task definition %s has no containers", *service.TaskDefinition)
	}

	image := matchContainerImage(taskDef.TaskDefinition, containerImage)
	if image == "" {
		return "", fmt.Errorf("task definition %s has no container image", *service.TaskDefinition)
	}
	return parseImageTag(image)
}

// matchContainerImage picks the container whose image repository equals
// the record's registry path; task definitions may carry sidecars. Falls
// back to the first container when nothing matches.
func matchContainerImage(taskDef *types.TaskDefinition, containerImage string) string {
	fallback := ""
	for _, container := range taskDef.ContainerDefinitions {
		if container.Image == nil || *container.Image == "" {
			continue
		}
		image := *container.Image
		if fallback == "" {
			fallback = image
		}
		repo := image
		if idx := strings.LastIndex(repo, ":"); idx > strings.LastIndex(repo, "/") {
			repo = repo[:idx]
		}
		if repo == containerImage {
			return image
		}
	}
	return fallback
}

func parseImageTag(image string) (string, error) {
	ref, err := reference.ParseNormalizedNamed(image)
	if err != nil {
		return "", fmt.Errorf("parse image reference %q: %w", image, err)
	}
	tagged, ok := ref.(reference.Tagged)
	if !ok {
		return "", fmt.Errorf("image reference %q has no tag", image)
	}
	return tagged.Tag(), nil
}
