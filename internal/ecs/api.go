// Where: internal/ecs/api.go
// What: Narrow ECS SDK surface.
// Why: Only two calls are needed; keep the boundary mockable.
package ecs

import (
	"context"

	awsecs "github.com/aws/aws-sdk-go-v2/service/ecs"
)

// API is the subset of the ECS SDK client used by the deployed-tag
// lookup. An interface here lets tests run without a cluster.
type API interface {
	DescribeServices(
		ctx context.Context,
		params *awsecs.DescribeServicesInput,
		optFns ...func(*awsecs.Options),
	) (*awsecs.DescribeServicesOutput, error)
	DescribeTaskDefinition(
		ctx context.Context,
		params *awsecs.DescribeTaskDefinitionInput,
		optFns ...func(*awsecs.Options),
	) (*awsecs.DescribeTaskDefinitionOutput, error)
}
