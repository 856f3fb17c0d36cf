// Where: internal/ecs/factory.go
// What: ECS client factory.
// Why: Encapsulate SDK configuration, including local-stack endpoints.
package ecs

import (
	"context"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	awsecs "github.com/aws/aws-sdk-go-v2/service/ecs"
)

const defaultRegion = "eu-west-1"

// ClientOptions controls how the ECS client is built. Endpoint and the
// static keys are only used against local stacks; real runs rely on the
// ambient credential chain.
type ClientOptions struct {
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
}

// NewClient builds an ECS client from the ambient AWS configuration.
func NewClient(ctx context.Context, opts ClientOptions) (API, error) {
	region := opts.Region
	if region == "" {
		region = os.Getenv("AWS_REGION")
	}
	if region == "" {
		region = defaultRegion
	}

	loadOpts := []func(*config.LoadOptions) error{config.WithRegion(region)}
	if opts.AccessKey != "" {
		creds := credentials.NewStaticCredentialsProvider(opts.AccessKey, opts.SecretKey, "")
		loadOpts = append(loadOpts, config.WithCredentialsProvider(creds))
	}

	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, err
	}
	return awsecs.NewFromConfig(cfg, func(options *awsecs.Options) {
		if opts.Endpoint != "" {
			options.BaseEndpoint = aws.String(opts.Endpoint)
		}
	}), nil
}
