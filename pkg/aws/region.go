package aws

import (
	"context"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go-v2/config"
)

// ResolveRegion finds the region to generate the policy for when the
// project configuration leaves it out. Only the environment and the shared
// config files are consulted; no request is sent to AWS.
func ResolveRegion(ctx context.Context, profile string) (string, error) {
	// First try environment variables
	if region := os.Getenv("AWS_REGION"); region != "" {
		return region, nil
	}
	if region := os.Getenv("AWS_DEFAULT_REGION"); region != "" {
		return region, nil
	}

	var opts []func(*config.LoadOptions) error
	if profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(profile))
	}

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return "", fmt.Errorf("failed to load AWS config: %w", err)
	}

	if cfg.Region == "" {
		return "", fmt.Errorf("no AWS region specified. Please set region in the project config, AWS_REGION, or ~/.aws/config")
	}
	return cfg.Region, nil
}
