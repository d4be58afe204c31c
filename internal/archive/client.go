package archive

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// NewUploaderFromEnv builds an S3 upload manager using the default AWS
// credential chain (env vars, shared config, instance/container roles).
// region may be empty to fall back to the SDK's own resolution.
func NewUploaderFromEnv(ctx context.Context, region string) (*manager.Uploader, error) {
	opts := []func(*awsconfig.LoadOptions) error{}
	if region != "" {
		opts = append(opts, awsconfig.WithRegion(region))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config for archive uploader: %w", err)
	}
	client := s3.NewFromConfig(cfg)
	return manager.NewUploader(client), nil
}
