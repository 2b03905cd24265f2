package publishers

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
)

// loadAWSConfig resolves the default credential chain for opts.Region, or
// static credentials when both keys are configured.
func loadAWSConfig(ctx context.Context, opts AWSOptions) (aws.Config, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	loaders := []func(*awscfg.LoadOptions) error{awscfg.WithRegion(opts.Region)}
	if opts.AccessKeyID != "" && opts.SecretAccessKey != "" {
		loaders = append(loaders, awscfg.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKeyID, opts.SecretAccessKey, ""),
		))
	}

	cfg, err := awscfg.LoadDefaultConfig(ctx, loaders...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("load aws config: %w", err)
	}
	return cfg, nil
}

func stringAttribute(v string) (dataType, value *string) {
	return aws.String("String"), aws.String(v)
}
