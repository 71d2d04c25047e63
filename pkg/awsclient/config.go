package awsclient

import (
	"context"
	"errors"
	"fmt"

	"github.com/apex/log"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/ec2/imds"
	"github.com/aws/smithy-go"
)

// options holds optional overrides for AWS config loading.
type options struct {
	profile string
	region  string
	retryer func() aws.Retryer
}

// Option customizes how AWS config is loaded.
// Default behavior (no options) inherits the shell environment and shared
// config chain (AWS_PROFILE, ~/.aws/config, ~/.aws/credentials, IMDS, etc.).
type Option func(*options)

// WithProfile sets the shared config profile. Defaults to AWS_PROFILE/env chain.
func WithProfile(profile string) Option {
	return func(o *options) { o.profile = profile }
}

// WithRegion sets the region override. Defaults to env/profile/metadata chain.
func WithRegion(region string) Option {
	return func(o *options) { o.region = region }
}

// WithRetryer injects a custom retryer; if not set, standard retry mode is used.
func WithRetryer(newRetryer func() aws.Retryer) Option {
	return func(o *options) { o.retryer = newRetryer }
}

// LoadConfig loads AWS SDK v2 config for the service clients. By default it
// inherits the shell's AWS setup, enables IMDS credentials for use on EC2
// ops hosts, and uses standard retry mode.
func LoadConfig(ctx context.Context, opts ...Option) (aws.Config, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	log.Debugf("loading AWS config: profile=%s region=%s", o.profile, o.region)

	loadOpts := []func(*config.LoadOptions) error{
		config.WithRetryMode(aws.RetryModeStandard),
		config.WithEC2IMDSClientEnableState(imds.ClientEnabled),
	}
	if o.profile != "" {
		loadOpts = append(loadOpts, config.WithSharedConfigProfile(o.profile))
	}
	if o.region != "" {
		loadOpts = append(loadOpts, config.WithRegion(o.region))
	}
	if o.retryer != nil {
		loadOpts = append(loadOpts, config.WithRetryer(o.retryer))
	}

	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		var profileErr config.SharedConfigProfileNotExistError
		if errors.As(err, &profileErr) {
			return aws.Config{}, fmt.Errorf("profile %q not found in your AWS shared config files", o.profile)
		}
		return aws.Config{}, fmt.Errorf("error loading AWS config: %w", err)
	}

	return cfg, nil
}

// DescribeError unwraps smithy API errors into a "Code: Message" string so
// command output can show the service fault without the SDK's operation
// wrapping. Non-API errors return err.Error() unchanged.
func DescribeError(err error) string {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return fmt.Sprintf("%s: %s", apiErr.ErrorCode(), apiErr.ErrorMessage())
	}
	return err.Error()
}
