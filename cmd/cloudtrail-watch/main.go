package main

import (
	"context"

	"github.com/apex/log"
	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"

	"github.com/awsops/awsops/internal/logging"
	"github.com/awsops/awsops/internal/watcher"
	"github.com/awsops/awsops/pkg/awsclient"
)

// cloudtrail-watch is the Lambda entrypoint for the CloudTrail alerting
// pipeline. It is triggered by S3 ObjectCreated notifications on the
// CloudTrail log bucket.
func main() {
	logging.Init("info")

	cfg, err := awsclient.LoadConfig(context.Background())
	if err != nil {
		log.WithError(err).Fatal("Failed to load AWS config")
	}

	w := watcher.New(
		watcher.LoadConfig(),
		awsclient.NewS3Client(cfg),
		awsclient.NewInstanceTagLookup(cfg),
		awsclient.NewSNSPublisher(cfg),
	)

	lambda.Start(func(ctx context.Context, event events.S3Event) error {
		return w.HandleS3Event(ctx, event)
	})
}
