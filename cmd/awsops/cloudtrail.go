package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/spf13/cobra"

	"github.com/awsops/awsops/internal/logging"
	"github.com/awsops/awsops/internal/watcher"
	"github.com/awsops/awsops/pkg/awsclient"
)

var (
	trailEventFile string
	trailDryRun    bool
)

var cloudtrailCmd = &cobra.Command{
	Use:   "cloudtrail",
	Short: "Work with CloudTrail log deliveries",
}

var cloudtrailWatchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Run the CloudTrail alerting pipeline on a saved S3 notification",
	Long: `Runs the same pipeline as the cloudtrail-watch Lambda handler against a
saved S3 notification JSON file. Useful for testing event and tag setup
before wiring up log delivery.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logging.Init("info")

		data, err := os.ReadFile(trailEventFile)
		if err != nil {
			return fmt.Errorf("error reading event file: %w", err)
		}

		var event events.S3Event
		if err := json.Unmarshal(data, &event); err != nil {
			return fmt.Errorf("error parsing event file: %w", err)
		}

		cfg, err := loadAWSConfig(cmd.Context())
		if err != nil {
			return err
		}

		var alerts watcher.Publisher = awsclient.NewSNSPublisher(cfg)
		if trailDryRun {
			alerts = printPublisher{}
		}

		w := watcher.New(
			watcher.LoadConfig(),
			awsclient.NewS3Client(cfg),
			awsclient.NewInstanceTagLookup(cfg),
			alerts,
		)
		return w.HandleS3Event(cmd.Context(), event)
	},
}

// printPublisher prints the would-be SNS message instead of publishing it
type printPublisher struct{}

func (printPublisher) Publish(ctx context.Context, topicARN, message string) error {
	fmt.Printf("--- would publish to %s ---\n%s\n", topicARN, message)
	return nil
}

func init() {
	cloudtrailWatchCmd.Flags().StringVar(&trailEventFile, "event-file", "", "S3 notification JSON file to process (required)")
	cloudtrailWatchCmd.MarkFlagRequired("event-file")
	cloudtrailWatchCmd.Flags().BoolVar(&trailDryRun, "dry-run", false, "Print the alert message instead of publishing to SNS")

	cloudtrailCmd.AddCommand(cloudtrailWatchCmd)
	rootCmd.AddCommand(cloudtrailCmd)
}
