package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"

	"github.com/awsops/awsops/internal/logging"
	"github.com/awsops/awsops/internal/version"
	"github.com/awsops/awsops/pkg/awsclient"
	"github.com/awsops/awsops/pkg/utils"
)

var (
	profile     string
	region      string
	showVersion bool
)

var rootCmd = &cobra.Command{
	Use:   "awsops",
	Short: "CLI toolkit for AWS resource metadata operations",
	Long: `awsops is a CLI toolkit for operational work on AWS resource metadata:
EC2 tag propagation and cleanup, security group export, IAM access key
audits, DynamoDB CSV imports, and CloudTrail event alerting.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if region != "" && !utils.IsValidRegion(region) {
			return fmt.Errorf("invalid region %q", region)
		}
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		if showVersion {
			info := version.Get()
			fmt.Printf("awsops version %s (commit: %s, built: %s, %s)\n",
				info.Version, info.GitCommit, info.BuildDate, info.GoVersion)
			return
		}
		cmd.Help()
	},
}

// loadAWSConfig loads SDK config honoring the global --profile and --region
// flags. An empty profile falls back to the AWS_PROFILE/default chain.
func loadAWSConfig(ctx context.Context) (aws.Config, error) {
	return awsclient.LoadConfig(ctx,
		awsclient.WithProfile(profile),
		awsclient.WithRegion(region),
	)
}

// startScanSpinner creates and starts a spinner with a message for the given scan
func startScanSpinner(what string) *spinner.Spinner {
	s := spinner.New(spinner.CharSets[9], 200*time.Millisecond)
	s.Suffix = fmt.Sprintf(" Scanning %s ...", what)
	s.Start()
	return s
}

func main() {
	logging.Init("error")

	rootCmd.Flags().BoolVarP(&showVersion, "version", "v", false, "Show version information")

	rootCmd.PersistentFlags().StringVar(&profile, "profile", "",
		"AWS profile to use from your shared config (default: AWS_PROFILE)")
	rootCmd.PersistentFlags().StringVarP(&region, "region", "r", utils.GetDefaultRegion(),
		"AWS region")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", awsclient.DescribeError(err))
		os.Exit(1)
	}
}
