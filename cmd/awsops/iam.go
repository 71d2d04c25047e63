package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/awsops/awsops/internal/models"
	"github.com/awsops/awsops/pkg/awsclient"
	"github.com/awsops/awsops/pkg/formatter"
)

var iamAllKeys bool

var iamCmd = &cobra.Command{
	Use:   "iam",
	Short: "Audit IAM resources",
}

var iamKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List IAM access keys with age and last-used details (inactive only by default)",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Printf("Note: IAM is a global service. Region parameter '%s' will be used for configuration only.\n", region)

		cfg, err := loadAWSConfig(cmd.Context())
		if err != nil {
			return err
		}
		client := awsclient.NewIAMClient(cfg)

		scanStartTime := time.Now()
		s := startScanSpinner("IAM users and access keys")

		keys, err := client.ListAccessKeys(cmd.Context())
		scanDuration := time.Since(scanStartTime)
		if err != nil {
			s.Stop()
			return err
		}

		if !iamAllKeys {
			var inactive []models.AccessKeyInfo
			for _, key := range keys {
				if key.Status == "Inactive" {
					inactive = append(inactive, key)
				}
			}
			keys = inactive
		}

		s.FinalMSG = fmt.Sprintf("✓ [%d keys found] IAM access keys analyzed - Completed in %.2f seconds\n",
			len(keys), scanDuration.Seconds())
		s.Stop()

		formatter.FormatAccessKeyTable(os.Stdout, keys)
		return nil
	},
}

func init() {
	iamKeysCmd.Flags().BoolVar(&iamAllKeys, "all", false, "Show all access keys, not just inactive ones")

	iamCmd.AddCommand(iamKeysCmd)
	rootCmd.AddCommand(iamCmd)
}
