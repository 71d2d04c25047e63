package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/awsops/awsops/pkg/awsclient"
	"github.com/awsops/awsops/pkg/formatter"
)

var (
	sgVPCID string
	sgID    string
)

var sgCmd = &cobra.Command{
	Use:   "sg",
	Short: "Work with security groups",
}

var sgExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a VPC's security groups as YAML with terraform import hints",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadAWSConfig(cmd.Context())
		if err != nil {
			return err
		}
		client := awsclient.NewSGClient(cfg)

		groups, err := client.ExportSecurityGroups(cmd.Context(), sgVPCID, sgID)
		if err != nil {
			return err
		}

		return formatter.RenderSecurityGroupsYAML(os.Stdout, groups)
	},
}

func init() {
	sgExportCmd.Flags().StringVar(&sgVPCID, "vpc", "", "VPC ID to export security groups from (required)")
	sgExportCmd.MarkFlagRequired("vpc")
	sgExportCmd.Flags().StringVar(&sgID, "sg", "", "Limit to a specific security group ID")

	sgCmd.AddCommand(sgExportCmd)
	rootCmd.AddCommand(sgCmd)
}
