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

var (
	tagsTagKey     string
	tagsVPCID      string
	tagsInstanceID string
	tagsFilterKey  string
	tagsDryRun     bool
)

var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "Report on, propagate, or delete EC2 resource tags",
}

var tagsReportCmd = &cobra.Command{
	Use:   "report",
	Short: "Report the state of a tag across instances, volumes, and snapshots",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTagWalk(cmd, false, false)
	},
}

var tagsPropagateCmd = &cobra.Command{
	Use:   "propagate",
	Short: "Copy an instance tag to its attached volumes and their snapshots",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTagWalk(cmd, true, tagsDryRun)
	},
}

var tagsDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete a tag from instances, volumes, and snapshots carrying it",
	RunE:  runTagsDelete,
}

// runTagWalk runs the instance -> volume -> snapshot walk in report or
// propagate mode and prints the resulting table.
func runTagWalk(cmd *cobra.Command, propagate, dryRun bool) error {
	cfg, err := loadAWSConfig(cmd.Context())
	if err != nil {
		return err
	}
	client := awsclient.NewTagsClient(cfg)

	filters := awsclient.InstanceFilters{
		VPCID:      tagsVPCID,
		InstanceID: tagsInstanceID,
		TagKey:     tagsFilterKey,
	}

	scanStartTime := time.Now()
	s := startScanSpinner(fmt.Sprintf("tag '%s' on EC2 instances, volumes, and snapshots", tagsTagKey))

	var entries []models.TagReportEntry
	if propagate {
		entries, err = client.PropagateTag(cmd.Context(), tagsTagKey, filters, dryRun)
	} else {
		entries, err = client.BuildTagReport(cmd.Context(), tagsTagKey, filters)
	}
	scanDuration := time.Since(scanStartTime)

	if err != nil {
		s.Stop()
		return err
	}

	s.FinalMSG = fmt.Sprintf("✓ [%d rows] Tag scan completed in %.2f seconds\n",
		len(entries), scanDuration.Seconds())
	s.Stop()

	formatter.PrintTagReportTable(os.Stdout, entries, scanStartTime, scanDuration)
	return nil
}

// runTagsDelete lists every resource carrying the tag and deletes the tag
// from each unless --dry-run is set.
func runTagsDelete(cmd *cobra.Command, args []string) error {
	cfg, err := loadAWSConfig(cmd.Context())
	if err != nil {
		return err
	}
	client := awsclient.NewTagsClient(cfg)

	entries, err := client.ListTaggedResources(cmd.Context(), tagsTagKey, tagsInstanceID)
	if err != nil {
		return err
	}

	for i := range entries {
		if tagsDryRun {
			continue
		}
		if err := client.RemoveTag(cmd.Context(), entries[i].ResourceID, tagsTagKey); err != nil {
			formatter.PrintTagDeletionList(os.Stdout, entries[:i+1], tagsTagKey)
			return err
		}
		entries[i].Deleted = true
	}

	formatter.PrintTagDeletionList(os.Stdout, entries, tagsTagKey)
	return nil
}

func init() {
	for _, cmd := range []*cobra.Command{tagsReportCmd, tagsPropagateCmd, tagsDeleteCmd} {
		cmd.Flags().StringVar(&tagsTagKey, "tag", "", "Tag key to operate on (required)")
		cmd.MarkFlagRequired("tag")
		cmd.Flags().StringVar(&tagsInstanceID, "instance", "", "Limit to a specific instance ID")
	}

	for _, cmd := range []*cobra.Command{tagsReportCmd, tagsPropagateCmd} {
		cmd.Flags().StringVar(&tagsVPCID, "vpc", "", "Limit to a specific VPC ID")
		cmd.Flags().StringVar(&tagsFilterKey, "tag-key", "", "Limit to instances carrying this tag key, regardless of value")
	}

	tagsPropagateCmd.Flags().BoolVar(&tagsDryRun, "dry-run", false, "Show what would be done without doing it")
	tagsDeleteCmd.Flags().BoolVar(&tagsDryRun, "dry-run", false, "Show what would be done without doing it")

	tagsCmd.AddCommand(tagsReportCmd, tagsPropagateCmd, tagsDeleteCmd)
	rootCmd.AddCommand(tagsCmd)
}
