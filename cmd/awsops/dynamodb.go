package main

import (
	"fmt"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/awsops/awsops/pkg/awsclient"
	"github.com/awsops/awsops/pkg/formatter"
)

var (
	ddbTable   string
	ddbCSVFile string
)

var dynamodbCmd = &cobra.Command{
	Use:   "dynamodb",
	Short: "Work with DynamoDB tables",
}

var dynamodbImportCmd = &cobra.Command{
	Use:   "import",
	Short: "Import CSV data into a table (first column is the partition key)",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadAWSConfig(cmd.Context())
		if err != nil {
			return err
		}
		client := awsclient.NewDynamoDBClient(cfg, ddbTable)

		file, err := os.Open(ddbCSVFile)
		if err != nil {
			return fmt.Errorf("error opening CSV file: %w", err)
		}
		defer file.Close()

		stat, err := file.Stat()
		if err != nil {
			return fmt.Errorf("error reading CSV file info: %w", err)
		}

		bar := progressbar.Default(-1, "importing rows")
		summary, err := client.ImportCSV(cmd.Context(), file, func() {
			bar.Add(1)
		})
		bar.Finish()
		if err != nil {
			return err
		}

		formatter.PrintImportSummary(os.Stdout, summary, ddbTable, ddbCSVFile, stat.Size())
		return nil
	},
}

func init() {
	dynamodbImportCmd.Flags().StringVar(&ddbTable, "table", "", "Name of the DynamoDB table to import to (required)")
	dynamodbImportCmd.MarkFlagRequired("table")
	dynamodbImportCmd.Flags().StringVar(&ddbCSVFile, "csv", "", "CSV file containing data to import (required)")
	dynamodbImportCmd.MarkFlagRequired("csv")

	dynamodbCmd.AddCommand(dynamodbImportCmd)
	rootCmd.AddCommand(dynamodbCmd)
}
