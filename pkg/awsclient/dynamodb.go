package awsclient

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/awsops/awsops/internal/models"
)

// batchWriteSize is the BatchWriteItem request limit.
const batchWriteSize = 25

// maxBatchAttempts bounds the UnprocessedItems resubmit loop per batch.
const maxBatchAttempts = 5

// DynamoDBClient imports CSV rows into a table
type DynamoDBClient struct {
	client DynamoDBAPI
	table  string
}

// NewDynamoDBClient creates a new DynamoDBClient for a table from a loaded
// AWS config
func NewDynamoDBClient(cfg aws.Config, table string) *DynamoDBClient {
	return &DynamoDBClient{
		client: dynamodb.NewFromConfig(cfg),
		table:  table,
	}
}

// buildItem maps one CSV row onto a DynamoDB item. Column names come from
// the lowercased header; every value is written as a string attribute and
// empty cells are dropped because DynamoDB rejects empty values.
func buildItem(header, row []string) (map[string]types.AttributeValue, int) {
	item := make(map[string]types.AttributeValue, len(header))
	skippedCells := 0
	for i, name := range header {
		if row[i] == "" {
			skippedCells++
			continue
		}
		item[name] = &types.AttributeValueMemberS{Value: row[i]}
	}
	return item, skippedCells
}

// ImportCSV reads CSV data and writes each row as an item. The first row is
// the header; its first column is the table's partition key, and rows whose
// partition key cell is empty are skipped. progress, when non-nil, is called
// once per row read.
func (c *DynamoDBClient) ImportCSV(ctx context.Context, r io.Reader, progress func()) (models.ImportSummary, error) {
	var summary models.ImportSummary

	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err == io.EOF {
		return summary, fmt.Errorf("CSV file is empty")
	}
	if err != nil {
		return summary, fmt.Errorf("error reading CSV header: %w", err)
	}
	for i, name := range header {
		header[i] = strings.ToLower(name)
	}

	var batch []types.WriteRequest
	rowNumber := 1

	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		rowNumber++
		if err != nil {
			return summary, fmt.Errorf("error reading CSV row %d: %w", rowNumber, err)
		}
		if progress != nil {
			progress()
		}
		summary.RowsRead++

		// The partition key is the first column and cannot be empty.
		if row[0] == "" {
			summary.SkippedRows++
			continue
		}

		item, skippedCells := buildItem(header, row)
		summary.SkippedCells += skippedCells

		batch = append(batch, types.WriteRequest{
			PutRequest: &types.PutRequest{Item: item},
		})
		if len(batch) == batchWriteSize {
			if err := c.writeBatch(ctx, batch); err != nil {
				return summary, err
			}
			summary.ItemsWritten += len(batch)
			batch = nil
		}
	}

	if len(batch) > 0 {
		if err := c.writeBatch(ctx, batch); err != nil {
			return summary, err
		}
		summary.ItemsWritten += len(batch)
	}

	return summary, nil
}

// writeBatch submits one batch and resubmits any unprocessed items until the
// batch drains or the attempt budget runs out.
func (c *DynamoDBClient) writeBatch(ctx context.Context, batch []types.WriteRequest) error {
	pending := batch
	for attempt := 1; attempt <= maxBatchAttempts; attempt++ {
		result, err := c.client.BatchWriteItem(ctx, &dynamodb.BatchWriteItemInput{
			RequestItems: map[string][]types.WriteRequest{
				c.table: pending,
			},
		})
		if err != nil {
			return fmt.Errorf("error writing batch to table %s: %w", c.table, err)
		}

		pending = result.UnprocessedItems[c.table]
		if len(pending) == 0 {
			return nil
		}
	}
	return fmt.Errorf("%d unprocessed items remain for table %s after %d attempts", len(pending), c.table, maxBatchAttempts)
}
