package models

// ImportSummary represents the result of a CSV import into DynamoDB
type ImportSummary struct {
	RowsRead     int // Data rows read from the CSV (header excluded)
	ItemsWritten int // Items successfully written to the table
	SkippedRows  int // Rows skipped for having no partition key value
	SkippedCells int // Empty cells dropped from written items
}
