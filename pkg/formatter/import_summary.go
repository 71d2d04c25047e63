package formatter

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"

	"github.com/awsops/awsops/internal/models"
)

// PrintImportSummary prints the result of a CSV import
func PrintImportSummary(w io.Writer, summary models.ImportSummary, table, fileName string, fileSize int64) {
	fmt.Fprintf(w, "\nImported %d items into %s from %s (%s)\n",
		summary.ItemsWritten, table, fileName, humanize.Bytes(uint64(fileSize)))
	fmt.Fprintf(w, "Rows read: %d, rows skipped (no partition key): %d, empty cells dropped: %d\n",
		summary.RowsRead, summary.SkippedRows, summary.SkippedCells)
}
