package formatter

import (
	"fmt"
	"io"
	"time"
)

// printTimestamp prints the scan timestamp and duration
func printTimestamp(w io.Writer, scanStartTime time.Time, scanDuration time.Duration) {
	// Format the scan time
	timeStr := scanStartTime.Format("2006-01-02 15:04:05")

	// Format the duration
	durationStr := fmt.Sprintf("%.2fs", scanDuration.Seconds())

	fmt.Fprintf(w, "Scan completed at %s (took %s)\n", timeStr, durationStr)
}

// formatDate formats a time as a date string
func formatDate(t time.Time) string {
	return t.Format("2006-01-02")
}
