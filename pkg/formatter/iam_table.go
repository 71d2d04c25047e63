package formatter

import (
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	"github.com/awsops/awsops/internal/models"
)

// FormatAccessKeyTable writes IAM access key information in a table format
func FormatAccessKeyTable(w io.Writer, keys []models.AccessKeyInfo) {
	if len(keys) == 0 {
		fmt.Fprintln(w, "No access keys found.")
		return
	}

	// Sort keys: oldest first, then by user name
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].AgeDays != keys[j].AgeDays {
			return keys[i].AgeDays > keys[j].AgeDays
		}
		return keys[i].UserName < keys[j].UserName
	})

	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', tabwriter.TabIndent)

	fmt.Fprintln(tw, "USER\tACCESS KEY ID\tSTATUS\tAGE (DAYS)\tLAST USED\tSERVICE\tREGION")

	for _, key := range keys {
		lastUsedStr := "Never"
		service := "-"
		region := "-"
		if key.LastUsed != nil {
			lastUsedStr = fmt.Sprintf("%s (%s)", formatDate(*key.LastUsed), humanize.Time(*key.LastUsed))
		}
		if key.LastUsedService != "" && key.LastUsedService != "N/A" {
			service = key.LastUsedService
		}
		if key.LastUsedRegion != "" && key.LastUsedRegion != "N/A" {
			region = key.LastUsedRegion
		}

		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\t%s\t%s\n",
			key.UserName,
			key.AccessKeyID,
			key.Status,
			key.AgeDays,
			lastUsedStr,
			service,
			region,
		)
	}

	tw.Flush()

	inactiveCount := 0
	for _, key := range keys {
		if key.Status == "Inactive" {
			inactiveCount++
		}
	}

	fmt.Fprintf(w, "\nSummary: %d inactive access keys out of %d total keys\n",
		inactiveCount, len(keys))
}
