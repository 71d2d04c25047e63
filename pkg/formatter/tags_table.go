package formatter

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/awsops/awsops/internal/models"
)

// Column layout of the tag report, matching instance/volume/snapshot id widths.
const tagReportDivider = "-------------------  ---------------------  ----------------------  -------------------"

// statusColor colors a tag status for terminal output. Output to a non-TTY
// is left uncolored by the color package.
func statusColor(status string) string {
	switch {
	case status == "Match" || status == "Already Matches":
		return color.GreenString(status)
	case strings.HasPrefix(status, "Differs"):
		return color.YellowString(status)
	case status == "Missing on Instance":
		return color.RedString(status)
	default:
		return status
	}
}

// PrintTagReportTable renders tag report or propagation entries grouped per
// instance, with a divider after each instance's block.
func PrintTagReportTable(w io.Writer, entries []models.TagReportEntry, scanStartTime time.Time, scanDuration time.Duration) {
	fmt.Fprintln(w, tagReportDivider)
	fmt.Fprintln(w, "Instance             Volume                 Snapshot                Tag Status")
	fmt.Fprintln(w, tagReportDivider)

	lastInstance := ""
	for _, entry := range entries {
		if lastInstance != "" && entry.InstanceID != lastInstance {
			fmt.Fprintln(w, tagReportDivider)
		}
		lastInstance = entry.InstanceID

		if entry.Skipped {
			fmt.Fprintf(w, "%s  %s\n", entry.InstanceID, entry.Status)
			continue
		}

		fmt.Fprintf(w, "%-19s  %-21s  %-22s  %s\n",
			entry.InstanceID,
			entry.VolumeID,
			entry.SnapshotID,
			statusColor(entry.Status),
		)
	}
	fmt.Fprintln(w, tagReportDivider)

	printTimestamp(w, scanStartTime, scanDuration)
}

// PrintTagDeletionList prints one line per resource carrying the tag,
// appending a deletion note for resources the tag was removed from.
func PrintTagDeletionList(w io.Writer, entries []models.TagDeletionEntry, tagKey string) {
	for _, entry := range entries {
		fmt.Fprintf(w, "%s: %s = %s", entry.ResourceID, tagKey, entry.Value)
		if entry.Deleted {
			fmt.Fprintf(w, " (Deleted tag '%s')", tagKey)
		}
		fmt.Fprintln(w)
	}
}
