package models

// TagReportEntry represents one row of the tag propagation report.
// VolumeID is empty for instance-level rows (e.g. skip notices), and
// SnapshotID is empty for volume-level rows.
type TagReportEntry struct {
	InstanceID string
	VolumeID   string
	SnapshotID string
	Status     string
	Skipped    bool
}

// TagDeletionEntry represents a resource carrying the tag selected for
// deletion, along with the tag's current value.
type TagDeletionEntry struct {
	ResourceID string
	Value      string
	Deleted    bool
}
