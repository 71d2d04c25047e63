// Package trail parses CloudTrail log files as delivered to S3: gzipped
// JSON documents holding a Records array.
package trail

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/tidwall/gjson"
)

// Record is one CloudTrail record. Raw retains the record's original JSON
// for inclusion in alert messages.
type Record struct {
	EventVersion      string          `json:"eventVersion"`
	EventName         string          `json:"eventName"`
	EventTime         time.Time       `json:"eventTime"`
	EventSource       string          `json:"eventSource"`
	AwsRegion         string          `json:"awsRegion"`
	RequestParameters json.RawMessage `json:"requestParameters"`
	Raw               json.RawMessage `json:"-"`
}

// logFile is the envelope of a CloudTrail log object.
type logFile struct {
	Records []json.RawMessage `json:"Records"`
}

// Parse decompresses a CloudTrail log object and returns its records sorted
// by event time ascending.
func Parse(r io.Reader) ([]Record, error) {
	gz, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("error decompressing log file: %w", err)
	}
	defer gz.Close()

	var file logFile
	if err := json.NewDecoder(gz).Decode(&file); err != nil {
		return nil, fmt.Errorf("error parsing log file: %w", err)
	}

	records := make([]Record, 0, len(file.Records))
	for i, raw := range file.Records {
		var record Record
		if err := json.Unmarshal(raw, &record); err != nil {
			return nil, fmt.Errorf("error parsing record %d: %w", i, err)
		}
		record.Raw = raw
		records = append(records, record)
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].EventTime.Before(records[j].EventTime)
	})

	return records, nil
}

// Filter returns the records whose event name is in names
func Filter(records []Record, names []string) []Record {
	var matched []Record
	for _, record := range records {
		for _, name := range names {
			if record.EventName == name {
				matched = append(matched, record)
				break
			}
		}
	}
	return matched
}

// InstanceIDs extracts the instance ids named in a record's request
// parameters (requestParameters.instancesSet.items[].instanceId).
func InstanceIDs(record Record) []string {
	var ids []string
	result := gjson.GetBytes(record.RequestParameters, "instancesSet.items.#.instanceId")
	for _, id := range result.Array() {
		if id.String() != "" {
			ids = append(ids, id.String())
		}
	}
	return ids
}
