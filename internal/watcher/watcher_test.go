package watcher

import (
	"bytes"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/awsops/awsops/pkg/trail"
)

const logFixture = `{
	"Records": [
		{
			"eventVersion": "1.05",
			"eventName": "RebootInstances",
			"eventTime": "2018-12-04T19:33:23Z",
			"eventSource": "ec2.amazonaws.com",
			"awsRegion": "us-west-2",
			"requestParameters": {
				"instancesSet": {"items": [{"instanceId": "i-alerting"}, {"instanceId": "i-untagged"}]}
			}
		},
		{
			"eventVersion": "1.05",
			"eventName": "DescribeInstances",
			"eventTime": "2018-12-04T19:35:00Z",
			"eventSource": "ec2.amazonaws.com",
			"awsRegion": "us-west-2",
			"requestParameters": null
		}
	]
}`

type fetcherFunc func(ctx context.Context, bucket, key string) (io.ReadCloser, error)

func (f fetcherFunc) Fetch(ctx context.Context, bucket, key string) (io.ReadCloser, error) {
	return f(ctx, bucket, key)
}

// mapTags serves instance tags from a map keyed "instanceID/tagKey" and
// records the regions it was queried in
type mapTags struct {
	tags    map[string]string
	regions []string
}

func (m *mapTags) InstanceTag(ctx context.Context, region, instanceID, key string) (string, error) {
	m.regions = append(m.regions, region)
	return m.tags[instanceID+"/"+key], nil
}

// capturePublisher records published messages
type capturePublisher struct {
	topics   []string
	messages []string
	err      error
}

func (p *capturePublisher) Publish(ctx context.Context, topicARN, message string) error {
	if p.err != nil {
		return p.err
	}
	p.topics = append(p.topics, topicARN)
	p.messages = append(p.messages, message)
	return nil
}

func gzipBytes(t *testing.T, data string) []byte {
	t.Helper()
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	_, err := gz.Write([]byte(data))
	require.NoError(t, err)
	require.NoError(t, gz.Close())
	return buf.Bytes()
}

func s3Notification(bucket, key string) events.S3Event {
	return events.S3Event{
		Records: []events.S3EventRecord{
			{
				S3: events.S3Entity{
					Bucket: events.S3Bucket{Name: bucket},
					Object: events.S3Object{Key: key},
				},
			},
		},
	}
}

func TestHandleS3Event(t *testing.T) {
	fixture := gzipBytes(t, logFixture)
	fetcher := fetcherFunc(func(ctx context.Context, bucket, key string) (io.ReadCloser, error) {
		return io.NopCloser(bytes.NewReader(fixture)), nil
	})

	tags := &mapTags{tags: map[string]string{
		"i-alerting/alert_topic_arn": "arn:aws:sns:us-west-2:123456789012:ops-alerts",
		"i-alerting/Name":            "web-1",
	}}
	alerts := &capturePublisher{}

	w := New(LoadConfig(), fetcher, tags, alerts)
	err := w.HandleS3Event(context.Background(), s3Notification("trail-bucket", "AWSLogs/x.json.gz"))
	require.NoError(t, err)

	// Only the tagged instance alerts; the untagged one is skipped.
	require.Len(t, alerts.topics, 1)
	assert.Equal(t, "arn:aws:sns:us-west-2:123456789012:ops-alerts", alerts.topics[0])

	message := alerts.messages[0]
	assert.Contains(t, message, "*** EC2 Instance Rebooted ***")
	assert.Contains(t, message, "Instance ID: i-alerting")
	assert.Contains(t, message, "Name Tag: web-1")
	assert.Contains(t, message, "*** CloudTrail Event ***")
	assert.Contains(t, message, `"eventName": "RebootInstances"`)
	assert.Contains(t, message, "*** Lambda Triggering Event ***")
	assert.Contains(t, message, "trail-bucket")

	// Tag lookups happen in the record's own region.
	for _, region := range tags.regions {
		assert.Equal(t, "us-west-2", region)
	}
}

func TestHandleS3EventFetchErrorFailsInvocation(t *testing.T) {
	fetcher := fetcherFunc(func(ctx context.Context, bucket, key string) (io.ReadCloser, error) {
		return nil, fmt.Errorf("access denied")
	})

	w := New(LoadConfig(), fetcher, &mapTags{}, &capturePublisher{})
	err := w.HandleS3Event(context.Background(), s3Notification("trail-bucket", "AWSLogs/x.json.gz"))
	require.Error(t, err)
}

func TestHandleS3EventPublishErrorDoesNotFailInvocation(t *testing.T) {
	fixture := gzipBytes(t, logFixture)
	fetcher := fetcherFunc(func(ctx context.Context, bucket, key string) (io.ReadCloser, error) {
		return io.NopCloser(bytes.NewReader(fixture)), nil
	})

	tags := &mapTags{tags: map[string]string{
		"i-alerting/alert_topic_arn": "arn:aws:sns:us-west-2:123456789012:ops-alerts",
	}}
	alerts := &capturePublisher{err: fmt.Errorf("topic gone")}

	w := New(LoadConfig(), fetcher, tags, alerts)
	err := w.HandleS3Event(context.Background(), s3Notification("trail-bucket", "AWSLogs/x.json.gz"))
	assert.NoError(t, err)
}

func TestBuildMessage(t *testing.T) {
	record := trail.Record{
		EventName: "RebootInstances",
		AwsRegion: "us-west-2",
		Raw:       []byte(`{"eventName":"RebootInstances","awsRegion":"us-west-2"}`),
	}

	message, err := BuildMessage("i-001", "web-1", record, []byte(`{"Records": []}`))
	require.NoError(t, err)

	assert.Contains(t, message, "Instance ID: i-001\n")
	assert.Contains(t, message, "Name Tag: web-1\n")
	assert.Contains(t, message, "    \"eventName\": \"RebootInstances\"")
	assert.Contains(t, message, `{"Records": []}`)
}

func TestBuildMessageBadRecord(t *testing.T) {
	record := trail.Record{Raw: []byte(`{broken`)}
	_, err := BuildMessage("i-001", "", record, nil)
	assert.Error(t, err)
}
