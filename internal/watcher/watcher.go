// Package watcher implements the CloudTrail alerting pipeline: fetch the
// delivered log object, decompress and parse it, filter records by event
// name, look up the alert topic from the instance's tags, and publish a
// notification.
package watcher

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/apex/log"
	"github.com/aws/aws-lambda-go/events"

	"github.com/awsops/awsops/pkg/trail"
	"github.com/awsops/awsops/pkg/utils"
)

// ObjectFetcher fetches a log object from S3.
type ObjectFetcher interface {
	Fetch(ctx context.Context, bucket, key string) (io.ReadCloser, error)
}

// TagLookup reads one tag from one instance in a given region.
type TagLookup interface {
	InstanceTag(ctx context.Context, region, instanceID, key string) (string, error)
}

// Publisher delivers an alert message to a topic.
type Publisher interface {
	Publish(ctx context.Context, topicARN, message string) error
}

// Watcher processes S3 log-delivery notifications
type Watcher struct {
	cfg     Config
	objects ObjectFetcher
	tags    TagLookup
	alerts  Publisher
}

// New creates a Watcher
func New(cfg Config, objects ObjectFetcher, tags TagLookup, alerts Publisher) *Watcher {
	return &Watcher{
		cfg:     cfg,
		objects: objects,
		tags:    tags,
		alerts:  alerts,
	}
}

// HandleS3Event processes every log object named in the notification.
// Failures on a single record or instance are logged and skipped; failures
// to fetch or parse a log object fail the invocation so the platform can
// retry delivery.
func (w *Watcher) HandleS3Event(ctx context.Context, event events.S3Event) error {
	eventJSON, err := json.MarshalIndent(event, "", "    ")
	if err != nil {
		return fmt.Errorf("error encoding triggering event: %w", err)
	}

	for _, eventRecord := range event.Records {
		bucket := eventRecord.S3.Bucket.Name
		key := eventRecord.S3.Object.Key

		log.Infof("Loading CloudTrail log file s3://%s/%s", bucket, key)
		records, err := w.loadRecords(ctx, bucket, key)
		if err != nil {
			return err
		}
		log.Infof("Number of records in log file: %d", len(records))

		matched := trail.Filter(records, w.cfg.EventNames)
		log.Infof("Records matching %v: %d", w.cfg.EventNames, len(matched))

		for _, record := range matched {
			w.processRecord(ctx, record, eventJSON)
		}
	}

	return nil
}

// loadRecords fetches and parses one CloudTrail log object
func (w *Watcher) loadRecords(ctx context.Context, bucket, key string) ([]trail.Record, error) {
	body, err := w.objects.Fetch(ctx, bucket, key)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	return trail.Parse(body)
}

// processRecord alerts on every instance named in one matched record
func (w *Watcher) processRecord(ctx context.Context, record trail.Record, eventJSON []byte) {
	for _, instanceID := range trail.InstanceIDs(record) {
		log.Infof("Instance %s matched event %s in %s", instanceID, record.EventName, record.AwsRegion)

		topicARN, err := w.tags.InstanceTag(ctx, record.AwsRegion, instanceID, w.cfg.AlertTagKey)
		if err != nil {
			log.WithError(err).Errorf("Skipping instance %s", instanceID)
			continue
		}
		if topicARN == "" {
			log.Infof("Tag '%s' not found on instance %s", w.cfg.AlertTagKey, instanceID)
			continue
		}

		nameTag, err := w.tags.InstanceTag(ctx, record.AwsRegion, instanceID, w.cfg.NameTagKey)
		if err != nil {
			log.WithError(err).Errorf("Skipping instance %s", instanceID)
			continue
		}

		message, err := BuildMessage(instanceID, nameTag, record, eventJSON)
		if err != nil {
			log.WithError(err).Errorf("Skipping instance %s", instanceID)
			continue
		}

		log.Infof("Alerting to SNS Topic: %s", topicARN)
		if err := w.alerts.Publish(ctx, topicARN, message); err != nil {
			log.WithError(err).Errorf("Failed to publish alert for instance %s", instanceID)
		}
	}
}

// BuildMessage renders the alert body: instance identity, the CloudTrail
// record, and the notification that triggered this invocation.
func BuildMessage(instanceID, nameTag string, record trail.Record, eventJSON []byte) (string, error) {
	recordJSON, err := utils.IndentJSON(record.Raw)
	if err != nil {
		return "", fmt.Errorf("error rendering record JSON: %w", err)
	}

	message := "*** EC2 Instance Rebooted ***\n\n"
	message += fmt.Sprintf("Instance ID: %s\n", instanceID)
	message += fmt.Sprintf("Name Tag: %s\n\n", nameTag)
	message += fmt.Sprintf("*** CloudTrail Event ***\n\n%s\n\n", recordJSON)
	message += fmt.Sprintf("*** Lambda Triggering Event ***\n\n%s\n\n", eventJSON)
	return message, nil
}
