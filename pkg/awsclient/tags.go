package awsclient

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"

	"github.com/awsops/awsops/internal/models"
	"github.com/awsops/awsops/pkg/utils"
)

// TagsClient handles EC2 instance/volume/snapshot tag operations
type TagsClient struct {
	client EC2API
	region string
}

// NewTagsClient creates a new TagsClient from a loaded AWS config
func NewTagsClient(cfg aws.Config) *TagsClient {
	return &TagsClient{
		client: ec2.NewFromConfig(cfg),
		region: cfg.Region,
	}
}

// InstanceFilters limits which instances a tag operation walks.
// Empty fields are not applied as filters.
type InstanceFilters struct {
	VPCID      string
	InstanceID string
	TagKey     string
}

// toEC2Filters builds the server-side filter list. Instances are always
// limited to running and stopped states.
func (f InstanceFilters) toEC2Filters() []types.Filter {
	filters := []types.Filter{
		{
			Name:   aws.String("instance-state-name"),
			Values: []string{"running", "stopped"},
		},
	}
	if f.VPCID != "" {
		filters = append(filters, types.Filter{
			Name:   aws.String("vpc-id"),
			Values: []string{f.VPCID},
		})
	}
	if f.InstanceID != "" {
		filters = append(filters, types.Filter{
			Name:   aws.String("instance-id"),
			Values: []string{f.InstanceID},
		})
	}
	if f.TagKey != "" {
		filters = append(filters, types.Filter{
			Name:   aws.String("tag-key"),
			Values: []string{f.TagKey},
		})
	}
	return filters
}

// ListInstances returns all running or stopped instances matching the filters
func (c *TagsClient) ListInstances(ctx context.Context, f InstanceFilters) ([]types.Instance, error) {
	input := &ec2.DescribeInstancesInput{
		Filters: f.toEC2Filters(),
	}

	var instances []types.Instance
	paginator := ec2.NewDescribeInstancesPaginator(c.client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("error querying EC2 instances: %w", err)
		}
		for _, reservation := range page.Reservations {
			instances = append(instances, reservation.Instances...)
		}
	}

	return instances, nil
}

// VolumesForInstance returns the EBS volumes attached to an instance
func (c *TagsClient) VolumesForInstance(ctx context.Context, instanceID string) ([]types.Volume, error) {
	input := &ec2.DescribeVolumesInput{
		Filters: []types.Filter{
			{
				Name:   aws.String("attachment.instance-id"),
				Values: []string{instanceID},
			},
		},
	}

	var volumes []types.Volume
	paginator := ec2.NewDescribeVolumesPaginator(c.client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("error querying volumes for instance %s: %w", instanceID, err)
		}
		volumes = append(volumes, page.Volumes...)
	}

	return volumes, nil
}

// SnapshotsForVolume returns the snapshots owned by this account that were
// created from the given volume
func (c *TagsClient) SnapshotsForVolume(ctx context.Context, volumeID string) ([]types.Snapshot, error) {
	input := &ec2.DescribeSnapshotsInput{
		Filters: []types.Filter{
			{
				Name:   aws.String("volume-id"),
				Values: []string{volumeID},
			},
		},
		OwnerIds: []string{"self"},
	}

	var snapshots []types.Snapshot
	paginator := ec2.NewDescribeSnapshotsPaginator(c.client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("error querying snapshots for volume %s: %w", volumeID, err)
		}
		snapshots = append(snapshots, page.Snapshots...)
	}

	return snapshots, nil
}

// SetTag sets a single tag on a single resource
func (c *TagsClient) SetTag(ctx context.Context, resourceID, key, value string) error {
	_, err := c.client.CreateTags(ctx, &ec2.CreateTagsInput{
		Resources: []string{resourceID},
		Tags: []types.Tag{
			{Key: aws.String(key), Value: aws.String(value)},
		},
	})
	if err != nil {
		return fmt.Errorf("error setting tag %q on %s: %w", key, resourceID, err)
	}
	return nil
}

// RemoveTag deletes a single tag key from a single resource
func (c *TagsClient) RemoveTag(ctx context.Context, resourceID, key string) error {
	_, err := c.client.DeleteTags(ctx, &ec2.DeleteTagsInput{
		Resources: []string{resourceID},
		Tags: []types.Tag{
			{Key: aws.String(key)},
		},
	})
	if err != nil {
		return fmt.Errorf("error deleting tag %q from %s: %w", key, resourceID, err)
	}
	return nil
}

// reportStatus compares the instance's value for a tag against a volume or
// snapshot's value. An instance tag that is absent or empty means the tag is
// not usable as a propagation source.
func reportStatus(instanceValue, resourceValue string) string {
	if instanceValue == "" {
		return "Missing on Instance"
	}
	if instanceValue == resourceValue {
		return "Match"
	}
	return "Differs"
}

// propagateStatus decides the propagation outcome for one resource and
// returns whether the tag needs to be written.
func propagateStatus(instanceValue, resourceValue string, dryRun bool) (string, bool) {
	if instanceValue == resourceValue {
		return "Already Matches", false
	}
	oldValue := resourceValue
	if oldValue == "" {
		oldValue = "None"
	}
	if dryRun {
		return fmt.Sprintf("Differs - Would Update (%s --> %s)", oldValue, instanceValue), false
	}
	return fmt.Sprintf("Differs - Updating (%s --> %s)", oldValue, instanceValue), true
}

// BuildTagReport walks instance -> attached volumes -> volume snapshots and
// reports the state of tagKey on each volume and snapshot relative to the
// instance's value.
func (c *TagsClient) BuildTagReport(ctx context.Context, tagKey string, f InstanceFilters) ([]models.TagReportEntry, error) {
	instances, err := c.ListInstances(ctx, f)
	if err != nil {
		return nil, err
	}

	var entries []models.TagReportEntry
	for _, instance := range instances {
		instanceID := utils.SafeDeref(instance.InstanceId)
		instanceValue := utils.GetTagValue(instance.Tags, tagKey)

		volumes, err := c.VolumesForInstance(ctx, instanceID)
		if err != nil {
			return nil, err
		}
		for _, volume := range volumes {
			volumeID := utils.SafeDeref(volume.VolumeId)
			entries = append(entries, models.TagReportEntry{
				InstanceID: instanceID,
				VolumeID:   volumeID,
				Status:     reportStatus(instanceValue, utils.GetTagValue(volume.Tags, tagKey)),
			})

			snapshots, err := c.SnapshotsForVolume(ctx, volumeID)
			if err != nil {
				return nil, err
			}
			for _, snapshot := range snapshots {
				entries = append(entries, models.TagReportEntry{
					InstanceID: instanceID,
					VolumeID:   volumeID,
					SnapshotID: utils.SafeDeref(snapshot.SnapshotId),
					Status:     reportStatus(instanceValue, utils.GetTagValue(snapshot.Tags, tagKey)),
				})
			}
		}
	}

	return entries, nil
}

// PropagateTag copies tagKey's value from each instance to its attached
// volumes and their snapshots. Instances without a usable value for the tag
// produce a skip entry. Under dryRun no tags are written.
func (c *TagsClient) PropagateTag(ctx context.Context, tagKey string, f InstanceFilters, dryRun bool) ([]models.TagReportEntry, error) {
	instances, err := c.ListInstances(ctx, f)
	if err != nil {
		return nil, err
	}

	var entries []models.TagReportEntry
	for _, instance := range instances {
		instanceID := utils.SafeDeref(instance.InstanceId)
		instanceValue := utils.GetTagValue(instance.Tags, tagKey)

		if instanceValue == "" {
			entries = append(entries, models.TagReportEntry{
				InstanceID: instanceID,
				Status:     fmt.Sprintf("--> Tag key '%s' not defined or has no value.  Skipping.", tagKey),
				Skipped:    true,
			})
			continue
		}

		volumes, err := c.VolumesForInstance(ctx, instanceID)
		if err != nil {
			return nil, err
		}
		for _, volume := range volumes {
			volumeID := utils.SafeDeref(volume.VolumeId)
			status, update := propagateStatus(instanceValue, utils.GetTagValue(volume.Tags, tagKey), dryRun)
			if update {
				if err := c.SetTag(ctx, volumeID, tagKey, instanceValue); err != nil {
					return entries, err
				}
			}
			entries = append(entries, models.TagReportEntry{
				InstanceID: instanceID,
				VolumeID:   volumeID,
				Status:     status,
			})

			snapshots, err := c.SnapshotsForVolume(ctx, volumeID)
			if err != nil {
				return nil, err
			}
			for _, snapshot := range snapshots {
				snapshotID := utils.SafeDeref(snapshot.SnapshotId)
				status, update := propagateStatus(instanceValue, utils.GetTagValue(snapshot.Tags, tagKey), dryRun)
				if update {
					if err := c.SetTag(ctx, snapshotID, tagKey, instanceValue); err != nil {
						return entries, err
					}
				}
				entries = append(entries, models.TagReportEntry{
					InstanceID: instanceID,
					VolumeID:   volumeID,
					SnapshotID: snapshotID,
					Status:     status,
				})
			}
		}
	}

	return entries, nil
}

// ListTaggedResources returns the instances, volumes, and snapshots carrying
// tagKey, each with its current value. The three listings are filtered
// independently: instances by state and tag key, volumes by tag key (and
// attachment when instanceID is set), snapshots owned by this account by
// tag key.
func (c *TagsClient) ListTaggedResources(ctx context.Context, tagKey, instanceID string) ([]models.TagDeletionEntry, error) {
	var entries []models.TagDeletionEntry

	instanceFilters := []types.Filter{
		{Name: aws.String("instance-state-name"), Values: []string{"running", "stopped"}},
		{Name: aws.String("tag-key"), Values: []string{tagKey}},
	}
	if instanceID != "" {
		instanceFilters = append(instanceFilters, types.Filter{
			Name:   aws.String("instance-id"),
			Values: []string{instanceID},
		})
	}

	instancePager := ec2.NewDescribeInstancesPaginator(c.client, &ec2.DescribeInstancesInput{Filters: instanceFilters})
	for instancePager.HasMorePages() {
		page, err := instancePager.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("error querying tagged instances: %w", err)
		}
		for _, reservation := range page.Reservations {
			for _, instance := range reservation.Instances {
				entries = append(entries, models.TagDeletionEntry{
					ResourceID: utils.SafeDeref(instance.InstanceId),
					Value:      utils.GetTagValue(instance.Tags, tagKey),
				})
			}
		}
	}

	volumeFilters := []types.Filter{
		{Name: aws.String("tag-key"), Values: []string{tagKey}},
	}
	if instanceID != "" {
		volumeFilters = append(volumeFilters, types.Filter{
			Name:   aws.String("attachment.instance-id"),
			Values: []string{instanceID},
		})
	}

	volumePager := ec2.NewDescribeVolumesPaginator(c.client, &ec2.DescribeVolumesInput{Filters: volumeFilters})
	for volumePager.HasMorePages() {
		page, err := volumePager.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("error querying tagged volumes: %w", err)
		}
		for _, volume := range page.Volumes {
			entries = append(entries, models.TagDeletionEntry{
				ResourceID: utils.SafeDeref(volume.VolumeId),
				Value:      utils.GetTagValue(volume.Tags, tagKey),
			})
		}
	}

	snapshotPager := ec2.NewDescribeSnapshotsPaginator(c.client, &ec2.DescribeSnapshotsInput{
		Filters: []types.Filter{
			{Name: aws.String("tag-key"), Values: []string{tagKey}},
		},
		OwnerIds: []string{"self"},
	})
	for snapshotPager.HasMorePages() {
		page, err := snapshotPager.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("error querying tagged snapshots: %w", err)
		}
		for _, snapshot := range page.Snapshots {
			entries = append(entries, models.TagDeletionEntry{
				ResourceID: utils.SafeDeref(snapshot.SnapshotId),
				Value:      utils.GetTagValue(snapshot.Tags, tagKey),
			})
		}
	}

	return entries, nil
}
