package awsclient

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportStatus(t *testing.T) {
	tests := []struct {
		name          string
		instanceValue string
		resourceValue string
		expected      string
	}{
		{
			name:          "values match",
			instanceValue: "billing",
			resourceValue: "billing",
			expected:      "Match",
		},
		{
			name:          "values differ",
			instanceValue: "billing",
			resourceValue: "legacy",
			expected:      "Differs",
		},
		{
			name:          "resource missing the tag",
			instanceValue: "billing",
			resourceValue: "",
			expected:      "Differs",
		},
		{
			name:          "instance missing the tag",
			instanceValue: "",
			resourceValue: "billing",
			expected:      "Missing on Instance",
		},
		{
			name:          "instance tag empty counts as missing",
			instanceValue: "",
			resourceValue: "",
			expected:      "Missing on Instance",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, reportStatus(tt.instanceValue, tt.resourceValue))
		})
	}
}

func TestPropagateStatus(t *testing.T) {
	tests := []struct {
		name           string
		instanceValue  string
		resourceValue  string
		dryRun         bool
		expectedStatus string
		expectedUpdate bool
	}{
		{
			name:           "already matches",
			instanceValue:  "billing",
			resourceValue:  "billing",
			expectedStatus: "Already Matches",
			expectedUpdate: false,
		},
		{
			name:           "differs",
			instanceValue:  "billing",
			resourceValue:  "legacy",
			expectedStatus: "Differs - Updating (legacy --> billing)",
			expectedUpdate: true,
		},
		{
			name:           "missing renders as None",
			instanceValue:  "billing",
			resourceValue:  "",
			expectedStatus: "Differs - Updating (None --> billing)",
			expectedUpdate: true,
		},
		{
			name:           "dry run reports without updating",
			instanceValue:  "billing",
			resourceValue:  "legacy",
			dryRun:         true,
			expectedStatus: "Differs - Would Update (legacy --> billing)",
			expectedUpdate: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, update := propagateStatus(tt.instanceValue, tt.resourceValue, tt.dryRun)
			assert.Equal(t, tt.expectedStatus, status)
			assert.Equal(t, tt.expectedUpdate, update)
		})
	}
}

func TestInstanceFiltersToEC2Filters(t *testing.T) {
	filters := InstanceFilters{
		VPCID:      "vpc-51400a36",
		InstanceID: "i-0695b7d08f0dbb351",
		TagKey:     "AppName",
	}.toEC2Filters()

	require.Len(t, filters, 4)
	assert.Equal(t, "instance-state-name", *filters[0].Name)
	assert.Equal(t, []string{"running", "stopped"}, filters[0].Values)
	assert.Equal(t, "vpc-id", *filters[1].Name)
	assert.Equal(t, "instance-id", *filters[2].Name)
	assert.Equal(t, "tag-key", *filters[3].Name)

	// No optional filters: only the state filter remains.
	assert.Len(t, InstanceFilters{}.toEC2Filters(), 1)
}

// tagWalkMock wires a single instance with one volume and one snapshot
func tagWalkMock(instanceTags, volumeTags, snapshotTags []types.Tag) (*mockEC2, *[]string) {
	var tagged []string
	m := &mockEC2{
		describeInstances: func(ctx context.Context, params *ec2.DescribeInstancesInput) (*ec2.DescribeInstancesOutput, error) {
			return &ec2.DescribeInstancesOutput{
				Reservations: []types.Reservation{
					{
						Instances: []types.Instance{
							{InstanceId: aws.String("i-001"), Tags: instanceTags},
						},
					},
				},
			}, nil
		},
		describeVolumes: func(ctx context.Context, params *ec2.DescribeVolumesInput) (*ec2.DescribeVolumesOutput, error) {
			return &ec2.DescribeVolumesOutput{
				Volumes: []types.Volume{
					{VolumeId: aws.String("vol-001"), Tags: volumeTags},
				},
			}, nil
		},
		describeSnapshots: func(ctx context.Context, params *ec2.DescribeSnapshotsInput) (*ec2.DescribeSnapshotsOutput, error) {
			return &ec2.DescribeSnapshotsOutput{
				Snapshots: []types.Snapshot{
					{SnapshotId: aws.String("snap-001"), Tags: snapshotTags},
				},
			}, nil
		},
		createTags: func(ctx context.Context, params *ec2.CreateTagsInput) (*ec2.CreateTagsOutput, error) {
			tagged = append(tagged, params.Resources...)
			return &ec2.CreateTagsOutput{}, nil
		},
	}
	return m, &tagged
}

func tag(key, value string) types.Tag {
	return types.Tag{Key: aws.String(key), Value: aws.String(value)}
}

func TestBuildTagReport(t *testing.T) {
	m, _ := tagWalkMock(
		[]types.Tag{tag("AppName", "billing")},
		[]types.Tag{tag("AppName", "billing")},
		[]types.Tag{tag("AppName", "legacy")},
	)
	client := &TagsClient{client: m, region: "us-east-1"}

	entries, err := client.BuildTagReport(context.Background(), "AppName", InstanceFilters{})
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "i-001", entries[0].InstanceID)
	assert.Equal(t, "vol-001", entries[0].VolumeID)
	assert.Empty(t, entries[0].SnapshotID)
	assert.Equal(t, "Match", entries[0].Status)

	assert.Equal(t, "snap-001", entries[1].SnapshotID)
	assert.Equal(t, "Differs", entries[1].Status)
}

func TestPropagateTag(t *testing.T) {
	t.Run("writes differing resources", func(t *testing.T) {
		m, tagged := tagWalkMock(
			[]types.Tag{tag("AppName", "billing")},
			[]types.Tag{tag("AppName", "billing")},
			nil,
		)
		client := &TagsClient{client: m, region: "us-east-1"}

		entries, err := client.PropagateTag(context.Background(), "AppName", InstanceFilters{}, false)
		require.NoError(t, err)
		require.Len(t, entries, 2)

		assert.Equal(t, "Already Matches", entries[0].Status)
		assert.Equal(t, "Differs - Updating (None --> billing)", entries[1].Status)
		assert.Equal(t, []string{"snap-001"}, *tagged)
	})

	t.Run("dry run writes nothing", func(t *testing.T) {
		m, tagged := tagWalkMock(
			[]types.Tag{tag("AppName", "billing")},
			[]types.Tag{tag("AppName", "legacy")},
			nil,
		)
		client := &TagsClient{client: m, region: "us-east-1"}

		entries, err := client.PropagateTag(context.Background(), "AppName", InstanceFilters{}, true)
		require.NoError(t, err)
		require.Len(t, entries, 2)

		assert.Equal(t, "Differs - Would Update (legacy --> billing)", entries[0].Status)
		assert.Empty(t, *tagged)
	})

	t.Run("skips instance without usable tag value", func(t *testing.T) {
		m, tagged := tagWalkMock(
			[]types.Tag{tag("AppName", "")},
			nil,
			nil,
		)
		client := &TagsClient{client: m, region: "us-east-1"}

		entries, err := client.PropagateTag(context.Background(), "AppName", InstanceFilters{}, false)
		require.NoError(t, err)
		require.Len(t, entries, 1)

		assert.True(t, entries[0].Skipped)
		assert.Contains(t, entries[0].Status, "not defined or has no value")
		assert.Empty(t, *tagged)
	})
}

func TestListTaggedResources(t *testing.T) {
	m, _ := tagWalkMock(
		[]types.Tag{tag("AppName", "billing")},
		[]types.Tag{tag("AppName", "legacy")},
		[]types.Tag{tag("AppName", "old")},
	)

	var snapshotInput *ec2.DescribeSnapshotsInput
	inner := m.describeSnapshots
	m.describeSnapshots = func(ctx context.Context, params *ec2.DescribeSnapshotsInput) (*ec2.DescribeSnapshotsOutput, error) {
		snapshotInput = params
		return inner(ctx, params)
	}

	client := &TagsClient{client: m, region: "us-east-1"}
	entries, err := client.ListTaggedResources(context.Background(), "AppName", "")
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, "i-001", entries[0].ResourceID)
	assert.Equal(t, "billing", entries[0].Value)
	assert.Equal(t, "vol-001", entries[1].ResourceID)
	assert.Equal(t, "legacy", entries[1].Value)
	assert.Equal(t, "snap-001", entries[2].ResourceID)
	assert.Equal(t, "old", entries[2].Value)

	// Snapshot listing is limited to snapshots this account owns.
	require.NotNil(t, snapshotInput)
	assert.Equal(t, []string{"self"}, snapshotInput.OwnerIds)
}
