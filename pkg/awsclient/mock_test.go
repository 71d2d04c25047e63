package awsclient

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/iam"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sns"
)

// mockEC2 implements EC2API with per-operation function fields
type mockEC2 struct {
	describeInstances      func(ctx context.Context, params *ec2.DescribeInstancesInput) (*ec2.DescribeInstancesOutput, error)
	describeVolumes        func(ctx context.Context, params *ec2.DescribeVolumesInput) (*ec2.DescribeVolumesOutput, error)
	describeSnapshots      func(ctx context.Context, params *ec2.DescribeSnapshotsInput) (*ec2.DescribeSnapshotsOutput, error)
	describeSecurityGroups func(ctx context.Context, params *ec2.DescribeSecurityGroupsInput) (*ec2.DescribeSecurityGroupsOutput, error)
	createTags             func(ctx context.Context, params *ec2.CreateTagsInput) (*ec2.CreateTagsOutput, error)
	deleteTags             func(ctx context.Context, params *ec2.DeleteTagsInput) (*ec2.DeleteTagsOutput, error)
}

func (m *mockEC2) DescribeInstances(ctx context.Context, params *ec2.DescribeInstancesInput, optFns ...func(*ec2.Options)) (*ec2.DescribeInstancesOutput, error) {
	return m.describeInstances(ctx, params)
}

func (m *mockEC2) DescribeVolumes(ctx context.Context, params *ec2.DescribeVolumesInput, optFns ...func(*ec2.Options)) (*ec2.DescribeVolumesOutput, error) {
	return m.describeVolumes(ctx, params)
}

func (m *mockEC2) DescribeSnapshots(ctx context.Context, params *ec2.DescribeSnapshotsInput, optFns ...func(*ec2.Options)) (*ec2.DescribeSnapshotsOutput, error) {
	return m.describeSnapshots(ctx, params)
}

func (m *mockEC2) DescribeSecurityGroups(ctx context.Context, params *ec2.DescribeSecurityGroupsInput, optFns ...func(*ec2.Options)) (*ec2.DescribeSecurityGroupsOutput, error) {
	return m.describeSecurityGroups(ctx, params)
}

func (m *mockEC2) CreateTags(ctx context.Context, params *ec2.CreateTagsInput, optFns ...func(*ec2.Options)) (*ec2.CreateTagsOutput, error) {
	return m.createTags(ctx, params)
}

func (m *mockEC2) DeleteTags(ctx context.Context, params *ec2.DeleteTagsInput, optFns ...func(*ec2.Options)) (*ec2.DeleteTagsOutput, error) {
	return m.deleteTags(ctx, params)
}

// mockIAM implements IAMAPI with per-operation function fields
type mockIAM struct {
	listUsers            func(ctx context.Context, params *iam.ListUsersInput) (*iam.ListUsersOutput, error)
	listAccessKeys       func(ctx context.Context, params *iam.ListAccessKeysInput) (*iam.ListAccessKeysOutput, error)
	getAccessKeyLastUsed func(ctx context.Context, params *iam.GetAccessKeyLastUsedInput) (*iam.GetAccessKeyLastUsedOutput, error)
}

func (m *mockIAM) ListUsers(ctx context.Context, params *iam.ListUsersInput, optFns ...func(*iam.Options)) (*iam.ListUsersOutput, error) {
	return m.listUsers(ctx, params)
}

func (m *mockIAM) ListAccessKeys(ctx context.Context, params *iam.ListAccessKeysInput, optFns ...func(*iam.Options)) (*iam.ListAccessKeysOutput, error) {
	return m.listAccessKeys(ctx, params)
}

func (m *mockIAM) GetAccessKeyLastUsed(ctx context.Context, params *iam.GetAccessKeyLastUsedInput, optFns ...func(*iam.Options)) (*iam.GetAccessKeyLastUsedOutput, error) {
	return m.getAccessKeyLastUsed(ctx, params)
}

// mockDynamoDB implements DynamoDBAPI
type mockDynamoDB struct {
	batchWriteItem func(ctx context.Context, params *dynamodb.BatchWriteItemInput) (*dynamodb.BatchWriteItemOutput, error)
}

func (m *mockDynamoDB) BatchWriteItem(ctx context.Context, params *dynamodb.BatchWriteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.BatchWriteItemOutput, error) {
	return m.batchWriteItem(ctx, params)
}

// mockS3 implements S3API
type mockS3 struct {
	getObject func(ctx context.Context, params *s3.GetObjectInput) (*s3.GetObjectOutput, error)
}

func (m *mockS3) GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	return m.getObject(ctx, params)
}

// mockSNS implements SNSAPI
type mockSNS struct {
	publish func(ctx context.Context, params *sns.PublishInput) (*sns.PublishOutput, error)
}

func (m *mockSNS) Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error) {
	return m.publish(ctx, params)
}
