package awsclient

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"

	"github.com/awsops/awsops/pkg/utils"
)

// InstanceTagLookup reads a single tag off a single instance. The region is
// supplied per call because CloudTrail records name the region the event
// happened in.
type InstanceTagLookup struct {
	newClient func(region string) EC2API
}

// NewInstanceTagLookup creates a new InstanceTagLookup from a loaded AWS config
func NewInstanceTagLookup(cfg aws.Config) *InstanceTagLookup {
	return &InstanceTagLookup{
		newClient: func(region string) EC2API {
			return ec2.NewFromConfig(cfg, func(o *ec2.Options) {
				o.Region = region
			})
		},
	}
}

// InstanceTag returns the value of key on the instance, or "" when the
// instance does not carry the tag.
func (l *InstanceTagLookup) InstanceTag(ctx context.Context, region, instanceID, key string) (string, error) {
	client := l.newClient(region)

	result, err := client.DescribeInstances(ctx, &ec2.DescribeInstancesInput{
		Filters: []types.Filter{
			{Name: aws.String("instance-id"), Values: []string{instanceID}},
			{Name: aws.String("tag-key"), Values: []string{key}},
		},
	})
	if err != nil {
		return "", fmt.Errorf("error describing instance %s in %s: %w", instanceID, region, err)
	}

	for _, reservation := range result.Reservations {
		for _, instance := range reservation.Instances {
			return utils.GetTagValue(instance.Tags, key), nil
		}
	}
	return "", nil
}
