package awsclient

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"

	"github.com/awsops/awsops/pkg/utils"
)

// SNSPublisher publishes alert messages to topics. The topic's region is
// taken from its ARN, so one publisher serves topics in any region.
type SNSPublisher struct {
	newClient func(region string) SNSAPI
}

// NewSNSPublisher creates a new SNSPublisher from a loaded AWS config
func NewSNSPublisher(cfg aws.Config) *SNSPublisher {
	return &SNSPublisher{
		newClient: func(region string) SNSAPI {
			return sns.NewFromConfig(cfg, func(o *sns.Options) {
				o.Region = region
			})
		},
	}
}

// Publish sends a message to the topic named by topicARN
func (p *SNSPublisher) Publish(ctx context.Context, topicARN, message string) error {
	arn, err := utils.ParseARN(topicARN)
	if err != nil {
		return fmt.Errorf("error parsing topic ARN %q: %w", topicARN, err)
	}

	client := p.newClient(arn.Region)
	_, err = client.Publish(ctx, &sns.PublishInput{
		TopicArn: aws.String(topicARN),
		Message:  aws.String(message),
	})
	if err != nil {
		return fmt.Errorf("error publishing to %s: %w", topicARN, err)
	}
	return nil
}
