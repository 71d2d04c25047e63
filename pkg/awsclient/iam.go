package awsclient

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/iam"
	"github.com/aws/aws-sdk-go-v2/service/iam/types"

	"github.com/awsops/awsops/internal/models"
	"github.com/awsops/awsops/pkg/utils"
)

// IAMClient handles the access key audit. IAM is a global service; the
// loaded config's region is only used for signing.
type IAMClient struct {
	client IAMAPI
}

// NewIAMClient creates a new IAMClient from a loaded AWS config
func NewIAMClient(cfg aws.Config) *IAMClient {
	return &IAMClient{
		client: iam.NewFromConfig(cfg),
	}
}

// ListAccessKeys returns access key metadata for every IAM user, enriched
// with key age and last-used details.
func (c *IAMClient) ListAccessKeys(ctx context.Context) ([]models.AccessKeyInfo, error) {
	users, err := c.listUsers(ctx)
	if err != nil {
		return nil, err
	}

	var keys []models.AccessKeyInfo
	for _, user := range users {
		userName := utils.SafeDeref(user.UserName)

		userKeys, err := c.listUserAccessKeys(ctx, userName)
		if err != nil {
			return nil, err
		}

		for _, metadata := range userKeys {
			info := models.AccessKeyInfo{
				UserName:    userName,
				AccessKeyID: utils.SafeDeref(metadata.AccessKeyId),
				Status:      string(metadata.Status),
				CreateDate:  metadata.CreateDate,
			}
			if metadata.CreateDate != nil {
				info.AgeDays = utils.CalculateElapsedDays(*metadata.CreateDate)
			}

			lastUsed, err := c.client.GetAccessKeyLastUsed(ctx, &iam.GetAccessKeyLastUsedInput{
				AccessKeyId: metadata.AccessKeyId,
			})
			if err != nil {
				return nil, fmt.Errorf("error getting last used info for key %s: %w", info.AccessKeyID, err)
			}
			if lastUsed.AccessKeyLastUsed != nil {
				info.LastUsed = lastUsed.AccessKeyLastUsed.LastUsedDate
				info.LastUsedService = utils.SafeDeref(lastUsed.AccessKeyLastUsed.ServiceName)
				info.LastUsedRegion = utils.SafeDeref(lastUsed.AccessKeyLastUsed.Region)
			}

			keys = append(keys, info)
		}
	}

	return keys, nil
}

// listUsers returns all IAM users using the Marker/IsTruncated loop
func (c *IAMClient) listUsers(ctx context.Context) ([]types.User, error) {
	var users []types.User
	var marker *string

	for {
		result, err := c.client.ListUsers(ctx, &iam.ListUsersInput{
			Marker: marker,
		})
		if err != nil {
			return nil, fmt.Errorf("error listing IAM users: %w", err)
		}

		users = append(users, result.Users...)

		if !result.IsTruncated {
			break
		}
		marker = result.Marker
	}

	return users, nil
}

// listUserAccessKeys returns all access key metadata for one user
func (c *IAMClient) listUserAccessKeys(ctx context.Context, userName string) ([]types.AccessKeyMetadata, error) {
	var keys []types.AccessKeyMetadata
	var marker *string

	for {
		result, err := c.client.ListAccessKeys(ctx, &iam.ListAccessKeysInput{
			UserName: aws.String(userName),
			Marker:   marker,
		})
		if err != nil {
			return nil, fmt.Errorf("error listing access keys for user %s: %w", userName, err)
		}

		keys = append(keys, result.AccessKeyMetadata...)

		if !result.IsTruncated {
			break
		}
		marker = result.Marker
	}

	return keys, nil
}
