package utils

import (
	"fmt"
	"strings"
)

// ARN holds the components of an AWS Resource Name.
type ARN struct {
	Partition    string
	Service      string
	Region       string
	Account      string
	Resource     string
	ResourceType string
}

// ParseARN splits an ARN of the form arn:partition:service:region:account:resource
// into its components. Resource types delimited by "/" or ":" are split out
// into ResourceType.
func ParseARN(arn string) (ARN, error) {
	elements := strings.SplitN(arn, ":", 6)
	if len(elements) != 6 || elements[0] != "arn" {
		return ARN{}, fmt.Errorf("invalid ARN: %s", arn)
	}

	result := ARN{
		Partition: elements[1],
		Service:   elements[2],
		Region:    elements[3],
		Account:   elements[4],
		Resource:  elements[5],
	}

	if idx := strings.IndexAny(result.Resource, "/:"); idx >= 0 {
		result.ResourceType = result.Resource[:idx]
		result.Resource = result.Resource[idx+1:]
	}

	return result, nil
}
