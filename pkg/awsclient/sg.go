package awsclient

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"

	"github.com/awsops/awsops/internal/models"
	"github.com/awsops/awsops/pkg/utils"
)

// SGClient handles security group export
type SGClient struct {
	client EC2API
	region string
}

// NewSGClient creates a new SGClient from a loaded AWS config
func NewSGClient(cfg aws.Config) *SGClient {
	return &SGClient{
		client: ec2.NewFromConfig(cfg),
		region: cfg.Region,
	}
}

// ExportSecurityGroups returns the security groups of a VPC with their rules
// expanded. When sgID is set only that group is returned, but cross-group
// rule references are still resolved against every group in the VPC.
func (c *SGClient) ExportSecurityGroups(ctx context.Context, vpcID, sgID string) ([]models.SecurityGroupInfo, error) {
	input := &ec2.DescribeSecurityGroupsInput{
		Filters: []types.Filter{
			{
				Name:   aws.String("vpc-id"),
				Values: []string{vpcID},
			},
		},
	}

	var vpcGroups []types.SecurityGroup
	paginator := ec2.NewDescribeSecurityGroupsPaginator(c.client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("error querying security groups for VPC %s: %w", vpcID, err)
		}
		vpcGroups = append(vpcGroups, page.SecurityGroups...)
	}

	idToName := make(map[string]string, len(vpcGroups))
	for _, sg := range vpcGroups {
		idToName[utils.SafeDeref(sg.GroupId)] = utils.SafeDeref(sg.GroupName)
	}

	var selected []types.SecurityGroup
	if sgID == "" {
		selected = vpcGroups
	} else {
		for _, sg := range vpcGroups {
			if utils.SafeDeref(sg.GroupId) == sgID {
				selected = append(selected, sg)
			}
		}
	}

	groups := make([]models.SecurityGroupInfo, 0, len(selected))
	for _, sg := range selected {
		groupID := utils.SafeDeref(sg.GroupId)

		info := models.SecurityGroupInfo{
			GroupID:     groupID,
			GroupName:   utils.SafeDeref(sg.GroupName),
			Description: strings.TrimSpace(utils.SafeDeref(sg.Description)),
			NameTag:     utils.GetName(sg.Tags),
		}
		for _, perm := range sg.IpPermissions {
			info.Rules = append(info.Rules, expandRules("ingress", perm, groupID, idToName)...)
		}
		for _, perm := range sg.IpPermissionsEgress {
			info.Rules = append(info.Rules, expandRules("egress", perm, groupID, idToName)...)
		}

		groups = append(groups, info)
	}

	return groups, nil
}

// formatPort renders an absent port boundary as "0"
func formatPort(port *int32) string {
	if port == nil {
		return "0"
	}
	return strconv.Itoa(int(*port))
}

// expandRules flattens one IP permission into one rule per source. Group
// sources resolve to "self" for the group being rendered, to the group name
// for other groups in the VPC, and to the raw id (with a peering comment
// when available) for groups in peered VPCs. Prefix list sources keep the
// prefix list id.
func expandRules(direction string, perm types.IpPermission, selfID string, idToName map[string]string) []models.SGRuleInfo {
	base := models.SGRuleInfo{
		Direction: direction,
		Protocol:  utils.SafeDeref(perm.IpProtocol),
		FromPort:  formatPort(perm.FromPort),
		ToPort:    formatPort(perm.ToPort),
	}

	var rules []models.SGRuleInfo

	for _, pair := range perm.UserIdGroupPairs {
		rule := base
		rule.Description = utils.SafeDeref(pair.Description)

		sourceID := utils.SafeDeref(pair.GroupId)
		switch {
		case sourceID == selfID:
			rule.Source = "self"
		case idToName[sourceID] != "":
			rule.Source = idToName[sourceID]
		case pair.PeeringStatus != nil:
			rule.Source = sourceID
			rule.Comment = fmt.Sprintf("%s-in-%s-%s-via-%s",
				sourceID,
				utils.SafeDeref(pair.UserId),
				utils.SafeDeref(pair.VpcId),
				utils.SafeDeref(pair.VpcPeeringConnectionId))
		default:
			rule.Source = sourceID
		}

		rules = append(rules, rule)
	}

	for _, ipRange := range perm.IpRanges {
		rule := base
		rule.Description = utils.SafeDeref(ipRange.Description)
		rule.SourceCIDRs = []string{utils.SafeDeref(ipRange.CidrIp)}
		rules = append(rules, rule)
	}

	for _, ipRange := range perm.Ipv6Ranges {
		rule := base
		rule.Description = utils.SafeDeref(ipRange.Description)
		rule.SourceCIDRs = []string{utils.SafeDeref(ipRange.CidrIpv6)}
		rules = append(rules, rule)
	}

	for _, prefix := range perm.PrefixListIds {
		rule := base
		rule.Description = utils.SafeDeref(prefix.Description)
		rule.Source = utils.SafeDeref(prefix.PrefixListId)
		rules = append(rules, rule)
	}

	return rules
}
