package formatter

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/awsops/awsops/internal/models"
	"github.com/awsops/awsops/pkg/utils"
)

// RenderSecurityGroupsYAML writes the security group export document:
// a "security-groups" list where each group carries its name (with a
// terraform import hint as a line comment), description, and flow-style
// rule maps.
func RenderSecurityGroupsYAML(w io.Writer, groups []models.SecurityGroupInfo) error {
	list := &yaml.Node{Kind: yaml.SequenceNode}
	for _, group := range groups {
		list.Content = append(list.Content, securityGroupNode(group))
	}

	doc := &yaml.Node{Kind: yaml.MappingNode}
	doc.Content = append(doc.Content,
		plainScalar("security-groups"),
		list,
	)

	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	defer encoder.Close()

	if err := encoder.Encode(doc); err != nil {
		return fmt.Errorf("error encoding security groups: %w", err)
	}
	return nil
}

// securityGroupNode renders one group as a mapping node
func securityGroupNode(group models.SecurityGroupInfo) *yaml.Node {
	nameNode := quotedScalar(group.GroupName)
	nameNode.LineComment = fmt.Sprintf("terraform import aws_security_group.%s %s",
		utils.TFSafeSGName(group.GroupName), group.GroupID)

	rules := &yaml.Node{Kind: yaml.SequenceNode}
	for _, rule := range group.Rules {
		rules.Content = append(rules.Content, ruleNode(rule))
	}

	node := &yaml.Node{Kind: yaml.MappingNode}
	node.Content = append(node.Content,
		plainScalar("sg-name"), nameNode,
		plainScalar("sg-desc"), quotedScalar(group.Description),
		plainScalar("sg-rules"), rules,
	)
	return node
}

// ruleNode renders one rule as a flow-style mapping. CIDR sources render as
// a one-element list, group sources as a plain string.
func ruleNode(rule models.SGRuleInfo) *yaml.Node {
	var source *yaml.Node
	if len(rule.SourceCIDRs) > 0 {
		source = &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
		for _, cidr := range rule.SourceCIDRs {
			source.Content = append(source.Content, quotedScalar(cidr))
		}
	} else {
		source = quotedScalar(rule.Source)
	}

	node := &yaml.Node{Kind: yaml.MappingNode, Style: yaml.FlowStyle}
	node.Content = append(node.Content,
		plainScalar("type"), quotedScalar(rule.Direction),
		plainScalar("proto"), quotedScalar(rule.Protocol),
		plainScalar("from"), quotedScalar(rule.FromPort),
		plainScalar("to"), quotedScalar(rule.ToPort),
		plainScalar("source"), source,
		plainScalar("desc"), quotedScalar(rule.Description),
	)
	node.LineComment = rule.Comment
	return node
}

func plainScalar(value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Value: value}
}

func quotedScalar(value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Style: yaml.DoubleQuotedStyle, Value: value}
}
