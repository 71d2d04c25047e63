package models

// SecurityGroupInfo represents a security group and its expanded rules
type SecurityGroupInfo struct {
	GroupID     string
	GroupName   string
	Description string
	NameTag     string
	Rules       []SGRuleInfo
}

// SGRuleInfo represents a single expanded security group rule.
// Source holds a security group reference ("self", a group name, a raw
// group id, or a prefix list id); SourceCIDRs holds a CIDR source instead.
type SGRuleInfo struct {
	Direction   string // "ingress" or "egress"
	Protocol    string
	FromPort    string
	ToPort      string
	Source      string
	SourceCIDRs []string
	Description string
	Comment     string // rendered as a YAML line comment when set
}
