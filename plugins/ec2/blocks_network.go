package ec2

import (
	"github.com/aws/aws-sdk-go-v2/service/ec2"

	"github.com/spacelift-io/flows-app-aws-api/module"
	"github.com/spacelift-io/flows-app-aws-api/schema"
)

func networkBlocks() []module.Block {
	tagFields := func(desc string, required bool) []schema.ConfigFieldDef {
		tags := schema.ArrayField("Tags", desc, tagShape)
		if required {
			tags = tags.AsRequired()
		}
		return []schema.ConfigFieldDef{
			ids("Resources", "The IDs of the resources.").AsRequired(),
			tags,
			dryRun(),
		}
	}

	return []module.Block{
		module.NewOperation(Service, module.OperationDef{
			Op:          "DescribeSecurityGroups",
			Name:        "Describe Security Groups",
			Description: "Describes the specified security groups or all of your security groups.",
			Fields: describe(
				ids("GroupIds", "The IDs of the security groups."),
				ids("GroupNames", "The names of the security groups (default VPC only)."),
			),
			Output: page("SecurityGroups", schema.Object(schema.Props{
				"GroupId":             schema.String(""),
				"GroupName":           schema.String(""),
				"Description":         schema.String(""),
				"OwnerId":             schema.String(""),
				"VpcId":               schema.String(""),
				"IpPermissions":       schema.ArrayOf(ipPermissionShape),
				"IpPermissionsEgress": schema.ArrayOf(ipPermissionShape),
				"Tags":                schema.ArrayOf(tagShape),
			})),
		}, (*ec2.Client).DescribeSecurityGroups),

		module.NewOperation(Service, module.OperationDef{
			Op:          "CreateSecurityGroup",
			Name:        "Create Security Group",
			Description: "Creates a security group.",
			Fields: []schema.ConfigFieldDef{
				schema.StringField("GroupName", "The name of the security group.").AsRequired(),
				schema.StringField("Description", "A description for the security group.").AsRequired(),
				schema.StringField("VpcId", "The ID of the VPC."),
				tagSpecifications(),
				dryRun(),
			},
			Output: schema.Object(schema.Props{
				"GroupId":  schema.String("The ID of the security group."),
				"GroupArn": schema.String(""),
				"Tags":     schema.ArrayOf(tagShape),
			}),
		}, (*ec2.Client).CreateSecurityGroup),

		module.NewOperation(Service, module.OperationDef{
			Op:          "AuthorizeSecurityGroupIngress",
			Name:        "Authorize Security Group Ingress",
			Description: "Adds inbound rules to a security group.",
			Fields: []schema.ConfigFieldDef{
				schema.StringField("GroupId", "The ID of the security group."),
				schema.StringField("GroupName", "The name of the security group (default VPC only)."),
				schema.ArrayField("IpPermissions", "The permissions to add.", ipPermissionShape),
				schema.StringField("IpProtocol", "Protocol for a single rule, when IpPermissions is not used."),
				schema.NumberField("FromPort", "Start of the port range."),
				schema.NumberField("ToPort", "End of the port range."),
				schema.StringField("CidrIp", "IPv4 CIDR range."),
				schema.StringField("SourceSecurityGroupName", "Source security group name."),
				schema.StringField("SourceSecurityGroupOwnerId", "Source security group owner account."),
				tagSpecifications(),
				dryRun(),
			},
			Output: schema.Object(schema.Props{
				"Return":             schema.Boolean(""),
				"SecurityGroupRules": schema.ArrayOf(schema.Object(nil)),
			}),
		}, (*ec2.Client).AuthorizeSecurityGroupIngress),

		module.NewOperation(Service, module.OperationDef{
			Op:          "DescribeVpcs",
			Name:        "Describe VPCs",
			Description: "Describes your VPCs.",
			Fields:      describe(ids("VpcIds", "The IDs of the VPCs.")),
			Output: page("Vpcs", vpcShape),
		}, (*ec2.Client).DescribeVpcs),

		module.NewOperation(Service, module.OperationDef{
			Op:          "DescribeSubnets",
			Name:        "Describe Subnets",
			Description: "Describes your subnets.",
			Fields:      describe(ids("SubnetIds", "The IDs of the subnets.")),
			Output: page("Subnets", subnetShape),
		}, (*ec2.Client).DescribeSubnets),

		module.NewOperation(Service, module.OperationDef{
			Op:          "CreateTags",
			Name:        "Create Tags",
			Description: "Adds or overwrites tags on the specified EC2 resources.",
			Fields:      tagFields("The tags to add.", true),
		}, (*ec2.Client).CreateTags),

		module.NewOperation(Service, module.OperationDef{
			Op:          "DeleteTags",
			Name:        "Delete Tags",
			Description: "Deletes tags from the specified EC2 resources. Omitting Tags deletes all user-defined tags.",
			Fields:      tagFields("The tags to delete. A tag without a value matches any value.", false),
		}, (*ec2.Client).DeleteTags),

		module.NewOperation(Service, module.OperationDef{
			Op:          "AllocateAddress",
			Name:        "Allocate Address",
			Description: "Allocates an Elastic IP address to your account.",
			Fields: []schema.ConfigFieldDef{
				schema.StringField("Domain", "vpc or standard."),
				schema.StringField("Address", "A specific Elastic IP address to recover."),
				schema.StringField("PublicIpv4Pool", "The ID of an address pool you own."),
				schema.StringField("NetworkBorderGroup", "The location the address is advertised from."),
				schema.StringField("CustomerOwnedIpv4Pool", "A customer-owned address pool."),
				tagSpecifications(),
				dryRun(),
			},
			Output: schema.Object(schema.Props{
				"AllocationId":       schema.String(""),
				"PublicIp":           schema.String(""),
				"Domain":             schema.String(""),
				"PublicIpv4Pool":     schema.String(""),
				"NetworkBorderGroup": schema.String(""),
			}),
		}, (*ec2.Client).AllocateAddress),
	}
}
