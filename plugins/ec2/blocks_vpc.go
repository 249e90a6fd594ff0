package ec2

import (
	"github.com/aws/aws-sdk-go-v2/service/ec2"

	"github.com/spacelift-io/flows-app-aws-api/module"
	"github.com/spacelift-io/flows-app-aws-api/schema"
)

// sgRuleFields are the fields shared by the security group rule operations.
func sgRuleFields(groupIDRequired bool, extra ...schema.ConfigFieldDef) []schema.ConfigFieldDef {
	groupID := schema.StringField("GroupId", "The ID of the security group.")
	if groupIDRequired {
		groupID = groupID.AsRequired()
	}
	fields := []schema.ConfigFieldDef{
		groupID,
		schema.ArrayField("IpPermissions", "The rules, as IP permissions.", ipPermissionShape),
		schema.StringField("IpProtocol", "Protocol for a single rule, when IpPermissions is not used."),
		schema.NumberField("FromPort", "Start of the port range."),
		schema.NumberField("ToPort", "End of the port range."),
		schema.StringField("CidrIp", "IPv4 CIDR range."),
		schema.StringField("SourceSecurityGroupName", "Source security group name."),
		schema.StringField("SourceSecurityGroupOwnerId", "Source security group owner account."),
	}
	fields = append(fields, extra...)
	return append(fields, dryRun())
}

var revokeResult = schema.Object(schema.Props{
	"Return":               schema.Boolean(""),
	"UnknownIpPermissions": schema.ArrayOf(ipPermissionShape),
	"RevokedSecurityGroupRules": schema.ArrayOf(schema.Object(schema.Props{
		"SecurityGroupRuleId": schema.String(""),
		"GroupId":             schema.String(""),
		"IsEgress":            schema.Boolean(""),
		"IpProtocol":          schema.String(""),
		"FromPort":            schema.Number(""),
		"ToPort":              schema.Number(""),
		"CidrIpv4":            schema.String(""),
	})),
})

func vpcBlocks() []module.Block {
	return []module.Block{
		module.NewOperation(Service, module.OperationDef{
			Op:          "DeleteSecurityGroup",
			Name:        "Delete Security Group",
			Description: "Deletes a security group.",
			Fields: []schema.ConfigFieldDef{
				schema.StringField("GroupId", "The ID of the security group."),
				schema.StringField("GroupName", "The name of the security group (default VPC only)."),
				dryRun(),
			},
			Output: schema.Object(schema.Props{
				"GroupId": schema.String(""),
				"Return":  schema.Boolean(""),
			}),
		}, (*ec2.Client).DeleteSecurityGroup),

		module.NewOperation(Service, module.OperationDef{
			Op:          "RevokeSecurityGroupIngress",
			Name:        "Revoke Security Group Ingress",
			Description: "Removes inbound rules from a security group.",
			Fields: sgRuleFields(false,
				schema.StringField("GroupName", "The name of the security group (default VPC only)."),
				ids("SecurityGroupRuleIds", "The IDs of the rules to remove."),
			),
			Output: revokeResult,
		}, (*ec2.Client).RevokeSecurityGroupIngress),

		module.NewOperation(Service, module.OperationDef{
			Op:          "AuthorizeSecurityGroupEgress",
			Name:        "Authorize Security Group Egress",
			Description: "Adds outbound rules to a VPC security group.",
			Fields:      sgRuleFields(true, tagSpecifications()),
			Output: schema.Object(schema.Props{
				"Return": schema.Boolean(""),
				"SecurityGroupRules": schema.ArrayOf(schema.Object(schema.Props{
					"SecurityGroupRuleId": schema.String(""),
					"GroupId":             schema.String(""),
					"IsEgress":            schema.Boolean(""),
					"IpProtocol":          schema.String(""),
					"FromPort":            schema.Number(""),
					"ToPort":              schema.Number(""),
					"CidrIpv4":            schema.String(""),
				})),
			}),
		}, (*ec2.Client).AuthorizeSecurityGroupEgress),

		module.NewOperation(Service, module.OperationDef{
			Op:          "RevokeSecurityGroupEgress",
			Name:        "Revoke Security Group Egress",
			Description: "Removes outbound rules from a VPC security group.",
			Fields:      sgRuleFields(true, ids("SecurityGroupRuleIds", "The IDs of the rules to remove.")),
			Output:      revokeResult,
		}, (*ec2.Client).RevokeSecurityGroupEgress),

		module.NewOperation(Service, module.OperationDef{
			Op:          "CreateVpc",
			Name:        "Create VPC",
			Description: "Creates a VPC with the specified CIDR blocks.",
			Fields: []schema.ConfigFieldDef{
				schema.StringField("CidrBlock", "The IPv4 network range, in CIDR notation."),
				schema.BoolField("AmazonProvidedIpv6CidrBlock", "Requests an Amazon-provided /56 IPv6 CIDR block."),
				schema.StringField("InstanceTenancy", "default or dedicated."),
				schema.StringField("Ipv4IpamPoolId", "IPAM pool to allocate the IPv4 CIDR from."),
				schema.NumberField("Ipv4NetmaskLength", "Netmask length of the IPv4 CIDR to allocate from the IPAM pool."),
				tagSpecifications(),
				dryRun(),
			},
			Output: schema.Object(schema.Props{"Vpc": vpcShape}),
		}, (*ec2.Client).CreateVpc),

		module.NewOperation(Service, module.OperationDef{
			Op:          "DeleteVpc",
			Name:        "Delete VPC",
			Description: "Deletes a VPC. All attached gateways and resources must be deleted first.",
			Fields: []schema.ConfigFieldDef{
				schema.StringField("VpcId", "The ID of the VPC.").AsRequired(),
				dryRun(),
			},
		}, (*ec2.Client).DeleteVpc),

		module.NewOperation(Service, module.OperationDef{
			Op:          "CreateSubnet",
			Name:        "Create Subnet",
			Description: "Creates a subnet in a VPC.",
			Fields: []schema.ConfigFieldDef{
				schema.StringField("VpcId", "The ID of the VPC.").AsRequired(),
				schema.StringField("CidrBlock", "The IPv4 network range, in CIDR notation."),
				schema.StringField("AvailabilityZone", "The Availability Zone for the subnet."),
				schema.StringField("AvailabilityZoneId", "The AZ ID for the subnet."),
				schema.StringField("Ipv6CidrBlock", "The IPv6 network range, in CIDR notation."),
				schema.BoolField("Ipv6Native", "Creates an IPv6-only subnet."),
				tagSpecifications(),
				dryRun(),
			},
			Output: schema.Object(schema.Props{"Subnet": subnetShape}),
		}, (*ec2.Client).CreateSubnet),

		module.NewOperation(Service, module.OperationDef{
			Op:          "DeleteSubnet",
			Name:        "Delete Subnet",
			Description: "Deletes a subnet. All running instances in it must be terminated first.",
			Fields: []schema.ConfigFieldDef{
				schema.StringField("SubnetId", "The ID of the subnet.").AsRequired(),
				dryRun(),
			},
		}, (*ec2.Client).DeleteSubnet),

		module.NewOperation(Service, module.OperationDef{
			Op:          "DescribeInternetGateways",
			Name:        "Describe Internet Gateways",
			Description: "Describes your internet gateways.",
			Fields:      describe(ids("InternetGatewayIds", "The IDs of the internet gateways.")),
			Output:      page("InternetGateways", internetGatewayShape),
		}, (*ec2.Client).DescribeInternetGateways),

		module.NewOperation(Service, module.OperationDef{
			Op:          "CreateInternetGateway",
			Name:        "Create Internet Gateway",
			Description: "Creates an internet gateway. Attach it to a VPC with Attach Internet Gateway.",
			Fields:      []schema.ConfigFieldDef{tagSpecifications(), dryRun()},
			Output:      schema.Object(schema.Props{"InternetGateway": internetGatewayShape}),
		}, (*ec2.Client).CreateInternetGateway),

		module.NewOperation(Service, module.OperationDef{
			Op:          "DeleteInternetGateway",
			Name:        "Delete Internet Gateway",
			Description: "Deletes a detached internet gateway.",
			Fields: []schema.ConfigFieldDef{
				schema.StringField("InternetGatewayId", "The ID of the internet gateway.").AsRequired(),
				dryRun(),
			},
		}, (*ec2.Client).DeleteInternetGateway),

		module.NewOperation(Service, module.OperationDef{
			Op:          "AttachInternetGateway",
			Name:        "Attach Internet Gateway",
			Description: "Attaches an internet gateway to a VPC.",
			Fields:      gatewayAttachment(),
		}, (*ec2.Client).AttachInternetGateway),

		module.NewOperation(Service, module.OperationDef{
			Op:          "DetachInternetGateway",
			Name:        "Detach Internet Gateway",
			Description: "Detaches an internet gateway from a VPC.",
			Fields:      gatewayAttachment(),
		}, (*ec2.Client).DetachInternetGateway),

		module.NewOperation(Service, module.OperationDef{
			Op:          "DescribeRouteTables",
			Name:        "Describe Route Tables",
			Description: "Describes your route tables.",
			Fields:      describe(ids("RouteTableIds", "The IDs of the route tables.")),
			Output:      page("RouteTables", routeTableShape),
		}, (*ec2.Client).DescribeRouteTables),

		module.NewOperation(Service, module.OperationDef{
			Op:          "CreateRouteTable",
			Name:        "Create Route Table",
			Description: "Creates a route table for a VPC.",
			Fields: []schema.ConfigFieldDef{
				schema.StringField("VpcId", "The ID of the VPC.").AsRequired(),
				schema.StringField("ClientToken", "Idempotency token."),
				tagSpecifications(),
				dryRun(),
			},
			Output: schema.Object(schema.Props{
				"RouteTable":  routeTableShape,
				"ClientToken": schema.String(""),
			}),
		}, (*ec2.Client).CreateRouteTable),

		module.NewOperation(Service, module.OperationDef{
			Op:          "DeleteRouteTable",
			Name:        "Delete Route Table",
			Description: "Deletes a route table. It must not be associated with a subnet.",
			Fields: []schema.ConfigFieldDef{
				routeTableID(),
				dryRun(),
			},
		}, (*ec2.Client).DeleteRouteTable),

		module.NewOperation(Service, module.OperationDef{
			Op:          "CreateRoute",
			Name:        "Create Route",
			Description: "Creates a route in a route table. Specify exactly one target.",
			Fields: []schema.ConfigFieldDef{
				routeTableID(),
				schema.StringField("DestinationCidrBlock", "The IPv4 CIDR used for destination matches."),
				schema.StringField("DestinationIpv6CidrBlock", "The IPv6 CIDR used for destination matches."),
				schema.StringField("DestinationPrefixListId", "The prefix list used for destination matches."),
				schema.StringField("GatewayId", "Internet or virtual private gateway target."),
				schema.StringField("NatGatewayId", "NAT gateway target."),
				schema.StringField("InstanceId", "NAT instance target."),
				schema.StringField("NetworkInterfaceId", "Network interface target."),
				schema.StringField("TransitGatewayId", "Transit gateway target."),
				schema.StringField("VpcPeeringConnectionId", "VPC peering connection target."),
				schema.StringField("VpcEndpointId", "Gateway Load Balancer endpoint target."),
				schema.StringField("EgressOnlyInternetGatewayId", "Egress-only internet gateway target (IPv6 only)."),
				dryRun(),
			},
			Output: schema.Object(schema.Props{"Return": schema.Boolean("")}),
		}, (*ec2.Client).CreateRoute),

		module.NewOperation(Service, module.OperationDef{
			Op:          "DeleteRoute",
			Name:        "Delete Route",
			Description: "Deletes a route from a route table.",
			Fields: []schema.ConfigFieldDef{
				routeTableID(),
				schema.StringField("DestinationCidrBlock", "The IPv4 CIDR of the route."),
				schema.StringField("DestinationIpv6CidrBlock", "The IPv6 CIDR of the route."),
				schema.StringField("DestinationPrefixListId", "The prefix list of the route."),
				dryRun(),
			},
		}, (*ec2.Client).DeleteRoute),

		module.NewOperation(Service, module.OperationDef{
			Op:          "AssociateRouteTable",
			Name:        "Associate Route Table",
			Description: "Associates a route table with a subnet or gateway.",
			Fields: []schema.ConfigFieldDef{
				routeTableID(),
				schema.StringField("SubnetId", "The ID of the subnet."),
				schema.StringField("GatewayId", "The ID of the internet or virtual private gateway."),
				dryRun(),
			},
			Output: schema.Object(schema.Props{
				"AssociationId": schema.String("Used to disassociate the route table."),
				"AssociationState": schema.Object(schema.Props{
					"State":         schema.String(""),
					"StatusMessage": schema.String(""),
				}),
			}),
		}, (*ec2.Client).AssociateRouteTable),

		module.NewOperation(Service, module.OperationDef{
			Op:          "DisassociateRouteTable",
			Name:        "Disassociate Route Table",
			Description: "Disassociates a subnet or gateway from a route table.",
			Fields: []schema.ConfigFieldDef{
				schema.StringField("AssociationId", "The association ID returned by Associate Route Table.").AsRequired(),
				dryRun(),
			},
		}, (*ec2.Client).DisassociateRouteTable),

		module.NewOperation(Service, module.OperationDef{
			Op:          "DescribeAddresses",
			Name:        "Describe Addresses",
			Description: "Describes the specified Elastic IP addresses or all of your Elastic IP addresses.",
			Fields: []schema.ConfigFieldDef{
				ids("AllocationIds", "The allocation IDs."),
				ids("PublicIps", "The Elastic IP addresses."),
				filters(),
				dryRun(),
			},
			Output: schema.Object(schema.Props{
				"Addresses": schema.ArrayOf(schema.Object(schema.Props{
					"AllocationId":       schema.String(""),
					"AssociationId":      schema.String(""),
					"PublicIp":           schema.String(""),
					"PrivateIpAddress":   schema.String(""),
					"InstanceId":         schema.String(""),
					"NetworkInterfaceId": schema.String(""),
					"Domain":             schema.String(""),
					"Tags":               schema.ArrayOf(tagShape),
				})),
			}),
		}, (*ec2.Client).DescribeAddresses),

		module.NewOperation(Service, module.OperationDef{
			Op:          "ReleaseAddress",
			Name:        "Release Address",
			Description: "Releases an Elastic IP address. The address must be disassociated first.",
			Fields: []schema.ConfigFieldDef{
				schema.StringField("AllocationId", "The allocation ID."),
				schema.StringField("PublicIp", "The Elastic IP address (EC2-Classic)."),
				schema.StringField("NetworkBorderGroup", "The location the address is advertised from."),
				dryRun(),
			},
		}, (*ec2.Client).ReleaseAddress),

		module.NewOperation(Service, module.OperationDef{
			Op:          "AssociateAddress",
			Name:        "Associate Address",
			Description: "Associates an Elastic IP address with an instance or a network interface.",
			Fields: []schema.ConfigFieldDef{
				schema.StringField("AllocationId", "The allocation ID."),
				schema.StringField("InstanceId", "The ID of the instance."),
				schema.StringField("NetworkInterfaceId", "The ID of the network interface."),
				schema.StringField("PrivateIpAddress", "The primary or secondary private IP address to associate with."),
				schema.StringField("PublicIp", "The Elastic IP address."),
				schema.BoolField("AllowReassociation", "Allows an address that is already associated to be reassociated."),
				dryRun(),
			},
			Output: schema.Object(schema.Props{
				"AssociationId": schema.String("The ID that represents the association."),
			}),
		}, (*ec2.Client).AssociateAddress),

		module.NewOperation(Service, module.OperationDef{
			Op:          "DisassociateAddress",
			Name:        "Disassociate Address",
			Description: "Disassociates an Elastic IP address from the instance or network interface it is associated with.",
			Fields: []schema.ConfigFieldDef{
				schema.StringField("AssociationId", "The association ID."),
				schema.StringField("PublicIp", "The Elastic IP address."),
				dryRun(),
			},
		}, (*ec2.Client).DisassociateAddress),
	}
}

func routeTableID() schema.ConfigFieldDef {
	return schema.StringField("RouteTableId", "The ID of the route table.").AsRequired()
}

func gatewayAttachment() []schema.ConfigFieldDef {
	return []schema.ConfigFieldDef{
		schema.StringField("InternetGatewayId", "The ID of the internet gateway.").AsRequired(),
		schema.StringField("VpcId", "The ID of the VPC.").AsRequired(),
		dryRun(),
	}
}
