package ec2

import "github.com/spacelift-io/flows-app-aws-api/schema"

var (
	tagShape = schema.Tag("Key", "Value")

	filterShape = schema.Object(schema.Props{
		"Name":   schema.String("The name of the filter."),
		"Values": schema.Strings("The filter values."),
	}, "Name")

	tagSpecificationShape = schema.Object(schema.Props{
		"ResourceType": schema.String("Type of resource to tag on creation, e.g. instance or volume."),
		"Tags":         schema.ArrayOf(tagShape),
	})

	blockDeviceMappingShape = schema.Object(schema.Props{
		"DeviceName":  schema.String("Device name, e.g. /dev/sdh or xvdh."),
		"VirtualName": schema.String("Instance store volume name, e.g. ephemeral0."),
		"NoDevice":    schema.String("Suppresses the device mapping."),
		"Ebs": schema.Object(schema.Props{
			"DeleteOnTermination": schema.Boolean(""),
			"Encrypted":           schema.Boolean(""),
			"Iops":                schema.Number(""),
			"KmsKeyId":            schema.String(""),
			"SnapshotId":          schema.String(""),
			"Throughput":          schema.Number(""),
			"VolumeSize":          schema.Number("Size in GiB."),
			"VolumeType":          schema.String("gp2, gp3, io1, io2, st1, sc1 or standard."),
		}),
	})

	ipPermissionShape = schema.Object(schema.Props{
		"IpProtocol": schema.String("tcp, udp, icmp, icmpv6 or -1 for all."),
		"FromPort":   schema.Number(""),
		"ToPort":     schema.Number(""),
		"IpRanges": schema.ArrayOf(schema.Object(schema.Props{
			"CidrIp":      schema.String(""),
			"Description": schema.String(""),
		})),
		"Ipv6Ranges": schema.ArrayOf(schema.Object(schema.Props{
			"CidrIpv6":    schema.String(""),
			"Description": schema.String(""),
		})),
		"PrefixListIds": schema.ArrayOf(schema.Object(schema.Props{
			"PrefixListId": schema.String(""),
			"Description":  schema.String(""),
		})),
		"UserIdGroupPairs": schema.ArrayOf(schema.Object(schema.Props{
			"GroupId":     schema.String(""),
			"GroupName":   schema.String(""),
			"UserId":      schema.String(""),
			"VpcId":       schema.String(""),
			"Description": schema.String(""),
		})),
	})

	stateShape = schema.Object(schema.Props{
		"Code": schema.Number("Numeric state code."),
		"Name": schema.String("pending, running, shutting-down, terminated, stopping or stopped."),
	})

	instanceShape = schema.Object(schema.Props{
		"InstanceId":       schema.String(""),
		"ImageId":          schema.String(""),
		"InstanceType":     schema.String(""),
		"KeyName":          schema.String(""),
		"LaunchTime":       schema.String(""),
		"Placement":        schema.Object(nil),
		"PrivateDnsName":   schema.String(""),
		"PrivateIpAddress": schema.String(""),
		"PublicDnsName":    schema.String(""),
		"PublicIpAddress":  schema.String(""),
		"State":            stateShape,
		"SubnetId":         schema.String(""),
		"VpcId":            schema.String(""),
		"Architecture":     schema.String(""),
		"SecurityGroups": schema.ArrayOf(schema.Object(schema.Props{
			"GroupId":   schema.String(""),
			"GroupName": schema.String(""),
		})),
		"Tags": schema.ArrayOf(tagShape).Describe("Tags assigned to the instance."),
	})

	reservationShape = schema.Object(schema.Props{
		"ReservationId": schema.String(""),
		"OwnerId":       schema.String(""),
		"RequesterId":   schema.String(""),
		"Groups":        schema.ArrayOf(schema.Object(nil)),
		"Instances":     schema.ArrayOf(instanceShape),
	})

	stateChangeShape = schema.Object(schema.Props{
		"InstanceId":    schema.String(""),
		"CurrentState":  stateShape,
		"PreviousState": stateShape,
	})

	volumeShape = schema.Object(schema.Props{
		"VolumeId":         schema.String(""),
		"AvailabilityZone": schema.String(""),
		"CreateTime":       schema.String(""),
		"Encrypted":        schema.Boolean(""),
		"Iops":             schema.Number(""),
		"KmsKeyId":         schema.String(""),
		"Size":             schema.Number("Size in GiB."),
		"SnapshotId":       schema.String(""),
		"State":            schema.String("creating, available, in-use, deleting, deleted or error."),
		"Throughput":       schema.Number(""),
		"VolumeType":       schema.String(""),
		"Attachments":      schema.ArrayOf(attachmentShape),
		"Tags":             schema.ArrayOf(tagShape).Describe("Tags assigned to the volume."),
	})

	attachmentShape = schema.Object(schema.Props{
		"AttachTime":          schema.String(""),
		"Device":              schema.String(""),
		"InstanceId":          schema.String(""),
		"State":               schema.String("attaching, attached, detaching or detached."),
		"VolumeId":            schema.String(""),
		"DeleteOnTermination": schema.Boolean(""),
	})

	snapshotShape = schema.Object(schema.Props{
		"SnapshotId":  schema.String(""),
		"VolumeId":    schema.String(""),
		"VolumeSize":  schema.Number(""),
		"State":       schema.String("pending, completed, error, recoverable or recovering."),
		"StartTime":   schema.String(""),
		"Progress":    schema.String(""),
		"OwnerId":     schema.String(""),
		"Description": schema.String(""),
		"Encrypted":   schema.Boolean(""),
		"KmsKeyId":    schema.String(""),
		"Tags":        schema.ArrayOf(tagShape).Describe("Tags assigned to the snapshot."),
	})

	vpcShape = schema.Object(schema.Props{
		"VpcId":           schema.String(""),
		"CidrBlock":       schema.String(""),
		"State":           schema.String(""),
		"IsDefault":       schema.Boolean(""),
		"OwnerId":         schema.String(""),
		"InstanceTenancy": schema.String(""),
		"DhcpOptionsId":   schema.String(""),
		"Tags":            schema.ArrayOf(tagShape),
	})

	subnetShape = schema.Object(schema.Props{
		"SubnetId":                schema.String(""),
		"VpcId":                   schema.String(""),
		"CidrBlock":               schema.String(""),
		"AvailabilityZone":        schema.String(""),
		"AvailableIpAddressCount": schema.Number(""),
		"DefaultForAz":            schema.Boolean(""),
		"MapPublicIpOnLaunch":     schema.Boolean(""),
		"State":                   schema.String(""),
		"Tags":                    schema.ArrayOf(tagShape),
	})

	internetGatewayShape = schema.Object(schema.Props{
		"InternetGatewayId": schema.String(""),
		"OwnerId":           schema.String(""),
		"Attachments": schema.ArrayOf(schema.Object(schema.Props{
			"VpcId": schema.String(""),
			"State": schema.String(""),
		})),
		"Tags": schema.ArrayOf(tagShape),
	})

	routeTableShape = schema.Object(schema.Props{
		"RouteTableId": schema.String(""),
		"VpcId":        schema.String(""),
		"OwnerId":      schema.String(""),
		"Routes": schema.ArrayOf(schema.Object(schema.Props{
			"DestinationCidrBlock":     schema.String(""),
			"DestinationIpv6CidrBlock": schema.String(""),
			"GatewayId":                schema.String(""),
			"InstanceId":               schema.String(""),
			"NatGatewayId":             schema.String(""),
			"NetworkInterfaceId":       schema.String(""),
			"VpcPeeringConnectionId":   schema.String(""),
			"Origin":                   schema.String(""),
			"State":                    schema.String("active or blackhole."),
		})),
		"Associations": schema.ArrayOf(schema.Object(schema.Props{
			"RouteTableAssociationId": schema.String(""),
			"SubnetId":                schema.String(""),
			"GatewayId":               schema.String(""),
			"Main":                    schema.Boolean(""),
		})),
		"Tags": schema.ArrayOf(tagShape),
	})

	instanceMonitoringShape = schema.Object(schema.Props{
		"InstanceId": schema.String(""),
		"Monitoring": schema.Object(schema.Props{
			"State": schema.String("disabled, disabling, enabled or pending."),
		}),
	})
)

func dryRun() schema.ConfigFieldDef {
	return schema.BoolField("DryRun", "Checks whether you have the required permissions without making the request.")
}

func filters() schema.ConfigFieldDef {
	return schema.ArrayField("Filters", "Filters to narrow the results.", filterShape)
}

func paging() []schema.ConfigFieldDef {
	return []schema.ConfigFieldDef{
		schema.NumberField("MaxResults", "Maximum number of items to return in a single call."),
		schema.StringField("NextToken", "Token returned by a previous call to get the next page."),
	}
}

func ids(key, desc string) schema.ConfigFieldDef {
	return schema.ArrayField(key, desc, schema.String(""))
}

func tagSpecifications() schema.ConfigFieldDef {
	return schema.ArrayField("TagSpecifications", "Tags to apply to resources created by the request.", tagSpecificationShape)
}

// describe assembles the fields shared by the Describe* operations.
func describe(extra ...schema.ConfigFieldDef) []schema.ConfigFieldDef {
	fields := append([]schema.ConfigFieldDef{}, extra...)
	fields = append(fields, filters())
	fields = append(fields, paging()...)
	return append(fields, dryRun())
}

func page(key string, items *schema.JSONSchema) *schema.JSONSchema {
	return schema.Object(schema.Props{
		key:         schema.ArrayOf(items),
		"NextToken": schema.String("Token to retrieve the next page, if any."),
	})
}
