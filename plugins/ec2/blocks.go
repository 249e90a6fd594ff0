package ec2

import (
	"github.com/aws/aws-sdk-go-v2/service/ec2"

	"github.com/spacelift-io/flows-app-aws-api/module"
	"github.com/spacelift-io/flows-app-aws-api/schema"
)

// Blocks returns a fresh set of EC2 blocks.
func Blocks() []module.Block {
	blocks := instanceBlocks()
	blocks = append(blocks, computeBlocks()...)
	blocks = append(blocks, storageBlocks()...)
	blocks = append(blocks, networkBlocks()...)
	return append(blocks, vpcBlocks()...)
}

func instanceIDs(required bool) schema.ConfigFieldDef {
	f := ids("InstanceIds", "The IDs of the instances.")
	if required {
		f = f.AsRequired()
	}
	return f
}

func instanceBlocks() []module.Block {
	stateChanges := func(key string) *schema.JSONSchema {
		return schema.Object(schema.Props{key: schema.ArrayOf(stateChangeShape)})
	}

	return []module.Block{
		module.NewOperation(Service, module.OperationDef{
			Op:          "DescribeInstances",
			Name:        "Describe Instances",
			Description: "Describes the specified instances or all instances.",
			Fields:      describe(instanceIDs(false)),
			Output: schema.Object(schema.Props{
				"Reservations": schema.ArrayOf(reservationShape),
				"NextToken":    schema.String("Token to retrieve the next page, if any."),
			}),
		}, (*ec2.Client).DescribeInstances),

		module.NewOperation(Service, module.OperationDef{
			Op:          "RunInstances",
			Name:        "Run Instances",
			Description: "Launches the specified number of instances using an AMI.",
			Fields: []schema.ConfigFieldDef{
				schema.NumberField("MinCount", "Minimum number of instances to launch.").AsRequired(),
				schema.NumberField("MaxCount", "Maximum number of instances to launch.").AsRequired(),
				schema.StringField("ImageId", "The ID of the AMI."),
				schema.StringField("InstanceType", "The instance type, e.g. t3.micro."),
				schema.StringField("KeyName", "Name of the key pair."),
				ids("SecurityGroupIds", "IDs of the security groups."),
				ids("SecurityGroups", "Names of the security groups (default VPC only)."),
				schema.StringField("SubnetId", "The ID of the subnet to launch into."),
				schema.StringField("PrivateIpAddress", "Primary IPv4 address within the subnet."),
				schema.StringField("UserData", "User data, base64-encoded."),
				schema.ObjectField("IamInstanceProfile", "IAM instance profile to associate.", schema.Object(schema.Props{
					"Arn":  schema.String(""),
					"Name": schema.String(""),
				})),
				schema.ArrayField("BlockDeviceMappings", "Block device mappings for the instances.", blockDeviceMappingShape),
				schema.ObjectField("Placement", "Placement of the instances.", schema.Object(schema.Props{
					"AvailabilityZone": schema.String(""),
					"GroupName":        schema.String(""),
					"Tenancy":          schema.String("default, dedicated or host."),
				})),
				schema.ObjectField("Monitoring", "Detailed monitoring.", schema.Object(schema.Props{
					"Enabled": schema.Boolean(""),
				}, "Enabled")),
				schema.ObjectField("MetadataOptions", "Instance metadata service options.", schema.Object(schema.Props{
					"HttpTokens":              schema.String("optional or required."),
					"HttpEndpoint":            schema.String("enabled or disabled."),
					"HttpPutResponseHopLimit": schema.Number(""),
				})),
				schema.BoolField("EbsOptimized", "Whether the instances are EBS-optimized."),
				schema.BoolField("DisableApiTermination", "Enables termination protection."),
				schema.StringField("InstanceInitiatedShutdownBehavior", "stop or terminate."),
				schema.StringField("ClientToken", "Idempotency token."),
				tagSpecifications(),
				dryRun(),
			},
			Output: schema.Object(schema.Props{
				"ReservationId": schema.String(""),
				"OwnerId":       schema.String(""),
				"Groups":        schema.ArrayOf(schema.Object(nil)),
				"Instances":     schema.ArrayOf(instanceShape),
			}),
		}, (*ec2.Client).RunInstances),

		module.NewOperation(Service, module.OperationDef{
			Op:          "StartInstances",
			Name:        "Start Instances",
			Description: "Starts Amazon EBS-backed instances that were previously stopped.",
			Fields: []schema.ConfigFieldDef{
				instanceIDs(true),
				schema.StringField("AdditionalInfo", "Reserved."),
				dryRun(),
			},
			Output: stateChanges("StartingInstances"),
		}, (*ec2.Client).StartInstances),

		module.NewOperation(Service, module.OperationDef{
			Op:          "StopInstances",
			Name:        "Stop Instances",
			Description: "Stops Amazon EBS-backed instances.",
			Fields: []schema.ConfigFieldDef{
				instanceIDs(true),
				schema.BoolField("Hibernate", "Hibernates the instances if they are enabled for hibernation."),
				schema.BoolField("Force", "Forces the instances to stop without flushing file system caches."),
				dryRun(),
			},
			Output: stateChanges("StoppingInstances"),
		}, (*ec2.Client).StopInstances),

		module.NewOperation(Service, module.OperationDef{
			Op:          "RebootInstances",
			Name:        "Reboot Instances",
			Description: "Requests a reboot of the specified instances.",
			Fields:      []schema.ConfigFieldDef{instanceIDs(true), dryRun()},
		}, (*ec2.Client).RebootInstances),

		module.NewOperation(Service, module.OperationDef{
			Op:          "TerminateInstances",
			Name:        "Terminate Instances",
			Description: "Shuts down the specified instances. Terminated instances cannot be restarted.",
			Fields:      []schema.ConfigFieldDef{instanceIDs(true), dryRun()},
			Output:      stateChanges("TerminatingInstances"),
		}, (*ec2.Client).TerminateInstances),

		module.NewOperation(Service, module.OperationDef{
			Op:          "DescribeInstanceStatus",
			Name:        "Describe Instance Status",
			Description: "Describes the status checks and scheduled events of the specified instances.",
			Fields: describe(
				instanceIDs(false),
				schema.BoolField("IncludeAllInstances", "Includes instances that are not running."),
			),
			Output: page("InstanceStatuses", schema.Object(schema.Props{
				"InstanceId":       schema.String(""),
				"AvailabilityZone": schema.String(""),
				"InstanceState":    stateShape,
				"InstanceStatus":   schema.Object(nil),
				"SystemStatus":     schema.Object(nil),
				"Events":           schema.ArrayOf(schema.Object(nil)),
			})),
		}, (*ec2.Client).DescribeInstanceStatus),

		module.NewOperation(Service, module.OperationDef{
			Op:          "DescribeImages",
			Name:        "Describe Images",
			Description: "Describes the specified images (AMIs) available to you.",
			Fields: describe(
				ids("ImageIds", "The image IDs."),
				ids("Owners", "Owner account IDs, or self, amazon or aws-marketplace."),
				ids("ExecutableUsers", "Only images with launch permissions for these users."),
				schema.BoolField("IncludeDeprecated", "Includes deprecated AMIs."),
				schema.BoolField("IncludeDisabled", "Includes disabled AMIs."),
			),
			Output: page("Images", schema.Object(schema.Props{
				"ImageId":             schema.String(""),
				"Name":                schema.String(""),
				"Description":         schema.String(""),
				"State":               schema.String(""),
				"OwnerId":             schema.String(""),
				"CreationDate":        schema.String(""),
				"Architecture":        schema.String(""),
				"Public":              schema.Boolean(""),
				"RootDeviceName":      schema.String(""),
				"BlockDeviceMappings": schema.ArrayOf(blockDeviceMappingShape),
				"Tags":                schema.ArrayOf(tagShape),
			})),
		}, (*ec2.Client).DescribeImages),

		module.NewOperation(Service, module.OperationDef{
			Op:          "CreateImage",
			Name:        "Create Image",
			Description: "Creates an EBS-backed AMI from an instance.",
			Fields: []schema.ConfigFieldDef{
				schema.StringField("InstanceId", "The ID of the instance.").AsRequired(),
				schema.StringField("Name", "A name for the new image.").AsRequired(),
				schema.StringField("Description", "A description for the new image."),
				schema.BoolField("NoReboot", "Skips the instance reboot before imaging."),
				schema.ArrayField("BlockDeviceMappings", "Block device mappings for the image.", blockDeviceMappingShape),
				tagSpecifications(),
				dryRun(),
			},
			Output: schema.Object(schema.Props{"ImageId": schema.String("The ID of the new AMI.")}),
		}, (*ec2.Client).CreateImage),

		module.NewOperation(Service, module.OperationDef{
			Op:          "DescribeKeyPairs",
			Name:        "Describe Key Pairs",
			Description: "Describes the specified key pairs or all of your key pairs.",
			Fields: []schema.ConfigFieldDef{
				ids("KeyNames", "The key pair names."),
				ids("KeyPairIds", "The IDs of the key pairs."),
				schema.BoolField("IncludePublicKey", "Includes the public key material."),
				filters(),
				dryRun(),
			},
			Output: schema.Object(schema.Props{
				"KeyPairs": schema.ArrayOf(schema.Object(schema.Props{
					"KeyPairId":      schema.String(""),
					"KeyName":        schema.String(""),
					"KeyFingerprint": schema.String(""),
					"KeyType":        schema.String(""),
					"PublicKey":      schema.String(""),
					"CreateTime":     schema.String(""),
					"Tags":           schema.ArrayOf(tagShape),
				})),
			}),
		}, (*ec2.Client).DescribeKeyPairs),
	}
}
