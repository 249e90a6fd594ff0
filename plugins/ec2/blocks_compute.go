package ec2

import (
	"github.com/aws/aws-sdk-go-v2/service/ec2"

	"github.com/spacelift-io/flows-app-aws-api/module"
	"github.com/spacelift-io/flows-app-aws-api/schema"
)

func computeBlocks() []module.Block {
	keyPairResult := schema.Object(schema.Props{
		"KeyPairId":      schema.String(""),
		"KeyName":        schema.String(""),
		"KeyFingerprint": schema.String(""),
		"Tags":           schema.ArrayOf(tagShape),
	})
	monitoring := schema.Object(schema.Props{"InstanceMonitorings": schema.ArrayOf(instanceMonitoringShape)})
	boolAttribute := func(key, desc string) schema.ConfigFieldDef {
		return schema.ObjectField(key, desc, schema.Object(schema.Props{"Value": schema.Boolean("")}))
	}
	stringAttribute := func(key, desc string) schema.ConfigFieldDef {
		return schema.ObjectField(key, desc, schema.Object(schema.Props{"Value": schema.String("")}))
	}

	return []module.Block{
		module.NewOperation(Service, module.OperationDef{
			Op:          "CreateKeyPair",
			Name:        "Create Key Pair",
			Description: "Creates a key pair. The private key is returned once and is not stored by AWS.",
			Fields: []schema.ConfigFieldDef{
				schema.StringField("KeyName", "A unique name for the key pair.").AsRequired(),
				schema.StringField("KeyType", "rsa or ed25519."),
				schema.StringField("KeyFormat", "pem or ppk."),
				tagSpecifications(),
				dryRun(),
			},
			Output: schema.Object(schema.Props{
				"KeyPairId":      schema.String(""),
				"KeyName":        schema.String(""),
				"KeyFingerprint": schema.String(""),
				"KeyMaterial":    schema.String("The unencrypted private key."),
				"Tags":           schema.ArrayOf(tagShape),
			}),
		}, (*ec2.Client).CreateKeyPair),

		module.NewOperation(Service, module.OperationDef{
			Op:          "ImportKeyPair",
			Name:        "Import Key Pair",
			Description: "Imports the public key of a key pair created with a third-party tool.",
			Fields: []schema.ConfigFieldDef{
				schema.StringField("KeyName", "A unique name for the key pair.").AsRequired(),
				schema.StringField("PublicKeyMaterial", "The public key, e.g. an OpenSSH authorized_keys line.").AsRequired().AsText(),
				tagSpecifications(),
				dryRun(),
			},
			Output: keyPairResult,
		}, (*ec2.Client).ImportKeyPair),

		module.NewOperation(Service, module.OperationDef{
			Op:          "DeleteKeyPair",
			Name:        "Delete Key Pair",
			Description: "Deletes a key pair by removing its public key from EC2.",
			Fields: []schema.ConfigFieldDef{
				schema.StringField("KeyName", "The name of the key pair."),
				schema.StringField("KeyPairId", "The ID of the key pair."),
				dryRun(),
			},
			Output: schema.Object(schema.Props{
				"KeyPairId": schema.String(""),
				"Return":    schema.Boolean(""),
			}),
		}, (*ec2.Client).DeleteKeyPair),

		module.NewOperation(Service, module.OperationDef{
			Op:          "DeregisterImage",
			Name:        "Deregister Image",
			Description: "Deregisters an AMI so it can no longer be used to launch instances.",
			Fields: []schema.ConfigFieldDef{
				schema.StringField("ImageId", "The ID of the AMI.").AsRequired(),
				schema.BoolField("DeleteAssociatedSnapshots", "Also deletes the snapshots backing the AMI."),
				dryRun(),
			},
			Output: schema.Object(schema.Props{
				"Return": schema.Boolean(""),
				"DeleteSnapshotResults": schema.ArrayOf(schema.Object(schema.Props{
					"SnapshotId": schema.String(""),
					"ReturnCode": schema.String(""),
				})),
			}),
		}, (*ec2.Client).DeregisterImage),

		module.NewOperation(Service, module.OperationDef{
			Op:          "CopyImage",
			Name:        "Copy Image",
			Description: "Initiates the copy of an AMI from a source Region to the current Region.",
			Fields: []schema.ConfigFieldDef{
				schema.StringField("Name", "The name of the new AMI.").AsRequired(),
				schema.StringField("SourceImageId", "The ID of the AMI to copy.").AsRequired(),
				schema.StringField("SourceRegion", "The Region that contains the AMI to copy.").AsRequired(),
				schema.StringField("Description", "A description for the new AMI."),
				schema.BoolField("Encrypted", "Encrypts the snapshots of the copied AMI."),
				schema.StringField("KmsKeyId", "KMS key used to encrypt the snapshots."),
				schema.BoolField("CopyImageTags", "Copies the user-defined tags of the source AMI."),
				schema.StringField("ClientToken", "Idempotency token."),
				tagSpecifications(),
				dryRun(),
			},
			Output: schema.Object(schema.Props{"ImageId": schema.String("The ID of the new AMI.")}),
		}, (*ec2.Client).CopyImage),

		module.NewOperation(Service, module.OperationDef{
			Op:          "ModifyInstanceAttribute",
			Name:        "Modify Instance Attribute",
			Description: "Modifies one attribute of an instance per call.",
			Fields: []schema.ConfigFieldDef{
				schema.StringField("InstanceId", "The ID of the instance.").AsRequired(),
				schema.StringField("Attribute", "Name of the attribute to set with Value."),
				schema.StringField("Value", "New value for Attribute."),
				stringAttribute("InstanceType", "New instance type. The instance must be stopped."),
				stringAttribute("InstanceInitiatedShutdownBehavior", "stop or terminate."),
				boolAttribute("DisableApiTermination", "Whether the instance can be terminated through the API."),
				boolAttribute("DisableApiStop", "Whether the instance can be stopped through the API."),
				boolAttribute("EbsOptimized", "Whether the instance is optimized for EBS I/O."),
				boolAttribute("SourceDestCheck", "Whether source/destination checking is enabled."),
				ids("Groups", "Replaces the security groups of the instance."),
				dryRun(),
			},
		}, (*ec2.Client).ModifyInstanceAttribute),

		module.NewOperation(Service, module.OperationDef{
			Op:          "MonitorInstances",
			Name:        "Monitor Instances",
			Description: "Enables detailed monitoring for running instances.",
			Fields:      []schema.ConfigFieldDef{instanceIDs(true), dryRun()},
			Output:      monitoring,
		}, (*ec2.Client).MonitorInstances),

		module.NewOperation(Service, module.OperationDef{
			Op:          "UnmonitorInstances",
			Name:        "Unmonitor Instances",
			Description: "Disables detailed monitoring for running instances.",
			Fields:      []schema.ConfigFieldDef{instanceIDs(true), dryRun()},
			Output:      monitoring,
		}, (*ec2.Client).UnmonitorInstances),

		module.NewOperation(Service, module.OperationDef{
			Op:          "GetConsoleOutput",
			Name:        "Get Console Output",
			Description: "Gets the console output of an instance, base64-encoded.",
			Fields: []schema.ConfigFieldDef{
				schema.StringField("InstanceId", "The ID of the instance.").AsRequired(),
				schema.BoolField("Latest", "Returns the latest output instead of the buffered output."),
				dryRun(),
			},
			Output: schema.Object(schema.Props{
				"InstanceId": schema.String(""),
				"Output":     schema.String("Console output, base64-encoded."),
				"Timestamp":  schema.String(""),
			}),
		}, (*ec2.Client).GetConsoleOutput),

		module.NewOperation(Service, module.OperationDef{
			Op:          "DescribeInstanceTypes",
			Name:        "Describe Instance Types",
			Description: "Describes the instance types offered in the Region.",
			Fields:      describe(ids("InstanceTypes", "The instance types, e.g. t3.micro.")),
			Output: page("InstanceTypes", schema.Object(schema.Props{
				"InstanceType":      schema.String(""),
				"CurrentGeneration": schema.Boolean(""),
				"FreeTierEligible":  schema.Boolean(""),
				"Hypervisor":        schema.String(""),
				"VCpuInfo":          schema.Object(nil),
				"MemoryInfo":        schema.Object(nil),
				"ProcessorInfo":     schema.Object(nil),
				"NetworkInfo":       schema.Object(nil),
			})),
		}, (*ec2.Client).DescribeInstanceTypes),

		module.NewOperation(Service, module.OperationDef{
			Op:          "DescribeTags",
			Name:        "Describe Tags",
			Description: "Describes the tags on your EC2 resources.",
			Fields:      describe(),
			Output: page("Tags", schema.Object(schema.Props{
				"Key":          schema.String(""),
				"Value":        schema.String(""),
				"ResourceId":   schema.String(""),
				"ResourceType": schema.String(""),
			})),
		}, (*ec2.Client).DescribeTags),

		module.NewOperation(Service, module.OperationDef{
			Op:          "DescribeAvailabilityZones",
			Name:        "Describe Availability Zones",
			Description: "Describes the Availability, Local and Wavelength Zones available to you.",
			Fields: []schema.ConfigFieldDef{
				ids("ZoneNames", "The names of the zones."),
				ids("ZoneIds", "The IDs of the zones."),
				schema.BoolField("AllAvailabilityZones", "Includes zones that are not opted in."),
				filters(),
				dryRun(),
			},
			Output: schema.Object(schema.Props{
				"AvailabilityZones": schema.ArrayOf(schema.Object(schema.Props{
					"ZoneName":    schema.String(""),
					"ZoneId":      schema.String(""),
					"ZoneType":    schema.String(""),
					"RegionName":  schema.String(""),
					"State":       schema.String(""),
					"OptInStatus": schema.String(""),
				})),
			}),
		}, (*ec2.Client).DescribeAvailabilityZones),

		module.NewOperation(Service, module.OperationDef{
			Op:          "DescribeRegions",
			Name:        "Describe Regions",
			Description: "Describes the Regions that are enabled for your account, or all Regions.",
			Fields: []schema.ConfigFieldDef{
				ids("RegionNames", "The names of the Regions."),
				schema.BoolField("AllRegions", "Includes Regions that are disabled for the account."),
				filters(),
				dryRun(),
			},
			Output: schema.Object(schema.Props{
				"Regions": schema.ArrayOf(schema.Object(schema.Props{
					"RegionName":  schema.String(""),
					"Endpoint":    schema.String(""),
					"OptInStatus": schema.String(""),
				})),
			}),
		}, (*ec2.Client).DescribeRegions),
	}
}
