package ec2

import (
	"github.com/aws/aws-sdk-go-v2/service/ec2"

	"github.com/spacelift-io/flows-app-aws-api/module"
	"github.com/spacelift-io/flows-app-aws-api/schema"
)

func volumeID() schema.ConfigFieldDef {
	return schema.StringField("VolumeId", "The ID of the volume.").AsRequired()
}

func storageBlocks() []module.Block {
	return []module.Block{
		module.NewOperation(Service, module.OperationDef{
			Op:          "DescribeVolumes",
			Name:        "Describe Volumes",
			Description: "Describes the specified EBS volumes or all of your EBS volumes.",
			Fields:      describe(ids("VolumeIds", "The volume IDs.")),
			Output:      page("Volumes", volumeShape),
		}, (*ec2.Client).DescribeVolumes),

		module.NewOperation(Service, module.OperationDef{
			Op:          "CreateVolume",
			Name:        "Create Volume",
			Description: "Creates an EBS volume that can be attached to an instance in the same Availability Zone.",
			Fields: []schema.ConfigFieldDef{
				schema.StringField("AvailabilityZone", "The Availability Zone in which to create the volume.").AsRequired(),
				schema.NumberField("Size", "Size of the volume in GiB. Required unless SnapshotId is given."),
				schema.StringField("SnapshotId", "The snapshot from which to create the volume."),
				schema.StringField("VolumeType", "gp2, gp3, io1, io2, st1, sc1 or standard."),
				schema.NumberField("Iops", "Provisioned IOPS for io1, io2 and gp3 volumes."),
				schema.NumberField("Throughput", "Throughput in MiB/s for gp3 volumes."),
				schema.BoolField("Encrypted", "Whether the volume is encrypted."),
				schema.StringField("KmsKeyId", "KMS key used for encryption."),
				schema.BoolField("MultiAttachEnabled", "Enables Multi-Attach for io1 and io2 volumes."),
				schema.StringField("OutpostArn", "The ARN of the Outpost to create the volume on."),
				schema.StringField("ClientToken", "Idempotency token."),
				tagSpecifications(),
				dryRun(),
			},
			Output: volumeShape,
		}, (*ec2.Client).CreateVolume),

		module.NewOperation(Service, module.OperationDef{
			Op:          "AttachVolume",
			Name:        "Attach Volume",
			Description: "Attaches an EBS volume to a running or stopped instance.",
			Fields: []schema.ConfigFieldDef{
				volumeID(),
				schema.StringField("InstanceId", "The ID of the instance.").AsRequired(),
				schema.StringField("Device", "The device name, e.g. /dev/sdh or xvdh.").AsRequired(),
				dryRun(),
			},
			Output: attachmentShape,
		}, (*ec2.Client).AttachVolume),

		module.NewOperation(Service, module.OperationDef{
			Op:          "DetachVolume",
			Name:        "Detach Volume",
			Description: "Detaches an EBS volume from an instance.",
			Fields: []schema.ConfigFieldDef{
				volumeID(),
				schema.StringField("InstanceId", "The ID of the instance."),
				schema.StringField("Device", "The device name."),
				schema.BoolField("Force", "Forces detachment if the previous attempt did not occur cleanly."),
				dryRun(),
			},
			Output: attachmentShape,
		}, (*ec2.Client).DetachVolume),

		module.NewOperation(Service, module.OperationDef{
			Op:          "DeleteVolume",
			Name:        "Delete Volume",
			Description: "Deletes the specified EBS volume. The volume must be in the available state.",
			Fields:      []schema.ConfigFieldDef{volumeID(), dryRun()},
		}, (*ec2.Client).DeleteVolume),

		module.NewOperation(Service, module.OperationDef{
			Op:          "CreateSnapshot",
			Name:        "Create Snapshot",
			Description: "Creates a point-in-time snapshot of an EBS volume.",
			Fields: []schema.ConfigFieldDef{
				volumeID(),
				schema.StringField("Description", "A description for the snapshot."),
				schema.StringField("OutpostArn", "The ARN of the Outpost to store the snapshot on."),
				tagSpecifications(),
				dryRun(),
			},
			Output: snapshotShape,
		}, (*ec2.Client).CreateSnapshot),

		module.NewOperation(Service, module.OperationDef{
			Op:          "DescribeSnapshots",
			Name:        "Describe Snapshots",
			Description: "Describes the specified EBS snapshots available to you.",
			Fields: describe(
				ids("SnapshotIds", "The snapshot IDs."),
				ids("OwnerIds", "Owner account IDs, or self or amazon."),
				ids("RestorableByUserIds", "Account IDs that can create volumes from the snapshot."),
			),
			Output: page("Snapshots", snapshotShape),
		}, (*ec2.Client).DescribeSnapshots),

		module.NewOperation(Service, module.OperationDef{
			Op:          "ModifyVolume",
			Name:        "Modify Volume",
			Description: "Modifies the size, type or performance of an EBS volume.",
			Fields: []schema.ConfigFieldDef{
				volumeID(),
				schema.NumberField("Size", "The target size in GiB."),
				schema.StringField("VolumeType", "The target volume type."),
				schema.NumberField("Iops", "The target IOPS rate."),
				schema.NumberField("Throughput", "The target throughput in MiB/s (gp3 only)."),
				schema.BoolField("MultiAttachEnabled", "Enables Multi-Attach (io1 and io2 only)."),
				dryRun(),
			},
			Output: schema.Object(schema.Props{
				"VolumeModification": schema.Object(schema.Props{
					"VolumeId":          schema.String(""),
					"ModificationState": schema.String("modifying, optimizing, completed or failed."),
					"TargetSize":        schema.Number(""),
					"TargetVolumeType":  schema.String(""),
					"TargetIops":        schema.Number(""),
					"Progress":          schema.Number(""),
					"StartTime":         schema.String(""),
				}),
			}),
		}, (*ec2.Client).ModifyVolume),

		module.NewOperation(Service, module.OperationDef{
			Op:          "DeleteSnapshot",
			Name:        "Delete Snapshot",
			Description: "Deletes an EBS snapshot.",
			Fields: []schema.ConfigFieldDef{
				schema.StringField("SnapshotId", "The ID of the snapshot.").AsRequired(),
				dryRun(),
			},
		}, (*ec2.Client).DeleteSnapshot),

		module.NewOperation(Service, module.OperationDef{
			Op:          "CopySnapshot",
			Name:        "Copy Snapshot",
			Description: "Copies a point-in-time snapshot of an EBS volume into the current Region.",
			Fields: []schema.ConfigFieldDef{
				schema.StringField("SourceSnapshotId", "The ID of the snapshot to copy.").AsRequired(),
				schema.StringField("SourceRegion", "The Region that contains the snapshot.").AsRequired(),
				schema.StringField("Description", "A description for the new snapshot."),
				schema.BoolField("Encrypted", "Encrypts the snapshot copy."),
				schema.StringField("KmsKeyId", "KMS key used to encrypt the copy."),
				tagSpecifications(),
				dryRun(),
			},
			Output: schema.Object(schema.Props{
				"SnapshotId": schema.String("The ID of the new snapshot."),
				"Tags":       schema.ArrayOf(tagShape),
			}),
		}, (*ec2.Client).CopySnapshot),
	}
}
