package rds

import (
	"github.com/aws/aws-sdk-go-v2/service/rds"

	"github.com/spacelift-io/flows-app-aws-api/module"
	"github.com/spacelift-io/flows-app-aws-api/schema"
)

var dbClusterSnapshotShape = schema.Object(schema.Props{
	"DBClusterSnapshotIdentifier": schema.String(""),
	"DBClusterSnapshotArn":        schema.String(""),
	"DBClusterIdentifier":         schema.String(""),
	"SnapshotCreateTime":          schema.String(""),
	"Engine":                      schema.String(""),
	"EngineVersion":               schema.String(""),
	"Status":                      schema.String(""),
	"SnapshotType":                schema.String("manual, automated, shared or public."),
	"PercentProgress":             schema.Number(""),
	"StorageEncrypted":            schema.Boolean(""),
	"KmsKeyId":                    schema.String(""),
	"TagList":                     schema.ArrayOf(tagShape),
})

func vpcSecurityGroupIDs() schema.ConfigFieldDef {
	return schema.ArrayField("VpcSecurityGroupIds", "VPC security groups to associate.", schema.String(""))
}

// recoveryBlocks cover cluster snapshots, restores, replicas and failover.
func recoveryBlocks() []module.Block {
	clusterSnapshotID := func(desc string) schema.ConfigFieldDef {
		return schema.StringField("DBClusterSnapshotIdentifier", desc).AsRequired()
	}

	return []module.Block{
		module.NewOperation(Service, module.OperationDef{
			Op:          "DescribeDBClusterSnapshots",
			Name:        "Describe DB Cluster Snapshots",
			Description: "Describes DB cluster snapshots.",
			Fields: append([]schema.ConfigFieldDef{
				schema.StringField("DBClusterIdentifier", "Only describe snapshots of this cluster."),
				schema.StringField("DBClusterSnapshotIdentifier", "Only describe this snapshot."),
				schema.StringField("SnapshotType", "automated, manual, shared or public."),
				schema.BoolField("IncludeShared", "Includes snapshots shared from other accounts."),
				schema.BoolField("IncludePublic", "Includes public snapshots."),
				filters(),
			}, paging()...),
			Output: page("DBClusterSnapshots", dbClusterSnapshotShape),
		}, (*rds.Client).DescribeDBClusterSnapshots),

		module.NewOperation(Service, module.OperationDef{
			Op:          "CreateDBClusterSnapshot",
			Name:        "Create DB Cluster Snapshot",
			Description: "Creates a snapshot of a DB cluster.",
			Fields: []schema.ConfigFieldDef{
				clusterID("The cluster to snapshot."),
				clusterSnapshotID("Identifier for the new snapshot."),
				tags("Tags to assign to the snapshot."),
			},
			Output: wrap("DBClusterSnapshot", dbClusterSnapshotShape),
		}, (*rds.Client).CreateDBClusterSnapshot),

		module.NewOperation(Service, module.OperationDef{
			Op:          "DeleteDBClusterSnapshot",
			Name:        "Delete DB Cluster Snapshot",
			Description: "Deletes a manual DB cluster snapshot.",
			Fields:      []schema.ConfigFieldDef{clusterSnapshotID("The snapshot to delete.")},
			Output:      wrap("DBClusterSnapshot", dbClusterSnapshotShape),
		}, (*rds.Client).DeleteDBClusterSnapshot),

		module.NewOperation(Service, module.OperationDef{
			Op:          "ModifyDBCluster",
			Name:        "Modify DB Cluster",
			Description: "Modifies the settings of a DB cluster.",
			Fields: []schema.ConfigFieldDef{
				clusterID("The cluster to modify."),
				schema.StringField("NewDBClusterIdentifier", "New identifier for the cluster."),
				schema.BoolField("ApplyImmediately", "Applies the changes now instead of in the maintenance window."),
				schema.StringField("EngineVersion", "Version to upgrade to."),
				schema.StringField("DBClusterInstanceClass", "Compute class of each instance in a Multi-AZ cluster."),
				schema.StringField("MasterUserPassword", "New password for the master user."),
				schema.BoolField("ManageMasterUserPassword", "Manages the master password in Secrets Manager."),
				schema.NumberField("Port", "Port the cluster accepts connections on."),
				vpcSecurityGroupIDs(),
				schema.NumberField("BackupRetentionPeriod", "Days to retain automated backups."),
				schema.StringField("PreferredBackupWindow", "Daily backup window, e.g. 03:00-04:00."),
				schema.StringField("PreferredMaintenanceWindow", "Weekly maintenance window, e.g. sun:05:00-sun:06:00."),
				schema.StringField("DBClusterParameterGroupName", "Cluster parameter group to associate."),
				schema.BoolField("DeletionProtection", "Enables deletion protection."),
				schema.BoolField("CopyTagsToSnapshot", "Copies cluster tags to snapshots."),
			},
			Output: wrap("DBCluster", dbClusterShape),
		}, (*rds.Client).ModifyDBCluster),

		module.NewOperation(Service, module.OperationDef{
			Op:          "RebootDBCluster",
			Name:        "Reboot DB Cluster",
			Description: "Reboots a Multi-AZ DB cluster.",
			Fields:      []schema.ConfigFieldDef{clusterID("The cluster to reboot.")},
			Output:      wrap("DBCluster", dbClusterShape),
		}, (*rds.Client).RebootDBCluster),

		module.NewOperation(Service, module.OperationDef{
			Op:          "FailoverDBCluster",
			Name:        "Failover DB Cluster",
			Description: "Forces a failover of a DB cluster to one of its readers.",
			Fields: []schema.ConfigFieldDef{
				clusterID("The cluster to fail over."),
				schema.StringField("TargetDBInstanceIdentifier", "Reader instance to promote to writer."),
			},
			Output: wrap("DBCluster", dbClusterShape),
		}, (*rds.Client).FailoverDBCluster),

		module.NewOperation(Service, module.OperationDef{
			Op:          "RestoreDBClusterFromSnapshot",
			Name:        "Restore DB Cluster From Snapshot",
			Description: "Creates a new DB cluster from a DB snapshot or DB cluster snapshot.",
			Fields: []schema.ConfigFieldDef{
				clusterID("Identifier for the restored cluster."),
				schema.StringField("SnapshotIdentifier", "Name or ARN of the snapshot to restore from.").AsRequired(),
				schema.StringField("Engine", "Database engine of the new cluster.").AsRequired(),
				schema.StringField("EngineVersion", "Version of the database engine."),
				schema.StringField("EngineMode", "provisioned or serverless."),
				schema.StringField("DBClusterInstanceClass", "Compute class of each instance in a Multi-AZ cluster."),
				schema.NumberField("Port", "Port the cluster accepts connections on."),
				schema.StringField("DBSubnetGroupName", "DB subnet group for the cluster."),
				vpcSecurityGroupIDs(),
				schema.StringField("KmsKeyId", "KMS key for an encrypted cluster."),
				schema.StringField("DBClusterParameterGroupName", "Cluster parameter group to associate."),
				schema.BoolField("DeletionProtection", "Enables deletion protection."),
				tags("Tags to assign to the restored cluster."),
			},
			Output: wrap("DBCluster", dbClusterShape),
		}, (*rds.Client).RestoreDBClusterFromSnapshot),

		module.NewOperation(Service, module.OperationDef{
			Op:          "RestoreDBInstanceFromDBSnapshot",
			Name:        "Restore DB Instance From DB Snapshot",
			Description: "Creates a new DB instance from a DB snapshot.",
			Fields: []schema.ConfigFieldDef{
				instanceID("Identifier for the restored instance."),
				schema.StringField("DBSnapshotIdentifier", "The snapshot to restore from."),
				schema.StringField("DBInstanceClass", "Compute and memory capacity, e.g. db.t3.micro."),
				schema.StringField("Engine", "Database engine, when it differs from the snapshot's."),
				schema.NumberField("Port", "Port the instance accepts connections on."),
				schema.StringField("AvailabilityZone", "Availability Zone for the instance."),
				schema.BoolField("MultiAZ", "Creates a Multi-AZ deployment."),
				schema.BoolField("PubliclyAccessible", "Whether the instance has a public address."),
				schema.StringField("StorageType", "gp2, gp3, io1, io2 or standard."),
				schema.StringField("DBSubnetGroupName", "DB subnet group for the instance."),
				vpcSecurityGroupIDs(),
				schema.StringField("DBParameterGroupName", "DB parameter group to associate."),
				schema.BoolField("DeletionProtection", "Enables deletion protection."),
				tags("Tags to assign to the restored instance."),
			},
			Output: wrap("DBInstance", dbInstanceShape),
		}, (*rds.Client).RestoreDBInstanceFromDBSnapshot),

		module.NewOperation(Service, module.OperationDef{
			Op:          "CreateDBInstanceReadReplica",
			Name:        "Create DB Instance Read Replica",
			Description: "Creates a read replica of a source DB instance.",
			Fields: []schema.ConfigFieldDef{
				instanceID("Identifier for the read replica."),
				schema.StringField("SourceDBInstanceIdentifier", "Identifier or ARN of the source instance.").AsRequired(),
				schema.StringField("SourceRegion", "Region of the source instance, for cross-Region replicas."),
				schema.StringField("DBInstanceClass", "Compute and memory capacity of the replica."),
				schema.StringField("AvailabilityZone", "Availability Zone for the replica."),
				schema.NumberField("Port", "Port the replica accepts connections on."),
				schema.BoolField("MultiAZ", "Creates the replica as a Multi-AZ deployment."),
				schema.BoolField("PubliclyAccessible", "Whether the replica has a public address."),
				schema.StringField("StorageType", "gp2, gp3, io1, io2 or standard."),
				schema.StringField("DBSubnetGroupName", "DB subnet group for a cross-Region replica."),
				vpcSecurityGroupIDs(),
				schema.StringField("KmsKeyId", "KMS key for an encrypted cross-Region replica."),
				schema.BoolField("DeletionProtection", "Enables deletion protection."),
				tags("Tags to assign to the replica."),
			},
			Output: wrap("DBInstance", dbInstanceShape),
		}, (*rds.Client).CreateDBInstanceReadReplica),

		module.NewOperation(Service, module.OperationDef{
			Op:          "PromoteReadReplica",
			Name:        "Promote Read Replica",
			Description: "Promotes a read replica to a standalone DB instance.",
			Fields: []schema.ConfigFieldDef{
				instanceID("The read replica to promote."),
				schema.NumberField("BackupRetentionPeriod", "Days to retain automated backups."),
				schema.StringField("PreferredBackupWindow", "Daily backup window, e.g. 03:00-04:00."),
			},
			Output: wrap("DBInstance", dbInstanceShape),
		}, (*rds.Client).PromoteReadReplica),

		module.NewOperation(Service, module.OperationDef{
			Op:          "CopyDBSnapshot",
			Name:        "Copy DB Snapshot",
			Description: "Copies a DB snapshot, within the Region or from another Region.",
			Fields: []schema.ConfigFieldDef{
				schema.StringField("SourceDBSnapshotIdentifier", "Identifier or ARN of the snapshot to copy.").AsRequired(),
				schema.StringField("TargetDBSnapshotIdentifier", "Identifier for the copy.").AsRequired(),
				schema.StringField("SourceRegion", "Region of the source snapshot, for cross-Region copies."),
				schema.StringField("KmsKeyId", "KMS key for an encrypted copy."),
				schema.BoolField("CopyTags", "Copies the tags of the source snapshot."),
				schema.StringField("OptionGroupName", "Option group for the copy."),
				tags("Tags to assign to the copy."),
			},
			Output: wrap("DBSnapshot", dbSnapshotShape),
		}, (*rds.Client).CopyDBSnapshot),

		module.NewOperation(Service, module.OperationDef{
			Op:          "RemoveTagsFromResource",
			Name:        "Remove Tags From Resource",
			Description: "Removes metadata tags from an RDS resource.",
			Fields: []schema.ConfigFieldDef{
				schema.StringField("ResourceName", "ARN of the resource.").AsRequired(),
				schema.ArrayField("TagKeys", "Keys of the tags to remove.", schema.String("")).AsRequired(),
			},
		}, (*rds.Client).RemoveTagsFromResource),
	}
}
