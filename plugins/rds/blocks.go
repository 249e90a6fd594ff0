package rds

import (
	"github.com/aws/aws-sdk-go-v2/service/rds"

	"github.com/spacelift-io/flows-app-aws-api/module"
	"github.com/spacelift-io/flows-app-aws-api/schema"
)

var (
	tagShape = schema.Tag("Key", "Value")

	endpointShape = schema.Object(schema.Props{
		"Address":      schema.String(""),
		"Port":         schema.Number(""),
		"HostedZoneId": schema.String(""),
	})

	dbInstanceShape = schema.Object(schema.Props{
		"DBInstanceIdentifier": schema.String(""),
		"DBInstanceArn":        schema.String(""),
		"DBInstanceClass":      schema.String(""),
		"DBInstanceStatus":     schema.String(""),
		"Engine":               schema.String(""),
		"EngineVersion":        schema.String(""),
		"Endpoint":             endpointShape,
		"AllocatedStorage":     schema.Number(""),
		"AvailabilityZone":     schema.String(""),
		"MultiAZ":              schema.Boolean(""),
		"MasterUsername":       schema.String(""),
		"DBName":               schema.String(""),
		"DBClusterIdentifier":  schema.String(""),
		"InstanceCreateTime":   schema.String(""),
		"StorageType":          schema.String(""),
		"StorageEncrypted":     schema.Boolean(""),
		"PubliclyAccessible":   schema.Boolean(""),
		"DeletionProtection":   schema.Boolean(""),
		"TagList":              schema.ArrayOf(tagShape),
	})

	dbSnapshotShape = schema.Object(schema.Props{
		"DBSnapshotIdentifier": schema.String(""),
		"DBSnapshotArn":        schema.String(""),
		"DBInstanceIdentifier": schema.String(""),
		"SnapshotCreateTime":   schema.String(""),
		"SnapshotType":         schema.String(""),
		"Status":               schema.String(""),
		"Engine":               schema.String(""),
		"EngineVersion":        schema.String(""),
		"AllocatedStorage":     schema.Number(""),
		"Encrypted":            schema.Boolean(""),
		"PercentProgress":      schema.Number(""),
		"TagList":              schema.ArrayOf(tagShape),
	})

	dbClusterShape = schema.Object(schema.Props{
		"DBClusterIdentifier": schema.String(""),
		"DBClusterArn":        schema.String(""),
		"Status":              schema.String(""),
		"Engine":              schema.String(""),
		"EngineVersion":       schema.String(""),
		"EngineMode":          schema.String(""),
		"Endpoint":            schema.String(""),
		"ReaderEndpoint":      schema.String(""),
		"Port":                schema.Number(""),
		"MasterUsername":      schema.String(""),
		"DatabaseName":        schema.String(""),
		"MultiAZ":             schema.Boolean(""),
		"StorageEncrypted":    schema.Boolean(""),
		"DeletionProtection":  schema.Boolean(""),
		"DBClusterMembers": schema.ArrayOf(schema.Object(schema.Props{
			"DBInstanceIdentifier": schema.String(""),
			"IsClusterWriter":      schema.Boolean(""),
		})),
		"TagList": schema.ArrayOf(tagShape),
	})
)

func instanceID(desc string) schema.ConfigFieldDef {
	return schema.StringField("DBInstanceIdentifier", desc).AsRequired()
}

func clusterID(desc string) schema.ConfigFieldDef {
	return schema.StringField("DBClusterIdentifier", desc).AsRequired()
}

func tags(desc string) schema.ConfigFieldDef {
	return schema.ArrayField("Tags", desc, tagShape)
}

func filters() schema.ConfigFieldDef {
	return schema.ArrayField("Filters", "Filters to narrow the results.", schema.Object(schema.Props{
		"Name":   schema.String(""),
		"Values": schema.Strings(""),
	}, "Name", "Values"))
}

func paging() []schema.ConfigFieldDef {
	return []schema.ConfigFieldDef{
		schema.NumberField("MaxRecords", "Maximum number of records to return (20-100)."),
		schema.StringField("Marker", "Marker returned by a previous request."),
	}
}

func page(key string, items *schema.JSONSchema) *schema.JSONSchema {
	return schema.Object(schema.Props{
		key:      schema.ArrayOf(items),
		"Marker": schema.String("Marker for the next page, if any."),
	})
}

func wrap(key string, shape *schema.JSONSchema) *schema.JSONSchema {
	return schema.Object(schema.Props{key: shape})
}

// Blocks returns a fresh set of RDS blocks.
func Blocks() []module.Block {
	blocks := instanceBlocks()
	blocks = append(blocks, clusterBlocks()...)
	blocks = append(blocks, recoveryBlocks()...)
	return append(blocks, groupBlocks()...)
}

func instanceBlocks() []module.Block {
	return []module.Block{
		module.NewOperation(Service, module.OperationDef{
			Op:          "DescribeDBInstances",
			Name:        "Describe DB Instances",
			Description: "Describes provisioned RDS DB instances.",
			Fields: append([]schema.ConfigFieldDef{
				schema.StringField("DBInstanceIdentifier", "Only describe this DB instance."),
				filters(),
			}, paging()...),
			Output: page("DBInstances", dbInstanceShape),
		}, (*rds.Client).DescribeDBInstances),

		module.NewOperation(Service, module.OperationDef{
			Op:          "CreateDBInstance",
			Name:        "Create DB Instance",
			Description: "Creates a new DB instance.",
			Fields: []schema.ConfigFieldDef{
				instanceID("Identifier for the new DB instance."),
				schema.StringField("DBInstanceClass", "Compute and memory capacity, e.g. db.t3.micro.").AsRequired(),
				schema.StringField("Engine", "Database engine, e.g. mysql, postgres or aurora-postgresql.").AsRequired(),
				schema.StringField("EngineVersion", "Version of the database engine."),
				schema.NumberField("AllocatedStorage", "Storage in GiB."),
				schema.StringField("StorageType", "gp2, gp3, io1, io2 or standard."),
				schema.NumberField("Iops", "Provisioned IOPS."),
				schema.StringField("MasterUsername", "Name of the master user."),
				schema.StringField("MasterUserPassword", "Password of the master user."),
				schema.BoolField("ManageMasterUserPassword", "Manages the master password in Secrets Manager."),
				schema.StringField("DBName", "Name of the initial database."),
				schema.NumberField("Port", "Port the instance accepts connections on."),
				schema.StringField("DBSubnetGroupName", "DB subnet group to place the instance in."),
				schema.ArrayField("VpcSecurityGroupIds", "VPC security groups to associate.", schema.String("")),
				schema.StringField("AvailabilityZone", "Availability Zone for the instance."),
				schema.BoolField("MultiAZ", "Creates a Multi-AZ deployment."),
				schema.BoolField("PubliclyAccessible", "Whether the instance has a public address."),
				schema.BoolField("StorageEncrypted", "Whether storage is encrypted."),
				schema.StringField("KmsKeyId", "KMS key for storage encryption."),
				schema.NumberField("BackupRetentionPeriod", "Days to retain automated backups."),
				schema.StringField("DBParameterGroupName", "DB parameter group to associate."),
				schema.StringField("DBClusterIdentifier", "Aurora cluster the instance belongs to."),
				schema.BoolField("DeletionProtection", "Enables deletion protection."),
				schema.BoolField("CopyTagsToSnapshot", "Copies instance tags to snapshots."),
				schema.BoolField("AutoMinorVersionUpgrade", "Applies minor engine upgrades automatically."),
				schema.StringField("PreferredBackupWindow", "Daily backup window, e.g. 03:00-04:00."),
				schema.StringField("PreferredMaintenanceWindow", "Weekly maintenance window, e.g. sun:05:00-sun:06:00."),
				tags("Tags to assign to the DB instance."),
			},
			Output: wrap("DBInstance", dbInstanceShape),
		}, (*rds.Client).CreateDBInstance),

		module.NewOperation(Service, module.OperationDef{
			Op:          "DeleteDBInstance",
			Name:        "Delete DB Instance",
			Description: "Deletes a previously provisioned DB instance.",
			Fields: []schema.ConfigFieldDef{
				instanceID("The DB instance to delete."),
				schema.BoolField("SkipFinalSnapshot", "Skips the final snapshot."),
				schema.StringField("FinalDBSnapshotIdentifier", "Name of the final snapshot. Required unless SkipFinalSnapshot is set."),
				schema.BoolField("DeleteAutomatedBackups", "Deletes automated backups immediately."),
			},
			Output: wrap("DBInstance", dbInstanceShape),
		}, (*rds.Client).DeleteDBInstance),

		module.NewOperation(Service, module.OperationDef{
			Op:          "StartDBInstance",
			Name:        "Start DB Instance",
			Description: "Starts a DB instance that was stopped.",
			Fields:      []schema.ConfigFieldDef{instanceID("The DB instance to start.")},
			Output:      wrap("DBInstance", dbInstanceShape),
		}, (*rds.Client).StartDBInstance),

		module.NewOperation(Service, module.OperationDef{
			Op:          "StopDBInstance",
			Name:        "Stop DB Instance",
			Description: "Stops a DB instance. Stopped instances are started again automatically after seven days.",
			Fields: []schema.ConfigFieldDef{
				instanceID("The DB instance to stop."),
				schema.StringField("DBSnapshotIdentifier", "Snapshot to create before stopping."),
			},
			Output: wrap("DBInstance", dbInstanceShape),
		}, (*rds.Client).StopDBInstance),

		module.NewOperation(Service, module.OperationDef{
			Op:          "RebootDBInstance",
			Name:        "Reboot DB Instance",
			Description: "Restarts the database engine service of a DB instance.",
			Fields: []schema.ConfigFieldDef{
				instanceID("The DB instance to reboot."),
				schema.BoolField("ForceFailover", "Forces a Multi-AZ failover during the reboot."),
			},
			Output: wrap("DBInstance", dbInstanceShape),
		}, (*rds.Client).RebootDBInstance),

		module.NewOperation(Service, module.OperationDef{
			Op:          "ModifyDBInstance",
			Name:        "Modify DB Instance",
			Description: "Modifies settings of a DB instance.",
			Fields: []schema.ConfigFieldDef{
				instanceID("The DB instance to modify."),
				schema.BoolField("ApplyImmediately", "Applies changes now instead of in the next maintenance window."),
				schema.StringField("DBInstanceClass", "New instance class."),
				schema.NumberField("AllocatedStorage", "New storage size in GiB."),
				schema.StringField("StorageType", "New storage type."),
				schema.NumberField("Iops", "New provisioned IOPS."),
				schema.StringField("EngineVersion", "Engine version to upgrade to."),
				schema.BoolField("AllowMajorVersionUpgrade", "Allows major version upgrades."),
				schema.BoolField("AutoMinorVersionUpgrade", "Applies minor engine upgrades automatically."),
				schema.StringField("MasterUserPassword", "New master user password."),
				schema.BoolField("MultiAZ", "Whether the instance is Multi-AZ."),
				schema.BoolField("PubliclyAccessible", "Whether the instance has a public address."),
				schema.NumberField("BackupRetentionPeriod", "Days to retain automated backups."),
				schema.ArrayField("VpcSecurityGroupIds", "VPC security groups to associate.", schema.String("")),
				schema.StringField("DBParameterGroupName", "DB parameter group to associate."),
				schema.BoolField("DeletionProtection", "Enables or disables deletion protection."),
				schema.StringField("NewDBInstanceIdentifier", "Renames the DB instance."),
				schema.StringField("PreferredBackupWindow", "Daily backup window."),
				schema.StringField("PreferredMaintenanceWindow", "Weekly maintenance window."),
			},
			Output: wrap("DBInstance", dbInstanceShape),
		}, (*rds.Client).ModifyDBInstance),

		module.NewOperation(Service, module.OperationDef{
			Op:          "CreateDBSnapshot",
			Name:        "Create DB Snapshot",
			Description: "Creates a snapshot of a DB instance. The instance must be available.",
			Fields: []schema.ConfigFieldDef{
				schema.StringField("DBSnapshotIdentifier", "Identifier for the snapshot.").AsRequired(),
				instanceID("The DB instance to snapshot."),
				tags("Tags to assign to the snapshot."),
			},
			Output: wrap("DBSnapshot", dbSnapshotShape),
		}, (*rds.Client).CreateDBSnapshot),

		module.NewOperation(Service, module.OperationDef{
			Op:          "DescribeDBSnapshots",
			Name:        "Describe DB Snapshots",
			Description: "Describes DB instance snapshots.",
			Fields: append([]schema.ConfigFieldDef{
				schema.StringField("DBInstanceIdentifier", "Only snapshots of this DB instance."),
				schema.StringField("DBSnapshotIdentifier", "Only this snapshot."),
				schema.StringField("SnapshotType", "automated, manual, shared, public or awsbackup."),
				schema.BoolField("IncludeShared", "Includes snapshots shared from other accounts."),
				schema.BoolField("IncludePublic", "Includes public snapshots."),
				schema.StringField("DbiResourceId", "Only snapshots of the instance with this resource ID."),
				filters(),
			}, paging()...),
			Output: page("DBSnapshots", dbSnapshotShape),
		}, (*rds.Client).DescribeDBSnapshots),

		module.NewOperation(Service, module.OperationDef{
			Op:          "DeleteDBSnapshot",
			Name:        "Delete DB Snapshot",
			Description: "Deletes a manual DB snapshot.",
			Fields: []schema.ConfigFieldDef{
				schema.StringField("DBSnapshotIdentifier", "The snapshot to delete.").AsRequired(),
			},
			Output: wrap("DBSnapshot", dbSnapshotShape),
		}, (*rds.Client).DeleteDBSnapshot),

		module.NewOperation(Service, module.OperationDef{
			Op:          "DescribeDBEngineVersions",
			Name:        "Describe DB Engine Versions",
			Description: "Describes the available DB engines and versions.",
			Fields: append([]schema.ConfigFieldDef{
				schema.StringField("Engine", "Database engine to return versions for."),
				schema.StringField("EngineVersion", "Engine version to return."),
				schema.StringField("DBParameterGroupFamily", "Only versions of this parameter group family."),
				schema.BoolField("DefaultOnly", "Only the default version of each engine."),
				schema.BoolField("IncludeAll", "Includes available and unavailable versions."),
				schema.BoolField("ListSupportedCharacterSets", "Lists supported character sets."),
				schema.BoolField("ListSupportedTimezones", "Lists supported time zones."),
				filters(),
			}, paging()...),
			Output: page("DBEngineVersions", schema.Object(schema.Props{
				"Engine":                     schema.String(""),
				"EngineVersion":              schema.String(""),
				"DBParameterGroupFamily":     schema.String(""),
				"DBEngineDescription":        schema.String(""),
				"DBEngineVersionDescription": schema.String(""),
				"Status":                     schema.String(""),
			})),
		}, (*rds.Client).DescribeDBEngineVersions),

		module.NewOperation(Service, module.OperationDef{
			Op:          "AddTagsToResource",
			Name:        "Add Tags To Resource",
			Description: "Adds metadata tags to an RDS resource.",
			Fields: []schema.ConfigFieldDef{
				schema.StringField("ResourceName", "ARN of the resource to tag.").AsRequired(),
				tags("The tags to add.").AsRequired(),
			},
		}, (*rds.Client).AddTagsToResource),

		module.NewOperation(Service, module.OperationDef{
			Op:          "ListTagsForResource",
			Name:        "List Tags For Resource",
			Description: "Lists all tags on an RDS resource.",
			Fields: []schema.ConfigFieldDef{
				schema.StringField("ResourceName", "ARN of the resource.").AsRequired(),
				filters(),
			},
			Output: schema.Object(schema.Props{"TagList": schema.ArrayOf(tagShape)}),
		}, (*rds.Client).ListTagsForResource),
	}
}

func clusterBlocks() []module.Block {
	return []module.Block{
		module.NewOperation(Service, module.OperationDef{
			Op:          "DescribeDBClusters",
			Name:        "Describe DB Clusters",
			Description: "Describes Aurora and Multi-AZ DB clusters.",
			Fields: append([]schema.ConfigFieldDef{
				schema.StringField("DBClusterIdentifier", "Only describe this cluster."),
				schema.BoolField("IncludeShared", "Includes clusters shared from other accounts."),
				filters(),
			}, paging()...),
			Output: page("DBClusters", dbClusterShape),
		}, (*rds.Client).DescribeDBClusters),

		module.NewOperation(Service, module.OperationDef{
			Op:          "CreateDBCluster",
			Name:        "Create DB Cluster",
			Description: "Creates a new Aurora or Multi-AZ DB cluster.",
			Fields: []schema.ConfigFieldDef{
				clusterID("Identifier for the new cluster."),
				schema.StringField("Engine", "Database engine, e.g. aurora-mysql or aurora-postgresql.").AsRequired(),
				schema.StringField("EngineVersion", "Version of the database engine."),
				schema.StringField("EngineMode", "provisioned or serverless."),
				schema.StringField("MasterUsername", "Name of the master user."),
				schema.StringField("MasterUserPassword", "Password of the master user."),
				schema.BoolField("ManageMasterUserPassword", "Manages the master password in Secrets Manager."),
				schema.StringField("DatabaseName", "Name of the initial database."),
				schema.NumberField("Port", "Port the cluster accepts connections on."),
				schema.StringField("DBSubnetGroupName", "DB subnet group for the cluster."),
				schema.ArrayField("VpcSecurityGroupIds", "VPC security groups to associate.", schema.String("")),
				schema.ArrayField("AvailabilityZones", "Availability Zones for cluster instances.", schema.String("")),
				schema.NumberField("BackupRetentionPeriod", "Days to retain automated backups."),
				schema.BoolField("StorageEncrypted", "Whether storage is encrypted."),
				schema.StringField("KmsKeyId", "KMS key for storage encryption."),
				schema.StringField("DBClusterParameterGroupName", "Cluster parameter group to associate."),
				schema.BoolField("DeletionProtection", "Enables deletion protection."),
				schema.ObjectField("ServerlessV2ScalingConfiguration", "Aurora Serverless v2 capacity range.", schema.Object(schema.Props{
					"MinCapacity": schema.Number("Minimum ACUs."),
					"MaxCapacity": schema.Number("Maximum ACUs."),
				})),
				tags("Tags to assign to the cluster."),
			},
			Output: wrap("DBCluster", dbClusterShape),
		}, (*rds.Client).CreateDBCluster),

		module.NewOperation(Service, module.OperationDef{
			Op:          "DeleteDBCluster",
			Name:        "Delete DB Cluster",
			Description: "Deletes a DB cluster. Automated backups are deleted with it unless retained.",
			Fields: []schema.ConfigFieldDef{
				clusterID("The cluster to delete."),
				schema.BoolField("SkipFinalSnapshot", "Skips the final snapshot."),
				schema.StringField("FinalDBSnapshotIdentifier", "Name of the final cluster snapshot."),
				schema.BoolField("DeleteAutomatedBackups", "Deletes automated backups immediately."),
			},
			Output: wrap("DBCluster", dbClusterShape),
		}, (*rds.Client).DeleteDBCluster),

		module.NewOperation(Service, module.OperationDef{
			Op:          "StartDBCluster",
			Name:        "Start DB Cluster",
			Description: "Starts a DB cluster that was stopped.",
			Fields:      []schema.ConfigFieldDef{clusterID("The cluster to start.")},
			Output:      wrap("DBCluster", dbClusterShape),
		}, (*rds.Client).StartDBCluster),

		module.NewOperation(Service, module.OperationDef{
			Op:          "StopDBCluster",
			Name:        "Stop DB Cluster",
			Description: "Stops a DB cluster and its instances.",
			Fields:      []schema.ConfigFieldDef{clusterID("The cluster to stop.")},
			Output:      wrap("DBCluster", dbClusterShape),
		}, (*rds.Client).StopDBCluster),
	}
}
