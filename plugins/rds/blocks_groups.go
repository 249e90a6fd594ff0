package rds

import (
	"github.com/aws/aws-sdk-go-v2/service/rds"

	"github.com/spacelift-io/flows-app-aws-api/module"
	"github.com/spacelift-io/flows-app-aws-api/schema"
)

var (
	dbSubnetGroupShape = schema.Object(schema.Props{
		"DBSubnetGroupName":        schema.String(""),
		"DBSubnetGroupDescription": schema.String(""),
		"DBSubnetGroupArn":         schema.String(""),
		"VpcId":                    schema.String(""),
		"SubnetGroupStatus":        schema.String(""),
		"Subnets": schema.ArrayOf(schema.Object(schema.Props{
			"SubnetIdentifier": schema.String(""),
			"SubnetStatus":     schema.String(""),
			"SubnetAvailabilityZone": schema.Object(schema.Props{
				"Name": schema.String(""),
			}),
		})),
	})

	dbParameterGroupShape = schema.Object(schema.Props{
		"DBParameterGroupName":   schema.String(""),
		"DBParameterGroupFamily": schema.String(""),
		"DBParameterGroupArn":    schema.String(""),
		"Description":            schema.String(""),
	})

	parameterShape = schema.Object(schema.Props{
		"ParameterName":  schema.String(""),
		"ParameterValue": schema.String(""),
		"ApplyMethod":    schema.String("immediate or pending-reboot."),
		"ApplyType":      schema.String(""),
		"DataType":       schema.String(""),
		"Description":    schema.String(""),
		"IsModifiable":   schema.Boolean(""),
		"Source":         schema.String(""),
		"AllowedValues":  schema.String(""),
	})

	pendingMaintenanceShape = schema.Object(schema.Props{
		"ResourceIdentifier": schema.String(""),
		"PendingMaintenanceActionDetails": schema.ArrayOf(schema.Object(schema.Props{
			"Action":               schema.String(""),
			"Description":          schema.String(""),
			"AutoAppliedAfterDate": schema.String(""),
			"ForcedApplyDate":      schema.String(""),
			"CurrentApplyDate":     schema.String(""),
			"OptInStatus":          schema.String(""),
		})),
	})
)

func parameterGroupName(desc string) schema.ConfigFieldDef {
	return schema.StringField("DBParameterGroupName", desc).AsRequired()
}

// groupBlocks cover subnet and parameter groups, events, logs and
// maintenance.
func groupBlocks() []module.Block {
	return []module.Block{
		module.NewOperation(Service, module.OperationDef{
			Op:          "DescribeDBSubnetGroups",
			Name:        "Describe DB Subnet Groups",
			Description: "Describes DB subnet groups.",
			Fields: append([]schema.ConfigFieldDef{
				schema.StringField("DBSubnetGroupName", "Only describe this subnet group."),
				filters(),
			}, paging()...),
			Output: page("DBSubnetGroups", dbSubnetGroupShape),
		}, (*rds.Client).DescribeDBSubnetGroups),

		module.NewOperation(Service, module.OperationDef{
			Op:          "CreateDBSubnetGroup",
			Name:        "Create DB Subnet Group",
			Description: "Creates a DB subnet group spanning at least two Availability Zones.",
			Fields: []schema.ConfigFieldDef{
				schema.StringField("DBSubnetGroupName", "Name for the subnet group.").AsRequired(),
				schema.StringField("DBSubnetGroupDescription", "Description for the subnet group.").AsRequired(),
				schema.ArrayField("SubnetIds", "EC2 subnet IDs for the group.", schema.String("")).AsRequired(),
				tags("Tags to assign to the subnet group."),
			},
			Output: wrap("DBSubnetGroup", dbSubnetGroupShape),
		}, (*rds.Client).CreateDBSubnetGroup),

		module.NewOperation(Service, module.OperationDef{
			Op:          "DeleteDBSubnetGroup",
			Name:        "Delete DB Subnet Group",
			Description: "Deletes a DB subnet group that is not associated with any DB instance.",
			Fields: []schema.ConfigFieldDef{
				schema.StringField("DBSubnetGroupName", "The subnet group to delete.").AsRequired(),
			},
		}, (*rds.Client).DeleteDBSubnetGroup),

		module.NewOperation(Service, module.OperationDef{
			Op:          "DescribeDBParameterGroups",
			Name:        "Describe DB Parameter Groups",
			Description: "Describes DB parameter groups.",
			Fields: append([]schema.ConfigFieldDef{
				schema.StringField("DBParameterGroupName", "Only describe this parameter group."),
				filters(),
			}, paging()...),
			Output: page("DBParameterGroups", dbParameterGroupShape),
		}, (*rds.Client).DescribeDBParameterGroups),

		module.NewOperation(Service, module.OperationDef{
			Op:          "CreateDBParameterGroup",
			Name:        "Create DB Parameter Group",
			Description: "Creates a DB parameter group with the engine defaults of its family.",
			Fields: []schema.ConfigFieldDef{
				parameterGroupName("Name for the parameter group."),
				schema.StringField("DBParameterGroupFamily", "Engine family, e.g. mysql8.0 or postgres16.").AsRequired(),
				schema.StringField("Description", "Description for the parameter group.").AsRequired(),
				tags("Tags to assign to the parameter group."),
			},
			Output: wrap("DBParameterGroup", dbParameterGroupShape),
		}, (*rds.Client).CreateDBParameterGroup),

		module.NewOperation(Service, module.OperationDef{
			Op:          "DeleteDBParameterGroup",
			Name:        "Delete DB Parameter Group",
			Description: "Deletes a DB parameter group that is not associated with any DB instance.",
			Fields:      []schema.ConfigFieldDef{parameterGroupName("The parameter group to delete.")},
		}, (*rds.Client).DeleteDBParameterGroup),

		module.NewOperation(Service, module.OperationDef{
			Op:          "ModifyDBParameterGroup",
			Name:        "Modify DB Parameter Group",
			Description: "Modifies up to 20 parameters of a DB parameter group.",
			Fields: []schema.ConfigFieldDef{
				parameterGroupName("The parameter group to modify."),
				schema.ArrayField("Parameters", "Parameters to change, with ParameterName, ParameterValue and ApplyMethod.",
					schema.Object(schema.Props{
						"ParameterName":  schema.String(""),
						"ParameterValue": schema.String(""),
						"ApplyMethod":    schema.Enum("immediate", "pending-reboot"),
					}, "ParameterName")).AsRequired(),
			},
			Output: schema.Object(schema.Props{"DBParameterGroupName": schema.String("")}),
		}, (*rds.Client).ModifyDBParameterGroup),

		module.NewOperation(Service, module.OperationDef{
			Op:          "DescribeDBParameters",
			Name:        "Describe DB Parameters",
			Description: "Returns the parameters of a DB parameter group.",
			Fields: append([]schema.ConfigFieldDef{
				parameterGroupName("The parameter group to describe."),
				schema.StringField("Source", "user, system or engine-default."),
				filters(),
			}, paging()...),
			Output: page("Parameters", parameterShape),
		}, (*rds.Client).DescribeDBParameters),

		module.NewOperation(Service, module.OperationDef{
			Op:          "DescribeEvents",
			Name:        "Describe Events",
			Description: "Returns events for DB instances, clusters, snapshots and groups from the past 14 days.",
			Fields: append([]schema.ConfigFieldDef{
				schema.StringField("SourceIdentifier", "Only return events for this source."),
				schema.StringField("SourceType", "db-instance, db-cluster, db-snapshot, db-parameter-group and so on."),
				schema.StringField("StartTime", "Start of the interval, in ISO 8601 format."),
				schema.StringField("EndTime", "End of the interval, in ISO 8601 format."),
				schema.NumberField("Duration", "Minutes of events to return. Defaults to 60."),
				schema.ArrayField("EventCategories", "Event categories to return.", schema.String("")),
				filters(),
			}, paging()...),
			Output: page("Events", schema.Object(schema.Props{
				"SourceIdentifier": schema.String(""),
				"SourceType":       schema.String(""),
				"SourceArn":        schema.String(""),
				"Message":          schema.String(""),
				"EventCategories":  schema.Strings(""),
				"Date":             schema.String(""),
			})),
		}, (*rds.Client).DescribeEvents),

		module.NewOperation(Service, module.OperationDef{
			Op:          "DescribeOrderableDBInstanceOptions",
			Name:        "Describe Orderable DB Instance Options",
			Description: "Describes the DB instance options available for an engine.",
			Fields: append([]schema.ConfigFieldDef{
				schema.StringField("Engine", "The database engine.").AsRequired(),
				schema.StringField("EngineVersion", "Only show options for this engine version."),
				schema.StringField("DBInstanceClass", "Only show options for this instance class."),
				schema.StringField("LicenseModel", "Only show options for this license model."),
				schema.BoolField("Vpc", "Only show VPC or non-VPC options."),
				filters(),
			}, paging()...),
			Output: page("OrderableDBInstanceOptions", schema.Object(schema.Props{
				"Engine":             schema.String(""),
				"EngineVersion":      schema.String(""),
				"DBInstanceClass":    schema.String(""),
				"LicenseModel":       schema.String(""),
				"StorageType":        schema.String(""),
				"MultiAZCapable":     schema.Boolean(""),
				"SupportsEncryption": schema.Boolean(""),
				"AvailabilityZones":  schema.ArrayOf(schema.Object(nil)),
			})),
		}, (*rds.Client).DescribeOrderableDBInstanceOptions),

		module.NewOperation(Service, module.OperationDef{
			Op:          "DescribeDBLogFiles",
			Name:        "Describe DB Log Files",
			Description: "Returns the log files of a DB instance.",
			Fields: append([]schema.ConfigFieldDef{
				instanceID("The instance whose log files to list."),
				schema.StringField("FilenameContains", "Only list files whose name contains this string."),
				schema.NumberField("FileLastWritten", "Only list files written since this POSIX timestamp in milliseconds."),
				schema.NumberField("FileSize", "Only list files larger than this size in bytes."),
				filters(),
			}, paging()...),
			Output: page("DescribeDBLogFiles", schema.Object(schema.Props{
				"LogFileName": schema.String(""),
				"LastWritten": schema.Number(""),
				"Size":        schema.Number(""),
			})),
		}, (*rds.Client).DescribeDBLogFiles),

		module.NewOperation(Service, module.OperationDef{
			Op:          "DownloadDBLogFilePortion",
			Name:        "Download DB Log File Portion",
			Description: "Downloads all or a portion of a DB log file, up to 1 MB per call.",
			Fields: []schema.ConfigFieldDef{
				instanceID("The instance that owns the log file."),
				schema.StringField("LogFileName", "The log file to download.").AsRequired(),
				schema.StringField("Marker", "Marker returned by a previous call, or 0 to start from the beginning."),
				schema.NumberField("NumberOfLines", "Number of lines to download."),
			},
			Output: schema.Object(schema.Props{
				"LogFileData":           schema.String(""),
				"Marker":                schema.String(""),
				"AdditionalDataPending": schema.Boolean("Whether more data is available."),
			}),
		}, (*rds.Client).DownloadDBLogFilePortion),

		module.NewOperation(Service, module.OperationDef{
			Op:          "DescribePendingMaintenanceActions",
			Name:        "Describe Pending Maintenance Actions",
			Description: "Returns resources with at least one pending maintenance action.",
			Fields: append([]schema.ConfigFieldDef{
				schema.StringField("ResourceIdentifier", "ARN of the resource."),
				filters(),
			}, paging()...),
			Output: page("PendingMaintenanceActions", pendingMaintenanceShape),
		}, (*rds.Client).DescribePendingMaintenanceActions),

		module.NewOperation(Service, module.OperationDef{
			Op:          "ApplyPendingMaintenanceAction",
			Name:        "Apply Pending Maintenance Action",
			Description: "Applies a pending maintenance action to a resource.",
			Fields: []schema.ConfigFieldDef{
				schema.StringField("ResourceIdentifier", "ARN of the resource.").AsRequired(),
				schema.StringField("ApplyAction", "The action to apply, e.g. system-update or db-upgrade.").AsRequired(),
				schema.StringField("OptInType", "immediate, next-maintenance or undo-opt-in.").AsRequired(),
			},
			Output: schema.Object(schema.Props{"ResourcePendingMaintenanceActions": pendingMaintenanceShape}),
		}, (*rds.Client).ApplyPendingMaintenanceAction),
	}
}
