package kms

import (
	"github.com/aws/aws-sdk-go-v2/service/kms"

	"github.com/spacelift-io/flows-app-aws-api/module"
	"github.com/spacelift-io/flows-app-aws-api/schema"
)

var grantOperations = []string{
	"Decrypt", "Encrypt", "GenerateDataKey", "GenerateDataKeyWithoutPlaintext", "ReEncryptFrom", "ReEncryptTo",
	"Sign", "Verify", "GetPublicKey", "CreateGrant", "RetireGrant", "DescribeKey",
	"GenerateDataKeyPair", "GenerateDataKeyPairWithoutPlaintext", "GenerateMac", "VerifyMac", "DeriveSharedSecret",
}

var grantShape = schema.Object(schema.Props{
	"GrantId":           schema.String(""),
	"KeyId":             schema.String(""),
	"Name":              schema.String(""),
	"CreationDate":      schema.String(""),
	"GranteePrincipal":  schema.String(""),
	"RetiringPrincipal": schema.String(""),
	"IssuingAccount":    schema.String(""),
	"Operations":        schema.Strings(""),
	"Constraints":       schema.Object(nil),
})

func grantsPage() *schema.JSONSchema {
	return schema.Object(schema.Props{
		"Grants":     schema.ArrayOf(grantShape),
		"NextMarker": schema.String(""),
		"Truncated":  schema.Boolean(""),
	})
}

// adminBlocks cover grants, aliases, key policies and rotation.
func adminBlocks() []module.Block {
	ops := schema.ArrayField("Operations", "Operations the grant permits.", schema.Enum(grantOperations...)).AsRequired()

	return []module.Block{
		module.NewOperation(Service, module.OperationDef{
			Op:          "CreateGrant",
			Name:        "Create Grant",
			Description: "Adds a grant to a KMS key, allowing a principal to use it in the listed operations.",
			Fields: []schema.ConfigFieldDef{
				keyID(),
				schema.StringField("GranteePrincipal", "Principal that gets the permissions.").AsRequired(),
				ops,
				schema.ObjectField("Constraints", "Encryption context constraints: EncryptionContextEquals or EncryptionContextSubset.",
					schema.Object(schema.Props{
						"EncryptionContextEquals": schema.Object(nil),
						"EncryptionContextSubset": schema.Object(nil),
					})),
				schema.StringField("RetiringPrincipal", "Principal that can retire the grant."),
				schema.StringField("Name", "A friendly name for the grant."),
				grantTokens(),
				dryRun(),
			},
			Output: schema.Object(schema.Props{
				"GrantId":    schema.String("Unique grant identifier."),
				"GrantToken": schema.String("Token usable before the grant is eventually consistent."),
			}),
		}, (*kms.Client).CreateGrant),

		module.NewOperation(Service, module.OperationDef{
			Op:          "ListGrants",
			Name:        "List Grants",
			Description: "Gets a list of all grants for a KMS key.",
			Fields: append([]schema.ConfigFieldDef{
				keyID(),
				schema.StringField("GrantId", "Only return the grant with this ID."),
				schema.StringField("GranteePrincipal", "Only return grants for this grantee."),
			}, pagination()...),
			Output: grantsPage(),
		}, (*kms.Client).ListGrants),

		module.NewOperation(Service, module.OperationDef{
			Op:          "ListRetirableGrants",
			Name:        "List Retirable Grants",
			Description: "Returns grants in the account and Region that the given principal can retire.",
			Fields: append([]schema.ConfigFieldDef{
				schema.StringField("RetiringPrincipal", "The retiring principal.").AsRequired(),
			}, pagination()...),
			Output: grantsPage(),
		}, (*kms.Client).ListRetirableGrants),

		module.NewOperation(Service, module.OperationDef{
			Op:          "RetireGrant",
			Name:        "Retire Grant",
			Description: "Deletes a grant. Use either GrantToken or KeyId with GrantId.",
			Fields: []schema.ConfigFieldDef{
				schema.StringField("GrantToken", "Identifies the grant to retire."),
				schema.StringField("KeyId", "Key ARN of the key the grant belongs to."),
				schema.StringField("GrantId", "Identifies the grant to retire."),
				dryRun(),
			},
		}, (*kms.Client).RetireGrant),

		module.NewOperation(Service, module.OperationDef{
			Op:          "RevokeGrant",
			Name:        "Revoke Grant",
			Description: "Deletes the specified grant.",
			Fields: []schema.ConfigFieldDef{
				keyID(),
				schema.StringField("GrantId", "Identifies the grant to revoke.").AsRequired(),
				dryRun(),
			},
		}, (*kms.Client).RevokeGrant),

		module.NewOperation(Service, module.OperationDef{
			Op:          "UpdateKeyDescription",
			Name:        "Update Key Description",
			Description: "Updates the description of a KMS key.",
			Fields: []schema.ConfigFieldDef{
				keyID(),
				schema.StringField("Description", "New description for the key.").AsRequired(),
			},
		}, (*kms.Client).UpdateKeyDescription),

		module.NewOperation(Service, module.OperationDef{
			Op:          "UpdateAlias",
			Name:        "Update Alias",
			Description: "Associates an existing alias with a different KMS key.",
			Fields: []schema.ConfigFieldDef{
				schema.StringField("AliasName", "Alias to change, beginning with alias/.").AsRequired(),
				schema.StringField("TargetKeyId", "Key the alias will point to.").AsRequired(),
			},
		}, (*kms.Client).UpdateAlias),

		module.NewOperation(Service, module.OperationDef{
			Op:          "DeleteAlias",
			Name:        "Delete Alias",
			Description: "Deletes an alias. The KMS key is not affected.",
			Fields: []schema.ConfigFieldDef{
				schema.StringField("AliasName", "Alias to delete, beginning with alias/.").AsRequired(),
			},
		}, (*kms.Client).DeleteAlias),

		module.NewOperation(Service, module.OperationDef{
			Op:          "PutKeyPolicy",
			Name:        "Put Key Policy",
			Description: "Attaches a key policy to a KMS key.",
			Fields: []schema.ConfigFieldDef{
				keyID(),
				schema.StringField("Policy", "Key policy document as a JSON string.").AsRequired(),
				schema.StringField("PolicyName", "Name of the key policy. Only \"default\" is valid."),
				schema.BoolField("BypassPolicyLockoutSafetyCheck", "Skips the key policy lockout safety check."),
			},
		}, (*kms.Client).PutKeyPolicy),

		module.NewOperation(Service, module.OperationDef{
			Op:          "GetKeyPolicy",
			Name:        "Get Key Policy",
			Description: "Gets the key policy attached to a KMS key.",
			Fields: []schema.ConfigFieldDef{
				keyID(),
				schema.StringField("PolicyName", "Name of the key policy. Defaults to \"default\"."),
			},
			Output: schema.Object(schema.Props{
				"Policy":     schema.String("Key policy document."),
				"PolicyName": schema.String(""),
			}),
		}, (*kms.Client).GetKeyPolicy),

		module.NewOperation(Service, module.OperationDef{
			Op:          "ListKeyPolicies",
			Name:        "List Key Policies",
			Description: "Gets the names of the key policies attached to a KMS key.",
			Fields:      append([]schema.ConfigFieldDef{keyID()}, pagination()...),
			Output: schema.Object(schema.Props{
				"PolicyNames": schema.Strings(""),
				"NextMarker":  schema.String(""),
				"Truncated":   schema.Boolean(""),
			}),
		}, (*kms.Client).ListKeyPolicies),

		module.NewOperation(Service, module.OperationDef{
			Op:          "DisableKeyRotation",
			Name:        "Disable Key Rotation",
			Description: "Disables automatic rotation of the key material of a KMS key.",
			Fields:      []schema.ConfigFieldDef{keyID()},
		}, (*kms.Client).DisableKeyRotation),

		module.NewOperation(Service, module.OperationDef{
			Op:          "RotateKeyOnDemand",
			Name:        "Rotate Key On Demand",
			Description: "Immediately rotates the key material of a symmetric encryption KMS key.",
			Fields:      []schema.ConfigFieldDef{keyID()},
			Output:      keyIDResult("ARN of the rotated key."),
		}, (*kms.Client).RotateKeyOnDemand),

		module.NewOperation(Service, module.OperationDef{
			Op:          "ListKeyRotations",
			Name:        "List Key Rotations",
			Description: "Returns information about the completed rotations of a KMS key.",
			Fields: append([]schema.ConfigFieldDef{
				keyID(),
				schema.StringField("IncludeKeyMaterial", "ALL_KEY_MATERIAL or ROTATIONS_ONLY."),
			}, pagination()...),
			Output: schema.Object(schema.Props{
				"Rotations": schema.ArrayOf(schema.Object(schema.Props{
					"KeyId":        schema.String(""),
					"RotationDate": schema.String(""),
					"RotationType": schema.String("AUTOMATIC or ON_DEMAND."),
				})),
				"NextMarker": schema.String(""),
				"Truncated":  schema.Boolean(""),
			}),
		}, (*kms.Client).ListKeyRotations),

		module.NewOperation(Service, module.OperationDef{
			Op:          "UntagResource",
			Name:        "Untag Resource",
			Description: "Deletes tags from a customer managed key.",
			Fields: []schema.ConfigFieldDef{
				keyID(),
				schema.ArrayField("TagKeys", "Keys of the tags to remove.", schema.String("")).AsRequired(),
			},
		}, (*kms.Client).UntagResource),

		module.NewOperation(Service, module.OperationDef{
			Op:          "ListResourceTags",
			Name:        "List Resource Tags",
			Description: "Returns all tags on a KMS key.",
			Fields:      append([]schema.ConfigFieldDef{keyID()}, pagination()...),
			Output: schema.Object(schema.Props{
				"Tags":       schema.ArrayOf(schema.Tag("TagKey", "TagValue")),
				"NextMarker": schema.String(""),
				"Truncated":  schema.Boolean(""),
			}),
		}, (*kms.Client).ListResourceTags),

		module.NewOperation(Service, module.OperationDef{
			Op:          "DescribeCustomKeyStores",
			Name:        "Describe Custom Key Stores",
			Description: "Gets information about custom key stores in the account and Region.",
			Fields: append([]schema.ConfigFieldDef{
				schema.StringField("CustomKeyStoreId", "Only describe this custom key store."),
				schema.StringField("CustomKeyStoreName", "Only describe the custom key store with this name."),
			}, pagination()...),
			Output: schema.Object(schema.Props{
				"CustomKeyStores": schema.ArrayOf(schema.Object(schema.Props{
					"CustomKeyStoreId":   schema.String(""),
					"CustomKeyStoreName": schema.String(""),
					"CustomKeyStoreType": schema.String(""),
					"ConnectionState":    schema.String(""),
					"CreationDate":       schema.String(""),
				})),
				"NextMarker": schema.String(""),
				"Truncated":  schema.Boolean(""),
			}),
		}, (*kms.Client).DescribeCustomKeyStores),
	}
}
