package kms

import (
	"github.com/aws/aws-sdk-go-v2/service/kms"

	"github.com/spacelift-io/flows-app-aws-api/module"
	"github.com/spacelift-io/flows-app-aws-api/schema"
)

const keyIDDesc = "Identifies the KMS key. Accepts a key ID, key ARN, alias name or alias ARN."

var (
	encryptionAlgorithms = []string{"SYMMETRIC_DEFAULT", "RSAES_OAEP_SHA_1", "RSAES_OAEP_SHA_256", "SM2PKE"}
	signingAlgorithms    = []string{
		"RSASSA_PSS_SHA_256", "RSASSA_PSS_SHA_384", "RSASSA_PSS_SHA_512",
		"RSASSA_PKCS1_V1_5_SHA_256", "RSASSA_PKCS1_V1_5_SHA_384", "RSASSA_PKCS1_V1_5_SHA_512",
		"ECDSA_SHA_256", "ECDSA_SHA_384", "ECDSA_SHA_512", "SM2DSA",
	}
)

func keyID() schema.ConfigFieldDef {
	return schema.StringField("KeyId", keyIDDesc).AsRequired()
}

func grantTokens() schema.ConfigFieldDef {
	return schema.ArrayField("GrantTokens", "A list of grant tokens.", schema.String(""))
}

func dryRun() schema.ConfigFieldDef {
	return schema.BoolField("DryRun", "Checks if your request will succeed without performing the operation.")
}

func encryptionContext(key string) schema.ConfigFieldDef {
	return schema.ObjectField(key, "Key-value pairs bound to the ciphertext as additional authenticated data.",
		schema.Object(nil))
}

func encryptionAlgorithm(key string) schema.ConfigFieldDef {
	f := schema.StringField(key, "Encryption algorithm. Defaults to SYMMETRIC_DEFAULT.")
	f.Schema = schema.Enum(encryptionAlgorithms...)
	return f
}

func signingAlgorithm() schema.ConfigFieldDef {
	f := schema.StringField("SigningAlgorithm", "Signing algorithm matching the key spec.").AsRequired()
	f.Schema = schema.Enum(signingAlgorithms...)
	return f
}

func messageType() schema.ConfigFieldDef {
	f := schema.StringField("MessageType", "Whether Message is the raw message or its digest.")
	f.Schema = schema.Enum("RAW", "DIGEST", "EXTERNAL_MU")
	return f
}

func kmsTags() schema.ConfigFieldDef {
	tag := schema.Tag("TagKey", "TagValue")
	tag.Required = []string{"TagKey", "TagValue"}
	return schema.ArrayField("Tags", "Tags to assign to the key.", tag)
}

func pagination() []schema.ConfigFieldDef {
	return []schema.ConfigFieldDef{
		schema.NumberField("Limit", "Maximum number of items to return (1-1000)."),
		schema.StringField("Marker", "NextMarker from a previous truncated response."),
	}
}

var keyMetadata = schema.Object(schema.Props{
	"AWSAccountId":          schema.String("Account that owns the key."),
	"KeyId":                 schema.String("Globally unique key identifier."),
	"Arn":                   schema.String("Key ARN."),
	"CreationDate":          schema.String("Creation time."),
	"Enabled":               schema.Boolean("Whether the key is enabled."),
	"Description":           schema.String("Key description."),
	"KeyUsage":              schema.String("Cryptographic operations the key can be used for."),
	"KeyState":              schema.String("Current status of the key."),
	"DeletionDate":          schema.String("Scheduled deletion time."),
	"Origin":                schema.String("Source of the key material."),
	"KeyManager":            schema.String("AWS or CUSTOMER."),
	"KeySpec":               schema.String("Type of key material."),
	"EncryptionAlgorithms":  schema.Strings("Supported encryption algorithms."),
	"SigningAlgorithms":     schema.Strings("Supported signing algorithms."),
	"MultiRegion":           schema.Boolean("Whether the key is multi-Region."),

	"PendingDeletionWindowInDays": schema.Number("Waiting period before deletion."),
})

func keyIDResult(desc string) *schema.JSONSchema {
	return schema.Object(schema.Props{"KeyId": schema.String(desc)})
}

// Blocks returns a fresh set of KMS blocks.
func Blocks() []module.Block {
	blocks := keyBlocks()
	blocks = append(blocks, adminBlocks()...)
	return append(blocks, cryptoBlocks()...)
}

func keyBlocks() []module.Block {
	return []module.Block{
		module.NewOperation(Service, module.OperationDef{
			Op:          "CreateKey",
			Name:        "Create Key",
			Description: "Creates a unique customer managed KMS key in the account and Region.",
			Fields: []schema.ConfigFieldDef{
				schema.StringField("Description", "A description of the KMS key."),
				schema.StringField("KeyUsage", "ENCRYPT_DECRYPT, SIGN_VERIFY, GENERATE_VERIFY_MAC or KEY_AGREEMENT."),
				schema.StringField("KeySpec", "Type of key material, e.g. SYMMETRIC_DEFAULT, RSA_2048, ECC_NIST_P256."),
				schema.StringField("Origin", "Source of the key material: AWS_KMS, EXTERNAL, AWS_CLOUDHSM or EXTERNAL_KEY_STORE."),
				schema.StringField("Policy", "Key policy document as a JSON string."),
				schema.BoolField("BypassPolicyLockoutSafetyCheck", "Skips the key policy lockout safety check."),
				schema.StringField("CustomKeyStoreId", "Custom key store to create the key in."),
				schema.BoolField("MultiRegion", "Creates a multi-Region primary key."),
				schema.StringField("XksKeyId", "External key identifier for an external key store."),
				kmsTags(),
			},
			Output: schema.Object(schema.Props{"KeyMetadata": keyMetadata}),
		}, (*kms.Client).CreateKey),

		module.NewOperation(Service, module.OperationDef{
			Op:          "DescribeKey",
			Name:        "Describe Key",
			Description: "Provides detailed information about a KMS key.",
			Fields:      []schema.ConfigFieldDef{keyID(), grantTokens()},
			Output:      schema.Object(schema.Props{"KeyMetadata": keyMetadata}),
		}, (*kms.Client).DescribeKey),

		module.NewOperation(Service, module.OperationDef{
			Op:          "ListKeys",
			Name:        "List Keys",
			Description: "Gets a list of all KMS keys in the caller's account and Region.",
			Fields:      pagination(),
			Output: schema.Object(schema.Props{
				"Keys": schema.ArrayOf(schema.Object(schema.Props{
					"KeyId":  schema.String(""),
					"KeyArn": schema.String(""),
				})),
				"NextMarker": schema.String("Marker for the next page."),
				"Truncated":  schema.Boolean("Whether more items are available."),
			}),
		}, (*kms.Client).ListKeys),

		module.NewOperation(Service, module.OperationDef{
			Op:          "Encrypt",
			Name:        "Encrypt",
			Description: "Encrypts plaintext of up to 4,096 bytes using a KMS key.",
			Fields: []schema.ConfigFieldDef{
				keyID(),
				schema.StringField("Plaintext", "Data to encrypt, as UTF-8 text.").AsRequired().AsText(),
				encryptionContext("EncryptionContext"),
				encryptionAlgorithm("EncryptionAlgorithm"),
				grantTokens(),
				dryRun(),
			},
			Output: schema.Object(schema.Props{
				"CiphertextBlob":      schema.String("Encrypted data, base64-encoded."),
				"KeyId":               schema.String("ARN of the key used to encrypt."),
				"EncryptionAlgorithm": schema.String("Algorithm used to encrypt."),
			}),
		}, (*kms.Client).Encrypt),

		module.NewOperation(Service, module.OperationDef{
			Op:          "Decrypt",
			Name:        "Decrypt",
			Description: "Decrypts ciphertext that was encrypted by a KMS key.",
			Fields: []schema.ConfigFieldDef{
				schema.StringField("CiphertextBlob", "Ciphertext to decrypt, base64-encoded.").AsRequired(),
				schema.StringField("KeyId", keyIDDesc),
				encryptionContext("EncryptionContext"),
				encryptionAlgorithm("EncryptionAlgorithm"),
				grantTokens(),
				dryRun(),
			},
			Output: schema.Object(schema.Props{
				"KeyId":               schema.String("ARN of the key used to decrypt."),
				"Plaintext":           schema.String("Decrypted data, base64-encoded."),
				"EncryptionAlgorithm": schema.String("Algorithm used to decrypt."),
			}),
		}, (*kms.Client).Decrypt),

		module.NewOperation(Service, module.OperationDef{
			Op:          "ReEncrypt",
			Name:        "Re-Encrypt",
			Description: "Decrypts ciphertext and re-encrypts it under a different KMS key without exposing the plaintext.",
			Fields: []schema.ConfigFieldDef{
				schema.StringField("CiphertextBlob", "Ciphertext to re-encrypt, base64-encoded.").AsRequired(),
				schema.StringField("DestinationKeyId", "KMS key used to re-encrypt the data.").AsRequired(),
				schema.StringField("SourceKeyId", "KMS key used to decrypt the ciphertext."),
				encryptionContext("SourceEncryptionContext"),
				encryptionContext("DestinationEncryptionContext"),
				encryptionAlgorithm("SourceEncryptionAlgorithm"),
				encryptionAlgorithm("DestinationEncryptionAlgorithm"),
				grantTokens(),
				dryRun(),
			},
			Output: schema.Object(schema.Props{
				"CiphertextBlob":                 schema.String("Re-encrypted data, base64-encoded."),
				"SourceKeyId":                    schema.String(""),
				"KeyId":                          schema.String(""),
				"SourceEncryptionAlgorithm":      schema.String(""),
				"DestinationEncryptionAlgorithm": schema.String(""),
			}),
		}, (*kms.Client).ReEncrypt),

		module.NewOperation(Service, module.OperationDef{
			Op:          "GenerateDataKey",
			Name:        "Generate Data Key",
			Description: "Returns a unique symmetric data key for use outside of KMS, in plaintext and encrypted form.",
			Fields: []schema.ConfigFieldDef{
				keyID(),
				schema.StringField("KeySpec", "Length of the data key: AES_128 or AES_256."),
				schema.NumberField("NumberOfBytes", "Length of the data key in bytes. Use KeySpec or NumberOfBytes."),
				encryptionContext("EncryptionContext"),
				grantTokens(),
				dryRun(),
			},
			Output: schema.Object(schema.Props{
				"CiphertextBlob": schema.String("Encrypted data key, base64-encoded."),
				"Plaintext":      schema.String("Plaintext data key, base64-encoded."),
				"KeyId":          schema.String(""),
			}),
		}, (*kms.Client).GenerateDataKey),

		module.NewOperation(Service, module.OperationDef{
			Op:          "EnableKey",
			Name:        "Enable Key",
			Description: "Sets the key state of a KMS key to enabled.",
			Fields:      []schema.ConfigFieldDef{keyID()},
		}, (*kms.Client).EnableKey),

		module.NewOperation(Service, module.OperationDef{
			Op:          "DisableKey",
			Name:        "Disable Key",
			Description: "Sets the state of a KMS key to disabled, preventing its use in cryptographic operations.",
			Fields:      []schema.ConfigFieldDef{keyID()},
		}, (*kms.Client).DisableKey),

		module.NewOperation(Service, module.OperationDef{
			Op:          "ScheduleKeyDeletion",
			Name:        "Schedule Key Deletion",
			Description: "Schedules the deletion of a KMS key after a waiting period.",
			Fields: []schema.ConfigFieldDef{
				keyID(),
				schema.NumberField("PendingWindowInDays", "Waiting period in days (7-30). Defaults to 30."),
			},
			Output: schema.Object(schema.Props{
				"KeyId":               schema.String(""),
				"DeletionDate":        schema.String("When the key will be deleted."),
				"KeyState":            schema.String(""),
				"PendingWindowInDays": schema.Number(""),
			}),
		}, (*kms.Client).ScheduleKeyDeletion),

		module.NewOperation(Service, module.OperationDef{
			Op:          "CancelKeyDeletion",
			Name:        "Cancel Key Deletion",
			Description: "Cancels the scheduled deletion of a KMS key. The key is left disabled.",
			Fields:      []schema.ConfigFieldDef{keyID()},
			Output:      keyIDResult("ARN of the key whose deletion was canceled."),
		}, (*kms.Client).CancelKeyDeletion),

		module.NewOperation(Service, module.OperationDef{
			Op:          "CreateAlias",
			Name:        "Create Alias",
			Description: "Creates a friendly name for a KMS key.",
			Fields: []schema.ConfigFieldDef{
				schema.StringField("AliasName", "Alias name, beginning with alias/.").AsRequired(),
				schema.StringField("TargetKeyId", "Key ID or key ARN the alias points to.").AsRequired(),
			},
		}, (*kms.Client).CreateAlias),

		module.NewOperation(Service, module.OperationDef{
			Op:          "ListAliases",
			Name:        "List Aliases",
			Description: "Gets a list of aliases in the caller's account and Region.",
			Fields: append([]schema.ConfigFieldDef{
				schema.StringField("KeyId", "Only list aliases associated with this key."),
			}, pagination()...),
			Output: schema.Object(schema.Props{
				"Aliases": schema.ArrayOf(schema.Object(schema.Props{
					"AliasName":   schema.String(""),
					"AliasArn":    schema.String(""),
					"TargetKeyId": schema.String(""),
				})),
				"NextMarker": schema.String(""),
				"Truncated":  schema.Boolean(""),
			}),
		}, (*kms.Client).ListAliases),

		module.NewOperation(Service, module.OperationDef{
			Op:          "Sign",
			Name:        "Sign",
			Description: "Creates a digital signature for a message or message digest with an asymmetric KMS key.",
			Fields: []schema.ConfigFieldDef{
				keyID(),
				schema.StringField("Message", "Message or digest to sign, as UTF-8 text.").AsRequired().AsText(),
				signingAlgorithm(),
				messageType(),
				grantTokens(),
				dryRun(),
			},
			Output: schema.Object(schema.Props{
				"KeyId":            schema.String(""),
				"Signature":        schema.String("Signature, base64-encoded."),
				"SigningAlgorithm": schema.String(""),
			}),
		}, (*kms.Client).Sign),

		module.NewOperation(Service, module.OperationDef{
			Op:          "Verify",
			Name:        "Verify",
			Description: "Verifies a digital signature generated by the Sign operation.",
			Fields: []schema.ConfigFieldDef{
				keyID(),
				schema.StringField("Message", "Message or digest that was signed, as UTF-8 text.").AsRequired().AsText(),
				schema.StringField("Signature", "Signature to verify, base64-encoded.").AsRequired(),
				signingAlgorithm(),
				messageType(),
				grantTokens(),
				dryRun(),
			},
			Output: schema.Object(schema.Props{
				"KeyId":            schema.String(""),
				"SignatureValid":   schema.Boolean("Whether the signature was verified."),
				"SigningAlgorithm": schema.String(""),
			}),
		}, (*kms.Client).Verify),

		module.NewOperation(Service, module.OperationDef{
			Op:          "GetPublicKey",
			Name:        "Get Public Key",
			Description: "Returns the public key of an asymmetric KMS key.",
			Fields:      []schema.ConfigFieldDef{keyID(), grantTokens()},
			Output: schema.Object(schema.Props{
				"KeyId":                schema.String(""),
				"PublicKey":            schema.String("DER-encoded public key, base64-encoded."),
				"KeySpec":              schema.String(""),
				"KeyUsage":             schema.String(""),
				"EncryptionAlgorithms": schema.Strings(""),
				"SigningAlgorithms":    schema.Strings(""),
			}),
		}, (*kms.Client).GetPublicKey),

		module.NewOperation(Service, module.OperationDef{
			Op:          "EnableKeyRotation",
			Name:        "Enable Key Rotation",
			Description: "Enables automatic rotation of the key material of a symmetric encryption KMS key.",
			Fields: []schema.ConfigFieldDef{
				keyID(),
				schema.NumberField("RotationPeriodInDays", "Days between rotations (90-2560). Defaults to 365."),
			},
		}, (*kms.Client).EnableKeyRotation),

		module.NewOperation(Service, module.OperationDef{
			Op:          "GetKeyRotationStatus",
			Name:        "Get Key Rotation Status",
			Description: "Reports whether automatic rotation is enabled for a KMS key.",
			Fields:      []schema.ConfigFieldDef{keyID()},
			Output: schema.Object(schema.Props{
				"KeyRotationEnabled":   schema.Boolean(""),
				"KeyId":                schema.String(""),
				"RotationPeriodInDays": schema.Number(""),
				"NextRotationDate":     schema.String(""),
			}),
		}, (*kms.Client).GetKeyRotationStatus),

		module.NewOperation(Service, module.OperationDef{
			Op:          "TagResource",
			Name:        "Tag Resource",
			Description: "Adds or edits tags on a customer managed key.",
			Fields:      []schema.ConfigFieldDef{keyID(), kmsTags().AsRequired()},
		}, (*kms.Client).TagResource),
	}
}
