package kms

import (
	"github.com/aws/aws-sdk-go-v2/service/kms"

	"github.com/spacelift-io/flows-app-aws-api/module"
	"github.com/spacelift-io/flows-app-aws-api/schema"
)

var macAlgorithms = []string{"HMAC_SHA_224", "HMAC_SHA_256", "HMAC_SHA_384", "HMAC_SHA_512"}

func macAlgorithm() schema.ConfigFieldDef {
	f := schema.StringField("MacAlgorithm", "MAC algorithm compatible with the HMAC key.").AsRequired()
	f.Schema = schema.Enum(macAlgorithms...)
	return f
}

func keyPairSpec() schema.ConfigFieldDef {
	f := schema.StringField("KeyPairSpec", "Type of data key pair to generate.").AsRequired()
	f.Schema = schema.Enum("RSA_2048", "RSA_3072", "RSA_4096", "ECC_NIST_P256", "ECC_NIST_P384", "ECC_NIST_P521", "ECC_SECG_P256K1", "SM2")
	return f
}

// cryptoBlocks cover data key pairs, randomness, MACs and multi-Region or
// imported key material.
func cryptoBlocks() []module.Block {
	return []module.Block{
		module.NewOperation(Service, module.OperationDef{
			Op:          "GenerateDataKeyWithoutPlaintext",
			Name:        "Generate Data Key Without Plaintext",
			Description: "Returns a unique symmetric data key encrypted under a KMS key, without the plaintext copy.",
			Fields: []schema.ConfigFieldDef{
				keyID(),
				schema.StringField("KeySpec", "Length of the data key: AES_128 or AES_256."),
				schema.NumberField("NumberOfBytes", "Length of the data key in bytes."),
				encryptionContext("EncryptionContext"),
				grantTokens(),
				dryRun(),
			},
			Output: schema.Object(schema.Props{
				"CiphertextBlob": schema.String("Encrypted data key, base64-encoded."),
				"KeyId":          schema.String(""),
				"KeyMaterialId":  schema.String(""),
			}),
		}, (*kms.Client).GenerateDataKeyWithoutPlaintext),

		module.NewOperation(Service, module.OperationDef{
			Op:          "GenerateDataKeyPair",
			Name:        "Generate Data Key Pair",
			Description: "Returns an asymmetric data key pair. The private key is returned in plaintext and encrypted under a KMS key.",
			Fields: []schema.ConfigFieldDef{
				keyID(),
				keyPairSpec(),
				encryptionContext("EncryptionContext"),
				grantTokens(),
				dryRun(),
			},
			Output: schema.Object(schema.Props{
				"KeyId":                    schema.String(""),
				"KeyPairSpec":              schema.String(""),
				"PublicKey":                schema.String("DER-encoded public key, base64-encoded."),
				"PrivateKeyPlaintext":      schema.String("Private key, base64-encoded."),
				"PrivateKeyCiphertextBlob": schema.String("Encrypted private key, base64-encoded."),
			}),
		}, (*kms.Client).GenerateDataKeyPair),

		module.NewOperation(Service, module.OperationDef{
			Op:          "GenerateDataKeyPairWithoutPlaintext",
			Name:        "Generate Data Key Pair Without Plaintext",
			Description: "Returns an asymmetric data key pair with the private key encrypted under a KMS key only.",
			Fields: []schema.ConfigFieldDef{
				keyID(),
				keyPairSpec(),
				encryptionContext("EncryptionContext"),
				grantTokens(),
				dryRun(),
			},
			Output: schema.Object(schema.Props{
				"KeyId":                    schema.String(""),
				"KeyPairSpec":              schema.String(""),
				"PublicKey":                schema.String("DER-encoded public key, base64-encoded."),
				"PrivateKeyCiphertextBlob": schema.String("Encrypted private key, base64-encoded."),
			}),
		}, (*kms.Client).GenerateDataKeyPairWithoutPlaintext),

		module.NewOperation(Service, module.OperationDef{
			Op:          "GenerateRandom",
			Name:        "Generate Random",
			Description: "Returns a random byte string that is cryptographically secure.",
			Fields: []schema.ConfigFieldDef{
				schema.NumberField("NumberOfBytes", "Length of the random byte string (1-1024)."),
				schema.StringField("CustomKeyStoreId", "Generate the bytes in this CloudHSM key store."),
			},
			Output: schema.Object(schema.Props{
				"Plaintext": schema.String("Random bytes, base64-encoded."),
			}),
		}, (*kms.Client).GenerateRandom),

		module.NewOperation(Service, module.OperationDef{
			Op:          "GenerateMac",
			Name:        "Generate MAC",
			Description: "Generates a hash-based message authentication code for a message with an HMAC KMS key.",
			Fields: []schema.ConfigFieldDef{
				keyID(),
				schema.StringField("Message", "Message to authenticate, as UTF-8 text.").AsRequired().AsText(),
				macAlgorithm(),
				grantTokens(),
				dryRun(),
			},
			Output: schema.Object(schema.Props{
				"KeyId":        schema.String(""),
				"Mac":          schema.String("The MAC, base64-encoded."),
				"MacAlgorithm": schema.String(""),
			}),
		}, (*kms.Client).GenerateMac),

		module.NewOperation(Service, module.OperationDef{
			Op:          "VerifyMac",
			Name:        "Verify MAC",
			Description: "Verifies a hash-based message authentication code produced by Generate MAC.",
			Fields: []schema.ConfigFieldDef{
				keyID(),
				schema.StringField("Message", "Message that was authenticated, as UTF-8 text.").AsRequired().AsText(),
				schema.StringField("Mac", "The MAC to verify, base64-encoded.").AsRequired(),
				macAlgorithm(),
				grantTokens(),
				dryRun(),
			},
			Output: schema.Object(schema.Props{
				"KeyId":        schema.String(""),
				"MacValid":     schema.Boolean("Whether the MAC was verified."),
				"MacAlgorithm": schema.String(""),
			}),
		}, (*kms.Client).VerifyMac),

		module.NewOperation(Service, module.OperationDef{
			Op:          "ReplicateKey",
			Name:        "Replicate Key",
			Description: "Replicates a multi-Region primary key into another Region.",
			Fields: []schema.ConfigFieldDef{
				keyID(),
				schema.StringField("ReplicaRegion", "Region for the replica key.").AsRequired(),
				schema.StringField("Description", "A description of the replica key."),
				schema.StringField("Policy", "Key policy for the replica key."),
				schema.BoolField("BypassPolicyLockoutSafetyCheck", "Skips the key policy lockout safety check."),
				kmsTags(),
			},
			Output: schema.Object(schema.Props{
				"ReplicaKeyMetadata": keyMetadata,
				"ReplicaPolicy":      schema.String(""),
				"ReplicaTags":        schema.ArrayOf(schema.Tag("TagKey", "TagValue")),
			}),
		}, (*kms.Client).ReplicateKey),

		module.NewOperation(Service, module.OperationDef{
			Op:          "UpdatePrimaryRegion",
			Name:        "Update Primary Region",
			Description: "Changes the primary key of a multi-Region key.",
			Fields: []schema.ConfigFieldDef{
				keyID(),
				schema.StringField("PrimaryRegion", "Region of the replica key to promote.").AsRequired(),
			},
		}, (*kms.Client).UpdatePrimaryRegion),

		module.NewOperation(Service, module.OperationDef{
			Op:          "GetParametersForImport",
			Name:        "Get Parameters For Import",
			Description: "Returns the public key and import token needed to import key material into a KMS key.",
			Fields: []schema.ConfigFieldDef{
				keyID(),
				schema.StringField("WrappingAlgorithm", "Algorithm used to wrap the key material.").AsRequired(),
				schema.StringField("WrappingKeySpec", "Type of the RSA public wrapping key.").AsRequired(),
			},
			Output: schema.Object(schema.Props{
				"KeyId":             schema.String(""),
				"ImportToken":       schema.String("Import token, base64-encoded."),
				"PublicKey":         schema.String("Wrapping public key, base64-encoded."),
				"ParametersValidTo": schema.String("When the import token and public key expire."),
			}),
		}, (*kms.Client).GetParametersForImport),

		module.NewOperation(Service, module.OperationDef{
			Op:          "DeleteImportedKeyMaterial",
			Name:        "Delete Imported Key Material",
			Description: "Deletes imported key material from a KMS key.",
			Fields: []schema.ConfigFieldDef{
				keyID(),
				schema.StringField("KeyMaterialId", "Key material to delete. Defaults to the current key material."),
			},
		}, (*kms.Client).DeleteImportedKeyMaterial),
	}
}
