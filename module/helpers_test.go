package module

import (
	"context"
	"testing"

	"github.com/GoCodeAlone/modular"
	"github.com/aws/aws-sdk-go-v2/aws"

	"github.com/spacelift-io/flows-app-aws-api/schema"
)

// newTestApp creates an initialized application for module tests.
func newTestApp(t *testing.T) modular.Application {
	t.Helper()
	app := modular.NewStdApplication(modular.NewStdConfigProvider(nil), nopLogger{})
	if err := app.Init(); err != nil {
		t.Fatalf("Failed to initialize test app: %v", err)
	}
	return app
}

// fakeBlock is a Block whose behaviour is supplied per test.
type fakeBlock struct {
	schema  *schema.BlockSchema
	execute func(ctx context.Context, inv *Invocation) error
}

func newFakeBlock(blockType string, fields ...schema.ConfigFieldDef) *fakeBlock {
	return &fakeBlock{
		schema: &schema.BlockSchema{
			Type:         blockType,
			Name:         blockType,
			Service:      "fake",
			ConfigFields: append([]schema.ConfigFieldDef{schema.RegionField()}, fields...),
			Output:       schema.Object(nil),
		},
	}
}

func (b *fakeBlock) Type() string                { return b.schema.Type }
func (b *fakeBlock) Schema() *schema.BlockSchema { return b.schema }

func (b *fakeBlock) Execute(ctx context.Context, inv *Invocation) error {
	if b.execute != nil {
		return b.execute(ctx, inv)
	}
	return inv.Emitter.Emit(ctx, DefaultChannel, map[string]any{})
}

// fakeClient records the aws.Config it was built from.
type fakeClient struct {
	cfg aws.Config
}

type fakeOptions struct{}

type fakeInput struct {
	KeyId          *string
	Plaintext      []byte
	CiphertextBlob []byte
	Limit          *int32
	Tags           []fakeTag
}

type fakeTag struct {
	TagKey   *string
	TagValue *string
}

type fakeOutput struct {
	KeyId          *string
	CiphertextBlob []byte
	ResultMetadata struct{ RequestID string }
}

var fakeService = Service[*fakeClient, fakeOptions]{
	Name: "fake",
	New: func(cfg aws.Config, _ ...func(*fakeOptions)) *fakeClient {
		return &fakeClient{cfg: cfg}
	},
}

var fakeDef = OperationDef{
	Op:          "EncryptThing",
	Name:        "Encrypt Thing",
	Description: "Encrypts a thing.",
	Fields: []schema.ConfigFieldDef{
		schema.StringField("KeyId", "Key.").AsRequired(),
		schema.StringField("Plaintext", "Data.").AsText(),
		schema.StringField("CiphertextBlob", "Base64 data."),
		schema.NumberField("Limit", "Limit."),
		schema.ArrayField("Tags", "Tags.", schema.Object(schema.Props{
			"TagKey":   schema.String(""),
			"TagValue": schema.String(""),
		})),
	},
}

// staticTestClient is a ClientConfig that never consults the environment.
func staticTestClient() ClientConfig {
	return ClientConfig{AccessKeyID: "AKIDTEST", SecretAccessKey: "secret", SessionToken: "token"}
}

// collector returns an Emitter that appends to events.
func collector(events *[]EmittedEvent) Emitter {
	return EmitterFunc(func(_ context.Context, channel string, payload map[string]any) error {
		*events = append(*events, EmittedEvent{Channel: channel, Payload: payload})
		return nil
	})
}
