package module

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"

	"github.com/spacelift-io/flows-app-aws-api/schema"
)

func TestNewOperation_Schema(t *testing.T) {
	b := NewOperation(fakeService, fakeDef,
		func(*fakeClient, context.Context, *fakeInput, ...func(*fakeOptions)) (*fakeOutput, error) {
			return nil, nil
		})

	if b.Type() != "fake.encryptThing" {
		t.Errorf("Type() = %q", b.Type())
	}
	s := b.Schema()
	if s.Name != "Encrypt Thing" || s.Service != "fake" {
		t.Errorf("unexpected schema header %+v", s)
	}
	if len(s.ConfigFields) != len(fakeDef.Fields)+1 {
		t.Fatalf("expected region plus %d fields, got %d", len(fakeDef.Fields), len(s.ConfigFields))
	}
	if s.ConfigFields[0].Key != schema.RegionKey || !s.ConfigFields[0].Required {
		t.Errorf("first field should be required region, got %+v", s.ConfigFields[0])
	}
	if s.Output == nil || !*s.Output.AdditionalProperties {
		t.Error("output schema should default to a permissive object")
	}
	if err := s.Check(); err != nil {
		t.Errorf("schema check: %v", err)
	}
}

func TestOperationBlock_Execute(t *testing.T) {
	var gotClient *fakeClient
	var gotInput *fakeInput
	calls := 0

	b := NewOperation(fakeService, fakeDef,
		func(c *fakeClient, _ context.Context, in *fakeInput, _ ...func(*fakeOptions)) (*fakeOutput, error) {
			calls++
			gotClient, gotInput = c, in
			out := &fakeOutput{KeyId: in.KeyId, CiphertextBlob: []byte("sealed")}
			out.ResultMetadata.RequestID = "req-1"
			return out, nil
		})

	cc := staticTestClient()
	cc.Endpoint = "http://localhost:4566"

	input := map[string]any{
		"region":    "eu-central-1",
		"KeyId":     "alias/app",
		"Plaintext": "hello",
		"Limit":     float64(5),
		"Tags":      []any{map[string]any{"TagKey": "env", "TagValue": "dev"}},
	}
	var events []EmittedEvent
	err := b.Execute(context.Background(), &Invocation{
		ID:          "inv-1",
		InputConfig: input,
		Client:      cc,
		Emitter:     collector(&events),
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if calls != 1 {
		t.Errorf("expected exactly one upstream call, got %d", calls)
	}
	if gotClient.cfg.Region != "eu-central-1" {
		t.Errorf("client region = %q", gotClient.cfg.Region)
	}
	if aws.ToString(gotClient.cfg.BaseEndpoint) != "http://localhost:4566" {
		t.Errorf("client endpoint = %q", aws.ToString(gotClient.cfg.BaseEndpoint))
	}
	creds, err := gotClient.cfg.Credentials.Retrieve(context.Background())
	if err != nil {
		t.Fatalf("Retrieve: %v", err)
	}
	if creds.AccessKeyID != "AKIDTEST" || creds.SecretAccessKey != "secret" || creds.SessionToken != "token" {
		t.Errorf("credentials = %+v", creds)
	}

	if aws.ToString(gotInput.KeyId) != "alias/app" {
		t.Errorf("KeyId = %q", aws.ToString(gotInput.KeyId))
	}
	if string(gotInput.Plaintext) != "hello" {
		t.Errorf("Plaintext = %q", gotInput.Plaintext)
	}
	if gotInput.Limit == nil || *gotInput.Limit != 5 {
		t.Errorf("Limit = %v", gotInput.Limit)
	}
	if len(gotInput.Tags) != 1 || aws.ToString(gotInput.Tags[0].TagKey) != "env" {
		t.Errorf("Tags = %+v", gotInput.Tags)
	}

	// The caller's map keeps its region.
	if input["region"] != "eu-central-1" {
		t.Error("Execute modified the input config")
	}

	if len(events) != 1 {
		t.Fatalf("expected one event, got %d", len(events))
	}
	ev := events[0]
	if ev.Channel != DefaultChannel {
		t.Errorf("channel = %q", ev.Channel)
	}
	if ev.Payload["KeyId"] != "alias/app" {
		t.Errorf("payload KeyId = %v", ev.Payload["KeyId"])
	}
	if ev.Payload["CiphertextBlob"] != "c2VhbGVk" {
		t.Errorf("payload CiphertextBlob = %v", ev.Payload["CiphertextBlob"])
	}
	if _, ok := ev.Payload["ResultMetadata"]; ok {
		t.Error("ResultMetadata should not be emitted")
	}
}

func TestOperationBlock_ExecuteNilOutputEmitsEmptyObject(t *testing.T) {
	b := NewOperation(fakeService, fakeDef,
		func(*fakeClient, context.Context, *fakeInput, ...func(*fakeOptions)) (*fakeOutput, error) {
			return nil, nil
		})

	var events []EmittedEvent
	err := b.Execute(context.Background(), &Invocation{
		InputConfig: map[string]any{"region": "us-east-1", "KeyId": "k"},
		Client:      staticTestClient(),
		Emitter:     collector(&events),
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if len(events) != 1 || events[0].Payload == nil || len(events[0].Payload) != 0 {
		t.Errorf("expected a single empty payload, got %+v", events)
	}
}

func TestOperationBlock_ExecuteUpstreamError(t *testing.T) {
	upstream := errors.New("AccessDeniedException: not allowed")
	b := NewOperation(fakeService, fakeDef,
		func(*fakeClient, context.Context, *fakeInput, ...func(*fakeOptions)) (*fakeOutput, error) {
			return nil, upstream
		})

	var events []EmittedEvent
	err := b.Execute(context.Background(), &Invocation{
		InputConfig: map[string]any{"region": "us-east-1", "KeyId": "k"},
		Client:      staticTestClient(),
		Emitter:     collector(&events),
	})
	if err != upstream {
		t.Fatalf("expected the upstream error unchanged, got %v", err)
	}
	if len(events) != 0 {
		t.Errorf("nothing should be emitted on failure, got %+v", events)
	}
}

func TestOperationBlock_ExecuteBadParameter(t *testing.T) {
	calls := 0
	b := NewOperation(fakeService, fakeDef,
		func(*fakeClient, context.Context, *fakeInput, ...func(*fakeOptions)) (*fakeOutput, error) {
			calls++
			return nil, nil
		})

	err := b.Execute(context.Background(), &Invocation{
		InputConfig: map[string]any{"region": "us-east-1", "KeyId": "k", "Limit": "many"},
		Client:      staticTestClient(),
	})
	var pe *ParameterError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *ParameterError, got %v", err)
	}
	if calls != 0 {
		t.Error("upstream must not be called when parameters cannot be decoded")
	}
}

func TestOperationBlock_ExecuteWithoutEmitter(t *testing.T) {
	b := NewOperation(fakeService, fakeDef,
		func(*fakeClient, context.Context, *fakeInput, ...func(*fakeOptions)) (*fakeOutput, error) {
			return &fakeOutput{}, nil
		})
	err := b.Execute(context.Background(), &Invocation{
		InputConfig: map[string]any{"region": "us-east-1"},
		Client:      staticTestClient(),
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
}

func TestOperationBlock_VerifySchema(t *testing.T) {
	call := func(*fakeClient, context.Context, *fakeInput, ...func(*fakeOptions)) (*fakeOutput, error) {
		return nil, nil
	}

	if err := NewOperation(fakeService, fakeDef, call).VerifySchema(); err != nil {
		t.Errorf("VerifySchema: %v", err)
	}

	bad := fakeDef
	bad.Fields = append([]schema.ConfigFieldDef{}, fakeDef.Fields...)
	bad.Fields = append(bad.Fields, schema.StringField("KeyIdentifier", "typo"))
	err := NewOperation(fakeService, bad, call).VerifySchema()
	if err == nil || !strings.Contains(err.Error(), "KeyIdentifier") {
		t.Errorf("expected unknown field error, got %v", err)
	}
}

func TestSplitRegion(t *testing.T) {
	in := map[string]any{"region": "us-west-2", "KeyId": "k"}
	region, params := SplitRegion(in)
	if region != "us-west-2" {
		t.Errorf("region = %q", region)
	}
	if _, ok := params["region"]; ok {
		t.Error("params still contain region")
	}
	if params["KeyId"] != "k" {
		t.Errorf("params = %v", params)
	}
	if _, ok := in["region"]; !ok {
		t.Error("input map was modified")
	}

	region, params = SplitRegion(nil)
	if region != "" || params == nil || len(params) != 0 {
		t.Errorf("SplitRegion(nil) = %q, %v", region, params)
	}
}

func TestLowerFirst(t *testing.T) {
	cases := map[string]string{
		"DescribeInstances": "describeInstances",
		"CreateDBInstance":  "createDBInstance",
		"x":                 "x",
		"":                  "",
	}
	for in, want := range cases {
		if got := lowerFirst(in); got != want {
			t.Errorf("lowerFirst(%q) = %q, want %q", in, got, want)
		}
	}
}
