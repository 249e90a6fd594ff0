package module

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"

	"github.com/spacelift-io/flows-app-aws-api/schema"
)

// Service describes an SDK client family, e.g. EC2. New is the service
// package's NewFromConfig.
type Service[C any, O any] struct {
	Name string
	New  func(cfg aws.Config, optFns ...func(*O)) C
}

// OperationDef is the per-operation data of a block.
type OperationDef struct {
	Op          string // upstream operation name, e.g. "DescribeInstances"
	Name        string // display name, e.g. "Describe Instances"
	Description string
	Fields      []schema.ConfigFieldDef
	Output      *schema.JSONSchema
}

// OperationBlock is the generic adapter binding one SDK command to the
// block contract.
type OperationBlock[C any, O any, In any, Out any] struct {
	schema *schema.BlockSchema
	svc    Service[C, O]
	call   func(C, context.Context, *In, ...func(*O)) (*Out, error)
}

// NewOperation creates a block for one SDK command. call is usually a method
// expression such as (*ec2.Client).DescribeInstances. The region field is
// prepended to the declared fields.
func NewOperation[C any, O any, In any, Out any](
	svc Service[C, O],
	def OperationDef,
	call func(C, context.Context, *In, ...func(*O)) (*Out, error),
) *OperationBlock[C, O, In, Out] {
	fields := make([]schema.ConfigFieldDef, 0, len(def.Fields)+1)
	fields = append(fields, schema.RegionField())
	fields = append(fields, def.Fields...)

	output := def.Output
	if output == nil {
		output = schema.Object(nil)
	}

	return &OperationBlock[C, O, In, Out]{
		schema: &schema.BlockSchema{
			Type:         svc.Name + "." + lowerFirst(def.Op),
			Name:         def.Name,
			Description:  def.Description,
			Service:      svc.Name,
			ConfigFields: fields,
			Output:       output,
		},
		svc:  svc,
		call: call,
	}
}

// Type returns the block type, e.g. "ec2.describeInstances".
func (b *OperationBlock[C, O, In, Out]) Type() string { return b.schema.Type }

// Schema returns the block's schema.
func (b *OperationBlock[C, O, In, Out]) Schema() *schema.BlockSchema { return b.schema }

// Execute splits off the region, builds a client for it, submits exactly one
// command and emits the response (or {}) on the default channel. Errors are
// returned as produced; the invoker attaches the block identity.
func (b *OperationBlock[C, O, In, Out]) Execute(ctx context.Context, inv *Invocation) error {
	region, params := SplitRegion(inv.InputConfig)

	cfg, err := inv.Client.AWSConfig(ctx, region)
	if err != nil {
		return err
	}
	client := b.svc.New(cfg)

	input, err := decodeInput[In](b.schema, params, false)
	if err != nil {
		return err
	}

	out, err := b.call(client, ctx, input)
	if err != nil {
		return err
	}

	payload, err := encodeOutput(out)
	if err != nil {
		return err
	}
	if inv.Emitter == nil {
		return nil
	}
	return inv.Emitter.Emit(ctx, DefaultChannel, payload)
}

// VerifySchema checks that every declared parameter exists on the SDK input
// type.
func (b *OperationBlock[C, O, In, Out]) VerifySchema() error {
	params := make(map[string]any, len(b.schema.ConfigFields))
	for _, f := range b.schema.ConfigFields {
		if f.Key == schema.RegionKey {
			continue
		}
		params[f.Key] = nil
	}
	if _, err := decodeInput[In](b.schema, params, true); err != nil {
		return fmt.Errorf("%s: %w", b.schema.Type, err)
	}
	return nil
}

// SchemaVerifier is implemented by blocks that can check their declared
// parameters against the upstream input type.
type SchemaVerifier interface {
	VerifySchema() error
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	b := []byte(s)
	if b[0] >= 'A' && b[0] <= 'Z' {
		b[0] += 'a' - 'A'
	}
	return string(b)
}
