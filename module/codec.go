package module

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"maps"
	"strings"

	"github.com/spacelift-io/flows-app-aws-api/schema"
)

// resultMetadataKey is the SDK output field carrying middleware metadata.
const resultMetadataKey = "ResultMetadata"

// ParameterError reports command parameters that cannot be converted into
// the SDK input type.
type ParameterError struct {
	Err error
}

func (e *ParameterError) Error() string { return "decode parameters: " + e.Err.Error() }

func (e *ParameterError) Unwrap() error { return e.Err }

// decodeInput converts command parameters into the SDK input struct In.
// Parameter names match SDK field names (case-insensitively, as with
// encoding/json). Blob fields marked EncodingText are converted from UTF-8
// text; other blob fields are expected base64-encoded. When strict is set,
// parameters that do not exist on In are reported.
func decodeInput[In any](s *schema.BlockSchema, params map[string]any, strict bool) (*In, error) {
	params = encodeTextBlobs(s, params)

	data, err := json.Marshal(params)
	if err != nil {
		return nil, &ParameterError{Err: err}
	}

	in := new(In)
	dec := json.NewDecoder(bytes.NewReader(data))
	if strict {
		dec.DisallowUnknownFields()
	}
	if err := dec.Decode(in); err != nil {
		return nil, &ParameterError{Err: err}
	}
	return in, nil
}

// encodeTextBlobs base64-encodes string values of text blob fields. Keys are
// matched case-insensitively, like the decoder that consumes them.
func encodeTextBlobs(s *schema.BlockSchema, params map[string]any) map[string]any {
	var out map[string]any
	for _, f := range s.ConfigFields {
		if f.Encoding != schema.EncodingText {
			continue
		}
		for key, v := range params {
			str, ok := v.(string)
			if !ok || !strings.EqualFold(key, f.Key) {
				continue
			}
			if out == nil {
				out = maps.Clone(params)
			}
			out[key] = base64.StdEncoding.EncodeToString([]byte(str))
		}
	}
	if out == nil {
		return params
	}
	return out
}

// encodeOutput converts an SDK output struct into the emitted payload. A nil
// output becomes an empty object; SDK middleware metadata is dropped.
func encodeOutput[Out any](out *Out) (map[string]any, error) {
	payload := map[string]any{}
	if out == nil {
		return payload, nil
	}
	data, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("encode response: %w", err)
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("encode response: %w", err)
	}
	if payload == nil {
		payload = map[string]any{}
	}
	delete(payload, resultMetadataKey)
	return payload, nil
}
