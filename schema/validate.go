package schema

import (
	"fmt"
	"strings"
)

// ValidationError represents a single validation failure with the path to the
// offending field and a human-readable message.
type ValidationError struct {
	Path    string // dot-separated path (e.g. "inputConfig.KeyId")
	Message string
}

func (e *ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Message)
	}
	return e.Message
}

// ValidationErrors collects multiple validation failures.
type ValidationErrors []*ValidationError

func (ve ValidationErrors) Error() string {
	msgs := make([]string, len(ve))
	for i, e := range ve {
		msgs[i] = e.Error()
	}
	return fmt.Sprintf("validation failed with %d error(s):\n  - %s",
		len(ve), strings.Join(msgs, "\n  - "))
}

// ValidateInput checks an invocation config against the block schema. Only
// presence of required fields is enforced (plus a non-empty region); value
// shapes are left to the upstream SDK and API. Returns nil if valid.
func ValidateInput(s *BlockSchema, input map[string]any) error {
	var errs ValidationErrors

	for _, field := range s.ConfigFields {
		if !field.Required {
			continue
		}
		path := "inputConfig." + field.Key
		v, ok := input[field.Key]
		if !ok || v == nil {
			errs = append(errs, &ValidationError{
				Path:    path,
				Message: fmt.Sprintf("required field %q is missing", field.Key),
			})
			continue
		}
		if field.Type == FieldTypeString {
			if str, ok := v.(string); ok && str == "" {
				errs = append(errs, &ValidationError{
					Path:    path,
					Message: fmt.Sprintf("required field %q must be a non-empty string", field.Key),
				})
			}
		}
	}

	if _, declared := s.Field(RegionKey); declared {
		if v, ok := input[RegionKey]; ok && v != nil {
			if _, isStr := v.(string); !isStr {
				errs = append(errs, &ValidationError{
					Path:    "inputConfig." + RegionKey,
					Message: fmt.Sprintf("region must be a string, got %T", v),
				})
			}
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
