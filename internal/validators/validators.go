package validators

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/pccui/commerce-sdk/pkg/model"
)

//go:embed schema/grouping.schema.json
var groupingSchema []byte

// DescriptorValidator validates catalog descriptors
type DescriptorValidator struct{}

// NewDescriptorValidator creates a new DescriptorValidator instance
func NewDescriptorValidator() *DescriptorValidator {
	return &DescriptorValidator{}
}

// Validate checks that the descriptor can be located for parsing
func (v *DescriptorValidator) Validate(obj *model.Descriptor) error {
	if strings.TrimSpace(obj.Path) == "" {
		if obj.Name != "" {
			return fmt.Errorf("%w: %s", ErrMissingDescriptorPath, obj.Name)
		}
		return ErrMissingDescriptorPath
	}
	return nil
}

// GroupingValidator validates a raw grouping document before it is decoded
type GroupingValidator struct {
	schema *jsonschema.Schema
}

// NewGroupingValidator compiles the embedded grouping schema
func NewGroupingValidator() (*GroupingValidator, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft7

	if err := compiler.AddResource(GroupingSchemaURL, bytes.NewReader(groupingSchema)); err != nil {
		return nil, fmt.Errorf("failed to add grouping schema resource: %w", err)
	}

	schema, err := compiler.Compile(GroupingSchemaURL)
	if err != nil {
		return nil, fmt.Errorf("invalid grouping schema: %w", err)
	}

	return &GroupingValidator{schema: schema}, nil
}

// Validate checks the raw JSON against the schema and every family key for path safety
func (v *GroupingValidator) Validate(data []byte) error {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("%w: invalid JSON: %w", ErrSchemaViolation, err)
	}

	if err := v.schema.Validate(doc); err != nil {
		return fmt.Errorf("%w: %w", ErrSchemaViolation, err)
	}

	// the schema guarantees an object at this point
	families, _ := doc.(map[string]any)
	for family := range families {
		if !IsSafeFamilyKey(family) {
			return fmt.Errorf("%w: %q", ErrInvalidFamilyKey, family)
		}
	}

	return nil
}
