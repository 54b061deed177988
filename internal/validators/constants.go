package validators

import "errors"

// Error messages for validation
var (
	// Descriptor validation errors
	ErrMissingDescriptorPath = errors.New("descriptor path is required")

	// Grouping document validation errors
	ErrSchemaViolation  = errors.New("grouping document does not match schema")
	ErrInvalidFamilyKey = errors.New("invalid family key")
)

// GroupingSchemaURL identifies the embedded grouping document schema
const GroupingSchemaURL = "https://github.com/pccui/commerce-sdk/schemas/grouping.schema.json"
