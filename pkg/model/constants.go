package model

// UnclassifiedFamily is the reserved family for descriptors without a tag under the classification dimension
const UnclassifiedFamily = "unclassified"

// HTTP methods in the order operations are listed for a path
var OperationMethods = []string{"get", "put", "post", "delete", "options", "head", "patch"}

// Descriptor file extensions recognized during discovery
const (
	ExtensionJSON = ".json"
	ExtensionYAML = ".yaml"
	ExtensionYML  = ".yml"
)
