package renderer

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/pccui/commerce-sdk/internal/model"
)

// ManifestHeader opens every operation manifest
const ManifestHeader = `# THIS FILE IS AUTO-GENERATED. DO NOT EDIT.
# Run 'sdkgen manifest' to regenerate this file.

`

// ManifestYAML serializes the manifest as a YAML mapping from family to models, keeping family order
func ManifestYAML(manifest *model.OperationManifest) ([]byte, error) {
	root := &yaml.Node{Kind: yaml.MappingNode}
	for _, family := range manifest.Families {
		key := &yaml.Node{}
		if err := key.Encode(family.Family); err != nil {
			return nil, fmt.Errorf("failed to encode family key %q: %w", family.Family, err)
		}

		value := &yaml.Node{}
		if err := value.Encode(family.APIs); err != nil {
			return nil, fmt.Errorf("failed to encode family %q: %w", family.Family, err)
		}
		root.Content = append(root.Content, key, value)
	}

	var buf bytes.Buffer
	buf.WriteString(ManifestHeader)

	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(root); err != nil {
		return nil, fmt.Errorf("failed to write YAML: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("failed to write YAML: %w", err)
	}
	return buf.Bytes(), nil
}
