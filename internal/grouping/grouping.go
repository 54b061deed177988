// Package grouping partitions API descriptors into families and persists the result.
package grouping

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pccui/commerce-sdk/internal/model"
	"github.com/pccui/commerce-sdk/internal/validators"
	pkgmodel "github.com/pccui/commerce-sdk/pkg/model"
)

// Grouping errors
var (
	ErrInvalidDocument   = errors.New("invalid grouping document")
	ErrMissingDescriptor = errors.New("descriptor file not found")
)

// FamilyKey returns the family of a descriptor under the given classification dimension.
// The first tag wins; descriptors without one are unclassified.
func FamilyKey(descriptor pkgmodel.Descriptor, dimension string) string {
	if tags, ok := descriptor.Categories[dimension]; ok && len(tags) > 0 {
		return tags[0]
	}
	return pkgmodel.UnclassifiedFamily
}

// Group assigns every descriptor to exactly one family, keeping input order within each family
func Group(descriptors []pkgmodel.Descriptor, dimension string) *model.GroupingDocument {
	doc := model.NewGroupingDocument()
	for _, descriptor := range descriptors {
		doc.Add(FamilyKey(descriptor, dimension), descriptor)
	}
	return doc
}

// Save writes the grouping document as indented JSON, creating the parent directory
func Save(path string, doc *model.GroupingDocument) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode grouping document: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}

	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write grouping document: %w", err)
	}
	return nil
}

// Load reads a grouping document, validating it against the grouping schema before decoding
func Load(path string) (*model.GroupingDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read %s: %w", ErrInvalidDocument, path, err)
	}

	validator, err := validators.NewGroupingValidator()
	if err != nil {
		return nil, err
	}
	if err := validator.Validate(data); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidDocument, path, err)
	}

	doc := model.NewGroupingDocument()
	if err := json.Unmarshal(data, doc); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidDocument, path, err)
	}
	return doc, nil
}

// Verify checks that every descriptor of the document is valid and that its file exists.
// Relative paths are resolved against inputDir. All problems are reported together.
func Verify(doc *model.GroupingDocument, inputDir string) error {
	validator := validators.NewDescriptorValidator()

	var errs []error
	for _, family := range doc.Families() {
		members, _ := doc.Members(family)
		for i := range members {
			descriptor := &members[i]
			if err := validator.Validate(descriptor); err != nil {
				errs = append(errs, fmt.Errorf("family %q: descriptor %d: %w", family, i, err))
				continue
			}

			path := filepath.FromSlash(descriptor.Path)
			if !filepath.IsAbs(path) {
				path = filepath.Join(inputDir, path)
			}
			info, err := os.Stat(path)
			switch {
			case errors.Is(err, fs.ErrNotExist):
				errs = append(errs, fmt.Errorf("%w: family %q: %s", ErrMissingDescriptor, family, path))
			case err != nil:
				errs = append(errs, fmt.Errorf("family %q: %w", family, err))
			case info.IsDir():
				errs = append(errs, fmt.Errorf("%w: family %q: %s is a directory", ErrMissingDescriptor, family, path))
			}
		}
	}
	return errors.Join(errs...)
}
