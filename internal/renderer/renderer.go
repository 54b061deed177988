// Package renderer produces the source text of generated SDK files.
package renderer

import (
	"github.com/pccui/commerce-sdk/internal/model"
	pkgmodel "github.com/pccui/commerce-sdk/pkg/model"
)

// Renderer turns parsed API models into source text.
// Implementations must be pure: equal inputs give byte-identical output.
type Renderer interface {
	// ClientSource renders the client for the given models under the canonical name
	ClientSource(apis []*pkgmodel.API, name string) ([]byte, error)
	// DTOSource renders the data-transfer types declared by the models
	DTOSource(apis []*pkgmodel.API) ([]byte, error)
	// APIIndex renders the per-API index stub
	APIIndex(name string) ([]byte, error)
	// FamilyExportIndex re-exports every API of a family, in the given order
	FamilyExportIndex(names []string) ([]byte, error)
	// RootIndex re-exports every family, in the given order
	RootIndex(families []string) ([]byte, error)
	// OperationManifest serializes the parsed models grouped by family
	OperationManifest(manifest *model.OperationManifest) ([]byte, error)
}
