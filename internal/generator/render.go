package generator

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/pccui/commerce-sdk/internal/model"
	"github.com/pccui/commerce-sdk/internal/naming"
	"github.com/pccui/commerce-sdk/internal/validators"
	pkgmodel "github.com/pccui/commerce-sdk/pkg/model"
)

// stagingPattern names the directory a family is rendered into before it is moved into place
const stagingPattern = ".family-*"

// RootIndexName is the base name of the root index
const RootIndexName = "index"

// Render renders every family of the grouping document, then the root index.
// Families run concurrently and are isolated from each other: a failed family leaves no
// directory behind while its siblings finish. Any failure skips the root index.
func (g *Generator) Render(ctx context.Context, doc *model.GroupingDocument, inputDir string) error {
	families := doc.Families()
	if err := checkFamilies(families); err != nil {
		return err
	}

	if err := os.MkdirAll(g.renderDir, 0o755); err != nil {
		return fmt.Errorf("failed to create render directory: %w", err)
	}

	// A Group without a context never cancels siblings, so every family runs to completion.
	// Wait reports the first failure; errs keeps all of them.
	errs := make([]error, len(families))
	var eg errgroup.Group
	for i, family := range families {
		eg.Go(func() error {
			errs[i] = g.renderFamily(ctx, family, doc, inputDir)
			return errs[i]
		})
	}
	if err := eg.Wait(); err != nil {
		return errors.Join(errs...)
	}

	return g.FinalizeRoot(families, g.renderDir)
}

// renderFamily parses, renders and aggregates one family inside a staging directory
func (g *Generator) renderFamily(ctx context.Context, family string, doc *model.GroupingDocument, inputDir string) error {
	logger := g.logger.With("family", family)

	batch, err := g.ProcessFamily(ctx, family, doc, inputDir)
	if err != nil {
		return err
	}
	logger.Info("Rendering family", "apis", len(batch.Items))

	apis, err := batch.Wait()
	if err != nil {
		logger.Error("Family failed", "error", err)
		return err
	}

	if _, err := canonicalNames(family, apis); err != nil {
		logger.Error("Family failed", "error", err)
		return fmt.Errorf("%w: %s: %w", ErrFamilyFailed, family, err)
	}

	staging, err := os.MkdirTemp(g.renderDir, stagingPattern)
	if err != nil {
		return fmt.Errorf("failed to create staging directory for %s: %w", family, err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = os.RemoveAll(staging)
		}
	}()

	names := make([]string, 0, len(apis))
	for _, api := range apis {
		name, err := g.RenderAPI(api, staging)
		if err != nil {
			return fmt.Errorf("%w: %s: %w", ErrFamilyFailed, family, err)
		}
		logger.Debug("API rendered", "api", name)
		names = append(names, name)
	}

	if err := g.FinalizeFamily(family, names, staging); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrFamilyFailed, family, err)
	}

	if err := os.Chmod(staging, 0o755); err != nil {
		return fmt.Errorf("failed to set permissions on %s: %w", staging, err)
	}
	final := filepath.Join(g.renderDir, family)
	if err := os.RemoveAll(final); err != nil {
		return fmt.Errorf("failed to replace %s: %w", final, err)
	}
	if err := os.Rename(staging, final); err != nil {
		return fmt.Errorf("failed to move family %s into place: %w", family, err)
	}
	committed = true

	logger.Info("Family rendered", "apis", len(names))
	return nil
}

// RenderAPI writes the client, data types and index stub of one API under outputDir/<CanonicalName>
func (g *Generator) RenderAPI(api *pkgmodel.API, outputDir string) (string, error) {
	name := naming.CanonicalName(api.Title)
	if name == "" {
		return "", fmt.Errorf("%w: title %q", ErrEmptyName, api.Title)
	}

	dir := filepath.Join(outputDir, name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create %s: %w", dir, err)
	}

	apis := []*pkgmodel.API{api}

	client, err := g.renderer.ClientSource(apis, name)
	if err != nil {
		return "", err
	}
	if err := writeFile(dir, g.fileName(name), client); err != nil {
		return "", err
	}

	types, err := g.renderer.DTOSource(apis)
	if err != nil {
		return "", err
	}
	if err := writeFile(dir, g.fileName(name+".types"), types); err != nil {
		return "", err
	}

	index, err := g.renderer.APIIndex(name)
	if err != nil {
		return "", err
	}
	if err := writeFile(dir, g.fileName(RootIndexName), index); err != nil {
		return "", err
	}

	return name, nil
}

// FinalizeFamily writes familyDir/<family>.<ext>, re-exporting names in the given order
func (g *Generator) FinalizeFamily(family string, names []string, familyDir string) error {
	src, err := g.renderer.FamilyExportIndex(names)
	if err != nil {
		return err
	}
	return writeFile(familyDir, g.fileName(family), src)
}

// FinalizeRoot writes rootDir/index.<ext>, re-exporting families in the given order
func (g *Generator) FinalizeRoot(families []string, rootDir string) error {
	src, err := g.renderer.RootIndex(families)
	if err != nil {
		return err
	}
	if err := writeFile(rootDir, g.fileName(RootIndexName), src); err != nil {
		return err
	}
	g.logger.Info("Root index written", "families", len(families))
	return nil
}

// canonicalNames derives the API names of a family, rejecting empty and duplicate names
func canonicalNames(family string, apis []*pkgmodel.API) ([]string, error) {
	names := make([]string, 0, len(apis))
	seen := make(map[string]string, len(apis))
	for _, api := range apis {
		name := naming.CanonicalName(api.Title)
		if name == "" {
			return nil, fmt.Errorf("%w: title %q (%s)", ErrEmptyName, api.Title, api.Source)
		}
		if other, dup := seen[name]; dup {
			return nil, fmt.Errorf("%w: %q from %s and %s in family %s", ErrNameCollision, name, other, api.Source, family)
		}
		seen[name] = api.Source
		names = append(names, name)
	}
	return names, nil
}

// checkFamilies rejects family keys that cannot be a directory or that share a root export name
func checkFamilies(families []string) error {
	seen := make(map[string]string, len(families))
	for _, family := range families {
		if !validators.IsSafeFamilyKey(family) {
			return fmt.Errorf("%w: %q", validators.ErrInvalidFamilyKey, family)
		}
		identifier := naming.CanonicalName(family)
		if identifier == "" {
			return fmt.Errorf("%w: family %q", ErrEmptyName, family)
		}
		if other, dup := seen[identifier]; dup {
			return fmt.Errorf("%w: families %q and %q both export as %s", ErrNameCollision, other, family, identifier)
		}
		seen[identifier] = family
	}
	return nil
}
