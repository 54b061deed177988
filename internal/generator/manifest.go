package generator

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/pccui/commerce-sdk/internal/model"
	pkgmodel "github.com/pccui/commerce-sdk/pkg/model"
)

// BuildManifest parses every family concurrently and serializes all models once every family has
// finished. Family order follows the grouping document.
func (g *Generator) BuildManifest(ctx context.Context, doc *model.GroupingDocument, inputDir string) ([]byte, error) {
	families := doc.Families()
	manifest := &model.OperationManifest{Families: make([]model.FamilyAPIs, len(families))}
	errs := make([]error, len(families))

	// Families are isolated: no family cancels another, and every failure is reported.
	var eg errgroup.Group
	for i, family := range families {
		eg.Go(func() error {
			apis, err := g.familyAPIs(ctx, family, doc, inputDir)
			if err != nil {
				errs[i] = err
				return err
			}
			manifest.Families[i] = model.FamilyAPIs{Family: family, APIs: apis}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, errors.Join(errs...)
	}

	return g.renderer.OperationManifest(manifest)
}

// familyAPIs parses one family and waits for all of its models
func (g *Generator) familyAPIs(ctx context.Context, family string, doc *model.GroupingDocument, inputDir string) ([]*pkgmodel.API, error) {
	batch, err := g.ProcessFamily(ctx, family, doc, inputDir)
	if err != nil {
		return nil, err
	}
	apis, err := batch.Wait()
	if err != nil {
		g.logger.Error("Family failed", "family", family, "error", err)
		return nil, err
	}
	return apis, nil
}

// Manifest builds the operation manifest and writes it to the configured manifest path
func (g *Generator) Manifest(ctx context.Context, doc *model.GroupingDocument, inputDir string) (string, error) {
	data, err := g.BuildManifest(ctx, doc, inputDir)
	if err != nil {
		return "", err
	}

	path := g.manifestPath
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("failed to create manifest directory: %w", err)
	}
	if err := writeFile(filepath.Dir(path), filepath.Base(path), data); err != nil {
		return "", err
	}

	g.logger.Info("Operation manifest written", "path", path, "families", len(doc.Families()))
	return path, nil
}
