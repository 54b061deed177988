package generator

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/pccui/commerce-sdk/internal/model"
	pkgmodel "github.com/pccui/commerce-sdk/pkg/model"
)

// Pending is the not-yet-resolved parse result of one descriptor
type Pending struct {
	Descriptor pkgmodel.Descriptor

	done chan struct{}
	api  *pkgmodel.API
	err  error
}

// Wait blocks until the parse finishes. A failure is returned as a *ParseError.
func (p *Pending) Wait() (*pkgmodel.API, error) {
	<-p.done
	return p.api, p.err
}

// FamilyBatch holds the pending results of one family.
// Items[i] belongs to the i-th descriptor of the family in the grouping document.
type FamilyBatch struct {
	Family string
	Items  []*Pending
}

// Wait joins every item and returns the models in descriptor order.
// It is all or nothing: if any item failed, the error joins every item failure.
func (b *FamilyBatch) Wait() ([]*pkgmodel.API, error) {
	apis := make([]*pkgmodel.API, len(b.Items))
	var errs []error
	for i, item := range b.Items {
		api, err := item.Wait()
		if err != nil {
			errs = append(errs, err)
			continue
		}
		apis[i] = api
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s: %w", ErrFamilyFailed, b.Family, errors.Join(errs...))
	}
	return apis, nil
}

// ProcessFamily starts parsing every member of the family and returns without waiting.
// Relative descriptor paths are resolved against inputDir.
func (g *Generator) ProcessFamily(ctx context.Context, family string, doc *model.GroupingDocument, inputDir string) (*FamilyBatch, error) {
	members, ok := doc.Members(family)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFamily, family)
	}

	batch := &FamilyBatch{Family: family, Items: make([]*Pending, len(members))}
	for i, descriptor := range members {
		item := &Pending{Descriptor: descriptor, done: make(chan struct{})}
		batch.Items[i] = item
		go g.parse(ctx, family, i, resolvePath(inputDir, descriptor.Path), item)
	}
	return batch, nil
}

func (g *Generator) parse(ctx context.Context, family string, index int, path string, item *Pending) {
	defer close(item.done)

	fail := func(err error) {
		item.err = &ParseError{Family: family, Index: index, Path: path, Err: err}
	}

	if err := g.slots.Acquire(ctx, 1); err != nil {
		fail(err)
		return
	}
	defer g.slots.Release(1)

	g.logger.Debug("Parsing descriptor", "family", family, "path", path)
	api, err := g.parser.Parse(ctx, path)
	if err != nil {
		fail(err)
		return
	}
	if api == nil {
		fail(ErrNoModel)
		return
	}

	if api.Title == "" {
		api.Title = item.Descriptor.Name
	}
	if api.Categories == nil {
		api.Categories = item.Descriptor.Categories
	}
	api.Source = item.Descriptor.Path
	item.api = api
}

func resolvePath(inputDir, path string) string {
	path = filepath.FromSlash(path)
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(inputDir, path)
}
