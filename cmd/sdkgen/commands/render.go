package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pccui/commerce-sdk/internal/generator"
	"github.com/pccui/commerce-sdk/internal/grouping"
	"github.com/pccui/commerce-sdk/internal/model"
	"github.com/pccui/commerce-sdk/internal/parser"
	"github.com/pccui/commerce-sdk/internal/renderer"
)

// prepared is the state shared by the render and manifest commands after their common steps
type prepared struct {
	gen      *generator.Generator
	doc      *model.GroupingDocument
	inputDir string
}

// prepare cleans the output area, ingests descriptors when a source is selected, and loads
// the grouping document
func prepare(cmd *cobra.Command, opts *options) (*prepared, error) {
	cfg, logger, err := setup(cmd, opts)
	if err != nil {
		return nil, err
	}

	if err := clean(cfg, logger); err != nil {
		return nil, err
	}

	if src := source(cfg, opts, logger); src != nil {
		if err := ingest(cmd.Context(), cfg, src, logger); err != nil {
			return nil, err
		}
	}

	doc, err := grouping.Load(cfg.GroupingPath())
	if err != nil {
		return nil, err
	}

	r, err := renderer.NewTypeScript()
	if err != nil {
		return nil, err
	}

	gen := generator.New(cfg, parser.NewOpenAPIParser(), r, logger)
	return &prepared{gen: gen, doc: doc, inputDir: cfg.InputDir}, nil
}

func newRenderCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render client sources for every family",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := prepare(cmd, opts)
			if err != nil {
				return err
			}
			if err := p.gen.Render(cmd.Context(), p.doc, p.inputDir); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), p.gen.RenderDir())
			return nil
		},
	}
	addIngestFlags(cmd, opts)
	return cmd
}

func newManifestCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "manifest",
		Short: "Write the operation manifest of every family",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := prepare(cmd, opts)
			if err != nil {
				return err
			}
			path, err := p.gen.Manifest(cmd.Context(), p.doc, p.inputDir)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
	addIngestFlags(cmd, opts)
	return cmd
}
