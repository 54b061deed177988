package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/pccui/commerce-sdk/internal/catalog"
	"github.com/pccui/commerce-sdk/internal/config"
	"github.com/pccui/commerce-sdk/internal/grouping"
	"github.com/pccui/commerce-sdk/internal/parser"
)

// ErrNoSource is returned when grouping is requested without a descriptor source
var ErrNoSource = errors.New("no descriptor source: pass --catalog or --discover")

func newGroupCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "group",
		Short: "Group descriptors into families and write the grouping document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := setup(cmd, opts)
			if err != nil {
				return err
			}

			src := source(cfg, opts, logger)
			if src == nil {
				return ErrNoSource
			}
			if err := ingest(cmd.Context(), cfg, src, logger); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), cfg.GroupingPath())
			return nil
		},
	}
	addIngestFlags(cmd, opts)
	return cmd
}

// source returns the descriptor source selected by flags or config, or nil when the
// existing grouping document should be used as is
func source(cfg *config.Config, opts *options, logger *log.Logger) catalog.Source {
	switch {
	case cfg.Catalog != "":
		return catalog.NewFileSource(cfg.Catalog, logger)
	case opts.discover:
		return catalog.NewDirSource(cfg.InputDir, parser.NewOpenAPIParser(), logger, cfg.APIConfigFile)
	default:
		return nil
	}
}

// ingest reads descriptors from src, groups them and persists the grouping document
func ingest(ctx context.Context, cfg *config.Config, src catalog.Source, logger *log.Logger) error {
	descriptors, err := src.Descriptors(ctx)
	if err != nil {
		return err
	}

	doc := grouping.Group(descriptors, cfg.APIFamily)
	if err := grouping.Save(cfg.GroupingPath(), doc); err != nil {
		return err
	}

	logger.Info("Grouping document written", "path", cfg.GroupingPath(), "families", len(doc.Families()), "descriptors", doc.Len())
	return nil
}
