package commands

import (
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/pccui/commerce-sdk/internal/config"
	"github.com/pccui/commerce-sdk/internal/output"
)

func newCleanCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "clean",
		Short: "Remove the render and build directories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := setup(cmd, opts)
			if err != nil {
				return err
			}
			return clean(cfg, logger)
		},
	}
}

func clean(cfg *config.Config, logger *log.Logger) error {
	logger.Info("Removing output directories", "render", cfg.RenderDir, "build", cfg.BuildDir)
	return output.Area{RenderDir: cfg.RenderDir, BuildDir: cfg.BuildDir}.Reset()
}
