package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pccui/commerce-sdk/internal/grouping"
)

func newValidateCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the grouping document and the descriptor files it references",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := setup(cmd, opts)
			if err != nil {
				return err
			}

			doc, err := grouping.Load(cfg.GroupingPath())
			if err != nil {
				return err
			}
			if err := grouping.Verify(doc, cfg.InputDir); err != nil {
				return err
			}

			logger.Info("Grouping document is valid", "path", cfg.GroupingPath())
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d families, %d descriptors\n", len(doc.Families()), doc.Len())
			return nil
		},
	}
}
