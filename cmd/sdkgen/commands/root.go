// Package commands implements the sdkgen command line.
package commands

import (
	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/pccui/commerce-sdk/internal/config"
	"github.com/pccui/commerce-sdk/internal/logging"
)

// BuildInfo describes the running binary
type BuildInfo struct {
	Version   string
	BuildTime string
	GitCommit string
}

// options holds the flag values shared by every command
type options struct {
	configFile string
	logLevel   string
	renderDir  string
	inputDir   string
	apiFamily  string
	jobs       int

	catalog  string
	discover bool
}

// NewRootCmd builds the sdkgen command tree
func NewRootCmd(info BuildInfo) *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "sdkgen",
		Short: "Generate client SDK sources from API descriptors",
		Long: `sdkgen groups API descriptors into families by a category dimension, parses them
concurrently and renders one client per API, a re-export index per family and a root index.
It can also write a YAML manifest of every parsed operation.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.configFile, "config", "", "TOML config file")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	flags.StringVar(&opts.renderDir, "render-dir", "", "root of the generated tree")
	flags.StringVar(&opts.inputDir, "input-dir", "", "directory holding descriptors and the grouping document")
	flags.StringVar(&opts.apiFamily, "api-family", "", "category dimension used to group descriptors")
	flags.IntVar(&opts.jobs, "jobs", 0, "maximum concurrent descriptor parses (0 uses GOMAXPROCS)")

	root.AddCommand(
		newCleanCmd(opts),
		newGroupCmd(opts),
		newRenderCmd(opts),
		newManifestCmd(opts),
		newValidateCmd(opts),
		newVersionCmd(info),
	)
	return root
}

// addIngestFlags registers the flags selecting where descriptors come from
func addIngestFlags(cmd *cobra.Command, opts *options) {
	cmd.Flags().StringVar(&opts.catalog, "catalog", "", "descriptor catalog (local path or http(s) URL)")
	cmd.Flags().BoolVar(&opts.discover, "discover", false, "discover descriptor files in the input directory")
	cmd.MarkFlagsMutuallyExclusive("catalog", "discover")
}

// loadConfig layers flags over the file and environment configuration
func loadConfig(cmd *cobra.Command, opts *options) (*config.Config, error) {
	cfg, err := config.Load(opts.configFile)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.LogLevel = opts.logLevel
	}
	if flags.Changed("render-dir") {
		cfg.RenderDir = opts.renderDir
	}
	if flags.Changed("input-dir") {
		cfg.InputDir = opts.inputDir
	}
	if flags.Changed("api-family") {
		cfg.APIFamily = opts.apiFamily
	}
	if flags.Changed("jobs") {
		cfg.Jobs = opts.jobs
	}
	if flags.Changed("catalog") {
		cfg.Catalog = opts.catalog
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newLogger creates the command logger, tagged with a fresh run id
func newLogger(cmd *cobra.Command, cfg *config.Config) (*log.Logger, error) {
	logger, err := logging.New(cmd.ErrOrStderr(), cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	return logger.With("run", uuid.NewString()), nil
}

// setup loads the configuration and the logger for a command
func setup(cmd *cobra.Command, opts *options) (*config.Config, *log.Logger, error) {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return nil, nil, err
	}
	logger, err := newLogger(cmd, cfg)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}
