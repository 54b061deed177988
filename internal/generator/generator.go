// Package generator runs the generation pipeline: it parses the descriptors of every family
// concurrently, renders each API, and aggregates the results into family and root indexes
// or into a single operation manifest.
package generator

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/semaphore"

	"github.com/pccui/commerce-sdk/internal/config"
	"github.com/pccui/commerce-sdk/internal/logging"
	"github.com/pccui/commerce-sdk/internal/parser"
	"github.com/pccui/commerce-sdk/internal/renderer"
)

// Generator drives a generation run over a grouping document
type Generator struct {
	renderDir    string
	extension    string
	manifestPath string

	parser   parser.Parser
	renderer renderer.Renderer
	logger   *log.Logger

	// slots bounds concurrent parses across every family of a run
	slots *semaphore.Weighted
}

// New creates a generator. A nil logger discards output.
func New(cfg *config.Config, p parser.Parser, r renderer.Renderer, logger *log.Logger) *Generator {
	jobs := cfg.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	return &Generator{
		renderDir:    cfg.RenderDir,
		extension:    cfg.Extension,
		manifestPath: cfg.ManifestPath(),
		parser:       p,
		renderer:     r,
		logger:       logging.OrDiscard(logger),
		slots:        semaphore.NewWeighted(int64(jobs)),
	}
}

// RenderDir returns the root of the generated tree
func (g *Generator) RenderDir() string {
	return g.renderDir
}

func (g *Generator) fileName(base string) string {
	return base + "." + g.extension
}

func writeFile(dir, name string, data []byte) error {
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
