package catalog

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
	ignore "github.com/sabhiram/go-gitignore"

	"github.com/pccui/commerce-sdk/internal/logging"
	"github.com/pccui/commerce-sdk/internal/parser"
	"github.com/pccui/commerce-sdk/pkg/model"
)

// IgnoreFile lists patterns, in .gitignore syntax, that discovery skips
const IgnoreFile = ".sdkgenignore"

// DirSource discovers descriptor files under Root.
// Each file is parsed once to read its title, version and categories.
type DirSource struct {
	Root string
	// Exclude names files, relative to Root, that are never treated as descriptors
	Exclude []string
	Parser  parser.Parser
	Logger  *log.Logger
}

// NewDirSource creates a DirSource that excludes the given files
func NewDirSource(root string, p parser.Parser, logger *log.Logger, exclude ...string) *DirSource {
	return &DirSource{Root: root, Exclude: exclude, Parser: p, Logger: logger}
}

// Descriptors walks Root and returns one descriptor per parseable file, ordered by path.
// Files that are not swagger 2.0 documents are skipped; a swagger document that fails to load
// aborts the walk.
func (s *DirSource) Descriptors(ctx context.Context) ([]model.Descriptor, error) {
	logger := logging.OrDiscard(s.Logger)

	paths, err := s.files()
	if err != nil {
		return nil, err
	}

	descriptors := make([]model.Descriptor, 0, len(paths))
	for _, rel := range paths {
		api, err := s.Parser.Parse(ctx, filepath.Join(s.Root, rel))
		if errors.Is(err, parser.ErrUnsupportedDescriptor) {
			logger.Debug("Skipping non-descriptor file", "path", rel)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to inspect %s: %w", rel, err)
		}

		descriptors = append(descriptors, model.Descriptor{
			ID:         strings.TrimSuffix(filepath.ToSlash(rel), filepath.Ext(rel)),
			Name:       api.Title,
			Version:    api.Version,
			Path:       filepath.ToSlash(rel),
			Categories: api.Categories,
		})
	}

	logger.Info("Descriptors discovered", "root", s.Root, "descriptors", len(descriptors))
	return descriptors, nil
}

// files returns candidate descriptor paths relative to Root, sorted
func (s *DirSource) files() ([]string, error) {
	excluded := make(map[string]struct{}, len(s.Exclude))
	for _, e := range s.Exclude {
		excluded[filepath.Clean(e)] = struct{}{}
	}
	gi := loadIgnore(s.Root)

	var results []string
	err := filepath.WalkDir(s.Root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		name := d.Name()
		if d.IsDir() {
			if path == s.Root {
				return nil
			}
			if strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}
			return nil
		}

		if strings.HasPrefix(name, ".") || d.Type()&os.ModeSymlink != 0 {
			return nil
		}

		rel, err := filepath.Rel(s.Root, path)
		if err != nil {
			return nil
		}
		if _, skip := excluded[rel]; skip {
			return nil
		}
		if gi != nil && gi.MatchesPath(filepath.ToSlash(rel)) {
			return nil
		}

		switch strings.ToLower(filepath.Ext(name)) {
		case model.ExtensionJSON, model.ExtensionYAML, model.ExtensionYML:
			results = append(results, rel)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", s.Root, err)
	}

	sort.Strings(results)
	return results, nil
}

func loadIgnore(root string) *ignore.GitIgnore {
	gi, err := ignore.CompileIgnoreFile(filepath.Join(root, IgnoreFile))
	if err != nil {
		return nil
	}
	return gi
}
