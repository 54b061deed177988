// Package output manages the generated output area.
package output

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrUnsafePath is returned when an output directory would resolve to something that must never be removed
var ErrUnsafePath = errors.New("refusing to remove unsafe output path")

// Area is the set of directories a generation run owns
type Area struct {
	RenderDir string
	BuildDir  string
}

// Reset removes the render and build directories if they exist.
// Calling it on a clean area is not an error.
func (a Area) Reset() error {
	for _, dir := range []string{a.RenderDir, a.BuildDir} {
		if err := remove(dir); err != nil {
			return err
		}
	}
	return nil
}

func remove(dir string) error {
	if dir == "" {
		return fmt.Errorf("%w: empty path", ErrUnsafePath)
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", dir, err)
	}
	if abs == filepath.Dir(abs) {
		return fmt.Errorf("%w: %s", ErrUnsafePath, dir)
	}

	if err := os.RemoveAll(abs); err != nil {
		return fmt.Errorf("failed to remove %s: %w", dir, err)
	}
	return nil
}
