// Package catalog supplies the API descriptors a generation run starts from.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"strings"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	"github.com/pccui/commerce-sdk/internal/logging"
	"github.com/pccui/commerce-sdk/internal/validators"
	"github.com/pccui/commerce-sdk/pkg/model"
)

// ErrReadCatalog is returned when a catalog document cannot be read or decoded
var ErrReadCatalog = errors.New("failed to read catalog")

// Source supplies descriptors in a stable order
type Source interface {
	Descriptors(ctx context.Context) ([]model.Descriptor, error)
}

// FileSource reads a catalog document listing descriptors.
// Location is a local path or an http(s) URL; YAML is used for .yaml and .yml, JSON otherwise.
type FileSource struct {
	Location string
	Client   *http.Client
	Logger   *log.Logger
}

// NewFileSource creates a FileSource for the given location
func NewFileSource(location string, logger *log.Logger) *FileSource {
	return &FileSource{Location: location, Logger: logger}
}

// Descriptors reads the catalog, skipping entries that cannot be located for parsing
func (s *FileSource) Descriptors(ctx context.Context) ([]model.Descriptor, error) {
	logger := logging.OrDiscard(s.Logger)

	data, err := s.read(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w from %s: %w", ErrReadCatalog, s.Location, err)
	}

	var entries []model.Descriptor
	if isYAML(s.Location) {
		err = yaml.Unmarshal(data, &entries)
	} else {
		err = json.Unmarshal(data, &entries)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s is not a list of descriptors: %w", ErrReadCatalog, s.Location, err)
	}

	validator := validators.NewDescriptorValidator()
	descriptors := make([]model.Descriptor, 0, len(entries))
	skipped := 0
	for i := range entries {
		if err := validator.Validate(&entries[i]); err != nil {
			logger.Warn("Skipping invalid descriptor", "index", i, "error", err)
			skipped++
			continue
		}
		descriptors = append(descriptors, entries[i])
	}

	logger.Info("Catalog read", "source", s.Location, "descriptors", len(descriptors), "skipped", skipped)
	return descriptors, nil
}

func (s *FileSource) read(ctx context.Context) ([]byte, error) {
	if validators.IsValidURL(s.Location) {
		return fetchFromHTTP(ctx, s.client(), s.Location)
	}
	return os.ReadFile(s.Location)
}

func (s *FileSource) client() *http.Client {
	if s.Client != nil {
		return s.Client
	}
	return http.DefaultClient
}

func fetchFromHTTP(ctx context.Context, client *http.Client, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch from HTTP: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP request failed with status: %d", resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}

func isYAML(location string) bool {
	p := location
	if u, err := url.Parse(location); err == nil && u.Scheme != "" {
		p = u.Path
	}
	ext := strings.ToLower(path.Ext(p))
	return ext == model.ExtensionYAML || ext == model.ExtensionYML
}
