package catalog_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pccui/commerce-sdk/internal/catalog"
	"github.com/pccui/commerce-sdk/internal/parser"
	"github.com/pccui/commerce-sdk/pkg/model"
)

func swagger(title, categories string) string {
	doc := "swagger: \"2.0\"\ninfo:\n  title: " + title + "\n  version: \"1\"\n"
	if categories != "" {
		doc += "  x-categories:\n    Type: [" + categories + "]\n"
	}
	return doc + "paths: {}\n"
}

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	}
}

func TestDirSource_Descriptors(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"pet-store.yaml":       swagger("Pet Store", "Commerce"),
		"orders/order-api.yml": swagger("Order API", "Commerce"),
		"ping.json":            `{"swagger":"2.0","info":{"title":"Ping","version":"1"},"paths":{}}`,
		"api-config.json":      `{"Commerce":[]}`,
		"notes.txt":            "not a descriptor",
		"package.json":         `{"name":"not-a-descriptor"}`,
		"list.yaml":            "- a\n- b\n",
		"ci.yml":               "info: \"just a string\"\n",
		"fixtures/values.json": `[{"id":1}]`,
		".hidden/secret.yaml":  swagger("Secret", ""),
		".draft.yaml":          swagger("Draft", ""),
		"legacy/old.yaml":      swagger("Old", ""),
		catalog.IgnoreFile:     "legacy/\n",
	})

	src := catalog.NewDirSource(root, parser.NewOpenAPIParser(), nil, "api-config.json")
	got, err := src.Descriptors(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []model.Descriptor{
		{ID: "orders/order-api", Name: "Order API", Version: "1", Path: "orders/order-api.yml", Categories: map[string][]string{"Type": {"Commerce"}}},
		{ID: "pet-store", Name: "Pet Store", Version: "1", Path: "pet-store.yaml", Categories: map[string][]string{"Type": {"Commerce"}}},
		{ID: "ping", Name: "Ping", Version: "1", Path: "ping.json"},
	}, got)
}

func TestDirSource_MalformedDescriptor(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"broken.yaml": "swagger: [unterminated\n",
	})

	_, err := catalog.NewDirSource(root, parser.NewOpenAPIParser(), nil).Descriptors(context.Background())
	assert.ErrorIs(t, err, parser.ErrLoadDescriptor)
}

func TestDirSource_MissingRoot(t *testing.T) {
	_, err := catalog.NewDirSource(filepath.Join(t.TempDir(), "missing"), parser.NewOpenAPIParser(), nil).Descriptors(context.Background())
	assert.ErrorIs(t, err, os.ErrNotExist)
}
