package parser_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-openapi/spec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pccui/commerce-sdk/internal/parser"
	"github.com/pccui/commerce-sdk/pkg/model"
)

const petStoreYAML = `swagger: "2.0"
info:
  title: pet store
  version: "1.0.0"
  description: Pets for sale
  x-categories:
    Type:
      - Commerce
      - Retail
host: api.example.com
basePath: /v1
schemes:
  - https
paths:
  /pets/{id}:
    parameters:
      - name: id
        in: path
        required: true
        type: string
    get:
      operationId: getPet
      summary: Get a pet
      tags: [pets]
      responses:
        "404":
          description: not found
        "200":
          description: the pet
          schema:
            $ref: "#/definitions/Pet"
    delete:
      operationId: deletePet
      responses:
        "204":
          description: deleted
  /pets:
    get:
      operationId: listPets
      parameters:
        - name: tags
          in: query
          type: array
          items:
            type: string
      responses:
        "200":
          description: all pets
          schema:
            type: array
            items:
              $ref: "#/definitions/Pet"
        default:
          description: error
    post:
      operationId: createPet
      parameters:
        - name: body
          in: body
          required: true
          schema:
            $ref: "#/definitions/Pet"
      responses:
        "201":
          description: created
definitions:
  Pet:
    description: A pet
    required: [name]
    properties:
      name:
        type: string
      age:
        type: integer
      tags:
        type: array
        items:
          type: string
  Error:
    properties:
      message:
        type: string
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestOpenAPIParser_Parse(t *testing.T) {
	path := writeFile(t, "pet-store.yaml", petStoreYAML)

	api, err := parser.NewOpenAPIParser().Parse(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, "pet store", api.Title)
	assert.Equal(t, "1.0.0", api.Version)
	assert.Equal(t, "Pets for sale", api.Description)
	assert.Equal(t, "api.example.com", api.Host)
	assert.Equal(t, "/v1", api.BasePath)
	assert.Equal(t, []string{"https"}, api.Schemes)
	assert.Equal(t, path, api.Source)
	assert.Equal(t, map[string][]string{"Type": {"Commerce", "Retail"}}, api.Categories)

	var ids []string
	for _, op := range api.Operations {
		ids = append(ids, op.Method+" "+op.Path+" "+op.ID)
	}
	assert.Equal(t, []string{
		"get /pets listPets",
		"post /pets createPet",
		"get /pets/{id} getPet",
		"delete /pets/{id} deletePet",
	}, ids)

	list := api.Operations[0]
	require.Len(t, list.Parameters, 1)
	assert.Equal(t, model.TypeRef{Kind: model.KindArray, Items: &model.TypeRef{Kind: model.KindString}}, list.Parameters[0].Type)
	require.NotNil(t, list.Result)
	assert.Equal(t, model.KindArray, list.Result.Kind)
	assert.Equal(t, "Pet", list.Result.Items.Ref)
	require.Len(t, list.Responses, 2)
	assert.Equal(t, "default", list.Responses[1].Code)

	get := api.Operations[2]
	require.Len(t, get.Parameters, 1, "path-level parameters are inherited")
	assert.Equal(t, "id", get.Parameters[0].Name)
	assert.True(t, get.Parameters[0].Required)
	assert.Equal(t, []string{"200", "404"}, []string{get.Responses[0].Code, get.Responses[1].Code})
	require.NotNil(t, get.Result)
	assert.Equal(t, model.TypeRef{Kind: model.KindRef, Ref: "Pet"}, *get.Result)

	assert.Nil(t, api.Operations[3].Result)

	require.Len(t, api.Types, 2)
	assert.Equal(t, "Error", api.Types[0].Name)
	pet := api.Types[1]
	assert.Equal(t, "Pet", pet.Name)
	assert.Equal(t, "A pet", pet.Description)
	require.Len(t, pet.Properties, 3)
	assert.Equal(t, "age", pet.Properties[0].Name)
	assert.Equal(t, "name", pet.Properties[1].Name)
	assert.True(t, pet.Properties[1].Required)
	assert.False(t, pet.Properties[0].Required)
	assert.Equal(t, model.KindArray, pet.Properties[2].Type.Kind)
}

func TestOpenAPIParser_ParseJSON(t *testing.T) {
	path := writeFile(t, "ping.json", `{"swagger":"2.0","info":{"title":"Ping","version":"0.1"},"paths":{"/ping":{"head":{"responses":{"200":{"description":"ok"}}}}}}`)

	api, err := parser.NewOpenAPIParser().Parse(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "Ping", api.Title)
	assert.Nil(t, api.Categories)
	require.Len(t, api.Operations, 1)
	assert.Equal(t, "head", api.Operations[0].Method)
	assert.Empty(t, api.Types)
}

func TestOpenAPIParser_Errors(t *testing.T) {
	p := parser.NewOpenAPIParser()

	t.Run("missing file", func(t *testing.T) {
		_, err := p.Parse(context.Background(), filepath.Join(t.TempDir(), "missing.yaml"))
		assert.ErrorIs(t, err, parser.ErrLoadDescriptor)
	})

	t.Run("not swagger 2.0", func(t *testing.T) {
		path := writeFile(t, "openapi3.json", `{"openapi":"3.0.0","info":{"title":"x","version":"1"},"paths":{}}`)
		_, err := p.Parse(context.Background(), path)
		assert.ErrorIs(t, err, parser.ErrUnsupportedDescriptor)
	})

	t.Run("swagger document of the wrong shape", func(t *testing.T) {
		path := writeFile(t, "bad-info.yaml", "swagger: \"2.0\"\ninfo: just a string\npaths: {}\n")
		_, err := p.Parse(context.Background(), path)
		assert.ErrorIs(t, err, parser.ErrLoadDescriptor)
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := p.Parse(ctx, writeFile(t, "ping.yaml", petStoreYAML))
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestOpenAPIParser_NonDescriptors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"yaml list", "list.yaml", "- a\n- b\n"},
		{"yaml scalar", "note.yml", "just text\n"},
		{"config with scalar info", "ci.yml", "info: \"just a string\"\nsteps: [build]\n"},
		{"json array", "data.json", `[1, 2, 3]`},
		{"json object without swagger", "package.json", `{"name":"pkg","info":"x"}`},
		{"unquoted version", "old.yaml", "swagger: 2.0\ninfo: {title: x, version: \"1\"}\n"},
		{"empty file", "empty.yaml", ""},
	}

	p := parser.NewOpenAPIParser()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := p.Parse(context.Background(), writeFile(t, tt.file, tt.content))
			assert.ErrorIs(t, err, parser.ErrUnsupportedDescriptor)
		})
	}
}

func TestCategories(t *testing.T) {
	tests := []struct {
		name       string
		extensions spec.Extensions
		want       map[string][]string
	}{
		{"absent", spec.Extensions{}, nil},
		{"list of tags", spec.Extensions{"x-categories": map[string]any{"Type": []any{"Commerce"}}}, map[string][]string{"Type": {"Commerce"}}},
		{"single string", spec.Extensions{"x-categories": map[string]any{"Type": "Commerce"}}, map[string][]string{"Type": {"Commerce"}}},
		{"key case ignored", spec.Extensions{"X-Categories": map[string]any{"Type": []any{"Auth"}}}, map[string][]string{"Type": {"Auth"}}},
		{"non string tags dropped", spec.Extensions{"x-categories": map[string]any{"Type": []any{1, "Auth"}}}, map[string][]string{"Type": {"Auth"}}},
		{"malformed", spec.Extensions{"x-categories": []any{"Commerce"}}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parser.Categories(tt.extensions))
		})
	}
}

func TestParserFunc(t *testing.T) {
	var got string
	p := parser.ParserFunc(func(_ context.Context, path string) (*model.API, error) {
		got = path
		return &model.API{Title: "stub"}, nil
	})

	api, err := p.Parse(context.Background(), "a.yaml")
	require.NoError(t, err)
	assert.Equal(t, "stub", api.Title)
	assert.Equal(t, "a.yaml", got)
}
