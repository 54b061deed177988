package parser

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/go-openapi/loads"
	"github.com/go-openapi/spec"
	"gopkg.in/yaml.v3"

	"github.com/pccui/commerce-sdk/pkg/model"
)

// CategoriesExtension is the info extension carrying catalog categories inside a descriptor
const CategoriesExtension = "x-categories"

const (
	definitionsPrefix = "#/definitions/"
	swaggerV2         = "2.0"
)

// OpenAPIParser reads Swagger 2.0 descriptors in JSON or YAML form
type OpenAPIParser struct{}

// NewOpenAPIParser creates a new OpenAPIParser
func NewOpenAPIParser() *OpenAPIParser {
	return &OpenAPIParser{}
}

// Parse loads the descriptor at path and converts it into an API model.
// Operations are ordered by path and then by method; types are ordered by name.
func (p *OpenAPIParser) Parse(ctx context.Context, path string) (*model.API, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	version, err := swaggerVersion(path)
	if err != nil {
		return nil, err
	}
	if version != swaggerV2 {
		return nil, fmt.Errorf("%w: %s is not a swagger 2.0 document", ErrUnsupportedDescriptor, path)
	}

	doc, err := loads.Spec(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrLoadDescriptor, path, err)
	}

	swagger := doc.Spec()
	if swagger == nil || swagger.Swagger != swaggerV2 {
		return nil, fmt.Errorf("%w: %s is not a swagger 2.0 document", ErrUnsupportedDescriptor, path)
	}

	api := &model.API{
		Host:       swagger.Host,
		BasePath:   swagger.BasePath,
		Schemes:    swagger.Schemes,
		Source:     path,
		Operations: operations(swagger.Paths),
		Types:      typeDefs(swagger.Definitions),
	}
	if info := swagger.Info; info != nil {
		api.Title = info.Title
		api.Version = info.Version
		api.Description = info.Description
		api.Categories = Categories(info.Extensions)
	}

	return api, nil
}

// swaggerVersion reads the top-level swagger field of the file at path.
// Documents that are not objects, or have no string swagger field, yield "".
func swaggerVersion(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrLoadDescriptor, err)
	}

	var doc any
	if strings.EqualFold(filepath.Ext(path), model.ExtensionJSON) {
		err = json.Unmarshal(data, &doc)
	} else {
		err = yaml.Unmarshal(data, &doc)
	}
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrLoadDescriptor, path, err)
	}

	fields, ok := doc.(map[string]any)
	if !ok {
		return "", nil
	}
	version, _ := fields["swagger"].(string)
	return version, nil
}

// Categories extracts the x-categories info extension as dimension -> tags.
// Extension keys are matched case-insensitively; malformed values are ignored.
func Categories(extensions spec.Extensions) map[string][]string {
	var raw any
	for key, value := range extensions {
		if strings.EqualFold(key, CategoriesExtension) {
			raw = value
			break
		}
	}

	dimensions, ok := raw.(map[string]any)
	if !ok {
		return nil
	}

	categories := make(map[string][]string, len(dimensions))
	for dimension, value := range dimensions {
		switch tags := value.(type) {
		case string:
			categories[dimension] = []string{tags}
		case []any:
			for _, tag := range tags {
				if s, ok := tag.(string); ok {
					categories[dimension] = append(categories[dimension], s)
				}
			}
		}
	}
	if len(categories) == 0 {
		return nil
	}
	return categories
}

func operations(paths *spec.Paths) []model.Operation {
	ops := []model.Operation{}
	if paths == nil {
		return ops
	}

	keys := make([]string, 0, len(paths.Paths))
	for key := range paths.Paths {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		item := paths.Paths[key]
		byMethod := map[string]*spec.Operation{
			"get":     item.Get,
			"put":     item.Put,
			"post":    item.Post,
			"delete":  item.Delete,
			"options": item.Options,
			"head":    item.Head,
			"patch":   item.Patch,
		}
		for _, method := range model.OperationMethods {
			op := byMethod[method]
			if op == nil {
				continue
			}
			ops = append(ops, operation(method, key, item.Parameters, op))
		}
	}
	return ops
}

func operation(method, path string, shared []spec.Parameter, op *spec.Operation) model.Operation {
	out := model.Operation{
		ID:      op.ID,
		Method:  method,
		Path:    path,
		Summary: op.Summary,
		Tags:    op.Tags,
	}

	for _, p := range append(append([]spec.Parameter{}, shared...), op.Parameters...) {
		out.Parameters = append(out.Parameters, model.Parameter{
			Name:     p.Name,
			In:       p.In,
			Required: p.Required,
			Type:     parameterType(p),
		})
	}

	if op.Responses == nil {
		return out
	}

	codes := make([]int, 0, len(op.Responses.StatusCodeResponses))
	for code := range op.Responses.StatusCodeResponses {
		codes = append(codes, code)
	}
	sort.Ints(codes)

	for _, code := range codes {
		resp := op.Responses.StatusCodeResponses[code]
		r := response(strconv.Itoa(code), resp)
		out.Responses = append(out.Responses, r)
		if out.Result == nil && code >= 200 && code < 300 && r.Type != nil {
			out.Result = r.Type
		}
	}
	if def := op.Responses.Default; def != nil {
		out.Responses = append(out.Responses, response("default", *def))
	}

	return out
}

func response(code string, resp spec.Response) model.Response {
	r := model.Response{Code: code, Description: resp.Description}
	if resp.Schema != nil {
		t := schemaType(resp.Schema)
		r.Type = &t
	}
	return r
}

func parameterType(p spec.Parameter) model.TypeRef {
	if p.Schema != nil {
		return schemaType(p.Schema)
	}
	return simpleType(p.Type, p.Items)
}

func simpleType(typ string, items *spec.Items) model.TypeRef {
	kind := primitiveKind(typ)
	if kind != model.KindArray {
		return model.TypeRef{Kind: kind}
	}
	if items == nil {
		return model.TypeRef{Kind: model.KindArray, Items: &model.TypeRef{Kind: model.KindAny}}
	}
	elem := simpleType(items.Type, items.Items)
	return model.TypeRef{Kind: model.KindArray, Items: &elem}
}

func schemaType(s *spec.Schema) model.TypeRef {
	if ref := s.Ref.String(); ref != "" {
		return model.TypeRef{Kind: model.KindRef, Ref: strings.TrimPrefix(ref, definitionsPrefix)}
	}

	var typ string
	if len(s.Type) > 0 {
		typ = s.Type[0]
	}

	switch {
	case typ == "array":
		elem := model.TypeRef{Kind: model.KindAny}
		if s.Items != nil && s.Items.Schema != nil {
			elem = schemaType(s.Items.Schema)
		}
		return model.TypeRef{Kind: model.KindArray, Items: &elem}
	case typ == "" && len(s.Properties) > 0:
		return model.TypeRef{Kind: model.KindObject}
	default:
		return model.TypeRef{Kind: primitiveKind(typ)}
	}
}

func primitiveKind(typ string) model.TypeKind {
	switch typ {
	case "string":
		return model.KindString
	case "integer":
		return model.KindInteger
	case "number":
		return model.KindNumber
	case "boolean":
		return model.KindBoolean
	case "object":
		return model.KindObject
	case "array":
		return model.KindArray
	default:
		return model.KindAny
	}
}

func typeDefs(definitions spec.Definitions) []model.TypeDef {
	names := make([]string, 0, len(definitions))
	for name := range definitions {
		names = append(names, name)
	}
	sort.Strings(names)

	defs := make([]model.TypeDef, 0, len(names))
	for _, name := range names {
		schema := definitions[name]
		required := make(map[string]bool, len(schema.Required))
		for _, r := range schema.Required {
			required[r] = true
		}

		props := make([]string, 0, len(schema.Properties))
		for prop := range schema.Properties {
			props = append(props, prop)
		}
		sort.Strings(props)

		def := model.TypeDef{Name: name, Description: schema.Description}
		for _, prop := range props {
			propSchema := schema.Properties[prop]
			def.Properties = append(def.Properties, model.Property{
				Name:     prop,
				Required: required[prop],
				Type:     schemaType(&propSchema),
			})
		}
		defs = append(defs, def)
	}
	return defs
}
