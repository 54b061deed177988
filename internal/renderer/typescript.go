package renderer

import (
	"bytes"
	"embed"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"text/template"

	"github.com/pccui/commerce-sdk/internal/model"
	"github.com/pccui/commerce-sdk/internal/naming"
	pkgmodel "github.com/pccui/commerce-sdk/pkg/model"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Template names
const (
	clientTemplate = "client.ts.tmpl"
	dtoTemplate    = "dto.ts.tmpl"
	apiTemplate    = "api.ts.tmpl"
	familyTemplate = "family.ts.tmpl"
	rootTemplate   = "root.ts.tmpl"
)

var identifierPattern = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

// TypeScript renders TypeScript sources from the embedded templates
type TypeScript struct {
	templates *template.Template
}

// NewTypeScript parses the embedded templates
func NewTypeScript() (*TypeScript, error) {
	tmpl, err := template.New("").Funcs(template.FuncMap{
		"canonical": naming.CanonicalName,
		"method":    methodName,
		"tsType":    tsType,
		"tsKey":     tsKey,
		"quote":     strconv.Quote,
		"comment":   comment,
		"params":    paramsType,
		"optional":  paramsOptional,
		"result":    resultType,
		"locations": locations,
	}).ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return &TypeScript{templates: tmpl}, nil
}

type clientData struct {
	Name       string
	BaseURI    string
	Operations []pkgmodel.Operation
	HasTypes   bool
}

type familyEntry struct {
	Key        string
	Identifier string
}

// ClientSource renders one client class holding the operations of every model
func (r *TypeScript) ClientSource(apis []*pkgmodel.API, name string) ([]byte, error) {
	data := clientData{Name: name}
	for _, api := range apis {
		if data.BaseURI == "" {
			data.BaseURI = baseURI(api)
		}
		data.Operations = append(data.Operations, api.Operations...)
		data.HasTypes = data.HasTypes || len(api.Types) > 0
	}
	return r.execute(clientTemplate, data)
}

// DTOSource renders one interface per declared type
func (r *TypeScript) DTOSource(apis []*pkgmodel.API) ([]byte, error) {
	var types []pkgmodel.TypeDef
	for _, api := range apis {
		types = append(types, api.Types...)
	}
	return r.execute(dtoTemplate, types)
}

// APIIndex renders the index stub of one API directory
func (r *TypeScript) APIIndex(name string) ([]byte, error) {
	return r.execute(apiTemplate, name)
}

// FamilyExportIndex renders the family index
func (r *TypeScript) FamilyExportIndex(names []string) ([]byte, error) {
	return r.execute(familyTemplate, names)
}

// RootIndex renders the root index. Families are exported under their canonical names.
func (r *TypeScript) RootIndex(families []string) ([]byte, error) {
	entries := make([]familyEntry, 0, len(families))
	for _, family := range families {
		entries = append(entries, familyEntry{Key: family, Identifier: naming.CanonicalName(family)})
	}
	return r.execute(rootTemplate, entries)
}

// OperationManifest renders the YAML operation manifest
func (r *TypeScript) OperationManifest(manifest *model.OperationManifest) ([]byte, error) {
	return ManifestYAML(manifest)
}

func (r *TypeScript) execute(name string, data any) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, fmt.Errorf("failed to render %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

func baseURI(api *pkgmodel.API) string {
	if api.Host == "" {
		return api.BasePath
	}
	scheme := "https"
	if len(api.Schemes) > 0 {
		scheme = api.Schemes[0]
	}
	return scheme + "://" + api.Host + api.BasePath
}

// methodName is the client method for an operation, falling back to method and path without an id
func methodName(op pkgmodel.Operation) string {
	if name := naming.MemberName(op.ID); name != "" {
		return name
	}
	return naming.MemberName(op.Method, op.Path)
}

// tsType maps a type reference to TypeScript, prefixing references to declared types
func tsType(ref pkgmodel.TypeRef, prefix string) string {
	switch ref.Kind {
	case pkgmodel.KindString:
		return "string"
	case pkgmodel.KindInteger, pkgmodel.KindNumber:
		return "number"
	case pkgmodel.KindBoolean:
		return "boolean"
	case pkgmodel.KindObject:
		return "Record<string, unknown>"
	case pkgmodel.KindArray:
		if ref.Items == nil {
			return "unknown[]"
		}
		return tsType(*ref.Items, prefix) + "[]"
	case pkgmodel.KindRef:
		return prefix + naming.CanonicalName(ref.Ref)
	default:
		return "unknown"
	}
}

func tsKey(name string) string {
	if identifierPattern.MatchString(name) {
		return name
	}
	return strconv.Quote(name)
}

// comment flattens text so it can sit on a single comment line
func comment(text string) string {
	text = strings.Join(strings.Fields(text), " ")
	return strings.ReplaceAll(text, "*/", "* /")
}

// paramsType renders the parameter object type of an operation
func paramsType(op pkgmodel.Operation) string {
	if len(op.Parameters) == 0 {
		return "Parameters"
	}
	fields := make([]string, 0, len(op.Parameters))
	for _, p := range op.Parameters {
		optional := "?"
		if p.Required {
			optional = ""
		}
		fields = append(fields, tsKey(p.Name)+optional+": "+tsType(p.Type, "types."))
	}
	return "{ " + strings.Join(fields, "; ") + " }"
}

// paramsOptional reports whether the parameter object may be omitted
func paramsOptional(op pkgmodel.Operation) bool {
	for _, p := range op.Parameters {
		if p.Required {
			return false
		}
	}
	return true
}

func resultType(op pkgmodel.Operation) string {
	if op.Result == nil {
		return "void"
	}
	return tsType(*op.Result, "types.")
}

// locations maps each parameter to where the client sends it
func locations(op pkgmodel.Operation) string {
	if len(op.Parameters) == 0 {
		return "{}"
	}
	fields := make([]string, 0, len(op.Parameters))
	for _, p := range op.Parameters {
		fields = append(fields, tsKey(p.Name)+": "+strconv.Quote(p.In))
	}
	return "{ " + strings.Join(fields, ", ") + " }"
}
