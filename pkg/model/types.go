package model

// Descriptor is one API description unit as listed by a catalog or found on disk
type Descriptor struct {
	ID      string `json:"id,omitempty" yaml:"id,omitempty"`
	Name    string `json:"name,omitempty" yaml:"name,omitempty"`
	Version string `json:"version,omitempty" yaml:"version,omitempty"`
	// Path locates the descriptor file, relative to the input directory unless absolute
	Path string `json:"path" yaml:"path"`
	// Categories maps a classification dimension to its ordered tags
	Categories map[string][]string `json:"categories,omitempty" yaml:"categories,omitempty"`
}

// API is the parsed model of a single descriptor
type API struct {
	Title       string              `json:"title" yaml:"title"`
	Version     string              `json:"version,omitempty" yaml:"version,omitempty"`
	Description string              `json:"description,omitempty" yaml:"description,omitempty"`
	Host        string              `json:"host,omitempty" yaml:"host,omitempty"`
	BasePath    string              `json:"basePath,omitempty" yaml:"basePath,omitempty"`
	Schemes     []string            `json:"schemes,omitempty" yaml:"schemes,omitempty"`
	Source      string              `json:"source,omitempty" yaml:"source,omitempty"`
	Categories  map[string][]string `json:"categories,omitempty" yaml:"categories,omitempty"`
	Operations  []Operation         `json:"operations" yaml:"operations"`
	Types       []TypeDef           `json:"types,omitempty" yaml:"types,omitempty"`
}

// Operation represents a single HTTP operation of an API
type Operation struct {
	ID         string      `json:"id" yaml:"id"`
	Method     string      `json:"method" yaml:"method"`
	Path       string      `json:"path" yaml:"path"`
	Summary    string      `json:"summary,omitempty" yaml:"summary,omitempty"`
	Tags       []string    `json:"tags,omitempty" yaml:"tags,omitempty"`
	Parameters []Parameter `json:"parameters,omitempty" yaml:"parameters,omitempty"`
	Responses  []Response  `json:"responses,omitempty" yaml:"responses,omitempty"`
	// Result is the type of the first successful response, if it declares one
	Result *TypeRef `json:"result,omitempty" yaml:"result,omitempty"`
}

// Parameter represents an operation input
type Parameter struct {
	Name     string  `json:"name" yaml:"name"`
	In       string  `json:"in" yaml:"in"`
	Required bool    `json:"required,omitempty" yaml:"required,omitempty"`
	Type     TypeRef `json:"type" yaml:"type"`
}

// Response represents a declared operation response
type Response struct {
	Code        string   `json:"code" yaml:"code"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Type        *TypeRef `json:"type,omitempty" yaml:"type,omitempty"`
}

// TypeDef represents a named data type declared by an API
type TypeDef struct {
	Name        string     `json:"name" yaml:"name"`
	Description string     `json:"description,omitempty" yaml:"description,omitempty"`
	Properties  []Property `json:"properties,omitempty" yaml:"properties,omitempty"`
}

// Property represents a field of a TypeDef
type Property struct {
	Name     string  `json:"name" yaml:"name"`
	Required bool    `json:"required,omitempty" yaml:"required,omitempty"`
	Type     TypeRef `json:"type" yaml:"type"`
}

// TypeKind is the language-neutral kind of a type reference
type TypeKind string

const (
	KindString  TypeKind = "string"
	KindInteger TypeKind = "integer"
	KindNumber  TypeKind = "number"
	KindBoolean TypeKind = "boolean"
	KindObject  TypeKind = "object"
	KindArray   TypeKind = "array"
	KindRef     TypeKind = "ref"
	KindAny     TypeKind = "any"
)

// TypeRef is a language-neutral reference to a type
type TypeRef struct {
	Kind TypeKind `json:"kind" yaml:"kind"`
	// Ref names the referenced TypeDef when Kind is KindRef
	Ref string `json:"ref,omitempty" yaml:"ref,omitempty"`
	// Items is the element type when Kind is KindArray
	Items *TypeRef `json:"items,omitempty" yaml:"items,omitempty"`
}
