// Package openapi exports generated variable schemas as OpenAPI 3.0 schema objects.
//
// OpenAPI 3.0 has no "null" type and no type lists, so the conversion folds null
// alternatives into `nullable: true` and turns multi type lists into anyOf.
// Definitions become component schemas.
package openapi

import (
	"sort"
	"strings"

	"github.com/chirino/graphql-jsonschema/jsonschema"
	"github.com/getkin/kin-openapi/openapi3"
)

// ComponentsPrefix is the JSON pointer prefix of component schema references.
const ComponentsPrefix = "#/components/schemas/"

// ExtensionPrefix is prepended to keywords OpenAPI does not know about.
const ExtensionPrefix = "x-jsonschema-"

// Operation is one GraphQL operation exposed as a POST endpoint.
type Operation struct {
	Name        string
	Description string
	Variables   *jsonschema.Document
}

// FromDocument converts the variables object of doc. References point into the
// schemas returned by Components.
func FromDocument(doc *jsonschema.Document) *openapi3.Schema {
	return newConverter(doc.Definitions).document(doc)
}

// Components converts every definition of doc into a component schema.
func Components(doc *jsonschema.Document) openapi3.Schemas {
	c := newConverter(doc.Definitions)
	for _, name := range doc.Definitions.Names() {
		c.definition(name)
	}
	return c.schemas
}

// NewSpec builds an OpenAPI document with one POST path per operation. The request body
// of each path is the operation's variables object.
func NewSpec(title, version string, ops []Operation) *openapi3.T {
	definitions := jsonschema.NewDefinitions()
	for _, op := range ops {
		definitions.Merge(op.Variables.Definitions)
	}
	c := newConverter(definitions)
	for _, name := range definitions.Names() {
		c.definition(name)
	}

	spec := &openapi3.T{
		OpenAPI: "3.0.3",
		Info: &openapi3.Info{
			Title:   title,
			Version: version,
		},
		Paths: openapi3.Paths{},
	}
	if len(c.schemas) > 0 {
		spec.Components = &openapi3.Components{Schemas: c.schemas}
	}

	for _, op := range ops {
		body := openapi3.NewRequestBody().
			WithRequired(true).
			WithJSONSchemaRef(openapi3.NewSchemaRef("", c.document(op.Variables)))
		spec.AddOperation("/"+op.Name, "POST", &openapi3.Operation{
			OperationID: op.Name,
			Summary:     op.Name,
			Description: op.Description,
			RequestBody: &openapi3.RequestBodyRef{Value: body},
			Responses:   openapi3.NewResponses(),
		})
	}
	return spec
}

type converter struct {
	definitions *jsonschema.Definitions
	schemas     openapi3.Schemas
}

func newConverter(definitions *jsonschema.Definitions) *converter {
	return &converter{
		definitions: definitions,
		schemas:     openapi3.Schemas{},
	}
}

func (c *converter) document(doc *jsonschema.Document) *openapi3.Schema {
	s := openapi3.NewObjectSchema()
	s.Properties = openapi3.Schemas{}
	for pair := doc.Properties.Oldest(); pair != nil; pair = pair.Next() {
		s.Properties[pair.Key] = c.convert(pair.Value)
	}
	if len(doc.Required) > 0 {
		s.Required = append([]string{}, doc.Required...)
	}
	return s
}

// definition returns the component schema of name, converting it on first use. The
// placeholder is registered before conversion so recursive references share it.
func (c *converter) definition(name string) *openapi3.Schema {
	if ref, ok := c.schemas[name]; ok {
		return ref.Value
	}
	s := &openapi3.Schema{}
	c.schemas[name] = openapi3.NewSchemaRef("", s)
	if f := c.definitions.Get(name); f != nil {
		*s = *c.schema(f)
	}
	return s
}

func (c *converter) ref(ref string) *openapi3.SchemaRef {
	name := strings.TrimPrefix(ref, jsonschema.DefinitionsPrefix)
	return openapi3.NewSchemaRef(ComponentsPrefix+name, c.definition(name))
}

func (c *converter) convert(f *jsonschema.Fragment) *openapi3.SchemaRef {
	if f.Ref != "" && onlyRef(f) {
		return c.ref(f.Ref)
	}
	return openapi3.NewSchemaRef("", c.schema(f))
}

func onlyRef(f *jsonschema.Fragment) bool {
	return f.Type == nil && f.Enum == nil && f.Items == nil && f.OneOf == nil &&
		f.Properties == nil && f.Required == nil && !f.HasDefault &&
		f.Description == "" && f.MarkdownDescription == "" && len(f.Extra) == 0
}

func (c *converter) schema(f *jsonschema.Fragment) *openapi3.Schema {
	s := openapi3.NewSchema()

	if f.Ref != "" {
		s.AllOf = openapi3.SchemaRefs{c.ref(f.Ref)}
	}

	if f.Type != nil {
		var types []string
		for _, name := range f.Type.Names {
			if name == "null" {
				s.Nullable = true
				continue
			}
			types = append(types, name)
		}
		switch len(types) {
		case 0:
		case 1:
			s.Type = types[0]
		default:
			for _, t := range types {
				s.AnyOf = append(s.AnyOf, openapi3.NewSchemaRef("", &openapi3.Schema{Type: t}))
			}
		}
	}

	for _, value := range f.Enum {
		if value == nil {
			s.Nullable = true
			continue
		}
		s.Enum = append(s.Enum, value)
	}

	if f.Items != nil {
		s.Items = c.convert(f.Items)
	}

	for _, alt := range f.OneOf {
		if alt.IsNull() {
			s.Nullable = true
			continue
		}
		s.OneOf = append(s.OneOf, c.convert(alt))
	}

	if f.Properties != nil {
		s.Properties = openapi3.Schemas{}
		for pair := f.Properties.Oldest(); pair != nil; pair = pair.Next() {
			s.Properties[pair.Key] = c.convert(pair.Value)
		}
	}
	if len(f.Required) > 0 {
		s.Required = append([]string{}, f.Required...)
	}

	if f.HasDefault {
		s.Default = f.Default
	}
	s.Description = f.Description
	if f.MarkdownDescription != "" {
		extension(s, "markdownDescription", f.MarkdownDescription)
	}

	keys := make([]string, 0, len(f.Extra))
	for key := range f.Extra {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		value := f.Extra[key]
		switch key {
		case "format":
			if format, ok := value.(string); ok {
				s.Format = format
				continue
			}
		case "pattern":
			if pattern, ok := value.(string); ok {
				s.Pattern = pattern
				continue
			}
		case "title":
			if title, ok := value.(string); ok {
				s.Title = title
				continue
			}
		}
		extension(s, key, value)
	}
	return s
}

func extension(s *openapi3.Schema, key string, value interface{}) {
	if s.Extensions == nil {
		s.Extensions = map[string]interface{}{}
	}
	s.Extensions[ExtensionPrefix+key] = value
}
