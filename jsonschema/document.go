package jsonschema

import (
	"bytes"
	"encoding/json"

	"github.com/chirino/graphql-jsonschema/schema"
	"github.com/ghodss/yaml"
)

// SchemaURI identifies the JSON Schema dialect of generated documents.
const SchemaURI = "https://json-schema.org/draft/2020-12/schema"

// Document is the JSON Schema describing the variables of one operation.
type Document struct {
	Schema      string
	Properties  *Properties
	Required    []string
	Definitions *Definitions
}

// BuildSchema returns the schema of the given variables. Property order follows the
// iteration order of vars. Each call uses fresh definition tracking, so concurrent calls
// sharing vars and options are safe.
func BuildSchema(vars *schema.VariableMap, options Options) *Document {
	doc := &Document{
		Schema:      SchemaURI,
		Properties:  NewProperties(),
		Required:    []string{},
		Definitions: NewDefinitions(),
	}

	s := newSynthesizer(options)
	vars.Each(func(v *schema.InputValue) {
		r := s.synthesize(v.Type, false)
		if v.HasDefault {
			r.fragment.SetDefault(deepCopyValue(v.Default))
		}
		doc.Properties.Set(v.Name, r.fragment)
		if r.required {
			doc.Required = append(doc.Required, v.Name)
		}
		doc.Definitions.Merge(r.definitions)
	})
	return doc
}

// Property returns the schema of the named variable, or nil.
func (doc *Document) Property(name string) *Fragment {
	f, _ := doc.Properties.Get(name)
	return f
}

func (doc *Document) MarshalJSON() ([]byte, error) {
	type document struct {
		Schema      string       `json:"$schema"`
		Type        string       `json:"type"`
		Properties  *Properties  `json:"properties"`
		Required    []string     `json:"required"`
		Definitions *Definitions `json:"definitions,omitempty"`
	}
	out := document{
		Schema:     doc.Schema,
		Type:       "object",
		Properties: doc.Properties,
		Required:   doc.Required,
	}
	if out.Required == nil {
		out.Required = []string{}
	}
	if doc.Definitions.Len() > 0 {
		out.Definitions = doc.Definitions
	}
	return json.Marshal(out)
}

func (doc *Document) UnmarshalJSON(data []byte) error {
	type document struct {
		Schema      string       `json:"$schema"`
		Properties  *Properties  `json:"properties"`
		Required    []string     `json:"required"`
		Definitions *Definitions `json:"definitions"`
	}
	in := document{
		Properties:  NewProperties(),
		Definitions: NewDefinitions(),
	}
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	doc.Schema = in.Schema
	doc.Properties = in.Properties
	doc.Required = in.Required
	doc.Definitions = in.Definitions
	if doc.Definitions == nil {
		doc.Definitions = NewDefinitions()
	}
	return nil
}

// MarshalIndent is like MarshalJSON but applies indentation.
func (doc *Document) MarshalIndent(prefix, indent string) ([]byte, error) {
	data, err := doc.MarshalJSON()
	if err != nil {
		return nil, err
	}
	buf := &bytes.Buffer{}
	if err := json.Indent(buf, data, prefix, indent); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// YAML renders the document as YAML. Object keys come out sorted.
func (doc *Document) YAML() ([]byte, error) {
	data, err := doc.MarshalJSON()
	if err != nil {
		return nil, err
	}
	return yaml.JSONToYAML(data)
}
