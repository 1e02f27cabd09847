package jsonschema

import (
	"github.com/chirino/graphql-jsonschema/schema"
)

// Options control how type references are turned into schemas.
type Options struct {
	// UseMarkdownDescription adds a markdownDescription next to every description, with
	// the GraphQL type signature fenced as a code block.
	UseMarkdownDescription bool `json:"useMarkdownDescription,omitempty"`
	// CustomScalarSchemas replaces the permissive default schema of custom scalars, by
	// scalar name. The fragments are copied before use and never modified.
	CustomScalarSchemas map[string]*Fragment `json:"customScalarSchemas,omitempty"`
}

var scalarTypes = map[string]string{
	"Int":      "integer",
	"Float":    "number",
	"String":   "string",
	"ID":       "string",
	"DateTime": "string",
	"Boolean":  "boolean",
}

var anyScalarTypes = []string{"string", "number", "boolean", "integer"}

type result struct {
	fragment    *Fragment
	required    bool
	definitions *Definitions
}

// synthesizer holds the state of one schema build. It must not be shared between builds.
type synthesizer struct {
	options Options
	visited visited
}

func newSynthesizer(options Options) *synthesizer {
	return &synthesizer{
		options: options,
		visited: visited{},
	}
}

func (s *synthesizer) synthesize(t schema.Type, nonNull bool) result {
	r := result{
		fragment:    &Fragment{},
		definitions: NewDefinitions(),
	}

	switch t := t.(type) {
	case *schema.Enum:
		values := make([]interface{}, 0, len(t.Values)+1)
		for _, v := range t.Values {
			values = append(values, v.Name)
		}
		if !nonNull {
			values = append(values, nil)
		}
		r.fragment.Enum = values

	case *schema.Scalar:
		r.fragment = s.scalar(t, nonNull)

	case *schema.List:
		if nonNull {
			r.fragment.Type = Type("array")
		} else {
			r.fragment.Type = TypeList("array", "null")
		}
		inner := s.synthesize(t.OfType, false)
		switch {
		case inner.fragment.Ref != "":
			r.fragment.Items = &Fragment{Ref: inner.fragment.Ref}
		case inner.fragment.OneOf != nil:
			r.fragment.Items = &Fragment{OneOf: inner.fragment.OneOf}
		default:
			r.fragment.Items = inner.fragment
		}
		r.definitions.Merge(inner.definitions)

	case *schema.NonNull:
		inner := s.synthesize(t.OfType, true)
		r.fragment = inner.fragment
		r.required = true
		r.definitions.Merge(inner.definitions)

	case *schema.InputObject:
		if nonNull {
			r.fragment = RefTo(t.Name)
		} else {
			r.fragment.OneOf = []*Fragment{RefTo(t.Name), Null()}
		}
		if s.visited.mark(t.Name) {
			s.define(t, r.definitions)
		}
	}

	if !nonNull {
		s.describe(r.fragment, t)
	}
	return r
}

func (s *synthesizer) scalar(t *schema.Scalar, nonNull bool) *Fragment {
	var f *Fragment
	if primitive, ok := scalarTypes[t.Name]; ok {
		f = &Fragment{Type: Type(primitive)}
	} else if override := s.options.CustomScalarSchemas[t.Name]; override != nil {
		f = override.DeepCopy()
	} else {
		f = &Fragment{Type: TypeList(anyScalarTypes...)}
	}
	if nonNull {
		return f
	}

	switch {
	case f.Type != nil:
		f.Type.AddNull()
	case f.OneOf != nil:
		f.OneOf = append(f.OneOf, Null())
	default:
		f = &Fragment{OneOf: []*Fragment{f, Null()}}
	}
	return f
}

// define builds the object schema of an input object and registers it, after the
// definitions discovered through its fields.
func (s *synthesizer) define(t *schema.InputObject, definitions *Definitions) {
	def := &Fragment{
		Type:       Type("object"),
		Properties: NewProperties(),
		Required:   []string{},
	}
	def.Description = join(t.Desc, t.Name)
	if s.options.UseMarkdownDescription {
		def.MarkdownDescription = join(t.Desc, RenderType(t, true))
	}

	for _, field := range t.Fields {
		r := s.synthesize(field.Type, false)
		definitions.Merge(r.definitions)

		property := r.fragment
		if field.HasDefault {
			property.SetDefault(deepCopyValue(field.Default))
		}
		if field.Desc != "" {
			property.Description = field.Desc + "\n" + RenderType(field.Type, false)
			if s.options.UseMarkdownDescription {
				property.MarkdownDescription = field.Desc + "\n" + RenderType(field.Type, true)
			}
		}
		def.Properties.Set(field.Name, property)
		if r.required {
			def.Required = append(def.Required, field.Name)
		}
	}
	definitions.Add(t.Name, def)
}

// describe appends the rendered type signature to the description of a nullable
// occurrence, starting from the named type's own description when there is none yet.
func (s *synthesizer) describe(f *Fragment, t schema.Type) {
	markdown := s.options.UseMarkdownDescription
	signature := RenderType(t, false)

	var typeDesc string
	switch named := schema.Unwrap(t).(type) {
	case *schema.Enum:
		typeDesc = named.Desc
	case *schema.InputObject:
		typeDesc = named.Desc
	}

	switch {
	case f.Description == "" && typeDesc != "":
		f.Description = typeDesc + "\n" + signature
		if markdown {
			f.MarkdownDescription = typeDesc + "\n" + RenderType(t, true)
		}
	case f.Description != "":
		if markdown {
			base := f.MarkdownDescription
			if base == "" {
				base = f.Description
			}
			f.MarkdownDescription = base + "\n" + RenderType(t, true)
		}
		f.Description = f.Description + "\n" + signature
	default:
		f.Description = signature
		if markdown {
			f.MarkdownDescription = RenderType(t, true)
		}
	}
}

func join(description, text string) string {
	if description == "" {
		return text
	}
	return description + "\n" + text
}
