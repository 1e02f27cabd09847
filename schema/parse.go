package schema

import (
	"github.com/chirino/graphql-jsonschema/errors"
	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
)

// Parse the schema string. Scalar, enum and input object definitions are added to the
// schema; all other definitions are validated but otherwise ignored.
func (s *Schema) Parse(schemaString string) error {
	doc, err := gqlparser.LoadSchema(&ast.Source{Name: "schema", Input: schemaString})
	if err != nil {
		return errors.FromGQLError(err)
	}

	for _, def := range doc.Types {
		if def.BuiltIn {
			continue
		}
		switch def.Kind {
		case ast.Scalar:
			s.Types[def.Name] = &Scalar{
				Name: def.Name,
				Desc: def.Description,
			}
		case ast.Enum:
			values := make([]*EnumValue, 0, len(def.EnumValues))
			for _, v := range def.EnumValues {
				values = append(values, &EnumValue{
					Name: v.Name,
					Desc: v.Description,
				})
			}
			s.Types[def.Name] = &Enum{
				Name:   def.Name,
				Desc:   def.Description,
				Values: values,
			}
		case ast.InputObject:
			fields, err := toInputFields(def.Fields)
			if err != nil {
				return err
			}
			s.Types[def.Name] = &InputObject{
				Name:   def.Name,
				Desc:   def.Description,
				Fields: fields,
			}
		}
	}
	return s.ResolveTypes()
}

func toInputFields(fields ast.FieldList) (InputValueList, error) {
	result := make(InputValueList, 0, len(fields))
	for _, f := range fields {
		v := &InputValue{
			Name: f.Name,
			Desc: f.Description,
			Type: FromAST(f.Type),
			Loc:  location(f.Position),
		}
		if f.DefaultValue != nil {
			value, err := Evaluate(f.DefaultValue)
			if err != nil {
				return nil, err
			}
			v.Default = value
			v.HasDefault = true
		}
		result = append(result, v)
	}
	return result, nil
}

// FromAST converts a parsed type reference into an unresolved Type.
func FromAST(t *ast.Type) Type {
	var result Type
	if t.Elem != nil {
		result = &List{OfType: FromAST(t.Elem)}
	} else {
		result = &TypeName{Name: t.NamedType, Loc: location(t.Position)}
	}
	if t.NonNull {
		return &NonNull{OfType: result}
	}
	return result
}

func location(pos *ast.Position) errors.Location {
	if pos == nil {
		return errors.Location{}
	}
	return errors.Location{Line: pos.Line, Column: pos.Column}
}
