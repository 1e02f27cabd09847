package schema

import (
	"strconv"

	"github.com/chirino/graphql-jsonschema/errors"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"
)

// Evaluate converts a constant GraphQL literal into the JSON compatible value it denotes.
// Integers become int64, floats become float64, enum values become strings and input
// object literals become map[string]interface{}.
func Evaluate(v *ast.Value) (interface{}, error) {
	if v == nil {
		return nil, nil
	}
	switch v.Kind {
	case ast.Variable:
		return nil, literalError(v, "unexpected variable $%s in constant value", v.Raw)
	case ast.IntValue:
		value, err := strconv.ParseInt(v.Raw, 10, 64)
		if err != nil {
			return nil, literalError(v, "invalid int literal %s", v.Raw)
		}
		return value, nil
	case ast.FloatValue:
		value, err := strconv.ParseFloat(v.Raw, 64)
		if err != nil {
			return nil, literalError(v, "invalid float literal %s", v.Raw)
		}
		return value, nil
	case ast.StringValue, ast.BlockValue, ast.EnumValue:
		return v.Raw, nil
	case ast.BooleanValue:
		return v.Raw == "true", nil
	case ast.NullValue:
		return nil, nil
	case ast.ListValue:
		list := make([]interface{}, 0, len(v.Children))
		for _, child := range v.Children {
			value, err := Evaluate(child.Value)
			if err != nil {
				return nil, err
			}
			list = append(list, value)
		}
		return list, nil
	case ast.ObjectValue:
		obj := make(map[string]interface{}, len(v.Children))
		for _, child := range v.Children {
			value, err := Evaluate(child.Value)
			if err != nil {
				return nil, err
			}
			obj[child.Name] = value
		}
		return obj, nil
	default:
		return nil, literalError(v, "invalid literal %s", v.Raw)
	}
}

// ParseLiteral parses and evaluates a literal written in GraphQL syntax, as found in the
// defaultValue field of an introspection result.
func ParseLiteral(text string) (interface{}, error) {
	doc, err := parser.ParseSchema(&ast.Source{
		Name:  "literal",
		Input: "input Literal { value: Literal = " + text + " }",
	})
	if err != nil {
		qe := errors.FromGQLError(err)
		qe.Message = "invalid literal " + strconv.Quote(text) + ": " + qe.Message
		return nil, qe
	}
	if len(doc.Definitions) != 1 || len(doc.Definitions[0].Fields) != 1 {
		return nil, errors.Errorf("invalid literal %q", text)
	}
	return Evaluate(doc.Definitions[0].Fields[0].DefaultValue)
}

func literalError(v *ast.Value, format string, args ...interface{}) *errors.QueryError {
	err := errors.Errorf(format, args...)
	if v.Position != nil {
		err.Locations = []errors.Location{{Line: v.Position.Line, Column: v.Position.Column}}
	}
	return err
}
