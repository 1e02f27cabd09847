package jsonschema

import (
	"github.com/chirino/graphql-jsonschema/schema"
)

// RenderType returns the GraphQL notation of a type reference, e.g. `[String!]!`. In
// markdown mode the result is fenced as a graphql code block.
func RenderType(t schema.Type, markdown bool) string {
	sig := renderType(t)
	if markdown {
		return "```graphql\n" + sig + "\n```"
	}
	return sig
}

func renderType(t schema.Type) string {
	switch t := t.(type) {
	case *schema.NonNull:
		return renderType(t.OfType) + "!"
	case *schema.List:
		return "[" + renderType(t.OfType) + "]"
	case schema.NamedType:
		return t.TypeName()
	case *schema.TypeName:
		return t.Name
	default:
		return ""
	}
}
