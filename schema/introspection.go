package schema

import (
	"encoding/json"
	"strings"

	"github.com/chirino/graphql-jsonschema/errors"
	pe "github.com/pkg/errors"
	"github.com/tidwall/gjson"
)

type typeRef struct {
	Kind   string   `json:"kind"`
	Name   string   `json:"name"`
	OfType *typeRef `json:"ofType"`
}

// Arguments provided to Fields or Directives and the input fields of an
// InputObject are represented as Input Values which describe their type and
// optionally a default value.
type inputValue struct {
	Name         string  `json:"name"`
	Description  *string `json:"description"`
	Type         typeRef `json:"type"`
	DefaultValue *string `json:"defaultValue"`
}

type enumValue struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

type fullType struct {
	Kind        *string      `json:"kind"`
	Name        string       `json:"name"`
	Description *string      `json:"description"`
	InputFields []inputValue `json:"inputFields"`
	EnumValues  []enumValue  `json:"enumValues"`
}

// IntrospectionQuery fetches everything ParseIntrospection needs from a running service.
const IntrospectionQuery = `
 query IntrospectionQuery {
   __schema {
     types {
       kind
       name
       description
       inputFields {
         ...InputValue
       }
       enumValues(includeDeprecated: true) {
         name
         description
       }
     }
   }
 }
 fragment InputValue on __InputValue {
   name
   description
   type { ...TypeRef }
   defaultValue
 }
 fragment TypeRef on __Type {
   kind
   name
   ofType {
     kind
     name
     ofType {
       kind
       name
       ofType {
         kind
         name
         ofType {
           kind
           name
           ofType {
             kind
             name
             ofType {
               kind
               name
               ofType {
                 kind
                 name
               }
             }
           }
         }
       }
     }
   }
 }
`

// ParseIntrospection adds the input types found in an introspection result to the schema.
// Both the full response (`{"data":{"__schema":...}}`) and the bare `{"__schema":...}`
// object are accepted.
func (s *Schema) ParseIntrospection(introspection []byte) error {
	if !gjson.ValidBytes(introspection) {
		return errors.Errorf("introspection result is not valid JSON")
	}
	types := gjson.GetBytes(introspection, "data.__schema.types")
	if !types.Exists() {
		types = gjson.GetBytes(introspection, "__schema.types")
	}
	if !types.IsArray() {
		return errors.Errorf("introspection result does not contain __schema.types")
	}

	data := []fullType{}
	if err := json.Unmarshal([]byte(types.Raw), &data); err != nil {
		return pe.Wrap(err, "decoding introspection types")
	}

	for _, t := range data {
		if t.Kind == nil {
			return errors.Errorf("kind not set for type: %s", t.Name)
		}
		// skip over the meta types and the built in scalars
		if strings.HasPrefix(t.Name, "__") || isBuiltinScalar(t.Name) {
			continue
		}
		switch *t.Kind {
		case "SCALAR":
			s.Types[t.Name] = &Scalar{
				Name: t.Name,
				Desc: desc(t.Description),
			}
		case "ENUM":
			s.Types[t.Name] = &Enum{
				Name:   t.Name,
				Desc:   desc(t.Description),
				Values: toEnumValues(t.EnumValues),
			}
		case "INPUT_OBJECT":
			fields, err := toIntrospectionInputFields(t.Name, t.InputFields)
			if err != nil {
				return err
			}
			s.Types[t.Name] = &InputObject{
				Name:   t.Name,
				Desc:   desc(t.Description),
				Fields: fields,
			}
		case "OBJECT", "INTERFACE", "UNION":
		default:
			return errors.Errorf("invalid kind: %s", *t.Kind)
		}
	}
	return s.ResolveTypes()
}

func isBuiltinScalar(name string) bool {
	for _, t := range builtinScalars {
		if t.Name == name {
			return true
		}
	}
	return false
}

func toEnumValues(values []enumValue) []*EnumValue {
	r := []*EnumValue{}
	for _, v := range values {
		r = append(r, &EnumValue{
			Desc: desc(v.Description),
			Name: v.Name,
		})
	}
	return r
}

func toIntrospectionInputFields(typeName string, args []inputValue) (InputValueList, error) {
	rc := InputValueList{}
	for _, arg := range args {
		v := &InputValue{
			Desc: desc(arg.Description),
			Name: arg.Name,
			Type: toType(arg.Type),
		}
		if arg.DefaultValue != nil {
			value, err := ParseLiteral(*arg.DefaultValue)
			if err != nil {
				return nil, pe.Wrapf(err, "default value of %s.%s", typeName, arg.Name)
			}
			v.Default = value
			v.HasDefault = true
		}
		rc = append(rc, v)
	}
	return rc, nil
}

func toType(ref typeRef) Type {
	switch ref.Kind {
	case "LIST":
		if ref.OfType != nil {
			return &List{OfType: toType(*ref.OfType)}
		}
	case "NON_NULL":
		if ref.OfType != nil {
			return &NonNull{OfType: toType(*ref.OfType)}
		}
	}
	return &TypeName{Name: ref.Name}
}

func desc(description *string) string {
	if description == nil {
		return ""
	}
	return *description
}
