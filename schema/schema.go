package schema

import (
	"sort"

	"github.com/chirino/graphql-jsonschema/errors"
)

// Schema holds the input side of a GraphQL service's type system: the scalar, enum and
// input object types that operation variables may refer to. Output types are not tracked.
//
// http://facebook.github.io/graphql/draft/#sec-Schema
type Schema struct {
	// Types are the named input types known to the schema, keyed by name.
	//
	// http://facebook.github.io/graphql/draft/#sec-Types
	Types map[string]NamedType
}

// Type is a node of a type reference: one of *Scalar, *Enum, *InputObject, *List, *NonNull.
// *TypeName only appears before resolution.
type Type interface {
	Kind() string
	String() string
}

// List represents a list wrapper around another type.
//
// http://facebook.github.io/graphql/draft/#sec-Type-System.List
type List struct {
	OfType Type
}

// NonNull marks the wrapped type as required.
//
// http://facebook.github.io/graphql/draft/#sec-Type-System.Non-Null
type NonNull struct {
	OfType Type
}

// TypeName is an unresolved reference to a named type.
type TypeName struct {
	Name string
	Loc  errors.Location
}

// NamedType represents a type with a name.
//
// http://facebook.github.io/graphql/draft/#NamedType
type NamedType interface {
	Type
	TypeName() string
	Description() string
}

// Scalar types represent primitive leaf values (e.g. a string or an integer) in a GraphQL type
// system.
//
// http://facebook.github.io/graphql/draft/#sec-Scalars
type Scalar struct {
	Name string
	Desc string
}

// Enum types describe a set of possible values.
//
// http://facebook.github.io/graphql/draft/#sec-Enums
type Enum struct {
	Name   string
	Values []*EnumValue
	Desc   string
}

// EnumValue types are unique values that may be serialized as a string: the name of the
// represented value.
//
// http://facebook.github.io/graphql/draft/#EnumValueDefinition
type EnumValue struct {
	Name string
	Desc string
}

// InputObject types define a set of input fields; the input fields are either scalars, enums, or
// other input objects.
//
// http://facebook.github.io/graphql/draft/#sec-Input-Objects
type InputObject struct {
	Name   string
	Desc   string
	Fields InputValueList
}

func (*List) Kind() string        { return "LIST" }
func (*NonNull) Kind() string     { return "NON_NULL" }
func (*TypeName) Kind() string    { panic("TypeName needs to be resolved to actual type") }
func (*Scalar) Kind() string      { return "SCALAR" }
func (*Enum) Kind() string        { return "ENUM" }
func (*InputObject) Kind() string { return "INPUT_OBJECT" }

func (t *List) String() string        { return "[" + t.OfType.String() + "]" }
func (t *NonNull) String() string     { return t.OfType.String() + "!" }
func (t *TypeName) String() string    { return t.Name }
func (t *Scalar) String() string      { return t.Name }
func (t *Enum) String() string        { return t.Name }
func (t *InputObject) String() string { return t.Name }

func (t *Scalar) TypeName() string      { return t.Name }
func (t *Enum) TypeName() string        { return t.Name }
func (t *InputObject) TypeName() string { return t.Name }

func (t *Scalar) Description() string      { return t.Desc }
func (t *Enum) Description() string        { return t.Desc }
func (t *InputObject) Description() string { return t.Desc }

// ValueNames returns the enum's value names in declaration order.
func (t *Enum) ValueNames() []string {
	names := make([]string, len(t.Values))
	for i, v := range t.Values {
		names[i] = v.Name
	}
	return names
}

var builtinScalars = []*Scalar{
	{Name: "Int", Desc: "The `Int` scalar type represents non-fractional signed whole numeric values. Int can represent values between -(2^31) and 2^31 - 1."},
	{Name: "Float", Desc: "The `Float` scalar type represents signed double-precision fractional values as specified by [IEEE 754](http://en.wikipedia.org/wiki/IEEE_floating_point)."},
	{Name: "String", Desc: "The `String` scalar type represents textual data, represented as UTF-8 character sequences. The String type is most often used by GraphQL to represent free-form human-readable text."},
	{Name: "Boolean", Desc: "The `Boolean` scalar type represents `true` or `false`."},
	{Name: "ID", Desc: "The `ID` scalar type represents a unique identifier, often used to refetch an object or as key for a cache. The ID type appears in a JSON response as a String; however, it is not intended to be human-readable. When expected as an input type, any string (such as `4`) or integer (such as `4` or `-4`) input value will be accepted as an ID."},
	{Name: "DateTime", Desc: "The `DateTime` scalar type represents a date and time encoded as an RFC 3339 string."},
}

// New initializes an instance of Schema holding the built in scalars.
func New() *Schema {
	s := &Schema{
		Types: make(map[string]NamedType),
	}
	for _, t := range builtinScalars {
		scalar := *t
		s.Types[t.Name] = &scalar
	}
	return s
}

// Resolve a named type in the schema by its name.
func (s *Schema) Resolve(name string) Type {
	t, ok := s.Types[name]
	if !ok {
		return nil
	}
	return t
}

// TypeNames returns the sorted names of all the types in the schema.
func (s *Schema) TypeNames() []string {
	names := make([]string, 0, len(s.Types))
	for name := range s.Types {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ResolveTypes replaces every TypeName reference held by an input object field with the
// type it names.
func (s *Schema) ResolveTypes() error {
	var errs []error
	for _, name := range s.TypeNames() {
		if t, ok := s.Types[name].(*InputObject); ok {
			if err := resolveInputValues(s, t.Fields); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Multi(errs...)
}

func resolveInputValues(s *Schema, values InputValueList) error {
	for _, v := range values {
		t, err := ResolveType(v.Type, s.Resolve)
		if err != nil {
			return err
		}
		v.Type = t
	}
	return nil
}
