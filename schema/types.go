package schema

import (
	"github.com/chirino/graphql-jsonschema/errors"
)

func DeepestType(t Type) Type {
	switch t := (t).(type) {
	case *NonNull:
		return DeepestType(t.OfType)
	case *List:
		return DeepestType(t.OfType)
	}
	return t
}

func OfType(t Type) Type {
	switch t := (t).(type) {
	case *NonNull:
		return t.OfType
	case *List:
		return t.OfType
	default:
		return nil
	}
}

// Unwrap strips a single NonNull wrapper, if present.
func Unwrap(t Type) Type {
	if nn, ok := t.(*NonNull); ok {
		return nn.OfType
	}
	return t
}

type Resolver func(name string) Type

func ResolveType(t Type, resolver Resolver) (Type, *errors.QueryError) {
	switch t := t.(type) {
	case *List:
		ofType, err := ResolveType(t.OfType, resolver)
		if err != nil {
			return nil, err
		}
		return &List{OfType: ofType}, nil
	case *NonNull:
		ofType, err := ResolveType(t.OfType, resolver)
		if err != nil {
			return nil, err
		}
		return &NonNull{OfType: ofType}, nil
	case *TypeName:
		refT := resolver(t.Name)
		if refT == nil {
			err := errors.Errorf("Unknown type %q.", t.Name)
			err.Rule = "KnownTypeNames"
			if t.Loc.Line > 0 {
				err.Locations = []errors.Location{t.Loc}
			}
			return nil, err
		}
		return refT, nil
	default:
		return t, nil
	}
}
