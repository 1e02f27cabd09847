package schema

import (
	"github.com/chirino/graphql-jsonschema/errors"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// http://facebook.github.io/graphql/draft/#InputValueDefinition
type InputValue struct {
	Name string
	Type Type
	Desc string
	// Default holds the evaluated default literal when HasDefault is set. A declared
	// `= null` default leaves Default nil.
	Default    interface{}
	HasDefault bool
	Loc        errors.Location
}

type InputValueList []*InputValue

func (l InputValueList) Get(name string) *InputValue {
	for _, v := range l {
		if v.Name == name {
			return v
		}
	}
	return nil
}

// VariableMap is the ordered set of variables declared by an operation. Iteration follows
// insertion order.
type VariableMap struct {
	values *orderedmap.OrderedMap[string, *InputValue]
}

func NewVariableMap() *VariableMap {
	return &VariableMap{
		values: orderedmap.New[string, *InputValue](),
	}
}

// Set adds the variable, replacing an existing one with the same name in place.
func (m *VariableMap) Set(v *InputValue) {
	m.values.Set(v.Name, v)
}

func (m *VariableMap) Get(name string) *InputValue {
	v, _ := m.values.Get(name)
	return v
}

func (m *VariableMap) Len() int {
	if m == nil {
		return 0
	}
	return m.values.Len()
}

// Each visits the variables in order.
func (m *VariableMap) Each(f func(v *InputValue)) {
	if m == nil {
		return
	}
	for pair := m.values.Oldest(); pair != nil; pair = pair.Next() {
		f(pair.Value)
	}
}

func (m *VariableMap) Names() []string {
	names := make([]string, 0, m.Len())
	m.Each(func(v *InputValue) {
		names = append(names, v.Name)
	})
	return names
}
