package jsonschema

import (
	"bytes"
	"encoding/json"
	"sort"

	"github.com/mitchellh/copystructure"
	pe "github.com/pkg/errors"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Properties maps property names to their schemas, keeping insertion order.
type Properties = orderedmap.OrderedMap[string, *Fragment]

func NewProperties() *Properties {
	return orderedmap.New[string, *Fragment]()
}

// Types is the value of the "type" keyword. It encodes as a single string unless List is
// set, in which case it encodes as an array.
type Types struct {
	Names []string
	List  bool
}

// Type returns the single valued form of the "type" keyword.
func Type(name string) *Types {
	return &Types{Names: []string{name}}
}

// TypeList returns the array form of the "type" keyword.
func TypeList(names ...string) *Types {
	return &Types{Names: append([]string{}, names...), List: true}
}

// AddNull turns a single type into a [type, "null"] list, or appends "null" to a list.
func (t *Types) AddNull() {
	t.Names = append(t.Names, "null")
	t.List = true
}

func (t *Types) Contains(name string) bool {
	for _, n := range t.Names {
		if n == name {
			return true
		}
	}
	return false
}

func (t *Types) MarshalJSON() ([]byte, error) {
	if !t.List && len(t.Names) == 1 {
		return json.Marshal(t.Names[0])
	}
	if t.Names == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(t.Names)
}

func (t *Types) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		t.List = true
		return json.Unmarshal(data, &t.Names)
	}
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	t.Names = []string{name}
	t.List = false
	return nil
}

func (t *Types) DeepCopy() *Types {
	if t == nil {
		return nil
	}
	return &Types{
		Names: append([]string{}, t.Names...),
		List:  t.List,
	}
}

// Fragment is the schema of a single type occurrence. Keywords the synthesizer does not
// produce itself, such as those found in custom scalar overrides, are kept in Extra.
type Fragment struct {
	Ref                 string
	Type                *Types
	Enum                []interface{}
	Items               *Fragment
	OneOf               []*Fragment
	Properties          *Properties
	Required            []string
	Default             interface{}
	HasDefault          bool
	Description         string
	MarkdownDescription string
	Extra               map[string]interface{}
}

// Null is the schema that only accepts null.
func Null() *Fragment {
	return &Fragment{Type: Type("null")}
}

// RefTo returns a reference to the named definition.
func RefTo(name string) *Fragment {
	return &Fragment{Ref: DefinitionsPrefix + name}
}

// IsNull reports whether f is exactly the null-only schema.
func (f *Fragment) IsNull() bool {
	return f.Type != nil && !f.Type.List && len(f.Type.Names) == 1 && f.Type.Names[0] == "null" &&
		f.Ref == "" && f.Enum == nil && f.Items == nil && f.OneOf == nil && f.Properties == nil
}

// SetDefault stores a default value, a nil value is a declared null default.
func (f *Fragment) SetDefault(value interface{}) {
	f.Default = value
	f.HasDefault = true
}

var knownKeys = map[string]bool{
	"$ref": true, "type": true, "enum": true, "items": true, "oneOf": true,
	"properties": true, "required": true, "default": true, "description": true,
	"markdownDescription": true,
}

func (f *Fragment) MarshalJSON() ([]byte, error) {
	buf := &bytes.Buffer{}
	buf.WriteByte('{')
	first := true
	field := func(key string, value interface{}) error {
		data, err := json.Marshal(value)
		if err != nil {
			return pe.Wrapf(err, "encoding %s", key)
		}
		if !first {
			buf.WriteByte(',')
		}
		first = false
		k, _ := json.Marshal(key)
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(data)
		return nil
	}

	var err error
	check := func(e error) {
		if err == nil {
			err = e
		}
	}
	if f.Ref != "" {
		check(field("$ref", f.Ref))
	}
	if f.Type != nil {
		check(field("type", f.Type))
	}
	if f.Enum != nil {
		check(field("enum", f.Enum))
	}
	if f.Items != nil {
		check(field("items", f.Items))
	}
	if f.OneOf != nil {
		check(field("oneOf", f.OneOf))
	}
	if f.Properties != nil {
		check(field("properties", f.Properties))
	}
	if f.Required != nil {
		check(field("required", f.Required))
	}
	if f.HasDefault {
		check(field("default", f.Default))
	}
	if f.Description != "" {
		check(field("description", f.Description))
	}
	if f.MarkdownDescription != "" {
		check(field("markdownDescription", f.MarkdownDescription))
	}
	if len(f.Extra) > 0 {
		keys := make([]string, 0, len(f.Extra))
		for k := range f.Extra {
			if !knownKeys[k] {
				keys = append(keys, k)
			}
		}
		sort.Strings(keys)
		for _, k := range keys {
			check(field(k, f.Extra[k]))
		}
	}
	if err != nil {
		return nil, err
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (f *Fragment) UnmarshalJSON(data []byte) error {
	raw := map[string]json.RawMessage{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*f = Fragment{}
	for key, value := range raw {
		var err error
		switch key {
		case "$ref":
			err = json.Unmarshal(value, &f.Ref)
		case "type":
			f.Type = &Types{}
			err = json.Unmarshal(value, f.Type)
		case "enum":
			err = json.Unmarshal(value, &f.Enum)
		case "items":
			f.Items = &Fragment{}
			err = json.Unmarshal(value, f.Items)
		case "oneOf":
			err = json.Unmarshal(value, &f.OneOf)
		case "properties":
			f.Properties = NewProperties()
			err = json.Unmarshal(value, f.Properties)
		case "required":
			err = json.Unmarshal(value, &f.Required)
		case "default":
			f.HasDefault = true
			err = json.Unmarshal(value, &f.Default)
		case "description":
			err = json.Unmarshal(value, &f.Description)
		case "markdownDescription":
			err = json.Unmarshal(value, &f.MarkdownDescription)
		default:
			var v interface{}
			err = json.Unmarshal(value, &v)
			if f.Extra == nil {
				f.Extra = map[string]interface{}{}
			}
			f.Extra[key] = v
		}
		if err != nil {
			return pe.Wrapf(err, "decoding %s", key)
		}
	}
	return nil
}

func (from *Fragment) DeepCopy() *Fragment {
	if from == nil {
		return nil
	}
	to := *from
	to.Type = from.Type.DeepCopy()
	to.Items = from.Items.DeepCopy()
	if from.Enum != nil {
		to.Enum = deepCopyValue(from.Enum).([]interface{})
	}
	if from.OneOf != nil {
		to.OneOf = make([]*Fragment, len(from.OneOf))
		for i, v := range from.OneOf {
			to.OneOf[i] = v.DeepCopy()
		}
	}
	if from.Properties != nil {
		to.Properties = NewProperties()
		for pair := from.Properties.Oldest(); pair != nil; pair = pair.Next() {
			to.Properties.Set(pair.Key, pair.Value.DeepCopy())
		}
	}
	if from.Required != nil {
		to.Required = append([]string{}, from.Required...)
	}
	to.Default = deepCopyValue(from.Default)
	if from.Extra != nil {
		to.Extra = deepCopyValue(from.Extra).(map[string]interface{})
	}
	return &to
}

func deepCopyValue(v interface{}) interface{} {
	if v == nil {
		return nil
	}
	c, err := copystructure.Copy(v)
	if err != nil {
		return v
	}
	return c
}
