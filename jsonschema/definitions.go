package jsonschema

import (
	"encoding/json"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// DefinitionsPrefix is the JSON pointer prefix used by references to named definitions.
const DefinitionsPrefix = "#/definitions/"

// Definitions is an append only, insertion ordered set of named object schemas.
type Definitions struct {
	schemas *orderedmap.OrderedMap[string, *Fragment]
}

func NewDefinitions() *Definitions {
	return &Definitions{
		schemas: orderedmap.New[string, *Fragment](),
	}
}

// Add registers the schema under name. An existing entry is never replaced; Add reports
// whether the schema was stored.
func (d *Definitions) Add(name string, schema *Fragment) bool {
	if _, exists := d.schemas.Get(name); exists {
		return false
	}
	d.schemas.Set(name, schema)
	return true
}

// Merge adds every entry of other that is not already present.
func (d *Definitions) Merge(other *Definitions) {
	if other == nil {
		return
	}
	for pair := other.schemas.Oldest(); pair != nil; pair = pair.Next() {
		d.Add(pair.Key, pair.Value)
	}
}

func (d *Definitions) Get(name string) *Fragment {
	if d == nil {
		return nil
	}
	schema, _ := d.schemas.Get(name)
	return schema
}

func (d *Definitions) Len() int {
	if d == nil {
		return 0
	}
	return d.schemas.Len()
}

// Names returns the definition names in registration order.
func (d *Definitions) Names() []string {
	names := make([]string, 0, d.Len())
	if d == nil {
		return names
	}
	for pair := d.schemas.Oldest(); pair != nil; pair = pair.Next() {
		names = append(names, pair.Key)
	}
	return names
}

func (d *Definitions) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.schemas)
}

func (d *Definitions) UnmarshalJSON(data []byte) error {
	d.schemas = orderedmap.New[string, *Fragment]()
	return json.Unmarshal(data, d.schemas)
}

// visited is the write once set of input object names whose definition has been claimed
// during one synthesis run.
type visited map[string]struct{}

// mark claims name and reports whether this call was the first to do so.
func (v visited) mark(name string) bool {
	if _, ok := v[name]; ok {
		return false
	}
	v[name] = struct{}{}
	return true
}
