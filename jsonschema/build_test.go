package jsonschema_test

import (
	"encoding/json"
	"testing"

	"github.com/chirino/graphql-jsonschema/jsonschema"
	"github.com/chirino/graphql-jsonschema/query"
	"github.com/chirino/graphql-jsonschema/schema"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSchema = `
"Sort order"
enum Order {
  ASC
  DESC
}

scalar JSON
scalar Date

"A page request"
input Page {
  size: Int = 10
  "Sort direction"
  order: Order!
}

input Point {
  x: Int!
  y: Int!
}

input Filter {
  self: Filter
  and: [Filter!]
}

input A {
  b: B
}

input B {
  a: A
}
`

func variables(t *testing.T, sdl string, q string) *schema.VariableMap {
	s := schema.New()
	require.NoError(t, s.Parse(sdl))
	doc, err := query.Parse(q)
	require.NoError(t, err)
	op, err := doc.GetOperation("")
	require.NoError(t, err)
	vars, err := op.Variables(s)
	require.NoError(t, err)
	return vars
}

func build(t *testing.T, q string, options jsonschema.Options) *jsonschema.Document {
	return jsonschema.BuildSchema(variables(t, testSchema, q), options)
}

func marshal(t *testing.T, value interface{}) string {
	data, err := json.Marshal(value)
	require.NoError(t, err)
	return string(data)
}

func TestNonNullID(t *testing.T) {
	doc := build(t, `query ($id: ID!) { node }`, jsonschema.Options{})
	assert.Equal(t,
		`{"$schema":"https://json-schema.org/draft/2020-12/schema","type":"object","properties":{"id":{"type":"string","description":"ID!"}},"required":["id"]}`,
		marshal(t, doc))
}

func TestNullableList(t *testing.T) {
	doc := build(t, `query ($tags: [String]) { node }`, jsonschema.Options{})
	assert.Equal(t,
		`{"type":["array","null"],"items":{"type":["string","null"],"description":"String"},"description":"[String]"}`,
		marshal(t, doc.Property("tags")))
	assert.Equal(t, []string{}, doc.Required)
}

func TestNonNullListOfInputObjects(t *testing.T) {
	doc := build(t, `query ($points: [Point!]!) { node }`, jsonschema.Options{})
	assert.Equal(t,
		`{"type":"array","items":{"$ref":"#/definitions/Point"},"description":"[Point!]!"}`,
		marshal(t, doc.Property("points")))
	assert.Equal(t,
		`{"type":"object","properties":{"x":{"type":"integer","description":"Int!"},"y":{"type":"integer","description":"Int!"}},"required":["x","y"],"description":"Point"}`,
		marshal(t, doc.Definitions.Get("Point")))
	assert.Equal(t, []string{"points"}, doc.Required)
}

func TestSelfReferencingInputObject(t *testing.T) {
	doc := build(t, `query ($f: Filter) { node }`, jsonschema.Options{})
	assert.Equal(t, []string{"Filter"}, doc.Definitions.Names())

	filter := doc.Definitions.Get("Filter")
	self, _ := filter.Properties.Get("self")
	assert.Equal(t, `[{"$ref":"#/definitions/Filter"},{"type":"null"}]`, marshal(t, self.OneOf))
	and, _ := filter.Properties.Get("and")
	assert.Equal(t, `{"type":["array","null"],"items":{"$ref":"#/definitions/Filter"},"description":"[Filter!]"}`, marshal(t, and))
	assert.Equal(t, []string{}, filter.Required)
}

func TestMutuallyRecursiveInputObjects(t *testing.T) {
	doc := build(t, `query ($a: A, $b: B!, $as: [A]) { node }`, jsonschema.Options{})
	assert.Equal(t, []string{"B", "A"}, doc.Definitions.Names())

	assert.Equal(t, `{"$ref":"#/definitions/B","description":"B!"}`, marshal(t, doc.Property("b")))
	assert.Equal(t,
		`{"type":["array","null"],"items":{"oneOf":[{"$ref":"#/definitions/A"},{"type":"null"}]},"description":"[A]"}`,
		marshal(t, doc.Property("as")))

	a, _ := doc.Definitions.Get("B").Properties.Get("a")
	assert.Equal(t, `{"oneOf":[{"$ref":"#/definitions/A"},{"type":"null"}],"description":"A"}`, marshal(t, a))
	b, _ := doc.Definitions.Get("A").Properties.Get("b")
	assert.Equal(t, `{"oneOf":[{"$ref":"#/definitions/B"},{"type":"null"}],"description":"B"}`, marshal(t, b))
}

func TestCustomScalarWithoutOverride(t *testing.T) {
	doc := build(t, `query ($j: JSON, $k: JSON!) { node }`, jsonschema.Options{})
	assert.Equal(t,
		`{"type":["string","number","boolean","integer","null"],"description":"JSON"}`,
		marshal(t, doc.Property("j")))
	assert.Equal(t,
		`{"type":["string","number","boolean","integer"],"description":"JSON!"}`,
		marshal(t, doc.Property("k")))
}

func TestCustomScalarOverrides(t *testing.T) {
	overrides, err := jsonschema.ParseScalarSchemas([]byte(`
Date:
  type: string
  format: date
JSON:
  oneOf:
  - type: object
  - type: array
Order:
  minimum: 0
`))
	require.NoError(t, err)
	options := jsonschema.Options{CustomScalarSchemas: overrides}

	doc := build(t, `query ($d: Date, $e: Date!, $j: JSON) { node }`, options)
	assert.Equal(t,
		`{"type":["string","null"],"description":"Date","format":"date"}`,
		marshal(t, doc.Property("d")))
	assert.Equal(t,
		`{"type":"string","description":"Date!","format":"date"}`,
		marshal(t, doc.Property("e")))
	assert.Equal(t,
		`{"oneOf":[{"type":"object"},{"type":"array"},{"type":"null"}],"description":"JSON"}`,
		marshal(t, doc.Property("j")))

	// the overrides are copied, never modified
	assert.Equal(t, `{"type":"string","format":"date"}`, marshal(t, overrides["Date"]))
	assert.Len(t, overrides["JSON"].OneOf, 2)
}

func TestCustomScalarOverrideWrappedInOneOf(t *testing.T) {
	vars := variables(t, `scalar Amount`, `query ($amount: Amount) { node }`)
	doc := jsonschema.BuildSchema(vars, jsonschema.Options{
		CustomScalarSchemas: map[string]*jsonschema.Fragment{
			"Amount": {Extra: map[string]interface{}{"minimum": 0}},
		},
	})
	assert.Equal(t,
		`{"oneOf":[{"minimum":0},{"type":"null"}],"description":"Amount"}`,
		marshal(t, doc.Property("amount")))
}

func TestEnums(t *testing.T) {
	doc := build(t, `query ($o: Order, $p: Order!) { node }`, jsonschema.Options{})
	assert.Equal(t,
		`{"enum":["ASC","DESC",null],"description":"Sort order\nOrder"}`,
		marshal(t, doc.Property("o")))
	assert.Equal(t,
		`{"enum":["ASC","DESC"],"description":"Sort order\nOrder!"}`,
		marshal(t, doc.Property("p")))
	assert.Equal(t, []string{"p"}, doc.Required)
}

func TestDefaults(t *testing.T) {
	doc := build(t, `query ($n: Int = 3, $page: Page = {size: 5, order: DESC}, $ids: [ID!] = []) { node }`, jsonschema.Options{})
	assert.Equal(t,
		`{"type":["integer","null"],"default":3,"description":"Int"}`,
		marshal(t, doc.Property("n")))
	assert.Equal(t,
		`{"oneOf":[{"$ref":"#/definitions/Page"},{"type":"null"}],"default":{"order":"DESC","size":5},"description":"A page request\nPage"}`,
		marshal(t, doc.Property("page")))
	assert.Equal(t,
		`{"type":["array","null"],"items":{"type":"string","description":"ID!"},"default":[],"description":"[ID!]"}`,
		marshal(t, doc.Property("ids")))
	assert.Equal(t,
		`{"type":"object","properties":{"size":{"type":["integer","null"],"default":10,"description":"Int"},"order":{"enum":["ASC","DESC"],"description":"Sort direction\nOrder!"}},"required":["order"],"description":"A page request\nPage"}`,
		marshal(t, doc.Definitions.Get("Page")))
}

func TestMarkdownDescriptions(t *testing.T) {
	doc := build(t, `query ($id: ID!, $page: Page) { node }`, jsonschema.Options{UseMarkdownDescription: true})
	assert.Equal(t,
		"{\"type\":\"string\",\"description\":\"ID!\",\"markdownDescription\":\"```graphql\\nID!\\n```\"}",
		marshal(t, doc.Property("id")))

	page := doc.Definitions.Get("Page")
	assert.Equal(t, "A page request\nPage", page.Description)
	assert.Equal(t, "A page request\n```graphql\nPage\n```", page.MarkdownDescription)
	order, _ := page.Properties.Get("order")
	assert.Equal(t, "Sort direction\n```graphql\nOrder!\n```", order.MarkdownDescription)

	// every description gets a markdown twin
	var walk func(v interface{})
	walk = func(v interface{}) {
		switch v := v.(type) {
		case map[string]interface{}:
			_, hasDesc := v["description"]
			_, hasMarkdown := v["markdownDescription"]
			assert.Equal(t, hasDesc, hasMarkdown, "%v", v)
			for _, child := range v {
				walk(child)
			}
		case []interface{}:
			for _, child := range v {
				walk(child)
			}
		}
	}
	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(marshal(t, doc)), &decoded))
	walk(decoded["properties"])
	walk(decoded["definitions"])
}

func TestEmptyVariables(t *testing.T) {
	doc := jsonschema.BuildSchema(schema.NewVariableMap(), jsonschema.Options{})
	assert.Equal(t,
		`{"$schema":"https://json-schema.org/draft/2020-12/schema","type":"object","properties":{},"required":[]}`,
		marshal(t, doc))
}

func TestBuiltinScalarNullability(t *testing.T) {
	expected := map[string]string{
		"Int":      "integer",
		"Float":    "number",
		"String":   "string",
		"ID":       "string",
		"Boolean":  "boolean",
		"DateTime": "string",
	}
	for name, primitive := range expected {
		t.Run(name, func(t *testing.T) {
			vars := schema.NewVariableMap()
			scalar := schema.New().Resolve(name)
			vars.Set(&schema.InputValue{Name: "nullable", Type: scalar})
			vars.Set(&schema.InputValue{Name: "required", Type: &schema.NonNull{OfType: scalar}})
			doc := jsonschema.BuildSchema(vars, jsonschema.Options{})

			nullable := doc.Property("nullable")
			assert.Equal(t, []string{primitive, "null"}, nullable.Type.Names)
			assert.True(t, nullable.Type.List)

			required := doc.Property("required")
			assert.Equal(t, []string{primitive}, required.Type.Names)
			assert.False(t, required.Type.List)
			assert.Equal(t, []string{"required"}, doc.Required)
		})
	}
}

func TestReferencesResolve(t *testing.T) {
	doc := build(t, `query ($a: A, $f: [Filter], $p: Point!, $page: Page) { node }`, jsonschema.Options{})
	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(marshal(t, doc)), &decoded))
	definitions := decoded["definitions"].(map[string]interface{})

	refs := map[string]bool{}
	var walk func(v interface{})
	walk = func(v interface{}) {
		switch v := v.(type) {
		case map[string]interface{}:
			if ref, ok := v["$ref"].(string); ok {
				refs[ref] = true
			}
			for _, child := range v {
				walk(child)
			}
		case []interface{}:
			for _, child := range v {
				walk(child)
			}
		}
	}
	walk(decoded)

	require.NotEmpty(t, refs)
	for ref := range refs {
		name := ref[len(jsonschema.DefinitionsPrefix):]
		assert.Contains(t, definitions, name)
	}
	assert.ElementsMatch(t, []string{"A", "B", "Filter", "Point", "Page"}, doc.Definitions.Names())
}

func TestBuildIsIdempotent(t *testing.T) {
	vars := variables(t, testSchema, `query ($a: A, $f: [Filter], $p: Point!, $page: Page = {order: ASC}, $j: JSON) { node }`)
	options := jsonschema.Options{UseMarkdownDescription: true}
	first := marshal(t, jsonschema.BuildSchema(vars, options))
	second := marshal(t, jsonschema.BuildSchema(vars, options))
	assert.Equal(t, first, second)
}

func TestGolden(t *testing.T) {
	doc := build(t, `query Search($term: String!, $page: Page, $meta: JSON, $tags: [String!]) { search }`, jsonschema.Options{})
	data, err := doc.MarshalIndent("", "  ")
	require.NoError(t, err)
	g := goldie.New(t)
	g.Assert(t, "search_variables", data)
}
