package openapi_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/chirino/graphql-jsonschema/jsonschema"
	"github.com/chirino/graphql-jsonschema/openapi"
	"github.com/chirino/graphql-jsonschema/query"
	"github.com/chirino/graphql-jsonschema/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSchema = `
enum Color { RED GREEN }
scalar JSON
input Filter {
  "Nested filter"
  self: Filter
  color: Color = RED
  tags: [String!]
}
`

func document(t *testing.T, q string, options jsonschema.Options) *jsonschema.Document {
	s := schema.New()
	require.NoError(t, s.Parse(testSchema))
	doc, err := query.Parse(q)
	require.NoError(t, err)
	op, err := doc.GetOperation("")
	require.NoError(t, err)
	vars, err := op.Variables(s)
	require.NoError(t, err)
	return jsonschema.BuildSchema(vars, options)
}

func TestFromDocument(t *testing.T) {
	doc := document(t, `query ($id: ID!, $count: Int, $color: Color, $filter: Filter, $req: Filter!, $any: JSON) { a }`, jsonschema.Options{})
	s := openapi.FromDocument(doc)

	assert.Equal(t, "object", s.Type)
	assert.Equal(t, []string{"id", "req"}, s.Required)

	id := s.Properties["id"].Value
	assert.Equal(t, "string", id.Type)
	assert.False(t, id.Nullable)

	count := s.Properties["count"].Value
	assert.Equal(t, "integer", count.Type)
	assert.True(t, count.Nullable)

	color := s.Properties["color"].Value
	assert.Equal(t, []interface{}{"RED", "GREEN"}, color.Enum)
	assert.True(t, color.Nullable)

	filter := s.Properties["filter"].Value
	assert.True(t, filter.Nullable)
	require.Len(t, filter.OneOf, 1)
	assert.Equal(t, "#/components/schemas/Filter", filter.OneOf[0].Ref)
	assert.Equal(t, "object", filter.OneOf[0].Value.Type)

	req := s.Properties["req"].Value
	assert.Equal(t, "Filter!", req.Description)
	require.Len(t, req.AllOf, 1)
	assert.Equal(t, "#/components/schemas/Filter", req.AllOf[0].Ref)

	anyValue := s.Properties["any"].Value
	assert.True(t, anyValue.Nullable)
	var types []string
	for _, alt := range anyValue.AnyOf {
		types = append(types, alt.Value.Type)
	}
	assert.Equal(t, []string{"string", "number", "boolean", "integer"}, types)
}

func TestComponents(t *testing.T) {
	doc := document(t, `query ($filter: Filter) { a }`, jsonschema.Options{UseMarkdownDescription: true})
	components := openapi.Components(doc)
	require.Contains(t, components, "Filter")

	filter := components["Filter"].Value
	assert.Equal(t, "object", filter.Type)
	assert.Equal(t, "Filter", filter.Description)
	assert.Equal(t, "```graphql\nFilter\n```", filter.Extensions["x-jsonschema-markdownDescription"])

	self := filter.Properties["self"].Value
	assert.True(t, self.Nullable)
	assert.Same(t, filter, self.OneOf[0].Value, "recursive references share the component schema")

	color := filter.Properties["color"].Value
	assert.Equal(t, "RED", color.Default)

	tags := filter.Properties["tags"].Value
	assert.Equal(t, "array", tags.Type)
	assert.True(t, tags.Nullable)
	assert.Equal(t, "string", tags.Items.Value.Type)
	assert.False(t, tags.Items.Value.Nullable)
}

func TestExtraKeywords(t *testing.T) {
	override := &jsonschema.Fragment{}
	require.NoError(t, json.Unmarshal([]byte(`{"type":"string","format":"date","pattern":"^[0-9-]+$","examples":["2020-01-01"]}`), override))
	doc := document(t, `query ($day: JSON!) { a }`, jsonschema.Options{
		CustomScalarSchemas: map[string]*jsonschema.Fragment{"JSON": override},
	})

	day := openapi.FromDocument(doc).Properties["day"].Value
	assert.Equal(t, "string", day.Type)
	assert.Equal(t, "date", day.Format)
	assert.Equal(t, "^[0-9-]+$", day.Pattern)
	assert.Equal(t, []interface{}{"2020-01-01"}, day.Extensions["x-jsonschema-examples"])
}

func TestNewSpec(t *testing.T) {
	spec := openapi.NewSpec("Search API", "1.0.0", []openapi.Operation{
		{Name: "FindByFilter", Description: "Finds things", Variables: document(t, `query FindByFilter($filter: Filter!) { a }`, jsonschema.Options{})},
		{Name: "Count", Variables: document(t, `query Count($color: Color) { a }`, jsonschema.Options{})},
	})
	require.NoError(t, spec.Validate(context.Background()))

	assert.Equal(t, "3.0.3", spec.OpenAPI)
	require.NotNil(t, spec.Components)
	assert.Len(t, spec.Components.Schemas, 1)

	find := spec.Paths["/FindByFilter"]
	require.NotNil(t, find)
	require.NotNil(t, find.Post)
	assert.Equal(t, "FindByFilter", find.Post.OperationID)
	assert.Equal(t, "Finds things", find.Post.Description)

	body := find.Post.RequestBody.Value
	assert.True(t, body.Required)
	variables := body.Content.Get("application/json").Schema.Value
	assert.Equal(t, []string{"filter"}, variables.Required)
	assert.Same(t, spec.Components.Schemas["Filter"].Value, variables.Properties["filter"].Value.AllOf[0].Value)

	data, err := json.Marshal(spec)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"$ref":"#/components/schemas/Filter"`)

	count := spec.Paths["/Count"]
	require.NotNil(t, count)
	assert.Nil(t, count.Post.RequestBody.Value.Content.Get("application/json").Schema.Value.Required)
}

func TestNewSpecWithoutDefinitions(t *testing.T) {
	spec := openapi.NewSpec("Empty", "0.1.0", []openapi.Operation{
		{Name: "Ping", Variables: document(t, `query Ping { a }`, jsonschema.Options{})},
	})
	assert.Nil(t, spec.Components)
	require.NoError(t, spec.Validate(context.Background()))
	_, ok := spec.Paths["/Ping"]
	assert.True(t, ok)
}
