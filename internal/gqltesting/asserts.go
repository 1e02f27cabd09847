package gqltesting

import (
	"context"
	"encoding/json"
	"testing"

	graphqljsonschema "github.com/chirino/graphql-jsonschema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// AssertSchema generates the variables schema of the only operation in query and compares
// its JSON encoding with expected.
func AssertSchema(t *testing.T, generator *graphqljsonschema.Generator, query string, expected string) {
	doc, err := generator.Generate(context.Background(), &graphqljsonschema.Request{Query: query})
	require.NoError(t, err)
	actual := jsonMarshal(t, doc)
	assert.JSONEq(t, expected, actual)
}

func AssertQuery(t *testing.T, generator *graphqljsonschema.Generator, query string, expected string) {
	request := graphqljsonschema.Request{}
	request.Query = query
	AssertRequest(t, generator, request, expected)
}

func AssertRequestString(t *testing.T, generator *graphqljsonschema.Generator, req string, expected string) {
	request := graphqljsonschema.Request{}
	jsonUnmarshal(t, req, &request)
	AssertRequest(t, generator, request, expected)
}

func AssertRequest(t *testing.T, generator *graphqljsonschema.Generator, request graphqljsonschema.Request, expected string) {
	response := generator.ServeSchema(&request)
	actual := jsonMarshal(t, response)
	assert.Equal(t, expected, actual)
}

func jsonMarshal(t *testing.T, value interface{}) string {
	data, err := json.Marshal(value)
	assert.NoError(t, err)
	return string(data)
}

func jsonUnmarshal(t *testing.T, from string, target interface{}) {
	err := json.Unmarshal([]byte(from), target)
	assert.NoError(t, err)
}
