package schema_test

import (
	"testing"

	"github.com/chirino/graphql-jsonschema/errors"
	"github.com/chirino/graphql-jsonschema/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const starwars = `
schema {
  query: Query
}

type Query {
  reviews(episode: Episode!, review: ReviewInput!): Review
}

type Review {
  stars: Int!
}

"The episodes in the Star Wars trilogy"
enum Episode {
  "Star Wars Episode IV: A New Hope, released in 1977."
  NEWHOPE
  EMPIRE
  JEDI
}

"The input object sent when someone is creating a new review"
input ReviewInput {
  "0-5 stars"
  stars: Int!
  "Comment about the movie, optional"
  commentary: String = "great"
  favoriteColor: ColorInput
  episodes: [Episode!] = [NEWHOPE, JEDI]
  seenAt: Time
}

"The input object used to describe a color"
input ColorInput {
  red: Int! = 0
  green: Int!
  blue: Int!
}

scalar Time
`

func TestParse(t *testing.T) {
	s := schema.New()
	require.NoError(t, s.Parse(starwars))

	assert.Nil(t, s.Resolve("Query"), "output types are not kept")
	assert.Nil(t, s.Resolve("Review"))
	assert.Nil(t, s.Resolve("__Type"))

	episode, ok := s.Resolve("Episode").(*schema.Enum)
	require.True(t, ok)
	assert.Equal(t, "The episodes in the Star Wars trilogy", episode.Description())
	assert.Equal(t, []string{"NEWHOPE", "EMPIRE", "JEDI"}, episode.ValueNames())
	assert.Equal(t, "Star Wars Episode IV: A New Hope, released in 1977.", episode.Values[0].Desc)

	review, ok := s.Resolve("ReviewInput").(*schema.InputObject)
	require.True(t, ok)
	assert.Equal(t, "INPUT_OBJECT", review.Kind())

	var names []string
	for _, f := range review.Fields {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"stars", "commentary", "favoriteColor", "episodes", "seenAt"}, names, "fields keep declaration order")

	stars := review.Fields.Get("stars")
	assert.Equal(t, "Int!", stars.Type.String())
	assert.Equal(t, "0-5 stars", stars.Desc)
	assert.False(t, stars.HasDefault)

	commentary := review.Fields.Get("commentary")
	assert.True(t, commentary.HasDefault)
	assert.Equal(t, "great", commentary.Default)

	episodes := review.Fields.Get("episodes")
	assert.Equal(t, []interface{}{"NEWHOPE", "JEDI"}, episodes.Default)
	assert.Same(t, episode, schema.DeepestType(episodes.Type))

	color := review.Fields.Get("favoriteColor")
	assert.Same(t, s.Resolve("ColorInput"), color.Type)
	assert.Equal(t, int64(0), s.Resolve("ColorInput").(*schema.InputObject).Fields.Get("red").Default)

	_, ok = s.Resolve("Time").(*schema.Scalar)
	assert.True(t, ok)
}

func TestParseErrors(t *testing.T) {
	s := schema.New()
	err := s.Parse(`input Broken { field: Missing }`)
	require.Error(t, err)
	qe, ok := err.(*errors.QueryError)
	require.True(t, ok)
	assert.Contains(t, qe.Message, "Missing")
	assert.NotEmpty(t, qe.Locations)

	err = s.Parse(`input {`)
	require.Error(t, err)
}

func TestBuiltinScalars(t *testing.T) {
	s := schema.New()
	for _, name := range []string{"Int", "Float", "String", "Boolean", "ID", "DateTime"} {
		scalar, ok := s.Resolve(name).(*schema.Scalar)
		require.True(t, ok, name)
		assert.Equal(t, "SCALAR", scalar.Kind())
		assert.NotEmpty(t, scalar.Description())
	}
	assert.Nil(t, s.Resolve("JSON"))

	// instances do not share types
	s.Types["Int"].(*schema.Scalar).Desc = "changed"
	assert.NotEqual(t, "changed", schema.New().Resolve("Int").(*schema.Scalar).Desc)
}

func TestResolveType(t *testing.T) {
	s := schema.New()
	unresolved := &schema.NonNull{OfType: &schema.List{OfType: &schema.TypeName{Name: "Int"}}}
	resolved, err := schema.ResolveType(unresolved, s.Resolve)
	require.Nil(t, err)
	assert.Equal(t, "[Int]!", resolved.String())
	assert.Same(t, s.Resolve("Int"), schema.DeepestType(resolved))
	assert.Same(t, s.Resolve("Int"), schema.OfType(schema.Unwrap(resolved)))

	_, err = schema.ResolveType(&schema.TypeName{Name: "Nope", Loc: errors.Location{Line: 2, Column: 3}}, s.Resolve)
	require.NotNil(t, err)
	assert.Equal(t, `graphql: Unknown type "Nope". (line 2, column 3)`, err.Error())
	assert.Equal(t, "KnownTypeNames", err.Rule)
}
