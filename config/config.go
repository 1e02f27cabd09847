// Package config holds the settings shared by the gql-jsonschema commands.
package config

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/chirino/graphql-jsonschema/jsonschema"
	"github.com/ghodss/yaml"
	"github.com/go-playground/validator/v10"
	reflector "github.com/invopop/jsonschema"
	pe "github.com/pkg/errors"
)

const (
	SchemaFormatSDL           = "sdl"
	SchemaFormatIntrospection = "introspection"

	FormatJSON    = "json"
	FormatYAML    = "yaml"
	FormatOpenAPI = "openapi"
)

// Config can be loaded from a YAML or JSON file. Relative file references are resolved
// against the directory of that file.
type Config struct {
	Schema                 string                     `json:"schema,omitempty" validate:"required_without=SchemaURL" jsonschema_description:"Path of the GraphQL schema file."`
	SchemaFormat           string                     `json:"schemaFormat,omitempty" validate:"omitempty,oneof=sdl introspection" jsonschema:"enum=sdl,enum=introspection" jsonschema_description:"Format of the schema file: GraphQL SDL or an introspection result."`
	SchemaURL              string                     `json:"schemaURL,omitempty" validate:"omitempty,url" jsonschema_description:"Endpoint of a GraphQL service to introspect instead of reading a schema file."`
	Operation              string                     `json:"operation,omitempty" jsonschema_description:"Name of the operation to generate the schema of. Empty when the query document has a single operation."`
	UseMarkdownDescription bool                       `json:"useMarkdownDescription,omitempty" jsonschema_description:"Add markdownDescription keywords with fenced GraphQL type signatures."`
	CustomScalarSchemas    map[string]json.RawMessage `json:"customScalarSchemas,omitempty" jsonschema_description:"JSON Schema used for custom scalars, by scalar name."`
	ScalarSchemasFile      string                     `json:"scalarSchemasFile,omitempty" jsonschema_description:"YAML or JSON file holding more custom scalar schemas."`
	Indent                 string                     `json:"indent,omitempty" jsonschema_description:"Indentation of generated JSON."`
	Format                 string                     `json:"format,omitempty" validate:"omitempty,oneof=json yaml openapi" jsonschema:"enum=json,enum=yaml,enum=openapi" jsonschema_description:"Output format of the generate command."`
	Listen                 string                     `json:"listen,omitempty" validate:"omitempty,hostname_port" jsonschema_description:"Address the serve command listens on."`
	MaxRequestSizeBytes    int64                      `json:"maxRequestSizeBytes,omitempty" validate:"gte=0" jsonschema:"minimum=0" jsonschema_description:"Largest accepted request body. Zero means unlimited."`

	dir string
}

var validate = validator.New()

// Default returns the settings used when nothing else is configured.
func Default() *Config {
	return &Config{
		SchemaFormat: SchemaFormatSDL,
		Indent:       "  ",
		Format:       FormatJSON,
		Listen:       ":8080",
	}
}

// Load reads a configuration file on top of the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, pe.Wrap(err, "reading config")
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, pe.Wrapf(err, "parsing config %s", path)
	}
	cfg.dir = filepath.Dir(path)
	return cfg, nil
}

// Validate checks the field constraints.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return pe.Wrap(err, "invalid config")
	}
	return nil
}

// Path resolves a file reference found in the configuration.
func (c *Config) Path(file string) string {
	if file == "" || filepath.IsAbs(file) || c.dir == "" {
		return file
	}
	return filepath.Join(c.dir, file)
}

// ScalarSchemas merges the scalar schemas file with the inline schemas. Inline entries win.
func (c *Config) ScalarSchemas() (map[string]*jsonschema.Fragment, error) {
	result := map[string]*jsonschema.Fragment{}
	if c.ScalarSchemasFile != "" {
		data, err := os.ReadFile(c.Path(c.ScalarSchemasFile))
		if err != nil {
			return nil, pe.Wrap(err, "reading scalar schemas")
		}
		fromFile, err := jsonschema.ParseScalarSchemas(data)
		if err != nil {
			return nil, err
		}
		for name, f := range fromFile {
			result[name] = f
		}
	}
	for name, raw := range c.CustomScalarSchemas {
		if len(bytes.TrimSpace(raw)) == 0 || string(raw) == "null" {
			continue
		}
		f := &jsonschema.Fragment{}
		if err := json.Unmarshal(raw, f); err != nil {
			return nil, pe.Wrapf(err, "custom scalar schema %s", name)
		}
		result[name] = f
	}
	return result, nil
}

// Options returns the schema generation options described by the configuration.
func (c *Config) Options() (jsonschema.Options, error) {
	scalars, err := c.ScalarSchemas()
	if err != nil {
		return jsonschema.Options{}, err
	}
	return jsonschema.Options{
		UseMarkdownDescription: c.UseMarkdownDescription,
		CustomScalarSchemas:    scalars,
	}, nil
}

// JSONSchema describes the configuration file format.
func JSONSchema() ([]byte, error) {
	r := reflector.Reflector{
		ExpandedStruct: true,
	}
	s := r.Reflect(&Config{})
	s.Title = "gql-jsonschema configuration"
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, pe.Wrap(err, "failed to marshal schema")
	}
	return data, nil
}
