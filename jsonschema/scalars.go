package jsonschema

import (
	"encoding/json"

	"github.com/ghodss/yaml"
	pe "github.com/pkg/errors"
)

// ParseScalarSchemas reads custom scalar schema overrides keyed by scalar name. The data
// may be YAML or JSON.
func ParseScalarSchemas(data []byte) (map[string]*Fragment, error) {
	js, err := yaml.YAMLToJSON(data)
	if err != nil {
		return nil, pe.Wrap(err, "parsing custom scalar schemas")
	}
	result := map[string]*Fragment{}
	if err := json.Unmarshal(js, &result); err != nil {
		return nil, pe.Wrap(err, "decoding custom scalar schemas")
	}
	for name, f := range result {
		if f == nil {
			delete(result, name)
		}
	}
	return result, nil
}
