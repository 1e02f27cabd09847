package graphqljsonschema

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"reflect"

	pe "github.com/pkg/errors"
)

// Request selects an operation of a query document. When Variables is set, ServeSchema
// also validates it against the generated schema.
type Request struct {
	Context       context.Context `json:"-"`
	Query         string          `json:"query,omitempty"`
	OperationName string          `json:"operationName,omitempty"`
	// Variables can be set to a json.RawMessage or a map[string]interface{}
	Variables interface{} `json:"variables,omitempty"`
}

func (r *Request) GetContext() context.Context {
	if r.Context == nil {
		return context.Background()
	}
	return r.Context
}

// DecodeVariables returns the variables as generic JSON values with numbers kept as
// json.Number. Empty or null raw variables decode to an empty object. It returns nil
// when no variables were given.
func (r *Request) DecodeVariables() (interface{}, error) {
	var data []byte
	switch variables := r.Variables.(type) {
	case nil:
		return nil, nil
	case json.RawMessage:
		data = bytes.TrimSpace(variables)
	case map[string]interface{}:
		encoded, err := json.Marshal(variables)
		if err != nil {
			return nil, pe.Wrap(err, "encoding variables")
		}
		data = encoded
	default:
		return nil, fmt.Errorf("unsupported variables type: %s", reflect.TypeOf(r.Variables))
	}
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return map[string]interface{}{}, nil
	}

	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()
	var value interface{}
	if err := decoder.Decode(&value); err != nil {
		return nil, pe.Wrap(err, "decoding variables")
	}
	return value, nil
}
