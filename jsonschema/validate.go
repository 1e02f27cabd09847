package jsonschema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	pe "github.com/pkg/errors"
	sjsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

const validatorResource = "variables.schema.json"

// Validator checks variable values against a generated Document.
type Validator struct {
	schema *sjsonschema.Schema
}

func NewValidator(doc *Document) (*Validator, error) {
	data, err := doc.MarshalJSON()
	if err != nil {
		return nil, err
	}
	compiler := sjsonschema.NewCompiler()
	compiler.Draft = sjsonschema.Draft2020
	if err := compiler.AddResource(validatorResource, bytes.NewReader(data)); err != nil {
		return nil, pe.Wrap(err, "loading variables schema")
	}
	s, err := compiler.Compile(validatorResource)
	if err != nil {
		return nil, pe.Wrap(err, "compiling variables schema")
	}
	return &Validator{schema: s}, nil
}

// Violation is a single reason why a variables object did not validate.
type Violation struct {
	InstanceLocation string `json:"instanceLocation"`
	Message          string `json:"message"`
}

// ValidationError lists the violations found by Validate, ordered by location.
type ValidationError struct {
	Violations []Violation
}

func (e *ValidationError) Error() string {
	points := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		location := v.InstanceLocation
		if location == "" {
			location = "/"
		}
		points[i] = fmt.Sprintf("%s: %s", location, v.Message)
	}
	return "variables do not match schema: " + strings.Join(points, "; ")
}

// Validate checks a JSON encoded variables object. Absent or empty input is treated as an
// empty object. It returns a *ValidationError when the values do not match.
func (v *Validator) Validate(variables []byte) error {
	variables = bytes.TrimSpace(variables)
	if len(variables) == 0 || bytes.Equal(variables, []byte("null")) {
		variables = []byte("{}")
	}
	decoder := json.NewDecoder(bytes.NewReader(variables))
	decoder.UseNumber()
	var value interface{}
	if err := decoder.Decode(&value); err != nil {
		return pe.Wrap(err, "decoding variables")
	}
	return v.ValidateValue(value)
}

// ValidateValue checks an already decoded variables value.
func (v *Validator) ValidateValue(value interface{}) error {
	err := v.schema.Validate(value)
	if err == nil {
		return nil
	}
	verr, ok := err.(*sjsonschema.ValidationError)
	if !ok {
		return err
	}
	result := &ValidationError{}
	collectViolations(verr, result)
	sort.SliceStable(result.Violations, func(i, j int) bool {
		return result.Violations[i].InstanceLocation < result.Violations[j].InstanceLocation
	})
	return result
}

func collectViolations(err *sjsonschema.ValidationError, into *ValidationError) {
	if len(err.Causes) == 0 {
		into.Violations = append(into.Violations, Violation{
			InstanceLocation: err.InstanceLocation,
			Message:          err.Message,
		})
		return
	}
	for _, cause := range err.Causes {
		collectViolations(cause, into)
	}
}
