package graphqljsonschema

import (
	"fmt"
	"strings"

	"github.com/chirino/graphql-jsonschema/errors"
	"github.com/chirino/graphql-jsonschema/jsonschema"
)

// Response is the envelope returned by ServeSchema. It may be encoded to JSON directly.
type Response struct {
	Schema     *jsonschema.Document `json:"schema,omitempty"`
	Errors     []*errors.QueryError `json:"errors,omitempty"`
	Extensions interface{}          `json:"extensions,omitempty"`
}

func NewResponse() *Response {
	return &Response{}
}

func (r *Response) Error() error {
	errs := make([]error, len(r.Errors))
	for i, err := range r.Errors {
		errs[i] = err
	}
	return errors.Multi(errs...)
}

func (r *Response) String() string {
	return fmt.Sprintf("{Schema: %v, Errors: %v}", r.Schema != nil, r.Errors)
}

// AddError appends err to the response errors. Variable validation failures become one
// error per violation with the offending location as the path.
func (r *Response) AddError(err error) *Response {
	if verr, ok := err.(*jsonschema.ValidationError); ok {
		for _, v := range verr.Violations {
			qe := errors.New(v.Message)
			qe.Rule = "VariablesMatchSchema"
			if v.InstanceLocation != "" {
				qe.Path = strings.Split(strings.TrimPrefix(v.InstanceLocation, "/"), "/")
			}
			r.Errors = append(r.Errors, qe)
		}
		return r
	}
	r.Errors = append(r.Errors, errors.AsArray(err)...)
	return r
}
