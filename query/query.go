package query

import (
	"sort"

	"github.com/chirino/graphql-jsonschema/errors"
	"github.com/chirino/graphql-jsonschema/schema"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"
)

type Document struct {
	Operations OperationList
}

type OperationList []*Operation

func (l OperationList) Get(name string) *Operation {
	for _, op := range l {
		if op.Name == name {
			return op
		}
	}
	return nil
}

type OperationType string

const (
	Query        OperationType = "query"
	Mutation     OperationType = "mutation"
	Subscription OperationType = "subscription"
)

type Operation struct {
	Type OperationType
	Name string
	Vars []*VariableDefinition
	Loc  errors.Location
}

// VariableDefinition is a variable declared by an operation, before its type has been
// resolved against a schema.
type VariableDefinition struct {
	Name         string
	Type         schema.Type
	DefaultValue *ast.Value
	Loc          errors.Location
}

// Parse parses a GraphQL query document. Only the operations and their variable
// definitions are kept.
func Parse(queryString string) (*Document, error) {
	doc, err := parser.ParseQuery(&ast.Source{Name: "query", Input: queryString})
	if err != nil {
		return nil, errors.FromGQLError(err)
	}
	result := &Document{}
	for _, op := range doc.Operations {
		o := &Operation{
			Type: OperationType(op.Operation),
			Name: op.Name,
			Loc:  location(op.Position),
		}
		for _, v := range op.VariableDefinitions {
			o.Vars = append(o.Vars, &VariableDefinition{
				Name:         v.Variable,
				Type:         schema.FromAST(v.Type),
				DefaultValue: v.DefaultValue,
				Loc:          location(v.Position),
			})
		}
		result.Operations = append(result.Operations, o)
	}
	return result, nil
}

func (d *Document) GetOperation(operationName string) (*Operation, error) {
	if len(d.Operations) == 0 {
		return nil, errors.Errorf("no operations in query document")
	}

	if operationName == "" {
		if len(d.Operations) > 1 {
			return nil, errors.Errorf("more than one operation in query document and no operation name given")
		}
		return d.Operations[0], nil
	}

	op := d.Operations.Get(operationName)
	if op == nil {
		return nil, errors.Errorf("no operation with name %q", operationName)
	}
	return op, nil
}

// OperationNames returns the sorted names of the named operations.
func (d *Document) OperationNames() []string {
	var names []string
	for _, op := range d.Operations {
		if op.Name != "" {
			names = append(names, op.Name)
		}
	}
	sort.Strings(names)
	return names
}

// Variables resolves the operation's variable types against s. The result keeps the
// declaration order. All unknown types are reported together.
func (op *Operation) Variables(s *schema.Schema) (*schema.VariableMap, error) {
	vars := schema.NewVariableMap()
	var errs []error
	for _, v := range op.Vars {
		t, err := schema.ResolveType(v.Type, s.Resolve)
		if err != nil {
			errs = append(errs, err.WithPath("$"+v.Name))
			continue
		}
		value := &schema.InputValue{
			Name: v.Name,
			Type: t,
			Loc:  v.Loc,
		}
		if v.DefaultValue != nil {
			def, err := schema.Evaluate(v.DefaultValue)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			value.Default = def
			value.HasDefault = true
		}
		vars.Set(value)
	}
	if err := errors.Multi(errs...); err != nil {
		return nil, err
	}
	return vars, nil
}

func location(pos *ast.Position) errors.Location {
	if pos == nil {
		return errors.Location{}
	}
	return errors.Location{Line: pos.Line, Column: pos.Column}
}
