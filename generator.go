// Package graphqljsonschema turns the variables of GraphQL operations into JSON Schema
// documents.
package graphqljsonschema

import (
	"context"
	"sort"

	"github.com/chirino/graphql-jsonschema/errors"
	"github.com/chirino/graphql-jsonschema/jsonschema"
	"github.com/chirino/graphql-jsonschema/openapi"
	"github.com/chirino/graphql-jsonschema/query"
	"github.com/chirino/graphql-jsonschema/schema"
	"github.com/chirino/graphql-jsonschema/trace"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/gobwas/glob"
	"github.com/jensneuse/abstractlogger"
	pe "github.com/pkg/errors"
)

// Generator builds variable schemas for operations written against Schema. A configured
// Generator is safe for concurrent use.
type Generator struct {
	Schema  *schema.Schema
	Options jsonschema.Options
	Tracer  trace.Tracer
	Logger  abstractlogger.Logger
}

// OperationSchema is the variables schema of one named operation.
type OperationSchema struct {
	Name   string               `json:"name"`
	Type   query.OperationType  `json:"type"`
	Schema *jsonschema.Document `json:"schema"`
}

func New() *Generator {
	return &Generator{
		Schema: schema.New(),
		Tracer: trace.NoopTracer{},
		Logger: abstractlogger.NoopLogger,
	}
}

func CreateGenerator(schema string) (*Generator, error) {
	generator := New()
	err := generator.Schema.Parse(schema)
	return generator, err
}

// Generate returns the variables schema of the operation selected by the request.
func (g *Generator) Generate(ctx context.Context, request *Request) (*jsonschema.Document, error) {
	traceContext, finish := g.Tracer.TraceGenerate(ctx, request.Query, request.OperationName)
	doc, err := g.generate(traceContext, request.Query, request.OperationName)
	finish(err)
	return doc, err
}

func (g *Generator) generate(ctx context.Context, queryString string, operationName string) (*jsonschema.Document, error) {
	document, err := query.Parse(queryString)
	if err != nil {
		g.Logger.Debug("query parse failed", abstractlogger.Error(err))
		return nil, err
	}
	op, err := document.GetOperation(operationName)
	if err != nil {
		return nil, err
	}
	return g.build(ctx, op)
}

func (g *Generator) build(ctx context.Context, op *query.Operation) (*jsonschema.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	vars, err := op.Variables(g.Schema)
	if err != nil {
		g.Logger.Debug("variable types did not resolve",
			abstractlogger.String("operation", op.Name),
			abstractlogger.Error(err),
		)
		return nil, err
	}
	doc := jsonschema.BuildSchema(vars, g.Options)
	g.Logger.Debug("generated variables schema",
		abstractlogger.String("operation", op.Name),
		abstractlogger.Int("variables", vars.Len()),
		abstractlogger.Int("definitions", doc.Definitions.Len()),
	)
	return doc, nil
}

// GenerateAll returns the schemas of every named operation in the query document whose
// name matches the glob pattern, sorted by name. An empty pattern matches everything.
func (g *Generator) GenerateAll(ctx context.Context, queryString string, pattern string) ([]OperationSchema, error) {
	traceContext, finish := g.Tracer.TraceGenerate(ctx, queryString, pattern)
	result, err := g.generateAll(traceContext, queryString, pattern)
	finish(err)
	return result, err
}

func (g *Generator) generateAll(ctx context.Context, queryString string, pattern string) ([]OperationSchema, error) {
	if pattern == "" {
		pattern = "*"
	}
	matcher, err := glob.Compile(pattern)
	if err != nil {
		return nil, pe.Wrapf(err, "invalid operation pattern %q", pattern)
	}

	document, err := query.Parse(queryString)
	if err != nil {
		return nil, err
	}

	ops := make([]*query.Operation, 0, len(document.Operations))
	for _, op := range document.Operations {
		if op.Name != "" && matcher.Match(op.Name) {
			ops = append(ops, op)
		}
	}
	sort.SliceStable(ops, func(i, j int) bool {
		return ops[i].Name < ops[j].Name
	})

	result := make([]OperationSchema, 0, len(ops))
	var errs []error
	for _, op := range ops {
		doc, err := g.build(ctx, op)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		result = append(result, OperationSchema{
			Name:   op.Name,
			Type:   op.Type,
			Schema: doc,
		})
	}
	if err := errors.Multi(errs...); err != nil {
		return nil, err
	}
	return result, nil
}

// OpenAPI describes the matching operations of the query document as an OpenAPI
// document with one POST path per operation.
func (g *Generator) OpenAPI(ctx context.Context, queryString string, pattern string, title string, version string) (*openapi3.T, error) {
	schemas, err := g.GenerateAll(ctx, queryString, pattern)
	if err != nil {
		return nil, err
	}
	ops := make([]openapi.Operation, 0, len(schemas))
	for _, s := range schemas {
		ops = append(ops, openapi.Operation{
			Name:        s.Name,
			Description: "GraphQL " + string(s.Type) + " " + s.Name,
			Variables:   s.Schema,
		})
	}
	return openapi.NewSpec(title, version, ops), nil
}

// Validator compiles the variables schema of the operation selected by the request.
func (g *Generator) Validator(ctx context.Context, request *Request) (*jsonschema.Validator, error) {
	doc, err := g.Generate(ctx, request)
	if err != nil {
		return nil, err
	}
	return jsonschema.NewValidator(doc)
}

// ServeSchema answers a request with the generated schema. When the request carries
// variables they are validated against it, and every violation is reported as an error.
func (g *Generator) ServeSchema(request *Request) *Response {
	response := NewResponse()
	doc, err := g.Generate(request.GetContext(), request)
	if err != nil {
		return response.AddError(err)
	}
	response.Schema = doc

	if request.Variables == nil {
		return response
	}
	variables, err := request.DecodeVariables()
	if err != nil {
		return response.AddError(err)
	}
	validator, err := jsonschema.NewValidator(doc)
	if err != nil {
		return response.AddError(err)
	}
	if err := validator.ValidateValue(variables); err != nil {
		g.Logger.Debug("variables rejected",
			abstractlogger.String("operation", request.OperationName),
			abstractlogger.Error(err),
		)
		return response.AddError(err)
	}
	return response
}
