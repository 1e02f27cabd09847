package trace

import (
	"context"

	"github.com/chirino/graphql-jsonschema/errors"
	opentracing "github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"
	"github.com/opentracing/opentracing-go/log"
)

type TraceGenerateFinishFunc func(error)

type Tracer interface {
	TraceGenerate(ctx context.Context, queryString string, operationName string) (context.Context, TraceGenerateFinishFunc)
}

type OpenTracingTracer struct{}

func (OpenTracingTracer) TraceGenerate(ctx context.Context, queryString string, operationName string) (context.Context, TraceGenerateFinishFunc) {
	span, spanCtx := opentracing.StartSpanFromContext(ctx, "GraphQL JSON Schema")
	span.SetTag("graphql.query", queryString)

	if operationName != "" {
		span.SetTag("graphql.operationName", operationName)
	}

	return spanCtx, func(err error) {
		if err != nil {
			errs := errors.AsArray(err)
			ext.Error.Set(span, true)
			span.SetTag("graphql.error", errs[0].Message)
			if len(errs) > 1 {
				span.LogFields(log.Int("graphql.errors", len(errs)))
			}
		}
		span.Finish()
	}
}

type NoopTracer struct{}

func (NoopTracer) TraceGenerate(ctx context.Context, queryString string, operationName string) (context.Context, TraceGenerateFinishFunc) {
	return ctx, func(err error) {}
}
