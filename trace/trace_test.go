package trace_test

import (
	"context"
	"testing"

	"github.com/chirino/graphql-jsonschema/errors"
	"github.com/chirino/graphql-jsonschema/trace"
	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/mocktracer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withMockTracer(t *testing.T) *mocktracer.MockTracer {
	tracer := mocktracer.New()
	previous := opentracing.GlobalTracer()
	opentracing.SetGlobalTracer(tracer)
	t.Cleanup(func() {
		opentracing.SetGlobalTracer(previous)
	})
	return tracer
}

func TestOpenTracingTracer(t *testing.T) {
	tracer := withMockTracer(t)

	ctx, finish := trace.OpenTracingTracer{}.TraceGenerate(context.Background(), "query Q { a }", "Q")
	assert.NotNil(t, opentracing.SpanFromContext(ctx))
	finish(nil)

	spans := tracer.FinishedSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "GraphQL JSON Schema", spans[0].OperationName)
	assert.Equal(t, "query Q { a }", spans[0].Tag("graphql.query"))
	assert.Equal(t, "Q", spans[0].Tag("graphql.operationName"))
	assert.Nil(t, spans[0].Tag("error"))
}

func TestOpenTracingTracerRecordsErrors(t *testing.T) {
	tracer := withMockTracer(t)

	_, finish := trace.OpenTracingTracer{}.TraceGenerate(context.Background(), "{ a }", "")
	finish(errors.Multi(errors.Errorf("first"), errors.Errorf("second")))

	spans := tracer.FinishedSpans()
	require.Len(t, spans, 1)
	assert.Nil(t, spans[0].Tag("graphql.operationName"))
	assert.Equal(t, true, spans[0].Tag("error"))
	assert.Equal(t, "first", spans[0].Tag("graphql.error"))
	require.Len(t, spans[0].Logs(), 1)
	assert.Equal(t, "graphql.errors", spans[0].Logs()[0].Fields[0].Key)
}

func TestNoopTracer(t *testing.T) {
	tracer := withMockTracer(t)

	ctx := context.Background()
	traced, finish := trace.NoopTracer{}.TraceGenerate(ctx, "{ a }", "")
	finish(errors.Errorf("ignored"))
	assert.Equal(t, ctx, traced)
	assert.Empty(t, tracer.FinishedSpans())
}
