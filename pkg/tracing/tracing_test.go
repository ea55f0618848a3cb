package tracing

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestStartSpan(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	t.Run("记录Span与错误", func(t *testing.T) {
		ctx, span := StartSpan(context.Background(), "order", "PlaceOrder")
		assert.NotEmpty(t, ExtractTraceID(ctx))

		RecordError(span, errors.New("库存不足"))
		span.End()

		ended := recorder.Ended()
		require.Len(t, ended, 1)
		assert.Equal(t, "PlaceOrder", ended[0].Name())
		assert.Equal(t, codes.Error, ended[0].Status().Code)
	})

	t.Run("nil错误不改变状态", func(t *testing.T) {
		_, span := StartSpan(context.Background(), "order", "ListOrders")
		RecordError(span, nil)
		span.End()

		ended := recorder.Ended()
		assert.Equal(t, codes.Unset, ended[len(ended)-1].Status().Code)
	})
}

func TestExtractTraceID_NoSpan(t *testing.T) {
	assert.Empty(t, ExtractTraceID(context.Background()))
}
