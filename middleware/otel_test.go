package middleware

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	oteltrace "go.opentelemetry.io/otel/trace"

	"github.com/staffbridge/valimq"
	"github.com/staffbridge/valimq/memory"
)

func existsIn(known ...int64) valimq.ExistsFunc {
	set := make(map[int64]bool, len(known))
	for _, id := range known {
		set[id] = true
	}
	return func(ctx context.Context, id int64) (bool, error) {
		return set[id], nil
	}
}

func TestValidator_Tracing(t *testing.T) {
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))

	v := Validator(memory.New(existsIn(1)), WithTracer(tp.Tracer("test")))

	assert.True(t, v.Validate(context.Background(), 1))
	assert.False(t, v.Validate(context.Background(), 2))

	spans := sr.Ended()
	require.Len(t, spans, 2)
	assert.Equal(t, "valimq.validate", spans[0].Name())
	assert.Equal(t, oteltrace.SpanKindClient, spans[0].SpanKind())

	attrs := spans[0].Attributes()
	assert.Contains(t, attrs, attribute.Int64("employee.id", 1))
	assert.Contains(t, attrs, attribute.Bool("employee.valid", true))
	assert.Contains(t, attrs, attribute.String("messaging.destination", valimq.RequestQueue))

	assert.Contains(t, spans[1].Attributes(), attribute.Bool("employee.valid", false))
}

func TestValidator_ErrorRecorded(t *testing.T) {
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))

	// Cancelled context forces an error out of ValidateReply.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	blocked := memory.New(func(c context.Context, id int64) (bool, error) {
		<-c.Done()
		return false, c.Err()
	})

	v := Validator(blocked, WithTracer(tp.Tracer("test")))
	_, err := v.ValidateReply(ctx, 1)
	require.Error(t, err)

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.NotEmpty(t, spans[0].Events(), "error event recorded on the span")
}

func TestValidator_Counter(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	v := Validator(memory.New(existsIn(1)), WithMeter(mp.Meter("test")))

	assert.True(t, v.Validate(context.Background(), 1))
	assert.False(t, v.Validate(context.Background(), 2))
	assert.False(t, v.Validate(context.Background(), 2))

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	require.Len(t, rm.ScopeMetrics, 1)
	require.Len(t, rm.ScopeMetrics[0].Metrics, 1)
	assert.Equal(t, "valimq.validations", rm.ScopeMetrics[0].Metrics[0].Name)

	sum, ok := rm.ScopeMetrics[0].Metrics[0].Data.(metricdata.Sum[int64])
	require.True(t, ok)

	var total int64
	for _, dp := range sum.DataPoints {
		total += dp.Value
	}
	assert.Equal(t, int64(3), total)
}

func TestExists_Tracing(t *testing.T) {
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))

	wrapped := Exists(existsIn(5), WithTracer(tp.Tracer("test")))

	exists, err := wrapped(context.Background(), 5)
	require.NoError(t, err)
	assert.True(t, exists)

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "valimq.employee_exists", spans[0].Name())
	assert.Equal(t, oteltrace.SpanKindConsumer, spans[0].SpanKind())
}
