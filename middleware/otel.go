// Package middleware provides OpenTelemetry instrumentation for validators
// and the responder's storage lookup.
package middleware

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/staffbridge/valimq"
)

const scope = "github.com/staffbridge/valimq"

// Validator wraps a validator so every call produces a client span and a
// count on the validations counter, partitioned by outcome.
func Validator(v valimq.Validator, opts ...Option) valimq.Validator {
	return &otelValidator{next: v, opts: newOptions(opts...)}
}

type otelValidator struct {
	next valimq.Validator
	opts options
}

func (o *otelValidator) Validate(ctx context.Context, employeeID int64) bool {
	ctx, span := o.opts.tracer.Start(ctx, "valimq.validate",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("messaging.system", "rabbitmq"),
			attribute.String("messaging.destination", valimq.RequestQueue),
			attribute.Int64("employee.id", employeeID),
		),
	)
	defer span.End()

	valid := o.next.Validate(ctx, employeeID)
	span.SetAttributes(attribute.Bool("employee.valid", valid))
	o.count(ctx, outcome(valid))
	return valid
}

func (o *otelValidator) ValidateReply(ctx context.Context, employeeID int64) (*valimq.Reply, error) {
	ctx, span := o.opts.tracer.Start(ctx, "valimq.validate",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("messaging.system", "rabbitmq"),
			attribute.String("messaging.destination", valimq.RequestQueue),
			attribute.Int64("employee.id", employeeID),
		),
	)
	defer span.End()

	reply, err := o.next.ValidateReply(ctx, employeeID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		o.count(ctx, "error")
		return nil, err
	}
	span.SetAttributes(attribute.Bool("employee.valid", reply.Valid))
	o.count(ctx, outcome(reply.Valid))
	return reply, nil
}

func (o *otelValidator) count(ctx context.Context, result string) {
	if o.opts.validations == nil {
		return
	}
	o.opts.validations.Add(ctx, 1, metric.WithAttributes(
		attribute.String("result", result),
	))
}

func outcome(valid bool) string {
	if valid {
		return "valid"
	}
	return "invalid"
}

// Exists wraps the responder's storage lookup with a consumer-side span so a
// slow or failing employee store is visible per message.
func Exists(f valimq.ExistsFunc, opts ...Option) valimq.ExistsFunc {
	o := newOptions(opts...)
	return func(ctx context.Context, employeeID int64) (bool, error) {
		ctx, span := o.tracer.Start(ctx, "valimq.employee_exists",
			trace.WithSpanKind(trace.SpanKindConsumer),
			trace.WithAttributes(
				attribute.String("messaging.system", "rabbitmq"),
				attribute.String("messaging.operation", "process"),
				attribute.Int64("employee.id", employeeID),
			),
		)
		defer span.End()

		exists, err := f(ctx, employeeID)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		return exists, err
	}
}

type options struct {
	tracer      trace.Tracer
	validations metric.Int64Counter
}

type Option func(*options)

func newOptions(opts ...Option) options {
	o := options{
		tracer: otel.Tracer(scope),
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.validations == nil {
		counter, err := otel.Meter(scope).Int64Counter("valimq.validations",
			metric.WithDescription("Validation calls by outcome"))
		if err == nil {
			o.validations = counter
		}
	}
	return o
}

func WithTracer(t trace.Tracer) Option {
	return func(o *options) {
		o.tracer = t
	}
}

func WithMeter(m metric.Meter) Option {
	return func(o *options) {
		counter, err := m.Int64Counter("valimq.validations",
			metric.WithDescription("Validation calls by outcome"))
		if err == nil {
			o.validations = counter
		}
	}
}
