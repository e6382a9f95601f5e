package logger

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "newsroom"

// SpanContext pairs a started span with the context carrying it.
type SpanContext struct {
	ctx  context.Context
	span trace.Span
}

// StartSpan opens a child span of whatever trace ctx already carries.
func StartSpan(ctx context.Context, name string, opts ...trace.SpanStartOption) *SpanContext {
	ctx, span := otel.Tracer(tracerName).Start(ctx, name, opts...)
	return &SpanContext{ctx: ctx, span: span}
}

// StartSpanFromTraceID opens a span re-linked to a trace that crossed a
// process boundary as a hex trace ID, typically through the Redis queue.
// An empty or malformed ID degrades to a plain root span.
func StartSpanFromTraceID(ctx context.Context, hexID, name string, opts ...trace.SpanStartOption) *SpanContext {
	if remote, ok := remoteSpanContext(hexID); ok {
		opts = append(opts, trace.WithLinks(trace.Link{SpanContext: remote}))
		ctx = trace.ContextWithRemoteSpanContext(ctx, remote)
	}
	return StartSpan(ctx, name, opts...)
}

func remoteSpanContext(hexID string) (trace.SpanContext, bool) {
	if hexID == "" {
		return trace.SpanContext{}, false
	}
	traceID, err := trace.TraceIDFromHex(hexID)
	if err != nil {
		return trace.SpanContext{}, false
	}
	return trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		TraceFlags: trace.FlagsSampled,
		Remote:     true,
	}), true
}

// Context returns the context carrying the span.
func (sc *SpanContext) Context() context.Context {
	return sc.ctx
}

func (sc *SpanContext) End() {
	if sc.span != nil {
		sc.span.End()
	}
}

func (sc *SpanContext) RecordError(err error) {
	if sc.span != nil && err != nil {
		sc.span.RecordError(err)
	}
}
