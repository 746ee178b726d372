// Package otelbridge feeds OpenTelemetry spans into a dispatchz.Dispatcher.
//
// SpanProcessor converts every sampled span that ends into zipkin-style
// records and dispatches them, so an OpenTelemetry-instrumented application
// can report through the same non-blocking, ordered pipeline:
//
//	d, _ := dispatchz.New(reporter.Send)
//	tp := sdktrace.NewTracerProvider(
//		sdktrace.WithSpanProcessor(otelbridge.NewSpanProcessor(d)),
//	)
//	defer tp.Shutdown(ctx) // Stops the dispatcher.
package otelbridge

import (
	"context"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/cemalcanakgul/dispatchz"
)

// SpanProcessor dispatches records for ended spans.
// Safe for concurrent use; OnEnd never blocks.
type SpanProcessor struct {
	dispatcher *dispatchz.Dispatcher
}

var _ sdktrace.SpanProcessor = (*SpanProcessor)(nil)

// NewSpanProcessor returns a processor that owns d: shutting the processor
// down stops the dispatcher.
func NewSpanProcessor(d *dispatchz.Dispatcher) *SpanProcessor {
	return &SpanProcessor{dispatcher: d}
}

// OnStart does nothing; records are produced when the span ends.
func (*SpanProcessor) OnStart(context.Context, sdktrace.ReadWriteSpan) {}

// OnEnd dispatches the span's records in timestamp order.
func (p *SpanProcessor) OnEnd(s sdktrace.ReadOnlySpan) {
	if !s.SpanContext().IsSampled() {
		return
	}
	for _, record := range Records(s) {
		p.dispatcher.Dispatch(record)
	}
}

// Shutdown stops the dispatcher, waiting at most until ctx is done.
func (p *SpanProcessor) Shutdown(ctx context.Context) error {
	return p.dispatcher.Shutdown(ctx)
}

// ForceFlush returns immediately. Records reach the dispatcher as spans end
// and nothing is buffered here.
func (*SpanProcessor) ForceFlush(ctx context.Context) error {
	return ctx.Err()
}
