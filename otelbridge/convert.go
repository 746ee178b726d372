package otelbridge

import (
	"encoding/binary"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"

	"github.com/cemalcanakgul/dispatchz"
)

const serviceNameKey = attribute.Key("service.name")

// SpanState maps an OpenTelemetry span context and its parent onto a
// dispatchz span state.
func SpanState(sc, parent trace.SpanContext) dispatchz.SpanState {
	tid := sc.TraceID()
	sid := sc.SpanID()

	state := dispatchz.SpanState{
		TraceIDHigh: binary.BigEndian.Uint64(tid[:8]),
		TraceID:     binary.BigEndian.Uint64(tid[8:]),
		SpanID:      binary.BigEndian.Uint64(sid[:]),
		Flags:       dispatchz.FlagSamplingKnown,
	}
	if sc.IsSampled() {
		state.Flags |= dispatchz.FlagSampled
	}
	if parent.IsValid() {
		psid := parent.SpanID()
		state.ParentSpanID = binary.BigEndian.Uint64(psid[:])
	}
	return state
}

// Records converts an ended span into records ordered as they would have
// been emitted by a zipkin tracer: start, name, service, events, tags, end.
func Records(s sdktrace.ReadOnlySpan) []dispatchz.Record {
	state := SpanState(s.SpanContext(), s.Parent())
	start, end := s.StartTime(), s.EndTime()
	startAnn, endAnn := boundaries(s.SpanKind(), s.Name())

	attrs := s.Attributes()
	events := s.Events()
	records := make([]dispatchz.Record, 0, len(attrs)+len(events)+5)

	records = append(records, dispatchz.NewRecord(state, start, startAnn))
	if !isLocal(s.SpanKind()) {
		records = append(records, dispatchz.NewRecord(state, start, dispatchz.RPC(s.Name())))
	}
	if res := s.Resource(); res != nil {
		if v, ok := res.Set().Value(serviceNameKey); ok {
			records = append(records, dispatchz.NewRecord(state, start, dispatchz.ServiceName(v.Emit())))
		}
	}

	for _, ev := range events {
		records = append(records, dispatchz.NewRecord(state, ev.Time, dispatchz.Event(ev.Name)))
	}
	for _, kv := range attrs {
		records = append(records, dispatchz.NewRecord(state, end, dispatchz.Tag(string(kv.Key), kv.Value.Emit())))
	}
	if status := s.Status(); status.Code == codes.Error {
		records = append(records, dispatchz.NewRecord(state, end, dispatchz.Tag("error", status.Description)))
	}

	return append(records, dispatchz.NewRecord(state, end, endAnn))
}

func isLocal(kind trace.SpanKind) bool {
	return kind == trace.SpanKindInternal || kind == trace.SpanKindUnspecified
}

// boundaries picks the opening and closing annotations for a span kind.
func boundaries(kind trace.SpanKind, name string) (dispatchz.Annotation, dispatchz.Annotation) {
	switch kind {
	case trace.SpanKindClient:
		return dispatchz.ClientSend(), dispatchz.ClientRecv()
	case trace.SpanKindServer:
		return dispatchz.ServerRecv(), dispatchz.ServerSend()
	case trace.SpanKindProducer:
		return dispatchz.ProducerStart(), dispatchz.ProducerStop()
	case trace.SpanKindConsumer:
		return dispatchz.ConsumerStart(), dispatchz.ConsumerStop()
	default:
		return dispatchz.LocalOperationStart(name), dispatchz.LocalOperationStop()
	}
}
