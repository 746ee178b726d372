package dispatchz

import (
	"fmt"
	"strings"
	"time"
)

// SpanFlags carries sampling decisions propagated with a span.
type SpanFlags uint8

const (
	// FlagSamplingKnown is set when a sampling decision has been made.
	FlagSamplingKnown SpanFlags = 1 << iota
	// FlagSampled is set when the trace is sampled.
	FlagSampled
	// FlagDebug forces the trace to be recorded.
	FlagDebug
)

// FlagsNone means no decision has been propagated.
const FlagsNone SpanFlags = 0

// Has reports whether all bits of f are set.
func (s SpanFlags) Has(f SpanFlags) bool {
	return s&f == f
}

func (s SpanFlags) String() string {
	if s == FlagsNone {
		return "none"
	}
	var parts []string
	if s.Has(FlagSamplingKnown) {
		parts = append(parts, "sampling_known")
	}
	if s.Has(FlagSampled) {
		parts = append(parts, "sampled")
	}
	if s.Has(FlagDebug) {
		parts = append(parts, "debug")
	}
	return strings.Join(parts, "|")
}

// SpanState identifies the span a record belongs to.
// A zero ParentSpanID marks a root span.
type SpanState struct {
	TraceIDHigh  uint64
	TraceID      uint64
	ParentSpanID uint64
	SpanID       uint64
	Flags        SpanFlags
}

// NewSpanState builds a 64-bit trace id span state.
func NewSpanState(traceID, parentSpanID, spanID uint64, flags SpanFlags) SpanState {
	return SpanState{
		TraceID:      traceID,
		ParentSpanID: parentSpanID,
		SpanID:       spanID,
		Flags:        flags,
	}
}

// IsRoot reports whether the span has no parent.
func (s SpanState) IsRoot() bool {
	return s.ParentSpanID == 0
}

// Sampled reports whether the span was explicitly sampled.
func (s SpanState) Sampled() bool {
	return s.Flags.Has(FlagSamplingKnown | FlagSampled)
}

// TraceIDString renders the trace id as 16 or 32 lowercase hex characters.
func (s SpanState) TraceIDString() string {
	if s.TraceIDHigh != 0 {
		return fmt.Sprintf("%016x%016x", s.TraceIDHigh, s.TraceID)
	}
	return fmt.Sprintf("%016x", s.TraceID)
}

func (s SpanState) String() string {
	parent := "-"
	if !s.IsRoot() {
		parent = fmt.Sprintf("%016x", s.ParentSpanID)
	}
	return fmt.Sprintf("%s.%s<:%016x [%s]", s.TraceIDString(), parent, s.SpanID, s.Flags)
}

// Record is one timestamped annotation on a span.
// Records are values; the dispatcher never modifies them.
type Record struct {
	Timestamp  time.Time
	Annotation Annotation
	SpanState  SpanState
}

// NewRecord creates a record.
func NewRecord(state SpanState, timestamp time.Time, annotation Annotation) Record {
	return Record{
		SpanState:  state,
		Timestamp:  timestamp,
		Annotation: annotation,
	}
}

// Equal reports whether two records carry the same data.
// Timestamps are compared as instants, ignoring location and monotonic readings.
func (r Record) Equal(other Record) bool {
	return r.SpanState == other.SpanState &&
		r.Annotation == other.Annotation &&
		r.Timestamp.Equal(other.Timestamp)
}

func (r Record) String() string {
	return fmt.Sprintf("%s %s %s", r.SpanState, r.Timestamp.UTC().Format(time.RFC3339Nano), r.Annotation)
}
