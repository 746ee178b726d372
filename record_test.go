package dispatchz

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRecordEqual(t *testing.T) {
	ts := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	state := NewSpanState(1, 0, 1, FlagsNone)

	a := NewRecord(state, ts, ClientRecv())
	b := NewRecord(state, ts.In(time.FixedZone("CET", 3600)), ClientRecv())

	assert.True(t, a.Equal(b), "same instant in another zone is equal")
	assert.False(t, a.Equal(NewRecord(state, ts, ClientSend())))
	assert.False(t, a.Equal(NewRecord(NewSpanState(1, 0, 2, FlagsNone), ts, ClientRecv())))
	assert.False(t, a.Equal(NewRecord(state, ts.Add(time.Nanosecond), ClientRecv())))
}

func TestSpanState(t *testing.T) {
	root := NewSpanState(0xabc, 0, 0x1, FlagSamplingKnown|FlagSampled)
	assert.True(t, root.IsRoot())
	assert.True(t, root.Sampled())
	assert.Equal(t, "0000000000000abc", root.TraceIDString())
	assert.Equal(t, "0000000000000abc.-<:0000000000000001 [sampling_known|sampled]", root.String())

	child := NewSpanState(0xabc, 0x1, 0x2, FlagSamplingKnown)
	assert.False(t, child.IsRoot())
	assert.False(t, child.Sampled())

	wide := SpanState{TraceIDHigh: 0x1, TraceID: 0x2, SpanID: 0x3}
	assert.Equal(t, "00000000000000010000000000000002", wide.TraceIDString())
}

func TestSpanFlagsString(t *testing.T) {
	assert.Equal(t, "none", FlagsNone.String())
	assert.Equal(t, "debug", FlagDebug.String())
	assert.Equal(t, "sampling_known|sampled|debug", (FlagSamplingKnown | FlagSampled | FlagDebug).String())
}

func TestAnnotationString(t *testing.T) {
	tests := []struct {
		annotation Annotation
		expected   string
	}{
		{ClientSend(), "cs"},
		{ServerRecv(), "sr"},
		{RPC("GET /users"), "rpc GET /users"},
		{ServiceName("billing"), "service billing"},
		{LocalOperationStart("parse"), "lc.start parse"},
		{LocalOperationStop(), "lc.stop"},
		{Event("retry"), "event retry"},
		{Tag("http.status", "200"), "tag http.status=200"},
		{Annotation{Kind: AnnotationKind(200)}, "kind(200)"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.annotation.String())
		})
	}
}
