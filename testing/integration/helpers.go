package integration

import (
	"sync"
	"testing"
	"time"

	"github.com/cemalcanakgul/dispatchz"
)

// RecordingSink is a consumer that keeps every record it receives.
// Provides wait and verification helpers.
//
//nolint:govet // Field alignment optimized for test helper readability
type RecordingSink struct {
	records []dispatchz.Record
	t       *testing.T
	mu      sync.Mutex
	notify  chan struct{}
	delay   time.Duration
}

// NewRecordingSink creates a sink for testing. A non-zero delay simulates a
// slow reporter.
func NewRecordingSink(t *testing.T, delay time.Duration) *RecordingSink {
	return &RecordingSink{
		t:      t,
		delay:  delay,
		notify: make(chan struct{}, 1),
	}
}

// Consume is the dispatchz.Consumer.
func (s *RecordingSink) Consume(r dispatchz.Record) error {
	if s.delay > 0 {
		time.Sleep(s.delay)
	}
	s.mu.Lock()
	s.records = append(s.records, r)
	s.mu.Unlock()

	select {
	case s.notify <- struct{}{}:
	default:
	}
	return nil
}

// Records returns a copy of the received records.
func (s *RecordingSink) Records() []dispatchz.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]dispatchz.Record, len(s.records))
	copy(out, s.records)
	return out
}

// WaitForRecords waits for at least expected records with timeout.
func (s *RecordingSink) WaitForRecords(expected int, timeout time.Duration) []dispatchz.Record {
	deadline := time.After(timeout)
	for {
		records := s.Records()
		if len(records) >= expected {
			return records
		}
		select {
		case <-s.notify:
		case <-deadline:
			s.t.Errorf("Timeout waiting for records: expected %d, got %d", expected, len(records))
			return records
		}
	}
}

// AssertProducerOrder verifies that records from each producer arrived in
// increasing sequence. Producers are identified by TraceID, sequence by SpanID.
func (s *RecordingSink) AssertProducerOrder() {
	last := make(map[uint64]uint64)
	for i, r := range s.Records() {
		producer, seq := r.SpanState.TraceID, r.SpanState.SpanID
		if prev, ok := last[producer]; ok && seq <= prev {
			s.t.Errorf("Record %d: producer %d sequence %d arrived after %d", i, producer, seq, prev)
		}
		last[producer] = seq
	}
}

// SeqRecord builds a record tagged with its producer and sequence number.
func SeqRecord(producer, seq uint64) dispatchz.Record {
	return dispatchz.NewRecord(dispatchz.NewSpanState(producer, 0, seq, dispatchz.FlagsNone), time.Now(), dispatchz.Event("seq"))
}
