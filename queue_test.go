package dispatchz

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRecord(spanID uint64) Record {
	return NewRecord(NewSpanState(1, 0, spanID, FlagsNone), time.Unix(0, int64(spanID)), ClientRecv())
}

func TestNewQueueRejectsInvalidCapacity(t *testing.T) {
	for _, capacity := range []int{0, -1} {
		q, err := NewQueue(capacity)
		assert.Nil(t, q)
		assert.ErrorIs(t, err, ErrInvalidCapacity)
	}
}

func TestQueueFIFO(t *testing.T) {
	q, err := NewQueue(3)
	require.NoError(t, err)

	for i := uint64(1); i <= 3; i++ {
		require.True(t, q.TryEnqueue(testRecord(i)))
	}
	assert.Equal(t, 3, q.Count())

	for i := uint64(1); i <= 3; i++ {
		r, ok := q.TryDequeue()
		require.True(t, ok)
		assert.Equal(t, i, r.SpanState.SpanID)
	}

	_, ok := q.TryDequeue()
	assert.False(t, ok)
}

func TestQueueRejectsWhenFull(t *testing.T) {
	q, err := NewQueue(2)
	require.NoError(t, err)

	assert.True(t, q.TryEnqueue(testRecord(1)))
	assert.True(t, q.TryEnqueue(testRecord(2)))
	assert.False(t, q.TryEnqueue(testRecord(3)))
	assert.Equal(t, 2, q.Count())
	assert.Equal(t, 2, q.Capacity())

	// Room frees up once the head is taken.
	_, ok := q.TryDequeue()
	require.True(t, ok)
	assert.True(t, q.TryEnqueue(testRecord(4)))
}

func TestQueueDequeueParksUntilEnqueue(t *testing.T) {
	q, err := NewQueue(1)
	require.NoError(t, err)

	got := make(chan Record, 1)
	go func() {
		r, ok := q.Dequeue(make(chan struct{}))
		if ok {
			got <- r
		}
	}()

	select {
	case <-got:
		t.Fatal("Dequeue returned before anything was enqueued")
	case <-time.After(20 * time.Millisecond):
	}

	require.True(t, q.TryEnqueue(testRecord(7)))

	select {
	case r := <-got:
		assert.Equal(t, uint64(7), r.SpanState.SpanID)
	case <-time.After(time.Second):
		t.Fatal("Dequeue did not wake up after enqueue")
	}
}

func TestQueueDequeueWakesOnDone(t *testing.T) {
	q, err := NewQueue(1)
	require.NoError(t, err)

	done := make(chan struct{})
	result := make(chan bool, 1)
	go func() {
		_, ok := q.Dequeue(done)
		result <- ok
	}()

	close(done)

	select {
	case ok := <-result:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("Dequeue did not return after done was closed")
	}
}

func TestQueueClose(t *testing.T) {
	q, err := NewQueue(2)
	require.NoError(t, err)

	require.True(t, q.TryEnqueue(testRecord(1)))
	q.Close()

	assert.True(t, q.Closed())
	assert.False(t, q.TryEnqueue(testRecord(2)), "closed queue must reject")

	r, ok := q.TryDequeue()
	require.True(t, ok, "queued records survive Close")
	assert.Equal(t, uint64(1), r.SpanState.SpanID)
}

func TestQueueConcurrentProducersNeverExceedCapacity(t *testing.T) {
	const capacity = 50
	q, err := NewQueue(capacity)
	require.NoError(t, err)

	var accepted atomic.Int64
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(producer int) {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				if q.TryEnqueue(testRecord(uint64(producer*100 + j))) {
					accepted.Add(1)
				}
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int64(capacity), accepted.Load())
	assert.Equal(t, capacity, q.Count())
}

func TestQueuePerProducerOrder(t *testing.T) {
	q, err := NewQueue(1000)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for p := 0; p < 4; p++ {
		wg.Add(1)
		go func(producer uint64) {
			defer wg.Done()
			for seq := uint64(0); seq < 100; seq++ {
				q.TryEnqueue(NewRecord(NewSpanState(producer, 0, seq, FlagsNone), time.Time{}, Event("seq")))
			}
		}(uint64(p))
	}
	wg.Wait()

	last := map[uint64]int64{0: -1, 1: -1, 2: -1, 3: -1}
	for {
		r, ok := q.TryDequeue()
		if !ok {
			break
		}
		producer := r.SpanState.TraceID
		seq := int64(r.SpanState.SpanID)
		assert.Greater(t, seq, last[producer], "producer %d out of order", producer)
		last[producer] = seq
	}
}

func TestQueueCloseDuringEnqueue(t *testing.T) {
	q, err := NewQueue(10000)
	require.NoError(t, err)

	var accepted atomic.Int64
	var wg sync.WaitGroup
	for p := 0; p < 8; p++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 500; i++ {
				if q.TryEnqueue(testRecord(uint64(i))) {
					accepted.Add(1)
				}
			}
		}()
	}

	q.Close()
	drained := int64(0)
	for {
		if _, ok := q.TryDequeue(); !ok {
			break
		}
		drained++
	}
	wg.Wait()

	assert.Equal(t, accepted.Load(), drained, "every accepted record is visible once Close returns")
	assert.Equal(t, 0, q.Count())
}
