package dispatchz

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/zoobzio/clockz"
)

// Dispatcher delivers records to a consumer in the order they were accepted.
// Dispatch is safe for concurrent use by multiple goroutines; the consumer
// always runs on the dispatcher's own goroutine, one record at a time.
//
//nolint:govet // Field order grouped by role over memory layout
type Dispatcher struct {
	consume     Consumer
	queue       *Queue
	warner      *Warner
	logger      Logger
	panicHook   func(record Record, r interface{})
	stopCh      chan struct{}
	done        chan struct{}
	id          string
	drainOnStop bool
	stopOnce    sync.Once
	state       atomic.Int32
	dropped     atomic.Uint64
	delivered   atomic.Uint64
	failed      atomic.Uint64
	abandoned   atomic.Uint64
}

// New creates a dispatcher with DefaultConfig adjusted by opts and starts
// its worker goroutine.
func New(consume Consumer, opts ...Option) (*Dispatcher, error) {
	return NewWithConfig(consume, DefaultConfig(), opts...)
}

// NewWithConfig creates a dispatcher from cfg adjusted by opts and starts
// its worker goroutine. Invalid settings fail here and nowhere else.
func NewWithConfig(consume Consumer, cfg Config, opts ...Option) (*Dispatcher, error) {
	if consume == nil {
		return nil, ErrNilConsumer
	}

	o := options{
		clock:  clockz.RealClock,
		config: cfg,
	}
	for _, opt := range opts {
		opt(&o)
	}

	if err := o.config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid dispatcher config: %w", err)
	}

	queue, err := NewQueue(o.config.Capacity)
	if err != nil {
		return nil, err
	}

	if o.id == "" {
		o.id = uuid.NewString()
	}
	if o.logger == nil {
		o.logger = defaultLogger()
	}

	d := &Dispatcher{
		consume:     consume,
		queue:       queue,
		warner:      NewWarner(o.config.WarningInterval, o.clock),
		logger:      o.logger,
		panicHook:   o.panicHook,
		stopCh:      make(chan struct{}),
		done:        make(chan struct{}),
		id:          o.id,
		drainOnStop: o.config.DrainOnStop,
	}
	d.state.Store(int32(StateRunning))
	go d.run()
	return d, nil
}

// Dispatch hands record to the worker without blocking.
// If the queue is full the record is dropped and a warning is logged, at
// most once per warning interval. After Stop, records are dropped silently.
func (d *Dispatcher) Dispatch(record Record) {
	if d.queue.TryEnqueue(record) {
		return
	}

	d.dropped.Add(1)
	if d.queue.Closed() {
		return
	}

	if d.warner.ShouldWarnNow() {
		d.warn("dispatch queue full, dropping record",
			"capacity", d.queue.Capacity(),
			"suppressed", d.warner.takeSuppressed(),
			"dropped_total", d.dropped.Load(),
		)
	}
}

// run is the worker loop. Exactly one runs per dispatcher.
func (d *Dispatcher) run() {
	defer close(d.done)
	defer d.state.Store(int32(StateTerminated))

	for {
		// Prefer the stop signal over a ready record.
		select {
		case <-d.stopCh:
			d.finish()
			return
		default:
		}

		record, ok := d.queue.Dequeue(d.stopCh)
		if !ok {
			d.finish()
			return
		}
		d.deliver(record)
	}
}

// finish handles records still queued when Stop was called.
func (d *Dispatcher) finish() {
	var abandoned uint64
	for {
		record, ok := d.queue.TryDequeue()
		if !ok {
			break
		}
		if d.drainOnStop {
			d.deliver(record)
			continue
		}
		abandoned++
	}

	if abandoned > 0 {
		d.abandoned.Add(abandoned)
		d.warn("dispatcher stopped with queued records, abandoning them",
			"abandoned", abandoned,
		)
	}
}

// deliver invokes the consumer, containing its errors and panics.
func (d *Dispatcher) deliver(record Record) {
	defer func() {
		if r := recover(); r != nil {
			d.failed.Add(1)
			d.logError("dispatch consumer panicked",
				"panic", fmt.Sprint(r),
				"record", record.String(),
			)
			d.callPanicHook(record, r)
		}
	}()

	if err := d.consume(record); err != nil {
		d.failed.Add(1)
		d.logError("dispatch consumer failed",
			"error", err,
			"record", record.String(),
		)
		return
	}
	d.delivered.Add(1)
}

func (d *Dispatcher) callPanicHook(record Record, r interface{}) {
	if d.panicHook == nil {
		return
	}
	defer ignorePanic()
	d.panicHook(record, r)
}

// warn and logError never let a failing logger reach the caller.
func (d *Dispatcher) warn(msg string, args ...any) {
	defer ignorePanic()
	d.logger.Warn(msg, append(args, "dispatcher_id", d.id)...)
}

func (d *Dispatcher) logError(msg string, args ...any) {
	defer ignorePanic()
	d.logger.Error(msg, append(args, "dispatcher_id", d.id)...)
}

func ignorePanic() {
	_ = recover()
}

// signalStop closes the queue and wakes the worker. Runs once.
func (d *Dispatcher) signalStop() {
	d.stopOnce.Do(func() {
		d.queue.Close()
		d.state.CompareAndSwap(int32(StateRunning), int32(StateDraining))
		close(d.stopCh)
	})
}

// Stop stops the worker and waits for it to exit.
// The record being delivered is always finished; queued records are
// delivered only with WithDrainOnStop(true). Safe to call more than once and
// concurrently with Dispatch. Must not be called from the consumer.
func (d *Dispatcher) Stop() {
	d.signalStop()
	<-d.done
}

// Shutdown is Stop bounded by ctx. If ctx ends first it returns ctx.Err()
// and the worker keeps finishing in the background.
func (d *Dispatcher) Shutdown(ctx context.Context) error {
	d.signalStop()
	select {
	case <-d.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Done is closed once the worker has terminated.
func (d *Dispatcher) Done() <-chan struct{} {
	return d.done
}

// State returns the worker's lifecycle phase.
func (d *Dispatcher) State() State {
	return State(d.state.Load())
}

// ID returns the identifier attached to log messages.
func (d *Dispatcher) ID() string {
	return d.id
}

// Count returns the number of queued records. Diagnostic only.
func (d *Dispatcher) Count() int {
	return d.queue.Count()
}

// Capacity returns the queue capacity.
func (d *Dispatcher) Capacity() int {
	return d.queue.Capacity()
}

// DroppedCount returns the number of records rejected by Dispatch.
func (d *Dispatcher) DroppedCount() uint64 {
	return d.dropped.Load()
}

// DeliveredCount returns the number of records the consumer accepted.
func (d *Dispatcher) DeliveredCount() uint64 {
	return d.delivered.Load()
}

// FailedCount returns the number of records whose consumer call returned an
// error or panicked.
func (d *Dispatcher) FailedCount() uint64 {
	return d.failed.Load()
}

// AbandonedCount returns the number of queued records discarded by Stop.
func (d *Dispatcher) AbandonedCount() uint64 {
	return d.abandoned.Load()
}
