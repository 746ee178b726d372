// Package dispatchz provides an ordered, asynchronous dispatch queue for
// completed trace records.
//
// Producers hand records to a Dispatcher without blocking. A single
// background goroutine delivers them, in the order they were accepted, to a
// consumer callback (typically a reporter that ships them over the network).
//
// Core Components:
//   - Record: Immutable unit of tracing data (span state, timestamp, annotation).
//   - Queue: Fixed-capacity FIFO buffer with non-blocking enqueue.
//   - Warner: Rate limiter for overflow diagnostics.
//   - Dispatcher: Owns the queue, the warner and the delivery goroutine.
//
// Basic Usage:
//
//	d, err := dispatchz.New(func(r dispatchz.Record) error {
//		return reporter.Send(r)
//	}, dispatchz.WithCapacity(1000))
//	if err != nil {
//		return err
//	}
//	defer d.Stop()
//
//	d.Dispatch(dispatchz.NewRecord(state, time.Now(), dispatchz.ClientSend()))
//
// Backpressure:
//
// Dispatch never blocks. When the queue is full the record is dropped and a
// warning is logged at most once per warning interval. Use
// Dispatcher.DroppedCount() to monitor loss.
//
// Shutdown:
//
// Stop waits for the record being delivered to finish. Records still queued
// are abandoned unless WithDrainOnStop(true) is set, in which case they are
// delivered before Stop returns.
package dispatchz

// Consumer receives records on the dispatcher goroutine, one at a time.
// A returned error is logged and delivery continues with the next record.
type Consumer func(record Record) error
