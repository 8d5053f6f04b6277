package progress

import (
	"context"
	"errors"
	"sync"
)

// ErrClosed is returned when emitting on a closed Emitter.
var ErrClosed = errors.New("progress emitter closed")

// Reporter is the narrow view of a job's stream used by pipeline stages.
type Reporter interface {
	Status(step Stage, message string)
	Transcript(text string)
}

// Emitter is an append-only, ordered event queue for one job.
// Emits never block; a single consumer drains events with Drain.
type Emitter struct {
	mu     sync.Mutex
	queue  []Event
	closed bool
	notify chan struct{}
}

func NewEmitter() *Emitter {
	return &Emitter{notify: make(chan struct{}, 1)}
}

// Emit appends ev to the stream.
func (e *Emitter) Emit(ev Event) error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return ErrClosed
	}
	e.queue = append(e.queue, ev)
	e.mu.Unlock()

	e.signal()
	return nil
}

func (e *Emitter) Status(step Stage, message string) {
	_ = e.Emit(StatusEvent(step, message))
}

func (e *Emitter) Transcript(text string) {
	_ = e.Emit(TranscriptEvent(text))
}

func (e *Emitter) Summary(text string) {
	_ = e.Emit(SummaryEvent(text))
}

// Close marks normal completion. Calling it more than once is a no-op.
func (e *Emitter) Close() {
	e.mu.Lock()
	e.closed = true
	e.mu.Unlock()
	e.signal()
}

// Fail emits a final error event and closes the stream.
func (e *Emitter) Fail(err error) {
	msg := "Unknown error occurred"
	if err != nil && err.Error() != "" {
		msg = err.Error()
	}

	e.mu.Lock()
	if !e.closed {
		e.queue = append(e.queue, ErrorEvent(msg))
		e.closed = true
	}
	e.mu.Unlock()
	e.signal()
}

// Closed reports whether Close or Fail was called.
func (e *Emitter) Closed() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.closed
}

// Drain passes events to fn in emission order until the emitter is closed and
// empty, fn returns an error, or ctx is done.
func (e *Emitter) Drain(ctx context.Context, fn func(Event) error) error {
	for {
		batch, closed := e.take()
		for _, ev := range batch {
			if err := fn(ev); err != nil {
				return err
			}
		}
		if len(batch) > 0 {
			continue
		}
		if closed {
			return nil
		}

		select {
		case <-e.notify:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (e *Emitter) take() ([]Event, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	batch := e.queue
	e.queue = nil
	return batch, e.closed
}

func (e *Emitter) signal() {
	select {
	case e.notify <- struct{}{}:
	default:
	}
}
