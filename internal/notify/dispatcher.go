package notify

import (
	"context"
	"sync"
	"time"

	"github.com/goliatone/go-newswatch/internal/auth"
)

// Dispatcher decouples event producers from slow consumers: Notify enqueues
// without blocking the request path and a single worker goroutine drains the
// queue into the registered sinks. When the queue is full the event is
// dropped and counted; refresh signals are advisory, the next mutation sends
// another one.
type Dispatcher struct {
	queue  chan Event
	sinks  []Sink
	logger auth.Logger

	mu      sync.Mutex
	closed  bool
	dropped int64

	done chan struct{}
	once sync.Once
}

// NewDispatcher starts the drain worker. A zero or negative buffer gets a
// small default.
func NewDispatcher(buffer int, logger auth.Logger, sinks ...Sink) *Dispatcher {
	if buffer <= 0 {
		buffer = 64
	}
	if logger == nil {
		logger = auth.DefaultLogger()
	}

	normalized := make([]Sink, 0, len(sinks))
	for _, s := range sinks {
		if s != nil {
			normalized = append(normalized, s)
		}
	}

	d := &Dispatcher{
		queue:  make(chan Event, buffer),
		sinks:  normalized,
		logger: logger,
		done:   make(chan struct{}),
	}

	go d.drain()
	return d
}

// Notify implements Sink. It never blocks the caller. A straggler arriving
// after Close is dropped like a full-queue event; the send happens under the
// mutex so it can never race the channel close.
func (d *Dispatcher) Notify(_ context.Context, event Event) error {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now()
	}

	d.mu.Lock()
	if d.closed {
		d.dropped++
		n := d.dropped
		d.mu.Unlock()
		d.logger.Warn("notify after close, dropped %s event (%d total)", event.Type, n)
		return nil
	}

	select {
	case d.queue <- event:
		d.mu.Unlock()
	default:
		d.dropped++
		n := d.dropped
		d.mu.Unlock()
		d.logger.Warn("notify queue full, dropped %s event (%d total)", event.Type, n)
	}
	return nil
}

// Dropped reports how many events were discarded because the queue was full.
func (d *Dispatcher) Dropped() int64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.dropped
}

// Close stops accepting events and drains what is already queued.
func (d *Dispatcher) Close() {
	d.once.Do(func() {
		d.mu.Lock()
		d.closed = true
		d.mu.Unlock()

		close(d.queue)
		<-d.done
	})
}

func (d *Dispatcher) drain() {
	defer close(d.done)

	for event := range d.queue {
		for _, sink := range d.sinks {
			if err := sink.Notify(context.Background(), event); err != nil {
				d.logger.Warn("notify sink error for %s: %v", event.Type, err)
			}
		}
	}
}
