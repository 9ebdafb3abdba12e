package notify

import (
	"log/slog"
	"sync"

	"github.com/sadopc/vital/internal/reminder"
)

// Multi fans one event out to several sinks in order.
type Multi []reminder.Sink

func (m Multi) Handle(ev reminder.Event) {
	for _, sink := range m {
		sink.Handle(ev)
	}
}

// Async decouples the scheduler from slow sinks: Handle enqueues without
// blocking and a single worker goroutine drains the queue. When the queue
// is full the event is dropped for that sink rather than stalling a tick.
type Async struct {
	inner  reminder.Sink
	queue  chan reminder.Event
	logger *slog.Logger

	closeOnce sync.Once
	done      chan struct{}
}

// NewAsync wraps inner with a buffered delivery queue and starts the worker.
func NewAsync(inner reminder.Sink, buffer int, logger *slog.Logger) *Async {
	if buffer <= 0 {
		buffer = 16
	}
	if logger == nil {
		logger = slog.Default()
	}
	a := &Async{
		inner:  inner,
		queue:  make(chan reminder.Event, buffer),
		logger: logger,
		done:   make(chan struct{}),
	}
	go a.run()
	return a
}

func (a *Async) Handle(ev reminder.Event) {
	select {
	case a.queue <- ev:
	default:
		a.logger.Warn("sink queue full, dropping event", "kind", ev.Kind)
	}
}

// Close stops the worker after draining queued events.
func (a *Async) Close() {
	a.closeOnce.Do(func() {
		close(a.queue)
		<-a.done
	})
}

func (a *Async) run() {
	defer close(a.done)
	for ev := range a.queue {
		a.inner.Handle(ev)
	}
}
