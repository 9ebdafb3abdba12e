package reminder

// Sink receives emitted events. Implementations must not assume they are
// called from any particular goroutine; the scheduler treats delivery as
// fire-and-forget.
type Sink interface {
	Handle(Event)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(Event)

func (f SinkFunc) Handle(ev Event) { f(ev) }
