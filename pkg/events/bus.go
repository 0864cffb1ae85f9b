package events

// Handler receives events from a Bus.
type Handler func(Event)

// Bus delivers events to subscribers in emission order.
//
// Dispatch is synchronous. An event published from inside a handler is
// queued and delivered once the current event has reached every subscriber,
// so no subscriber ever observes events out of order.
type Bus struct {
	handlers    []Handler
	queue       []Event
	dispatching bool
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers a handler. Handlers are called in subscription order.
func (b *Bus) Subscribe(h Handler) {
	b.handlers = append(b.handlers, h)
}

// Publish delivers e to every subscriber.
func (b *Bus) Publish(e Event) {
	b.queue = append(b.queue, e)
	if b.dispatching {
		return
	}

	b.dispatching = true
	defer func() { b.dispatching = false }()

	for len(b.queue) > 0 {
		next := b.queue[0]
		b.queue = b.queue[1:]
		for _, h := range b.handlers {
			h(next)
		}
	}
}

// Recorder collects published events. Useful as a subscriber in tests and
// for UIs that drain events after each update.
type Recorder struct {
	events []Event
}

// Record is a Handler.
func (r *Recorder) Record(e Event) {
	r.events = append(r.events, e)
}

// Drain returns the recorded events and forgets them.
func (r *Recorder) Drain() []Event {
	out := r.events
	r.events = nil
	return out
}
