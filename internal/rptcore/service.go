package rptcore

// Service is the capability set the SER Protocol drives: a name, a pure
// request handler, and an events/timers queue peek-and-poll interface.
// Implementations embed *ServiceBase for the shared events-queue and
// timer-registry behavior instead of deep inheritance.
type Service interface {
	Name() string
	HandleRequest(actorUID uint64, srData string) HandlingResult
	CheckEvent() (eventID uint64, ok bool)
	PollEvent() (ServiceEvent, error)
	WaitingTimers() []*Timer
}

type queuedEvent struct {
	id    uint64
	event ServiceEvent
}

// ServiceBase is the shared state every Service embeds: its owning
// ServiceContext, its FIFO of (event-id, ServiceEvent) pairs, and its set
// of watched Timers. Services call EmitEvent to publish, and WatchTimer /
// ForgetTimer to manage which timers they expose through WaitingTimers.
type ServiceBase struct {
	ctx     *ServiceContext
	events  []queuedEvent
	watched map[*Timer]struct{}
}

// NewServiceBase wires a ServiceBase to the given context, optionally
// pre-watching the given timers (mirrors the teacher's constructor-time
// timer registration idiom).
func NewServiceBase(ctx *ServiceContext, timers ...*Timer) ServiceBase {
	b := ServiceBase{ctx: ctx, watched: make(map[*Timer]struct{}, len(timers))}
	for _, t := range timers {
		b.watched[t] = struct{}{}
	}
	return b
}

// EmitEvent assigns a fresh context event ID and pushes the event onto
// this service's FIFO queue. Protected-by-convention: only meant to be
// called by the embedding Service implementation.
func (b *ServiceBase) EmitEvent(e ServiceEvent) {
	b.events = append(b.events, queuedEvent{id: b.ctx.NewEventID(), event: e})
}

// CheckEvent peeks the front event ID without removing it.
func (b *ServiceBase) CheckEvent() (uint64, bool) {
	if len(b.events) == 0 {
		return 0, false
	}
	return b.events[0].id, true
}

// PollEvent removes and returns the front event.
func (b *ServiceBase) PollEvent() (ServiceEvent, error) {
	if len(b.events) == 0 {
		return ServiceEvent{}, ErrEmptyEventsQueue
	}
	front := b.events[0]
	b.events = b.events[1:]
	return front.event, nil
}

// WatchTimer adds t to the set of timers this service exposes through
// WaitingTimers. Fails with ErrBadWatchedToken if t is already watched.
func (b *ServiceBase) WatchTimer(t *Timer) error {
	if _, ok := b.watched[t]; ok {
		return ErrBadWatchedToken
	}
	b.watched[t] = struct{}{}
	return nil
}

// ForgetTimer removes t from the watched set. Fails with
// ErrBadWatchedToken if t wasn't being watched.
func (b *ServiceBase) ForgetTimer(t *Timer) error {
	if _, ok := b.watched[t]; !ok {
		return ErrBadWatchedToken
	}
	delete(b.watched, t)
	return nil
}

// WaitingTimers returns exactly the watched timers currently in Ready
// state.
func (b *ServiceBase) WaitingTimers() []*Timer {
	var ready []*Timer
	for t := range b.watched {
		if t.IsWaitingCountdown() {
			ready = append(ready, t)
		}
	}
	return ready
}
