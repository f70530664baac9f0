package rptcore

import "errors"

// Executor is the single-threaded cooperative main loop: it pulls Input
// Events from a Backend, dispatches ServiceRequests into a SERProtocol,
// then drains every pending ServiceEvent back out through the Backend
// before synchronizing. See spec.md §4.9.
type Executor struct {
	backend Backend
	ser     *SERProtocol

	onJoined func(actorUID uint64, name string)
	onLeft   func(actorUID uint64, reason HandlingResult)
}

// NewExecutor ties a Backend and a SERProtocol together. The Executor
// itself owns no services and interprets Joined/Left only enough to
// notify callers through OnJoined/OnLeft (spec.md §9's "Executor doesn't
// own services" resolution) — a service that cares about actor
// lifecycle registers for it through its own API, not through the SER
// dispatch path.
func NewExecutor(backend Backend, ser *SERProtocol) *Executor {
	return &Executor{backend: backend, ser: ser}
}

// OnJoined registers fn to be called whenever a client successfully logs
// in, after the backend has already admitted them.
func (e *Executor) OnJoined(fn func(actorUID uint64, name string)) {
	e.onJoined = fn
}

// OnLeft registers fn to be called whenever an actor disconnects or is
// disconnected, after the backend has already torn their session down.
func (e *Executor) OnLeft(fn func(actorUID uint64, reason HandlingResult)) {
	e.onLeft = fn
}

// Run drives the loop until the backend is closed. It returns true on a
// clean shutdown (Stop event observed and handled) and false if the loop
// exits because the backend was already closed without ever seeing one
// (treated as a fatal condition by callers, mirroring the teacher's
// boolean run-result idiom).
func (e *Executor) Run() bool {
	cleanShutdown := false

	for !e.backend.Closed() {
		event := e.backend.WaitForInput()

		switch event.Kind {
		case EventNone:
			// Spurious wakeup, nothing to do.

		case EventStop:
			e.backend.Close()
			cleanShutdown = true

		case EventServiceRequest:
			response, err := e.ser.HandleServiceRequest(event.ActorUID, event.RawRequest)
			if err != nil {
				if errors.Is(err, ErrInvalidRequestFormat) || errors.Is(err, ErrServiceNotFound) {
					e.backend.ClosePipelineWith(event.ActorUID, Failure(err.Error()))
				} else {
					panic(err) // programmer error, never reached for the above two sentinels
				}
			} else {
				e.backend.ReplyTo(event.ActorUID, response)
			}

		case EventJoined:
			if e.onJoined != nil {
				e.onJoined(event.ActorUID, event.ActorName)
			}

		case EventLeft:
			if e.onLeft != nil {
				e.onLeft(event.ActorUID, event.Reason)
			}

		case EventTimerTrigger:
			// Already fully handled by the backend/service that produced
			// the event; the executor only needs to drain resulting
			// service events below.
		}

		for _, t := range e.ser.WaitingTimers() {
			e.backend.ArmTimer(t)
		}

		for {
			line, targets, ok := e.ser.PollServiceEvent()
			if !ok {
				break
			}
			e.backend.OutputEvent(line, targets)
		}

		e.backend.Synchronize()
	}

	return cleanShutdown
}
