package rptcore

// Backend is the contract the Executor drives: a single source of Input
// Events plus the operations needed to reply and to flush outbound
// events. Concrete implementations (in internal/rptnetwork) own client
// sessions, the RPTL parsing, and the transport.
type Backend interface {
	// Closed reports whether the backend has been closed and the
	// executor loop should stop.
	Closed() bool

	// Close requests a graceful shutdown of the backend.
	Close()

	// WaitForInput blocks until the next Input Event is available.
	WaitForInput() InputEvent

	// ReplyTo sends a SER response string privately to the request's
	// owning actor, prefixed with "SERVICE ".
	ReplyTo(actorUID uint64, srResponse string)

	// ClosePipelineWith runs the authoritative disconnect routine for a
	// bound session: pushes a Left event, unbinds the actor, sends
	// INTERRUPT, and broadcasts LOGGED_OUT.
	ClosePipelineWith(actorUID uint64, reason HandlingResult)

	// OutputEvent delivers the already-formatted "EVENT <service>
	// <command>" line to the given event's targets (or broadcasts it if
	// it targets everyone), prefixed with "SERVICE ".
	OutputEvent(line string, targets ServiceEvent)

	// ArmTimer begins wall-clock measurement of a Timer the Executor
	// found in the Ready state (BeginCountdown), and arranges for a
	// TimerTrigger Input Event to surface once it elapses.
	ArmTimer(t *Timer)

	// Synchronize flushes every client's outbound queue to the
	// transport.
	Synchronize()
}
