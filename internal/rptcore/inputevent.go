package rptcore

// InputEventKind tags the variant held by an InputEvent.
type InputEventKind int

const (
	// EventNone is a spurious/wakeup event, carries no data.
	EventNone InputEventKind = iota
	// EventStop is a caught signal requesting shutdown.
	EventStop
	// EventJoined reports a newly registered actor.
	EventJoined
	// EventLeft reports a departing actor and the reason.
	EventLeft
	// EventServiceRequest carries a raw SER request string from an actor.
	EventServiceRequest
	// EventTimerTrigger reports that a watched Timer has transitioned to
	// Triggered.
	EventTimerTrigger
)

// InputEvent is the tagged value returned by Backend.WaitForInput: exactly
// one of {None, Stop, Joined, Left, ServiceRequest, TimerTrigger}.
type InputEvent struct {
	Kind InputEventKind

	Signal     string // Stop
	ActorUID   uint64 // Joined, Left, ServiceRequest
	ActorName  string // Joined
	Reason     HandlingResult // Left
	RawRequest string // ServiceRequest
	TimerToken uint64 // TimerTrigger
}

// NoneEvent builds a spurious/wakeup input event.
func NoneEvent() InputEvent { return InputEvent{Kind: EventNone} }

// StopEvent builds an input event reporting a caught signal.
func StopEvent(signal string) InputEvent { return InputEvent{Kind: EventStop, Signal: signal} }

// JoinedEvent builds an input event reporting a newly registered actor.
func JoinedEvent(uid uint64, name string) InputEvent {
	return InputEvent{Kind: EventJoined, ActorUID: uid, ActorName: name}
}

// LeftEvent builds an input event reporting a departing actor.
func LeftEvent(uid uint64, reason HandlingResult) InputEvent {
	return InputEvent{Kind: EventLeft, ActorUID: uid, Reason: reason}
}

// ServiceRequestEvent builds an input event carrying a raw SER request.
func ServiceRequestEvent(uid uint64, raw string) InputEvent {
	return InputEvent{Kind: EventServiceRequest, ActorUID: uid, RawRequest: raw}
}

// TimerTriggerEvent builds an input event reporting a timer transition.
func TimerTriggerEvent(token uint64) InputEvent {
	return InputEvent{Kind: EventTimerTrigger, TimerToken: token}
}
