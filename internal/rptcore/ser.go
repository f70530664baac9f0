package rptcore

import "fmt"

// SERProtocol is the registry mapping service name -> Service, multiplexing
// request/response and broadcast events across named services. See
// spec.md §4.7.
type SERProtocol struct {
	services map[string]Service
	order    []string // registration order, for deterministic iteration
}

// NewSERProtocol registers the given services. Fails with
// ErrNameAlreadyRegistered if two services share a name.
func NewSERProtocol(services ...Service) (*SERProtocol, error) {
	p := &SERProtocol{services: make(map[string]Service, len(services))}
	for _, svc := range services {
		name := svc.Name()
		if _, exists := p.services[name]; exists {
			return nil, fmt.Errorf("%w: %s", ErrNameAlreadyRegistered, name)
		}
		p.services[name] = svc
		p.order = append(p.order, name)
	}
	return p, nil
}

// IsRegistered reports whether a service with the given name is running.
func (p *SERProtocol) IsRegistered(name string) bool {
	_, ok := p.services[name]
	return ok
}

// HandleServiceRequest parses raw as "REQUEST <RUID> <service> <data...>",
// dispatches to the named service's HandleRequest, and formats an
// RPTL-ready response string. RUID is preserved verbatim; this layer
// never interprets it.
func (p *SERProtocol) HandleServiceRequest(actorUID uint64, raw string) (string, error) {
	parser, err := NewTextParser(raw, 3)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidRequestFormat, err)
	}

	prefix, _ := parser.Word(0)
	if prefix != "REQUEST" {
		return "", fmt.Errorf("%w: expected REQUEST prefix, got %q", ErrInvalidRequestFormat, prefix)
	}

	ruid, _ := parser.Word(1)
	serviceName, _ := parser.Word(2)

	svc, ok := p.services[serviceName]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrServiceNotFound, serviceName)
	}

	result := svc.HandleRequest(actorUID, parser.Remainder())
	if result.OK() {
		return "RESPONSE " + ruid + " OK", nil
	}

	msg, _ := result.ErrorMessage()
	return "RESPONSE " + ruid + " KO " + msg, nil
}

// WaitingTimers aggregates WaitingTimers() across every registered
// service, in registration order. The Executor polls this once per loop
// iteration so a freshly Ready timer gets armed for real wall-clock
// measurement without any service needing backend access of its own.
func (p *SERProtocol) WaitingTimers() []*Timer {
	var ready []*Timer
	for _, name := range p.order {
		ready = append(ready, p.services[name].WaitingTimers()...)
	}
	return ready
}

// PollServiceEvent picks, across every registered service, the one whose
// front event has the smallest event ID, polls it, and returns the
// formatted "EVENT <service> <command>" string along with the event's
// target set. Returns ok=false when every service queue is empty. This is
// the SER Protocol's core ordering invariant: globally, events drain in
// the exact order they were emitted.
func (p *SERProtocol) PollServiceEvent() (line string, targets ServiceEvent, ok bool) {
	var emitter Service
	var lowestID uint64

	for _, name := range p.order {
		svc := p.services[name]
		id, has := svc.CheckEvent()
		if !has {
			continue
		}
		if emitter == nil || id < lowestID {
			emitter = svc
			lowestID = id
		}
	}

	if emitter == nil {
		return "", ServiceEvent{}, false
	}

	event, err := emitter.PollEvent()
	if err != nil {
		// Programmer error: CheckEvent said there was one.
		panic(fmt.Sprintf("rptcore: service %s reported an event but PollEvent failed: %v", emitter.Name(), err))
	}

	return "EVENT " + emitter.Name() + " " + event.Command(), event, true
}
