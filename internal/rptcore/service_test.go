package rptcore

import (
	"errors"
	"testing"
)

// stubService is the minimal Service used across rptcore tests: it embeds
// ServiceBase and answers every request according to a canned result.
type stubService struct {
	ServiceBase
	name   string
	result HandlingResult
	lastActor uint64
	lastData  string
}

func newStubService(ctx *ServiceContext, name string, result HandlingResult, timers ...*Timer) *stubService {
	return &stubService{ServiceBase: NewServiceBase(ctx, timers...), name: name, result: result}
}

func (s *stubService) Name() string { return s.name }

func (s *stubService) HandleRequest(actorUID uint64, srData string) HandlingResult {
	s.lastActor = actorUID
	s.lastData = srData
	return s.result
}

func TestServiceBaseEventFIFO(t *testing.T) {
	ctx := NewServiceContext()
	svc := newStubService(ctx, "Chat", Success())

	svc.EmitEvent(NewBroadcastEvent("first"))
	svc.EmitEvent(NewBroadcastEvent("second"))

	id, ok := svc.CheckEvent()
	if !ok {
		t.Fatal("CheckEvent() = false, want true")
	}
	if id != 0 {
		t.Errorf("CheckEvent() id = %d, want 0", id)
	}

	first, err := svc.PollEvent()
	if err != nil {
		t.Fatalf("PollEvent() error = %v", err)
	}
	if first.Command() != "first" {
		t.Errorf("PollEvent() command = %q, want %q", first.Command(), "first")
	}

	second, err := svc.PollEvent()
	if err != nil {
		t.Fatalf("PollEvent() error = %v", err)
	}
	if second.Command() != "second" {
		t.Errorf("PollEvent() command = %q, want %q", second.Command(), "second")
	}

	if _, ok := svc.CheckEvent(); ok {
		t.Error("CheckEvent() = true after draining queue, want false")
	}
	if _, err := svc.PollEvent(); !errors.Is(err, ErrEmptyEventsQueue) {
		t.Errorf("PollEvent() on empty queue error = %v, want ErrEmptyEventsQueue", err)
	}
}

func TestServiceBaseWatchTimer(t *testing.T) {
	ctx := NewServiceContext()
	timer := NewTimer(ctx, 500)
	svc := newStubService(ctx, "Lobby", Success(), timer)

	if err := svc.WatchTimer(timer); !errors.Is(err, ErrBadWatchedToken) {
		t.Errorf("WatchTimer() on already-watched timer error = %v, want ErrBadWatchedToken", err)
	}

	if err := svc.ForgetTimer(timer); err != nil {
		t.Fatalf("ForgetTimer() error = %v", err)
	}
	if err := svc.ForgetTimer(timer); !errors.Is(err, ErrBadWatchedToken) {
		t.Errorf("ForgetTimer() on unwatched timer error = %v, want ErrBadWatchedToken", err)
	}
}

func TestServiceBaseWaitingTimers(t *testing.T) {
	ctx := NewServiceContext()
	ready := NewTimer(ctx, 500)
	idle := NewTimer(ctx, 500)
	svc := newStubService(ctx, "Lobby", Success(), ready, idle)

	ready.RequestCountdown()

	waiting := svc.WaitingTimers()
	if len(waiting) != 1 || waiting[0] != ready {
		t.Errorf("WaitingTimers() = %v, want only the Ready timer", waiting)
	}
}
