package rptnetwork

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sebas/rpt-server/internal/rptcore"
)

// Backend is the transport-agnostic implementation of rptcore.Backend: it
// owns every client session, the actor registry, and the RPTL dispatch
// logic described in spec.md §4.8. A concrete Transport (wsbackend) only
// ever notifies it of connects, raw inbound lines, and disconnects via the
// Notify* methods, which are safe to call from any goroutine.
type Backend struct {
	transport   Transport
	actorsLimit int

	rawEvents chan netEvent
	pending   []rptcore.InputEvent // Left events queued by ClosePipelineWith, drained before rawEvents

	sessions map[uint64]*session // by client token
	actors   map[uint64]*session // by actor UID
	names    map[string]uint64   // display name -> actor UID

	closed bool
}

// NewBackend constructs a Backend bound to the given Transport. queueSize
// sizes the buffered channel transport goroutines enqueue onto.
func NewBackend(transport Transport, actorsLimit, queueSize int) *Backend {
	return &Backend{
		transport:   transport,
		actorsLimit: actorsLimit,
		rawEvents:   make(chan netEvent, queueSize),
		sessions:    make(map[uint64]*session),
		actors:      make(map[uint64]*session),
		names:       make(map[string]uint64),
	}
}

// Notify* methods: called by transport goroutines, never by the executor.

// NotifyConnected records a freshly accepted connection.
func (b *Backend) NotifyConnected(token uint64, remoteAddr string) {
	b.rawEvents <- netEvent{kind: netConnected, token: token, remoteAddr: remoteAddr}
}

// NotifyMessage delivers one raw RPTL line read from token's connection.
func (b *Backend) NotifyMessage(token uint64, line string) {
	b.rawEvents <- netEvent{kind: netMessage, token: token, line: line}
}

// NotifyDisconnected reports that token's connection is gone. err is nil
// for a clean close.
func (b *Backend) NotifyDisconnected(token uint64, err error) {
	b.rawEvents <- netEvent{kind: netDisconnected, token: token, err: err}
}

// Closed implements rptcore.Backend.
func (b *Backend) Closed() bool { return b.closed }

// Close implements rptcore.Backend: stops the executor loop on the next
// iteration. Does not forcibly disconnect sessions; the transport is
// responsible for tearing down listeners separately.
func (b *Backend) Close() { b.closed = true }

// ActorCount reports how many actors are currently logged in. Exposed so
// Admin's STATS command can report a live snapshot without this package
// depending on rptservices.
func (b *Backend) ActorCount() int { return len(b.actors) }

// SetTransport binds the Transport this Backend sends output through.
// Split from NewBackend because wsbackend.Listen and LoopbackTransport
// both need an already-constructed Backend to notify; callers build the
// Backend first, build the Transport from it, then wire it back here
// before starting the Executor.
func (b *Backend) SetTransport(transport Transport) {
	b.transport = transport
}

// WaitForInput implements rptcore.Backend. It drains queued Left events
// first, then blocks on the raw transport channel and performs the actual
// RPTL dispatch, the only place session/actor state is mutated.
func (b *Backend) WaitForInput() rptcore.InputEvent {
	if len(b.pending) > 0 {
		event := b.pending[0]
		b.pending = b.pending[1:]
		return event
	}

	raw := <-b.rawEvents

	switch raw.kind {
	case netConnected:
		b.addClient(raw.token, raw.remoteAddr)
		return rptcore.NoneEvent()

	case netMessage:
		return b.handleMessage(raw.token, raw.line)

	case netDisconnected:
		return b.killClient(raw.token, raw.err)

	case netTimerFired:
		if err := raw.timer.Trigger(); err != nil {
			slog.Error("[Network] timer fired in unexpected state", "error", err)
			return rptcore.NoneEvent()
		}
		return rptcore.TimerTriggerEvent(raw.timer.Token())

	default:
		return rptcore.NoneEvent()
	}
}

// ArmTimer implements rptcore.Backend. It transitions t out of Ready
// (BeginCountdown) and schedules a real wall-clock wakeup that feeds a
// TimerTrigger Input Event back through rawEvents, so the actual state
// transition to Triggered still only ever happens on the executor
// goroutine inside WaitForInput, preserving the single-writer invariant.
func (b *Backend) ArmTimer(t *rptcore.Timer) {
	countdownMs, err := t.BeginCountdown()
	if err != nil {
		slog.Error("[Network] ArmTimer: timer not Ready", "error", err)
		return
	}
	time.AfterFunc(time.Duration(countdownMs)*time.Millisecond, func() {
		b.rawEvents <- netEvent{kind: netTimerFired, timer: t}
	})
}

func (b *Backend) addClient(token uint64, remoteAddr string) {
	if existing, ok := b.sessions[token]; ok && existing.alive {
		slog.Error("[Network] transport reused a live token", "token", token)
		return
	}
	b.sessions[token] = newSession(token, remoteAddr)
	slog.Debug("[Network] client connected", "token", token, "remote_addr", remoteAddr)
}

// killClient marks a session dead and, if it had a bound actor, runs the
// same disconnect routine closePipelineWith uses, returning the resulting
// Left event (or None if no actor was bound).
func (b *Backend) killClient(token uint64, transportErr error) rptcore.InputEvent {
	s, ok := b.sessions[token]
	if !ok {
		return rptcore.NoneEvent()
	}
	s.alive = false

	if !s.hasActor {
		delete(b.sessions, token)
		return rptcore.NoneEvent()
	}

	reason := rptcore.Success()
	if transportErr != nil {
		reason = rptcore.Failure(transportErr.Error())
	}
	return b.disconnectActor(s.actorUID, reason)
}

// handleMessage dispatches one inbound RPTL line according to whether its
// owning session has a bound actor (spec.md §4.8).
func (b *Backend) handleMessage(token uint64, raw string) rptcore.InputEvent {
	s, ok := b.sessions[token]
	if !ok || !s.alive {
		return rptcore.NoneEvent()
	}

	if !s.hasActor {
		return b.handleUnregistered(s, raw)
	}
	return b.handleRegistered(s, raw)
}

func (b *Backend) handleUnregistered(s *session, raw string) rptcore.InputEvent {
	first, _ := NewFirstWord(raw)

	switch first {
	case "CHECKOUT":
		b.privateMessage(s.token, fmt.Sprintf("AVAILABILITY %d %d", len(b.actors), b.actorsLimit))
		return rptcore.NoneEvent()

	case "LOGIN":
		return b.handleLogin(s, raw)

	default:
		return b.killWithBadMessage(s, raw)
	}
}

func (b *Backend) handleLogin(s *session, raw string) rptcore.InputEvent {
	parser, err := rptcore.NewTextParser(raw, 3)
	if err != nil {
		return b.killWithBadMessage(s, raw)
	}
	uidWord, _ := parser.Word(1)
	name, _ := parser.Word(2)
	uid, err := strconv.ParseUint(uidWord, 10, 64)
	if err != nil {
		return b.killWithBadMessage(s, raw)
	}

	if len(b.actors) >= b.actorsLimit {
		return b.killClientWithReason(s, fmt.Sprintf("Limit of %d reached", b.actorsLimit))
	}
	if _, taken := b.actors[uid]; taken {
		return b.killClientWithReason(s, fmt.Sprintf("actor %d already registered", uid))
	}
	if _, taken := b.names[name]; taken {
		return b.killClientWithReason(s, fmt.Sprintf("name %q already taken", name))
	}

	s.hasActor = true
	s.actorUID = uid
	b.actors[uid] = s
	b.names[name] = uid

	b.broadcastMessage(fmt.Sprintf("LOGGED_IN %d %s", uid, name))

	var roster strings.Builder
	roster.WriteString("REGISTRATION")
	for otherUID := range b.actors {
		n := nameForUID(b.names, otherUID)
		roster.WriteString(fmt.Sprintf(" %d %s", otherUID, n))
	}
	b.privateMessage(s.token, roster.String())

	slog.Info("[Network] actor joined", "uid", uid, "name", name)
	return rptcore.JoinedEvent(uid, name)
}

func (b *Backend) handleRegistered(s *session, raw string) rptcore.InputEvent {
	first, err := NewFirstWord(raw)
	if err != nil {
		return b.killWithBadMessage(s, raw)
	}

	switch first {
	case "SERVICE":
		parser, parseErr := rptcore.NewTextParser(raw, 1)
		if parseErr != nil {
			return b.killWithBadMessage(s, raw)
		}
		srData := parser.Remainder()
		correlationID := uuid.NewString()
		slog.Debug("[Network] service request", "uid", s.actorUID, "correlation_id", correlationID)
		return rptcore.ServiceRequestEvent(s.actorUID, srData)

	case "LOGOUT":
		return b.disconnectActor(s.actorUID, rptcore.Success())

	default:
		return b.killWithBadMessage(s, raw)
	}
}

// disconnectActor is the shared core of LOGOUT and ClosePipelineWith: unbind
// the actor, notify everyone, and build the resulting Left event.
func (b *Backend) disconnectActor(uid uint64, reason rptcore.HandlingResult) rptcore.InputEvent {
	s, ok := b.actors[uid]
	if !ok {
		return rptcore.NoneEvent()
	}

	delete(b.actors, uid)
	name := nameForUID(b.names, uid)
	delete(b.names, name)
	s.hasActor = false
	s.alive = false

	interrupt := "INTERRUPT"
	if !reason.OK() {
		msg, _ := reason.ErrorMessage()
		interrupt += " " + msg
	}
	b.privateMessage(s.token, interrupt)
	b.broadcastMessage(fmt.Sprintf("LOGGED_OUT %d", uid))

	slog.Info("[Network] actor left", "uid", uid, "ok", reason.OK())
	return rptcore.LeftEvent(uid, reason)
}

func (b *Backend) killWithBadMessage(s *session, raw string) rptcore.InputEvent {
	err := &BadClientMessage{Token: s.token, Line: raw}
	slog.Warn("[Network] bad client message", "token", s.token, "line", raw)
	if s.hasActor {
		return b.disconnectActor(s.actorUID, rptcore.Failure(err.Error()))
	}
	s.alive = false
	delete(b.sessions, s.token)
	b.transport.CloseClient(s.token)
	return rptcore.NoneEvent()
}

func (b *Backend) killClientWithReason(s *session, reason string) rptcore.InputEvent {
	slog.Warn("[Network] rejecting client", "token", s.token, "reason", reason)
	_ = b.transport.Send(s.token, []byte("INTERRUPT "+reason))
	s.alive = false
	delete(b.sessions, s.token)
	b.transport.CloseClient(s.token)
	return rptcore.NoneEvent()
}

// ReplyTo implements rptcore.Backend.
func (b *Backend) ReplyTo(actorUID uint64, srResponse string) {
	if s, ok := b.actors[actorUID]; ok {
		b.privateMessage(s.token, "SERVICE "+srResponse)
	}
}

// ClosePipelineWith implements rptcore.Backend. Unlike disconnectActor
// called inline from handleRegistered, this can be invoked from outside
// WaitForInput (e.g. the executor draining an Admin KICKED event), so the
// resulting Left event is queued for the next WaitForInput call instead of
// returned directly.
func (b *Backend) ClosePipelineWith(actorUID uint64, reason rptcore.HandlingResult) {
	event := b.disconnectActor(actorUID, reason)
	if event.Kind != rptcore.EventNone {
		b.pending = append(b.pending, event)
	}
}

// OutputEvent implements rptcore.Backend. An Admin "KICKED <uid>" event is
// given no special executor case (per SPEC_FULL.md §4.10): the backend
// recognizes it here, the same way it would any other targeted event, and
// additionally runs ClosePipelineWith for the targeted actor.
func (b *Backend) OutputEvent(line string, targets rptcore.ServiceEvent) {
	payload := "SERVICE " + line
	if targets.TargetEveryone() {
		b.broadcastMessage(payload)
		return
	}
	uids, err := targets.Targets()
	if err != nil {
		slog.Error("[Network] service event with neither broadcast nor targets", "line", line)
		return
	}
	for uid := range uids {
		if s, ok := b.actors[uid]; ok {
			b.privateMessage(s.token, payload)
		}
	}

	if isAdminKickedEvent(line) {
		for uid := range uids {
			b.ClosePipelineWith(uid, rptcore.Failure("kicked by admin"))
		}
	}
}

// isAdminKickedEvent reports whether line is an "EVENT Admin KICKED ..."
// line, the one service event the Network Backend itself acts on.
func isAdminKickedEvent(line string) bool {
	parser, err := rptcore.NewTextParser(line, 2)
	if err != nil {
		return false
	}
	prefix, _ := parser.Word(0)
	service, _ := parser.Word(1)
	if prefix != "EVENT" || service != "Admin" {
		return false
	}
	return strings.HasPrefix(parser.Remainder(), "KICKED ")
}

// Synchronize implements rptcore.Backend: flushes every session's outbound
// FIFO, then removes any session that died and has nothing left queued.
func (b *Backend) Synchronize() {
	for token, s := range b.sessions {
		for len(s.outbound) > 0 {
			msg := s.outbound[0]
			if err := b.transport.Send(token, msg); err != nil {
				slog.Warn("[Network] send failed, dropping session", "token", token, "error", err)
				s.alive = false
				s.outbound = nil
				break
			}
			s.outbound = s.outbound[1:]
		}
		if !s.alive && len(s.outbound) == 0 {
			delete(b.sessions, token)
			b.transport.CloseClient(token)
		}
	}
}

func (b *Backend) privateMessage(token uint64, msg string) {
	if s, ok := b.sessions[token]; ok {
		s.enqueue([]byte(msg))
	}
}

func (b *Backend) broadcastMessage(msg string) {
	buf := []byte(msg)
	for _, s := range b.actors {
		s.enqueue(buf)
	}
}

func nameForUID(names map[string]uint64, uid uint64) string {
	for name, u := range names {
		if u == uid {
			return name
		}
	}
	return ""
}

// NewFirstWord extracts the first whitespace-delimited word of raw using
// the same separator convention as rptcore.TextParser.
func NewFirstWord(raw string) (string, error) {
	p, err := rptcore.NewTextParser(raw, 1)
	if err != nil {
		return "", err
	}
	return p.Word(0)
}
