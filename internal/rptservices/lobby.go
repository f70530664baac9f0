package rptservices

import (
	"fmt"

	"github.com/sebas/rpt-server/internal/rptcore"
)

// Player is the side of the board an entrant has been assigned, returned
// by Lobby.AssignActor.
type Player int

const (
	PlayerWhite Player = iota
	PlayerBlack
)

func (p Player) String() string {
	if p == PlayerWhite {
		return "WHITE"
	}
	return "BLACK"
}

// MinigameStarter is the capability Lobby needs from the Minigame
// controller: start a fresh game once both players are ready. Declared
// here rather than imported from internal/rptservices/minigame so Lobby
// depends only on the shape it actually uses.
type MinigameStarter interface {
	Start(white, black uint64)
}

// entrant tracks one assigned player's actor UID and ready flag.
type entrant struct {
	actorUID uint64
	ready    bool
}

// Lobby waits for exactly two actors to ready up, then starts the
// configured Minigame after a cancellable countdown. Grounded on
// LobbyService.cpp/.hpp: two player slots (white assigned first, then
// black), a single starting_countdown_ Timer, READY toggling the sender's
// flag, and cancelCountdown() re-arming END_COUNTDOWN whenever the
// countdown was already Pending.
type Lobby struct {
	rptcore.ServiceBase

	minigame MinigameStarter

	white *entrant
	black *entrant

	readyCount int
	countdown  *rptcore.Timer
}

// NewLobby builds a Lobby that starts minigame countdownMs after both
// players ready up.
func NewLobby(ctx *rptcore.ServiceContext, minigame MinigameStarter, countdownMs uint) *Lobby {
	countdown := rptcore.NewTimer(ctx, countdownMs)
	return &Lobby{
		ServiceBase: rptcore.NewServiceBase(ctx, countdown),
		minigame:    minigame,
		countdown:   countdown,
	}
}

// Name implements rptcore.Service.
func (l *Lobby) Name() string { return "Lobby" }

// AssignActor binds uid to the first free player slot (white, then
// black). Fails if both slots are already taken.
func (l *Lobby) AssignActor(uid uint64) (Player, error) {
	if l.white == nil {
		l.white = &entrant{actorUID: uid}
		return PlayerWhite, nil
	}
	if l.black == nil {
		l.black = &entrant{actorUID: uid}
		return PlayerBlack, nil
	}
	return 0, fmt.Errorf("rptservices: lobby has no player slot available for actor %d", uid)
}

// RemoveActor unassigns uid from its player slot, cancelling the
// countdown and decrementing the ready count first if it was ready.
func (l *Lobby) RemoveActor(uid uint64) error {
	e, err := l.playerFor(uid)
	if err != nil {
		return err
	}

	if e.ready {
		l.cancelCountdown()
		l.readyCount--
	}

	if l.white == e {
		l.white = nil
	} else {
		l.black = nil
	}
	return nil
}

func (l *Lobby) playerFor(uid uint64) (*entrant, error) {
	if l.white != nil && l.white.actorUID == uid {
		return l.white, nil
	}
	if l.black != nil && l.black.actorUID == uid {
		return l.black, nil
	}
	return nil, fmt.Errorf("rptservices: actor %d isn't assigned to any player", uid)
}

// cancelCountdown clears the starting countdown, emitting END_COUNTDOWN
// first if clients were already notified of BEGIN_COUNTDOWN.
func (l *Lobby) cancelCountdown() {
	if l.countdown.IsPending() {
		l.EmitEvent(rptcore.NewBroadcastEvent("END_COUNTDOWN"))
	}
	l.countdown.Clear()
}

// HandleRequest implements rptcore.Service. READY is the only command.
func (l *Lobby) HandleRequest(actorUID uint64, srData string) rptcore.HandlingResult {
	parser, err := rptcore.NewTextParser(srData, 1)
	if err != nil {
		return rptcore.Failure("Only READY command is available for Lobby")
	}
	if word, _ := parser.Word(0); word != "READY" {
		return rptcore.Failure("Only READY command is available for Lobby")
	}

	e, err := l.playerFor(actorUID)
	if err != nil {
		return rptcore.Failure(err.Error())
	}

	e.ready = !e.ready
	if e.ready {
		l.readyCount++
		l.EmitEvent(rptcore.NewBroadcastEvent(fmt.Sprintf("READY_PLAYER %d", actorUID)))
	} else {
		l.readyCount--
		l.EmitEvent(rptcore.NewBroadcastEvent(fmt.Sprintf("WAITING_FOR_PLAYER %d", actorUID)))
	}

	if l.readyCount == 2 {
		if err := l.countdown.RequestCountdown(); err != nil {
			panic(err) // programmer error: readyCount==2 implies this is the first time since cancel/clear
		}
		white, black := l.white.actorUID, l.black.actorUID
		l.countdown.OnNextTrigger(func() {
			l.minigame.Start(white, black)
			l.EmitEvent(rptcore.NewBroadcastEvent("PLAYING"))
		})
		l.EmitEvent(rptcore.NewBroadcastEvent(fmt.Sprintf("BEGIN_COUNTDOWN %d", l.countdown.Countdown())))
	} else {
		l.cancelCountdown()
	}

	return rptcore.Success()
}

// NotifyWaiting must be called by the owner as soon as the underlying
// minigame stops: it resets both players' ready state and broadcasts
// WAITING so clients know the lobby is open again.
func (l *Lobby) NotifyWaiting() {
	if l.white != nil {
		l.white.ready = false
	}
	if l.black != nil {
		l.black.ready = false
	}
	l.readyCount = 0
	l.EmitEvent(rptcore.NewBroadcastEvent("WAITING"))
}
