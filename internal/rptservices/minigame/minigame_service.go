package minigame

import (
	"fmt"
	"strconv"

	"github.com/sebas/rpt-server/internal/rptcore"
)

// Kind selects which minigame a Service instance runs.
type Kind int

const (
	KindAcores Kind = iota
	KindBermudes
	KindCanaries
)

// newGame builds a fresh Game for k.
func newGame(k Kind) (Game, error) {
	switch k {
	case KindAcores:
		return NewAcores()
	case KindBermudes:
		return NewBermudes()
	case KindCanaries:
		return NewCanaries()
	default:
		return nil, fmt.Errorf("minigame: unknown kind %d", k)
	}
}

// Service runs one Kind of minigame once two actors are assigned and
// Start is called, driving it round by round through MOVE/END SRs.
// Grounded on MinigameService.hpp/.cpp; emits SQUARE_UPDATE rather than
// the original's SQUARE_STATE and reports both the move's origin and
// destination squares rather than leaving the origin implicit in MOVED
// alone, per spec.md §6.4's literal wire format.
type Service struct {
	rptcore.ServiceBase

	kind Kind
	game Game

	whiteActor uint64
	blackActor uint64
}

// NewService builds a Minigame service for the given Kind. No game runs
// until Start is called.
func NewService(ctx *rptcore.ServiceContext, kind Kind) *Service {
	return &Service{ServiceBase: rptcore.NewServiceBase(ctx), kind: kind}
}

// Name implements rptcore.Service.
func (s *Service) Name() string { return "Minigame" }

// Start begins a new game between the given actors. Implements
// rptservices.MinigameStarter so Lobby can drive it without importing
// this package's concrete types.
func (s *Service) Start(white, black uint64) {
	game, err := newGame(s.kind)
	if err != nil {
		panic(err) // programmer error: kind is fixed at construction
	}

	s.game = game
	s.whiteActor = white
	s.blackActor = black

	s.EmitEvent(rptcore.NewBroadcastEvent(fmt.Sprintf("START %d %d", white, black)))
	s.EmitEvent(rptcore.NewBroadcastEvent("ROUND_FOR WHITE"))
}

// HandleRequest implements rptcore.Service.
func (s *Service) HandleRequest(actorUID uint64, srData string) rptcore.HandlingResult {
	if s.game == nil {
		return rptcore.Failure("Game is stopped")
	}

	expectedActor := s.whiteActor
	if s.game.CurrentRound() == PlayerBlack {
		expectedActor = s.blackActor
	}
	if actorUID != expectedActor {
		return rptcore.Failure("This is not your turn")
	}

	parser, err := rptcore.NewTextParser(srData, 1)
	if err != nil {
		return rptcore.Failure("unknown Minigame command")
	}
	action, _ := parser.Word(0)

	switch action {
	case "MOVE":
		return s.handleMove(parser.Remainder())
	case "END":
		return s.handleEnd()
	default:
		return rptcore.Failure("unknown Minigame command")
	}
}

func (s *Service) handleMove(args string) rptcore.HandlingResult {
	parser, err := rptcore.NewTextParser(args, 4)
	if err != nil {
		return rptcore.Failure("MOVE requires 4 coordinates")
	}

	var values [4]int
	for i := range values {
		word, _ := parser.Word(i)
		v, convErr := strconv.Atoi(word)
		if convErr != nil {
			return rptcore.Failure(fmt.Sprintf("MOVE coordinate #%d isn't a number", i))
		}
		values[i] = v
	}

	from := Coordinates{Line: values[0], Column: values[1]}
	to := Coordinates{Line: values[2], Column: values[3]}

	if s.game.IsRoundTerminated() {
		return rptcore.Failure("Cannot make any move, round terminated")
	}

	update, err := s.game.Play(from, to)
	if err != nil {
		return rptcore.Failure(err.Error())
	}

	for _, su := range update.UpdatedSquares {
		s.EmitEvent(rptcore.NewBroadcastEvent(
			fmt.Sprintf("SQUARE_UPDATE %d %d %s", su.Position.Line, su.Position.Column, su.State)))
	}
	s.EmitEvent(rptcore.NewBroadcastEvent(
		fmt.Sprintf("MOVED %d %d %d %d", from.Line, from.Column, to.Line, to.Column)))
	s.EmitEvent(rptcore.NewBroadcastEvent(
		fmt.Sprintf("PAWN_COUNTS %d %d", s.game.PawnsFor(PlayerWhite), s.game.PawnsFor(PlayerBlack))))

	if winner, won := s.game.VictoryFor(); won {
		s.EmitEvent(rptcore.NewBroadcastEvent("VICTORY_FOR " + winner.String()))
		s.game = nil
		s.EmitEvent(rptcore.NewBroadcastEvent("STOP"))
	} else if s.game.IsRoundTerminated() {
		s.emitNextRound()
	}

	return rptcore.Success()
}

func (s *Service) handleEnd() rptcore.HandlingResult {
	if err := s.emitNextRound(); err != nil {
		return rptcore.Failure(err.Error())
	}
	return rptcore.Success()
}

func (s *Service) emitNextRound() error {
	next, err := s.game.NextRound()
	if err != nil {
		return err
	}
	s.EmitEvent(rptcore.NewBroadcastEvent("ROUND_FOR " + next.String()))
	return nil
}
