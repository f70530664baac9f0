package minigame

import (
	"testing"

	"github.com/sebas/rpt-server/internal/rptcore"
)

func drainServiceEvents(t *testing.T, svc *Service) []string {
	t.Helper()
	var commands []string
	for {
		if _, ok := svc.CheckEvent(); !ok {
			break
		}
		event, err := svc.PollEvent()
		if err != nil {
			t.Fatalf("PollEvent() error = %v", err)
		}
		commands = append(commands, event.Command())
	}
	return commands
}

func TestMinigameServiceStartEmitsStartAndFirstRound(t *testing.T) {
	ctx := rptcore.NewServiceContext()
	svc := NewService(ctx, KindAcores)

	svc.Start(0, 1)

	commands := drainServiceEvents(t, svc)
	want := []string{"START 0 1", "ROUND_FOR WHITE"}
	if len(commands) != len(want) {
		t.Fatalf("commands = %v, want %v", commands, want)
	}
	for i := range want {
		if commands[i] != want[i] {
			t.Errorf("commands[%d] = %q, want %q", i, commands[i], want[i])
		}
	}
}

// TestMinigameServiceMoveAndRoundEnd replicates an Açores opening move:
// white player 0 plays MOVE 3 2 3 3 on the initial grid, advancing into
// the center free square and ending the round.
func TestMinigameServiceMoveAndRoundEnd(t *testing.T) {
	ctx := rptcore.NewServiceContext()
	svc := NewService(ctx, KindAcores)

	svc.Start(0, 1)
	drainServiceEvents(t, svc)

	result := svc.HandleRequest(0, "MOVE 3 2 3 3")
	if !result.OK() {
		msg, _ := result.ErrorMessage()
		t.Fatalf("HandleRequest(MOVE) failed: %s", msg)
	}

	commands := drainServiceEvents(t, svc)
	want := []string{
		"SQUARE_UPDATE 3 2 FREE",
		"SQUARE_UPDATE 3 3 WHITE",
		"MOVED 3 2 3 3",
		"PAWN_COUNTS 12 12",
		"ROUND_FOR BLACK",
	}
	if len(commands) != len(want) {
		t.Fatalf("commands = %v, want %v", commands, want)
	}
	for i := range want {
		if commands[i] != want[i] {
			t.Errorf("commands[%d] = %q, want %q", i, commands[i], want[i])
		}
	}
}

func TestMinigameServiceRejectsOutOfTurnActor(t *testing.T) {
	ctx := rptcore.NewServiceContext()
	svc := NewService(ctx, KindAcores)

	svc.Start(0, 1)
	drainServiceEvents(t, svc)

	result := svc.HandleRequest(1, "MOVE 3 2 3 3")
	if result.OK() {
		t.Fatal("black playing before white's turn should be rejected")
	}
	msg, _ := result.ErrorMessage()
	if msg != "This is not your turn" {
		t.Errorf("ErrorMessage() = %q, want %q", msg, "This is not your turn")
	}
}

func TestMinigameServiceRejectsRequestsWhenStopped(t *testing.T) {
	ctx := rptcore.NewServiceContext()
	svc := NewService(ctx, KindAcores)

	result := svc.HandleRequest(0, "MOVE 1 1 1 2")
	if result.OK() {
		t.Fatal("a request before Start should be rejected")
	}
	msg, _ := result.ErrorMessage()
	if msg != "Game is stopped" {
		t.Errorf("ErrorMessage() = %q, want %q", msg, "Game is stopped")
	}
}

func TestMinigameServiceEndWithoutAMoveFails(t *testing.T) {
	ctx := rptcore.NewServiceContext()
	svc := NewService(ctx, KindAcores)

	svc.Start(0, 1)
	drainServiceEvents(t, svc)

	result := svc.HandleRequest(0, "END")
	if result.OK() {
		t.Fatal("END without a prior move should fail (can't skip a round)")
	}
}

func TestMinigameServiceImplementsLobbyStarterShape(t *testing.T) {
	var _ interface{ Start(white, black uint64) } = NewService(rptcore.NewServiceContext(), KindCanaries)
}
