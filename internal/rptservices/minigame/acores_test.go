package minigame

import "testing"

func TestAcoresNormalMoveUpdatesGridAndSquares(t *testing.T) {
	game, err := NewAcores()
	if err != nil {
		t.Fatalf("NewAcores() error = %v", err)
	}

	update, err := game.Play(Coordinates{3, 2}, Coordinates{3, 3})
	if err != nil {
		t.Fatalf("Play() error = %v", err)
	}

	want := []SquareUpdate{{Coordinates{3, 2}, Free}, {Coordinates{3, 3}, White}}
	if len(update.UpdatedSquares) != len(want) {
		t.Fatalf("UpdatedSquares = %+v, want %+v", update.UpdatedSquares, want)
	}
	for i, su := range update.UpdatedSquares {
		if su != want[i] {
			t.Errorf("UpdatedSquares[%d] = %+v, want %+v", i, su, want[i])
		}
	}

	if s, _ := game.grid.At(Coordinates{3, 2}); s != Free {
		t.Error("origin square should be Free after move")
	}
	if s, _ := game.grid.At(Coordinates{3, 3}); s != White {
		t.Error("destination square should be White after move")
	}
	if !game.IsRoundTerminated() {
		t.Error("a Normal move must terminate the round")
	}
	if white, black := game.PawnsFor(PlayerWhite), game.PawnsFor(PlayerBlack); white != 12 || black != 12 {
		t.Errorf("pawn counts = %d/%d, want 12/12 (no capture)", white, black)
	}
}

func TestAcoresRejectsMoveOntoOccupiedSquare(t *testing.T) {
	game, err := NewAcores()
	if err != nil {
		t.Fatalf("NewAcores() error = %v", err)
	}

	if _, err := game.Play(Coordinates{1, 1}, Coordinates{2, 1}); err != ErrBadSquareState {
		t.Errorf("Play() onto occupied square err = %v, want ErrBadSquareState", err)
	}
}

func TestAcoresJumpCapturesAndAllowsChaining(t *testing.T) {
	// A grid shaped so white at (3,1) can jump black at (3,2) landing on
	// the free square at (3,3).
	grid, err := NewGrid([][]Square{
		{Free, Free, Free, Free, Free},
		{Free, Free, Free, Free, Free},
		{White, Black, Free, Free, Free},
		{Free, Free, Free, Free, Free},
		{Free, Free, Free, Free, Free},
	})
	if err != nil {
		t.Fatalf("NewGrid() error = %v", err)
	}
	base, err := NewBoardGame(grid, 1, 1, 1)
	if err != nil {
		t.Fatalf("NewBoardGame() error = %v", err)
	}
	game := &Acores{BoardGame: base}

	update, err := game.Play(Coordinates{3, 1}, Coordinates{3, 3})
	if err != nil {
		t.Fatalf("Play() error = %v", err)
	}

	if game.PawnsFor(PlayerBlack) != 0 {
		t.Errorf("black pawns = %d, want 0 after capture", game.PawnsFor(PlayerBlack))
	}
	if game.IsRoundTerminated() {
		t.Error("a Jump move must leave the chain open")
	}
	if s, _ := game.grid.At(Coordinates{3, 2}); s != Free {
		t.Error("jumped-over square should be Free")
	}

	last := update.UpdatedSquares[len(update.UpdatedSquares)-1]
	if last != (SquareUpdate{Coordinates{3, 3}, White}) {
		t.Errorf("final square update = %+v, want destination filled with White", last)
	}

	winner, won := game.VictoryFor()
	if !won || winner != PlayerWhite {
		t.Errorf("VictoryFor() = %v, %v, want White, true", winner, won)
	}
}

func TestAcoresNextRoundResetsChain(t *testing.T) {
	game, err := NewAcores()
	if err != nil {
		t.Fatalf("NewAcores() error = %v", err)
	}

	if _, err := game.Play(Coordinates{3, 2}, Coordinates{3, 3}); err != nil {
		t.Fatalf("Play() error = %v", err)
	}

	next, err := game.NextRound()
	if err != nil {
		t.Fatalf("NextRound() error = %v", err)
	}
	if next != PlayerBlack {
		t.Errorf("NextRound() = %v, want Black", next)
	}
	if game.IsRoundTerminated() {
		t.Error("IsRoundTerminated() should reset for the new player")
	}
}
