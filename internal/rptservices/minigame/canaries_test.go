package minigame

import "testing"

func newCanariesOn(t *testing.T, rows [][]Square) *Canaries {
	t.Helper()
	grid, err := NewGrid(rows)
	if err != nil {
		t.Fatalf("NewGrid() error = %v", err)
	}
	base, err := NewBoardGame(grid, 1, 1, 1)
	if err != nil {
		t.Fatalf("NewBoardGame() error = %v", err)
	}
	return &Canaries{BoardGame: base}
}

func TestCanariesNormalMove(t *testing.T) {
	game := newCanariesOn(t, [][]Square{
		{White, Free, Free, Free},
		{Free, Free, Free, Free},
		{Free, Free, Free, Free},
		{Free, Free, Free, Free},
	})

	if _, err := game.Play(Coordinates{1, 1}, Coordinates{1, 2}); err != nil {
		t.Fatalf("Play() error = %v", err)
	}
	if s, _ := game.grid.At(Coordinates{1, 2}); s != White {
		t.Error("destination should hold the mover's pawn")
	}
	if !game.IsRoundTerminated() {
		t.Error("any move terminates the round in Canaries")
	}
}

func TestCanariesEatLeapsOverOwnPawn(t *testing.T) {
	game := newCanariesOn(t, [][]Square{
		{Black, Free, Free, Free},
		{White, Free, Free, Free},
		{White, Free, Free, Free},
		{Free, Free, Free, Free},
	})

	update, err := game.Play(Coordinates{3, 1}, Coordinates{1, 1})
	if err != nil {
		t.Fatalf("Play() error = %v", err)
	}

	if game.PawnsFor(PlayerBlack) != 0 {
		t.Errorf("black pawns = %d, want 0", game.PawnsFor(PlayerBlack))
	}
	if s, _ := game.grid.At(Coordinates{2, 1}); s != White {
		t.Error("the leapt-over pawn should be untouched")
	}
	if s, _ := game.grid.At(Coordinates{1, 1}); s != White {
		t.Error("destination should hold the mover's pawn")
	}
	if len(update.UpdatedSquares) != 2 {
		t.Errorf("UpdatedSquares = %+v, want 2 entries", update.UpdatedSquares)
	}
}

func TestCanariesRejectsDiagonalMove(t *testing.T) {
	game := newCanariesOn(t, [][]Square{
		{White, Free, Free, Free},
		{Free, Free, Free, Free},
		{Free, Free, Free, Free},
		{Free, Free, Free, Free},
	})

	if _, err := game.Play(Coordinates{1, 1}, Coordinates{2, 2}); err != ErrBadCoordinates {
		t.Errorf("diagonal move err = %v, want ErrBadCoordinates", err)
	}
}

func TestCanariesVictoryForOnStalemate(t *testing.T) {
	game := newCanariesOn(t, [][]Square{
		{White, Black, Free, Free},
		{Black, Free, Free, Free},
		{Free, Free, Free, Free},
		{Free, Free, Free, Free},
	})

	// White at (1,1) is boxed in by Black on both open orthogonal
	// neighbours and has no own pawn to leap over: blocked.
	winner, won := game.VictoryFor()
	if !won || winner != PlayerBlack {
		t.Errorf("VictoryFor() = %v, %v, want Black, true (White is blocked)", winner, won)
	}
}
