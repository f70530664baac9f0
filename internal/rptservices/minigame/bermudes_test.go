package minigame

import "testing"

func newBermudesOn(t *testing.T, rows [][]Square) *Bermudes {
	t.Helper()
	grid, err := NewGrid(rows)
	if err != nil {
		t.Fatalf("NewGrid() error = %v", err)
	}
	base, err := NewBoardGame(grid, 1, 1, 1)
	if err != nil {
		t.Fatalf("NewBoardGame() error = %v", err)
	}
	return &Bermudes{BoardGame: base}
}

func TestBermudesEliminationRemovesOpponentAtDestination(t *testing.T) {
	game := newBermudesOn(t, [][]Square{{White, Free, Black}})

	update, err := game.Play(Coordinates{1, 1}, Coordinates{1, 3})
	if err != nil {
		t.Fatalf("Play() error = %v", err)
	}

	if game.PawnsFor(PlayerBlack) != 0 {
		t.Errorf("black pawns = %d, want 0", game.PawnsFor(PlayerBlack))
	}
	if !game.IsRoundTerminated() {
		t.Error("an Elimination move must terminate the round")
	}
	if s, _ := game.grid.At(Coordinates{1, 3}); s != White {
		t.Error("destination should hold the mover's pawn")
	}
	if len(update.UpdatedSquares) != 2 {
		t.Errorf("UpdatedSquares = %+v, want 2 entries", update.UpdatedSquares)
	}
}

func TestBermudesEliminationRequiresAGap(t *testing.T) {
	game := newBermudesOn(t, [][]Square{{White, Black}})

	if _, err := game.Play(Coordinates{1, 1}, Coordinates{1, 2}); err != ErrBadCoordinates {
		t.Errorf("adjacent elimination err = %v, want ErrBadCoordinates", err)
	}
}

func TestBermudesFlipConvertsOpponentAndGainsAPawn(t *testing.T) {
	game := newBermudesOn(t, [][]Square{{White, Black, Free}})

	update, err := game.Play(Coordinates{1, 1}, Coordinates{1, 3})
	if err != nil {
		t.Fatalf("Play() error = %v", err)
	}

	if game.PawnsFor(PlayerWhite) != 2 || game.PawnsFor(PlayerBlack) != 0 {
		t.Errorf("pawns after flip = %d white / %d black, want 2/0",
			game.PawnsFor(PlayerWhite), game.PawnsFor(PlayerBlack))
	}
	if game.IsRoundTerminated() {
		t.Error("a Flip move must leave the chain open")
	}
	if s, _ := game.grid.At(Coordinates{1, 2}); s != White {
		t.Error("flipped square should now be White")
	}
	if len(update.UpdatedSquares) != 3 {
		t.Errorf("UpdatedSquares = %+v, want 3 entries", update.UpdatedSquares)
	}
}

func TestBermudesRejectsMoveOntoOwnPawn(t *testing.T) {
	game := newBermudesOn(t, [][]Square{{White, White}})

	if _, err := game.Play(Coordinates{1, 1}, Coordinates{1, 2}); err != ErrBadSquareState {
		t.Errorf("Play() onto own pawn err = %v, want ErrBadSquareState", err)
	}
}
