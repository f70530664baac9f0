package minigame

// acoresMove records which kind of move the current player last played,
// so IsRoundTerminated knows whether a jump chain can continue.
type acoresMove int

const (
	acoresMoveNone acoresMove = iota
	acoresMoveNormal
	acoresMoveJump
)

// acoresGrid is the 5x5 starting position: 12 pawns each side, one free
// square at the center. Grounded on Acores.hpp's INITIAL_GRID_.
var acoresGrid = [][]Square{
	{White, White, White, Black, Black},
	{White, White, White, Black, Black},
	{White, White, Free, Black, Black},
	{White, White, Black, Black, Black},
	{White, White, Black, Black, Black},
}

// Acores implements the "Açores" minigame: a pawn moves one square
// (Normal) or jumps an adjacent opponent pawn to capture it (Jump), with
// jumps chainable within the same round. Grounded on Acores.hpp/.cpp.
type Acores struct {
	BoardGame
	lastMove acoresMove
}

// NewAcores builds a fresh Açores game on its starting grid.
func NewAcores() (*Acores, error) {
	grid, err := NewGrid(acoresGrid)
	if err != nil {
		return nil, err
	}
	base, err := NewBoardGame(grid, 12, 12, 1)
	if err != nil {
		return nil, err
	}
	return &Acores{BoardGame: base}, nil
}

// NextRound resets the jump chain before switching players.
func (a *Acores) NextRound() (Player, error) {
	a.lastMove = acoresMoveNone
	return a.BoardGame.NextRound()
}

// IsRoundTerminated reports true only once a Normal move has been played;
// a Jump leaves the chain open for another Jump.
func (a *Acores) IsRoundTerminated() bool {
	return a.lastMove == acoresMoveNormal
}

// Play moves the pawn at from to to, either as a Normal 1-square move or
// as a Jump over an adjacent opponent pawn.
func (a *Acores) Play(from, to Coordinates) (GridUpdate, error) {
	origin, err := a.grid.At(from)
	if err != nil {
		return GridUpdate{}, err
	}
	if origin != a.ColorFor(a.CurrentRound()) {
		return GridUpdate{}, ErrBadSquareState
	}

	move, err := NewAxisIterator(a.grid, from, to, EveryDirection)
	if err != nil {
		return GridUpdate{}, err
	}

	update := GridUpdate{MoveOrigin: from, MoveDestination: to}
	moveRange := -move.DistanceFromDestination()

	switch moveRange {
	case 1:
		err = a.playNormal(&update, move)
	case 2:
		err = a.playJump(&update, move)
	default:
		err = ErrBadCoordinates
	}
	if err != nil {
		return GridUpdate{}, err
	}

	a.Moved()
	return update, nil
}

func (a *Acores) playNormal(update *GridUpdate, move *AxisIterator) error {
	destination, err := move.MoveForward()
	if err != nil {
		return err
	}
	if destination != Free {
		return ErrBadSquareState
	}

	color := a.ColorFor(a.CurrentRound())
	if err := a.grid.Set(update.MoveOrigin, Free); err != nil {
		return err
	}
	if err := a.grid.Set(update.MoveDestination, color); err != nil {
		return err
	}

	update.UpdatedSquares = append(update.UpdatedSquares,
		SquareUpdate{update.MoveOrigin, Free},
		SquareUpdate{update.MoveDestination, color},
	)

	a.lastMove = acoresMoveNormal
	return nil
}

func (a *Acores) playJump(update *GridUpdate, move *AxisIterator) error {
	color := a.ColorFor(a.CurrentRound())
	opponentColor, _ := Flip(color)

	skipped, err := move.MoveForward()
	if err != nil {
		return err
	}
	skippedPosition := move.CurrentPosition()
	if skipped != opponentColor {
		return ErrBadSquareState
	}

	destination, err := move.MoveForward()
	if err != nil {
		return err
	}
	if destination != Free {
		return ErrBadSquareState
	}

	if err := a.grid.Set(update.MoveOrigin, Free); err != nil {
		return err
	}
	if err := a.grid.Set(skippedPosition, Free); err != nil {
		return err
	}
	if err := a.grid.Set(update.MoveDestination, color); err != nil {
		return err
	}

	opponent := PlayerBlack
	if a.CurrentRound() == PlayerBlack {
		opponent = PlayerWhite
	}
	a.decrementPawns(opponent)

	update.UpdatedSquares = append(update.UpdatedSquares,
		SquareUpdate{update.MoveOrigin, Free},
		SquareUpdate{skippedPosition, Free},
		SquareUpdate{update.MoveDestination, color},
	)

	a.lastMove = acoresMoveJump
	return nil
}
