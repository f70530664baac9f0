package minigame

// bermudesMove records which kind of move the current player last played,
// the same chain-tracking shape as Acores's move kind.
type bermudesMove int

const (
	bermudesMoveNone bermudesMove = iota
	bermudesMoveElimination
	bermudesMoveFlip
)

// bermudesGrid is the 9x9 starting position: 3 full black rows, 3 empty
// rows, 3 full white rows. Grounded on Bermudes.hpp's INITIAL_GRID_.
var bermudesGrid = func() [][]Square {
	row := func(s Square) []Square {
		r := make([]Square, 9)
		for i := range r {
			r[i] = s
		}
		return r
	}
	return [][]Square{
		row(Black), row(Black), row(Black),
		row(Free), row(Free), row(Free),
		row(White), row(White), row(White),
	}
}()

// Bermudes implements the "Bermudes" minigame: a far move either
// eliminates a pawn at the destination (Elimination, with a required free
// trajectory up to it) or jumps over an adjacent opponent pawn to flip it
// to the mover's color and land past it (Flip, chainable within the same
// round). Grounded on Bermudes.hpp/.cpp.
type Bermudes struct {
	BoardGame
	lastMove bermudesMove
}

// NewBermudes builds a fresh Bermudes game on its starting grid.
func NewBermudes() (*Bermudes, error) {
	grid, err := NewGrid(bermudesGrid)
	if err != nil {
		return nil, err
	}
	base, err := NewBoardGame(grid, 27, 27, 6)
	if err != nil {
		return nil, err
	}
	return &Bermudes{BoardGame: base}, nil
}

// NextRound resets the flip chain before switching players.
func (b *Bermudes) NextRound() (Player, error) {
	b.lastMove = bermudesMoveNone
	return b.BoardGame.NextRound()
}

// IsRoundTerminated reports true only once an Elimination move has been
// played; a Flip leaves the chain open for another Flip.
func (b *Bermudes) IsRoundTerminated() bool {
	return b.lastMove == bermudesMoveElimination
}

// Play moves the pawn at from to to: Elimination if to already holds an
// opponent pawn, Flip if to is free.
func (b *Bermudes) Play(from, to Coordinates) (GridUpdate, error) {
	color := b.ColorFor(b.CurrentRound())

	origin, err := b.grid.At(from)
	if err != nil {
		return GridUpdate{}, err
	}
	if origin != color {
		return GridUpdate{}, ErrBadSquareState
	}

	move, err := NewAxisIterator(b.grid, from, to, EveryDirection)
	if err != nil {
		return GridUpdate{}, err
	}

	destinationState, err := b.grid.At(to)
	if err != nil {
		return GridUpdate{}, err
	}
	opponentColor, _ := Flip(color)

	update := GridUpdate{MoveOrigin: from, MoveDestination: to}
	switch destinationState {
	case Free:
		err = b.playFlip(&update, move)
	case opponentColor:
		err = b.playElimination(&update, move)
	default:
		err = ErrBadSquareState
	}
	if err != nil {
		return GridUpdate{}, err
	}

	b.Moved()
	return update, nil
}

func checkFreeTrajectory(move *AxisIterator, until int) error {
	next, err := move.MoveForward()
	if err != nil {
		return err
	}
	for move.DistanceFromDestination() != until {
		if next != Free {
			return ErrBadSquareState
		}
		next, err = move.MoveForward()
		if err != nil {
			return err
		}
	}
	return nil
}

func (b *Bermudes) playElimination(update *GridUpdate, move *AxisIterator) error {
	if -move.DistanceFromDestination() < 2 {
		return ErrBadCoordinates
	}
	if err := checkFreeTrajectory(move, 0); err != nil {
		return err
	}

	color := b.ColorFor(b.CurrentRound())
	if err := b.grid.Set(update.MoveOrigin, Free); err != nil {
		return err
	}
	if err := b.grid.Set(update.MoveDestination, color); err != nil {
		return err
	}

	opponent := PlayerBlack
	if b.CurrentRound() == PlayerBlack {
		opponent = PlayerWhite
	}
	b.decrementPawns(opponent)

	update.UpdatedSquares = append(update.UpdatedSquares,
		SquareUpdate{update.MoveOrigin, Free},
		SquareUpdate{update.MoveDestination, color},
	)
	b.lastMove = bermudesMoveElimination
	return nil
}

func (b *Bermudes) playFlip(update *GridUpdate, move *AxisIterator) error {
	if err := checkFreeTrajectory(move, -1); err != nil {
		return err
	}

	color := b.ColorFor(b.CurrentRound())
	opponentColor, _ := Flip(color)

	flippedPosition := move.CurrentPosition()
	flipped, err := b.grid.At(flippedPosition)
	if err != nil {
		return err
	}
	if flipped != opponentColor {
		return ErrBadSquareState
	}

	if _, err := move.MoveForward(); err != nil { // advances onto the destination square
		return err
	}

	if err := b.grid.Set(update.MoveOrigin, Free); err != nil {
		return err
	}
	if err := b.grid.Set(flippedPosition, color); err != nil {
		return err
	}
	if err := b.grid.Set(update.MoveDestination, color); err != nil {
		return err
	}

	current := b.CurrentRound()
	opponent := PlayerBlack
	if current == PlayerBlack {
		opponent = PlayerWhite
	}
	b.incrementPawns(current)
	b.decrementPawns(opponent)

	update.UpdatedSquares = append(update.UpdatedSquares,
		SquareUpdate{update.MoveOrigin, Free},
		SquareUpdate{flippedPosition, color},
		SquareUpdate{update.MoveDestination, color},
	)
	b.lastMove = bermudesMoveFlip
	return nil
}
