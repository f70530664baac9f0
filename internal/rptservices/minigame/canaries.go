package minigame

// canariesGrid is the 4x4 starting position: 2 black rows, 2 white rows.
// Grounded on Canaries.hpp's INITIAL_GRID_.
var canariesGrid = [][]Square{
	{Black, Black, Black, Black},
	{Black, Black, Black, Black},
	{White, White, White, White},
	{White, White, White, White},
}

// Canaries implements the "Canaries" minigame: an orthogonal Normal move
// onto a free neighbor, or an Eat move that leaps over one of the mover's
// own pawns to capture an opponent pawn two squares away. A player loses
// either by running out of pawns or by having no legal move at all
// (isBlocked). Grounded on Canaries.hpp/.cpp.
type Canaries struct {
	BoardGame
}

// NewCanaries builds a fresh Canaries game on its starting grid.
func NewCanaries() (*Canaries, error) {
	grid, err := NewGrid(canariesGrid)
	if err != nil {
		return nil, err
	}
	base, err := NewBoardGame(grid, 8, 8, 2)
	if err != nil {
		return nil, err
	}
	return &Canaries{BoardGame: base}, nil
}

// IsRoundTerminated reports true as soon as one move has been played; no
// chaining is available in this game.
func (c *Canaries) IsRoundTerminated() bool {
	return c.HasMoved()
}

// VictoryFor checks for stalemate first (a blocked player loses
// immediately), falling back to the generic pawns-below-threshold check.
func (c *Canaries) VictoryFor() (Player, bool) {
	if c.isBlocked(PlayerWhite) {
		return PlayerBlack, true
	}
	if c.isBlocked(PlayerBlack) {
		return PlayerWhite, true
	}
	return c.BoardGame.VictoryFor()
}

var orthogonalVectors = [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}

func (c *Canaries) isBlocked(player Player) bool {
	color := c.ColorFor(player)
	opponentColor, _ := Flip(color)

	for line := 1; line <= 4; line++ {
		for column := 1; column <= 4; column++ {
			square := Coordinates{Line: line, Column: column}
			state, err := c.grid.At(square)
			if err != nil || state != color {
				continue
			}

			for _, v := range orthogonalVectors {
				neighbour := Coordinates{Line: line + v[0], Column: column + v[1]}
				beyond := Coordinates{Line: line + 2*v[0], Column: column + 2*v[1]}

				if !c.grid.IsInsideGrid(neighbour) {
					continue
				}
				direct, _ := c.grid.At(neighbour)
				if direct == Free {
					return false
				}

				if direct == color && c.grid.IsInsideGrid(beyond) {
					if pastState, _ := c.grid.At(beyond); pastState == opponentColor {
						return false
					}
				}
			}
		}
	}

	return true
}

// Play moves the pawn at from to to, along an orthogonal axis only.
func (c *Canaries) Play(from, to Coordinates) (GridUpdate, error) {
	origin, err := c.grid.At(from)
	if err != nil {
		return GridUpdate{}, err
	}
	if origin != c.ColorFor(c.CurrentRound()) {
		return GridUpdate{}, ErrBadSquareState
	}

	move, err := NewAxisIterator(c.grid, from, to, EveryOrthogonalDirection)
	if err != nil {
		return GridUpdate{}, err
	}

	update := GridUpdate{MoveOrigin: from, MoveDestination: to}
	moveRange := -move.DistanceFromDestination()

	switch moveRange {
	case 1:
		err = c.playNormal(&update, move)
	case 2:
		err = c.playEat(&update, move)
	default:
		err = ErrBadCoordinates
	}
	if err != nil {
		return GridUpdate{}, err
	}

	c.Moved()
	return update, nil
}

func (c *Canaries) playNormal(update *GridUpdate, move *AxisIterator) error {
	destination, err := move.MoveForward()
	if err != nil {
		return err
	}
	if destination != Free {
		return ErrBadSquareState
	}

	color := c.ColorFor(c.CurrentRound())
	if err := c.grid.Set(update.MoveOrigin, Free); err != nil {
		return err
	}
	if err := c.grid.Set(update.MoveDestination, color); err != nil {
		return err
	}

	update.UpdatedSquares = append(update.UpdatedSquares,
		SquareUpdate{update.MoveOrigin, Free},
		SquareUpdate{update.MoveDestination, color},
	)
	return nil
}

func (c *Canaries) playEat(update *GridUpdate, move *AxisIterator) error {
	color := c.ColorFor(c.CurrentRound())
	opponentColor, _ := Flip(color)

	jumpedOver, err := move.MoveForward()
	if err != nil {
		return err
	}
	if jumpedOver != color {
		return ErrBadSquareState
	}

	eaten, err := move.MoveForward()
	if err != nil {
		return err
	}
	if eaten != opponentColor {
		return ErrBadSquareState
	}

	if err := c.grid.Set(update.MoveOrigin, Free); err != nil {
		return err
	}
	if err := c.grid.Set(update.MoveDestination, color); err != nil {
		return err
	}

	opponent := PlayerBlack
	if c.CurrentRound() == PlayerBlack {
		opponent = PlayerWhite
	}
	c.decrementPawns(opponent)

	update.UpdatedSquares = append(update.UpdatedSquares,
		SquareUpdate{update.MoveOrigin, Free},
		SquareUpdate{update.MoveDestination, color},
	)
	return nil
}
