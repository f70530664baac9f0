package minigame

// AxisType is one of the 8 directions a move can follow, as a bitflag
// combination of the 4 orthogonal halves. Grounded on AxisIterator.hpp.
type AxisType uint

const (
	Up   AxisType = 0b1000
	Down AxisType = 0b0100
	Left AxisType = 0b0010
	Right AxisType = 0b0001

	UpLeft    = Up | Left
	UpRight   = Up | Right
	DownLeft  = Down | Left
	DownRight = Down | Right
)

// EveryDirection lists all 8 diagonal and orthogonal directions.
var EveryDirection = []AxisType{Up, Down, Left, Right, UpLeft, UpRight, DownLeft, DownRight}

// EveryOrthogonalDirection lists the 4 orthogonal directions, the only
// ones Canaries allows.
var EveryOrthogonalDirection = []AxisType{Up, Down, Left, Right}

func hasFlagOf(axis, direction AxisType) bool {
	return axis&direction != 0
}

func directionFor(axis AxisType) (lineStep, colStep int) {
	if hasFlagOf(axis, Up) {
		lineStep = -1
	} else if hasFlagOf(axis, Down) {
		lineStep = 1
	}
	if hasFlagOf(axis, Left) {
		colStep = -1
	} else if hasFlagOf(axis, Right) {
		colStep = 1
	}
	return
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func axisBetween(from, to Coordinates) (AxisType, error) {
	relLine := to.Line - from.Line
	relCol := to.Column - from.Column

	if abs(relLine) != abs(relCol) && relLine != 0 && relCol != 0 {
		return 0, ErrBadCoordinates
	}

	var axis AxisType
	switch {
	case relCol > 0:
		axis |= Right
	case relCol < 0:
		axis |= Left
	}
	switch {
	case relLine > 0:
		axis |= Down
	case relLine < 0:
		axis |= Up
	}

	return axis, nil
}

func allowedDirection(direction AxisType, allowed []AxisType) bool {
	for _, a := range allowed {
		if a == direction {
			return true
		}
	}
	return false
}

// AxisIterator walks the orthogonal or diagonal axis linking two squares
// of a Grid, one step at a time, starting on the origin square and going
// through the destination up to the grid edge. Grounded on AxisIterator.hpp/.cpp, simplified to
// a single mutable-grid variant since every Go caller owns its Grid
// outright (no const-grid split is needed).
type AxisIterator struct {
	grid      *Grid
	direction AxisType
	positions []Coordinates
	current   int
	dest      int
}

// NewAxisIterator builds the axis between from and to inside grid,
// restricted to allowedDirections. Fails with ErrBadCoordinates if either
// square is outside grid, if no orthogonal/diagonal axis links them, or if
// that axis isn't in allowedDirections.
func NewAxisIterator(grid *Grid, from, to Coordinates, allowedDirections []AxisType) (*AxisIterator, error) {
	if !grid.IsInsideGrid(from) || !grid.IsInsideGrid(to) {
		return nil, ErrBadCoordinates
	}

	direction, err := axisBetween(from, to)
	if err != nil {
		return nil, err
	}
	if !allowedDirection(direction, allowedDirections) {
		return nil, ErrBadCoordinates
	}

	lineStep, colStep := directionFor(direction)

	var positions []Coordinates
	dest := -1
	for square := from; grid.IsInsideGrid(square); square = (Coordinates{Line: square.Line + lineStep, Column: square.Column + colStep}) {
		if square == to {
			dest = len(positions)
		}
		positions = append(positions, square)
	}

	return &AxisIterator{grid: grid, direction: direction, positions: positions, current: 0, dest: dest}, nil
}

// Direction returns the axis's forward direction.
func (a *AxisIterator) Direction() AxisType { return a.direction }

// CurrentPosition returns the coordinates of the square the iterator is
// currently on.
func (a *AxisIterator) CurrentPosition() Coordinates { return a.positions[a.current] }

// HasNext reports whether there is a further square in this axis.
func (a *AxisIterator) HasNext() bool { return a.current+1 < len(a.positions) }

// DistanceFromDestination returns the number of squares between the
// iterator's current position and the destination square, negative while
// destination hasn't been reached yet.
func (a *AxisIterator) DistanceFromDestination() int { return a.current - a.dest }

// MoveForward advances the iterator by one square and returns its state.
func (a *AxisIterator) MoveForward() (Square, error) {
	if !a.HasNext() {
		return Free, ErrBadCoordinates
	}
	a.current++
	return a.grid.At(a.positions[a.current])
}
