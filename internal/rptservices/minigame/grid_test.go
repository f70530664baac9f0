package minigame

import "testing"

func TestNewGridRejectsEmptyOrRaggedRows(t *testing.T) {
	if _, err := NewGrid(nil); err != ErrBadDimensions {
		t.Errorf("empty rows: err = %v, want ErrBadDimensions", err)
	}
	if _, err := NewGrid([][]Square{{}}); err != ErrBadDimensions {
		t.Errorf("empty row: err = %v, want ErrBadDimensions", err)
	}
	if _, err := NewGrid([][]Square{{Free, Free}, {Free}}); err != ErrBadDimensions {
		t.Errorf("ragged rows: err = %v, want ErrBadDimensions", err)
	}
}

func TestIsInsideGridCorrectedBounds(t *testing.T) {
	grid, err := NewGrid([][]Square{{Free, Free}, {Free, Free}, {Free, Free}})
	if err != nil {
		t.Fatalf("NewGrid() error = %v", err)
	}

	cases := []struct {
		coords Coordinates
		inside bool
	}{
		{Coordinates{1, 1}, true},
		{Coordinates{3, 2}, true},
		{Coordinates{0, 1}, false},
		{Coordinates{1, 0}, false},
		{Coordinates{4, 1}, false},
		{Coordinates{1, 3}, false},
	}
	for _, c := range cases {
		if got := grid.IsInsideGrid(c.coords); got != c.inside {
			t.Errorf("IsInsideGrid(%+v) = %v, want %v", c.coords, got, c.inside)
		}
	}
}

func TestGridAtAndSetRoundtrip(t *testing.T) {
	grid, err := NewGrid([][]Square{{White, Free}, {Free, Black}})
	if err != nil {
		t.Fatalf("NewGrid() error = %v", err)
	}

	if s, err := grid.At(Coordinates{1, 1}); err != nil || s != White {
		t.Errorf("At(1,1) = %v, %v, want White, nil", s, err)
	}

	if err := grid.Set(Coordinates{1, 2}, Black); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if s, _ := grid.At(Coordinates{1, 2}); s != Black {
		t.Errorf("At(1,2) after Set = %v, want Black", s)
	}

	if _, err := grid.At(Coordinates{5, 5}); err != ErrBadCoordinates {
		t.Errorf("At() out of bounds err = %v, want ErrBadCoordinates", err)
	}
}

func TestFlip(t *testing.T) {
	if s, err := Flip(White); err != nil || s != Black {
		t.Errorf("Flip(White) = %v, %v", s, err)
	}
	if s, err := Flip(Black); err != nil || s != White {
		t.Errorf("Flip(Black) = %v, %v", s, err)
	}
	if _, err := Flip(Free); err != ErrBadSquareState {
		t.Errorf("Flip(Free) err = %v, want ErrBadSquareState", err)
	}
}
