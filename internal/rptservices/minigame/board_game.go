package minigame

import "errors"

// ErrMoveRequired is returned by BoardGame.NextRound when the current
// player hasn't played a move yet; skipping a round isn't allowed.
var ErrMoveRequired = errors.New("minigame: player can't skip a round without moving")

// Player is one of the two sides playing a BoardGame.
type Player int

const (
	PlayerWhite Player = iota
	PlayerBlack
)

func (p Player) String() string {
	if p == PlayerWhite {
		return "WHITE"
	}
	return "BLACK"
}

// SquareUpdate is one square changed by a move, as reported to callers
// alongside the move's origin/destination.
type SquareUpdate struct {
	Position Coordinates
	State    Square
}

// GridUpdate is everything a move changed: the pawn's origin and final
// position, plus every square whose content changed (origin cleared,
// destination filled, and any captured/flipped square in between).
type GridUpdate struct {
	MoveOrigin      Coordinates
	MoveDestination Coordinates
	UpdatedSquares  []SquareUpdate
}

// Game is the capability set the Minigame service drives: round tracking,
// pawn counts, victory detection and move application. Grounded on
// BoardGame.hpp's virtual method set.
type Game interface {
	CurrentRound() Player
	PawnsFor(p Player) uint
	VictoryFor() (Player, bool)
	IsRoundTerminated() bool
	Play(from, to Coordinates) (GridUpdate, error)
	NextRound() (Player, error)
}

// BoardGame is the shared round/pawn-count bookkeeping every concrete game
// embeds. Grounded on BoardGame.cpp's concrete (non-abstract) base
// implementation: VictoryFor here is a generic pawns-below-threshold check,
// with a per-game threshold (Açores 1, Bermudes 6, Canaries 2) — Canaries
// additionally layers a stalemate check on top by overriding VictoryFor
// itself.
type BoardGame struct {
	grid           *Grid
	currentPlayer  Player
	hasMoved       bool
	whitePawns     uint
	blackPawns     uint
	pawnsThreshold uint
}

// NewBoardGame builds a BoardGame over grid with the given starting pawn
// counts. pawnsThreshold is the pawn count strictly below which a player
// has lost; it must be strictly positive.
func NewBoardGame(grid *Grid, whitePawns, blackPawns, pawnsThreshold uint) (BoardGame, error) {
	if pawnsThreshold == 0 {
		return BoardGame{}, errors.New("minigame: pawns count threshold must be positive")
	}
	return BoardGame{
		grid:           grid,
		currentPlayer:  PlayerWhite,
		whitePawns:     whitePawns,
		blackPawns:     blackPawns,
		pawnsThreshold: pawnsThreshold,
	}, nil
}

// ColorFor returns the Square color a Player's pawns occupy.
func (g *BoardGame) ColorFor(p Player) Square {
	if p == PlayerWhite {
		return White
	}
	return Black
}

// Moved flags that the current player did at least one move this round.
// Expected to be called from a concrete Play implementation.
func (g *BoardGame) Moved() { g.hasMoved = true }

// HasMoved reports whether Moved was called since the last NextRound.
func (g *BoardGame) HasMoved() bool { return g.hasMoved }

// NextRound switches to the other player, terminating the current round.
// Fails with ErrMoveRequired if the current player never called Moved.
func (g *BoardGame) NextRound() (Player, error) {
	if !g.hasMoved {
		return g.currentPlayer, ErrMoveRequired
	}
	g.hasMoved = false

	if g.currentPlayer == PlayerWhite {
		g.currentPlayer = PlayerBlack
	} else {
		g.currentPlayer = PlayerWhite
	}
	return g.currentPlayer, nil
}

// CurrentRound returns the player whose turn it currently is.
func (g *BoardGame) CurrentRound() Player { return g.currentPlayer }

// PawnsFor returns the pawn count remaining for the given player.
func (g *BoardGame) PawnsFor(p Player) uint {
	if p == PlayerWhite {
		return g.whitePawns
	}
	return g.blackPawns
}

func (g *BoardGame) decrementPawns(p Player) {
	if p == PlayerWhite {
		g.whitePawns--
	} else {
		g.blackPawns--
	}
}

func (g *BoardGame) incrementPawns(p Player) {
	if p == PlayerWhite {
		g.whitePawns++
	} else {
		g.blackPawns++
	}
}

// VictoryFor reports the winning player once one side's pawn count drops
// strictly below pawnsThreshold.
func (g *BoardGame) VictoryFor() (Player, bool) {
	if g.whitePawns < g.pawnsThreshold {
		return PlayerBlack, true
	}
	if g.blackPawns < g.pawnsThreshold {
		return PlayerWhite, true
	}
	return 0, false
}
