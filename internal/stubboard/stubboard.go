// Package stubboard is a minimal, in-memory boardview.BoardView
// implementation used by cmd/chesstackctl and by interp tests that need
// a concrete board rather than a hand-rolled mock per test. It has no
// rules engine: check, danger squares, and state variables are set
// directly by the caller rather than computed.
package stubboard

import "github.com/chesstack-dsl/chesstack/boardview"

// Piece is one occupant of a Board square.
type Piece struct {
	Owner   boardview.PlayerID
	Kind    boardview.PieceName
	IsWhite bool
}

// Board is a rectangular grid addressed by (x, y) within the inclusive
// bounds MinX..MaxX, MinY..MaxY.
type Board struct {
	MinX, MinY, MaxX, MaxY int32
	pieces                 map[[2]int32]Piece
	danger                 map[[2]int32]bool
	state                  map[string]int32
	inCheck                bool
	actingX, actingY       int32
	actingKind             boardview.PieceName
	actingWhite            bool
}

// NewBoard creates an empty board spanning the given inclusive bounds.
func NewBoard(minX, minY, maxX, maxY int32) *Board {
	return &Board{
		MinX: minX, MinY: minY, MaxX: maxX, MaxY: maxY,
		pieces: make(map[[2]int32]Piece),
		danger: make(map[[2]int32]bool),
		state:  make(map[string]int32),
	}
}

// NewStandardBoard creates an empty 8x8 board with coordinates 0..7.
func NewStandardBoard() *Board {
	return NewBoard(0, 0, 7, 7)
}

// Place puts a piece at (x, y), overwriting any existing occupant.
func (b *Board) Place(x, y int32, p Piece) {
	b.pieces[[2]int32{x, y}] = p
}

// Remove clears the square at (x, y).
func (b *Board) Remove(x, y int32) {
	delete(b.pieces, [2]int32{x, y})
}

// SetActing designates the piece whose script is about to run.
func (b *Board) SetActing(x, y int32, kind boardview.PieceName, isWhite bool) {
	b.actingX, b.actingY, b.actingKind, b.actingWhite = x, y, kind, isWhite
}

// SetDanger marks (x, y) as attacked, for Danger(Δ) queries.
func (b *Board) SetDanger(x, y int32, danger bool) {
	if danger {
		b.danger[[2]int32{x, y}] = true
	} else {
		delete(b.danger, [2]int32{x, y})
	}
}

// SetCheck sets the value InCheck() returns.
func (b *Board) SetCheck(v bool) { b.inCheck = v }

// SetState sets a named state variable, for IfState(key, n) queries.
func (b *Board) SetState(key string, n int32) { b.state[key] = n }

func (b *Board) InBounds(x, y int32) bool {
	return x >= b.MinX && x <= b.MaxX && y >= b.MinY && y <= b.MaxY
}

func (b *Board) Bounds() (minX, minY, maxX, maxY int32) {
	return b.MinX, b.MinY, b.MaxX, b.MaxY
}

func (b *Board) IsEmpty(x, y int32) bool {
	if !b.InBounds(x, y) {
		return true
	}
	_, ok := b.pieces[[2]int32{x, y}]
	return !ok
}

func (b *Board) OwnerAt(x, y int32) (boardview.PlayerID, bool) {
	p, ok := b.pieces[[2]int32{x, y}]
	if !ok {
		return 0, false
	}
	return p.Owner, true
}

func (b *Board) KindAt(x, y int32) (boardview.PieceName, bool) {
	p, ok := b.pieces[[2]int32{x, y}]
	if !ok {
		return "", false
	}
	return p.Kind, true
}

func (b *Board) IsDanger(x, y int32) bool {
	return b.danger[[2]int32{x, y}]
}

func (b *Board) InCheck() bool {
	return b.inCheck
}

func (b *Board) StateVar(key string) (int32, bool) {
	n, ok := b.state[key]
	return n, ok
}

func (b *Board) ActingPiece() (x, y int32, kind boardview.PieceName, isWhite bool) {
	return b.actingX, b.actingY, b.actingKind, b.actingWhite
}
