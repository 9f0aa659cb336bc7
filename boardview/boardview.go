// Package boardview defines the narrow, read-only query surface the host
// game engine implements so the interpreter can inspect board state
// without ever mutating it. The interpreter depends only on this
// interface; it never depends on a concrete board representation.
package boardview

// PlayerID identifies the side a piece belongs to. The interpreter
// reads PlayerID 0 as white and any other value as black when it
// decides whether an occupant is an enemy or an ally of the acting
// piece.
type PlayerID int

// PieceName identifies a piece kind, e.g. "rook" or a custom variant
// piece. Comparison is by value.
type PieceName string

// BoardView is the read-only contract the interpreter consumes. All
// methods are pure queries over one consistent snapshot: the host
// engine guarantees the board does not change between the start of an
// Execute call and the return of its activations.
//
// Out-of-range coordinates are legal inputs everywhere: InBounds must
// return false for them, and the occupancy/owner/kind queries must
// report empty/absent rather than panicking.
type BoardView interface {
	// InBounds reports whether (x, y) lies on the board.
	InBounds(x, y int32) bool

	// IsEmpty reports whether (x, y) holds no piece. Must return true
	// for any out-of-bounds coordinate.
	IsEmpty(x, y int32) bool

	// OwnerAt returns the controlling player of the piece at (x, y),
	// and false if the square is empty or out of bounds.
	OwnerAt(x, y int32) (PlayerID, bool)

	// KindAt returns the piece kind at (x, y), and false if the square
	// is empty or out of bounds.
	KindAt(x, y int32) (PieceName, bool)

	// IsDanger reports whether (x, y) is in the board's
	// currently-attacked-square set, from the acting piece's
	// perspective.
	IsDanger(x, y int32) bool

	// InCheck reports whether the acting piece's side is currently in
	// check.
	InCheck() bool

	// StateVar returns a named, engine-defined state value (e.g. a
	// per-piece move counter) and false if the key is undefined.
	StateVar(key string) (int32, bool)

	// ActingPiece returns the square, kind, and color of the piece
	// whose legal actions are being computed.
	ActingPiece() (x, y int32, kind PieceName, isWhite bool)

	// Bounds returns the inclusive coordinate range of the board.
	// InBounds(x,y) is equivalent to x>=minX && x<=maxX && y>=minY &&
	// y<=maxY; Bounds exposes the four edges individually so the
	// edge-top/bottom/left/right and corner-* condition tokens can tell
	// which specific edge(s) a coordinate falls outside of, not just
	// whether it falls outside the board at all.
	Bounds() (minX, minY, maxX, maxY int32)
}
