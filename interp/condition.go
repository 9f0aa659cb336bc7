package interp

import (
	"github.com/chesstack-dsl/chesstack/boardview"
	"github.com/chesstack-dsl/chesstack/token"
)

// execCondition implements every condition, bounds-condition, and
// state-condition token. All of these are regular: a false
// outcome is left for the caller's generic "regular, false" handling
// to terminate the chain. Peek and Anchor are the only two that also
// move the anchor cursor, and only on success.
func (ip *Interpreter) execCondition(s *execState, tok token.Token, bv boardview.BoardView) {
	switch tok.Kind {
	case token.Peek:
		x, y, inBounds := target(s, bv, tok.DX, tok.DY)
		if inBounds && bv.IsEmpty(x, y) {
			s.anchorX, s.anchorY = s.anchorX+tok.DX, s.anchorY+tok.DY
			s.lastValue = true
		} else {
			s.lastValue = false
		}

	case token.Anchor:
		_, _, inBounds := target(s, bv, tok.DX, tok.DY)
		if inBounds {
			s.anchorX, s.anchorY = s.anchorX+tok.DX, s.anchorY+tok.DY
			s.lastValue = true
		} else {
			s.lastValue = false
		}

	case token.Observe:
		x, y, _ := target(s, bv, tok.DX, tok.DY)
		s.lastValue = bv.IsEmpty(x, y)

	case token.Enemy:
		x, y, _ := target(s, bv, tok.DX, tok.DY)
		s.lastValue = isEnemy(bv, x, y)

	case token.Friendly:
		x, y, _ := target(s, bv, tok.DX, tok.DY)
		s.lastValue = isAlly(bv, x, y)

	case token.PieceOn:
		x, y, _ := target(s, bv, tok.DX, tok.DY)
		kind, ok := bv.KindAt(x, y)
		s.lastValue = ok && string(kind) == tok.Name

	case token.Danger:
		x, y, _ := target(s, bv, tok.DX, tok.DY)
		s.lastValue = bv.IsDanger(x, y)

	case token.Check:
		s.lastValue = bv.InCheck()

	case token.Piece:
		_, _, kind, _ := bv.ActingPiece()
		s.lastValue = string(kind) == tok.Name

	case token.IfState:
		n, ok := bv.StateVar(tok.Key)
		s.lastValue = ok && n == tok.N

	case token.Bound, token.Edge:
		_, _, inBounds := target(s, bv, tok.DX, tok.DY)
		s.lastValue = !inBounds

	case token.Corner:
		x, y, _ := target(s, bv, tok.DX, tok.DY)
		minX, minY, maxX, maxY := bv.Bounds()
		s.lastValue = (x < minX || x > maxX) && (y < minY || y > maxY)

	case token.EdgeTop:
		_, y, _ := target(s, bv, tok.DX, tok.DY)
		_, _, _, maxY := bv.Bounds()
		s.lastValue = y > maxY

	case token.EdgeBottom:
		_, y, _ := target(s, bv, tok.DX, tok.DY)
		_, minY, _, _ := bv.Bounds()
		s.lastValue = y < minY

	case token.EdgeLeft:
		x, _, _ := target(s, bv, tok.DX, tok.DY)
		minX, _, _, _ := bv.Bounds()
		s.lastValue = x < minX

	case token.EdgeRight:
		x, _, _ := target(s, bv, tok.DX, tok.DY)
		_, _, maxX, _ := bv.Bounds()
		s.lastValue = x > maxX

	case token.CornerTopLeft:
		x, y, _ := target(s, bv, tok.DX, tok.DY)
		minX, _, _, maxY := bv.Bounds()
		s.lastValue = x < minX && y > maxY

	case token.CornerTopRight:
		x, y, _ := target(s, bv, tok.DX, tok.DY)
		_, _, maxX, maxY := bv.Bounds()
		s.lastValue = x > maxX && y > maxY

	case token.CornerBottomLeft:
		x, y, _ := target(s, bv, tok.DX, tok.DY)
		minX, minY, _, _ := bv.Bounds()
		s.lastValue = x < minX && y < minY

	case token.CornerBottomRight:
		x, y, _ := target(s, bv, tok.DX, tok.DY)
		_, minY, maxX, _ := bv.Bounds()
		s.lastValue = x > maxX && y < minY
	}
}
