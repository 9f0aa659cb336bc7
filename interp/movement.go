package interp

import (
	"github.com/chesstack-dsl/chesstack/boardview"
	"github.com/chesstack-dsl/chesstack/token"
)

// target resolves a movement/condition token's destination square and
// reports whether it is in bounds: tx = piece_x + anchor_x + dx,
// ty = piece_y + anchor_y + dy.
func target(s *execState, bv boardview.BoardView, dx, dy int32) (x, y int32, inBounds bool) {
	px, py, _, _ := bv.ActingPiece()
	x = px + s.anchorX + dx
	y = py + s.anchorY + dy
	return x, y, bv.InBounds(x, y)
}

func isEnemy(bv boardview.BoardView, x, y int32) bool {
	owner, ok := bv.OwnerAt(x, y)
	if !ok {
		return false
	}
	_, _, _, actingWhite := bv.ActingPiece()
	return (owner == 0) != actingWhite
}

// isAlly and isEnemy both rely on PlayerID 0 meaning "white" and any
// other PlayerID meaning "black": an occupant is compared with the
// acting piece's color through that mapping, so a host engine must
// assign PlayerID values by this convention.
func isAlly(bv boardview.BoardView, x, y int32) bool {
	owner, ok := bv.OwnerAt(x, y)
	if !ok {
		return false
	}
	_, _, _, actingWhite := bv.ActingPiece()
	return (owner == 0) == actingWhite
}

func emit(s *execState, dx, dy int32, kind token.MoveKind) {
	s.activations = append(s.activations, Activation{DX: dx, DY: dy, Kind: kind, Tags: s.tagsSnapshot()})
}

// execMovement implements the six movement-token contracts.
func (ip *Interpreter) execMovement(s *execState, tok token.Token, bv boardview.BoardView) {
	x, y, inBounds := target(s, bv, tok.DX, tok.DY)
	newAnchorX, newAnchorY := s.anchorX+tok.DX, s.anchorY+tok.DY

	switch tok.Kind {
	case token.Move:
		if inBounds && bv.IsEmpty(x, y) {
			emit(s, newAnchorX, newAnchorY, token.MoveKindMove)
			s.anchorX, s.anchorY = newAnchorX, newAnchorY
			s.lastValue = true
			ip.sink.Activation(newAnchorX, newAnchorY, token.MoveKindMove)
		} else {
			s.lastValue = false
		}

	case token.Take:
		switch {
		case inBounds && bv.IsEmpty(x, y):
			s.anchorX, s.anchorY = newAnchorX, newAnchorY
			s.lastValue = true
		case inBounds && isEnemy(bv, x, y):
			emit(s, newAnchorX, newAnchorY, token.MoveKindTake)
			s.anchorX, s.anchorY = newAnchorX, newAnchorY
			s.lastValue = true
			ip.sink.Activation(newAnchorX, newAnchorY, token.MoveKindTake)
		default:
			s.lastValue = false
		}

	case token.TakeMove:
		switch {
		case inBounds && bv.IsEmpty(x, y):
			emit(s, newAnchorX, newAnchorY, token.MoveKindTakeMove)
			s.anchorX, s.anchorY = newAnchorX, newAnchorY
			s.lastValue = true
			ip.sink.Activation(newAnchorX, newAnchorY, token.MoveKindTakeMove)
		case inBounds && isEnemy(bv, x, y):
			emit(s, newAnchorX, newAnchorY, token.MoveKindTakeMove)
			s.anchorX, s.anchorY = newAnchorX, newAnchorY
			s.lastValue = false
			ip.sink.Activation(newAnchorX, newAnchorY, token.MoveKindTakeMove)
		default:
			s.lastValue = false
		}

	case token.Catch:
		switch {
		case inBounds && bv.IsEmpty(x, y):
			s.anchorX, s.anchorY = newAnchorX, newAnchorY
			s.lastValue = true
		case inBounds && isEnemy(bv, x, y):
			emit(s, newAnchorX, newAnchorY, token.MoveKindCatch)
			s.anchorX, s.anchorY = newAnchorX, newAnchorY
			s.lastValue = true
			ip.sink.Activation(newAnchorX, newAnchorY, token.MoveKindCatch)
		default:
			s.lastValue = false
		}

	case token.Jump:
		if inBounds && bv.IsEmpty(x, y) {
			emit(s, newAnchorX, newAnchorY, token.MoveKindJump)
			s.anchorX, s.anchorY = newAnchorX, newAnchorY
			s.lastValue = true
			ip.sink.Activation(newAnchorX, newAnchorY, token.MoveKindJump)
		} else {
			s.lastValue = false
		}

	case token.Shift:
		if inBounds {
			emit(s, newAnchorX, newAnchorY, token.MoveKindShift)
			s.anchorX, s.anchorY = newAnchorX, newAnchorY
			s.lastValue = true
			ip.sink.Activation(newAnchorX, newAnchorY, token.MoveKindShift)
		} else {
			s.lastValue = false
		}
	}
}
