// Package interp implements a stack-free VM: it walks a token.Program's
// flat token sequence, maintaining a program counter, an anchor cursor,
// a last-value register, and nested block/loop bookkeeping, and emits
// Activation values by querying a boardview.BoardView. It never mutates
// the BoardView and holds no state beyond one Execute call.
package interp

import (
	"github.com/chesstack-dsl/chesstack/boardview"
	"github.com/chesstack-dsl/chesstack/config"
	"github.com/chesstack-dsl/chesstack/token"
	"github.com/chesstack-dsl/chesstack/tracing"
)

// Interpreter executes parsed programs against a BoardView. It holds
// only immutable configuration; Execute is safe to call concurrently
// from many goroutines against independent BoardView snapshots.
type Interpreter struct {
	limits config.Limits
	sink   tracing.Sink
}

// New creates an Interpreter with the given limits. A zero Limits
// value disables both caps; callers that want the engine's defaults
// should pass config.DefaultLimits().
func New(limits config.Limits, sink tracing.Sink) *Interpreter {
	if sink == nil {
		sink = tracing.Nop
	}
	return &Interpreter{limits: limits, sink: sink}
}

// Execute runs program against bv for the piece bv.ActingPiece()
// identifies, returning every Activation emitted before the script
// ran out of tokens or a resource cap stopped it early.
func (ip *Interpreter) Execute(program *token.Program, bv boardview.BoardView) ([]Activation, Diagnostics) {
	toks := program.Tokens
	labels := buildLabelIndex(toks)
	s := newExecState()
	var diag Diagnostics

	maxDispatches := ip.limits.MaxDispatches
	maxActivations := ip.limits.MaxActivations

	dispatches := 0
	for s.pc >= 0 && s.pc < len(toks) {
		if maxDispatches > 0 && dispatches >= maxDispatches {
			diag.DispatchesLimitHit = true
			ip.sink.LimitExceeded(tracing.LimitDispatches, s.pc)
			break
		}
		if maxActivations > 0 && len(s.activations) >= maxActivations {
			diag.ActivationsLimitHit = true
			ip.sink.LimitExceeded(tracing.LimitActivations, s.pc)
			break
		}

		tok := toks[s.pc]
		ip.sink.TokenTrace(s.pc, tok, s.anchorX, s.anchorY, s.lastValue)
		dispatches++

		pcBefore := s.pc
		ip.dispatch(s, tok, bv, toks, labels, &diag)

		if s.pc == pcBefore {
			s.pc++
		}

		if tok.Kind.Regular() && !s.lastValue {
			if len(s.blockStack) > 0 {
				// A false inside an open block is contained by the block:
				// jump to the matching BlockClose and leave last_value as
				// the caller left it so execBlockClose resets it to true
				// and execution resumes after the block, rather than
				// terminating the whole chain.
				s.pc = nextBlockClose(toks, s.pc)
			} else {
				s.pc = nextSemicolon(toks, s.pc)
				s.resetChain()
			}
		}
	}

	return s.activations, diag
}

// dispatch executes one token, updating s in place. Dispatch is a
// single exhaustive switch over the closed token.Kind variant — never
// open inheritance or a handler registry.
func (ip *Interpreter) dispatch(s *execState, tok token.Token, bv boardview.BoardView, toks []token.Token, labels map[int32]int, diag *Diagnostics) {
	switch tok.Kind {
	case token.Move, token.Take, token.TakeMove, token.Catch, token.Jump, token.Shift:
		ip.execMovement(s, tok, bv)

	case token.Peek, token.Anchor, token.Observe, token.Enemy, token.Friendly, token.Danger,
		token.PieceOn, token.Check, token.Bound, token.Edge, token.Corner,
		token.EdgeTop, token.EdgeBottom, token.EdgeLeft, token.EdgeRight,
		token.CornerTopLeft, token.CornerTopRight, token.CornerBottomLeft, token.CornerBottomRight,
		token.Piece, token.IfState:
		ip.execCondition(s, tok, bv)

	case token.Transition:
		s.pendingTags = append(s.pendingTags, ActionTag{Kind: ActionTagTransition, Name: tok.Name})

	case token.SetState:
		s.pendingTags = append(s.pendingTags, ActionTag{Kind: ActionTagSetState, Key: tok.Key, N: tok.N})

	case token.ClearModifier:
		if len(s.pendingTags) > 0 {
			s.pendingTags = s.pendingTags[:len(s.pendingTags)-1]
		}

	case token.Repeat:
		execRepeat(s, tok)

	case token.BlockOpen:
		execBlockOpen(s)

	case token.BlockClose:
		execBlockClose(s)

	case token.End:
		s.pc = nextSemicolon(toks, s.pc)
		s.resetChain()

	case token.Do:
		s.loopStack = append(s.loopStack, s.pc)
		s.lastValue = true

	case token.While:
		execWhile(s)

	case token.Label:
		// inert: passes last_value through unchanged.

	case token.Jmp:
		execJmp(s, tok, labels, ip.sink, diag)

	case token.Jne:
		execJne(s, tok, labels, ip.sink, diag)

	case token.Not:
		s.lastValue = !s.lastValue

	case token.Semicolon:
		s.resetChain()
	}
}

// buildLabelIndex scans the full token sequence once per Execute call
// so Jmp/Jne lookups are O(1); behavior is identical to a per-jump
// full-script scan.
func buildLabelIndex(toks []token.Token) map[int32]int {
	idx := make(map[int32]int)
	for i, t := range toks {
		if t.Kind == token.Label {
			idx[t.N] = i
		}
	}
	return idx
}

// nextSemicolon returns the index of the token immediately after the
// first Semicolon at or after from, or len(toks) if the script ends
// first without one — advancing pc to the next Semicolon (or end of
// script), used by both chain termination and End.
func nextSemicolon(toks []token.Token, from int) int {
	for i := from; i < len(toks); i++ {
		if toks[i].Kind == token.Semicolon {
			return i + 1
		}
	}
	return len(toks)
}

// nextBlockClose returns the index of the BlockClose matching the
// innermost block still open at from, tracking nested BlockOpen/
// BlockClose pairs so a nested block's own close doesn't get mistaken
// for the enclosing one's. Balanced braces are guaranteed by the
// parser, so a well-formed program always finds one before len(toks).
func nextBlockClose(toks []token.Token, from int) int {
	depth := 0
	for i := from; i < len(toks); i++ {
		switch toks[i].Kind {
		case token.BlockOpen:
			depth++
		case token.BlockClose:
			if depth == 0 {
				return i
			}
			depth--
		}
	}
	return len(toks)
}
