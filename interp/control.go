package interp

import (
	"github.com/chesstack-dsl/chesstack/token"
	"github.com/chesstack-dsl/chesstack/tracing"
)

// execRepeat implements Repeat(n): on a true outcome it jumps back so
// the preceding n tokens (and then Repeat itself) re-execute. On a
// false outcome it does nothing here — Repeat is a regular token, so
// the caller's generic "regular token, false outcome" handling
// terminates the chain, leaving last_value unchanged. Repeat's own
// index is s.pc at the point of dispatch, and the token that should
// run next on a loop-back is n tokens before the one that would
// otherwise follow Repeat — i.e. s.pc-n, not s.pc-n-1.
func execRepeat(s *execState, tok token.Token) {
	if s.lastValue && tok.N > 0 {
		s.pc = s.pc - int(tok.N)
	}
}

// execBlockOpen pushes the anchor/tag checkpoint a matching BlockClose
// will restore. last_value passes through unchanged — BlockOpen itself
// never fails or succeeds, it only opens a scope.
func execBlockOpen(s *execState) {
	s.blockStack = append(s.blockStack, blockEntry{
		anchorX: s.anchorX,
		anchorY: s.anchorY,
		tagsLen: len(s.pendingTags),
	})
}

// execBlockClose restores the anchor to its value at the matching
// BlockOpen, truncates pending tags back to that point, and always
// resets last_value to true: a failing block isolates its failure from
// the enclosing chain. Activations emitted inside the block are kept.
func execBlockClose(s *execState) {
	if len(s.blockStack) == 0 {
		// Unbalanced braces are rejected at parse time; a BlockClose
		// with no open block cannot occur against a parsed program.
		s.lastValue = true
		return
	}
	entry := s.blockStack[len(s.blockStack)-1]
	s.blockStack = s.blockStack[:len(s.blockStack)-1]
	s.anchorX, s.anchorY = entry.anchorX, entry.anchorY
	s.pendingTags = s.pendingTags[:entry.tagsLen]
	s.lastValue = true
}

// execWhile implements the loop-back half of Do/While. While is
// exceptional: it always evaluates to true for chain-termination
// purposes, regardless of whether it looped.
func execWhile(s *execState) {
	if s.lastValue && len(s.loopStack) > 0 {
		s.pc = s.loopStack[len(s.loopStack)-1]
		s.loopStack = s.loopStack[:len(s.loopStack)-1]
	}
	s.lastValue = true
}

// execJmp implements unconditional-on-true jumps to a symbolic label.
// A Jmp referencing an id with no matching Label is inert: it is
// recorded as a diagnostic, not a failure, and last_value always ends
// up true afterwards.
func execJmp(s *execState, tok token.Token, labels map[int32]int, sink tracing.Sink, diag *Diagnostics) {
	if s.lastValue {
		if pc, ok := labels[tok.N]; ok {
			s.pc = pc
		} else {
			sink.MissingLabel(token.Jmp, tok.N, s.pc)
			diag.MissingLabels = append(diag.MissingLabels, MissingLabelRef{From: token.Jmp, N: tok.N, PC: s.pc})
		}
	}
	s.lastValue = true
}

// execJne mirrors execJmp for the false case.
func execJne(s *execState, tok token.Token, labels map[int32]int, sink tracing.Sink, diag *Diagnostics) {
	if !s.lastValue {
		if pc, ok := labels[tok.N]; ok {
			s.pc = pc
		} else {
			sink.MissingLabel(token.Jne, tok.N, s.pc)
			diag.MissingLabels = append(diag.MissingLabels, MissingLabelRef{From: token.Jne, N: tok.N, PC: s.pc})
		}
	}
	s.lastValue = true
}
