package interp

// blockEntry is one saved anchor/tag checkpoint, pushed on BlockOpen
// and popped on BlockClose. Blocks rarely nest deeper than a handful of
// levels, so a plain growable slice serves as well as a fixed-size
// stack would.
type blockEntry struct {
	anchorX, anchorY int32
	tagsLen          int
}

// execState is the interpreter-local state that lives only for the
// duration of one Execute call.
type execState struct {
	pc int

	anchorX, anchorY int32
	lastValue        bool

	pendingTags []ActionTag
	activations []Activation

	blockStack []blockEntry
	loopStack  []int
}

func newExecState() *execState {
	return &execState{lastValue: true}
}

// resetChain performs the reset that happens at chain termination and
// at a Semicolon: anchor back to zero, last_value back to true, pending
// tags cleared, and any still-open blocks/loops discarded — blocks and
// loops never cross a Semicolon.
func (s *execState) resetChain() {
	s.anchorX, s.anchorY = 0, 0
	s.lastValue = true
	s.pendingTags = s.pendingTags[:0]
	s.blockStack = s.blockStack[:0]
	s.loopStack = s.loopStack[:0]
}

// tagsSnapshot copies the currently pending tags for attachment to an
// emitted Activation; activations own their tag slice independently of
// later mutation of pendingTags.
func (s *execState) tagsSnapshot() []ActionTag {
	if len(s.pendingTags) == 0 {
		return nil
	}
	out := make([]ActionTag, len(s.pendingTags))
	copy(out, s.pendingTags)
	return out
}
