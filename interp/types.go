package interp

import "github.com/chesstack-dsl/chesstack/token"

// ActionTagKind identifies which side-effect an ActionTag carries.
type ActionTagKind int

const (
	ActionTagTransition ActionTagKind = iota
	ActionTagSetState
)

// ActionTag is a pending side-effect attached to subsequently emitted
// activations within the current chain.
type ActionTag struct {
	Kind ActionTagKind
	Name string // piece-kind name, meaningful when Kind == ActionTagTransition
	Key  string // state key, meaningful when Kind == ActionTagSetState
	N    int32  // state value, meaningful when Kind == ActionTagSetState
}

// Activation is an immutable proposed action emitted by the
// interpreter: a candidate move of the given kind at offset (DX, DY)
// from the acting piece's square, carrying a snapshot of the tags
// pending at the moment it was emitted.
type Activation struct {
	DX, DY int32
	Kind   token.MoveKind
	Tags   []ActionTag
}

// MissingLabelRef records a Jmp/Jne that referenced a Label id with no
// matching Label token in the program — an author error that must not
// fail execution but must be flagged for tests/tooling.
type MissingLabelRef struct {
	From token.Kind // token.Jmp or token.Jne
	N    int32
	PC   int
}

// Diagnostics reports non-fatal conditions observed during one Execute
// call: whether a resource cap was hit, and any missing-label
// references encountered.
type Diagnostics struct {
	ActivationsLimitHit bool
	DispatchesLimitHit  bool
	MissingLabels       []MissingLabelRef
}
