package interp

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chesstack-dsl/chesstack/config"
	"github.com/chesstack-dsl/chesstack/internal/stubboard"
	"github.com/chesstack-dsl/chesstack/parser"
	"github.com/chesstack-dsl/chesstack/token"
)

func mustParse(t *testing.T, src string) *token.Program {
	t.Helper()
	prog, err := parser.Parse(src)
	require.NoError(t, err)
	return prog
}

func newTestInterp() *Interpreter {
	return New(config.DefaultLimits(), nil)
}

func diffActivations(t *testing.T, got, want []Activation) {
	t.Helper()
	if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("activations mismatch (-want +got):\n%s", diff)
	}
}

func TestRookSlideUnblocked(t *testing.T) {
	prog := mustParse(t, "take-move(1,0) repeat(1);")
	board := stubboard.NewStandardBoard()
	board.SetActing(3, 3, "rook", true)

	got, diag := newTestInterp().Execute(prog, board)

	want := []Activation{
		{DX: 1, DY: 0, Kind: token.MoveKindTakeMove},
		{DX: 2, DY: 0, Kind: token.MoveKindTakeMove},
		{DX: 3, DY: 0, Kind: token.MoveKindTakeMove},
		{DX: 4, DY: 0, Kind: token.MoveKindTakeMove},
	}
	diffActivations(t, got, want)
	assert.False(t, diag.ActivationsLimitHit)
	assert.False(t, diag.DispatchesLimitHit)
}

func TestRookSlideBlockedByCapture(t *testing.T) {
	prog := mustParse(t, "take-move(1,0) repeat(1);")
	board := stubboard.NewStandardBoard()
	board.SetActing(3, 3, "rook", true)
	board.Place(5, 3, stubboard.Piece{Owner: 1, Kind: "pawn", IsWhite: false})

	got, _ := newTestInterp().Execute(prog, board)

	// The slide emits a TakeMove onto the one empty square (4,3) and then
	// one capturing TakeMove onto the enemy pawn at (5,3); TakeMove-on-enemy
	// yields false, so the chain stops there and Repeat does not loop again.
	want := []Activation{
		{DX: 1, DY: 0, Kind: token.MoveKindTakeMove},
		{DX: 2, DY: 0, Kind: token.MoveKindTakeMove},
	}
	diffActivations(t, got, want)
}

func TestKnightOffsets(t *testing.T) {
	src := "take-move(1,2); take-move(2,1); take-move(2,-1); take-move(1,-2); " +
		"take-move(-1,2); take-move(-2,1); take-move(-2,-1); take-move(-1,-2);"
	prog := mustParse(t, src)
	board := stubboard.NewStandardBoard()
	board.SetActing(1, 0, "knight", true)

	got, _ := newTestInterp().Execute(prog, board)

	// Of the eight knight offsets from (1,0) on an 8x8 board (0..7),
	// (2,-1), (1,-2), (-2,1), (-2,-1), (-1,-2) land off the board;
	// only (1,2)->(2,2), (2,1)->(3,1), (-1,2)->(0,2) stay on it.
	want := []Activation{
		{DX: 1, DY: 2, Kind: token.MoveKindTakeMove},
		{DX: 2, DY: 1, Kind: token.MoveKindTakeMove},
		{DX: -1, DY: 2, Kind: token.MoveKindTakeMove},
	}
	diffActivations(t, got, want)
}

func TestPawnInitialDoubleStep(t *testing.T) {
	src := "observe(0,1) move(0,1); observe(0,1) peek(0,1) move(0,1);"
	prog := mustParse(t, src)
	board := stubboard.NewStandardBoard()
	board.SetActing(4, 1, "pawn", true)

	got, _ := newTestInterp().Execute(prog, board)

	want := []Activation{
		{DX: 0, DY: 1, Kind: token.MoveKindMove},
		{DX: 0, DY: 2, Kind: token.MoveKindMove},
	}
	diffActivations(t, got, want)
}

func TestPawnInitialBlockedTwoSquaresAhead(t *testing.T) {
	src := "observe(0,1) move(0,1); observe(0,1) peek(0,1) move(0,1);"
	prog := mustParse(t, src)
	board := stubboard.NewStandardBoard()
	board.SetActing(4, 1, "pawn", true)
	board.Place(4, 3, stubboard.Piece{Owner: 0, Kind: "pawn", IsWhite: true})

	got, _ := newTestInterp().Execute(prog, board)

	want := []Activation{
		{DX: 0, DY: 1, Kind: token.MoveKindMove},
	}
	diffActivations(t, got, want)
}

func TestBlockIsolationYFork(t *testing.T) {
	prog := mustParse(t, "{ take-move(1,0) }; { take-move(-1,0) };")
	board := stubboard.NewStandardBoard()
	board.SetActing(3, 3, "rook", true)

	got, _ := newTestInterp().Execute(prog, board)

	want := []Activation{
		{DX: 1, DY: 0, Kind: token.MoveKindTakeMove},
		{DX: -1, DY: 0, Kind: token.MoveKindTakeMove},
	}
	diffActivations(t, got, want)
}

func TestBlockIsolationContainsInBlockFailure(t *testing.T) {
	prog := mustParse(t, "{ friendly(1,0) move(5,5) } move(1,0);")
	board := stubboard.NewStandardBoard()
	board.SetActing(3, 3, "rook", true)

	got, _ := newTestInterp().Execute(prog, board)

	// friendly(1,0) is false (the square is empty), which fails inside
	// the block. The failure is contained there: move(5,5) inside the
	// block never runs, but move(1,0) after the block still does,
	// because the block's failure doesn't terminate the enclosing chain.
	want := []Activation{
		{DX: 1, DY: 0, Kind: token.MoveKindMove},
	}
	diffActivations(t, got, want)
}

func TestJumpLabelSkipsMoveOnFalse(t *testing.T) {
	prog := mustParse(t, "observe(0,1) jne(1) move(0,1); label(1);")
	board := stubboard.NewStandardBoard()
	board.SetActing(4, 1, "pawn", true)
	board.Place(4, 2, stubboard.Piece{Owner: 1, Kind: "pawn", IsWhite: false})

	got, diag := newTestInterp().Execute(prog, board)
	diffActivations(t, got, nil)
	assert.Empty(t, diag.MissingLabels)
}

func TestJumpLabelRunsMoveOnTrue(t *testing.T) {
	prog := mustParse(t, "observe(0,1) jne(1) move(0,1); label(1);")
	board := stubboard.NewStandardBoard()
	board.SetActing(4, 1, "pawn", true)

	got, _ := newTestInterp().Execute(prog, board)
	want := []Activation{{DX: 0, DY: 1, Kind: token.MoveKindMove}}
	diffActivations(t, got, want)
}

func TestReExecuteIsDeterministic(t *testing.T) {
	prog := mustParse(t, "take-move(1,0) repeat(1);")
	board := stubboard.NewStandardBoard()
	board.SetActing(3, 3, "rook", true)

	ip := newTestInterp()
	first, _ := ip.Execute(prog, board)
	second, _ := ip.Execute(prog, board)
	diffActivations(t, second, first)
}

func TestBlockIsolationAnchorRestored(t *testing.T) {
	prog := mustParse(t, "{ move(1,0) move(1,0) } move(0,1);")
	board := stubboard.NewStandardBoard()
	board.SetActing(3, 3, "pawn", true)

	got, _ := newTestInterp().Execute(prog, board)

	// The block moves the anchor twice, but the move after the block, in
	// the same chain, starts from the anchor saved at '{' (0,0), not from
	// the block's final anchor.
	want := []Activation{
		{DX: 1, DY: 0, Kind: token.MoveKindMove},
		{DX: 2, DY: 0, Kind: token.MoveKindMove},
		{DX: 0, DY: 1, Kind: token.MoveKindMove},
	}
	diffActivations(t, got, want)
}

func TestNotIsInvolution(t *testing.T) {
	prog := mustParse(t, "observe(0,1) not not move(0,1);")
	board := stubboard.NewStandardBoard()
	board.SetActing(4, 1, "pawn", true)

	got, _ := newTestInterp().Execute(prog, board)
	want := []Activation{{DX: 0, DY: 1, Kind: token.MoveKindMove}}
	diffActivations(t, got, want)
}

func TestMissingLabelIsDiagnosticNotError(t *testing.T) {
	prog := mustParse(t, "jmp(99);")
	board := stubboard.NewStandardBoard()
	board.SetActing(0, 0, "rook", true)

	got, diag := newTestInterp().Execute(prog, board)
	diffActivations(t, got, nil)
	require.Len(t, diag.MissingLabels, 1)
	assert.Equal(t, int32(99), diag.MissingLabels[0].N)
	assert.Equal(t, token.Jmp, diag.MissingLabels[0].From)
}

func TestDispatchLimitStopsExecutionCleanly(t *testing.T) {
	prog := mustParse(t, "move(1,0) repeat(1);")
	board := stubboard.NewStandardBoard()
	board.SetActing(0, 0, "rook", true)

	limits := config.Limits{MaxActivations: 1000, MaxDispatches: 5}
	ip := New(limits, nil)
	_, diag := ip.Execute(prog, board)

	assert.True(t, diag.DispatchesLimitHit)
}

func TestActivationsLimitStopsExecutionCleanly(t *testing.T) {
	prog := mustParse(t, "shift(1,0) repeat(1);")
	board := stubboard.NewStandardBoard()
	board.SetActing(0, 0, "rook", true)

	limits := config.Limits{MaxActivations: 3, MaxDispatches: 100000}
	ip := New(limits, nil)
	got, diag := ip.Execute(prog, board)

	assert.True(t, diag.ActivationsLimitHit)
	assert.Len(t, got, 3)
}

func TestSemicolonResetsTagsAndAnchor(t *testing.T) {
	prog := mustParse(t, "transition(\"queen\") move(1,0); move(0,1);")
	board := stubboard.NewStandardBoard()
	board.SetActing(3, 3, "pawn", true)

	got, _ := newTestInterp().Execute(prog, board)
	require.Len(t, got, 2)
	assert.Equal(t, ActionTagTransition, got[0].Tags[0].Kind)
	assert.Empty(t, got[1].Tags, "activation after the semicolon must not carry tags from the previous chain")
	assert.Equal(t, int32(0), got[1].DX)
	assert.Equal(t, int32(1), got[1].DY)
}
