package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func writeScript(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "piece.script")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLexCommand(t *testing.T) {
	path := writeScript(t, "move(1,0);")
	out, err := runCLI(t, "lex", path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "keyword") || !strings.Contains(out, "move") {
		t.Errorf("lex output missing expected tokens:\n%s", out)
	}
}

func TestParseCommandSuccess(t *testing.T) {
	path := writeScript(t, "move(1,0);")
	out, err := runCLI(t, "parse", path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "ok:") {
		t.Errorf("parse output = %q, want an ok summary", out)
	}
}

func TestParseCommandFailure(t *testing.T) {
	path := writeScript(t, "mvoe(1,0);")
	_, err := runCLI(t, "parse", path)
	if err == nil {
		t.Fatal("expected an error for an unknown keyword")
	}
	if !strings.Contains(err.Error(), "did you mean") {
		t.Errorf("error = %v, want a fuzzy suggestion", err)
	}
}

func TestRunCommandProducesActivations(t *testing.T) {
	path := writeScript(t, "move(1,0);")
	out, err := runCLI(t, "run", path, "--x=3", "--y=3", "--kind=rook")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, `"dx": 1`) && !strings.Contains(out, `"DX": 1`) {
		t.Errorf("run output missing expected activation:\n%s", out)
	}
}

func writeBoardFixture(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "board.json")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunCommandLoadsBoardFixtureBoundsAndPieces(t *testing.T) {
	scriptPath := writeScript(t, "enemy(1,0) take-move(1,0);")
	boardPath := writeBoardFixture(t, `{
		"minX": 0, "minY": 0, "maxX": 7, "maxY": 7,
		"pieces": [
			{"x": 3, "y": 3, "owner": 0, "kind": "rook", "isWhite": true},
			{"x": 4, "y": 3, "owner": 1, "kind": "pawn", "isWhite": false}
		]
	}`)

	out, err := runCLI(t, "run", scriptPath, "--x=3", "--y=3", "--kind=rook", "--board="+boardPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// If the fixture's bounds/pieces failed to decode (all fields
	// zero-valued), the board would have no piece at (4,3) and the
	// capture would never fire.
	if !strings.Contains(out, `"dx": 1`) && !strings.Contains(out, `"DX": 1`) {
		t.Errorf("run output missing expected capture activation, fixture fields may not have decoded:\n%s", out)
	}
}
