// Package parser turns lexer.Raw tokens into a validated token.Program:
// it resolves keyword spellings to token.Kind, checks argument arity and
// literal types, and verifies that every '{' is matched by a '}'. It
// does not resolve Label/Jmp/Jne targets — those are looked up by the
// interpreter at run time by scanning the finished token sequence.
package parser

import (
	"fmt"
	"strings"

	"github.com/chesstack-dsl/chesstack/lexer"
	"github.com/chesstack-dsl/chesstack/token"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

type argShape int

const (
	shapeNone argShape = iota
	shapeDXDY
	shapeName
	shapeNameDXDY
	shapeKeyN
	shapeN
)

type keywordSpec struct {
	kind  token.Kind
	shape argShape
}

var keywords = map[string]keywordSpec{
	// movement
	"move":      {token.Move, shapeDXDY},
	"take":      {token.Take, shapeDXDY},
	"take-move": {token.TakeMove, shapeDXDY},
	"catch":     {token.Catch, shapeDXDY},
	"jump":      {token.Jump, shapeDXDY},
	"shift":     {token.Shift, shapeDXDY},

	// condition
	"peek":     {token.Peek, shapeDXDY},
	"anchor":   {token.Anchor, shapeDXDY},
	"observe":  {token.Observe, shapeDXDY},
	"enemy":    {token.Enemy, shapeDXDY},
	"friendly": {token.Friendly, shapeDXDY},
	"danger":   {token.Danger, shapeDXDY},
	"piece-on": {token.PieceOn, shapeNameDXDY},
	"check":    {token.Check, shapeNone},

	// bounds-condition
	"bound":              {token.Bound, shapeDXDY},
	"edge":               {token.Edge, shapeDXDY},
	"corner":             {token.Corner, shapeDXDY},
	"edge-top":           {token.EdgeTop, shapeDXDY},
	"edge-bottom":        {token.EdgeBottom, shapeDXDY},
	"edge-left":          {token.EdgeLeft, shapeDXDY},
	"edge-right":         {token.EdgeRight, shapeDXDY},
	"corner-top-left":    {token.CornerTopLeft, shapeDXDY},
	"corner-top-right":   {token.CornerTopRight, shapeDXDY},
	"corner-bottom-left": {token.CornerBottomLeft, shapeDXDY},
	"corner-bottom-right": {token.CornerBottomRight, shapeDXDY},

	// state-condition
	"piece":    {token.Piece, shapeName},
	"if-state": {token.IfState, shapeKeyN},

	// modifier
	"transition": {token.Transition, shapeName},
	"set-state":  {token.SetState, shapeKeyN}, // no-args case handled specially in Parse

	// control
	"repeat": {token.Repeat, shapeN},
	"do":     {token.Do, shapeNone},
	"while":  {token.While, shapeNone},
	"label":  {token.Label, shapeN},
	"jmp":    {token.Jmp, shapeN},
	"jne":    {token.Jne, shapeN},
	"not":    {token.Not, shapeNone},
	"end":    {token.End, shapeNone},
}

func knownKeywords() []string {
	names := make([]string, 0, len(keywords))
	for k := range keywords {
		names = append(names, k)
	}
	return names
}

// Parse lexes and validates source, returning a ready-to-execute
// token.Program or a *ParseError describing the first failure.
func Parse(source string) (*token.Program, error) {
	lx := lexer.New(source)
	var toks []token.Token
	var braceStack []token.Position

	for {
		raw, err := lx.Next()
		if err != nil {
			le := err.(*lexer.Error)
			return nil, &ParseError{Kind: ErrSyntax, Message: le.Message, Pos: le.Pos, Source: source}
		}

		switch raw.Kind {
		case lexer.RawEOF:
			if len(braceStack) > 0 {
				return nil, &ParseError{
					Kind:    ErrUnmatchedBrace,
					Message: "unclosed '{'",
					Pos:     braceStack[len(braceStack)-1],
					Source:  source,
				}
			}
			if perr := checkDuplicateLabels(toks, source); perr != nil {
				return nil, perr
			}
			return &token.Program{Tokens: toks, Source: source}, nil

		case lexer.RawBlockOpen:
			braceStack = append(braceStack, raw.Pos)
			toks = append(toks, token.Token{Kind: token.BlockOpen, Pos: raw.Pos})

		case lexer.RawBlockClose:
			if len(braceStack) == 0 {
				return nil, &ParseError{Kind: ErrUnmatchedBrace, Message: "unmatched '}'", Pos: raw.Pos, Source: source}
			}
			braceStack = braceStack[:len(braceStack)-1]
			toks = append(toks, token.Token{Kind: token.BlockClose, Pos: raw.Pos})

		case lexer.RawSemicolon:
			toks = append(toks, token.Token{Kind: token.Semicolon, Pos: raw.Pos})

		case lexer.RawKeyword:
			tok, perr := resolveKeyword(raw, source)
			if perr != nil {
				return nil, perr
			}
			toks = append(toks, tok)

		default:
			return nil, &ParseError{Kind: ErrSyntax, Message: "internal: unhandled raw token kind", Pos: raw.Pos, Source: source}
		}
	}
}

// checkDuplicateLabels enforces that within one script a Label id
// uniquely identifies a label. It does not check reachability of
// Jmp/Jne targets — a dangling jump is an author error handled
// silently at run time, not a parse failure.
func checkDuplicateLabels(toks []token.Token, source string) *ParseError {
	seen := make(map[int32]token.Position)
	for _, t := range toks {
		if t.Kind != token.Label {
			continue
		}
		if pos, ok := seen[t.N]; ok {
			return &ParseError{
				Kind:    ErrDuplicateLabel,
				Message: fmt.Sprintf("label(%d) already defined at %d:%d", t.N, pos.Line, pos.Column),
				Pos:     t.Pos,
				Source:  source,
			}
		}
		seen[t.N] = t.Pos
	}
	return nil
}

func resolveKeyword(raw lexer.Raw, source string) (token.Token, *ParseError) {
	if raw.Text == "set-state" && !raw.HasArgs {
		return token.Token{Kind: token.ClearModifier, Pos: raw.Pos}, nil
	}

	spec, ok := keywords[raw.Text]
	if !ok {
		pe := &ParseError{
			Kind:    ErrUnknownKeyword,
			Message: fmt.Sprintf("unknown keyword %q", raw.Text),
			Pos:     raw.Pos,
			Source:  source,
		}
		bestDist := -1
		for _, name := range knownKeywords() {
			d := fuzzy.LevenshteinDistance(strings.ToLower(raw.Text), name)
			if bestDist < 0 || d < bestDist || (d == bestDist && name < pe.Suggestion) {
				pe.Suggestion, bestDist = name, d
			}
		}
		return token.Token{}, pe
	}

	tok := token.Token{Kind: spec.kind, Pos: raw.Pos}
	if err := fillArgs(&tok, spec.shape, raw, source); err != nil {
		return token.Token{}, err
	}
	return tok, nil
}

func fillArgs(tok *token.Token, shape argShape, raw lexer.Raw, source string) *ParseError {
	args := raw.Args
	badArgs := func(msg string) *ParseError {
		return &ParseError{Kind: ErrBadArguments, Message: fmt.Sprintf("%s: %s", raw.Text, msg), Pos: raw.Pos, Source: source}
	}

	switch shape {
	case shapeNone:
		if len(args) != 0 {
			return badArgs("takes no arguments")
		}
	case shapeDXDY:
		if len(args) != 2 || args[0].Kind != lexer.ArgInt || args[1].Kind != lexer.ArgInt {
			return badArgs("expects (dx, dy) integer arguments")
		}
		tok.DX, tok.DY = args[0].Int, args[1].Int
	case shapeName:
		if len(args) != 1 || args[0].Kind != lexer.ArgIdent {
			return badArgs("expects a single piece-name argument")
		}
		tok.Name = args[0].Ident
	case shapeNameDXDY:
		if len(args) != 3 || args[0].Kind != lexer.ArgIdent || args[1].Kind != lexer.ArgInt || args[2].Kind != lexer.ArgInt {
			return badArgs("expects (name, dx, dy) arguments")
		}
		tok.Name, tok.DX, tok.DY = args[0].Ident, args[1].Int, args[2].Int
	case shapeKeyN:
		if len(args) != 2 || args[0].Kind != lexer.ArgIdent {
			return badArgs("expects (key, n) arguments")
		}
		tok.Key = args[0].Ident
		switch args[1].Kind {
		case lexer.ArgInt:
			if args[1].Int < 0 {
				return badArgs("n must be non-negative")
			}
			tok.N = args[1].Int
		case lexer.ArgBool:
			if args[1].Bool {
				tok.N = 1
			} else {
				tok.N = 0
			}
		default:
			return badArgs("second argument must be an integer or boolean")
		}
	case shapeN:
		if len(args) != 1 || args[0].Kind != lexer.ArgInt || args[0].Int < 0 {
			return badArgs("expects a single non-negative integer argument")
		}
		tok.N = args[0].Int
	}
	return nil
}
