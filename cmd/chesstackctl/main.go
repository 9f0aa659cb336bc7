// Command chesstackctl is a developer aid for lexing, parsing, and
// running piece-movement scripts against a stub board.
package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/chesstack-dsl/chesstack/boardview"
	"github.com/chesstack-dsl/chesstack/config"
	"github.com/chesstack-dsl/chesstack/interp"
	"github.com/chesstack-dsl/chesstack/internal/stubboard"
	"github.com/chesstack-dsl/chesstack/lexer"
	"github.com/chesstack-dsl/chesstack/parser"
	"github.com/chesstack-dsl/chesstack/tracing"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "chesstackctl",
		Short:         "Lex, parse, and run piece-movement scripts",
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	root.AddCommand(newLexCmd(), newParseCmd(), newRunCmd())
	return root
}

func newLexCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lex <file>",
		Short: "Print the flat token sequence a script lexes to",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			lx := lexer.New(string(src))
			for {
				raw, err := lx.Next()
				if err != nil {
					return err
				}
				if raw.Kind == lexer.RawEOF {
					break
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%d:%d\t%s\t%q\n", raw.Pos.Line, raw.Pos.Column, rawKindName(raw.Kind), raw.Text)
			}
			return nil
		},
	}
}

func rawKindName(k lexer.RawKind) string {
	switch k {
	case lexer.RawEOF:
		return "eof"
	case lexer.RawKeyword:
		return "keyword"
	case lexer.RawBlockOpen:
		return "{"
	case lexer.RawBlockClose:
		return "}"
	case lexer.RawSemicolon:
		return ";"
	default:
		return "unknown"
	}
}

func newParseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse a script and report success or a formatted error",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			prog, err := parser.Parse(string(src))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ok: %d tokens\n", len(prog.Tokens))
			return nil
		},
	}
}

func newRunCmd() *cobra.Command {
	var (
		x, y      int32
		white     bool
		kind      string
		boardFile string
		debug     bool
	)

	cmd := &cobra.Command{
		Use:   "run <file>",
		Short: "Execute a script for a piece on a stub board",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			prog, err := parser.Parse(string(src))
			if err != nil {
				return err
			}

			bv, err := loadBoard(boardFile, x, y, boardview.PieceName(kind), white)
			if err != nil {
				return err
			}

			var sink tracing.Sink = tracing.Nop
			if debug {
				sink = tracing.NewSlogSink(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
			}

			ip := interp.New(config.DefaultLimits(), sink)
			activations, diag := ip.Execute(prog, bv)

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(struct {
				Activations []interp.Activation `json:"activations"`
				Diagnostics interp.Diagnostics   `json:"diagnostics"`
			}{activations, diag})
		},
	}

	cmd.Flags().Int32Var(&x, "x", 0, "acting piece x coordinate")
	cmd.Flags().Int32Var(&y, "y", 0, "acting piece y coordinate")
	cmd.Flags().BoolVar(&white, "white", true, "acting piece is white")
	cmd.Flags().StringVar(&kind, "kind", "", "acting piece kind name")
	cmd.Flags().StringVar(&boardFile, "board", "", "JSON board fixture (default: empty 8x8 board)")
	cmd.Flags().BoolVar(&debug, "debug", false, "trace dispatch to stderr")

	return cmd
}

// boardFixture is the on-disk shape --board accepts: a flat list of
// occupied squares plus optional danger/state overrides.
type boardFixture struct {
	MinX int32 `json:"minX"`
	MinY int32 `json:"minY"`
	MaxX int32 `json:"maxX"`
	MaxY int32 `json:"maxY"`
	Pieces []struct {
		X       int32  `json:"x"`
		Y       int32  `json:"y"`
		Owner   int    `json:"owner"`
		Kind    string `json:"kind"`
		IsWhite bool   `json:"isWhite"`
	} `json:"pieces"`
	Danger [][2]int32       `json:"danger"`
	State  map[string]int32 `json:"state"`
	Check  bool             `json:"check"`
}

func loadBoard(path string, x, y int32, kind boardview.PieceName, white bool) (boardview.BoardView, error) {
	if path == "" {
		b := stubboard.NewStandardBoard()
		b.SetActing(x, y, kind, white)
		return b, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var fx boardFixture
	if err := json.Unmarshal(data, &fx); err != nil {
		return nil, err
	}

	b := stubboard.NewBoard(fx.MinX, fx.MinY, fx.MaxX, fx.MaxY)
	for _, p := range fx.Pieces {
		b.Place(p.X, p.Y, stubboard.Piece{
			Owner:   boardview.PlayerID(p.Owner),
			Kind:    boardview.PieceName(p.Kind),
			IsWhite: p.IsWhite,
		})
	}
	for _, d := range fx.Danger {
		b.SetDanger(d[0], d[1], true)
	}
	for k, v := range fx.State {
		b.SetState(k, v)
	}
	b.SetCheck(fx.Check)
	b.SetActing(x, y, kind, white)
	return b, nil
}
