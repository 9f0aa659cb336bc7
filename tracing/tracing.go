// Package tracing provides the injected debug sink the interpreter
// writes its per-token trace to. The interpreter never formats or
// writes trace output itself; it only calls the Sink interface,
// routing all debug logging through an injected *slog.Logger rather
// than writing to stdout directly.
package tracing

import (
	"log/slog"
	"os"

	"github.com/chesstack-dsl/chesstack/token"
)

// LimitKind identifies which resource cap was hit.
type LimitKind int

const (
	LimitActivations LimitKind = iota
	LimitDispatches
)

func (k LimitKind) String() string {
	if k == LimitActivations {
		return "max-activations"
	}
	return "max-dispatches"
}

// Sink receives one record per token dispatch, one per emitted
// activation, and one if a resource limit terminates execution early.
// Implementations must not block the interpreter for long: Execute runs
// synchronously with no suspension points.
type Sink interface {
	TokenTrace(pc int, tok token.Token, anchorX, anchorY int32, lastValue bool)
	Activation(dx, dy int32, kind token.MoveKind)
	LimitExceeded(kind LimitKind, pc int)
	MissingLabel(kind token.Kind, n int32, pc int)
}

// nopSink discards every event; used when debug tracing is off so the
// interpreter's hot path pays only the cost of one interface check.
type nopSink struct{}

func (nopSink) TokenTrace(int, token.Token, int32, int32, bool) {}
func (nopSink) Activation(int32, int32, token.MoveKind)         {}
func (nopSink) LimitExceeded(LimitKind, int)                    {}
func (nopSink) MissingLabel(token.Kind, int32, int)             {}

// Nop is the shared no-op sink.
var Nop Sink = nopSink{}

// slogSink implements Sink on top of log/slog, the logging idiom the
// rest of this codebase uses for debug output.
type slogSink struct {
	logger *slog.Logger
}

// NewSlogSink wraps logger as a Sink. If logger is nil, a default
// logger writing to stderr at Debug level is created.
func NewSlogSink(logger *slog.Logger) Sink {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	return &slogSink{logger: logger}
}

func (s *slogSink) TokenTrace(pc int, tok token.Token, anchorX, anchorY int32, lastValue bool) {
	s.logger.Debug("token",
		slog.Int("pc", pc),
		slog.String("kind", tok.Kind.String()),
		slog.Int64("anchor_x", int64(anchorX)),
		slog.Int64("anchor_y", int64(anchorY)),
		slog.Bool("last_value", lastValue),
	)
}

func (s *slogSink) Activation(dx, dy int32, kind token.MoveKind) {
	s.logger.Debug("activation",
		slog.Int64("dx", int64(dx)),
		slog.Int64("dy", int64(dy)),
		slog.String("move_type", kind.String()),
	)
}

func (s *slogSink) LimitExceeded(kind LimitKind, pc int) {
	s.logger.Debug("limit-exceeded", slog.String("kind", kind.String()), slog.Int("pc", pc))
}

func (s *slogSink) MissingLabel(kind token.Kind, n int32, pc int) {
	s.logger.Debug("missing-label", slog.String("from", kind.String()), slog.Int64("n", int64(n)), slog.Int("pc", pc))
}
