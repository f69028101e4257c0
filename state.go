package readability

import (
	"log/slog"

	"golang.org/x/net/html"
)

const (
	flagStripUnlikelys     = 1 << iota // strip elements matching the unlikely-candidates regex
	flagWeightClasses                  // apply class/id weight to scores
	flagCleanConditionally             // run the conditional-cleaning heuristics in article preparation
)

const allFlags = flagStripUnlikelys | flagWeightClasses | flagCleanConditionally

// nodeScore is the transient per-element "readability" annotation: created
// on first touch, mutated during scoring and propagation, read during
// candidate selection, discarded with the rest of the parse state.
type nodeScore struct {
	contentScore float64
}

// state carries everything the scoring and cleanup pipeline needs for a
// single parse: it is owned by the orchestrator, and its score table is
// cleared on every retry attempt, since the retry controller restores the
// DOM from its cached snapshot between attempts. Flags and metadata carry
// over from one attempt to the next.
type state struct {
	opts   Options
	logger *slog.Logger
	flags  int
	scores map[*html.Node]*nodeScore
	meta   *Metadata
}

func newState(opts Options, logger *slog.Logger, meta *Metadata) *state {
	return &state{
		opts:   opts,
		logger: logger,
		flags:  allFlags,
		scores: make(map[*html.Node]*nodeScore),
		meta:   meta,
	}
}

func (s *state) flagActive(f int) bool { return s.flags&f != 0 }
func (s *state) removeFlag(f int)      { s.flags &^= f }

func (s *state) score(n *html.Node) *nodeScore {
	ns, ok := s.scores[n]
	if !ok {
		ns = &nodeScore{}
		s.scores[n] = ns
	}
	return ns
}

func (s *state) hasScore(n *html.Node) bool {
	_, ok := s.scores[n]
	return ok
}

func (s *state) debugf(format string, args ...any) {
	if s.opts.Debug {
		s.logger.Debug(format, args...)
	}
}
