package readability

import (
	"regexp"

	"golang.org/x/net/html"
)

// defaultAllowedVideoRegex matches iframe/object/embed sources considered
// safe to keep verbatim during the article preparator's embed cleanup.
var defaultAllowedVideoRegex = regexp.MustCompile(`(?i)//(www\.)?((dailymotion|youtube|youtube-nocookie|player\.vimeo|v\.qq)\.com|(archive|upload\.wikimedia)\.org|player\.twitch\.tv)`)

// Options configures a single Extract call. The zero value is not usable;
// construct with NewOptions or DefaultOptions.
type Options struct {
	// Debug emits a diagnostic slog event for each recovered error
	// (MalformedMetadata, URIResolutionFailed). It never turns a
	// heuristic mismatch into a returned error.
	Debug bool

	// MaxElemsToParse aborts extraction with an InputTooLarge error when
	// the document has more elements than this. 0 disables the check.
	MaxElemsToParse int

	// NbTopCandidates is the size of the top-N candidate list tracked
	// during scoring.
	NbTopCandidates int

	// CharThreshold is the minimum accepted textContent length; the retry
	// controller relaxes flags until this is met or attempts are
	// exhausted.
	CharThreshold int

	// ClassesToPreserve lists extra class tokens the post-processor keeps
	// beyond the built-in "page".
	ClassesToPreserve []string

	// KeepClasses disables class-attribute stripping entirely when true.
	KeepClasses bool

	// DisableJSONLD skips the JSON-LD metadata pass; priority falls
	// through to the meta-tag pass for every field (see DESIGN.md open
	// question 2).
	DisableJSONLD bool

	// AllowedVideoRegex overrides the allowed-video regex used by the
	// embed-cleanup heuristic.
	AllowedVideoRegex *regexp.Regexp

	// LinkDensityModifier is an additive adjustment applied to the
	// link-density thresholds used by conditional cleaning.
	LinkDensityModifier float64

	// OnRecoverableError, if set, is called for MalformedMetadata and
	// URIResolutionFailed occurrences. These never fail extraction; this
	// hook exists purely for callers that want visibility beyond debug
	// logs.
	OnRecoverableError func(*Error)

	// Serializer maps the finished article root to an output string. The
	// zero value serializes to HTML; see package serialize for Markdown
	// and plain-text alternatives.
	Serializer func(root *html.Node) (string, error)
}

// DefaultOptions returns the option set the reference algorithm ships as
// defaults.
func DefaultOptions() Options {
	return Options{
		MaxElemsToParse:     0,
		NbTopCandidates:     5,
		CharThreshold:       500,
		ClassesToPreserve:   []string{"page"},
		AllowedVideoRegex:   defaultAllowedVideoRegex,
		LinkDensityModifier: 0,
	}
}

func (o Options) videoRegex() *regexp.Regexp {
	if o.AllowedVideoRegex != nil {
		return o.AllowedVideoRegex
	}
	return defaultAllowedVideoRegex
}

func (o Options) preservedClasses() map[string]struct{} {
	set := map[string]struct{}{"page": {}}
	for _, c := range o.ClassesToPreserve {
		set[c] = struct{}{}
	}
	return set
}
