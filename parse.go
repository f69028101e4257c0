package readability

import (
	"io"
	"log/slog"

	"github.com/Furafrafrfr/readability/dom"
	"github.com/Furafrafrfr/readability/serialize"
	"golang.org/x/net/html"
)

// renderArticle serializes articleContent via opts.Serializer, falling
// back to HTML when none is set.
func renderArticle(opts Options, articleContent *html.Node) (string, error) {
	if opts.Serializer != nil {
		return opts.Serializer(articleContent)
	}
	return serialize.HTML(articleContent)
}

// NewOptions returns the default option set; it exists alongside
// DefaultOptions so callers reaching for the New* naming convention find
// what they expect.
func NewOptions() Options { return DefaultOptions() }

// Extract parses htmlSource and runs the full metadata, scoring, cleanup,
// and post-processing pipeline, returning a populated Result.
//
// Extract mutates its own freshly-parsed DOM in place; it never touches
// caller-owned state, so concurrent calls are safe as long as Options
// (and any logger it references) are not mutated concurrently.
func Extract(htmlSource, documentURI string, opts Options) (*Result, error) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if opts.Debug {
		logger = slog.Default()
	}
	return extract(htmlSource, documentURI, opts, logger)
}

func extract(htmlSource, documentURI string, opts Options, logger *slog.Logger) (*Result, error) {
	doc, err := dom.Parse(htmlSource, documentURI)
	if err != nil {
		return nil, newError(ErrCodeDOMContractViolation, "failed to parse document", err)
	}

	if opts.MaxElemsToParse > 0 {
		if count := len(dom.GetElementsByTagName(doc.Root, "*")); count > opts.MaxElemsToParse {
			return nil, newError(ErrCodeInputTooLarge, "document exceeds MaxElemsToParse", nil)
		}
	}

	unwrapNoscriptImages(doc)

	titleHeuristic := articleTitleHeuristic(doc)

	s := newState(opts, logger, &Metadata{})
	meta := extractMetadata(s, doc, titleHeuristic)
	s.meta = meta

	preprocessDocument(doc)

	articleContent := runRetryController(s, doc)

	title := meta.Title
	if title == "" {
		title = titleHeuristic
	}

	postprocessArticle(s, doc, articleContent)

	textContent := dom.InnerText(articleContent)
	if len(textContent) == 0 {
		return nil, newError(ErrCodeExtractionFailed, "no content survived extraction", nil)
	}

	content, err := renderArticle(opts, articleContent)
	if err != nil {
		return nil, newError(ErrCodeDOMContractViolation, "failed to serialize article", err)
	}

	lang := ""
	if v, ok := dom.Attr(doc.Html(), "lang"); ok {
		lang = v
	}
	dir := ""
	if v, ok := dom.Attr(doc.Html(), "dir"); ok {
		dir = v
	}

	return &Result{
		Title:         title,
		Content:       content,
		TextContent:   textContent,
		Length:        len(textContent),
		Excerpt:       meta.Excerpt,
		Byline:        meta.Byline,
		Dir:           dir,
		SiteName:      meta.SiteName,
		Lang:          lang,
		PublishedTime: meta.PublishedTime,
	}, nil
}
