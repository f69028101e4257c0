package readability

import (
	"github.com/Furafrafrfr/readability/dom"
	"golang.org/x/net/html"
)

type attemptResult struct {
	content *html.Node
	textLen int
}

// runRetryController runs the candidate-grab/prepare pipeline against
// doc's body, relaxing one flag at a time and restarting from a pristine
// DOM snapshot whenever the result falls short of the character
// threshold. It always returns a non-nil articleContent: when every
// attempt falls short, the longest one wins.
func runRetryController(s *state, doc *dom.Document) *html.Node {
	body := doc.Body()
	if body == nil {
		body = dom.CreateElement("body")
	}
	cache, err := dom.InnerHTML(body)
	if err != nil {
		cache = ""
	}

	var attempts []attemptResult
	for i := 0; i < 4; i++ {
		if i > 0 {
			s.scores = make(map[*html.Node]*nodeScore)
			_ = dom.SetInnerHTML(body, cache)
			relaxNextFlag(s)
		}

		articleContent := grabArticle(s, doc)
		prepareArticle(s, articleContent)
		textLen := len(dom.InnerText(articleContent))
		if textLen >= s.opts.CharThreshold {
			return articleContent
		}
		attempts = append(attempts, attemptResult{content: articleContent, textLen: textLen})
	}

	best := attempts[0]
	for _, a := range attempts[1:] {
		if a.textLen > best.textLen {
			best = a
		}
	}
	return best.content
}

// relaxNextFlag clears the first still-active flag in strip-unlikelys,
// weight-classes, clean-conditionally order.
func relaxNextFlag(s *state) {
	switch {
	case s.flagActive(flagStripUnlikelys):
		s.removeFlag(flagStripUnlikelys)
	case s.flagActive(flagWeightClasses):
		s.removeFlag(flagWeightClasses)
	case s.flagActive(flagCleanConditionally):
		s.removeFlag(flagCleanConditionally)
	}
}
