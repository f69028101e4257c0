package readability

import (
	"regexp"
	"strings"

	"github.com/Furafrafrfr/readability/dom"
	"github.com/Furafrafrfr/readability/internal/textutil"
	"golang.org/x/net/html"
)

// grabArticle walks doc's body, scoring candidate elements and assembling
// the highest-scoring one (plus its qualifying siblings) into a detached
// <div> tree. It never returns nil: a body with no scorable content still
// yields an (empty) wrapper, so the retry controller can measure its
// length and decide whether to relax a flag and try again.
func grabArticle(s *state, doc *dom.Document) *html.Node {
	body := doc.Body()
	if body == nil {
		body = dom.CreateElement("body")
	}

	elementsToScore := walkAndFilter(s, body)
	scoreCandidates(s, elementsToScore)

	topCandidate := selectTopCandidate(s, body)
	if topCandidate == nil {
		// No scorable content at all: fabricate an empty container so the
		// caller always has something to measure.
		return dom.CreateElement("div")
	}
	return assembleSiblings(s, topCandidate)
}

// walkAndFilter performs the single depth-first pass described for
// candidate traversal: visibility/byline/unlikely-candidate filtering,
// empty-container removal, div-to-p normalization, and scorable-tag
// collection. Mutates the tree in place; returns the elements to score.
func walkAndFilter(s *state, root *html.Node) []*html.Node {
	var toScore []*html.Node

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		children := dom.Children(n)
		for _, child := range children {
			if child.Parent == nil {
				continue // removed by an earlier sibling's handling
			}
			if next := processCandidate(s, child, &toScore); next != nil {
				walk(next)
			}
		}
	}
	walk(root)
	return toScore
}

// processCandidate applies the per-element filtering/normalization rules
// to n, returning the node the caller should recurse into next (n itself,
// a replacement such as a flattened <p>, or nil when n was removed).
func processCandidate(s *state, n *html.Node, toScore *[]*html.Node) *html.Node {
	if !isProbablyVisible(n) {
		dom.Remove(n)
		return nil
	}

	if s.meta.Byline == "" && looksLikeByline(n) {
		text := dom.InnerText(n)
		if len(text) <= 100 {
			s.meta.Byline = strings.TrimSpace(text)
			dom.Remove(n)
			return nil
		}
	}

	if s.flagActive(flagStripUnlikelys) && isUnlikelyCandidate(n) {
		dom.Remove(n)
		return nil
	}

	tag := dom.TagName(n)
	if (tag == "DIV" || tag == "SECTION" || tag == "HEADER" ||
		tag == "H1" || tag == "H2" || tag == "H3" || tag == "H4" || tag == "H5" || tag == "H6") &&
		isElementWithoutContent(n) {
		dom.Remove(n)
		return nil
	}

	if scorableTags[tag] {
		*toScore = append(*toScore, n)
		return n
	}

	if tag == "DIV" {
		return handleDiv(n, toScore)
	}

	return n
}

// isProbablyVisible implements the visibility predicate: not display:none,
// not visibility:hidden, no hidden attribute, aria-hidden != "true" unless
// the element is a lazy-loading fallback image.
func isProbablyVisible(n *html.Node) bool {
	style := dom.GetAttr(n, "style")
	if strings.Contains(style, "display:none") || strings.Contains(strings.ReplaceAll(style, " ", ""), "display:none") {
		return false
	}
	if strings.Contains(strings.ReplaceAll(style, " ", ""), "visibility:hidden") {
		return false
	}
	if dom.HasAttr(n, "hidden") {
		return false
	}
	if ariaHidden, _ := dom.Attr(n, "aria-hidden"); ariaHidden == "true" {
		if !strings.Contains(dom.ClassName(n), "fallback-image") {
			return false
		}
	}
	return true
}

func looksLikeByline(n *html.Node) bool {
	rel, _ := dom.Attr(n, "rel")
	itemprop, _ := dom.Attr(n, "itemprop")
	combined := dom.ClassName(n) + " " + dom.ID(n) + " " + rel + " " + itemprop
	return bylineRe.MatchString(combined)
}

func isUnlikelyCandidate(n *html.Node) bool {
	tag := dom.TagName(n)
	if tag == "BODY" || tag == "A" {
		return false
	}
	if dom.HasAncestorTag(n, "table", 0) || dom.HasAncestorTag(n, "code", 0) {
		return false
	}
	if role, ok := dom.Attr(n, "role"); ok {
		if _, unlikely := unlikelyRolesRe[strings.ToLower(strings.TrimSpace(role))]; unlikely {
			return true
		}
	}
	matchString := dom.ClassName(n) + " " + dom.ID(n)
	if !unlikelyCandidatesRe.MatchString(matchString) {
		return false
	}
	return !okMaybeItsACandidateRe.MatchString(matchString)
}

func isElementWithoutContent(n *html.Node) bool {
	if !textutil.IsWhitespace(dom.TextContent(n)) {
		return false
	}
	children := dom.Children(n)
	if len(children) == 0 {
		return true
	}
	for _, c := range children {
		tag := dom.TagName(c)
		if tag != "BR" && tag != "HR" {
			return false
		}
	}
	return true
}

// handleDiv groups a DIV's phrasing-content runs into <p> wrappers, then
// either flattens a lone-paragraph DIV or retags a block-free DIV to <p>
// for scoring. Returns the node the caller should recurse into next.
func handleDiv(n *html.Node, toScore *[]*html.Node) *html.Node {
	groupPhrasingChildrenIntoParagraphs(n)

	children := dom.Children(n)
	if len(children) == 1 && dom.TagName(children[0]) == "P" && linkDensity(children[0]) < 0.25 {
		p := children[0]
		dom.Remove(p)
		replaceNodeInPlace(n, p)
		*toScore = append(*toScore, p)
		return p
	}

	hasBlockChild := false
	for _, c := range children {
		if divToPElems[dom.TagName(c)] {
			hasBlockChild = true
			break
		}
	}
	if !hasBlockChild {
		dom.SetTagName(n, "P")
		*toScore = append(*toScore, n)
	}
	return n
}

// groupPhrasingChildrenIntoParagraphs rewrites n's child list so that runs
// of phrasing content (skipping whitespace-only text nodes) are wrapped in
// new <p> elements, in place of the original nodes.
func groupPhrasingChildrenIntoParagraphs(n *html.Node) {
	nodes := dom.ChildNodes(n)
	var p *html.Node
	for _, c := range nodes {
		if c.Parent != n {
			continue
		}
		if dom.IsText(c) && textutil.IsWhitespace(c.Data) {
			continue
		}
		if isPhrasingContent(c) {
			if p == nil {
				p = dom.CreateElement("p")
				dom.InsertBefore(n, p, c)
			}
			dom.AppendChild(p, c)
		} else {
			p = nil
		}
	}
}

// replaceNodeInPlace substitutes old's position in its (former) tree with
// replacement; old must already have been detached from its parent. This
// is used when a child has already been removed from n but must now take
// n's place among n's own siblings.
func replaceNodeInPlace(old, replacement *html.Node) {
	if old.Parent != nil {
		dom.ReplaceChild(old.Parent, replacement, old)
	}
}

// scoreCandidates runs the scoring engine: innerText gating, ancestor
// seeding via initializeNode, comma/length scoring, and propagation up to
// five ancestor levels.
func scoreCandidates(s *state, elements []*html.Node) {
	for _, el := range elements {
		text := dom.InnerText(el)
		if len(text) < 25 {
			continue
		}
		ancestors := dom.Ancestors(el, 5)
		if len(ancestors) == 0 {
			continue
		}

		contentScore := 1.0
		contentScore += float64(textutil.CountCommas(text))
		contentScore += minFloat(float64(len(text)/100), 3)

		for level, ancestor := range ancestors {
			if !s.hasScore(ancestor) {
				initializeNode(s, ancestor)
			}
			divider := scoreDivider(level)
			s.score(ancestor).contentScore += contentScore / divider
		}
	}
}

func scoreDivider(level int) float64 {
	switch {
	case level == 0:
		return 1
	case level == 1:
		return 2
	default:
		return float64(level) * 3
	}
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

// initializeNode seeds ancestor's readability score with its tag's base
// score plus the class/id weight, on first touch.
func initializeNode(s *state, n *html.Node) {
	base := baseScores[dom.TagName(n)]
	s.score(n).contentScore = base + classIDWeight(s, n)
}

// classIDWeight implements the ±25 class/id weight; zero when the
// weight-classes flag is inactive.
func classIDWeight(s *state, n *html.Node) float64 {
	if !s.flagActive(flagWeightClasses) {
		return 0
	}
	weight := 0.0
	for _, token := range []string{dom.ClassName(n), dom.ID(n)} {
		if token == "" {
			continue
		}
		if negativeWeightRe.MatchString(token) {
			weight -= 25
		}
		if positiveWeightRe.MatchString(token) {
			weight += 25
		}
	}
	return weight
}

// linkDensity computes the weighted ratio of anchor text to total text
// within n, per the glossary definition.
func linkDensity(n *html.Node) float64 {
	text := dom.InnerText(n)
	totalLen := len(text)
	if totalLen == 0 {
		return 0
	}
	var linkLen float64
	for _, a := range dom.GetElementsByTagName(n, "a") {
		aLen := float64(len(dom.InnerText(a)))
		href, _ := dom.Attr(a, "href")
		if strings.HasPrefix(href, "#") && len(href) > 1 {
			aLen *= 0.3
		}
		linkLen += aLen
	}
	return linkLen / float64(totalLen)
}

func adjustedScore(s *state, n *html.Node) float64 {
	if !s.hasScore(n) {
		return 0
	}
	return s.score(n).contentScore * (1 - linkDensity(n))
}

// selectTopCandidate implements the top-N retention and refinement: it
// scans every scored descendant of body for the best adjusted score, then
// applies alternate-ancestor promotion, parent climbing, and single-child
// climbing.
func selectTopCandidate(s *state, body *html.Node) *html.Node {
	nbTopCandidates := s.opts.NbTopCandidates
	if nbTopCandidates <= 0 {
		nbTopCandidates = 5
	}
	topCandidates := topNScoredDescendants(s, body, nbTopCandidates)
	if len(topCandidates) == 0 {
		return nil
	}

	topCandidate := topCandidates[0]
	if dom.TagName(topCandidate) == "BODY" {
		wrapper := dom.CreateElement("div")
		for _, c := range dom.Children(body) {
			dom.AppendChild(wrapper, c)
		}
		dom.AppendChild(body, wrapper)
		initializeNode(s, wrapper)
		return wrapper
	}

	topCandidate = promoteAlternateAncestor(s, topCandidate, topCandidates)
	topCandidate = climbToHigherScoringParent(s, topCandidate)
	topCandidate = climbSingleChildAncestors(topCandidate)

	if !s.hasScore(topCandidate) {
		initializeNode(s, topCandidate)
	}
	return topCandidate
}

// topNScoredDescendants returns up to n scored elements under root, sorted
// by descending adjusted score.
func topNScoredDescendants(s *state, root *html.Node, n int) []*html.Node {
	var all []*html.Node
	if s.hasScore(root) {
		all = append(all, root)
	}
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			if dom.IsElement(c) {
				if s.hasScore(c) {
					all = append(all, c)
				}
				walk(c)
			}
		}
	}
	walk(root)

	top := make([]*html.Node, 0, n)
	for _, cand := range all {
		score := adjustedScore(s, cand)
		inserted := false
		for i, existing := range top {
			if score > adjustedScore(s, existing) {
				top = append(top[:i], append([]*html.Node{cand}, top[i:]...)...)
				inserted = true
				break
			}
		}
		if !inserted {
			top = append(top, cand)
		}
		if len(top) > n {
			top = top[:n]
		}
	}
	return top
}

// promoteAlternateAncestor implements alternate-ancestor promotion: among
// the other top candidates scoring within 75% of the leader, an ancestor
// shared by three or more of their chains (and not <body>) wins instead.
// Ties are broken by iteration order over topCandidates[1:], the order in
// which candidates were retained, which preserves stable document order.
func promoteAlternateAncestor(s *state, topCandidate *html.Node, topCandidates []*html.Node) *html.Node {
	if len(topCandidates) < 3 {
		return topCandidate
	}
	threshold := adjustedScore(s, topCandidate) * 0.75

	tally := make(map[*html.Node]int)
	var order []*html.Node
	for _, alt := range topCandidates[1:] {
		if adjustedScore(s, alt) < threshold {
			continue
		}
		for _, ancestor := range dom.Ancestors(alt, 0) {
			if _, seen := tally[ancestor]; !seen {
				order = append(order, ancestor)
			}
			tally[ancestor]++
		}
	}
	for _, ancestor := range order {
		if dom.TagName(ancestor) == "BODY" {
			continue
		}
		if tally[ancestor] >= 3 {
			return ancestor
		}
	}
	return topCandidate
}

// climbToHigherScoringParent walks the parent chain, tracking the highest
// content score seen; a parent that exceeds the running maximum (a split
// container) is adopted as the new top candidate.
func climbToHigherScoringParent(s *state, topCandidate *html.Node) *html.Node {
	parentOfTop := topCandidate.Parent
	if parentOfTop == nil || dom.TagName(parentOfTop) == "BODY" {
		return topCandidate
	}

	lastScore := adjustedScore(s, topCandidate)
	for parent := parentOfTop; parent != nil && dom.TagName(parent) != "BODY"; parent = parent.Parent {
		if !s.hasScore(parent) {
			continue
		}
		if parentScore := adjustedScore(s, parent); parentScore > lastScore {
			topCandidate = parent
			lastScore = parentScore
		}
	}
	return topCandidate
}

// climbSingleChildAncestors promotes topCandidate to its parent while that
// parent is not <body> and has exactly one element child.
func climbSingleChildAncestors(topCandidate *html.Node) *html.Node {
	for topCandidate.Parent != nil && dom.TagName(topCandidate.Parent) != "BODY" {
		if len(dom.Children(topCandidate.Parent)) != 1 {
			break
		}
		topCandidate = topCandidate.Parent
	}
	return topCandidate
}

// assembleSiblings builds the final articleContent container by
// appending topCandidate and every sibling that passes the inclusion
// threshold, retagging non-exempt siblings to <div> before appending.
func assembleSiblings(s *state, topCandidate *html.Node) *html.Node {
	articleContent := dom.CreateElement("div")

	parent := topCandidate.Parent
	if parent == nil {
		dom.AppendChild(articleContent, topCandidate)
		return articleContent
	}

	topScore := 0.0
	if s.hasScore(topCandidate) {
		topScore = s.score(topCandidate).contentScore
	}
	threshold := maxFloat(10, topScore*0.2)
	topClassName := dom.ClassName(topCandidate)

	siblings := dom.Children(parent)
	for _, sibling := range siblings {
		if sibling.Parent == nil {
			continue
		}
		shouldAppend := sibling == topCandidate
		if !shouldAppend {
			bonus := 0.0
			if topClassName != "" && dom.ClassName(sibling) == topClassName {
				bonus = topScore * 0.2
			}
			siblingScore := 0.0
			if s.hasScore(sibling) {
				siblingScore = s.score(sibling).contentScore
			}
			if siblingScore+bonus >= threshold {
				shouldAppend = true
			} else if dom.TagName(sibling) == "P" {
				shouldAppend = qualifiesAsParagraphSibling(sibling)
			}
		}
		if !shouldAppend {
			continue
		}
		if sibling != topCandidate && !alterToDivExceptions[dom.TagName(sibling)] {
			dom.SetTagName(sibling, "DIV")
		}
		dom.AppendChild(articleContent, sibling)
	}
	return articleContent
}

var trailingSentenceRe = regexp.MustCompile(`\.( |$)`)

func qualifiesAsParagraphSibling(p *html.Node) bool {
	text := dom.InnerText(p)
	density := linkDensity(p)
	length := len(text)
	if length > 80 && density < 0.25 {
		return true
	}
	if length < 80 && length > 0 && density == 0 && trailingSentenceRe.MatchString(text) {
		return true
	}
	return false
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
