package readability

import (
	"regexp"
	"strings"

	"github.com/Furafrafrfr/readability/dom"
	"github.com/Furafrafrfr/readability/internal/textutil"
	"golang.org/x/net/html"
)

// prepareArticle applies the full article-preparation sequence to
// articleContent, in order: style stripping, data-table marking, lazy
// image fixing, conditional cleaning, absolute removal of chrome tags,
// share-widget pruning, header cleaning, h1-to-h2 demotion, empty
// paragraph removal, and single-cell table flattening.
func prepareArticle(s *state, articleContent *html.Node) {
	cleanStyles(articleContent)
	markDataTables(articleContent)
	fixLazyImages(articleContent)

	cleanConditionally(s, articleContent, "form")
	cleanConditionally(s, articleContent, "fieldset")

	clean(s, articleContent, "object")
	clean(s, articleContent, "embed")
	clean(s, articleContent, "footer")
	clean(s, articleContent, "link")
	clean(s, articleContent, "aside")

	pruneShareWidgets(articleContent)

	clean(s, articleContent, "iframe")
	clean(s, articleContent, "input")
	clean(s, articleContent, "textarea")
	clean(s, articleContent, "select")
	clean(s, articleContent, "button")

	cleanHeaders(s, articleContent)

	cleanConditionally(s, articleContent, "table")
	cleanConditionally(s, articleContent, "ul")
	cleanConditionally(s, articleContent, "div")
	cleanConditionally(s, articleContent, "ol")
	cleanConditionally(s, articleContent, "dl")

	demoteH1s(articleContent)
	removeEmptyParagraphs(articleContent)
	removeBrsBeforeParagraphs(articleContent)
	flattenSingleCellTables(articleContent)
}

// cleanStyles strips presentational attributes recursively, skipping
// inside <svg>, and additionally strips width/height on the deprecated
// sizing-attribute tags.
func cleanStyles(n *html.Node) {
	if dom.TagName(n) == "SVG" {
		return
	}
	if dom.IsElement(n) {
		for _, attr := range presentationalAttrs {
			dom.RemoveAttr(n, attr)
		}
		if deprecatedSizeAttrTags[dom.TagName(n)] {
			dom.RemoveAttr(n, "width")
			dom.RemoveAttr(n, "height")
		}
	}
	for _, c := range dom.Children(n) {
		cleanStyles(c)
	}
}

var dataTableRoleRe = regexp.MustCompile(`(?i)^(grid|list|treegrid)$`)

// markDataTables tags every <table> that looks like real tabular data
// (as opposed to a layout table) with data-readability-table="true", so
// cleanConditionally can exempt it.
func markDataTables(root *html.Node) {
	for _, table := range dom.GetElementsByTagName(root, "table") {
		if role, ok := dom.Attr(table, "role"); ok && dataTableRoleRe.MatchString(strings.TrimSpace(role)) {
			markDataTable(table)
			continue
		}
		if dom.HasAttr(table, "summary") {
			markDataTable(table)
			continue
		}
		if len(dom.GetElementsByTagName(table, "caption")) > 0 ||
			len(dom.GetElementsByTagName(table, "thead")) > 0 ||
			len(dom.GetElementsByTagName(table, "tfoot")) > 0 ||
			len(dom.GetElementsByTagName(table, "colgroup")) > 0 ||
			len(dom.GetElementsByTagName(table, "th")) > 0 {
			markDataTable(table)
			continue
		}

		rows := dom.GetElementsByTagName(table, "tr")
		cells := dom.GetElementsByTagName(table, "td")
		if len(cells) >= 10 && len(rows) >= 4 {
			markDataTable(table)
			continue
		}
		for _, cell := range cells {
			if spanTooLarge(cell, "colspan") || spanTooLarge(cell, "rowspan") {
				markDataTable(table)
				break
			}
		}
	}
}

func markDataTable(table *html.Node) { dom.SetAttr(table, "data-readability-table", "true") }

func isDataTable(table *html.Node) bool { return dom.HasAttr(table, "data-readability-table") }

func spanTooLarge(n *html.Node, attr string) bool {
	v, ok := dom.Attr(n, attr)
	if !ok {
		return false
	}
	n2 := 0
	for _, r := range v {
		if r < '0' || r > '9' {
			return false
		}
		n2 = n2*10 + int(r-'0')
	}
	return n2 > 1
}

// fixLazyImages copies a usable source from data-* attributes into
// src/srcset when an <img> or <picture>'s own attributes are empty.
func fixLazyImages(root *html.Node) {
	tags := append(dom.GetElementsByTagName(root, "img"), dom.GetElementsByTagName(root, "picture")...)
	for _, img := range tags {
		if strings.TrimSpace(dom.GetAttr(img, "src")) != "" || strings.TrimSpace(dom.GetAttr(img, "srcset")) != "" {
			continue
		}
		var bestSrc, bestSrcset string
		for _, a := range img.Attr {
			val := strings.TrimSpace(a.Val)
			if val == "" {
				continue
			}
			switch a.Key {
			case "data-src", "data-lazy-src", "data-original":
				bestSrc = val
			case "data-srcset":
				bestSrcset = val
			default:
				if strings.HasPrefix(a.Key, "data-") {
					if base64DataURLImgRe.MatchString(val) || imgExtensionURLRe.MatchString(val) {
						if bestSrc == "" {
							bestSrc = val
						}
					}
				}
			}
		}
		if bestSrc != "" {
			dom.SetAttr(img, "src", bestSrc)
		}
		if bestSrcset != "" {
			dom.SetAttr(img, "srcset", bestSrcset)
		}
	}
}

// clean removes every descendant matching tag, except that <object>,
// <embed>, and <iframe> carrying an allowed-video reference are kept.
func clean(s *state, root *html.Node, tag string) {
	for _, n := range dom.GetElementsByTagName(root, tag) {
		if (tag == "object" || tag == "embed" || tag == "iframe") && matchesAllowedVideo(s, n) {
			continue
		}
		dom.Remove(n)
	}
}

func matchesAllowedVideo(s *state, n *html.Node) bool {
	re := s.opts.videoRegex()
	for _, a := range n.Attr {
		if re.MatchString(a.Val) {
			return true
		}
	}
	inner, err := dom.InnerHTML(n)
	if err == nil && re.MatchString(inner) {
		return true
	}
	return false
}

// pruneShareWidgets removes descendants of each top-level child whose
// class/id suggests a share widget and whose text is short enough to be
// chrome rather than content.
func pruneShareWidgets(articleContent *html.Node) {
	for _, topChild := range dom.Children(articleContent) {
		for _, n := range dom.GetElementsByTagName(topChild, "*") {
			if n.Parent == nil {
				continue
			}
			matchString := dom.ClassName(n) + " " + dom.ID(n)
			if shareElementsRe.MatchString(matchString) && len(dom.TextContent(n)) < 500 {
				dom.Remove(n)
			}
		}
	}
}

// cleanHeaders removes <h1>/<h2> elements whose class weight is negative.
func cleanHeaders(s *state, root *html.Node) {
	headers := append(dom.GetElementsByTagName(root, "h1"), dom.GetElementsByTagName(root, "h2")...)
	for _, h := range headers {
		if classIDWeight(s, h) < 0 {
			dom.Remove(h)
		}
	}
}

func demoteH1s(root *html.Node) {
	for _, h := range dom.GetElementsByTagName(root, "h1") {
		dom.SetTagName(h, "H2")
	}
}

func removeEmptyParagraphs(root *html.Node) {
	for _, p := range dom.GetElementsByTagName(root, "p") {
		if len(dom.GetElementsByTagName(p, "img")) > 0 ||
			len(dom.GetElementsByTagName(p, "embed")) > 0 ||
			len(dom.GetElementsByTagName(p, "object")) > 0 ||
			len(dom.GetElementsByTagName(p, "iframe")) > 0 {
			continue
		}
		if !textutil.IsWhitespace(dom.TextContent(p)) {
			continue
		}
		dom.Remove(p)
	}
}

func removeBrsBeforeParagraphs(root *html.Node) {
	for _, br := range dom.GetElementsByTagName(root, "br") {
		if br.Parent == nil {
			continue
		}
		next := nextSignificantNode(br.NextSibling)
		if next != nil && dom.IsElement(next) && dom.TagName(next) == "P" {
			dom.Remove(br)
		}
	}
}

// flattenSingleCellTables replaces any <table> holding exactly one
// <tbody> with one <tr> with one <td> with that cell's content, retagged
// to <p> when every child is phrasing content, <div> otherwise.
func flattenSingleCellTables(root *html.Node) {
	for _, table := range dom.GetElementsByTagName(root, "table") {
		if table.Parent == nil {
			continue
		}
		tbodies := dom.Children(table)
		tbodies = filterByTag(tbodies, "TBODY")
		var rowsHost *html.Node
		if len(tbodies) == 1 {
			rowsHost = tbodies[0]
		} else if len(filterByTag(dom.Children(table), "TR")) > 0 {
			rowsHost = table
		} else {
			continue
		}
		rows := filterByTag(dom.Children(rowsHost), "TR")
		if len(rows) != 1 {
			continue
		}
		cells := filterByTag(dom.Children(rows[0]), "TD")
		if len(cells) != 1 {
			continue
		}
		cell := cells[0]

		allPhrasing := true
		for c := cell.FirstChild; c != nil; c = c.NextSibling {
			if !isPhrasingContent(c) {
				allPhrasing = false
				break
			}
		}
		if allPhrasing {
			dom.SetTagName(cell, "P")
		} else {
			dom.SetTagName(cell, "DIV")
		}
		dom.Remove(cell)
		dom.ReplaceChild(table.Parent, cell, table)
	}
}

// cleanConditionally removes descendants matching tag that look like
// chrome rather than article content: either their combined class/id
// weight plus readability score is negative, or a composite density
// heuristic fails. Data tables and anything inside <code> are protected.
func cleanConditionally(s *state, root *html.Node, tag string) {
	if !s.flagActive(flagCleanConditionally) {
		return
	}
	for _, n := range dom.GetElementsByTagName(root, tag) {
		if n.Parent == nil {
			continue
		}
		if (tag == "table" || tag == "ul" || tag == "div" || tag == "ol" || tag == "dl") && isDataTable(n) {
			continue
		}
		if dom.HasAncestorTag(n, "code", 0) {
			continue
		}
		if shouldRemoveConditionally(s, n, tag) {
			dom.Remove(n)
		}
	}
}

func shouldRemoveConditionally(s *state, n *html.Node, tag string) bool {
	weight := classIDWeight(s, n)
	score := 0.0
	if s.hasScore(n) {
		score = s.score(n).contentScore
	}
	if weight+score < 0 {
		return true
	}

	text := dom.InnerText(n)
	if textutil.CountCommas(text) >= 10 {
		return false
	}

	p := len(dom.GetElementsByTagName(n, "p"))
	img := len(dom.GetElementsByTagName(n, "img"))
	li := len(dom.GetElementsByTagName(n, "li"))
	input := len(dom.GetElementsByTagName(n, "input"))
	headingDensity := headingTextDensity(n)
	embeds := countNonAllowedEmbeds(s, n)

	density := linkDensity(n)
	contentLength := len(text)
	insideFigureOrList := dom.HasAncestorTag(n, "figure", 0) || dom.HasAncestorTag(n, "ul", 0) || dom.HasAncestorTag(n, "ol", 0)

	if img > p && !dom.HasAncestorTag(n, "figure", 0) && !insideFigureOrList {
		return true
	}
	if li > p && tag != "ul" && tag != "ol" {
		return true
	}
	if input > p/3 {
		return true
	}
	if contentLength < 25 && (img == 0 || img > 2) && !dom.HasAncestorTag(n, "figure", 0) {
		return true
	}
	if weight < 25 && density > 0.2+s.opts.LinkDensityModifier {
		return true
	}
	if weight >= 25 && density > 0.5+s.opts.LinkDensityModifier {
		return true
	}
	if (embeds == 1 && contentLength < 75) || embeds > 1 {
		return true
	}
	if headingDensity > 0.9 {
		return true
	}
	return false
}

// headingTextDensity is the fraction of n's inner text that duplicates
// the text of heading descendants, used to catch tables-of-contents-style
// chrome rendered as list/table markup.
func headingTextDensity(n *html.Node) float64 {
	total := len(dom.TextContent(n))
	if total == 0 {
		return 0
	}
	headingLen := 0
	for _, tag := range []string{"h1", "h2", "h3", "h4", "h5", "h6"} {
		for _, h := range dom.GetElementsByTagName(n, tag) {
			headingLen += len(dom.TextContent(h))
		}
	}
	return float64(headingLen) / float64(total)
}

func countNonAllowedEmbeds(s *state, n *html.Node) int {
	count := 0
	for _, tag := range []string{"object", "embed", "iframe"} {
		for _, e := range dom.GetElementsByTagName(n, tag) {
			if !matchesAllowedVideo(s, e) {
				count++
			}
		}
	}
	return count
}

func filterByTag(nodes []*html.Node, tag string) []*html.Node {
	var out []*html.Node
	for _, n := range nodes {
		if dom.TagName(n) == tag {
			out = append(out, n)
		}
	}
	return out
}
