package readability

import (
	"strings"

	"github.com/Furafrafrfr/readability/dom"
	"github.com/Furafrafrfr/readability/internal/textutil"
	"golang.org/x/net/html"
)

// unwrapNoscriptImages must run before scripts are removed: the <noscript>
// fallback markup is the only surviving reference to the higher-quality
// image once lazy-loading placeholders are stripped.
func unwrapNoscriptImages(doc *dom.Document) {
	for _, ns := range dom.GetElementsByTagName(doc.Root, "noscript") {
		prev := dom.PrevElementSibling(ns)
		if prev == nil || dom.TagName(prev) != "IMG" || hasMeaningfulImageSource(prev) {
			continue
		}
		parent := ns.Parent
		if parent == nil {
			continue
		}

		tmp := dom.CreateElement("div")
		if err := dom.SetInnerHTML(tmp, dom.TextContent(ns)); err != nil {
			continue
		}
		imgs := dom.GetElementsByTagName(tmp, "img")
		if len(imgs) != 1 || !hasMeaningfulImageSource(imgs[0]) {
			continue
		}

		newImg := imgs[0]
		dom.Remove(newImg)
		dom.ReplaceChild(parent, newImg, prev)
		dom.Remove(ns)
	}
}

// hasMeaningfulImageSource reports whether img already carries a usable
// src/srcset or a data-* attribute that looks like one, i.e. it is not a
// lazy-loading placeholder.
func hasMeaningfulImageSource(img *html.Node) bool {
	if strings.TrimSpace(dom.GetAttr(img, "src")) != "" {
		return true
	}
	if strings.TrimSpace(dom.GetAttr(img, "srcset")) != "" {
		return true
	}
	for _, a := range img.Attr {
		if strings.HasPrefix(a.Key, "data-") && strings.TrimSpace(a.Val) != "" {
			return true
		}
	}
	return false
}

// removeScriptsAndNoscript strips every <script> and <noscript> element.
func removeScriptsAndNoscript(doc *dom.Document) {
	for _, n := range dom.GetElementsByTagName(doc.Root, "script") {
		dom.Remove(n)
	}
	for _, n := range dom.GetElementsByTagName(doc.Root, "noscript") {
		dom.Remove(n)
	}
}

// removeStyles strips every <style> element, document-wide.
func removeStyles(doc *dom.Document) {
	for _, n := range dom.GetElementsByTagName(doc.Root, "style") {
		dom.Remove(n)
	}
}

// retagFontsToSpans retags every <font> to <span>, preserving attributes
// and children.
func retagFontsToSpans(doc *dom.Document) {
	for _, n := range dom.GetElementsByTagName(doc.Root, "font") {
		dom.SetTagName(n, "SPAN")
	}
}

// replaceBrRuns collapses <br> chains into <p> elements that absorb the
// phrasing content following them.
func replaceBrRuns(doc *dom.Document) {
	for _, br := range dom.GetElementsByTagName(doc.Root, "br") {
		if br.Parent == nil {
			continue
		}

		next := nextSignificantNode(br.NextSibling)
		replaced := false
		for next != nil && dom.IsElement(next) && dom.TagName(next) == "BR" {
			replaced = true
			brSibling := next.NextSibling
			dom.Remove(next)
			next = nextSignificantNode(brSibling)
		}
		if !replaced {
			continue
		}

		p := dom.CreateElement("p")
		parent := br.Parent
		dom.ReplaceChild(parent, p, br)

		next = p.NextSibling
		for next != nil {
			if dom.IsElement(next) && dom.TagName(next) == "BR" {
				if nextElem := nextSignificantNode(next.NextSibling); nextElem != nil && dom.IsElement(nextElem) && dom.TagName(nextElem) == "BR" {
					break
				}
			}
			if !isPhrasingContent(next) {
				break
			}
			sibling := next.NextSibling
			dom.AppendChild(p, next)
			next = sibling
		}

		for p.LastChild != nil && isWhitespaceNode(p.LastChild) {
			dom.RemoveChild(p, p.LastChild)
		}

		if p.Parent != nil && dom.IsElement(p.Parent) && dom.TagName(p.Parent) == "P" {
			dom.SetTagName(p.Parent, "DIV")
		}
	}
}

// nextSignificantNode returns the first node at or after n that is either an
// element or a text node with non-whitespace content, skipping whitespace-
// only text nodes in between.
func nextSignificantNode(n *html.Node) *html.Node {
	for n != nil && !dom.IsElement(n) && isWhitespaceNode(n) {
		n = n.NextSibling
	}
	return n
}

func isWhitespaceNode(n *html.Node) bool {
	return n.Type == html.TextNode && textutil.IsWhitespace(n.Data)
}

// isPhrasingContent reports whether n is inline-flow content: a text node,
// an element in phrasingElems, or an <a>/<del>/<ins> whose children are all
// phrasing content.
func isPhrasingContent(n *html.Node) bool {
	if n.Type == html.TextNode {
		return true
	}
	if !dom.IsElement(n) {
		return false
	}
	tag := dom.TagName(n)
	if phrasingElems[tag] {
		return true
	}
	if tag == "A" || tag == "DEL" || tag == "INS" {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if !isPhrasingContent(c) {
				return false
			}
		}
		return true
	}
	return false
}

// preprocessDocument removes scripts/styles, collapses br runs into
// paragraphs, and retags fonts to spans, in that order. Noscript-image
// unwrapping runs separately, earlier, before metadata resolution.
func preprocessDocument(doc *dom.Document) {
	removeScriptsAndNoscript(doc)
	removeStyles(doc)
	replaceBrRuns(doc)
	retagFontsToSpans(doc)
}
