package readability

import (
	"net/url"
	"strings"

	"github.com/Furafrafrfr/readability/dom"
	"github.com/Furafrafrfr/readability/internal/textutil"
	"golang.org/x/net/html"
)

// postprocessArticle resolves relative URIs to absolute, collapses
// redundant nested wrappers, and (unless disabled) strips non-preserved
// classes.
func postprocessArticle(s *state, doc *dom.Document, articleContent *html.Node) {
	resolveURIs(s, doc, articleContent)
	simplifyNestedWrappers(articleContent)
	if !s.opts.KeepClasses {
		cleanClasses(articleContent, s.opts.preservedClasses())
	}
}

func resolveURIs(s *state, doc *dom.Document, root *html.Node) {
	for _, a := range dom.GetElementsByTagName(root, "a") {
		href, ok := dom.Attr(a, "href")
		if !ok {
			continue
		}
		if strings.HasPrefix(href, "javascript:") {
			unwrapJavascriptLink(a)
			continue
		}
		if doc.BaseURI == doc.DocumentURI && strings.HasPrefix(href, "#") {
			continue
		}
		resolved, err := resolveURI(doc.BaseURI, href)
		if err != nil {
			s.recoverable(ErrCodeURIResolutionFailed, "could not resolve href", err)
			continue
		}
		dom.SetAttr(a, "href", resolved)
	}

	for _, tag := range []string{"img", "picture", "figure", "video", "audio", "source"} {
		for _, n := range dom.GetElementsByTagName(root, tag) {
			resolveAttrURI(s, doc, n, "src")
			resolveAttrURI(s, doc, n, "poster")
			if srcset, ok := dom.Attr(n, "srcset"); ok {
				dom.SetAttr(n, "srcset", resolveSrcset(s, doc, srcset))
			}
		}
	}
}

func resolveAttrURI(s *state, doc *dom.Document, n *html.Node, attr string) {
	v, ok := dom.Attr(n, attr)
	if !ok || v == "" {
		return
	}
	resolved, err := resolveURI(doc.BaseURI, v)
	if err != nil {
		s.recoverable(ErrCodeURIResolutionFailed, "could not resolve "+attr, err)
		return
	}
	dom.SetAttr(n, attr, resolved)
}

func resolveURI(base, ref string) (string, error) {
	baseURL, err := url.Parse(base)
	if err != nil {
		return ref, err
	}
	refURL, err := url.Parse(ref)
	if err != nil {
		return ref, err
	}
	return baseURL.ResolveReference(refURL).String(), nil
}

func resolveSrcset(s *state, doc *dom.Document, srcset string) string {
	return srcsetPartRe.ReplaceAllStringFunc(srcset, func(part string) string {
		m := srcsetPartRe.FindStringSubmatch(part)
		if m == nil {
			return part
		}
		rawURL, descriptor, trailer := m[1], m[2], m[3]
		resolved, err := resolveURI(doc.BaseURI, rawURL)
		if err != nil {
			s.recoverable(ErrCodeURIResolutionFailed, "could not resolve srcset entry", err)
			resolved = rawURL
		}
		return resolved + descriptor + trailer
	})
}

// unwrapJavascriptLink replaces an <a href="javascript:..."> with its own
// text when it has a single text child, or strips the <a> tag around its
// children (wrapped in a <span>) otherwise.
func unwrapJavascriptLink(a *html.Node) {
	if a.Parent == nil {
		return
	}
	if a.FirstChild != nil && a.FirstChild == a.LastChild && dom.IsText(a.FirstChild) {
		text := dom.CreateTextNode(a.FirstChild.Data)
		dom.ReplaceChild(a.Parent, text, a)
		return
	}
	span := dom.CreateElement("span")
	for _, c := range dom.ChildNodes(a) {
		dom.AppendChild(span, c)
	}
	dom.ReplaceChild(a.Parent, span, a)
}

// simplifyNestedWrappers removes empty <div>/<section> wrappers and
// collapses a wrapper holding a single <div>/<section> child with no
// sibling text into that child, for every such element not carrying a
// readability-generated id.
func simplifyNestedWrappers(root *html.Node) {
	for _, n := range append(dom.GetElementsByTagName(root, "div"), dom.GetElementsByTagName(root, "section")...) {
		if n.Parent == nil {
			continue
		}
		if strings.HasPrefix(dom.ID(n), "readability") {
			continue
		}

		if isEmptyWrapper(n) {
			dom.Remove(n)
			continue
		}

		children := dom.Children(n)
		if len(children) == 1 {
			tag := dom.TagName(children[0])
			if (tag == "DIV" || tag == "SECTION") && !hasSiblingTextContent(n, children[0]) {
				child := children[0]
				for _, a := range n.Attr {
					if !dom.HasAttr(child, a.Key) {
						dom.SetAttr(child, a.Key, a.Val)
					}
				}
				dom.Remove(child)
				dom.ReplaceChild(n.Parent, child, n)
			}
		}
	}
}

func isEmptyWrapper(n *html.Node) bool {
	if !textutil.IsWhitespace(dom.TextContent(n)) {
		return false
	}
	for _, c := range dom.Children(n) {
		tag := dom.TagName(c)
		if tag != "BR" && tag != "HR" {
			return false
		}
	}
	return true
}

func hasSiblingTextContent(parent, exceptChild *html.Node) bool {
	for c := parent.FirstChild; c != nil; c = c.NextSibling {
		if c == exceptChild {
			continue
		}
		if dom.IsText(c) && !textutil.IsWhitespace(c.Data) {
			return true
		}
	}
	return false
}

// cleanClasses recursively strips every class token not in preserved,
// removing the class attribute entirely when nothing survives.
func cleanClasses(n *html.Node, preserved map[string]struct{}) {
	if dom.IsElement(n) {
		if class := dom.ClassName(n); class != "" {
			var kept []string
			for _, tok := range strings.Fields(class) {
				if _, ok := preserved[tok]; ok {
					kept = append(kept, tok)
				}
			}
			if len(kept) > 0 {
				dom.SetClassName(n, strings.Join(kept, " "))
			} else {
				dom.RemoveAttr(n, "class")
			}
		}
	}
	for _, c := range dom.Children(n) {
		cleanClasses(c, preserved)
	}
}
