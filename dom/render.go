package dom

import (
	"strings"

	"golang.org/x/net/html"
)

// OuterHTML serializes n (and its descendants) back to an HTML string.
func OuterHTML(n *html.Node) (string, error) {
	var b strings.Builder
	if err := html.Render(&b, n); err != nil {
		return "", err
	}
	return b.String(), nil
}

// InnerHTML serializes n's children (not n itself).
func InnerHTML(n *html.Node) (string, error) {
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&b, c); err != nil {
			return "", err
		}
	}
	return b.String(), nil
}

// SetInnerHTML discards n's current children and replaces them with the
// parsed result of htmlFragment, parsed in the context of n's tag (so a
// fragment like "<tr><td>x</td></tr>" parses correctly inside a <table>).
func SetInnerHTML(n *html.Node, htmlFragment string) error {
	context := &html.Node{Type: html.ElementNode, Data: n.Data, DataAtom: n.DataAtom}
	nodes, err := html.ParseFragment(strings.NewReader(htmlFragment), context)
	if err != nil {
		return err
	}
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		RemoveChild(n, c)
		c = next
	}
	for _, child := range nodes {
		AppendChild(n, child)
	}
	return nil
}
