// Package dom is the DOM adapter consumed by every other readability
// component. It wraps golang.org/x/net/html's node tree directly rather
// than introducing a parallel tree type, since x/net/html already exposes
// the doubly-linked structure a DOM needs; what it doesn't provide is
// mutation helpers (append/remove/replace/retag) or attribute convenience,
// which is what this package adds.
package dom

import (
	"strings"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
)

// Document is the parsed input: the <html> root plus the two URIs used
// during relative-link resolution.
type Document struct {
	Root        *html.Node // the <html> element
	BaseURI     string
	DocumentURI string
}

// Parse parses htmlSource and records documentURI as both the base URI and
// the document URI (no <base> tag resolution is attempted; callers that
// need <base>-aware resolution should adjust Document.BaseURI afterwards).
func Parse(htmlSource, documentURI string) (*Document, error) {
	root, err := html.Parse(strings.NewReader(htmlSource))
	if err != nil {
		return nil, err
	}
	return &Document{Root: root, BaseURI: documentURI, DocumentURI: documentURI}, nil
}

// Html returns the <html> element, if present.
func (d *Document) Html() *html.Node {
	return findFirst(d.Root, func(n *html.Node) bool { return IsElement(n) && TagName(n) == "HTML" })
}

// Head returns the <head> element, if present.
func (d *Document) Head() *html.Node {
	return findFirst(d.Root, func(n *html.Node) bool { return IsElement(n) && TagName(n) == "HEAD" })
}

// Body returns the <body> element, if present.
func (d *Document) Body() *html.Node {
	return findFirst(d.Root, func(n *html.Node) bool { return IsElement(n) && TagName(n) == "BODY" })
}

// Title returns the trimmed text content of <title>, if present.
func (d *Document) Title() string {
	if t := findFirst(d.Root, func(n *html.Node) bool { return IsElement(n) && TagName(n) == "TITLE" }); t != nil {
		return strings.TrimSpace(TextContent(t))
	}
	return ""
}

func findFirst(n *html.Node, match func(*html.Node) bool) *html.Node {
	if n == nil {
		return nil
	}
	if match(n) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findFirst(c, match); found != nil {
			return found
		}
	}
	return nil
}

// IsElement reports whether n is an element node.
func IsElement(n *html.Node) bool { return n != nil && n.Type == html.ElementNode }

// IsText reports whether n is a text node.
func IsText(n *html.Node) bool { return n != nil && n.Type == html.TextNode }

// TagName returns the uppercased tag name, matching the DOM provider
// contract's "tag name uppercase" requirement. The underlying node keeps
// its tag lowercase internally (n.Data) so html.Render keeps working.
func TagName(n *html.Node) string {
	if n == nil || n.Type != html.ElementNode {
		return ""
	}
	return strings.ToUpper(n.Data)
}

// SetTagName retags an element in place, preserving its attributes and
// children.
func SetTagName(n *html.Node, tag string) {
	if n == nil {
		return
	}
	n.Data = strings.ToLower(tag)
	n.DataAtom = 0
}

// Attr returns the value of attribute name and whether it was present.
func Attr(n *html.Node, name string) (string, bool) {
	if n == nil {
		return "", false
	}
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, name) {
			return a.Val, true
		}
	}
	return "", false
}

// GetAttr is Attr without the presence flag; missing attributes return "".
func GetAttr(n *html.Node, name string) string {
	v, _ := Attr(n, name)
	return v
}

// HasAttr reports whether n carries the named attribute.
func HasAttr(n *html.Node, name string) bool {
	_, ok := Attr(n, name)
	return ok
}

// SetAttr sets (or replaces) an attribute's value.
func SetAttr(n *html.Node, name, value string) {
	if n == nil {
		return
	}
	for i, a := range n.Attr {
		if strings.EqualFold(a.Key, name) {
			n.Attr[i].Val = value
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: name, Val: value})
}

// RemoveAttr deletes an attribute if present.
func RemoveAttr(n *html.Node, name string) {
	if n == nil {
		return
	}
	for i, a := range n.Attr {
		if strings.EqualFold(a.Key, name) {
			n.Attr = append(n.Attr[:i], n.Attr[i+1:]...)
			return
		}
	}
}

// ID returns the id attribute.
func ID(n *html.Node) string { return GetAttr(n, "id") }

// SetID sets the id attribute.
func SetID(n *html.Node, v string) { SetAttr(n, "id", v) }

// ClassName returns the class attribute.
func ClassName(n *html.Node) string { return GetAttr(n, "class") }

// SetClassName sets the class attribute.
func SetClassName(n *html.Node, v string) { SetAttr(n, "class", v) }

// CreateElement builds a detached element node.
func CreateElement(tag string) *html.Node {
	return &html.Node{Type: html.ElementNode, Data: strings.ToLower(tag)}
}

// CreateTextNode builds a detached text node.
func CreateTextNode(text string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: text}
}

// Remove detaches n from its current parent, if any. It is a no-op on an
// already-detached node.
func Remove(n *html.Node) {
	if n == nil || n.Parent == nil {
		return
	}
	RemoveChild(n.Parent, n)
}

// RemoveChild detaches child from parent, fixing up sibling pointers.
// child must currently be a child of parent.
func RemoveChild(parent, child *html.Node) {
	if parent == nil || child == nil || child.Parent != parent {
		return
	}
	if child.PrevSibling != nil {
		child.PrevSibling.NextSibling = child.NextSibling
	} else {
		parent.FirstChild = child.NextSibling
	}
	if child.NextSibling != nil {
		child.NextSibling.PrevSibling = child.PrevSibling
	} else {
		parent.LastChild = child.PrevSibling
	}
	child.Parent = nil
	child.PrevSibling = nil
	child.NextSibling = nil
}

// AppendChild detaches child from any current parent and appends it as
// parent's last child.
func AppendChild(parent, child *html.Node) {
	if parent == nil || child == nil {
		return
	}
	Remove(child)
	child.Parent = parent
	child.PrevSibling = parent.LastChild
	child.NextSibling = nil
	if parent.LastChild != nil {
		parent.LastChild.NextSibling = child
	} else {
		parent.FirstChild = child
	}
	parent.LastChild = child
}

// InsertBefore detaches newChild from any current parent and inserts it
// immediately before ref, which must currently be a child of parent. A nil
// ref behaves like AppendChild.
func InsertBefore(parent, newChild, ref *html.Node) {
	if parent == nil || newChild == nil {
		return
	}
	if ref == nil {
		AppendChild(parent, newChild)
		return
	}
	Remove(newChild)
	newChild.Parent = parent
	newChild.NextSibling = ref
	newChild.PrevSibling = ref.PrevSibling
	if ref.PrevSibling != nil {
		ref.PrevSibling.NextSibling = newChild
	} else {
		parent.FirstChild = newChild
	}
	ref.PrevSibling = newChild
}

// ReplaceChild replaces oldChild (a current child of parent) with newChild
// in place, preserving position, then detaches oldChild.
func ReplaceChild(parent, newChild, oldChild *html.Node) {
	if parent == nil || oldChild == nil || oldChild.Parent != parent {
		return
	}
	InsertBefore(parent, newChild, oldChild)
	Remove(oldChild)
}

// Children returns a snapshot slice of n's element children, in document
// order. Snapshotting (rather than handing back a live walk) is required
// because several passes mutate siblings while iterating.
func Children(n *html.Node) []*html.Node {
	if n == nil {
		return nil
	}
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			out = append(out, c)
		}
	}
	return out
}

// ChildNodes returns a snapshot slice of all of n's child nodes (elements,
// text, comments), in document order.
func ChildNodes(n *html.Node) []*html.Node {
	if n == nil {
		return nil
	}
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		out = append(out, c)
	}
	return out
}

// FirstElementChild returns n's first element child, skipping text/comment
// nodes.
func FirstElementChild(n *html.Node) *html.Node {
	if n == nil {
		return nil
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			return c
		}
	}
	return nil
}

// NextElementSibling returns n's next sibling that is an element, skipping
// text/comment nodes.
func NextElementSibling(n *html.Node) *html.Node {
	if n == nil {
		return nil
	}
	for s := n.NextSibling; s != nil; s = s.NextSibling {
		if s.Type == html.ElementNode {
			return s
		}
	}
	return nil
}

// PrevElementSibling returns n's previous sibling that is an element.
func PrevElementSibling(n *html.Node) *html.Node {
	if n == nil {
		return nil
	}
	for s := n.PrevSibling; s != nil; s = s.PrevSibling {
		if s.Type == html.ElementNode {
			return s
		}
	}
	return nil
}

// TextContent concatenates the text of n and all its descendants, with no
// normalization (callers needing normalized/innerText semantics should use
// package textutil).
func TextContent(n *html.Node) string {
	if n == nil {
		return ""
	}
	var b strings.Builder
	collectText(n, &b)
	return b.String()
}

func collectText(n *html.Node, b *strings.Builder) {
	if n.Type == html.TextNode {
		b.WriteString(n.Data)
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, b)
	}
}

// GetElementsByTagName returns every descendant element matching tag
// (case-insensitive), in document order. tag "*" matches every element.
func GetElementsByTagName(root *html.Node, tag string) []*html.Node {
	if root == nil {
		return nil
	}
	want := strings.ToUpper(tag)
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode && (want == "*" || TagName(c) == want) {
				out = append(out, c)
			}
			walk(c)
		}
	}
	walk(root)
	return out
}

// HasAncestorTag reports whether n has an ancestor with the given tag
// within maxDepth levels (0 = unlimited).
func HasAncestorTag(n *html.Node, tag string, maxDepth int) bool {
	tag = strings.ToUpper(tag)
	depth := 0
	for p := n.Parent; p != nil; p = p.Parent {
		if maxDepth > 0 && depth >= maxDepth {
			return false
		}
		if IsElement(p) && TagName(p) == tag {
			return true
		}
		depth++
	}
	return false
}

// Ancestors returns n's element ancestors, nearest first, up to maxDepth
// levels (0 = unlimited).
func Ancestors(n *html.Node, maxDepth int) []*html.Node {
	var out []*html.Node
	depth := 0
	for p := n.Parent; p != nil; p = p.Parent {
		if maxDepth > 0 && depth >= maxDepth {
			break
		}
		if IsElement(p) {
			out = append(out, p)
		}
		depth++
	}
	return out
}

// Clone deep-clones n (and, if deep, its descendants), detached from any
// tree.
func Clone(n *html.Node, deep bool) *html.Node {
	if n == nil {
		return nil
	}
	clone := &html.Node{
		Type:      n.Type,
		DataAtom:  n.DataAtom,
		Data:      n.Data,
		Namespace: n.Namespace,
		Attr:      append([]html.Attribute(nil), n.Attr...),
	}
	if deep {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			AppendChild(clone, Clone(c, true))
		}
	}
	return clone
}

// QuerySelectorAll returns every descendant of root matching the CSS
// selector sel, in document order.
func QuerySelectorAll(root *html.Node, sel string) []*html.Node {
	s, err := cascadia.Parse(sel)
	if err != nil {
		return nil
	}
	return cascadia.QueryAll(root, s)
}

// QuerySelector returns the first descendant of root matching sel, or nil.
func QuerySelector(root *html.Node, sel string) *html.Node {
	s, err := cascadia.Parse(sel)
	if err != nil {
		return nil
	}
	return cascadia.Query(root, s)
}
