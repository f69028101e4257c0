package dom

import (
	"strings"
	"testing"

	"golang.org/x/net/html"
)

func parseFragment(t *testing.T, htmlSource string) *Document {
	t.Helper()
	doc, err := Parse(htmlSource, "http://example.test/")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	return doc
}

func TestParseAndAccessors(t *testing.T) {
	doc := parseFragment(t, `<html><head><title> My Title </title></head><body><p>hi</p></body></html>`)

	if doc.Html() == nil {
		t.Fatal("Html() returned nil")
	}
	if doc.Head() == nil {
		t.Fatal("Head() returned nil")
	}
	if doc.Body() == nil {
		t.Fatal("Body() returned nil")
	}
	if got := doc.Title(); got != "My Title" {
		t.Errorf("Title() = %q, want %q", got, "My Title")
	}
}

func TestTagNameIsUppercase(t *testing.T) {
	doc := parseFragment(t, `<html><body><div>x</div></body></html>`)
	div := QuerySelector(doc.Root, "div")
	if div == nil {
		t.Fatal("expected to find div")
	}
	if got := TagName(div); got != "DIV" {
		t.Errorf("TagName() = %q, want %q", got, "DIV")
	}
}

func TestAttrHelpers(t *testing.T) {
	doc := parseFragment(t, `<html><body><a href="/x" class="foo">link</a></body></html>`)
	a := QuerySelector(doc.Root, "a")

	if v, ok := Attr(a, "href"); !ok || v != "/x" {
		t.Errorf("Attr(href) = %q, %v; want %q, true", v, ok, "/x")
	}
	if !HasAttr(a, "class") {
		t.Error("expected class attribute to be present")
	}
	SetAttr(a, "class", "bar")
	if got := ClassName(a); got != "bar" {
		t.Errorf("ClassName() = %q, want %q", got, "bar")
	}
	RemoveAttr(a, "class")
	if HasAttr(a, "class") {
		t.Error("expected class attribute to be removed")
	}
	if got := GetAttr(a, "missing"); got != "" {
		t.Errorf("GetAttr(missing) = %q, want empty", got)
	}
}

func TestSetTagName(t *testing.T) {
	doc := parseFragment(t, `<html><body><div id="x">content</div></body></html>`)
	div := QuerySelector(doc.Root, "div")
	SetTagName(div, "SECTION")
	if got := TagName(div); got != "SECTION" {
		t.Errorf("TagName() after retag = %q, want %q", got, "SECTION")
	}
	if got := ID(div); got != "x" {
		t.Errorf("attributes lost after retag, ID() = %q, want %q", got, "x")
	}
}

func TestAppendRemoveInsertChild(t *testing.T) {
	parent := CreateElement("div")
	a := CreateElement("span")
	b := CreateElement("span")
	AppendChild(parent, a)
	AppendChild(parent, b)

	children := Children(parent)
	if len(children) != 2 || children[0] != a || children[1] != b {
		t.Fatalf("unexpected children after append: %v", children)
	}

	c := CreateElement("span")
	InsertBefore(parent, c, b)
	children = Children(parent)
	if len(children) != 3 || children[1] != c {
		t.Fatalf("InsertBefore did not place node correctly: %v", children)
	}

	RemoveChild(parent, c)
	children = Children(parent)
	if len(children) != 2 {
		t.Fatalf("RemoveChild left %d children, want 2", len(children))
	}

	Remove(a)
	children = Children(parent)
	if len(children) != 1 || children[0] != b {
		t.Fatalf("Remove did not detach node: %v", children)
	}
}

func TestReplaceChild(t *testing.T) {
	parent := CreateElement("div")
	old := CreateElement("span")
	AppendChild(parent, old)
	repl := CreateElement("p")

	ReplaceChild(parent, repl, old)
	children := Children(parent)
	if len(children) != 1 || children[0] != repl {
		t.Fatalf("ReplaceChild did not replace node: %v", children)
	}
	if old.Parent != nil {
		t.Error("old child should be detached after replace")
	}
}

func TestTextContentAndInnerText(t *testing.T) {
	doc := parseFragment(t, `<html><body><p>  Hello   <b>World</b>  </p></body></html>`)
	p := QuerySelector(doc.Root, "p")

	if got := TextContent(p); strings.TrimSpace(got) == "" {
		t.Error("TextContent returned empty string")
	}
	if got := InnerText(p); got != "Hello World" {
		t.Errorf("InnerText() = %q, want %q", got, "Hello World")
	}
}

func TestGetElementsByTagName(t *testing.T) {
	doc := parseFragment(t, `<html><body><p>a</p><div><p>b</p></div></body></html>`)
	ps := GetElementsByTagName(doc.Root, "p")
	if len(ps) != 2 {
		t.Fatalf("GetElementsByTagName(p) = %d elements, want 2", len(ps))
	}

	all := GetElementsByTagName(doc.Root, "*")
	if len(all) == 0 {
		t.Error("GetElementsByTagName(*) returned no elements")
	}
}

func TestHasAncestorTagAndAncestors(t *testing.T) {
	doc := parseFragment(t, `<html><body><article><div><p>text</p></div></article></body></html>`)
	p := QuerySelector(doc.Root, "p")

	if !HasAncestorTag(p, "article", 0) {
		t.Error("expected article ancestor to be found")
	}
	if HasAncestorTag(p, "article", 1) {
		t.Error("expected article ancestor not to be found within 1 level")
	}
	if HasAncestorTag(p, "nav", 0) {
		t.Error("did not expect a nav ancestor")
	}

	ancestors := Ancestors(p, 0)
	if len(ancestors) == 0 {
		t.Fatal("expected at least one ancestor")
	}
	if TagName(ancestors[0]) != "DIV" {
		t.Errorf("nearest ancestor = %q, want %q", TagName(ancestors[0]), "DIV")
	}
}

func TestFirstElementChildAndSiblings(t *testing.T) {
	doc := parseFragment(t, `<html><body><div>text<p id="a">a</p><p id="b">b</p></div></body></html>`)
	div := QuerySelector(doc.Root, "div")

	first := FirstElementChild(div)
	if first == nil || ID(first) != "a" {
		t.Fatalf("FirstElementChild() = %v, want element with id=a", first)
	}

	next := NextElementSibling(first)
	if next == nil || ID(next) != "b" {
		t.Fatalf("NextElementSibling() = %v, want element with id=b", next)
	}

	prev := PrevElementSibling(next)
	if prev != first {
		t.Error("PrevElementSibling() did not return the original first element")
	}
}

func TestClone(t *testing.T) {
	doc := parseFragment(t, `<html><body><div id="x"><p>hi</p></div></body></html>`)
	div := QuerySelector(doc.Root, "div")

	shallow := Clone(div, false)
	if shallow.FirstChild != nil {
		t.Error("shallow clone should have no children")
	}
	if ID(shallow) != "x" {
		t.Error("shallow clone should preserve attributes")
	}

	deep := Clone(div, true)
	if deep.FirstChild == nil {
		t.Error("deep clone should preserve children")
	}
	if deep == div {
		t.Error("clone should be a distinct node from the original")
	}
}

func TestOuterAndInnerHTML(t *testing.T) {
	doc := parseFragment(t, `<html><body><div id="x"><p>hi</p></div></body></html>`)
	div := QuerySelector(doc.Root, "div")

	outer, err := OuterHTML(div)
	if err != nil {
		t.Fatalf("OuterHTML() error = %v", err)
	}
	if !strings.Contains(outer, `id="x"`) || !strings.Contains(outer, "<p>hi</p>") {
		t.Errorf("OuterHTML() = %q, missing expected substrings", outer)
	}

	inner, err := InnerHTML(div)
	if err != nil {
		t.Fatalf("InnerHTML() error = %v", err)
	}
	if strings.Contains(inner, `id="x"`) {
		t.Error("InnerHTML() should not include the element's own attributes")
	}
	if !strings.Contains(inner, "<p>hi</p>") {
		t.Errorf("InnerHTML() = %q, missing child content", inner)
	}
}

func TestSetInnerHTML(t *testing.T) {
	doc := parseFragment(t, `<html><body><table><tbody><tr id="row"></tr></tbody></table></body></html>`)
	row := QuerySelector(doc.Root, "tr")

	if err := SetInnerHTML(row, `<td>new</td>`); err != nil {
		t.Fatalf("SetInnerHTML() error = %v", err)
	}

	td := QuerySelector(row, "td")
	if td == nil {
		t.Fatal("expected a td after SetInnerHTML")
	}
	if got := TextContent(td); got != "new" {
		t.Errorf("td text = %q, want %q", got, "new")
	}
}

func TestQuerySelectorAll(t *testing.T) {
	doc := parseFragment(t, `<html><body><p class="a">1</p><p class="a">2</p><p class="b">3</p></body></html>`)
	matches := QuerySelectorAll(doc.Root, "p.a")
	if len(matches) != 2 {
		t.Fatalf("QuerySelectorAll(p.a) = %d matches, want 2", len(matches))
	}
}

func TestIsElementIsText(t *testing.T) {
	el := &html.Node{Type: html.ElementNode}
	tx := &html.Node{Type: html.TextNode}

	if !IsElement(el) || IsText(el) {
		t.Error("IsElement/IsText misclassified an element node")
	}
	if !IsText(tx) || IsElement(tx) {
		t.Error("IsElement/IsText misclassified a text node")
	}
	if IsElement(nil) || IsText(nil) {
		t.Error("IsElement/IsText should report false for nil")
	}
}
