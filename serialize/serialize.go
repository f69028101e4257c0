// Package serialize turns a finished article root into an output string:
// HTML (the default), plain text, or Markdown.
package serialize

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// HTML serializes root's children (not root itself, since root is a
// synthetic wrapper) back to an HTML fragment.
func HTML(root *html.Node) (string, error) {
	var b strings.Builder
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&b, c); err != nil {
			return "", err
		}
	}
	return b.String(), nil
}

// Text concatenates root's descendant text nodes through goquery and trims
// leading and trailing whitespace; whitespace inside the text is kept as
// it appears in the markup.
func Text(root *html.Node) (string, error) {
	frag, err := HTML(root)
	if err != nil {
		return "", err
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(frag))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(doc.Text()), nil
}

func newMarkdownConverter() *converter.Converter {
	return converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(
				table.WithCellPaddingBehavior(table.CellPaddingBehaviorMinimal),
			),
		),
	)
}

// Markdown converts root to Markdown, resolving relative URLs in <a> and
// <img> against baseURI so the output is self-contained.
func Markdown(root *html.Node, baseURI string) (string, error) {
	frag, err := HTML(root)
	if err != nil {
		return "", err
	}
	conv := newMarkdownConverter()
	return conv.ConvertString(frag, converter.WithDomain(baseURI))
}

// inlineLinkRe matches Markdown inline links: [text](url)
var inlineLinkRe = regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`)

// Citations rewrites inline Markdown links as reference-style citations,
// collecting the link targets into a trailing reference block. Duplicate
// URLs reuse the same reference number.
//
//	in:  "See [Google](https://google.com) and [GitHub](https://github.com)"
//	out: "See [Google][1] and [GitHub][2]\n\n---\n[1]: https://google.com\n[2]: https://github.com"
func Citations(markdown string) string {
	urlToNum := make(map[string]int)
	var refs []string
	counter := 0

	result := inlineLinkRe.ReplaceAllStringFunc(markdown, func(match string) string {
		parts := inlineLinkRe.FindStringSubmatch(match)
		if len(parts) != 3 {
			return match
		}
		text, url := parts[1], parts[2]

		num, exists := urlToNum[url]
		if !exists {
			counter++
			num = counter
			urlToNum[url] = num
			refs = append(refs, fmt.Sprintf("[%d]: %s", num, url))
		}

		return fmt.Sprintf("[%s][%d]", text, num)
	})

	if len(refs) == 0 {
		return markdown
	}
	return result + "\n\n---\n" + strings.Join(refs, "\n")
}
