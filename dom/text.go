package dom

import (
	"github.com/Furafrafrfr/readability/internal/textutil"
	"golang.org/x/net/html"
)

// InnerText returns n's whitespace-normalized text content: the DOM
// contract's "innerText" as opposed to the raw, unnormalized textContent.
func InnerText(n *html.Node) string {
	return textutil.NormalizeWhitespace(TextContent(n))
}
