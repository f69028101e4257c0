package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"

	"github.com/Furafrafrfr/readability"
	"github.com/Furafrafrfr/readability/serialize"
)

// Run executes the extract command.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	source, err := readSource(c.File)
	if err != nil {
		return err
	}
	if c.CSSSelector != "" {
		if filtered, err := applyCSSSelector(source, c.CSSSelector); err == nil {
			source = filtered
		}
	}

	opts := deps.Config.Extract.ToOptions()
	opts.KeepClasses = c.KeepClasses
	opts.Serializer = formatSerializer(c.Format, c.URL)

	result, err := readability.Extract(source, c.URL, opts)
	if err != nil {
		return fmt.Errorf("extract: %w", err)
	}

	fmt.Fprintln(deps.Stdout, result.Content)
	return nil
}

func readSource(path string) (string, error) {
	if path == "" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), nil
}

// applyCSSSelector narrows rawHTML to the outer HTML of every element
// matching selector, falling back to rawHTML unchanged if nothing matches.
func applyCSSSelector(rawHTML, selector string) (string, error) {
	sel, err := cascadia.Parse(selector)
	if err != nil {
		return "", err
	}
	doc, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil {
		return "", err
	}
	matches := cascadia.QueryAll(doc, sel)
	if len(matches) == 0 {
		return rawHTML, nil
	}
	var buf bytes.Buffer
	for _, node := range matches {
		if err := html.Render(&buf, node); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

func formatSerializer(format, documentURL string) func(*html.Node) (string, error) {
	switch format {
	case "text":
		return func(root *html.Node) (string, error) { return serialize.Text(root) }
	case "markdown":
		return func(root *html.Node) (string, error) { return serialize.Markdown(root, documentURL) }
	default:
		return func(root *html.Node) (string, error) { return serialize.HTML(root) }
	}
}
