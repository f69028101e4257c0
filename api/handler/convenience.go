package handler

import (
	"bytes"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"

	"github.com/Furafrafrfr/readability/models"
)

// extractLinks parses rawHTML and separates links into internal and
// external based on whether their host matches documentURL's host.
func extractLinks(rawHTML, documentURL string) models.LinksResult {
	result := models.LinksResult{Internal: []models.Link{}, External: []models.Link{}}

	base, err := url.Parse(documentURL)
	if err != nil {
		return result
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return result
	}

	seen := make(map[string]struct{})
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, exists := s.Attr("href")
		if !exists || href == "" {
			return
		}
		resolved, err := base.Parse(href)
		if err != nil {
			return
		}
		absURL := resolved.String()
		if resolved.Scheme != "http" && resolved.Scheme != "https" {
			return
		}
		if _, ok := seen[absURL]; ok {
			return
		}
		seen[absURL] = struct{}{}

		link := models.Link{Href: absURL, Text: strings.TrimSpace(s.Text())}
		if strings.EqualFold(resolved.Host, base.Host) {
			result.Internal = append(result.Internal, link)
		} else {
			result.External = append(result.External, link)
		}
	})

	return result
}

// extractImages parses rawHTML and returns image elements with absolute
// src URLs resolved against documentURL.
func extractImages(rawHTML, documentURL string) []models.Image {
	images := []models.Image{}

	base, err := url.Parse(documentURL)
	if err != nil {
		return images
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return images
	}

	seen := make(map[string]struct{})
	doc.Find("img[src]").Each(func(_ int, s *goquery.Selection) {
		src, exists := s.Attr("src")
		if !exists || src == "" {
			return
		}
		resolved, err := base.Parse(src)
		if err != nil {
			return
		}
		if resolved.Scheme == "data" {
			return
		}
		absURL := resolved.String()
		if _, ok := seen[absURL]; ok {
			return
		}
		seen[absURL] = struct{}{}

		alt, _ := s.Attr("alt")
		images = append(images, models.Image{Src: absURL, Alt: strings.TrimSpace(alt)})
	})

	return images
}

// extractOGMetadata parses Open Graph meta tags from rawHTML.
func extractOGMetadata(rawHTML string) models.OGMetadata {
	og := models.OGMetadata{}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return og
	}

	doc.Find("meta[property]").Each(func(_ int, s *goquery.Selection) {
		prop, _ := s.Attr("property")
		content, _ := s.Attr("content")
		if content == "" {
			return
		}
		switch prop {
		case "og:title":
			og.Title = content
		case "og:description":
			og.Description = content
		case "og:image":
			og.Image = content
		case "og:type":
			og.Type = content
		}
	})

	return og
}

// estimateTokens provides a fast token count estimate without a tokenizer
// dependency: utf8 rune count / 3, a reasonable middle-ground between
// English's ~4 chars/token and CJK's ~1.5 chars/token.
func estimateTokens(text string) int {
	n := utf8.RuneCountInString(text)
	if n == 0 {
		return 0
	}
	if est := n / 3; est >= 1 {
		return est
	}
	return 1
}

// applyCSSSelector narrows rawHTML to the outer HTML of every element
// matching selector. Falls back to rawHTML unchanged if nothing matches,
// so a bad selector never produces empty input to the extractor.
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
