package readability

import (
	"encoding/json"
	"strings"

	"github.com/Furafrafrfr/readability/dom"
	"github.com/Furafrafrfr/readability/internal/textutil"
)

// Metadata is the merged metadata bag resolved once per parse.
type Metadata struct {
	Title         string
	Byline        string
	Excerpt       string
	SiteName      string
	PublishedTime string
}

type jsonLD struct {
	Title         string
	Byline        string
	Excerpt       string
	SiteName      string
	DatePublished string
}

// extractMetadata runs the full metadata resolution pass: JSON-LD, then
// meta tags, then priority composition. docTitleHeuristic is the
// already-computed article title heuristic, used to disambiguate JSON-LD
// name vs headline.
func extractMetadata(s *state, doc *dom.Document, docTitleHeuristic string) *Metadata {
	var ld *jsonLD
	if !s.opts.DisableJSONLD {
		ld = extractJSONLD(s, doc, docTitleHeuristic)
	}
	tags := extractMetaTags(doc)

	meta := &Metadata{}

	meta.Title = firstNonEmpty(
		ldField(ld, func(l *jsonLD) string { return l.Title }),
		tags["dc:title"], tags["dcterm:title"], tags["og:title"],
		tags["weibo:article:title"], tags["weibo:webpage:title"],
		tags["title"], tags["twitter:title"], tags["parsely-title"],
	)

	articleAuthor := tags["article:author"]
	bylineFromArticleAuthor := ""
	if articleAuthor != "" && !textutil.LooksLikeURL(articleAuthor) {
		bylineFromArticleAuthor = articleAuthor
	}
	meta.Byline = firstNonEmpty(
		ldField(ld, func(l *jsonLD) string { return l.Byline }),
		tags["dc:creator"], tags["dcterm:creator"], tags["author"],
		tags["parsely-author"], bylineFromArticleAuthor,
	)

	meta.Excerpt = firstNonEmpty(
		ldField(ld, func(l *jsonLD) string { return l.Excerpt }),
		tags["dc:description"], tags["dcterm:description"], tags["og:description"],
		tags["weibo:article:description"], tags["weibo:webpage:description"],
		tags["description"], tags["twitter:description"],
	)

	meta.SiteName = firstNonEmpty(
		ldField(ld, func(l *jsonLD) string { return l.SiteName }),
		tags["og:site_name"],
	)

	meta.PublishedTime = firstNonEmpty(
		ldField(ld, func(l *jsonLD) string { return l.DatePublished }),
		tags["article:published_time"], tags["parsely-pub-date"],
	)

	meta.Title = textutil.Unescape(meta.Title)
	meta.Byline = textutil.Unescape(meta.Byline)
	meta.Excerpt = textutil.Unescape(meta.Excerpt)
	meta.SiteName = textutil.Unescape(meta.SiteName)
	meta.PublishedTime = textutil.Unescape(meta.PublishedTime)

	return meta
}

func ldField(ld *jsonLD, f func(*jsonLD) string) string {
	if ld == nil {
		return ""
	}
	return f(ld)
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

// extractJSONLD implements the JSON-LD metadata pass. Parse failures are
// recovered silently per element, per the malformed-metadata policy.
func extractJSONLD(s *state, doc *dom.Document, docTitleHeuristic string) *jsonLD {
	for _, script := range dom.GetElementsByTagName(doc.Root, "script") {
		typ, _ := dom.Attr(script, "type")
		if !strings.EqualFold(strings.TrimSpace(typ), "application/ld+json") {
			continue
		}
		raw := dom.TextContent(script)
		if m := jsonLDCDATARe.FindStringSubmatch(raw); m != nil {
			raw = m[1]
		}
		var value any
		if err := json.Unmarshal([]byte(raw), &value); err != nil {
			s.recoverable(ErrCodeMalformedMetadata, "invalid JSON-LD payload", err)
			continue
		}
		entry := findArticleEntry(value)
		if entry == nil {
			continue
		}
		if !validSchemaOrgContext(entry) {
			continue
		}
		if ld := parseJSONLDEntry(entry, docTitleHeuristic); ld != nil {
			return ld
		}
	}
	return nil
}

func validSchemaOrgContext(entry map[string]any) bool {
	switch ctx := entry["@context"].(type) {
	case string:
		return schemaOrgContextRe.MatchString(ctx)
	case map[string]any:
		if vocab, ok := ctx["@vocab"].(string); ok {
			return schemaOrgContextRe.MatchString(vocab)
		}
	}
	return false
}

// findArticleEntry locates the first article-typed object in value,
// recursing into arrays and @graph.
func findArticleEntry(value any) map[string]any {
	switch v := value.(type) {
	case map[string]any:
		if typ, ok := v["@type"].(string); ok {
			if articleTypeRe.MatchString(typ) {
				return v
			}
			return nil
		}
		if graph, ok := v["@graph"].([]any); ok {
			for _, item := range graph {
				if entry := findArticleEntry(item); entry != nil {
					// @graph entries don't repeat @context; inherit the
					// parent's so validSchemaOrgContext still passes.
					if _, has := entry["@context"]; !has {
						if ctx, ok := v["@context"]; ok {
							entry["@context"] = ctx
						}
					}
					return entry
				}
			}
		}
		return nil
	case []any:
		for _, item := range v {
			m, ok := item.(map[string]any)
			if !ok {
				continue
			}
			if typ, ok := m["@type"].(string); ok && articleTypeRe.MatchString(typ) {
				return m
			}
		}
		return nil
	default:
		return nil
	}
}

func parseJSONLDEntry(entry map[string]any, docTitleHeuristic string) *jsonLD {
	ld := &jsonLD{}

	name, _ := entry["name"].(string)
	headline, _ := entry["headline"].(string)
	switch {
	case name != "" && headline != "" && name != headline:
		simName := textutil.Similarity(name, docTitleHeuristic)
		simHeadline := textutil.Similarity(headline, docTitleHeuristic)
		if simHeadline >= 0.75 && simName < 0.75 {
			ld.Title = headline
		} else {
			ld.Title = name
		}
	case name != "":
		ld.Title = name
	case headline != "":
		ld.Title = headline
	}

	switch author := entry["author"].(type) {
	case map[string]any:
		if n, ok := author["name"].(string); ok {
			ld.Byline = n
		}
	case []any:
		var names []string
		for _, a := range author {
			if m, ok := a.(map[string]any); ok {
				if n, ok := m["name"].(string); ok && n != "" {
					names = append(names, n)
				}
			}
		}
		ld.Byline = strings.Join(names, ", ")
	case string:
		ld.Byline = author
	}

	if desc, ok := entry["description"].(string); ok {
		ld.Excerpt = desc
	}
	if pub, ok := entry["publisher"].(map[string]any); ok {
		if n, ok := pub["name"].(string); ok {
			ld.SiteName = n
		}
	}
	if dp, ok := entry["datePublished"].(string); ok {
		ld.DatePublished = dp
	}

	if ld.Title == "" && ld.Byline == "" && ld.Excerpt == "" && ld.SiteName == "" && ld.DatePublished == "" {
		return nil
	}
	return ld
}

// extractMetaTags implements the meta-tag pass, returning a map from
// normalized key (lowercase, family-prefixed) to trimmed content.
func extractMetaTags(doc *dom.Document) map[string]string {
	out := make(map[string]string)
	for _, meta := range dom.GetElementsByTagName(doc.Root, "meta") {
		content, hasContent := dom.Attr(meta, "content")
		if !hasContent {
			continue
		}
		content = strings.TrimSpace(content)
		if content == "" {
			continue
		}

		if prop, ok := dom.Attr(meta, "property"); ok {
			if m := metaPropertyRe.FindStringSubmatch(strings.TrimSpace(prop)); m != nil {
				setIfAbsent(out, strings.ToLower(m[1])+":"+strings.ToLower(m[2]), content)
			}
		}
		if name, ok := dom.Attr(meta, "name"); ok {
			if m := metaNameRe.FindStringSubmatch(strings.TrimSpace(name)); m != nil {
				family, field := strings.ToLower(m[1]), strings.ToLower(m[2])
				var key string
				switch {
				case family == "":
					key = field
				case family == "parsely":
					key = family + "-" + field
				default:
					key = family + ":" + field
				}
				setIfAbsent(out, key, content)
			}
		}
	}
	return out
}

func setIfAbsent(m map[string]string, key, value string) {
	if _, exists := m[key]; !exists {
		m[key] = value
	}
}

// recoverable records a non-fatal error.
func (s *state) recoverable(code, msg string, err error) {
	s.debugf(msg, "code", code, "error", err)
	if s.opts.OnRecoverableError != nil {
		s.opts.OnRecoverableError(newError(code, msg, err))
	}
}
