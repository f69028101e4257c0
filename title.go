package readability

import (
	"strings"

	"github.com/Furafrafrfr/readability/dom"
	"github.com/Furafrafrfr/readability/internal/textutil"
)

// articleTitleHeuristic derives a trimmed article title from document.title,
// correcting for site-name suffixes/prefixes and colon-delimited subtitles.
func articleTitleHeuristic(doc *dom.Document) string {
	origTitle := strings.TrimSpace(doc.Title())
	curTitle := origTitle
	titleHadHierarchicalSeparators := false

	if titleSeparatorRe.MatchString(curTitle) {
		titleHadHierarchicalSeparators = hierarchicalSepRe.MatchString(curTitle)
		curTitle = lastSeparatorPrefix(origTitle)
		if textutil.WordCount(curTitle) < 3 {
			curTitle = firstSeparatorSuffix(origTitle)
		}
	} else if strings.Contains(curTitle, ": ") {
		h1h2 := headerDuplicatesTitle(doc, curTitle)
		if !h1h2 {
			idx := strings.LastIndex(origTitle, ":")
			curTitle = strings.TrimSpace(origTitle[idx+1:])
			if textutil.WordCount(curTitle) < 3 {
				idx = strings.Index(origTitle, ":")
				curTitle = strings.TrimSpace(origTitle[idx+1:])
			} else {
				before := origTitle
				if i := strings.Index(origTitle, ":"); i >= 0 {
					before = origTitle[:i]
				}
				if textutil.WordCount(before) > 5 {
					curTitle = origTitle
				}
			}
		}
	} else if len(curTitle) > 150 || len(curTitle) < 15 {
		h1s := dom.GetElementsByTagName(doc.Root, "h1")
		if len(h1s) == 1 {
			curTitle = dom.InnerText(h1s[0])
		}
	}

	curTitle = textutil.NormalizeWhitespace(curTitle)

	curTitleWordCount := textutil.WordCount(stripSeparators(curTitle))
	origWordCount := textutil.WordCount(stripSeparators(origTitle))
	if curTitleWordCount <= 4 && (!titleHadHierarchicalSeparators || curTitleWordCount != origWordCount-1) {
		curTitle = origTitle
	}

	return curTitle
}

func lastSeparatorPrefix(title string) string {
	loc := lastMatchIndex(titleSeparatorRe, title)
	if loc == nil {
		return title
	}
	return strings.TrimSpace(title[:loc[0]])
}

func firstSeparatorSuffix(title string) string {
	loc := titleSeparatorRe.FindStringIndex(title)
	if loc == nil {
		return title
	}
	return strings.TrimSpace(title[loc[1]:])
}

func lastMatchIndex(re interface {
	FindAllStringIndex(string, int) [][]int
}, s string) []int {
	all := re.FindAllStringIndex(s, -1)
	if len(all) == 0 {
		return nil
	}
	return all[len(all)-1]
}

func stripSeparators(s string) string {
	return titleSeparatorRe.ReplaceAllString(s, " ")
}

func headerDuplicatesTitle(doc *dom.Document, title string) bool {
	for _, tag := range []string{"h1", "h2"} {
		for _, h := range dom.GetElementsByTagName(doc.Root, tag) {
			if strings.TrimSpace(dom.TextContent(h)) == title {
				return true
			}
		}
	}
	return false
}
