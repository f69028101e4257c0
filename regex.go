package readability

import "regexp"

// Regexes transcribed from the reference extraction algorithm's own
// pattern table.
var (
	unlikelyCandidatesRe = regexp.MustCompile(`(?i)-ad-|ai2html|banner|breadcrumbs|combx|comment|community|cover-wrap|disqus|extra|footer|gdpr|header|legends|menu|related|remark|replies|rss|shoutbox|sidebar|skyscraper|social|sponsor|supplemental|ad-break|agegate|pagination|pager|popup|yom-remote`)
	okMaybeItsACandidateRe = regexp.MustCompile(`(?i)and|article|body|column|content|main|mathjax|shadow`)
	unlikelyRolesRe        = map[string]struct{}{
		"menu": {}, "menubar": {}, "complementary": {}, "navigation": {}, "alert": {}, "alertdialog": {}, "dialog": {},
	}

	bylineRe = regexp.MustCompile(`(?i)byline|author|dateline|writtenby|p-author`)

	negativeWeightRe = regexp.MustCompile(`(?i)-ad-|hidden|^hid$| hid$| hid |^hid |banner|combx|comment|com-|contact|footer|gdpr|masthead|media|meta|outbrain|promo|related|scroll|share|shoutbox|sidebar|skyscraper|sponsor|shopping|tags|widget`)
	positiveWeightRe = regexp.MustCompile(`(?i)article|body|content|entry|hentry|h-entry|main|page|pagination|post|text|blog|story`)

	shareElementsRe = regexp.MustCompile(`(?i)(\b|_)(share|sharedaddy)(\b|_)`)

	titleSeparatorRe    = regexp.MustCompile(` [\|\-–—\\/>»] `)
	hierarchicalSepRe   = regexp.MustCompile(`[\\/>»]`)
	base64DataURLImgRe  = regexp.MustCompile(`(?i)^data:\s*image\/[a-z]+;base64,`)
	imgExtensionURLRe   = regexp.MustCompile(`(?i)\.(jpe?g|png|gif|webp|svg)(\?\S*)?$`)
	srcsetPartRe        = regexp.MustCompile(`(\S+)(\s+[\d.]+[xw])?(\s*(?:,|$))`)
	jsonLDCDATARe       = regexp.MustCompile(`(?s)^\s*(?:/\*\s*)?<!\[CDATA\[(.*?)\]\]>\s*(?:\*/)?\s*$`)
	schemaOrgContextRe  = regexp.MustCompile(`(?i)^https?://schema\.org/?$`)
	metaPropertyRe      = regexp.MustCompile(`(?i)^\s*(article|dc|dcterm|og|twitter)\s*:\s*(author|creator|description|published_time|title|site_name)\s*$`)
	metaNameRe          = regexp.MustCompile(`(?i)^\s*(?:(dc|dcterm|og|twitter|parsely|weibo:(?:article|webpage))\s*[-.:]\s*)?(author|creator|pub-date|description|title|site_name)\s*$`)
)

var articleTypeRe = regexp.MustCompile(`(?i)^(Article|AdvertiserContentArticle|NewsArticle|AnalysisNewsArticle|AskPublicNewsArticle|BackgroundNewsArticle|OpinionNewsArticle|ReportageNewsArticle|ReviewNewsArticle|Report|SatiricalArticle|ScholarlyArticle|MedicalScholarlyArticle|SocialMediaPosting|BlogPosting|LiveBlogPosting|DiscussionForumPosting|TechArticle|APIReference)$`)

// scorableTags are the elements the candidate walk enqueues for scoring
// outright.
var scorableTags = map[string]bool{
	"SECTION": true, "H2": true, "H3": true, "H4": true, "H5": true, "H6": true,
	"P": true, "TD": true, "PRE": true,
}

// divToPElems are the block-level tags that, if present among a DIV's
// children, prevent the DIV from being retagged to <p> during the
// candidate walk's div handling.
var divToPElems = map[string]bool{
	"BLOCKQUOTE": true, "DL": true, "DIV": true, "IMG": true, "OL": true,
	"P": true, "PRE": true, "TABLE": true, "UL": true,
}

// alterToDivExceptions are tags the sibling assembler leaves as-is;
// anything else gets retagged to <div> before being appended.
var alterToDivExceptions = map[string]bool{
	"DIV": true, "ARTICLE": true, "SECTION": true, "P": true, "OL": true, "UL": true,
}

// phrasingElems is the tag half of the "phrasing content" definition
// used when collapsing br runs; text nodes and <a>/<del>/<ins> with
// all-phrasing children are handled separately in preprocess.go.
var phrasingElems = map[string]bool{
	"ABBR": true, "AUDIO": true, "B": true, "BDO": true, "BR": true, "BUTTON": true,
	"CITE": true, "CODE": true, "DATA": true, "DATALIST": true, "DFN": true, "EM": true,
	"EMBED": true, "I": true, "IMG": true, "INPUT": true, "KBD": true, "LABEL": true,
	"MARK": true, "MATH": true, "METER": true, "NOSCRIPT": true, "OBJECT": true,
	"OUTPUT": true, "PROGRESS": true, "Q": true, "RUBY": true, "SAMP": true,
	"SCRIPT": true, "SELECT": true, "SMALL": true, "SPAN": true, "STRONG": true,
	"SUB": true, "SUP": true, "TEXTAREA": true, "TIME": true, "VAR": true, "WBR": true,
}

var presentationalAttrs = []string{
	"align", "background", "bgcolor", "border", "cellpadding", "cellspacing",
	"frame", "hspace", "rules", "style", "valign", "vspace",
}

var deprecatedSizeAttrTags = map[string]bool{
	"TABLE": true, "TH": true, "TD": true, "HR": true, "PRE": true,
}

// baseScores are the seed scores keyed by tag; anything absent is 0.
var baseScores = map[string]float64{
	"DIV":        5,
	"PRE":        3,
	"TD":         3,
	"BLOCKQUOTE": 3,
	"ADDRESS":    -3,
	"OL":         -3,
	"UL":         -3,
	"DL":         -3,
	"DD":         -3,
	"DT":         -3,
	"LI":         -3,
	"FORM":       -3,
	"H1":         -5,
	"H2":         -5,
	"H3":         -5,
	"H4":         -5,
	"H5":         -5,
	"H6":         -5,
	"TH":         -5,
}
