package extract

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"rsstok/internal/usecase/feed"
)

const (
	// summaryMaxRunes is the hard cap on summary length. No ellipsis is
	// appended; callers that need to detect truncation must recompute.
	summaryMaxRunes = 300

	// fullContentMinRunes is the threshold below which a cleaned body is
	// treated as absent rather than presented as a full article.
	fullContentMinRunes = 350
)

var (
	tagRe    = regexp.MustCompile(`<[^>]*>`)
	scriptRe = regexp.MustCompile(`(?is)<script\b.*?</script>`)
	styleRe  = regexp.MustCompile(`(?is)<style\b.*?</style>`)

	brRe         = regexp.MustCompile(`(?i)<br\s*/?>`)
	paraCloseRe  = regexp.MustCompile(`(?i)</(?:p|h[1-6])>`)
	liCloseRe    = regexp.MustCompile(`(?i)</li>`)
	liOpenRe     = regexp.MustCompile(`(?i)<li\b[^>]*>`)
	quoteCloseRe = regexp.MustCompile(`(?i)</blockquote>`)
	quoteOpenRe  = regexp.MustCompile(`(?i)<blockquote\b[^>]*>`)

	multiNewlineRe = regexp.MustCompile(`\n{3,}`)
)

// entityReplacer unescapes the five entities feeds commonly leave in text.
var entityReplacer = strings.NewReplacer(
	"&nbsp;", " ",
	"&amp;", "&",
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&#39;", "'",
)

// Summary returns a plain-text snippet for the item: the first non-empty
// of description and content, with all markup stripped, trimmed, and
// hard-truncated to 300 runes.
func (e *Extractor) Summary(item feed.Item) string {
	text := firstNonEmpty(item.Description, item.Content)
	return truncateRunes(strings.TrimSpace(tagRe.ReplaceAllString(text, "")), summaryMaxRunes)
}

// FullContent converts the richest available content field into readable
// plain text, preserving structure as newlines and bullet markers. The
// result is returned only when it is substantially longer than the
// truncated summary; otherwise "" signals that no full content exists.
func (e *Extractor) FullContent(item feed.Item) string {
	raw := firstNonEmpty(item.ContentEncoded, item.Content, item.Description)
	if raw == "" {
		return ""
	}

	content := scriptRe.ReplaceAllString(raw, "")
	content = styleRe.ReplaceAllString(content, "")

	content = brRe.ReplaceAllString(content, "\n")
	content = paraCloseRe.ReplaceAllString(content, "\n\n")
	content = liCloseRe.ReplaceAllString(content, "\n")
	content = liOpenRe.ReplaceAllString(content, "• ")
	content = quoteCloseRe.ReplaceAllString(content, "\n\n")
	content = quoteOpenRe.ReplaceAllString(content, "\n❝ ")

	content = tagRe.ReplaceAllString(content, "")
	content = entityReplacer.Replace(content)
	content = multiNewlineRe.ReplaceAllString(content, "\n\n")
	content = strings.TrimSpace(content)

	if utf8.RuneCountInString(content) <= fullContentMinRunes {
		return ""
	}
	return content
}

// truncateRunes cuts s to at most n runes without splitting code points.
func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n])
}
