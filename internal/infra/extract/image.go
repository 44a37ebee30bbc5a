// Package extract derives a representative image, a cleaned plain-text
// summary, and an optional readable body from raw feed items. Feeds are
// wildly inconsistent about which fields they populate, so every extractor
// is an explicit ordered list of rules tried in sequence; the first rule
// that produces a value wins.
package extract

import (
	"strings"

	"rsstok/internal/usecase/feed"

	"github.com/PuerkitoBio/goquery"
)

// Extractor implements feed.Extractor over raw feed items.
type Extractor struct {
	imageRules []func(feed.Item) string
}

// New creates an Extractor with the standard rule chains.
func New() *Extractor {
	return &Extractor{
		imageRules: []func(feed.Item) string{
			fromMediaContent,
			fromMediaThumbnail,
			fromImageEnclosure,
			fromInlineImg,
		},
	}
}

// Image resolves a representative image URL for the item, or "" when no
// rule matches. Rules are tried in precedence order with no merging:
// media:content, media:thumbnail, image enclosure, first inline <img>.
func (e *Extractor) Image(item feed.Item) string {
	for _, rule := range e.imageRules {
		if url := rule(item); url != "" {
			return url
		}
	}
	return ""
}

func fromMediaContent(item feed.Item) string {
	if len(item.MediaContents) > 0 {
		return item.MediaContents[0].URL
	}
	return ""
}

func fromMediaThumbnail(item feed.Item) string {
	return item.MediaThumbnail
}

func fromImageEnclosure(item feed.Item) string {
	enc := item.Enclosure
	if enc != nil && enc.URL != "" && strings.HasPrefix(enc.Type, "image") {
		return enc.URL
	}
	return ""
}

// fromInlineImg looks for the first <img src> inside whichever content
// field is available, richest field first.
func fromInlineImg(item feed.Item) string {
	content := firstNonEmpty(item.ContentEncoded, item.Content, item.Description)
	if content == "" {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return ""
	}

	src := ""
	doc.Find("img[src]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		if v, ok := sel.Attr("src"); ok && v != "" {
			src = v
			return false
		}
		return true
	})
	return src
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
