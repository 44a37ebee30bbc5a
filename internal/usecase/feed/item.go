package feed

import "context"

// Feed is the parser's view of one feed document: the declared channel
// title and its entries in document order.
type Feed struct {
	Title string
	Items []Item
}

// Item is the parser's view of one entry from a feed document. Fields
// mirror the dialect variance seen in the wild: media RSS extensions,
// Atom content, content:encoded, and plain description-only feeds.
// An Item is immutable once produced.
type Item struct {
	Title          string
	Link           string
	Published      string
	PublishedAlt   string
	Description    string
	Content        string
	ContentEncoded string
	Enclosure      *Enclosure
	MediaContents  []MediaObject
	MediaThumbnail string
}

// Enclosure is an attached media resource with a declared MIME type.
type Enclosure struct {
	URL  string
	Type string
}

// MediaObject is one candidate image from a media:content sequence.
type MediaObject struct {
	URL string
}

// Fetcher retrieves and parses a feed document from a URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*Feed, error)
}

// Extractor derives a representative image URL, a cleaned plain-text
// summary, and an optional readable body from a feed item. Image and
// FullContent return "" when nothing usable is found.
type Extractor interface {
	Image(item Item) string
	Summary(item Item) string
	FullContent(item Item) string
}

// ContentFetcher retrieves a readable plain-text body for an article page.
// It is optional; when unset the pipeline relies on feed content alone.
type ContentFetcher interface {
	FetchContent(ctx context.Context, url string) (string, error)
}
