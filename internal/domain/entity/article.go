// Package entity defines the core domain entities and validation logic for the application.
// It contains the normalized Article produced by the feed pipeline, the batch types
// returned to clients, and domain-specific errors.
package entity

import "time"

// Article is the canonical representation of one feed entry after normalization.
// Every Article has a non-empty Image and a non-nil Description (possibly "").
// FullContent and HasFullContent are always consistent with each other.
type Article struct {
	ID             string `json:"id"`
	Title          string `json:"title"`
	Description    string `json:"description"`
	FullContent    string `json:"fullContent,omitempty"`
	HasFullContent bool   `json:"hasFullContent"`
	Link           string `json:"link"`
	PubDate        string `json:"pubDate"`
	Image          string `json:"image"`
	Source         string `json:"source"`
}

// FeedBatch is the result of fetching and normalizing a single feed.
type FeedBatch struct {
	Title     string
	Articles  []Article
	FetchedAt time.Time
}

// MixedBatch is the result of merging several feeds: a uniform random
// permutation of the surviving articles, annotated with a display title and
// the number of feeds that contributed at least one article.
//
// Failed lists the URLs of feeds that were dropped. It is diagnostic only;
// partial success is not an error state.
type MixedBatch struct {
	Articles    []Article
	Title       string
	SourceCount int
	FetchedAt   time.Time
	Failed      []string
}

// SavedArticle is an Article the user stored in their library, with the
// time it was stored. The Link field is the identity key.
type SavedArticle struct {
	Article
	SavedAt time.Time
}

// LikedArticle is an Article the user liked, with the time of the like.
// The Link field is the identity key.
type LikedArticle struct {
	Article
	LikedAt time.Time
}

// RecentFeed is a feed URL the user loaded recently.
type RecentFeed struct {
	URL    string
	UsedAt time.Time
}
