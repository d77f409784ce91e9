// Package backends turns site-specific page layouts into the uniform
// chapter model of internal/novel. One implementation per hosting site;
// all of them share the contract below and differ only in selectors and
// text post-processing.
package backends

import (
	"context"

	"github.com/brogergvhs/noveld/internal/novel"
)

// Backend is the per-site retrieval contract. Implementations are
// stateless beyond the shared HTTP client and their cached fiction page,
// so independent instances are safe to use concurrently.
type Backend interface {
	// URL returns the fiction page URL this backend was built from.
	URL() string
	// Name identifies the site, and keys its decoy corpus.
	Name() string

	// Title is the fiction's displayed title. It can change over time;
	// use ImmutableIdentifier as a cache key instead.
	Title() (string, error)
	// ImmutableIdentifier is stable across retitles, derived from a
	// durable source-side key such as a numeric fiction id.
	ImmutableIdentifier() (string, error)
	Authors() ([]string, error)
	CoverURL() (string, error)

	// ChapterURLs returns chapter page URLs in source-listed order.
	ChapterURLs(ctx context.Context) ([]string, error)
	// GetChapterList returns (index, title) pairs without fetching any
	// chapter content. Cheap enough to diff against a local cache.
	GetChapterList(ctx context.Context) ([]novel.ChapterListElem, error)
	// GetChapter fetches, parses and sanitizes a single chapter page.
	GetChapter(ctx context.Context, url string) (novel.Chapter, error)

	// Ordering returns the comparator for chapters of this fiction.
	Ordering() novel.OrderingFunc
}

// GetChapters fetches every chapter of the fiction in source order. A
// single failed chapter aborts the whole run: archival consumers assume
// completeness, and a partial sequence is worse than a clear error.
func GetChapters(ctx context.Context, b Backend) ([]novel.Chapter, error) {
	urls, err := b.ChapterURLs(ctx)
	if err != nil {
		return nil, err
	}
	chapters := make([]novel.Chapter, 0, len(urls))
	for _, u := range urls {
		c, err := b.GetChapter(ctx, u)
		if err != nil {
			return nil, err
		}
		chapters = append(chapters, c)
	}
	return chapters, nil
}
