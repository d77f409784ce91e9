package backends

import (
	"context"
	"net/http"
	"regexp"
)

type factory struct {
	name     string
	patterns []*regexp.Regexp
	build    func(ctx context.Context, client *http.Client, url string) (Backend, error)
}

// Registration order is the dispatch order: the first matching pattern
// wins, so overlapping patterns resolve deterministically. LibRead shares
// FreeWebNovel's layout and must stay after it.
var registry = []factory{
	{
		name: royalRoadName,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`https?://(?:www\.)?royalroad\.com/fiction/(\d+)(?:/[\w-]+)?`),
		},
		build: newRoyalRoad,
	},
	{
		name: freeWebNovelName,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`https?://(?:www\.)?freewebnovel\.com/[\w-]+\.html`),
		},
		build: newFreeWebNovel,
	},
	{
		name: libReadName,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`https?://(?:www\.)?libread\.com/libread/[\w-]+`),
		},
		build: newLibRead,
	},
	{
		name: lightNovelWorldName,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`https?://(?:www\.)?lightnovelworld\.(?:com|co)/novel/([a-z0-9-]+)/?`),
		},
		build: newLightNovelWorld,
	},
}

// Resolve selects and constructs the backend matching url. The returned
// backend has already fetched the fiction page, so metadata accessors
// work without further network round trips.
func Resolve(ctx context.Context, client *http.Client, url string) (Backend, error) {
	for _, f := range registry {
		for _, re := range f.patterns {
			if re.MatchString(url) {
				return f.build(ctx, client, url)
			}
		}
	}
	return nil, &UnsupportedSourceError{URL: url}
}

// SupportedSites lists the registered site names in dispatch order.
func SupportedSites() []string {
	out := make([]string, len(registry))
	for i, f := range registry {
		out[i] = f.name
	}
	return out
}

// SiteFor reports the site name whose pattern matches url, without
// constructing a backend. Used by the corpus tooling.
func SiteFor(url string) (string, bool) {
	for _, f := range registry {
		for _, re := range f.patterns {
			if re.MatchString(url) {
				return f.name, true
			}
		}
	}
	return "", false
}
