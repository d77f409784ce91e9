package backends

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSiteFor(t *testing.T) {
	cases := []struct {
		url  string
		site string
		ok   bool
	}{
		{"https://www.royalroad.com/fiction/21220/mother-of-learning", "royalroad", true},
		{"https://royalroad.com/fiction/21220", "royalroad", true},
		{"http://www.royalroad.com/fiction/62929/gideon-the-golem/chapter/1087447/11", "royalroad", true},
		{"https://freewebnovel.com/the-guide-to-conquering-earthlings.html", "freewebnovel", true},
		{"https://www.freewebnovel.com/some-novel.html", "freewebnovel", true},
		{"https://libread.com/libread/the-devil-does-not-need-to-be-defeated-275948", "libread", true},
		{"https://www.lightnovelworld.com/novel/the-perfect-run-24071713", "lightnovelworld", true},
		{"https://www.lightnovelworld.co/novel/shadow-slave-05122222", "lightnovelworld", true},
		{"https://example.com/fiction/1/whatever", "", false},
		{"https://www.scribblehub.com/series/123/some-story/", "", false},
		{"not a url at all", "", false},
	}
	for _, tc := range cases {
		site, ok := SiteFor(tc.url)
		assert.Equal(t, tc.ok, ok, tc.url)
		assert.Equal(t, tc.site, site, tc.url)
	}
}

func TestSupportedSites(t *testing.T) {
	// dispatch order is part of the contract: libread shares freewebnovel's
	// layout and must stay behind it
	assert.Equal(t,
		[]string{"royalroad", "freewebnovel", "libread", "lightnovelworld"},
		SupportedSites())
}

func TestResolveUnsupported(t *testing.T) {
	_, err := Resolve(context.Background(), nil, "https://example.com/fiction/1")
	require.Error(t, err)

	var unsupported *UnsupportedSourceError
	require.True(t, errors.As(err, &unsupported))
	assert.Equal(t, "https://example.com/fiction/1", unsupported.URL)
}
