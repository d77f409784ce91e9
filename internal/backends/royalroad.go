package backends

import (
	"context"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/brogergvhs/noveld/internal/novel"
	"github.com/brogergvhs/noveld/internal/sanitize"
)

const royalRoadName = "royalroad"

const (
	rrChapterRowSelector   = "table#chapters tbody tr.chapter-row td:first-child a"
	rrChapterDateSelector  = "table#chapters tbody tr.chapter-row td:last-child time"
	rrFictionTitleSelector = "div.fic-header div.fic-title h1"
	rrAuthorSelector       = "div.fic-header div.fic-title h4 span a"
	rrCoverSelector        = "head meta[property=\"og:image\"]"
	rrChapterTitleSelector = "div.fic-header h1"
	rrChapterBodySelector  = "div.chapter-inner.chapter-content"
)

var rrFictionID = regexp.MustCompile(`/fiction/(\d+)`)

// royalRoad serves royalroad.com. RoyalRoad injects per-session
// anti-theft sentences into chapter bodies, so every chapter runs
// through the site corpus.
type royalRoad struct {
	client *http.Client
	url    string
	page   *goquery.Document
	corpus *sanitize.Corpus
}

func newRoyalRoad(ctx context.Context, client *http.Client, url string) (Backend, error) {
	page, err := fetchDOM(ctx, client, royalRoadName, url)
	if err != nil {
		return nil, err
	}
	return &royalRoad{
		client: client,
		url:    url,
		page:   page,
		corpus: sanitize.ForSite(royalRoadName),
	}, nil
}

func (b *royalRoad) URL() string  { return b.url }
func (b *royalRoad) Name() string { return royalRoadName }

func (b *royalRoad) Title() (string, error) {
	title, ok := firstText(b.page, rrFictionTitleSelector)
	if !ok {
		return "", &ParseError{Site: royalRoadName, URL: b.url, What: "fiction title not found"}
	}
	return title, nil
}

func (b *royalRoad) ImmutableIdentifier() (string, error) {
	m := rrFictionID.FindStringSubmatch(b.url)
	if m == nil {
		return "", &ParseError{Site: royalRoadName, URL: b.url, What: "fiction id not found in url"}
	}
	return royalRoadName + "-" + m[1], nil
}

func (b *royalRoad) Authors() ([]string, error) {
	author, ok := firstText(b.page, rrAuthorSelector)
	if !ok {
		return nil, &ParseError{Site: royalRoadName, URL: b.url, What: "author not found"}
	}
	return []string{author}, nil
}

func (b *royalRoad) CoverURL() (string, error) {
	cover, ok := firstAttr(b.page, rrCoverSelector, "content")
	if !ok {
		return "", &ParseError{Site: royalRoadName, URL: b.url, What: "cover image not found"}
	}
	return cover, nil
}

func (b *royalRoad) ChapterURLs(_ context.Context) ([]string, error) {
	var urls []string
	b.page.Find(rrChapterRowSelector).Each(func(_ int, a *goquery.Selection) {
		if href, ok := a.Attr("href"); ok {
			urls = append(urls, resolveURL(b.url, href))
		}
	})
	if len(urls) == 0 {
		return nil, &ParseError{Site: royalRoadName, URL: b.url, What: "chapter table not found"}
	}
	return urls, nil
}

func (b *royalRoad) GetChapterList(ctx context.Context) ([]novel.ChapterListElem, error) {
	urls, err := b.ChapterURLs(ctx)
	if err != nil {
		return nil, err
	}
	elems := make([]novel.ChapterListElem, 0, len(urls))
	b.page.Find(rrChapterRowSelector).Each(func(i int, a *goquery.Selection) {
		elems = append(elems, novel.ChapterListElem{
			Index: i + 1,
			Title: strings.TrimSpace(a.Text()),
		})
	})
	return elems, nil
}

func (b *royalRoad) GetChapter(ctx context.Context, url string) (novel.Chapter, error) {
	page, err := fetchDOM(ctx, b.client, royalRoadName, url)
	if err != nil {
		return novel.Chapter{}, err
	}

	title, ok := firstText(page, rrChapterTitleSelector)
	if !ok {
		return novel.Chapter{}, &ParseError{Site: royalRoadName, URL: url, What: "chapter title not found"}
	}
	body := page.Find(rrChapterBodySelector).First()
	if body.Length() == 0 {
		return novel.Chapter{}, &ParseError{Site: royalRoadName, URL: url, What: "chapter content container not found"}
	}

	content := sanitize.Sanitize(paragraphText(body), b.corpus)
	if strings.TrimSpace(content) == "" {
		return novel.Chapter{}, &ContentError{Site: royalRoadName, URL: url, What: "empty after sanitization"}
	}

	c := novel.Chapter{
		Index:      b.indexOf(ctx, url),
		Title:      title,
		Content:    content,
		URL:        url,
		FictionURL: b.url,
	}
	if t, ok := firstAttr(page, "time[datetime]", "datetime"); ok {
		if parsed, err := time.Parse(time.RFC3339, t); err == nil {
			c.PublishedAt = &parsed
		}
	}
	if authors, err := b.Authors(); err == nil {
		c.Metadata = map[string]string{"authors": strings.Join(authors, ", ")}
	}
	return c, nil
}

// indexOf looks the chapter URL up in the fiction's table of contents.
// RoyalRoad chapter URLs carry a chapter id, not a position, so position
// comes from the listing.
func (b *royalRoad) indexOf(ctx context.Context, url string) int {
	urls, err := b.ChapterURLs(ctx)
	if err != nil {
		return 0
	}
	for i, u := range urls {
		if u == url {
			return i + 1
		}
	}
	return 0
}

// RoyalRoad renumbers the chapter table when chapters are deleted, but
// titles keep their written-out numbering, so the title number breaks
// index ties the right way around.
func (b *royalRoad) Ordering() novel.OrderingFunc { return novel.ByTitleNumber }
