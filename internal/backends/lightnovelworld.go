package backends

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/brogergvhs/noveld/internal/novel"
	"github.com/brogergvhs/noveld/internal/sanitize"
)

const lightNovelWorldName = "lightnovelworld"

const (
	lnwTitleSelector        = "h1.novel-title"
	lnwAuthorSelector       = "div.author a span"
	lnwCoverSelector        = "head meta[property=\"og:image\"]"
	lnwPaginationSelector   = "section#chpagedlist ul.pagination li"
	lnwChapterItemSelector  = "section#chpagedlist ul.chapter-list li"
	lnwChapterNoSelector    = "a span.chapter-no"
	lnwChapterTitleSelector = "article#chapter-article span.chapter-title"
	lnwChapterBodySelector  = "div#chapter-container"
	lnwPublishedSelector    = "article#chapter-article meta[itemprop=\"datePublished\"]"

	lnwDateLayout = "2006-01-02T15:04:05"
)

// lightNovelWorld serves lightnovelworld.com. Chapter pages are addressed
// by position (/chapter-N), and the table of contents is paginated.
type lightNovelWorld struct {
	client   *http.Client
	url      string
	mainPage *goquery.Document
	listPage *goquery.Document
	corpus   *sanitize.Corpus
}

func newLightNovelWorld(ctx context.Context, client *http.Client, url string) (Backend, error) {
	url = strings.TrimSuffix(url, "/")
	mainPage, err := fetchDOM(ctx, client, lightNovelWorldName, url)
	if err != nil {
		return nil, err
	}
	listPage, err := fetchDOM(ctx, client, lightNovelWorldName, url+"/chapters")
	if err != nil {
		return nil, err
	}
	return &lightNovelWorld{
		client:   client,
		url:      url,
		mainPage: mainPage,
		listPage: listPage,
		corpus:   sanitize.ForSite(lightNovelWorldName),
	}, nil
}

func (b *lightNovelWorld) URL() string  { return b.url }
func (b *lightNovelWorld) Name() string { return lightNovelWorldName }

func (b *lightNovelWorld) Title() (string, error) {
	title, ok := firstText(b.mainPage, lnwTitleSelector)
	if !ok {
		return "", &ParseError{Site: lightNovelWorldName, URL: b.url, What: "fiction title not found"}
	}
	return title, nil
}

// ImmutableIdentifier is the URL slug, which embeds the site's numeric
// novel id and survives retitles.
func (b *lightNovelWorld) ImmutableIdentifier() (string, error) {
	if i := strings.LastIndex(b.url, "/"); i >= 0 && i < len(b.url)-1 {
		return b.url[i+1:], nil
	}
	return "", &ParseError{Site: lightNovelWorldName, URL: b.url, What: "no slug in url"}
}

func (b *lightNovelWorld) Authors() ([]string, error) {
	author, ok := firstText(b.mainPage, lnwAuthorSelector)
	if !ok {
		return nil, &ParseError{Site: lightNovelWorldName, URL: b.url, What: "author not found"}
	}
	return []string{author}, nil
}

func (b *lightNovelWorld) CoverURL() (string, error) {
	cover, ok := firstAttr(b.mainPage, lnwCoverSelector, "content")
	if !ok {
		return "", &ParseError{Site: lightNovelWorldName, URL: b.url, What: "cover image not found"}
	}
	return cover, nil
}

func (b *lightNovelWorld) ChapterURLs(ctx context.Context) ([]string, error) {
	list, err := b.GetChapterList(ctx)
	if err != nil {
		return nil, err
	}
	urls := make([]string, len(list))
	for i, e := range list {
		urls[i] = fmt.Sprintf("%s/chapter-%d", b.url, e.Index)
	}
	return urls, nil
}

func (b *lightNovelWorld) GetChapterList(ctx context.Context) ([]novel.ChapterListElem, error) {
	pages := b.listPage.Find(lnwPaginationSelector).Length()
	if pages > 0 {
		pages-- // the trailing "next" button
	} else {
		pages = 1
	}

	var elems []novel.ChapterListElem
	current := b.listPage
	for page := 1; ; page++ {
		pageElems, err := b.listPageElems(current)
		if err != nil {
			return nil, err
		}
		elems = append(elems, pageElems...)
		if page >= pages {
			break
		}
		current, err = fetchDOM(ctx, b.client, lightNovelWorldName,
			fmt.Sprintf("%s/chapters?page=%d", b.url, page+1))
		if err != nil {
			return nil, err
		}
	}
	return elems, nil
}

func (b *lightNovelWorld) listPageElems(page *goquery.Document) ([]novel.ChapterListElem, error) {
	var elems []novel.ChapterListElem
	var bad bool
	page.Find(lnwChapterItemSelector).Each(func(_ int, li *goquery.Selection) {
		no, err := strconv.Atoi(strings.TrimSpace(li.Find(lnwChapterNoSelector).First().Text()))
		if err != nil {
			bad = true
			return
		}
		title, ok := li.Find("a").First().Attr("title")
		if !ok {
			bad = true
			return
		}
		elems = append(elems, novel.ChapterListElem{Index: no, Title: title})
	})
	if bad || len(elems) == 0 {
		return nil, &ParseError{Site: lightNovelWorldName, URL: b.url, What: "chapter list not found"}
	}
	return elems, nil
}

func (b *lightNovelWorld) GetChapter(ctx context.Context, url string) (novel.Chapter, error) {
	page, err := fetchDOM(ctx, b.client, lightNovelWorldName, url)
	if err != nil {
		return novel.Chapter{}, err
	}

	title, ok := firstText(page, lnwChapterTitleSelector)
	if !ok {
		return novel.Chapter{}, &ParseError{Site: lightNovelWorldName, URL: url, What: "chapter title not found"}
	}
	body := page.Find(lnwChapterBodySelector).First()
	if body.Length() == 0 {
		return novel.Chapter{}, &ParseError{Site: lightNovelWorldName, URL: url, What: "chapter content container not found"}
	}

	content := sanitize.Sanitize(paragraphText(body), b.corpus)
	if strings.TrimSpace(content) == "" {
		return novel.Chapter{}, &ContentError{Site: lightNovelWorldName, URL: url, What: "empty after sanitization"}
	}

	c := novel.Chapter{
		Index:      chapterNumberFromURL(url),
		Title:      title,
		Content:    content,
		URL:        url,
		FictionURL: b.url,
	}
	if v, ok := firstAttr(page, lnwPublishedSelector, "content"); ok {
		if t, err := time.Parse(lnwDateLayout, v); err == nil {
			utc := t.UTC()
			c.PublishedAt = &utc
		}
	}
	if authors, err := b.Authors(); err == nil {
		c.Metadata = map[string]string{"authors": strings.Join(authors, ", ")}
	}
	return c, nil
}

func chapterNumberFromURL(url string) int {
	i := strings.LastIndex(url, "chapter-")
	if i < 0 {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimSuffix(url[i+len("chapter-"):], "/"))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func (b *lightNovelWorld) Ordering() novel.OrderingFunc { return novel.ByIndex }
