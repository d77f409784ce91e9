package backends

import (
	"context"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/brogergvhs/noveld/internal/novel"
	"github.com/brogergvhs/noveld/internal/sanitize"
)

const (
	freeWebNovelName = "freewebnovel"
	libReadName      = "libread"
)

const (
	fwnTitleSelector        = "h1.tit"
	fwnAuthorSelector       = "a.a1"
	fwnChapterListSelector  = "div.m-newest2 ul#idData li a.con"
	fwnChapterTitleSelector = "div.top span.chapter"
	fwnChapterBodySelector  = "div.txt div#article"
	fwnCoverSelector        = "head meta[property=\"og:image\"]"
)

// freeWebNovel serves freewebnovel.com. LibRead is the same engine under
// another domain, so it reuses this type with its own site name (see
// libread.go); keep the selectors shared.
type freeWebNovel struct {
	client *http.Client
	site   string
	url    string
	page   *goquery.Document
	corpus *sanitize.Corpus
}

func newFreeWebNovel(ctx context.Context, client *http.Client, url string) (Backend, error) {
	return newFWNLayout(ctx, client, freeWebNovelName, url)
}

func newFWNLayout(ctx context.Context, client *http.Client, site, url string) (Backend, error) {
	page, err := fetchDOM(ctx, client, site, url)
	if err != nil {
		return nil, err
	}
	return &freeWebNovel{
		client: client,
		site:   site,
		url:    url,
		page:   page,
		corpus: sanitize.ForSite(site),
	}, nil
}

func (b *freeWebNovel) URL() string  { return b.url }
func (b *freeWebNovel) Name() string { return b.site }

func (b *freeWebNovel) Title() (string, error) {
	title, ok := firstText(b.page, fwnTitleSelector)
	if !ok {
		return "", &ParseError{Site: b.site, URL: b.url, What: "fiction title not found"}
	}
	return title, nil
}

// ImmutableIdentifier is the fiction's URL slug. The site keeps the slug
// stable when titles get re-romanized.
func (b *freeWebNovel) ImmutableIdentifier() (string, error) {
	trimmed := strings.TrimSuffix(strings.TrimSuffix(b.url, "/"), ".html")
	if i := strings.LastIndex(trimmed, "/"); i >= 0 && i < len(trimmed)-1 {
		return trimmed[i+1:], nil
	}
	return "", &ParseError{Site: b.site, URL: b.url, What: "no slug in url"}
}

func (b *freeWebNovel) Authors() ([]string, error) {
	var authors []string
	b.page.Find(fwnAuthorSelector).Each(func(_ int, a *goquery.Selection) {
		href, ok := a.Attr("href")
		if !ok {
			return
		}
		if strings.HasPrefix(href, "/author/") || strings.HasPrefix(href, "/authors/") {
			if name := strings.TrimSpace(a.Text()); name != "" {
				authors = append(authors, name)
			}
		}
	})
	if len(authors) == 0 {
		return nil, &ParseError{Site: b.site, URL: b.url, What: "authors not found"}
	}
	return authors, nil
}

func (b *freeWebNovel) CoverURL() (string, error) {
	cover, ok := firstAttr(b.page, fwnCoverSelector, "content")
	if !ok {
		return "", &ParseError{Site: b.site, URL: b.url, What: "cover image not found"}
	}
	return cover, nil
}

func (b *freeWebNovel) ChapterURLs(_ context.Context) ([]string, error) {
	var urls []string
	b.page.Find(fwnChapterListSelector).Each(func(_ int, a *goquery.Selection) {
		if href, ok := a.Attr("href"); ok {
			urls = append(urls, resolveURL(b.url, href))
		}
	})
	if len(urls) == 0 {
		return nil, &ParseError{Site: b.site, URL: b.url, What: "chapter list not found"}
	}
	return urls, nil
}

func (b *freeWebNovel) GetChapterList(_ context.Context) ([]novel.ChapterListElem, error) {
	var elems []novel.ChapterListElem
	b.page.Find(fwnChapterListSelector).Each(func(i int, a *goquery.Selection) {
		elems = append(elems, novel.ChapterListElem{
			Index: i + 1,
			Title: strings.TrimSpace(a.Text()),
		})
	})
	if len(elems) == 0 {
		return nil, &ParseError{Site: b.site, URL: b.url, What: "chapter list not found"}
	}
	return elems, nil
}

func (b *freeWebNovel) GetChapter(ctx context.Context, url string) (novel.Chapter, error) {
	page, err := fetchDOM(ctx, b.client, b.site, url)
	if err != nil {
		return novel.Chapter{}, err
	}

	title, ok := firstText(page, fwnChapterTitleSelector)
	if !ok {
		return novel.Chapter{}, &ParseError{Site: b.site, URL: url, What: "chapter title not found"}
	}
	body := page.Find(fwnChapterBodySelector).First()
	if body.Length() == 0 {
		return novel.Chapter{}, &ParseError{Site: b.site, URL: url, What: "chapter content container not found"}
	}

	content := sanitize.Sanitize(paragraphText(body), b.corpus)
	if strings.TrimSpace(content) == "" {
		return novel.Chapter{}, &ContentError{Site: b.site, URL: url, What: "empty after sanitization"}
	}

	c := novel.Chapter{
		Index:      b.indexOf(ctx, url),
		Title:      title,
		Content:    content,
		URL:        url,
		FictionURL: b.url,
	}
	if authors, err := b.Authors(); err == nil {
		c.Metadata = map[string]string{"authors": strings.Join(authors, ", ")}
	}
	return c, nil
}

func (b *freeWebNovel) indexOf(ctx context.Context, url string) int {
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

func (b *freeWebNovel) Ordering() novel.OrderingFunc { return novel.ByIndex }
