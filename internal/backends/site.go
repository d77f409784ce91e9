package backends

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/brogergvhs/noveld/internal/util"
)

// fetchDOM fetches target and parses it into a queryable document.
// Failures surface as TransportError with the site attached.
func fetchDOM(ctx context.Context, client *http.Client, site, target string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", target, nil)
	if err != nil {
		return nil, &TransportError{Site: site, URL: target, Err: err}
	}

	resp, err := util.DoWithRetry(client, req, 3, 500*time.Millisecond)
	if err != nil {
		return nil, &TransportError{Site: site, URL: target, Err: err}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, &TransportError{Site: site, URL: target, Err: fmt.Errorf("HTTP %d", resp.StatusCode)}
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, &ParseError{Site: site, URL: target, What: err.Error()}
	}
	return doc, nil
}

// firstText returns the trimmed text of the first node matching selector.
func firstText(doc *goquery.Document, selector string) (string, bool) {
	sel := doc.Find(selector).First()
	if sel.Length() == 0 {
		return "", false
	}
	return strings.TrimSpace(sel.Text()), true
}

func firstAttr(doc *goquery.Document, selector, attr string) (string, bool) {
	sel := doc.Find(selector).First()
	if sel.Length() == 0 {
		return "", false
	}
	return sel.Attr(attr)
}

// paragraphText flattens the <p> children of sel into plain text with
// blank lines between paragraphs. Paragraphs carrying a class attribute
// are skipped: on every supported site those are injected ads, while
// story text is served in bare <p> tags.
func paragraphText(sel *goquery.Selection) string {
	var paragraphs []string
	sel.Find("p").Each(func(_ int, p *goquery.Selection) {
		if _, ok := p.Attr("class"); ok {
			return
		}
		text := strings.TrimSpace(p.Text())
		if text != "" {
			paragraphs = append(paragraphs, text)
		}
	})
	return strings.Join(paragraphs, "\n\n")
}

func resolveURL(baseURL, href string) string {
	if href == "" {
		return baseURL
	}

	u, err := url.Parse(href)
	if err != nil {
		// scraped hrefs can be arbitrarily broken, pass them through
		return href
	}
	if u.IsAbs() {
		return u.String()
	}

	b, err := url.Parse(baseURL)
	if err != nil {
		return href
	}

	return b.ResolveReference(u).String()
}
