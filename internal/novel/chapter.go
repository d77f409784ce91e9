package novel

import (
	"maps"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Chapter is one unit of fiction content, normalized across sites.
// Backends construct it after fetch+parse+sanitize; treat it as
// immutable afterwards.
type Chapter struct {
	Index       int
	Title       string
	Content     string
	URL         string
	FictionURL  string
	PublishedAt *time.Time
	Metadata    map[string]string
}

// ChapterListElem identifies a chapter as it appears in a site's table
// of contents, without the cost of fetching its content.
type ChapterListElem struct {
	Index int
	Title string
}

func (c Chapter) Equal(o Chapter) bool {
	if c.Index != o.Index || c.Title != o.Title || c.Content != o.Content ||
		c.URL != o.URL || c.FictionURL != o.FictionURL {
		return false
	}
	if (c.PublishedAt == nil) != (o.PublishedAt == nil) {
		return false
	}
	if c.PublishedAt != nil && !c.PublishedAt.Equal(*o.PublishedAt) {
		return false
	}
	return maps.Equal(c.Metadata, o.Metadata)
}

// Paragraphs splits the content on blank lines.
func (c Chapter) Paragraphs() []string {
	var out []string
	for _, p := range strings.Split(c.Content, "\n\n") {
		if strings.TrimSpace(p) != "" {
			out = append(out, p)
		}
	}
	return out
}

// OrderingFunc compares two chapters of the same fiction, slices.SortFunc
// style: negative when a comes before b, zero only for duplicate fetches.
type OrderingFunc func(a, b Chapter) int

// ByIndex orders chapters by their source-declared index, breaking ties
// by title so distinct chapters never compare equal.
func ByIndex(a, b Chapter) int {
	if a.Index != b.Index {
		return a.Index - b.Index
	}
	return strings.Compare(a.Title, b.Title)
}

var titleNum = regexp.MustCompile(`^\s*(?:chapter\s+)?(\d+)`)

// ByTitleNumber orders by a numeric prefix parsed from the title, falling
// back to index. Some sites shift indexes when chapters are deleted; the
// number embedded in the title stays put.
func ByTitleNumber(a, b Chapter) int {
	na, oka := titleNumber(a.Title)
	nb, okb := titleNumber(b.Title)
	if oka && okb && na != nb {
		return na - nb
	}
	return ByIndex(a, b)
}

func titleNumber(title string) (int, bool) {
	m := titleNum.FindStringSubmatch(strings.ToLower(title))
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}
