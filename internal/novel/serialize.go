package novel

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Chapters are persisted as an HTML fragment with their identity carried
// in a leading comment block, so the files stay usable as-is by e-book
// tooling while still round-tripping to an equal Chapter.

const noDate = "not_found"

func Marshal(c Chapter) string {
	var b strings.Builder
	b.WriteString("<!--\n")
	fmt.Fprintf(&b, "index: %d\n", c.Index)
	fmt.Fprintf(&b, "chapter_url: %s\n", c.URL)
	fmt.Fprintf(&b, "fiction_url: %s\n", c.FictionURL)
	if c.PublishedAt != nil {
		fmt.Fprintf(&b, "published_at: %s\n", c.PublishedAt.Format(time.RFC3339))
	} else {
		fmt.Fprintf(&b, "published_at: %s\n", noDate)
	}
	b.WriteString("metadata:\n")
	keys := make([]string, 0, len(c.Metadata))
	for k := range c.Metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, "  %s: %s\n", k, c.Metadata[k])
	}
	b.WriteString("-->\n")
	if c.Title != "" {
		fmt.Fprintf(&b, "<h1 class=\"mainTitle\">%s</h1>\n", c.Title)
	}
	fmt.Fprintf(&b, "<div class=\"content\">\n%s\n</div>", c.Content)
	return b.String()
}

func Unmarshal(s string) (Chapter, error) {
	var (
		c          Chapter
		header     = map[string]string{}
		content    []string
		inHeader   bool
		inMeta     bool
		inContent  bool
		seenHeader bool
	)

	for _, line := range strings.Split(s, "\n") {
		switch {
		// everything after the opening content div is body text, even
		// lines that look like header or title markers
		case inContent:
			content = append(content, line)
		case strings.HasPrefix(line, "<!--"):
			inHeader = true
			seenHeader = true
		case strings.HasPrefix(line, "-->"):
			inHeader = false
			inMeta = false
		case inHeader:
			if strings.HasPrefix(line, "metadata:") {
				inMeta = true
				continue
			}
			key, value, ok := strings.Cut(strings.TrimSpace(line), ":")
			if !ok {
				continue
			}
			key = strings.TrimSpace(key)
			value = strings.TrimSpace(value)
			if inMeta && strings.HasPrefix(line, "  ") {
				if c.Metadata == nil {
					c.Metadata = map[string]string{}
				}
				c.Metadata[key] = value
			} else {
				inMeta = false
				header[key] = value
			}
		case strings.HasPrefix(line, "<h1 class=\"mainTitle\">"):
			c.Title = strings.TrimSuffix(strings.TrimPrefix(line, "<h1 class=\"mainTitle\">"), "</h1>")
		case strings.HasPrefix(line, "<div class=\"content\">"):
			inContent = true
		}
	}

	if !seenHeader {
		return Chapter{}, fmt.Errorf("chapter data: missing header block")
	}

	idx, err := strconv.Atoi(header["index"])
	if err != nil || idx < 0 {
		return Chapter{}, fmt.Errorf("chapter data: bad index %q", header["index"])
	}
	c.Index = idx

	c.URL = header["chapter_url"]
	if c.URL == "" {
		return Chapter{}, fmt.Errorf("chapter data: missing chapter_url")
	}
	c.FictionURL = header["fiction_url"]
	if c.FictionURL == "" {
		return Chapter{}, fmt.Errorf("chapter data: missing fiction_url")
	}

	if v := headerValue(header, "published_at"); v != "" && v != noDate {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return Chapter{}, fmt.Errorf("chapter data: bad published_at %q: %w", v, err)
		}
		c.PublishedAt = &t
	}

	// last line before EOF is the closing </div>
	if n := len(content); n > 0 && strings.TrimSpace(content[n-1]) == "</div>" {
		content = content[:n-1]
	}
	c.Content = strings.Join(content, "\n")

	return c, nil
}

func headerValue(h map[string]string, key string) string {
	return strings.TrimSpace(h[key])
}
