package novel

import (
	"strings"
	"testing"
	"time"
)

func TestMarshalRoundTrip(t *testing.T) {
	published := time.Date(2023, 2, 14, 8, 30, 0, 0, time.UTC)

	cases := []struct {
		name string
		c    Chapter
	}{
		{
			name: "full",
			c: Chapter{
				Index:       42,
				Title:       "Chapter 42: The Long Way Down",
				Content:     "First paragraph.\n\nSecond paragraph with \"quotes\".",
				URL:         "https://www.royalroad.com/fiction/21220/mol/chapter/301778/42",
				FictionURL:  "https://www.royalroad.com/fiction/21220/mol",
				PublishedAt: &published,
				Metadata:    map[string]string{"authors": "nobody103", "tags": "fantasy, time-loop"},
			},
		},
		{
			name: "no date no metadata",
			c: Chapter{
				Index:      1,
				Title:      "Prologue",
				Content:    "A single paragraph.",
				URL:        "https://freewebnovel.com/guide/chapter-1",
				FictionURL: "https://freewebnovel.com/guide.html",
			},
		},
		{
			name: "untitled",
			c: Chapter{
				Index:      7,
				Content:    "Body only.",
				URL:        "https://libread.com/libread/thing/chapter-7",
				FictionURL: "https://libread.com/libread/thing",
			},
		},
		{
			name: "content lines resembling markers",
			c: Chapter{
				Index:      8,
				Title:      "Eight",
				Content:    "-->\n\n<!--\n<h1 class=\"mainTitle\">not a title</h1>\n<div class=\"content\">\nquoted markup in prose\n</div>",
				URL:        "https://example.com/c/8",
				FictionURL: "https://example.com/f",
			},
		},
		{
			name: "unicode",
			c: Chapter{
				Index:      3,
				Title:      "第三章 ‽",
				Content:    "彼は笑った。\n\n“So it goes.”",
				URL:        "https://freewebnovel.com/x/chapter-3",
				FictionURL: "https://freewebnovel.com/x.html",
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			data := Marshal(tc.c)
			got, err := Unmarshal(data)
			if err != nil {
				t.Fatalf("Unmarshal: %v", err)
			}
			if !got.Equal(tc.c) {
				t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, tc.c)
			}
		})
	}
}

func TestMarshalLayout(t *testing.T) {
	c := Chapter{
		Index:      5,
		Title:      "Five",
		Content:    "Text.",
		URL:        "https://example.com/c/5",
		FictionURL: "https://example.com/f",
	}
	data := Marshal(c)

	if !strings.HasPrefix(data, "<!--\nindex: 5\n") {
		t.Errorf("header does not lead with index:\n%s", data)
	}
	if !strings.Contains(data, "published_at: not_found\n") {
		t.Errorf("missing date placeholder:\n%s", data)
	}
	if !strings.Contains(data, "<h1 class=\"mainTitle\">Five</h1>") {
		t.Errorf("missing title element:\n%s", data)
	}
	if !strings.HasSuffix(data, "<div class=\"content\">\nText.\n</div>") {
		t.Errorf("content block malformed:\n%s", data)
	}
}

func TestUnmarshalErrors(t *testing.T) {
	cases := []struct {
		name string
		data string
	}{
		{"empty", ""},
		{"no header", "<h1 class=\"mainTitle\">x</h1>\n<div class=\"content\">\nbody\n</div>"},
		{"bad index", "<!--\nindex: minus one\nchapter_url: u\nfiction_url: f\n-->\n<div class=\"content\">\nx\n</div>"},
		{"negative index", "<!--\nindex: -3\nchapter_url: u\nfiction_url: f\n-->\n<div class=\"content\">\nx\n</div>"},
		{"missing chapter_url", "<!--\nindex: 1\nfiction_url: f\n-->\n<div class=\"content\">\nx\n</div>"},
		{"missing fiction_url", "<!--\nindex: 1\nchapter_url: u\n-->\n<div class=\"content\">\nx\n</div>"},
		{"bad date", "<!--\nindex: 1\nchapter_url: u\nfiction_url: f\npublished_at: yesterday\n-->\n<div class=\"content\">\nx\n</div>"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Unmarshal(tc.data); err == nil {
				t.Errorf("expected error for %q", tc.data)
			}
		})
	}
}

func TestUnmarshalURLValues(t *testing.T) {
	// header values contain ":" themselves; only the first one splits
	data := Marshal(Chapter{
		Index:      9,
		Title:      "Nine",
		Content:    "x",
		URL:        "https://example.com:8443/c/9",
		FictionURL: "https://example.com:8443/f",
	})
	c, err := Unmarshal(data)
	if err != nil {
		t.Fatal(err)
	}
	if c.URL != "https://example.com:8443/c/9" {
		t.Errorf("chapter_url mangled: %q", c.URL)
	}
	if c.FictionURL != "https://example.com:8443/f" {
		t.Errorf("fiction_url mangled: %q", c.FictionURL)
	}
}
