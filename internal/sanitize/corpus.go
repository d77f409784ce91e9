package sanitize

import (
	"bufio"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Corpus is the set of known decoy sentences for one site. It only ever
// grows: the learner appends, the sanitizer reads.
type Corpus struct {
	Site      string
	sentences []string
	seen      map[string]bool
}

//go:embed corpus/*.txt
var embedded embed.FS

func NewCorpus(site string, sentences ...string) *Corpus {
	c := &Corpus{Site: site, seen: map[string]bool{}}
	c.Add(sentences...)
	return c
}

// ForSite returns the corpus shipped with the binary for the given site.
// Sites without known anti-theft injection get an empty corpus.
func ForSite(site string) *Corpus {
	c := NewCorpus(site)
	data, err := embedded.ReadFile("corpus/" + site + ".txt")
	if err != nil {
		return c
	}
	c.Add(parseLines(string(data))...)
	return c
}

// Load reads a per-site corpus file from dir, layered on top of the
// embedded snapshot. A missing file is not an error.
func Load(dir, site string) (*Corpus, error) {
	c := ForSite(site)
	data, err := os.ReadFile(filepath.Join(dir, site+".txt"))
	if os.IsNotExist(err) {
		return c, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load corpus for %s: %w", site, err)
	}
	c.Add(parseLines(string(data))...)
	return c, nil
}

// Save writes the corpus to dir, one sentence per line, sorted so diffs
// of the file stay readable.
func (c *Corpus) Save(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	out := make([]string, len(c.sentences))
	copy(out, c.sentences)
	sort.Strings(out)
	data := strings.Join(out, "\n") + "\n"
	return os.WriteFile(filepath.Join(dir, c.Site+".txt"), []byte(data), 0644)
}

// Add appends sentences not already present. Empty lines collapse away.
func (c *Corpus) Add(sentences ...string) int {
	added := 0
	for _, s := range sentences {
		s = strings.TrimSpace(s)
		if s == "" || c.seen[s] {
			continue
		}
		c.seen[s] = true
		c.sentences = append(c.sentences, s)
		added++
	}
	return added
}

func (c *Corpus) Sentences() []string {
	out := make([]string, len(c.sentences))
	copy(out, c.sentences)
	return out
}

func (c *Corpus) Len() int { return len(c.sentences) }

func parseLines(data string) []string {
	var out []string
	sc := bufio.NewScanner(strings.NewReader(data))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}
	return out
}
