package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/brogergvhs/noveld/internal/novel"
)

// loadCachedList rebuilds a chapter listing from previously downloaded
// chapter files, so the source can be diffed against the local copy
// without refetching anything.
func loadCachedList(dir string) ([]novel.ChapterListElem, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading cache dir: %w", err)
	}

	var list []novel.ChapterListElem
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".html") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, err
		}
		c, err := novel.Unmarshal(string(data))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", e.Name(), err)
		}
		list = append(list, novel.ChapterListElem{Index: c.Index, Title: c.Title})
	}

	sort.Slice(list, func(i, j int) bool { return list[i].Index < list[j].Index })
	return list, nil
}
