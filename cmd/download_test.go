package cmd

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/brogergvhs/noveld/internal/novel"
)

func TestSelectIndexes(t *testing.T) {
	cases := []struct {
		name    string
		total   int
		chapter string
		rng     string
		list    string
		want    []int
		wantErr bool
	}{
		{name: "default all", total: 3, want: []int{1, 2, 3}},
		{name: "single chapter", total: 10, chapter: "5", want: []int{5}},
		{name: "chapter out of range", total: 4, chapter: "5", wantErr: true},
		{name: "chapter zero", total: 4, chapter: "0", wantErr: true},
		{name: "chapter garbage", total: 4, chapter: "five", wantErr: true},
		{name: "range", total: 10, rng: "3-5", want: []int{3, 4, 5}},
		{name: "range with spaces", total: 10, rng: " 3 - 5 ", want: []int{3, 4, 5}},
		{name: "range single", total: 10, rng: "7-7", want: []int{7}},
		{name: "range inverted", total: 10, rng: "5-3", wantErr: true},
		{name: "range beyond end", total: 4, rng: "2-9", wantErr: true},
		{name: "range malformed", total: 4, rng: "2-3-4", wantErr: true},
		{name: "list", total: 10, list: "1,3,5", want: []int{1, 3, 5}},
		{name: "list with blanks", total: 10, list: "1,,3, 5 ,", want: []int{1, 3, 5}},
		{name: "list out of range", total: 4, list: "1,9", wantErr: true},
		{name: "chapter beats range", total: 10, chapter: "2", rng: "3-5", want: []int{2}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := selectIndexes(tc.total, tc.chapter, tc.rng, tc.list)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %v", got)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if !slices.Equal(got, tc.want) {
				t.Errorf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestWriteChapterAndLoadCachedList(t *testing.T) {
	dir := t.TempDir()

	chapters := []novel.Chapter{
		{Index: 2, Title: "Chapter 2", Content: "Two.", URL: "u2", FictionURL: "f"},
		{Index: 1, Title: "Chapter 1", Content: "One.", URL: "u1", FictionURL: "f"},
	}
	for _, c := range chapters {
		if err := writeChapter(c, dir); err != nil {
			t.Fatal(err)
		}
	}

	// stray files in the output folder must not break cache loading
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	list, err := loadCachedList(dir)
	if err != nil {
		t.Fatal(err)
	}
	want := []novel.ChapterListElem{
		{Index: 1, Title: "Chapter 1"},
		{Index: 2, Title: "Chapter 2"},
	}
	if !slices.Equal(list, want) {
		t.Errorf("got %v, want %v", list, want)
	}

	// no leftover .part files after a clean write
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if filepath.Ext(e.Name()) == ".part" {
			t.Errorf("leftover partial file %s", e.Name())
		}
	}
}
