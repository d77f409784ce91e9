package novel

import "testing"

func TestFileName(t *testing.T) {
	cases := []struct {
		c    Chapter
		want string
	}{
		{Chapter{Index: 1, Title: "Chapter 1: Good Morning, Brother"}, "0001_chapter_1_good_morning_brother.html"},
		{Chapter{Index: 42, Title: "Ch. 42 — Down / Under"}, "0042_ch_42_down_under.html"},
		{Chapter{Index: 7, Title: "(Interlude)"}, "0007_interlude.html"},
		{Chapter{Index: 12, Title: ""}, "0012.html"},
		{Chapter{Index: 3, Title: "!!!"}, "0003.html"},
		{Chapter{Index: 10000, Title: "x"}, "10000_x.html"},
	}
	for _, tc := range cases {
		if got := tc.c.FileName(); got != tc.want {
			t.Errorf("FileName(%d, %q) = %q, want %q", tc.c.Index, tc.c.Title, got, tc.want)
		}
	}
}

func TestFilePath(t *testing.T) {
	c := Chapter{Index: 2, Title: "Two"}
	if got := c.FilePath("out"); got != "out/0002_two.html" {
		t.Errorf("FilePath = %q", got)
	}
}
