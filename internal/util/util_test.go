package util

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

func TestHuman(t *testing.T) {
	cases := []struct {
		n    int64
		want string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{2048, "2.00 KB"},
		{3 << 20, "3.00 MB"},
		{5 << 30, "5.00 GB"},
	}
	for _, tc := range cases {
		if got := Human(tc.n); got != tc.want {
			t.Errorf("Human(%d) = %q, want %q", tc.n, got, tc.want)
		}
	}
}

func TestJoinCookies(t *testing.T) {
	file := filepath.Join(t.TempDir(), "cookies.txt")
	if err := os.WriteFile(file, []byte("\n\nsession=abc\nignored=later\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cases := []struct {
		inline string
		file   string
		want   string
	}{
		{"", "", ""},
		{"key=1", "", "key=1"},
		{"", file, "session=abc"},
		{"key=1", file, "key=1; session=abc"},
		{"key=1", "/no/such/file", "key=1"},
	}
	for _, tc := range cases {
		if got := joinCookies(tc.inline, tc.file); got != tc.want {
			t.Errorf("joinCookies(%q, %q) = %q, want %q", tc.inline, tc.file, got, tc.want)
		}
	}
}

func TestDoWithRetryRecovers(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	req, err := http.NewRequest("GET", srv.URL, nil)
	if err != nil {
		t.Fatal(err)
	}
	resp, err := DoWithRetry(srv.Client(), req, 3, time.Millisecond)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d", resp.StatusCode)
	}
	if got := calls.Load(); got != 3 {
		t.Errorf("server saw %d calls, want 3", got)
	}
}

func TestDoWithRetryGivesUp(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	req, err := http.NewRequest("GET", srv.URL, nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := DoWithRetry(srv.Client(), req, 2, time.Millisecond); err == nil {
		t.Fatal("expected error after exhausted retries")
	}
}

func TestDoWithRetryClientErrorNoRetry(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	req, err := http.NewRequest("GET", srv.URL, nil)
	if err != nil {
		t.Fatal(err)
	}
	resp, err := DoWithRetry(srv.Client(), req, 3, time.Millisecond)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	// 4xx is the caller's problem, retrying won't help
	if got := calls.Load(); got != 1 {
		t.Errorf("server saw %d calls, want 1", got)
	}
}

func TestPickUserAgentOverride(t *testing.T) {
	if got := PickUserAgent("my-agent/1.0"); got != "my-agent/1.0" {
		t.Errorf("got %q", got)
	}
	if got := PickUserAgent(""); got == "" {
		t.Error("fallback user agent must not be empty")
	}
}

func TestCleanupPartialChapters(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"0001_done.html", "0002_half.html.part"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	CleanupPartialChapters(dir)

	if _, err := os.Stat(filepath.Join(dir, "0001_done.html")); err != nil {
		t.Error("finished chapter was removed")
	}
	if _, err := os.Stat(filepath.Join(dir, "0002_half.html.part")); !os.IsNotExist(err) {
		t.Error("partial chapter survived cleanup")
	}
}

func TestRemoveIfEmpty(t *testing.T) {
	parent := t.TempDir()

	empty := filepath.Join(parent, "empty")
	if err := os.Mkdir(empty, 0755); err != nil {
		t.Fatal(err)
	}
	RemoveIfEmpty(empty)
	if _, err := os.Stat(empty); !os.IsNotExist(err) {
		t.Error("empty dir survived")
	}

	full := filepath.Join(parent, "full")
	if err := os.Mkdir(full, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(full, "f"), nil, 0644); err != nil {
		t.Fatal(err)
	}
	RemoveIfEmpty(full)
	if _, err := os.Stat(full); err != nil {
		t.Error("non-empty dir was removed")
	}
}

func TestNewHTTPClientSetsHeaders(t *testing.T) {
	var gotUA, gotCookie string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotCookie = r.Header.Get("Cookie")
	}))
	defer srv.Close()

	client, err := NewHTTPClient(HTTPClientOptions{
		Timeout:   5 * time.Second,
		UserAgent: "noveld-test/1.0",
		Cookie:    "session=abc",
		Transport: http.DefaultTransport,
	})
	if err != nil {
		t.Fatal(err)
	}

	resp, err := client.Get(srv.URL)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()

	if gotUA != "noveld-test/1.0" {
		t.Errorf("user agent = %q", gotUA)
	}
	if gotCookie != "session=abc" {
		t.Errorf("cookie = %q", gotCookie)
	}
}
