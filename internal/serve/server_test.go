package serve

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/HootingYard/ubercoordinator/internal/domain/config"
	"github.com/HootingYard/ubercoordinator/internal/logging"
)

func writeFixture(t *testing.T, root, rel, data string) {
	t.Helper()
	full := filepath.Join(root, rel)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(full, []byte(data), 0o644); err != nil {
		t.Fatalf("write %s: %v", rel, err)
	}
}

func testConfig(t *testing.T) config.Config {
	t.Helper()
	dir := t.TempDir()
	book := filepath.Join(dir, "bigbook")
	writeFixture(t, book, "Text/toc.xhtml", `<html><body><div class="contents"><a href="2004-01-05-dobson.xhtml">Dobson</a></div></body></html>`)
	writeFixture(t, book, "Text/2004-01-05-dobson.xhtml", `<html><body><h1>Dobson</h1><p>Pamphlets.</p></body></html>`)
	writeFixture(t, dir, "analysis/export.yaml", "shows: []\n")
	writeFixture(t, dir, "analysis/notes.txt", "scratch\n")

	cfg := config.Default()
	cfg.Paths.BigBookDir = book
	cfg.Paths.ShowIndexFile = filepath.Join(dir, "analysis", "export.yaml")
	cfg.Paths.WebsiteDir = filepath.Join(dir, "website")
	cfg.Paths.CacheFile = filepath.Join(dir, "catalog.db")
	cfg.Build.Workers = 1
	return cfg
}

func TestHandlerServesBuiltSite(t *testing.T) {
	s := New(testConfig(t), logging.Discard())
	if err := s.Rebuild(context.Background()); err != nil {
		t.Fatalf("Rebuild returned error: %v", err)
	}
	srv := httptest.NewServer(s.Handler())
	defer srv.Close()

	client := &http.Client{CheckRedirect: func(*http.Request, []*http.Request) error { return http.ErrUseLastResponse }}
	resp, err := client.Get(srv.URL + "/")
	if err != nil {
		t.Fatalf("GET /: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusFound || resp.Header.Get("Location") != "/Text/index-by-title.html" {
		t.Fatalf("unexpected redirect %d %q", resp.StatusCode, resp.Header.Get("Location"))
	}

	resp, err = http.Get(srv.URL + "/Text/2004-01-05-dobson.html")
	if err != nil {
		t.Fatalf("GET article: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.StatusCode)
	}

	resp2, err := http.Get(srv.URL + "/dev/status")
	if err != nil {
		t.Fatalf("GET status: %v", err)
	}
	defer resp2.Body.Close()
	var st status
	if err := json.NewDecoder(resp2.Body).Decode(&st); err != nil {
		t.Fatalf("decode status: %v", err)
	}
	if !st.OK || st.Articles != 1 {
		t.Fatalf("unexpected status %+v", st)
	}
}

func TestFailedRebuildIsReported(t *testing.T) {
	cfg := testConfig(t)
	s := New(cfg, logging.Discard())
	writeFixture(t, filepath.Dir(cfg.Paths.ShowIndexFile), "export.yaml", `shows:
  - date: 2007-06-01
    id: hy0_20070601
    internet_archive_url: https://archive.org/details/hy_20070601
    narrations:
      - story_id: 2004-01-06-nobody
`)
	if err := s.Rebuild(context.Background()); err == nil {
		t.Fatal("expected rebuild error")
	}

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/dev/status", nil))
	if rec.Code != http.StatusInternalServerError || !strings.Contains(rec.Body.String(), "2004-01-06-nobody") {
		t.Fatalf("unexpected status response %d %s", rec.Code, rec.Body.String())
	}
}

func TestStatusAnswersDuringBuild(t *testing.T) {
	s := New(testConfig(t), logging.Discard())
	if err := s.Rebuild(context.Background()); err != nil {
		t.Fatalf("Rebuild returned error: %v", err)
	}

	// Hold the build lock as a running build would.
	s.buildMu.Lock()
	s.setBuilding(true)
	defer s.buildMu.Unlock()

	done := make(chan *httptest.ResponseRecorder, 1)
	go func() {
		rec := httptest.NewRecorder()
		s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/dev/status", nil))
		done <- rec
	}()

	select {
	case rec := <-done:
		var st status
		if err := json.NewDecoder(rec.Body).Decode(&st); err != nil {
			t.Fatalf("decode status: %v", err)
		}
		if !st.Building || !st.OK || st.Articles != 1 {
			t.Fatalf("unexpected status %+v", st)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("/dev/status blocked while a build was running")
	}
}

func TestRelevantChanges(t *testing.T) {
	cfg := testConfig(t)
	s := New(cfg, logging.Discard())

	cases := []struct {
		name string
		want bool
	}{
		{cfg.Paths.ShowIndexFile, true},
		{filepath.Join(filepath.Dir(cfg.Paths.ShowIndexFile), "notes.txt"), false},
		{filepath.Join(cfg.TextDir(), "2004-01-05-dobson.xhtml"), true},
		{filepath.Join(cfg.TextDir(), ".2004-01-05-dobson.xhtml.swp"), false},
		{filepath.Join(cfg.TextDir(), "toc.xhtml~"), false},
	}
	for _, tc := range cases {
		if got := s.relevant(tc.name); got != tc.want {
			t.Fatalf("relevant(%s) = %v, want %v", tc.name, got, tc.want)
		}
	}

	dirs := s.watchDirs()
	if len(dirs) != 2 || dirs[0] != cfg.TextDir() {
		t.Fatalf("unexpected watch dirs %v", dirs)
	}
}

func TestSSEAnnouncesRebuild(t *testing.T) {
	s := New(testConfig(t), logging.Discard())
	srv := httptest.NewServer(s.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/dev/events")
	if err != nil {
		t.Fatalf("GET events: %v", err)
	}
	defer resp.Body.Close()

	lines := make(chan string, 8)
	go func() {
		sc := bufio.NewScanner(resp.Body)
		for sc.Scan() {
			if line := sc.Text(); line != "" {
				lines <- line
			}
		}
		close(lines)
	}()

	next := func() string {
		select {
		case l := <-lines:
			return l
		case <-time.After(5 * time.Second):
			t.Fatal("timed out waiting for event")
			return ""
		}
	}

	if got := next(); got != "data: hello" {
		t.Fatalf("unexpected first event %q", got)
	}
	if err := s.Rebuild(context.Background()); err != nil {
		t.Fatalf("Rebuild returned error: %v", err)
	}
	if got := next(); got != "data: reload" {
		t.Fatalf("unexpected event %q", got)
	}
}
