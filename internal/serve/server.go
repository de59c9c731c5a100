package serve

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/HootingYard/ubercoordinator/internal/build"
	"github.com/HootingYard/ubercoordinator/internal/domain/config"
	"github.com/HootingYard/ubercoordinator/internal/domain/site"
	"github.com/HootingYard/ubercoordinator/internal/logging"
)

const debounceDelay = 200 * time.Millisecond

// Server serves the website directory and rebuilds it when the Big Book,
// the show index or the theme change.
type Server struct {
	cfg     config.Config
	log     *slog.Logger
	builder *build.Builder

	// buildMu serialises builds; mu guards the results below.
	buildMu  sync.Mutex
	mu       sync.RWMutex
	building bool
	last     *build.Result
	lastErr  error
	builtAt  time.Time

	sseMu     sync.Mutex
	sseConns  map[chan string]struct{}
	watcher   *fsnotify.Watcher
	watchOnce sync.Once
}

func New(cfg config.Config, logger *slog.Logger) *Server {
	return &Server{
		cfg:      cfg,
		log:      logging.Component(logger, "serve"),
		builder:  &build.Builder{Cfg: cfg, Logger: logger},
		sseConns: make(map[chan string]struct{}),
	}
}

func (s *Server) Close() error {
	if s.watcher != nil {
		return s.watcher.Close()
	}
	return nil
}

func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	if err := s.Rebuild(ctx); err != nil {
		return err
	}
	if err := s.startWatch(ctx); err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		_ = srv.Shutdown(context.Background())
	}()

	s.log.Info("listening", "addr", addr, "dir", s.cfg.Paths.WebsiteDir)
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Handler routes the dev endpoints and serves every other path from the
// website directory.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/dev/events", s.handleSSE)
	mux.HandleFunc("/dev/status", s.handleStatus)

	files := http.FileServer(http.Dir(s.cfg.Paths.WebsiteDir))
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/" {
			http.Redirect(w, r, "/"+site.OutPath(site.TitleIndexPage), http.StatusFound)
			return
		}
		files.ServeHTTP(w, r)
	})
	return mux
}

// Rebuild runs one website build. A failed build keeps the previous pages
// on disk and is reported by /dev/status.
func (s *Server) Rebuild(ctx context.Context) error {
	s.buildMu.Lock()
	defer s.buildMu.Unlock()

	s.setBuilding(true)
	res, err := s.builder.Run(ctx)

	s.mu.Lock()
	s.building = false
	s.lastErr = err
	if err == nil {
		s.last = res
		s.builtAt = time.Now()
	}
	s.mu.Unlock()

	if err != nil {
		return fmt.Errorf("rebuild: %w", err)
	}
	for _, w := range res.Warnings {
		s.log.Warn(w.Msg, "path", w.Path)
	}
	s.broadcastSSE("reload")
	return nil
}

func (s *Server) setBuilding(v bool) {
	s.mu.Lock()
	s.building = v
	s.mu.Unlock()
}

// watchDirs lists the directories whose changes trigger a rebuild.
func (s *Server) watchDirs() []string {
	dirs := []string{
		s.cfg.TextDir(),
		filepath.Dir(s.cfg.Paths.ShowIndexFile),
	}
	if s.cfg.Paths.ThemeDir != "" {
		dirs = append(dirs, filepath.Join(s.cfg.Paths.ThemeDir, "templates"), filepath.Join(s.cfg.Paths.ThemeDir, "static"))
	}
	if s.cfg.Site.PrefaceDir != "" {
		dirs = append(dirs, s.cfg.Site.PrefaceDir)
	}
	return dirs
}

// relevant reports whether a change to name should trigger a rebuild. In
// the show index's directory only the show index itself counts.
func (s *Server) relevant(name string) bool {
	name = filepath.Clean(name)
	if name == filepath.Clean(s.cfg.Paths.ShowIndexFile) {
		return true
	}
	dir := filepath.Dir(name)
	if dir == filepath.Dir(filepath.Clean(s.cfg.Paths.ShowIndexFile)) && dir != filepath.Clean(s.cfg.TextDir()) {
		return false
	}
	base := filepath.Base(name)
	return !strings.HasPrefix(base, ".") && !strings.HasSuffix(base, "~")
}

func (s *Server) startWatch(ctx context.Context) error {
	var err error
	s.watchOnce.Do(func() {
		w, e := fsnotify.NewWatcher()
		if e != nil {
			err = e
			return
		}
		s.watcher = w

		for _, dir := range s.watchDirs() {
			if _, statErr := os.Stat(dir); statErr != nil {
				continue
			}
			if e := w.Add(dir); e != nil {
				err = fmt.Errorf("watch %s: %w", dir, e)
				return
			}
		}
		go s.watchLoop(ctx)
	})
	return err
}

func (s *Server) watchLoop(ctx context.Context) {
	s.log.Info("watching for file changes")
	debounce := time.NewTimer(time.Hour)
	debounce.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0 && s.relevant(ev.Name) {
				s.log.Debug("change", "file", ev.Name, "op", ev.Op.String())
				debounce.Reset(debounceDelay)
			}
		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			s.log.Warn("watcher error", "error", err)
		case <-debounce.C:
			ctx2, cancel := context.WithTimeout(ctx, 2*time.Minute)
			if err := s.Rebuild(ctx2); err != nil {
				s.log.Error("rebuild failed", "error", err)
			}
			cancel()
		}
	}
}

type status struct {
	OK         bool      `json:"ok"`
	Building   bool      `json:"building"`
	Error      string    `json:"error,omitempty"`
	BuiltAt    time.Time `json:"built_at"`
	Articles   int       `json:"articles"`
	Shows      int       `json:"shows"`
	Narrations int       `json:"narrations"`
	Written    int       `json:"written"`
	Warnings   int       `json:"warnings"`
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	st := status{OK: s.lastErr == nil, Building: s.building, BuiltAt: s.builtAt}
	if s.lastErr != nil {
		st.Error = s.lastErr.Error()
	}
	if s.last != nil {
		st.Articles = s.last.Articles
		st.Shows = s.last.Shows
		st.Narrations = s.last.Narrations
		st.Written = s.last.Written
		st.Warnings = len(s.last.Warnings)
	}
	s.mu.RUnlock()

	w.Header().Set("Content-Type", "application/json")
	if !st.OK {
		w.WriteHeader(http.StatusInternalServerError)
	}
	_ = json.NewEncoder(w).Encode(st)
}

func (s *Server) handleSSE(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch := make(chan string, 8)

	s.sseMu.Lock()
	s.sseConns[ch] = struct{}{}
	s.sseMu.Unlock()

	defer func() {
		s.sseMu.Lock()
		delete(s.sseConns, ch)
		close(ch)
		s.sseMu.Unlock()
	}()
	fmt.Fprintf(w, "data: %s\n\n", "hello")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			fmt.Fprintf(w, "data: %s\n\n", msg)
			flusher.Flush()
		}
	}
}

func (s *Server) broadcastSSE(msg string) {
	s.sseMu.Lock()
	defer s.sseMu.Unlock()
	for ch := range s.sseConns {
		select {
		case ch <- msg:
		default:
		}
	}
}
