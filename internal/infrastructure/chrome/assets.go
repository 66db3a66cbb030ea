package chrome

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/andybalholm/brotli"
)

const (
	assetsPrefix   = "/assets/"
	documentPrefix = "/document/"
)

// assetServer serves the current document and the renderer assets on a
// loopback port.
type assetServer struct {
	dir string

	mu    sync.RWMutex
	docID string
	doc   string

	listener net.Listener
	server   *http.Server
}

func newAssetServer(dir string) *assetServer {
	return &assetServer{dir: dir}
}

// start binds a loopback port and serves in the background.
func (s *assetServer) start() error {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return fmt.Errorf("chrome: listen for assets: %w", err)
	}
	s.listener = ln
	s.server = &http.Server{
		Handler:           s.handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		_ = s.server.Serve(ln)
	}()
	return nil
}

func (s *assetServer) origin() string {
	if s.listener == nil {
		return ""
	}
	return "http://" + s.listener.Addr().String()
}

func (s *assetServer) baseURI() string {
	return s.origin() + assetsPrefix
}

// setDocument replaces the served document and returns its URL.
func (s *assetServer) setDocument(id, doc string) string {
	s.mu.Lock()
	s.docID = id
	s.doc = doc
	s.mu.Unlock()
	return s.origin() + documentPrefix + id
}

func (s *assetServer) shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	err := s.server.Shutdown(ctx)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *assetServer) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET "+documentPrefix+"{id}", s.serveDocument)
	if s.dir != "" {
		mux.Handle("GET "+assetsPrefix, http.StripPrefix(assetsPrefix, compressAssets(http.FileServer(http.Dir(s.dir)))))
	}
	return mux
}

func (s *assetServer) serveDocument(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	id, doc := s.docID, s.doc
	s.mu.RUnlock()

	if id == "" || r.PathValue("id") != id {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write([]byte(doc))
}

// compressAssets brotli-encodes text assets for clients that accept it.
func compressAssets(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !acceptsBrotli(r) || !compressible(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}
		r.Header.Del("Range")
		w.Header().Set("Content-Encoding", "br")
		w.Header().Add("Vary", "Accept-Encoding")

		bw := &brotliResponseWriter{ResponseWriter: w, writer: brotli.NewWriter(w)}
		next.ServeHTTP(bw, r)
		if bw.compressed {
			_ = bw.writer.Close()
		}
	})
}

func acceptsBrotli(r *http.Request) bool {
	for _, part := range strings.Split(r.Header.Get("Accept-Encoding"), ",") {
		if strings.TrimSpace(strings.SplitN(part, ";", 2)[0]) == "br" {
			return true
		}
	}
	return false
}

func compressible(p string) bool {
	switch strings.ToLower(path.Ext(p)) {
	case ".js", ".css", ".map", ".json", ".svg", ".html":
		return true
	default:
		return false
	}
}

type brotliResponseWriter struct {
	http.ResponseWriter
	writer     *brotli.Writer
	compressed bool
}

func (w *brotliResponseWriter) WriteHeader(status int) {
	w.Header().Del("Content-Length")
	if status != http.StatusOK {
		w.Header().Del("Content-Encoding")
	}
	w.ResponseWriter.WriteHeader(status)
}

func (w *brotliResponseWriter) Write(p []byte) (int, error) {
	if w.Header().Get("Content-Encoding") != "br" {
		return w.ResponseWriter.Write(p)
	}
	w.compressed = true
	return w.writer.Write(p)
}
