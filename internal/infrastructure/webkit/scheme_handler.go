package webkit

import (
	"context"
	"errors"
	"io/fs"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path"
	"strings"
	"sync"

	webkit "github.com/diamondburned/gotk4-webkitgtk/pkg/webkit/v6"
	"github.com/diamondburned/gotk4/pkg/gio/v2"
	"github.com/diamondburned/gotk4/pkg/glib/v2"
	"github.com/rs/zerolog"

	"github.com/bnema/formview/internal/logging"
)

// Scheme is the URI scheme renderer assets are served from.
const Scheme = "formview"

// SchemeRequest is a request to the formview:// scheme.
type SchemeRequest struct {
	URI  string
	Host string
	Path string
}

// SchemeResponse is the answer to a SchemeRequest.
type SchemeResponse struct {
	Data        []byte
	ContentType string
	StatusCode  int
}

// AssetSchemeHandler serves files below an asset directory. Paths are
// resolved inside the directory; traversal outside it is rejected.
type AssetSchemeHandler struct {
	dir    string
	logger zerolog.Logger
}

// NewAssetSchemeHandler creates a handler for dir. An empty dir serves nothing.
func NewAssetSchemeHandler(ctx context.Context, dir string) *AssetSchemeHandler {
	return &AssetSchemeHandler{
		dir:    dir,
		logger: logging.FromContext(ctx).With().Str("component", "scheme-handler").Logger(),
	}
}

// Handle resolves req against the asset directory.
func (h *AssetSchemeHandler) Handle(req *SchemeRequest) *SchemeResponse {
	name := strings.TrimPrefix(path.Clean("/"+req.Path), "/")
	name = strings.TrimPrefix(name, "assets/")
	if h.dir == "" || name == "" || name == "assets" {
		return notFound()
	}

	root, err := os.OpenRoot(h.dir)
	if err != nil {
		h.logger.Warn().Err(err).Str("dir", h.dir).Msg("asset directory unavailable")
		return notFound()
	}
	defer root.Close()

	data, err := root.ReadFile(name)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			h.logger.Debug().Err(err).Str("path", req.Path).Msg("asset rejected")
		}
		return notFound()
	}

	return &SchemeResponse{
		Data:        data,
		ContentType: contentTypeFor(name),
		StatusCode:  http.StatusOK,
	}
}

func notFound() *SchemeResponse {
	return &SchemeResponse{
		Data:        []byte("not found"),
		ContentType: "text/plain; charset=utf-8",
		StatusCode:  http.StatusNotFound,
	}
}

func contentTypeFor(name string) string {
	if ct := mime.TypeByExtension(path.Ext(name)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

// schemeRoutes maps the host part of formview:// URIs to the handler of
// the view owning it. The scheme is registered once per process.
var schemeRoutes = struct {
	once     sync.Once
	mu       sync.RWMutex
	handlers map[string]*AssetSchemeHandler
}{handlers: make(map[string]*AssetSchemeHandler)}

func registerScheme(wc *webkit.WebContext, host string, h *AssetSchemeHandler) {
	schemeRoutes.mu.Lock()
	schemeRoutes.handlers[host] = h
	schemeRoutes.mu.Unlock()

	schemeRoutes.once.Do(func() {
		wc.RegisterURIScheme(Scheme, handleSchemeRequest)
		if sm := wc.SecurityManager(); sm != nil {
			sm.RegisterURISchemeAsSecure(Scheme)
			sm.RegisterURISchemeAsCorsEnabled(Scheme)
		}
	})
}

func unregisterScheme(host string) {
	schemeRoutes.mu.Lock()
	delete(schemeRoutes.handlers, host)
	schemeRoutes.mu.Unlock()
}

func handleSchemeRequest(req *webkit.URISchemeRequest) {
	uri := req.URI()
	parsed, err := url.Parse(uri)
	if err != nil {
		finishRequest(req, notFound())
		return
	}

	schemeRoutes.mu.RLock()
	h := schemeRoutes.handlers[parsed.Host]
	schemeRoutes.mu.RUnlock()
	if h == nil {
		finishRequest(req, notFound())
		return
	}

	resp := h.Handle(&SchemeRequest{URI: uri, Host: parsed.Host, Path: parsed.Path})
	h.logger.Debug().
		Str("uri", uri).
		Int("status", resp.StatusCode).
		Int("bytes", len(resp.Data)).
		Msg("asset request")
	finishRequest(req, resp)
}

func finishRequest(req *webkit.URISchemeRequest, resp *SchemeResponse) {
	if resp.StatusCode != http.StatusOK {
		req.FinishError(errors.New(http.StatusText(resp.StatusCode)))
		return
	}
	stream := gio.NewMemoryInputStreamFromBytes(glib.NewBytes(resp.Data))
	req.Finish(stream, int64(len(resp.Data)), resp.ContentType)
}
