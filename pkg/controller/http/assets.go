package http

import (
	"io"
	"net/http"
	"os"
	"path"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
)

const (
	indexCacheControl = "no-cache"
	assetCacheControl = "public, max-age=3600"
)

// AssetHandler serves the dashboard page and its static assets. Extensionless paths are
// client-side views and get index.html; a missing file with an extension is a 404 so that a
// stale script reference never receives HTML.
type AssetHandler struct {
	fileSystem http.FileSystem
	index      []byte
	loadedAt   time.Time
}

// NewAssetHandler reads index.html once and serves the rest of fsys on demand
func NewAssetHandler(fsys http.FileSystem) (*AssetHandler, error) {
	f, err := fsys.Open("/index.html")
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open index.html for dashboard assets")
	}
	defer f.Close()

	index, err := io.ReadAll(f)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read index.html")
	}

	return &AssetHandler{
		fileSystem: fsys,
		index:      index,
		loadedAt:   time.Now(),
	}, nil
}

// ServeHTTP implements http.Handler
func (h *AssetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		writeError(w, r, goerr.New("method not allowed", goerr.V("method", r.Method)), http.StatusMethodNotAllowed)
		return
	}

	cleanPath := path.Clean("/" + r.URL.Path)
	if cleanPath == "/api" || strings.HasPrefix(cleanPath, "/api/") {
		writeError(w, r, goerr.New("unknown API endpoint", goerr.V("path", cleanPath)), http.StatusNotFound)
		return
	}

	file, err := h.fileSystem.Open(cleanPath)
	if err != nil {
		if !os.IsNotExist(err) {
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		if path.Ext(cleanPath) != "" {
			http.NotFound(w, r)
			return
		}
		h.serveIndex(w, r)
		return
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if stat.IsDir() || cleanPath == "/index.html" {
		h.serveIndex(w, r)
		return
	}

	if contentType := contentTypeOf(cleanPath); contentType != "" {
		w.Header().Set("Content-Type", contentType)
	}
	w.Header().Set("Cache-Control", assetCacheControl)
	http.ServeContent(w, r, stat.Name(), stat.ModTime(), file)
}

func (h *AssetHandler) serveIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", indexCacheControl)
	http.ServeContent(w, r, "index.html", h.loadedAt, strings.NewReader(string(h.index)))
}

var mimeTypes = map[string]string{
	".html":  "text/html; charset=utf-8",
	".css":   "text/css; charset=utf-8",
	".js":    "application/javascript; charset=utf-8",
	".json":  "application/json; charset=utf-8",
	".csv":   "text/csv; charset=utf-8",
	".png":   "image/png",
	".svg":   "image/svg+xml",
	".ico":   "image/x-icon",
	".woff2": "font/woff2",
}

func contentTypeOf(filePath string) string {
	return mimeTypes[path.Ext(filePath)]
}
