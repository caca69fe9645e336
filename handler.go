package csspp

import (
	"errors"
	"io"
	"io/fs"
	"net/http"

	"github.com/csspp/csspp/driver"
	"github.com/csspp/csspp/internal/config"
	"github.com/csspp/csspp/internal/strings"
)

// Error types for stylesheet compilation and serving.
var (
	ErrNotFound          = errors.New("not found")
	ErrCompilationFailed = errors.New("compilation failed")
)

// fileExt is the source extension this handler serves, compiled to CSS
// on the fly.
const fileExt = ".csspp"

// Handler compiles and serves files matching fileExt from fileSystem.
type Handler struct {
	pathPrefix string
	fileSystem fs.FS
	opts       config.Options
}

// NewHandler creates a new compilation handler.
// fileSystem is where to read .csspp files from; pathPrefix is the URL
// path prefix to match and strip (e.g., "/assets/css").
func NewHandler(fileSystem fs.FS, pathPrefix string) http.Handler {
	return &Handler{
		pathPrefix: pathPrefix,
		fileSystem: fileSystem,
		opts:       config.Defaults(),
	}
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if h.pathPrefix != "" && !strings.HasPrefix(r.URL.Path, h.pathPrefix) {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}

	if !strings.HasSuffix(r.URL.Path, fileExt) {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}

	relPath := strings.TrimPrefix(r.URL.Path, h.pathPrefix)
	if h.pathPrefix != "/" {
		relPath = strings.TrimPrefix(relPath, "/")
	}

	info, err := fs.Stat(h.fileSystem, relPath)
	if err != nil || info.IsDir() {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}

	file, err := h.fileSystem.Open(relPath)
	if err != nil {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		http.Error(w, "Compilation Error", http.StatusInternalServerError)
		return
	}

	drv := driver.New(h.opts, h.fileSystem, nil)
	drv.PropagateErrors = true
	css, err := drv.CompileBytes(relPath, data)
	if err != nil {
		http.Error(w, "Compilation Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=3600")

	if r.Method != http.MethodHead {
		w.Write([]byte(css))
	}
}
