package csspp

import (
	"io/fs"
	"net/http"

	"github.com/csspp/csspp/internal/strings"
)

// NewMiddleware creates an HTTP middleware that compiles .csspp files to
// CSS on-the-fly, grounded on titpetric/lessgo's chi-style middleware
// wrapper.
//
// Parameters:
//   - basePath: The URL path prefix to match (e.g., "/assets/css")
//   - fileSystem: The filesystem to read .csspp files from
//
// When a request to /assets/css/style.csspp is made, it will:
//  1. Check if the request path matches basePath and ends with .csspp
//  2. Read the file from the provided filesystem
//  3. Parse and compile it to CSS
//  4. Return the compiled CSS with Content-Type: text/css
//  5. If the file is not .csspp or doesn't exist, pass to next handler
func NewMiddleware(basePath string, fileSystem fs.FS) func(http.Handler) http.Handler {
	handler := NewHandler(fileSystem, basePath)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet && r.Method != http.MethodHead {
				next.ServeHTTP(w, r)
				return
			}

			if !strings.HasPrefix(r.URL.Path, basePath) {
				next.ServeHTTP(w, r)
				return
			}

			if !strings.HasSuffix(r.URL.Path, fileExt) {
				next.ServeHTTP(w, r)
				return
			}

			relPath := strings.TrimPrefix(r.URL.Path, basePath)
			if basePath != "/" {
				relPath = strings.TrimPrefix(relPath, "/")
			}
			if info, err := fs.Stat(fileSystem, relPath); err != nil || info.IsDir() {
				next.ServeHTTP(w, r)
				return
			}

			handler.ServeHTTP(w, r)
		})
	}
}
