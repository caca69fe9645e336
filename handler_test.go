package csspp_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"

	csspp "github.com/csspp/csspp"
)

func TestHandlerCompilesAndServesCSS(t *testing.T) {
	fsys := fstest.MapFS{
		"style.csspp": &fstest.MapFile{Data: []byte("a { color: red; }")},
	}
	h := csspp.NewHandler(fsys, "/assets")

	req := httptest.NewRequest(http.MethodGet, "/assets/style.csspp", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "text/css; charset=utf-8", rec.Header().Get("Content-Type"))
	require.Equal(t, "a {\n    color: red;\n}\n", rec.Body.String())
}

func TestHandlerMissingFileReturns404(t *testing.T) {
	fsys := fstest.MapFS{}
	h := csspp.NewHandler(fsys, "/assets")

	req := httptest.NewRequest(http.MethodGet, "/assets/missing.csspp", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandlerNonCSSPPExtensionReturns404(t *testing.T) {
	fsys := fstest.MapFS{
		"style.css": &fstest.MapFile{Data: []byte("a{color:red}")},
	}
	h := csspp.NewHandler(fsys, "/assets")

	req := httptest.NewRequest(http.MethodGet, "/assets/style.css", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandlerRejectsPOST(t *testing.T) {
	fsys := fstest.MapFS{
		"style.csspp": &fstest.MapFile{Data: []byte("a { color: red; }")},
	}
	h := csspp.NewHandler(fsys, "/assets")

	req := httptest.NewRequest(http.MethodPost, "/assets/style.csspp", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestHandlerCompilationErrorReturns500(t *testing.T) {
	fsys := fstest.MapFS{
		"style.csspp": &fstest.MapFile{Data: []byte("a { color: ")},
	}
	h := csspp.NewHandler(fsys, "/assets")

	req := httptest.NewRequest(http.MethodGet, "/assets/style.csspp", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestHandlerHeadRequestHasNoBody(t *testing.T) {
	fsys := fstest.MapFS{
		"style.csspp": &fstest.MapFile{Data: []byte("a { color: red; }")},
	}
	h := csspp.NewHandler(fsys, "/assets")

	req := httptest.NewRequest(http.MethodHead, "/assets/style.csspp", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Empty(t, rec.Body.String())
}

func TestMiddlewarePassesThroughNonMatchingPath(t *testing.T) {
	fsys := fstest.MapFS{}
	nextCalled := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nextCalled = true
		w.WriteHeader(http.StatusTeapot)
	})
	mw := csspp.NewMiddleware("/assets", fsys)(next)

	req := httptest.NewRequest(http.MethodGet, "/other/page.html", nil)
	rec := httptest.NewRecorder()
	mw.ServeHTTP(rec, req)

	require.True(t, nextCalled)
	require.Equal(t, http.StatusTeapot, rec.Code)
}

func TestMiddlewareServesMatchingCSSPPPath(t *testing.T) {
	fsys := fstest.MapFS{
		"style.csspp": &fstest.MapFile{Data: []byte("a { color: blue; }")},
	}
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next should not be called for a matching .csspp path")
	})
	mw := csspp.NewMiddleware("/assets", fsys)(next)

	req := httptest.NewRequest(http.MethodGet, "/assets/style.csspp", nil)
	rec := httptest.NewRecorder()
	mw.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "color: blue;")
}
