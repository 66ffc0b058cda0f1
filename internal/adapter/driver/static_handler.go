package driver

import (
	"io/fs"
	"net/http"
	"path"
	"strings"
)

// StaticHandler serves stylesheets and other assets from an embedded
// filesystem. Directories are not listed.
type StaticHandler struct {
	fileSystem fs.FS
	fileServer http.Handler
}

// NewStaticHandler creates a new handler that serves files from the given filesystem.
// Mount it with http.StripPrefix so request paths are relative to fsys.
func NewStaticHandler(fsys fs.FS) *StaticHandler {
	return &StaticHandler{
		fileSystem: fsys,
		fileServer: http.FileServerFS(fsys),
	}
}

// ServeHTTP serves the requested file or responds 404.
func (h *StaticHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Strip leading slash for fs.Stat
	filePath := strings.TrimPrefix(path.Clean("/"+r.URL.Path), "/")

	info, err := fs.Stat(h.fileSystem, filePath)
	if err != nil || info.IsDir() {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Cache-Control", "public, max-age=3600")
	h.fileServer.ServeHTTP(w, r)
}
