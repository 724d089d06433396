// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
)

// indexHandler serves the embedded search page at the site root.
type indexHandler struct{}

func newIndexHandler() *indexHandler {
	return &indexHandler{}
}

// HandleIndex handles GET / requests.
func (h *indexHandler) HandleIndex(w http.ResponseWriter, r *http.Request) {
	// "/" is the ServeMux catch-all; anything else under it is unknown.
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	http.ServeFileFS(w, r, indexFS, "index.html")
}
